package service

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/Aashish23092/irbn-report-extractor/dto"
	"github.com/Aashish23092/irbn-report-extractor/renderer"
	"github.com/Aashish23092/irbn-report-extractor/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() *ReportService {
	rules := utils.DefaultRules()
	s := NewReportService(
		NewReportExtractor(rules, nil),
		NewDocumentReader(&fakePDF{}, fakeOCR{}),
		NewSessionStore(),
		rules,
	)
	s.now = func() time.Time { return time.Date(2025, time.May, 12, 0, 0, 0, 0, time.UTC) }
	return s
}

func TestSubmitBatchAppendsInOrder(t *testing.T) {
	s := newTestService()
	id := s.CreateSession()

	resp, err := s.Submit(context.Background(), id, "Name: 1 IRBn\n---\nName: 2 IRBn\n")
	require.NoError(t, err)
	require.Len(t, resp.Added, 2)
	assert.Equal(t, 2, resp.Total)
	assert.Equal(t, 1, resp.Added[0].SNo)
	assert.Equal(t, "1 IRBn", resp.Added[0].Record.Get(dto.FieldUnitName))
	assert.Equal(t, 2, resp.Added[1].SNo)
	assert.Equal(t, "2 IRBn", resp.Added[1].Record.Get(dto.FieldUnitName))

	resp, err = s.Submit(context.Background(), id, templateReport)
	require.NoError(t, err)
	assert.Equal(t, 3, resp.Total)
	assert.Equal(t, 3, resp.Added[0].SNo)

	rows, err := s.Records(id)
	require.NoError(t, err)
	require.Len(t, rows.Rows, 3)
	assert.Equal(t, dto.Columns(), rows.Columns)
	assert.Equal(t, "3rd IRBn Bassi", rows.Rows[2].Record.Get(dto.FieldUnitName))
}

func TestSubmitEmptyLeavesSessionUnchanged(t *testing.T) {
	s := newTestService()
	id := s.CreateSession()
	_, err := s.Submit(context.Background(), id, "Name: 1 IRBn")
	require.NoError(t, err)

	for _, text := range []string{"", " \n\t ", "---\n===\n***"} {
		_, err := s.Submit(context.Background(), id, text)
		assert.ErrorIs(t, err, dto.ErrEmptyReport)
	}

	rows, err := s.Records(id)
	require.NoError(t, err)
	assert.Len(t, rows.Rows, 1)
}

func TestSubmitCanonicalisesText(t *testing.T) {
	s := newTestService()
	id := s.CreateSession()

	resp, err := s.Submit(context.Background(), id, "Name: ５ IRBn\r\n1. Reserves: 2 Coy\r\n")
	require.NoError(t, err)
	assert.Equal(t, "5 IRBn", resp.Added[0].Record.Get(dto.FieldUnitName))
	assert.Equal(t, "2 Coy", resp.Added[0].Record.Get(dto.FieldReservesDeployed))
}

func TestUnknownSession(t *testing.T) {
	s := newTestService()

	_, err := s.Submit(context.Background(), "missing", "Name: 1 IRBn")
	assert.ErrorIs(t, err, dto.ErrSessionNotFound)
	_, err = s.Records("missing")
	assert.ErrorIs(t, err, dto.ErrSessionNotFound)
	assert.ErrorIs(t, s.Reset("missing"), dto.ErrSessionNotFound)
	assert.ErrorIs(t, s.Render("missing", renderer.FormatXLSX, &bytes.Buffer{}), dto.ErrSessionNotFound)
	_, err = s.SubmitDocument(context.Background(), "missing", "a.txt", []byte("x"), "")
	assert.ErrorIs(t, err, dto.ErrSessionNotFound)
}

func TestResetEmptiesSession(t *testing.T) {
	s := newTestService()
	id := s.CreateSession()
	_, err := s.Submit(context.Background(), id, "Name: 1 IRBn\n***\nName: 2 IRBn")
	require.NoError(t, err)

	require.NoError(t, s.Reset(id))
	rows, err := s.Records(id)
	require.NoError(t, err)
	assert.Empty(t, rows.Rows)

	resp, err := s.Submit(context.Background(), id, "Name: 3 IRBn")
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Added[0].SNo)
}

func TestPreviewDoesNotAppend(t *testing.T) {
	s := newTestService()
	id := s.CreateSession()

	resp, err := s.Preview(context.Background(), templateReport+"\n===\n"+reworded)
	require.NoError(t, err)
	require.Len(t, resp.Results, 2)
	assert.Equal(t, "strict", resp.Results[0].Strategy)
	assert.Equal(t, "smart", resp.Results[1].Strategy)

	rows, err := s.Records(id)
	require.NoError(t, err)
	assert.Empty(t, rows.Rows)

	_, err = s.Preview(context.Background(), "  ")
	assert.ErrorIs(t, err, dto.ErrEmptyReport)
}

func TestSubmitDocument(t *testing.T) {
	s := newTestService()
	id := s.CreateSession()

	resp, err := s.SubmitDocument(context.Background(), id, "report.txt", []byte("Name: 6 IRBn"), "")
	require.NoError(t, err)
	assert.Equal(t, "6 IRBn", resp.Added[0].Record.Get(dto.FieldUnitName))

	_, err = s.SubmitDocument(context.Background(), id, "report.exe", []byte("MZ"), "")
	assert.ErrorIs(t, err, dto.ErrUnsupportedDocument)
}

func TestRender(t *testing.T) {
	s := newTestService()
	id := s.CreateSession()
	_, err := s.Submit(context.Background(), id, templateReport)
	require.NoError(t, err)

	var xlsx bytes.Buffer
	require.NoError(t, s.Render(id, renderer.FormatXLSX, &xlsx))
	assert.True(t, bytes.HasPrefix(xlsx.Bytes(), []byte("PK")))

	var pdf bytes.Buffer
	require.NoError(t, s.Render(id, renderer.FormatPDF, &pdf))
	assert.True(t, bytes.HasPrefix(pdf.Bytes(), []byte("%PDF-")))

	assert.ErrorIs(t, s.Render(id, renderer.Format("csv"), &bytes.Buffer{}), renderer.ErrUnknownFormat)
	assert.Equal(t, 2025, s.Today().Year())
}

func TestSubmitHonoursCancelledContext(t *testing.T) {
	s := newTestService()
	id := s.CreateSession()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Submit(ctx, id, "Name: 1 IRBn")
	assert.ErrorIs(t, err, context.Canceled)

	rows, err := s.Records(id)
	require.NoError(t, err)
	assert.Empty(t, rows.Rows)
}
