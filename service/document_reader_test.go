package service

import (
	"archive/zip"
	"bytes"
	"errors"
	"testing"

	"github.com/Aashish23092/irbn-report-extractor/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePDF struct {
	text      string
	textErr   error
	images    [][]byte
	passwords []string
}

func (f *fakePDF) ExtractText(_ []byte, password string) (string, error) {
	f.passwords = append(f.passwords, password)
	return f.text, f.textErr
}

func (f *fakePDF) ExtractPageImages(_ []byte, password string) ([][]byte, error) {
	f.passwords = append(f.passwords, password)
	return f.images, nil
}

// fakeOCR returns the image bytes as their text.
type fakeOCR struct {
	fail map[string]bool
}

func (f fakeOCR) ExtractText(image []byte) (string, error) {
	if f.fail[string(image)] {
		return "", errors.New("unreadable")
	}
	return string(image), nil
}

func TestReadTextPlain(t *testing.T) {
	r := NewDocumentReader(&fakePDF{}, nil)

	text, err := r.ReadText("report.TXT", []byte("Name: 1 IRBn"), "")
	require.NoError(t, err)
	assert.Equal(t, "Name: 1 IRBn", text)

	_, err = r.ReadText("report.txt", []byte{0xff, 0xfe, 0x00}, "")
	assert.Error(t, err)
}

func TestReadTextPDFWithTextLayer(t *testing.T) {
	pdf := &fakePDF{text: "Name of unit: 3rd IRBn Bassi\n1. Reserves: 1 Coy\n"}
	r := NewDocumentReader(pdf, fakeOCR{})

	text, err := r.ReadText("daily.pdf", []byte("%PDF"), "secret")
	require.NoError(t, err)
	assert.Equal(t, pdf.text, text)
	assert.Equal(t, []string{"secret"}, pdf.passwords)
}

func TestReadTextScannedPDFFallsBackToOCR(t *testing.T) {
	pdf := &fakePDF{text: " \n ", images: [][]byte{[]byte("page one"), []byte("smudge"), []byte("page two")}}
	r := NewDocumentReader(pdf, fakeOCR{fail: map[string]bool{"smudge": true}})

	text, err := r.ReadText("scan.pdf", []byte("%PDF"), "")
	require.NoError(t, err)
	assert.Equal(t, "page one\npage two", text)
}

func TestReadTextScannedPDFWithoutOCR(t *testing.T) {
	boom := errors.New("broken xref")
	r := NewDocumentReader(&fakePDF{textErr: boom}, nil)

	_, err := r.ReadText("scan.pdf", []byte("%PDF"), "")
	assert.ErrorIs(t, err, boom)
}

func TestReadTextImage(t *testing.T) {
	text, err := NewDocumentReader(&fakePDF{}, fakeOCR{}).ReadText("shot.jpeg", []byte("Name: 7 IRBn"), "")
	require.NoError(t, err)
	assert.Equal(t, "Name: 7 IRBn", text)

	_, err = NewDocumentReader(&fakePDF{}, nil).ReadText("shot.png", []byte("x"), "")
	assert.ErrorIs(t, err, dto.ErrUnsupportedDocument)
}

func TestReadTextDocx(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>
<w:p><w:r><w:t>Name of unit: </w:t></w:r><w:r><w:t>4th IRBn</w:t></w:r></w:p>
<w:p><w:r><w:t>1. Training: Drill</w:t></w:r></w:p>
</w:body></w:document>`))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	text, err := NewDocumentReader(&fakePDF{}, nil).ReadText("report.docx", buf.Bytes(), "")
	require.NoError(t, err)
	assert.Equal(t, "Name of unit: 4th IRBn\n1. Training: Drill", text)

	_, err = NewDocumentReader(&fakePDF{}, nil).ReadText("report.docx", []byte("not a zip"), "")
	assert.Error(t, err)
}

func TestReadTextDocxBreaksAndTabs(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>
<w:p><w:pPr><w:tabs><w:tab w:val="left" w:pos="720"/></w:tabs></w:pPr><w:r><w:t>Name:</w:t><w:tab/><w:t>4th IRBn</w:t></w:r></w:p>
<w:p><w:r><w:t>1. Training: Drill</w:t><w:br/><w:t>2. Welfare: Camp</w:t></w:r></w:p>
</w:body></w:document>`))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	text, err := NewDocumentReader(&fakePDF{}, nil).ReadText("report.docx", buf.Bytes(), "")
	require.NoError(t, err)
	assert.Equal(t, "Name:\t4th IRBn\n1. Training: Drill\n2. Welfare: Camp", text)
}

func TestReadTextUnsupported(t *testing.T) {
	_, err := NewDocumentReader(&fakePDF{}, nil).ReadText("report.odt", []byte("x"), "")
	assert.ErrorIs(t, err, dto.ErrUnsupportedDocument)
}
