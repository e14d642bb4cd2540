package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/Aashish23092/irbn-report-extractor/dto"
	"github.com/Aashish23092/irbn-report-extractor/renderer"
	"github.com/Aashish23092/irbn-report-extractor/utils"
	"github.com/rs/zerolog/log"
)

// ReportService ties extraction, session state and rendering together.
type ReportService struct {
	extractor  *ReportExtractor
	reader     *DocumentReader
	sessions   *SessionStore
	delimiters []string
	now        func() time.Time
}

func NewReportService(
	extractor *ReportExtractor,
	reader *DocumentReader,
	sessions *SessionStore,
	rules utils.Rules,
) *ReportService {
	return &ReportService{
		extractor:  extractor,
		reader:     reader,
		sessions:   sessions,
		delimiters: rules.BatchDelimiters,
		now:        time.Now,
	}
}

// CreateSession opens an empty session.
func (s *ReportService) CreateSession() string {
	id := s.sessions.Create()
	log.Info().Str("session", id).Msg("session created")
	return id
}

// Submit extracts every report in text and appends the records to the
// session in input order. Blank text is rejected with dto.ErrEmptyReport and
// leaves the session unchanged.
func (s *ReportService) Submit(ctx context.Context, sessionID, text string) (*dto.SubmitResponse, error) {
	req := dto.ExtractRequest{Text: text}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	set, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}

	results, err := s.extractAll(ctx, text)
	if err != nil {
		return nil, err
	}

	records := make([]dto.ReportRecord, len(results))
	for i, r := range results {
		records[i] = r.Record
	}
	total := set.Append(records...)

	added := make([]dto.RecordRow, len(records))
	for i, rec := range records {
		added[i] = dto.RecordRow{SNo: total - len(records) + i + 1, Record: rec}
	}
	log.Info().Str("session", sessionID).Int("added", len(added)).Int("total", total).Msg("reports appended")

	return &dto.SubmitResponse{SessionID: sessionID, Added: added, Total: total}, nil
}

// SubmitDocument reads an uploaded file and submits its text.
func (s *ReportService) SubmitDocument(ctx context.Context, sessionID, name string, data []byte, password string) (*dto.SubmitResponse, error) {
	if _, err := s.sessions.Get(sessionID); err != nil {
		return nil, err
	}
	text, err := s.reader.ReadText(name, data, password)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return s.Submit(ctx, sessionID, text)
}

// Preview extracts every report in text without touching any session.
func (s *ReportService) Preview(ctx context.Context, text string) (*dto.PreviewResponse, error) {
	req := dto.ExtractRequest{Text: text}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	results, err := s.extractAll(ctx, text)
	if err != nil {
		return nil, err
	}
	return &dto.PreviewResponse{Results: results}, nil
}

func (s *ReportService) extractAll(ctx context.Context, text string) ([]dto.ExtractionResult, error) {
	reports := utils.SplitReports(utils.CanonicalizeText(text), s.delimiters)
	if len(reports) == 0 {
		return nil, dto.ErrEmptyReport
	}

	results := make([]dto.ExtractionResult, 0, len(reports))
	for _, report := range reports {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		results = append(results, s.extractor.Extract(ctx, report))
	}
	return results, nil
}

// Records returns the session's rows in insertion order.
func (s *ReportService) Records(sessionID string) (*dto.RecordsResponse, error) {
	set, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	records := set.Records()
	rows := make([]dto.RecordRow, len(records))
	for i, rec := range records {
		rows[i] = dto.RecordRow{SNo: i + 1, Record: rec}
	}
	return &dto.RecordsResponse{SessionID: sessionID, Columns: dto.Columns(), Rows: rows}, nil
}

// Reset empties the session.
func (s *ReportService) Reset(sessionID string) error {
	set, err := s.sessions.Get(sessionID)
	if err != nil {
		return err
	}
	set.Reset()
	log.Info().Str("session", sessionID).Msg("session reset")
	return nil
}

// Render writes the session's consolidated report in format to w.
func (s *ReportService) Render(sessionID string, format renderer.Format, w io.Writer) error {
	set, err := s.sessions.Get(sessionID)
	if err != nil {
		return err
	}
	r, err := renderer.For(format)
	if err != nil {
		return err
	}
	if err := r.Render(w, set.Records(), s.now()); err != nil {
		return fmt.Errorf("failed to render %s: %w", format, err)
	}
	return nil
}

// Today is the date stamped on rendered reports.
func (s *ReportService) Today() time.Time {
	return s.now()
}
