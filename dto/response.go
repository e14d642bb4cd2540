package dto

import "errors"

var (
	ErrEmptyReport         = errors.New("report text is empty")
	ErrSessionNotFound     = errors.New("session not found")
	ErrUnsupportedDocument = errors.New("unsupported document type")
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// SessionResponse is returned when a reporting session is opened.
type SessionResponse struct {
	SessionID string `json:"session_id"`
}

// RecordRow is a record together with its 1-based position in the session.
type RecordRow struct {
	SNo    int          `json:"sno"`
	Record ReportRecord `json:"record"`
}

// SubmitResponse lists the rows appended by one submission.
type SubmitResponse struct {
	SessionID string      `json:"session_id"`
	Added     []RecordRow `json:"added"`
	Total     int         `json:"total"`
}

// RecordsResponse is the full ordered row list of a session.
type RecordsResponse struct {
	SessionID string      `json:"session_id"`
	Columns   []string    `json:"columns"`
	Rows      []RecordRow `json:"rows"`
}

// ExtractionResult describes how a single report was parsed.
type ExtractionResult struct {
	Strategy  string       `json:"strategy"`
	FillCount int          `json:"fill_count"`
	Base      ReportRecord `json:"base"`
	Record    ReportRecord `json:"record"`
}

// PreviewResponse is returned by the stateless extract endpoint.
type PreviewResponse struct {
	Results []ExtractionResult `json:"results"`
}
