package dto

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
)

// ExtractRequest carries pasted report text, possibly several reports joined by
// batch delimiter lines.
type ExtractRequest struct {
	Text string `json:"text"`
}

// Validate rejects blank submissions before any extraction runs.
func (r *ExtractRequest) Validate() error {
	if strings.TrimSpace(r.Text) == "" {
		return ErrEmptyReport
	}
	return nil
}

// SupportedDocumentExtensions lists the upload types the ingestion layer understands.
var SupportedDocumentExtensions = []string{".txt", ".md", ".docx", ".pdf", ".png", ".jpg", ".jpeg"}

// UploadRequest is a report submitted as a file.
type UploadRequest struct {
	File     *multipart.FileHeader
	Password string
}

// Validate checks that a file is present and has a supported extension.
func (r *UploadRequest) Validate() error {
	if r.File == nil {
		return fmt.Errorf("file is required")
	}
	if !IsSupportedDocument(r.File.Filename) {
		return fmt.Errorf("%w: %s", ErrUnsupportedDocument, filepath.Ext(r.File.Filename))
	}
	return nil
}

// IsSupportedDocument reports whether filename has one of SupportedDocumentExtensions.
func IsSupportedDocument(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, valid := range SupportedDocumentExtensions {
		if ext == valid {
			return true
		}
	}
	return false
}
