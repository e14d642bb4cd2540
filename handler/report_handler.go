package handler

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/Aashish23092/irbn-report-extractor/dto"
	"github.com/Aashish23092/irbn-report-extractor/renderer"
	"github.com/Aashish23092/irbn-report-extractor/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type ReportHandler struct {
	reportService *service.ReportService
	maxUploadSize int64
}

func NewReportHandler(reportService *service.ReportService, maxUploadSize int64) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
		maxUploadSize: maxUploadSize,
	}
}

// Health handles GET /health
func (h *ReportHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "IRBn Report Extractor",
	})
}

// CreateSession handles POST /sessions
func (h *ReportHandler) CreateSession(c *gin.Context) {
	c.JSON(http.StatusCreated, dto.SessionResponse{SessionID: h.reportService.CreateSession()})
}

// SubmitReport handles POST /sessions/:id/reports
func (h *ReportHandler) SubmitReport(c *gin.Context) {
	var req dto.ExtractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.sendError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	resp, err := h.reportService.Submit(c.Request.Context(), c.Param("id"), req.Text)
	if err != nil {
		h.sendError(c, statusFor(err), "Failed to extract report", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// UploadReport handles POST /sessions/:id/reports/upload
func (h *ReportHandler) UploadReport(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.sendError(c, http.StatusBadRequest, "file is required", nil)
		return
	}

	req := dto.UploadRequest{File: fileHeader, Password: c.PostForm("password")}
	if err := req.Validate(); err != nil {
		h.sendError(c, statusFor(err), "Unsupported document", err)
		return
	}
	if h.maxUploadSize > 0 && fileHeader.Size > h.maxUploadSize {
		h.sendError(c, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("file exceeds %d bytes", h.maxUploadSize), nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.sendError(c, http.StatusBadRequest, "Failed to open file", err)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.sendError(c, http.StatusBadRequest, "Failed to read file", err)
		return
	}

	log.Info().Str("session", c.Param("id")).Str("file", fileHeader.Filename).Int("bytes", len(data)).Msg("document received")
	resp, err := h.reportService.SubmitDocument(c.Request.Context(), c.Param("id"), fileHeader.Filename, data, req.Password)
	if err != nil {
		h.sendError(c, statusFor(err), "Failed to extract document", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListReports handles GET /sessions/:id/reports
func (h *ReportHandler) ListReports(c *gin.Context) {
	resp, err := h.reportService.Records(c.Param("id"))
	if err != nil {
		h.sendError(c, statusFor(err), "Failed to list reports", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ResetReports handles DELETE /sessions/:id/reports
func (h *ReportHandler) ResetReports(c *gin.Context) {
	if err := h.reportService.Reset(c.Param("id")); err != nil {
		h.sendError(c, statusFor(err), "Failed to reset reports", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Export handles GET /sessions/:id/export?format=xlsx|pdf
func (h *ReportHandler) Export(c *gin.Context) {
	format, err := renderer.ParseFormat(c.Query("format"))
	if err != nil {
		h.sendError(c, http.StatusBadRequest, "Unknown format", err)
		return
	}

	var buf bytes.Buffer
	if err := h.reportService.Render(c.Param("id"), format, &buf); err != nil {
		h.sendError(c, statusFor(err), "Failed to render report", err)
		return
	}

	filename := format.FileName(h.reportService.Today())
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, format.ContentType(), buf.Bytes())
}

// Extract handles POST /extract
func (h *ReportHandler) Extract(c *gin.Context) {
	var req dto.ExtractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.sendError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	resp, err := h.reportService.Preview(c.Request.Context(), req.Text)
	if err != nil {
		h.sendError(c, statusFor(err), "Failed to extract report", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, dto.ErrEmptyReport), errors.Is(err, renderer.ErrUnknownFormat):
		return http.StatusBadRequest
	case errors.Is(err, dto.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, dto.ErrUnsupportedDocument):
		return http.StatusUnsupportedMediaType
	default:
		return http.StatusInternalServerError
	}
}

func errorCode(statusCode int) string {
	switch statusCode {
	case http.StatusBadRequest:
		return "INVALID_REQUEST"
	case http.StatusNotFound:
		return "SESSION_NOT_FOUND"
	case http.StatusUnsupportedMediaType:
		return "UNSUPPORTED_DOCUMENT"
	case http.StatusRequestEntityTooLarge:
		return "FILE_TOO_LARGE"
	default:
		return "EXTRACTION_FAILED"
	}
}

// sendError sends a structured error response
func (h *ReportHandler) sendError(c *gin.Context, statusCode int, message string, err error) {
	errorMsg := message
	if errors.Is(err, dto.ErrEmptyReport) {
		errorMsg = "Report text is empty. Paste a report before submitting."
	} else if err != nil {
		errorMsg = err.Error()
	}
	if err != nil {
		log.Warn().Err(err).Int("status", statusCode).Msg(message)
	}

	c.AbortWithStatusJSON(statusCode, dto.ErrorResponse{
		Error:   errorCode(statusCode),
		Message: errorMsg,
		Code:    statusCode,
	})
}
