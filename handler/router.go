package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// NewRouter wires the report API onto a gin engine.
func NewRouter(h *ReportHandler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())

	// Configure max multipart memory (32 MB)
	router.MaxMultipartMemory = 32 << 20

	router.GET("/health", h.Health)

	api := router.Group("/api/v1")
	{
		api.GET("/health", h.Health)
		api.POST("/extract", h.Extract)

		sessions := api.Group("/sessions")
		{
			sessions.POST("", h.CreateSession)
			sessions.POST("/:id/reports", h.SubmitReport)
			sessions.POST("/:id/reports/upload", h.UploadReport)
			sessions.GET("/:id/reports", h.ListReports)
			sessions.DELETE("/:id/reports", h.ResetReports)
			sessions.GET("/:id/export", h.Export)
		}
	}
	return router
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Debug().
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Int("status", c.Writer.Status()).
			Dur("took", time.Since(start)).
			Msg("request")
	}
}
