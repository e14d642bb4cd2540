package cli

import (
	"fmt"

	"github.com/Aashish23092/irbn-report-extractor/handler"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var servePort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&servePort, "port", "p", "", "listen port (default SERVER_PORT or 8080)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	port := cfg.ServerPort
	if servePort != "" {
		port = servePort
	}
	if !verbose {
		gin.SetMode(gin.ReleaseMode)
	}

	svc := newReportService(cfg, rules)
	router := handler.NewRouter(handler.NewReportHandler(svc, cfg.MaxFileSize))

	log.Info().Str("port", port).Msg("starting IRBn report service")
	if err := router.Run(":" + port); err != nil {
		return fmt.Errorf("server stopped: %w", err)
	}
	return nil
}
