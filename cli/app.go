package cli

import (
	"github.com/Aashish23092/irbn-report-extractor/client"
	"github.com/Aashish23092/irbn-report-extractor/config"
	"github.com/Aashish23092/irbn-report-extractor/service"
	"github.com/Aashish23092/irbn-report-extractor/utils"
	"github.com/rs/zerolog/log"
)

// newReportService wires the extraction pipeline from configuration.
func newReportService(cfg *config.Config, rules utils.Rules) *service.ReportService {
	var qa service.QuestionAnswerer
	if cfg.QAModel != "" {
		qa = client.NewQAClient(cfg.QABaseURL, cfg.QAAPIKey, cfg.QAModel, cfg.QATimeout)
		log.Info().Str("model", cfg.QAModel).Msg("qa overlay enabled")
	}

	reader := service.NewDocumentReader(
		service.NewPDFProcessor(),
		client.NewTesseractClient(cfg.TesseractDataPath),
	)
	return service.NewReportService(
		service.NewReportExtractor(rules, qa),
		reader,
		service.NewSessionStore(),
		rules,
	)
}
