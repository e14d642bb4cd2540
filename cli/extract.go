package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Aashish23092/irbn-report-extractor/dto"
	"github.com/Aashish23092/irbn-report-extractor/renderer"
	"github.com/Aashish23092/irbn-report-extractor/service"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	extractOut      string
	extractFormat   string
	extractPassword string
	extractJSON     bool
)

var extractCmd = &cobra.Command{
	Use:   "extract [files...]",
	Short: "Extract reports from files into one consolidated report",
	Long: `Reads each file (.txt, .md, .docx, .pdf, .png, .jpg) in argument order,
extracts every report it contains and renders the consolidated report.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().StringVarP(&extractOut, "out", "o", "", "write the consolidated report to this file")
	extractCmd.Flags().StringVarP(&extractFormat, "format", "f", "", "output format: xlsx or pdf (default from --out extension)")
	extractCmd.Flags().StringVar(&extractPassword, "password", "", "password for encrypted PDFs")
	extractCmd.Flags().BoolVar(&extractJSON, "json", false, "print the extracted rows as JSON")
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	svc := newReportService(cfg, rules)
	id := svc.CreateSession()

	failed := 0
	for _, path := range args {
		if err := submitFile(cmd, svc, id, path, extractPassword); err != nil {
			log.Warn().Str("file", path).Err(err).Msg("skipped")
			failed++
		}
	}
	if failed == len(args) {
		return errors.New("no report could be extracted")
	}

	rows, err := svc.Records(id)
	if err != nil {
		return err
	}

	if extractOut != "" {
		format, err := outputFormat(extractFormat, extractOut)
		if err != nil {
			return err
		}
		if err := writeReport(svc, id, format, extractOut); err != nil {
			return err
		}
		cmd.Printf("Wrote %d rows to %s\n", len(rows.Rows), extractOut)
	}

	if extractJSON {
		data, err := json.MarshalIndent(rows, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal rows: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}
	if extractOut == "" {
		printRows(cmd, rows.Rows)
	}
	return nil
}

func submitFile(cmd *cobra.Command, svc *service.ReportService, id, path, password string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	_, err = svc.SubmitDocument(cmd.Context(), id, filepath.Base(path), data, password)
	return err
}

// outputFormat prefers an explicit --format, then the file extension.
func outputFormat(flag, path string) (renderer.Format, error) {
	if flag == "" {
		flag = strings.TrimPrefix(filepath.Ext(path), ".")
	}
	return renderer.ParseFormat(flag)
}

func writeReport(svc *service.ReportService, id string, format renderer.Format, path string) error {
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := svc.Render(id, format, f); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}

func printRows(cmd *cobra.Command, rows []dto.RecordRow) {
	if len(rows) == 0 {
		cmd.Println("No reports found.")
		return
	}
	for _, row := range rows {
		cmd.Printf("[%d] %s (%d/%d sections)\n",
			row.SNo, row.Record.Get(dto.FieldUnitName), row.Record.FillCount(), len(dto.BodyFields()))
	}
}
