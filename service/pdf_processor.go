package service

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// PDFProcessor pulls report content out of PDF files.
type PDFProcessor interface {
	// ExtractText returns the text layer, one line per text row.
	ExtractText(pdfData []byte, password string) (string, error)
	// ExtractPageImages returns the encoded images embedded in the pages, in
	// page order.
	ExtractPageImages(pdfData []byte, password string) ([][]byte, error)
}

type pdfProcessor struct{}

func NewPDFProcessor() PDFProcessor {
	return &pdfProcessor{}
}

// decrypt returns an unencrypted copy of pdfData when a password is given.
func decrypt(pdfData []byte, password string) ([]byte, error) {
	if password == "" {
		return pdfData, nil
	}
	conf := model.NewDefaultConfiguration()
	conf.UserPW = password
	conf.OwnerPW = password

	var out bytes.Buffer
	if err := api.Decrypt(bytes.NewReader(pdfData), &out, conf); err != nil {
		return nil, fmt.Errorf("failed to decrypt pdf: %w", err)
	}
	return out.Bytes(), nil
}

func (p *pdfProcessor) ExtractText(pdfData []byte, password string) (string, error) {
	data, err := decrypt(pdfData, password)
	if err != nil {
		return "", err
	}

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open pdf: %w", err)
	}

	var textBuilder strings.Builder
	for pageIndex := 1; pageIndex <= r.NumPage(); pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		rows, err := page.GetTextByRow()
		if err != nil {
			continue
		}
		for _, row := range rows {
			for _, word := range row.Content {
				textBuilder.WriteString(word.S)
			}
			textBuilder.WriteString("\n")
		}
	}
	return textBuilder.String(), nil
}

func (p *pdfProcessor) ExtractPageImages(pdfData []byte, password string) ([][]byte, error) {
	data, err := decrypt(pdfData, password)
	if err != nil {
		return nil, err
	}

	tempDir, err := os.MkdirTemp("", "report-pages")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(tempDir)

	inFile := filepath.Join(tempDir, "report.pdf")
	if err := os.WriteFile(inFile, data, 0o600); err != nil {
		return nil, fmt.Errorf("failed to write pdf data: %w", err)
	}
	outDir := filepath.Join(tempDir, "images")
	if err := os.Mkdir(outDir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create image dir: %w", err)
	}

	if err := api.ExtractImagesFile(inFile, outDir, nil, model.NewDefaultConfiguration()); err != nil {
		return nil, fmt.Errorf("failed to extract images: %w", err)
	}

	entries, err := os.ReadDir(outDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read image dir: %w", err)
	}
	// pdfcpu names files <stem>_<page>_<obj>.<ext>
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	var images [][]byte
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		img, err := os.ReadFile(filepath.Join(outDir, entry.Name()))
		if err != nil {
			continue
		}
		images = append(images, img)
	}
	return images, nil
}
