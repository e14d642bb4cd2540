package client

import (
	"fmt"

	"github.com/otiai10/gosseract/v2"
	"github.com/rs/zerolog/log"
)

// OCREngine turns an encoded image into text.
type OCREngine interface {
	ExtractText(image []byte) (string, error)
}

// TesseractClient runs Tesseract over report screenshots and scanned pages.
type TesseractClient struct {
	dataPath string
	language string
}

func NewTesseractClient(dataPath string) *TesseractClient {
	return &TesseractClient{
		dataPath: dataPath,
		language: "eng",
	}
}

// ExtractText recognises the text of an encoded PNG or JPEG image.
func (tc *TesseractClient) ExtractText(image []byte) (string, error) {
	client := gosseract.NewClient()
	defer client.Close()

	if tc.dataPath != "" {
		client.SetTessdataPrefix(tc.dataPath)
	}
	if err := client.SetLanguage(tc.language); err != nil {
		return "", fmt.Errorf("failed to set language: %w", err)
	}
	// keep the report's column layout
	if err := client.SetPageSegMode(gosseract.PSM_AUTO); err != nil {
		return "", fmt.Errorf("failed to set page segmentation: %w", err)
	}
	if err := client.SetImageFromBytes(image); err != nil {
		return "", fmt.Errorf("failed to set image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("failed to extract text: %w", err)
	}
	log.Debug().Int("bytes", len(image)).Int("chars", len(text)).Msg("ocr done")
	return text, nil
}
