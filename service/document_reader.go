package service

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/Aashish23092/irbn-report-extractor/client"
	"github.com/Aashish23092/irbn-report-extractor/dto"
	"github.com/rs/zerolog/log"
)

// minTextLayer is the number of non-space characters below which a PDF is
// treated as scanned and sent to OCR.
const minTextLayer = 20

// DocumentReader turns an uploaded report file into plain text.
type DocumentReader struct {
	pdf PDFProcessor
	ocr client.OCREngine
}

// NewDocumentReader builds a reader. ocr may be nil, in which case images
// and scanned PDFs are rejected.
func NewDocumentReader(pdf PDFProcessor, ocr client.OCREngine) *DocumentReader {
	return &DocumentReader{pdf: pdf, ocr: ocr}
}

// ReadText dispatches on the file extension of name.
func (r *DocumentReader) ReadText(name string, data []byte, password string) (string, error) {
	ext := strings.ToLower(filepath.Ext(name))
	switch ext {
	case ".txt", ".md":
		if !utf8.Valid(data) {
			return "", fmt.Errorf("%s: not UTF-8 text", name)
		}
		return string(data), nil
	case ".docx":
		return readDocx(data)
	case ".pdf":
		return r.readPDF(name, data, password)
	case ".png", ".jpg", ".jpeg":
		if r.ocr == nil {
			return "", fmt.Errorf("%s: %w: ocr engine not configured", name, dto.ErrUnsupportedDocument)
		}
		text, err := r.ocr.ExtractText(data)
		if err != nil {
			return "", fmt.Errorf("OCR extraction failed: %w", err)
		}
		return text, nil
	default:
		return "", fmt.Errorf("%s: %w", name, dto.ErrUnsupportedDocument)
	}
}

func (r *DocumentReader) readPDF(name string, data []byte, password string) (string, error) {
	text, err := r.pdf.ExtractText(data, password)
	if err != nil {
		log.Warn().Str("file", name).Err(err).Msg("pdf text layer unreadable")
	}
	if countVisible(text) >= minTextLayer {
		return text, nil
	}
	if r.ocr == nil {
		if err != nil {
			return "", err
		}
		return text, nil
	}

	log.Info().Str("file", name).Msg("pdf has no text layer, running ocr on page images")
	images, imgErr := r.pdf.ExtractPageImages(data, password)
	if imgErr != nil {
		return "", fmt.Errorf("failed to read scanned pdf: %w", imgErr)
	}

	var pages []string
	for i, img := range images {
		pageText, ocrErr := r.ocr.ExtractText(img)
		if ocrErr != nil {
			log.Warn().Str("file", name).Int("image", i+1).Err(ocrErr).Msg("ocr failed")
			continue
		}
		pages = append(pages, pageText)
	}
	return strings.Join(pages, "\n"), nil
}

func countVisible(text string) int {
	n := 0
	for _, c := range text {
		if !unicode.IsSpace(c) {
			n++
		}
	}
	return n
}

// readDocx returns the paragraphs of word/document.xml, one per line.
func readDocx(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open docx: %w", err)
	}

	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", fmt.Errorf("failed to open document.xml: %w", err)
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return "", fmt.Errorf("failed to read document.xml: %w", err)
		}

		return docxText(content)
	}
	return "", fmt.Errorf("docx has no word/document.xml")
}

// docxText walks document.xml in order. Run breaks become newlines and run
// tabs become tabs, the way Word shows them.
func docxText(content []byte) (string, error) {
	dec := xml.NewDecoder(bytes.NewReader(content))

	var (
		lines []string
		line  strings.Builder
		inRun bool
		inT   bool
	)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("failed to parse document.xml: %w", err)
		}

		switch el := tok.(type) {
		case xml.StartElement:
			switch el.Name.Local {
			case "r":
				inRun = true
			case "t":
				inT = inRun
			case "br", "cr":
				if inRun {
					line.WriteByte('\n')
				}
			case "tab":
				// tab stops in paragraph properties are not text
				if inRun {
					line.WriteByte('\t')
				}
			}
		case xml.EndElement:
			switch el.Name.Local {
			case "r":
				inRun = false
			case "t":
				inT = false
			case "p":
				lines = append(lines, line.String())
				line.Reset()
			}
		case xml.CharData:
			if inT {
				line.Write(el)
			}
		}
	}
	return strings.Join(lines, "\n"), nil
}
