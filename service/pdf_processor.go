package service

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// PDFProcessor gives the extraction service a look inside uploaded PDFs
// before any remote call is spent: integrity, the native text layer,
// and page images for QR scanning.
type PDFProcessor interface {
	PageCount(pdfData []byte) (int, error)
	ExtractText(pdfData []byte) (string, error)
	ExtractImages(pdfData []byte) ([]image.Image, error)
}

type pdfProcessor struct{}

func NewPDFProcessor() PDFProcessor {
	return &pdfProcessor{}
}

// PageCount validates the PDF structure and returns its page count.
func (p *pdfProcessor) PageCount(pdfData []byte) (int, error) {
	tempFile, cleanup, err := writeTempPDF(pdfData)
	if err != nil {
		return 0, err
	}
	defer cleanup()

	count, err := api.PageCountFile(tempFile)
	if err != nil {
		return 0, fmt.Errorf("failed to read PDF structure: %w", err)
	}
	return count, nil
}

// ExtractText pulls the native text layer out of every page. Scanned
// documents come back (near) empty; only born-digital PDFs carry one.
func (p *pdfProcessor) ExtractText(pdfData []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(pdfData), int64(len(pdfData)))
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}

	var textBuilder strings.Builder
	for pageIndex := 1; pageIndex <= r.NumPage(); pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		rows, _ := page.GetTextByRow()
		for _, row := range rows {
			for _, word := range row.Content {
				textBuilder.WriteString(word.S)
			}
			textBuilder.WriteString("\n")
		}
	}
	return textBuilder.String(), nil
}

// ExtractImages pulls embedded page images so the QR reader can scan
// them. Pages without decodable images are skipped.
func (p *pdfProcessor) ExtractImages(pdfData []byte) ([]image.Image, error) {
	tempDir, err := os.MkdirTemp("", "aadhaar_pdf_images")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(tempDir)

	tempFile, cleanup, err := writeTempPDF(pdfData)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	conf := model.NewDefaultConfiguration()
	if err := api.ExtractImagesFile(tempFile, tempDir, nil, conf); err != nil {
		return nil, fmt.Errorf("failed to extract page images: %w", err)
	}

	entries, err := os.ReadDir(tempDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read temp dir: %w", err)
	}

	var images []image.Image
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		imgFile, err := os.Open(filepath.Join(tempDir, entry.Name()))
		if err != nil {
			continue
		}
		img, _, err := image.Decode(imgFile)
		imgFile.Close()
		if err != nil {
			continue
		}
		images = append(images, img)
	}
	return images, nil
}

// writeTempPDF stages PDF bytes on disk for pdfcpu's file-based API.
func writeTempPDF(pdfData []byte) (string, func(), error) {
	tempFile, err := os.CreateTemp("", "aadhaar-doc-*.pdf")
	if err != nil {
		return "", nil, fmt.Errorf("failed to create temp file: %w", err)
	}

	if _, err := tempFile.Write(pdfData); err != nil {
		tempFile.Close()
		os.Remove(tempFile.Name())
		return "", nil, fmt.Errorf("failed to write pdf data: %w", err)
	}
	tempFile.Close()

	return tempFile.Name(), func() { os.Remove(tempFile.Name()) }, nil
}
