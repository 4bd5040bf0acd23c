package service

import (
	"context"
	"image"
	"log"
	"strings"

	"github.com/jansahayak/aadhaar-extraction-server/client"
	"github.com/jansahayak/aadhaar-extraction-server/dto"
	"github.com/jansahayak/aadhaar-extraction-server/utils"
)

const (
	messageSuccess    = "Data extracted successfully!"
	messageNoFields   = "Could not automatically extract information. Please enter details manually."
	messageProcessing = "Document is still being processed. Please try again in a few moments."

	// Minimum native-text size for a PDF to skip the remote call.
	minPDFTextLen = 50
)

// ExtractionFailed reports that the remote service looked at the
// document and could not process it.
type ExtractionFailed struct {
	Reason string
}

func (e *ExtractionFailed) Error() string {
	return e.Reason
}

// ExtractionService runs the full pipeline for one document: local
// fast paths, session acquisition, upload, text resolution and field
// parsing. It holds no per-request state.
type ExtractionService struct {
	client       *client.OnDemandClient
	pdfProcessor PDFProcessor
}

// NewExtractionService creates a new ExtractionService instance.
func NewExtractionService(onDemandClient *client.OnDemandClient, pdfProcessor PDFProcessor) *ExtractionService {
	return &ExtractionService{
		client:       onDemandClient,
		pdfProcessor: pdfProcessor,
	}
}

// Extract produces a structured record for the uploaded document.
// Failures come back as typed errors (*client.UploadError,
// *client.NetworkError, *ExtractionFailed) for the handler to map;
// everything else is a well-formed result, including "no fields
// matched" and "still processing".
func (s *ExtractionService) Extract(ctx context.Context, payload *dto.DocumentPayload) (*dto.ExtractionResult, error) {
	if result := s.tryLocalExtraction(payload); result != nil {
		return result, nil
	}

	sessionID := s.client.AcquireSession(ctx)

	resp, err := s.client.UploadFile(ctx, payload, sessionID)
	if err != nil {
		return nil, err
	}

	text, status, reason := s.resolveText(ctx, resp)
	switch status {
	case textProcessing:
		return &dto.ExtractionResult{
			Success:       false,
			ExtractedData: dto.AadhaarData{},
			Message:       messageProcessing,
		}, nil
	case textFailed:
		return nil, &ExtractionFailed{Reason: reason}
	}

	log.Printf("Resolved %d characters of extracted text", len(text))

	parsed := utils.ParseAadhaarData(text)
	return buildResult(parsed, text, "ocr"), nil
}

// tryLocalExtraction attempts the PDF text-layer and QR fast paths.
// Any failure falls through to the remote pipeline with a nil return.
func (s *ExtractionService) tryLocalExtraction(payload *dto.DocumentPayload) *dto.ExtractionResult {
	if strings.Contains(payload.MimeType, "pdf") {
		return s.tryLocalPDF(payload.Data)
	}

	img, err := decodeImage(payload.Data)
	if err != nil {
		log.Printf("Image decode failed, deferring to remote extraction: %v", err)
		return nil
	}
	return tryQR(img)
}

func (s *ExtractionService) tryLocalPDF(pdfData []byte) *dto.ExtractionResult {
	pages, err := s.pdfProcessor.PageCount(pdfData)
	if err != nil {
		log.Printf("PDF validation failed, deferring to remote extraction: %v", err)
		return nil
	}
	log.Printf("Processing PDF with %d page(s)", pages)

	// Born-digital PDFs carry a usable text layer; parse it directly.
	if text, err := s.pdfProcessor.ExtractText(pdfData); err == nil && len(strings.TrimSpace(text)) >= minPDFTextLen {
		parsed := utils.ParseAadhaarData(text)
		if parsed.HasData() {
			log.Println("Extracted fields from native PDF text layer")
			return buildResult(parsed, text, "pdf-text")
		}
	}

	// Scanned letters usually carry the secure QR on one of the pages.
	images, err := s.pdfProcessor.ExtractImages(pdfData)
	if err != nil {
		log.Printf("PDF image extraction failed: %v", err)
		return nil
	}
	for i, img := range images {
		if result := tryQR(img); result != nil {
			log.Printf("QR extraction succeeded on page image %d", i+1)
			return result
		}
	}
	return nil
}

func tryQR(img image.Image) *dto.ExtractionResult {
	qrData, err := decodeAadhaarQR(img)
	if err != nil {
		log.Printf("QR extraction failed or no QR found: %v", err)
		return nil
	}

	parsed := qrData.ToAadhaarData()
	if !parsed.HasData() {
		return nil
	}
	log.Println("Successfully extracted data from QR code")
	return buildResult(parsed, "", "qr")
}

// buildResult computes success from the parsed record and picks the
// user-facing message.
func buildResult(parsed dto.AadhaarData, rawText, source string) *dto.ExtractionResult {
	if parsed.HasData() {
		return &dto.ExtractionResult{
			Success:       true,
			ExtractedData: parsed,
			RawText:       rawText,
			Message:       messageSuccess,
			Source:        source,
		}
	}
	return &dto.ExtractionResult{
		Success:       false,
		ExtractedData: parsed,
		RawText:       rawText,
		Message:       messageNoFields,
	}
}
