package service

import (
	"context"
	"log"

	"github.com/jansahayak/aadhaar-extraction-server/dto"
)

// textStatus tags the outcome of text resolution.
type textStatus int

const (
	textReady textStatus = iota
	textProcessing
	textFailed
)

// resolveText normalizes the upload response shapes into a single
// plain-text string. Precedence, first hit wins: processing status,
// failed status, hosted text URL, inline extractedText, the top-level
// text field, then the alternate media text fields. A total miss
// yields an empty string, never an error.
func (s *ExtractionService) resolveText(ctx context.Context, resp *dto.UploadResponse) (string, textStatus, string) {
	media := resp.Media()

	switch media.ActionStatus {
	case "processing":
		return "", textProcessing, ""
	case "failed":
		reason := media.FailedReason
		if reason == "" {
			reason = "Extraction failed"
		}
		return "", textFailed, reason
	}

	var text string

	if media.ExtractedTextURL != "" {
		log.Printf("Fetching extracted text from URL: %s", media.ExtractedTextURL)
		fetched, err := s.client.FetchExtractedText(ctx, media.ExtractedTextURL)
		if err != nil {
			// One attempt only; a dead link degrades to the inline fields.
			log.Printf("Error fetching extracted text: %v", err)
		} else {
			text = fetched
		}
	}

	if text == "" {
		text = dto.StringifyJSON(media.ExtractedText)
	}

	if text == "" {
		text = resp.TopLevelText()
	}

	if text == "" {
		for _, field := range media.AlternateTextFields() {
			if v := dto.StringifyJSON(field); v != "" {
				text = v
				break
			}
		}
	}

	return text, textReady, ""
}
