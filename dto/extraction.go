package dto

import "strings"

// DocumentPayload is a single uploaded document held in memory for the
// duration of one extraction request.
type DocumentPayload struct {
	Data     []byte
	Filename string
	MimeType string
	Size     int64
}

// AadhaarData holds the structured fields parsed from Aadhaar card text.
// All fields are always present; an unmatched field stays an empty string.
type AadhaarData struct {
	Name        string `json:"name"`
	FatherName  string `json:"fatherName"`
	DateOfBirth string `json:"dateOfBirth"`
	IDNumber    string `json:"idNumber"`
	Address     string `json:"address"`
	Gender      string `json:"gender"`
}

// HasData reports whether at least one field carries a non-blank value.
func (d *AadhaarData) HasData() bool {
	fields := []string{d.Name, d.FatherName, d.DateOfBirth, d.IDNumber, d.Address, d.Gender}
	for _, f := range fields {
		if strings.TrimSpace(f) != "" {
			return true
		}
	}
	return false
}

// ExtractionResult is the response body for a completed extraction request.
type ExtractionResult struct {
	Success       bool        `json:"success"`
	ExtractedData AadhaarData `json:"extractedData"`
	RawText       string      `json:"rawText"`
	Message       string      `json:"message"`
	Source        string      `json:"source,omitempty"` // "qr", "pdf-text" or "ocr"
}

// ErrorResponse is the response body for a failed extraction request.
// ExtractedData is always present so clients never see a missing key.
type ErrorResponse struct {
	Success       bool              `json:"success"`
	Error         string            `json:"error"`
	ExtractedData map[string]string `json:"extractedData"`
	Details       interface{}       `json:"details,omitempty"`
}

// NewErrorResponse builds an error body with an empty extractedData object.
func NewErrorResponse(message string) ErrorResponse {
	return ErrorResponse{
		Success:       false,
		Error:         message,
		ExtractedData: map[string]string{},
	}
}
