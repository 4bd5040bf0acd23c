package handler

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jansahayak/aadhaar-extraction-server/client"
	"github.com/jansahayak/aadhaar-extraction-server/dto"
	"github.com/jansahayak/aadhaar-extraction-server/service"
)

// ExtractHandler handles Aadhaar extraction requests.
type ExtractHandler struct {
	extractionService *service.ExtractionService
	maxFileSize       int64
}

// NewExtractHandler creates a new ExtractHandler instance.
func NewExtractHandler(extractionService *service.ExtractionService, maxFileSize int64) *ExtractHandler {
	return &ExtractHandler{
		extractionService: extractionService,
		maxFileSize:       maxFileSize,
	}
}

// ExtractAadhaar handles the POST /api/extract-aadhar endpoint.
func (h *ExtractHandler) ExtractAadhaar(c *gin.Context) {
	log.Println("Received Aadhaar extraction request")

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("No file uploaded"))
		return
	}

	if file.Size > h.maxFileSize {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("File too large. Maximum size is 10 MB."))
		return
	}

	mimeType := file.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = inferMimeType(file.Filename)
	}
	if !isValidMimeType(mimeType) {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("Invalid file type. Only PNG, JPG, and PDF are allowed."))
		return
	}

	reader, err := file.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("Failed to open uploaded file"))
		return
	}
	defer reader.Close()

	fileData, err := io.ReadAll(reader)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("Failed to read file data"))
		return
	}

	payload := &dto.DocumentPayload{
		Data:     fileData,
		Filename: file.Filename,
		MimeType: mimeType,
		Size:     file.Size,
	}
	log.Printf("File info: name=%s size=%d type=%s", payload.Filename, payload.Size, payload.MimeType)

	result, err := h.extractionService.Extract(c.Request.Context(), payload)
	if err != nil {
		h.sendExtractionError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// sendExtractionError maps the typed pipeline failures onto the wire:
// remote API errors keep their status and body, transport failures are
// 503, everything else is 500. The body shape is always well-formed.
func (h *ExtractHandler) sendExtractionError(c *gin.Context, err error) {
	log.Printf("Extraction error: %v", err)

	var failedErr *service.ExtractionFailed
	var uploadErr *client.UploadError
	var netErr *client.NetworkError

	switch {
	case errors.As(err, &failedErr):
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(failedErr.Reason))
	case errors.As(err, &uploadErr):
		resp := dto.NewErrorResponse(fmt.Sprintf("API Error (%d): %s", uploadErr.StatusCode, uploadErr.Message()))
		resp.Details = uploadErr.Details()
		c.JSON(uploadErr.StatusCode, resp)
	case errors.As(err, &netErr):
		c.JSON(http.StatusServiceUnavailable, dto.NewErrorResponse("Network error: Could not connect to OnDemand API."))
	default:
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(err.Error()))
	}
}

// isValidMimeType checks if the MIME type is supported.
func isValidMimeType(mimeType string) bool {
	validTypes := []string{
		"application/pdf",
		"image/png",
		"image/jpeg",
		"image/jpg",
	}

	mimeType = strings.ToLower(mimeType)
	for _, valid := range validTypes {
		if strings.Contains(mimeType, valid) {
			return true
		}
	}
	return false
}

// inferMimeType infers MIME type from file extension.
func inferMimeType(filename string) string {
	lower := strings.ToLower(filename)
	switch {
	case strings.HasSuffix(lower, ".pdf"):
		return "application/pdf"
	case strings.HasSuffix(lower, ".png"):
		return "image/png"
	case strings.HasSuffix(lower, ".jpg"), strings.HasSuffix(lower, ".jpeg"):
		return "image/jpeg"
	}
	return ""
}
