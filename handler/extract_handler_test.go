package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/jansahayak/aadhaar-extraction-server/client"
	"github.com/jansahayak/aadhaar-extraction-server/dto"
	"github.com/jansahayak/aadhaar-extraction-server/service"
)

func newTestRouter(remoteURL string) *gin.Engine {
	gin.SetMode(gin.TestMode)

	onDemandClient := client.NewOnDemandClient(remoteURL, "test-key")
	extractionService := service.NewExtractionService(onDemandClient, service.NewPDFProcessor())
	extractHandler := NewExtractHandler(extractionService, 10*1024*1024)

	router := gin.New()
	router.POST("/api/extract-aadhar", extractHandler.ExtractAadhaar)
	return router
}

func multipartUpload(t *testing.T, filename, contentType string, data []byte) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, filename))
	header.Set("Content-Type", contentType)

	part, err := writer.CreatePart(header)
	assert.NoError(t, err)
	_, err = part.Write(data)
	assert.NoError(t, err)
	assert.NoError(t, writer.Close())

	return &buf, writer.FormDataContentType()
}

func TestExtractAadhaarNoFile(t *testing.T) {
	router := newTestRouter("http://unused")

	req := httptest.NewRequest(http.MethodPost, "/api/extract-aadhar", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body dto.ErrorResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "No file uploaded", body.Error)
	assert.NotNil(t, body.ExtractedData)
}

func TestExtractAadhaarRejectsUnsupportedType(t *testing.T) {
	router := newTestRouter("http://unused")

	buf, contentType := multipartUpload(t, "notes.txt", "text/plain", []byte("hello"))
	req := httptest.NewRequest(http.MethodPost, "/api/extract-aadhar", buf)
	req.Header.Set("Content-Type", contentType)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExtractAadhaarEndToEnd(t *testing.T) {
	remote := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path == "/media/v1/public/session" {
			w.Write([]byte(`{"data":{"_id":"64a1b2c3d4e5f60718293a4b"}}`))
			return
		}
		w.Write([]byte(`{"data":{"extractedText":"RAJESH KUMAR SHARMA S/O SURESH KUMAR\nDOB: 15/08/1990"}}`))
	}))
	defer remote.Close()

	router := newTestRouter(remote.URL)

	buf, contentType := multipartUpload(t, "aadhaar.png", "image/png", []byte("not-a-real-image"))
	req := httptest.NewRequest(http.MethodPost, "/api/extract-aadhar", buf)
	req.Header.Set("Content-Type", contentType)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var result dto.ExtractionResult
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.True(t, result.Success)
	assert.Equal(t, "RAJESH KUMAR SHARMA", result.ExtractedData.Name)
	assert.Equal(t, "SURESH KUMAR", result.ExtractedData.FatherName)
}

func TestExtractAadhaarRemoteAPIError(t *testing.T) {
	remote := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/media/v1/public/session" {
			w.Write([]byte(`{"data":{"_id":"64a1b2c3d4e5f60718293a4b"}}`))
			return
		}
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"message":"invalid api key"}`))
	}))
	defer remote.Close()

	router := newTestRouter(remote.URL)

	buf, contentType := multipartUpload(t, "aadhaar.png", "image/png", []byte("not-a-real-image"))
	req := httptest.NewRequest(http.MethodPost, "/api/extract-aadhar", buf)
	req.Header.Set("Content-Type", contentType)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	// The remote status and message pass through
	assert.Equal(t, http.StatusForbidden, rec.Code)

	var body dto.ErrorResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Contains(t, body.Error, "API Error (403)")
	assert.Contains(t, body.Error, "invalid api key")
}

func TestExtractAadhaarNetworkError(t *testing.T) {
	router := newTestRouter("http://127.0.0.1:1")

	buf, contentType := multipartUpload(t, "aadhaar.png", "image/png", []byte("not-a-real-image"))
	req := httptest.NewRequest(http.MethodPost, "/api/extract-aadhar", buf)
	req.Header.Set("Content-Type", contentType)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
