package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"math/rand"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strconv"
	"strings"
	"time"

	"github.com/jansahayak/aadhaar-extraction-server/dto"
)

const (
	sessionPath = "/media/v1/public/session"
	uploadPath  = "/media/v1/public/file/raw"

	// Identity stamped on OnDemand session and media records.
	identityLabel = "Jan Sahayak"

	// Upload name used when the original filename is missing.
	defaultFileLabel = "Aadhar_Card"

	sessionIDLength = 24
)

// OnDemandClient talks to the OnDemand media extraction API. Session
// creation uses a short timeout, uploads a long one; text fetches reuse
// the session client.
type OnDemandClient struct {
	baseURL       string
	apiKey        string
	sessionClient *http.Client
	uploadClient  *http.Client
}

// NewOnDemandClient creates a client for the given API endpoint and key.
func NewOnDemandClient(baseURL, apiKey string) *OnDemandClient {
	return &OnDemandClient{
		baseURL:       strings.TrimRight(baseURL, "/"),
		apiKey:        apiKey,
		sessionClient: &http.Client{Timeout: 30 * time.Second},
		uploadClient:  &http.Client{Timeout: 120 * time.Second},
	}
}

// AcquireSession returns a session ID for the next upload. It never
// fails: when the service cannot issue one, a locally generated
// ObjectId-like token is used instead.
func (c *OnDemandClient) AcquireSession(ctx context.Context) string {
	sessionID, err := c.CreateSession(ctx)
	if err != nil {
		log.Printf("Failed to create session: %v. Using generated session ID.", err)
		return generateSessionID()
	}
	log.Printf("Session created: %s", sessionID)
	return sessionID
}

// CreateSession asks the OnDemand API for a new session.
func (c *OnDemandClient) CreateSession(ctx context.Context) (string, error) {
	body, err := json.Marshal(map[string]string{
		"createdBy": identityLabel,
		"updatedBy": identityLabel,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal session request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+sessionPath, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build session request: %w", err)
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.sessionClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("session request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		respBody, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("session endpoint returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var session dto.SessionResponse
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return "", fmt.Errorf("failed to decode session response: %w", err)
	}
	if session.Data.ID == "" {
		return "", errors.New("session response missing identifier")
	}
	return session.Data.ID, nil
}

// generateSessionID builds an ObjectId-like token: hex Unix seconds,
// then two random hex runs, fixed to exactly 24 lowercase hex chars.
func generateSessionID() string {
	timestamp := fmt.Sprintf("%08x", time.Now().Unix())
	random1 := fmt.Sprintf("%08x", rand.Uint32())
	random2 := fmt.Sprintf("%06x", rand.Intn(0x1000000))

	id := timestamp + random1 + random2
	if len(id) > sessionIDLength {
		return id[:sessionIDLength]
	}
	return id + strings.Repeat("0", sessionIDLength-len(id))
}

// UploadFile submits the document to the OnDemand API. If the first
// attempt fails with a server error that blames the session, a fresh
// session is acquired and the upload is retried exactly once. Any other
// failure, or a second failure, is returned as-is.
func (c *OnDemandClient) UploadFile(ctx context.Context, payload *dto.DocumentPayload, sessionID string) (*dto.UploadResponse, error) {
	log.Printf("Uploading file %q (%d bytes) with session ID: %s", payload.Filename, payload.Size, sessionID)

	resp, err := c.postMultipart(ctx, payload, sessionID)
	if err == nil {
		return resp, nil
	}

	var uploadErr *UploadError
	if errors.As(err, &uploadErr) && uploadErr.StatusCode >= http.StatusInternalServerError && uploadErr.MentionsSession() {
		log.Println("Session error detected. Creating new session and retrying...")
		freshID := c.AcquireSession(ctx)
		return c.postMultipart(ctx, payload, freshID)
	}

	return nil, err
}

// postMultipart performs a single multipart upload attempt.
func (c *OnDemandClient) postMultipart(ctx context.Context, payload *dto.DocumentPayload, sessionID string) (*dto.UploadResponse, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="file"; filename="%s"`, escapeQuotes(payload.Filename)))
	header.Set("Content-Type", payload.MimeType)

	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, fmt.Errorf("failed to create file part: %w", err)
	}
	if _, err := part.Write(payload.Data); err != nil {
		return nil, fmt.Errorf("failed to write file part: %w", err)
	}

	uploadName := payload.Filename
	if uploadName == "" {
		uploadName = defaultFileLabel
	}

	fields := map[string]string{
		"createdBy":    identityLabel,
		"updatedBy":    identityLabel,
		"name":         uploadName,
		"sessionId":    sessionID,
		"sizeBytes":    strconv.FormatInt(payload.Size, 10),
		"responseMode": "sync",
	}
	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			return nil, fmt.Errorf("failed to write field %q: %w", name, err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+uploadPath, &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to build upload request: %w", err)
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.uploadClient.Do(req)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	// A response arrived, so a failed body read is not a connection
	// failure and must not trigger the session retry path.
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload response: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, &UploadError{StatusCode: resp.StatusCode, Body: respBody}
	}

	// Non-JSON success bodies degrade to an empty media record; the
	// caller then reports that no fields could be extracted.
	var upload dto.UploadResponse
	if err := json.Unmarshal(respBody, &upload); err != nil {
		log.Printf("Upload response body is not JSON (%d bytes), continuing with empty text", len(respBody))
		return &dto.UploadResponse{}, nil
	}

	log.Printf("Upload succeeded with status %d", resp.StatusCode)
	return &upload, nil
}

// FetchExtractedText downloads externally hosted extraction output.
// JSON string bodies are unquoted; anything else is returned verbatim.
func (c *OnDemandClient) FetchExtractedText(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build text fetch request: %w", err)
	}

	resp, err := c.sessionClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("text fetch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return "", fmt.Errorf("text fetch returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read text body: %w", err)
	}

	var s string
	if err := json.Unmarshal(body, &s); err == nil {
		return s, nil
	}
	return string(body), nil
}

func escapeQuotes(s string) string {
	return strings.NewReplacer("\\", "\\\\", `"`, "\\\"").Replace(s)
}
