package dto

import "encoding/json"

// SessionResponse is the body returned by the OnDemand session endpoint.
type SessionResponse struct {
	Data struct {
		ID string `json:"_id"`
	} `json:"data"`
}

// MediaObject is the media record returned after an upload. The service
// is not consistent about which text field it fills, so every known
// variant is modeled and the resolver probes them in a fixed order.
// Raw JSON is kept for fields that may be either a string or an object.
type MediaObject struct {
	ActionStatus     string          `json:"actionStatus"`
	FailedReason     string          `json:"failedReason"`
	ExtractedTextURL string          `json:"extractedTextUrl"`
	ExtractedText    json.RawMessage `json:"extractedText"`
	Text             json.RawMessage `json:"text"`
	Content          json.RawMessage `json:"content"`
	OCRText          json.RawMessage `json:"ocrText"`
	ExtractedContent json.RawMessage `json:"extractedContent"`
}

// UploadResponse covers both response shapes the upload endpoint is
// known to produce: the media record nested under "data", or flat at
// the top level.
type UploadResponse struct {
	Data *MediaObject `json:"data"`
	MediaObject
}

// Media returns the media record regardless of which shape was sent.
func (r *UploadResponse) Media() *MediaObject {
	if r.Data != nil {
		return r.Data
	}
	return &r.MediaObject
}

// TopLevelText returns the generic "text" field of the response body.
func (r *UploadResponse) TopLevelText() string {
	return StringifyJSON(r.MediaObject.Text)
}

// AlternateTextFields lists the media text fields in probe order.
func (m *MediaObject) AlternateTextFields() []json.RawMessage {
	return []json.RawMessage{m.Text, m.Content, m.OCRText, m.ExtractedContent}
}

// StringifyJSON converts a raw JSON value to plain text: JSON strings
// are unquoted, anything else keeps its JSON encoding, null and absent
// values become "".
func StringifyJSON(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}
