package verification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Request is the payload forwarded to the tampering-detection vendor.
type Request struct {
	DocType   string `json:"doc_type"`
	DocBase64 string `json:"doc_base64"`
	ReqID     string `json:"req_id"`
}

// Result is the vendor's verdict, passed through with minimal translation.
type Result struct {
	Success  bool   `json:"success"`
	Tampered bool   `json:"tampered"`
	Severity string `json:"severity,omitempty"`
	Error    string `json:"error,omitempty"`
}

// Client calls the document-tampering-detection HTTP API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

// NewClient constructs a Client. token is the default credential, used when
// the caller does not supply one per request.
func NewClient(baseURL, token string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 60 * time.Second},
		baseURL:    baseURL,
		token:      token,
	}
}

// Check submits a document for tampering detection. A non-empty token
// overrides the client default, letting callers forward their own
// credential untouched.
func (c *Client) Check(ctx context.Context, req Request, token string) (Result, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return Result{}, fmt.Errorf("encode verification request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		return Result{}, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if token == "" {
		token = c.token
	}
	if token != "" {
		httpReq.Header.Set("token", token)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return Result{}, fmt.Errorf("verification api: %w", err)
	}
	defer resp.Body.Close()

	var result Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return Result{}, fmt.Errorf("decode verification response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		if result.Error != "" {
			return result, fmt.Errorf("verification api status %d: %s", resp.StatusCode, result.Error)
		}
		return result, fmt.Errorf("verification api status %d", resp.StatusCode)
	}
	return result, nil
}
