package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"sparkmeals/config"
)

const maxUpstreamBody = 1 << 20

// ErrInvalidUpstreamBody is returned when a 2xx reply is not JSON.
var ErrInvalidUpstreamBody = errors.New("whatsapp api returned a non-JSON success body")

// UpstreamResponse is the messaging API's status and JSON body.
type UpstreamResponse struct {
	Status int
	Body   json.RawMessage
}

func (r *UpstreamResponse) OK() bool {
	return r.Status >= 200 && r.Status < 300
}

type WhatsAppClient struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewWhatsAppClient uses an http.Client with cfg.Timeout when httpClient is nil.
func NewWhatsAppClient(cfg config.WhatsAppConfig, httpClient *http.Client) *WhatsAppClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	return &WhatsAppClient{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		http:    httpClient,
	}
}

// Send posts msg to {baseURL}/api/send. A non-2xx status is not an error here;
// a 2xx reply without a JSON body is.
func (c *WhatsAppClient) Send(ctx context.Context, msg WhatsAppMessage) (*UpstreamResponse, error) {
	if c.baseURL == "" {
		return nil, fmt.Errorf("whatsapp api base url is not configured")
	}
	payload, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("marshal whatsapp payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/send", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build whatsapp request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("whatsapp request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxUpstreamBody))
	if err != nil {
		return nil, fmt.Errorf("read whatsapp response: %w", err)
	}
	out := &UpstreamResponse{Status: resp.StatusCode, Body: asJSON(raw)}
	if out.OK() && !json.Valid(bytes.TrimSpace(raw)) {
		return nil, fmt.Errorf("%w: status %d", ErrInvalidUpstreamBody, resp.StatusCode)
	}
	return out, nil
}

// asJSON keeps valid JSON as-is and wraps anything else as a JSON string.
func asJSON(raw []byte) json.RawMessage {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return json.RawMessage("null")
	}
	if json.Valid(trimmed) {
		return json.RawMessage(trimmed)
	}
	quoted, _ := json.Marshal(string(trimmed))
	return json.RawMessage(quoted)
}
