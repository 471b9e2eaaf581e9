package ner

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client calls a spaCy-style NER HTTP service. The service holds the loaded
// pipeline; this client is cheap and shared across requests.
type Client struct {
	baseURL    string
	model      string
	httpClient *http.Client
}

var _ Recognizer = (*Client)(nil)

func NewClient(baseURL, model string) *Client {
	return &Client{
		baseURL: baseURL,
		model:   model,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

func (c *Client) Model() string {
	return c.model
}

type entsRequest struct {
	Text  string `json:"text"`
	Model string `json:"model,omitempty"`
}

type entsResponse struct {
	Model string `json:"model"`
	Ents  []Span `json:"ents"`
}

// Recognize sends text to the NER service and returns the recognized spans
// in service order.
func (c *Client) Recognize(ctx context.Context, text string) ([]Span, error) {
	body, err := json.Marshal(entsRequest{Text: text, Model: c.model})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/ents", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ner service: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ner service status %d: %s", resp.StatusCode, truncate(string(respBody), 200))
	}

	var apiResp entsResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return apiResp.Ents, nil
}

// Check verifies the service is up and has the pipeline loaded. Called once
// at startup; the process must not start serving without a working model.
func (c *Client) Check(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("ner health check: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("ner health check status %d: %s", resp.StatusCode, string(body))
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
