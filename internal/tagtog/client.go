package tagtog

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"time"
)

// Client communicates with the tagtog document and settings APIs.
type Client struct {
	domain     string
	owner      string
	project    string
	username   string
	password   string
	httpClient *http.Client
}

// NewClient builds a tagtog API client. When verifyTLS is false the client
// accepts self-signed certificates, which self-hosted instances commonly use.
func NewClient(domain, owner, project, username, password string, verifyTLS bool) *Client {
	transport := http.DefaultTransport
	if !verifyTLS {
		transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		}
	}
	return &Client{
		domain:   domain,
		owner:    owner,
		project:  project,
		username: username,
		password: password,
		httpClient: &http.Client{
			Timeout:   60 * time.Second,
			Transport: transport,
		},
	}
}

// APIError is a non-2xx response from the tagtog API. Op identifies which
// call failed so callers can decide how to surface it.
type APIError struct {
	Op         string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("tagtog %s: status %d: %s", e.Op, e.StatusCode, truncate(e.Body, 200))
}

func (c *Client) docsEndpoint() string {
	return c.domain + "/-api/documents/v1"
}

func (c *Client) settingsEndpoint() string {
	return c.domain + "/-api/settings/v1"
}

func (c *Client) projectParams() url.Values {
	v := url.Values{}
	v.Set("owner", c.owner)
	v.Set("project", c.project)
	return v
}

// AnnotationsLegend fetches the project's class-id to class-name legend.
func (c *Client) AnnotationsLegend(ctx context.Context) (map[string]string, error) {
	u := c.settingsEndpoint() + "/annotationsLegend?" + c.projectParams().Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.SetBasicAuth(c.username, c.password)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get annotations legend: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, &APIError{Op: "annotationsLegend", StatusCode: resp.StatusCode, Body: string(body)}
	}

	var legend map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&legend); err != nil {
		return nil, fmt.Errorf("decode annotations legend: %w", err)
	}
	return legend, nil
}

// FetchDocument retrieves the plain.html rendering of a document by id.
func (c *Client) FetchDocument(ctx context.Context, docID string) ([]byte, error) {
	params := c.projectParams()
	params.Set("output", "plain.html")
	params.Set("ids", docID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.docsEndpoint()+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.SetBasicAuth(c.username, c.password)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch document %s: %w", docID, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, &APIError{Op: "fetch", StatusCode: resp.StatusCode, Body: string(body)}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read document %s: %w", docID, err)
	}
	return data, nil
}

// ImportAnnotated uploads a pre-annotated document: the plain.html content
// and its ann.json, attached as {docid}.plain.html and {docid}.ann.json.
// The returned string is the response body, useful for diagnostics.
func (c *Client) ImportAnnotated(ctx context.Context, docID string, docHTML, annJSON []byte) (string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("files", docID+".plain.html")
	if err != nil {
		return "", fmt.Errorf("create form file: %w", err)
	}
	if _, err := part.Write(docHTML); err != nil {
		return "", fmt.Errorf("write plain.html part: %w", err)
	}

	part, err = writer.CreateFormFile("files", docID+".ann.json")
	if err != nil {
		return "", fmt.Errorf("create form file: %w", err)
	}
	if _, err := part.Write(annJSON); err != nil {
		return "", fmt.Errorf("write ann.json part: %w", err)
	}

	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("close multipart writer: %w", err)
	}

	params := c.projectParams()
	params.Set("output", "null")
	params.Set("format", "anndoc")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.docsEndpoint()+"?"+params.Encode(), &buf)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.SetBasicAuth(c.username, c.password)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("import document %s: %w", docID, err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return string(body), &APIError{Op: "import", StatusCode: resp.StatusCode, Body: string(body)}
	}
	return string(body), nil
}

// Close releases idle connections.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
