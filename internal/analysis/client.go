// Package analysis talks to the food analysis service.
package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"

	"github.com/f3rmion/savour/internal/preview"
)

const (
	// DefaultEndpoint is where the analysis service listens by default.
	DefaultEndpoint = "http://localhost:6001"

	// AnalyzePath is the analysis route on the service.
	AnalyzePath = "/analyze_food"
)

// ErrMalformedResponse is returned when the body decodes but carries no
// response text.
var ErrMalformedResponse = errors.New("malformed analysis response")

// Client posts photos to the analysis service.
type Client struct {
	url        string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the HTTP client used for requests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// Request is one analysis submission.
type Request struct {
	Image    preview.File
	Language string
}

// response is the service reply. Only Response is part of the contract.
type response struct {
	Response *string `json:"response"`
	Status   string  `json:"status"`
	Error    string  `json:"error"`
}

// NewClient creates a client for the service at endpoint (scheme and host,
// optionally with a base path).
func NewClient(endpoint string, opts ...Option) (*Client, error) {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}

	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("parsing endpoint: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("endpoint %q must be an http or https URL", endpoint)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("endpoint %q has no host", endpoint)
	}

	// No timeout: a request runs until it settles.
	c := &Client{
		url:        strings.TrimRight(u.String(), "/") + AnalyzePath,
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// URL returns the full analysis URL.
func (c *Client) URL() string {
	return c.url
}

// Analyze uploads the photo and language and returns the analysis text.
// The HTTP status is not inspected: any body exposing a string "response"
// field is a success, anything else is an error.
func (c *Client) Analyze(ctx context.Context, req Request) (string, error) {
	data, err := req.Image.ReadAll()
	if err != nil {
		return "", err
	}

	body, contentType, err := buildMultipart(req, data)
	if err != nil {
		return "", err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, body)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", contentType)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("making request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}

	var apiResp response
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return "", fmt.Errorf("unmarshaling response (status %d): %w", resp.StatusCode, err)
	}

	if apiResp.Response == nil {
		if apiResp.Error != "" {
			return "", fmt.Errorf("%w: status %d: %s", ErrMalformedResponse, resp.StatusCode, apiResp.Error)
		}
		return "", fmt.Errorf("%w: status %d: no response field", ErrMalformedResponse, resp.StatusCode)
	}

	return *apiResp.Response, nil
}

// buildMultipart encodes the image and language fields.
func buildMultipart(req Request, data []byte) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	contentType := req.Image.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename=%q`, req.Image.Name))
	h.Set("Content-Type", contentType)

	part, err := w.CreatePart(h)
	if err != nil {
		return nil, "", fmt.Errorf("creating image part: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, "", fmt.Errorf("writing image part: %w", err)
	}

	if err := w.WriteField("language", req.Language); err != nil {
		return nil, "", fmt.Errorf("writing language field: %w", err)
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("closing multipart body: %w", err)
	}

	return &buf, w.FormDataContentType(), nil
}
