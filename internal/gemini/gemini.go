// Package gemini is a minimal client for the Gemini generateContent endpoint.
package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/joshuadavidthomas/bihucal/internal/httpclient"
	"github.com/joshuadavidthomas/bihucal/internal/logging"
)

// ErrNoAPIKey is returned when no key is configured.
var ErrNoAPIKey = errors.New("no Gemini API key found. Set GEMINI_API_KEY or run 'bihucal auth'")

// StatusError is returned for non-2xx responses.
type StatusError struct {
	StatusCode int
	Status     string
	Message    string
}

func (e *StatusError) Error() string {
	if e.Status != "" {
		return fmt.Sprintf("gemini: %d %s: %s", e.StatusCode, e.Status, e.Message)
	}
	return fmt.Sprintf("gemini: %d: %s", e.StatusCode, e.Message)
}

type Client struct {
	http    *httpclient.Client
	apiKey  string
	model   string
	baseURL string
}

type Option func(*Client)

func WithModel(model string) Option {
	return func(c *Client) {
		if model != "" {
			c.model = model
		}
	}
}

func WithBaseURL(base string) Option {
	return func(c *Client) {
		if base != "" {
			c.baseURL = strings.TrimRight(base, "/")
		}
	}
}

// WithTimeout sets the request timeout in seconds.
func WithTimeout(seconds float64) Option {
	return func(c *Client) { c.http = httpclient.NewFromConfig(seconds) }
}

func New(apiKey string, opts ...Option) *Client {
	c := &Client{
		http:    httpclient.New(),
		apiKey:  apiKey,
		model:   "gemini-3-flash-preview",
		baseURL: "https://generativelanguage.googleapis.com",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Model returns the model requests are sent to.
func (c *Client) Model() string { return c.model }

func (c *Client) endpoint() string {
	return fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, url.PathEscape(c.model))
}

// GenerateJSON sends prompt with a JSON response schema and returns the raw
// text of the first candidate. The text is not parsed here.
func (c *Client) GenerateJSON(ctx context.Context, prompt string, schema *Schema) (string, error) {
	if c.apiKey == "" {
		return "", ErrNoAPIKey
	}
	logger := logging.FromContext(ctx)

	req := GenerateContentRequest{
		Contents: []Content{{Role: "user", Parts: []Part{{Text: prompt}}}},
		GenerationConfig: &GenerationConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   schema,
		},
	}

	var out GenerateContentResponse
	resp, err := c.http.PostJSONCtx(ctx, c.endpoint(), req, &out,
		httpclient.WithGoogleAPIKey(c.apiKey),
		httpclient.WithUserAgent("bihucal"),
	)
	if err != nil {
		return "", fmt.Errorf("gemini request: %w", err)
	}
	logger.Debug("gemini response", "model", c.model, "status", resp.StatusCode, "bytes", len(resp.Body))

	if !resp.OK() {
		return "", statusError(resp)
	}
	if resp.JSONErr != nil {
		return "", fmt.Errorf("decoding gemini response: %w (%s)", resp.JSONErr, httpclient.SummarizeBody(resp.Body))
	}
	if len(out.Candidates) == 0 {
		if out.PromptFeedback != nil && out.PromptFeedback.BlockReason != "" {
			return "", fmt.Errorf("gemini blocked the prompt: %s", out.PromptFeedback.BlockReason)
		}
		return "", errors.New("gemini returned no candidates")
	}
	text := out.Text()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("gemini returned an empty answer (finish reason %q)", out.Candidates[0].FinishReason)
	}
	return text, nil
}

func statusError(resp *httpclient.Response) error {
	var apiErr apiErrorResponse
	if json.Unmarshal(resp.Body, &apiErr) == nil && apiErr.Error.Message != "" {
		return &StatusError{StatusCode: resp.StatusCode, Status: apiErr.Error.Status, Message: apiErr.Error.Message}
	}
	return &StatusError{StatusCode: resp.StatusCode, Message: httpclient.SummarizeBody(resp.Body)}
}
