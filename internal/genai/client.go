// Package genai adapts the Gemini SDK to the single prompt-in, text-out call the services need.
package genai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	gemini "google.golang.org/genai"
)

// MIMEJSON asks the model for a JSON body.
const MIMEJSON = "application/json"

const apiVersion = "v1beta"

var (
	ErrMissingAPIKey = errors.New("genai: api key is not configured")
	ErrEmptyResponse = errors.New("genai: response contained no text")
)

// StatusError reports a non-2xx response.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("genai: unexpected status %d: %s", e.Code, e.Body)
}

// Options tune a single request.
type Options struct {
	ResponseMIMEType string
}

// Client generates text with one configured model.
type Client struct {
	model string
	sdk   *gemini.Client
}

// New builds a client. An empty baseURL keeps the SDK default endpoint.
// A zero timeout leaves requests bounded only by ctx. A missing apiKey is
// not an error here; Generate reports ErrMissingAPIKey instead.
func New(ctx context.Context, baseURL, model, apiKey string, timeout time.Duration) (*Client, error) {
	c := &Client{model: model}
	if apiKey == "" {
		return c, nil
	}

	sdk, err := gemini.NewClient(ctx, &gemini.ClientConfig{
		APIKey:     apiKey,
		Backend:    gemini.BackendGeminiAPI,
		HTTPClient: &http.Client{Timeout: timeout},
		HTTPOptions: gemini.HTTPOptions{
			BaseURL:    strings.TrimRight(baseURL, "/"),
			APIVersion: apiVersion,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("genai: create client: %w", err)
	}
	c.sdk = sdk
	return c, nil
}

// Generate sends prompt and returns the text of the first candidate.
func (c *Client) Generate(ctx context.Context, prompt string, opts Options) (string, error) {
	if c.sdk == nil {
		return "", ErrMissingAPIKey
	}

	var cfg *gemini.GenerateContentConfig
	if opts.ResponseMIMEType != "" {
		cfg = &gemini.GenerateContentConfig{ResponseMIMEType: opts.ResponseMIMEType}
	}

	resp, err := c.sdk.Models.GenerateContent(ctx, c.model, gemini.Text(prompt), cfg)
	if err != nil {
		return "", statusError(err)
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

func statusError(err error) error {
	var apiErr gemini.APIError
	if errors.As(err, &apiErr) {
		return &StatusError{Code: apiErr.Code, Body: apiErr.Message}
	}
	return fmt.Errorf("genai: request failed: %w", err)
}
