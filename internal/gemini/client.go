// Package gemini is a minimal REST client for the Gemini generateContent API.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tildaslashalef/pastereview/internal/loggy"
)

// ErrMissingAPIKey is returned by NewClient when no key is given
var ErrMissingAPIKey = errors.New("gemini: API key is required")

// Client represents a Google Gemini API client
type Client struct {
	apiKey       string
	baseURL      string
	apiVersion   string
	defaultModel string
	httpClient   *http.Client
}

// Config configures the Gemini client
type Config struct {
	APIKey       string        // API key for authentication
	BaseURL      string        // Base URL for Gemini API
	APIVersion   string        // v1 or v1beta
	DefaultModel string        // Model used when a request leaves it empty
	Timeout      time.Duration // HTTP client timeout, 0 means none
	HTTPClient   *http.Client  // Optional; overrides Timeout
}

// NewClient creates a new Gemini client from config
func NewClient(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrMissingAPIKey
	}

	baseURL := strings.TrimSuffix(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://generativelanguage.googleapis.com"
	}

	apiVersion := cfg.APIVersion
	if apiVersion == "" {
		apiVersion = "v1beta"
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	return &Client{
		apiKey:       cfg.APIKey,
		baseURL:      baseURL,
		apiVersion:   apiVersion,
		defaultModel: cfg.DefaultModel,
		httpClient:   httpClient,
	}, nil
}

// GenerateContent performs a single, non-streaming generateContent call.
// Failures are returned as is; the client never retries.
func (c *Client) GenerateContent(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	model := req.Model
	if model == "" {
		model = c.defaultModel
	}
	if model == "" {
		return nil, fmt.Errorf("gemini: model is required")
	}

	var resp GenerateResponse
	if err := c.post(ctx, fmt.Sprintf("models/%s:generateContent", url.PathEscape(model)), req, &resp); err != nil {
		return nil, fmt.Errorf("generating content: %w", err)
	}

	if len(resp.Candidates) == 0 && resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		loggy.FromContext(ctx).Warn("Gemini returned no candidates", "block_reason", resp.PromptFeedback.BlockReason)
	}

	return &resp, nil
}

// post sends requestBody as JSON to path and decodes a 2xx reply into responseBody
func (c *Client) post(ctx context.Context, path string, requestBody, responseBody any) error {
	logger := loggy.FromContext(ctx)
	endpoint := fmt.Sprintf("%s/%s/%s", c.baseURL, c.apiVersion, path)

	payload, err := json.Marshal(requestBody)
	if err != nil {
		return fmt.Errorf("marshalling request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	// Add API key as query parameter
	q := httpReq.URL.Query()
	q.Set("key", c.apiKey)
	httpReq.URL.RawQuery = q.Encode()

	// The URL carries the key, so only the path is logged
	logger.Debug("Sending Gemini request", "path", httpReq.URL.Path, "body_bytes", len(payload))

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("sending request: %w", redactKey(err, c.apiKey))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}

	logger.Debug("Gemini API response",
		"status_code", resp.StatusCode,
		"content_length", len(body),
		"elapsed", time.Since(start))

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		logger.Error("Gemini API error response", "status", resp.Status, "body", string(body))

		apiErr := &APIError{StatusCode: resp.StatusCode}
		if err := json.Unmarshal(body, apiErr); err == nil && apiErr.ErrorDetail != nil {
			return apiErr
		}
		return fmt.Errorf("HTTP error: %s, body: %s", resp.Status, string(body))
	}

	if err := json.Unmarshal(body, responseBody); err != nil {
		return fmt.Errorf("unmarshalling response: %w", err)
	}
	return nil
}

// redactKey strips the API key from transport errors, which embed the URL
func redactKey(err error, key string) error {
	if key == "" || !strings.Contains(err.Error(), key) {
		return err
	}
	return &redactedError{msg: strings.ReplaceAll(err.Error(), key, "REDACTED"), err: err}
}

type redactedError struct {
	msg string
	err error
}

func (e *redactedError) Error() string { return e.msg }

func (e *redactedError) Unwrap() error { return e.err }
