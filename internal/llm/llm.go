// Package llm puts the Gemini transports behind one small interface and
// builds the configured one.
package llm

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/time/rate"

	"github.com/tildaslashalef/pastereview/internal/config"
	"github.com/tildaslashalef/pastereview/internal/loggy"
)

// JSONMimeType asks the model for a JSON-only response body
const JSONMimeType = "application/json"

// GenerateRequest represents a request for text generation
type GenerateRequest struct {
	Model            string  `json:"model"`
	System           string  `json:"system,omitempty"`
	Prompt           string  `json:"prompt"`
	MaxTokens        int     `json:"max_tokens,omitempty"`
	Temperature      float64 `json:"temperature"`
	ResponseMIMEType string  `json:"response_mime_type,omitempty"`
}

// GenerateResponse represents a response from a text generation request
type GenerateResponse struct {
	Content          string `json:"content"`
	Model            string `json:"model"`
	FinishReason     string `json:"finish_reason,omitempty"`
	PromptTokens     int    `json:"prompt_tokens,omitempty"`
	CompletionTokens int    `json:"completion_tokens,omitempty"`
}

// Client defines the interface for LLM clients
type Client interface {
	// GenerateCompletion sends one non-streaming request and returns the text
	GenerateCompletion(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)
}

// ClientType names a transport
type ClientType string

const (
	// REST uses the built-in HTTP client
	REST ClientType = config.TransportREST

	// SDK uses github.com/google/generative-ai-go
	SDK ClientType = config.TransportSDK
)

// Factory creates the configured client and owns its resources
type Factory struct {
	config  *config.Config
	creds   config.CredentialProvider
	logger  *loggy.Logger
	limiter *rate.Limiter

	mu      sync.Mutex
	closers []func() error
}

// newLimiter creates a rate limiter from RPM and burst. rpm <= 0 disables pacing.
func newLimiter(rpm, burst int) *rate.Limiter {
	if burst <= 0 {
		burst = 1
	}
	if rpm <= 0 {
		return rate.NewLimiter(rate.Inf, burst)
	}
	return rate.NewLimiter(rate.Limit(float64(rpm)/60.0), burst)
}

// NewFactory creates a new LLM client factory
func NewFactory(cfg *config.Config, creds config.CredentialProvider, logger *loggy.Logger) *Factory {
	return &Factory{
		config:  cfg,
		creds:   creds,
		logger:  logger,
		limiter: newLimiter(cfg.Gemini.RequestsPerMinute, cfg.Gemini.BurstLimit),
	}
}

// GetClient builds a client for the configured transport. Credential and
// construction failures are returned before any request is made.
func (f *Factory) GetClient(ctx context.Context) (Client, ClientType, error) {
	clientType := ClientType(f.config.Gemini.Transport)
	client, err := f.GetClientOfType(ctx, clientType)
	return client, clientType, err
}

// GetClientOfType builds a client for an explicit transport
func (f *Factory) GetClientOfType(ctx context.Context, clientType ClientType) (Client, error) {
	if f.creds == nil {
		return nil, config.ErrNoCredentials
	}
	apiKey, err := f.creds.APIKey()
	if err != nil {
		return nil, err
	}

	var client Client
	switch clientType {
	case REST, "":
		client, err = newGeminiClientAdapter(f.config.Gemini, apiKey)
	case SDK:
		var sdk *genaiClientAdapter
		sdk, err = newGenaiClientAdapter(ctx, apiKey)
		if err == nil {
			f.addCloser(sdk.Close)
			client = sdk
		}
	default:
		return nil, fmt.Errorf("unknown client type: %s", clientType)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s client: %w", clientType, err)
	}

	f.logger.Info("initialized Gemini client",
		"transport", clientType,
		"model", f.config.Gemini.Model,
		"rpm", f.config.Gemini.RequestsPerMinute)

	return &limitedClient{next: client, limiter: f.limiter}, nil
}

func (f *Factory) addCloser(fn func() error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closers = append(f.closers, fn)
}

// Close releases clients that hold connections
func (f *Factory) Close() error {
	f.mu.Lock()
	closers := f.closers
	f.closers = nil
	f.mu.Unlock()

	var errs []error
	for _, fn := range closers {
		if err := fn(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// limitedClient waits for a limiter token before each call. It never repeats a call.
type limitedClient struct {
	next    Client
	limiter *rate.Limiter
}

func (c *limitedClient) GenerateCompletion(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("waiting for rate limiter: %w", err)
	}
	return c.next.GenerateCompletion(ctx, req)
}
