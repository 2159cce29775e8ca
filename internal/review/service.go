package review

import (
	"context"
	"errors"
	"strings"

	"github.com/tildaslashalef/pastereview/internal/config"
	"github.com/tildaslashalef/pastereview/internal/llm"
	"github.com/tildaslashalef/pastereview/internal/loggy"
)

// Service runs a single review round trip against an LLM client
type Service struct {
	llmClient llm.Client
	config    *config.Config
	logger    *loggy.Logger
}

// NewService creates a new review service
func NewService(llmClient llm.Client, cfg *config.Config, logger *loggy.Logger) *Service {
	if cfg == nil {
		cfg = config.New()
	}
	if logger == nil {
		logger = loggy.NewDiscardLogger()
	}

	return &Service{
		llmClient: llmClient,
		config:    cfg,
		logger:    logger,
	}
}

// Run validates req, calls the model once and interprets its answer.
// A response that is not a JSON object is returned as Unparsed with a nil error.
func (s *Service) Run(ctx context.Context, req Request) (Result, error) {
	if strings.TrimSpace(req.SourceCode) == "" {
		return nil, ErrEmptyInput
	}

	req = s.withDefaults(req)
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	if s.llmClient == nil {
		return nil, &ConfigurationError{Err: errors.New("no LLM client configured")}
	}

	ctx = loggy.WithLogger(ctx, s.logger)
	ctx = loggy.WithRequestID(ctx, loggy.NewRequestID())
	logger := loggy.FromContext(ctx)

	system, user := BuildWithLanguage(req.Action, req.SourceCode, req.Language)

	logger.Info("Calling Gemini",
		"model", req.Model,
		"action", string(req.Action),
		"language", req.Language,
		"code_length", len(req.SourceCode))

	response, err := s.llmClient.GenerateCompletion(ctx, llm.GenerateRequest{
		Model:            req.Model,
		System:           system,
		Prompt:           user,
		MaxTokens:        req.MaxOutputTokens,
		Temperature:      req.Temperature,
		ResponseMIMEType: llm.JSONMimeType,
	})
	if err != nil {
		logger.WithError(err).Error("Gemini call failed")
		return nil, &TransportError{Err: err}
	}

	result := Interpret(response.Content)
	switch r := result.(type) {
	case Unparsed:
		logger.Warn("Model did not return a JSON object",
			"model", req.Model,
			"response_length", len(r.RawText))
	case Structured:
		logger.Info("Review completed",
			"issues", len(r.Issues),
			"suggestions", len(r.Suggestions),
			"has_fixed_code", r.FixedCode != "",
			"prompt_tokens", response.PromptTokens,
			"completion_tokens", response.CompletionTokens)
	}

	return result, nil
}

// withDefaults fills the model, token limit and fence language from config
func (s *Service) withDefaults(req Request) Request {
	if req.Model == "" {
		req.Model = s.config.Gemini.Model
	}
	if req.MaxOutputTokens == 0 {
		req.MaxOutputTokens = s.config.Gemini.MaxTokens
	}
	if req.Language == "" {
		req.Language = s.config.Review.Language
	}
	return req
}

func validateRequest(req Request) error {
	if !req.Action.Valid() {
		return &ValidationError{Field: "action", Reason: "must be explain, suggest or patch"}
	}
	if !config.IsSupportedModel(req.Model) {
		return &ValidationError{Field: "model", Reason: "unsupported model " + req.Model}
	}
	if err := config.ValidateTemperature(req.Temperature); err != nil {
		return &ValidationError{Field: "temperature", Reason: err.Error()}
	}
	if err := config.ValidateMaxTokens(req.MaxOutputTokens); err != nil {
		return &ValidationError{Field: "max_tokens", Reason: err.Error()}
	}
	return nil
}
