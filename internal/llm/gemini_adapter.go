package llm

import (
	"context"
	"fmt"

	"github.com/tildaslashalef/pastereview/internal/config"
	"github.com/tildaslashalef/pastereview/internal/gemini"
)

// geminiClientAdapter adapts the REST Gemini client to the LLM Client interface
type geminiClientAdapter struct {
	client *gemini.Client
}

func newGeminiClientAdapter(cfg config.GeminiConfig, apiKey string) (*geminiClientAdapter, error) {
	client, err := gemini.NewClient(gemini.Config{
		APIKey:       apiKey,
		BaseURL:      cfg.BaseURL,
		APIVersion:   cfg.APIVersion,
		DefaultModel: cfg.Model,
		Timeout:      cfg.Timeout,
	})
	if err != nil {
		return nil, err
	}
	return &geminiClientAdapter{client: client}, nil
}

// GenerateCompletion sends System and Prompt as two text parts of one user
// turn, the layout the review prompt was written for.
func (a *geminiClientAdapter) GenerateCompletion(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	parts := make([]gemini.Part, 0, 2)
	if req.System != "" {
		parts = append(parts, gemini.Part{Text: req.System})
	}
	parts = append(parts, gemini.Part{Text: req.Prompt})

	resp, err := a.client.GenerateContent(ctx, gemini.GenerateRequest{
		Model:    req.Model,
		Contents: []gemini.Content{{Role: "user", Parts: parts}},
		GenerationConfig: &gemini.GenerationConfig{
			Temperature:      gemini.Float64Ptr(req.Temperature),
			MaxOutputTokens:  req.MaxTokens,
			ResponseMimeType: req.ResponseMIMEType,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("gemini generation failed: %w", err)
	}

	out := &GenerateResponse{
		Content: resp.Text(),
		Model:   req.Model,
	}
	if len(resp.Candidates) > 0 {
		out.FinishReason = resp.Candidates[0].FinishReason
	}
	if resp.UsageMetadata != nil {
		out.PromptTokens = resp.UsageMetadata.PromptTokenCount
		out.CompletionTokens = resp.UsageMetadata.CandidatesTokenCount
	}
	return out, nil
}
