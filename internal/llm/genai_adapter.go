package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// genaiClientAdapter serves requests through the official Go SDK
type genaiClientAdapter struct {
	client *genai.Client
}

func newGenaiClientAdapter(ctx context.Context, apiKey string) (*genaiClientAdapter, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Google client: %w", err)
	}
	return &genaiClientAdapter{client: client}, nil
}

// GenerateCompletion implements the Client interface
func (a *genaiClientAdapter) GenerateCompletion(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	model := a.client.GenerativeModel(req.Model)
	configureModel(model, req)

	parts := make([]genai.Part, 0, 2)
	if req.System != "" {
		parts = append(parts, genai.Text(req.System))
	}
	parts = append(parts, genai.Text(req.Prompt))

	resp, err := model.GenerateContent(ctx, parts...)
	if err != nil {
		return nil, fmt.Errorf("google API error: %w", err)
	}

	return convertGenaiResponse(resp, req.Model), nil
}

// Close releases the SDK's connections
func (a *genaiClientAdapter) Close() error {
	return a.client.Close()
}

func configureModel(model *genai.GenerativeModel, req GenerateRequest) {
	model.SetTemperature(float32(req.Temperature))
	if req.MaxTokens > 0 {
		model.SetMaxOutputTokens(int32(req.MaxTokens))
	}
	model.ResponseMIMEType = req.ResponseMIMEType
}

// convertGenaiResponse joins the text parts of the first candidate
func convertGenaiResponse(resp *genai.GenerateContentResponse, modelName string) *GenerateResponse {
	out := &GenerateResponse{Model: modelName}
	if resp == nil {
		return out
	}

	if resp.UsageMetadata != nil {
		out.PromptTokens = int(resp.UsageMetadata.PromptTokenCount)
		out.CompletionTokens = int(resp.UsageMetadata.CandidatesTokenCount)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return out
	}

	candidate := resp.Candidates[0]
	out.FinishReason = candidate.FinishReason.String()

	var sb strings.Builder
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	out.Content = sb.String()
	return out
}
