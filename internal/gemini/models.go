package gemini

import "strings"

// GenerateRequest is the body of a generateContent call
type GenerateRequest struct {
	Model            string            `json:"-"` // Part of the URL, not the body
	Contents         []Content         `json:"contents"`
	GenerationConfig *GenerationConfig `json:"generationConfig,omitempty"`
}

// GenerationConfig holds sampling and output-format parameters
type GenerationConfig struct {
	Temperature      *float64 `json:"temperature,omitempty"`
	MaxOutputTokens  int      `json:"maxOutputTokens,omitempty"`
	ResponseMimeType string   `json:"responseMimeType,omitempty"`
}

// Content represents content in a chat message
type Content struct {
	Role  string `json:"role,omitempty"`
	Parts []Part `json:"parts"`
}

// Part represents a part of content in a chat message
type Part struct {
	Text string `json:"text,omitempty"`
}

// GenerateResponse is the decoded body of a successful generateContent call
type GenerateResponse struct {
	Candidates     []Candidate     `json:"candidates,omitempty"`
	PromptFeedback *PromptFeedback `json:"promptFeedback,omitempty"`
	UsageMetadata  *UsageMetadata  `json:"usageMetadata,omitempty"`
	ModelVersion   string          `json:"modelVersion,omitempty"`
}

// Text joins the text parts of the first candidate, the same view the
// official SDKs expose as response.text. It is empty when the prompt was
// blocked or no candidate came back.
func (r *GenerateResponse) Text() string {
	if r == nil || len(r.Candidates) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, part := range r.Candidates[0].Content.Parts {
		sb.WriteString(part.Text)
	}
	return sb.String()
}

// Candidate represents a candidate response from the Gemini API
type Candidate struct {
	Content      Content `json:"content"`
	FinishReason string  `json:"finishReason,omitempty"`
}

// PromptFeedback explains why a prompt produced no candidates
type PromptFeedback struct {
	BlockReason string `json:"blockReason,omitempty"`
}

// UsageMetadata contains token usage information for a request
type UsageMetadata struct {
	PromptTokenCount     int `json:"promptTokenCount"`
	CandidatesTokenCount int `json:"candidatesTokenCount"`
	TotalTokenCount      int `json:"totalTokenCount"`
}

// APIError represents an error returned by the Gemini API
type APIError struct {
	StatusCode  int           `json:"-"`
	ErrorDetail *ErrorDetails `json:"error,omitempty"`
}

// ErrorDetails contains details about an API error
type ErrorDetails struct {
	Code    int    `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
	Status  string `json:"status,omitempty"`
}

// Error implements the error interface for APIError
func (e *APIError) Error() string {
	if e.ErrorDetail != nil && e.ErrorDetail.Message != "" {
		if e.ErrorDetail.Status != "" {
			return e.ErrorDetail.Status + ": " + e.ErrorDetail.Message
		}
		return e.ErrorDetail.Message
	}
	return "unknown API error"
}

// Float64Ptr creates a float64 pointer from a value
func Float64Ptr(v float64) *float64 {
	return &v
}
