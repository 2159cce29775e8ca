package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(Config{
		APIKey:       "test-key",
		BaseURL:      server.URL + "/",
		APIVersion:   "v1beta",
		DefaultModel: "gemini-1.5-flash",
		Timeout:      5 * time.Second,
	})
	require.NoError(t, err)
	return client
}

func TestNewClient(t *testing.T) {
	client, err := NewClient(Config{APIKey: "k"})
	require.NoError(t, err)
	assert.Equal(t, "https://generativelanguage.googleapis.com", client.baseURL)
	assert.Equal(t, "v1beta", client.apiVersion)
	assert.Equal(t, time.Duration(0), client.httpClient.Timeout, "no timeout unless configured")

	_, err = NewClient(Config{APIKey: " "})
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestGenerateContent(t *testing.T) {
	client := setupTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1beta/models/gemini-2.0-flash:generateContent", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]any
		if !assert.NoError(t, json.NewDecoder(r.Body).Decode(&body)) {
			return
		}

		genCfg := body["generationConfig"].(map[string]any)
		assert.Equal(t, "application/json", genCfg["responseMimeType"])
		assert.Equal(t, 0.0, genCfg["temperature"], "zero temperature must still be sent")
		assert.Equal(t, 800.0, genCfg["maxOutputTokens"])

		contents := body["contents"].([]any)
		if assert.Len(t, contents, 1) {
			parts := contents[0].(map[string]any)["parts"].([]any)
			if assert.Len(t, parts, 2) {
				assert.Equal(t, "system", parts[0].(map[string]any)["text"])
				assert.Equal(t, "user", parts[1].(map[string]any)["text"])
			}
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"candidates": [{"content": {"role": "model", "parts": [{"text": "{\"summary\":"}, {"text": "\"ok\"}"}]}, "finishReason": "STOP"}],
			"usageMetadata": {"promptTokenCount": 10, "candidatesTokenCount": 4, "totalTokenCount": 14}
		}`))
	})

	resp, err := client.GenerateContent(context.Background(), GenerateRequest{
		Model: "gemini-2.0-flash",
		Contents: []Content{{
			Role:  "user",
			Parts: []Part{{Text: "system"}, {Text: "user"}},
		}},
		GenerationConfig: &GenerationConfig{
			Temperature:      Float64Ptr(0),
			MaxOutputTokens:  800,
			ResponseMimeType: "application/json",
		},
	})
	require.NoError(t, err)
	assert.Equal(t, `{"summary":"ok"}`, resp.Text())
	require.NotNil(t, resp.UsageMetadata)
	assert.Equal(t, 14, resp.UsageMetadata.TotalTokenCount)
}

func TestGenerateContentDefaultModel(t *testing.T) {
	client := setupTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1beta/models/gemini-1.5-flash:generateContent", r.URL.Path)
		_, _ = w.Write([]byte(`{"candidates": []}`))
	})

	resp, err := client.GenerateContent(context.Background(), GenerateRequest{})
	require.NoError(t, err)
	assert.Equal(t, "", resp.Text(), "no candidates yields empty text")
}

func TestGenerateContentAPIError(t *testing.T) {
	client := setupTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error": {"code": 403, "message": "API key not valid", "status": "PERMISSION_DENIED"}}`))
	})

	_, err := client.GenerateContent(context.Background(), GenerateRequest{Model: "gemini-1.5-flash"})
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusForbidden, apiErr.StatusCode)
	assert.Equal(t, "PERMISSION_DENIED", apiErr.ErrorDetail.Status)
	assert.Contains(t, err.Error(), "API key not valid")
}

func TestGenerateContentNoRetry(t *testing.T) {
	calls := 0
	client := setupTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("upstream down"))
	})

	_, err := client.GenerateContent(context.Background(), GenerateRequest{Model: "gemini-1.5-flash"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
	assert.Equal(t, 1, calls, "a failed call is never repeated")
}

func TestGenerateContentCancelled(t *testing.T) {
	client := setupTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.GenerateContent(ctx, GenerateRequest{Model: "gemini-1.5-flash"})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.NotContains(t, err.Error(), "test-key", "API key must not leak into errors")
}

func TestAPIErrorMessage(t *testing.T) {
	assert.Equal(t, "unknown API error", (&APIError{}).Error())
	assert.Equal(t, "bad", (&APIError{ErrorDetail: &ErrorDetails{Message: "bad"}}).Error())
}
