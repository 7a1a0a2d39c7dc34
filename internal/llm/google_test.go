package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaikyMoura/sentinel-cli/internal/domain"
)

func googleTestProvider(t *testing.T, handler http.HandlerFunc) *GoogleProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	p, err := NewGoogleProvider(ProviderConfig{
		APIKey:  "test-key",
		BaseURL: server.URL,
		Model:   "gemini-2.5-pro",
	}, server.Client())
	require.NoError(t, err)
	return p
}

func testRequest() *domain.LLMRequest {
	return &domain.LLMRequest{
		Messages: []domain.LLMMessage{
			{Role: domain.RoleSystem, Content: "act as a reviewer"},
			{Role: domain.RoleUser, Content: "the corpus"},
		},
	}
}

func TestGoogleProvider_Complete(t *testing.T) {
	p := googleTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1beta/models/gemini-2.5-pro:generateContent", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))

		var req googleRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.NotNil(t, req.SystemInstruction)
		assert.Equal(t, "act as a reviewer", req.SystemInstruction.Parts[0].Text)
		require.Len(t, req.Contents, 1)
		assert.Equal(t, "user", req.Contents[0].Role)

		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"candidates": []map[string]interface{}{
				{
					"content": map[string]interface{}{
						"role":  "model",
						"parts": []map[string]string{{"text": "the review"}},
					},
					"finishReason": "STOP",
				},
			},
			"usageMetadata": map[string]int{
				"promptTokenCount":     100,
				"candidatesTokenCount": 20,
				"totalTokenCount":      120,
			},
		})
	})

	resp, err := p.Complete(context.Background(), testRequest())
	require.NoError(t, err)
	assert.Equal(t, "the review", resp.Content)
	assert.Equal(t, "STOP", resp.FinishReason)
	assert.Equal(t, 100, resp.Usage.PromptTokens)
	assert.Equal(t, 120, resp.Usage.TotalTokens)
}

func TestGoogleProvider_AuthFailure(t *testing.T) {
	p := googleTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := p.Complete(context.Background(), testRequest())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrLLMAuthFailed)
}

func TestGoogleProvider_RateLimited(t *testing.T) {
	p := googleTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]interface{}{
				"code":    429,
				"message": "quota exceeded",
				"status":  "RESOURCE_EXHAUSTED",
			},
		})
	})

	_, err := p.Complete(context.Background(), testRequest())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrLLMRateLimited)
	assert.True(t, IsRetryableError(err))
}

func TestGoogleProvider_NoCandidates(t *testing.T) {
	p := googleTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"candidates": []interface{}{}})
	})

	_, err := p.Complete(context.Background(), testRequest())
	require.Error(t, err)

	var llmErr *domain.LLMError
	require.ErrorAs(t, err, &llmErr)
	assert.Equal(t, "google", llmErr.Provider)
}
