package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaikyMoura/sentinel-cli/internal/config"
	"github.com/kaikyMoura/sentinel-cli/internal/domain"
)

func TestNewProvider(t *testing.T) {
	tests := []struct {
		provider string
		wantName string
		wantErr  error
	}{
		{provider: "google", wantName: "google"},
		{provider: "openai", wantName: "openai"},
		{provider: "anthropic", wantName: "anthropic"},
		{provider: "mistral", wantErr: domain.ErrLLMInvalidProvider},
	}

	for _, tt := range tests {
		t.Run(tt.provider, func(t *testing.T) {
			p, err := NewProvider(ProviderConfig{
				Provider: tt.provider,
				APIKey:   "key",
				Model:    "model",
			})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, p.Name())
		})
	}
}

func TestNewProviderFromConfig_Validation(t *testing.T) {
	_, err := NewProviderFromConfig(&config.LLMConfig{})
	assert.ErrorIs(t, err, domain.ErrLLMNotConfigured)

	_, err = NewProviderFromConfig(&config.LLMConfig{Provider: "google"})
	assert.ErrorIs(t, err, domain.ErrLLMMissingAPIKey)

	_, err = NewProviderFromConfig(&config.LLMConfig{Provider: "google", APIKey: "k"})
	assert.ErrorIs(t, err, domain.ErrLLMMissingModel)

	p, err := NewProviderFromConfig(&config.LLMConfig{Provider: "google", APIKey: "k", Model: "m"})
	require.NoError(t, err)
	assert.Equal(t, "google", p.Name())
}

func TestSystemPrompt_CoversEveryTask(t *testing.T) {
	for _, task := range domain.AllTasks() {
		prompt, ok := SystemPrompt(task)
		assert.True(t, ok, task.String())
		assert.NotEmpty(t, prompt, task.String())
	}

	_, ok := SystemPrompt(domain.Task("bogus"))
	assert.False(t, ok)
}
