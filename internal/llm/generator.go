package llm

import (
	"context"
	"fmt"

	"github.com/kaikyMoura/sentinel-cli/internal/domain"
	"github.com/kaikyMoura/sentinel-cli/internal/utils"
)

// Generator wraps a provider with the task prompt table and retry
// logic. It is the single entry point the router uses: corpus + task in,
// generated text out.
type Generator struct {
	provider domain.LLMProvider
	retrier  *Retrier
	logger   *utils.Logger
}

// GeneratorOptions contains options for creating a Generator
type GeneratorOptions struct {
	Provider domain.LLMProvider
	Retry    RetryConfig
	Logger   *utils.Logger
}

// NewGenerator creates a new Generator
func NewGenerator(opts GeneratorOptions) *Generator {
	logger := opts.Logger
	if logger == nil {
		logger = utils.NewDefaultLogger()
	}
	logger = logger.WithComponent("llm")

	return &Generator{
		provider: opts.Provider,
		retrier:  NewRetrier(opts.Retry, logger),
		logger:   logger,
	}
}

// Provider returns the underlying provider
func (g *Generator) Provider() domain.LLMProvider {
	return g.provider
}

// Generate sends the corpus to the model with the task's system prompt
func (g *Generator) Generate(ctx context.Context, task domain.Task, corpus string) (string, error) {
	prompt, ok := SystemPrompt(task)
	if !ok {
		return "", domain.NewUnknownTaskError(task.String())
	}

	req := &domain.LLMRequest{
		Messages: []domain.LLMMessage{
			{Role: domain.RoleSystem, Content: prompt},
			{Role: domain.RoleUser, Content: "--- Context/Diff ---\n" + corpus},
		},
	}

	g.logger.Info().
		Str("provider", g.provider.Name()).
		Str("task", task.String()).
		Int("corpus_chars", len(corpus)).
		Msg("Sending context to the model")

	var resp *domain.LLMResponse
	err := g.retrier.Execute(ctx, func() error {
		var completeErr error
		resp, completeErr = g.provider.Complete(ctx, req)
		return completeErr
	})
	if err != nil {
		return "", err
	}

	if resp.Content == "" {
		return "", fmt.Errorf("%w (finish reason: %s)", domain.ErrLLMEmptyResponse, resp.FinishReason)
	}

	g.logger.Debug().
		Int("prompt_tokens", resp.Usage.PromptTokens).
		Int("completion_tokens", resp.Usage.CompletionTokens).
		Str("finish_reason", resp.FinishReason).
		Msg("Generation completed")

	return resp.Content, nil
}

// Close releases provider resources
func (g *Generator) Close() error {
	return g.provider.Close()
}
