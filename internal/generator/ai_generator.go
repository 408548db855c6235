package generator

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

const (
	DefaultModel     = openai.GPT4
	DefaultMaxTokens = 1000
)

// Options tunes the completion request
type Options struct {
	Model         string
	BaseURL       string
	MaxTokens     int
	DiffCharLimit int
}

// AIGenerator uses OpenAI chat completions to describe pull requests
type AIGenerator struct {
	client    *openai.Client
	logger    *zap.Logger
	model     string
	maxTokens int
	diffLimit int
}

// NewAIGenerator creates a new AI generator
func NewAIGenerator(apiKey string, opts Options, logger *zap.Logger) *AIGenerator {
	cfg := openai.DefaultConfig(apiKey)
	if opts.BaseURL != "" {
		cfg.BaseURL = strings.TrimSuffix(opts.BaseURL, "/")
	}

	if opts.Model == "" {
		opts.Model = DefaultModel
	}
	if opts.MaxTokens <= 0 {
		opts.MaxTokens = DefaultMaxTokens
	}
	if opts.DiffCharLimit <= 0 {
		opts.DiffCharLimit = DefaultDiffCharLimit
	}

	return &AIGenerator{
		client:    openai.NewClientWithConfig(cfg),
		logger:    logger,
		model:     opts.Model,
		maxTokens: opts.MaxTokens,
		diffLimit: opts.DiffCharLimit,
	}
}

// Generate asks the model for a description of the given title and diff
func (g *AIGenerator) Generate(ctx context.Context, title, diff string) (string, error) {
	prompt := buildPrompt(title, diff, g.diffLimit)

	resp, err := g.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: g.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: systemPrompt,
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			MaxTokens: g.maxTokens,
		},
	)
	if err != nil {
		return "", fmt.Errorf("failed to create chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", ErrNoChoices
	}

	description := strings.TrimSpace(resp.Choices[0].Message.Content)
	if description == "" {
		return "", ErrEmptyContent
	}

	g.logger.Info("generated pull request description",
		zap.String("model", g.model),
		zap.Int("prompt_tokens", resp.Usage.PromptTokens),
		zap.Int("completion_tokens", resp.Usage.CompletionTokens),
	)

	return description, nil
}
