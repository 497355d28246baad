package services

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"
	log "github.com/sirupsen/logrus"

	"sortmarks/internal/config"
	"sortmarks/internal/costtracker"
	"sortmarks/internal/models"
)

// ChatCompletionCreator is the slice of *openai.Client the provider needs.
type ChatCompletionCreator interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// OpenAIProvider implements CompletionService using the OpenAI chat API.
type OpenAIProvider struct {
	client ChatCompletionCreator
	opts   CompletionOptions
	usageRecorder
}

// NewOpenAIProvider creates a chat provider backed by the OpenAI API.
func NewOpenAIProvider(apiKey string, opts CompletionOptions, costTracker costtracker.CostTracker, pricing map[string]config.PricingInfo) (*OpenAIProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("openai provider: %w", models.ErrMissingAPIKey)
	}
	log.Infof("OpenAI provider initialized with model %s", opts.Model)
	return NewOpenAIProviderWithClient(openai.NewClient(apiKey), opts, costTracker, pricing), nil
}

// NewOpenAIProviderWithClient wires an existing client, typically a mock.
func NewOpenAIProviderWithClient(client ChatCompletionCreator, opts CompletionOptions, costTracker costtracker.CostTracker, pricing map[string]config.PricingInfo) *OpenAIProvider {
	return &OpenAIProvider{
		client:        client,
		opts:          opts,
		usageRecorder: usageRecorder{costTracker: costTracker, pricing: pricing},
	}
}

// Name returns the provider name.
func (p *OpenAIProvider) Name() string { return "openai" }

// ModelName returns the specific model identifier.
func (p *OpenAIProvider) ModelName() string { return p.opts.Model }

func (p *OpenAIProvider) GenerateChatCompletion(ctx context.Context, messages []ChatMessage) (string, error) {
	if p.client == nil {
		return "", fmt.Errorf("OpenAI provider is not initialized (missing client)")
	}

	req := openai.ChatCompletionRequest{
		Model:       p.opts.Model,
		Messages:    make([]openai.ChatCompletionMessage, 0, len(messages)),
		Temperature: p.opts.Temperature,
		MaxTokens:   p.opts.MaxTokens,
	}
	for _, m := range messages {
		req.Messages = append(req.Messages, openai.ChatCompletionMessage{
			Role:    string(m.Role),
			Content: m.Content,
		})
	}

	resp, err := p.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("openai chat completion failed: %w", err)
	}

	p.record(ctx, p.Name(), p.opts.Model, resp.Usage.PromptTokens, resp.Usage.CompletionTokens)

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices returned from OpenAI: %w", models.ErrEmptyResponse)
	}
	return resp.Choices[0].Message.Content, nil
}

var _ CompletionService = (*OpenAIProvider)(nil)
