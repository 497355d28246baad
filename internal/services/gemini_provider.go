package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	log "github.com/sirupsen/logrus"
	"google.golang.org/api/option"

	"sortmarks/internal/config"
	"sortmarks/internal/costtracker"
	"sortmarks/internal/models"
)

// GeminiProvider implements CompletionService using the Google Gemini API.
type GeminiProvider struct {
	client *genai.Client
	model  *genai.GenerativeModel
	opts   CompletionOptions
	usageRecorder
}

// NewGeminiProvider creates a chat provider backed by the Gemini API.
func NewGeminiProvider(ctx context.Context, apiKey string, opts CompletionOptions, costTracker costtracker.CostTracker, pricing map[string]config.PricingInfo) (*GeminiProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini provider: %w", models.ErrMissingAPIKey)
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(opts.Model)
	model.SetTemperature(opts.Temperature)
	if opts.MaxTokens > 0 {
		model.SetMaxOutputTokens(int32(opts.MaxTokens))
	}

	log.Infof("Gemini provider initialized with model %s", opts.Model)

	return &GeminiProvider{
		client:        client,
		model:         model,
		opts:          opts,
		usageRecorder: usageRecorder{costTracker: costTracker, pricing: pricing},
	}, nil
}

func (p *GeminiProvider) Name() string { return "gemini" }

func (p *GeminiProvider) ModelName() string { return p.opts.Model }

func (p *GeminiProvider) GenerateChatCompletion(ctx context.Context, messages []ChatMessage) (string, error) {
	if p.client == nil {
		return "", fmt.Errorf("Gemini provider is not initialized (missing API key)")
	}

	system, turns := toGeminiContents(messages)
	if len(turns) == 0 {
		return "", errors.New("gemini chat completion needs at least one user message")
	}

	// Per-call copy so the system instruction never leaks between calls.
	model := *p.model
	model.SystemInstruction = system

	cs := model.StartChat()
	cs.History = turns[:len(turns)-1]
	last := turns[len(turns)-1]

	resp, err := cs.SendMessage(ctx, last.Parts...)
	if err != nil {
		return "", fmt.Errorf("gemini chat completion failed: %w", err)
	}

	if resp.UsageMetadata != nil {
		p.record(ctx, p.Name(), p.opts.Model, int(resp.UsageMetadata.PromptTokenCount), int(resp.UsageMetadata.CandidatesTokenCount))
	}

	text := firstCandidateText(resp)
	if text == "" {
		return "", fmt.Errorf("no candidates returned from Gemini: %w", models.ErrEmptyResponse)
	}
	return text, nil
}

// Close releases the underlying client.
func (p *GeminiProvider) Close() error {
	if p.client != nil {
		return p.client.Close()
	}
	return nil
}

// toGeminiContents splits out system messages and folds consecutive turns
// of the same role, since Gemini expects user and model turns to alternate.
func toGeminiContents(messages []ChatMessage) (*genai.Content, []*genai.Content) {
	var system *genai.Content
	var turns []*genai.Content
	for _, m := range messages {
		if m.Role == ChatMessageRoleSystem {
			if system == nil {
				system = &genai.Content{}
			}
			system.Parts = append(system.Parts, genai.Text(m.Content))
			continue
		}
		role := "user"
		if m.Role == ChatMessageRoleAssistant {
			role = "model"
		}
		if n := len(turns); n > 0 && turns[n-1].Role == role {
			turns[n-1].Parts = append(turns[n-1].Parts, genai.Text(m.Content))
			continue
		}
		turns = append(turns, &genai.Content{Role: role, Parts: []genai.Part{genai.Text(m.Content)}})
	}
	return system, turns
}

func firstCandidateText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	for _, cand := range resp.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		var sb strings.Builder
		for _, part := range cand.Content.Parts {
			if t, ok := part.(genai.Text); ok {
				sb.WriteString(string(t))
			}
		}
		return sb.String()
	}
	return ""
}

var _ CompletionService = (*GeminiProvider)(nil)
