package services

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"sortmarks/internal/config"
	"sortmarks/internal/costtracker"
	"sortmarks/internal/models"
)

// ChatMessageRole defines the role of the message sender (system, user, assistant).
type ChatMessageRole string

const (
	ChatMessageRoleSystem    ChatMessageRole = "system"
	ChatMessageRoleUser      ChatMessageRole = "user"
	ChatMessageRoleAssistant ChatMessageRole = "assistant" // "model" for Gemini
)

// ChatMessage represents a single message in a chat conversation.
type ChatMessage struct {
	Role    ChatMessageRole
	Content string
}

// CompletionService defines the interface for generating chat responses.
type CompletionService interface {
	GenerateChatCompletion(ctx context.Context, messages []ChatMessage) (string, error)
	Name() string      // Provider name (e.g., "openai", "gemini")
	ModelName() string // Specific model used
}

// CompletionOptions are the request knobs shared by every provider.
type CompletionOptions struct {
	Model       string
	Temperature float32
	MaxTokens   int
}

// OptionsFromConfig converts the categorization section into request options.
func OptionsFromConfig(cfg config.CategorizationConfig) CompletionOptions {
	return CompletionOptions{
		Model:       cfg.ResolvedModel(),
		Temperature: float32(cfg.Temperature),
		MaxTokens:   cfg.MaxTokens,
	}
}

type operationKey struct{}

// WithOperation tags ctx so usage recorded during the call is attributed to op.
func WithOperation(ctx context.Context, op string) context.Context {
	return context.WithValue(ctx, operationKey{}, op)
}

func operationFrom(ctx context.Context) string {
	if op, ok := ctx.Value(operationKey{}).(string); ok && op != "" {
		return op
	}
	return models.OperationCategorization
}

// usageRecorder is embedded by providers for cost tracking.
type usageRecorder struct {
	costTracker costtracker.CostTracker
	pricing     map[string]config.PricingInfo
}

func (u usageRecorder) record(ctx context.Context, provider, model string, inputTokens, outputTokens int) {
	if u.costTracker == nil || inputTokens+outputTokens == 0 {
		return
	}
	entry := models.UsageLog{
		Timestamp:    time.Now().UTC(),
		ProviderName: provider,
		Operation:    operationFrom(ctx),
		ModelName:    model,
		InputTokens:  inputTokens,
		OutputTokens: outputTokens,
	}
	if price, ok := u.pricing[model]; ok {
		entry.Cost = costtracker.Cost(price, inputTokens, outputTokens)
	} else {
		log.Debugf("Pricing info not found for model '%s'. Recording tokens without cost.", model)
	}
	if err := u.costTracker.RecordUsage(ctx, entry); err != nil {
		log.Errorf("Failed to record AI usage log for %s: %v", entry.Operation, err)
		return
	}
	log.Debugf("Recorded AI usage: Provider=%s, Operation=%s, Model=%s, InputTokens=%d, OutputTokens=%d, Cost=%.8f",
		entry.ProviderName, entry.Operation, entry.ModelName, entry.InputTokens, entry.OutputTokens, entry.Cost)
}
