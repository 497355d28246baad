package categorizer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"sortmarks/internal/models"
	"sortmarks/internal/services"
)

const systemPrompt = "You help organize bookmarks."

// DefaultPromptTemplate is used when no template is configured.
// {{BOOKMARKS}} is replaced with the batch as indented JSON.
const DefaultPromptTemplate = "You are a bookmark-organizing assistant.  " +
	"Given this list of bookmarks (title and URL), group them into sensible folders.  " +
	"Return strictly valid JSON (no code fences, no extra commentary) whose keys are folder names " +
	"and whose values are lists of {title, url} objects.\n\n{{BOOKMARKS}}"

const bookmarksPlaceholder = "{{BOOKMARKS}}"

// LLMCategorizer implements BatchCategorizer on top of a chat completion
// provider.
type LLMCategorizer struct {
	completer      services.CompletionService
	promptTemplate string
}

// NewLLMCategorizer creates a categorizer. An empty prompt selects
// DefaultPromptTemplate; a template without the {{BOOKMARKS}} placeholder
// gets the batch appended.
func NewLLMCategorizer(completer services.CompletionService, prompt string) *LLMCategorizer {
	if strings.TrimSpace(prompt) == "" {
		prompt = DefaultPromptTemplate
	}
	return &LLMCategorizer{completer: completer, promptTemplate: prompt}
}

func (c *LLMCategorizer) CategorizeBatch(ctx context.Context, req BatchRequest) (string, error) {
	if c.completer == nil {
		return "", fmt.Errorf("LLM categorizer is not initialized with a completion provider")
	}

	prompt, err := c.buildPrompt(req.Bookmarks)
	if err != nil {
		return "", err
	}

	messages := []services.ChatMessage{
		{Role: services.ChatMessageRoleSystem, Content: systemPrompt},
		{Role: services.ChatMessageRoleUser, Content: prompt},
	}
	op := models.OperationCategorization
	if req.IsRetry() {
		if req.PreviousResponse != "" {
			messages = append(messages, services.ChatMessage{Role: services.ChatMessageRoleAssistant, Content: req.PreviousResponse})
		}
		messages = append(messages, services.ChatMessage{Role: services.ChatMessageRoleUser, Content: req.Correction})
		op = models.OperationCategorizationRetry
	}

	return c.completer.GenerateChatCompletion(services.WithOperation(ctx, op), messages)
}

func (c *LLMCategorizer) buildPrompt(batch []models.Bookmark) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if batch == nil {
		batch = []models.Bookmark{}
	}
	if err := enc.Encode(batch); err != nil {
		return "", fmt.Errorf("encode batch: %w", err)
	}
	payload := strings.TrimRight(buf.String(), "\n")

	if !strings.Contains(c.promptTemplate, bookmarksPlaceholder) {
		return c.promptTemplate + "\n\n" + payload, nil
	}
	return strings.ReplaceAll(c.promptTemplate, bookmarksPlaceholder, payload), nil
}

var _ BatchCategorizer = (*LLMCategorizer)(nil)
