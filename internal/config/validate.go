package config

import (
	"errors"
	"fmt"

	"sortmarks/internal/models"
)

// ValidateCategorization checks everything the organize command needs before
// any work starts, including the credential for the selected provider.
func (c *Config) ValidateCategorization() error {
	cat := c.Categorization

	switch cat.Provider {
	case "openai":
		if c.OpenaiApiKey == "" {
			return fmt.Errorf("%w: set OPENAI_API_KEY in your environment or openai_api_key in config.yaml", models.ErrMissingAPIKey)
		}
	case "gemini":
		if c.GoogleApiKey == "" {
			return fmt.Errorf("%w: set GEMINI_API_KEY in your environment or google_api_key in config.yaml", models.ErrMissingAPIKey)
		}
	default:
		return fmt.Errorf("%w: categorization.provider %q (want \"openai\" or \"gemini\")", models.ErrUnknownProvider, cat.Provider)
	}

	if cat.ResolvedModel() == "" {
		return fmt.Errorf("%w: categorization.model is required", models.ErrValidation)
	}
	if cat.BatchSize <= 0 {
		return fmt.Errorf("%w: categorization.batch_size must be a positive integer, got %d", models.ErrValidation, cat.BatchSize)
	}
	if cat.MaxTokens <= 0 {
		return fmt.Errorf("%w: categorization.max_tokens must be a positive integer, got %d", models.ErrValidation, cat.MaxTokens)
	}
	if cat.Temperature < 0 || cat.Temperature > 2 {
		return fmt.Errorf("%w: categorization.temperature must be between 0 and 2, got %g", models.ErrValidation, cat.Temperature)
	}

	// Pricing is optional, but if present it must be valid.
	for provider, prices := range c.Pricing {
		for model, price := range prices {
			if price.InputPerToken < 0 || price.OutputPerToken < 0 {
				return fmt.Errorf("%w: pricing for provider '%s', model '%s' has negative token cost", models.ErrValidation, provider, model)
			}
		}
	}
	return nil
}

// ValidateSplit checks the splitter settings.
func (c *Config) ValidateSplit() error {
	if c.Split.Dictionary == "" {
		return errors.New("split.dictionary is required")
	}
	return nil
}
