package clix

import (
	"fmt"

	"github.com/spf13/pflag"

	"sortmarks/internal/config"
)

const (
	FlagProvider       = "provider"
	FlagModel          = "model"
	FlagTemperature    = "temperature"
	FlagMaxTokens      = "max-tokens"
	FlagBatchSize      = "batch-size"
	FlagNoRetry        = "no-retry"
	FlagPromptTemplate = "prompt"

	FlagDictionary   = "dictionary"
	FlagInput        = "input"
	FlagOutput       = "output"
	FlagSeparator    = "separator"
	FlagLongestFirst = "longest-first"
	FlagDryRun       = "dry-run"
)

// AddCategorizationFlags registers overrides for the categorization config.
// Defaults are left empty; only flags the user sets are applied.
func AddCategorizationFlags(flags *pflag.FlagSet) {
	flags.String(FlagProvider, "", "categorization provider: openai or gemini")
	flags.String(FlagModel, "", "model identifier (default depends on provider)")
	flags.Float64(FlagTemperature, 0, "sampling temperature")
	flags.Int(FlagMaxTokens, 0, "maximum response size in tokens")
	flags.Int(FlagBatchSize, 0, "bookmarks per categorization request")
	flags.Bool(FlagNoRetry, false, "fall back immediately instead of retrying an unparseable response")
	flags.String(FlagPromptTemplate, "", "path to a prompt template ({{BOOKMARKS}} is replaced with the batch)")
}

// ApplyCategorizationFlags copies changed flags onto cfg.
func ApplyCategorizationFlags(flags *pflag.FlagSet, cfg *config.CategorizationConfig) error {
	var err error
	if flags.Changed(FlagProvider) {
		if cfg.Provider, err = flags.GetString(FlagProvider); err != nil {
			return fmt.Errorf("invalid --%s: %w", FlagProvider, err)
		}
	}
	if flags.Changed(FlagModel) {
		if cfg.Model, err = flags.GetString(FlagModel); err != nil {
			return fmt.Errorf("invalid --%s: %w", FlagModel, err)
		}
	}
	if flags.Changed(FlagTemperature) {
		if cfg.Temperature, err = flags.GetFloat64(FlagTemperature); err != nil {
			return fmt.Errorf("invalid --%s: %w", FlagTemperature, err)
		}
	}
	if flags.Changed(FlagMaxTokens) {
		if cfg.MaxTokens, err = flags.GetInt(FlagMaxTokens); err != nil {
			return fmt.Errorf("invalid --%s: %w", FlagMaxTokens, err)
		}
	}
	if flags.Changed(FlagBatchSize) {
		if cfg.BatchSize, err = flags.GetInt(FlagBatchSize); err != nil {
			return fmt.Errorf("invalid --%s: %w", FlagBatchSize, err)
		}
	}
	if flags.Changed(FlagNoRetry) {
		noRetry, err := flags.GetBool(FlagNoRetry)
		if err != nil {
			return fmt.Errorf("invalid --%s: %w", FlagNoRetry, err)
		}
		cfg.Retry = !noRetry
	}
	if flags.Changed(FlagPromptTemplate) {
		if cfg.PromptTemplate, err = flags.GetString(FlagPromptTemplate); err != nil {
			return fmt.Errorf("invalid --%s: %w", FlagPromptTemplate, err)
		}
	}
	return nil
}

// AddSplitFlags registers overrides for the splitter config.
func AddSplitFlags(flags *pflag.FlagSet) {
	flags.String(FlagDictionary, "", "word list, one word per line, in match priority order (default dictionary.txt)")
	flags.String(FlagInput, "", "names to split, one per line, used when no names are given as arguments (default repos.txt)")
	flags.StringP(FlagOutput, "o", "", "where to write original,segmented pairs; - for stdout (default renamed_repos.txt)")
	flags.String(FlagSeparator, "", "separator placed between matched words (default _)")
	flags.Bool(FlagLongestFirst, false, "try longer dictionary words first instead of dictionary order")
	flags.Bool(FlagDryRun, false, "print a preview table instead of writing the output file")
}

// ApplySplitFlags copies changed flags onto cfg.
func ApplySplitFlags(flags *pflag.FlagSet, cfg *config.SplitConfig) error {
	strs := map[string]*string{
		FlagDictionary: &cfg.Dictionary,
		FlagInput:      &cfg.Input,
		FlagOutput:     &cfg.Output,
		FlagSeparator:  &cfg.Separator,
	}
	for name, dst := range strs {
		if !flags.Changed(name) {
			continue
		}
		v, err := flags.GetString(name)
		if err != nil {
			return fmt.Errorf("invalid --%s: %w", name, err)
		}
		*dst = v
	}
	if flags.Changed(FlagLongestFirst) {
		v, err := flags.GetBool(FlagLongestFirst)
		if err != nil {
			return fmt.Errorf("invalid --%s: %w", FlagLongestFirst, err)
		}
		cfg.LongestFirst = v
	}
	return nil
}

// ParseInputOutput reads "<input> [output]" positional arguments.
func ParseInputOutput(args []string, defaultOutput string) (input, output string, err error) {
	switch len(args) {
	case 1:
		return args[0], defaultOutput, nil
	case 2:
		return args[0], args[1], nil
	default:
		return "", "", fmt.Errorf("expected <input.html> [output.html], got %d arguments", len(args))
	}
}
