package clix

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sortmarks/internal/config"
)

func TestApplyCategorizationFlags(t *testing.T) {
	flags := pflag.NewFlagSet("organize", pflag.ContinueOnError)
	AddCategorizationFlags(flags)
	require.NoError(t, flags.Parse([]string{"--provider", "gemini", "--batch-size", "25", "--no-retry", "--temperature", "0.9"}))

	cfg := config.CategorizationConfig{Provider: "openai", Model: "gpt-x", BatchSize: 100, MaxTokens: 2000, Retry: true}
	require.NoError(t, ApplyCategorizationFlags(flags, &cfg))

	assert.Equal(t, "gemini", cfg.Provider)
	assert.Equal(t, "gpt-x", cfg.Model, "unchanged flags keep config values")
	assert.Equal(t, 25, cfg.BatchSize)
	assert.Equal(t, 2000, cfg.MaxTokens)
	assert.Equal(t, 0.9, cfg.Temperature)
	assert.False(t, cfg.Retry)
}

func TestApplySplitFlags(t *testing.T) {
	flags := pflag.NewFlagSet("split", pflag.ContinueOnError)
	AddSplitFlags(flags)
	require.NoError(t, flags.Parse([]string{"--dictionary", "words.txt", "-o", "-", "--separator", "", "--longest-first"}))

	cfg := config.SplitConfig{Dictionary: "dictionary.txt", Input: "repos.txt", Output: "renamed_repos.txt", Separator: "_"}
	require.NoError(t, ApplySplitFlags(flags, &cfg))

	assert.Equal(t, "words.txt", cfg.Dictionary)
	assert.Equal(t, "repos.txt", cfg.Input)
	assert.Equal(t, "-", cfg.Output)
	assert.Equal(t, "", cfg.Separator, "an explicitly empty separator is honoured")
	assert.True(t, cfg.LongestFirst)
}

func TestParseInputOutput(t *testing.T) {
	in, out, err := ParseInputOutput([]string{"bookmarks.html"}, "bookmarks_organized.html")
	require.NoError(t, err)
	assert.Equal(t, "bookmarks.html", in)
	assert.Equal(t, "bookmarks_organized.html", out)

	in, out, err = ParseInputOutput([]string{"a.html", "b.html"}, "ignored")
	require.NoError(t, err)
	assert.Equal(t, "a.html", in)
	assert.Equal(t, "b.html", out)

	_, _, err = ParseInputOutput(nil, "x")
	assert.Error(t, err)
}
