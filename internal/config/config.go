package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"sortmarks/pkg/segmenter"
)

// Defaults used when neither config.yaml nor the environment sets a value.
const (
	DefaultProvider       = "openai"
	DefaultTemperature    = 0.2
	DefaultMaxTokens      = 2000
	DefaultBatchSize      = 100
	DefaultOutputPath     = "bookmarks_organized.html"
	DefaultDictionaryPath = "dictionary.txt"
	DefaultNamesPath      = "repos.txt"
	DefaultRenamesPath    = "renamed_repos.txt"
	DefaultSeparator      = segmenter.DefaultSeparator
)

// DefaultModels maps a provider to the model used when none is configured.
var DefaultModels = map[string]string{
	"openai": "gpt-3.5-turbo",
	"gemini": "gemini-1.5-flash",
}

// PricingInfo holds cost details per token for a specific model.
type PricingInfo struct {
	InputPerToken  float64 `mapstructure:"input_per_token"`
	OutputPerToken float64 `mapstructure:"output_per_token"`
}

// CategorizationConfig configures the bookmark organizer.
type CategorizationConfig struct {
	Provider       string  `mapstructure:"provider"`        // "openai" or "gemini"
	Model          string  `mapstructure:"model"`           // empty means DefaultModels[Provider]
	Temperature    float64 `mapstructure:"temperature"`
	MaxTokens      int     `mapstructure:"max_tokens"`      // maximum response size
	BatchSize      int     `mapstructure:"batch_size"`
	Retry          bool    `mapstructure:"retry"`           // one corrective retry on unparseable output
	PromptTemplate string  `mapstructure:"prompt_template"` // path to a prompt template, empty for built-in
	OutputPath     string  `mapstructure:"output_path"`
}

// ResolvedModel returns the configured model or the provider default.
func (c CategorizationConfig) ResolvedModel() string {
	if c.Model != "" {
		return c.Model
	}
	return DefaultModels[c.Provider]
}

// SplitConfig configures the repository-name splitter.
type SplitConfig struct {
	Dictionary   string `mapstructure:"dictionary"`
	Input        string `mapstructure:"input"`
	Output       string `mapstructure:"output"`
	Separator    string `mapstructure:"separator"`
	LongestFirst bool   `mapstructure:"longest_first"`
}

type Config struct {
	OpenaiApiKey string `mapstructure:"openai_api_key"`
	GoogleApiKey string `mapstructure:"google_api_key"`

	Categorization CategorizationConfig `mapstructure:"categorization"`
	Split          SplitConfig          `mapstructure:"split"`

	// Pricing: map[provider][model] = struct{input_per_token, output_per_token}
	Pricing map[string]map[string]PricingInfo `mapstructure:"pricing"`
}

// keyDelimiter replaces viper's "." so model names such as "gpt-3.5-turbo"
// survive as pricing keys.
const keyDelimiter = "::"

func key(parts ...string) string {
	return strings.Join(parts, keyDelimiter)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(key("openai_api_key"), "")
	v.SetDefault(key("google_api_key"), "")

	v.SetDefault(key("categorization", "provider"), DefaultProvider)
	v.SetDefault(key("categorization", "model"), "")
	v.SetDefault(key("categorization", "temperature"), DefaultTemperature)
	v.SetDefault(key("categorization", "max_tokens"), DefaultMaxTokens)
	v.SetDefault(key("categorization", "batch_size"), DefaultBatchSize)
	v.SetDefault(key("categorization", "retry"), true)
	v.SetDefault(key("categorization", "prompt_template"), "")
	v.SetDefault(key("categorization", "output_path"), DefaultOutputPath)

	v.SetDefault(key("split", "dictionary"), DefaultDictionaryPath)
	v.SetDefault(key("split", "input"), DefaultNamesPath)
	v.SetDefault(key("split", "output"), DefaultRenamesPath)
	v.SetDefault(key("split", "separator"), DefaultSeparator)
	v.SetDefault(key("split", "longest_first"), false)
}

// LoadConfig builds the configuration once at startup. An explicit path must
// exist; otherwise config.yaml is looked up in the working directory and in
// ~/.config/sortmarks, and is optional. Environment variables override both.
func LoadConfig(path string) (*Config, error) {
	v := viper.NewWithOptions(viper.KeyDelimiter(keyDelimiter))
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "sortmarks"))
		}
	}

	// OPENAI_* and CHUNK_SIZE keep the names used in existing .env files.
	bindings := map[string][]string{
		key("openai_api_key"):                {"OPENAI_API_KEY"},
		key("google_api_key"):                {"GEMINI_API_KEY", "GOOGLE_API_KEY"},
		key("categorization", "provider"):    {"SORTMARKS_PROVIDER"},
		key("categorization", "model"):       {"OPENAI_MODEL"},
		key("categorization", "temperature"): {"OPENAI_TEMPERATURE"},
		key("categorization", "max_tokens"):  {"OPENAI_MAX_TOKENS"},
		key("categorization", "batch_size"):  {"CHUNK_SIZE"},
		key("categorization", "retry"):       {"SORTMARKS_RETRY"},
		key("split", "dictionary"):           {"SORTMARKS_DICTIONARY"},
		key("split", "separator"):            {"SORTMARKS_SEPARATOR"},
	}
	for k, envs := range bindings {
		if err := v.BindEnv(append([]string{k}, envs...)...); err != nil {
			return nil, fmt.Errorf("bind env for %s: %w", k, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		// It's okay if the config file doesn't exist, unless it was asked for explicitly.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || path != "" {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error decoding config: %w", err)
	}
	return &config, nil
}
