package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// defaultPromptDir is the subdirectory within the user's home directory.
const defaultPromptDir = ".config/sortmarks/prompts"

// LoadPromptContent resolves the path for a prompt template and reads its content.
// An empty path means "use the built-in prompt" and returns "".
// Absolute paths are used directly. Relative paths are tried against the
// working directory first, then as a filename within ~/.config/sortmarks/prompts/.
func LoadPromptContent(configuredPath string) (string, error) {
	if configuredPath == "" {
		return "", nil
	}

	finalPath := configuredPath
	if !filepath.IsAbs(configuredPath) {
		if _, err := os.Stat(configuredPath); err != nil {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get user home directory: %w", err)
			}
			finalPath = filepath.Join(homeDir, defaultPromptDir, configuredPath)
		}
	}

	promptBytes, err := os.ReadFile(finalPath)
	if err != nil {
		if os.IsNotExist(err) && !filepath.IsAbs(configuredPath) {
			return "", fmt.Errorf("prompt file '%s' not found in the working directory or at '%s': %w", configuredPath, finalPath, err)
		}
		return "", fmt.Errorf("failed to read prompt file '%s': %w", finalPath, err)
	}

	return string(promptBytes), nil
}
