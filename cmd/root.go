package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"sortmarks/internal/config"
)

// NewRootCmd builds the sortmarks command tree.
func NewRootCmd() *cobra.Command {
	var (
		configPath string
		verbose    bool
	)

	rootCmd := &cobra.Command{
		Use:   "sortmarks",
		Short: "Organize browser bookmarks and split repository names",
		Long: `sortmarks groups an exported bookmarks file into folders using a language model,
and splits concatenated repository names into dictionary words.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Run: func(cmd *cobra.Command, args []string) {
			// If no subcommand is given, print help.
			cmd.Help()
		},
		// PersistentPreRunE runs before any subcommand's RunE
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "help" {
				return nil
			}
			if verbose {
				log.SetLevel(log.DebugLevel)
			}

			// Load configuration once
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			ctx := context.WithValue(cmd.Context(), configKey, cfg)
			cmd.SetContext(ctx)
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ./config.yaml or ~/.config/sortmarks/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(newOrganizeCmd())
	rootCmd.AddCommand(newSplitCmd())
	return rootCmd
}

func Execute() {
	log.SetOutput(os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}

// Define a custom type for the context key to avoid collisions.
type contextKey string

const configKey contextKey = "config"

// GetConfigFromContext returns the configuration loaded by the root command.
func GetConfigFromContext(ctx context.Context) (*config.Config, error) {
	cfg, ok := ctx.Value(configKey).(*config.Config)
	if !ok || cfg == nil {
		// This should not happen if PersistentPreRunE ran successfully
		return nil, fmt.Errorf("configuration not found in context")
	}
	return cfg, nil
}
