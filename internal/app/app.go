package app

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"sortmarks/internal/config"
	"sortmarks/internal/costtracker"
	"sortmarks/internal/models"
	"sortmarks/internal/services"
	"sortmarks/pkg/categorizer"
)

// App holds everything the organize command needs for one run.
type App struct {
	Config            *config.Config
	RunID             uuid.UUID
	CostTracker       costtracker.CostTracker
	CompletionService services.CompletionService
	Categorizer       categorizer.BatchCategorizer
}

// NewApp validates the categorization settings and connects the configured
// provider. A missing credential fails here, before any input is read.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	if err := cfg.ValidateCategorization(); err != nil {
		return nil, err
	}

	runID := uuid.New()
	app := &App{
		Config:      cfg,
		RunID:       runID,
		CostTracker: costtracker.New(runID),
	}

	if err := app.initCompletionService(ctx); err != nil {
		return nil, err
	}
	if err := app.initCategorizer(); err != nil {
		app.Close()
		return nil, err
	}

	log.WithField("run_id", runID).Debugf("Initialized %s provider (model: %s)", app.CompletionService.Name(), app.CompletionService.ModelName())
	return app, nil
}

// NewAppWithCompleter wires an already-built completion service, skipping
// credential checks.
func NewAppWithCompleter(cfg *config.Config, completer services.CompletionService, tracker costtracker.CostTracker) (*App, error) {
	if tracker == nil {
		tracker = costtracker.NewNoop()
	}
	app := &App{
		Config:            cfg,
		RunID:             uuid.New(),
		CostTracker:       tracker,
		CompletionService: completer,
	}
	if err := app.initCategorizer(); err != nil {
		return nil, err
	}
	return app, nil
}

func (a *App) initCompletionService(ctx context.Context) error {
	cfg := a.Config
	opts := services.OptionsFromConfig(cfg.Categorization)
	pricing := cfg.Pricing[cfg.Categorization.Provider]

	var (
		completer services.CompletionService
		err       error
	)
	switch cfg.Categorization.Provider {
	case "openai":
		completer, err = services.NewOpenAIProvider(cfg.OpenaiApiKey, opts, a.CostTracker, pricing)
	case "gemini":
		completer, err = services.NewGeminiProvider(ctx, cfg.GoogleApiKey, opts, a.CostTracker, pricing)
	default:
		return fmt.Errorf("%w: %s", models.ErrUnknownProvider, cfg.Categorization.Provider)
	}
	if err != nil {
		return fmt.Errorf("init %s completion provider: %w", cfg.Categorization.Provider, err)
	}
	a.CompletionService = completer
	return nil
}

func (a *App) initCategorizer() error {
	prompt, err := config.LoadPromptContent(a.Config.Categorization.PromptTemplate)
	if err != nil {
		return fmt.Errorf("load categorization prompt: %w", err)
	}
	a.Categorizer = categorizer.NewLLMCategorizer(a.CompletionService, prompt)
	return nil
}

// Close releases provider resources.
func (a *App) Close() error {
	if closer, ok := a.CompletionService.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			log.Warnf("Error closing completion service: %v", err)
			return err
		}
	}
	return nil
}
