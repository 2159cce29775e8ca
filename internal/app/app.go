// Package app provides the application initialization and lifecycle management
package app

import (
	"context"
	"fmt"
	"os"

	"github.com/tildaslashalef/pastereview/internal/config"
	"github.com/tildaslashalef/pastereview/internal/llm"
	"github.com/tildaslashalef/pastereview/internal/loggy"
	"github.com/tildaslashalef/pastereview/internal/review"
	"github.com/urfave/cli/v2"
)

// App represents the application instance with its dependencies
type App struct {
	Config *config.Config
	LLM    *llm.Factory
	logger *loggy.Logger
}

// New initializes a new application instance. apiKey is the explicit
// credential from the command line and may be empty.
func New(apiKey string) (*App, error) {
	cfg, err := initConfig()
	if err != nil {
		return nil, err
	}

	if err := initLogger(cfg); err != nil {
		return nil, err
	}

	loggy.Info("Application initializing",
		"version", os.Getenv("VERSION"),
		"log_level", cfg.Logging.Level,
		"transport", cfg.Gemini.Transport,
		"config_dir", cfg.ConfigDir(),
	)

	return NewWithConfig(cfg, cfg.Credentials(apiKey), loggy.GetGlobalLogger()), nil
}

// NewWithConfig assembles an App from already loaded parts
func NewWithConfig(cfg *config.Config, creds config.CredentialProvider, logger *loggy.Logger) *App {
	if logger == nil {
		logger = loggy.NewDiscardLogger()
	}
	return &App{
		Config: cfg,
		LLM:    llm.NewFactory(cfg, creds, logger),
		logger: logger,
	}
}

// initConfig loads and sets up the application configuration
func initConfig() (*config.Config, error) {
	cfg, err := config.LoadFromEnv("", "")
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	return cfg, nil
}

// initLogger initializes the logging system
func initLogger(cfg *config.Config) error {
	logCfg := loggy.DefaultConfig()
	logCfg.Level = config.ParseLogLevel(cfg.Logging.Level)
	logCfg.AddSource = cfg.Logging.AddSource
	// Empty settings keep the logger defaults
	if cfg.Logging.Format != "" {
		logCfg.Format = cfg.Logging.Format
	}
	if cfg.Logging.Output != "" {
		logCfg.Output = cfg.Logging.Output
	}
	if cfg.Logging.TimeFormat != "" {
		logCfg.TimeFormat = cfg.Logging.TimeFormat
	}

	if err := loggy.Init(logCfg); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	return nil
}

// ReviewService creates the review service for the configured transport.
// Missing credentials and client construction failures come back as a
// *review.ConfigurationError before any remote call.
func (app *App) ReviewService(ctx context.Context) (*review.Service, error) {
	client, clientType, err := app.LLM.GetClient(ctx)
	if err != nil {
		app.logger.WithError(err).Error("Failed to initialize LLM client")
		return nil, &review.ConfigurationError{Err: err}
	}
	app.logger.Debug("Review service ready", "transport", clientType)

	return review.NewService(client, app.Config, app.logger), nil
}

// Shutdown gracefully shuts down the application
func (app *App) Shutdown() error {
	loggy.Info("Shutting down application")

	if err := app.LLM.Close(); err != nil {
		app.logger.WithError(err).Error("Error closing LLM clients")
		return err
	}

	return nil
}

// FromContext retrieves the App instance from the CLI context
func FromContext(c *cli.Context) (*App, error) {
	if c.App.Metadata == nil {
		return nil, fmt.Errorf("app metadata not found in context")
	}

	app, ok := c.App.Metadata["app"].(*App)
	if !ok {
		return nil, fmt.Errorf("app instance not found in context")
	}

	return app, nil
}
