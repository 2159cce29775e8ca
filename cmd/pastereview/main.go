package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/tildaslashalef/pastereview/internal/app"
	"github.com/tildaslashalef/pastereview/internal/commands"
)

// Version information - populated at build time
var (
	Version    = "dev"
	BuildTime  = "unknown"
	CommitHash = "unknown"
	Author     = "unknown"
	Email      = "unknown"
)

var (
	globalFlags = []cli.Flag{
		&cli.StringFlag{
			Name:    "api-key",
			Usage:   "Gemini API key (leave empty to use PASTEREVIEW_GEMINI_API_KEY or GEMINI_API_KEY)",
			EnvVars: []string{"PASTEREVIEW_API_KEY"},
		},
	}
)

// skipsAppInit lists commands that must work even when the configuration is broken
var skipsAppInit = map[string]bool{
	"init": true,
}

func newCLIApp() *cli.App {
	return &cli.App{
		Name:  "pastereview",
		Usage: "AI code reviewer backed by Gemini",
		Description: "pastereview sends a piece of code to Gemini and prints a structured review:\n" +
			"a summary, a list of issues, high-level suggestions and a patched file.\n\n" +
			"When run without subcommands, pastereview performs a review (default action).",
		Version: Version + " (" + CommitHash + ")",
		Compiled: func() time.Time {
			t, err := time.Parse(time.RFC3339, BuildTime)
			if err != nil {
				return time.Now()
			}
			return t
		}(),
		Authors: []*cli.Author{
			{
				Name:  Author,
				Email: Email,
			},
		},
		Flags: append(globalFlags, commands.ReviewFlags()...),
		Before: func(c *cli.Context) error {
			if skipsAppInit[c.Args().First()] {
				return nil
			}

			application, err := app.New(c.String("api-key"))
			if err != nil {
				return fmt.Errorf("failed to initialize application: %w", err)
			}

			// Store the app instance in the context for later use
			c.App.Metadata = map[string]interface{}{
				"app": application,
			}

			return nil
		},
		After: func(c *cli.Context) error {
			if app, ok := c.App.Metadata["app"].(*app.App); ok {
				return app.Shutdown()
			}
			return nil
		},
		Commands: []*cli.Command{
			commands.ReviewCommand(),
			commands.ModelsCommand(),
			commands.InitCommand(),
		},
		Action: func(c *cli.Context) error {
			// Default action is to run the review command
			return commands.ReviewCommand().Action(c)
		},
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newCLIApp().RunContext(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}
