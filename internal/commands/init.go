package commands

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/tildaslashalef/pastereview/internal/config"
	"github.com/tildaslashalef/pastereview/internal/render"
)

// InitCommand returns the CLI command that writes the default configuration
func InitCommand() *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "Create or reset the pastereview configuration file",
		Description: "Writes a commented .env with every supported setting into ~/.pastereview. " +
			"An existing file is kept as a dated backup. Runs without loading the current configuration.",
		Action: func(c *cli.Context) error {
			status := render.NewStatus(c.App.Writer, !isTerminal(c.App.Writer))

			status.Info("Extracting default configuration file")
			configFilePath, err := config.SetupConfigDirectory("", true)
			if err != nil {
				status.Error(fmt.Sprintf("Failed to set up configuration files: %s", err))
				return fmt.Errorf("failed to set up configuration files: %w", err)
			}

			status.Success("pastereview initialized successfully!")
			status.Info("Configuration file: " + status.Highlight(configFilePath))
			status.Info("Set " + status.Highlight(config.GeminiAPIKeyEnv) + " or PASTEREVIEW_GEMINI_API_KEY, then run " +
				status.Highlight("pastereview --file main.py") + " to review your code.")

			return nil
		},
	}
}
