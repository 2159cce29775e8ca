package commands

import (
	"github.com/urfave/cli/v2"

	"github.com/tildaslashalef/pastereview/internal/app"
	"github.com/tildaslashalef/pastereview/internal/config"
	"github.com/tildaslashalef/pastereview/internal/render"
)

// ModelsCommand returns the CLI command listing the supported models
func ModelsCommand() *cli.Command {
	return &cli.Command{
		Name:  "models",
		Usage: "List the supported Gemini models",
		Action: func(c *cli.Context) error {
			defaultModel := config.DefaultModel()
			if application, err := app.FromContext(c); err == nil {
				defaultModel = application.Config.Gemini.Model
			}

			render.Models(c.App.Writer, config.SupportedModels, defaultModel, !isTerminal(c.App.Writer))
			return nil
		},
	}
}
