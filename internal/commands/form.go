package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/tildaslashalef/pastereview/internal/config"
	"github.com/tildaslashalef/pastereview/internal/review"
)

// runForm asks for the code and the review settings, starting from opts
func runForm(opts *reviewOptions) error {
	code := opts.Code
	if code == "" {
		code = defaultCode
	}
	action := opts.Action
	model := opts.Model
	temperature := strconv.FormatFloat(opts.Temperature, 'f', -1, 64)
	maxTokens := strconv.Itoa(opts.MaxTokens)

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title("Paste your code here").
				Lines(16).
				CharLimit(0).
				Value(&code),
			huh.NewSelect[review.Action]().
				Title("Action").
				Options(actionOptions()...).
				Value(&action),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Model").
				Options(huh.NewOptions(config.SupportedModels...)...).
				Value(&model),
			huh.NewInput().
				Title(fmt.Sprintf("Temperature (%.1f-%.1f)", config.MinTemperature, config.MaxTemperature)).
				Value(&temperature).
				Validate(validateTemperature),
			huh.NewInput().
				Title(fmt.Sprintf("Max output tokens (%d-%d)", config.MinMaxTokens, config.MaxMaxTokens)).
				Value(&maxTokens).
				Validate(validateMaxTokens),
		),
	).Run()
	if err != nil {
		return err
	}

	opts.Code = code
	opts.Action = action
	opts.Model = model
	// Both parse; the validators above ran on the same strings
	opts.Temperature, _ = strconv.ParseFloat(strings.TrimSpace(temperature), 64)
	opts.MaxTokens, _ = strconv.Atoi(strings.TrimSpace(maxTokens))
	return nil
}

func actionOptions() []huh.Option[review.Action] {
	actions := review.Actions()
	opts := make([]huh.Option[review.Action], len(actions))
	for i, a := range actions {
		opts[i] = huh.NewOption(a.Label(), a)
	}
	return opts
}

func validateTemperature(s string) error {
	t, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return fmt.Errorf("must be a number")
	}
	return config.ValidateTemperature(t)
}

func validateMaxTokens(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("must be an integer")
	}
	return config.ValidateMaxTokens(n)
}
