package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/huh/spinner"
	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v2"

	"github.com/tildaslashalef/pastereview/internal/app"
	"github.com/tildaslashalef/pastereview/internal/config"
	"github.com/tildaslashalef/pastereview/internal/loggy"
	"github.com/tildaslashalef/pastereview/internal/render"
	"github.com/tildaslashalef/pastereview/internal/review"
)

// ReviewFlags are shared by the review command and the default app action
func ReviewFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "file",
			Aliases: []string{"f"},
			Usage:   "Source file to review, '-' reads standard input",
		},
		&cli.StringFlag{
			Name:    "action",
			Aliases: []string{"a"},
			Usage:   "Review action: explain, suggest or patch",
			Value:   string(review.ActionExplain),
		},
		&cli.StringFlag{
			Name:    "model",
			Aliases: []string{"m"},
			Usage:   "Gemini model (default from PASTEREVIEW_GEMINI_MODEL)",
		},
		&cli.Float64Flag{
			Name:    "temperature",
			Aliases: []string{"t"},
			Usage:   fmt.Sprintf("Sampling temperature in [%.1f, %.1f]", config.MinTemperature, config.MaxTemperature),
		},
		&cli.IntFlag{
			Name:  "max-tokens",
			Usage: fmt.Sprintf("Maximum output tokens in [%d, %d]", config.MinMaxTokens, config.MaxMaxTokens),
		},
		&cli.StringFlag{
			Name:    "language",
			Aliases: []string{"l"},
			Usage:   "Code fence language (detected from the file name when omitted)",
		},
		&cli.BoolFlag{
			Name:    "interactive",
			Aliases: []string{"i"},
			Usage:   "Paste code and choose options in a form (default when no file is given on a terminal)",
		},
		&cli.BoolFlag{
			Name:  "json",
			Usage: "Print the result as JSON",
		},
		&cli.BoolFlag{
			Name:  "diff",
			Usage: "Show a unified diff between the code and the patched file",
		},
		&cli.BoolFlag{
			Name:  "copy",
			Usage: "Copy the patched file to the clipboard when the model returns one",
		},
	}
}

// ReviewCommand returns the CLI command that reviews a piece of code
func ReviewCommand() *cli.Command {
	return &cli.Command{
		Name:  "review",
		Usage: "Explain, improve or patch a piece of code with Gemini",
		Description: "Sends the code and the chosen action to Gemini, asking for a JSON review " +
			"with a summary, issues, suggestions and a patched file.",
		Flags:  ReviewFlags(),
		Action: reviewAction,
	}
}

// reviewOptions holds the inputs collected from flags and the form
type reviewOptions struct {
	File        string
	Code        string
	Action      review.Action
	Model       string
	Temperature float64
	MaxTokens   int
	Language    string
	Interactive bool
	JSON        bool
	Diff        bool
	Copy        bool
}

func reviewAction(c *cli.Context) error {
	application, err := app.FromContext(c)
	if err != nil {
		return err
	}

	out := c.App.Writer
	if out == nil {
		out = os.Stdout
	}
	terminal := isTerminal(out)
	renderer := render.New(out, render.Options{Plain: !terminal})
	status := renderer.Status()

	opts, err := optionsFromFlags(c, application.Config)
	if err != nil {
		status.Error(err.Error())
		return cli.Exit("", 1)
	}

	if opts.Interactive {
		if err := runForm(&opts); err != nil {
			return fmt.Errorf("reading form input: %w", err)
		}
	} else {
		code, err := readSource(opts.File, c.App.Reader)
		if err != nil {
			status.Error(err.Error())
			return cli.Exit("", 1)
		}
		opts.Code = code
	}

	if opts.Language == "" {
		opts.Language = review.DetectLanguage(opts.File, []byte(opts.Code), application.Config.Review.Language)
	}

	service, err := application.ReviewService(c.Context)
	if err != nil {
		status.Error(err.Error())
		return cli.Exit("", 1)
	}

	req := review.Request{
		Action:          opts.Action,
		SourceCode:      opts.Code,
		Model:           opts.Model,
		Temperature:     opts.Temperature,
		MaxOutputTokens: opts.MaxTokens,
		Language:        opts.Language,
	}

	result, err := runReview(c.Context, service, req, terminal && !opts.JSON)
	if err != nil {
		if errors.Is(err, review.ErrEmptyInput) {
			status.Warning("Paste some code first.")
			return nil
		}
		status.Error(err.Error())
		return cli.Exit("", 1)
	}

	if opts.JSON {
		err = render.JSON(out, result)
	} else {
		err = renderer.Result(result, opts.Language)
		if structured, ok := result.(review.Structured); err == nil && ok && opts.Diff {
			err = renderer.Diff(opts.File, opts.Code, structured.FixedCode)
		}
	}
	if err != nil {
		return err
	}

	if opts.Copy {
		copyFixedCode(status, result)
	}
	return nil
}

// copyFixedCode puts the patched file on the clipboard. Failures are reported, not fatal.
func copyFixedCode(status *render.Status, result review.Result) {
	structured, ok := result.(review.Structured)
	if !ok || structured.FixedCode == "" {
		status.Warning("Nothing to copy: no patched file returned by the model.")
		return
	}
	if err := copyToClipboard(structured.FixedCode); err != nil {
		status.Warning(fmt.Sprintf("Failed to copy to clipboard: %s", err))
		return
	}
	status.Success("Patched file copied to clipboard")
}

// runReview calls the service, behind a spinner when showSpinner is set
func runReview(ctx context.Context, service *review.Service, req review.Request, showSpinner bool) (review.Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if !showSpinner {
		return service.Run(ctx, req)
	}

	var (
		result review.Result
		runErr error
	)
	err := spinner.New().
		Title("Calling Gemini...").
		Context(ctx).
		Action(func() {
			result, runErr = service.Run(ctx, req)
		}).
		Run()
	if err != nil {
		return nil, err
	}
	return result, runErr
}

// optionsFromFlags merges command line flags over the configured defaults
func optionsFromFlags(c *cli.Context, cfg *config.Config) (reviewOptions, error) {
	action, err := review.ParseAction(c.String("action"))
	if err != nil {
		return reviewOptions{}, err
	}

	opts := reviewOptions{
		File:        c.String("file"),
		Action:      action,
		Model:       cfg.Gemini.Model,
		Temperature: cfg.Gemini.Temperature,
		MaxTokens:   cfg.Gemini.MaxTokens,
		Language:    c.String("language"),
		Interactive: c.Bool("interactive"),
		JSON:        c.Bool("json"),
		Diff:        c.Bool("diff"),
		Copy:        c.Bool("copy"),
	}

	if c.IsSet("model") {
		opts.Model = c.String("model")
	}
	if c.IsSet("temperature") {
		opts.Temperature = c.Float64("temperature")
	}
	if c.IsSet("max-tokens") {
		opts.MaxTokens = c.Int("max-tokens")
	}

	if !c.IsSet("interactive") && opts.File == "" && isTerminal(os.Stdin) {
		opts.Interactive = true
	}

	return opts, nil
}

// readSource reads the code from path, or from stdin when path is "-" or empty
func readSource(path string, stdin io.Reader) (string, error) {
	if path == "" || path == "-" {
		if stdin == nil {
			stdin = os.Stdin
		}
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("reading standard input: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	loggy.Debug("Read source file", "path", path, "bytes", len(data))
	return string(data), nil
}

func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// defaultCode is the starter snippet shown in the form
const defaultCode = `def factorial(n):
    """Return factorial of n (int)."""
    if n <= 1:
        return 1
    return n * factorial(n-1)
`
