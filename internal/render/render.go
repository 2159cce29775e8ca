// Package render prints review results to a terminal or as JSON
package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/muesli/reflow/wordwrap"
	"github.com/tildaslashalef/pastereview/internal/loggy"
	"github.com/tildaslashalef/pastereview/internal/review"
)

// Messages shown for empty or degraded results
const (
	MsgInvalidJSON   = "Model did not return valid JSON. Raw output shown below."
	MsgNoIssues      = "No issues found (or model returned none)."
	MsgNoFixedCode   = "No patched file returned by the model."
	placeholderTitle = "(no title)"
	placeholderValue = "?"
)

// Section headings in display order
const (
	HeadingSummary     = "Summary"
	HeadingIssues      = "Issues"
	HeadingSuggestions = "High-level suggestions"
	HeadingFixedCode   = "Patched file (fixed_code)"
)

const defaultWidth = 100

// Options configures a Renderer
type Options struct {
	// Plain disables colors and markdown styling; output is plain markdown
	Plain bool
	// Width is the wrap width, defaults to 100
	Width int
}

// Renderer writes review results to an output stream
type Renderer struct {
	out      io.Writer
	opts     Options
	styles   Styles
	markdown *glamour.TermRenderer
	status   *Status
}

// New creates a renderer writing to out
func New(out io.Writer, opts Options) *Renderer {
	if opts.Width <= 0 {
		opts.Width = defaultWidth
	}

	r := &Renderer{
		out:    out,
		opts:   opts,
		styles: DefaultStyles(),
		status: NewStatus(out, opts.Plain),
	}

	if !opts.Plain {
		md, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(opts.Width),
		)
		if err != nil {
			loggy.Warn("Failed to create markdown renderer, using plain text", "error", err)
		} else {
			r.markdown = md
		}
	}

	return r
}

// Status returns the status line printer sharing this renderer's output
func (r *Renderer) Status() *Status {
	return r.status
}

// Result renders a review result. language is the fence label for code blocks.
func (r *Renderer) Result(result review.Result, language string) error {
	switch res := result.(type) {
	case review.Structured:
		r.structured(res, language)
	case review.Unparsed:
		r.unparsed(res)
	default:
		return fmt.Errorf("unsupported result type %T", result)
	}
	return nil
}

func (r *Renderer) structured(res review.Structured, language string) {
	r.heading(HeadingSummary)
	r.paragraph(res.Summary)

	r.heading(HeadingIssues)
	if len(res.Issues) == 0 {
		r.paragraph(MsgNoIssues)
	} else {
		r.issueTable(res.Issues)
		for i, issue := range res.Issues {
			r.issue(i+1, issue, language)
		}
	}

	r.heading(HeadingSuggestions)
	for _, s := range res.Suggestions {
		r.paragraph("- " + s)
	}

	r.heading(HeadingFixedCode)
	if res.FixedCode != "" {
		r.code(res.FixedCode, language)
	} else {
		r.paragraph(MsgNoFixedCode)
	}
}

func (r *Renderer) unparsed(res review.Unparsed) {
	r.status.Error(MsgInvalidJSON)
	r.code(res.RawText, "")
}

func (r *Renderer) heading(title string) {
	if r.opts.Plain {
		fmt.Fprintf(r.out, "\n## %s\n\n", title)
		return
	}
	fmt.Fprintln(r.out, r.styles.Heading.Render(title))
}

func (r *Renderer) paragraph(s string) {
	if r.markdown != nil {
		rendered, err := r.markdown.Render(s)
		if err == nil {
			fmt.Fprint(r.out, rendered)
			return
		}
		loggy.Warn("Failed to render markdown", "error", err)
	}
	fmt.Fprintln(r.out, wordwrap.String(s, r.opts.Width))
}

func (r *Renderer) code(code, language string) {
	body := strings.TrimRight(code, "\n")
	marker := fence(body)
	block := marker + language + "\n" + body + "\n" + marker

	if r.markdown != nil {
		rendered, err := r.markdown.Render(block)
		if err == nil {
			fmt.Fprint(r.out, rendered)
			return
		}
		loggy.Warn("Failed to render code block", "error", err)
		fmt.Fprintln(r.out, r.styles.CodeBlock.Render(code))
		return
	}
	fmt.Fprintln(r.out, block)
}

// fence returns a backtick run longer than any run inside text, and at least three
func fence(text string) string {
	longest, run := 0, 0
	for _, ch := range text {
		if ch != '`' {
			run = 0
			continue
		}
		run++
		longest = max(longest, run)
	}
	return strings.Repeat("`", max(3, longest+1))
}

func (r *Renderer) issueTable(issues []review.Issue) {
	t := newTable(r.out, "", r.opts.Plain)
	t.AppendHeader(table.Row{"#", "Title", "Lines", "Severity"})
	for i, issue := range issues {
		t.AppendRow(table.Row{i + 1, issueTitle(issue), lineRange(issue), severity(issue)})
	}
	t.Render()
}

func (r *Renderer) issue(n int, issue review.Issue, language string) {
	header := fmt.Sprintf("%d. %s - lines %s (%s)", n, issueTitle(issue), lineRange(issue), severity(issue))
	if r.opts.Plain {
		fmt.Fprintf(r.out, "\n**%s**\n\n", header)
	} else {
		fmt.Fprintln(r.out)
		fmt.Fprintln(r.out, r.styles.severityStyle(issue.Severity).Render(header))
	}

	if issue.Explanation != "" {
		r.paragraph(issue.Explanation)
	}
	if issue.Fix != "" {
		r.code(issue.Fix, language)
	}
}

func issueTitle(issue review.Issue) string {
	if issue.Title == "" {
		return placeholderTitle
	}
	return issue.Title
}

func severity(issue review.Issue) string {
	if issue.Severity == "" {
		return placeholderValue
	}
	return issue.Severity
}

func lineRange(issue review.Issue) string {
	return linePart(issue.LineStart) + "-" + linePart(issue.LineEnd)
}

func linePart(n *int) string {
	if n == nil {
		return placeholderValue
	}
	return strconv.Itoa(*n)
}
