package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme holds the colors used for terminal output
type Theme struct {
	Primary lipgloss.AdaptiveColor
	Success lipgloss.AdaptiveColor
	Warning lipgloss.AdaptiveColor
	Error   lipgloss.AdaptiveColor
	Info    lipgloss.AdaptiveColor
	Border  lipgloss.AdaptiveColor
	Text    lipgloss.AdaptiveColor
	TextDim lipgloss.AdaptiveColor
}

// GruvboxTheme creates a new Gruvbox-inspired theme
func GruvboxTheme() Theme {
	return Theme{
		Primary: lipgloss.AdaptiveColor{Light: "#79740e", Dark: "#b8bb26"},
		Success: lipgloss.AdaptiveColor{Light: "#98971a", Dark: "#b8bb26"},
		Warning: lipgloss.AdaptiveColor{Light: "#d79921", Dark: "#fabd2f"},
		Error:   lipgloss.AdaptiveColor{Light: "#cc241d", Dark: "#fb4934"},
		Info:    lipgloss.AdaptiveColor{Light: "#458588", Dark: "#83a598"},
		Border:  lipgloss.AdaptiveColor{Light: "#d5c4a1", Dark: "#504945"},
		Text:    lipgloss.AdaptiveColor{Light: "#3c3836", Dark: "#fbf1c7"},
		TextDim: lipgloss.AdaptiveColor{Light: "#7c6f64", Dark: "#a89984"},
	}
}

// Styles contains the lipgloss styles used by the renderer
type Styles struct {
	Heading        lipgloss.Style
	IssueTitle     lipgloss.Style
	Paragraph      lipgloss.Style
	Subtle         lipgloss.Style
	CodeBlock      lipgloss.Style
	HighSeverity   lipgloss.Style
	MediumSeverity lipgloss.Style
	LowSeverity    lipgloss.Style
}

// DefaultStyles returns the styles for the Gruvbox theme
func DefaultStyles() Styles {
	theme := GruvboxTheme()

	return Styles{
		Heading: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Primary).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(theme.Border).
			MarginTop(1),

		IssueTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Text),

		Paragraph: lipgloss.NewStyle().
			Foreground(theme.Text),

		Subtle: lipgloss.NewStyle().
			Foreground(theme.TextDim),

		CodeBlock: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),

		HighSeverity: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Error),

		MediumSeverity: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Warning),

		LowSeverity: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Info),
	}
}

// severityStyle picks a style by the free-form severity the model reported
func (s Styles) severityStyle(severity string) lipgloss.Style {
	switch strings.ToLower(strings.TrimSpace(severity)) {
	case "critical", "high", "error":
		return s.HighSeverity
	case "medium", "moderate", "warning":
		return s.MediumSeverity
	case "low", "info", "minor":
		return s.LowSeverity
	default:
		return s.Subtle
	}
}
