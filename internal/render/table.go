package render

import (
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

var (
	tableHeader = text.Colors{text.FgHiBlue, text.Bold}
	tableBorder = text.Colors{text.FgBlue}
	tableRow    = text.Colors{text.FgWhite}
	tableAltRow = text.Colors{text.FgWhite, text.Faint}
	tableTitle  = text.Colors{text.FgHiCyan, text.Bold}
)

// newTable creates a table writer with the shared look. Plain tables carry no ANSI codes.
func newTable(out io.Writer, title string, plain bool) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(out)

	if title != "" {
		t.SetTitle(title)
	}

	if plain {
		t.SetStyle(table.StyleLight)
		return t
	}

	customStyle := table.StyleRounded
	customStyle.Color.Header = tableHeader
	customStyle.Color.Border = tableBorder
	customStyle.Color.Row = tableRow
	customStyle.Color.RowAlternate = tableAltRow
	customStyle.Title.Colors = tableTitle
	customStyle.Title.Align = text.AlignCenter

	customStyle.Options.DrawBorder = true
	customStyle.Options.SeparateColumns = true
	customStyle.Options.SeparateHeader = true
	customStyle.Options.SeparateRows = false

	customStyle.Box.PaddingLeft = " "
	customStyle.Box.PaddingRight = " "

	t.SetStyle(customStyle)
	return t
}

// Models prints the supported model identifiers, marking the default one
func Models(out io.Writer, models []string, defaultModel string, plain bool) {
	t := newTable(out, "Supported models", plain)
	t.AppendHeader(table.Row{"#", "Model", "Default"})

	for i, model := range models {
		isDefault := ""
		if model == defaultModel {
			isDefault = "yes"
		}
		t.AppendRow(table.Row{i + 1, model, isDefault})
	}

	t.Render()
}
