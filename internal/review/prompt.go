package review

import (
	"bytes"
	"text/template"
)

// DefaultLanguage is the code fence label used when none is given
const DefaultLanguage = "python"

const systemInstruction = "You are an expert senior developer and code reviewer. " +
	"When given source code, return a **single valid JSON object** with keys:\n" +
	"  - summary: short (1-3 lines) description of what the code does\n" +
	"  - issues: a list of objects {line_start, line_end, severity, title, explanation, fix}\n" +
	"  - suggestions: short bullet-list of higher-level suggestions\n" +
	"  - fixed_code: the full file content after applying the fixes (if possible)\n\n" +
	"Requirements: respond **ONLY** with valid JSON (no extra commentary). " +
	"Include line numbers where possible and short code snippets under 'fix'."

const userMessageTemplate = "Action: {{.Action}}\n\nCode:\n```{{.Language}}\n{{.Code}}\n```"

var userMessage = template.Must(template.New("user").Parse(userMessageTemplate))

// SystemInstruction returns the fixed instruction sent with every request
func SystemInstruction() string {
	return systemInstruction
}

// Build creates the system instruction and user message for an action,
// fencing the code as python
func Build(action Action, sourceCode string) (string, string) {
	return BuildWithLanguage(action, sourceCode, DefaultLanguage)
}

// BuildWithLanguage is Build with an explicit code fence label.
// The source code is embedded verbatim.
func BuildWithLanguage(action Action, sourceCode, language string) (string, string) {
	if language == "" {
		language = DefaultLanguage
	}

	data := struct {
		Action   string
		Language string
		Code     string
	}{
		Action:   action.Label(),
		Language: language,
		Code:     sourceCode,
	}

	var buf bytes.Buffer
	// Executing a parsed template into a buffer only fails on a bad template
	_ = userMessage.Execute(&buf, data)

	return systemInstruction, buf.String()
}
