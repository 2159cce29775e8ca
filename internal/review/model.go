package review

import (
	"fmt"
	"strings"
)

// Action is the review mode requested by the user
type Action string

// Supported actions
const (
	ActionExplain Action = "explain"
	ActionSuggest Action = "suggest"
	ActionPatch   Action = "patch"
)

var actionLabels = map[Action]string{
	ActionExplain: "Explain code",
	ActionSuggest: "Suggest improvements",
	ActionPatch:   "Return patched file (apply fixes)",
}

// Actions returns all actions in display order
func Actions() []Action {
	return []Action{ActionExplain, ActionSuggest, ActionPatch}
}

// Label returns the human readable label sent to the model
func (a Action) Label() string {
	return actionLabels[a]
}

// Valid reports whether a is one of the supported actions
func (a Action) Valid() bool {
	_, ok := actionLabels[a]
	return ok
}

// ParseAction accepts either the short name or the full label, case-insensitively
func ParseAction(s string) (Action, error) {
	s = strings.TrimSpace(s)
	for _, a := range Actions() {
		if strings.EqualFold(s, string(a)) || strings.EqualFold(s, a.Label()) {
			return a, nil
		}
	}
	return "", fmt.Errorf("unknown action %q (expected explain, suggest or patch)", s)
}

// Request holds the inputs of a single review invocation
type Request struct {
	Action          Action
	SourceCode      string
	Model           string
	Temperature     float64
	MaxOutputTokens int
	// Language is the fence label of the code block, e.g. "python"
	Language string
}

// Result is the outcome of interpreting a model response.
// It is either Structured or Unparsed.
type Result interface {
	isResult()
}

// Structured is a response that decoded as a JSON object
type Structured struct {
	Summary     string   `json:"summary"`
	Issues      []Issue  `json:"issues"`
	Suggestions []string `json:"suggestions"`
	FixedCode   string   `json:"fixed_code"`
}

// Unparsed carries the raw model text when it was not a JSON object
type Unparsed struct {
	RawText string `json:"raw_text"`
}

func (Structured) isResult() {}
func (Unparsed) isResult()   {}

// Issue is a single problem reported by the model
type Issue struct {
	LineStart   *int   `json:"line_start,omitempty"`
	LineEnd     *int   `json:"line_end,omitempty"`
	Severity    string `json:"severity,omitempty"`
	Title       string `json:"title,omitempty"`
	Explanation string `json:"explanation,omitempty"`
	Fix         string `json:"fix,omitempty"`
}
