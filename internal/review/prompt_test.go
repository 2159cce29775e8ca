package review

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuild(t *testing.T) {
	system, user := Build(ActionExplain, "print(1)")

	assert.Equal(t, SystemInstruction(), system)
	assert.Equal(t, "Action: Explain code\n\nCode:\n```python\nprint(1)\n```", user)
}

func TestBuildSystemInstructionIsFixed(t *testing.T) {
	a, _ := Build(ActionExplain, "x = 1")
	b, _ := Build(ActionPatch, "def f():\n    pass")
	assert.Equal(t, a, b)

	for _, key := range []string{"summary", "issues", "suggestions", "fixed_code"} {
		assert.Contains(t, a, key)
	}
	for _, key := range []string{"line_start", "line_end", "severity", "title", "explanation", "fix"} {
		assert.Contains(t, a, key)
	}
}

func TestBuildActionLabels(t *testing.T) {
	tests := []struct {
		action Action
		label  string
	}{
		{ActionExplain, "Explain code"},
		{ActionSuggest, "Suggest improvements"},
		{ActionPatch, "Return patched file (apply fixes)"},
	}

	for _, tt := range tests {
		t.Run(string(tt.action), func(t *testing.T) {
			_, user := Build(tt.action, "x = 1")
			assert.True(t, strings.HasPrefix(user, "Action: "+tt.label+"\n\nCode:\n"))
		})
	}
}

func TestBuildKeepsCodeVerbatim(t *testing.T) {
	code := "s = \"<b>{{.x}}</b> & ```\"\n\ttab\n"
	_, user := Build(ActionSuggest, code)

	assert.Equal(t, "Action: Suggest improvements\n\nCode:\n```python\n"+code+"\n```", user)
}

func TestBuildWithLanguage(t *testing.T) {
	_, user := BuildWithLanguage(ActionExplain, "package main", "go")
	assert.Equal(t, "Action: Explain code\n\nCode:\n```go\npackage main\n```", user)

	_, user = BuildWithLanguage(ActionExplain, "x = 1", "")
	assert.Contains(t, user, "```python\n")
}

func TestParseAction(t *testing.T) {
	tests := []struct {
		input   string
		want    Action
		wantErr bool
	}{
		{"explain", ActionExplain, false},
		{"SUGGEST", ActionSuggest, false},
		{" patch ", ActionPatch, false},
		{"Explain code", ActionExplain, false},
		{"return patched file (apply fixes)", ActionPatch, false},
		{"refactor", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseAction(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
