package review

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(n int) *int { return &n }

func TestInterpretFullObject(t *testing.T) {
	raw := `{"summary":"Computes factorial recursively.","issues":[{"line_start":2,"line_end":3,"severity":"low","title":"No negative check","explanation":"n<0 returns 1","fix":"if n < 0: raise ValueError"}],"suggestions":["Add type hints"],"fixed_code":"def factorial(n): ..."}`

	result := Interpret(raw)

	structured, ok := result.(Structured)
	require.True(t, ok, "expected Structured, got %T", result)
	assert.Equal(t, "Computes factorial recursively.", structured.Summary)
	require.Len(t, structured.Issues, 1)
	assert.Equal(t, Issue{
		LineStart:   intPtr(2),
		LineEnd:     intPtr(3),
		Severity:    "low",
		Title:       "No negative check",
		Explanation: "n<0 returns 1",
		Fix:         "if n < 0: raise ValueError",
	}, structured.Issues[0])
	assert.Equal(t, []string{"Add type hints"}, structured.Suggestions)
	assert.Equal(t, "def factorial(n): ...", structured.FixedCode)
}

func TestInterpretReviewScenarios(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Result
	}{
		{
			name: "complete review",
			raw:  `{"summary":"adds two numbers","issues":[],"suggestions":["add docstring"],"fixed_code":"def add(a,b): return a+b"}`,
			want: Structured{
				Summary:     "adds two numbers",
				Issues:      []Issue{},
				Suggestions: []string{"add docstring"},
				FixedCode:   "def add(a,b): return a+b",
			},
		},
		{
			name: "refusal text",
			raw:  "Sorry, I cannot help.",
			want: Unparsed{RawText: "Sorry, I cannot help."},
		},
		{
			name: "partial issue",
			raw:  `{"issues":[{"title":"bug","severity":"high"}]}`,
			want: Structured{
				Summary:     "",
				Issues:      []Issue{{Title: "bug", Severity: "high"}},
				Suggestions: []string{},
				FixedCode:   "",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Interpret(tt.raw))
		})
	}
}

func TestInterpretMissingKeys(t *testing.T) {
	result := Interpret(`{"summary":"ok"}`)

	assert.Equal(t, Structured{
		Summary:     "ok",
		Issues:      []Issue{},
		Suggestions: []string{},
		FixedCode:   "",
	}, result)
}

func TestInterpretEmptyObject(t *testing.T) {
	assert.Equal(t, Structured{Issues: []Issue{}, Suggestions: []string{}}, Interpret(`{}`))
}

func TestInterpretUnparsed(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"prose", "Sorry, I can't help"},
		{"empty", ""},
		{"truncated", `{"summary": "cut off`},
		{"fenced json", "```json\n{\"summary\":\"x\"}\n```"},
		{"trailing text", `{"summary":"x"} thanks`},
		{"array", `[]`},
		{"string", `"x"`},
		{"number", `42`},
		{"null", `null`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, Unparsed{RawText: tt.raw}, Interpret(tt.raw))
		})
	}
}

func TestInterpretWrongTypesAreAbsent(t *testing.T) {
	raw := `{"summary":7,"issues":"none","suggestions":{"a":1},"fixed_code":["x"]}`

	assert.Equal(t, Structured{Issues: []Issue{}, Suggestions: []string{}}, Interpret(raw))
}

func TestInterpretMalformedIssues(t *testing.T) {
	raw := `{"issues":["oops",null,{"title":"t","line_start":"4","line_end":5.5,"severity":3},{"line_start":10.0,"line_end":null}]}`

	structured, ok := Interpret(raw).(Structured)
	require.True(t, ok)
	require.Len(t, structured.Issues, 4)

	assert.Equal(t, Issue{}, structured.Issues[0])
	assert.Equal(t, Issue{}, structured.Issues[1])
	assert.Equal(t, Issue{Title: "t"}, structured.Issues[2])
	assert.Equal(t, Issue{LineStart: intPtr(10)}, structured.Issues[3])
}

func TestInterpretSkipsNonStringSuggestions(t *testing.T) {
	structured, ok := Interpret(`{"suggestions":["a",1,null,"b",{"c":"d"}]}`).(Structured)
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, structured.Suggestions)
}

func TestInterpretPreservesOrder(t *testing.T) {
	structured, ok := Interpret(`{"issues":[{"title":"first"},{"title":"second"},{"title":"third"}]}`).(Structured)
	require.True(t, ok)

	titles := make([]string, 0, len(structured.Issues))
	for _, issue := range structured.Issues {
		titles = append(titles, issue.Title)
	}
	assert.Equal(t, []string{"first", "second", "third"}, titles)
}

func TestInterpretIdempotent(t *testing.T) {
	inputs := []string{
		`{"summary":"a","issues":[{"line_start":1}],"suggestions":["s"],"fixed_code":"c"}`,
		`not json`,
		`[1,2]`,
	}

	for _, raw := range inputs {
		assert.Equal(t, Interpret(raw), Interpret(raw))
	}
}
