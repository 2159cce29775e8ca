package review

import (
	"encoding/json"
	"math"
)

// Interpret decodes the raw model text into a Result.
// Only a JSON object becomes Structured; anything else, including other
// valid JSON values, is returned as Unparsed with the text untouched.
// Keys that are missing or carry the wrong JSON type are left empty.
func Interpret(rawText string) Result {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(rawText), &fields); err != nil || fields == nil {
		return Unparsed{RawText: rawText}
	}

	result := Structured{
		Summary:     decodeString(fields["summary"]),
		Issues:      decodeIssues(fields["issues"]),
		Suggestions: decodeSuggestions(fields["suggestions"]),
		FixedCode:   decodeString(fields["fixed_code"]),
	}

	return result
}

func decodeString(raw json.RawMessage) string {
	if raw == nil {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

func decodeIssues(raw json.RawMessage) []Issue {
	issues := []Issue{}
	if raw == nil {
		return issues
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return issues
	}

	for _, item := range items {
		issues = append(issues, decodeIssue(item))
	}
	return issues
}

// decodeIssue never fails; entries that are not objects become an empty Issue
func decodeIssue(raw json.RawMessage) Issue {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return Issue{}
	}

	return Issue{
		LineStart:   decodeLine(fields["line_start"]),
		LineEnd:     decodeLine(fields["line_end"]),
		Severity:    decodeString(fields["severity"]),
		Title:       decodeString(fields["title"]),
		Explanation: decodeString(fields["explanation"]),
		Fix:         decodeString(fields["fix"]),
	}
}

// decodeLine accepts integral JSON numbers only (10 and 10.0, not "10" or 10.5)
func decodeLine(raw json.RawMessage) *int {
	if raw == nil {
		return nil
	}
	var v *float64
	if err := json.Unmarshal(raw, &v); err != nil || v == nil {
		return nil
	}
	f := *v
	if f != math.Trunc(f) || f < math.MinInt32 || f > math.MaxInt32 {
		return nil
	}
	n := int(f)
	return &n
}

func decodeSuggestions(raw json.RawMessage) []string {
	suggestions := []string{}
	if raw == nil {
		return suggestions
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return suggestions
	}

	for _, item := range items {
		var s string
		if err := json.Unmarshal(item, &s); err != nil {
			continue
		}
		suggestions = append(suggestions, s)
	}
	return suggestions
}
