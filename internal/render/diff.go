package render

import (
	"fmt"
	"path/filepath"

	"github.com/pmezard/go-difflib/difflib"
)

// HeadingDiff titles the unified diff between the input and the patched file
const HeadingDiff = "Changes"

// MsgNoChanges is shown when the patched file equals the input
const MsgNoChanges = "Patched file is identical to the submitted code."

// UnifiedDiff returns a unified diff between original and fixed labeled with
// name. It returns an empty string when the contents are equal.
func UnifiedDiff(name, original, fixed string) (string, error) {
	if name == "" || name == "-" {
		name = "input"
	}
	name = filepath.Base(name)

	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(original),
		B:        difflib.SplitLines(fixed),
		FromFile: "a/" + name,
		ToFile:   "b/" + name,
		Context:  3,
	}

	result, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		return "", fmt.Errorf("computing diff: %w", err)
	}
	return result, nil
}

// Diff renders the changes between the submitted code and the patched file
func (r *Renderer) Diff(name, original, fixed string) error {
	if fixed == "" {
		return nil
	}

	diff, err := UnifiedDiff(name, original, fixed)
	if err != nil {
		return err
	}

	r.heading(HeadingDiff)
	if diff == "" {
		r.paragraph(MsgNoChanges)
		return nil
	}
	r.code(diff, "diff")
	return nil
}
