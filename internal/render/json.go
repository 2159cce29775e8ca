package render

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/tildaslashalef/pastereview/internal/review"
)

// Result kinds used in JSON output
const (
	KindStructured = "structured"
	KindUnparsed   = "unparsed"
)

type jsonResult struct {
	Kind    string             `json:"kind"`
	Review  *review.Structured `json:"review,omitempty"`
	RawText *string            `json:"raw_text,omitempty"`
}

// JSON writes result as an indented JSON document
func JSON(out io.Writer, result review.Result) error {
	var doc jsonResult

	switch res := result.(type) {
	case review.Structured:
		doc = jsonResult{Kind: KindStructured, Review: &res}
	case review.Unparsed:
		doc = jsonResult{Kind: KindUnparsed, RawText: &res.RawText}
	default:
		return fmt.Errorf("unsupported result type %T", result)
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}
	return nil
}
