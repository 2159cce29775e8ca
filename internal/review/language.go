package review

import (
	"path/filepath"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// fenceAliases maps enry language names to the labels markdown renderers expect
var fenceAliases = map[string]string{
	"C#":          "csharp",
	"C++":         "cpp",
	"F#":          "fsharp",
	"Objective-C": "objc",
	"Shell":       "bash",
	"Vim Script":  "vim",
	"Emacs Lisp":  "elisp",
}

// DetectLanguage returns the code fence label for content, using the file
// name when known and shebang or modeline hints otherwise. It returns
// fallback when nothing is detected.
func DetectLanguage(filename string, content []byte, fallback string) string {
	if enry.IsBinary(content) {
		return fallback
	}

	var language string
	if filename != "" && filename != "-" {
		language = enry.GetLanguage(filepath.Base(filename), content)
	} else {
		// Without a file name the classifier is unreliable on small snippets
		if lang, safe := enry.GetLanguageByShebang(content); safe {
			language = lang
		} else if lang, safe := enry.GetLanguageByModeline(content); safe {
			language = lang
		}
	}

	if language == "" || language == "Text" {
		return fallback
	}

	return FenceLabel(language)
}

// FenceLabel converts a language name such as "Python" or "C++" into a fence label
func FenceLabel(language string) string {
	if alias, ok := fenceAliases[language]; ok {
		return alias
	}
	return strings.ReplaceAll(strings.ToLower(language), " ", "-")
}
