// Package langdetect guesses the info-string language of code blocks that
// were written without one. It wraps go-enry with a few cheap signature
// checks that are more reliable than the classifier on short snippets.
package langdetect

import (
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// classifierCandidates limits the enry classifier to languages commonly
// found in documentation.
var classifierCandidates = []string{
	"Go", "Python", "Shell", "JavaScript", "TypeScript", "Ruby", "Rust",
	"Java", "C", "C++", "SQL", "JSON", "YAML", "HTML", "CSS", "Dockerfile",
}

// signature maps a language tag to a predicate over the trimmed snippet.
type signature struct {
	lang  string
	match func(code string) bool
}

// signatures are checked in order; the first match wins.
var signatures = []signature{
	{"go", func(code string) bool { return strings.HasPrefix(code, "package ") }},
	{"python", looksLikePython},
	{"html", func(code string) bool {
		lower := strings.ToLower(code)
		return strings.HasPrefix(lower, "<!doctype html") || strings.Contains(lower, "<html")
	}},
	{"json", func(code string) bool {
		return (strings.HasPrefix(code, "{") || strings.HasPrefix(code, "[")) && strings.Contains(code, `"`)
	}},
	{"dockerfile", func(code string) bool {
		return strings.HasPrefix(code, "FROM ") && strings.Contains(code, "\nRUN ")
	}},
	{"sql", looksLikeSQL},
	{"rust", func(code string) bool {
		return strings.Contains(code, "fn main()") || strings.Contains(code, "println!")
	}},
	{"javascript", func(code string) bool {
		return strings.Contains(code, "console.log") || strings.Contains(code, "=>")
	}},
	{"yaml", looksLikeYAML},
}

// Guesser assigns a language tag to a code snippet.
type Guesser struct {
	fallback string
}

// New returns a Guesser that answers fallback when nothing matches.
func New(fallback string) *Guesser {
	return &Guesser{fallback: fallback}
}

// Guess returns a lowercase fence tag for code, or the fallback.
func (g *Guesser) Guess(code string) string {
	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return g.fallback
	}

	if lang, safe := enry.GetLanguageByShebang([]byte(trimmed)); safe {
		return tag(lang)
	}

	for _, sig := range signatures {
		if sig.match(trimmed) {
			return sig.lang
		}
	}

	if lang, safe := enry.GetLanguageByClassifier([]byte(trimmed), classifierCandidates); safe && lang != "" {
		return tag(lang)
	}
	return g.fallback
}

// tag turns an enry language name into a fence tag.
func tag(lang string) string {
	if lang == "Shell" {
		return "bash"
	}
	return strings.ToLower(lang)
}

func looksLikePython(code string) bool {
	if strings.Contains(code, "def ") && strings.Contains(code, "):") {
		return true
	}
	return strings.Contains(code, "__name__") ||
		(strings.HasPrefix(code, "import ") && !strings.HasPrefix(code, "import ("))
}

func looksLikeSQL(code string) bool {
	upper := strings.ToUpper(code)
	for _, kw := range []string{"SELECT ", "INSERT ", "UPDATE ", "DELETE ", "CREATE "} {
		if strings.HasPrefix(upper, kw) {
			return true
		}
	}
	return false
}

// looksLikeYAML requires at least two "key: value" or "- item" lines.
func looksLikeYAML(code string) bool {
	hits := 0
	for line := range strings.SplitSeq(code, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case line == "", strings.HasPrefix(line, "#"):
			continue
		case strings.HasPrefix(line, "- "):
			hits++
		case strings.Contains(line, ": ") && !strings.ContainsAny(line, "({;") && !strings.HasPrefix(line, `"`):
			hits++
		}
	}
	return hits >= 2
}
