// Package issue defines CheckIssue, the reportable unit shared by the format
// check and the lint engine.
package issue

import (
	"fmt"
	"strings"
)

// Category groups issues by the checker that produced them.
type Category int

const (
	// Formatting issues come from comparing a file against its canonical form.
	Formatting Category = iota
	// Linting issues violate a lint rule.
	Linting
	// LinkChecking issues report unreachable links.
	LinkChecking
	// Spelling issues report misspelled words.
	Spelling
	// Grammar issues report grammar problems.
	Grammar
	// Review issues are documentation review suggestions.
	Review
)

var categoryNames = [...]string{
	Formatting:   "formatting",
	Linting:      "linting",
	LinkChecking: "link_checking",
	Spelling:     "spelling",
	Grammar:      "grammar",
	Review:       "review",
}

// String returns the lowercase category name.
func (c Category) String() string {
	if c < 0 || int(c) >= len(categoryNames) {
		return fmt.Sprintf("Category(%d)", int(c))
	}
	return categoryNames[c]
}

// SARIFKind returns the kind reported in SARIF results.
func (c Category) SARIFKind() string {
	if c == LinkChecking {
		return "links"
	}
	return c.String()
}

// MarshalText encodes the category by name.
func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText decodes a category name.
func (c *Category) UnmarshalText(text []byte) error {
	for i, name := range categoryNames {
		if strings.EqualFold(name, string(text)) {
			*c = Category(i)
			return nil
		}
	}
	return fmt.Errorf("unknown issue category %q", text)
}

// Severity states how critical an issue is.
type Severity int

const (
	// Bug is the highest level.
	Bug Severity = iota
	// Error is high, but not necessarily a bug.
	Error
	// Warning could be skipped, but fixing it is advisable.
	Warning
	// Note is optional.
	Note
	// Help is a hint.
	Help
)

var severityNames = [...]string{
	Bug:     "bug",
	Error:   "error",
	Warning: "warning",
	Note:    "note",
	Help:    "help",
}

// String returns the lowercase severity name.
func (s Severity) String() string {
	if s < 0 || int(s) >= len(severityNames) {
		return fmt.Sprintf("Severity(%d)", int(s))
	}
	return severityNames[s]
}

// SARIFLevel maps the severity onto a SARIF 2.1.0 result level.
// SARIF has no "help" level, so Help maps to "note".
func (s Severity) SARIFLevel() string {
	switch s {
	case Bug, Error:
		return "error"
	case Warning:
		return "warning"
	case Note, Help:
		return "note"
	default:
		return "none"
	}
}

// MarshalText encodes the severity by name.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a severity name.
func (s *Severity) UnmarshalText(text []byte) error {
	for i, name := range severityNames {
		if strings.EqualFold(name, string(text)) {
			*s = Severity(i)
			return nil
		}
	}
	return fmt.Errorf("unknown issue severity %q", text)
}

// CheckIssue is a single positioned finding with remediation text.
//
// Rows and columns are 1-based; offsets are 0-based byte offsets with an
// exclusive end.
type CheckIssue struct {
	Category    Category `json:"category"`
	Severity    Severity `json:"severity"`
	FilePath    string   `json:"file_path"`
	RowStart    int      `json:"row_num_start"`
	RowEnd      int      `json:"row_num_end"`
	ColStart    int      `json:"col_num_start"`
	ColEnd      int      `json:"col_num_end"`
	OffsetStart int      `json:"offset_start"`
	OffsetEnd   int      `json:"offset_end"`
	Message     string   `json:"message"`
	Fixes       []string `json:"fixes"`
}

// Location formats the issue start as "path:row:col".
func (i *CheckIssue) Location() string {
	return fmt.Sprintf("%s:%d:%d", i.FilePath, i.RowStart, i.ColStart)
}

// RuleID returns the identifier reporters group issues by: the leading
// rule code of a lint message ("MD018 - ..."), or the category name.
func (i *CheckIssue) RuleID() string {
	if i.Category == Linting {
		if code, _, ok := strings.Cut(i.Message, " - "); ok && code != "" && !strings.Contains(code, " ") {
			return code
		}
	}
	return i.Category.String()
}
