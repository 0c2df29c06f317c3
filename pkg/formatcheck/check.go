// Package formatcheck reports files that differ from their canonical form.
package formatcheck

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yaklabco/mdcheck/pkg/config"
	"github.com/yaklabco/mdcheck/pkg/fix"
	"github.com/yaklabco/mdcheck/pkg/format"
	"github.com/yaklabco/mdcheck/pkg/issue"
	"github.com/yaklabco/mdcheck/pkg/mdast"
	"github.com/yaklabco/mdcheck/pkg/mdfile"
)

// Message is the text of every format-check issue.
const Message = "Incorrect file formatting"

const rationale = "Consistent formatting makes it easier to understand a document"

// ErrNoSnapshot is returned when Check is called without a parsed file.
var ErrNoSnapshot = errors.New("formatcheck: no parsed snapshot")

// Check renders snap and compares the result with file.Content. It returns
// nil when the file is already canonical, otherwise one issue covering the
// whole file.
func Check(file *mdfile.File, snap *mdast.FileSnapshot, cfg *config.Config) (*issue.CheckIssue, error) {
	if snap == nil {
		return nil, ErrNoSnapshot
	}
	if cfg == nil {
		cfg = config.NewConfig()
	}

	formatted, err := format.Snapshot(snap, cfg)
	if err != nil {
		return nil, fmt.Errorf("format %s: %w", file.Path, err)
	}
	if formatted == file.Content {
		return nil, nil
	}

	b := issue.NewBuilder().
		Category(issue.Formatting).
		Severity(issue.Error).
		FilePath(file.Path).
		Rows(1, lineCount(file.Content)).
		Cols(1, 1).
		Offsets(0, len(file.Content)).
		Message(Message).
		PushFix("Rationale " + rationale)

	if !cfg.Fmt.ShowDiff {
		b.PushFix(fmt.Sprintf(
			"Suggestion Run \"mdcheck fmt --check --show-diff %s\" to see a diff between the expected formatting and yours",
			file.Path))
	}
	b.PushFix("Auto-fix mdcheck fmt " + file.Path)

	if cfg.Fmt.ShowDiff {
		d, err := fix.Compute(file.Path, file.Content, formatted)
		if err != nil {
			return nil, err
		}
		b.PushFix("Diff\n\n" + d.String())
	}

	out, err := b.Build()
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// lineCount counts lines the way a text editor numbers them; a final
// newline does not start another line.
func lineCount(content string) int {
	if content == "" {
		return 1
	}
	n := strings.Count(content, "\n")
	if !strings.HasSuffix(content, "\n") {
		n++
	}
	return n
}
