// Package fix describes the change a formatter fix makes to a file.
package fix

import (
	"fmt"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// contextLines is the number of unchanged lines shown around each change.
const contextLines = 3

// Diff is a unified diff between a file and its formatted form.
type Diff struct {
	// Path is the file path used in the diff header.
	Path string

	// Unified is the diff text, empty when nothing changed.
	Unified string

	// Additions is the number of lines added.
	Additions int

	// Deletions is the number of lines removed.
	Deletions int
}

// Compute diffs original against formatted. It returns nil when the two
// are equal.
func Compute(path, original, formatted string) (*Diff, error) {
	if original == formatted {
		return nil, nil
	}

	before := difflib.SplitLines(original)
	after := difflib.SplitLines(formatted)

	unified, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        before,
		B:        after,
		FromFile: "a/" + strings.TrimPrefix(path, "/"),
		ToFile:   "b/" + strings.TrimPrefix(path, "/"),
		Context:  contextLines,
	})
	if err != nil {
		return nil, fmt.Errorf("diff %s: %w", path, err)
	}

	d := &Diff{Path: path, Unified: unified}
	matcher := difflib.NewMatcher(before, after)
	for _, op := range matcher.GetOpCodes() {
		switch op.Tag {
		case 'r':
			d.Deletions += op.I2 - op.I1
			d.Additions += op.J2 - op.J1
		case 'd':
			d.Deletions += op.I2 - op.I1
		case 'i':
			d.Additions += op.J2 - op.J1
		}
	}
	return d, nil
}

// HasChanges reports whether the diff changes anything.
func (d *Diff) HasChanges() bool {
	return d != nil && d.Unified != ""
}

// String returns the unified diff text.
func (d *Diff) String() string {
	if d == nil {
		return ""
	}
	return d.Unified
}

// Summary returns a short "+N -M" change count.
func (d *Diff) Summary() string {
	if d == nil {
		return "+0 -0"
	}
	return fmt.Sprintf("+%d -%d", d.Additions, d.Deletions)
}
