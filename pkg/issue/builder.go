package issue

import (
	"errors"
	"fmt"
)

// ErrIncompleteIssue is returned by Builder.Build when a required field is missing.
var ErrIncompleteIssue = errors.New("incomplete issue")

// Builder assembles a CheckIssue. Every field except fixes is required.
type Builder struct {
	issue CheckIssue
	set   uint16
}

const (
	fieldCategory uint16 = 1 << iota
	fieldSeverity
	fieldFilePath
	fieldRows
	fieldCols
	fieldOffsets
	fieldMessage

	fieldsRequired = fieldCategory | fieldSeverity | fieldFilePath | fieldRows |
		fieldCols | fieldOffsets | fieldMessage
)

// NewBuilder creates an empty builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Category sets the issue category.
func (b *Builder) Category(c Category) *Builder {
	b.issue.Category = c
	b.set |= fieldCategory
	return b
}

// Severity sets the issue severity.
func (b *Builder) Severity(s Severity) *Builder {
	b.issue.Severity = s
	b.set |= fieldSeverity
	return b
}

// FilePath sets the path of the file the issue belongs to.
func (b *Builder) FilePath(path string) *Builder {
	b.issue.FilePath = path
	b.set |= fieldFilePath
	return b
}

// Rows sets the start and end line numbers.
func (b *Builder) Rows(start, end int) *Builder {
	b.issue.RowStart, b.issue.RowEnd = start, end
	b.set |= fieldRows
	return b
}

// Cols sets the start and end column numbers.
func (b *Builder) Cols(start, end int) *Builder {
	b.issue.ColStart, b.issue.ColEnd = start, end
	b.set |= fieldCols
	return b
}

// Offsets sets the start and end byte offsets.
func (b *Builder) Offsets(start, end int) *Builder {
	b.issue.OffsetStart, b.issue.OffsetEnd = start, end
	b.set |= fieldOffsets
	return b
}

// Message sets the issue message.
func (b *Builder) Message(msg string) *Builder {
	b.issue.Message = msg
	b.set |= fieldMessage
	return b
}

// Fixes replaces the fix list.
func (b *Builder) Fixes(fixes []string) *Builder {
	b.issue.Fixes = append([]string(nil), fixes...)
	return b
}

// PushFix appends one fix.
func (b *Builder) PushFix(fix string) *Builder {
	b.issue.Fixes = append(b.issue.Fixes, fix)
	return b
}

// Build returns the issue, or ErrIncompleteIssue when a required field was never set.
func (b *Builder) Build() (CheckIssue, error) {
	if b.set&fieldsRequired != fieldsRequired {
		return CheckIssue{}, fmt.Errorf("%w: missing fields %#x", ErrIncompleteIssue, fieldsRequired&^b.set)
	}
	if b.issue.OffsetStart > b.issue.OffsetEnd {
		return CheckIssue{}, fmt.Errorf("%w: offset start %d after end %d",
			ErrIncompleteIssue, b.issue.OffsetStart, b.issue.OffsetEnd)
	}
	out := b.issue
	out.Fixes = append([]string(nil), b.issue.Fixes...)
	return out, nil
}
