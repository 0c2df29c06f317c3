// Package mdfile holds the Markdown file value passed between checkers.
package mdfile

import (
	"fmt"
	"os"

	"github.com/yaklabco/mdcheck/pkg/issue"
)

// File is one Markdown file under check. Content is never mutated in
// place; WithContent returns a new value.
type File struct {
	Path    string
	Content string
	Issues  []issue.CheckIssue
}

// New creates a File with no issues.
func New(path, content string) *File {
	return &File{Path: path, Content: content}
}

// Read loads a file from disk.
func Read(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return New(path, string(data)), nil
}

// WithContent returns a copy of f holding content. Accumulated issues are
// dropped because they described the old content.
func (f *File) WithContent(content string) *File {
	return &File{Path: f.Path, Content: content}
}

// AddIssues appends issues found by a checker.
func (f *File) AddIssues(issues ...issue.CheckIssue) {
	f.Issues = append(f.Issues, issues...)
}

// HasIssues reports whether any issue was recorded.
func (f *File) HasIssues() bool {
	return len(f.Issues) > 0
}

// Bytes returns the content as a byte slice copy.
func (f *File) Bytes() []byte {
	return []byte(f.Content)
}
