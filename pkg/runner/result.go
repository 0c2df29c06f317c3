package runner

import (
	"github.com/yaklabco/mdcheck/pkg/issue"
	"github.com/yaklabco/mdcheck/pkg/mdast"
)

// FileOutcome is the result of processing one file.
type FileOutcome struct {
	// Path is the file path as reported, relative to the working directory
	// when the file lies beneath it.
	Path string

	// Issues are the format-check issue (if any) followed by lint issues.
	Issues []issue.CheckIssue

	// Snapshot is the parsed file as read, kept for source context in reports.
	// It is nil when the file could not be read or parsed.
	Snapshot *mdast.FileSnapshot

	// Changed is true when the file differs from its canonical form.
	Changed bool

	// Written is true when ModeFormat rewrote the file.
	Written bool

	// Skipped is true when the file could not be formatted, either because it
	// changed on disk during the run or because the formatter rejected it.
	Skipped bool

	// Error is set if the file could not be read, parsed or linted.
	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	FilesDiscovered int
	FilesProcessed  int
	FilesErrored    int
	FilesWithIssues int
	FilesChanged    int
	FilesModified   int
	FilesSkipped    int
	IssuesTotal     int

	// IssuesBySeverity counts issues by severity name.
	IssuesBySeverity map[string]int

	// IssuesByCategory counts issues by category name.
	IssuesByCategory map[string]int
}

// Result is the overall runner result.
type Result struct {
	// Files holds one outcome per discovered file, in discovery order.
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats
}

// HasIssues reports whether any issue was found.
func (r *Result) HasIssues() bool {
	return r != nil && r.Stats.IssuesTotal > 0
}

// HasErrors reports whether any file failed to process.
func (r *Result) HasErrors() bool {
	return r != nil && r.Stats.FilesErrored > 0
}

// Issues returns all issues of the run in file order.
func (r *Result) Issues() []issue.CheckIssue {
	if r == nil {
		return nil
	}
	var all []issue.CheckIssue
	for _, f := range r.Files {
		all = append(all, f.Issues...)
	}
	return all
}

func newStats() Stats {
	return Stats{
		IssuesBySeverity: make(map[string]int),
		IssuesByCategory: make(map[string]int),
	}
}

func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}

	r.Stats.FilesProcessed++
	if outcome.Changed {
		r.Stats.FilesChanged++
	}
	if outcome.Written {
		r.Stats.FilesModified++
	}
	if outcome.Skipped {
		r.Stats.FilesSkipped++
	}

	if len(outcome.Issues) > 0 {
		r.Stats.FilesWithIssues++
	}
	r.Stats.IssuesTotal += len(outcome.Issues)
	for _, iss := range outcome.Issues {
		r.Stats.IssuesBySeverity[iss.Severity.String()]++
		r.Stats.IssuesByCategory[iss.Category.String()]++
	}
}
