package reporter

import (
	"bufio"
	"context"
	"fmt"
	"maps"

	"github.com/goccy/go-json"

	"github.com/yaklabco/mdcheck/pkg/issue"
	"github.com/yaklabco/mdcheck/pkg/runner"
)

// jsonSchemaVersion is bumped when the JSON document shape changes.
const jsonSchemaVersion = "1.0.0"

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version string           `json:"version"`
	Files   []JSONFileResult `json:"files"`
	Summary JSONSummary      `json:"summary"`
}

// JSONFileResult represents a single file's results.
type JSONFileResult struct {
	Path      string             `json:"path"`
	Issues    []issue.CheckIssue `json:"issues"`
	Changed   bool               `json:"changed,omitempty"`
	Formatted bool               `json:"formatted,omitempty"`
	Skipped   bool               `json:"skipped,omitempty"`
	Error     string             `json:"error,omitempty"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	FilesChecked    int            `json:"files_checked"`
	FilesWithIssues int            `json:"files_with_issues"`
	FilesFormatted  int            `json:"files_formatted"`
	FilesErrored    int            `json:"files_errored"`
	TotalIssues     int            `json:"total_issues"`
	BySeverity      map[string]int `json:"by_severity"`
	ByCategory      map[string]int `json:"by_category"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := buildJSONOutput(result)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return output.Summary.TotalIssues, nil
}

func buildJSONOutput(result *runner.Result) *JSONOutput {
	output := &JSONOutput{
		Version: jsonSchemaVersion,
		Files:   make([]JSONFileResult, 0),
		Summary: JSONSummary{
			BySeverity: make(map[string]int),
			ByCategory: make(map[string]int),
		},
	}
	if result == nil {
		return output
	}

	output.Files = make([]JSONFileResult, 0, len(result.Files))
	for _, file := range result.Files {
		fileResult := JSONFileResult{
			Path:      file.Path,
			Issues:    file.Issues,
			Changed:   file.Changed,
			Formatted: file.Written,
			Skipped:   file.Skipped,
		}
		if fileResult.Issues == nil {
			fileResult.Issues = make([]issue.CheckIssue, 0)
		}
		if file.Error != nil {
			fileResult.Error = file.Error.Error()
		}
		output.Files = append(output.Files, fileResult)
	}

	stats := result.Stats
	output.Summary.FilesChecked = stats.FilesProcessed
	output.Summary.FilesWithIssues = stats.FilesWithIssues
	output.Summary.FilesFormatted = stats.FilesModified
	output.Summary.FilesErrored = stats.FilesErrored
	output.Summary.TotalIssues = stats.IssuesTotal
	maps.Copy(output.Summary.BySeverity, stats.IssuesBySeverity)
	maps.Copy(output.Summary.ByCategory, stats.IssuesByCategory)

	return output
}
