package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/mdcheck/internal/ui/pretty"
	"github.com/yaklabco/mdcheck/pkg/issue"
	"github.com/yaklabco/mdcheck/pkg/mdast"
	"github.com/yaklabco/mdcheck/pkg/runner"
)

// TextReporter formats results as styled terminal output, grouped by file.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	width  int
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		width:  pretty.TerminalWidth(opts.Writer),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Success.Render("No files to check."))
		}
		return 0, nil
	}

	var total int
	for _, file := range result.Files {
		if file.Error != nil {
			fmt.Fprintf(r.bw, "%s: %s\n\n",
				r.styles.FilePath.Render(file.Path),
				r.styles.Error.Render(fmt.Sprintf("error: %v", file.Error)),
			)
			continue
		}
		if len(file.Issues) == 0 {
			continue
		}

		fmt.Fprintln(r.bw, r.styles.FormatFileHeader(file.Path, len(file.Issues)))
		for i := range file.Issues {
			iss := &file.Issues[i]
			fmt.Fprint(r.bw, r.styles.FormatIssue(iss, r.sourceLine(file.Snapshot, iss)))
			fmt.Fprintln(r.bw)
			total++
		}
	}

	if r.opts.ShowSummary {
		if r.opts.Compact {
			fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
		} else {
			fmt.Fprint(r.bw, r.styles.FormatSummary(result.Stats, r.width))
		}
	}

	return total, nil
}

// sourceLine returns the first row of iss for display, or "" when context
// is disabled or the issue covers the whole file.
func (r *TextReporter) sourceLine(snap *mdast.FileSnapshot, iss *issue.CheckIssue) string {
	if !r.opts.ShowContext || snap == nil || iss.Category == issue.Formatting {
		return ""
	}
	return snap.LineText(iss.RowStart)
}
