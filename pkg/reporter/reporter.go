// Package reporter writes run results as styled text, JSON or SARIF.
package reporter

import (
	"context"
	"fmt"

	"github.com/yaklabco/mdcheck/pkg/config"
	"github.com/yaklabco/mdcheck/pkg/runner"
)

// Reporter formats and writes run results.
type Reporter interface {
	// Report writes formatted output for the given result.
	// It returns the number of issues reported and any write errors.
	Report(ctx context.Context, result *runner.Result) (int, error)
}

// New creates a Reporter for the specified options.
func New(opts Options) (Reporter, error) {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}

	switch opts.Format {
	case config.FormatText, "":
		return NewTextReporter(opts), nil
	case config.FormatJSON:
		return NewJSONReporter(opts), nil
	case config.FormatSARIF:
		return NewSARIFReporter(opts), nil
	default:
		return nil, fmt.Errorf("%w: unsupported output format %q", config.ErrInvalidConfig, opts.Format)
	}
}
