package reporter

import (
	"io"
	"os"

	"github.com/yaklabco/mdcheck/pkg/config"
)

// bufWriterSize is the buffer size for buffered output writers (64 KiB).
const bufWriterSize = 64 * 1024

// Options configures reporter behavior.
type Options struct {
	// Writer is the destination for output (typically os.Stdout).
	Writer io.Writer

	// Format specifies the output format.
	Format config.OutputFormat

	// Color controls colorized text output.
	Color config.ColorMode

	// ShowContext includes the source line under each text issue.
	ShowContext bool

	// ShowSummary displays aggregate statistics after text results.
	ShowSummary bool

	// Compact writes JSON and SARIF without indentation.
	Compact bool

	// ToolVersion is reported as the SARIF driver version.
	ToolVersion string
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		Writer:      os.Stdout,
		Format:      config.FormatText,
		Color:       config.ColorAuto,
		ShowContext: true,
		ShowSummary: true,
		ToolVersion: "dev",
	}
}

// OptionsFromConfig returns DefaultOptions with the output section of cfg applied.
func OptionsFromConfig(cfg *config.Config, w io.Writer) Options {
	opts := DefaultOptions()
	if w != nil {
		opts.Writer = w
	}
	if cfg != nil {
		if cfg.Output.Format != "" {
			opts.Format = cfg.Output.Format
		}
		if cfg.Output.Color != "" {
			opts.Color = cfg.Output.Color
		}
	}
	return opts
}
