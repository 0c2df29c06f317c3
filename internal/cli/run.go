package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/mdcheck/internal/configloader"
	"github.com/yaklabco/mdcheck/internal/logging"
	"github.com/yaklabco/mdcheck/internal/ui/pretty"
	"github.com/yaklabco/mdcheck/pkg/analysis"
	"github.com/yaklabco/mdcheck/pkg/config"
	"github.com/yaklabco/mdcheck/pkg/lint"
	"github.com/yaklabco/mdcheck/pkg/parser/goldmark"
	"github.com/yaklabco/mdcheck/pkg/reporter"
	"github.com/yaklabco/mdcheck/pkg/runner"
)

// session is the resolved state shared by the file-processing commands.
type session struct {
	version string
	cfg     *config.Config
	workDir string
	logger  *log.Logger
}

// loadSession resolves the working directory and layered configuration for cmd.
func loadSession(cmd *cobra.Command, flags *rootOptions) (*session, error) {
	workDir, err := resolveWorkDir(flags.workDir)
	if err != nil {
		return nil, err
	}

	logger := logging.FromContext(cmd.Context())
	res, err := configloader.Load(cmd.Context(), configloader.LoadOptions{
		WorkingDir:          workDir,
		ExplicitPath:        resolvePath(workDir, flags.configPath),
		IgnoreProjectConfig: flags.ignoreProjectConfig,
		Flags:               cmd.Flags(),
		Registry:            lint.DefaultRegistry,
	})
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	for _, warning := range res.Warnings {
		logger.Warn(warning)
	}
	if res.ConfigFile != "" {
		logger.Debug("loaded config", logging.FieldConfig, res.ConfigFile)
	}

	return &session{version: flags.version, cfg: res.Config, workDir: workDir, logger: logger}, nil
}

func resolveWorkDir(dir string) (string, error) {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", dir, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUsage, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%w: %s is not a directory", ErrUsage, dir)
	}
	return abs, nil
}

// resolvePath makes a relative path absolute against workDir. Empty stays empty.
func resolvePath(workDir, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(workDir, path)
}

// execute runs mode over args and reports the result.
func (s *session) execute(cmd *cobra.Command, args []string, mode runner.Mode) (*runner.Result, error) {
	opts := runner.OptionsFromConfig(s.cfg, mode, args)
	opts.WorkingDir = s.workDir

	s.logger.Debug("starting run",
		logging.FieldWorkingDir, s.workDir,
		logging.FieldPaths, opts.Paths,
		logging.FieldJobs, opts.Jobs,
	)

	run := runner.New(goldmark.New(goldmark.FlavorGFM), lint.NewEngine(lint.DefaultRegistry, s.logger), s.logger)
	result, err := run.Run(cmd.Context(), opts)
	if err != nil && result == nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %w", ErrUsage, err)
		}
		return nil, err
	}

	rep, repErr := reporter.New(s.reporterOptions(cmd))
	if repErr != nil {
		return nil, repErr
	}
	if _, repErr := rep.Report(cmd.Context(), result); repErr != nil {
		return nil, fmt.Errorf("write report: %w", repErr)
	}
	if err != nil {
		return result, err
	}

	s.logger.Debug("run finished",
		logging.FieldFilesDiscovered, result.Stats.FilesDiscovered,
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldFilesWithIssues, result.Stats.FilesWithIssues,
		logging.FieldFilesModified, result.Stats.FilesModified,
		logging.FieldIssuesTotal, result.Stats.IssuesTotal,
	)
	return result, nil
}

func (s *session) reporterOptions(cmd *cobra.Command) reporter.Options {
	opts := reporter.OptionsFromConfig(s.cfg, cmd.OutOrStdout())
	if s.version != "" {
		opts.ToolVersion = s.version
	}
	return opts
}

// Breakdown table selectors for --breakdown.
const (
	breakdownRule = "rule"
	breakdownFile = "file"
)

func validateBreakdown(by string) error {
	switch by {
	case "", breakdownRule, breakdownFile:
		return nil
	default:
		return fmt.Errorf("%w: --breakdown must be %s or %s, got %q", ErrUsage, breakdownRule, breakdownFile, by)
	}
}

// writeBreakdown prints per-rule or per-file issue tables for text output.
func (s *session) writeBreakdown(cmd *cobra.Command, result *runner.Result, by string) {
	if by == "" || s.cfg.Output.Format != config.FormatText {
		return
	}

	report := analysis.Analyze(result, analysis.DefaultOptions())
	if !report.Totals.HasIssues() {
		return
	}

	out := cmd.OutOrStdout()
	styles := pretty.NewStyles(pretty.IsColorEnabled(s.cfg.Output.Color, out))
	tables := pretty.NewTableFormatter(styles, pretty.TerminalWidth(out))

	if by == breakdownFile {
		tables.WriteFileBreakdown(out, report.ByFile)
		return
	}
	tables.WriteRuleBreakdown(out, report.ByRule)
}

// outcome maps a finished run to the command's error: failed files take
// precedence over issues.
func outcome(result *runner.Result) error {
	switch {
	case result.HasErrors():
		return fmt.Errorf("%w: %d of %d", ErrFilesFailed, result.Stats.FilesErrored, result.Stats.FilesDiscovered)
	case result.HasIssues():
		return ErrIssuesFound
	default:
		return nil
	}
}

// AlreadyReported reports whether err only signals an outcome the report
// has already shown, so it needs no further message on exit.
func AlreadyReported(err error) bool {
	return errors.Is(err, ErrIssuesFound) || errors.Is(err, ErrFilesFailed)
}
