package runner

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/mdcheck/internal/logging"
	"github.com/yaklabco/mdcheck/pkg/config"
	"github.com/yaklabco/mdcheck/pkg/format"
	"github.com/yaklabco/mdcheck/pkg/formatcheck"
	"github.com/yaklabco/mdcheck/pkg/fsutil"
	"github.com/yaklabco/mdcheck/pkg/lint"
	"github.com/yaklabco/mdcheck/pkg/mdast"
	"github.com/yaklabco/mdcheck/pkg/mdfile"
)

// Runner processes many files with a shared parser and lint engine.
type Runner struct {
	Parser lint.Parser
	Engine *lint.Engine

	// Logger receives per-file warnings. Nil means logging.Default().
	Logger *log.Logger
}

// New creates a Runner.
func New(parser lint.Parser, engine *lint.Engine, logger *log.Logger) *Runner {
	return &Runner{Parser: parser, Engine: engine, Logger: logger}
}

// Run discovers files under opts.Paths and processes them on at most
// opts.Jobs goroutines. Outcomes are stored by file index, so the result
// order matches discovery order regardless of scheduling.
//
// A failure in one file is recorded in its FileOutcome and never stops the
// batch. The returned error is reserved for discovery failures and
// cancellation; on cancellation the partial result is returned as well.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Files: make([]FileOutcome, 0, len(files)),
		Stats: newStats(),
	}
	result.Stats.FilesDiscovered = len(files)
	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(files))

	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, err
	}

	cfg := opts.Config
	if cfg == nil {
		cfg = config.NewConfig()
	}
	mode := opts.effectiveMode()

	r.logger().Debug("processing files",
		logging.FieldFiles, len(files),
		logging.FieldJobs, jobs)

	outcomes := make([]FileOutcome, len(files))
	done := make([]bool, len(files))

	var group errgroup.Group
	group.SetLimit(jobs)
	for i, path := range files {
		if ctx.Err() != nil {
			break
		}
		group.Go(func() error {
			outcomes[i] = r.processFile(ctx, path, displayPath(workDir, path), cfg, mode)
			done[i] = true
			return nil
		})
	}
	_ = group.Wait() //nolint:errcheck // workers record errors in their outcome

	for i := range outcomes {
		if done[i] {
			result.accumulate(outcomes[i])
		}
	}

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("run cancelled: %w", err)
	}
	return result, nil
}

// processFile reads, parses and handles one file according to mode.
func (r *Runner) processFile(
	ctx context.Context,
	absPath string,
	shownPath string,
	cfg *config.Config,
	mode Mode,
) FileOutcome {
	outcome := FileOutcome{Path: shownPath}

	content, info, err := fsutil.ReadFile(ctx, absPath)
	if err != nil {
		outcome.Error = err
		return outcome
	}

	file := mdfile.New(shownPath, string(content))
	snap, err := r.Parser.Parse(ctx, shownPath, content)
	if err != nil {
		outcome.Error = err
		return outcome
	}
	outcome.Snapshot = snap

	if mode.Has(ModeFormatCheck) {
		iss, err := formatcheck.Check(file, snap, cfg)
		switch {
		case err != nil:
			if !r.downgrade(err, shownPath) {
				outcome.Error = err
				return outcome
			}
			outcome.Skipped = true
		case iss != nil:
			outcome.Changed = true
			file.AddIssues(*iss)
		}
	}

	if mode.Has(ModeLint) {
		issues, err := r.Engine.Lint(ctx, snap, file, cfg)
		if err != nil {
			outcome.Error = err
			return outcome
		}
		file.AddIssues(issues...)
	}

	if mode.Has(ModeFormat) {
		if err := r.formatFile(ctx, snap, info, cfg, &outcome); err != nil {
			outcome.Error = err
			return outcome
		}
	}

	outcome.Issues = file.Issues
	return outcome
}

// formatFile writes the canonical form of snap over the file described by info.
func (r *Runner) formatFile(
	ctx context.Context,
	snap *mdast.FileSnapshot,
	info *fsutil.FileInfo,
	cfg *config.Config,
	outcome *FileOutcome,
) error {
	formatted, err := format.Snapshot(snap, cfg)
	if err != nil {
		if r.downgrade(err, outcome.Path) {
			outcome.Skipped = true
			return nil
		}
		return fmt.Errorf("format %s: %w", outcome.Path, err)
	}

	outcome.Changed = outcome.Changed || formatted != snap.Source()

	written, err := fsutil.Replace(ctx, info, snap.Content, []byte(formatted))
	if errors.Is(err, fsutil.ErrModified) {
		r.logger().Warn("file changed during formatting; skipped",
			logging.FieldPath, outcome.Path)
		outcome.Skipped = true
		return nil
	}
	if err != nil {
		return err
	}
	outcome.Written = written
	return nil
}

// downgrade logs formatter contract violations and reports whether err was one.
// Such files get no formatting result; the rest of their processing continues.
func (r *Runner) downgrade(err error, path string) bool {
	var unsupported *format.UnsupportedNodeKindError
	if !errors.As(err, &unsupported) {
		return false
	}
	r.logger().Warn("cannot format file",
		logging.FieldPath, path,
		logging.FieldError, err)
	return true
}

func (r *Runner) logger() *log.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return logging.Default()
}

// displayPath shortens path relative to workDir when it lies beneath it.
func displayPath(workDir, path string) string {
	rel, err := filepath.Rel(workDir, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return rel
}
