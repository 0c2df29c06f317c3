package lint

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/mdcheck/internal/logging"
	"github.com/yaklabco/mdcheck/pkg/config"
	"github.com/yaklabco/mdcheck/pkg/issue"
	"github.com/yaklabco/mdcheck/pkg/mdast"
	"github.com/yaklabco/mdcheck/pkg/mdfile"
)

// ErrNoSnapshot is returned when Lint is called without a parsed file.
var ErrNoSnapshot = errors.New("lint: no parsed snapshot")

// Engine runs the enabled rules of a registry against parsed files.
type Engine struct {
	// Registry holds all available rules.
	Registry *Registry

	// Logger receives rule failures. Nil means logging.Default().
	Logger *log.Logger
}

// NewEngine creates a new Engine with the given registry and logger.
func NewEngine(registry *Registry, logger *log.Logger) *Engine {
	return &Engine{
		Registry: registry,
		Logger:   logger,
	}
}

// Lint checks one parsed file and returns its issues ordered by rule code,
// then by document position within a rule.
//
// Rules run concurrently. A rule that returns an error or panics is logged
// at warn level and contributes no issues; the other rules still report.
// The only error returned is cancellation of ctx.
func (e *Engine) Lint(
	ctx context.Context,
	snap *mdast.FileSnapshot,
	file *mdfile.File,
	cfg *config.Config,
) ([]issue.CheckIssue, error) {
	if snap == nil {
		return nil, ErrNoSnapshot
	}
	if cfg == nil {
		cfg = config.NewConfig()
	}

	path := snap.Path
	if file != nil && file.Path != "" {
		path = file.Path
	}

	rules := e.enabledRules(cfg)
	nodes := NewNodeCache(snap.Root)
	results := make([][]Violation, len(rules))

	var group errgroup.Group
	for i, rule := range rules {
		group.Go(func() error {
			rc := NewRuleContext(ctx, snap, cfg, nodes)
			if rc.Cancelled() {
				return nil
			}
			violations, err := runRule(rc, rule, path)
			if err != nil {
				e.logger().Warn("rule failed",
					logging.FieldRule, rule.Metadata().Code,
					logging.FieldPath, path,
					logging.FieldError, err)
				return nil
			}
			results[i] = violations
			return nil
		})
	}
	_ = group.Wait() //nolint:errcheck // rule goroutines never return errors

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("lint %s: %w", path, err)
	}

	var issues []issue.CheckIssue
	for i, rule := range rules {
		meta := rule.Metadata()
		for _, v := range results[i] {
			out, err := ToIssue(path, meta, v)
			if err != nil {
				e.logger().Warn("dropping malformed violation",
					logging.FieldRule, meta.Code,
					logging.FieldPath, path,
					logging.FieldError, err)
				continue
			}
			issues = append(issues, out)
		}
	}

	return issues, nil
}

// enabledRules returns the registry's rules, sorted by code, that cfg enables.
func (e *Engine) enabledRules(cfg *config.Config) []Rule {
	if e.Registry == nil {
		return nil
	}
	var enabled []Rule
	for _, rule := range e.Registry.Rules() {
		if rule.IsEnabled(cfg) {
			enabled = append(enabled, rule)
		}
	}
	return enabled
}

func (e *Engine) logger() *log.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return logging.Default()
}

// runRule executes one rule, converting a panic or returned error into a
// *RuleError. Violations come back sorted by start offset.
func runRule(rc *RuleContext, rule Rule, path string) (violations []Violation, err error) {
	code := rule.Metadata().Code

	defer func() {
		if recovered := recover(); recovered != nil {
			violations = nil
			err = &RuleError{Code: code, Path: path, Err: recoveredError(recovered)}
		}
	}()

	violations, err = rule.Check(rc)
	if err != nil {
		return nil, &RuleError{Code: code, Path: path, Err: err}
	}

	slices.SortStableFunc(violations, func(a, b Violation) int {
		return cmp.Compare(a.Position.Start.Offset, b.Position.Start.Offset)
	})
	return violations, nil
}
