// Package analysis aggregates a run's issues by rule and by file.
package analysis

import (
	"cmp"
	"slices"

	"github.com/yaklabco/mdcheck/pkg/issue"
	"github.com/yaklabco/mdcheck/pkg/lint"
	"github.com/yaklabco/mdcheck/pkg/runner"
)

// analysisContext holds temporary state during analysis.
type analysisContext struct {
	registry  *lint.Registry
	ruleMap   map[string]*RuleAnalysis
	fileMap   map[string]*FileAnalysis
	ruleFiles map[string]map[string]bool
	fileRules map[string]map[string]bool
}

func newAnalysisContext(registry *lint.Registry) *analysisContext {
	if registry == nil {
		registry = lint.DefaultRegistry
	}
	return &analysisContext{
		registry:  registry,
		ruleMap:   make(map[string]*RuleAnalysis),
		fileMap:   make(map[string]*FileAnalysis),
		ruleFiles: make(map[string]map[string]bool),
		fileRules: make(map[string]map[string]bool),
	}
}

func (c *counts) add(sev issue.Severity) {
	c.Issues++
	switch sev {
	case issue.Bug, issue.Error:
		c.Errors++
	case issue.Warning:
		c.Warnings++
	default:
		c.Notes++
	}
}

func (ctx *analysisContext) file(path string) *FileAnalysis {
	fa, ok := ctx.fileMap[path]
	if !ok {
		fa = &FileAnalysis{Path: path}
		ctx.fileMap[path] = fa
		ctx.fileRules[path] = make(map[string]bool)
	}
	return fa
}

func (ctx *analysisContext) rule(ruleID string) *RuleAnalysis {
	ra, ok := ctx.ruleMap[ruleID]
	if !ok {
		ra = &RuleAnalysis{RuleID: ruleID}
		if rule, found := ctx.registry.GetByCode(ruleID); found {
			meta := rule.Metadata()
			ra.RuleName = meta.Name
			ra.Fixable = meta.FmtFixable
		}
		ctx.ruleMap[ruleID] = ra
		ctx.ruleFiles[ruleID] = make(map[string]bool)
	}
	return ra
}

// Analyze builds a Report from a runner.Result in a single pass over its issues.
// Issues that are not lint violations are grouped under their category name.
func Analyze(result *runner.Result, opts Options) *Report {
	report := &Report{}
	if result == nil {
		return report
	}

	ctx := newAnalysisContext(opts.Registry)

	for _, file := range result.Files {
		report.Totals.Files++
		if len(file.Issues) == 0 {
			continue
		}
		report.Totals.FilesWithIssues++

		fa := ctx.file(file.Path)
		for i := range file.Issues {
			iss := &file.Issues[i]
			ruleID := iss.RuleID()

			report.Totals.Issues++
			switch iss.Severity {
			case issue.Bug, issue.Error:
				report.Totals.Errors++
			case issue.Warning:
				report.Totals.Warnings++
			default:
				report.Totals.Notes++
			}

			fa.add(iss.Severity)
			ctx.fileRules[file.Path][ruleID] = true

			ra := ctx.rule(ruleID)
			ra.add(iss.Severity)
			if ra.Fixable {
				report.Totals.Fixable++
			}
			ctx.ruleFiles[ruleID][file.Path] = true
		}
	}

	report.ByRule = ctx.buildByRule(opts.SortBy)
	report.ByFile = ctx.buildByFile(opts.SortBy)

	return report
}

func (ctx *analysisContext) buildByRule(sortBy SortField) []RuleAnalysis {
	rules := make([]RuleAnalysis, 0, len(ctx.ruleMap))
	for ruleID, ra := range ctx.ruleMap {
		for f := range ctx.ruleFiles[ruleID] {
			ra.Files = append(ra.Files, f)
		}
		slices.Sort(ra.Files)
		rules = append(rules, *ra)
	}
	slices.SortFunc(rules, func(left, right RuleAnalysis) int {
		return compareCounts(sortBy, left.counts, right.counts, left.RuleID, right.RuleID)
	})
	return rules
}

func (ctx *analysisContext) buildByFile(sortBy SortField) []FileAnalysis {
	files := make([]FileAnalysis, 0, len(ctx.fileMap))
	for path, fa := range ctx.fileMap {
		for r := range ctx.fileRules[path] {
			fa.Rules = append(fa.Rules, r)
		}
		slices.Sort(fa.Rules)
		files = append(files, *fa)
	}
	slices.SortFunc(files, func(left, right FileAnalysis) int {
		return compareCounts(sortBy, left.counts, right.counts, left.Path, right.Path)
	})
	return files
}

// compareCounts orders two entries by sortBy. Ties fall back to the key so
// output is deterministic.
func compareCounts(sortBy SortField, left, right counts, leftKey, rightKey string) int {
	var result int
	switch sortBy {
	case SortByAlpha:
	case SortBySeverity:
		result = cmp.Or(
			cmp.Compare(right.Errors, left.Errors),
			cmp.Compare(right.Warnings, left.Warnings),
			cmp.Compare(right.Issues, left.Issues),
		)
	default:
		result = cmp.Compare(right.Issues, left.Issues)
	}
	return cmp.Or(result, cmp.Compare(leftKey, rightKey))
}
