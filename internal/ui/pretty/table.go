package pretty

import (
	"io"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/yaklabco/mdcheck/pkg/analysis"
)

// Table layout constants.
const (
	fixableSymbol       = "yes"
	minRequirementWidth = 30
	// fixedColumnsWidth approximates the code, name and fixable columns plus borders.
	fixedColumnsWidth = 56
)

// RuleRow is one line of the rules table.
type RuleRow struct {
	Code        string
	Name        string
	FmtFixable  bool
	Requirement string
}

// TableFormatter renders tables with go-pretty.
type TableFormatter struct {
	styles    *Styles
	termWidth int
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(styles *Styles, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = DefaultTermWidth
	}
	return &TableFormatter{
		styles:    styles,
		termWidth: termWidth,
	}
}

// WriteRules renders rows as a table of code, name, auto-fixable and
// requirement. The requirement column wraps on word boundaries to fit the
// terminal width.
func (t *TableFormatter) WriteRules(w io.Writer, rows []RuleRow) {
	tw := t.newWriter(w, "CODE", "NAME", "AUTO-FIXABLE", "REQUIREMENT")

	for _, row := range rows {
		fixable := ""
		if row.FmtFixable {
			fixable = t.styles.TableFixable.Render(fixableSymbol)
		}
		tw.AppendRow(table.Row{row.Code, row.Name, fixable, row.Requirement})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignCenter},
		{Number: 4, WidthMax: t.wrapWidth(), WidthMaxEnforcer: text.WrapSoft},
	})

	tw.Render()
}

// WriteRuleBreakdown renders issue counts per rule.
func (t *TableFormatter) WriteRuleBreakdown(w io.Writer, rules []analysis.RuleAnalysis) {
	tw := t.newWriter(w, "RULE", "NAME", "ISSUES", "ERRORS", "WARNINGS", "FILES")
	for _, ra := range rules {
		tw.AppendRow(table.Row{ra.RuleID, ra.RuleName, ra.Issues, ra.Errors, ra.Warnings, len(ra.Files)})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
		{Number: 6, Align: text.AlignRight},
	})
	tw.Render()
}

// WriteFileBreakdown renders issue counts per file.
func (t *TableFormatter) WriteFileBreakdown(w io.Writer, files []analysis.FileAnalysis) {
	tw := t.newWriter(w, "FILE", "ISSUES", "ERRORS", "WARNINGS", "RULES")
	for _, fa := range files {
		tw.AppendRow(table.Row{
			t.styles.FilePath.Render(fa.Path),
			strconv.Itoa(fa.Issues),
			strconv.Itoa(fa.Errors),
			strconv.Itoa(fa.Warnings),
			strings.Join(fa.Rules, ", "),
		})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
		{Number: 5, WidthMax: t.wrapWidth(), WidthMaxEnforcer: text.WrapSoft},
	})
	tw.Render()
}

// wrapWidth is the width left for the last, wrapping column.
func (t *TableFormatter) wrapWidth() int {
	return max(minRequirementWidth, t.termWidth-fixedColumnsWidth)
}

func (t *TableFormatter) newWriter(w io.Writer, headers ...string) table.Writer {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleLight)
	row := make(table.Row, len(headers))
	for i, h := range headers {
		row[i] = t.styles.TableHeader.Render(h)
	}
	tw.AppendHeader(row)
	return tw
}
