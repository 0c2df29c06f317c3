// Package pretty provides Lipgloss-based styled output utilities.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"golang.org/x/term"

	"github.com/yaklabco/mdcheck/pkg/config"
)

// DefaultTermWidth is used when the writer is not a terminal.
const DefaultTermWidth = 100

// Styles contains all styled renderers for CLI output.
type Styles struct {
	// Severity styles
	Bug     lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Note    lipgloss.Style
	Help    lipgloss.Style

	// Issue components
	FilePath   lipgloss.Style
	Location   lipgloss.Style
	Category   lipgloss.Style
	Message    lipgloss.Style
	FixLabel   lipgloss.Style
	FixText    lipgloss.Style
	SourceLine lipgloss.Style
	Gutter     lipgloss.Style
	Caret      lipgloss.Style

	// Diff styles
	DiffHeader  lipgloss.Style
	DiffHunk    lipgloss.Style
	DiffAdd     lipgloss.Style
	DiffRemove  lipgloss.Style
	DiffContext lipgloss.Style

	// Summary styles
	Success lipgloss.Style
	Failure lipgloss.Style

	// Table styles
	TableHeader  lipgloss.Style
	TableFixable lipgloss.Style

	// Misc
	Dim  lipgloss.Style
	Bold lipgloss.Style
}

// NewStyles creates a new Styles with the given color mode.
func NewStyles(colorEnabled bool) *Styles {
	if !colorEnabled {
		return newNoColorStyles()
	}
	return newColorStyles()
}

// newColorStyles creates styles with ANSI 256 colors.
func newColorStyles() *Styles {
	return &Styles{
		Bug:     lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		Note:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true),
		Help:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),

		FilePath:   lipgloss.NewStyle().Bold(true),
		Location:   lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		Category:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Message:    lipgloss.NewStyle().Bold(true),
		FixLabel:   lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true),
		FixText:    lipgloss.NewStyle(),
		SourceLine: lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
		Gutter:     lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		Caret:      lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),

		DiffHeader:  lipgloss.NewStyle().Bold(true),
		DiffHunk:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		DiffAdd:     lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		DiffRemove:  lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		DiffContext: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),

		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		Failure: lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),

		TableHeader:  lipgloss.NewStyle().Bold(true),
		TableFixable: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),

		Dim:  lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Bold: lipgloss.NewStyle().Bold(true),
	}
}

// newNoColorStyles creates styles with no color formatting.
func newNoColorStyles() *Styles {
	plain := lipgloss.NewStyle()
	return &Styles{
		Bug:          plain,
		Error:        plain,
		Warning:      plain,
		Note:         plain,
		Help:         plain,
		FilePath:     plain,
		Location:     plain,
		Category:     plain,
		Message:      plain,
		FixLabel:     plain,
		FixText:      plain,
		SourceLine:   plain,
		Gutter:       plain,
		Caret:        plain,
		DiffHeader:   plain,
		DiffHunk:     plain,
		DiffAdd:      plain,
		DiffRemove:   plain,
		DiffContext:  plain,
		Success:      plain,
		Failure:      plain,
		TableHeader:  plain,
		TableFixable: plain,
		Dim:          plain,
		Bold:         plain,
	}
}

// IsColorEnabled determines if color should be enabled based on mode and writer.
// In auto mode, color is enabled only if the writer is a TTY and NO_COLOR is not set.
func IsColorEnabled(mode config.ColorMode, writer io.Writer) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	default:
		// https://no-color.org/
		if os.Getenv("NO_COLOR") != "" {
			return false
		}
		if f, ok := writer.(*os.File); ok {
			return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
		return false
	}
}

// TerminalWidth returns the column count of writer when it is a terminal,
// otherwise DefaultTermWidth.
func TerminalWidth(writer io.Writer) int {
	if f, ok := writer.(interface{ Fd() uintptr }); ok {
		width, _, err := term.GetSize(int(f.Fd()))
		if err == nil && width > 0 {
			return width
		}
	}
	return DefaultTermWidth
}
