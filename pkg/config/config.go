// Package config defines core configuration types for mdcheck.
// These types are pure data structures; layered loading lives in internal/configloader.
package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrInvalidConfig is wrapped by every validation error.
var ErrInvalidConfig = errors.New("invalid configuration")

// HeadingStyle selects how headings are written.
type HeadingStyle string

const (
	HeadingConsistent HeadingStyle = "consistent"
	HeadingATX        HeadingStyle = "atx"
	HeadingSetext     HeadingStyle = "setext"
)

// ListStyle selects the marker used for unordered list items.
type ListStyle string

const (
	ListConsistent ListStyle = "consistent"
	ListDash       ListStyle = "dash"
	ListAsterisk   ListStyle = "asterisk"
	ListPlus       ListStyle = "plus"
)

// Marker returns the marker byte for a concrete list style, or 0 for "consistent".
func (s ListStyle) Marker() byte {
	switch s {
	case ListDash:
		return '-'
	case ListAsterisk:
		return '*'
	case ListPlus:
		return '+'
	case ListConsistent:
		return 0
	default:
		return 0
	}
}

// ListStyleForMarker maps a marker byte back to its style.
func ListStyleForMarker(marker byte) ListStyle {
	switch marker {
	case '*':
		return ListAsterisk
	case '+':
		return ListPlus
	default:
		return ListDash
	}
}

// StrongStyle selects the wrapper used for strong emphasis.
type StrongStyle string

const (
	StrongConsistent StrongStyle = "consistent"
	StrongAsterisk   StrongStyle = "asterisk"
	StrongUnderscore StrongStyle = "underscore"
)

// CodeBlockStyle selects fenced or indented code blocks.
type CodeBlockStyle string

const (
	CodeBlockConsistent CodeBlockStyle = "consistent"
	CodeBlockFenced     CodeBlockStyle = "fenced"
	CodeBlockIndented   CodeBlockStyle = "indented"
)

// OutputFormat specifies the output format for issues.
type OutputFormat string

const (
	FormatText  OutputFormat = "text"
	FormatJSON  OutputFormat = "json"
	FormatSARIF OutputFormat = "sarif"
)

// ColorMode controls colored terminal output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// Defaults shared by the formatter and the rules.
const (
	DefaultNumSpacesAfterListMarker = 1
	DefaultCodeBlockLanguage        = "text"
)

// StyleConfig holds the document style preferences used by both fmt and lint.
type StyleConfig struct {
	Headings                 HeadingStyle `koanf:"headings" yaml:"headings"`
	UnorderedLists           ListStyle    `koanf:"unordered_lists" yaml:"unordered_lists"`
	Bold                     StrongStyle  `koanf:"bold" yaml:"bold"`
	NumSpacesAfterListMarker int          `koanf:"num_spaces_after_list_marker" yaml:"num_spaces_after_list_marker"`
	DefaultCodeBlockLanguage string       `koanf:"default_code_block_language" yaml:"default_code_block_language"`
}

// LinterConfig holds rule selection and rule-specific options.
type LinterConfig struct {
	// Exclude lists rule codes to disable, compared case-insensitively.
	Exclude []string `koanf:"exclude" yaml:"exclude,omitempty"`

	// MD031ListItems applies the fenced-code blank line rule inside list items.
	MD031ListItems bool `koanf:"md031_list_items" yaml:"md031_list_items"`

	// MD033AllowedHTMLTags lists element names allowed by the inline HTML rule.
	MD033AllowedHTMLTags []string `koanf:"md033_allowed_html_tags" yaml:"md033_allowed_html_tags,omitempty"`

	// MD046Style is the preferred code block style.
	MD046Style CodeBlockStyle `koanf:"md046_style" yaml:"md046_style"`
}

// FmtConfig controls the formatter and the format check.
type FmtConfig struct {
	ShowDiff           bool `koanf:"show_diff" yaml:"show_diff"`
	DetectCodeLanguage bool `koanf:"detect_code_language" yaml:"detect_code_language"`
}

// RunConfig controls file discovery and parallelism.
type RunConfig struct {
	Extensions []string `koanf:"extensions" yaml:"extensions"`
	Ignore     []string `koanf:"ignore" yaml:"ignore,omitempty"`

	// Jobs is the number of parallel workers; 0 means one per CPU.
	Jobs int `koanf:"jobs" yaml:"jobs"`
}

// OutputConfig controls reporting.
type OutputConfig struct {
	Format OutputFormat `koanf:"format" yaml:"format"`
	Color  ColorMode    `koanf:"color" yaml:"color"`
}

// Config is the root configuration structure for mdcheck.
type Config struct {
	Style  StyleConfig  `koanf:"style" yaml:"style"`
	Linter LinterConfig `koanf:"linter" yaml:"linter"`
	Fmt    FmtConfig    `koanf:"fmt" yaml:"fmt"`
	Run    RunConfig    `koanf:"run" yaml:"run"`
	Output OutputConfig `koanf:"output" yaml:"output"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Style: StyleConfig{
			Headings:                 HeadingConsistent,
			UnorderedLists:           ListConsistent,
			Bold:                     StrongConsistent,
			NumSpacesAfterListMarker: DefaultNumSpacesAfterListMarker,
			DefaultCodeBlockLanguage: DefaultCodeBlockLanguage,
		},
		Linter: LinterConfig{
			MD031ListItems: true,
			MD046Style:     CodeBlockConsistent,
		},
		Run: RunConfig{
			Extensions: []string{".md", ".markdown"},
		},
		Output: OutputConfig{
			Format: FormatText,
			Color:  ColorAuto,
		},
	}
}

// IsExcluded reports whether the rule code appears in linter.exclude,
// ignoring case.
func (c *Config) IsExcluded(code string) bool {
	if c == nil {
		return false
	}
	return slices.ContainsFunc(c.Linter.Exclude, func(excluded string) bool {
		return strings.EqualFold(strings.TrimSpace(excluded), code)
	})
}

// SpacesAfterListMarker returns the configured spacing, falling back to the default.
func (c *Config) SpacesAfterListMarker() int {
	if c == nil || c.Style.NumSpacesAfterListMarker < 1 {
		return DefaultNumSpacesAfterListMarker
	}
	return c.Style.NumSpacesAfterListMarker
}

// CodeBlockLanguage returns the default fence language, falling back to "text".
func (c *Config) CodeBlockLanguage() string {
	if c == nil || c.Style.DefaultCodeBlockLanguage == "" {
		return DefaultCodeBlockLanguage
	}
	return c.Style.DefaultCodeBlockLanguage
}

// Validate checks enum fields and numeric ranges.
// Empty enum values are accepted and treated as their defaults.
func (c *Config) Validate() error {
	var errs []error

	check := func(field, value string, allowed ...string) {
		if value == "" || slices.Contains(allowed, value) {
			return
		}
		errs = append(errs, fmt.Errorf("%w: %s must be one of %s, got %q",
			ErrInvalidConfig, field, strings.Join(allowed, ", "), value))
	}

	check("style.headings", string(c.Style.Headings),
		string(HeadingConsistent), string(HeadingATX), string(HeadingSetext))
	check("style.unordered_lists", string(c.Style.UnorderedLists),
		string(ListConsistent), string(ListDash), string(ListAsterisk), string(ListPlus))
	check("style.bold", string(c.Style.Bold),
		string(StrongConsistent), string(StrongAsterisk), string(StrongUnderscore))
	check("linter.md046_style", string(c.Linter.MD046Style),
		string(CodeBlockConsistent), string(CodeBlockFenced), string(CodeBlockIndented))
	check("output.format", string(c.Output.Format),
		string(FormatText), string(FormatJSON), string(FormatSARIF))
	check("output.color", string(c.Output.Color),
		string(ColorAuto), string(ColorAlways), string(ColorNever))

	if c.Style.NumSpacesAfterListMarker < 0 {
		errs = append(errs, fmt.Errorf("%w: style.num_spaces_after_list_marker must not be negative",
			ErrInvalidConfig))
	}
	if c.Run.Jobs < 0 {
		errs = append(errs, fmt.Errorf("%w: run.jobs must not be negative", ErrInvalidConfig))
	}

	return errors.Join(errs...)
}
