// Package runner discovers Markdown files and checks or formats them on a
// bounded worker pool.
package runner

import "github.com/yaklabco/mdcheck/pkg/config"

// Mode selects the work done for each file. Modes combine with |.
type Mode uint8

const (
	// ModeLint runs the lint engine.
	ModeLint Mode = 1 << iota

	// ModeFormatCheck reports files that differ from their canonical form.
	ModeFormatCheck

	// ModeFormat rewrites files in canonical form.
	ModeFormat
)

// Has reports whether m includes every mode in other.
func (m Mode) Has(other Mode) bool {
	return m&other == other
}

// Options controls a multi-file run.
type Options struct {
	// Paths are the user-specified paths (files or directories) to process.
	// If empty, defaults to the working directory.
	Paths []string

	// WorkingDir is the base directory used to resolve relative Paths and to
	// shorten reported paths. If empty, the process working directory is used.
	WorkingDir string

	// Extensions is the set of file extensions considered Markdown.
	// Defaults to config.Run.Extensions, then DefaultExtensions().
	Extensions []string

	// ExcludeGlobs are glob patterns, relative to WorkingDir, for files and
	// directories to skip. "**" matches across directories.
	ExcludeGlobs []string

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// Jobs is the maximum number of files processed at once.
	// 0 or negative means runtime.NumCPU().
	Jobs int

	// Mode selects what is done per file. Zero means ModeLint.
	Mode Mode

	// Config is the resolved configuration for this run. Nil means defaults.
	Config *config.Config
}

// OptionsFromConfig fills the discovery and parallelism fields from cfg.
func OptionsFromConfig(cfg *config.Config, mode Mode, paths []string) Options {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return Options{
		Paths:        paths,
		Extensions:   cfg.Run.Extensions,
		ExcludeGlobs: cfg.Run.Ignore,
		Jobs:         cfg.Run.Jobs,
		Mode:         mode,
		Config:       cfg,
	}
}

// DefaultExtensions returns the default set of Markdown file extensions.
func DefaultExtensions() []string {
	return []string{".md", ".markdown"}
}

func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions()
	}
	return o.Extensions
}

func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}

func (o Options) effectiveMode() Mode {
	if o.Mode == 0 {
		return ModeLint
	}
	return o.Mode
}
