// Package cli provides the Cobra command structure for mdcheck.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdcheck/internal/logging"
	"github.com/yaklabco/mdcheck/pkg/config"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// rootOptions holds the persistent flag values and build details shared by
// every command.
type rootOptions struct {
	version             string
	configPath          string
	debug               bool
	color               string
	jobs                int
	workDir             string
	styleHeadings       string
	ignoreProjectConfig bool
}

// NewRootCommand creates the root mdcheck command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	flags := &rootOptions{version: info.Version}

	rootCmd := &cobra.Command{
		Use:   "mdcheck",
		Short: "A Markdown formatter and linter",
		Long: `mdcheck formats Markdown into a canonical form and lints it against
a catalogue of markdownlint-compatible rules.

It targets CommonMark and GitHub Flavored Markdown (GFM). Formatting is
written atomically, and every lint issue carries its requirement, rationale
and a suggested fix.`,
		Args: usageArgs(cobra.NoArgs),
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			level := "info"
			if flags.debug {
				level = "debug"
			}
			logger := logging.NewWithWriter(cmd.ErrOrStderr(), level)
			cmd.SetContext(logging.WithLogger(cmd.Context(), logger))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pflags := rootCmd.PersistentFlags()
	pflags.StringVar(&flags.configPath, "config", "", "path to config file")
	pflags.BoolVar(&flags.ignoreProjectConfig, "no-config", false, "ignore project config files")
	pflags.BoolVar(&flags.debug, "debug", false, "enable debug logging")
	pflags.StringVar(&flags.color, "color", string(config.ColorAuto), "colorize output: auto, always, never")
	pflags.IntVarP(&flags.jobs, "jobs", "j", 0, "number of files processed in parallel (0 = number of CPUs)")
	pflags.StringVarP(&flags.workDir, "chdir", "C", "", "run as if started in `dir`")
	pflags.StringVar(&flags.styleHeadings, "style-headings", "",
		"heading style: consistent, atx, atx_closed, setext, setext_with_atx, setext_with_atx_closed")

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	})

	rootCmd.AddCommand(newFmtCommand(flags))
	rootCmd.AddCommand(newLintCommand(flags))
	rootCmd.AddCommand(newCheckCommand(flags))
	rootCmd.AddCommand(newRulesCommand())
	rootCmd.AddCommand(newInitCommand(flags))
	rootCmd.AddCommand(newMigrateCommand(flags))
	rootCmd.AddCommand(newVersionCommand(info))

	installHelp(rootCmd, &flags.color)

	return rootCmd
}

// usageArgs wraps a positional-argument validator so its errors map to the
// usage exit code.
func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return fmt.Errorf("%w: %w", ErrUsage, err)
		}
		return nil
	}
}
