package cli

import (
	"github.com/spf13/cobra"

	"github.com/yaklabco/mdcheck/pkg/runner"
)

// reportFlags holds the flags shared by commands that report issues.
type reportFlags struct {
	breakdown string
}

// addReportFlags registers the lint-output flags. --exclude and --format are
// read back through the config loader, which applies them over file and
// environment settings.
func addReportFlags(cmd *cobra.Command, flags *reportFlags) {
	cmd.Flags().StringSlice("exclude", nil, "rule codes or names to skip, e.g. MD009,line-length")
	cmd.Flags().String("format", "text", "output format: text, json, sarif")
	cmd.Flags().StringVar(&flags.breakdown, "breakdown", "",
		"after a text report, tabulate issues by rule or file")
}

func newLintCommand(root *rootOptions) *cobra.Command {
	flags := &reportFlags{}

	cmd := &cobra.Command{
		Use:   "lint [paths...]",
		Short: "Lint Markdown files",
		Long: `Lint Markdown files against the built-in rules.

By default, lints all .md and .markdown files under the current directory.
Specify paths to lint specific files or directories. Exits with status 1
when any issue is reported.

Examples:
  mdcheck lint                        Lint the current directory
  mdcheck lint docs/ README.md        Lint a directory and a file
  mdcheck lint --exclude MD013,MD033  Skip rules
  mdcheck lint --format sarif         Write SARIF for code scanning
  mdcheck lint --breakdown rule       Add a per-rule issue table`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd, root, flags, args, runner.ModeLint)
		},
	}

	addReportFlags(cmd, flags)

	return cmd
}

func newCheckCommand(root *rootOptions) *cobra.Command {
	flags := &reportFlags{}

	cmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Check formatting and lint Markdown files",
		Long: `Check that Markdown files are in canonical form and lint them.

Each file that the formatter would change gets one formatting issue, and
lint issues follow. Exits with status 1 when any issue is reported.

Examples:
  mdcheck check                  Check the current directory
  mdcheck check --show-diff      Include the formatting diff in each issue`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd, root, flags, args, runner.ModeLint|runner.ModeFormatCheck)
		},
	}

	addReportFlags(cmd, flags)
	cmd.Flags().Bool("show-diff", false, "include a unified diff in formatting issues")

	return cmd
}

// runReport runs a checking mode and maps the result to the exit error.
func runReport(cmd *cobra.Command, root *rootOptions, flags *reportFlags, args []string, mode runner.Mode) error {
	if err := validateBreakdown(flags.breakdown); err != nil {
		return err
	}

	sess, err := loadSession(cmd, root)
	if err != nil {
		return err
	}

	result, err := sess.execute(cmd, args, mode)
	if err != nil {
		return err
	}
	sess.writeBreakdown(cmd, result, flags.breakdown)

	return outcome(result)
}
