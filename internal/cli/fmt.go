package cli

import (
	"github.com/spf13/cobra"

	"github.com/yaklabco/mdcheck/internal/logging"
	"github.com/yaklabco/mdcheck/pkg/runner"
)

type fmtFlags struct {
	check bool
}

func newFmtCommand(root *rootOptions) *cobra.Command {
	flags := &fmtFlags{}

	cmd := &cobra.Command{
		Use:   "fmt [paths...]",
		Short: "Format Markdown files",
		Long: `Rewrite Markdown files in canonical form.

Files are replaced atomically, and a file changed on disk while it was being
formatted is skipped. With --check nothing is written: every file that would
change is reported and the command exits with status 1.

Examples:
  mdcheck fmt                          Format the current directory
  mdcheck fmt README.md                Format one file
  mdcheck fmt --check --show-diff      Show what would change`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFmt(cmd, root, flags, args)
		},
	}

	cmd.Flags().BoolVar(&flags.check, "check", false, "report unformatted files instead of rewriting them")
	cmd.Flags().Bool("show-diff", false, "with --check, include a unified diff in each issue")
	cmd.Flags().String("format", "text", "output format: text, json, sarif")

	return cmd
}

func runFmt(cmd *cobra.Command, root *rootOptions, flags *fmtFlags, args []string) error {
	sess, err := loadSession(cmd, root)
	if err != nil {
		return err
	}

	mode := runner.ModeFormat
	if flags.check {
		mode = runner.ModeFormatCheck
	}

	result, err := sess.execute(cmd, args, mode)
	if err != nil {
		return err
	}

	for _, file := range result.Files {
		if file.Written {
			sess.logger.Debug("formatted", logging.FieldPath, file.Path)
		}
	}

	return outcome(result)
}
