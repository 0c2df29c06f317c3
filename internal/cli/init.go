package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdcheck/internal/logging"
	"github.com/yaklabco/mdcheck/pkg/config"
	"github.com/yaklabco/mdcheck/pkg/fsutil"
)

type initFlags struct {
	force  bool
	output string
}

func newInitCommand(root *rootOptions) *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a default mdcheck configuration file",
		Long: `Create a ` + config.DefaultFileName + ` configuration file with every option
set to its default and documented.

Examples:
  mdcheck init                       Create ` + config.DefaultFileName + `
  mdcheck init --output custom.yml   Write to a custom file path
  mdcheck init --force               Overwrite an existing file`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, root, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "overwrite an existing configuration file")
	cmd.Flags().StringVarP(&flags.output, "output", "o", config.DefaultFileName, "output file path")

	return cmd
}

func runInit(cmd *cobra.Command, root *rootOptions, flags *initFlags) error {
	logger := logging.NewInteractive(cmd.ErrOrStderr())

	workDir, err := resolveWorkDir(root.workDir)
	if err != nil {
		return err
	}
	path := resolvePath(workDir, flags.output)

	if _, err := os.Stat(path); err == nil {
		if !flags.force {
			return fmt.Errorf("%w: %s already exists; use --force to overwrite", ErrUsage, flags.output)
		}
		logger.Warn("overwriting existing file", logging.FieldPath, flags.output)
	}

	content, err := config.GenerateTemplate()
	if err != nil {
		return fmt.Errorf("generate template: %w", err)
	}

	if err := fsutil.WriteAtomic(cmd.Context(), path, content, fsutil.DefaultFileMode); err != nil {
		return fmt.Errorf("write %s: %w", flags.output, err)
	}

	logger.Info("created configuration file", logging.FieldPath, flags.output)
	logger.Info("run 'mdcheck rules' to see all available rules")

	return nil
}
