package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdcheck/internal/configloader"
	"github.com/yaklabco/mdcheck/internal/logging"
	"github.com/yaklabco/mdcheck/pkg/config"
	"github.com/yaklabco/mdcheck/pkg/fsutil"
	"github.com/yaklabco/mdcheck/pkg/lint"
)

type migrateFlags struct {
	force  bool
	output string
}

func newMigrateCommand(root *rootOptions) *cobra.Command {
	flags := &migrateFlags{}

	cmd := &cobra.Command{
		Use:   "migrate [input]",
		Short: "Convert a markdownlint configuration to mdcheck format",
		Long: `Convert a markdownlint configuration file (.markdownlint.json, .jsonc,
.yaml or .yml) to ` + config.DefaultFileName + `.

Disabled rules become linter.exclude entries, and rule options that map to
mdcheck settings are carried over. Anything that cannot be carried over is
reported as a warning. With no input, the working directory is searched for a
markdownlint configuration file.

JavaScript configuration files (.markdownlint.cjs, .markdownlint.mjs) cannot
be converted.

Examples:
  mdcheck migrate                       Auto-detect and convert
  mdcheck migrate .markdownlint.json    Convert a specific file
  mdcheck migrate --output config.yml   Write to a custom path`,
		Args: usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := ""
			if len(args) == 1 {
				input = args[0]
			}
			return runMigrate(cmd, root, flags, input)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "overwrite an existing output file")
	cmd.Flags().StringVarP(&flags.output, "output", "o", config.DefaultFileName, "output file path")

	return cmd
}

func runMigrate(cmd *cobra.Command, root *rootOptions, flags *migrateFlags, input string) error {
	logger := logging.NewInteractive(cmd.ErrOrStderr())

	workDir, err := resolveWorkDir(root.workDir)
	if err != nil {
		return err
	}

	inputPath := resolvePath(workDir, input)
	if inputPath == "" {
		inputPath = configloader.FindMarkdownlintConfig(workDir)
		if inputPath == "" {
			return fmt.Errorf("%w: no markdownlint configuration file found in %s", ErrUsage, workDir)
		}
		logger.Info("found markdownlint config", logging.FieldPath, inputPath)
	}

	if _, err := os.Stat(inputPath); err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}
	if configloader.IsJavaScriptConfig(inputPath) {
		return fmt.Errorf("%w: JavaScript configuration %s must be migrated by hand", ErrUsage, inputPath)
	}
	if !configloader.CanMigrate(inputPath) {
		return fmt.Errorf("%w: unsupported configuration file %s", ErrUsage, inputPath)
	}

	outputPath := resolvePath(workDir, flags.output)
	if _, err := os.Stat(outputPath); err == nil {
		if !flags.force {
			return fmt.Errorf("%w: %s already exists; use --force to overwrite", ErrUsage, flags.output)
		}
		logger.Warn("overwriting existing file", logging.FieldPath, flags.output)
	}

	result, err := configloader.ConvertMarkdownlintConfig(inputPath, lint.DefaultRegistry)
	if err != nil {
		return fmt.Errorf("%w: convert configuration: %w", config.ErrInvalidConfig, err)
	}
	for _, warning := range result.Warnings {
		logger.Warn(warning)
	}

	content, err := result.Config.ToYAMLWithHeader(configloader.GenerateMigrationHeader(inputPath))
	if err != nil {
		return fmt.Errorf("serialize configuration: %w", err)
	}

	if err := fsutil.WriteAtomic(cmd.Context(), outputPath, content, fsutil.DefaultFileMode); err != nil {
		return fmt.Errorf("write %s: %w", flags.output, err)
	}

	logger.Info("migration complete", logging.FieldInput, inputPath, logging.FieldOutput, flags.output)
	if len(result.Warnings) > 0 {
		logger.Warn("review the warnings above and verify the migrated configuration")
	}

	return nil
}
