package cli

import (
	"fmt"
	"io"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/yaklabco/mdcheck/internal/ui/pretty"
	"github.com/yaklabco/mdcheck/pkg/config"
	"github.com/yaklabco/mdcheck/pkg/lint"
)

type rulesFlags struct {
	format string
}

// ruleInfo represents a rule in JSON output.
type ruleInfo struct {
	Code          string   `json:"code"`
	Name          string   `json:"name"`
	Requirement   string   `json:"requirement"`
	Rationale     string   `json:"rationale"`
	Fixable       bool     `json:"fmt_fixable"`
	Documentation string   `json:"documentation,omitempty"`
	Links         []string `json:"additional_links,omitempty"`
}

func newRulesCommand() *cobra.Command {
	flags := &rulesFlags{}

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List available lint rules",
		Long: `List all lint rules with their codes, names, requirements and whether
running "mdcheck fmt" fixes them.`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			rules := lint.DefaultRegistry.Rules()
			out := cmd.OutOrStdout()

			switch config.OutputFormat(flags.format) {
			case config.FormatJSON:
				return writeRulesJSON(out, rules)
			case config.FormatText:
			default:
				return fmt.Errorf("%w: --format must be text or json, got %q", ErrUsage, flags.format)
			}

			rows := make([]pretty.RuleRow, 0, len(rules))
			for _, rule := range rules {
				meta := rule.Metadata()
				rows = append(rows, pretty.RuleRow{
					Code:        meta.Code,
					Name:        meta.Name,
					FmtFixable:  meta.FmtFixable,
					Requirement: meta.Requirement,
				})
			}

			color, _ := cmd.Flags().GetString("color")
			styles := pretty.NewStyles(pretty.IsColorEnabled(config.ColorMode(color), out))
			pretty.NewTableFormatter(styles, pretty.TerminalWidth(out)).WriteRules(out, rows)
			return nil
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", string(config.FormatText), "output format: text, json")

	return cmd
}

func writeRulesJSON(w io.Writer, rules []lint.Rule) error {
	infos := make([]ruleInfo, 0, len(rules))
	for _, rule := range rules {
		meta := rule.Metadata()
		infos = append(infos, ruleInfo{
			Code:          meta.Code,
			Name:          meta.Name,
			Requirement:   meta.Requirement,
			Rationale:     meta.Rationale,
			Fixable:       meta.FmtFixable,
			Documentation: meta.Documentation,
			Links:         meta.AdditionalLinks,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(infos); err != nil {
		return fmt.Errorf("encode rules: %w", err)
	}
	return nil
}
