package cli

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yaklabco/mdcheck/internal/ui/pretty"
	"github.com/yaklabco/mdcheck/pkg/config"
)

// helpStyles contains Lipgloss styles for command help.
type helpStyles struct {
	command    lipgloss.Style
	heading    lipgloss.Style
	subcommand lipgloss.Style
	flag       lipgloss.Style
	example    lipgloss.Style
	dim        lipgloss.Style
}

func newHelpStyles(colorEnabled bool) *helpStyles {
	if !colorEnabled {
		plain := lipgloss.NewStyle()
		return &helpStyles{
			command:    plain,
			heading:    plain,
			subcommand: plain,
			flag:       plain,
			example:    plain,
			dim:        plain,
		}
	}
	return &helpStyles{
		command:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
		heading:    lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		subcommand: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		flag:       lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		example:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		dim:        lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

const usageTemplate = `{{ heading "Usage:" }}
  {{if .Runnable}}{{ command .UseLine }}{{end}}
  {{if .HasAvailableSubCommands}}{{ command .CommandPath }} [command]{{end}}

{{- if gt (len .Aliases) 0}}

{{ heading "Aliases:" }}
  {{ join .Aliases ", " }}
{{- end}}

{{- if .HasExample}}

{{ heading "Examples:" }}
{{ example .Example }}
{{- end}}

{{- if .HasAvailableSubCommands}}

{{ heading "Available Commands:" }}{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{ subcommand (rpad .Name .NamePadding) }} {{ .Short }}{{end}}{{end}}
{{- end}}

{{- if .HasAvailableLocalFlags}}

{{ heading "Flags:" }}
{{ flags .LocalFlags }}
{{- end}}

{{- if .HasAvailableInheritedFlags}}

{{ heading "Global Flags:" }}
{{ flags .InheritedFlags }}
{{- end}}

{{- if .HasAvailableSubCommands}}

Use "{{ command (print .CommandPath " [command] --help") }}" for more information about a command.
{{- end}}
`

const helpTemplate = `{{with (or .Long .Short)}}{{ . | trimTrailingWhitespaces }}

{{end}}` + usageTemplate

// installHelp sets styled help and usage functions on root. Styles are chosen
// when help is rendered so that a --color flag on the same command line applies.
func installHelp(root *cobra.Command, colorMode *string) {
	render := func(cmd *cobra.Command, name, text string) error {
		enabled := pretty.IsColorEnabled(config.ColorMode(*colorMode), cmd.OutOrStdout())
		tmpl, err := template.New(name).Funcs(helpFuncs(newHelpStyles(enabled))).Parse(text)
		if err != nil {
			return fmt.Errorf("parse %s template: %w", name, err)
		}
		return tmpl.Execute(cmd.OutOrStdout(), cmd)
	}

	root.SetUsageFunc(func(cmd *cobra.Command) error {
		return render(cmd, "usage", usageTemplate)
	})
	root.SetHelpFunc(func(cmd *cobra.Command, _ []string) {
		if err := render(cmd, "help", helpTemplate); err != nil {
			cmd.PrintErrln(err)
		}
	})
}

func helpFuncs(styles *helpStyles) template.FuncMap {
	return template.FuncMap{
		"command":                 styles.command.Render,
		"heading":                 styles.heading.Render,
		"subcommand":              styles.subcommand.Render,
		"example":                 styles.example.Render,
		"flags":                   func(fs *pflag.FlagSet) string { return styleFlagUsages(styles, fs) },
		"join":                    strings.Join,
		"rpad":                    rpad,
		"trimTrailingWhitespaces": trimTrailingWhitespaces,
	}
}

// styleFlagUsages renders pflag's usage listing with flag names highlighted
// and value types dimmed.
func styleFlagUsages(styles *helpStyles, fs *pflag.FlagSet) string {
	usages := strings.TrimSuffix(fs.FlagUsages(), "\n")
	if usages == "" {
		return ""
	}

	lines := strings.Split(usages, "\n")
	for i, line := range lines {
		trimmed := strings.TrimLeft(line, " ")
		names, desc, ok := splitFlagLine(trimmed)
		if !ok {
			continue
		}
		indent := line[:len(line)-len(trimmed)]
		lines[i] = indent + styleFlagNames(styles, names) + "   " + desc
	}
	return strings.Join(lines, "\n")
}

// splitFlagLine splits "-f, --flag type   description" at the first run of
// two or more spaces.
func splitFlagLine(line string) (string, string, bool) {
	idx := strings.Index(line, "  ")
	if idx <= 0 {
		return "", "", false
	}
	desc := strings.TrimLeft(line[idx:], " ")
	if desc == "" {
		return "", "", false
	}
	return line[:idx], desc, true
}

func styleFlagNames(styles *helpStyles, names string) string {
	tokens := strings.Fields(names)
	for i, token := range tokens {
		if !strings.HasPrefix(token, "-") {
			tokens[i] = styles.dim.Render(token)
			continue
		}
		clean, comma := strings.CutSuffix(token, ",")
		tokens[i] = styles.flag.Render(clean)
		if comma {
			tokens[i] += ","
		}
	}
	return strings.Join(tokens, " ")
}

func rpad(str string, padding int) string {
	if len(str) >= padding {
		return str
	}
	return str + strings.Repeat(" ", padding-len(str))
}

func trimTrailingWhitespaces(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}
