package configloader

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/yaklabco/mdcheck/pkg/config"
	"github.com/yaklabco/mdcheck/pkg/lint"
)

// MigrationResult contains the result of converting a markdownlint config.
type MigrationResult struct {
	// Config is the converted mdcheck configuration.
	Config *config.Config

	// Warnings contains non-fatal issues encountered during conversion.
	Warnings []string

	// SourcePath is the path to the original markdownlint config.
	SourcePath string
}

// ConvertMarkdownlintConfig converts a markdownlint config file to an mdcheck
// configuration. Disabled rules become linter.exclude entries; the options of
// MD003, MD004, MD030, MD031, MD033 and MD046 map to their style and linter keys.
func ConvertMarkdownlintConfig(path string, registry *lint.Registry) (*MigrationResult, error) {
	if IsJavaScriptConfig(path) {
		return nil, fmt.Errorf("cannot convert JavaScript config file %q; please create an mdcheck config manually", path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var raw map[string]any
	if IsJSONConfig(path) {
		if err := parseJSONC(content, &raw); err != nil {
			return nil, fmt.Errorf("parse JSON: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(content, &raw); err != nil {
			return nil, fmt.Errorf("parse YAML: %w", err)
		}
	}

	if registry == nil {
		registry = lint.DefaultRegistry
	}

	result := &MigrationResult{
		Config:     config.NewConfig(),
		SourcePath: path,
	}

	enabledByDefault := processSpecialKeys(raw, result)

	enabled := make(map[string]bool)
	keys := make([]string, 0, len(raw))
	for key := range raw {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	for _, key := range keys {
		code, found := registry.Resolve(key)
		if !found {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("rule or tag %q is not supported; skipping", key))
			continue
		}
		enabled[code] = valueToBool(raw[key])
		if options, ok := raw[key].(map[string]any); ok {
			applyRuleOptions(result.Config, code, options, result)
		}
	}

	for _, code := range registry.Codes() {
		on, configured := enabled[code]
		if !configured {
			on = enabledByDefault
		}
		if !on {
			result.Config.Linter.Exclude = append(result.Config.Linter.Exclude, code)
		}
	}

	return result, nil
}

// parseJSONC parses JSON with comments (JSONC format).
// It strips comments before parsing.
func parseJSONC(content []byte, target any) error {
	if err := json.Unmarshal(content, target); err == nil {
		return nil
	}

	stripped := stripJSONComments(content)
	if err := json.Unmarshal(stripped, target); err != nil {
		return fmt.Errorf("unmarshal stripped JSON: %w", err)
	}
	return nil
}

// stripJSONComments removes JavaScript-style comments from JSON content.
func stripJSONComments(content []byte) []byte {
	var result []byte
	inString := false
	inSingleComment := false
	inMultiComment := false

	for idx := 0; idx < len(content); idx++ {
		char := content[idx]

		if inSingleComment {
			if char == '\n' {
				inSingleComment = false
				result = append(result, char)
			}
			continue
		}

		if inMultiComment {
			if char == '*' && idx+1 < len(content) && content[idx+1] == '/' {
				inMultiComment = false
				idx++
			}
			continue
		}

		if inString {
			result = append(result, char)
			if char == '\\' && idx+1 < len(content) {
				idx++
				result = append(result, content[idx])
			} else if char == '"' {
				inString = false
			}
			continue
		}

		switch {
		case char == '"':
			inString = true
		case char == '/' && idx+1 < len(content) && content[idx+1] == '/':
			inSingleComment = true
			idx++
			continue
		case char == '/' && idx+1 < len(content) && content[idx+1] == '*':
			inMultiComment = true
			idx++
			continue
		}

		result = append(result, char)
	}

	return result
}

// processSpecialKeys consumes the markdownlint keys that are not rules and
// returns whether unlisted rules stay enabled.
func processSpecialKeys(raw map[string]any, result *MigrationResult) bool {
	enabledByDefault := true
	if defaultVal, ok := raw["default"].(bool); ok {
		enabledByDefault = defaultVal
	}
	delete(raw, "default")

	if extends, ok := raw["extends"].(string); ok {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("'extends: %q' is not supported; merge the configs manually", extends))
	}
	delete(raw, "extends")
	delete(raw, "$schema")

	return enabledByDefault
}

// applyRuleOptions maps the options of one markdownlint rule onto cfg.
func applyRuleOptions(cfg *config.Config, code string, options map[string]any, result *MigrationResult) {
	style, _ := options["style"].(string)

	switch code {
	case "MD003":
		switch style {
		case "atx", "atx_closed":
			cfg.Style.Headings = config.HeadingATX
		case "setext", "setext_with_atx", "setext_with_atx_closed":
			cfg.Style.Headings = config.HeadingSetext
		}
	case "MD004":
		switch style {
		case "dash":
			cfg.Style.UnorderedLists = config.ListDash
		case "asterisk":
			cfg.Style.UnorderedLists = config.ListAsterisk
		case "plus":
			cfg.Style.UnorderedLists = config.ListPlus
		case "sublist":
			result.Warnings = append(result.Warnings, "MD004 style \"sublist\" is not supported; using consistent")
		}
	case "MD030":
		if n, ok := toInt(options["ul_single"]); ok && n > 0 {
			cfg.Style.NumSpacesAfterListMarker = n
		}
	case "MD031":
		if listItems, ok := options["list_items"].(bool); ok {
			cfg.Linter.MD031ListItems = listItems
		}
	case "MD033":
		if elements, ok := options["allowed_elements"].([]any); ok {
			for _, el := range elements {
				if name, ok := el.(string); ok {
					cfg.Linter.MD033AllowedHTMLTags = append(cfg.Linter.MD033AllowedHTMLTags, strings.ToLower(name))
				}
			}
		}
	case "MD046":
		switch style {
		case "fenced":
			cfg.Linter.MD046Style = config.CodeBlockFenced
		case "indented":
			cfg.Linter.MD046Style = config.CodeBlockIndented
		}
	}
}

// toInt converts a decoded JSON or YAML number to int.
func toInt(value any) (int, bool) {
	switch v := value.(type) {
	case int:
		return v, true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}

// valueToBool converts various value types to a boolean.
func valueToBool(value any) bool {
	switch v := value.(type) {
	case bool:
		return v
	case nil:
		return false
	default:
		return true
	}
}

// GenerateMigrationHeader returns a header comment for migrated configs.
func GenerateMigrationHeader(sourcePath string) string {
	return fmt.Sprintf("# mdcheck configuration\n# Migrated from: %s", filepath.Base(sourcePath))
}

// CanMigrate returns true if the config file can be migrated.
// JavaScript config files cannot be migrated.
func CanMigrate(path string) bool {
	return !IsJavaScriptConfig(path)
}
