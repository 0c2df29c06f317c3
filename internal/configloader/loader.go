// Package configloader provides configuration loading and resolution.
// It layers defaults, a discovered or explicit YAML file, MDCHECK_
// environment variables and changed command-line flags with koanf, and
// imports markdownlint configuration files.
package configloader

import (
	"context"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	kyaml "github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/yaklabco/mdcheck/pkg/config"
	"github.com/yaklabco/mdcheck/pkg/lint"
)

// keyDelim separates nested koanf keys.
const keyDelim = "."

// flagKeys maps command-line flag names to the config keys they override.
// Flags not listed here (such as --config or --check) are not configuration.
//
//nolint:gochecknoglobals // Read-only lookup table.
var flagKeys = map[string]string{
	"style-headings": "style.headings",
	"exclude":        "linter.exclude",
	"format":         "output.format",
	"color":          "output.color",
	"jobs":           "run.jobs",
	"show-diff":      "fmt.show_diff",
}

// LoadOptions controls configuration loading behavior.
type LoadOptions struct {
	// WorkingDir is the directory to search from for project config.
	// Defaults to current working directory if empty.
	WorkingDir string

	// ExplicitPath is an explicit config file path (from --config flag).
	// If set, project config discovery is skipped.
	ExplicitPath string

	// IgnoreProjectConfig skips project config discovery.
	IgnoreProjectConfig bool

	// IgnoreEnv skips loading environment variables.
	IgnoreEnv bool

	// Flags are the command's flags. Only flags the user changed are applied.
	Flags *pflag.FlagSet

	// Registry resolves rule names in linter.exclude. Defaults to lint.DefaultRegistry.
	Registry *lint.Registry
}

// LoadResult contains the resolved configuration and metadata.
type LoadResult struct {
	// Config is the final merged configuration.
	Config *config.Config

	// ConfigFile is the file that was loaded, or "" when none was found.
	ConfigFile string

	// Warnings contains non-fatal issues encountered during loading.
	Warnings []string
}

// Load resolves the final configuration by layering all sources.
// Precedence (highest to lowest):
//  1. Changed command-line flags (opts.Flags)
//  2. Environment variables (MDCHECK_*)
//  3. Explicit config file (opts.ExplicitPath), or the project config
//     found by searching upward from the working directory
//  4. Defaults
//
// Errors caused by the configuration itself wrap config.ErrInvalidConfig.
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	result := &LoadResult{}
	knf := koanf.New(keyDelim)

	defaults, err := defaultValues()
	if err != nil {
		return nil, err
	}
	if err := knf.Load(confmap.Provider(defaults, keyDelim), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	path, err := resolveConfigFile(ctx, opts)
	if err != nil {
		return nil, err
	}
	if path != "" {
		if err := knf.Load(file.Provider(path), kyaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: load %s: %w", config.ErrInvalidConfig, path, err)
		}
		result.ConfigFile = path
	}

	if !opts.IgnoreEnv {
		if err := knf.Load(env.Provider(EnvPrefix, keyDelim, envKey), nil); err != nil {
			return nil, fmt.Errorf("load environment: %w", err)
		}
	}

	if opts.Flags != nil {
		if err := knf.Load(flagProvider(opts.Flags, knf), nil); err != nil {
			return nil, fmt.Errorf("load flags: %w", err)
		}
	}

	cfg, err := unmarshal(knf)
	if err != nil {
		return nil, err
	}

	registry := opts.Registry
	if registry == nil {
		registry = lint.DefaultRegistry
	}

	validation := Validate(cfg, registry)
	result.Warnings = append(result.Warnings, validation.Warnings...)
	if !validation.Valid() {
		if path != "" {
			return nil, fmt.Errorf("%s: %w", path, validation.Err())
		}
		return nil, validation.Err()
	}

	result.Config = cfg
	return result, nil
}

// resolveConfigFile returns the explicit path, or the discovered project config.
func resolveConfigFile(ctx context.Context, opts LoadOptions) (string, error) {
	if opts.ExplicitPath != "" {
		if !fileExists(opts.ExplicitPath) {
			return "", fmt.Errorf("%w: config file %s not found", config.ErrInvalidConfig, opts.ExplicitPath)
		}
		return opts.ExplicitPath, nil
	}

	if opts.IgnoreProjectConfig {
		return "", nil
	}

	workDir := opts.WorkingDir
	if workDir == "" {
		var err error
		workDir, err = os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
	}

	path, err := FindProjectConfig(ctx, workDir)
	if err != nil {
		return "", fmt.Errorf("discover config: %w", err)
	}
	return path, nil
}

// defaultValues renders config.NewConfig as a nested map so the defaults
// have a single source.
func defaultValues() (map[string]any, error) {
	data, err := config.NewConfig().ToYAML()
	if err != nil {
		return nil, fmt.Errorf("render defaults: %w", err)
	}

	var values map[string]any
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("decode defaults: %w", err)
	}
	return values, nil
}

// flagProvider exposes the changed flags listed in flagKeys under their config keys.
func flagProvider(flags *pflag.FlagSet, knf *koanf.Koanf) *posflag.Posflag {
	return posflag.ProviderWithFlag(flags, keyDelim, knf, func(f *pflag.Flag) (string, any) {
		key, ok := flagKeys[f.Name]
		if !ok || !f.Changed {
			return "", nil
		}
		return key, posflag.FlagVal(flags, f)
	})
}

// unmarshal decodes the merged koanf tree into a Config. Comma-separated
// strings, as produced by environment variables, decode into slices.
func unmarshal(knf *koanf.Koanf) (*config.Config, error) {
	var cfg config.Config

	err := knf.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
				trimSliceHook,
			),
			Result:           &cfg,
			WeaklyTypedInput: true,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: decode: %w", config.ErrInvalidConfig, err)
	}

	return &cfg, nil
}

// trimSliceHook trims whitespace around string slice elements and drops empty ones.
func trimSliceHook(_ reflect.Type, to reflect.Type, data any) (any, error) {
	values, ok := data.([]string)
	if !ok || to.Kind() != reflect.Slice {
		return data, nil
	}

	trimmed := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			trimmed = append(trimmed, v)
		}
	}
	return trimmed, nil
}
