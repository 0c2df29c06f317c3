package cli_test

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdcheck/internal/cli"
	"github.com/yaklabco/mdcheck/pkg/config"
)

var testInfo = cli.BuildInfo{
	Version: "1.2.3",
	Commit:  "abc1234",
	Date:    "2026-01-02",
}

func TestNewRootCommand(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo)
	require.NotNil(t, cmd)

	assert.Equal(t, "mdcheck", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)
	assert.True(t, cmd.SilenceErrors)
	assert.True(t, cmd.SilenceUsage)
}

func TestRootCommand_Subcommands(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo)
	for _, name := range []string{"fmt", "lint", "check", "rules", "init", "migrate", "version"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, sub.Name())
	}
}

func TestRootCommand_Flags(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo)
	for _, name := range []string{"config", "no-config", "debug", "color", "jobs", "chdir", "style-headings"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), name)
	}

	tests := []struct {
		command string
		flags   []string
	}{
		{command: "fmt", flags: []string{"check", "show-diff", "format"}},
		{command: "lint", flags: []string{"exclude", "format", "breakdown"}},
		{command: "check", flags: []string{"exclude", "format", "breakdown", "show-diff"}},
		{command: "rules", flags: []string{"format"}},
		{command: "init", flags: []string{"force", "output"}},
		{command: "migrate", flags: []string{"force", "output"}},
	}
	for _, tt := range tests {
		sub, _, err := cmd.Find([]string{tt.command})
		require.NoError(t, err)
		for _, flag := range tt.flags {
			assert.NotNil(t, sub.Flags().Lookup(flag), "%s --%s", tt.command, flag)
		}
	}
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: cli.ExitSuccess},
		{name: "issues", err: cli.ErrIssuesFound, want: cli.ExitIssues},
		{name: "usage", err: fmt.Errorf("%w: bad flag", cli.ErrUsage), want: cli.ExitUsage},
		{name: "config", err: fmt.Errorf("load config: %w", config.ErrInvalidConfig), want: cli.ExitUsage},
		{name: "files failed", err: fmt.Errorf("%w: 1 of 2", cli.ErrFilesFailed), want: cli.ExitInternal},
		{name: "other", err: errors.New("boom"), want: cli.ExitInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, cli.ExitCode(tt.err))
		})
	}
}

func TestAlreadyReported(t *testing.T) {
	t.Parallel()

	assert.True(t, cli.AlreadyReported(cli.ErrIssuesFound))
	assert.True(t, cli.AlreadyReported(fmt.Errorf("%w: 1 of 1", cli.ErrFilesFailed)))
	assert.False(t, cli.AlreadyReported(cli.ErrUsage))
	assert.False(t, cli.AlreadyReported(nil))
}

func TestUsageErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
	}{
		{name: "unknown command", args: []string{"frobnicate"}},
		{name: "unknown flag", args: []string{"lint", "--frobnicate"}},
		{name: "bad flag value", args: []string{"lint", "--jobs", "many"}},
		{name: "too many args", args: []string{"migrate", "a.json", "b.json"}},
		{name: "args to version", args: []string{"version", "extra"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cmd := cli.NewRootCommand(testInfo)
			cmd.SetOut(&bytes.Buffer{})
			cmd.SetErr(&bytes.Buffer{})
			cmd.SetArgs(tt.args)

			err := cmd.Execute()
			require.Error(t, err)
			assert.Equal(t, cli.ExitUsage, cli.ExitCode(err), err.Error())
		})
	}
}

func TestHelp(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--color", "never", "--help"})

	require.NoError(t, cmd.Execute())
	help := out.String()
	assert.Contains(t, help, "Usage:")
	assert.Contains(t, help, "Available Commands:")
	assert.Contains(t, help, "fmt")
	assert.Contains(t, help, "--config")
	assert.NotContains(t, help, "\x1b[")
}

func TestHelp_Subcommand(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"lint", "--help"})

	require.NoError(t, cmd.Execute())
	help := out.String()
	assert.Contains(t, help, "Examples:")
	assert.Contains(t, help, "--exclude strings")
	assert.Contains(t, help, "Global Flags:")
}

func TestRootCommand_NoArgsShowsHelp(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "Available Commands:")
}
