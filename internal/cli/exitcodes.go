package cli

import (
	"errors"

	"github.com/yaklabco/mdcheck/pkg/config"
)

// Exit codes for mdcheck.
const (
	// ExitSuccess indicates successful execution with no issues.
	ExitSuccess = 0

	// ExitIssues indicates the run completed and reported issues.
	ExitIssues = 1

	// ExitUsage indicates invalid command-line usage or configuration.
	ExitUsage = 2

	// ExitInternal indicates a file could not be processed or an internal error.
	ExitInternal = 3
)

var (
	// ErrIssuesFound is returned by a command that completed and reported issues.
	ErrIssuesFound = errors.New("issues found")

	// ErrUsage wraps command-line usage errors.
	ErrUsage = errors.New("invalid usage")

	// ErrFilesFailed is returned when one or more files could not be processed.
	ErrFilesFailed = errors.New("files could not be processed")
)

// ExitCode maps an error returned by a command to the process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrIssuesFound):
		return ExitIssues
	case errors.Is(err, ErrUsage), errors.Is(err, config.ErrInvalidConfig):
		return ExitUsage
	default:
		return ExitInternal
	}
}
