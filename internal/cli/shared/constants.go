// Package shared provides constants and helpers used across CLI subpackages.
package shared

import (
	"errors"
	"fmt"

	clierrors "github.com/kacl-dev/kacl/internal/errors"
)

// Exit codes for the kacl CLI.
// These codes support programmatic composition and CI/CD integration.
const (
	// ExitSuccess indicates successful command execution
	ExitSuccess = 0

	// ExitValidationFailed indicates an invalid changelog or a failed operation
	ExitValidationFailed = 1

	// ExitInvalidArguments indicates invalid command arguments or configuration
	ExitInvalidArguments = 3

	// ExitMissingDependency indicates a missing changelog, repository or prior release
	ExitMissingDependency = 4
)

// Command group IDs used by the root command help output.
const (
	GroupGettingStarted = "getting-started"
	GroupChangelog      = "changelog"
	GroupInspect        = "inspect"
	GroupConfiguration  = "configuration"
)

// Flag names shared between the root command and its subpackages.
const (
	ConfigFlagName = "config"
	FileFlagName   = "file"
)

// ExitError carries a process exit code through cobra's error return.
// Its diagnostics have already been printed.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

// NewExitError returns an error that makes the process exit with code.
func NewExitError(code int) error {
	return &ExitError{Code: code}
}

// ExitCode maps an error returned by a command to a process exit code.
// CLIErrors map by category; any other error is a failure.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	if cliErr := clierrors.AsCLIError(err); cliErr != nil {
		switch cliErr.Category {
		case clierrors.Argument, clierrors.Configuration:
			return ExitInvalidArguments
		case clierrors.Prerequisite:
			return ExitMissingDependency
		}
	}
	return ExitValidationFailed
}
