package errors

import (
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/kacl-dev/kacl/internal/changelog"
)

// Common error messages for the kacl CLI.
// These templates ensure consistent, actionable error messages.

// ChangelogNotFound creates an error for a missing changelog file.
func ChangelogNotFound(path string) *CLIError {
	return NewPrerequisiteError(
		fmt.Sprintf("changelog not found: %s", path),
		"Create one with: kacl new -o "+path,
		"Or point to another file with: kacl -f <file> <command>",
		"Or set changelog_file in .kacl.yml",
	)
}

// MissingArguments creates an error for a command called without its arguments.
func MissingArguments(command, what, usage string) *CLIError {
	return NewArgumentErrorWithUsage(
		fmt.Sprintf("%s is required", what),
		usage,
		"Run 'kacl "+command+" --help' for details",
	)
}

// ConfigParseError creates an error for an unreadable or invalid config file.
func ConfigParseError(err error) *CLIError {
	return WrapWithMessage(err, Configuration,
		"failed to load configuration",
		"Check the file for syntax errors at the reported line",
		"List valid keys with: kacl config keys",
		"Write a fresh template with: kacl config init",
	)
}

// InvalidFlagCombination creates an error for incompatible flag combinations.
func InvalidFlagCombination(flags string, reason string) *CLIError {
	return NewArgumentError(
		fmt.Sprintf("invalid flag combination: %s", flags),
		reason,
		"Use 'kacl <command> --help' to see valid options",
	)
}

// FileNotWritable creates an error when a file cannot be written.
func FileNotWritable(path string, err error) *CLIError {
	return WrapWithMessage(err, Runtime,
		fmt.Sprintf("cannot write to file: %s", path),
		"Check file permissions: ls -la "+path,
		"Ensure parent directory exists and is writable",
	)
}

// GitNotRepository creates an error when a git operation runs outside a repository.
func GitNotRepository() *CLIError {
	return NewPrerequisiteError(
		"not a git repository",
		"Initialize with: git init",
		"Or drop --commit/--tag and commit the changelog yourself",
	)
}

// DirtyWorkingTree creates an error when a release commit would pick up unrelated changes.
func DirtyWorkingTree(files []string) *CLIError {
	return NewPrerequisiteError(
		fmt.Sprintf("working tree has uncommitted changes: %s", strings.Join(files, ", ")),
		"Commit or stash the changes first",
		"Or pass --allow-dirty to release anyway",
	)
}

// MissingHostURL creates an error when link templates need a host and none is known.
func MissingHostURL() *CLIError {
	return NewConfigError(
		"no host URL available for link generation",
		"Pass --host-url https://github.com/<org>/<repo>",
		"Or set links.host_url in .kacl.yml",
		"Or add an 'origin' remote to the repository",
	)
}

// FromChangelog converts a changelog operation error into a CLIError with
// remediation for its kind. Errors of other types are wrapped as runtime errors.
func FromChangelog(err error) *CLIError {
	if err == nil {
		return nil
	}
	if cliErr := AsCLIError(err); cliErr != nil {
		return cliErr
	}

	kind, ok := changelog.KindOf(err)
	if !ok {
		return Wrap(err, Runtime)
	}

	switch kind {
	case changelog.ErrNoPriorVersion:
		return Wrap(err, Prerequisite,
			"Release an explicit version first, e.g.: kacl release 1.0.0")
	case changelog.ErrUnsupportedIncrement:
		return Wrap(err, Argument,
			"Use a semantic version or one of: major, minor, patch, post",
			"post requires post_release_version_prefix in the config")
	case changelog.ErrInvalidSemver:
		return Wrap(err, Argument,
			"Versions follow https://semver.org, e.g. 1.2.3 or 1.2.3-rc.1")
	case changelog.ErrNoChanges:
		return Wrap(err, Prerequisite,
			"Add entries first: kacl add <section> <message> --modify")
	case changelog.ErrVersionExists, changelog.ErrVersionNotIncreasing:
		return Wrap(err, Argument,
			"List released versions with: kacl get --list",
			"Or let kacl pick the next one: kacl release patch")
	case changelog.ErrMissingSourceFile:
		var ce *changelog.Error
		stderrors.As(err, &ce)
		cliErr := ChangelogNotFound(ce.Path)
		cliErr.Err = err
		return cliErr
	case changelog.ErrVersionNotFound:
		return Wrap(err, Argument,
			"Versions are matched without a leading 'v'",
			"Use 'unreleased' for pending changes")
	default:
		return Wrap(err, Runtime)
	}
}
