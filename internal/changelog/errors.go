package changelog

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies an operational failure of a changelog mutation.
type ErrorKind string

const (
	// ErrNoPriorVersion indicates an increment was requested but no released version exists.
	ErrNoPriorVersion ErrorKind = "no-prior-version"
	// ErrUnsupportedIncrement indicates an unknown increment keyword.
	ErrUnsupportedIncrement ErrorKind = "unsupported-increment"
	// ErrInvalidSemver indicates a version string is not a valid semantic version.
	ErrInvalidSemver ErrorKind = "invalid-semver"
	// ErrNoChanges indicates a release was requested without unreleased changes.
	ErrNoChanges ErrorKind = "no-changes"
	// ErrVersionExists indicates the version to release is already in the changelog.
	ErrVersionExists ErrorKind = "version-exists"
	// ErrVersionNotIncreasing indicates the version to release does not exceed the latest release.
	ErrVersionNotIncreasing ErrorKind = "version-not-increasing"
	// ErrMissingSourceFile indicates the changelog file does not exist.
	ErrMissingSourceFile ErrorKind = "missing-source-file"
	// ErrVersionNotFound indicates a requested version is not in the changelog.
	ErrVersionNotFound ErrorKind = "version-not-found"
)

// Error is returned by mutating and loading operations. Callers branch on Kind.
type Error struct {
	Kind    ErrorKind
	Version string
	// Previous holds the latest released version for ErrVersionNotIncreasing.
	Previous string
	// Available lists the known versions for ErrVersionNotFound.
	Available []string
	Path      string
	Err       error
}

func (e *Error) Error() string {
	switch e.Kind {
	case ErrNoPriorVersion:
		return "no released version found to increment"
	case ErrUnsupportedIncrement:
		return fmt.Sprintf("unsupported increment %q", e.Version)
	case ErrInvalidSemver:
		return fmt.Sprintf("%q is not a valid semantic version", e.Version)
	case ErrNoChanges:
		return "the changelog has no unreleased changes to release"
	case ErrVersionExists:
		return fmt.Sprintf("version %q already exists in the changelog", e.Version)
	case ErrVersionNotIncreasing:
		return fmt.Sprintf("version %q is not greater than the previous version %q", e.Version, e.Previous)
	case ErrMissingSourceFile:
		if e.Err != nil {
			return fmt.Sprintf("changelog file %s not found: %v", e.Path, e.Err)
		}
		return fmt.Sprintf("changelog file %s not found", e.Path)
	case ErrVersionNotFound:
		return fmt.Sprintf("version %q not found (available: %s)",
			e.Version, strings.Join(e.Available, ", "))
	default:
		return fmt.Sprintf("changelog error: %s", e.Kind)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsKind reports whether err is a changelog Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}

// KindOf extracts the ErrorKind from err, if err wraps a changelog Error.
func KindOf(err error) (ErrorKind, bool) {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind, true
	}
	return "", false
}
