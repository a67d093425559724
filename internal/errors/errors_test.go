// Package errors tests CLIError construction, formatting and changelog error mapping.
// Related: internal/errors/errors.go, internal/errors/format.go, internal/errors/messages.go
// Tags: errors, cli, remediation
package errors

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kacl-dev/kacl/internal/changelog"
)

func TestFormatErrorPlain(t *testing.T) {
	t.Parallel()

	err := NewArgumentErrorWithUsage("section is required", "kacl add <section> <message>",
		"Run 'kacl add --help' for details")

	got := FormatErrorPlain(err)
	assert.Equal(t, "Error [Argument Error]: section is required\n"+
		"\nUsage: kacl add <section> <message>\n"+
		"\nTo fix this:\n  • Run 'kacl add --help' for details\n", got)
	assert.Empty(t, FormatErrorPlain(nil))
}

func TestAsCLIError_Wrapped(t *testing.T) {
	t.Parallel()

	cliErr := NewConfigError("bad config")
	wrapped := fmt.Errorf("loading: %w", cliErr)

	assert.Same(t, cliErr, AsCLIError(wrapped))
	assert.Nil(t, AsCLIError(stderrors.New("plain")))
}

func TestWrap_PreservesCause(t *testing.T) {
	t.Parallel()

	cause := stderrors.New("disk full")
	err := WrapWithMessage(cause, Runtime, "cannot write")
	assert.Equal(t, "cannot write: disk full", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Nil(t, Wrap(nil, Runtime))
}

func TestFromChangelog(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		err          error
		wantCategory ErrorCategory
		wantMessage  string
	}{
		"no changes": {
			err:          &changelog.Error{Kind: changelog.ErrNoChanges},
			wantCategory: Prerequisite,
			wantMessage:  "no unreleased changes",
		},
		"invalid semver": {
			err:          &changelog.Error{Kind: changelog.ErrInvalidSemver, Version: "1.x"},
			wantCategory: Argument,
			wantMessage:  `"1.x" is not a valid semantic version`,
		},
		"not increasing": {
			err:          &changelog.Error{Kind: changelog.ErrVersionNotIncreasing, Version: "0.9.0", Previous: "1.0.0"},
			wantCategory: Argument,
			wantMessage:  "not greater than",
		},
		"missing file": {
			err:          fmt.Errorf("loading: %w", &changelog.Error{Kind: changelog.ErrMissingSourceFile, Path: "CHANGES.md"}),
			wantCategory: Prerequisite,
			wantMessage:  "changelog not found: CHANGES.md",
		},
		"plain error": {
			err:          stderrors.New("boom"),
			wantCategory: Runtime,
			wantMessage:  "boom",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got := FromChangelog(tt.err)
			require.NotNil(t, got)
			assert.Equal(t, tt.wantCategory, got.Category)
			assert.Contains(t, got.Message, tt.wantMessage)
			assert.ErrorIs(t, got, tt.err)
		})
	}

	assert.Nil(t, FromChangelog(nil))
}

func TestDirtyWorkingTree(t *testing.T) {
	t.Parallel()

	err := DirtyWorkingTree([]string{"a.go", "b.go"})
	assert.Equal(t, Prerequisite, err.Category)
	assert.Contains(t, err.Message, "a.go, b.go")
	assert.Contains(t, FormatErrorPlain(err), "--allow-dirty")
}

func TestFprintError_Colored(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	FprintError(&buf, NewPrerequisiteError("changelog not found: CHANGELOG.md", "Create one with: kacl new -o CHANGELOG.md"))
	assert.Contains(t, buf.String(), "changelog not found: CHANGELOG.md")
	assert.Contains(t, buf.String(), "kacl new -o CHANGELOG.md")

	buf.Reset()
	FprintError(&buf, nil)
	assert.Empty(t, buf.String())
}
