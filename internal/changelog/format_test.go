// Package changelog tests terminal formatting of versions and diagnostics.
// Related: internal/changelog/format.go
// Tags: changelog, format, terminal
package changelog

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatVersion_Plain(t *testing.T) {
	t.Parallel()

	doc := Parse(sampleChangelog, nil)

	tests := map[string]struct {
		version string
		want    []string
	}{
		"released": {
			version: "1.0.0",
			want:    []string{"## v1.0.0 (2017-06-20)", "### Added", "  - New translations", "### Changed"},
		},
		"unreleased": {
			version: "unreleased",
			want:    []string{"## [Unreleased]", "  - New visual identity", "  - Version navigation"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			v, err := doc.Get(tt.version)
			require.NoError(t, err)

			var buf bytes.Buffer
			require.NoError(t, FormatVersion(v, &buf, FormatOptions{Plain: true}))
			for _, want := range tt.want {
				assert.Contains(t, buf.String(), want)
			}
		})
	}
}

func TestFormatDiagnostics_Plain(t *testing.T) {
	t.Parallel()

	result := Parse("# Changelog\n\n## 1.0.0 - 2020-1-01\n### Added\n- a\n", noBoilerplate()).Validate()

	var buf bytes.Buffer
	require.NoError(t, FormatDiagnostics("CHANGELOG.md", result, &buf, FormatOptions{Plain: true}))

	lines := strings.Split(buf.String(), "\n")
	require.GreaterOrEqual(t, len(lines), 4)
	assert.Equal(t, "CHANGELOG.md:3:12: error: Date '2020-1-01' does not match the format YYYY-MM-DD", lines[0])
	assert.Equal(t, "## 1.0.0 - 2020-1-01", lines[1])
	assert.Equal(t, "           ^~~~~~~~", lines[2])
	assert.Equal(t, "1 error(s) found", lines[3])
}

func TestFormatDiagnostics_Valid(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, FormatDiagnostics("CHANGELOG.md", ValidationResult{}, &buf, FormatOptions{Plain: true}))
	assert.Equal(t, "Changelog is valid\n", buf.String())
}

func TestCaret(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "^", caret(3, 4))
	assert.Equal(t, "^", caret(3, 3))
	assert.Equal(t, "^~~~", caret(0, 4))
}

func TestWrapText(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		text     string
		maxWidth int
		want     string
	}{
		"fits":          {text: "short", maxWidth: 10, want: "short"},
		"wraps at word": {text: "one two three", maxWidth: 8, want: "one two\n  three"},
		"no width":      {text: "anything", maxWidth: 0, want: "anything"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, wrapText(tt.text, tt.maxWidth, "  "))
		})
	}
}
