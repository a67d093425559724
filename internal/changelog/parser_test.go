// Package changelog tests document parsing and loading.
// Related: internal/changelog/parser.go, internal/changelog/types.go
// Tags: changelog, parser
package changelog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Sample(t *testing.T) {
	t.Parallel()

	doc := Parse(sampleChangelog, nil)

	require.NotNil(t, doc.Header())
	assert.Equal(t, "Changelog", doc.Title())
	assert.Len(t, doc.Headers(), 1)
	assert.Equal(t, []string{"Unreleased", "1.0.0", "0.3.0", "0.2.0"}, doc.ListVersions())

	v, err := doc.Get("1.0.0")
	require.NoError(t, err)
	assert.Equal(t, "2017-06-20", v.Date())
	assert.Equal(t, 11, v.LineNumber)
	require.NotNil(t, v.Link())
	assert.Equal(t, "https://github.com/org/repo/compare/v0.3.0...v1.0.0", v.Link().Body)

	require.Len(t, v.Sections(), 2)
	changed := v.Changes("changed")
	require.NotNil(t, changed)
	assert.Equal(t, 14, changed.LineNumber)
	assert.Equal(t, []string{`Start using "changelog" over "change log" since it's the common usage.`}, changed.Items())

	unlinked, err := doc.Get("0.2.0")
	require.NoError(t, err)
	assert.Nil(t, unlinked.Link())
}

func TestParse_NormalizesLineEndings(t *testing.T) {
	t.Parallel()

	crlf := strings.ReplaceAll(minimalChangelog, "\n", "\r\n")
	doc := Parse(crlf, nil)

	assert.Equal(t, minimalChangelog, doc.Content())
	assert.Equal(t, Serialize(Parse(minimalChangelog, nil)), Serialize(doc))
}

func TestParse_DegradesGracefully(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		text         string
		wantHeader   bool
		wantVersions int
	}{
		"empty input":         {text: "", wantHeader: false, wantVersions: 0},
		"plain prose":         {text: "no markdown here\n", wantHeader: false, wantVersions: 0},
		"versions only":       {text: "## 1.0.0\n## 0.1.0\n", wantHeader: false, wantVersions: 2},
		"header only":         {text: "# Changelog\n", wantHeader: true, wantVersions: 0},
		"heading inside text": {text: "# Changelog\ntext ## 1.0.0\n", wantHeader: true, wantVersions: 0},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			doc := Parse(tt.text, nil)
			assert.Equal(t, tt.wantHeader, doc.Header() != nil)
			assert.Len(t, doc.Versions(), tt.wantVersions)
		})
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "CHANGELOG.md")
	require.NoError(t, os.WriteFile(path, []byte(sampleChangelog), 0o644))

	doc, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "Changelog", doc.Title())
	assert.NotNil(t, doc.Config())

	_, err = Load(filepath.Join(dir, "missing.md"), nil)
	require.Error(t, err)
	assert.True(t, IsKind(err, ErrMissingSourceFile))
}

func TestLoadFromReader(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.PostReleasePrefix = "post"

	doc, err := LoadFromReader(strings.NewReader(minimalChangelog), cfg)
	require.NoError(t, err)
	assert.Same(t, cfg, doc.Config())
	assert.Len(t, doc.Versions(), 2)
}
