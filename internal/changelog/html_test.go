// Package changelog tests HTML export.
// Related: internal/changelog/html.go
// Tags: changelog, html
package changelog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderHTML(t *testing.T) {
	t.Parallel()

	out, err := RenderHTML(Parse(sampleChangelog, nil), HTMLOptions{})
	require.NoError(t, err)

	html := string(out)
	assert.Contains(t, html, "<h1 id=\"changelog\">Changelog</h1>")
	assert.Contains(t, html, `<a href="https://github.com/org/repo/compare/v0.3.0...v1.0.0">1.0.0</a>`)
	assert.Contains(t, html, "<li>Typo in README</li>")
	assert.NotContains(t, html, "[0.3.0]:")
}

func TestRenderVersionHTML(t *testing.T) {
	t.Parallel()

	doc := Parse(sampleChangelog, nil)
	v, err := doc.Get("0.3.0")
	require.NoError(t, err)

	out, err := RenderVersionHTML(v, HTMLOptions{})
	require.NoError(t, err)

	html := string(out)
	assert.Contains(t, html, `<a href="https://github.com/org/repo/compare/v0.2.0...v0.3.0">0.3.0</a>`)
	assert.Contains(t, html, "<h3 id=\"fixed\">Fixed</h3>")
	assert.NotContains(t, html, "1.0.0")
}

func TestRenderHTML_RawHTML(t *testing.T) {
	t.Parallel()

	doc := Parse("# Changelog\n\n## Unreleased\n### Added\n- <b>bold</b>\n", nil)

	safe, err := RenderHTML(doc, HTMLOptions{})
	require.NoError(t, err)
	assert.NotContains(t, string(safe), "<b>bold</b>")

	unsafe, err := RenderHTML(doc, HTMLOptions{Unsafe: true})
	require.NoError(t, err)
	assert.Contains(t, string(unsafe), "<b>bold</b>")
}
