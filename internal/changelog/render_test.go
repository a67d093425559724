// Package changelog tests markdown serialization.
// Related: internal/changelog/render.go
// Tags: changelog, render, serializer
package changelog

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerialize_RoundTrip(t *testing.T) {
	t.Parallel()

	inputs := map[string]string{
		"sample":          sampleChangelog,
		"minimal":         minimalChangelog,
		"template":        Template(),
		"no header":       "## 1.0.0 - 2020-01-01\n### Added\n- a\n",
		"header only":     "# Changelog\n",
		"crlf":            "# Changelog\r\n\r\n## 1.0.0 - 2020-01-01\r\n### Added\r\n- a\r\n",
		"messy spacing":   "# Changelog\n\n\n## 1.0.0 - 2020-01-01\n\n\n### Added\n\n- a\n\n\n- b\n\n\n",
		"unused link":     "# Changelog\n\n## 1.0.0\n\n[0.1.0]: https://x\n",
		"empty sections":  "# Changelog\n\n## Unreleased\n### Added\n### Fixed\n",
		"unknown version": "# Changelog\n\n## Next release\n### Added\n- a\n",
	}

	for name, input := range inputs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			once := Serialize(Parse(input, nil))
			twice := Serialize(Parse(once, nil))
			assert.Equal(t, once, twice)
		})
	}
}

func TestSerialize_Stable(t *testing.T) {
	t.Parallel()

	assert.Equal(t, minimalChangelog, Serialize(Parse(minimalChangelog, nil)))
	assert.Equal(t, Template(), Serialize(New(nil)))
}

func TestSerialize_Sample(t *testing.T) {
	t.Parallel()

	want := `# Changelog
All notable changes to this project will be documented in this file.

The format is based on [Keep a Changelog](https://keepachangelog.com/en/1.0.0/), and this project adheres to [Semantic Versioning](https://semver.org/spec/v2.0.0.html).

## [Unreleased]
### Added
- New visual identity
- Version navigation

## [1.0.0] - 2017-06-20
### Added
- New translations

### Changed
- Start using "changelog" over "change log" since it's the common usage.

## [0.3.0] - 2015-12-03
### Fixed
- Typo in README

## 0.2.0 - 2015-10-06
### Removed
- Section about "changelog" vs "CHANGELOG".

[Unreleased]: https://github.com/org/repo/compare/v1.0.0...HEAD
[1.0.0]: https://github.com/org/repo/compare/v0.3.0...v1.0.0
[0.3.0]: https://github.com/org/repo/compare/v0.2.0...v0.3.0
`
	assert.Equal(t, want, Serialize(Parse(sampleChangelog, nil)))
}

func TestSerializeVersion(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		version *Version
		want    string
	}{
		"unreleased": {
			version: NewVersion(Unreleased, ""),
			want:    "## Unreleased\n",
		},
		"dated with items": {
			version: func() *Version {
				v := NewVersion("1.2.0", "2024-01-02")
				v.Add("Added", "a")
				v.Add("Fixed", "b")
				return v
			}(),
			want: "## 1.2.0 - 2024-01-02\n### Added\n- a\n\n### Fixed\n- b\n",
		},
		"linked": {
			version: func() *Version {
				v := NewVersion("1.2.0", "2024-01-02")
				v.SetLink("https://x")
				return v
			}(),
			want: "## [1.2.0] - 2024-01-02\n",
		},
		"linked without date": {
			version: func() *Version {
				v := NewVersion(Unreleased, "")
				v.SetLink("https://x")
				return v
			}(),
			want: "## [Unreleased]\n",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, SerializeVersion(tt.version))
		})
	}
}

func TestRenderMarkdown(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, RenderMarkdown(Parse(minimalChangelog, nil), &buf))
	assert.Equal(t, minimalChangelog, buf.String())
}
