// Package config tests layered configuration loading and validation.
// Related: internal/config/config.go, internal/config/validate.go, internal/config/toml.go
// Tags: config, koanf, validation
package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	t.Parallel()

	cfg := Default()
	assert.Equal(t, "CHANGELOG.md", cfg.ChangelogFile)
	assert.Equal(t, []string{"Changelog", "Change Log"}, cfg.AllowedHeaderTitles)
	assert.True(t, cfg.HeaderCaseSensitive)
	assert.True(t, cfg.CheckDefaultContent)
	assert.Len(t, cfg.AllowedVersionSections, 6)
	assert.Equal(t, "{host}/tree/{version}", cfg.Links.InitialVersionTemplate)
	assert.Equal(t, "v{new_version}", cfg.Git.TagName)
	assert.False(t, cfg.Git.Commit)
	assert.NoError(t, ValidateConfigValues(cfg, "defaults"))
}

func TestLoadWithOptions_ProjectFormats(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		name    string
		content string
	}{
		"yaml": {
			name: ".kacl.yml",
			content: `kacl:
  changelog_file: HISTORY.md
  post_release_version_prefix: post
  links:
    host_url: https://example.com/org/repo
  allowed_version_sections:
    - Added
    - Fixed
`,
		},
		"conf is yaml": {
			name: ".kacl.conf",
			content: `kacl:
  changelog_file: HISTORY.md
  post_release_version_prefix: post
  links:
    host_url: https://example.com/org/repo
  allowed_version_sections: [Added, Fixed]
`,
		},
		"toml": {
			name: ".kacl.toml",
			content: `[kacl]
changelog_file = "HISTORY.md"
post_release_version_prefix = "post"
allowed_version_sections = ["Added", "Fixed"]

[kacl.links]
host_url = "https://example.com/org/repo"
`,
		},
		"json": {
			name: ".kacl.json",
			content: `{"kacl": {
  "changelog_file": "HISTORY.md",
  "post_release_version_prefix": "post",
  "allowed_version_sections": ["Added", "Fixed"],
  "links": {"host_url": "https://example.com/org/repo"}
}}`,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			path := writeFile(t, t.TempDir(), tt.name, tt.content)

			cfg, err := LoadWithOptions(LoadOptions{ProjectConfigPath: path, SkipUserConfig: true, SkipEnv: true})
			require.NoError(t, err)

			assert.Equal(t, path, cfg.Source)
			assert.Equal(t, "HISTORY.md", cfg.ChangelogFile)
			assert.Equal(t, "post", cfg.PostReleaseVersionPrefix)
			assert.Equal(t, []string{"Added", "Fixed"}, cfg.AllowedVersionSections)
			assert.Equal(t, "https://example.com/org/repo", cfg.Links.HostURL)
			// untouched keys keep their defaults
			assert.Equal(t, "{host}/compare/{latest_version}...HEAD", cfg.Links.UnreleasedChangesTemplate)
			assert.True(t, cfg.CheckDefaultContent)
		})
	}
}

func TestLoadWithOptions_Priority(t *testing.T) {
	dir := t.TempDir()
	user := writeFile(t, dir, "user.yml", `kacl:
  changelog_file: USER.md
  header_case_sensitive: false
  git:
    tag_name: "release-{new_version}"
`)
	project := writeFile(t, dir, ".kacl.yml", `kacl:
  changelog_file: PROJECT.md
`)
	t.Setenv("KACL_GIT_COMMIT", "true")
	t.Setenv("KACL_ALLOWED_HEADER_TITLES", "Changelog, History")
	t.Setenv("KACL_NOT_A_KEY", "ignored")

	cfg, err := LoadWithOptions(LoadOptions{ProjectConfigPath: project, UserConfigPath: user})
	require.NoError(t, err)

	assert.Equal(t, "PROJECT.md", cfg.ChangelogFile)
	assert.False(t, cfg.HeaderCaseSensitive)
	assert.Equal(t, "release-{new_version}", cfg.Git.TagName)
	assert.True(t, cfg.Git.Commit)
	assert.Equal(t, []string{"Changelog", "History"}, cfg.AllowedHeaderTitles)
}

func TestLoadWithOptions_Errors(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		name      string
		content   string
		wantField string
		wantLine  int
	}{
		"invalid yaml": {
			name:     "bad.yml",
			content:  "kacl:\n  changelog_file: [unclosed\n",
			wantLine: 3,
		},
		"empty section list": {
			name:      "empty.yml",
			content:   "kacl:\n  allowed_version_sections: []\n",
			wantField: "allowed_version_sections",
		},
		"non alphanumeric post prefix": {
			name:      "prefix.yml",
			content:   "kacl:\n  post_release_version_prefix: post-fix\n",
			wantField: "post_release_version_prefix",
		},
		"missing tag template": {
			name:      "tag.yml",
			content:   "kacl:\n  git:\n    tag_name: \"\"\n",
			wantField: "git.tag_name",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			path := writeFile(t, t.TempDir(), tt.name, tt.content)

			_, err := LoadWithOptions(LoadOptions{ProjectConfigPath: path, SkipUserConfig: true, SkipEnv: true})
			require.Error(t, err)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "expected ValidationError, got %T", err)
			if tt.wantField != "" {
				assert.Equal(t, tt.wantField, verr.Field)
			}
			if tt.wantLine > 0 {
				assert.Positive(t, verr.Line)
			}
		})
	}
}

func TestLoadWithOptions_MissingExplicitFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nope.yml")
	_, err := LoadWithOptions(LoadOptions{ProjectConfigPath: path, SkipUserConfig: true, SkipEnv: true})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config file not found")
}

func TestFindProjectConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	assert.Empty(t, FindProjectConfig(dir))

	writeFile(t, dir, ".kacl.json", "{}")
	assert.Equal(t, filepath.Join(dir, ".kacl.json"), FindProjectConfig(dir))

	writeFile(t, dir, ".kacl.yml", "")
	assert.Equal(t, filepath.Join(dir, ".kacl.yml"), FindProjectConfig(dir))
}

func TestChangelogConfig(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.SectionCaseSensitive = false
	cfg.PostReleaseVersionPrefix = "post"
	cfg.Links.HostURL = "https://example.com/r"

	cc := cfg.ChangelogConfig()
	assert.Equal(t, cfg.AllowedHeaderTitles, cc.AllowedHeaderTitles)
	assert.False(t, cc.SectionCaseSensitive)
	assert.Equal(t, "post", cc.PostReleasePrefix)
	assert.Equal(t, "https://example.com/r", cc.Links.HostURL)
	assert.Equal(t, cfg.Links.CompareVersionsTemplate, cc.Links.CompareVersions)
}

func TestEnvTransform(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		name      string
		value     string
		wantKey   string
		wantValue interface{}
	}{
		"string key":  {name: "KACL_LINKS_HOST_URL", value: "https://x", wantKey: "kacl.links.host_url", wantValue: "https://x"},
		"bool key":    {name: "KACL_GIT_TAG", value: "true", wantKey: "kacl.git.tag", wantValue: "true"},
		"list key":    {name: "KACL_GIT_COMMIT_ADDITIONAL_FILES", value: "a.txt, ,b.txt", wantKey: "kacl.git.commit_additional_files", wantValue: []string{"a.txt", "b.txt"}},
		"unknown key": {name: "KACL_DEBUG", value: "1", wantKey: ""},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			key, value := envTransform(tt.name, tt.value)
			assert.Equal(t, tt.wantKey, key)
			if tt.wantKey != "" {
				assert.Equal(t, tt.wantValue, value)
			}
		})
	}
}

func TestValidateYAMLSyntaxFromBytes(t *testing.T) {
	t.Parallel()

	assert.NoError(t, ValidateYAMLSyntaxFromBytes([]byte("   \n"), "empty.yml"))
	assert.NoError(t, ValidateYAMLSyntaxFromBytes([]byte(GetDefaultConfigTemplate()), "template.yml"))

	err := ValidateYAMLSyntaxFromBytes([]byte("a: b: c"), "bad.yml")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "bad.yml", verr.FilePath)
	assert.Equal(t, 1, verr.Line)
}

func TestValidateConfigValues_FieldPaths(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		mutate    func(*Configuration)
		wantField string
		wantMsg   string
	}{
		"nested required": {
			mutate:    func(c *Configuration) { c.Links.CompareVersionsTemplate = "" },
			wantField: "links.compare_versions_template",
			wantMsg:   "is required",
		},
		"empty list element": {
			mutate:    func(c *Configuration) { c.AllowedHeaderTitles = []string{"Changelog", ""} },
			wantField: "allowed_header_titles",
			wantMsg:   "is required",
		},
		"padded section": {
			mutate:    func(c *Configuration) { c.AllowedVersionSections = []string{" Added"} },
			wantField: "allowed_version_sections",
			wantMsg:   "surrounding whitespace",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			cfg := Default()
			tt.mutate(cfg)

			var verr *ValidationError
			require.ErrorAs(t, ValidateConfigValues(cfg, ".kacl.yml"), &verr)
			assert.Equal(t, tt.wantField, verr.Field)
			assert.Contains(t, verr.Message, tt.wantMsg)
		})
	}

	assert.NoError(t, ValidateConfigValues(Default(), ".kacl.yml"))
}
