package config

// defaultContent is the Keep a Changelog boilerplate expected below the title.
var defaultContent = []string{
	"All notable changes to this project will be documented in this file.",
	"The format is based on [Keep a Changelog](https://keepachangelog.com/en/1.0.0/), and this project adheres to [Semantic Versioning](https://semver.org/spec/v2.0.0.html).",
}

// GetDefaultConfigTemplate returns a fully commented config template
// that helps users understand all available options
func GetDefaultConfigTemplate() string {
	return `# kacl configuration
# See 'kacl config keys' for all options

kacl:
  changelog_file: CHANGELOG.md          # Changelog used when --file is not given

  # Validation rules
  allowed_header_titles:
    - Changelog
    - Change Log
  header_case_sensitive: true
  allowed_version_sections:
    - Added
    - Changed
    - Deprecated
    - Removed
    - Fixed
    - Security
  section_case_sensitive: true
  check_default_content: true           # Require the boilerplate below the title
  default_content:
    - All notable changes to this project will be documented in this file.
    - The format is based on [Keep a Changelog](https://keepachangelog.com/en/1.0.0/), and this project adheres to [Semantic Versioning](https://semver.org/spec/v2.0.0.html).

  post_release_version_prefix: ""       # e.g. post -> 'kacl release post' gives 1.0.0-post.1

  # Version links
  links:
    host_url: ""                        # Empty = origin remote of the repository
    auto_generate: false                # Same as 'kacl release --auto-link'
    compare_versions_template: "{host}/compare/{previous_version}...{version}"
    unreleased_changes_template: "{host}/compare/{latest_version}...HEAD"
    initial_version_template: "{host}/tree/{version}"

  # Git integration after 'kacl release'
  # Templates accept {new_version}, {latest_version}, {date}, {timestamp} and $ENV_VARS
  git:
    commit: false
    commit_message: "[skip ci] Releasing Changelog version {new_version}"
    commit_additional_files: []
    tag: false
    tag_name: "v{new_version}"
    tag_description: "Version v{new_version} released"
`
}

// GetDefaults returns the default configuration values keyed by their full
// koanf path, e.g. "kacl.links.host_url".
func GetDefaults() map[string]interface{} {
	defaults := make(map[string]interface{}, len(KnownKeys))
	for path, schema := range KnownKeys {
		defaults[RootKey+"."+path] = schema.Default
	}
	return defaults
}
