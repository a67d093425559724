package config

import (
	"fmt"
	"sort"
	"strings"
)

// RootKey is the top-level key every setting lives under in config files.
const RootKey = "kacl"

// ConfigValueType defines the expected type for a configuration value.
type ConfigValueType int

const (
	TypeBool ConfigValueType = iota
	TypeString
	TypeList
)

// String returns the string representation of ConfigValueType.
func (t ConfigValueType) String() string {
	switch t {
	case TypeBool:
		return "bool"
	case TypeString:
		return "string"
	case TypeList:
		return "list"
	default:
		return "unknown"
	}
}

// ConfigKeySchema defines a known configuration key with its expected type.
type ConfigKeySchema struct {
	Path        string          // Dotted key path below the root (e.g., "links.host_url")
	Type        ConfigValueType // Expected value type
	Description string          // Human-readable description for help text
	Default     interface{}     // Default value
}

// EnvVar returns the environment variable overriding the key,
// e.g. KACL_LINKS_HOST_URL for "links.host_url".
func (s ConfigKeySchema) EnvVar() string {
	return EnvPrefix + strings.ToUpper(strings.ReplaceAll(s.Path, ".", "_"))
}

// KnownKeys is the registry of all known configuration keys with their schemas.
var KnownKeys = map[string]ConfigKeySchema{
	"changelog_file": {
		Path:        "changelog_file",
		Type:        TypeString,
		Description: "Changelog file operated on when --file is not given",
		Default:     "CHANGELOG.md",
	},
	"allowed_header_titles": {
		Path:        "allowed_header_titles",
		Type:        TypeList,
		Description: "Accepted titles of the top-level heading",
		Default:     []string{"Changelog", "Change Log"},
	},
	"header_case_sensitive": {
		Path:        "header_case_sensitive",
		Type:        TypeBool,
		Description: "Compare header titles case-sensitively",
		Default:     true,
	},
	"allowed_version_sections": {
		Path:        "allowed_version_sections",
		Type:        TypeList,
		Description: "Accepted change types inside a version",
		Default:     []string{"Added", "Changed", "Deprecated", "Removed", "Fixed", "Security"},
	},
	"section_case_sensitive": {
		Path:        "section_case_sensitive",
		Type:        TypeBool,
		Description: "Compare change types case-sensitively",
		Default:     true,
	},
	"default_content": {
		Path:        "default_content",
		Type:        TypeList,
		Description: "Lines that must appear below the top-level heading",
		Default:     defaultContent,
	},
	"check_default_content": {
		Path:        "check_default_content",
		Type:        TypeBool,
		Description: "Report missing default_content lines",
		Default:     true,
	},
	"post_release_version_prefix": {
		Path:        "post_release_version_prefix",
		Type:        TypeString,
		Description: "Pre-release prefix used by post-release increments (e.g. post)",
		Default:     "",
	},
	"links.host_url": {
		Path:        "links.host_url",
		Type:        TypeString,
		Description: "Repository URL used in link templates (default: origin remote)",
		Default:     "",
	},
	"links.auto_generate": {
		Path:        "links.auto_generate",
		Type:        TypeBool,
		Description: "Generate links on release without --auto-link",
		Default:     false,
	},
	"links.compare_versions_template": {
		Path:        "links.compare_versions_template",
		Type:        TypeString,
		Description: "Link between two released versions",
		Default:     "{host}/compare/{previous_version}...{version}",
	},
	"links.unreleased_changes_template": {
		Path:        "links.unreleased_changes_template",
		Type:        TypeString,
		Description: "Link of the Unreleased section",
		Default:     "{host}/compare/{latest_version}...HEAD",
	},
	"links.initial_version_template": {
		Path:        "links.initial_version_template",
		Type:        TypeString,
		Description: "Link of the oldest version",
		Default:     "{host}/tree/{version}",
	},
	"git.commit": {
		Path:        "git.commit",
		Type:        TypeBool,
		Description: "Commit the changelog after a release",
		Default:     false,
	},
	"git.commit_message": {
		Path:        "git.commit_message",
		Type:        TypeString,
		Description: "Release commit message template",
		Default:     "[skip ci] Releasing Changelog version {new_version}",
	},
	"git.commit_additional_files": {
		Path:        "git.commit_additional_files",
		Type:        TypeList,
		Description: "Extra files staged with the release commit",
		Default:     []string{},
	},
	"git.tag": {
		Path:        "git.tag",
		Type:        TypeBool,
		Description: "Create an annotated tag after a release",
		Default:     false,
	},
	"git.tag_name": {
		Path:        "git.tag_name",
		Type:        TypeString,
		Description: "Release tag name template",
		Default:     "v{new_version}",
	},
	"git.tag_description": {
		Path:        "git.tag_description",
		Type:        TypeString,
		Description: "Release tag annotation template",
		Default:     "Version v{new_version} released",
	},
}

// ErrUnknownKey is returned when trying to access an unknown configuration key.
type ErrUnknownKey struct {
	Key string
}

func (e ErrUnknownKey) Error() string {
	return "unknown configuration key: " + e.Key
}

// GetKeySchema returns the schema for a known configuration key.
// A leading "kacl." is accepted.
func GetKeySchema(path string) (ConfigKeySchema, error) {
	schema, ok := KnownKeys[strings.TrimPrefix(path, RootKey+".")]
	if !ok {
		return ConfigKeySchema{}, ErrUnknownKey{Key: path}
	}
	return schema, nil
}

// SortedKeys returns the known key schemas ordered by path.
func SortedKeys() []ConfigKeySchema {
	keys := make([]ConfigKeySchema, 0, len(KnownKeys))
	for _, s := range KnownKeys {
		keys = append(keys, s)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Path < keys[j].Path })
	return keys
}

// FormatDefault renders a schema default for display.
func FormatDefault(v interface{}) string {
	switch d := v.(type) {
	case []string:
		return "[" + strings.Join(d, ", ") + "]"
	case string:
		return fmt.Sprintf("%q", d)
	default:
		return fmt.Sprint(d)
	}
}
