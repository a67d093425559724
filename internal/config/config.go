// Package config provides hierarchical configuration management for kacl using koanf.
// Configuration is loaded with priority: environment variables (KACL_*) > project config
// (.kacl.yml, .kacl.yaml, .kacl.toml, .kacl.json or .kacl.conf) > user config
// (~/.config/kacl/config.yml) > defaults. Every key lives under the root key "kacl".
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/kacl-dev/kacl/internal/changelog"
)

// EnvPrefix is the prefix of environment variable overrides.
const EnvPrefix = "KACL_"

// Configuration represents the kacl configuration
type Configuration struct {
	ChangelogFile            string      `koanf:"changelog_file" yaml:"changelog_file" validate:"required"`
	AllowedHeaderTitles      []string    `koanf:"allowed_header_titles" yaml:"allowed_header_titles" validate:"min=1,dive,required"`
	HeaderCaseSensitive      bool        `koanf:"header_case_sensitive" yaml:"header_case_sensitive"`
	AllowedVersionSections   []string    `koanf:"allowed_version_sections" yaml:"allowed_version_sections" validate:"min=1,dive,required"`
	SectionCaseSensitive     bool        `koanf:"section_case_sensitive" yaml:"section_case_sensitive"`
	DefaultContent           []string    `koanf:"default_content" yaml:"default_content"`
	CheckDefaultContent      bool        `koanf:"check_default_content" yaml:"check_default_content"`
	PostReleaseVersionPrefix string      `koanf:"post_release_version_prefix" yaml:"post_release_version_prefix" validate:"omitempty,alphanum"`
	Links                    LinksConfig `koanf:"links" yaml:"links"`
	Git                      GitConfig   `koanf:"git" yaml:"git"`

	// Source is the project config file that was loaded, if any.
	Source string `koanf:"-" yaml:"-"`
}

// LinksConfig configures version link generation.
type LinksConfig struct {
	HostURL                   string `koanf:"host_url" yaml:"host_url"`
	AutoGenerate              bool   `koanf:"auto_generate" yaml:"auto_generate"`
	CompareVersionsTemplate   string `koanf:"compare_versions_template" yaml:"compare_versions_template" validate:"required"`
	UnreleasedChangesTemplate string `koanf:"unreleased_changes_template" yaml:"unreleased_changes_template" validate:"required"`
	InitialVersionTemplate    string `koanf:"initial_version_template" yaml:"initial_version_template" validate:"required"`
}

// GitConfig configures the commit and tag created after a release.
type GitConfig struct {
	Commit                bool     `koanf:"commit" yaml:"commit"`
	CommitMessage         string   `koanf:"commit_message" yaml:"commit_message" validate:"required"`
	CommitAdditionalFiles []string `koanf:"commit_additional_files" yaml:"commit_additional_files"`
	Tag                   bool     `koanf:"tag" yaml:"tag"`
	TagName               string   `koanf:"tag_name" yaml:"tag_name" validate:"required"`
	TagDescription        string   `koanf:"tag_description" yaml:"tag_description"`
}

// LoadOptions configures how configuration is loaded
type LoadOptions struct {
	// ProjectConfigPath selects the project config file. When empty the
	// current directory is searched for ProjectConfigCandidates.
	ProjectConfigPath string
	// UserConfigPath overrides the user config path (default: UserConfigPath()).
	UserConfigPath string
	// SkipUserConfig ignores the user config file.
	SkipUserConfig bool
	// SkipEnv ignores KACL_* environment variables.
	SkipEnv bool
}

// Load loads configuration from user, project, and environment sources.
// Priority: Environment variables > Project config > User config > Defaults
func Load(projectConfigPath string) (*Configuration, error) {
	return LoadWithOptions(LoadOptions{ProjectConfigPath: projectConfigPath})
}

// LoadWithOptions loads configuration with custom options
func LoadWithOptions(opts LoadOptions) (*Configuration, error) {
	k := koanf.New(".")

	loadDefaults(k)

	if !opts.SkipUserConfig {
		if err := loadUserConfig(k, opts.UserConfigPath); err != nil {
			return nil, err
		}
	}

	source, err := loadProjectConfig(k, opts.ProjectConfigPath)
	if err != nil {
		return nil, err
	}

	if !opts.SkipEnv {
		if err := loadEnvironmentConfig(k); err != nil {
			return nil, err
		}
	}

	cfg, err := finalizeConfig(k, source)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the built-in configuration without reading any source.
func Default() *Configuration {
	k := koanf.New(".")
	loadDefaults(k)

	var cfg Configuration
	// defaults always unmarshal
	_ = k.Unmarshal(RootKey, &cfg)
	return &cfg
}

// loadDefaults applies default configuration values
func loadDefaults(k *koanf.Koanf) {
	for key, value := range GetDefaults() {
		k.Set(key, value)
	}
}

// loadUserConfig loads the user-level config if it exists.
func loadUserConfig(k *koanf.Koanf, customPath string) error {
	path := customPath
	if path == "" {
		path, _ = UserConfigPath()
	}
	if !fileExists(path) {
		logDebug("[config] no user config at %s", path)
		return nil
	}
	if err := loadConfigFile(k, path, "user"); err != nil {
		return fmt.Errorf("loading user config: %w", err)
	}
	return nil
}

// loadProjectConfig loads the project config. An explicitly given path must
// exist; otherwise the current directory is searched.
func loadProjectConfig(k *koanf.Koanf, customPath string) (string, error) {
	path := customPath
	if path != "" {
		if !fileExists(path) {
			return "", &ValidationError{FilePath: path, Message: "config file not found"}
		}
	} else {
		path = FindProjectConfig(".")
		if path == "" {
			logDebug("[config] no project config found")
			return "", nil
		}
	}

	if err := loadConfigFile(k, path, "project"); err != nil {
		return "", fmt.Errorf("loading project config: %w", err)
	}
	return path, nil
}

// loadConfigFile picks a parser from the file extension and loads path.
func loadConfigFile(k *koanf.Koanf, path, configType string) error {
	logDebug("[config] loading %s config %s", configType, path)

	var parser koanf.Parser
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		parser = json.Parser()
	case ".toml":
		parser = TOML()
	default:
		if err := ValidateYAMLSyntax(path); err != nil {
			return fmt.Errorf("validating YAML syntax for %s config: %w", configType, err)
		}
		parser = yaml.Parser()
	}

	if err := k.Load(file.Provider(path), parser); err != nil {
		return fmt.Errorf("failed to load %s config %s: %w", configType, path, err)
	}
	return nil
}

// loadEnvironmentConfig loads environment variable overrides
func loadEnvironmentConfig(k *koanf.Koanf) error {
	if err := k.Load(env.ProviderWithValue(EnvPrefix, ".", envTransform), nil); err != nil {
		return fmt.Errorf("failed to load environment config: %w", err)
	}
	return nil
}

// finalizeConfig unmarshals and validates the merged configuration
func finalizeConfig(k *koanf.Koanf, source string) (*Configuration, error) {
	var cfg Configuration
	if err := k.Unmarshal(RootKey, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	name := source
	if name == "" {
		name = "config"
	}
	if err := ValidateConfigValues(&cfg, name); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	cfg.Source = source
	return &cfg, nil
}

// fileExists returns true if the file exists and is readable
func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// envTransform converts environment variable names to config keys.
// Example: KACL_LINKS_HOST_URL -> kacl.links.host_url
// List keys take comma-separated values. Unknown variables are ignored.
func envTransform(name, value string) (string, interface{}) {
	for path, schema := range KnownKeys {
		if schema.EnvVar() != name {
			continue
		}
		if schema.Type == TypeList {
			return RootKey + "." + path, splitList(value)
		}
		return RootKey + "." + path, value
	}
	return "", nil
}

func splitList(value string) []string {
	items := []string{}
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// ChangelogConfig converts the settings consumed by the changelog core.
func (c *Configuration) ChangelogConfig() *changelog.Config {
	return &changelog.Config{
		AllowedHeaderTitles:    c.AllowedHeaderTitles,
		HeaderCaseSensitive:    c.HeaderCaseSensitive,
		AllowedVersionSections: c.AllowedVersionSections,
		SectionCaseSensitive:   c.SectionCaseSensitive,
		DefaultContent:         c.DefaultContent,
		CheckDefaultContent:    c.CheckDefaultContent,
		PostReleasePrefix:      c.PostReleaseVersionPrefix,
		Links: changelog.LinkTemplates{
			HostURL:           c.Links.HostURL,
			AutoGenerate:      c.Links.AutoGenerate,
			CompareVersions:   c.Links.CompareVersionsTemplate,
			UnreleasedChanges: c.Links.UnreleasedChangesTemplate,
			InitialVersion:    c.Links.InitialVersionTemplate,
		},
	}
}
