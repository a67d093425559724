package changelog

// Config is the rulebook and templating data the core consumes. It is
// populated by the configuration layer and treated as read-only here.
type Config struct {
	AllowedHeaderTitles    []string
	HeaderCaseSensitive    bool
	AllowedVersionSections []string
	SectionCaseSensitive   bool
	// DefaultContent lists boilerplate that must appear in the header body.
	DefaultContent      []string
	CheckDefaultContent bool
	// PostReleasePrefix names the extension increment (e.g. "post") that
	// produces versions such as 1.0.0-post.1. Empty disables it.
	PostReleasePrefix string
	Links             LinkTemplates
}

// LinkTemplates holds the format strings used to render version links.
// Templates accept {host}, {version}, {previous_version} and {latest_version}.
type LinkTemplates struct {
	HostURL           string
	AutoGenerate      bool
	CompareVersions   string
	UnreleasedChanges string
	InitialVersion    string
}

// DefaultConfig returns the Keep a Changelog 1.0.0 rulebook.
func DefaultConfig() *Config {
	return &Config{
		AllowedHeaderTitles: []string{"Changelog", "Change Log"},
		HeaderCaseSensitive: true,
		AllowedVersionSections: []string{
			"Added", "Changed", "Deprecated", "Removed", "Fixed", "Security",
		},
		SectionCaseSensitive: true,
		DefaultContent: []string{
			"All notable changes to this project will be documented in this file.",
			"The format is based on [Keep a Changelog](https://keepachangelog.com/en/1.0.0/), and this project adheres to [Semantic Versioning](https://semver.org/spec/v2.0.0.html).",
		},
		CheckDefaultContent: true,
		Links: LinkTemplates{
			CompareVersions:   "{host}/compare/{previous_version}...{version}",
			UnreleasedChanges: "{host}/compare/{latest_version}...HEAD",
			InitialVersion:    "{host}/tree/{version}",
		},
	}
}
