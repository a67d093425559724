package changelog

// sampleChangelog is a valid changelog exercising links, an unlinked version
// and a multi-line list item.
const sampleChangelog = `# Changelog
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
- Start using "changelog" over "change log"
  since it's the common usage.

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

// minimalChangelog has a bare header and a single linked release.
const minimalChangelog = `# Changelog

## Unreleased

## [1.0.0] - 2020-01-01
### Added
- initial release

[1.0.0]: https://example.com/1.0.0
`

// noBoilerplate returns the default rulebook without the header content check.
func noBoilerplate() *Config {
	cfg := DefaultConfig()
	cfg.CheckDefaultContent = false
	return cfg
}
