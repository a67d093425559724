package changelog

import (
	_ "embed"
)

//go:embed template.md
var embeddedTemplate string

// Template returns the default changelog written by "kacl new".
// It contains the standard boilerplate and an empty Unreleased block.
func Template() string {
	return embeddedTemplate
}

// New parses the default changelog template with cfg.
func New(cfg *Config) *Document {
	return Parse(embeddedTemplate, cfg)
}
