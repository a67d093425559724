package config

import (
	"os"
	"path/filepath"
)

// UserConfigPath returns the path to the user-level config file.
// This follows the XDG Base Directory Specification:
// - Linux: ~/.config/kacl/config.yml
// - macOS: ~/Library/Application Support/kacl/config.yml
// - Windows: %APPDATA%\kacl\config.yml
//
// If XDG_CONFIG_HOME is set, it will be respected on Linux.
func UserConfigPath() (string, error) {
	configDir, err := UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.yml"), nil
}

// UserConfigDir returns the path to the user-level config directory.
func UserConfigDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "kacl"), nil
}

// ProjectConfigCandidates lists the project config file names searched in the
// current directory, in priority order. ".kacl.conf" is YAML.
func ProjectConfigCandidates() []string {
	return []string{".kacl.yml", ".kacl.yaml", ".kacl.toml", ".kacl.json", ".kacl.conf"}
}

// FindProjectConfig returns the first existing project config in dir, or "".
func FindProjectConfig(dir string) string {
	for _, name := range ProjectConfigCandidates() {
		path := filepath.Join(dir, name)
		if fileExists(path) {
			return path
		}
	}
	return ""
}
