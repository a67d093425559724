// Package config provides the kacl config command and its init, keys and
// show subcommands.
package config

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/kacl-dev/kacl/internal/cli/shared"
)

// Color helper functions for config command output
var (
	cGreen  = color.New(color.FgGreen).SprintFunc()
	cYellow = color.New(color.FgYellow).SprintFunc()
	cCyan   = color.New(color.FgCyan).SprintFunc()
	cDim    = color.New(color.Faint).SprintFunc()
	cBold   = color.New(color.Bold).SprintFunc()
)

// Cmd is the "kacl config" command. The root command registers it.
var Cmd = &cobra.Command{
	Use:   "config",
	Short: "Manage kacl configuration",
	Long: `Manage kacl configuration settings.

Configuration is loaded with the following priority (highest to lowest):
  1. Environment variables (KACL_*)
  2. Project config (.kacl.yml, .kacl.yaml, .kacl.toml, .kacl.json, .kacl.conf)
  3. User config (~/.config/kacl/config.yml)
  4. Built-in defaults`,
	Example: `  # Create .kacl.yml in the current directory
  kacl config init

  # List every key with its default and environment variable
  kacl config keys

  # Show the effective configuration
  kacl config show --json`,
}

func init() {
	Cmd.GroupID = shared.GroupConfiguration
	Cmd.AddCommand(initCmd, keysCmd, showCmd)
}
