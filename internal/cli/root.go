// Package cli implements the kacl command tree.
package cli

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	configcmd "github.com/kacl-dev/kacl/internal/cli/config"
	"github.com/kacl-dev/kacl/internal/cli/shared"
	"github.com/kacl-dev/kacl/internal/config"
	clierrors "github.com/kacl-dev/kacl/internal/errors"
	"github.com/kacl-dev/kacl/internal/git"
	"github.com/kacl-dev/kacl/internal/output"
)

var (
	configPath string
	filePath   string
	debugFlag  bool
	noColor    bool
)

var rootCmd = &cobra.Command{
	Use:   "kacl",
	Short: "Validate, edit and release Keep a Changelog files",
	Long: `kacl maintains CHANGELOG.md files that follow https://keepachangelog.com.

It validates the changelog against a configurable rulebook with precise
line and column diagnostics, adds entries to the Unreleased section, cuts
releases with semantic version increments, generates compare links and
optionally commits and tags the release.

Configuration precedence (highest to lowest):
  1. Environment variables (KACL_*)
  2. Project config (.kacl.yml, .kacl.yaml, .kacl.toml, .kacl.json, .kacl.conf)
  3. User config (~/.config/kacl/config.yml)
  4. Built-in defaults`,
	Example: `  # Check the changelog in the current directory
  kacl verify

  # Record a change and write it back
  kacl add fixed "Crash when the title is missing" --modify

  # Release the Unreleased changes as the next minor version
  kacl release minor --modify --auto-link`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupGlobals,
}

func init() {
	rootCmd.AddGroup(
		&cobra.Group{ID: shared.GroupGettingStarted, Title: "Getting Started:"},
		&cobra.Group{ID: shared.GroupChangelog, Title: "Editing:"},
		&cobra.Group{ID: shared.GroupInspect, Title: "Inspecting:"},
		&cobra.Group{ID: shared.GroupConfiguration, Title: "Configuration:"},
	)

	rootCmd.PersistentFlags().StringVarP(&configPath, shared.ConfigFlagName, "c", "", "Path to kacl config file (default: .kacl.yml in the current directory)")
	rootCmd.PersistentFlags().StringVarP(&filePath, shared.FileFlagName, "f", "", "Path to changelog file (default: changelog_file from config, CHANGELOG.md)")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Log config and git decisions to stderr")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	rootCmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return clierrors.NewArgumentErrorWithUsage(err.Error(), c.UseLine(),
			fmt.Sprintf("Run '%s --help' for usage", c.CommandPath()))
	})

	rootCmd.AddCommand(configcmd.Cmd)
}

// setupGlobals applies --no-color and --debug before any command runs.
func setupGlobals(cmd *cobra.Command, _ []string) error {
	if noColor || output.ColorDisabled() {
		color.NoColor = true
	}

	if debugFlag {
		logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelDebug}))
		debugf := func(format string, args ...any) {
			logger.Debug(fmt.Sprintf(format, args...))
		}
		config.SetDebugLogger(debugf)
		git.SetDebugLogger(debugf)
	}
	return nil
}

// Execute runs the root command and prints a failing command's error.
// The returned error maps to an exit code with shared.ExitCode.
func Execute() error {
	err := rootCmd.Execute()
	if err == nil {
		return nil
	}

	// ExitErrors carry no message; their output was already written
	var exitErr *shared.ExitError
	if !errors.As(err, &exitErr) {
		clierrors.FprintError(rootCmd.ErrOrStderr(), clierrors.FromChangelog(err))
	}
	return err
}
