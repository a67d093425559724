package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kacl-dev/kacl/internal/config"
	clierrors "github.com/kacl-dev/kacl/internal/errors"
	"github.com/kacl-dev/kacl/internal/output"
)

// projectConfigName is the file written by "config init" without --user.
const projectConfigName = ".kacl.yml"

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a commented configuration file",
	Long: `Write a configuration file listing every option with its default.

Without arguments .kacl.yml is created in the current directory. A path
argument selects another project directory; --user writes the user-level
config instead. Existing files are left unchanged unless --force is given.`,
	Example: `  kacl config init
  kacl config init services/api
  kacl config init --user --force`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfigInit,
}

func init() {
	initCmd.Flags().Bool("user", false, "Write the user-level config instead of .kacl.yml")
	initCmd.Flags().Bool("force", false, "Overwrite an existing config file")
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	userLevel, _ := cmd.Flags().GetBool("user")
	force, _ := cmd.Flags().GetBool("force")

	if userLevel && len(args) > 0 {
		return clierrors.InvalidFlagCombination("--user with a path",
			"The user config location is fixed; drop the path or --user")
	}

	target, err := configTarget(args, userLevel)
	if err != nil {
		return clierrors.Wrap(err, clierrors.Runtime)
	}

	out := cmd.OutOrStdout()
	if _, err := os.Stat(target); err == nil && !force {
		output.PrintNotice(out, "%s already exists (use --force to overwrite)", target)
		return nil
	}

	if err := EnsureDirectory(filepath.Dir(target)); err != nil {
		return clierrors.Wrap(err, clierrors.Runtime)
	}
	if err := os.WriteFile(target, []byte(config.GetDefaultConfigTemplate()), 0o644); err != nil {
		return clierrors.FileNotWritable(target, err)
	}

	output.PrintSuccess(out, "Created %s", target)
	return nil
}

// configTarget resolves the file "config init" writes.
func configTarget(args []string, userLevel bool) (string, error) {
	if userLevel {
		return config.UserConfigPath()
	}

	var raw string
	if len(args) > 0 {
		raw = args[0]
	}
	dir, err := ResolvePath(raw)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, projectConfigName), nil
}

// ResolvePath converts a path argument to an absolute path. An empty path
// is the current directory; a leading "~" is the user's home directory.
func ResolvePath(rawPath string) (string, error) {
	if rawPath == "" || rawPath == "." {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("getting current directory: %w", err)
		}
		return cwd, nil
	}

	if rawPath == "~" || strings.HasPrefix(rawPath, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("getting home directory: %w", err)
		}
		rawPath = filepath.Join(home, strings.TrimPrefix(rawPath[1:], "/"))
	}

	absPath, err := filepath.Abs(rawPath)
	if err != nil {
		return "", fmt.Errorf("resolving absolute path: %w", err)
	}
	return absPath, nil
}

// EnsureDirectory creates path and its parents when missing. It fails when
// path exists as a file.
func EnsureDirectory(path string) error {
	info, err := os.Stat(path)
	switch {
	case err == nil && !info.IsDir():
		return fmt.Errorf("path exists and is not a directory: %s", path)
	case err == nil:
		return nil
	case os.IsNotExist(err):
		if err := os.MkdirAll(path, 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", path, err)
		}
		return nil
	default:
		return fmt.Errorf("checking path %s: %w", path, err)
	}
}
