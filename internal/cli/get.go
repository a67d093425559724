package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/kacl-dev/kacl/internal/changelog"
	"github.com/kacl-dev/kacl/internal/cli/shared"
	clierrors "github.com/kacl-dev/kacl/internal/errors"
)

var (
	getList   bool
	getPretty bool
)

var getCmd = &cobra.Command{
	Use:   "get [version]",
	Short: "Print the entry of a version",
	Long: `Print the block of a single version as Markdown.

The version is matched with or without a leading "v"; "unreleased" selects
the pending changes. Use --list to print every version instead.`,
	Example: `  kacl get 1.2.0
  kacl get unreleased
  kacl get v1.2.0 --pretty
  kacl get --list`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGet(cmd, args)
	},
}

var currentCmd = &cobra.Command{
	Use:   "current",
	Short: "Print the latest released version",
	Long: `Print the version of the newest released block, skipping Unreleased.
Exits with code 4 when nothing has been released yet.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCurrent(cmd)
	},
}

func init() {
	getCmd.GroupID = shared.GroupInspect
	currentCmd.GroupID = shared.GroupInspect
	rootCmd.AddCommand(getCmd, currentCmd)

	getCmd.Flags().BoolVarP(&getList, "list", "l", false, "List all versions, newest first")
	getCmd.Flags().BoolVar(&getPretty, "pretty", false, "Colored terminal output instead of Markdown")
}

func runGet(cmd *cobra.Command, args []string) error {
	if !getList && len(args) == 0 {
		return clierrors.MissingArguments("get", "a version", "kacl get <version>")
	}

	s, err := openSession(cmd)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if getList {
		for _, v := range s.doc.ListVersions() {
			fmt.Fprintln(out, v)
		}
		return nil
	}

	v, err := s.doc.Get(args[0])
	if err != nil {
		return clierrors.FromChangelog(err)
	}

	if getPretty {
		return changelog.FormatVersion(v, out, changelog.FormatOptions{Plain: color.NoColor})
	}
	_, err = fmt.Fprint(out, changelog.SerializeVersion(v))
	return err
}

func runCurrent(cmd *cobra.Command) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}

	current, ok := s.doc.CurrentVersion()
	if !ok {
		return clierrors.FromChangelog(&changelog.Error{Kind: changelog.ErrNoPriorVersion})
	}
	fmt.Fprintln(cmd.OutOrStdout(), current)
	return nil
}
