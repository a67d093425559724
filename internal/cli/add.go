package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/kacl-dev/kacl/internal/cli/shared"
	clierrors "github.com/kacl-dev/kacl/internal/errors"
)

var addModify bool

var addCmd = &cobra.Command{
	Use:   "add <section> <message>",
	Short: "Add an entry to the Unreleased section",
	Long: `Add an entry to a section of the Unreleased block.

The section title is capitalized ("fixed" becomes "Fixed") and created when
missing. An Unreleased block is inserted at the top when the changelog has
none. Without --modify the resulting changelog is printed to stdout.`,
	Example: `  # Preview the change
  kacl add added "Export to HTML"

  # Write it back to CHANGELOG.md
  kacl add fixed "Crash on empty sections" --modify`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) != 2 {
			return clierrors.MissingArguments("add", "a section and a message", "kacl add <section> <message>")
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAdd(cmd, args)
	},
}

func init() {
	addCmd.GroupID = shared.GroupChangelog
	rootCmd.AddCommand(addCmd)

	addCmd.Flags().BoolVarP(&addModify, "modify", "m", false, "Write the changes back to the changelog file")
}

func runAdd(cmd *cobra.Command, args []string) error {
	section, message := strings.TrimSpace(args[0]), strings.TrimSpace(args[1])
	if section == "" || message == "" {
		return clierrors.MissingArguments("add", "a non-empty section and message", "kacl add <section> <message>")
	}

	s, err := openSession(cmd)
	if err != nil {
		return err
	}

	s.doc.Add(section, message)
	return s.emit(cmd, addModify)
}
