package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kacl-dev/kacl/internal/changelog"
	"github.com/kacl-dev/kacl/internal/cli/shared"
	clierrors "github.com/kacl-dev/kacl/internal/errors"
	"github.com/kacl-dev/kacl/internal/output"
)

var (
	newOutput string
	newForce  bool
)

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Create a new changelog from the default template",
	Long: `Print a new changelog with the standard title, the Keep a Changelog
boilerplate and an empty Unreleased section, or write it with -o.`,
	Example: `  kacl new
  kacl new -o CHANGELOG.md`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runNew(cmd)
	},
}

func init() {
	newCmd.GroupID = shared.GroupGettingStarted
	rootCmd.AddCommand(newCmd)

	newCmd.Flags().StringVarP(&newOutput, "output-file", "o", "", "File to write the changelog to")
	newCmd.Flags().BoolVar(&newForce, "force", false, "Overwrite an existing file")
}

func runNew(cmd *cobra.Command) error {
	content := changelog.Template()
	if newOutput == "" {
		_, err := fmt.Fprint(cmd.OutOrStdout(), content)
		return err
	}

	if _, err := os.Stat(newOutput); err == nil && !newForce {
		return clierrors.NewArgumentError(
			fmt.Sprintf("%s already exists", newOutput),
			"Pass --force to overwrite it",
			"Or validate the existing file with: kacl -f "+newOutput+" verify",
		)
	}
	if err := writeOutput(newOutput, []byte(content)); err != nil {
		return err
	}
	output.PrintSuccess(cmd.ErrOrStderr(), "Created %s", newOutput)
	return nil
}
