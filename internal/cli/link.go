package cli

import (
	"github.com/spf13/cobra"

	"github.com/kacl-dev/kacl/internal/cli/shared"
	clierrors "github.com/kacl-dev/kacl/internal/errors"
)

var (
	linkHostURL            string
	linkCompareTemplate    string
	linkUnreleasedTemplate string
	linkInitialTemplate    string
	linkModify             bool
)

var linkCmd = &cobra.Command{
	Use:   "link",
	Short: "Manage version link references",
	Long:  `Manage the "[version]: url" link references at the end of the changelog.`,
}

var linkGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate compare links for every version",
	Long: `Generate a link reference for every version of the changelog.

Each version links to a comparison with the version below it, Unreleased
compares the latest release with HEAD and the oldest version links to its
tree. Templates accept {host}, {version}, {previous_version} and
{latest_version}. The host defaults to links.host_url from the configuration
and then to the origin remote of the repository.`,
	Example: `  kacl link generate --modify
  kacl link generate --host-url https://gitlab.com/org/repo \
    --compare-versions-template "{host}/-/compare/{previous_version}...{version}"`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLinkGenerate(cmd)
	},
}

func init() {
	linkCmd.GroupID = shared.GroupChangelog
	linkCmd.AddCommand(linkGenerateCmd)
	rootCmd.AddCommand(linkCmd)

	f := linkGenerateCmd.Flags()
	f.StringVar(&linkHostURL, "host-url", "", "Repository URL used for {host}")
	f.StringVar(&linkCompareTemplate, "compare-versions-template", "", "Template linking two released versions")
	f.StringVar(&linkUnreleasedTemplate, "unreleased-changes-template", "", "Template of the Unreleased link")
	f.StringVar(&linkInitialTemplate, "initial-version-template", "", "Template of the oldest version link")
	f.BoolVarP(&linkModify, "modify", "m", false, "Write the changes back to the changelog file")
}

func runLinkGenerate(cmd *cobra.Command) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}

	templates := s.doc.Config().Links
	override(&templates.HostURL, linkHostURL)
	override(&templates.CompareVersions, linkCompareTemplate)
	override(&templates.UnreleasedChanges, linkUnreleasedTemplate)
	override(&templates.InitialVersion, linkInitialTemplate)

	provider, err := s.linkProvider(templates)
	if err != nil {
		return err
	}

	if err := s.doc.GenerateLinks(provider); err != nil {
		return clierrors.Wrap(err, clierrors.Configuration,
			"Check the link templates with: kacl config show")
	}
	return s.emit(cmd, linkModify)
}

// override replaces *dst with value when value is set.
func override(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}

