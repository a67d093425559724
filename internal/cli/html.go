package cli

import (
	"github.com/spf13/cobra"

	"github.com/kacl-dev/kacl/internal/changelog"
	"github.com/kacl-dev/kacl/internal/cli/shared"
	clierrors "github.com/kacl-dev/kacl/internal/errors"
)

var (
	htmlOutput    string
	htmlUnsafe    bool
	htmlHardWraps bool
)

var htmlCmd = &cobra.Command{
	Use:   "html [version]",
	Short: "Render the changelog or one version as HTML",
	Long: `Render the changelog, or the block of a single version, as an HTML
fragment suitable for release pages. Link references are resolved.`,
	Example: `  kacl html -o CHANGELOG.html
  kacl html 1.2.0 > release-notes.html`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runHTML(cmd, args)
	},
}

func init() {
	htmlCmd.GroupID = shared.GroupInspect
	rootCmd.AddCommand(htmlCmd)

	htmlCmd.Flags().StringVarP(&htmlOutput, "output-file", "o", "", "File to write the HTML to")
	htmlCmd.Flags().BoolVar(&htmlUnsafe, "unsafe", false, "Keep raw HTML embedded in the changelog")
	htmlCmd.Flags().BoolVar(&htmlHardWraps, "hard-wraps", false, "Render newlines inside paragraphs as <br>")
}

func runHTML(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}

	opts := changelog.HTMLOptions{Unsafe: htmlUnsafe, HardWraps: htmlHardWraps}

	var out []byte
	if len(args) == 1 {
		v, err := s.doc.Get(args[0])
		if err != nil {
			return clierrors.FromChangelog(err)
		}
		out, err = changelog.RenderVersionHTML(v, opts)
		if err != nil {
			return clierrors.Wrap(err, clierrors.Runtime)
		}
	} else {
		out, err = changelog.RenderHTML(s.doc, opts)
		if err != nil {
			return clierrors.Wrap(err, clierrors.Runtime)
		}
	}

	if htmlOutput != "" {
		return writeOutput(htmlOutput, out)
	}
	_, err = cmd.OutOrStdout().Write(out)
	return err
}
