package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kacl-dev/kacl/internal/changelog"
	"github.com/kacl-dev/kacl/internal/cli/shared"
	"github.com/kacl-dev/kacl/internal/config"
	clierrors "github.com/kacl-dev/kacl/internal/errors"
	"github.com/kacl-dev/kacl/internal/git"
)

// session is the loaded configuration and changelog a command operates on.
type session struct {
	cfg  *config.Configuration
	path string
	doc  *changelog.Document
}

// openSession loads the configuration and the changelog named by --file,
// falling back to changelog_file from the configuration.
func openSession(cmd *cobra.Command) (*session, error) {
	cfg, err := shared.LoadConfig(cmd)
	if err != nil {
		return nil, err
	}

	path := changelogPath(cfg)
	doc, err := changelog.Load(path, cfg.ChangelogConfig())
	if err != nil {
		return nil, clierrors.FromChangelog(err)
	}
	return &session{cfg: cfg, path: path, doc: doc}, nil
}

func changelogPath(cfg *config.Configuration) string {
	if filePath != "" {
		return filePath
	}
	return cfg.ChangelogFile
}

// emit writes the changelog back to its file when modify is set and prints
// it to stdout otherwise.
func (s *session) emit(cmd *cobra.Command, modify bool) error {
	out := changelog.Serialize(s.doc)
	if !modify {
		_, err := fmt.Fprint(cmd.OutOrStdout(), out)
		return err
	}
	return writeOutput(s.path, []byte(out))
}

// linkProvider builds a LinkProvider from the configured templates. A missing
// host URL falls back to the origin remote of the enclosing repository.
func (s *session) linkProvider(t changelog.LinkTemplates) (*changelog.LinkProvider, error) {
	if t.HostURL == "" {
		dir := filepath.Dir(s.path)
		if url, err := git.RemoteURL(dir, git.DefaultRemote); err == nil {
			t.HostURL = url
		}
	}

	p := changelog.NewLinkProvider(t)
	if p.Host() == "" && usesHost(t) {
		return nil, clierrors.MissingHostURL()
	}
	return p, nil
}

// usesHost reports whether any template, or its default, references {host}.
func usesHost(t changelog.LinkTemplates) bool {
	def := changelog.DefaultConfig().Links
	for _, pair := range [][2]string{
		{t.CompareVersions, def.CompareVersions},
		{t.UnreleasedChanges, def.UnreleasedChanges},
		{t.InitialVersion, def.InitialVersion},
	} {
		tmpl := pair[0]
		if tmpl == "" {
			tmpl = pair[1]
		}
		if strings.Contains(tmpl, "{host}") {
			return true
		}
	}
	return false
}

// writeOutput writes data to path, or to stdout when path is "-".
func writeOutput(path string, data []byte) error {
	if path == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return clierrors.FileNotWritable(path, err)
	}
	return nil
}
