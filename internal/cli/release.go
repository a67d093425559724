package cli

import (
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/kacl-dev/kacl/internal/changelog"
	"github.com/kacl-dev/kacl/internal/cli/shared"
	clierrors "github.com/kacl-dev/kacl/internal/errors"
	"github.com/kacl-dev/kacl/internal/git"
	"github.com/kacl-dev/kacl/internal/output"
)

var (
	releaseLink           string
	releaseAutoLink       bool
	releaseModify         bool
	releaseCommit         bool
	releaseTag            bool
	releaseCommitMessage  string
	releaseTagName        string
	releaseTagDescription string
	releaseAllowDirty     bool
)

var releaseCmd = &cobra.Command{
	Use:   "release <version|major|minor|patch|post>",
	Short: "Release the Unreleased changes as a new version",
	Long: `Move the Unreleased changes into a new version dated today.

The version is either explicit or an increment of the latest release:
  major, minor, patch   1.2.3 -> 2.0.0, 1.3.0, 1.2.4
  post                  1.2.3 -> 1.2.3-post.1 -> 1.2.3-post.2
                        (the keyword is post_release_version_prefix)

The release is refused when there are no unreleased changes, when the
version already exists or when it is not greater than the latest release.

With --commit and --tag the written changelog is committed and an annotated
tag is created. Message templates accept {new_version}, {latest_version},
{date}, {timestamp} and $ENVIRONMENT_VARIABLES.`,
	Example: `  # Preview the release
  kacl release 1.0.0

  # Bump the minor version, generate links, commit and tag
  kacl release minor --modify --auto-link --commit --tag

  # Link the version explicitly
  kacl release patch -m --link https://example.com/releases/1.0.1`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) != 1 {
			return clierrors.MissingArguments("release", "a version or increment",
				"kacl release <version|major|minor|patch|post>")
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRelease(cmd, args)
	},
}

func init() {
	releaseCmd.GroupID = shared.GroupChangelog
	rootCmd.AddCommand(releaseCmd)

	f := releaseCmd.Flags()
	f.StringVarP(&releaseLink, "link", "l", "", "URL the released version is linked with")
	f.BoolVarP(&releaseAutoLink, "auto-link", "a", false, "Generate links from the link templates (links.auto_generate)")
	f.BoolVarP(&releaseModify, "modify", "m", false, "Write the changes back to the changelog file")
	f.BoolVar(&releaseCommit, "commit", false, "Commit the changelog (git.commit); requires --modify")
	f.BoolVar(&releaseTag, "tag", false, "Create an annotated tag (git.tag); requires --modify")
	f.StringVar(&releaseCommitMessage, "commit-message", "", "Commit message template (git.commit_message)")
	f.StringVar(&releaseTagName, "tag-name", "", "Tag name template (git.tag_name)")
	f.StringVar(&releaseTagDescription, "tag-description", "", "Tag annotation template (git.tag_description)")
	f.BoolVar(&releaseAllowDirty, "allow-dirty", false, "Commit even when other tracked files have changes")
}

// gitPlan is the git work resolved from flags and configuration.
type gitPlan struct {
	commit        bool
	tag           bool
	commitMessage string
	tagName       string
	tagAnnotation string
	extraFiles    []string
}

func runRelease(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}

	plan := resolveGitPlan(cmd, s)
	if (plan.commit || plan.tag) && !releaseModify {
		return clierrors.InvalidFlagCombination("--commit/--tag without --modify",
			"Only a changelog written to disk can be committed; add --modify")
	}
	if plan.commit || plan.tag {
		if err := checkReleaseRepository(s, plan); err != nil {
			return err
		}
	}

	opts := changelog.ReleaseOptions{Link: releaseLink}
	if isIncrement(args[0], s.cfg.PostReleaseVersionPrefix) {
		opts.Increment = args[0]
	} else {
		opts.Version = args[0]
	}

	autoLink := releaseAutoLink || s.cfg.Links.AutoGenerate
	if autoLink && releaseLink == "" {
		if opts.Links, err = s.linkProvider(s.doc.Config().Links); err != nil {
			return err
		}
		opts.AutoLink = true
	}

	latest, _ := s.doc.CurrentVersion()
	version, err := s.doc.Release(opts)
	if err != nil {
		return clierrors.FromChangelog(err)
	}

	if err := s.emit(cmd, releaseModify); err != nil {
		return err
	}
	if !releaseModify {
		return nil
	}

	output.PrintSuccess(cmd.ErrOrStderr(), "Released %s in %s", version, s.path)
	return runGitPlan(cmd, s, plan, releaseValues(version, latest, time.Now()))
}

// isIncrement reports whether arg names an increment rather than a version.
func isIncrement(arg, postPrefix string) bool {
	switch arg {
	case "major", "minor", "patch", "post":
		return true
	}
	return postPrefix != "" && arg == postPrefix
}

// resolveGitPlan merges the git flags over the git configuration.
func resolveGitPlan(cmd *cobra.Command, s *session) gitPlan {
	g := s.cfg.Git
	plan := gitPlan{
		commit:        g.Commit,
		tag:           g.Tag,
		commitMessage: g.CommitMessage,
		tagName:       g.TagName,
		tagAnnotation: g.TagDescription,
		extraFiles:    g.CommitAdditionalFiles,
	}
	if cmd.Flags().Changed("commit") {
		plan.commit = releaseCommit
	}
	if cmd.Flags().Changed("tag") {
		plan.tag = releaseTag
	}
	override(&plan.commitMessage, releaseCommitMessage)
	override(&plan.tagName, releaseTagName)
	override(&plan.tagAnnotation, releaseTagDescription)
	return plan
}

// checkReleaseRepository fails when the changelog is outside a repository or
// when tracked files other than the ones to be committed have changes.
func checkReleaseRepository(s *session, plan gitPlan) error {
	dir := filepath.Dir(s.path)
	root, err := git.GetRepositoryRoot(dir)
	if err != nil {
		return clierrors.GitNotRepository()
	}
	if releaseAllowDirty || !plan.commit {
		return nil
	}

	dirty, err := git.DirtyFiles(dir)
	if err != nil {
		return clierrors.Wrap(err, clierrors.Runtime)
	}

	var committed []string
	for _, f := range append([]string{s.path}, plan.extraFiles...) {
		if rel, err := relativeTo(root, f); err == nil {
			committed = append(committed, rel)
		}
	}

	var unrelated []string
	for _, f := range dirty {
		if !slices.Contains(committed, f) {
			unrelated = append(unrelated, f)
		}
	}
	if len(unrelated) > 0 {
		return clierrors.DirtyWorkingTree(unrelated)
	}
	return nil
}

func relativeTo(root, path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		abs = resolved
	}
	if resolved, err := filepath.EvalSymlinks(root); err == nil {
		root = resolved
	}
	rel, err := filepath.Rel(root, abs)
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(rel), nil
}

// releaseValues are the placeholders of the git message templates.
func releaseValues(version, latest string, now time.Time) map[string]string {
	return map[string]string{
		"new_version":    version,
		"latest_version": latest,
		"date":           now.Format(changelog.DateLayout),
		"timestamp":      strconv.FormatInt(now.Unix(), 10),
	}
}

// expandGitTemplate fills {placeholders} and then $ENV variables.
func expandGitTemplate(tmpl string, values map[string]string) string {
	return os.ExpandEnv(changelog.ExpandTemplate(tmpl, values))
}

func runGitPlan(cmd *cobra.Command, s *session, plan gitPlan, values map[string]string) error {
	dir := filepath.Dir(s.path)
	out := cmd.ErrOrStderr()

	if plan.commit {
		files := append([]string{s.path}, plan.extraFiles...)
		hash, err := git.CommitFiles(dir, expandGitTemplate(plan.commitMessage, values), files)
		if err != nil {
			return clierrors.WrapWithMessage(err, clierrors.Runtime, "release commit failed",
				"The changelog was written; commit it manually")
		}
		output.PrintSuccess(out, "Committed %s", hash[:8])
	}

	if plan.tag {
		name := expandGitTemplate(plan.tagName, values)
		if err := git.CreateTag(dir, name, expandGitTemplate(plan.tagAnnotation, values)); err != nil {
			return clierrors.WrapWithMessage(err, clierrors.Runtime, "release tag failed",
				"Delete the existing tag or pass --tag-name")
		}
		output.PrintSuccess(out, "Tagged %s", name)
	}
	return nil
}
