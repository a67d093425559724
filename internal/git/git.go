// Package git provides the Git operations kacl needs around a changelog: repository
// detection, the origin remote used as link host, the clean-tree check before a release,
// and the release commit and annotated tag. All operations use the go-git library.
package git

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// DefaultRemote is the remote consulted for the link host URL.
const DefaultRemote = "origin"

// ErrNotRepository is returned when no repository encloses the directory.
var ErrNotRepository = errors.New("not a git repository")

// debugLogger is a function that logs debug messages when debug mode is enabled.
// By default, it's a no-op. Set it via SetDebugLogger to enable debug output.
var debugLogger func(format string, args ...any)

// SetDebugLogger configures the debug logger for git operations.
// Pass nil to disable debug logging. The logger function should format
// and output the message (similar to log.Printf signature).
func SetDebugLogger(logger func(format string, args ...any)) {
	debugLogger = logger
}

// logDebug logs a debug message if the debug logger is set.
func logDebug(format string, args ...any) {
	if debugLogger != nil {
		debugLogger(format, args...)
	}
}

// openRepo opens a git repository at the specified path or current working directory.
// It uses go-git's PlainOpenWithOptions with DetectDotGit enabled to traverse
// up the directory tree to find the repository root.
// If path is empty, the current working directory is used.
func openRepo(path string) (*git.Repository, error) {
	if path == "" {
		var err error
		path, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting current directory: %w", err)
		}
	}

	logDebug("[git] opening repository at %s", path)

	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, fmt.Errorf("%s: %w", path, ErrNotRepository)
		}
		return nil, fmt.Errorf("opening repository at %s: %w", path, err)
	}

	logDebug("[git] repository opened successfully")
	return repo, nil
}

// IsGitRepository checks if dir is within a git repository.
func IsGitRepository(dir string) bool {
	_, err := openRepo(dir)
	result := err == nil
	logDebug("[git] IsGitRepository: %v", result)
	return result
}

// GetRepositoryRoot returns the absolute path to the repository root enclosing dir.
func GetRepositoryRoot(dir string) (string, error) {
	repo, err := openRepo(dir)
	if err != nil {
		return "", err
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("getting worktree: %w", err)
	}

	root := worktree.Filesystem.Root()
	logDebug("[git] GetRepositoryRoot: %s", root)
	return root, nil
}

// RemoteURL returns the first URL of the named remote. An empty name means
// DefaultRemote.
func RemoteURL(dir, name string) (string, error) {
	if name == "" {
		name = DefaultRemote
	}

	repo, err := openRepo(dir)
	if err != nil {
		return "", err
	}

	remote, err := repo.Remote(name)
	if err != nil {
		return "", fmt.Errorf("getting remote '%s': %w", name, err)
	}

	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", fmt.Errorf("remote '%s' has no URL", name)
	}

	logDebug("[git] RemoteURL(%s): %s", name, urls[0])
	return urls[0], nil
}

// DirtyFiles returns the repository-relative paths of tracked files with
// uncommitted changes, sorted. Untracked files are ignored.
func DirtyFiles(dir string) ([]string, error) {
	repo, err := openRepo(dir)
	if err != nil {
		return nil, err
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("getting worktree: %w", err)
	}

	status, err := worktree.Status()
	if err != nil {
		return nil, fmt.Errorf("getting status: %w", err)
	}

	var dirty []string
	for path, s := range status {
		if s.Worktree == git.Untracked && s.Staging == git.Untracked {
			continue
		}
		if s.Worktree != git.Unmodified || s.Staging != git.Unmodified {
			dirty = append(dirty, path)
		}
	}
	sort.Strings(dirty)

	logDebug("[git] DirtyFiles: %d file(s)", len(dirty))
	return dirty, nil
}

// CommitFiles stages files and commits them with message. Paths may be
// absolute or relative to the current directory. Returns the commit hash.
func CommitFiles(dir, message string, files []string) (string, error) {
	repo, err := openRepo(dir)
	if err != nil {
		return "", err
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("getting worktree: %w", err)
	}

	root := worktree.Filesystem.Root()
	for _, file := range files {
		rel, err := repoRelative(root, file)
		if err != nil {
			return "", err
		}
		logDebug("[git] staging %s", rel)
		if _, err := worktree.Add(rel); err != nil {
			return "", fmt.Errorf("staging '%s': %w", rel, err)
		}
	}

	sig := signature(repo)
	hash, err := worktree.Commit(message, &git.CommitOptions{Author: sig, Committer: sig})
	if err != nil {
		return "", fmt.Errorf("committing: %w", err)
	}

	logDebug("[git] CommitFiles: created %s", hash)
	return hash.String(), nil
}

// CreateTag creates an annotated tag named name on HEAD.
func CreateTag(dir, name, message string) error {
	repo, err := openRepo(dir)
	if err != nil {
		return err
	}

	if err := checkTagExists(repo, name); err != nil {
		return err
	}

	head, err := repo.Head()
	if err != nil {
		return fmt.Errorf("getting HEAD: %w", err)
	}

	if message == "" {
		message = name
	}
	_, err = repo.CreateTag(name, head.Hash(), &git.CreateTagOptions{
		Tagger:  signature(repo),
		Message: message,
	})
	if err != nil {
		return fmt.Errorf("creating tag '%s': %w", name, err)
	}

	logDebug("[git] CreateTag: %s at %s", name, head.Hash())
	return nil
}

// checkTagExists returns an error if the tag already exists.
func checkTagExists(repo *git.Repository, name string) error {
	_, err := repo.Reference(plumbing.NewTagReferenceName(name), false)
	if err == nil {
		return fmt.Errorf("tag '%s' already exists", name)
	}
	if !errors.Is(err, plumbing.ErrReferenceNotFound) {
		return fmt.Errorf("checking tag existence: %w", err)
	}
	return nil
}

// repoRelative converts path to a slash-separated path relative to root.
func repoRelative(root, path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving '%s': %w", path, err)
	}
	// worktree roots are not symlink-resolved, temp dirs on macOS are
	if resolved, err := filepath.EvalSymlinks(filepath.Dir(abs)); err == nil {
		abs = filepath.Join(resolved, filepath.Base(abs))
	}
	if resolved, err := filepath.EvalSymlinks(root); err == nil {
		root = resolved
	}

	rel, err := filepath.Rel(root, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("'%s' is outside the repository %s", path, root)
	}
	return filepath.ToSlash(rel), nil
}

// signature builds the author from the repository, global and system git
// config, falling back to GIT_AUTHOR_NAME/GIT_AUTHOR_EMAIL and then "kacl".
func signature(repo *git.Repository) *object.Signature {
	sig := &object.Signature{When: time.Now()}

	if cfg, err := repo.ConfigScoped(config.SystemScope); err == nil {
		sig.Name = cfg.User.Name
		sig.Email = cfg.User.Email
	}
	if sig.Name == "" {
		sig.Name = os.Getenv("GIT_AUTHOR_NAME")
	}
	if sig.Email == "" {
		sig.Email = os.Getenv("GIT_AUTHOR_EMAIL")
	}
	if sig.Name == "" {
		sig.Name = "kacl"
	}
	if sig.Email == "" {
		sig.Email = "kacl@localhost"
	}
	return sig
}
