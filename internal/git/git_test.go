// Package git tests repository detection, remotes, and release commits and tags.
// Related: internal/git/git.go
// Tags: git, repository, commit, tag, vcs
package git

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// initRepo creates a repository with one committed CHANGELOG.md.
func initRepo(t *testing.T) (string, *git.Repository) {
	t.Helper()
	dir := t.TempDir()

	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	writeFile(t, dir, "CHANGELOG.md", "# Changelog\n")
	_, err = CommitFiles(dir, "initial", []string{filepath.Join(dir, "CHANGELOG.md")})
	require.NoError(t, err)
	return dir, repo
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestIsGitRepository(t *testing.T) {
	t.Parallel()

	dir, _ := initRepo(t)
	sub := filepath.Join(dir, "nested", "deeper")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	assert.True(t, IsGitRepository(dir))
	assert.True(t, IsGitRepository(sub), "DetectDotGit walks up to the repository")
	assert.False(t, IsGitRepository(t.TempDir()))
}

func TestGetRepositoryRoot(t *testing.T) {
	t.Parallel()

	dir, _ := initRepo(t)
	root, err := GetRepositoryRoot(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Base(dir), filepath.Base(root))

	_, err = GetRepositoryRoot(t.TempDir())
	assert.ErrorIs(t, err, ErrNotRepository)
}

func TestRemoteURL(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		remotes map[string]string
		name    string
		want    string
		wantErr bool
	}{
		"origin by default": {
			remotes: map[string]string{"origin": "git@github.com:org/repo.git"},
			want:    "git@github.com:org/repo.git",
		},
		"named remote": {
			remotes: map[string]string{"origin": "https://a", "upstream": "https://b"},
			name:    "upstream",
			want:    "https://b",
		},
		"missing remote": {
			remotes: map[string]string{},
			wantErr: true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			dir, repo := initRepo(t)
			for remote, url := range tt.remotes {
				_, err := repo.CreateRemote(&config.RemoteConfig{Name: remote, URLs: []string{url}})
				require.NoError(t, err)
			}

			got, err := RemoteURL(dir, tt.name)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDirtyFiles(t *testing.T) {
	t.Parallel()

	dir, _ := initRepo(t)

	dirty, err := DirtyFiles(dir)
	require.NoError(t, err)
	assert.Empty(t, dirty)

	writeFile(t, dir, "untracked.txt", "x")
	dirty, err = DirtyFiles(dir)
	require.NoError(t, err)
	assert.Empty(t, dirty, "untracked files are ignored")

	writeFile(t, dir, "CHANGELOG.md", "# Changelog\n\n## Unreleased\n")
	dirty, err = DirtyFiles(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"CHANGELOG.md"}, dirty)
}

func TestCommitFiles(t *testing.T) {
	t.Parallel()

	dir, repo := initRepo(t)
	writeFile(t, dir, "CHANGELOG.md", "# Changelog\n\n## 1.0.0 - 2024-01-01\n")
	writeFile(t, dir, "VERSION", "1.0.0\n")

	hash, err := CommitFiles(dir, "Releasing 1.0.0", []string{
		filepath.Join(dir, "CHANGELOG.md"),
		filepath.Join(dir, "VERSION"),
	})
	require.NoError(t, err)

	commit, err := repo.CommitObject(plumbing.NewHash(hash))
	require.NoError(t, err)
	assert.Equal(t, "Releasing 1.0.0", commit.Message)
	assert.NotEmpty(t, commit.Author.Name)

	dirty, err := DirtyFiles(dir)
	require.NoError(t, err)
	assert.Empty(t, dirty)
}

func TestCommitFiles_OutsideRepository(t *testing.T) {
	t.Parallel()

	dir, _ := initRepo(t)
	outside := filepath.Join(t.TempDir(), "CHANGELOG.md")
	writeFile(t, filepath.Dir(outside), "CHANGELOG.md", "x")

	_, err := CommitFiles(dir, "msg", []string{outside})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "outside the repository")
}

func TestCreateTag(t *testing.T) {
	t.Parallel()

	dir, repo := initRepo(t)

	require.NoError(t, CreateTag(dir, "v1.0.0", "Version v1.0.0 released"))

	ref, err := repo.Tag("v1.0.0")
	require.NoError(t, err)
	tag, err := repo.TagObject(ref.Hash())
	require.NoError(t, err, "tag must be annotated")
	assert.Equal(t, "Version v1.0.0 released", strings.TrimSpace(tag.Message))

	err = CreateTag(dir, "v1.0.0", "again")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestRepoRelative(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, "docs"), 0o755))
	rel, err := repoRelative(root, filepath.Join(root, "docs", "CHANGELOG.md"))
	require.NoError(t, err)
	assert.Equal(t, "docs/CHANGELOG.md", rel)

	_, err = repoRelative(root, filepath.Join(filepath.Dir(root), "other"))
	assert.Error(t, err)
}
