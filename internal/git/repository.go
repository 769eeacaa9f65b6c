package git

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	gogit "github.com/go-git/go-git/v5"

	gberrors "gitbind.dev/gitbind/internal/errors"
)

// ErrNotARepository indicates that no enclosing git repository was found
var ErrNotARepository = errors.New("not a git repository")

// FindRepoRoot returns the worktree root of the repository enclosing dir.
// An empty dir means the process working directory.
func FindRepoRoot(dir string) (string, error) {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", gberrors.ErrWorkingDirectoryInaccessible
		}
		dir = wd
	}

	absPath, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve path: %w", err)
	}

	repo, err := gogit.PlainOpenWithOptions(absPath, &gogit.PlainOpenOptions{
		DetectDotGit:          true,
		EnableDotGitCommonDir: true,
	})
	if err != nil {
		if errors.Is(err, gogit.ErrRepositoryNotExists) {
			return "", fmt.Errorf("%w: %s", ErrNotARepository, absPath)
		}
		return "", fmt.Errorf("failed to open repository: %w", err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("failed to get worktree: %w", err)
	}

	return worktree.Filesystem.Root(), nil
}

// ResolveDir makes path absolute against the process working directory.
// It fails with ErrWorkingDirectoryInaccessible when that directory cannot be read.
func ResolveDir(path string) (string, error) {
	if filepath.IsAbs(path) {
		return filepath.Clean(path), nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", gberrors.ErrWorkingDirectoryInaccessible
	}
	return filepath.Join(wd, path), nil
}
