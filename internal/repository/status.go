package repository

import (
	"context"
	"strings"

	"gitbind.dev/gitbind/internal/git"
)

// Porcelain status prefixes: two status letters and a separating space.
const (
	statusUntracked = "?? "
	statusModified  = " M "
	statusAdded     = "A  "

	statusPrefixLen = 3
)

// ListTracked returns the paths known to the index.
func (r *Repository) ListTracked(ctx context.Context) ([]string, error) {
	return git.Capture(ctx, r.exec, r.location, git.Lines, "ls-files")
}

// ListUntracked returns files not known to the index and not ignored.
func (r *Repository) ListUntracked(ctx context.Context) ([]string, error) {
	return r.listByStatus(ctx, statusUntracked)
}

// ListModified returns tracked files modified in the working tree but not staged.
func (r *Repository) ListModified(ctx context.Context) ([]string, error) {
	return r.listByStatus(ctx, statusModified)
}

// ListAdded returns files newly added to the index with no further changes.
func (r *Repository) ListAdded(ctx context.Context) ([]string, error) {
	return r.listByStatus(ctx, statusAdded)
}

func (r *Repository) listByStatus(ctx context.Context, prefix string) ([]string, error) {
	return git.Capture(ctx, r.exec, r.location, func(out string) []string {
		return filterStatus(out, prefix)
	}, "status", "--porcelain", "-z", "--untracked-files=all")
}

// filterStatus keeps the entries of NUL-separated porcelain output that start
// with prefix and strips the prefix to recover the path. Order follows git output.
func filterStatus(out, prefix string) []string {
	paths := []string{}
	entries := strings.Split(out, "\x00")
	for i := 0; i < len(entries); i++ {
		entry := entries[i]
		if len(entry) < statusPrefixLen {
			continue
		}
		// Renames and copies, staged or in the worktree, are followed by an
		// extra entry holding the source path.
		if isRenameOrCopy(entry[0]) || isRenameOrCopy(entry[1]) {
			i++
		}
		if strings.HasPrefix(entry, prefix) {
			paths = append(paths, entry[statusPrefixLen:])
		}
	}
	return paths
}

func isRenameOrCopy(status byte) bool {
	return status == 'R' || status == 'C'
}
