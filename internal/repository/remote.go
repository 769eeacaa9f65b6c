package repository

import (
	"context"
	"fmt"
	"strings"

	gberrors "gitbind.dev/gitbind/internal/errors"
	"gitbind.dev/gitbind/internal/git"
	"gitbind.dev/gitbind/internal/validation"
)

// ListRemotes returns the configured remote names.
func (r *Repository) ListRemotes(ctx context.Context) ([]string, error) {
	return git.Capture(ctx, r.exec, r.location, git.Lines, "remote")
}

// checkRemoteName rejects names git would read as an option, such as
// --upload-pack=<cmd>.
func checkRemoteName(name string) error {
	if name == "" || strings.HasPrefix(name, "-") {
		return fmt.Errorf("%w: %q", gberrors.ErrInvalidRemoteName, name)
	}
	return nil
}

// AddRemote registers url under name.
func (r *Repository) AddRemote(ctx context.Context, name string, url validation.RemoteURL) error {
	if url.IsZero() {
		return gberrors.ErrInvalidURL
	}
	if err := checkRemoteName(name); err != nil {
		return err
	}
	if _, err := r.run(ctx, "remote", "add", "--", name, url.String()); err != nil {
		return fmt.Errorf("failed to add remote %s: %w", name, err)
	}
	return nil
}

// ShowRemoteURI returns the URL configured for the named remote.
func (r *Repository) ShowRemoteURI(ctx context.Context, name string) (string, error) {
	if err := checkRemoteName(name); err != nil {
		return "", err
	}
	return git.Capture(ctx, r.exec, r.location, git.Trimmed, "config", "--get", "remote."+name+".url")
}

// Push pushes the current branch to its configured upstream.
// It fails with ErrNoRemoteRepositorySet when the repository has no remotes.
func (r *Repository) Push(ctx context.Context) error {
	remotes, err := r.ListRemotes(ctx)
	if err != nil {
		return fmt.Errorf("failed to list remotes: %w", err)
	}
	if len(remotes) == 0 {
		return gberrors.ErrNoRemoteRepositorySet
	}

	if _, err := r.run(ctx, "push"); err != nil {
		return fmt.Errorf("failed to push: %w", err)
	}
	return nil
}

// PushToUpstream pushes branch to remote and records it as the upstream.
func (r *Repository) PushToUpstream(ctx context.Context, remote string, branch validation.RefName) error {
	if branch.IsZero() {
		return gberrors.ErrInvalidRefName
	}
	if err := checkRemoteName(remote); err != nil {
		return err
	}
	if _, err := r.run(ctx, "push", "-u", remote, branch.String()); err != nil {
		return fmt.Errorf("failed to push %s to %s: %w", branch, remote, err)
	}
	return nil
}

// FetchRemote fetches from the named remote.
func (r *Repository) FetchRemote(ctx context.Context, remote string) error {
	if err := checkRemoteName(remote); err != nil {
		return err
	}
	if _, err := r.run(ctx, "fetch", remote); err != nil {
		return fmt.Errorf("failed to fetch %s: %w", remote, err)
	}
	return nil
}
