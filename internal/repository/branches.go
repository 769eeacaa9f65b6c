package repository

import (
	"context"
	"fmt"

	gberrors "gitbind.dev/gitbind/internal/errors"
	"gitbind.dev/gitbind/internal/git"
	"gitbind.dev/gitbind/internal/validation"
)

// CreateLocalBranch creates branch at HEAD and checks it out.
func (r *Repository) CreateLocalBranch(ctx context.Context, branch validation.RefName) error {
	if branch.IsZero() {
		return gberrors.ErrInvalidRefName
	}
	if _, err := r.run(ctx, "checkout", "-b", branch.String()); err != nil {
		return fmt.Errorf("failed to create branch %s: %w", branch, err)
	}
	return nil
}

// CreateBranchFromStartpoint creates branch at startpoint and checks it out.
// startpoint may be any revision git understands.
func (r *Repository) CreateBranchFromStartpoint(ctx context.Context, branch validation.RefName, startpoint string) error {
	if branch.IsZero() {
		return gberrors.ErrInvalidRefName
	}
	if _, err := r.run(ctx, "checkout", "-b", branch.String(), startpoint); err != nil {
		return fmt.Errorf("failed to create branch %s from %s: %w", branch, startpoint, err)
	}
	return nil
}

// SwitchBranch checks out an existing branch.
func (r *Repository) SwitchBranch(ctx context.Context, branch validation.RefName) error {
	if branch.IsZero() {
		return gberrors.ErrInvalidRefName
	}
	if _, err := r.run(ctx, "checkout", branch.String()); err != nil {
		return fmt.Errorf("failed to checkout branch %s: %w", branch, err)
	}
	return nil
}

// CurrentBranch returns the checked out branch, or "" when HEAD is detached.
func (r *Repository) CurrentBranch(ctx context.Context) (string, error) {
	return git.Capture(ctx, r.exec, r.location, git.Trimmed, "branch", "--show-current")
}

// ListBranches returns the local branch names, one entry per line of git output.
func (r *Repository) ListBranches(ctx context.Context) ([]string, error) {
	return git.Capture(ctx, r.exec, r.location, git.Lines, "branch", "--format=%(refname:short)")
}

// Hash returns the commit id of HEAD, abbreviated when short is set.
func (r *Repository) Hash(ctx context.Context, short bool) (string, error) {
	args := []string{"rev-parse"}
	if short {
		args = append(args, "--short")
	}
	args = append(args, "HEAD")
	return git.Capture(ctx, r.exec, r.location, git.Trimmed, args...)
}
