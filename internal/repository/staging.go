package repository

import (
	"context"
	"fmt"
)

// Add stages the given pathspecs.
func (r *Repository) Add(ctx context.Context, paths ...string) error {
	args := append([]string{"add", "--"}, paths...)
	if _, err := r.run(ctx, args...); err != nil {
		return fmt.Errorf("failed to add files: %w", err)
	}
	return nil
}

// Remove removes the given pathspecs from the index and the working tree.
// Without force, git refuses files with staged or local modifications.
func (r *Repository) Remove(ctx context.Context, force bool, paths ...string) error {
	args := []string{"rm"}
	if force {
		args = append(args, "-f")
	}
	args = append(args, "--")
	args = append(args, paths...)

	if _, err := r.run(ctx, args...); err != nil {
		return fmt.Errorf("failed to remove files: %w", err)
	}
	return nil
}

// CommitAll commits all staged files and modifications to tracked files.
func (r *Repository) CommitAll(ctx context.Context, message string) error {
	if _, err := r.run(ctx, "commit", "-a", "-m", message); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}
