// Package repository exposes named git operations over a repository directory.
//
// Every operation validates its inputs, builds a fixed argument list and runs
// git through a git.Executor. Nothing is cached: each call reflects the
// on-disk state at the time it runs. Operations on one Repository are not
// serialised; callers that share a handle across goroutines must coordinate
// writes themselves.
package repository

import (
	"context"
	"fmt"
	"path/filepath"

	gberrors "gitbind.dev/gitbind/internal/errors"
	"gitbind.dev/gitbind/internal/git"
	"gitbind.dev/gitbind/internal/validation"
)

// Repository is a handle on a repository directory. The location is not
// checked for existence; a bad location surfaces when git is run against it.
type Repository struct {
	location string
	exec     git.Executor
}

// Option is a functional option for configuring a Repository.
type Option func(*Repository)

// WithExecutor sets the Executor used to run git.
func WithExecutor(e git.Executor) Option {
	return func(r *Repository) {
		if e != nil {
			r.exec = e
		}
	}
}

// New creates a handle on the pre-existing repository at path.
func New(path string, opts ...Option) *Repository {
	r := &Repository{location: path}
	for _, opt := range opts {
		opt(r)
	}
	if r.exec == nil {
		r.exec = git.NewCommandRunner()
	}
	return r
}

// Init runs git init in path and returns a handle on it.
func Init(ctx context.Context, path string, opts ...Option) (*Repository, error) {
	r := New(path, opts...)
	if _, err := r.exec.Execute(ctx, r.location, "init"); err != nil {
		return nil, fmt.Errorf("failed to init repository at %s: %w", path, err)
	}
	return r, nil
}

// Clone clones url into path. A relative path is resolved against the
// process working directory, which must be readable.
func Clone(ctx context.Context, url validation.RemoteURL, path string, opts ...Option) (*Repository, error) {
	if url.IsZero() {
		return nil, gberrors.ErrInvalidURL
	}

	cwd, err := git.ResolveDir(".")
	if err != nil {
		return nil, err
	}
	dest := path
	if !filepath.IsAbs(dest) {
		dest = filepath.Join(cwd, dest)
	}

	r := New(dest, opts...)
	if _, err := r.exec.Execute(ctx, cwd, "clone", "--", url.String(), dest); err != nil {
		return nil, fmt.Errorf("failed to clone %s: %w", url, err)
	}
	return r, nil
}

// Path returns the repository location.
func (r *Repository) Path() string {
	return r.location
}

// Cmd runs git with args in the repository, discarding output.
func (r *Repository) Cmd(ctx context.Context, args ...string) error {
	_, err := r.exec.Execute(ctx, r.location, args...)
	return err
}

// CmdOut runs git with args in the repository and returns its output lines.
func (r *Repository) CmdOut(ctx context.Context, args ...string) ([]string, error) {
	return git.Capture(ctx, r.exec, r.location, git.Lines, args...)
}

// run executes git in the repository and returns the raw decoded stdout.
func (r *Repository) run(ctx context.Context, args ...string) (string, error) {
	return r.exec.Execute(ctx, r.location, args...)
}
