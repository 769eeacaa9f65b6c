// Package runtime holds the dependencies shared by CLI commands: settings,
// logger, git executor and worker pool.
package runtime

import (
	"context"
	"errors"
	"fmt"

	"gitbind.dev/gitbind/internal/config"
	"gitbind.dev/gitbind/internal/git"
	"gitbind.dev/gitbind/internal/output"
	"gitbind.dev/gitbind/internal/repository"
	"gitbind.dev/gitbind/internal/workerpool"
)

// ErrNoContext is returned when a command runs without an initialized runtime.
var ErrNoContext = errors.New("runtime context not initialized")

// Context provides access to the executor and output for commands
type Context struct {
	Config    *config.Config
	Splog     *output.Splog
	Styler    *output.Styler
	Confirmer output.Confirmer
	Runner    *git.CommandRunner
	Pool      *workerpool.Pool

	// RepoDir is the --repo flag value. Empty means the repository containing
	// the working directory.
	RepoDir string
}

// New builds a Context from cfg, wiring the executor to splog's logger.
func New(cfg *config.Config, splog *output.Splog, styler *output.Styler, confirmer output.Confirmer, repoDir string) *Context {
	runner := git.NewCommandRunner(
		git.WithGitPath(cfg.GitPath),
		git.WithEnv(cfg.Env...),
		git.WithLogger(splog.Logger()),
	)
	return &Context{
		Config:    cfg,
		Splog:     splog,
		Styler:    styler,
		Confirmer: confirmer,
		Runner:    runner,
		Pool:      workerpool.New(cfg.PoolSize),
		RepoDir:   repoDir,
	}
}

// Repository returns a handle on the selected repository.
func (c *Context) Repository() (*repository.Repository, error) {
	var (
		dir string
		err error
	)
	if c.RepoDir != "" {
		dir, err = git.ResolveDir(c.RepoDir)
	} else {
		dir, err = git.FindRepoRoot("")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to locate repository: %w", err)
	}
	return c.Open(dir), nil
}

// Open returns a handle on dir using the shared executor.
func (c *Context) Open(dir string) *repository.Repository {
	return repository.New(dir, c.RepositoryOptions()...)
}

// RepositoryOptions returns the options binding a repository to the shared executor.
func (c *Context) RepositoryOptions() []repository.Option {
	return []repository.Option{repository.WithExecutor(c.Runner)}
}

type contextKey struct{}

// WithContext stores rc in ctx.
func WithContext(ctx context.Context, rc *Context) context.Context {
	return context.WithValue(ctx, contextKey{}, rc)
}

// GetContext returns the Context stored in ctx.
func GetContext(ctx context.Context) (*Context, error) {
	if ctx == nil {
		return nil, ErrNoContext
	}
	rc, ok := ctx.Value(contextKey{}).(*Context)
	if !ok || rc == nil {
		return nil, ErrNoContext
	}
	return rc, nil
}
