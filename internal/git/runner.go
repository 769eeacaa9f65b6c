package git

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"time"
	"unicode/utf8"

	gberrors "gitbind.dev/gitbind/internal/errors"
)

// DefaultGitPath is the binary looked up on PATH when no explicit path is configured
const DefaultGitPath = "git"

// Executor runs git with the given arguments in dir and returns its decoded stdout.
// Failures are reported with the error kinds of the errors package.
type Executor interface {
	Execute(ctx context.Context, dir string, args ...string) (string, error)
}

// CommandRunner is the Executor that spawns the git binary.
// It holds no mutable state and is safe for concurrent use.
type CommandRunner struct {
	gitPath string
	env     []string
	logger  *slog.Logger
}

// Option is a functional option for configuring CommandRunner.
type Option func(*CommandRunner)

// WithGitPath sets a custom path to the git binary.
func WithGitPath(path string) Option {
	return func(r *CommandRunner) {
		if path != "" {
			r.gitPath = path
		}
	}
}

// WithEnv appends KEY=VALUE entries to the child environment.
func WithEnv(env ...string) Option {
	return func(r *CommandRunner) {
		r.env = append(r.env, env...)
	}
}

// WithLogger sets the logger used for per-invocation debug records.
func WithLogger(logger *slog.Logger) Option {
	return func(r *CommandRunner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewCommandRunner creates a new CommandRunner
func NewCommandRunner(opts ...Option) *CommandRunner {
	r := &CommandRunner{
		gitPath: DefaultGitPath,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// GitPath returns the binary this runner spawns.
func (r *CommandRunner) GitPath() string {
	return r.gitPath
}

// Execute spawns git with args as discrete argv entries (never through a shell)
// in dir, blocks until it exits and classifies the outcome.
//
// The core imposes no deadline: a hung child blocks until ctx is done.
func (r *CommandRunner) Execute(ctx context.Context, dir string, args ...string) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	cmd := exec.CommandContext(ctx, r.gitPath, args...)
	if dir != "" {
		cmd.Dir = dir
	}
	if len(r.env) > 0 {
		cmd.Env = append(os.Environ(), r.env...)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	runErr := cmd.Run()
	if runErr != nil && ctx.Err() != nil {
		runErr = ctx.Err()
	}

	r.logger.Debug("git",
		"args", args,
		"dir", dir,
		"duration", time.Since(start),
		"exit_code", cmd.ProcessState.ExitCode(),
	)

	return classify(r.gitPath, args, dir, stdout.Bytes(), stderr.Bytes(), runErr)
}

// classify maps the result of one git process into the success value or one
// of the error kinds. runErr is the error returned by exec.Cmd.Run.
func classify(command string, args []string, dir string, stdout, stderr []byte, runErr error) (string, error) {
	if runErr == nil {
		if !utf8.Valid(stdout) {
			return "", gberrors.ErrUndecodable
		}
		return string(stdout), nil
	}

	var exitErr *exec.ExitError
	if !errors.As(runErr, &exitErr) {
		return "", gberrors.NewExecutionError(command, runErr)
	}

	if !utf8.Valid(stdout) || !utf8.Valid(stderr) {
		return "", gberrors.ErrUndecodable
	}
	return "", gberrors.NewGitCommandError(command, args, dir, string(stdout), string(stderr), exitErr.ExitCode())
}

// Capture runs git through e and maps the decoded stdout with post.
// post is only called on success.
func Capture[R any](ctx context.Context, e Executor, dir string, post func(string) R, args ...string) (R, error) {
	out, err := e.Execute(ctx, dir, args...)
	if err != nil {
		var zero R
		return zero, err
	}
	return post(out), nil
}

// Trimmed is a Capture post-processor that strips surrounding whitespace.
func Trimmed(out string) string {
	return strings.TrimSpace(out)
}

// Lines is a Capture post-processor that splits output into one entry per line.
// Empty output yields an empty, non-nil slice.
func Lines(out string) []string {
	out = strings.TrimRight(out, "\r\n")
	if out == "" {
		return []string{}
	}
	lines := strings.Split(out, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// Compile-time check that CommandRunner implements Executor.
var _ Executor = (*CommandRunner)(nil)
