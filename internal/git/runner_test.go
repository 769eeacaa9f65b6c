package git_test

import (
	"bytes"
	"context"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	gberrors "gitbind.dev/gitbind/internal/errors"
	"gitbind.dev/gitbind/internal/git"
	"gitbind.dev/gitbind/testhelpers"
)

func TestCommandRunnerClassification(t *testing.T) {
	t.Run("exit 0 returns decoded stdout", func(t *testing.T) {
		fake := testhelpers.WriteFakeGit(t, `printf 'ok\n'`)
		runner := git.NewCommandRunner(git.WithGitPath(fake))

		out, err := runner.Execute(context.Background(), t.TempDir(), "status")
		require.NoError(t, err)
		require.Equal(t, "ok\n", out)
		require.Equal(t, "ok", git.Trimmed(out))
	})

	t.Run("exit 1 carries stdout and stderr verbatim", func(t *testing.T) {
		fake := testhelpers.WriteFakeGit(t, `printf "error: pathspec 'x' did not match any file(s) known to git\n" >&2
exit 1`)
		runner := git.NewCommandRunner(git.WithGitPath(fake))

		_, err := runner.Execute(context.Background(), t.TempDir(), "checkout", "x")
		require.ErrorIs(t, err, gberrors.ErrGit)

		gitErr, ok := gberrors.AsGitCommandError(err)
		require.True(t, ok)
		require.Equal(t, "", gitErr.Stdout)
		require.Equal(t, "error: pathspec 'x' did not match any file(s) known to git\n", gitErr.Stderr)
		require.Equal(t, 1, gitErr.ExitCode)
		require.Equal(t, []string{"checkout", "x"}, gitErr.Args)
	})

	t.Run("non-utf8 stdout on success is undecodable", func(t *testing.T) {
		fake := testhelpers.WriteFakeGit(t, `printf '\377\376'`)
		runner := git.NewCommandRunner(git.WithGitPath(fake))

		_, err := runner.Execute(context.Background(), t.TempDir(), "log")
		require.ErrorIs(t, err, gberrors.ErrUndecodable)
	})

	t.Run("non-utf8 stderr on failure is undecodable", func(t *testing.T) {
		fake := testhelpers.WriteFakeGit(t, `printf '\377' >&2
exit 2`)
		runner := git.NewCommandRunner(git.WithGitPath(fake))

		_, err := runner.Execute(context.Background(), t.TempDir(), "log")
		require.ErrorIs(t, err, gberrors.ErrUndecodable)
		require.NotErrorIs(t, err, gberrors.ErrGit)
	})

	t.Run("missing binary is an execution error", func(t *testing.T) {
		runner := git.NewCommandRunner(git.WithGitPath(filepath.Join(t.TempDir(), "no-such-git")))

		_, err := runner.Execute(context.Background(), t.TempDir(), "status")
		require.ErrorIs(t, err, gberrors.ErrExecution)
	})

	t.Run("missing working directory is an execution error", func(t *testing.T) {
		fake := testhelpers.WriteFakeGit(t, `exit 0`)
		runner := git.NewCommandRunner(git.WithGitPath(fake))

		_, err := runner.Execute(context.Background(), filepath.Join(t.TempDir(), "missing"), "status")
		require.ErrorIs(t, err, gberrors.ErrExecution)
	})
}

func TestCommandRunnerArgumentsBypassShell(t *testing.T) {
	fake := testhelpers.WriteFakeGit(t, `for arg in "$@"; do printf '%s\n' "$arg"; done`)
	runner := git.NewCommandRunner(git.WithGitPath(fake))

	args := []string{"commit", "-m", "$(echo pwned); rm -rf /", "a b", "`id`"}
	out, err := runner.Execute(context.Background(), t.TempDir(), args...)
	require.NoError(t, err)
	require.Equal(t, args, git.Lines(out))
}

func TestCommandRunnerEnvAndDir(t *testing.T) {
	fake := testhelpers.WriteFakeGit(t, `printf '%s\n%s\n' "$GITBIND_TEST_VALUE" "$(pwd -P)"`)
	runner := git.NewCommandRunner(git.WithGitPath(fake), git.WithEnv("GITBIND_TEST_VALUE=hello"))

	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)

	lines, err := git.Capture(context.Background(), runner, dir, git.Lines, "status")
	require.NoError(t, err)
	require.Equal(t, []string{"hello", dir}, lines)
}

func TestCommandRunnerContextCancellation(t *testing.T) {
	fake := testhelpers.WriteFakeGit(t, `exec sleep 10`)
	runner := git.NewCommandRunner(git.WithGitPath(fake))

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := runner.Execute(ctx, t.TempDir(), "fetch")
	require.ErrorIs(t, err, gberrors.ErrExecution)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	require.Less(t, time.Since(start), 5*time.Second)
}

func TestCommandRunnerLogsInvocations(t *testing.T) {
	fake := testhelpers.WriteFakeGit(t, `exit 0`)
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	runner := git.NewCommandRunner(git.WithGitPath(fake), git.WithLogger(logger))

	_, err := runner.Execute(context.Background(), t.TempDir(), "rev-parse", "HEAD")
	require.NoError(t, err)
	require.Contains(t, buf.String(), "rev-parse")
	require.Contains(t, buf.String(), "exit_code=0")
}

func TestCaptureSkipsPostProcessOnError(t *testing.T) {
	spy := testhelpers.NewSpyExecutor().On(testhelpers.ExecResult{Err: gberrors.ErrUndecodable}, "log")

	called := false
	_, err := git.Capture(context.Background(), spy, "/repo", func(out string) int {
		called = true
		return len(out)
	}, "log")
	require.ErrorIs(t, err, gberrors.ErrUndecodable)
	require.False(t, called)
	require.Equal(t, 1, spy.CallCount())
}

func TestCommandRunnerRealGit(t *testing.T) {
	scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
	runner := git.NewCommandRunner(git.WithEnv(testhelpers.GitEnvOverrides()...))

	out, err := runner.Execute(context.Background(), scene.Dir, "rev-parse", "--is-inside-work-tree")
	require.NoError(t, err)
	require.Equal(t, "true", git.Trimmed(out))

	_, err = runner.Execute(context.Background(), scene.Dir, "checkout", "x")
	require.ErrorIs(t, err, gberrors.ErrGit)
	gitErr, ok := gberrors.AsGitCommandError(err)
	require.True(t, ok)
	require.Contains(t, gitErr.Stderr, "pathspec 'x' did not match")
}
