// Package scenario runs the gitbind CLI in-process against a temporary
// repository and offers a terse API for asserting on the result.
package scenario

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"gitbind.dev/gitbind/internal/cli"
	"gitbind.dev/gitbind/internal/config"
	"gitbind.dev/gitbind/internal/output"
	"gitbind.dev/gitbind/testhelpers"
)

// Scenario combines a Scene with the output of the last CLI invocation.
type Scenario struct {
	T     *testing.T
	Scene *testhelpers.Scene

	Stdout   string
	Stderr   string
	ExitCode int

	confirmer output.Confirmer
}

// NewScenario creates a Scenario with an optional setup function.
// NOTE: This function is NOT safe for parallel tests as it uses t.Setenv.
func NewScenario(t *testing.T, setup testhelpers.SceneSetup) *Scenario {
	t.Helper()

	IsolateEnv(t)
	return &Scenario{
		T:         t,
		Scene:     testhelpers.NewScene(t, setup),
		confirmer: output.StaticConfirmer{Answer: false},
	}
}

// IsolateEnv points the CLI at a missing config file and applies the git
// overrides from testhelpers.GitEnvOverrides to the process environment.
func IsolateEnv(t *testing.T) {
	t.Helper()

	t.Setenv(config.EnvConfigPath, t.TempDir()+"/config.yaml")
	t.Setenv(config.EnvGitPath, "")
	t.Setenv(config.EnvLogFile, "")
	t.Setenv("DEBUG", "")
	for _, kv := range testhelpers.GitEnvOverrides() {
		key, value, _ := strings.Cut(kv, "=")
		t.Setenv(key, value)
	}
}

// WithConfirmation sets the answer given to confirmation prompts.
func (s *Scenario) WithConfirmation(answer bool) *Scenario {
	s.confirmer = output.StaticConfirmer{Answer: answer}
	return s
}

// Run invokes the CLI with --repo pointing at the scene.
func (s *Scenario) Run(args ...string) *Scenario {
	s.T.Helper()
	return s.RunRaw(append([]string{"--repo", s.Scene.Dir}, args...)...)
}

// RunRaw invokes the CLI with args as given.
func (s *Scenario) RunRaw(args ...string) *Scenario {
	s.T.Helper()

	var stdout, stderr bytes.Buffer
	s.ExitCode = cli.Run(context.Background(), args, &stdout, &stderr, "test", cli.WithConfirmer(s.confirmer))
	s.Stdout = stdout.String()
	s.Stderr = stderr.String()
	return s
}

// RunGit runs a git command in the scene's repository, bypassing the CLI.
func (s *Scenario) RunGit(args ...string) *Scenario {
	s.T.Helper()
	require.NoError(s.T, s.Scene.Repo.RunGitCommand(args...))
	return s
}

// WriteFile writes a file in the scene's repository.
func (s *Scenario) WriteFile(name, contents string) *Scenario {
	s.T.Helper()
	require.NoError(s.T, s.Scene.Repo.WriteFile(name, contents))
	return s
}

// CommitChange writes name and commits it with message.
func (s *Scenario) CommitChange(name, message string) *Scenario {
	s.T.Helper()
	require.NoError(s.T, s.Scene.Repo.CreateChangeAndCommit(name, message, message))
	return s
}

// ExpectSuccess asserts that the last invocation exited with 0.
func (s *Scenario) ExpectSuccess() *Scenario {
	s.T.Helper()
	require.Equal(s.T, 0, s.ExitCode, "stdout: %s\nstderr: %s", s.Stdout, s.Stderr)
	return s
}

// ExpectExitCode asserts on the exit code of the last invocation.
func (s *Scenario) ExpectExitCode(code int) *Scenario {
	s.T.Helper()
	require.Equal(s.T, code, s.ExitCode, "stdout: %s\nstderr: %s", s.Stdout, s.Stderr)
	return s
}

// ExpectLines asserts that stdout consists of exactly lines.
func (s *Scenario) ExpectLines(lines ...string) *Scenario {
	s.T.Helper()
	expected := ""
	if len(lines) > 0 {
		expected = strings.Join(lines, "\n") + "\n"
	}
	require.Equal(s.T, expected, s.Stdout)
	return s
}

// ExpectStderrContains asserts that stderr contains text.
func (s *Scenario) ExpectStderrContains(text string) *Scenario {
	s.T.Helper()
	require.Contains(s.T, s.Stderr, text)
	return s
}
