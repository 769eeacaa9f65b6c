package git

import (
	"errors"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/require"

	gberrors "gitbind.dev/gitbind/internal/errors"
)

func TestClassify(t *testing.T) {
	t.Run("success returns stdout verbatim", func(t *testing.T) {
		out, err := classify("git", []string{"status"}, "", []byte("ok\n"), nil, nil)
		require.NoError(t, err)
		require.Equal(t, "ok\n", out)
	})

	t.Run("success with invalid utf8 is undecodable", func(t *testing.T) {
		_, err := classify("git", nil, "", []byte{0xff, 0xfe}, nil, nil)
		require.ErrorIs(t, err, gberrors.ErrUndecodable)
	})

	t.Run("spawn failure is an execution error", func(t *testing.T) {
		_, err := classify("git", nil, "", nil, nil, exec.ErrNotFound)
		require.ErrorIs(t, err, gberrors.ErrExecution)
		require.ErrorIs(t, err, exec.ErrNotFound)
	})

	t.Run("arbitrary run error is an execution error", func(t *testing.T) {
		_, err := classify("git", nil, "/missing", nil, nil, errors.New("chdir /missing: no such file or directory"))
		require.ErrorIs(t, err, gberrors.ErrExecution)
	})
}

func TestLines(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{name: "empty", input: "", expected: []string{}},
		{name: "only newline", input: "\n", expected: []string{}},
		{name: "single line", input: "main\n", expected: []string{"main"}},
		{name: "multiple lines", input: "main\nfeature/a\n", expected: []string{"main", "feature/a"}},
		{name: "crlf", input: "a\r\nb\r\n", expected: []string{"a", "b"}},
		{name: "keeps leading spaces", input: " M file\n", expected: []string{" M file"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, Lines(tt.input))
		})
	}
}

func TestNewCommandRunnerDefaults(t *testing.T) {
	r := NewCommandRunner()
	require.Equal(t, DefaultGitPath, r.GitPath())
	require.NotNil(t, r.logger)
	require.Empty(t, r.env)

	r = NewCommandRunner(WithGitPath("/opt/git/bin/git"), WithEnv("A=1"), WithEnv("B=2"), WithGitPath(""))
	require.Equal(t, "/opt/git/bin/git", r.GitPath())
	require.Equal(t, []string{"A=1", "B=2"}, r.env)
}
