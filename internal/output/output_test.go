package output_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"gitbind.dev/gitbind/internal/output"
)

func TestSplogConsole(t *testing.T) {
	t.Setenv("DEBUG", "")
	var buf bytes.Buffer
	splog := output.NewSplog(&buf, false)

	splog.Info("cloned %s", "repo")
	splog.Warn("no remotes")
	splog.Error("failed: %d", 2)
	splog.Debug("hidden")

	require.Equal(t, "cloned repo\nwarning: no remotes\nerror: failed: 2\n", buf.String())
}

func TestSplogDebugIncludesAttributes(t *testing.T) {
	t.Setenv("DEBUG", "")
	var buf bytes.Buffer
	splog := output.NewSplog(&buf, true)

	splog.Logger().Debug("git", "args", []string{"status"}, "exit_code", 0)
	require.Equal(t, "git args=[status] exit_code=0\n", buf.String())
}

func TestSplogQuiet(t *testing.T) {
	var buf bytes.Buffer
	splog := output.NewSplog(&buf, false)

	splog.SetQuiet(true)
	splog.Info("suppressed")
	splog.Warn("kept")
	splog.Error("kept too")
	splog.SetQuiet(false)
	splog.Info("shown")

	require.Equal(t, "warning: kept\nerror: kept too\nshown\n", buf.String())
}

func TestSplogKeepsLoggerAttributes(t *testing.T) {
	t.Setenv("DEBUG", "")
	var buf bytes.Buffer
	splog := output.NewSplog(&buf, true)

	logger := splog.Logger().With("dir", "/repo")
	logger.Debug("git", "exit_code", 0)
	logger.WithGroup("result").With("status", "ok").Info("done", "lines", 2)

	require.Equal(t, "git dir=/repo exit_code=0\ndone dir=/repo result.status=ok result.lines=2\n", buf.String())
}

func TestSplogWritesLogFile(t *testing.T) {
	t.Setenv(output.EnvLogMaxSize, "5")
	t.Setenv(output.EnvLogMaxBackups, "1")
	t.Setenv(output.EnvLogMaxAge, "not-a-number")
	t.Setenv("DEBUG", "")

	logPath := filepath.Join(t.TempDir(), "logs", "gitbind.log")
	var buf bytes.Buffer
	splog, err := output.NewSplogWithConfig(&buf, false, logPath)
	require.NoError(t, err)

	splog.Info("visible")
	splog.Debug("file only")
	require.NoError(t, splog.Close())

	require.Equal(t, "visible\n", buf.String())

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	require.Contains(t, lines[0], "level=INFO")
	require.Contains(t, lines[0], "msg=visible")
	require.Contains(t, lines[1], "level=DEBUG")
	require.Contains(t, lines[1], `msg="file only"`)
}

func TestPlainStyler(t *testing.T) {
	s := output.NewPlainStyler()

	require.Equal(t, "* main", s.Branch("main", true))
	require.Equal(t, "  feature", s.Branch("feature", false))
	require.Equal(t, "?? new.txt", s.File(output.StateUntracked, "new.txt"))
	require.Equal(t, " M changed.txt", s.File(output.StateModified, "changed.txt"))
	require.Equal(t, "A  staged.txt", s.File(output.StateAdded, "staged.txt"))
	require.Equal(t, "repo", s.Header("repo"))
}

func TestStylerDisabledForNonTerminal(t *testing.T) {
	var buf bytes.Buffer
	s := output.NewStyler(&buf)
	require.Equal(t, "  feature", s.Branch("feature", false))
}

func TestStaticConfirmer(t *testing.T) {
	yes, err := output.StaticConfirmer{Answer: true}.Confirm("remove?", false)
	require.NoError(t, err)
	require.True(t, yes)

	no, err := output.StaticConfirmer{}.Confirm("remove?", true)
	require.NoError(t, err)
	require.False(t, no)
}
