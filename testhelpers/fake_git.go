package testhelpers

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// WriteFakeGit writes an executable shell script standing in for the git
// binary and returns its path. body is the script after the shebang line.
// Skipped on Windows.
func WriteFakeGit(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake git scripts need a POSIX shell")
	}

	path := filepath.Join(t.TempDir(), "git")
	script := "#!/bin/sh\n" + body + "\n"
	//nolint:gosec // script must be executable
	if err := os.WriteFile(path, []byte(script), 0700); err != nil {
		t.Fatalf("failed to write fake git: %v", err)
	}
	return path
}
