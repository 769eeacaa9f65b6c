package git_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"gitbind.dev/gitbind/internal/git"
	"gitbind.dev/gitbind/testhelpers"
)

func TestFindRepoRoot(t *testing.T) {
	t.Run("finds root from nested directory", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		nested := filepath.Join(scene.Dir, "a", "b")
		require.NoError(t, os.MkdirAll(nested, 0750))

		root, err := git.FindRepoRoot(nested)
		require.NoError(t, err)
		require.Equal(t, scene.Dir, root)
	})

	t.Run("reports directories outside a repository", func(t *testing.T) {
		dir := t.TempDir()

		_, err := git.FindRepoRoot(dir)
		require.ErrorIs(t, err, git.ErrNotARepository)
	})
}

func TestResolveDir(t *testing.T) {
	abs, err := git.ResolveDir("/tmp/../tmp/clone")
	require.NoError(t, err)
	require.Equal(t, "/tmp/clone", abs)

	wd, err := os.Getwd()
	require.NoError(t, err)
	rel, err := git.ResolveDir("clone")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(wd, "clone"), rel)
}
