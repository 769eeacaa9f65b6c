package testhelpers

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

// Must is a generic helper function that panics if err is not nil,
// otherwise returns the value. Useful in test setup where errors are not expected.
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// ExpectBranches asserts that the repository has exactly the expected local branches.
func ExpectBranches(t *testing.T, repo *GitRepo, expected []string) {
	t.Helper()

	branches, err := repo.GetLocalBranches()
	require.NoError(t, err, "Failed to list branches")
	require.Equal(t, sorted(expected), sorted(branches), "Branches do not match")
}

// ExpectTrackedFiles asserts that the index holds exactly the expected paths.
func ExpectTrackedFiles(t *testing.T, repo *GitRepo, expected []string) {
	t.Helper()

	files, err := repo.ListFiles()
	require.NoError(t, err, "Failed to list tracked files")
	require.Equal(t, sorted(expected), sorted(files), "Tracked files do not match")
}

func sorted(values []string) []string {
	out := append([]string{}, values...)
	sort.Strings(out)
	return out
}
