package repository

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFilterStatus(t *testing.T) {
	tests := []struct {
		name     string
		out      string
		prefix   string
		expected []string
	}{
		{"empty output", "", statusUntracked, []string{}},
		{"untracked", "?? a.txt\x00?? b c.txt\x00", statusUntracked, []string{"a.txt", "b c.txt"}},
		{"modified only unstaged", " M a.txt\x00M  b.txt\x00MM c.txt\x00", statusModified, []string{"a.txt"}},
		{"added only clean", "A  a.txt\x00AM b.txt\x00", statusAdded, []string{"a.txt"}},
		{"rename source skipped", "R  new.txt\x00?? fake\x00?? real.txt\x00", statusUntracked, []string{"real.txt"}},
		{"worktree rename source skipped", " R b.txt\x00 M fake\x00 M real.txt\x00", statusModified, []string{"real.txt"}},
		{"worktree copy source skipped", " C b.txt\x00?? fake\x00", statusUntracked, []string{}},
		{"short entries ignored", "?\x00?? a\x00", statusUntracked, []string{"a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, filterStatus(tt.out, tt.prefix))
		})
	}
}
