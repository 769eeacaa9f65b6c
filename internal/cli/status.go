package cli

import (
	"context"

	"github.com/spf13/cobra"

	"gitbind.dev/gitbind/internal/output"
	"gitbind.dev/gitbind/internal/repository"
	"gitbind.dev/gitbind/internal/runtime"
)

func newStatusCmd() *cobra.Command {
	var untracked, modified, added, tracked bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "List untracked, modified and added files",
		Long: `List untracked, modified and added files.

Without filters all three listings are printed. --tracked prints the files
known to the index instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInRepo(cmd, func(ctx context.Context, rt *runtime.Context, repo *repository.Repository) error {
				if tracked {
					files, err := repo.ListTracked(ctx)
					if err != nil {
						return err
					}
					printLines(cmd, files)
					return nil
				}

				all := !untracked && !modified && !added
				listings := []struct {
					enabled bool
					state   output.FileState
					list    func(context.Context) ([]string, error)
				}{
					{all || untracked, output.StateUntracked, repo.ListUntracked},
					{all || modified, output.StateModified, repo.ListModified},
					{all || added, output.StateAdded, repo.ListAdded},
				}

				var lines []string
				for _, listing := range listings {
					if !listing.enabled {
						continue
					}
					files, err := listing.list(ctx)
					if err != nil {
						return err
					}
					for _, file := range files {
						lines = append(lines, rt.Styler.File(listing.state, file))
					}
				}
				printLines(cmd, lines)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&untracked, "untracked", false, "Only list untracked files")
	cmd.Flags().BoolVar(&modified, "modified", false, "Only list modified files")
	cmd.Flags().BoolVar(&added, "added", false, "Only list newly added files")
	cmd.Flags().BoolVar(&tracked, "tracked", false, "List files known to the index")
	cmd.MarkFlagsMutuallyExclusive("tracked", "untracked")
	cmd.MarkFlagsMutuallyExclusive("tracked", "modified")
	cmd.MarkFlagsMutuallyExclusive("tracked", "added")

	return cmd
}
