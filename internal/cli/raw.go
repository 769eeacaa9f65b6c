package cli

import (
	"context"

	"github.com/spf13/cobra"

	"gitbind.dev/gitbind/internal/repository"
	"gitbind.dev/gitbind/internal/runtime"
)

func newRawCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "raw -- <git args>...",
		Short: "Run an arbitrary git command in the repository",
		Long: `Run an arbitrary git command in the repository and print its output.

Arguments are passed to git unchanged and never through a shell.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInRepo(cmd, func(ctx context.Context, _ *runtime.Context, repo *repository.Repository) error {
				lines, err := repo.CmdOut(ctx, args...)
				if err != nil {
					return err
				}
				printLines(cmd, lines)
				return nil
			})
		},
	}
}
