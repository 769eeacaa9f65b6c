package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"gitbind.dev/gitbind/internal/git"
	"gitbind.dev/gitbind/internal/runtime"
	"gitbind.dev/gitbind/internal/workerpool"
)

func newForeachCmd() *cobra.Command {
	var failFast bool

	cmd := &cobra.Command{
		Use:   "foreach <dir>... -- <git args>...",
		Short: "Run one git command in several repositories",
		Long: `Run one git command in several repositories concurrently.

At most pool_size git processes run at once. Output is printed per
repository in argument order.

Examples:
  gitbind foreach api web -- fetch origin
  gitbind foreach --fail-fast */ -- status --porcelain`,
		Args: func(cmd *cobra.Command, args []string) error {
			dash := cmd.ArgsLenAtDash()
			if dash < 1 || dash == len(args) {
				return errors.New("expected at least one directory, then -- and a git command")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := runtime.GetContext(cmd.Context())
			if err != nil {
				return err
			}

			dash := cmd.ArgsLenAtDash()
			dirs, gitArgs := args[:dash], args[dash:]
			for i, dir := range dirs {
				if dirs[i], err = git.ResolveDir(dir); err != nil {
					return err
				}
			}

			run := func(ctx context.Context, dir string) ([]string, error) {
				return rt.Open(dir).CmdOut(ctx, gitArgs...)
			}

			if failFast {
				outputs, err := workerpool.Map(cmd.Context(), rt.Pool, dirs, run)
				if err != nil {
					return err
				}
				for i, dir := range dirs {
					printRepoResult(cmd, rt, dir, outputs[i], nil)
				}
				return nil
			}

			results := workerpool.MapAll(cmd.Context(), rt.Pool, dirs, run)
			failed := 0
			for i, dir := range dirs {
				printRepoResult(cmd, rt, dir, results[i].Value, results[i].Err)
				if results[i].Err != nil {
					rt.Splog.Debug("foreach %s: %v", dir, results[i].Err)
					failed++
				}
			}
			// Per-repository errors are printed above.
			if failed > 0 {
				return fmt.Errorf("%d of %d repositories failed", failed, len(dirs))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&failFast, "fail-fast", false, "Stop at the first failing repository")

	return cmd
}

func printRepoResult(cmd *cobra.Command, rt *runtime.Context, dir string, lines []string, err error) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, rt.Styler.Header(dir))
	if err != nil {
		fmt.Fprintln(out, rt.Styler.Failure(err.Error()))
		return
	}
	for _, line := range lines {
		fmt.Fprintln(out, line)
	}
}
