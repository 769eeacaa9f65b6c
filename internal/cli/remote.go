package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"gitbind.dev/gitbind/internal/repository"
	"gitbind.dev/gitbind/internal/runtime"
	"gitbind.dev/gitbind/internal/validation"
)

func newRemoteCmd() *cobra.Command {
	listRemotes := func(cmd *cobra.Command, _ []string) error {
		return runInRepo(cmd, func(ctx context.Context, _ *runtime.Context, repo *repository.Repository) error {
			remotes, err := repo.ListRemotes(ctx)
			if err != nil {
				return err
			}
			printLines(cmd, remotes)
			return nil
		})
	}

	cmd := &cobra.Command{
		Use:   "remote",
		Short: "List, add and inspect remotes",
		Args:  cobra.NoArgs,
		RunE:  listRemotes,
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List configured remotes",
			Args:  cobra.NoArgs,
			RunE:  listRemotes,
		},
		&cobra.Command{
			Use:   "add <name> <url>",
			Short: "Register a remote",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				url, err := validation.ParseRemoteURL(args[1])
				if err != nil {
					return fmt.Errorf("%w: %q", err, args[1])
				}
				return runInRepo(cmd, func(ctx context.Context, _ *runtime.Context, repo *repository.Repository) error {
					return repo.AddRemote(ctx, args[0], url)
				})
			},
		},
		&cobra.Command{
			Use:   "show <name>",
			Short: "Print the URL of a remote",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runInRepo(cmd, func(ctx context.Context, _ *runtime.Context, repo *repository.Repository) error {
					uri, err := repo.ShowRemoteURI(ctx, args[0])
					if err != nil {
						return err
					}
					fmt.Fprintln(cmd.OutOrStdout(), uri)
					return nil
				})
			},
		},
	)

	return cmd
}

func newPushCmd() *cobra.Command {
	var setUpstream bool

	cmd := &cobra.Command{
		Use:   "push [--set-upstream <remote> <branch>]",
		Short: "Push the current branch",
		Long: `Push the current branch to its upstream.

With --set-upstream, push branch to remote and record it as the upstream.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if setUpstream {
				return cobra.ExactArgs(2)(cmd, args)
			}
			return cobra.NoArgs(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInRepo(cmd, func(ctx context.Context, _ *runtime.Context, repo *repository.Repository) error {
				if !setUpstream {
					return repo.Push(ctx)
				}
				branch, err := parseBranch(args[1])
				if err != nil {
					return err
				}
				return repo.PushToUpstream(ctx, args[0], branch)
			})
		},
	}

	cmd.Flags().BoolVarP(&setUpstream, "set-upstream", "u", false, "Push to <remote> <branch> and track it")

	return cmd
}

func newFetchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fetch [remote]",
		Short: "Fetch from a remote (default origin)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			remote := "origin"
			if len(args) == 1 {
				remote = args[0]
			}
			return runInRepo(cmd, func(ctx context.Context, _ *runtime.Context, repo *repository.Repository) error {
				return repo.FetchRemote(ctx, remote)
			})
		},
	}
}
