package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"gitbind.dev/gitbind/internal/repository"
	"gitbind.dev/gitbind/internal/runtime"
	"gitbind.dev/gitbind/internal/validation"
)

func newBranchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "branch",
		Short: "List, create and switch branches",
		Args:  cobra.NoArgs,
		RunE:  listBranches,
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List local branches, marking the current one",
			Args:  cobra.NoArgs,
			RunE:  listBranches,
		},
		newBranchCreateCmd(),
		&cobra.Command{
			Use:   "switch <name>",
			Short: "Check out an existing branch",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				name, err := parseBranch(args[0])
				if err != nil {
					return err
				}
				return runInRepo(cmd, func(ctx context.Context, _ *runtime.Context, repo *repository.Repository) error {
					return repo.SwitchBranch(ctx, name)
				})
			},
		},
	)

	return cmd
}

func newBranchCreateCmd() *cobra.Command {
	var from string

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a branch and check it out",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := parseBranch(args[0])
			if err != nil {
				return err
			}
			return runInRepo(cmd, func(ctx context.Context, _ *runtime.Context, repo *repository.Repository) error {
				if from != "" {
					return repo.CreateBranchFromStartpoint(ctx, name, from)
				}
				return repo.CreateLocalBranch(ctx, name)
			})
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Start the branch at this revision instead of HEAD")

	return cmd
}

func listBranches(cmd *cobra.Command, _ []string) error {
	return runInRepo(cmd, func(ctx context.Context, rt *runtime.Context, repo *repository.Repository) error {
		branches, err := repo.ListBranches(ctx)
		if err != nil {
			return err
		}
		current, err := repo.CurrentBranch(ctx)
		if err != nil {
			return err
		}

		lines := make([]string, 0, len(branches))
		for _, branch := range branches {
			lines = append(lines, rt.Styler.Branch(branch, branch == current))
		}
		printLines(cmd, lines)
		return nil
	})
}

func newHashCmd() *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:   "hash",
		Short: "Print the commit id of HEAD",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInRepo(cmd, func(ctx context.Context, _ *runtime.Context, repo *repository.Repository) error {
				hash, err := repo.Hash(ctx, short)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), hash)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&short, "short", false, "Print the abbreviated commit id")

	return cmd
}

func parseBranch(name string) (validation.RefName, error) {
	ref, err := validation.ParseRefName(name)
	if err != nil {
		return validation.RefName{}, fmt.Errorf("%w: %q", err, name)
	}
	return ref, nil
}
