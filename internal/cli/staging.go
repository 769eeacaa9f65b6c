package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"gitbind.dev/gitbind/internal/repository"
	"gitbind.dev/gitbind/internal/runtime"
)

// errRemoveCancelled is returned when a forced removal is not confirmed.
var errRemoveCancelled = errors.New("force removal not confirmed (pass --yes to skip the prompt)")

func newAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <path>...",
		Short: "Stage files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInRepo(cmd, func(ctx context.Context, _ *runtime.Context, repo *repository.Repository) error {
				return repo.Add(ctx, args...)
			})
		},
	}
}

func newRmCmd() *cobra.Command {
	var (
		force bool
		yes   bool
	)

	cmd := &cobra.Command{
		Use:   "rm <path>...",
		Short: "Remove files from the index and the working tree",
		Long: `Remove files from the index and the working tree.

With --force, files with staged or local modifications are removed as well.
Forced removal asks for confirmation when running in a terminal.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInRepo(cmd, func(ctx context.Context, rt *runtime.Context, repo *repository.Repository) error {
				if force && !yes {
					ok, err := rt.Confirmer.Confirm(fmt.Sprintf("Discard local changes and remove %s?", strings.Join(args, ", ")), false)
					if err != nil {
						return err
					}
					if !ok {
						return errRemoveCancelled
					}
				}
				return repo.Remove(ctx, force, args...)
			})
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Remove files even when they have local modifications")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")

	return cmd
}

func newCommitCmd() *cobra.Command {
	var message string

	cmd := &cobra.Command{
		Use:   "commit",
		Short: "Commit staged files and all modifications to tracked files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInRepo(cmd, func(ctx context.Context, rt *runtime.Context, repo *repository.Repository) error {
				if err := repo.CommitAll(ctx, message); err != nil {
					return err
				}
				hash, err := repo.Hash(ctx, true)
				if err != nil {
					return err
				}
				rt.Splog.Info("Committed %s", hash)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&message, "message", "m", "", "Commit message")
	_ = cmd.MarkFlagRequired("message")

	return cmd
}
