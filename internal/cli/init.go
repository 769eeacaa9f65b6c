package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"gitbind.dev/gitbind/internal/git"
	"gitbind.dev/gitbind/internal/repository"
	"gitbind.dev/gitbind/internal/runtime"
	"gitbind.dev/gitbind/internal/validation"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init [path]",
		Short: "Create an empty repository in an existing directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := runtime.GetContext(cmd.Context())
			if err != nil {
				return err
			}

			path := "."
			if len(args) == 1 {
				path = args[0]
			}
			dir, err := git.ResolveDir(path)
			if err != nil {
				return err
			}

			repo, err := repository.Init(cmd.Context(), dir, rt.RepositoryOptions()...)
			if err != nil {
				return err
			}
			rt.Splog.Info("Initialized repository in %s", repo.Path())
			return nil
		},
	}
}

func newCloneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clone <url> <path>",
		Short: "Clone a remote repository into path",
		Long: `Clone a remote repository into path.

The URL must use git, ssh, http(s) or scp-like git@host: syntax and end in .git.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := runtime.GetContext(cmd.Context())
			if err != nil {
				return err
			}

			url, err := validation.ParseRemoteURL(args[0])
			if err != nil {
				return fmt.Errorf("%w: %q", err, args[0])
			}

			repo, err := repository.Clone(cmd.Context(), url, args[1], rt.RepositoryOptions()...)
			if err != nil {
				return err
			}
			rt.Splog.Info("Cloned %s into %s", url, repo.Path())
			return nil
		},
	}
}
