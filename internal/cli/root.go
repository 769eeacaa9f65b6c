// Package cli implements the gitbind command line interface.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"gitbind.dev/gitbind/internal/config"
	gberrors "gitbind.dev/gitbind/internal/errors"
	"gitbind.dev/gitbind/internal/output"
	"gitbind.dev/gitbind/internal/repository"
	"gitbind.dev/gitbind/internal/runtime"
)

// Option customizes the root command.
type Option func(*settings)

type settings struct {
	confirmer output.Confirmer
	rt        *runtime.Context
}

// WithConfirmer replaces the interactive confirmation prompt.
func WithConfirmer(c output.Confirmer) Option {
	return func(s *settings) {
		s.confirmer = c
	}
}

// NewRootCmd creates the root cobra command
func NewRootCmd(version string, opts ...Option) *cobra.Command {
	s := &settings{}
	for _, opt := range opts {
		opt(s)
	}
	return newRootCmd(version, s)
}

func newRootCmd(version string, s *settings) *cobra.Command {
	var (
		repoDir string
		debug   bool
		quiet   bool
	)

	rootCmd := &cobra.Command{
		Use:           "gitbind",
		Short:         "Run common git operations through a validated, typed interface",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			splog, err := output.NewSplogWithConfig(cmd.ErrOrStderr(), debug, cfg.LogFile)
			if err != nil {
				return err
			}
			splog.SetQuiet(quiet)

			confirmer := s.confirmer
			if confirmer == nil {
				if output.IsInteractive() {
					confirmer = output.SurveyConfirmer{}
				} else {
					confirmer = output.StaticConfirmer{Answer: false}
				}
			}

			s.rt = runtime.New(cfg, splog, output.NewStyler(cmd.OutOrStdout()), confirmer, repoDir)
			cmd.SetContext(runtime.WithContext(cmd.Context(), s.rt))
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVarP(&repoDir, "repo", "C", "", "Repository directory (default: the repository containing the working directory)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Log every git invocation")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress informational messages")

	rootCmd.AddCommand(
		newInitCmd(),
		newCloneCmd(),
		newAddCmd(),
		newRmCmd(),
		newCommitCmd(),
		newBranchCmd(),
		newStatusCmd(),
		newHashCmd(),
		newRemoteCmd(),
		newPushCmd(),
		newFetchCmd(),
		newForeachCmd(),
		newRawCmd(),
		newConfigCmd(),
	)

	return rootCmd
}

// Run executes the CLI with args and returns the process exit code.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer, version string, opts ...Option) int {
	s := &settings{}
	for _, opt := range opts {
		opt(s)
	}

	rootCmd := newRootCmd(version, s)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.ExecuteContext(ctx)
	if s.rt != nil {
		if err != nil {
			s.rt.Splog.Error("%v", err)
		}
		_ = s.rt.Splog.Close()
	} else if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
	}
	return ExitCode(err)
}

// ExitCode maps err to a process exit code. A failed git invocation exits
// with git's own status.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	if gitErr, ok := gberrors.AsGitCommandError(err); ok && gitErr.ExitCode > 0 {
		return gitErr.ExitCode
	}
	return 1
}

// runInRepo provides the runtime context and the selected repository to a
// command's execution function.
func runInRepo(cmd *cobra.Command, fn func(ctx context.Context, rt *runtime.Context, repo *repository.Repository) error) error {
	rt, err := runtime.GetContext(cmd.Context())
	if err != nil {
		return err
	}
	repo, err := rt.Repository()
	if err != nil {
		return err
	}
	return fn(cmd.Context(), rt, repo)
}

// printLines writes one line per entry to the command's output.
func printLines(cmd *cobra.Command, lines []string) {
	out := cmd.OutOrStdout()
	for _, line := range lines {
		fmt.Fprintln(out, line)
	}
}
