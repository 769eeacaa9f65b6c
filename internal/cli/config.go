package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"gitbind.dev/gitbind/internal/config"
	"gitbind.dev/gitbind/internal/runtime"
)

// newConfigCmd creates the config command
func newConfigCmd() *cobra.Command {
	listConfig := func(cmd *cobra.Command, _ []string) error {
		rt, err := runtime.GetContext(cmd.Context())
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, key := range config.Keys {
			value, err := rt.Config.Get(key)
			if err != nil {
				return err
			}
			line := fmt.Sprintf("%s: %s", rt.Styler.Header(key), value)
			if env, ok := config.EnvOverride(key); ok {
				line += " " + rt.Styler.Dim("(from "+env+")")
			}
			fmt.Fprintln(out, line)
		}
		return nil
	}

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Get and set gitbind configuration",
		Long: `Get and set values in the gitbind config file.

The file lives at $GITBIND_CONFIG, or ~/.gitbind/config.yaml by default.
Values shown by list and get include environment overrides.

Examples:
  gitbind config list
  gitbind config get pool_size
  gitbind config set git_path /usr/local/bin/git
  gitbind config set env "GIT_TERMINAL_PROMPT=0 LC_ALL=C"`,
		Args: cobra.NoArgs,
		RunE: listConfig,
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "Print every configuration value",
			Args:  cobra.NoArgs,
			RunE:  listConfig,
		},
		&cobra.Command{
			Use:   "get <key>",
			Short: "Print a configuration value",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				rt, err := runtime.GetContext(cmd.Context())
				if err != nil {
					return err
				}
				value, err := rt.Config.Get(args[0])
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), value)
				return nil
			},
		},
		newConfigSetCmd(),
	)

	return cmd
}

// newConfigSetCmd creates the config set command
func newConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Write a configuration value to the config file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := runtime.GetContext(cmd.Context())
			if err != nil {
				return err
			}

			key, value := args[0], args[1]
			cfg, err := config.ReadFile(config.Path())
			if err != nil {
				return err
			}
			if err := cfg.Set(key, value); err != nil {
				return err
			}
			if err := cfg.Save(); err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}

			rt.Splog.Info("Set %s to: %s", key, value)
			if env, ok := config.EnvOverride(key); ok {
				rt.Splog.Warn("%s is set and takes precedence over %s", env, key)
			}
			return nil
		},
	}
}
