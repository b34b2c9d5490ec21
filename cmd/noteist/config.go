package main

import (
	"fmt"
	"strings"

	"github.com/buddyh/noteist/internal/config"
	"github.com/spf13/cobra"
)

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage default values and options",
		Long: `Manage the defaults used when flags are omitted.

Keys: ` + strings.Join(config.Keys(), ", ") + `

Examples:
  noteist config show
  noteist config set project Work
  noteist config unset token`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show saved defaults",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.out.WriteConfig(a.configPath, a.cfg)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.flags.asJSON {
				return a.out.JSON(map[string]string{"path": a.configPath})
			}
			fmt.Fprintln(a.stdout, a.configPath)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Save a default",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.cfg.Set(args[0], args[1]); err != nil {
				return err
			}
			if err := config.Save(a.configPath, a.cfg); err != nil {
				return err
			}
			a.out.WriteSuccess(fmt.Sprintf("Saved %s to %s", strings.ToLower(args[0]), a.configPath))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "unset <key>",
		Short: "Remove a default",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.cfg.Unset(args[0]); err != nil {
				return err
			}
			if err := config.Save(a.configPath, a.cfg); err != nil {
				return err
			}
			a.out.WriteSuccess(fmt.Sprintf("Removed %s", strings.ToLower(args[0])))
			return nil
		},
	})

	return cmd
}
