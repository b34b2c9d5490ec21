package main

import (
	"github.com/buddyh/noteist/internal/config"
	"github.com/spf13/cobra"
)

func newProjectsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "projects",
		Aliases: []string{"project", "proj"},
		Short:   "List all projects",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := config.ResolveToken(a.flags.token, a.cfg)
			if err != nil {
				return err
			}

			projects, err := a.newClient(token).ListProjects(cmd.Context())
			if err != nil {
				return err
			}

			return a.out.WriteProjects(projects)
		},
	}

	return cmd
}
