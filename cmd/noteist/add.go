package main

import (
	"fmt"
	"strings"

	"github.com/buddyh/noteist/internal/api"
	"github.com/buddyh/noteist/internal/config"
	"github.com/spf13/cobra"
)

func newAddCmd(a *app) *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:   "add <content>",
		Short: "Add a task",
		Long: `Add a task. Without --project it lands in the Inbox.

Examples:
  noteist add "Write weekly summary"
  noteist add -p Work "Review pull requests"
  noteist add "Plan sprint" --description "Carry over unfinished items"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			token, err := config.ResolveToken(a.flags.token, a.cfg)
			if err != nil {
				return err
			}
			client := a.newClient(token)

			params := api.AddTaskParams{
				Content:     strings.Join(args, " "),
				Description: description,
			}
			if a.flags.project != "" {
				p, err := client.FindProjectByName(ctx, a.flags.project)
				if err != nil {
					return err
				}
				params.ProjectID = p.ID
			}

			task, err := client.AddTask(ctx, params)
			if err != nil {
				return err
			}

			a.out.WriteSuccess(fmt.Sprintf("Your task has been added! (%s)", task.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "task description")

	return cmd
}
