package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *cli) taskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "List and create tasks of a project",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list PROJECT",
		Short: "List tasks of a project (id or name)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := c.workspaceID()
			if err != nil {
				return err
			}
			projectID, err := c.resolveProject(cmd, ws, args[0])
			if err != nil {
				return err
			}
			tasks, err := c.app.Client.ListTasks(cmd.Context(), ws, projectID)
			if err != nil {
				return err
			}
			if len(tasks) == 0 {
				fmt.Fprintln(c.out, "No tasks")
				return nil
			}
			for _, t := range tasks {
				fmt.Fprintf(c.out, "%-26s %-30s %s\n", t.ID, t.Name, gray(t.Status))
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "create PROJECT NAME",
		Short: "Create a task in a project (id or name)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := c.workspaceID()
			if err != nil {
				return err
			}
			projectID, err := c.resolveProject(cmd, ws, args[0])
			if err != nil {
				return err
			}
			t, err := c.app.Client.CreateTask(cmd.Context(), ws, projectID, args[1])
			if err != nil {
				return err
			}
			c.success("Created task %s (%s)", t.Name, t.ID)
			return nil
		},
	})

	return cmd
}
