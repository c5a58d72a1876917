package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *cli) workspaceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "workspace",
		Short: "List workspaces and choose the active one",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List your workspaces",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			workspaces, err := c.app.Workspaces.List(cmd.Context())
			if err != nil {
				return err
			}
			p, err := c.app.Prefs.Load()
			if err != nil {
				return err
			}
			for _, w := range workspaces {
				mark := " "
				if w.ID == p.WorkspaceID {
					mark = green("*")
				}
				fmt.Fprintf(c.out, "%s %-26s %s\n", mark, w.ID, w.Name)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "switch ID|NAME",
		Short: "Make a workspace active",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := c.app.Workspaces.Switch(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			c.success("Active workspace: %s (%s)", w.Name, w.ID)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "current",
		Short: "Show the active workspace",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := c.app.Workspaces.Current(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(c.out, "%s (%s)\n", w.Name, w.ID)
			return nil
		},
	})

	return cmd
}
