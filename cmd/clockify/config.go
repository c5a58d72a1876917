package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"clockify-cli/internal/config"
	"clockify-cli/internal/domain"
)

func (c *cli) configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show and change local preferences",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the preferences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := c.app.Prefs.Load()
			if err != nil {
				return err
			}
			c.printPrefs(p)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:       "set KEY VALUE",
		Short:     "Change one preference",
		Long:      fmt.Sprintf("Change one preference. Keys: %v", config.Keys()),
		Args:      cobra.ExactArgs(2),
		ValidArgs: config.Keys(),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := c.app.Prefs.Set(args[0], args[1])
			if err != nil {
				return err
			}
			c.success("%s updated", args[0])
			c.printPrefs(p)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Restore the default preferences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := c.app.Prefs.Reset()
			if err != nil {
				return err
			}
			c.success("Preferences reset")
			c.printPrefs(p)
			return nil
		},
	})

	return cmd
}

func (c *cli) printPrefs(p domain.Preferences) {
	fmt.Fprintf(c.out, "%s\n", gray(c.app.Prefs.Path()))
	fmt.Fprintf(c.out, "  time_format:      %s\n", p.TimeFormat)
	fmt.Fprintf(c.out, "  default_billable: %t\n", p.DefaultBillable)
	fmt.Fprintf(c.out, "  require_project:  %t\n", p.RequireProject)
	fmt.Fprintf(c.out, "  workspace_id:     %s\n", orDash(p.WorkspaceID))
}
