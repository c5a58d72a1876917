package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"clockify-cli/internal/domain"
)

func (c *cli) projectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "List and create projects",
	}

	var all bool
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List projects of the active workspace",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := c.workspaceID()
			if err != nil {
				return err
			}
			projects, err := c.app.Client.ListProjects(cmd.Context(), ws)
			if err != nil {
				return err
			}
			shown := 0
			for _, p := range projects {
				if p.Archived && !all {
					continue
				}
				shown++
				name := p.Name
				if p.Archived {
					name += " " + gray("(archived)")
				}
				fmt.Fprintf(c.out, "%-26s %-30s %s\n", p.ID, name, gray(orDash(p.ClientName)))
			}
			if shown == 0 {
				fmt.Fprintln(c.out, "No projects")
			}
			return nil
		},
	}
	listCmd.Flags().BoolVarP(&all, "all", "a", false, "Include archived projects")
	cmd.AddCommand(listCmd)

	var np domain.NewProject
	createCmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Create a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := c.workspaceID()
			if err != nil {
				return err
			}
			np.Name = args[0]
			p, err := c.app.Client.CreateProject(cmd.Context(), ws, np)
			if err != nil {
				return err
			}
			c.success("Created project %s (%s)", p.Name, p.ID)
			return nil
		},
	}
	createCmd.Flags().StringVar(&np.Color, "color", "", "Hex color, e.g. #03A9F4")
	createCmd.Flags().StringVar(&np.ClientID, "client", "", "Client id")
	createCmd.Flags().BoolVar(&np.Billable, "billable", false, "Billable by default")
	createCmd.Flags().BoolVar(&np.Public, "public", false, "Visible to the whole workspace")
	cmd.AddCommand(createCmd)

	return cmd
}

// workspaceID returns the active workspace without contacting the service.
func (c *cli) workspaceID() (string, error) {
	p, err := c.app.Prefs.Load()
	if err != nil {
		return "", err
	}
	if p.WorkspaceID == "" {
		return "", domain.ErrNoWorkspace
	}
	return p.WorkspaceID, nil
}

// resolveProject maps a project id or case-insensitive name to its id. An
// empty value resolves to no project without a request.
func (c *cli) resolveProject(cmd *cobra.Command, workspaceID, val string) (string, error) {
	val = strings.TrimSpace(val)
	if val == "" {
		return "", nil
	}
	projects, err := c.app.Client.ListProjects(cmd.Context(), workspaceID)
	if err != nil {
		return "", err
	}
	for _, p := range projects {
		if p.ID == val {
			return p.ID, nil
		}
	}
	for _, p := range projects {
		if strings.EqualFold(p.Name, val) {
			return p.ID, nil
		}
	}
	return "", domain.Errorf(domain.KindNotFound, "no project matches %q", val)
}
