package main

import (
	"fmt"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"clockify-cli/internal/credentials"
)

func (c *cli) authCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage the stored API key",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "login [API_KEY]",
		Short: "Store an API key and verify it",
		Long: `Store a Clockify API key and verify it against the service.
Without an argument the key is read from a hidden prompt.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// The environment key would be the one verified, not the new one.
			if c.app.Creds.Overridden() {
				return fmt.Errorf("%s is set, unset it to log in with a stored key", credentials.EnvKey)
			}
			var key string
			if len(args) == 1 {
				key = args[0]
			} else {
				k, err := promptKey()
				if err != nil {
					return err
				}
				key = k
			}

			res, err := c.app.Session.Login(cmd.Context(), key)
			if err != nil {
				return err
			}
			c.success("Logged in as %s <%s>", res.User.Name, res.User.Email)
			switch {
			case res.Workspace != nil:
				c.success("Active workspace: %s", res.Workspace.Name)
			case res.Workspaces > 1:
				fmt.Fprintf(c.out, "You have %d workspaces, pick one with 'clockify workspace switch <id|name>'\n", res.Workspaces)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "logout",
		Short: "Remove the stored API key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			had, err := c.app.Session.Logout()
			if err != nil {
				return err
			}
			if had {
				c.success("Logged out")
			} else {
				fmt.Fprintln(c.out, "No API key was stored")
			}
			if c.app.Creds.Overridden() {
				c.notice("%s is still set in the environment", credentials.EnvKey)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show whether a valid API key is configured",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := c.app.Session.Status(cmd.Context())
			if err != nil {
				return err
			}
			if !st.Authenticated {
				fmt.Fprintf(c.out, "%s Not logged in, run 'clockify auth login'\n", yellow("○"))
				return nil
			}
			fmt.Fprintf(c.out, "%s Logged in as %s <%s>\n", green("●"), st.User.Name, st.User.Email)
			return nil
		},
	})

	return cmd
}

func promptKey() (string, error) {
	rl, err := readline.NewEx(&readline.Config{})
	if err != nil {
		return "", fmt.Errorf("failed to open terminal: %w", err)
	}
	defer rl.Close()

	b, err := rl.ReadPassword("API key: ")
	if err != nil {
		return "", fmt.Errorf("failed to read API key: %w", err)
	}
	return strings.TrimSpace(string(b)), nil
}
