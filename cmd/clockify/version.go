package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"clockify-cli/internal/adapter/clockify"
)

func (c *cli) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		// no config or credentials needed
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(c.out, "clockify-cli %s (%s/%s)\n", clockify.Version, runtime.GOOS, runtime.GOARCH)
			return nil
		},
	}
}
