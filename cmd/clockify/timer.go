package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"clockify-cli/internal/domain"
	"clockify-cli/internal/usecase"
)

// entryFlags are the attributes shared by timer start, entry add and entry edit.
type entryFlags struct {
	project  string
	task     string
	tags     []string
	billable bool
}

func (f *entryFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.project, "project", "p", "", "Project id or name")
	cmd.Flags().StringVar(&f.task, "task", "", "Task id")
	cmd.Flags().StringSliceVar(&f.tags, "tag", nil, "Tag id (repeatable)")
	cmd.Flags().BoolVarP(&f.billable, "billable", "b", false, "Mark as billable (default from config)")
}

func (c *cli) timerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "timer",
		Short: "Start, stop and inspect the running timer",
	}

	var start entryFlags
	startCmd := &cobra.Command{
		Use:   "start [DESCRIPTION...]",
		Short: "Start a timer now",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := c.app.Scope(ctx)
			if err != nil {
				return err
			}
			projectID, err := c.resolveProject(cmd, s.WorkspaceID, start.project)
			if err != nil {
				return err
			}
			billable := s.Prefs.DefaultBillable
			if cmd.Flags().Changed("billable") {
				billable = start.billable
			}

			e, err := c.app.Timer.Start(ctx, s.WorkspaceID, domain.EntryInput{
				Description: strings.Join(args, " "),
				ProjectID:   projectID,
				TaskID:      start.task,
				TagIDs:      start.tags,
				Billable:    billable,
			})
			if err != nil {
				return err
			}
			c.success("Timer started at %s: %s", clock(e.Start, s.Prefs), describe(e))
			return nil
		},
	}
	start.register(startCmd)
	cmd.AddCommand(startCmd)

	var requireProject bool
	stopCmd := &cobra.Command{
		Use:   "stop",
		Short: "Stop the running timer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := c.app.Scope(ctx)
			if err != nil {
				return err
			}
			res, err := c.app.Timer.Stop(ctx, s.WorkspaceID, s.User.ID, usecase.StopOptions{
				RequireProject: requireProject || s.Prefs.RequireProject,
			})
			if usecase.IsNoRunningTimer(err) {
				c.notice("No timer is running")
				return nil
			}
			if err != nil {
				return err
			}
			c.success("Timer stopped: %s (%s)", describe(res.Entry), formatMinutes(res.Minutes))
			if res.DefaultedProject != "" {
				fmt.Fprintf(c.out, "  %s\n", gray("project set to "+res.DefaultedProject))
			}
			return nil
		},
	}
	stopCmd.Flags().BoolVar(&requireProject, "require-project", false, "Assign the first project when the entry has none")
	cmd.AddCommand(stopCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show the running timer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := c.app.Scope(ctx)
			if err != nil {
				return err
			}
			e, ok, err := c.app.Timer.Current(ctx, s.WorkspaceID, s.User.ID)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintf(c.out, "%s No timer is running\n", gray("○"))
				return nil
			}
			elapsed := domain.WholeMinutes(e.Duration(time.Now()))
			fmt.Fprintf(c.out, "%s %s\n", green("●"), describe(e))
			fmt.Fprintf(c.out, "  Started: %s\n", clock(e.Start, s.Prefs))
			fmt.Fprintf(c.out, "  Elapsed: %s\n", formatMinutes(elapsed))
			return nil
		},
	})

	for _, name := range []string{"pause", "resume"} {
		cmd.AddCommand(&cobra.Command{
			Use:   name,
			Short: "Not implemented",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return domain.Errorf(domain.KindGeneric,
					"timer %s is not implemented: Clockify has no paused state, use 'timer stop' and 'timer start'", cmd.Name())
			},
		})
	}

	return cmd
}

func describe(e domain.TimeEntry) string {
	d := e.Description
	if d == "" {
		d = gray("(no description)")
	}
	if e.ProjectID != "" {
		d += " " + gray("["+e.ProjectID+"]")
	}
	return d
}
