package main

import (
	"strings"
	"time"

	"github.com/spf13/cobra"

	"clockify-cli/internal/domain"
	"clockify-cli/internal/input"
)

func (c *cli) entryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "entry",
		Short: "Add, edit and delete time entries",
	}
	cmd.AddCommand(c.entryAddCmd(), c.entryEditCmd(), c.entryDeleteCmd())
	return cmd
}

func (c *cli) entryAddCmd() *cobra.Command {
	var (
		attrs              entryFlags
		from, to, duration string
	)
	cmd := &cobra.Command{
		Use:   "add [DESCRIPTION...]",
		Short: "Add a completed entry",
		Long: `Add a completed time entry. Give --start and --end, or --duration with
an optional --start or --end (the other end defaults to now).
Times are HH:MM (today), "YYYY-MM-DD HH:MM" or RFC3339.
Durations are 90, 90m, 2h, 1h30m, 1:30 or 1.5 (hours).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			start, end, err := entryWindow(from, to, duration, time.Now())
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			ws, err := c.workspaceID()
			if err != nil {
				return err
			}
			prefs, err := c.app.Prefs.Load()
			if err != nil {
				return err
			}
			projectID, err := c.resolveProject(cmd, ws, attrs.project)
			if err != nil {
				return err
			}
			billable := prefs.DefaultBillable
			if cmd.Flags().Changed("billable") {
				billable = attrs.billable
			}

			e, err := c.app.Client.CreateTimeEntry(ctx, ws, domain.EntryInput{
				Description: strings.Join(args, " "),
				Start:       start,
				End:         &end,
				ProjectID:   projectID,
				TaskID:      attrs.task,
				TagIDs:      attrs.tags,
				Billable:    billable,
			})
			if err != nil {
				return err
			}
			c.success("Added %s: %s to %s (%s)", e.ID, stamp(start, prefs), clock(end, prefs),
				formatMinutes(domain.WholeMinutes(end.Sub(start))))
			return nil
		},
	}
	attrs.register(cmd)
	cmd.Flags().StringVarP(&from, "start", "s", "", "Start time")
	cmd.Flags().StringVarP(&to, "end", "e", "", "End time")
	cmd.Flags().StringVarP(&duration, "duration", "t", "", "Duration instead of an explicit end")
	return cmd
}

func (c *cli) entryEditCmd() *cobra.Command {
	var (
		attrs                    entryFlags
		desc, from, to, duration string
	)
	cmd := &cobra.Command{
		Use:   "edit ENTRY_ID",
		Short: "Change fields of an existing entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			now := time.Now()
			var minutes int
			if duration != "" {
				m, err := input.ParseDuration(duration)
				if err != nil {
					return err
				}
				minutes = m
			}

			ctx := cmd.Context()
			ws, err := c.workspaceID()
			if err != nil {
				return err
			}
			cur, err := c.app.Client.GetTimeEntry(ctx, ws, args[0])
			if err != nil {
				return err
			}
			in := domain.InputFrom(cur)
			flags := cmd.Flags()

			if flags.Changed("description") {
				in.Description = desc
			}
			if flags.Changed("start") {
				if in.Start, err = parseWhen(from, now); err != nil {
					return err
				}
			}
			if flags.Changed("end") {
				end, err := parseWhen(to, now)
				if err != nil {
					return err
				}
				in.End = &end
			}
			if duration != "" {
				end := in.Start.Add(time.Duration(minutes) * time.Minute)
				in.End = &end
			}
			if flags.Changed("project") {
				if in.ProjectID, err = c.resolveProject(cmd, ws, attrs.project); err != nil {
					return err
				}
			}
			if flags.Changed("task") {
				in.TaskID = attrs.task
			}
			if flags.Changed("tag") {
				in.TagIDs = attrs.tags
			}
			if flags.Changed("billable") {
				in.Billable = attrs.billable
			}

			e, err := c.app.Client.UpdateTimeEntry(ctx, ws, cur.ID, in)
			if err != nil {
				return err
			}
			c.success("Updated %s: %s", e.ID, describe(e))
			return nil
		},
	}
	attrs.register(cmd)
	cmd.Flags().StringVarP(&desc, "description", "m", "", "New description")
	cmd.Flags().StringVarP(&from, "start", "s", "", "New start time")
	cmd.Flags().StringVarP(&to, "end", "e", "", "New end time")
	cmd.Flags().StringVarP(&duration, "duration", "t", "", "New duration, counted from the start")
	return cmd
}

func (c *cli) entryDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete ENTRY_ID",
		Short: "Delete an entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := c.workspaceID()
			if err != nil {
				return err
			}
			if err := c.app.Client.DeleteTimeEntry(cmd.Context(), ws, args[0]); err != nil {
				return err
			}
			c.success("Deleted %s", args[0])
			return nil
		},
	}
}

// entryWindow resolves the add flags into [start, end].
func entryWindow(from, to, duration string, now time.Time) (time.Time, time.Time, error) {
	var start, end time.Time
	var err error
	if from != "" {
		if start, err = parseWhen(from, now); err != nil {
			return start, end, err
		}
	}
	if to != "" {
		if end, err = parseWhen(to, now); err != nil {
			return start, end, err
		}
	}

	switch {
	case duration != "":
		if from != "" && to != "" {
			return start, end, domain.Errorf(domain.KindInvalidInput, "use either --end or --duration, not both")
		}
		m, err := input.ParseDuration(duration)
		if err != nil {
			return start, end, err
		}
		d := time.Duration(m) * time.Minute
		if from != "" {
			end = start.Add(d)
		} else {
			if to == "" {
				end = now
			}
			start = end.Add(-d)
		}
	case from != "" && to != "":
	default:
		return start, end, domain.Errorf(domain.KindInvalidInput, "give --start and --end, or --duration")
	}

	if end.Before(start) {
		return start, end, domain.Errorf(domain.KindInvalidInput, "end time is before start time")
	}
	return start, end, nil
}

// parseWhen accepts HH:MM (today), "YYYY-MM-DD HH:MM" or RFC3339. Local
// forms are read in now's location.
func parseWhen(val string, now time.Time) (time.Time, error) {
	val = strings.TrimSpace(val)
	if t, err := time.Parse(time.RFC3339, val); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("2006-01-02 15:04", val, now.Location()); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("15:04", val, now.Location()); err == nil {
		y, m, d := now.Date()
		return time.Date(y, m, d, t.Hour(), t.Minute(), 0, 0, now.Location()), nil
	}
	return time.Time{}, domain.Errorf(domain.KindInvalidInput,
		"invalid time %q, expected HH:MM, \"YYYY-MM-DD HH:MM\" or RFC3339", val)
}
