package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"clockify-cli/internal/domain"
	"clockify-cli/internal/usecase"
)

func (c *cli) reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Summarize tracked time",
	}

	var verbose bool
	for _, r := range []usecase.Range{usecase.RangeToday, usecase.RangeWeek, usecase.RangeMonth} {
		sub := &cobra.Command{
			Use:   string(r),
			Short: fmt.Sprintf("Time tracked this %s", r),
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				from, to := r.Bounds(time.Now())
				return c.printReport(cmd, from, to, verbose)
			},
		}
		if r == usecase.RangeToday {
			sub.Short = "Time tracked today"
		}
		cmd.AddCommand(sub)
	}

	var from, to string
	customCmd := &cobra.Command{
		Use:   "custom",
		Short: "Time tracked between --from and --to",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			start, end, err := parseRange(from, to)
			if err != nil {
				return err
			}
			return c.printReport(cmd, start, end, verbose)
		},
	}
	customCmd.Flags().StringVar(&from, "from", "", "Start, RFC3339 or YYYY-MM-DD (required)")
	customCmd.Flags().StringVar(&to, "to", "", "End, RFC3339 or YYYY-MM-DD inclusive (required)")
	_ = customCmd.MarkFlagRequired("from")
	_ = customCmd.MarkFlagRequired("to")
	cmd.AddCommand(customCmd)

	var exFrom, exTo string
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Mirror projects and entries into MySQL",
		Long: `Copy the active workspace's projects and your time entries into MySQL
(CLOCKIFY_MYSQL_DSN). Rows are upserted, so exporting a range twice is safe.
Without flags the last 24 hours are exported.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			end := time.Now()
			start := end.Add(-24 * time.Hour)
			if exFrom != "" || exTo != "" {
				var err error
				if start, end, err = parseRange(exFrom, exTo); err != nil {
					return err
				}
			}

			ctx := cmd.Context()
			s, err := c.app.Scope(ctx)
			if err != nil {
				return err
			}
			res, err := c.app.Export(ctx, s, start, end)
			if err != nil {
				return err
			}
			c.success("Exported %d projects and %d entries (%s to %s)",
				res.Projects, res.Entries, stamp(start, s.Prefs), stamp(end, s.Prefs))
			return nil
		},
	}
	exportCmd.Flags().StringVar(&exFrom, "from", "", "Start, RFC3339 or YYYY-MM-DD")
	exportCmd.Flags().StringVar(&exTo, "to", "", "End, RFC3339 or YYYY-MM-DD inclusive")
	cmd.AddCommand(exportCmd)

	cmd.PersistentFlags().BoolVarP(&verbose, "entries", "e", false, "List individual entries")
	return cmd
}

// parseRange reads --from/--to in local time; both are required.
func parseRange(from, to string) (time.Time, time.Time, error) {
	if from == "" || to == "" {
		return time.Time{}, time.Time{}, domain.Errorf(domain.KindInvalidInput, "both --from and --to are required")
	}
	start, err := usecase.ParseStart(from, time.Local)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := usecase.ParseEnd(to, time.Local)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}

func (c *cli) printReport(cmd *cobra.Command, from, to time.Time, entries bool) error {
	ctx := cmd.Context()
	s, err := c.app.Scope(ctx)
	if err != nil {
		return err
	}
	r, err := c.app.Reports.Summarize(ctx, s.WorkspaceID, s.User.ID, from, to)
	if err != nil {
		return err
	}

	fmt.Fprintf(c.out, "\n%s\n\n", cyan(fmt.Sprintf("=== %s to %s ===", stamp(r.From, s.Prefs), stamp(r.To, s.Prefs))))
	if len(r.Projects) == 0 {
		fmt.Fprintf(c.out, "  %s\n\n", gray("No time tracked"))
		return nil
	}
	for _, p := range r.Projects {
		fmt.Fprintf(c.out, "  %-32s %8s  %s\n", p.Name, formatMinutes(p.Minutes), gray(fmt.Sprintf("%d entries", p.Entries)))
	}
	fmt.Fprintf(c.out, "  %-32s %8s\n\n", "Total", formatMinutes(r.Minutes))

	if entries {
		now := time.Now()
		for _, e := range r.Entries {
			end := "running"
			if e.End != nil {
				end = clock(*e.End, s.Prefs)
			}
			fmt.Fprintf(c.out, "  %s - %-8s %8s  %s\n",
				stamp(e.Start, s.Prefs), end, formatMinutes(domain.WholeMinutes(e.Duration(now))), describe(e))
		}
		fmt.Fprintln(c.out)
	}
	return nil
}
