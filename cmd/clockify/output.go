package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/fatih/color"

	"clockify-cli/internal/domain"
)

var (
	green  = color.New(color.FgGreen).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	cyan   = color.New(color.FgCyan, color.Bold).SprintFunc()
	gray   = color.New(color.FgHiBlack).SprintFunc()
)

func (c *cli) success(format string, args ...any) {
	fmt.Fprintf(c.out, "%s %s\n", green("✓"), fmt.Sprintf(format, args...))
}

func (c *cli) notice(format string, args ...any) {
	fmt.Fprintf(c.out, "%s %s\n", yellow("⚠"), fmt.Sprintf(format, args...))
}

// printError writes the user-facing message. The underlying cause is only
// shown with --debug.
func (c *cli) printError(err error) {
	fmt.Fprintf(c.errOut, "%s %s\n", red("Error:"), err.Error())
	if !c.debug {
		return
	}
	var de *domain.Error
	if errors.As(err, &de) && de.Cause != nil {
		fmt.Fprintf(c.errOut, "  %s %v\n", gray("cause:"), de.Cause)
	}
}

// formatMinutes renders 125 as "2h 05m".
func formatMinutes(m int) string {
	return fmt.Sprintf("%dh %02dm", m/60, m%60)
}

func clock(t time.Time, p domain.Preferences) string {
	return t.Local().Format(p.ClockLayout())
}

func stamp(t time.Time, p domain.Preferences) string {
	return t.Local().Format("2006-01-02 " + p.ClockLayout())
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
