package usecase

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"clockify-cli/internal/domain"
	"clockify-cli/internal/ports"
)

// NoProjectName labels time that is not assigned to a project.
const NoProjectName = "(no project)"

// ReportService aggregates entries over a time range.
type ReportService struct {
	Log     *slog.Logger
	Tracker ports.Tracker
	Now     func() time.Time
}

// ProjectTotal is the time spent on one project.
type ProjectTotal struct {
	ProjectID string
	Name      string
	Minutes   int
	Entries   int
}

// Report summarizes [From, To).
type Report struct {
	From     time.Time
	To       time.Time
	Projects []ProjectTotal // by descending minutes, then name
	Minutes  int
	Entries  []domain.TimeEntry
}

// Summarize fetches entries in [from, to) and totals them per project.
// Running entries count up to now.
func (s *ReportService) Summarize(ctx context.Context, workspaceID, userID string, from, to time.Time) (Report, error) {
	if !to.After(from) {
		return Report{}, domain.Errorf(domain.KindInvalidInput, "report range is empty: %s is not before %s",
			from.Format(time.RFC3339), to.Format(time.RFC3339))
	}
	entries, err := s.Tracker.ListTimeEntries(ctx, workspaceID, userID, domain.EntryFilter{Start: from, End: to})
	if err != nil {
		return Report{}, err
	}

	names := map[string]string{}
	projects, err := s.Tracker.ListProjects(ctx, workspaceID)
	if err != nil {
		// Totals are still correct, only labels fall back to ids.
		s.Log.Warn("could not list projects for report labels", slog.String("error", err.Error()))
	}
	for _, p := range projects {
		names[p.ID] = p.Name
	}

	now := time.Now()
	if s.Now != nil {
		now = s.Now()
	}
	byProject := map[string]*ProjectTotal{}
	var total time.Duration
	for _, e := range entries {
		d := e.Duration(now)
		total += d
		pt, ok := byProject[e.ProjectID]
		if !ok {
			pt = &ProjectTotal{ProjectID: e.ProjectID, Name: projectName(names, e.ProjectID)}
			byProject[e.ProjectID] = pt
		}
		pt.Entries++
		// minutes are summed per entry so the rows add up to what users see per line
		pt.Minutes += domain.WholeMinutes(d)
	}

	r := Report{From: from, To: to, Entries: entries}
	for _, pt := range byProject {
		r.Projects = append(r.Projects, *pt)
		r.Minutes += pt.Minutes
	}
	sort.Slice(r.Projects, func(i, j int) bool {
		if r.Projects[i].Minutes != r.Projects[j].Minutes {
			return r.Projects[i].Minutes > r.Projects[j].Minutes
		}
		return r.Projects[i].Name < r.Projects[j].Name
	})
	s.Log.Debug("report summarized",
		slog.Int("entries", len(entries)),
		slog.Int("projects", len(r.Projects)),
		slog.Duration("total", total),
	)
	return r, nil
}

func projectName(names map[string]string, id string) string {
	if id == "" {
		return NoProjectName
	}
	if n, ok := names[id]; ok {
		return n
	}
	return id
}

// Range names a predefined report window.
type Range string

const (
	RangeToday Range = "today"
	RangeWeek  Range = "week"
	RangeMonth Range = "month"
)

// Bounds returns [from, to) for r around now, in now's location. Weeks
// start on Monday.
func (r Range) Bounds(now time.Time) (time.Time, time.Time) {
	y, m, d := now.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	switch r {
	case RangeWeek:
		offset := (int(day.Weekday()) + 6) % 7
		start := day.AddDate(0, 0, -offset)
		return start, start.AddDate(0, 0, 7)
	case RangeMonth:
		start := time.Date(y, m, 1, 0, 0, 0, 0, now.Location())
		return start, start.AddDate(0, 1, 0)
	default:
		return day, day.AddDate(0, 0, 1)
	}
}

// ParseStart parses a range start that may be RFC3339 or YYYY-MM-DD
// (midnight in loc).
func ParseStart(val string, loc *time.Location) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, val); err == nil {
		return t, nil
	}
	if d, err := time.ParseInLocation("2006-01-02", val, loc); err == nil {
		return d, nil
	}
	return time.Time{}, domain.Errorf(domain.KindInvalidInput, "invalid date %q, expected RFC3339 or YYYY-MM-DD", val)
}

// ParseEnd parses a range end that may be RFC3339 or YYYY-MM-DD. The
// date-only form is inclusive: it becomes the next day's midnight in loc.
func ParseEnd(val string, loc *time.Location) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, val); err == nil {
		return t, nil
	}
	if d, err := time.ParseInLocation("2006-01-02", val, loc); err == nil {
		return d.AddDate(0, 0, 1), nil
	}
	return time.Time{}, domain.Errorf(domain.KindInvalidInput, "invalid date %q, expected RFC3339 or YYYY-MM-DD", val)
}
