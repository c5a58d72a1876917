package domain

import "time"

// TimeEntry represents a tracked interval in the domain.
type TimeEntry struct {
	ID          string
	Description string
	WorkspaceID string
	UserID      string
	ProjectID   string // empty when unassigned
	TaskID      string
	TagIDs      []string
	Billable    bool
	Start       time.Time
	End         *time.Time // nil means the timer is still running
}

// Running reports whether the entry has no end timestamp.
func (e TimeEntry) Running() bool { return e.End == nil }

// Duration returns end-start, or now-start for a running entry.
func (e TimeEntry) Duration(now time.Time) time.Duration {
	end := now
	if e.End != nil {
		end = *e.End
	}
	if end.Before(e.Start) {
		return 0
	}
	return end.Sub(e.Start)
}

// WholeMinutes rounds d to the nearest minute, halves rounding up.
func WholeMinutes(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int((d + 30*time.Second) / time.Minute)
}

// EntryInput is the payload for creating or replacing a time entry.
type EntryInput struct {
	Description string
	Start       time.Time
	End         *time.Time
	ProjectID   string
	TaskID      string
	TagIDs      []string
	Billable    bool
}

// EntryFilter bounds an entry listing. Zero values mean unbounded.
type EntryFilter struct {
	Start time.Time
	End   time.Time
}

// InputFrom copies the mutable fields of e into an update payload.
func InputFrom(e TimeEntry) EntryInput {
	in := EntryInput{
		Description: e.Description,
		Start:       e.Start,
		ProjectID:   e.ProjectID,
		TaskID:      e.TaskID,
		Billable:    e.Billable,
	}
	if len(e.TagIDs) > 0 {
		in.TagIDs = append([]string(nil), e.TagIDs...)
	}
	if e.End != nil {
		end := *e.End
		in.End = &end
	}
	return in
}
