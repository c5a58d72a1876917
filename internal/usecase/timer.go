package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"clockify-cli/internal/domain"
	"clockify-cli/internal/ports"
)

// TimerService derives the running timer from the user's entries and
// starts or stops it.
type TimerService struct {
	Log     *slog.Logger
	Tracker ports.Tracker
	Now     func() time.Time
}

// StopOptions controls the stop procedure.
type StopOptions struct {
	// RequireProject makes Stop fill in the workspace's first project when the
	// running entry has none.
	RequireProject bool
}

// StopResult is the stopped entry and its length in whole minutes.
type StopResult struct {
	Entry   domain.TimeEntry
	Minutes int
	// DefaultedProject is set when the project was filled in by Stop.
	DefaultedProject string
}

func (s *TimerService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Running returns the first entry without an end time, in the order the
// service listed them. More than one running entry is a data anomaly; the
// first one wins.
func Running(entries []domain.TimeEntry) (domain.TimeEntry, bool) {
	for _, e := range entries {
		if e.Running() {
			return e, true
		}
	}
	return domain.TimeEntry{}, false
}

// Current fetches the user's entries and returns the running one, if any.
func (s *TimerService) Current(ctx context.Context, workspaceID, userID string) (domain.TimeEntry, bool, error) {
	entries, err := s.Tracker.ListTimeEntries(ctx, workspaceID, userID, domain.EntryFilter{})
	if err != nil {
		return domain.TimeEntry{}, false, err
	}
	e, ok := Running(entries)
	return e, ok, nil
}

// Start begins a timer now.
func (s *TimerService) Start(ctx context.Context, workspaceID string, in domain.EntryInput) (domain.TimeEntry, error) {
	e, err := s.Tracker.StartTimer(ctx, workspaceID, in)
	if err != nil {
		return domain.TimeEntry{}, err
	}
	s.Log.Info("timer started", slog.String("entry", e.ID), slog.String("project", e.ProjectID))
	return e, nil
}

// Stop ends the running timer with a single update call. It returns
// domain.ErrNoRunningTimer, without updating anything, when no entry is open.
func (s *TimerService) Stop(ctx context.Context, workspaceID, userID string, opts StopOptions) (StopResult, error) {
	running, ok, err := s.Current(ctx, workspaceID, userID)
	if err != nil {
		return StopResult{}, err
	}
	if !ok {
		return StopResult{}, domain.ErrNoRunningTimer
	}

	in := domain.InputFrom(running)
	var defaulted string
	if in.ProjectID == "" && opts.RequireProject {
		if id, found := s.defaultProject(ctx, workspaceID); found {
			in.ProjectID = id
			defaulted = id
		}
	}

	end := s.now().UTC()
	if end.Before(running.Start) {
		end = running.Start
	}
	in.End = &end

	updated, err := s.Tracker.UpdateTimeEntry(ctx, workspaceID, running.ID, in)
	if err != nil {
		return StopResult{}, err
	}
	// Report what was sent if the service echoed no interval.
	if updated.End == nil {
		updated.End = &end
	}
	if updated.Start.IsZero() {
		updated.Start = running.Start
	}
	s.Log.Info("timer stopped", slog.String("entry", running.ID))
	return StopResult{
		Entry:            updated,
		Minutes:          domain.WholeMinutes(updated.Duration(end)),
		DefaultedProject: defaulted,
	}, nil
}

// defaultProject picks the first project of the workspace. It reports
// found=false when the list is empty or cannot be fetched; the stop then
// proceeds and the service's own validation decides.
func (s *TimerService) defaultProject(ctx context.Context, workspaceID string) (string, bool) {
	projects, err := s.Tracker.ListProjects(ctx, workspaceID)
	if err != nil {
		s.Log.Debug("default project lookup failed", slog.String("error", err.Error()))
		return "", false
	}
	if len(projects) == 0 {
		return "", false
	}
	return projects[0].ID, true
}

// IsNoRunningTimer reports whether err is the "nothing to stop" outcome.
func IsNoRunningTimer(err error) bool { return errors.Is(err, domain.ErrNoRunningTimer) }
