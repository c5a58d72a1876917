package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clockify-cli/internal/domain"
)

var t0 = time.Date(2025, 8, 1, 9, 0, 0, 0, time.UTC)

func ended(id string, start time.Time, d time.Duration) domain.TimeEntry {
	end := start.Add(d)
	return domain.TimeEntry{ID: id, Start: start, End: &end, ProjectID: "p1"}
}

func newTimer(f *fakeTracker, now time.Time) *TimerService {
	return &TimerService{Log: discardLogger(), Tracker: f, Now: func() time.Time { return now }}
}

func TestStop_NoRunningTimerIssuesNoUpdate(t *testing.T) {
	f := &fakeTracker{entries: []domain.TimeEntry{
		ended("e1", t0, time.Hour),
		ended("e2", t0.Add(-3*time.Hour), time.Hour),
	}}
	s := newTimer(f, t0.Add(2*time.Hour))

	_, err := s.Stop(context.Background(), "ws1", "u1", StopOptions{})
	assert.True(t, errors.Is(err, domain.ErrNoRunningTimer))
	assert.True(t, IsNoRunningTimer(err))
	assert.Empty(t, f.updates)
}

func TestStop_NoEntriesAtAll(t *testing.T) {
	f := &fakeTracker{}
	_, err := newTimer(f, t0).Stop(context.Background(), "ws1", "u1", StopOptions{RequireProject: true})
	assert.True(t, errors.Is(err, domain.ErrNoRunningTimer))
	assert.Empty(t, f.updates)
	assert.Zero(t, f.projectCalls)
}

func TestStop_UpdatesTheRunningEntryOnce(t *testing.T) {
	running := domain.TimeEntry{
		ID:          "run",
		Description: "Deep work",
		Start:       t0,
		ProjectID:   "p1",
		TaskID:      "t1",
		TagIDs:      []string{"tag"},
		Billable:    true,
	}
	f := &fakeTracker{entries: []domain.TimeEntry{running, ended("old", t0.Add(-2*time.Hour), time.Hour)}}
	now := t0.Add(90*time.Minute + 40*time.Second)

	res, err := newTimer(f, now).Stop(context.Background(), "ws1", "u1", StopOptions{})
	require.NoError(t, err)

	require.Len(t, f.updates, 1)
	call := f.updates[0]
	assert.Equal(t, "ws1", call.WorkspaceID)
	assert.Equal(t, "run", call.EntryID)
	assert.Equal(t, t0, call.In.Start)
	require.NotNil(t, call.In.End)
	assert.False(t, call.In.End.Before(call.In.Start))
	assert.Equal(t, now, *call.In.End)
	assert.Equal(t, "Deep work", call.In.Description)
	assert.Equal(t, "p1", call.In.ProjectID)
	assert.Equal(t, "t1", call.In.TaskID)
	assert.Equal(t, []string{"tag"}, call.In.TagIDs)
	assert.True(t, call.In.Billable)

	// 90m40s rounds to 91
	assert.Equal(t, 91, res.Minutes)
	assert.Empty(t, res.DefaultedProject)
	assert.Zero(t, f.projectCalls)
	assert.Equal(t, domain.EntryFilter{}, f.lastFilter)
}

func TestStop_RoundsToNearestMinute(t *testing.T) {
	tests := []struct {
		elapsed time.Duration
		want    int
	}{
		{29 * time.Second, 0},
		{30 * time.Second, 1},
		{10*time.Minute + 29*time.Second, 10},
		{10*time.Minute + 30*time.Second, 11},
	}
	for _, tt := range tests {
		f := &fakeTracker{entries: []domain.TimeEntry{{ID: "run", Start: t0}}}
		res, err := newTimer(f, t0.Add(tt.elapsed)).Stop(context.Background(), "ws1", "u1", StopOptions{})
		require.NoError(t, err)
		assert.Equal(t, tt.want, res.Minutes, tt.elapsed.String())
	}
}

func TestStop_PicksFirstRunningEntryInResponseOrder(t *testing.T) {
	f := &fakeTracker{entries: []domain.TimeEntry{
		ended("done", t0.Add(-time.Hour), 30*time.Minute),
		{ID: "first", Start: t0},
		{ID: "second", Start: t0.Add(-time.Hour)},
	}}
	_, err := newTimer(f, t0.Add(time.Minute)).Stop(context.Background(), "ws1", "u1", StopOptions{})
	require.NoError(t, err)
	require.Len(t, f.updates, 1)
	assert.Equal(t, "first", f.updates[0].EntryID)
}

func TestStop_FillsDefaultProjectWhenRequired(t *testing.T) {
	f := &fakeTracker{
		entries:  []domain.TimeEntry{{ID: "run", Start: t0}},
		projects: []domain.Project{{ID: "pA", Name: "A"}, {ID: "pB", Name: "B"}},
	}
	res, err := newTimer(f, t0.Add(time.Hour)).Stop(context.Background(), "ws1", "u1", StopOptions{RequireProject: true})
	require.NoError(t, err)
	require.Len(t, f.updates, 1)
	assert.Equal(t, "pA", f.updates[0].In.ProjectID)
	assert.Equal(t, "pA", res.DefaultedProject)
}

func TestStop_DefaultProjectLookupFailureDoesNotAbort(t *testing.T) {
	f := &fakeTracker{
		entries:     []domain.TimeEntry{{ID: "run", Start: t0}},
		projectsErr: domain.ErrServerError,
	}
	res, err := newTimer(f, t0.Add(time.Hour)).Stop(context.Background(), "ws1", "u1", StopOptions{RequireProject: true})
	require.NoError(t, err)
	require.Len(t, f.updates, 1)
	assert.Empty(t, f.updates[0].In.ProjectID)
	assert.Empty(t, res.DefaultedProject)
	assert.Equal(t, 60, res.Minutes)
}

func TestStop_DefaultProjectNotNeeded(t *testing.T) {
	f := &fakeTracker{entries: []domain.TimeEntry{{ID: "run", Start: t0, ProjectID: "mine"}}}
	_, err := newTimer(f, t0.Add(time.Hour)).Stop(context.Background(), "ws1", "u1", StopOptions{RequireProject: true})
	require.NoError(t, err)
	assert.Zero(t, f.projectCalls)
	assert.Equal(t, "mine", f.updates[0].In.ProjectID)
}

func TestStop_ListFailurePropagates(t *testing.T) {
	f := &fakeTracker{entriesErr: domain.ErrAuthenticationFailed}
	_, err := newTimer(f, t0).Stop(context.Background(), "ws1", "u1", StopOptions{})
	assert.Same(t, domain.ErrAuthenticationFailed, err)
	assert.Empty(t, f.updates)
}

func TestStop_UpdateFailurePropagates(t *testing.T) {
	f := &fakeTracker{entries: []domain.TimeEntry{{ID: "run", Start: t0}}, updateErr: domain.ErrRateLimited}
	_, err := newTimer(f, t0.Add(time.Minute)).Stop(context.Background(), "ws1", "u1", StopOptions{})
	assert.True(t, errors.Is(err, domain.ErrRateLimited))
}

func TestStop_ClockBehindStartClampsEnd(t *testing.T) {
	f := &fakeTracker{entries: []domain.TimeEntry{{ID: "run", Start: t0}}}
	res, err := newTimer(f, t0.Add(-5*time.Second)).Stop(context.Background(), "ws1", "u1", StopOptions{})
	require.NoError(t, err)
	assert.Equal(t, t0, *f.updates[0].In.End)
	assert.Zero(t, res.Minutes)
}

func TestCurrent(t *testing.T) {
	f := &fakeTracker{entries: []domain.TimeEntry{ended("a", t0, time.Hour), {ID: "b", Start: t0}}}
	e, ok, err := newTimer(f, t0).Current(context.Background(), "ws1", "u1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "b", e.ID)

	f.entries = f.entries[:1]
	_, ok, err = newTimer(f, t0).Current(context.Background(), "ws1", "u1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStart(t *testing.T) {
	f := &fakeTracker{}
	e, err := newTimer(f, t0).Start(context.Background(), "ws1", domain.EntryInput{Description: "x", ProjectID: "p1"})
	require.NoError(t, err)
	assert.Equal(t, "started", e.ID)
	require.Len(t, f.started, 1)
	assert.Equal(t, "p1", f.started[0].ProjectID)
}
