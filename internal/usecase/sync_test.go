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

type fakeSink struct {
	entries  []domain.TimeEntry
	projects []domain.Project
	err      error
}

func (s *fakeSink) SyncEntries(ctx context.Context, entries []domain.TimeEntry) error {
	if s.err != nil {
		return s.err
	}
	s.entries = append(s.entries, entries...)
	return nil
}

func (s *fakeSink) SyncProjects(ctx context.Context, projects []domain.Project) error {
	if s.err != nil {
		return s.err
	}
	s.projects = append(s.projects, projects...)
	return nil
}

func TestSyncRun(t *testing.T) {
	src := &fakeTracker{
		projects: []domain.Project{{ID: "p1"}, {ID: "p2"}},
		entries:  []domain.TimeEntry{ended("a", t0, time.Hour)},
	}
	sink := &fakeSink{}
	uc := &SyncUseCase{Log: discardLogger(), Source: src, Sink: sink}

	from, to := t0, t0.Add(24*time.Hour)
	res, err := uc.Run(context.Background(), "ws1", "u1", from, to)
	require.NoError(t, err)
	assert.Equal(t, SyncResult{Projects: 2, Entries: 1}, res)
	assert.Len(t, sink.projects, 2)
	assert.Len(t, sink.entries, 1)
	assert.Equal(t, domain.EntryFilter{Start: from, End: to}, src.lastFilter)
}

func TestSyncRun_NoEntries(t *testing.T) {
	sink := &fakeSink{}
	uc := &SyncUseCase{Log: discardLogger(), Source: &fakeTracker{}, Sink: sink}
	res, err := uc.Run(context.Background(), "ws1", "u1", t0, t0.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, SyncResult{}, res)
	assert.Empty(t, sink.entries)
}

func TestSyncRun_Errors(t *testing.T) {
	uc := &SyncUseCase{Log: discardLogger()}
	_, err := uc.Run(context.Background(), "ws1", "u1", t0, t0)
	assert.Error(t, err)

	boom := errors.New("boom")
	uc = &SyncUseCase{Log: discardLogger(), Source: &fakeTracker{}, Sink: &fakeSink{err: boom}}
	_, err = uc.Run(context.Background(), "ws1", "u1", t0, t0.Add(time.Hour))
	assert.ErrorIs(t, err, boom)

	uc = &SyncUseCase{Log: discardLogger(), Source: &fakeTracker{entriesErr: domain.ErrServerError}, Sink: &fakeSink{}}
	_, err = uc.Run(context.Background(), "ws1", "u1", t0, t0.Add(time.Hour))
	assert.ErrorIs(t, err, domain.ErrServerError)
}
