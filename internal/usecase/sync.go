package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"clockify-cli/internal/domain"
	"clockify-cli/internal/ports"
)

// SyncUseCase mirrors a user's projects and entries into a Sink.
type SyncUseCase struct {
	Log    *slog.Logger
	Source ports.EntrySource
	Sink   ports.Sink
}

// SyncResult counts what was written.
type SyncResult struct {
	Projects int
	Entries  int
}

// Run copies the workspace's projects and the user's entries in [from, to).
func (uc *SyncUseCase) Run(ctx context.Context, workspaceID, userID string, from, to time.Time) (SyncResult, error) {
	if uc.Source == nil || uc.Sink == nil {
		return SyncResult{}, errors.New("usecase not initialized: missing dependencies")
	}

	projects, err := uc.Source.ListProjects(ctx, workspaceID)
	if err != nil {
		return SyncResult{}, err
	}
	if err := uc.Sink.SyncProjects(ctx, projects); err != nil {
		return SyncResult{}, err
	}
	uc.Log.Info("synced projects", slog.Int("count", len(projects)))

	uc.Log.Info("fetching time entries", slog.Time("from", from), slog.Time("to", to))
	entries, err := uc.Source.ListTimeEntries(ctx, workspaceID, userID, domain.EntryFilter{Start: from, End: to})
	if err != nil {
		return SyncResult{}, err
	}
	uc.Log.Info("fetched time entries", slog.Int("count", len(entries)))

	if len(entries) == 0 {
		uc.Log.Info("no entries to sync")
		return SyncResult{Projects: len(projects)}, nil
	}
	if err := uc.Sink.SyncEntries(ctx, entries); err != nil {
		return SyncResult{}, err
	}
	uc.Log.Info("sync completed", slog.Int("count", len(entries)))
	return SyncResult{Projects: len(projects), Entries: len(entries)}, nil
}
