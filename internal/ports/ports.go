package ports

import (
	"context"

	"clockify-cli/internal/domain"
)

// EntrySource lists what the export use case mirrors.
type EntrySource interface {
	ListProjects(ctx context.Context, workspaceID string) ([]domain.Project, error)
	ListTimeEntries(ctx context.Context, workspaceID, userID string, f domain.EntryFilter) ([]domain.TimeEntry, error)
}

// Tracker is the remote time-tracking service as seen by the use cases.
type Tracker interface {
	EntrySource
	CurrentUser(ctx context.Context) (domain.User, error)
	ListWorkspaces(ctx context.Context) ([]domain.Workspace, error)
	CreateProject(ctx context.Context, workspaceID string, p domain.NewProject) (domain.Project, error)
	ListTasks(ctx context.Context, workspaceID, projectID string) ([]domain.Task, error)
	CreateTask(ctx context.Context, workspaceID, projectID, name string) (domain.Task, error)
	GetTimeEntry(ctx context.Context, workspaceID, entryID string) (domain.TimeEntry, error)
	CreateTimeEntry(ctx context.Context, workspaceID string, in domain.EntryInput) (domain.TimeEntry, error)
	StartTimer(ctx context.Context, workspaceID string, in domain.EntryInput) (domain.TimeEntry, error)
	UpdateTimeEntry(ctx context.Context, workspaceID, entryID string, in domain.EntryInput) (domain.TimeEntry, error)
	DeleteTimeEntry(ctx context.Context, workspaceID, entryID string) error
}

// Sink receives entries and persists them to a target system.
type Sink interface {
	SyncEntries(ctx context.Context, entries []domain.TimeEntry) error
	SyncProjects(ctx context.Context, projects []domain.Project) error
}

// CredentialStore holds the API key.
type CredentialStore interface {
	Set(key string) error
	Get() (key string, ok bool, err error)
	Remove() (removed bool, err error)
	Has() bool
}

// PreferenceStore holds the local preferences record.
type PreferenceStore interface {
	Load() (domain.Preferences, error)
	Save(p domain.Preferences) error
}
