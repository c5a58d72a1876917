package usecase

import (
	"context"
	"io"
	"log/slog"

	"clockify-cli/internal/domain"
)

func discardLogger() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

type updateCall struct {
	WorkspaceID string
	EntryID     string
	In          domain.EntryInput
}

// fakeTracker is an in-memory ports.Tracker.
type fakeTracker struct {
	user        domain.User
	userErr     error
	workspaces  []domain.Workspace
	wsErr       error
	projects    []domain.Project
	projectsErr error
	entries     []domain.TimeEntry
	entriesErr  error
	updateErr   error

	listCalls    int
	projectCalls int
	updates      []updateCall
	started      []domain.EntryInput
	lastFilter   domain.EntryFilter
}

func (f *fakeTracker) CurrentUser(ctx context.Context) (domain.User, error) {
	return f.user, f.userErr
}

func (f *fakeTracker) ListWorkspaces(ctx context.Context) ([]domain.Workspace, error) {
	return f.workspaces, f.wsErr
}

func (f *fakeTracker) ListProjects(ctx context.Context, workspaceID string) ([]domain.Project, error) {
	f.projectCalls++
	return f.projects, f.projectsErr
}

func (f *fakeTracker) CreateProject(ctx context.Context, workspaceID string, p domain.NewProject) (domain.Project, error) {
	return domain.Project{ID: "new", Name: p.Name, WorkspaceID: workspaceID}, nil
}

func (f *fakeTracker) ListTasks(ctx context.Context, workspaceID, projectID string) ([]domain.Task, error) {
	return nil, nil
}

func (f *fakeTracker) CreateTask(ctx context.Context, workspaceID, projectID, name string) (domain.Task, error) {
	return domain.Task{ID: "task", ProjectID: projectID, Name: name}, nil
}

func (f *fakeTracker) ListTimeEntries(ctx context.Context, workspaceID, userID string, flt domain.EntryFilter) ([]domain.TimeEntry, error) {
	f.listCalls++
	f.lastFilter = flt
	return f.entries, f.entriesErr
}

func (f *fakeTracker) GetTimeEntry(ctx context.Context, workspaceID, entryID string) (domain.TimeEntry, error) {
	for _, e := range f.entries {
		if e.ID == entryID {
			return e, nil
		}
	}
	return domain.TimeEntry{}, domain.ErrNotFound
}

func (f *fakeTracker) CreateTimeEntry(ctx context.Context, workspaceID string, in domain.EntryInput) (domain.TimeEntry, error) {
	return domain.TimeEntry{ID: "created", Start: in.Start, End: in.End, Description: in.Description}, nil
}

func (f *fakeTracker) StartTimer(ctx context.Context, workspaceID string, in domain.EntryInput) (domain.TimeEntry, error) {
	f.started = append(f.started, in)
	return domain.TimeEntry{ID: "started", Description: in.Description, ProjectID: in.ProjectID}, nil
}

func (f *fakeTracker) UpdateTimeEntry(ctx context.Context, workspaceID, entryID string, in domain.EntryInput) (domain.TimeEntry, error) {
	f.updates = append(f.updates, updateCall{WorkspaceID: workspaceID, EntryID: entryID, In: in})
	if f.updateErr != nil {
		return domain.TimeEntry{}, f.updateErr
	}
	return domain.TimeEntry{
		ID:          entryID,
		Description: in.Description,
		ProjectID:   in.ProjectID,
		TaskID:      in.TaskID,
		TagIDs:      in.TagIDs,
		Billable:    in.Billable,
		Start:       in.Start,
		End:         in.End,
	}, nil
}

func (f *fakeTracker) DeleteTimeEntry(ctx context.Context, workspaceID, entryID string) error {
	return nil
}

// memCreds is an in-memory ports.CredentialStore.
type memCreds struct {
	key    string
	setErr error
}

func (m *memCreds) Set(key string) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.key = key
	return nil
}

func (m *memCreds) Get() (string, bool, error) { return m.key, m.key != "", nil }

func (m *memCreds) Remove() (bool, error) {
	had := m.key != ""
	m.key = ""
	return had, nil
}

func (m *memCreds) Has() bool { return m.key != "" }

// memPrefs is an in-memory ports.PreferenceStore.
type memPrefs struct {
	p     domain.Preferences
	saves int
}

func (m *memPrefs) Load() (domain.Preferences, error) { return m.p, nil }

func (m *memPrefs) Save(p domain.Preferences) error {
	m.p = p
	m.saves++
	return nil
}
