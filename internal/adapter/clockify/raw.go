package clockify

import (
	"time"

	"clockify-cli/internal/domain"
)

// isoLayout is the timestamp format the service accepts on input.
const isoLayout = "2006-01-02T15:04:05Z"

func formatTime(t time.Time) string { return t.UTC().Format(isoLayout) }

// rawUser mirrors the JSON of GET /user.
type rawUser struct {
	ID               string `json:"id"`
	Email            string `json:"email"`
	Name             string `json:"name"`
	ActiveWorkspace  string `json:"activeWorkspace"`
	DefaultWorkspace string `json:"defaultWorkspace"`
}

type rawWorkspace struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Memberships []struct {
		UserID string `json:"userId"`
		Status string `json:"membershipStatus"`
	} `json:"memberships"`
}

type rawProject struct {
	ID          string `json:"id"`
	WorkspaceID string `json:"workspaceId"`
	Name        string `json:"name"`
	ClientID    string `json:"clientId"`
	ClientName  string `json:"clientName"`
	Color       string `json:"color"`
	Archived    bool   `json:"archived"`
	Billable    bool   `json:"billable"`
}

type rawTask struct {
	ID        string `json:"id"`
	ProjectID string `json:"projectId"`
	Name      string `json:"name"`
	Status    string `json:"status"`
}

// rawTimeEntry mirrors the JSON of a time entry; timeInterval.end is null
// while the timer runs.
type rawTimeEntry struct {
	ID           string   `json:"id"`
	Description  string   `json:"description"`
	WorkspaceID  string   `json:"workspaceId"`
	UserID       string   `json:"userId"`
	ProjectID    string   `json:"projectId"`
	TaskID       string   `json:"taskId"`
	TagIDs       []string `json:"tagIds"`
	Billable     bool     `json:"billable"`
	TimeInterval struct {
		Start time.Time  `json:"start"`
		End   *time.Time `json:"end"`
	} `json:"timeInterval"`
}

// entryRequest is the body of POST and PUT on time entries.
type entryRequest struct {
	Start       string   `json:"start"`
	End         string   `json:"end,omitempty"`
	Billable    bool     `json:"billable"`
	Description string   `json:"description"`
	ProjectID   string   `json:"projectId,omitempty"`
	TaskID      string   `json:"taskId,omitempty"`
	TagIDs      []string `json:"tagIds,omitempty"`
}

type projectRequest struct {
	Name     string `json:"name"`
	Color    string `json:"color,omitempty"`
	ClientID string `json:"clientId,omitempty"`
	Billable bool   `json:"billable"`
	IsPublic bool   `json:"isPublic"`
}

type taskRequest struct {
	Name string `json:"name"`
}

func (r rawUser) toDomain() domain.User {
	return domain.User{
		ID:               r.ID,
		Email:            r.Email,
		Name:             r.Name,
		ActiveWorkspace:  r.ActiveWorkspace,
		DefaultWorkspace: r.DefaultWorkspace,
	}
}

func (r rawWorkspace) toDomain() domain.Workspace {
	w := domain.Workspace{ID: r.ID, Name: r.Name}
	for _, m := range r.Memberships {
		w.Memberships = append(w.Memberships, domain.Membership{UserID: m.UserID, Status: m.Status})
	}
	return w
}

func (r rawProject) toDomain() domain.Project {
	return domain.Project{
		ID:          r.ID,
		WorkspaceID: r.WorkspaceID,
		Name:        r.Name,
		ClientID:    r.ClientID,
		ClientName:  r.ClientName,
		Color:       r.Color,
		Archived:    r.Archived,
		Billable:    r.Billable,
	}
}

func (r rawTask) toDomain() domain.Task {
	return domain.Task{ID: r.ID, ProjectID: r.ProjectID, Name: r.Name, Status: r.Status}
}

func (r rawTimeEntry) toDomain() domain.TimeEntry {
	var end *time.Time
	if r.TimeInterval.End != nil {
		e := *r.TimeInterval.End
		end = &e
	}
	return domain.TimeEntry{
		ID:          r.ID,
		Description: r.Description,
		WorkspaceID: r.WorkspaceID,
		UserID:      r.UserID,
		ProjectID:   r.ProjectID,
		TaskID:      r.TaskID,
		TagIDs:      r.TagIDs,
		Billable:    r.Billable,
		Start:       r.TimeInterval.Start,
		End:         end,
	}
}
