package domain

// Project represents a workspace project in the domain layer.
type Project struct {
	ID          string
	WorkspaceID string
	Name        string
	ClientID    string
	ClientName  string
	Color       string
	Archived    bool
	Billable    bool
}

// NewProject holds the fields accepted when creating a project.
type NewProject struct {
	Name     string
	Color    string // hex, e.g. #03A9F4
	ClientID string
	Billable bool
	Public   bool
}

// Task belongs to a project.
type Task struct {
	ID        string
	ProjectID string
	Name      string
	Status    string // ACTIVE or DONE
}
