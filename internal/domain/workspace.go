package domain

// Workspace is the top-level container for projects and entries.
type Workspace struct {
	ID          string
	Name        string
	Memberships []Membership
}

// Membership links a user to a workspace.
type Membership struct {
	UserID string
	Status string
}

// User is the owner of the API key.
type User struct {
	ID               string
	Email            string
	Name             string
	ActiveWorkspace  string
	DefaultWorkspace string
}
