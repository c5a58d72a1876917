package clockify

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"clockify-cli/internal/domain"
	"clockify-cli/internal/input"
)

// ListProjects fetches the projects of a workspace.
func (c *Client) ListProjects(ctx context.Context, workspaceID string) ([]domain.Project, error) {
	if workspaceID == "" {
		return nil, domain.ErrNoWorkspace
	}
	q := url.Values{}
	q.Set("page-size", "5000")
	var raw []rawProject
	path := fmt.Sprintf("/workspaces/%s/projects", url.PathEscape(workspaceID))
	if err := c.do(ctx, http.MethodGet, path, q, nil, &raw); err != nil {
		return nil, err
	}
	out := make([]domain.Project, 0, len(raw))
	for _, p := range raw {
		out = append(out, p.toDomain())
	}
	return out, nil
}

// CreateProject adds a project to a workspace.
func (c *Client) CreateProject(ctx context.Context, workspaceID string, p domain.NewProject) (domain.Project, error) {
	if workspaceID == "" {
		return domain.Project{}, domain.ErrNoWorkspace
	}
	name, err := input.SanitizeName(p.Name)
	if err != nil {
		return domain.Project{}, err
	}
	body := projectRequest{
		Name:     name,
		Color:    p.Color,
		ClientID: p.ClientID,
		Billable: p.Billable,
		IsPublic: p.Public,
	}
	var raw rawProject
	path := fmt.Sprintf("/workspaces/%s/projects", url.PathEscape(workspaceID))
	if err := c.do(ctx, http.MethodPost, path, nil, body, &raw); err != nil {
		return domain.Project{}, err
	}
	return raw.toDomain(), nil
}

// ListTasks fetches the tasks of a project.
func (c *Client) ListTasks(ctx context.Context, workspaceID, projectID string) ([]domain.Task, error) {
	if workspaceID == "" {
		return nil, domain.ErrNoWorkspace
	}
	if projectID == "" {
		return nil, domain.Errorf(domain.KindInvalidInput, "a project id is required")
	}
	var raw []rawTask
	if err := c.do(ctx, http.MethodGet, tasksPath(workspaceID, projectID), nil, nil, &raw); err != nil {
		return nil, err
	}
	out := make([]domain.Task, 0, len(raw))
	for _, t := range raw {
		out = append(out, t.toDomain())
	}
	return out, nil
}

// CreateTask adds a task to a project.
func (c *Client) CreateTask(ctx context.Context, workspaceID, projectID, name string) (domain.Task, error) {
	if workspaceID == "" {
		return domain.Task{}, domain.ErrNoWorkspace
	}
	if projectID == "" {
		return domain.Task{}, domain.Errorf(domain.KindInvalidInput, "a project id is required")
	}
	clean, err := input.SanitizeName(name)
	if err != nil {
		return domain.Task{}, err
	}
	var raw rawTask
	if err := c.do(ctx, http.MethodPost, tasksPath(workspaceID, projectID), nil, taskRequest{Name: clean}, &raw); err != nil {
		return domain.Task{}, err
	}
	return raw.toDomain(), nil
}

func tasksPath(workspaceID, projectID string) string {
	return fmt.Sprintf("/workspaces/%s/projects/%s/tasks", url.PathEscape(workspaceID), url.PathEscape(projectID))
}
