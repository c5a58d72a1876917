package clockify

import (
	"context"
	"net/http"

	"clockify-cli/internal/domain"
)

// CurrentUser returns the owner of the API key. GET /user
func (c *Client) CurrentUser(ctx context.Context) (domain.User, error) {
	var raw rawUser
	if err := c.do(ctx, http.MethodGet, "/user", nil, nil, &raw); err != nil {
		return domain.User{}, err
	}
	return raw.toDomain(), nil
}

// ListWorkspaces returns the workspaces the user belongs to. GET /workspaces
func (c *Client) ListWorkspaces(ctx context.Context) ([]domain.Workspace, error) {
	var raw []rawWorkspace
	if err := c.do(ctx, http.MethodGet, "/workspaces", nil, nil, &raw); err != nil {
		return nil, err
	}
	out := make([]domain.Workspace, 0, len(raw))
	for _, w := range raw {
		out = append(out, w.toDomain())
	}
	return out, nil
}
