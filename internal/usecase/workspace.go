package usecase

import (
	"context"
	"strings"

	"clockify-cli/internal/domain"
	"clockify-cli/internal/ports"
)

// WorkspaceService lists workspaces and tracks the active one.
type WorkspaceService struct {
	Tracker ports.Tracker
	Prefs   ports.PreferenceStore
}

// List returns every workspace the user can see.
func (s *WorkspaceService) List(ctx context.Context) ([]domain.Workspace, error) {
	return s.Tracker.ListWorkspaces(ctx)
}

// Switch makes the workspace matching idOrName active. Names match
// case-insensitively; ids match exactly and win over names.
func (s *WorkspaceService) Switch(ctx context.Context, idOrName string) (domain.Workspace, error) {
	idOrName = strings.TrimSpace(idOrName)
	workspaces, err := s.Tracker.ListWorkspaces(ctx)
	if err != nil {
		return domain.Workspace{}, err
	}
	w, ok := findWorkspace(workspaces, idOrName)
	if !ok {
		return domain.Workspace{}, domain.Errorf(domain.KindNotFound, "no workspace matches %q", idOrName)
	}
	p, err := s.Prefs.Load()
	if err != nil {
		return domain.Workspace{}, err
	}
	p.WorkspaceID = w.ID
	if err := s.Prefs.Save(p); err != nil {
		return domain.Workspace{}, err
	}
	return w, nil
}

// Current resolves the active workspace id against the service.
func (s *WorkspaceService) Current(ctx context.Context) (domain.Workspace, error) {
	p, err := s.Prefs.Load()
	if err != nil {
		return domain.Workspace{}, err
	}
	if p.WorkspaceID == "" {
		return domain.Workspace{}, domain.ErrNoWorkspace
	}
	workspaces, err := s.Tracker.ListWorkspaces(ctx)
	if err != nil {
		return domain.Workspace{}, err
	}
	for _, w := range workspaces {
		if w.ID == p.WorkspaceID {
			return w, nil
		}
	}
	return domain.Workspace{}, domain.Errorf(domain.KindNotFound,
		"the active workspace %q is no longer available", p.WorkspaceID)
}

func findWorkspace(workspaces []domain.Workspace, idOrName string) (domain.Workspace, bool) {
	for _, w := range workspaces {
		if w.ID == idOrName {
			return w, true
		}
	}
	for _, w := range workspaces {
		if strings.EqualFold(w.Name, idOrName) {
			return w, true
		}
	}
	return domain.Workspace{}, false
}
