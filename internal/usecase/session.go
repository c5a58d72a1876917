package usecase

import (
	"context"
	"log/slog"
	"strings"

	"clockify-cli/internal/credentials"
	"clockify-cli/internal/domain"
	"clockify-cli/internal/ports"
)

// SessionService handles login, logout and authentication status.
type SessionService struct {
	Log     *slog.Logger
	Creds   ports.CredentialStore
	Prefs   ports.PreferenceStore
	Tracker ports.Tracker
}

// Status describes the current authentication state.
type Status struct {
	Authenticated bool
	User          domain.User
}

// LoginResult is what a successful login learned about the account.
type LoginResult struct {
	User domain.User
	// Workspace is set when the account has exactly one workspace and it
	// was made active.
	Workspace *domain.Workspace
	// Workspaces is the number of workspaces the account can see.
	Workspaces int
}

// Status reports "not authenticated" without a request when no key is
// stored; otherwise it verifies the key against the service.
func (s *SessionService) Status(ctx context.Context) (Status, error) {
	if !s.Creds.Has() {
		return Status{}, nil
	}
	u, err := s.Tracker.CurrentUser(ctx)
	if err != nil {
		return Status{}, err
	}
	return Status{Authenticated: true, User: u}, nil
}

// Login stores key and checks connectivity with it. A key the service
// rejects is replaced by the previously stored key, if any.
func (s *SessionService) Login(ctx context.Context, key string) (LoginResult, error) {
	key = strings.TrimSpace(key)
	if err := credentials.ValidateKey(key); err != nil {
		return LoginResult{}, err
	}
	prev, hadPrev, err := s.Creds.Get()
	if err != nil {
		return LoginResult{}, err
	}
	if err := s.Creds.Set(key); err != nil {
		return LoginResult{}, err
	}

	u, err := s.Tracker.CurrentUser(ctx)
	if err != nil {
		s.restoreKey(prev, hadPrev)
		return LoginResult{}, err
	}
	s.Log.Info("logged in", slog.String("user", u.ID))

	res := LoginResult{User: u}
	workspaces, err := s.Tracker.ListWorkspaces(ctx)
	if err != nil {
		// The key works; choosing a workspace can happen later.
		s.Log.Warn("could not list workspaces after login", slog.String("error", err.Error()))
		return res, nil
	}
	res.Workspaces = len(workspaces)
	if len(workspaces) == 1 {
		p, err := s.Prefs.Load()
		if err != nil {
			return res, err
		}
		p.WorkspaceID = workspaces[0].ID
		if err := s.Prefs.Save(p); err != nil {
			return res, err
		}
		res.Workspace = &workspaces[0]
	}
	return res, nil
}

// restoreKey puts back the key that was stored before a rejected login, or
// removes the rejected one when there was none.
func (s *SessionService) restoreKey(prev string, hadPrev bool) {
	if hadPrev {
		if err := s.Creds.Set(prev); err != nil {
			s.Log.Warn("could not restore previous key", slog.String("error", err.Error()))
		}
		return
	}
	if _, err := s.Creds.Remove(); err != nil {
		s.Log.Warn("could not remove rejected key", slog.String("error", err.Error()))
	}
}

// Logout removes the stored key and reports whether one existed.
func (s *SessionService) Logout() (bool, error) {
	return s.Creds.Remove()
}
