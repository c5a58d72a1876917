package app

import (
	"context"
	"log/slog"
	"time"

	"clockify-cli/internal/adapter/clockify"
	msql "clockify-cli/internal/adapter/mysql"
	"clockify-cli/internal/config"
	"clockify-cli/internal/credentials"
	"clockify-cli/internal/domain"
	"clockify-cli/internal/migrate"
	"clockify-cli/internal/usecase"
)

// App wires adapters and use cases. Build one per process so every request
// shares the same pacer.
type App struct {
	log *slog.Logger
	cfg config.Config

	Creds      *credentials.FileStore
	Prefs      *config.PreferenceFile
	Client     *clockify.Client
	Session    *usecase.SessionService
	Workspaces *usecase.WorkspaceService
	Timer      *usecase.TimerService
	Reports    *usecase.ReportService
}

// Scope is what workspace-scoped commands need: the active workspace, the
// user owning the key, and the local preferences.
type Scope struct {
	WorkspaceID string
	User        domain.User
	Prefs       domain.Preferences
}

func New(log *slog.Logger, cfg config.Config, opts ...clockify.Option) (*App, error) {
	creds := credentials.NewFileStore(cfg.ConfigDir, cfg.APIKey)
	prefs := config.NewPreferenceFile(cfg.ConfigDir)

	all := []clockify.Option{clockify.WithPacer(clockify.NewPacer(cfg.MinInterval))}
	all = append(all, opts...)
	// last, so an injected http.Client still gets the configured timeout
	all = append(all, clockify.WithTimeout(cfg.Timeout))
	client, err := clockify.NewClient(cfg.BaseURL, creds, log, all...)
	if err != nil {
		return nil, err
	}

	return &App{
		log:        log,
		cfg:        cfg,
		Creds:      creds,
		Prefs:      prefs,
		Client:     client,
		Session:    &usecase.SessionService{Log: log, Creds: creds, Prefs: prefs, Tracker: client},
		Workspaces: &usecase.WorkspaceService{Tracker: client, Prefs: prefs},
		Timer:      &usecase.TimerService{Log: log, Tracker: client},
		Reports:    &usecase.ReportService{Log: log, Tracker: client},
	}, nil
}

// Scope loads preferences and resolves the current user. It fails with
// domain.ErrNoWorkspace before any request when no workspace is active.
func (a *App) Scope(ctx context.Context) (Scope, error) {
	p, err := a.Prefs.Load()
	if err != nil {
		return Scope{}, err
	}
	if p.WorkspaceID == "" {
		return Scope{}, domain.ErrNoWorkspace
	}
	u, err := a.Client.CurrentUser(ctx)
	if err != nil {
		return Scope{}, err
	}
	return Scope{WorkspaceID: p.WorkspaceID, User: u, Prefs: p}, nil
}

// Export mirrors projects and entries in [from, to) into MySQL, applying
// schema migrations first.
func (a *App) Export(ctx context.Context, s Scope, from, to time.Time) (usecase.SyncResult, error) {
	db, err := msql.Open(ctx, a.cfg.MySQLDSN)
	if err != nil {
		return usecase.SyncResult{}, err
	}
	defer db.Close()

	// Run migrations before using the sink
	if err := migrate.Run(ctx, db, a.log); err != nil {
		return usecase.SyncResult{}, err
	}
	uc := &usecase.SyncUseCase{
		Log:    a.log,
		Source: a.Client,
		Sink:   msql.NewClient(db, a.log),
	}
	return uc.Run(ctx, s.WorkspaceID, s.User.ID, from, to)
}
