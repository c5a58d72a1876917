package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-sql-driver/mysql"

	"clockify-cli/internal/domain"
)

// Client implements ports.Sink by writing to MySQL tables.
type Client struct {
	db  *sql.DB
	log *slog.Logger
	now func() time.Time
}

// Open opens and pings a MySQL connection.
// Example DSN: user:pass@tcp(host:3306)/dbname
// parseTime and multiStatements are always enabled; migrations need the latter.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	if dsn == "" {
		return nil, errors.New("mysql: DSN is required (set CLOCKIFY_MYSQL_DSN)")
	}
	dsn, err := normalizeDSN(dsn)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("mysql: %w", err)
	}
	// A single export needs few connections.
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(30 * time.Minute)

	c, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(c); err != nil {
		db.Close()
		return nil, fmt.Errorf("mysql: ping: %w", err)
	}
	return db, nil
}

func normalizeDSN(dsn string) (string, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return "", fmt.Errorf("mysql: invalid DSN: %w", err)
	}
	cfg.ParseTime = true
	cfg.MultiStatements = true
	return cfg.FormatDSN(), nil
}

// NewClient wraps an open database. The schema must already be migrated.
func NewClient(db *sql.DB, log *slog.Logger) *Client {
	return &Client{db: db, log: log, now: time.Now}
}

// SyncEntries upserts entries into clockify_time_entries.
func (c *Client) SyncEntries(ctx context.Context, entries []domain.TimeEntry) error {
	if len(entries) == 0 {
		return nil
	}
	const q = `
INSERT INTO clockify_time_entries
  (id, workspace_id, user_id, project_id, task_id, description, tag_ids, billable, start, stop, duration_sec, synced_at)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  workspace_id=VALUES(workspace_id),
  user_id=VALUES(user_id),
  project_id=VALUES(project_id),
  task_id=VALUES(task_id),
  description=VALUES(description),
  tag_ids=VALUES(tag_ids),
  billable=VALUES(billable),
  start=VALUES(start),
  stop=VALUES(stop),
  duration_sec=VALUES(duration_sec),
  synced_at=VALUES(synced_at);
`
	syncedAt := c.now().UTC()
	err := c.inTx(ctx, q, func(stmt *sql.Stmt) error {
		for _, e := range entries {
			// Tags are stored as a JSON array in a TEXT column.
			tags := e.TagIDs
			if tags == nil {
				tags = []string{}
			}
			tagsJSON, err := json.Marshal(tags)
			if err != nil {
				return err
			}
			var stop any
			if e.End != nil {
				stop = e.End.UTC()
			}
			if _, err := stmt.ExecContext(ctx,
				e.ID,
				e.WorkspaceID,
				e.UserID,
				nullable(e.ProjectID),
				nullable(e.TaskID),
				e.Description,
				string(tagsJSON),
				e.Billable,
				e.Start.UTC(),
				stop,
				// running entries are stored with their length so far
				int64(e.Duration(syncedAt)/time.Second),
				syncedAt,
			); err != nil {
				return fmt.Errorf("upsert entry %s: %w", e.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	c.log.Info("mysql sink upserted entries", slog.Int("count", len(entries)))
	return nil
}

// SyncProjects upserts projects into clockify_projects.
func (c *Client) SyncProjects(ctx context.Context, projects []domain.Project) error {
	if len(projects) == 0 {
		return nil
	}
	const q = `
INSERT INTO clockify_projects
  (id, workspace_id, name, client_id, client_name, color, archived, billable, synced_at)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  workspace_id=VALUES(workspace_id),
  name=VALUES(name),
  client_id=VALUES(client_id),
  client_name=VALUES(client_name),
  color=VALUES(color),
  archived=VALUES(archived),
  billable=VALUES(billable),
  synced_at=VALUES(synced_at);
`
	syncedAt := c.now().UTC()
	err := c.inTx(ctx, q, func(stmt *sql.Stmt) error {
		for _, p := range projects {
			if _, err := stmt.ExecContext(ctx,
				p.ID,
				p.WorkspaceID,
				p.Name,
				nullable(p.ClientID),
				nullable(p.ClientName),
				p.Color,
				p.Archived,
				p.Billable,
				syncedAt,
			); err != nil {
				return fmt.Errorf("upsert project %s: %w", p.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	c.log.Info("mysql sink upserted projects", slog.Int("count", len(projects)))
	return nil
}

// inTx prepares q inside a transaction, runs fn and commits, rolling back
// on any error.
func (c *Client) inTx(ctx context.Context, q string, fn func(*sql.Stmt) error) error {
	tx, err := c.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	stmt, err := tx.PrepareContext(ctx, q)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()
	if err := fn(stmt); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
