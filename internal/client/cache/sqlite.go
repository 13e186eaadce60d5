package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/myhealth/internal/client/migrations"
	"github.com/dmitrijs2005/myhealth/internal/dbx"
	"github.com/dmitrijs2005/myhealth/internal/filex"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

// RunMigrations applies the embedded schema to db.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// SQLiteStore persists snapshots of many browsing sessions in one database.
// Use Scope to obtain the Cache of a single session.
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db, now: time.Now}
}

// OpenSQLite opens dsn with the modernc driver and migrates it.
func OpenSQLite(ctx context.Context, dsn string) (*SQLiteStore, error) {
	if path, ok := filex.SQLitePath(dsn); ok {
		if _, err := filex.EnsureParentDir(path); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to migrate snapshot cache: %w", err)
	}
	return NewSQLiteStore(db), nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Scope returns the Cache view of one browsing session.
func (s *SQLiteStore) Scope(sessionID string) (*Scoped, error) {
	if sessionID == "" {
		return nil, ErrEmptyScope
	}
	return &Scoped{store: s, sessionID: sessionID}, nil
}

// Touch records activity of a browsing session.
func (s *SQLiteStore) Touch(ctx context.Context, sessionID string) error {
	return touch(ctx, s.db, sessionID, s.now())
}

// PurgeStale drops every session idle since before together with its
// snapshots, and returns the number of sessions removed.
func (s *SQLiteStore) PurgeStale(ctx context.Context, before time.Time) (int64, error) {
	var purged int64
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		cutoff := before.UnixMilli()

		_, err := tx.ExecContext(ctx, `DELETE FROM edit_snapshots
			WHERE session_id IN (SELECT id FROM browsing_sessions WHERE last_seen < ?)`, cutoff)
		if err != nil {
			return fmt.Errorf("failed to delete stale snapshots: %w", err)
		}

		purged, err = dbx.ExecCount(ctx, tx, `DELETE FROM browsing_sessions WHERE last_seen < ?`, cutoff)
		if err != nil {
			return fmt.Errorf("failed to delete stale sessions: %w", err)
		}
		return nil
	})
	return purged, err
}

// Drop removes one session and its snapshots.
func (s *SQLiteStore) Drop(ctx context.Context, sessionID string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM edit_snapshots WHERE session_id = ?`, sessionID); err != nil {
			return fmt.Errorf("failed to delete snapshots: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM browsing_sessions WHERE id = ?`, sessionID); err != nil {
			return fmt.Errorf("failed to delete session: %w", err)
		}
		return nil
	})
}

func touch(ctx context.Context, db dbx.DBTX, sessionID string, at time.Time) error {
	query := `INSERT INTO browsing_sessions (id, last_seen) VALUES (?, ?)
		ON CONFLICT(id) DO UPDATE SET last_seen = excluded.last_seen`
	if _, err := db.ExecContext(ctx, query, sessionID, at.UnixMilli()); err != nil {
		return fmt.Errorf("failed to touch session: %w", err)
	}
	return nil
}

// Scoped is the Cache of one browsing session inside a SQLiteStore.
type Scoped struct {
	store     *SQLiteStore
	sessionID string
}

func (c *Scoped) Get(ctx context.Context, kind, key string) ([]byte, bool, error) {
	query := `SELECT data FROM edit_snapshots WHERE session_id = ? AND kind = ? AND entity_key = ?`

	var data []byte
	err := c.store.db.QueryRowContext(ctx, query, c.sessionID, kind, key).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to select snapshot: %w", err)
	}
	return data, true, nil
}

func (c *Scoped) Put(ctx context.Context, kind, key string, data []byte) error {
	now := c.store.now()
	return dbx.WithTx(ctx, c.store.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := touch(ctx, tx, c.sessionID, now); err != nil {
			return err
		}

		query := `INSERT INTO edit_snapshots (session_id, kind, entity_key, data, updated_at)
			VALUES (?, ?, ?, ?, ?)
			ON CONFLICT(session_id, kind, entity_key) DO UPDATE SET
				data = excluded.data,
				updated_at = excluded.updated_at`
		if _, err := tx.ExecContext(ctx, query, c.sessionID, kind, key, data, now.UnixMilli()); err != nil {
			return fmt.Errorf("failed to upsert snapshot: %w", err)
		}
		return nil
	})
}

func (c *Scoped) Clear(ctx context.Context, kind, key string) error {
	query := `DELETE FROM edit_snapshots WHERE session_id = ? AND kind = ? AND entity_key = ?`
	if _, err := c.store.db.ExecContext(ctx, query, c.sessionID, kind, key); err != nil {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}
	return nil
}
