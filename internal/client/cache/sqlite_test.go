package cache

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func tableExists(t *testing.T, db *sql.DB, name string) bool {
	t.Helper()
	var n int
	err := db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?`, name).Scan(&n)
	require.NoError(t, err)
	return n > 0
}

func TestOpenSQLite_Migrates(t *testing.T) {
	s := openStore(t)

	assert.True(t, tableExists(t, s.db, "goose_db_version"))
	assert.True(t, tableExists(t, s.db, "browsing_sessions"))
	assert.True(t, tableExists(t, s.db, "edit_snapshots"))

	require.NoError(t, RunMigrations(context.Background(), s.db), "migrations must be idempotent")
}

func TestOpenSQLite_CreatesParentDir(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "state", "myhealth", "cache.db")

	s, err := OpenSQLite(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	assert.FileExists(t, dsn)
}

func TestScope_Empty(t *testing.T) {
	s := openStore(t)
	_, err := s.Scope("")
	assert.ErrorIs(t, err, ErrEmptyScope)
}

func TestScoped_PutGetClear(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)

	c, err := s.Scope("sess-1")
	require.NoError(t, err)

	_, ok, err := c.Get(ctx, "food", "mms")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Put(ctx, "food", "mms", []byte(`{"v":1}`)))
	require.NoError(t, c.Put(ctx, "food", "mms", []byte(`{"v":2}`)))

	data, ok, err := c.Get(ctx, "food", "mms")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"v":2}`, string(data))

	require.NoError(t, c.Clear(ctx, "food", "mms"))
	_, ok, err = c.Get(ctx, "food", "mms")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestScoped_IsolatedBetweenSessions(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)

	a, _ := s.Scope("a")
	b, _ := s.Scope("b")

	require.NoError(t, Store(ctx, a, "food", "k", snapshot{Key: "k", Name: "from a"}))

	_, ok, err := Load[snapshot](ctx, b, "food", "k")
	require.NoError(t, err)
	assert.False(t, ok)

	got, ok, err := Load[snapshot](ctx, a, "food", "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "from a", got.Name)
}

func TestPurgeStale(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)

	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	s.now = func() time.Time { return base }
	old, _ := s.Scope("old")
	require.NoError(t, old.Put(ctx, "food", "k", []byte("1")))

	s.now = func() time.Time { return base.Add(time.Hour) }
	fresh, _ := s.Scope("fresh")
	require.NoError(t, fresh.Put(ctx, "food", "k", []byte("2")))

	n, err := s.PurgeStale(ctx, base.Add(30*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, ok, _ := old.Get(ctx, "food", "k")
	assert.False(t, ok)
	_, ok, _ = fresh.Get(ctx, "food", "k")
	assert.True(t, ok)
}

func TestTouch_KeepsSessionAlive(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	s.now = func() time.Time { return base }
	c, _ := s.Scope("x")
	require.NoError(t, c.Put(ctx, "weight", "1", []byte("1")))

	s.now = func() time.Time { return base.Add(2 * time.Hour) }
	require.NoError(t, s.Touch(ctx, "x"))

	n, err := s.PurgeStale(ctx, base.Add(time.Hour))
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestDrop(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)

	c, _ := s.Scope("gone")
	require.NoError(t, c.Put(ctx, "food", "k", []byte("1")))
	require.NoError(t, s.Drop(ctx, "gone"))

	_, ok, err := c.Get(ctx, "food", "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestScoped_Get_QueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT data FROM edit_snapshots").
		WithArgs("s", "food", "k").
		WillReturnError(errors.New("disk I/O error"))

	c, _ := NewSQLiteStore(db).Scope("s")
	_, ok, err := c.Get(context.Background(), "food", "k")

	require.Error(t, err)
	assert.False(t, ok)
	assert.Contains(t, err.Error(), "failed to select snapshot")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestScoped_Put_RollsBackOnError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO browsing_sessions").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO edit_snapshots").WillReturnError(errors.New("constraint failed"))
	mock.ExpectRollback()

	c, _ := NewSQLiteStore(db).Scope("s")
	err = c.Put(context.Background(), "food", "k", []byte("1"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to upsert snapshot")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPurgeStale_RollsBackOnError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM edit_snapshots").WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec("DELETE FROM browsing_sessions").WillReturnError(errors.New("locked"))
	mock.ExpectRollback()

	_, err = NewSQLiteStore(db).PurgeStale(context.Background(), time.Now())
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
