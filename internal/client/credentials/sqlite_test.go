package credentials

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/gymmi-app/gymmi/internal/client/repositories/metadata"
	"github.com/gymmi-app/gymmi/internal/common"
	"github.com/stretchr/testify/require"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := InitDatabase(context.Background(), filepath.Join(t.TempDir(), "gymmi.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func rawValue(t *testing.T, db *sql.DB, key string) []byte {
	t.Helper()
	v, err := metadata.NewSQLiteRepository(db).Get(context.Background(), key)
	require.NoError(t, err)
	return v
}

func TestInitDatabase_IsIdempotent(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "gymmi.db")

	db, err := InitDatabase(ctx, dsn)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = InitDatabase(ctx, dsn)
	require.NoError(t, err)
	defer db.Close()

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='metadata'`).Scan(&n))
	require.Equal(t, 1, n)
}

func TestSQLiteStore_EmptyByDefault(t *testing.T) {
	s := NewSQLiteStore(setupDB(t), "")

	tok, err := s.Get(context.Background())
	require.NoError(t, err)
	require.Empty(t, tok)
}

func TestSQLiteStore_PlainRoundTrip(t *testing.T) {
	db := setupDB(t)
	s := NewSQLiteStore(db, "")
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "tok123"))

	tok, err := s.Get(ctx)
	require.NoError(t, err)
	require.Equal(t, "tok123", tok)
	require.Equal(t, []byte("tok123"), rawValue(t, db, common.TokenStorageKey))
	require.Nil(t, rawValue(t, db, common.TokenSaltStorageKey))
}

func TestSQLiteStore_SealedRoundTrip(t *testing.T) {
	db := setupDB(t)
	s := NewSQLiteStore(db, "correct horse")
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "tok123"))

	raw := rawValue(t, db, common.TokenStorageKey)
	require.NotContains(t, string(raw), "tok123")
	require.NotNil(t, rawValue(t, db, common.TokenSaltStorageKey))

	tok, err := s.Get(ctx)
	require.NoError(t, err)
	require.Equal(t, "tok123", tok)
}

func TestSQLiteStore_SealedWithoutPassphrase(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	require.NoError(t, NewSQLiteStore(db, "secret").Set(ctx, "tok123"))

	_, err := NewSQLiteStore(db, "").Get(ctx)
	require.ErrorIs(t, err, ErrSealed)

	_, err = NewSQLiteStore(db, "wrong").Get(ctx)
	require.ErrorContains(t, err, "open stored token")
}

func TestSQLiteStore_PlainAfterSealedDropsSalt(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	require.NoError(t, NewSQLiteStore(db, "secret").Set(ctx, "old"))
	require.NoError(t, NewSQLiteStore(db, "").Set(ctx, "new"))

	require.Nil(t, rawValue(t, db, common.TokenSaltStorageKey))
	tok, err := NewSQLiteStore(db, "").Get(ctx)
	require.NoError(t, err)
	require.Equal(t, "new", tok)
}

func TestSQLiteStore_Clear(t *testing.T) {
	db := setupDB(t)
	s := NewSQLiteStore(db, "secret")
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "tok123"))
	require.NoError(t, s.Clear(ctx))
	require.NoError(t, s.Clear(ctx))

	tok, err := s.Get(ctx)
	require.NoError(t, err)
	require.Empty(t, tok)
	require.Nil(t, rawValue(t, db, common.TokenSaltStorageKey))
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	tok, err := s.Get(ctx)
	require.NoError(t, err)
	require.Empty(t, tok)

	require.NoError(t, s.Set(ctx, "tok123"))
	tok, _ = s.Get(ctx)
	require.Equal(t, "tok123", tok)

	require.NoError(t, s.Clear(ctx))
	tok, _ = s.Get(ctx)
	require.Empty(t, tok)
}
