package storage

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", "file:storagetest?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE storage (
  key   TEXT PRIMARY KEY,
  value BLOB NOT NULL
);
`)
	require.NoError(t, err)
	return db
}

func TestSQLiteRepository_SetGet(t *testing.T) {
	db := setupDB(t)
	repo := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "auth_token", []byte("abc123")))

	got, err := repo.Get(ctx, "auth_token")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc123"), got)
}

func TestSQLiteRepository_SetOverwrites(t *testing.T) {
	db := setupDB(t)
	repo := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "auth_token", []byte("first")))
	require.NoError(t, repo.Set(ctx, "auth_token", []byte("second")))

	got, err := repo.Get(ctx, "auth_token")
	require.NoError(t, err)
	assert.Equal(t, []byte("second"), got)
}

func TestSQLiteRepository_GetMissingKey(t *testing.T) {
	db := setupDB(t)
	repo := NewSQLiteRepository(db)

	got, err := repo.Get(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSQLiteRepository_Delete(t *testing.T) {
	db := setupDB(t)
	repo := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "auth_email", []byte("admin@example.com")))
	require.NoError(t, repo.Delete(ctx, "auth_email"))

	got, err := repo.Get(ctx, "auth_email")
	require.NoError(t, err)
	assert.Nil(t, got)

	// deleting an absent key is not an error
	require.NoError(t, repo.Delete(ctx, "auth_email"))
}

func TestSQLiteRepository_DeleteAll(t *testing.T) {
	db := setupDB(t)
	repo := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "auth_token", []byte("tok")))
	require.NoError(t, repo.Set(ctx, "auth_email", []byte("a@b.c")))
	require.NoError(t, repo.Set(ctx, "other", []byte("stays")))

	require.NoError(t, repo.DeleteAll(ctx, "auth_token", "auth_email"))

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
	assert.Equal(t, []byte("stays"), all["other"])

	// absent keys are not an error
	require.NoError(t, repo.DeleteAll(ctx, "auth_token", "nope"))
}

func TestSQLiteRepository_ListAndClear(t *testing.T) {
	db := setupDB(t)
	repo := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "auth_token", []byte("tok")))
	require.NoError(t, repo.Set(ctx, "auth_email", []byte("a@b.c")))

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.Equal(t, []byte("tok"), all["auth_token"])

	require.NoError(t, repo.Clear(ctx))

	all, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}
