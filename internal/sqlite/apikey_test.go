package sqlite

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tmorenz/tasktree/internal/repository"
)

func TestKeyRepository_MintResolve(t *testing.T) {
	db := NewTestDB(t)
	repo := NewKeyRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Mint(ctx, "secret-key", 7, "ci deploys"))

	userID, err := repo.Resolve(ctx, "secret-key")
	require.NoError(t, err)
	require.Equal(t, int64(7), userID)

	// Only the hash is stored
	var count int
	err = db.QueryRowContext(ctx, `SELECT COUNT(*) FROM api_keys WHERE key_hash = ?`, "secret-key").Scan(&count)
	require.NoError(t, err)
	require.Equal(t, 0, count)

	var lastUsed sql.NullTime
	err = db.QueryRowContext(ctx, `SELECT last_used FROM api_keys WHERE key_hash = ?`, HashKey("secret-key")).Scan(&lastUsed)
	require.NoError(t, err)
	require.True(t, lastUsed.Valid, "resolve should stamp last_used")
}

func TestKeyRepository_ResolveUnknown(t *testing.T) {
	db := NewTestDB(t)
	repo := NewKeyRepository(db)
	ctx := context.Background()

	_, err := repo.Resolve(ctx, "never-minted")
	require.Equal(t, repository.ErrNotFound, err)
}

func TestKeyRepository_MintDuplicate(t *testing.T) {
	db := NewTestDB(t)
	repo := NewKeyRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Mint(ctx, "secret-key", 7, ""))

	err := repo.Mint(ctx, "secret-key", 8, "")
	require.Equal(t, repository.ErrDuplicateKey, err)
}
