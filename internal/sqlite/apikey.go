package sqlite

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/tmorenz/tasktree/internal/repository"
)

// KeyRepository implements repository.KeyRepository for SQLite.
// Keys are stored as SHA-256 hashes, never in the clear.
type KeyRepository struct {
	db *DB
}

// NewKeyRepository creates a new KeyRepository
func NewKeyRepository(db *DB) *KeyRepository {
	return &KeyRepository{db: db}
}

// HashKey returns the hex-encoded SHA-256 digest stored for an API key.
func HashKey(key string) string {
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:])
}

// Mint stores a new API key for a user
func (r *KeyRepository) Mint(ctx context.Context, key string, userID int64, description string) error {
	query := `
		INSERT INTO api_keys (key_hash, user_id, created_at, description)
		VALUES (?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query, HashKey(key), userID, time.Now(), description)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicateKey
		}
		return fmt.Errorf("failed to mint api key: %w", err)
	}

	return nil
}

// Resolve returns the user ID a key belongs to and stamps its last use
func (r *KeyRepository) Resolve(ctx context.Context, key string) (int64, error) {
	hash := HashKey(key)

	query := `
		SELECT user_id
		FROM api_keys
		WHERE key_hash = ?
	`

	var userID int64
	err := r.db.QueryRowContext(ctx, query, hash).Scan(&userID)
	if err == sql.ErrNoRows {
		return 0, repository.ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to resolve api key: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, `UPDATE api_keys SET last_used = ? WHERE key_hash = ?`, time.Now(), hash); err != nil {
		return 0, fmt.Errorf("failed to stamp api key: %w", err)
	}

	return userID, nil
}
