package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/userhub-io/userhub-server/internal/model"
)

var _ model.DocumentStore = (*UserDocuments)(nil)

// UserDocuments is a per-document store over the users collection. Each
// user is one JSONB document keyed by uid; this repository exclusively
// owns the mapping between uid and document.
type UserDocuments struct {
	db *Connection
}

func NewUserDocuments(db *Connection) *UserDocuments {
	return &UserDocuments{
		db: db,
	}
}

// Get returns the document stored at key, or model.ErrNotFound.
func (r *UserDocuments) Get(ctx context.Context, key string) (json.RawMessage, error) {
	var doc []byte
	query := `SELECT doc FROM users WHERE uid = $1`

	err := r.db.QueryRow(ctx, query, key).Scan(&doc)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get document: %w", err)
	}

	return doc, nil
}

// Set writes the full document at key, overwriting any prior document.
func (r *UserDocuments) Set(ctx context.Context, key string, doc json.RawMessage) error {
	query := `INSERT INTO users (uid, doc) VALUES ($1, $2)
			  ON CONFLICT (uid) DO UPDATE SET doc = EXCLUDED.doc`

	if _, err := r.db.Exec(ctx, query, key, []byte(doc)); err != nil {
		return fmt.Errorf("failed to set document: %w", err)
	}

	return nil
}

// Merge applies a field-level patch over the document at key. Top-level
// fields present in patch replace the stored ones; everything else is
// untouched. Returns model.ErrNotFound when no document exists.
func (r *UserDocuments) Merge(ctx context.Context, key string, patch json.RawMessage) error {
	query := `UPDATE users SET doc = doc || $2::jsonb WHERE uid = $1`

	cmd, err := r.db.Exec(ctx, query, key, []byte(patch))
	if err != nil {
		return fmt.Errorf("failed to merge document: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return model.ErrNotFound
	}

	return nil
}

// Delete removes the document at key. Returns model.ErrNotFound when no
// document exists.
func (r *UserDocuments) Delete(ctx context.Context, key string) error {
	query := `DELETE FROM users WHERE uid = $1`

	cmd, err := r.db.Exec(ctx, query, key)
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return model.ErrNotFound
	}

	return nil
}
