package model

import (
	"context"
	"encoding/json"
)

// DocumentStore defines per-document operations over a single keyed
// collection. Get, Merge and Delete return ErrNotFound when no document
// exists at the key; Set overwrites unconditionally.
type DocumentStore interface {
	Get(ctx context.Context, key string) (json.RawMessage, error)
	Set(ctx context.Context, key string, doc json.RawMessage) error
	Merge(ctx context.Context, key string, patch json.RawMessage) error
	Delete(ctx context.Context, key string) error
}
