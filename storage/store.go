// Package storage persists independently keyed JSON documents.
//
// There are no cross-key transactions: every caller writes the whole
// collection it changed under its own key. A failed read or write is logged
// and treated as non-fatal, so the in-memory state stays authoritative for
// the running process.
package storage

import (
	"context"

	"go.uber.org/zap"

	"ramotsav.com/project-ramotsav/logger"
)

type DocumentStore interface {
	// Load decodes the document at key into dst. It reports false, nil when
	// nothing is stored under key.
	Load(ctx context.Context, key string, dst any) (bool, error)
	Save(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, key string) error
}

// Load returns the stored value for key, or def when the key is absent or
// unreadable. The default is not written back.
func Load[T any](ctx context.Context, s DocumentStore, key string, def T) T {
	var v T
	found, err := s.Load(ctx, key, &v)
	if err != nil {
		logger.Log.Warn("document load failed, using default", zap.String("key", key), zap.Error(err))
		return def
	}
	if !found {
		return def
	}
	return v
}

// Save writes value under key and reports whether it was persisted.
func Save(ctx context.Context, s DocumentStore, key string, value any) bool {
	if err := s.Save(ctx, key, value); err != nil {
		logger.Log.Warn("document save failed, keeping in-memory state", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}
