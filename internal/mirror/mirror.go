// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package mirror provides the durable key-value store the library writes its
// collections through. Every backend is synchronous: Set returns only after
// the value is durable, and readers never observe a partial write.
package mirror

import (
	"fmt"
	"path/filepath"

	"github.com/pdiddy/research-hub/pkg/types"
)

// Mirror is a synchronous string key-value store.
type Mirror interface {
	// Get returns the value stored under key. ok is false when the key is absent.
	Get(key string) (value string, ok bool, err error)

	// Set stores value under key, replacing any previous value.
	Set(key, value string) error

	// Remove deletes key. Removing an absent key is not an error.
	Remove(key string) error

	// Close releases any resources held by the backend.
	Close() error
}

const (
	sqliteFile = "research-hub.db"
	mirrorDir  = "mirror"
)

// Open returns the backend selected by cfg. An empty backend selects sqlite.
func Open(cfg types.MirrorConfig) (Mirror, error) {
	dir := cfg.Dir
	if dir == "" {
		dir = "."
	}

	switch cfg.Backend {
	case types.MirrorMemory:
		return NewMemory(), nil
	case types.MirrorFile:
		return NewFile(filepath.Join(dir, mirrorDir))
	case types.MirrorSQLite, "":
		return NewSQLite(filepath.Join(dir, sqliteFile))
	case types.MirrorPostgres:
		if cfg.DSN == "" {
			return nil, fmt.Errorf("postgres mirror requires a dsn")
		}
		return NewPostgres(cfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported mirror backend %q: use memory, file, sqlite, or postgres", cfg.Backend)
	}
}
