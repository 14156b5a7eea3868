// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package mirror

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/research-hub/pkg/types"
)

func backends(t *testing.T) map[string]Mirror {
	t.Helper()
	dir := t.TempDir()

	file, err := NewFile(filepath.Join(dir, "files"))
	require.NoError(t, err)
	sqlite, err := NewSQLite(filepath.Join(dir, "db", "hub.db"))
	require.NoError(t, err)

	m := map[string]Mirror{
		"memory": NewMemory(),
		"file":   file,
		"sqlite": sqlite,
	}

	if dsn := os.Getenv("RESEARCH_HUB_TEST_POSTGRES_DSN"); dsn != "" {
		pg, err := NewPostgres(dsn)
		require.NoError(t, err)
		m["postgres"] = pg
	}

	t.Cleanup(func() {
		for _, b := range m {
			b.Close()
		}
	})
	return m
}

func TestMirrorRoundTrip(t *testing.T) {
	for name, m := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, ok, err := m.Get("rh_papers")
			require.NoError(t, err)
			assert.False(t, ok, "fresh mirror should not hold rh_papers")

			payload := `[{"id":"p1","title":"Attention Is All You Need"}]`
			require.NoError(t, m.Set("rh_papers", payload))

			got, ok, err := m.Get("rh_papers")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, payload, got)
		})
	}
}

func TestMirrorOverwrite(t *testing.T) {
	for name, m := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, m.Set("rh_theme", "dark"))
			require.NoError(t, m.Set("rh_theme", "light"))

			got, ok, err := m.Get("rh_theme")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "light", got)
		})
	}
}

func TestMirrorRemove(t *testing.T) {
	for name, m := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, m.Set("rh_auth", "true"))
			require.NoError(t, m.Remove("rh_auth"))

			_, ok, err := m.Get("rh_auth")
			require.NoError(t, err)
			assert.False(t, ok)

			assert.NoError(t, m.Remove("rh_auth"), "removing an absent key is not an error")
		})
	}
}

func TestMirrorEmptyValue(t *testing.T) {
	for name, m := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, m.Set("rh_workspaces", ""))
			got, ok, err := m.Get("rh_workspaces")
			require.NoError(t, err)
			assert.True(t, ok, "an empty value is still present")
			assert.Equal(t, "", got)
		})
	}
}

func TestFileRejectsPathKeys(t *testing.T) {
	f, err := NewFile(t.TempDir())
	require.NoError(t, err)

	for _, key := range []string{"", "../escape", "a/b", ".hidden"} {
		assert.Error(t, f.Set(key, "x"), "key %q", key)
	}
}

func TestFileLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	f, err := NewFile(dir)
	require.NoError(t, err)

	require.NoError(t, f.Set("rh_papers", "[]"))
	require.NoError(t, f.Set("rh_papers", "[1]"))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "rh_papers", entries[0].Name())
}

func TestSQLitePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hub.db")

	s, err := NewSQLite(path)
	require.NoError(t, err)
	require.NoError(t, s.Set("rh_papers", "[]"))
	require.NoError(t, s.Close())

	s, err = NewSQLite(path)
	require.NoError(t, err)
	defer s.Close()

	got, ok, err := s.Get("rh_papers")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "[]", got)
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		cfg     types.MirrorConfig
		wantErr string
	}{
		{name: "memory", cfg: types.MirrorConfig{Backend: types.MirrorMemory}},
		{name: "file", cfg: types.MirrorConfig{Backend: types.MirrorFile, Dir: dir}},
		{name: "sqlite", cfg: types.MirrorConfig{Backend: types.MirrorSQLite, Dir: dir}},
		{name: "default is sqlite", cfg: types.MirrorConfig{Dir: dir}},
		{name: "postgres without dsn", cfg: types.MirrorConfig{Backend: types.MirrorPostgres}, wantErr: "requires a dsn"},
		{name: "unknown", cfg: types.MirrorConfig{Backend: "redis"}, wantErr: "unsupported mirror backend"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Open(tt.cfg)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NoError(t, m.Close())
		})
	}
}
