// internal/adapters/out/localkv/sqlite_store_test.go
package localkv

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "session.db")

	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()

	_, ok, err := s.Get(ctx, "cart")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(ctx, "cart", []byte(`[{"quantity":1}]`)))

	raw, ok, err := s.Get(ctx, "cart")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `[{"quantity":1}]`, string(raw))

	// overwrite
	require.NoError(t, s.Set(ctx, "cart", []byte(`[]`)))
	raw, _, err = s.Get(ctx, "cart")
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(raw))

	// remove, then removing again is fine
	require.NoError(t, s.Remove(ctx, "cart"))
	_, ok, err = s.Get(ctx, "cart")
	require.NoError(t, err)
	assert.False(t, ok)
	require.NoError(t, s.Remove(ctx, "cart"))
}

func TestSQLiteStoreSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "session.db")

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, "user", []byte(`{"id":"u1"}`)))
	require.NoError(t, s.Close())

	s2, err := Open(path)
	require.NoError(t, err)
	defer s2.Close()

	raw, ok, err := s2.Get(ctx, "user")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `{"id":"u1"}`, string(raw))
}

func TestOpenRejectsEmptyPath(t *testing.T) {
	_, err := Open("  ")
	assert.Error(t, err)
}

func TestMemoryStoreIsolation(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()

	require.NoError(t, m.Set(ctx, "k", []byte("v1")))

	raw, ok, err := m.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)

	// mutating the returned buffer must not affect the stored value
	raw[0] = 'X'
	again, _, _ := m.Get(ctx, "k")
	assert.Equal(t, "v1", string(again))

	require.NoError(t, m.Remove(ctx, "k"))
	_, ok, _ = m.Get(ctx, "k")
	assert.False(t, ok)
}
