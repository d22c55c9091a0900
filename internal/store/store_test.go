package store

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(0)

	_, ok, err := s.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(ctx, "a", "1"))
	value, ok, err := s.Get(ctx, "a")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "1", value)

	require.NoError(t, s.Remove(ctx, "a"))
	_, ok, _ = s.Get(ctx, "a")
	assert.False(t, ok)
}

func TestMemoryStore_Quota(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(10)

	require.NoError(t, s.Set(ctx, "a", "12345"))
	err := s.Set(ctx, "b", "123456")
	assert.ErrorIs(t, err, ErrQuotaExceeded)

	// Overwriting frees the previous value's budget first.
	require.NoError(t, s.Set(ctx, "a", "1234567890"))
}

func TestFileStore_RoundTripAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "store.json")

	s, err := NewFileStore(path, 0)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, "profile", `{"name":"Max"}`))
	require.NoError(t, s.Set(ctx, "other", "x"))
	require.NoError(t, s.Remove(ctx, "other"))

	reopened, err := NewFileStore(path, 0)
	require.NoError(t, err)

	value, ok, err := reopened.Get(ctx, "profile")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"name":"Max"}`, value)

	_, ok, _ = reopened.Get(ctx, "other")
	assert.False(t, ok)
}

func TestFileStore_QuotaRollsBack(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "store.json")

	s, err := NewFileStore(path, 64)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, "small", "ok"))

	err = s.Set(ctx, "big", strings.Repeat("x", 200))
	require.ErrorIs(t, err, ErrQuotaExceeded)

	// The failed write must not leave the oversized value behind.
	_, ok, _ := s.Get(ctx, "big")
	assert.False(t, ok)
	value, ok, _ := s.Get(ctx, "small")
	assert.True(t, ok)
	assert.Equal(t, "ok", value)
}
