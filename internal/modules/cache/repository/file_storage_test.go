package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sharederrors "feeddeck/internal/shared/errors"
)

func TestFileStorageRoundTrip(t *testing.T) {
	kv, err := NewFileStorage(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, kv.Set("feeds-cache", `{"payload":1}`))

	got, err := kv.Get("feeds-cache")
	require.NoError(t, err)
	assert.Equal(t, `{"payload":1}`, got)
}

func TestFileStorageMissingKey(t *testing.T) {
	kv, err := NewFileStorage(t.TempDir())
	require.NoError(t, err)

	_, err = kv.Get("absent")
	assert.ErrorIs(t, err, sharederrors.ErrKeyNotFound)
}

func TestFileStorageRemove(t *testing.T) {
	kv, err := NewFileStorage(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, kv.Set("k", "v"))
	require.NoError(t, kv.Remove("k"))

	_, err = kv.Get("k")
	assert.ErrorIs(t, err, sharederrors.ErrKeyNotFound)

	// Removing an absent key is not an error
	assert.NoError(t, kv.Remove("k"))
}

func TestMemoryStorage(t *testing.T) {
	kv := NewMemoryStorage()

	_, err := kv.Get("k")
	assert.ErrorIs(t, err, sharederrors.ErrKeyNotFound)

	require.NoError(t, kv.Set("k", "v"))
	got, err := kv.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "v", got)

	require.NoError(t, kv.Remove("k"))
	_, err = kv.Get("k")
	assert.ErrorIs(t, err, sharederrors.ErrKeyNotFound)
}
