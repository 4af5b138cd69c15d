package session

import (
	"context"
	"testing"
	"time"

	"souq/internal/domain/service"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_SetGet(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k1", []byte("hello"), time.Minute))

	value, err := store.Get(ctx, "k1")
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), value)
}

func TestMemoryStore_GetMissing(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()

	_, err := store.Get(context.Background(), "absent")
	assert.ErrorIs(t, err, service.ErrSessionNotFound)
}

func TestMemoryStore_Expiry(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k1", []byte("v"), 10*time.Millisecond))
	time.Sleep(30 * time.Millisecond)

	_, err := store.Get(ctx, "k1")
	assert.ErrorIs(t, err, service.ErrSessionNotFound)
}

func TestMemoryStore_Delete(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k1", []byte("v"), time.Minute))
	require.NoError(t, store.Delete(ctx, "k1"))

	_, err := store.Get(ctx, "k1")
	assert.ErrorIs(t, err, service.ErrSessionNotFound)

	// Deleting a missing key is not an error.
	assert.NoError(t, store.Delete(ctx, "k1"))
}

func TestMemoryStore_UpdateStoresNewValue(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k1", []byte("old"), time.Minute))

	err := store.Update(ctx, "k1", time.Minute, func(current []byte) ([]byte, error) {
		assert.Equal(t, []byte("old"), current)

		return []byte("new"), nil
	})
	require.NoError(t, err)

	value, err := store.Get(ctx, "k1")
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), value)
}

func TestMemoryStore_UpdateMissingKeySeesNil(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()
	ctx := context.Background()

	err := store.Update(ctx, "fresh", time.Minute, func(current []byte) ([]byte, error) {
		assert.Nil(t, current)

		return []byte("created"), nil
	})
	require.NoError(t, err)

	value, err := store.Get(ctx, "fresh")
	require.NoError(t, err)
	assert.Equal(t, []byte("created"), value)
}

func TestMemoryStore_UpdateNilDeletes(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k1", []byte("v"), time.Minute))

	err := store.Update(ctx, "k1", time.Minute, func([]byte) ([]byte, error) {
		return nil, nil
	})
	require.NoError(t, err)

	_, err = store.Get(ctx, "k1")
	assert.ErrorIs(t, err, service.ErrSessionNotFound)
}

func TestMemoryStore_UpdateErrorAborts(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k1", []byte("keep"), time.Minute))

	wantErr := errors.New("reject")
	err := store.Update(ctx, "k1", time.Minute, func([]byte) ([]byte, error) {
		return nil, wantErr
	})
	assert.ErrorIs(t, err, wantErr)

	value, err := store.Get(ctx, "k1")
	require.NoError(t, err)
	assert.Equal(t, []byte("keep"), value)
}
