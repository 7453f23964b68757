package session_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sealcookie/pkg/session"
)

func TestMemoryStore_CreateRead(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := session.NewMemoryStore(0)
	t.Cleanup(func() { _ = store.Close() })

	data := map[string]any{"key": "value"}
	id, err := store.Create(ctx, data, time.Now().Add(time.Hour))
	require.NoError(t, err)
	require.NotEmpty(t, id)

	// Stored data is isolated from the caller's map.
	data["key"] = "modified"

	got, err := store.Read(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"key": "value"}, got)

	got["key"] = "changed after read"
	again, err := store.Read(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "value", again["key"])
}

func TestMemoryStore_UniqueIDs(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := session.NewMemoryStore(0)

	seen := make(map[string]struct{})
	for range 100 {
		id, err := store.Create(ctx, nil, time.Time{})
		require.NoError(t, err)
		seen[id] = struct{}{}
	}
	assert.Len(t, seen, 100)
}

func TestMemoryStore_ReadMissing(t *testing.T) {
	t.Parallel()

	_, err := session.NewMemoryStore(0).Read(context.Background(), "missing")
	require.ErrorIs(t, err, session.ErrSessionNotFound)
}

func TestMemoryStore_NilDataReadsEmpty(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := session.NewMemoryStore(0)

	id, err := store.Create(ctx, nil, time.Time{})
	require.NoError(t, err)

	got, err := store.Read(ctx, id)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestMemoryStore_Expiry(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := session.NewMemoryStore(0)

	id, err := store.Create(ctx, map[string]any{"k": 1}, time.Now().Add(-time.Second))
	require.NoError(t, err)

	_, err = store.Read(ctx, id)
	require.ErrorIs(t, err, session.ErrSessionNotFound)
	assert.Equal(t, 0, store.Len(), "expired entries are dropped on read")
}

func TestMemoryStore_ReadKeepsConcurrentRefresh(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := session.NewMemoryStore(0)

	for i := range 200 {
		id, err := store.Create(ctx, map[string]any{"v": "stale"}, time.Now().Add(-time.Second))
		require.NoError(t, err)

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = store.Read(ctx, id)
		}()
		go func() {
			defer wg.Done()
			assert.NoError(t, store.Update(ctx, id, map[string]any{"v": "fresh"}, time.Now().Add(time.Hour)))
		}()
		wg.Wait()

		got, err := store.Read(ctx, id)
		require.NoError(t, err, "iteration %d", i)
		assert.Equal(t, "fresh", got["v"])
	}
}

func TestMemoryStore_UpdateUpserts(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := session.NewMemoryStore(0)

	require.NoError(t, store.Update(ctx, "fixed-id", map[string]any{"v": 1}, time.Time{}))
	got, err := store.Read(ctx, "fixed-id")
	require.NoError(t, err)
	assert.Equal(t, 1, got["v"])

	require.NoError(t, store.Update(ctx, "fixed-id", map[string]any{"v": 2}, time.Time{}))
	got, err = store.Read(ctx, "fixed-id")
	require.NoError(t, err)
	assert.Equal(t, 2, got["v"])
	assert.Equal(t, 1, store.Len())
}

func TestMemoryStore_Delete(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := session.NewMemoryStore(0)

	id, err := store.Create(ctx, nil, time.Time{})
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, id))
	require.NoError(t, store.Delete(ctx, id), "deleting twice is not an error")

	_, err = store.Read(ctx, id)
	require.ErrorIs(t, err, session.ErrSessionNotFound)
}

func TestMemoryStore_DeleteExpired(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := session.NewMemoryStore(0)

	_, err := store.Create(ctx, nil, time.Now().Add(-time.Minute))
	require.NoError(t, err)
	live, err := store.Create(ctx, nil, time.Now().Add(time.Hour))
	require.NoError(t, err)
	forever, err := store.Create(ctx, nil, time.Time{})
	require.NoError(t, err)

	require.NoError(t, store.DeleteExpired(ctx))
	assert.Equal(t, 2, store.Len())

	_, err = store.Read(ctx, live)
	assert.NoError(t, err)
	_, err = store.Read(ctx, forever)
	assert.NoError(t, err)
}

func TestMemoryStore_CleanupLoop(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := session.NewMemoryStore(10 * time.Millisecond)
	t.Cleanup(func() { _ = store.Close() })

	_, err := store.Create(ctx, nil, time.Now().Add(-time.Second))
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		return store.Len() == 0
	}, time.Second, 10*time.Millisecond)
}

func TestMemoryStore_Close(t *testing.T) {
	t.Parallel()

	store := session.NewMemoryStore(time.Millisecond)
	assert.NoError(t, store.Close())
	assert.NoError(t, store.Close())

	assert.NoError(t, session.NewMemoryStore(0).Close())
}

func TestMemoryStore_Concurrency(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := session.NewMemoryStore(0)

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id, err := store.Create(ctx, map[string]any{"i": i}, time.Now().Add(time.Hour))
			if !assert.NoError(t, err) {
				return
			}
			assert.NoError(t, store.Update(ctx, id, map[string]any{"i": i + 1}, time.Time{}))
			got, err := store.Read(ctx, id)
			if assert.NoError(t, err) {
				assert.Equal(t, i+1, got["i"])
			}
			assert.NoError(t, store.Delete(ctx, id))
		}()
	}
	wg.Wait()

	assert.Equal(t, 0, store.Len())
}
