package session_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sealcookie/pkg/cookie"
	"github.com/dmitrymomot/sealcookie/pkg/session"
)

// recordingStore wraps a MemoryStore and remembers the last expiry it saw.
type recordingStore struct {
	*session.MemoryStore
	lastExpires time.Time
	failRead    error
}

func (r *recordingStore) Create(ctx context.Context, data map[string]any, expires time.Time) (string, error) {
	r.lastExpires = expires
	return r.MemoryStore.Create(ctx, data, expires)
}

func (r *recordingStore) Update(ctx context.Context, id string, data map[string]any, expires time.Time) error {
	r.lastExpires = expires
	return r.MemoryStore.Update(ctx, id, data, expires)
}

func (r *recordingStore) Read(ctx context.Context, id string) (map[string]any, error) {
	if r.failRead != nil {
		return nil, r.failRead
	}
	return r.MemoryStore.Read(ctx, id)
}

func TestIDStorage_Lifecycle(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := session.NewMemoryStore(0)
	t.Cleanup(func() { _ = store.Close() })
	storage := session.NewIDStorage(newSessionCookie(t), store, storageOptions()...)

	s, err := storage.GetSession(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, s.ID())

	s.Set("uid", 42)
	setCookie, err := storage.CommitSession(ctx, s)
	require.NoError(t, err)

	_, err = uuid.Parse(s.ID())
	require.NoError(t, err, "commit assigns a uuid")
	assert.Equal(t, 1, store.Len())

	// The cookie carries the id, not the data.
	value, err := newSessionCookie(t).Parse(requestHeader(setCookie))
	require.NoError(t, err)
	assert.Equal(t, s.ID(), value)

	loaded, err := storage.GetSession(ctx, requestHeader(setCookie))
	require.NoError(t, err)
	assert.Equal(t, s.ID(), loaded.ID())
	uid, _ := loaded.GetInt("uid")
	assert.Equal(t, 42, uid)

	// Committing a loaded session updates the same entry.
	loaded.Set("uid", 43)
	_, err = storage.CommitSession(ctx, loaded)
	require.NoError(t, err)
	assert.Equal(t, 1, store.Len())

	data, err := store.Read(ctx, s.ID())
	require.NoError(t, err)
	assert.Equal(t, 43, data["uid"])

	destroyCookie, err := storage.DestroySession(ctx, loaded)
	require.NoError(t, err)
	assert.Contains(t, destroyCookie, "Max-Age=0")
	assert.Empty(t, loaded.ID())
	assert.Equal(t, 0, store.Len())

	fresh, err := storage.GetSession(ctx, requestHeader(setCookie))
	require.NoError(t, err)
	assert.Empty(t, fresh.ID(), "destroyed ids start a new session")
	assert.Empty(t, fresh.Data())
}

func TestIDStorage_ExpiryFollowsCookie(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	now := time.Now()
	clock := func() time.Time { return now }

	store := &recordingStore{MemoryStore: session.NewMemoryStore(0)}
	c := newSessionCookie(t, cookie.WithMaxAge(3600), cookie.WithClock(clock))
	storage := session.NewIDStorage(c, store, storageOptions()...)

	s := session.New("", nil)
	_, err := storage.CommitSession(ctx, s)
	require.NoError(t, err)
	assert.Equal(t, now.Add(time.Hour), store.lastExpires)

	_, err = storage.CommitSession(ctx, s, cookie.WithMaxAge(60))
	require.NoError(t, err)
	assert.Equal(t, now.Add(time.Minute), store.lastExpires)

	fixed := now.Add(48 * time.Hour)
	_, err = storage.CommitSession(ctx, s, cookie.WithMaxAge(0), cookie.WithExpires(fixed))
	require.NoError(t, err)
	assert.Equal(t, fixed, store.lastExpires)
}

func TestIDStorage_NoExpiry(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := &recordingStore{MemoryStore: session.NewMemoryStore(0)}
	storage := session.NewIDStorage(newSessionCookie(t), store, storageOptions()...)

	_, err := storage.CommitSession(ctx, session.New("", nil))
	require.NoError(t, err)
	assert.True(t, store.lastExpires.IsZero())
}

func TestIDStorage_UnknownOrTamperedID(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := session.NewMemoryStore(0)
	storage := session.NewIDStorage(newSessionCookie(t, cookie.WithStrictVerification(true)), store, storageOptions()...)

	forged, err := newSessionCookie(t, cookie.WithSecrets("attacker")).Serialize("victim-id")
	require.NoError(t, err)
	unknown, err := newSessionCookie(t).Serialize(uuid.NewString())
	require.NoError(t, err)

	for _, header := range []string{requestHeader(forged), requestHeader(unknown), "__session=%%%"} {
		s, err := storage.GetSession(ctx, header)
		require.NoError(t, err)
		assert.Empty(t, s.ID(), "header %q", header)
	}
}

func TestIDStorage_StoreFailure(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	boom := errors.New("backend down")
	store := &recordingStore{MemoryStore: session.NewMemoryStore(0), failRead: boom}
	c := newSessionCookie(t)
	storage := session.NewIDStorage(c, store, storageOptions()...)

	setCookie, err := c.Serialize("some-id")
	require.NoError(t, err)

	_, err = storage.GetSession(ctx, requestHeader(setCookie))
	require.ErrorIs(t, err, boom)
}

func TestIDStorage_DestroyUnsaved(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	storage := session.NewIDStorage(newSessionCookie(t), session.NewMemoryStore(0), storageOptions()...)

	setCookie, err := storage.DestroySession(ctx, session.New("", nil))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(setCookie, "__session=;"))

	_, err = storage.CommitSession(ctx, nil)
	require.ErrorIs(t, err, session.ErrNilSession)
}
