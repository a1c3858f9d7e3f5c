package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"myvote/internal/core/domain"
)

func newTestStore() *MemoryStore {
	nop := zerolog.Nop()
	return NewMemoryStore(&nop)
}

func TestGetOrCreate(t *testing.T) {
	store := newTestStore()
	ctx := context.Background()

	missing, err := store.Get(ctx, 42)
	require.NoError(t, err)
	assert.Nil(t, missing)

	created, err := store.GetOrCreate(ctx, 42, 42)
	require.NoError(t, err)
	assert.Equal(t, domain.StateNone, created.State)
	assert.Equal(t, "en", created.Language)

	again, err := store.GetOrCreate(ctx, 42, 42)
	require.NoError(t, err)
	assert.Same(t, created, again)
}

func TestSetSessionNotifiesSubscribers(t *testing.T) {
	store := newTestStore()
	ctx := context.Background()
	_, err := store.GetOrCreate(ctx, 42, 42)
	require.NoError(t, err)

	var mu sync.Mutex
	var gotID int64
	var gotSession *domain.Session
	done := make(chan struct{})

	id := store.Subscribe(func(telegramID int64, sess *domain.Session) {
		mu.Lock()
		defer mu.Unlock()
		gotID = telegramID
		gotSession = sess
		close(done)
	})
	defer store.Unsubscribe(id)

	sess := &domain.Session{AccessToken: "tok", Phone: "+919876543210"}
	require.NoError(t, store.SetSession(ctx, 42, sess))

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("listener was not notified")
	}

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, int64(42), gotID)
	assert.Equal(t, sess, gotSession)

	flow, err := store.Get(ctx, 42)
	require.NoError(t, err)
	assert.True(t, flow.Authenticated())
}

func TestUnsubscribedListenerNotNotified(t *testing.T) {
	store := newTestStore()
	ctx := context.Background()
	_, err := store.GetOrCreate(ctx, 7, 7)
	require.NoError(t, err)

	notified := make(chan struct{}, 1)
	id := store.Subscribe(func(int64, *domain.Session) {
		notified <- struct{}{}
	})
	store.Unsubscribe(id)

	require.NoError(t, store.SetSession(ctx, 7, nil))

	select {
	case <-notified:
		t.Fatal("unsubscribed listener was notified")
	case <-time.After(50 * time.Millisecond):
	}
}
