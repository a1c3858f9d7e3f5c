package voter

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func messageUpdate(userID int64, seq int) tgbotapi.Update {
	return tgbotapi.Update{
		UpdateID: seq,
		Message: &tgbotapi.Message{
			MessageID: seq,
			From:      &tgbotapi.User{ID: userID},
			Chat:      &tgbotapi.Chat{ID: userID},
			Text:      "x",
		},
	}
}

func TestDispatcher_ShardIsStablePerUser(t *testing.T) {
	nop := zerolog.Nop()
	d := newUpdateDispatcher(4, 10, nop)

	first := messageUpdate(42, 1)
	shard := d.shard(&first)
	for seq := 2; seq < 20; seq++ {
		u := messageUpdate(42, seq)
		assert.Equal(t, shard, d.shard(&u))
	}

	// Callback queries from the same user land on the same shard as their
	// messages.
	cb := tgbotapi.Update{CallbackQuery: &tgbotapi.CallbackQuery{
		ID:   "cb",
		From: &tgbotapi.User{ID: 42},
	}}
	assert.Equal(t, shard, d.shard(&cb))

	empty := tgbotapi.Update{}
	assert.Equal(t, 0, d.shard(&empty))
}

// Two updates from the same user must never be handled concurrently, even
// with a pool of workers. Handlers mutate the user's flow session without
// holding a lock, so the dispatcher is what keeps that safe.
func TestDispatcher_SerializesUpdatesOfOneUser(t *testing.T) {
	nop := zerolog.Nop()
	d := newUpdateDispatcher(4, 64, nop)

	const perUser = 20
	users := []int64{7, 8, 9, 10}

	type userState struct {
		inFlight int32
		overlaps int32
		order    []int
		mu       sync.Mutex
	}
	states := map[int64]*userState{}
	for _, id := range users {
		states[id] = &userState{}
	}

	var processed sync.WaitGroup
	processed.Add(perUser * len(users))

	handle := func(_ context.Context, update *tgbotapi.Update) {
		defer processed.Done()
		st := states[update.Message.From.ID]
		if atomic.AddInt32(&st.inFlight, 1) > 1 {
			atomic.AddInt32(&st.overlaps, 1)
		}
		time.Sleep(time.Millisecond)
		st.mu.Lock()
		st.order = append(st.order, update.Message.MessageID)
		st.mu.Unlock()
		atomic.AddInt32(&st.inFlight, -1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	var wg sync.WaitGroup
	d.Run(ctx, &wg, handle)

	// Interleave users the way a busy update feed would.
	for seq := 0; seq < perUser; seq++ {
		for _, id := range users {
			d.Dispatch(messageUpdate(id, seq))
		}
	}

	waitDone := make(chan struct{})
	go func() { processed.Wait(); close(waitDone) }()
	select {
	case <-waitDone:
	case <-time.After(5 * time.Second):
		t.Fatal("updates were not processed in time")
	}

	for _, id := range users {
		st := states[id]
		assert.Zero(t, atomic.LoadInt32(&st.overlaps), "user %d handled concurrently", id)
		require.Len(t, st.order, perUser)
		for seq := 0; seq < perUser; seq++ {
			assert.Equal(t, seq, st.order[seq], "user %d updates out of order", id)
		}
	}

	d.Close()
	wg.Wait()
}

func TestDispatcher_TryDispatchDropsWhenShardFull(t *testing.T) {
	nop := zerolog.Nop()
	// No workers running, queue capacity one.
	d := newUpdateDispatcher(1, 1, nop)

	assert.True(t, d.TryDispatch(messageUpdate(7, 1)))
	assert.False(t, d.TryDispatch(messageUpdate(7, 2)))
}
