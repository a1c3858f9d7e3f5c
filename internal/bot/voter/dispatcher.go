package voter

import (
	"context"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
)

// updateDispatcher fans updates out to a fixed pool of workers, one queue per
// worker, sharded by the sending user. A user's updates always land on the
// same worker, so handlers never mutate the same flow session concurrently
// and a user's updates are handled in arrival order. Different users still
// run in parallel across the pool.
type updateDispatcher struct {
	queues []chan tgbotapi.Update
	log    zerolog.Logger
}

func newUpdateDispatcher(workers, queueSize int, log zerolog.Logger) *updateDispatcher {
	if workers < 1 {
		workers = 1
	}
	queues := make([]chan tgbotapi.Update, workers)
	for i := range queues {
		queues[i] = make(chan tgbotapi.Update, queueSize)
	}
	return &updateDispatcher{queues: queues, log: log}
}

// shard picks the worker queue for an update. Updates without a sender (no
// user, no chat) all collapse onto shard 0, which is fine for their volume.
func (d *updateDispatcher) shard(update *tgbotapi.Update) int {
	var key int64
	if from := update.SentFrom(); from != nil {
		key = from.ID
	} else if chat := update.FromChat(); chat != nil {
		key = chat.ID
	}
	return int(uint64(key) % uint64(len(d.queues)))
}

// Dispatch blocks until the update's shard queue accepts it.
func (d *updateDispatcher) Dispatch(update tgbotapi.Update) {
	d.queues[d.shard(&update)] <- update
}

// TryDispatch enqueues without blocking and reports whether the update was
// accepted. A full shard queue drops the update.
func (d *updateDispatcher) TryDispatch(update tgbotapi.Update) bool {
	select {
	case d.queues[d.shard(&update)] <- update:
		return true
	default:
		return false
	}
}

// Close closes all shard queues; workers drain and exit.
func (d *updateDispatcher) Close() {
	for _, q := range d.queues {
		close(q)
	}
}

// Run starts one worker goroutine per shard queue.
func (d *updateDispatcher) Run(ctx context.Context, wg *sync.WaitGroup, handle func(context.Context, *tgbotapi.Update)) {
	for i, queue := range d.queues {
		wg.Add(1)
		go func(id int, jobs <-chan tgbotapi.Update) {
			defer wg.Done()
			log := d.log.With().Int("worker_id", id).Logger()
			log.Info().Msg("Starting update worker")
			for {
				select {
				case <-ctx.Done():
					log.Info().Msg("Stopping update worker (context done)")
					return
				case job, ok := <-jobs:
					if !ok {
						log.Info().Msg("Stopping update worker (channel closed)")
						return
					}
					// The worker owns its own context; a shutdown must not
					// cancel an update already being handled.
					handle(context.Background(), &job)
				}
			}
		}(i+1, queue)
	}
}
