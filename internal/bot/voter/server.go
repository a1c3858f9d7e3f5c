package voter

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"myvote/internal/shared/config"
)

// updateQueueSize is the capacity of each worker's shard queue.
const updateQueueSize = 100

// BotServer is responsible for running the bot (polling or webhook).
type BotServer struct {
	api    *tgbotapi.BotAPI
	router *Router
	cfg    *config.BotConfig
	log    zerolog.Logger
}

// NewBotServer creates a new server instance.
func NewBotServer(
	api *tgbotapi.BotAPI,
	router *Router,
	cfg *config.BotConfig,
	baseLogger *zerolog.Logger,
) *BotServer {
	return &BotServer{
		api:    api,
		router: router,
		cfg:    cfg,
		log:    baseLogger.With().Str("component", "bot_server").Logger(),
	}
}

// Start begins the bot server based on the config mode. It blocks until the
// context is cancelled.
func (s *BotServer) Start(ctx context.Context) error {
	s.log.Info().Str("mode", s.cfg.Connection.Mode).Msg("Starting bot server...")

	switch s.cfg.Connection.Mode {
	case "polling":
		return s.startPolling(ctx)
	case "webhook":
		return s.startWebhook(ctx)
	default:
		return fmt.Errorf("unknown bot mode: %s", s.cfg.Connection.Mode)
	}
}

// startWorkers starts the sharded worker pool shared by both modes. Updates
// are keyed by sender, so two updates from one user never run concurrently.
func (s *BotServer) startWorkers(ctx context.Context, wg *sync.WaitGroup) *updateDispatcher {
	d := newUpdateDispatcher(s.cfg.Connection.WorkerPoolSize, updateQueueSize, s.router.log)
	d.Run(ctx, wg, s.router.HandleUpdate)
	return d
}

// startPolling starts the bot in long polling mode with a worker pool.
func (s *BotServer) startPolling(ctx context.Context) error {
	s.log.Info().Int("workers", s.cfg.Connection.WorkerPoolSize).Msg("Starting bot in POLLING mode")

	// Clear any existing webhook, otherwise polling gets nothing.
	deleteWebhookConfig := tgbotapi.DeleteWebhookConfig{
		DropPendingUpdates: false,
	}
	if _, err := s.api.Request(deleteWebhookConfig); err != nil {
		s.log.Warn().Err(err).Msg("Failed to delete webhook (continuing anyway)")
	} else {
		s.log.Info().Msg("Webhook deleted successfully")
	}

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := s.api.GetUpdatesChan(u)

	var wg sync.WaitGroup
	dispatcher := s.startWorkers(ctx, &wg)

	s.log.Info().Msg("Polling update listener started")

	for {
		select {
		case <-ctx.Done():
			dispatcher.Close()
			s.api.StopReceivingUpdates()
			wg.Wait()
			s.log.Info().Msg("Polling stopped gracefully")
			return nil
		case update := <-updates:
			dispatcher.Dispatch(update)
		}
	}
}

// startWebhook starts the bot in webhook mode. TLS termination is left to a
// reverse proxy in front of the listen address.
func (s *BotServer) startWebhook(ctx context.Context) error {
	s.log.Info().
		Str("addr", s.cfg.Connection.ListenAddr).
		Int("workers", s.cfg.Connection.WorkerPoolSize).
		Msg("Starting bot in WEBHOOK mode")

	webhookPath := "/webhook/" + s.api.Token
	webhookURL := s.cfg.Connection.WebhookURL + webhookPath
	s.log.Info().Str("url", s.cfg.Connection.WebhookURL+"/webhook/***").Msg("Setting webhook...")

	wh, err := tgbotapi.NewWebhook(webhookURL)
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to create webhook config")
		return err
	}
	if _, err := s.api.Request(wh); err != nil {
		s.log.Error().Err(err).Msg("Failed to set webhook")
		return err
	}

	info, err := s.api.GetWebhookInfo()
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to get webhook info")
		return err
	}
	if info.LastErrorDate != 0 {
		s.log.Error().
			Str("error_message", info.LastErrorMessage).
			Msg("Telegram webhook has a last error")
	} else {
		s.log.Info().Msg("Webhook set successfully, no last error")
	}

	var wg sync.WaitGroup
	dispatcher := s.startWorkers(ctx, &wg)

	mux := chi.NewRouter()
	mux.Use(middleware.Recoverer)
	mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	mux.Post(webhookPath, func(w http.ResponseWriter, r *http.Request) {
		update, err := s.api.HandleUpdate(r)
		if err != nil {
			s.log.Warn().Err(err).Msg("Failed to parse webhook update")
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if !dispatcher.TryDispatch(*update) {
			// Telegram retries on its own; dropping beats blocking the pool.
			s.log.Warn().Msg("Update queue full, dropping webhook update")
		}
		w.WriteHeader(http.StatusOK)
	})

	httpServer := &http.Server{Addr: s.cfg.Connection.ListenAddr, Handler: mux}
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.log.Error().Err(err).Msg("Webhook HTTP server failed")
		}
	}()

	s.log.Info().Msg("Webhook update listener started")

	<-ctx.Done()
	dispatcher.Close()

	s.log.Info().Msg("Shutting down HTTP server...")
	if err := httpServer.Shutdown(context.Background()); err != nil {
		s.log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	wg.Wait()
	s.log.Info().Msg("Webhook server stopped gracefully")
	return nil
}
