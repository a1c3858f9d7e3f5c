package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"myvote/internal/adapters/audit"
	"myvote/internal/adapters/authgw"
	"myvote/internal/adapters/gemini"
	"myvote/internal/adapters/imaging"
	"myvote/internal/adapters/registry"
	"myvote/internal/adapters/session"
	"myvote/internal/adapters/telegram"
	"myvote/internal/adapters/translate"
	"myvote/internal/bot/voter"
	_ "myvote/internal/bot/voter/handlers" // handler self-registration
	"myvote/internal/core/domain"
	"myvote/internal/core/verify"
	"myvote/internal/shared/config"
	"myvote/internal/shared/logger"
	"myvote/internal/shared/metrics"
)

func main() {
	// 1. Load Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("FATAL: Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// 2. Initialize Logger
	isDevMode := cfg.AppEnv == "dev"
	baseLogger := logger.New(isDevMode)
	baseLogger.Info().
		Str("app_env", cfg.AppEnv).
		Str("bot_mode", cfg.Bot.Connection.Mode).
		Msg("Configuration loaded")

	// 3. Metrics
	m := metrics.New()

	// 4. Telegram API client
	api, err := tgbotapi.NewBotAPI(cfg.Bot.Token)
	if err != nil {
		baseLogger.Fatal().Err(err).Msg("Failed to initialize Telegram API")
	}
	baseLogger.Info().Str("bot_username", api.Self.UserName).Msg("Authorized on Telegram")

	// 5. Outbound adapters
	botClient := telegram.NewClient(api, &baseLogger)
	authClient := authgw.NewClient(cfg.Auth, m, &baseLogger)
	extractor := gemini.NewClient(cfg.Extraction, m, &baseLogger)
	encoder := imaging.NewEncoder(nil, &baseLogger)
	registryClient := registry.NewClient(cfg.Registry, m, &baseLogger)
	translator := translate.NewClient(cfg.Translate, m, &baseLogger)
	auditExporter := audit.NewExporter(cfg.AuditDir, &baseLogger)

	// 6. Store and core services
	store := session.NewMemoryStore(&baseLogger)
	flowService := verify.NewService(registryClient, &baseLogger)

	// Auth-state audit trail: every sign-in and sign-out leaves a log line.
	store.Subscribe(func(telegramID int64, sess *domain.Session) {
		if sess == nil {
			baseLogger.Info().Int64("telegram_id", telegramID).Msg("Session cleared")
			return
		}
		baseLogger.Info().
			Int64("telegram_id", telegramID).
			Str("provider_user_id", sess.UserID).
			Msg("Session attached")
	})

	// 7. Router and handlers
	router := voter.NewRouter(store, botClient, m, &baseLogger)
	deps := &voter.Deps{
		Cfg:        cfg,
		Store:      store,
		Flow:       flowService,
		Auth:       authClient,
		Extractor:  extractor,
		Encoder:    encoder,
		Registry:   registryClient,
		Translator: translator,
		Audit:      auditExporter,
		Metrics:    m,
		Bot:        botClient,
	}
	voter.RegisterAllHandlers(deps, router, &baseLogger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := botClient.SetMenuCommands(ctx); err != nil {
		baseLogger.Warn().Err(err).Msg("Failed to set menu commands (continuing anyway)")
	}

	baseLogger.Info().Msg("All services initialized successfully")

	// 8. Run the bot server and the ops server until a signal arrives.
	botServer := voter.NewBotServer(api, router, &cfg.Bot, &baseLogger)
	opsServer := newOpsServer(cfg.OpsAddr)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return botServer.Start(gctx)
	})
	g.Go(func() error {
		baseLogger.Info().Str("addr", cfg.OpsAddr).Msg("Starting ops HTTP server")
		if err := opsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		return opsServer.Shutdown(context.Background())
	})

	if err := g.Wait(); err != nil {
		baseLogger.Fatal().Err(err).Msg("Server exited with error")
	}
	baseLogger.Info().Msg("Shutdown complete")
}

// newOpsServer builds the operational HTTP surface: liveness and Prometheus
// metrics.
func newOpsServer(addr string) *http.Server {
	mux := chi.NewRouter()
	mux.Use(middleware.Recoverer)
	mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	mux.Handle("/metrics", promhttp.Handler())
	return &http.Server{Addr: addr, Handler: mux}
}
