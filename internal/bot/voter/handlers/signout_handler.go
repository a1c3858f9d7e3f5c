package handlers

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"myvote/internal/bot/messages"
	"myvote/internal/bot/voter"
	"myvote/internal/core/domain"
	"myvote/internal/core/ports"
)

func init() {
	voter.RegisterCommand(NewSignOutHandler)
}

// signOutHandler revokes the provider session and resets the flow.
type signOutHandler struct {
	log   zerolog.Logger
	store ports.FlowStore
	auth  ports.AuthGateway
	bot   ports.BotClientPort
}

// NewSignOutHandler creates the /signout command handler.
func NewSignOutHandler(deps *voter.Deps, baseLogger *zerolog.Logger) ports.CommandHandler {
	return &signOutHandler{
		log:   baseLogger.With().Str("component", "signout_handler").Logger(),
		store: deps.Store,
		auth:  deps.Auth,
		bot:   deps.Bot,
	}
}

func (h *signOutHandler) Command() string {
	return "signout"
}

func (h *signOutHandler) Handle(ctx context.Context, update *ports.BotUpdate, flow *domain.FlowSession) error {
	ctxLogger := h.log.With().Int64("user_id", update.UserID).Logger()
	ctx = ctxLogger.WithContext(ctx)

	if !flow.Authenticated() {
		msg := messages.NewBuilder(update.ChatID).
			WithText("You are not signed in\\. Type /start to begin\\.").
			Build()
		_, err := h.bot.SendMessage(ctx, msg)
		return err
	}

	// Revocation is best-effort; the local session clears regardless.
	if err := h.auth.SignOut(ctx, flow.Session.AccessToken); err != nil {
		ctxLogger.Warn().Err(err).Msg("Provider sign-out failed, clearing local session anyway")
	}

	flow.PendingPhone = ""
	flow.PhotoFileID = ""
	flow.Extracted = nil
	flow.PhoneVerified = false
	flow.Draft = domain.RegistrationDraft{}
	flow.State = domain.StateNone
	flow.UpdatedAt = time.Now()
	if err := h.store.SetSession(ctx, update.UserID, nil); err != nil {
		ctxLogger.Error().Err(err).Msg("Failed to clear session")
		return sendError(ctx, h.bot, update.ChatID)
	}
	if err := h.store.Update(ctx, flow); err != nil {
		ctxLogger.Error().Err(err).Msg("Failed to update flow session")
		return sendError(ctx, h.bot, update.ChatID)
	}

	ctxLogger.Info().Msg("User signed out")

	msg := messages.NewBuilder(update.ChatID).
		WithText("👋 You are signed out\\. Type /start whenever you want to come back\\.").
		WithRemoveKeyboard().
		Build()
	_, err := h.bot.SendMessage(ctx, msg)
	return err
}
