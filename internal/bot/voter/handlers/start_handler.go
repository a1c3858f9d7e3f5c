package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"myvote/internal/bot/messages"
	"myvote/internal/bot/voter"
	"myvote/internal/core/domain"
	"myvote/internal/core/ports"
)

func init() {
	voter.RegisterCommand(NewStartHandler)
}

// startHandler is the plugin for the /start command.
type startHandler struct {
	log   zerolog.Logger
	store ports.FlowStore
	bot   ports.BotClientPort
}

// NewStartHandler creates a new handler for the /start command.
func NewStartHandler(deps *voter.Deps, baseLogger *zerolog.Logger) ports.CommandHandler {
	return &startHandler{
		log:   baseLogger.With().Str("component", "start_handler").Logger(),
		store: deps.Store,
		bot:   deps.Bot,
	}
}

// Command returns the command string (without the "/").
func (h *startHandler) Command() string {
	return "start"
}

// Handle routes /start by auth state: signed-out users get the phone prompt,
// signed-in users get the dashboard.
func (h *startHandler) Handle(ctx context.Context, update *ports.BotUpdate, flow *domain.FlowSession) error {
	ctxLogger := h.log.With().Int64("user_id", update.UserID).Logger()
	ctx = ctxLogger.WithContext(ctx)

	if !flow.Authenticated() {
		ctxLogger.Info().Msg("Unauthenticated user, prompting for phone number")

		flow.State = domain.StateAwaitingPhone
		flow.UpdatedAt = time.Now()
		if err := h.store.Update(ctx, flow); err != nil {
			ctxLogger.Error().Err(err).Msg("Failed to update flow session")
			return sendError(ctx, h.bot, update.ChatID)
		}

		text := "🗳️ Welcome to *Voter Services*\\!\n\n"
		text += "Sign in with your phone number to check your registration, verify your identity and get your voting QR code\\.\n\n"
		text += "Please share your *Phone Number* by pressing the button below\\."
		msg := messages.NewBuilder(update.ChatID).
			WithText(text).
			WithContactButton("Share My Phone Number").
			Build()
		_, err := h.bot.SendMessage(ctx, msg)
		return err
	}

	return h.sendDashboard(ctx, update.ChatID, flow)
}

// sendDashboard summarizes the signed-in user's status and the available
// commands.
func (h *startHandler) sendDashboard(ctx context.Context, chatID int64, flow *domain.FlowSession) error {
	phone := esc(flow.Session.Phone)

	var status string
	switch {
	case flow.State == domain.StateRegistered:
		status = "✅ You are *registered to vote*\\."
	case flow.State == domain.StateAlreadyRegistered || flow.Session.DocumentNumber() != "":
		status = "✅ You are *registered to vote*\\."
	case flow.State.InVerification():
		status = "⏳ Your identity verification is *in progress*\\. Send a photo of your Aadhar card or use /verify to continue\\."
	default:
		status = "You are not registered yet\\. Use /verify to verify your identity and register\\."
	}

	text := fmt.Sprintf("👋 Welcome back, %s\\!\n\n%s\n\n", phone, status)
	text += "*What I can do:*\n"
	text += "/verify \\- verify identity \\& register\n"
	text += "/votercard \\- your voting QR code\n"
	text += "/elections \\- upcoming elections\n"
	text += "/results \\- results by state\n"
	text += "/faq \\- voter FAQ\n"
	text += "/language \\- choose language\n"
	text += "/signout \\- sign out"

	msg := messages.NewBuilder(chatID).WithText(text).WithRemoveKeyboard().Build()
	_, err := h.bot.SendMessage(ctx, msg)
	return err
}
