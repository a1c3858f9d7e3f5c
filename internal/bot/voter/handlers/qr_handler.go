package handlers

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"myvote/internal/bot/messages"
	"myvote/internal/bot/voter"
	"myvote/internal/core/domain"
	"myvote/internal/core/ports"
)

func init() {
	voter.RegisterCommand(NewQRHandler)
}

// QR codes are short-lived on purpose; this matches the issuing window the
// registry grants.
const qrExpirationMinutes = 30

// qrHandler issues the time-limited voting QR for registered users.
type qrHandler struct {
	log      zerolog.Logger
	registry ports.RegistryClient
	bot      ports.BotClientPort
}

// NewQRHandler creates the /votercard command handler.
func NewQRHandler(deps *voter.Deps, baseLogger *zerolog.Logger) ports.CommandHandler {
	return &qrHandler{
		log:      baseLogger.With().Str("component", "qr_handler").Logger(),
		registry: deps.Registry,
		bot:      deps.Bot,
	}
}

func (h *qrHandler) Command() string {
	return "votercard"
}

func (h *qrHandler) Handle(ctx context.Context, update *ports.BotUpdate, flow *domain.FlowSession) error {
	ctxLogger := h.log.With().Int64("user_id", update.UserID).Logger()
	ctx = ctxLogger.WithContext(ctx)

	if !flow.Authenticated() {
		msg := messages.NewBuilder(update.ChatID).
			WithText("Please /start and sign in first\\.").
			Build()
		_, err := h.bot.SendMessage(ctx, msg)
		return err
	}

	docNumber := h.documentNumber(flow)
	if docNumber == "" {
		msg := messages.NewBuilder(update.ChatID).
			WithText("You need to *register to vote* before I can issue a voting QR code\\. Use /verify to get started\\.").
			Build()
		_, err := h.bot.SendMessage(ctx, msg)
		return err
	}

	qr, err := h.registry.GenerateVotingQR(ctx, docNumber, qrExpirationMinutes)
	if err != nil {
		ctxLogger.Error().Err(err).Msg("Failed to generate voting QR")
		msg := messages.NewBuilder(update.ChatID).
			WithText("❌ Could not generate your voting QR code right now\\. Please try again later\\.").
			Build()
		_, sendErr := h.bot.SendMessage(ctx, msg)
		return sendErr
	}

	caption := fmt.Sprintf(
		"🗳️ Your voting QR code\\.\n\nValid for *%d minutes*, until %s\\.\n\nShow it at the polling station together with your photo ID\\.",
		qr.ExpirationMinutes,
		esc(qr.ExpiresAt.Format("15:04")),
	)
	_, err = h.bot.SendPhoto(ctx, messages.NewPhoto(update.ChatID).
		WithURL(qr.QRCodeURL).
		WithCaption(caption).
		Build())
	if err != nil {
		ctxLogger.Error().Err(err).Msg("Failed to send QR photo")
		return sendError(ctx, h.bot, update.ChatID)
	}
	return nil
}

// documentNumber prefers the durable profile metadata, falling back to the
// just-completed flow for users who registered this session.
func (h *qrHandler) documentNumber(flow *domain.FlowSession) string {
	if doc := flow.Session.DocumentNumber(); doc != "" {
		return doc
	}
	if flow.State.Terminal() && flow.Extracted != nil {
		return flow.Extracted.DocumentNumber
	}
	return ""
}
