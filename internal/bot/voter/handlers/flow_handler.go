package handlers

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"myvote/internal/bot/messages"
	"myvote/internal/bot/voter"
	"myvote/internal/core/domain"
	"myvote/internal/core/ports"
	"myvote/internal/core/verify"
)

func init() {
	voter.RegisterMessage(NewFlowMessageHandler)
}

// flowMessageHandler is the single message handler. It receives everything
// that is not a command or callback (text, contacts, photos) and advances the
// per-user state machine.
type flowMessageHandler struct {
	log        zerolog.Logger
	store      ports.FlowStore
	flow       *verify.Service
	auth       ports.AuthGateway
	bot        ports.BotClientPort
	translator ports.Translator
}

// NewFlowMessageHandler creates the state machine message handler.
func NewFlowMessageHandler(deps *voter.Deps, baseLogger *zerolog.Logger) ports.MessageHandler {
	return &flowMessageHandler{
		log:        baseLogger.With().Str("component", "flow_handler").Logger(),
		store:      deps.Store,
		flow:       deps.Flow,
		auth:       deps.Auth,
		bot:        deps.Bot,
		translator: deps.Translator,
	}
}

// Handle dispatches on payload kind first (contact, photo), then on the
// current state for plain text.
func (h *flowMessageHandler) Handle(ctx context.Context, update *ports.BotUpdate, flow *domain.FlowSession) error {
	ctxLogger := h.log.With().
		Int64("user_id", update.UserID).
		Str("state", string(flow.State)).
		Logger()
	ctx = ctxLogger.WithContext(ctx)

	if update.Contact != nil {
		return h.handleContact(ctx, update, flow)
	}
	if update.Photo != nil {
		return h.handlePhoto(ctx, update, flow)
	}

	switch flow.State {
	case domain.StateAwaitingOTP:
		return h.handleOTP(ctx, update, flow)
	case domain.StateAwaitingEmail, domain.StateAwaitingCity, domain.StateAwaitingState:
		return h.handleFormField(ctx, update, flow)
	}

	if !flow.Authenticated() {
		return say(ctx, h.bot, h.translator, flow, update.ChatID,
			"Please type /start to sign in\\.")
	}

	return say(ctx, h.bot, h.translator, flow, update.ChatID,
		"I did not understand that\\. Type /start to see what I can do\\.")
}

// handleContact takes the shared phone number and asks the auth provider to
// send an OTP to it.
func (h *flowMessageHandler) handleContact(ctx context.Context, update *ports.BotUpdate, flow *domain.FlowSession) error {
	log := zerolog.Ctx(ctx)

	if flow.Authenticated() {
		text, mode := localize(ctx, h.translator, flow.Language,
			"You are already signed in\\. Use /signout first if you want to switch accounts\\.")
		msg := messages.NewBuilder(update.ChatID).
			WithText(text).
			WithParseMode(mode).
			WithRemoveKeyboard().
			Build()
		_, err := h.bot.SendMessage(ctx, msg)
		return err
	}

	// Telegram must vouch that the contact belongs to the sender.
	if update.Contact.UserID != update.UserID {
		text, mode := localize(ctx, h.translator, flow.Language,
			"Please share *your own* contact using the button below\\.")
		msg := messages.NewBuilder(update.ChatID).
			WithText(text).
			WithParseMode(mode).
			WithContactButton(tr(ctx, h.translator, flow.Language, "Share My Phone Number")).
			Build()
		_, err := h.bot.SendMessage(ctx, msg)
		return err
	}

	phone := strings.TrimSpace(update.Contact.PhoneNumber)
	if !strings.HasPrefix(phone, "+") {
		phone = "+" + phone
	}

	if err := h.auth.SignInWithOTP(ctx, phone); err != nil {
		log.Error().Err(err).Msg("Failed to request OTP")
		text, mode := localize(ctx, h.translator, flow.Language,
			"Could not send the verification code\\. Please try again with /start\\.")
		msg := messages.NewBuilder(update.ChatID).
			WithText(text).
			WithParseMode(mode).
			WithRemoveKeyboard().
			Build()
		_, sendErr := h.bot.SendMessage(ctx, msg)
		return sendErr
	}

	flow.PendingPhone = phone
	flow.State = domain.StateAwaitingOTP
	flow.UpdatedAt = time.Now()
	if err := h.store.Update(ctx, flow); err != nil {
		log.Error().Err(err).Msg("Failed to update flow session")
		return sendError(ctx, h.bot, update.ChatID)
	}

	log.Info().Msg("OTP requested")
	text, mode := localize(ctx, h.translator, flow.Language,
		fmt.Sprintf("📲 I sent a verification code to %s\\.\n\nPlease reply with the code\\.", esc(phone)))
	msg := messages.NewBuilder(update.ChatID).WithText(text).WithParseMode(mode).WithRemoveKeyboard().Build()
	_, err := h.bot.SendMessage(ctx, msg)
	return err
}

// handleOTP exchanges the replied code for a provider session.
func (h *flowMessageHandler) handleOTP(ctx context.Context, update *ports.BotUpdate, flow *domain.FlowSession) error {
	log := zerolog.Ctx(ctx)

	code := strings.TrimSpace(update.Text)
	if code == "" || len(code) > 10 {
		return say(ctx, h.bot, h.translator, flow, update.ChatID,
			"Please reply with the verification code you received\\.")
	}

	session, err := h.auth.VerifyOTP(ctx, flow.PendingPhone, code)
	if err != nil {
		log.Warn().Err(err).Msg("OTP verification failed")
		return say(ctx, h.bot, h.translator, flow, update.ChatID,
			"That code did not work\\. Please check it and try again, or /start over\\.")
	}

	flow.PendingPhone = ""
	flow.State = domain.StateIdle
	flow.UpdatedAt = time.Now()
	if err := h.store.SetSession(ctx, update.UserID, session); err != nil {
		log.Error().Err(err).Msg("Failed to attach session")
		return sendError(ctx, h.bot, update.ChatID)
	}
	if err := h.store.Update(ctx, flow); err != nil {
		log.Error().Err(err).Msg("Failed to update flow session")
		return sendError(ctx, h.bot, update.ChatID)
	}

	log.Info().Str("provider_user_id", session.UserID).Msg("User signed in")

	var text string
	if session.DocumentNumber() != "" {
		text = "✅ Signed in\\! You are already *registered to vote*\\.\n\nUse /votercard for your voting QR code, or /start for the menu\\."
	} else {
		text = "✅ Signed in\\!\n\nUse /verify to verify your identity and register to vote, or /start for the menu\\."
	}
	return say(ctx, h.bot, h.translator, flow, update.ChatID, text)
}

// handlePhoto records the uploaded document photo and offers extraction.
func (h *flowMessageHandler) handlePhoto(ctx context.Context, update *ports.BotUpdate, flow *domain.FlowSession) error {
	log := zerolog.Ctx(ctx)

	if !flow.Authenticated() {
		return say(ctx, h.bot, h.translator, flow, update.ChatID,
			"Please /start and sign in before sending documents\\.")
	}

	if err := h.flow.SelectPhoto(flow, update.Photo.FileID); err != nil {
		if errors.Is(err, verify.ErrBusy) {
			return say(ctx, h.bot, h.translator, flow, update.ChatID,
				"⏳ Still working on the previous request\\. Please wait a moment\\.")
		}
		log.Error().Err(err).Msg("Failed to select photo")
		return sendError(ctx, h.bot, update.ChatID)
	}
	if err := h.store.Update(ctx, flow); err != nil {
		log.Error().Err(err).Msg("Failed to update flow session")
		return sendError(ctx, h.bot, update.ChatID)
	}

	log.Info().Int("file_size", update.Photo.FileSize).Msg("Document photo selected")

	text, mode := localize(ctx, h.translator, flow.Language,
		"📷 Got your Aadhar card photo\\.\n\nReady to read the details off it?")
	msg := messages.NewBuilder(update.ChatID).
		WithText(text).
		WithParseMode(mode).
		WithInlineButtons([][]ports.Button{
			{
				{Text: tr(ctx, h.translator, flow.Language, "🔍 Extract Details"), Data: "verify_submit"},
				{Text: tr(ctx, h.translator, flow.Language, "📷 Retake"), Data: "verify_retake"},
			},
		}).
		Build()
	_, err := h.bot.SendMessage(ctx, msg)
	return err
}

// handleFormField gathers the registration form one field per message.
func (h *flowMessageHandler) handleFormField(ctx context.Context, update *ports.BotUpdate, flow *domain.FlowSession) error {
	log := zerolog.Ctx(ctx)

	value := strings.TrimSpace(update.Text)
	if value == "" {
		return say(ctx, h.bot, h.translator, flow, update.ChatID,
			"Please reply with a value\\.")
	}

	var text string
	switch flow.State {
	case domain.StateAwaitingEmail:
		flow.Draft.Email = value
		flow.State = domain.StateAwaitingCity
		text = "🏙️ And your *city*?"
	case domain.StateAwaitingCity:
		flow.Draft.City = value
		flow.State = domain.StateAwaitingState
		text = "🗺️ And your *state*?"
	case domain.StateAwaitingState:
		flow.Draft.State = value
		flow.State = domain.StateConfirming
	}
	flow.UpdatedAt = time.Now()
	if err := h.store.Update(ctx, flow); err != nil {
		log.Error().Err(err).Msg("Failed to update flow session")
		return sendError(ctx, h.bot, update.ChatID)
	}

	if flow.State != domain.StateConfirming {
		return say(ctx, h.bot, h.translator, flow, update.ChatID, text)
	}

	return h.sendConfirmation(ctx, update.ChatID, flow)
}

// sendConfirmation shows the combined record and the submit button.
func (h *flowMessageHandler) sendConfirmation(ctx context.Context, chatID int64, flow *domain.FlowSession) error {
	id := flow.Extracted

	text := "📋 *Please confirm your registration details:*\n\n"
	text += fmt.Sprintf("*Name:* %s\n", esc(id.Name))
	text += fmt.Sprintf("*Aadhar Number:* %s\n", esc(id.DocumentNumber))
	text += fmt.Sprintf("*Date of Birth:* %s\n", esc(id.DateOfBirth))
	text += fmt.Sprintf("*Gender:* %s\n", esc(id.Gender))
	text += fmt.Sprintf("*Email:* %s\n", esc(flow.Draft.Email))
	text += fmt.Sprintf("*City:* %s\n", esc(flow.Draft.City))
	text += fmt.Sprintf("*State:* %s\n", esc(flow.Draft.State))

	localized, mode := localize(ctx, h.translator, flow.Language, text)
	msg := messages.NewBuilder(chatID).
		WithText(localized).
		WithParseMode(mode).
		WithInlineButtons([][]ports.Button{
			{
				{Text: tr(ctx, h.translator, flow.Language, "✅ Submit Registration"), Data: "verify_register"},
				{Text: tr(ctx, h.translator, flow.Language, "🔄 Start Over"), Data: "verify_retry"},
			},
		}).
		Build()
	_, err := h.bot.SendMessage(ctx, msg)
	return err
}
