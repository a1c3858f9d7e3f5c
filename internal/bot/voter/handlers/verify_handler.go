package handlers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"myvote/internal/bot/messages"
	"myvote/internal/bot/voter"
	"myvote/internal/core/domain"
	"myvote/internal/core/ports"
	"myvote/internal/core/verify"
	"myvote/internal/shared/metrics"
)

func init() {
	voter.RegisterCommand(NewVerifyCommandHandler)
	voter.RegisterCallback(NewVerifyCallbackHandler)
}

// --- /verify command ---

// verifyCommandHandler starts (or resumes) the identity verification flow.
type verifyCommandHandler struct {
	log        zerolog.Logger
	store      ports.FlowStore
	flow       *verify.Service
	bot        ports.BotClientPort
	translator ports.Translator
}

// NewVerifyCommandHandler creates the /verify command handler.
func NewVerifyCommandHandler(deps *voter.Deps, baseLogger *zerolog.Logger) ports.CommandHandler {
	return &verifyCommandHandler{
		log:        baseLogger.With().Str("component", "verify_command").Logger(),
		store:      deps.Store,
		flow:       deps.Flow,
		bot:        deps.Bot,
		translator: deps.Translator,
	}
}

func (h *verifyCommandHandler) Command() string {
	return "verify"
}

// Handle opens the verification pipeline. Already-registered users get their
// status instead of a new pipeline.
func (h *verifyCommandHandler) Handle(ctx context.Context, update *ports.BotUpdate, flow *domain.FlowSession) error {
	ctxLogger := h.log.With().Int64("user_id", update.UserID).Logger()
	ctx = ctxLogger.WithContext(ctx)

	if !flow.Authenticated() {
		return say(ctx, h.bot, h.translator, flow, update.ChatID,
			"Please /start and sign in first\\.")
	}

	if flow.State.Terminal() || flow.Session.DocumentNumber() != "" {
		return say(ctx, h.bot, h.translator, flow, update.ChatID,
			"✅ You are already *registered to vote*\\. Use /votercard for your voting QR code\\.")
	}

	if flow.State == domain.StateExtracting || flow.State == domain.StateRegistering {
		return say(ctx, h.bot, h.translator, flow, update.ChatID,
			"⏳ Still working on the previous request\\. Please wait a moment\\.")
	}

	h.flow.Reset(flow)
	if err := h.store.Update(ctx, flow); err != nil {
		ctxLogger.Error().Err(err).Msg("Failed to update flow session")
		return sendError(ctx, h.bot, update.ChatID)
	}

	text := "🪪 *Identity Verification*\n\n"
	text += "Send me a clear photo of your *Aadhar card*\\. I will read the details off it and cross\\-check the phone number against the one you signed in with\\."
	return say(ctx, h.bot, h.translator, flow, update.ChatID, text)
}

// --- verify_* callbacks ---

// verifyCallbackHandler owns every verify_ button: extraction, retry, retake
// and the final registration submission.
type verifyCallbackHandler struct {
	log        zerolog.Logger
	store      ports.FlowStore
	flow       *verify.Service
	auth       ports.AuthGateway
	extractor  ports.DocumentExtractor
	encoder    ports.ImageEncoder
	audit      ports.AuditExporter
	metrics    *metrics.Metrics
	bot        ports.BotClientPort
	translator ports.Translator
}

// NewVerifyCallbackHandler creates the verification callback handler.
func NewVerifyCallbackHandler(deps *voter.Deps, baseLogger *zerolog.Logger) ports.CallbackHandler {
	return &verifyCallbackHandler{
		log:        baseLogger.With().Str("component", "verify_callback").Logger(),
		store:      deps.Store,
		flow:       deps.Flow,
		auth:       deps.Auth,
		extractor:  deps.Extractor,
		encoder:    deps.Encoder,
		audit:      deps.Audit,
		metrics:    deps.Metrics,
		bot:        deps.Bot,
		translator: deps.Translator,
	}
}

func (h *verifyCallbackHandler) Prefix() string {
	return "verify_"
}

func (h *verifyCallbackHandler) Handle(ctx context.Context, update *ports.BotUpdate, flow *domain.FlowSession) error {
	ctxLogger := h.log.With().Int64("user_id", update.UserID).Logger()
	ctx = ctxLogger.WithContext(ctx)

	data := ""
	if update.CallbackData != nil {
		data = *update.CallbackData
	}

	switch data {
	case "verify_submit":
		return h.handleSubmit(ctx, update, flow)
	case "verify_register":
		return h.handleRegister(ctx, update, flow)
	case "verify_retry", "verify_retake":
		return h.handleRetry(ctx, update, flow)
	default:
		ctxLogger.Warn().Str("data", data).Msg("Unknown verify callback")
		return h.answer(ctx, update, "")
	}
}

// handleSubmit runs the extraction pipeline: resolve the photo, encode it,
// call the vision model, then cross-verify the phone.
func (h *verifyCallbackHandler) handleSubmit(ctx context.Context, update *ports.BotUpdate, flow *domain.FlowSession) error {
	log := zerolog.Ctx(ctx)

	if err := h.flow.BeginExtraction(flow); err != nil {
		if errors.Is(err, verify.ErrBusy) {
			return h.answer(ctx, update, "Extraction already in progress...")
		}
		return h.answer(ctx, update, "Please send a photo of your Aadhar card first.")
	}
	h.store.Update(ctx, flow)
	h.answer(ctx, update, "")

	// Retire the buttons so a double-tap has nothing to press.
	h.bot.EditMessageText(ctx, ports.EditMessageParams{
		ChatID:    update.ChatID,
		MessageID: update.MessageID,
		Text:      "🔍 Reading your Aadhar card, this can take a moment...",
	})

	identity, err := h.runExtraction(ctx, flow)
	if err != nil {
		log.Error().Err(err).Msg("Extraction failed")
		h.flow.FailExtraction(flow)
		h.store.Update(ctx, flow)
		return sendPlain(ctx, h.bot, update.ChatID,
			tr(ctx, h.translator, flow.Language, "❌ I could not read the card. Try again, or send a clearer photo."),
			[][]ports.Button{{
				{Text: tr(ctx, h.translator, flow.Language, "🔍 Try Again"), Data: "verify_submit"},
				{Text: tr(ctx, h.translator, flow.Language, "📷 New Photo"), Data: "verify_retake"},
			}})
	}

	// Audit dump is best-effort and must never hold up the user.
	go func(id domain.ExtractedIdentity) {
		if path, err := h.audit.Export(&id); err != nil {
			h.log.Warn().Err(err).Msg("Audit export failed")
		} else {
			h.log.Info().Str("path", path).Msg("Extracted identity exported")
		}
	}(*identity)

	matched := h.flow.CompleteExtraction(flow, identity)
	h.store.Update(ctx, flow)

	if !matched {
		return h.sendMismatch(ctx, update.ChatID, flow, identity)
	}

	log.Info().Msg("Phone cross-verification succeeded")
	text := "✅ *Phone verified\\!* The number on your Aadhar card matches your sign\\-in number\\.\n\n"
	text += h.formatIdentity(identity)
	text += "\nA few more details to finish your registration\\.\n\n📧 What is your *email address*?"
	return say(ctx, h.bot, h.translator, flow, update.ChatID, text)
}

// runExtraction resolves, downloads and encodes the photo and calls the
// extraction model.
func (h *verifyCallbackHandler) runExtraction(ctx context.Context, flow *domain.FlowSession) (*domain.ExtractedIdentity, error) {
	fileURL, err := h.bot.FileURL(ctx, flow.PhotoFileID)
	if err != nil {
		return nil, fmt.Errorf("resolve photo: %w", err)
	}
	encoded, err := h.encoder.EncodeFromURL(ctx, fileURL)
	if err != nil {
		return nil, err
	}
	return h.extractor.Extract(ctx, encoded)
}

// sendMismatch explains the failed cross-verification, naming both numbers so
// the user can see what went wrong.
func (h *verifyCallbackHandler) sendMismatch(ctx context.Context, chatID int64, flow *domain.FlowSession, identity *domain.ExtractedIdentity) error {
	sessionPhone := ""
	if flow.Session != nil {
		sessionPhone = flow.Session.Phone
	}

	var text string
	if !identity.HasPhone() {
		text = fmt.Sprintf(
			"⚠️ *Verification failed\\.*\n\nI could not find a phone number on the card to match against the number you signed in with \\(%s\\)\\.",
			esc(sessionPhone),
		)
	} else {
		text = fmt.Sprintf(
			"⚠️ *Verification failed\\.*\n\nThe phone number on the card \\(%s\\) does not match the number you signed in with \\(%s\\)\\.",
			esc(identity.Phone), esc(sessionPhone),
		)
	}
	text += "\n\nPlease try a clearer photo of *your own* Aadhar card\\."

	localized, mode := localize(ctx, h.translator, flow.Language, text)
	msg := messages.NewBuilder(chatID).
		WithText(localized).
		WithParseMode(mode).
		WithInlineButtons([][]ports.Button{{
			{Text: tr(ctx, h.translator, flow.Language, "📷 Try Another Photo"), Data: "verify_retry"},
		}}).
		Build()
	_, err := h.bot.SendMessage(ctx, msg)
	return err
}

// handleRegister submits the confirmed registration to the registry.
func (h *verifyCallbackHandler) handleRegister(ctx context.Context, update *ports.BotUpdate, flow *domain.FlowSession) error {
	log := zerolog.Ctx(ctx)

	if flow.State == domain.StateRegistering {
		return h.answer(ctx, update, "Submission already in progress...")
	}
	h.answer(ctx, update, "")

	h.bot.EditMessageText(ctx, ports.EditMessageParams{
		ChatID:    update.ChatID,
		MessageID: update.MessageID,
		Text:      "📨 Submitting your registration...",
	})

	already, err := h.flow.Register(ctx, flow)
	h.store.Update(ctx, flow)

	switch {
	case errors.Is(err, verify.ErrNotVerified):
		return sendPlain(ctx, h.bot, update.ChatID,
			tr(ctx, h.translator, flow.Language, "Your identity is not verified yet. Use /verify to start."), nil)

	case err != nil:
		var fieldErr *domain.FieldError
		if errors.As(err, &fieldErr) {
			return h.sendFieldError(ctx, update.ChatID, flow, fieldErr)
		}
		log.Error().Err(err).Msg("Registration submission failed")
		return sendPlain(ctx, h.bot, update.ChatID,
			tr(ctx, h.translator, flow.Language, "❌ Registration failed. Please try again."),
			[][]ports.Button{{
				{Text: tr(ctx, h.translator, flow.Language, "✅ Submit Again"), Data: "verify_register"},
				{Text: tr(ctx, h.translator, flow.Language, "🔄 Start Over"), Data: "verify_retry"},
			}})

	case already:
		log.Info().Msg("Document number already registered")
		return sendPlain(ctx, h.bot, update.ChatID,
			tr(ctx, h.translator, flow.Language, "ℹ️ This Aadhar number is already registered to vote. Use /votercard to get your voting QR code."), nil)
	}

	log.Info().Msg("Registration completed")
	h.metrics.CountRegistration()

	// Durable profile update is best-effort; the registry holds the record.
	token := flow.Session.AccessToken
	docNumber := flow.Extracted.DocumentNumber
	go func() {
		meta := map[string]string{"aadhar_number": docNumber}
		if err := h.auth.UpdateUserMetadata(context.Background(), token, meta); err != nil {
			h.log.Warn().Err(err).Msg("Failed to patch profile metadata")
		}
	}()
	if flow.Session.Metadata == nil {
		flow.Session.Metadata = make(map[string]string)
	}
	flow.Session.Metadata["aadhar_number"] = docNumber
	h.store.Update(ctx, flow)

	return say(ctx, h.bot, h.translator, flow, update.ChatID,
		"🎉 *You are registered to vote\\!*\n\nUse /votercard any time to get your voting QR code\\.")
}

// sendFieldError reopens the form at the offending field.
func (h *verifyCallbackHandler) sendFieldError(ctx context.Context, chatID int64, flow *domain.FlowSession, fieldErr *domain.FieldError) error {
	var prompt string
	switch fieldErr.Field {
	case "email":
		flow.State = domain.StateAwaitingEmail
		prompt = "📧 What is your *email address*?"
	case "city":
		flow.State = domain.StateAwaitingCity
		prompt = "🏙️ What is your *city*?"
	case "state":
		flow.State = domain.StateAwaitingState
		prompt = "🗺️ What is your *state*?"
	default:
		flow.State = domain.StateAwaitingEmail
		prompt = "📧 What is your *email address*?"
	}
	flow.UpdatedAt = time.Now()
	h.store.Update(ctx, flow)

	text := esc(fieldErr.Message) + "\n\n" + prompt
	return say(ctx, h.bot, h.translator, flow, chatID, text)
}

// handleRetry discards the pipeline and asks for a new photo.
func (h *verifyCallbackHandler) handleRetry(ctx context.Context, update *ports.BotUpdate, flow *domain.FlowSession) error {
	if flow.State == domain.StateExtracting || flow.State == domain.StateRegistering {
		return h.answer(ctx, update, "Please wait for the current request to finish.")
	}
	h.answer(ctx, update, "")

	h.flow.Reset(flow)
	h.store.Update(ctx, flow)

	return say(ctx, h.bot, h.translator, flow, update.ChatID,
		"📷 Send me a new, clear photo of your *Aadhar card*\\.")
}

func (h *verifyCallbackHandler) formatIdentity(id *domain.ExtractedIdentity) string {
	text := fmt.Sprintf("*Name:* %s\n", esc(id.Name))
	text += fmt.Sprintf("*Aadhar Number:* %s\n", esc(id.DocumentNumber))
	text += fmt.Sprintf("*Date of Birth:* %s\n", esc(id.DateOfBirth))
	text += fmt.Sprintf("*Gender:* %s\n", esc(id.Gender))
	return text
}

func (h *verifyCallbackHandler) answer(ctx context.Context, update *ports.BotUpdate, text string) error {
	return h.bot.AnswerCallbackQuery(ctx, ports.AnswerCallbackParams{
		CallbackQueryID: update.CallbackQueryID,
		Text:            text,
	})
}
