package handlers

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"myvote/internal/adapters/translate"
	"myvote/internal/bot/voter"
	"myvote/internal/core/domain"
	"myvote/internal/core/ports"
)

func init() {
	voter.RegisterCommand(NewLanguageCommandHandler)
	voter.RegisterCallback(NewLanguageCallbackHandler)
}

// --- /language command ---

// languageCommandHandler presents the language selector.
type languageCommandHandler struct {
	log zerolog.Logger
	bot ports.BotClientPort
}

// NewLanguageCommandHandler creates the /language command handler.
func NewLanguageCommandHandler(deps *voter.Deps, baseLogger *zerolog.Logger) ports.CommandHandler {
	return &languageCommandHandler{
		log: baseLogger.With().Str("component", "language_command").Logger(),
		bot: deps.Bot,
	}
}

func (h *languageCommandHandler) Command() string {
	return "language"
}

func (h *languageCommandHandler) Handle(ctx context.Context, update *ports.BotUpdate, flow *domain.FlowSession) error {
	var rows [][]ports.Button
	var row []ports.Button
	for i, lang := range translate.SupportedLanguages {
		label := lang.NativeName
		if lang.Code == flow.Language {
			label = "✓ " + label
		}
		row = append(row, ports.Button{Text: label, Data: "lang_" + lang.Code})
		if len(row) == 2 || i == len(translate.SupportedLanguages)-1 {
			rows = append(rows, row)
			row = nil
		}
	}

	return sendPlain(ctx, h.bot, update.ChatID, "🌐 Choose your language:", rows)
}

// --- lang_* callbacks ---

// languageCallbackHandler applies the picked language to the flow session.
type languageCallbackHandler struct {
	log   zerolog.Logger
	store ports.FlowStore
	bot   ports.BotClientPort
}

// NewLanguageCallbackHandler creates the language selection callback handler.
func NewLanguageCallbackHandler(deps *voter.Deps, baseLogger *zerolog.Logger) ports.CallbackHandler {
	return &languageCallbackHandler{
		log:   baseLogger.With().Str("component", "language_callback").Logger(),
		store: deps.Store,
		bot:   deps.Bot,
	}
}

func (h *languageCallbackHandler) Prefix() string {
	return "lang_"
}

func (h *languageCallbackHandler) Handle(ctx context.Context, update *ports.BotUpdate, flow *domain.FlowSession) error {
	data := ""
	if update.CallbackData != nil {
		data = *update.CallbackData
	}
	code := strings.TrimPrefix(data, "lang_")
	if !translate.IsSupported(code) {
		h.log.Warn().Str("code", code).Msg("Unsupported language code")
		return h.bot.AnswerCallbackQuery(ctx, ports.AnswerCallbackParams{
			CallbackQueryID: update.CallbackQueryID,
			Text:            "That language is not available.",
		})
	}

	flow.Language = code
	flow.UpdatedAt = time.Now()
	if err := h.store.Update(ctx, flow); err != nil {
		h.log.Error().Err(err).Msg("Failed to update flow session")
		return err
	}

	h.log.Info().Int64("user_id", update.UserID).Str("language", code).Msg("Language changed")

	var name string
	for _, lang := range translate.SupportedLanguages {
		if lang.Code == code {
			name = lang.NativeName
			break
		}
	}
	return h.bot.AnswerCallbackQuery(ctx, ports.AnswerCallbackParams{
		CallbackQueryID: update.CallbackQueryID,
		Text:            "Language set to " + name,
	})
}
