package handlers

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"myvote/internal/bot/voter"
	"myvote/internal/content"
	"myvote/internal/core/domain"
	"myvote/internal/core/ports"
)

func init() {
	voter.RegisterCommand(NewFAQCommandHandler)
	voter.RegisterCallback(NewFAQCallbackHandler)
}

// --- /faq command ---

// faqCommandHandler lists the FAQ categories as buttons.
type faqCommandHandler struct {
	log        zerolog.Logger
	translator ports.Translator
	bot        ports.BotClientPort
}

// NewFAQCommandHandler creates the /faq command handler.
func NewFAQCommandHandler(deps *voter.Deps, baseLogger *zerolog.Logger) ports.CommandHandler {
	return &faqCommandHandler{
		log:        baseLogger.With().Str("component", "faq_command").Logger(),
		translator: deps.Translator,
		bot:        deps.Bot,
	}
}

func (h *faqCommandHandler) Command() string {
	return "faq"
}

func (h *faqCommandHandler) Handle(ctx context.Context, update *ports.BotUpdate, flow *domain.FlowSession) error {
	var rows [][]ports.Button
	for i, category := range content.FAQ() {
		name := tr(ctx, h.translator, flow.Language, category.Name)
		rows = append(rows, []ports.Button{
			{Text: name, Data: "faq_" + strconv.Itoa(i)},
		})
	}

	title := tr(ctx, h.translator, flow.Language, "Frequently Asked Questions. Pick a topic:")
	return sendPlain(ctx, h.bot, update.ChatID, "❓ "+title, rows)
}

// --- faq_* callbacks ---

// faqCallbackHandler renders one FAQ category.
type faqCallbackHandler struct {
	log        zerolog.Logger
	translator ports.Translator
	bot        ports.BotClientPort
}

// NewFAQCallbackHandler creates the FAQ category callback handler.
func NewFAQCallbackHandler(deps *voter.Deps, baseLogger *zerolog.Logger) ports.CallbackHandler {
	return &faqCallbackHandler{
		log:        baseLogger.With().Str("component", "faq_callback").Logger(),
		translator: deps.Translator,
		bot:        deps.Bot,
	}
}

func (h *faqCallbackHandler) Prefix() string {
	return "faq_"
}

func (h *faqCallbackHandler) Handle(ctx context.Context, update *ports.BotUpdate, flow *domain.FlowSession) error {
	h.bot.AnswerCallbackQuery(ctx, ports.AnswerCallbackParams{
		CallbackQueryID: update.CallbackQueryID,
	})

	data := ""
	if update.CallbackData != nil {
		data = *update.CallbackData
	}
	idx, err := strconv.Atoi(strings.TrimPrefix(data, "faq_"))
	categories := content.FAQ()
	if err != nil || idx < 0 || idx >= len(categories) {
		h.log.Warn().Str("data", data).Msg("Unknown FAQ category")
		return nil
	}

	category := categories[idx]
	var sb strings.Builder
	sb.WriteString("📖 " + tr(ctx, h.translator, flow.Language, category.Name) + "\n")
	for _, qa := range category.Questions {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("❓ %s\n", tr(ctx, h.translator, flow.Language, qa.Question)))
		sb.WriteString(fmt.Sprintf("💬 %s\n", tr(ctx, h.translator, flow.Language, qa.Answer)))
	}

	return sendPlain(ctx, h.bot, update.ChatID, sb.String(), nil)
}
