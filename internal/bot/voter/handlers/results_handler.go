package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"myvote/internal/bot/voter"
	"myvote/internal/content"
	"myvote/internal/core/domain"
	"myvote/internal/core/ports"
)

func init() {
	voter.RegisterCommand(NewResultsCommandHandler)
	voter.RegisterCallback(NewResultsCallbackHandler)
}

// --- /results command ---

// resultsCommandHandler lists the states to pick results for.
type resultsCommandHandler struct {
	log        zerolog.Logger
	translator ports.Translator
	bot        ports.BotClientPort
}

// NewResultsCommandHandler creates the /results command handler.
func NewResultsCommandHandler(deps *voter.Deps, baseLogger *zerolog.Logger) ports.CommandHandler {
	return &resultsCommandHandler{
		log:        baseLogger.With().Str("component", "results_command").Logger(),
		translator: deps.Translator,
		bot:        deps.Bot,
	}
}

func (h *resultsCommandHandler) Command() string {
	return "results"
}

func (h *resultsCommandHandler) Handle(ctx context.Context, update *ports.BotUpdate, flow *domain.FlowSession) error {
	var rows [][]ports.Button
	var row []ports.Button
	states := content.StateResults()
	for i, s := range states {
		row = append(row, ports.Button{Text: s.Name, Data: "results_" + s.Key})
		if len(row) == 2 || i == len(states)-1 {
			rows = append(rows, row)
			row = nil
		}
	}

	title := tr(ctx, h.translator, flow.Language, "Assembly election results. Pick a state:")
	return sendPlain(ctx, h.bot, update.ChatID, "📊 "+title, rows)
}

// --- results_* callbacks ---

// resultsCallbackHandler renders the seat breakdown for one state.
type resultsCallbackHandler struct {
	log        zerolog.Logger
	translator ports.Translator
	bot        ports.BotClientPort
}

// NewResultsCallbackHandler creates the per-state results callback handler.
func NewResultsCallbackHandler(deps *voter.Deps, baseLogger *zerolog.Logger) ports.CallbackHandler {
	return &resultsCallbackHandler{
		log:        baseLogger.With().Str("component", "results_callback").Logger(),
		translator: deps.Translator,
		bot:        deps.Bot,
	}
}

func (h *resultsCallbackHandler) Prefix() string {
	return "results_"
}

func (h *resultsCallbackHandler) Handle(ctx context.Context, update *ports.BotUpdate, flow *domain.FlowSession) error {
	h.bot.AnswerCallbackQuery(ctx, ports.AnswerCallbackParams{
		CallbackQueryID: update.CallbackQueryID,
	})

	data := ""
	if update.CallbackData != nil {
		data = *update.CallbackData
	}
	key := strings.TrimPrefix(data, "results_")
	state, ok := content.ResultForState(key)
	if !ok {
		h.log.Warn().Str("key", key).Msg("Unknown state key")
		return nil
	}

	lang := flow.Language
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📊 %s\n", state.Name))
	sb.WriteString(fmt.Sprintf("%s: %d\n\n", tr(ctx, h.translator, lang, "Total Seats"), state.TotalSeats))

	for _, p := range state.Parties {
		share := float64(p.Seats) / float64(state.TotalSeats) * 100
		sb.WriteString(fmt.Sprintf("%s %s: %d (%.1f%%)\n", h.bar(share), p.Party, p.Seats, share))
	}

	sb.WriteString(fmt.Sprintf("\n%s: %s\n", tr(ctx, h.translator, lang, "Chief Minister"), state.CM))
	sb.WriteString(fmt.Sprintf("%s: %s\n", tr(ctx, h.translator, lang, "Governor"), state.Governor))

	return sendPlain(ctx, h.bot, update.ChatID, sb.String(), nil)
}

// bar gives a coarse visual for the seat share.
func (h *resultsCallbackHandler) bar(share float64) string {
	filled := int(share / 10)
	if filled > 10 {
		filled = 10
	}
	return strings.Repeat("▰", filled) + strings.Repeat("▱", 10-filled)
}
