package handlers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"myvote/internal/bot/voter"
	"myvote/internal/content"
	"myvote/internal/core/domain"
	"myvote/internal/core/ports"
)

func init() {
	voter.RegisterCommand(NewElectionsHandler)
}

// electionsHandler renders the upcoming elections calendar.
type electionsHandler struct {
	log        zerolog.Logger
	translator ports.Translator
	bot        ports.BotClientPort
}

// NewElectionsHandler creates the /elections command handler.
func NewElectionsHandler(deps *voter.Deps, baseLogger *zerolog.Logger) ports.CommandHandler {
	return &electionsHandler{
		log:        baseLogger.With().Str("component", "elections_handler").Logger(),
		translator: deps.Translator,
		bot:        deps.Bot,
	}
}

func (h *electionsHandler) Command() string {
	return "elections"
}

func (h *electionsHandler) Handle(ctx context.Context, update *ports.BotUpdate, flow *domain.FlowSession) error {
	lang := flow.Language

	var sb strings.Builder
	sb.WriteString("🗓️ " + tr(ctx, h.translator, lang, "Upcoming Elections") + "\n")

	for _, e := range content.UpcomingElections() {
		sb.WriteString("\n")
		sb.WriteString(h.icon(e.Type) + " " + tr(ctx, h.translator, lang, e.Title) + "\n")
		sb.WriteString(tr(ctx, h.translator, lang, e.Description) + "\n")
		sb.WriteString(fmt.Sprintf("📅 %s, %s\n", h.formatDate(e.Date), e.Time))
		sb.WriteString(fmt.Sprintf("📍 %s\n", tr(ctx, h.translator, lang, e.Location)))
		sb.WriteString(fmt.Sprintf("👥 %s: %d | %s: %d | %s: %s\n",
			tr(ctx, h.translator, lang, "Candidates"), e.Candidates,
			tr(ctx, h.translator, lang, "Constituencies"), e.Constituencies,
			tr(ctx, h.translator, lang, "Eligible Voters"), e.EligibleVoters,
		))
		if e.Status == content.StatusRegistration {
			sb.WriteString("📝 " + tr(ctx, h.translator, lang, "Registration Phase") + "\n")
		}
	}

	return sendPlain(ctx, h.bot, update.ChatID, sb.String(), nil)
}

func (h *electionsHandler) formatDate(date string) string {
	parsed, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return parsed.Format("Monday, January 2, 2006")
}

func (h *electionsHandler) icon(electionType string) string {
	switch electionType {
	case "General":
		return "🏛️"
	case "State":
		return "🏢"
	case "Local":
		return "🏘️"
	case "Rural":
		return "🌾"
	default:
		return "🗳️"
	}
}
