package handlers

import (
	"context"
	"strings"

	"myvote/internal/bot/messages"
	"myvote/internal/core/domain"
	"myvote/internal/core/ports"
)

// mdEscaper escapes the characters MarkdownV2 reserves. Dynamic values must
// pass through it before landing in a MarkdownV2 message.
var mdEscaper = strings.NewReplacer(
	"_", "\\_", "*", "\\*", "[", "\\[", "]", "\\]", "(", "\\(", ")", "\\)",
	"~", "\\~", "`", "\\`", ">", "\\>", "#", "\\#", "+", "\\+", "-", "\\-",
	"=", "\\=", "|", "\\|", "{", "\\{", "}", "\\}", ".", "\\.", "!", "\\!",
)

func esc(s string) string {
	return mdEscaper.Replace(s)
}

// tr translates a user-facing string into the flow's language. English and
// failures pass the source through, so it is always safe to call.
func tr(ctx context.Context, translator ports.Translator, language, text string) string {
	if translator == nil || language == "" || language == "en" {
		return text
	}
	return translator.Translate(ctx, text, language)
}

// mdStripper undoes MarkdownV2 authoring (escapes, bold markers) so a
// message can be handed to the translator as plain text.
var mdStripper = strings.NewReplacer("\\", "", "*", "")

// localize returns the text and parse mode for a message in the session's
// language. English sessions keep the MarkdownV2 source; any other language
// gets the stripped text translated and sent plain, since translation does
// not preserve escape sequences.
func localize(ctx context.Context, translator ports.Translator, language, markdown string) (string, string) {
	if translator == nil || language == "" || language == "en" {
		return markdown, "MarkdownV2"
	}
	return translator.Translate(ctx, mdStripper.Replace(markdown), language), ""
}

// say localizes a message into the session's language and sends it without
// buttons.
func say(ctx context.Context, bot ports.BotClientPort, translator ports.Translator, flow *domain.FlowSession, chatID int64, markdown string) error {
	text, mode := localize(ctx, translator, flow.Language, markdown)
	msg := messages.NewBuilder(chatID).WithText(text).WithParseMode(mode).Build()
	_, err := bot.SendMessage(ctx, msg)
	return err
}

// sendError sends a generic plain-text error message.
func sendError(ctx context.Context, bot ports.BotClientPort, chatID int64) error {
	msgParams := messages.NewPlain(chatID).
		WithText("An internal error occurred. Please try again later.").
		Build()
	_, err := bot.SendMessage(ctx, msgParams)
	return err
}

// sendPlain sends a plain-text message, optionally with inline buttons.
func sendPlain(ctx context.Context, bot ports.BotClientPort, chatID int64, text string, buttons [][]ports.Button) error {
	b := messages.NewPlain(chatID).WithText(text)
	if buttons != nil {
		b = b.WithInlineButtons(buttons)
	}
	_, err := bot.SendMessage(ctx, b.Build())
	return err
}
