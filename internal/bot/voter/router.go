package voter

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"myvote/internal/bot/messages"
	"myvote/internal/core/ports"
	"myvote/internal/shared/metrics"
)

// Router is the bot facade. It holds all handler plugins and routes incoming
// updates to the correct one, attaching the user's flow session on the way.
type Router struct {
	log              zerolog.Logger
	store            ports.FlowStore
	botClient        ports.BotClientPort
	metrics          *metrics.Metrics
	commandHandlers  map[string]ports.CommandHandler
	callbackHandlers map[string]ports.CallbackHandler
	messageHandler   ports.MessageHandler
}

// NewRouter creates a new bot facade/router.
func NewRouter(
	store ports.FlowStore,
	botClient ports.BotClientPort,
	m *metrics.Metrics,
	baseLogger *zerolog.Logger,
) *Router {
	return &Router{
		log:              baseLogger.With().Str("component", "voter_router").Logger(),
		store:            store,
		botClient:        botClient,
		metrics:          m,
		commandHandlers:  make(map[string]ports.CommandHandler),
		callbackHandlers: make(map[string]ports.CallbackHandler),
	}
}

// RegisterCommandHandler adds a command plugin to the router.
func (r *Router) RegisterCommandHandler(handler ports.CommandHandler) {
	cmd := handler.Command()
	r.commandHandlers[cmd] = handler
	r.log.Info().Str("command", cmd).Msg("Registered new command handler")
}

// RegisterCallbackHandler adds a callback plugin to the router.
func (r *Router) RegisterCallbackHandler(handler ports.CallbackHandler) {
	prefix := handler.Prefix()
	r.callbackHandlers[prefix] = handler
	r.log.Info().Str("prefix", prefix).Msg("Registered new callback handler")
}

// SetMessageHandler registers the single, global message handler.
func (r *Router) SetMessageHandler(handler ports.MessageHandler) {
	r.messageHandler = handler
}

// HandleUpdate is the main entry point for a new update from Telegram.
// Commands route first, then callbacks by prefix; anything else (text,
// contact, photo) goes to the message handler, which drives the state
// machine.
func (r *Router) HandleUpdate(ctx context.Context, update *tgbotapi.Update) {
	botUpdate, isSupported := r.parseUpdate(update)
	if !isSupported {
		r.log.Warn().Interface("update", update).Msg("Received unsupported update type")
		return
	}

	ctxLogger := r.log.With().
		Int64("user_id", botUpdate.UserID).
		Int64("chat_id", botUpdate.ChatID).
		Logger()
	ctx = ctxLogger.WithContext(ctx)

	// Every update binds to a flow session; first contact creates one.
	flow, err := r.store.GetOrCreate(ctx, botUpdate.UserID, botUpdate.ChatID)
	if err != nil {
		ctxLogger.Error().Err(err).Msg("Failed to get flow session for handling")
		r.botClient.SendMessage(ctx, ports.SendMessageParams{
			ChatID: botUpdate.ChatID,
			Text:   "An internal error occurred.",
		})
		return
	}

	if botUpdate.Command != "" {
		r.metrics.CountUpdate("command")
		if handler, ok := r.commandHandlers[botUpdate.Command]; ok {
			ctxLogger.Info().Str("handler", botUpdate.Command).Msg("Routing to command handler")
			if err := handler.Handle(ctx, botUpdate, flow); err != nil {
				ctxLogger.Error().Err(err).Msg("Command handler failed")
			}
			return
		}
		msg := messages.NewBuilder(botUpdate.ChatID).
			WithText("Unknown command\\. Type /start to see what I can do\\.").
			Build()
		r.botClient.SendMessage(ctx, msg)
		return
	}

	if botUpdate.CallbackData != nil {
		r.metrics.CountUpdate("callback")
		for prefix, handler := range r.callbackHandlers {
			if strings.HasPrefix(*botUpdate.CallbackData, prefix) {
				ctxLogger.Info().Str("handler", prefix).Str("data", *botUpdate.CallbackData).Msg("Routing to callback handler")
				if err := handler.Handle(ctx, botUpdate, flow); err != nil {
					ctxLogger.Error().Err(err).Msg("Callback handler failed")
				}
				return
			}
		}
		ctxLogger.Warn().Str("data", *botUpdate.CallbackData).Msg("No callback handler found")
		return
	}

	if r.messageHandler != nil {
		r.metrics.CountUpdate("message")
		log := ctxLogger.With().Str("state", string(flow.State)).Logger()
		if botUpdate.Contact != nil {
			log.Info().Msg("Routing contact message to message handler")
		} else if botUpdate.Photo != nil {
			log.Info().Msg("Routing photo message to message handler")
		} else {
			log.Info().Msg("Routing text message to message handler")
		}

		if err := r.messageHandler.Handle(ctx, botUpdate, flow); err != nil {
			ctxLogger.Error().Err(err).Msg("Message handler failed")
		}
		return
	}

	ctxLogger.Info().Str("text", botUpdate.Text).Msg("Received unhandled message (no handler)")
}

// parseUpdate converts a tgbotapi.Update into our internal, simplified struct.
func (r *Router) parseUpdate(update *tgbotapi.Update) (*ports.BotUpdate, bool) {
	if update.CallbackQuery != nil {
		cb := update.CallbackQuery
		// The originating message can be absent (too old, or inaccessible).
		if cb.Message == nil {
			return nil, false
		}
		return &ports.BotUpdate{
			MessageID:       cb.Message.MessageID,
			ChatID:          cb.Message.Chat.ID,
			UserID:          cb.From.ID,
			CallbackQueryID: cb.ID,
			CallbackData:    &cb.Data,
		}, true
	}

	if update.Message != nil {
		msg := update.Message

		var contactInfo *ports.ContactInfo
		if msg.Contact != nil {
			contactInfo = &ports.ContactInfo{
				PhoneNumber: msg.Contact.PhoneNumber,
				UserID:      msg.Contact.UserID,
			}
		}

		var photoInfo *ports.PhotoInfo
		if len(msg.Photo) > 0 {
			bestPhoto := msg.Photo[len(msg.Photo)-1]
			photoInfo = &ports.PhotoInfo{
				FileID:   bestPhoto.FileID,
				FileSize: bestPhoto.FileSize,
			}
		}

		return &ports.BotUpdate{
			MessageID: msg.MessageID,
			ChatID:    msg.Chat.ID,
			UserID:    msg.From.ID,
			Text:      msg.Text,
			Command:   msg.Command(),
			Contact:   contactInfo,
			Photo:     photoInfo,
		}, true
	}

	return nil, false // Unsupported update
}
