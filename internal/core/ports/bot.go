package ports

import (
	"context"

	"myvote/internal/core/domain"
)

// --- Bot Message Structures ---

// Button represents a single button in a keyboard.
type Button struct {
	Text           string
	Data           string // For callbacks
	URL            string // For URL buttons
	RequestContact bool   // For "share my phone number" reply buttons
}

// ReplyMarkup represents any kind of keyboard markup.
type ReplyMarkup struct {
	Buttons  [][]Button
	IsInline bool // Differentiates between Inline and Reply keyboards
}

// SendMessageParams holds all options for sending a text message.
type SendMessageParams struct {
	ChatID         int64
	Text           string
	ParseMode      string // e.g. "MarkdownV2" or "" for plain text
	ReplyMarkup    *ReplyMarkup
	RemoveKeyboard bool
}

// SendPhotoParams holds the options for sending a photo, either by Telegram
// FileID or by public URL.
type SendPhotoParams struct {
	ChatID    int64
	FileID    string
	URL       string
	Caption   string
	ParseMode string
}

// EditMessageParams holds the options for editing an existing message.
type EditMessageParams struct {
	ChatID      int64
	MessageID   int
	Text        string
	ParseMode   string
	ReplyMarkup *ReplyMarkup
}

// AnswerCallbackParams acknowledges a callback query (stops the spinner).
type AnswerCallbackParams struct {
	CallbackQueryID string
	Text            string
	ShowAlert       bool
}

// --- Bot Client Port (Outbound) ---

// BotClientPort is the interface the core logic uses to talk back to
// Telegram.
type BotClientPort interface {
	SendMessage(ctx context.Context, params SendMessageParams) (int, error)
	SendPhoto(ctx context.Context, params SendPhotoParams) (int, error)
	EditMessageText(ctx context.Context, params EditMessageParams) error
	AnswerCallbackQuery(ctx context.Context, params AnswerCallbackParams) error
	SetMenuCommands(ctx context.Context) error

	// FileURL resolves a Telegram FileID to a downloadable URL. This is the
	// image acquisition step: the user's photo upload stands in for a device
	// image picker.
	FileURL(ctx context.Context, fileID string) (string, error)
}

// --- Bot Handler Ports (Inbound) ---

// ContactInfo is the shared-contact payload of an update.
type ContactInfo struct {
	PhoneNumber string
	UserID      int64
}

// PhotoInfo identifies the best-resolution photo of an update.
type PhotoInfo struct {
	FileID   string
	FileSize int
}

// BotUpdate represents a simplified, generic update.
type BotUpdate struct {
	MessageID       int
	ChatID          int64
	UserID          int64
	Text            string
	Command         string
	CallbackQueryID string
	CallbackData    *string
	Contact         *ContactInfo
	Photo           *PhotoInfo
}

// CommandHandler is the plugin interface for bot commands.
type CommandHandler interface {
	// Command returns the command string without the leading "/".
	Command() string
	Handle(ctx context.Context, update *BotUpdate, flow *domain.FlowSession) error
}

// CallbackHandler is the plugin interface for callback queries.
type CallbackHandler interface {
	// Prefix returns the callback-data prefix this handler owns.
	Prefix() string
	Handle(ctx context.Context, update *BotUpdate, flow *domain.FlowSession) error
}

// MessageHandler handles everything that is not a command or callback
// (text, contacts, photos). It drives the per-user state machine.
type MessageHandler interface {
	Handle(ctx context.Context, update *BotUpdate, flow *domain.FlowSession) error
}
