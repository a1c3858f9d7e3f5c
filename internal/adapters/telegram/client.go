package telegram

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"myvote/internal/core/ports"
)

// tgClient implements the BotClientPort.
type tgClient struct {
	api *tgbotapi.BotAPI
	log zerolog.Logger
}

// NewClient creates a new Telegram client adapter.
func NewClient(api *tgbotapi.BotAPI, baseLogger *zerolog.Logger) ports.BotClientPort {
	log := baseLogger.With().Str("component", "tg_client").Logger()
	return &tgClient{api: api, log: log}
}

// SendMessage translates our params into a tgbotapi message and returns the
// sent message's ID.
func (c *tgClient) SendMessage(ctx context.Context, params ports.SendMessageParams) (int, error) {
	msg := tgbotapi.NewMessage(params.ChatID, params.Text)
	msg.ParseMode = params.ParseMode

	if params.RemoveKeyboard {
		msg.ReplyMarkup = tgbotapi.ReplyKeyboardRemove{RemoveKeyboard: true}
	} else if params.ReplyMarkup != nil {
		if params.ReplyMarkup.IsInline {
			msg.ReplyMarkup = c.buildInlineKeyboard(params.ReplyMarkup.Buttons)
		} else {
			msg.ReplyMarkup = c.buildReplyKeyboard(params.ReplyMarkup.Buttons)
		}
	}

	sent, err := c.api.Send(msg)
	if err != nil {
		c.log.Error().Err(err).Int64("chat_id", params.ChatID).Msg("Failed to send message")
		return 0, err
	}
	return sent.MessageID, nil
}

// SendPhoto sends a photo by FileID or public URL.
func (c *tgClient) SendPhoto(ctx context.Context, params ports.SendPhotoParams) (int, error) {
	var file tgbotapi.RequestFileData
	switch {
	case params.FileID != "":
		file = tgbotapi.FileID(params.FileID)
	case params.URL != "":
		file = tgbotapi.FileURL(params.URL)
	default:
		return 0, fmt.Errorf("send photo: neither file ID nor URL provided")
	}

	msg := tgbotapi.NewPhoto(params.ChatID, file)
	msg.Caption = params.Caption
	msg.ParseMode = params.ParseMode

	sent, err := c.api.Send(msg)
	if err != nil {
		c.log.Error().Err(err).Int64("chat_id", params.ChatID).Msg("Failed to send photo")
		return 0, err
	}
	return sent.MessageID, nil
}

// EditMessageText edits an existing message (usually to retire inline
// keyboards).
func (c *tgClient) EditMessageText(ctx context.Context, params ports.EditMessageParams) error {
	msg := tgbotapi.NewEditMessageText(params.ChatID, params.MessageID, params.Text)
	msg.ParseMode = params.ParseMode

	if params.ReplyMarkup != nil && params.ReplyMarkup.IsInline {
		inlineMarkup := c.buildInlineKeyboard(params.ReplyMarkup.Buttons)
		msg.ReplyMarkup = &inlineMarkup
	}

	if _, err := c.api.Send(msg); err != nil {
		c.log.Error().Err(err).
			Int64("chat_id", params.ChatID).
			Int("message_id", params.MessageID).
			Msg("Failed to edit message text")
		return err
	}
	return nil
}

// AnswerCallbackQuery acknowledges a callback query (stops the spinner).
func (c *tgClient) AnswerCallbackQuery(ctx context.Context, params ports.AnswerCallbackParams) error {
	callbackConfig := tgbotapi.NewCallback(params.CallbackQueryID, params.Text)
	callbackConfig.ShowAlert = params.ShowAlert

	if _, err := c.api.Request(callbackConfig); err != nil {
		c.log.Error().Err(err).
			Str("callback_query_id", params.CallbackQueryID).
			Msg("Failed to answer callback query")
		return err
	}
	return nil
}

// SetMenuCommands installs the bot's /menu commands.
func (c *tgClient) SetMenuCommands(ctx context.Context) error {
	commands := []tgbotapi.BotCommand{
		{Command: "start", Description: "Sign in and see your status"},
		{Command: "verify", Description: "Verify your identity and register to vote"},
		{Command: "votercard", Description: "Show your voting QR code"},
		{Command: "elections", Description: "Upcoming elections"},
		{Command: "results", Description: "Election results by state"},
		{Command: "faq", Description: "Frequently asked questions"},
		{Command: "language", Description: "Choose your language"},
		{Command: "signout", Description: "Sign out"},
	}

	config := tgbotapi.NewSetMyCommands(commands...)
	if _, err := c.api.Request(config); err != nil {
		c.log.Error().Err(err).Msg("Failed to set menu commands")
		return err
	}
	return nil
}

// FileURL resolves a Telegram FileID to a direct download URL.
func (c *tgClient) FileURL(ctx context.Context, fileID string) (string, error) {
	url, err := c.api.GetFileDirectURL(fileID)
	if err != nil {
		c.log.Error().Err(err).Str("file_id", fileID).Msg("Failed to resolve file URL")
		return "", err
	}
	return url, nil
}

// buildInlineKeyboard is a helper to create the inline keyboard.
func (c *tgClient) buildInlineKeyboard(buttons [][]ports.Button) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, buttonRow := range buttons {
		var row []tgbotapi.InlineKeyboardButton
		for _, btn := range buttonRow {
			if btn.URL != "" {
				row = append(row, tgbotapi.NewInlineKeyboardButtonURL(btn.Text, btn.URL))
			} else {
				row = append(row, tgbotapi.NewInlineKeyboardButtonData(btn.Text, btn.Data))
			}
		}
		rows = append(rows, row)
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildReplyKeyboard is a helper to create the reply (non-inline) keyboard.
func (c *tgClient) buildReplyKeyboard(buttons [][]ports.Button) tgbotapi.ReplyKeyboardMarkup {
	var rows [][]tgbotapi.KeyboardButton
	for _, buttonRow := range buttons {
		var row []tgbotapi.KeyboardButton
		for _, btn := range buttonRow {
			if btn.RequestContact {
				row = append(row, tgbotapi.NewKeyboardButtonContact(btn.Text))
			} else {
				row = append(row, tgbotapi.NewKeyboardButton(btn.Text))
			}
		}
		rows = append(rows, row)
	}

	markup := tgbotapi.NewReplyKeyboard(rows...)
	markup.ResizeKeyboard = true
	markup.OneTimeKeyboard = true
	return markup
}
