package messages

import "myvote/internal/core/ports"

// Builder helps construct SendMessageParams. Messages default to MarkdownV2;
// text that is not authored here (translated strings, provider errors) goes
// through NewPlain instead, so stray formatting characters cannot break the
// send.
type Builder struct {
	params ports.SendMessageParams
}

// NewBuilder creates a new message builder with the MarkdownV2 parse mode.
func NewBuilder(chatID int64) *Builder {
	return &Builder{
		params: ports.SendMessageParams{
			ChatID:    chatID,
			ParseMode: "MarkdownV2",
		},
	}
}

// NewPlain creates a message builder with no parse mode.
func NewPlain(chatID int64) *Builder {
	return &Builder{
		params: ports.SendMessageParams{ChatID: chatID},
	}
}

// WithText sets the message text.
func (b *Builder) WithText(text string) *Builder {
	b.params.Text = text
	return b
}

// WithParseMode overrides the parse mode.
func (b *Builder) WithParseMode(mode string) *Builder {
	b.params.ParseMode = mode
	return b
}

// WithRemoveKeyboard adds a flag to remove the reply keyboard.
func (b *Builder) WithRemoveKeyboard() *Builder {
	b.params.RemoveKeyboard = true
	b.params.ReplyMarkup = nil // Ensure no other markup is set
	return b
}

// WithContactButton adds a "Share Contact" reply keyboard.
func (b *Builder) WithContactButton(text string) *Builder {
	b.params.RemoveKeyboard = false
	b.params.ReplyMarkup = &ports.ReplyMarkup{
		IsInline: false,
		Buttons: [][]ports.Button{
			{
				{Text: text, RequestContact: true},
			},
		},
	}
	return b
}

// WithInlineButtons adds a set of inline buttons.
func (b *Builder) WithInlineButtons(buttons [][]ports.Button) *Builder {
	b.params.RemoveKeyboard = false
	b.params.ReplyMarkup = &ports.ReplyMarkup{
		IsInline: true,
		Buttons:  buttons,
	}
	return b
}

// Build returns the final SendMessageParams struct.
func (b *Builder) Build() ports.SendMessageParams {
	return b.params
}

// PhotoBuilder helps construct SendPhotoParams. The photo is identified by
// either a Telegram file ID or a public URL.
type PhotoBuilder struct {
	params ports.SendPhotoParams
}

// NewPhoto creates a new photo builder with the MarkdownV2 caption parse
// mode.
func NewPhoto(chatID int64) *PhotoBuilder {
	return &PhotoBuilder{
		params: ports.SendPhotoParams{
			ChatID:    chatID,
			ParseMode: "MarkdownV2",
		},
	}
}

// WithFileID identifies the photo by a Telegram file ID.
func (b *PhotoBuilder) WithFileID(fileID string) *PhotoBuilder {
	b.params.FileID = fileID
	return b
}

// WithURL identifies the photo by a public URL.
func (b *PhotoBuilder) WithURL(url string) *PhotoBuilder {
	b.params.URL = url
	return b
}

// WithCaption sets the photo caption.
func (b *PhotoBuilder) WithCaption(caption string) *PhotoBuilder {
	b.params.Caption = caption
	return b
}

// WithParseMode overrides the caption parse mode.
func (b *PhotoBuilder) WithParseMode(mode string) *PhotoBuilder {
	b.params.ParseMode = mode
	return b
}

// Build returns the final SendPhotoParams struct.
func (b *PhotoBuilder) Build() ports.SendPhotoParams {
	return b.params
}
