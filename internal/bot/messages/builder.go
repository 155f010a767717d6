package messages

import "MyneBooks/internal/core/ports"

// ParseModeHTML is the Telegram HTML parse mode.
const ParseModeHTML = "HTML"

// Builder helps construct SendMessageParams and EditMessageParams.
type Builder struct {
	params ports.SendMessageParams
}

// NewBuilder creates a new message builder. Text is sent as plain text
// unless a parse mode is set.
func NewBuilder(chatID int64) *Builder {
	return &Builder{
		params: ports.SendMessageParams{ChatID: chatID},
	}
}

// WithText sets the message text.
func (b *Builder) WithText(text string) *Builder {
	b.params.Text = text
	return b
}

// WithParseMode sets the parse mode.
func (b *Builder) WithParseMode(mode string) *Builder {
	b.params.ParseMode = mode
	return b
}

// WithHTML is shorthand for WithParseMode(ParseModeHTML).
func (b *Builder) WithHTML() *Builder {
	return b.WithParseMode(ParseModeHTML)
}

// ReplyTo makes the message a reply to messageID.
func (b *Builder) ReplyTo(messageID int) *Builder {
	b.params.ReplyToMessageID = messageID
	return b
}

// WithInlineButtons adds a set of inline buttons. Empty rows are skipped.
func (b *Builder) WithInlineButtons(buttons [][]ports.Button) *Builder {
	var rows [][]ports.Button
	for _, row := range buttons {
		if len(row) > 0 {
			rows = append(rows, row)
		}
	}
	if len(rows) == 0 {
		b.params.ReplyMarkup = nil
		return b
	}
	b.params.ReplyMarkup = &ports.ReplyMarkup{Buttons: rows}
	return b
}

// WithCallbackButtons arranges (text, data) buttons into rows of the given width.
func (b *Builder) WithCallbackButtons(columns int, buttons ...ports.Button) *Builder {
	if columns < 1 {
		columns = 1
	}
	var rows [][]ports.Button
	for start := 0; start < len(buttons); start += columns {
		end := min(start+columns, len(buttons))
		rows = append(rows, buttons[start:end])
	}
	return b.WithInlineButtons(rows)
}

// Build returns the final SendMessageParams struct.
func (b *Builder) Build() ports.SendMessageParams {
	return b.params
}

// BuildEdit returns params that replace messageID with this message.
// ReplyTo has no meaning for edits and is dropped.
func (b *Builder) BuildEdit(messageID int) ports.EditMessageParams {
	return ports.EditMessageParams{
		ChatID:      b.params.ChatID,
		MessageID:   messageID,
		Text:        b.params.Text,
		ParseMode:   b.params.ParseMode,
		ReplyMarkup: b.params.ReplyMarkup,
	}
}

// CallbackButton creates an inline button that sends data back to the bot.
func CallbackButton(text, data string) ports.Button {
	return ports.Button{Text: text, Data: data}
}

// URLButton creates an inline button that opens url.
func URLButton(text, url string) ports.Button {
	return ports.Button{Text: text, URL: url}
}
