package ports

import (
	"context"
	"strings"
)

// --- Bot Message Structures ---

// Button represents a single button in a keyboard.
type Button struct {
	Text string
	Data string // For callbacks
	URL  string // For URL buttons
}

// ReplyMarkup represents an inline keyboard.
type ReplyMarkup struct {
	Buttons [][]Button
}

// SendMessageParams holds all possible options for sending a message.
type SendMessageParams struct {
	ChatID           int64
	Text             string
	ParseMode        string // e.g., "MarkdownV2" or "HTML"
	ReplyToMessageID int
	ReplyMarkup      *ReplyMarkup
}

// EditMessageParams holds the options for editing a message's text.
type EditMessageParams struct {
	ChatID      int64
	MessageID   int
	Text        string
	ParseMode   string
	ReplyMarkup *ReplyMarkup
}

// AnswerCallbackParams holds the options for answering a callback query.
type AnswerCallbackParams struct {
	CallbackQueryID string
	Text            string
	ShowAlert       bool
}

// BotCommand is one entry of the bot's command menu.
type BotCommand struct {
	Command     string
	Description string
}

// --- Bot Client Port (Outbound) ---

// BotClientPort defines the interface for *sending* messages.
// Handlers reach the transport only through it.
type BotClientPort interface {
	SendMessage(ctx context.Context, params SendMessageParams) (int, error)
	EditMessageText(ctx context.Context, params EditMessageParams) error
	AnswerCallbackQuery(ctx context.Context, params AnswerCallbackParams) error
	SetMenuCommands(ctx context.Context, commands []BotCommand) error
}

// --- Inbound Update Structures ---

// ChatType mirrors the Telegram chat types.
type ChatType string

const (
	ChatTypePrivate    ChatType = "private"
	ChatTypeGroup      ChatType = "group"
	ChatTypeSupergroup ChatType = "supergroup"
	ChatTypeChannel    ChatType = "channel"
)

// Chat is the chat an update originated from.
type Chat struct {
	ID    int64
	Type  ChatType
	Title string
}

// IsChannel reports whether the chat is a broadcast channel.
func (c Chat) IsChannel() bool { return c.Type == ChatTypeChannel }

// IsGroup reports whether the chat is a group or supergroup.
func (c Chat) IsGroup() bool {
	return c.Type == ChatTypeGroup || c.Type == ChatTypeSupergroup
}

// User is the sender of an update.
type User struct {
	ID           int64
	UserName     string
	FirstName    string
	LastName     string
	LanguageCode string // Client-reported, may be empty
	IsBot        bool
}

// FullName joins the first and last name.
func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// Message is a new inbound message.
type Message struct {
	ID       int
	Chat     Chat
	From     *User // Nil for anonymous channel posts
	Text     string
	Outgoing bool // Sent by the bot itself
}

// Callback is an inline-keyboard button press.
type Callback struct {
	ID        string
	Chat      Chat
	From      *User
	MessageID int    // Message carrying the keyboard
	Data      []byte // Raw payload, not yet validated as UTF-8
}

// Update is a transport-neutral inbound event.
// Exactly one of Message and Callback is set for a dispatchable update.
type Update struct {
	ID       int
	Message  *Message
	Callback *Callback
}

// BotIdentity is the bot's own account, used for self-referential templating.
type BotIdentity struct {
	ID        int64
	UserName  string // May be empty for accounts without one
	FirstName string
}
