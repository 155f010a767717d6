package telegram

import (
	"MyneBooks/internal/core/ports"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// ConvertUpdate turns a tgbotapi update into a transport-neutral one.
// It reports false for update types the bot does not react to
// (edits, inline queries, polls, member changes...).
func ConvertUpdate(update tgbotapi.Update, botID int64) (ports.Update, bool) {
	out := ports.Update{ID: update.UpdateID}

	switch {
	case update.Message != nil:
		out.Message = convertMessage(update.Message, botID)
	case update.ChannelPost != nil:
		out.Message = convertMessage(update.ChannelPost, botID)
	case update.CallbackQuery != nil:
		out.Callback = convertCallback(update.CallbackQuery)
	default:
		return ports.Update{}, false
	}
	return out, true
}

func convertMessage(msg *tgbotapi.Message, botID int64) *ports.Message {
	text := msg.Text
	if text == "" {
		text = msg.Caption
	}

	out := &ports.Message{
		ID:   msg.MessageID,
		Chat: convertChat(msg.Chat),
		Text: text,
	}
	if msg.From != nil {
		out.From = convertUser(msg.From)
		out.Outgoing = msg.From.ID == botID
	}
	return out
}

func convertCallback(cb *tgbotapi.CallbackQuery) *ports.Callback {
	out := &ports.Callback{
		ID:   cb.ID,
		Data: []byte(cb.Data),
	}
	if cb.From != nil {
		out.From = convertUser(cb.From)
	}

	if cb.Message != nil {
		out.Chat = convertChat(cb.Message.Chat)
		out.MessageID = cb.Message.MessageID
	} else if cb.From != nil {
		// Inline-mode messages carry no chat; the private chat is the sender's
		out.Chat = ports.Chat{ID: cb.From.ID, Type: ports.ChatTypePrivate}
	}
	return out
}

func convertChat(chat *tgbotapi.Chat) ports.Chat {
	if chat == nil {
		return ports.Chat{}
	}
	return ports.Chat{
		ID:    chat.ID,
		Type:  ports.ChatType(chat.Type),
		Title: chat.Title,
	}
}

func convertUser(u *tgbotapi.User) *ports.User {
	return &ports.User{
		ID:           u.ID,
		UserName:     u.UserName,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		LanguageCode: u.LanguageCode,
		IsBot:        u.IsBot,
	}
}
