package plugins

import (
	"MyneBooks/internal/bot/dispatch"
	"MyneBooks/internal/bot/messages"
	"MyneBooks/internal/core/ports"
	"context"
)

// Start greets the user and offers the About page.
func Start() dispatch.Bundle {
	return dispatch.NewBundle("start").
		SetEnabled(true).
		Append(dispatch.KindMessage, dispatch.HandlerFunc(startMessage), "start$",
			dispatch.AsCommand(),
			dispatch.WithDescription("Start the bot"),
			dispatch.Visible(),
		).
		Append(dispatch.KindCallback, dispatch.HandlerFunc(startCallback), "^start$").
		Build()
}

func startMessage(ctx context.Context, c *dispatch.Context) error {
	msg := c.Message()
	params := startPage(c, msg.Chat.ID).Build()
	_, err := c.Client().SendMessage(ctx, params)
	return err
}

// startCallback turns the message holding the keyboard back into the start page.
func startCallback(ctx context.Context, c *dispatch.Context) error {
	answer(ctx, c)
	cb := c.Callback()
	return c.Client().EditMessageText(ctx, startPage(c, cb.Chat.ID).BuildEdit(cb.MessageID))
}

func startPage(c *dispatch.Context, chatID int64) *messages.Builder {
	text := c.Text("texts.start", map[string]string{"bot_username": c.Me().UserName})
	return messages.NewBuilder(chatID).
		WithText(text).
		WithInlineButtons([][]ports.Button{
			{messages.CallbackButton(c.Text("buttons.about", nil), "about")},
		})
}
