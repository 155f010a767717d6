package plugins

import (
	"MyneBooks/internal/bot/dispatch"
	"MyneBooks/internal/bot/messages"
	"MyneBooks/internal/core/ports"
	"context"
)

// About shows what the bot is. The command is described but kept out of
// the menu; users reach it through the start page.
func About() dispatch.Bundle {
	return dispatch.NewBundle("about").
		SetEnabled(true).
		Append(dispatch.KindMessage, dispatch.HandlerFunc(aboutMessage), "about$",
			dispatch.AsCommand(),
			dispatch.WithDescription("See about the bot"),
		).
		Append(dispatch.KindCallback, dispatch.HandlerFunc(aboutCallback), "^about$").
		Build()
}

func aboutMessage(ctx context.Context, c *dispatch.Context) error {
	msg := c.Message()
	params := aboutPage(c, msg.Chat.ID).ReplyTo(msg.ID).Build()
	_, err := c.Client().SendMessage(ctx, params)
	return err
}

func aboutCallback(ctx context.Context, c *dispatch.Context) error {
	answer(ctx, c)
	cb := c.Callback()
	return c.Client().EditMessageText(ctx, aboutPage(c, cb.Chat.ID).BuildEdit(cb.MessageID))
}

func aboutPage(c *dispatch.Context, chatID int64) *messages.Builder {
	text := c.Text("texts.about", map[string]string{"bot_name": c.Me().FirstName})
	return messages.NewBuilder(chatID).
		WithText(text).
		WithHTML().
		WithInlineButtons([][]ports.Button{
			{messages.CallbackButton(c.Text("buttons.back", nil), "start")},
		})
}
