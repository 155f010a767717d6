package dispatch

import (
	"MyneBooks/internal/core/ports"
)

// Context carries everything a handler needs for one invocation.
// It is built fresh for every matched handler and has no mutators;
// handlers change bot-visible state through Client().
type Context struct {
	client     ports.BotClientPort
	lang       ports.Translator
	message    *ports.Message
	callback   *ports.Callback
	request    string
	locale     string
	me         ports.BotIdentity
	updateID   int
	dispatchID string
}

// ContextParams holds the fields of a new Context.
type ContextParams struct {
	Client     ports.BotClientPort
	Translator ports.Translator
	Message    *ports.Message
	Callback   *ports.Callback
	Request    string
	Locale     string
	Me         ports.BotIdentity
	UpdateID   int
	DispatchID string
}

// NewContext builds a Context. Exactly one of Message and Callback must be set.
func NewContext(p ContextParams) *Context {
	if (p.Message == nil) == (p.Callback == nil) {
		panic("dispatch: context needs exactly one of message or callback")
	}
	return &Context{
		client:     p.Client,
		lang:       p.Translator,
		message:    p.Message,
		callback:   p.Callback,
		request:    p.Request,
		locale:     p.Locale,
		me:         p.Me,
		updateID:   p.UpdateID,
		dispatchID: p.DispatchID,
	}
}

// Client returns the shared transport handle.
func (c *Context) Client() ports.BotClientPort { return c.client }

// Message returns the triggering message, or nil for callbacks.
func (c *Context) Message() *ports.Message { return c.message }

// Callback returns the triggering callback query, or nil for messages.
func (c *Context) Callback() *ports.Callback { return c.callback }

// Chat returns the chat the event originated from.
func (c *Context) Chat() ports.Chat {
	if c.message != nil {
		return c.message.Chat
	}
	return c.callback.Chat
}

// Request returns the text the pattern was matched against.
func (c *Context) Request() string { return c.request }

// Locale returns the resolved locale of the originating chat.
func (c *Context) Locale() string { return c.locale }

// Me returns the bot's own identity.
func (c *Context) Me() ports.BotIdentity { return c.me }

// UpdateID returns the transport's update ID.
func (c *Context) UpdateID() int { return c.updateID }

// DispatchID identifies the dispatch cycle in logs.
func (c *Context) DispatchID() string { return c.dispatchID }

// Text renders a localized string in the chat's locale.
func (c *Context) Text(key string, subs map[string]string) string {
	return c.lang.Text(c.locale, key, subs)
}
