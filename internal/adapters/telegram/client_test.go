package telegram

import (
	"MyneBooks/internal/core/ports"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path"
	"sync"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBotAPI records the form of every Bot API call it receives.
type fakeBotAPI struct {
	mu    sync.Mutex
	calls map[string]url.Values
}

func (f *fakeBotAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	method := path.Base(r.URL.Path)

	f.mu.Lock()
	f.calls[method] = r.PostForm
	f.mu.Unlock()

	var result string
	switch method {
	case "getMe":
		result = `{"id":999,"is_bot":true,"first_name":"MyneBooks","username":"mynebot"}`
	case "sendMessage", "editMessageText":
		result = `{"message_id":42,"date":0,"chat":{"id":500,"type":"private"}}`
	default:
		result = `true`
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"ok":true,"result":` + result + `}`))
}

func (f *fakeBotAPI) form(method string) url.Values {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[method]
}

func newTestClient(t *testing.T) (ports.BotClientPort, *fakeBotAPI) {
	t.Helper()
	fake := &fakeBotAPI{calls: make(map[string]url.Values)}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	api, err := tgbotapi.NewBotAPIWithClient("123:abc", srv.URL+"/bot%s/%s", srv.Client())
	require.NoError(t, err)
	require.Equal(t, "mynebot", api.Self.UserName)

	nopLogger := zerolog.Nop()
	return NewClient(api, &nopLogger), fake
}

func TestClient_SendMessage(t *testing.T) {
	client, fake := newTestClient(t)

	id, err := client.SendMessage(context.Background(), ports.SendMessageParams{
		ChatID:           500,
		Text:             "<b>hi</b>",
		ParseMode:        "HTML",
		ReplyToMessageID: 7,
		ReplyMarkup: &ports.ReplyMarkup{Buttons: [][]ports.Button{
			{{Text: "About", Data: "about"}, {Text: "Site", URL: "https://example.com"}},
		}},
	})
	require.NoError(t, err)
	assert.Equal(t, 42, id)

	form := fake.form("sendMessage")
	assert.Equal(t, "500", form.Get("chat_id"))
	assert.Equal(t, "<b>hi</b>", form.Get("text"))
	assert.Equal(t, "HTML", form.Get("parse_mode"))
	assert.Equal(t, "7", form.Get("reply_to_message_id"))

	var markup tgbotapi.InlineKeyboardMarkup
	require.NoError(t, json.Unmarshal([]byte(form.Get("reply_markup")), &markup))
	require.Len(t, markup.InlineKeyboard, 1)
	require.Len(t, markup.InlineKeyboard[0], 2)
	assert.Equal(t, "about", *markup.InlineKeyboard[0][0].CallbackData)
	assert.Equal(t, "https://example.com", *markup.InlineKeyboard[0][1].URL)
}

func TestClient_SendMessage_NoMarkup(t *testing.T) {
	client, fake := newTestClient(t)

	_, err := client.SendMessage(context.Background(), ports.SendMessageParams{ChatID: 500, Text: "plain"})
	require.NoError(t, err)

	form := fake.form("sendMessage")
	assert.Empty(t, form.Get("parse_mode"))
	assert.Empty(t, form.Get("reply_to_message_id"))
	assert.Empty(t, form.Get("reply_markup"))
}

func TestClient_EditMessageText(t *testing.T) {
	client, fake := newTestClient(t)

	err := client.EditMessageText(context.Background(), ports.EditMessageParams{
		ChatID:      500,
		MessageID:   77,
		Text:        "edited",
		ReplyMarkup: &ports.ReplyMarkup{Buttons: [][]ports.Button{{{Text: "Back", Data: "start"}}}},
	})
	require.NoError(t, err)

	form := fake.form("editMessageText")
	assert.Equal(t, "500", form.Get("chat_id"))
	assert.Equal(t, "77", form.Get("message_id"))
	assert.Equal(t, "edited", form.Get("text"))
	assert.Contains(t, form.Get("reply_markup"), `"callback_data":"start"`)
}

func TestClient_AnswerCallbackQuery(t *testing.T) {
	client, fake := newTestClient(t)

	err := client.AnswerCallbackQuery(context.Background(), ports.AnswerCallbackParams{
		CallbackQueryID: "cb-1",
		Text:            "Done",
		ShowAlert:       true,
	})
	require.NoError(t, err)

	form := fake.form("answerCallbackQuery")
	assert.Equal(t, "cb-1", form.Get("callback_query_id"))
	assert.Equal(t, "Done", form.Get("text"))
	assert.Equal(t, "true", form.Get("show_alert"))
}

func TestClient_SetMenuCommands(t *testing.T) {
	client, fake := newTestClient(t)

	err := client.SetMenuCommands(context.Background(), []ports.BotCommand{
		{Command: "start", Description: "Start the bot"},
	})
	require.NoError(t, err)

	var commands []tgbotapi.BotCommand
	require.NoError(t, json.Unmarshal([]byte(fake.form("setMyCommands").Get("commands")), &commands))
	assert.Equal(t, []tgbotapi.BotCommand{{Command: "start", Description: "Start the bot"}}, commands)
}
