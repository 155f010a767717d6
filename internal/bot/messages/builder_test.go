package messages

import (
	"MyneBooks/internal/core/ports"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_Build(t *testing.T) {
	params := NewBuilder(42).
		WithText("<b>hi</b>").
		WithHTML().
		ReplyTo(7).
		WithCallbackButtons(2,
			CallbackButton("One", "one"),
			CallbackButton("Two", "two"),
			URLButton("Site", "https://example.com"),
		).
		Build()

	assert.Equal(t, int64(42), params.ChatID)
	assert.Equal(t, "<b>hi</b>", params.Text)
	assert.Equal(t, ParseModeHTML, params.ParseMode)
	assert.Equal(t, 7, params.ReplyToMessageID)

	require.NotNil(t, params.ReplyMarkup)
	assert.Equal(t, [][]ports.Button{
		{{Text: "One", Data: "one"}, {Text: "Two", Data: "two"}},
		{{Text: "Site", URL: "https://example.com"}},
	}, params.ReplyMarkup.Buttons)
}

func TestBuilder_PlainTextByDefault(t *testing.T) {
	params := NewBuilder(1).WithText("hello").Build()

	assert.Empty(t, params.ParseMode)
	assert.Nil(t, params.ReplyMarkup)
}

func TestBuilder_EmptyKeyboardIsDropped(t *testing.T) {
	params := NewBuilder(1).
		WithInlineButtons([][]ports.Button{{}, {}}).
		Build()

	assert.Nil(t, params.ReplyMarkup)
}

func TestBuilder_BuildEdit(t *testing.T) {
	edit := NewBuilder(5).
		WithText("updated").
		WithHTML().
		ReplyTo(3).
		WithInlineButtons([][]ports.Button{{CallbackButton("Back", "start")}}).
		BuildEdit(99)

	assert.Equal(t, ports.EditMessageParams{
		ChatID:    5,
		MessageID: 99,
		Text:      "updated",
		ParseMode: ParseModeHTML,
		ReplyMarkup: &ports.ReplyMarkup{
			Buttons: [][]ports.Button{{{Text: "Back", Data: "start"}}},
		},
	}, edit)
}
