package plugins

import (
	"MyneBooks/internal/bot/dispatch"
	"MyneBooks/internal/core/ports"
	"context"

	"github.com/rs/zerolog"
)

// All returns every plugin bundle in registration order.
func All() []dispatch.Bundle {
	return []dispatch.Bundle{
		Start(),
		About(),
	}
}

// Register adds every plugin bundle to registry.
func Register(registry *dispatch.Registry) {
	for _, b := range All() {
		registry.RegisterBundle(b)
	}
}

// answer stops the client's spinner. A failure is logged, the handler
// carries on with its real work.
func answer(ctx context.Context, c *dispatch.Context) {
	cb := c.Callback()
	err := c.Client().AnswerCallbackQuery(ctx, ports.AnswerCallbackParams{CallbackQueryID: cb.ID})
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("Failed to answer callback query")
	}
}
