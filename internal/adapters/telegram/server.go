package telegram

import (
	"MyneBooks/internal/core/ports"
	"MyneBooks/internal/shared/config"
	"context"
	"errors"
	"fmt"
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
)

// BotServer is responsible for running the bot (polling or webhook).
// It receives updates on a single loop and publishes them on the bus.
type BotServer struct {
	api   *tgbotapi.BotAPI
	bus   ports.EventBus
	cfg   *config.BotConfig
	botID int64
	log   zerolog.Logger
}

// NewBotServer creates a new server instance
func NewBotServer(
	api *tgbotapi.BotAPI,
	bus ports.EventBus,
	cfg *config.BotConfig,
	baseLogger *zerolog.Logger,
) *BotServer {
	return &BotServer{
		api:   api,
		bus:   bus,
		cfg:   cfg,
		botID: api.Self.ID,
		log:   baseLogger.With().Str("component", "bot_server").Logger(),
	}
}

// Start begins the bot server based on the config mode.
// It blocks until the context is cancelled.
func (s *BotServer) Start(ctx context.Context) error {
	s.log.Info().Str("mode", s.cfg.Mode).Msg("Starting bot server...")

	switch s.cfg.Mode {
	case "polling":
		return s.startPolling(ctx)
	case "webhook":
		return s.startWebhook(ctx)
	default:
		return fmt.Errorf("unknown bot mode: %s", s.cfg.Mode)
	}
}

// startPolling starts the bot in long polling mode
func (s *BotServer) startPolling(ctx context.Context) error {
	s.log.Info().Msg("Starting bot in POLLING mode")

	// 1. Clear any existing webhook
	deleteWebhookConfig := tgbotapi.DeleteWebhookConfig{
		DropPendingUpdates: false,
	}
	if _, err := s.api.Request(deleteWebhookConfig); err != nil {
		s.log.Warn().Err(err).Msg("Failed to delete webhook (continuing anyway)")
	} else {
		s.log.Info().Msg("Webhook deleted successfully")
	}

	// 2. Create the channel for updates
	u := tgbotapi.NewUpdate(0)
	u.Timeout = s.cfg.Polling.Timeout
	updates := s.api.GetUpdatesChan(u)

	s.log.Info().Msg("Polling update listener started")

	// 3. Main loop
	err := s.receive(ctx, updates)
	s.api.StopReceivingUpdates()
	s.log.Info().Msg("Polling stopped gracefully")
	return err
}

// startWebhook starts the bot in webhook mode (for production)
func (s *BotServer) startWebhook(ctx context.Context) error {
	s.log.Info().
		Int("port", s.cfg.Webhook.ListenPort).
		Msg("Starting bot in WEBHOOK mode")

	// 1. Set the webhook
	webhookURL := fmt.Sprintf("%s/webhook/%s", s.cfg.Webhook.URL, s.api.Token)
	s.log.Info().Str("url", s.cfg.Webhook.URL).Msg("Setting webhook...")

	wh, err := tgbotapi.NewWebhook(webhookURL)
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to create webhook config")
		return err
	}
	if _, err = s.api.Request(wh); err != nil {
		s.log.Error().Err(err).Msg("Failed to set webhook")
		return err
	}

	// 2. Check for delivery errors reported by Telegram
	info, err := s.api.GetWebhookInfo()
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to get webhook info")
		return err
	}
	if info.LastErrorDate != 0 {
		s.log.Error().
			Str("error_message", info.LastErrorMessage).
			Msg("Telegram webhook has a last error")
	} else {
		s.log.Info().Msg("Webhook set successfully, no last error")
	}

	// 3. Get the update channel from the bot library
	// This sets up the http.DefaultServeMux
	updates := s.api.ListenForWebhook("/webhook/" + s.api.Token)

	// 4. Start the HTTP server in a goroutine
	// TLS is terminated by the reverse proxy in front of us.
	listenAddr := fmt.Sprintf("127.0.0.1:%d", s.cfg.Webhook.ListenPort)
	s.log.Info().Str("addr", listenAddr).Msg("Starting HTTP server for webhook")

	httpServer := &http.Server{Addr: listenAddr}
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error().Err(err).Msg("Webhook HTTP server failed")
		}
	}()

	// 5. Main loop
	s.log.Info().Msg("Webhook update listener started")
	err = s.receive(ctx, updates)

	s.log.Info().Msg("Shutting down HTTP server...")
	if shutdownErr := httpServer.Shutdown(context.WithoutCancel(ctx)); shutdownErr != nil {
		s.log.Error().Err(shutdownErr).Msg("HTTP server shutdown error")
	}
	s.log.Info().Msg("Webhook server stopped gracefully")
	return err
}

// receive publishes updates one at a time until ctx is cancelled or the
// channel is closed. Publishing never waits for handlers.
func (s *BotServer) receive(ctx context.Context, updates <-chan tgbotapi.Update) error {
	for {
		select {
		case <-ctx.Done(): // Shutdown signal received
			return nil
		case update, ok := <-updates:
			if !ok {
				return errors.New("update channel closed")
			}
			s.publish(ctx, update)
		}
	}
}

func (s *BotServer) publish(ctx context.Context, update tgbotapi.Update) {
	converted, ok := ConvertUpdate(update, s.botID)
	if !ok {
		s.log.Debug().Int("update_id", update.UpdateID).Msg("Ignoring unsupported update type")
		return
	}

	if err := s.bus.Publish(ctx, ports.TopicInboundUpdate, converted); err != nil {
		s.log.Error().Err(err).Int("update_id", update.UpdateID).Msg("Failed to publish update")
	}
}
