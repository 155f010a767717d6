package telegram

import (
	"MyneBooks/internal/adapters/eventbus"
	"MyneBooks/internal/bot/dispatch"
	"MyneBooks/internal/bot/identity"
	"MyneBooks/internal/bot/plugins"
	"MyneBooks/internal/core/ports"
	"MyneBooks/internal/shared/config"
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
)

// Orchestrator wires the bot together and runs it.
type Orchestrator struct {
	cfg        *config.Config
	chats      ports.ChatRepository
	lang       ports.Translator
	baseLogger *zerolog.Logger
}

// NewOrchestrator creates a new bot orchestrator.
func NewOrchestrator(
	cfg *config.Config,
	chats ports.ChatRepository,
	lang ports.Translator,
	baseLogger *zerolog.Logger,
) *Orchestrator {
	return &Orchestrator{
		cfg:        cfg,
		chats:      chats,
		lang:       lang,
		baseLogger: baseLogger,
	}
}

// Start runs the bot until ctx is cancelled, then waits for every
// in-flight handler to return.
func (o *Orchestrator) Start(ctx context.Context) error {
	log := o.baseLogger.With().Str("bot", "mynebooks").Logger()

	// 1. Create API
	api, err := tgbotapi.NewBotAPI(o.cfg.Bot.Token)
	if err != nil {
		return err
	}
	api.Debug = o.cfg.IsDev()
	me := ports.BotIdentity{
		ID:        api.Self.ID,
		UserName:  api.Self.UserName,
		FirstName: api.Self.FirstName,
	}
	log.Info().Str("username", me.UserName).Msg("Bot API connected")

	// 2. Create Client (Adapter)
	client := NewClient(api, &log)

	// 3. Build the registry, once
	registry := dispatch.NewRegistry(&log, o.cfg.Plugins.Disabled...)
	plugins.Register(registry)

	// 4. Create Router
	resolver := identity.NewResolver(o.chats, o.lang, &log)
	router, err := dispatch.NewRouter(registry, resolver, client, o.lang, me, o.cfg.Bot.Prefixes, &log)
	if err != nil {
		return err
	}

	// 5. Connect the router to the bus
	bus := eventbus.NewInMemoryEventBus(&log)
	router.Subscribe(bus, ports.TopicInboundUpdate)

	// 6. Set Menu
	if err := client.SetMenuCommands(ctx, MenuCommands(registry.Commands())); err != nil {
		log.Warn().Err(err).Msg("Could not publish the command menu (continuing anyway)")
	}

	// 7. Create and Start Server
	server := NewBotServer(api, bus, &o.cfg.Bot, &log)
	err = server.Start(ctx)

	// 8. Drain: dispatch cycles first, then the handlers they submitted
	log.Info().Msg("Waiting for in-flight handlers...")
	bus.Wait()
	router.Wait()
	log.Info().Msg("Bot stopped")
	return err
}

// MenuCommands converts the registry's command list for the transport.
func MenuCommands(commands []dispatch.CommandInfo) []ports.BotCommand {
	out := make([]ports.BotCommand, 0, len(commands))
	for _, c := range commands {
		out = append(out, ports.BotCommand{Command: c.Command, Description: c.Description})
	}
	return out
}
