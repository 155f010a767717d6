package identity

import (
	"MyneBooks/internal/core/domain"
	"MyneBooks/internal/core/ports"
	"context"
	"strconv"

	"github.com/rs/zerolog"
)

// Resolver looks up the chat an event came from, registers it on first
// contact and returns its locale. Storage failures never reach the caller:
// they are logged and the default locale is returned.
type Resolver struct {
	chats ports.ChatRepository
	lang  ports.Translator
	log   zerolog.Logger
}

// NewResolver creates a new chat-identity resolver.
func NewResolver(chats ports.ChatRepository, lang ports.Translator, baseLogger *zerolog.Logger) *Resolver {
	return &Resolver{
		chats: chats,
		lang:  lang,
		log:   baseLogger.With().Str("component", "identity_resolver").Logger(),
	}
}

// Resolve returns the locale to use for chat.
func (r *Resolver) Resolve(ctx context.Context, chat ports.Chat, from *ports.User) string {
	log := r.logger(ctx).With().Int64("chat_id", chat.ID).Logger()
	fallback := r.lang.Default()

	// 1. Check if the chat exists
	record, err := r.chats.GetByID(ctx, chat.ID)
	if err != nil {
		log.Warn().Err(err).Msg("Chat lookup failed, using default locale")
		return fallback
	}
	if record != nil {
		return record.Locale
	}

	// 2. First contact: register it
	record = r.newRecord(chat, from)
	if err := r.chats.Create(ctx, record); err != nil {
		log.Warn().Err(err).Msg("Chat registration failed, using default locale")
		return fallback
	}

	log.Info().
		Str("kind", string(record.Kind)).
		Str("locale", record.Locale).
		Msg("Registered new chat")
	return record.Locale
}

// newRecord builds the chat record for a first contact. Only users carry
// a locale hint; groups start with the default locale.
func (r *Resolver) newRecord(chat ports.Chat, from *ports.User) *domain.Chat {
	record := &domain.Chat{
		ID:     chat.ID,
		Kind:   domain.ChatKindGroup,
		Locale: r.lang.Default(),
	}

	if chat.IsGroup() {
		record.DisplayName = chat.Title
		return record
	}

	record.Kind = domain.ChatKindUser
	if from == nil {
		record.DisplayName = strconv.FormatInt(chat.ID, 10)
		return record
	}

	record.DisplayName = from.FullName()
	if locale, ok := r.lang.Match(from.LanguageCode); ok {
		record.Locale = locale
	}
	return record
}

// logger prefers the per-update logger carried by ctx.
func (r *Resolver) logger(ctx context.Context) *zerolog.Logger {
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return &r.log
}
