package dispatch

import (
	"MyneBooks/internal/core/ports"
	"context"
	"errors"
	"fmt"
	"regexp"
	"sync"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ErrInvalidPrefix is returned when a configured prefix is not exactly one character.
var ErrInvalidPrefix = errors.New("prefixes must be single characters")

// LocaleResolver finds the locale of the chat an event came from.
// It must not fail: on any error it returns the default locale.
type LocaleResolver interface {
	Resolve(ctx context.Context, chat ports.Chat, from *ports.User) string
}

// Spawner runs a handler invocation. The default starts a goroutine.
type Spawner func(task func())

// RouterOption customizes a Router.
type RouterOption func(*Router)

// WithSpawner replaces how invocations are started. Tasks started by a
// custom spawner are not tracked by Wait.
func WithSpawner(spawn Spawner) RouterOption {
	return func(r *Router) { r.spawn = spawn }
}

// WithCompiler shares a pattern cache between routers.
func WithCompiler(c *Compiler) RouterOption {
	return func(r *Router) { r.compiler = c }
}

type route struct {
	desc    Descriptor
	matcher *regexp.Regexp
}

// Router matches inbound updates against the registry and invokes every
// matching handler.
type Router struct {
	log      zerolog.Logger
	resolver LocaleResolver
	client   ports.BotClientPort
	lang     ports.Translator
	me       ports.BotIdentity
	compiler *Compiler
	routes   []route
	spawn    Spawner
	wg       sync.WaitGroup
}

// NewRouter compiles every registered pattern against the prefixes and the
// bot's username. A pattern that does not compile is a configuration error.
func NewRouter(
	registry *Registry,
	resolver LocaleResolver,
	client ports.BotClientPort,
	lang ports.Translator,
	me ports.BotIdentity,
	prefixes []string,
	baseLogger *zerolog.Logger,
	opts ...RouterOption,
) (*Router, error) {
	r := &Router{
		log:      baseLogger.With().Str("component", "router").Logger(),
		resolver: resolver,
		client:   client,
		lang:     lang,
		me:       me,
	}
	r.spawn = r.goSpawn
	for _, opt := range opts {
		opt(r)
	}
	if r.compiler == nil {
		r.compiler = NewCompiler()
	}

	for _, p := range prefixes {
		if utf8.RuneCountInString(p) != 1 {
			return nil, fmt.Errorf("%w: got %q", ErrInvalidPrefix, p)
		}
	}

	for _, d := range registry.Snapshot() {
		re, err := r.compiler.Compile(d.Pattern, d.IsCommand, prefixes, me.UserName)
		if err != nil {
			return nil, fmt.Errorf("plugin %q: %w", d.Plugin, err)
		}
		r.routes = append(r.routes, route{desc: d, matcher: re})
		r.log.Debug().
			Str("plugin", d.Plugin).
			Str("kind", d.Kind.String()).
			Str("pattern", re.String()).
			Msg("Registered route")
	}

	r.log.Info().Int("routes", len(r.routes)).Strs("prefixes", prefixes).Msg("Router ready")
	return r, nil
}

// Subscribe makes the router handle every update published on topic.
func (r *Router) Subscribe(bus ports.EventBus, topic string) {
	bus.Subscribe(topic, func(ctx context.Context, event ports.Event) error {
		update, ok := event.Data.(ports.Update)
		if !ok {
			r.log.Error().Str("topic", event.Topic).Msg("Received bad update event from bus")
			return nil
		}
		r.HandleUpdate(ctx, &update)
		return nil
	})
}

// HandleUpdate runs one dispatch cycle and returns the number of handlers
// submitted. It does not wait for them to finish.
func (r *Router) HandleUpdate(ctx context.Context, update *ports.Update) int {
	// 1. Classify
	kind, chat, from, ok := classify(update)
	if !ok {
		r.log.Debug().Msg("Dropping update that is not dispatchable")
		return 0
	}

	// 2. Add logger context
	dispatchID := uuid.NewString()
	ctxLogger := r.log.With().
		Int("update_id", update.ID).
		Str("dispatch_id", dispatchID).
		Str("kind", kind.String()).
		Int64("chat_id", chat.ID).
		Logger()
	ctx = ctxLogger.WithContext(ctx)

	// 3. Resolve identity (never fails)
	locale := r.resolver.Resolve(ctx, chat, from)

	// 4. Extract the match subject
	var subject string
	switch kind {
	case KindMessage:
		subject = update.Message.Text
	case KindCallback:
		if !utf8.Valid(update.Callback.Data) {
			ctxLogger.Warn().Msg("Dropping callback with invalid UTF-8 payload")
			return 0
		}
		subject = string(update.Callback.Data)
	}

	// 5. Fan out to every match
	n := 0
	for _, rt := range r.routes {
		if rt.desc.Kind != kind || !rt.matcher.MatchString(subject) {
			continue
		}
		c := NewContext(ContextParams{
			Client:     r.client,
			Translator: r.lang,
			Message:    update.Message,
			Callback:   update.Callback,
			Request:    subject,
			Locale:     locale,
			Me:         r.me,
			UpdateID:   update.ID,
			DispatchID: dispatchID,
		})
		r.submit(ctx, rt.desc, c)
		n++
	}

	if n == 0 {
		ctxLogger.Debug().Msg("No handler matched")
	} else {
		ctxLogger.Info().Int("handlers", n).Msg("Dispatched update")
	}
	return n
}

// Wait blocks until every invocation started by the default spawner returns.
func (r *Router) Wait() {
	r.wg.Wait()
}

// submit starts one invocation. Errors and panics stop at this boundary.
func (r *Router) submit(ctx context.Context, d Descriptor, c *Context) {
	log := zerolog.Ctx(ctx).With().
		Str("plugin", d.Plugin).
		Str("pattern", d.Pattern).
		Logger()
	ctx = log.WithContext(ctx)

	r.spawn(func() {
		defer func() {
			if rec := recover(); rec != nil {
				log.Error().Interface("panic", rec).Msg("Handler panicked")
			}
		}()
		if err := d.Handler.Handle(ctx, c); err != nil {
			log.Error().Err(err).Msg("Handler failed")
		}
	})
}

func (r *Router) goSpawn(task func()) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		task()
	}()
}

// classify decides whether an update is dispatched and as what.
// Outgoing messages and anything from a channel are dropped.
func classify(u *ports.Update) (Kind, ports.Chat, *ports.User, bool) {
	if u == nil {
		return 0, ports.Chat{}, nil, false
	}

	switch {
	case u.Message != nil && u.Callback == nil:
		m := u.Message
		if m.Outgoing || m.Chat.IsChannel() {
			return 0, ports.Chat{}, nil, false
		}
		return KindMessage, m.Chat, m.From, true
	case u.Callback != nil && u.Message == nil:
		cb := u.Callback
		if cb.Chat.IsChannel() {
			return 0, ports.Chat{}, nil, false
		}
		return KindCallback, cb.Chat, cb.From, true
	}
	return 0, ports.Chat{}, nil, false
}
