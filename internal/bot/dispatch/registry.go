package dispatch

import (
	"context"
	"slices"
	"strings"

	"github.com/rs/zerolog"
)

// Kind is the kind of inbound event a handler is registered for.
type Kind int

const (
	KindMessage Kind = iota
	KindCallback
)

func (k Kind) String() string {
	switch k {
	case KindMessage:
		return "message"
	case KindCallback:
		return "callback"
	default:
		return "unknown"
	}
}

// Handler processes one matched event.
type Handler interface {
	Handle(ctx context.Context, c *Context) error
}

// HandlerFunc lets ordinary functions be used as handlers.
type HandlerFunc func(ctx context.Context, c *Context) error

// Handle implements Handler.
func (f HandlerFunc) Handle(ctx context.Context, c *Context) error {
	return f(ctx, c)
}

// Descriptor describes one registered handler. It is never modified after
// its bundle is built.
type Descriptor struct {
	Kind        Kind
	Handler     Handler
	Pattern     string
	IsCommand   bool
	Description string
	Visible     bool
	Plugin      string
}

// Keyword returns the command keyword of a command pattern, e.g. "start"
// for "start$". It is empty for non-command descriptors.
func (d Descriptor) Keyword() string {
	if !d.IsCommand {
		return ""
	}
	tokens := strings.Fields(strings.TrimSuffix(d.Pattern, "$"))
	if len(tokens) == 0 {
		return ""
	}
	return tokens[0]
}

// Option configures a descriptor being appended to a bundle.
type Option func(*Descriptor)

// AsCommand marks the pattern as a command, so it is rewritten to require
// a prefix and accept a bot mention.
func AsCommand() Option {
	return func(d *Descriptor) { d.IsCommand = true }
}

// WithDescription sets the text shown in command lists.
func WithDescription(description string) Option {
	return func(d *Descriptor) { d.Description = description }
}

// Visible lists the handler in the bot's command menu.
func Visible() Option {
	return func(d *Descriptor) { d.Visible = true }
}

// Bundle is a named group of handlers contributed by one plugin.
type Bundle struct {
	name     string
	enabled  bool
	handlers []Descriptor
}

// Name returns the plugin name.
func (b Bundle) Name() string { return b.name }

// Enabled reports whether the plugin should be loaded.
func (b Bundle) Enabled() bool { return b.enabled }

// Handlers returns a copy of the bundle's descriptors in declaration order.
func (b Bundle) Handlers() []Descriptor { return slices.Clone(b.handlers) }

// BundleBuilder accumulates descriptors for a Bundle.
type BundleBuilder struct {
	bundle Bundle
}

// NewBundle starts a disabled, empty bundle.
func NewBundle(name string) *BundleBuilder {
	return &BundleBuilder{bundle: Bundle{name: name}}
}

// SetEnabled sets whether the plugin is loaded.
func (b *BundleBuilder) SetEnabled(enabled bool) *BundleBuilder {
	b.bundle.enabled = enabled
	return b
}

// Append adds a handler. By default it is not a command, has no description
// and is hidden from command lists.
func (b *BundleBuilder) Append(kind Kind, handler Handler, pattern string, opts ...Option) *BundleBuilder {
	d := Descriptor{
		Kind:    kind,
		Handler: handler,
		Pattern: pattern,
		Plugin:  b.bundle.name,
	}
	for _, opt := range opts {
		opt(&d)
	}
	b.bundle.handlers = append(b.bundle.handlers, d)
	return b
}

// Build returns the finished bundle.
func (b *BundleBuilder) Build() Bundle {
	out := b.bundle
	out.handlers = slices.Clone(b.bundle.handlers)
	return out
}

// CommandInfo is one entry of the public command list.
type CommandInfo struct {
	Command     string
	Description string
}

// Registry is the ordered list of handlers from all enabled plugins.
// It is written during startup only and read concurrently afterwards.
type Registry struct {
	log      zerolog.Logger
	disabled map[string]bool
	handlers []Descriptor
}

// NewRegistry creates an empty registry. Plugins named in disabled are
// skipped even if their bundle is enabled.
func NewRegistry(baseLogger *zerolog.Logger, disabled ...string) *Registry {
	r := &Registry{
		log:      baseLogger.With().Str("component", "handler_registry").Logger(),
		disabled: make(map[string]bool, len(disabled)),
	}
	for _, name := range disabled {
		r.disabled[strings.TrimSpace(name)] = true
	}
	return r
}

// RegisterBundle appends the bundle's handlers if the plugin is enabled.
// Each bundle must be registered once; duplicates are not detected.
func (r *Registry) RegisterBundle(b Bundle) {
	if !b.Enabled() || r.disabled[b.Name()] {
		r.log.Info().Str("plugin", b.Name()).Msg("Plugin is disabled, skipping")
		return
	}

	r.log.Info().Str("plugin", b.Name()).Int("handlers", len(b.handlers)).Msg("Loading plugin")
	r.handlers = append(r.handlers, b.handlers...)
}

// Snapshot returns a copy of the registered handlers in registration order.
func (r *Registry) Snapshot() []Descriptor {
	return slices.Clone(r.handlers)
}

// Commands lists the visible, described command handlers in registration
// order, one entry per keyword.
func (r *Registry) Commands() []CommandInfo {
	var out []CommandInfo
	seen := make(map[string]bool)
	for _, d := range r.handlers {
		keyword := d.Keyword()
		if !d.Visible || d.Description == "" || keyword == "" || seen[keyword] {
			continue
		}
		seen[keyword] = true
		out = append(out, CommandInfo{Command: keyword, Description: d.Description})
	}
	return out
}
