package ports

import "context"

// TopicInboundUpdate carries every converted inbound ports.Update.
const TopicInboundUpdate = "bot:update"

// Event is a generic wrapper for any event payload
type Event struct {
	Topic string
	Data  any
}

// EventHandler is a function that can handle a specific event
type EventHandler func(ctx context.Context, event Event) error

// EventBus defines the interface for our in-process pub/sub system
type EventBus interface {
	// Publish hands the event to every subscriber of the topic, each in its
	// own goroutine, and returns without waiting for them.
	Publish(ctx context.Context, topic string, data any) error

	// Subscribe registers a handler for a specific topic
	Subscribe(topic string, handler EventHandler)

	// Wait blocks until every handler started by Publish has returned.
	Wait()
}
