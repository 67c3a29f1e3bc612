// Package bus carries widget notifications out of the process-local engine.
// Listeners registered on a widget run synchronously; the bus is the
// asynchronous export path for hosts that want change events elsewhere.
// The default implementation is in-memory; NATS is used when configured.
package bus

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrClosed is returned when operating on a closed bus or subscription.
	ErrClosed = errors.New("bus or subscription closed")
)

// Publisher is the write side of a bus. Widgets only need this.
type Publisher interface {
	// Publish sends a message to all subscribers of the given subject.
	// Returns immediately; does not wait for delivery.
	Publish(ctx context.Context, subject string, data []byte) error
}

// MessageBus publishes and subscribes to subjects.
// Implementations must be safe for concurrent use.
type MessageBus interface {
	Publisher

	// Subscribe registers a handler for messages on the given subject.
	// Handlers run on a goroutine owned by the subscription.
	// Supports wildcards: "selectsync.*.change" matches "selectsync.city.change".
	Subscribe(ctx context.Context, subject string, handler MessageHandler) (Subscription, error)

	// Close shuts down the bus and all subscriptions.
	Close() error
}

// MessageHandler processes incoming messages.
type MessageHandler func(msg *Message)

// Message represents an incoming message from the bus.
type Message struct {
	Subject string
	Data    []byte
}

// Subscription represents an active subscription that can be cancelled.
type Subscription interface {
	// Unsubscribe stops receiving messages and cleans up resources.
	Unsubscribe() error

	// Subject returns the subject pattern this subscription is for.
	Subject() string
}

// Config holds configuration for creating a MessageBus.
type Config struct {
	// URL is the NATS server URL (e.g., "nats://localhost:4222").
	// Ignored for in-memory bus.
	URL string

	// Name is a client identifier for debugging/monitoring.
	Name string

	// Timeout is the connect timeout.
	Timeout time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		URL:     "nats://localhost:4222",
		Name:    "selectsync",
		Timeout: 5 * time.Second,
	}
}

// Subject joins a prefix, widget name and event name into a bus subject.
// Dots inside the name are replaced so a field called "address.city" stays a
// single token.
func Subject(prefix, name, event string) string {
	token := name
	if token == "" {
		token = "_"
	}
	token = replaceDots(token)
	if prefix == "" {
		return token + "." + event
	}
	return prefix + "." + token + "." + event
}

func replaceDots(s string) string {
	out := []byte(s)
	for i := range out {
		switch out[i] {
		case '.', ' ', '*', '>':
			out[i] = '_'
		}
	}
	return string(out)
}
