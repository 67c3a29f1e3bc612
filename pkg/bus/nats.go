package bus

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/nats-io/nats.go"
)

// NATSBus exports widget notifications over core NATS. Delivery is at most
// once; a widget never waits for a subscriber.
type NATSBus struct {
	conn    *nats.Conn
	timeout time.Duration
	closed  atomic.Bool
}

// NewNATSBus dials cfg.URL, falling back to DefaultConfig for empty fields.
// The dial fails fast; once connected the client reconnects in the
// background and buffers exports meanwhile.
func NewNATSBus(cfg Config) (*NATSBus, error) {
	def := DefaultConfig()
	if cfg.URL == "" {
		cfg.URL = def.URL
	}
	if cfg.Name == "" {
		cfg.Name = def.Name
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}

	conn, err := nats.Connect(cfg.URL,
		nats.Name(cfg.Name),
		nats.Timeout(cfg.Timeout),
		nats.ReconnectWait(time.Second),
		nats.MaxReconnects(-1),
	)
	if err != nil {
		return nil, fmt.Errorf("nats connect %s: %w", cfg.URL, err)
	}

	return &NATSBus{conn: conn, timeout: cfg.Timeout}, nil
}

// Publish hands data to the client's outbound buffer. A cancelled ctx drops
// the message.
func (b *NATSBus) Publish(ctx context.Context, subject string, data []byte) error {
	if b.closed.Load() {
		return ErrClosed
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return b.conn.Publish(subject, data)
}

// Subscribe delivers matching messages on the client's dispatch goroutine.
func (b *NATSBus) Subscribe(ctx context.Context, subject string, handler MessageHandler) (Subscription, error) {
	if b.closed.Load() {
		return nil, ErrClosed
	}

	sub, err := b.conn.Subscribe(subject, func(msg *nats.Msg) {
		handler(&Message{Subject: msg.Subject, Data: msg.Data})
	})
	if err != nil {
		return nil, fmt.Errorf("nats subscribe %s: %w", subject, err)
	}
	return natsSubscription{sub: sub}, nil
}

// Close flushes buffered exports, bounded by the connect timeout, and
// closes the connection.
func (b *NATSBus) Close() error {
	if b.closed.Swap(true) {
		return ErrClosed
	}
	err := b.conn.FlushTimeout(b.timeout)
	b.conn.Close()
	if err != nil {
		return fmt.Errorf("nats flush: %w", err)
	}
	return nil
}

type natsSubscription struct {
	sub *nats.Subscription
}

func (s natsSubscription) Unsubscribe() error { return s.sub.Unsubscribe() }
func (s natsSubscription) Subject() string    { return s.sub.Subject }
