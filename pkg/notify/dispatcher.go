package notify

import (
	"context"
	"time"

	"github.com/foxworks/reface/pkg/Logger"
)

// Dispatcher is an outbound queue for crew notifications. Delivery runs off
// the request path with retry/backoff; a message that exhausts its retries is
// dead-letter logged and dropped. Enqueue never blocks and never fails the
// caller.
type Dispatcher struct {
	sender     Sender
	logger     *Logger.Logger
	queue      chan string
	maxRetries int
	backoff    time.Duration
}

type DispatcherOption func(*Dispatcher)

func WithMaxRetries(n int) DispatcherOption {
	return func(d *Dispatcher) { d.maxRetries = n }
}

func WithBackoff(b time.Duration) DispatcherOption {
	return func(d *Dispatcher) { d.backoff = b }
}

func NewDispatcher(sender Sender, logger *Logger.Logger, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		sender:     sender,
		logger:     logger,
		queue:      make(chan string, 64),
		maxRetries: 3,
		backoff:    2 * time.Second,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Run drains the queue until ctx is cancelled. Start it once at boot.
func (d *Dispatcher) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case text := <-d.queue:
			d.deliver(ctx, text)
		}
	}
}

// Enqueue queues a message for delivery. A full queue drops the message
// with a warning rather than blocking the request that produced it.
func (d *Dispatcher) Enqueue(text string) {
	select {
	case d.queue <- text:
	default:
		d.logger.Warnf("notification queue full, dropping message: %.80s", text)
	}
}

func (d *Dispatcher) deliver(ctx context.Context, text string) {
	var lastErr error
	for attempt := 0; attempt <= d.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return
			case <-time.After(d.backoff * time.Duration(attempt)):
			}
		}
		if lastErr = d.sender.Send(ctx, text); lastErr == nil {
			return
		}
		d.logger.Warnf("notification attempt %d failed: %v", attempt+1, lastErr)
	}
	// dead letter
	d.logger.Errorf("notification dropped after %d attempts: %v; message: %s",
		d.maxRetries+1, lastErr, text)
}
