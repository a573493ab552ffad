package event

import (
	"context"
	"log/slog"
	"sync"

	"github.com/dmitrymomot/mediatrack/pkg/logger"
)

// Deliverer receives batches of events flushed from a Buffer.
type Deliverer interface {
	Deliver(ctx context.Context, batch []Event) error
}

// DeliverFunc adapts a plain function to the Deliverer interface.
type DeliverFunc func(ctx context.Context, batch []Event) error

func (f DeliverFunc) Deliver(ctx context.Context, batch []Event) error {
	return f(ctx, batch)
}

// BufferOption configures a Buffer.
type BufferOption func(*Buffer)

// WithBufferLogger sets the logger used to report delivery failures.
func WithBufferLogger(l *slog.Logger) BufferOption {
	return func(b *Buffer) {
		if l != nil {
			b.logger = l
		}
	}
}

// WithBufferContext sets the context passed to the Deliverer.
func WithBufferContext(ctx context.Context) BufferOption {
	return func(b *Buffer) {
		if ctx != nil {
			b.ctx = ctx
		}
	}
}

// Buffer is a Sink that keeps events in memory until Send is called.
// A Buffer without a Deliverer discards every batch on Send.
// All methods are safe for concurrent use.
type Buffer struct {
	mu        sync.Mutex
	pending   []Event
	deliverer Deliverer
	ctx       context.Context
	logger    *slog.Logger
}

// NewBuffer creates a Buffer that hands batches to d.
func NewBuffer(d Deliverer, opts ...BufferOption) *Buffer {
	b := &Buffer{
		deliverer: d,
		ctx:       context.Background(),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Add appends e to the pending batch.
func (b *Buffer) Add(e Event) {
	b.mu.Lock()
	b.pending = append(b.pending, e)
	b.mu.Unlock()
}

// Send flushes the pending batch to the Deliverer.
// The batch is taken under the lock and delivered outside of it so a slow
// Deliverer never blocks concurrent Add calls.
func (b *Buffer) Send() {
	b.mu.Lock()
	batch := b.pending
	b.pending = nil
	b.mu.Unlock()

	if len(batch) == 0 {
		return
	}
	if b.deliverer == nil {
		b.logger.Debug("event batch dropped: no deliverer", slog.Int("size", len(batch)))
		return
	}
	if err := b.deliverer.Deliver(b.ctx, batch); err != nil {
		b.logger.Error("failed to deliver event batch",
			slog.Int("size", len(batch)),
			logger.Error(err))
	}
}

// Len returns the number of events waiting for Send.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.pending)
}
