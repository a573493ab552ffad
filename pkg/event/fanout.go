package event

import (
	"context"
	"slices"
	"sync"
)

type subscriber struct {
	ch     chan []Event
	closed bool
	mu     sync.RWMutex
}

func (s *subscriber) close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.closed {
		close(s.ch)
		s.closed = true
	}
}

func (s *subscriber) send(batch []Event) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return false
	}

	select {
	case s.ch <- batch:
		return true
	default:
		return false
	}
}

// Fanout is a Deliverer that broadcasts every batch to all subscribers.
// Slow subscribers are dropped instead of blocking delivery.
// All methods are safe for concurrent use.
type Fanout struct {
	subscribers map[*subscriber]struct{}
	bufferSize  int
	closed      bool
	mu          sync.RWMutex
	done        chan struct{}
	cleanupWg   sync.WaitGroup
}

// NewFanout creates a Fanout whose subscriber channels hold bufferSize batches.
// A minimum buffer size of 1 is enforced.
func NewFanout(bufferSize int) *Fanout {
	return &Fanout{
		subscribers: make(map[*subscriber]struct{}),
		bufferSize:  max(bufferSize, 1),
		done:        make(chan struct{}),
	}
}

// Subscribe returns a channel receiving every delivered batch.
// The channel is closed when ctx is cancelled, when the subscriber falls
// behind, or when the Fanout is closed.
func (f *Fanout) Subscribe(ctx context.Context) <-chan []Event {
	f.mu.Lock()
	defer f.mu.Unlock()

	sub := &subscriber{ch: make(chan []Event, f.bufferSize)}
	if f.closed {
		sub.close()
		return sub.ch
	}
	f.subscribers[sub] = struct{}{}

	if ctx.Done() != nil {
		f.cleanupWg.Add(1)
		go func() {
			defer f.cleanupWg.Done()
			select {
			case <-ctx.Done():
				f.unsubscribe(sub)
			case <-f.done:
			}
		}()
	}

	return sub.ch
}

// Deliver broadcasts a copy of batch to every subscriber.
func (f *Fanout) Deliver(_ context.Context, batch []Event) error {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.closed {
		return ErrFanoutClosed
	}

	for sub := range f.subscribers {
		if !sub.send(slices.Clone(batch)) {
			go f.unsubscribe(sub)
		}
	}
	return nil
}

// Subscribers returns the number of active subscribers.
func (f *Fanout) Subscribers() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.subscribers)
}

// Close closes every subscriber channel. It is safe to call Close multiple times.
func (f *Fanout) Close() error {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return nil
	}
	f.closed = true
	close(f.done)
	for sub := range f.subscribers {
		sub.close()
	}
	clear(f.subscribers)
	f.mu.Unlock()

	f.cleanupWg.Wait()
	return nil
}

func (f *Fanout) unsubscribe(sub *subscriber) {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.subscribers, sub)
	sub.close()
}
