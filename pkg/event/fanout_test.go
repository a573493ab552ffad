package event_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mediatrack/pkg/event"
)

func TestFanout_Deliver(t *testing.T) {
	t.Parallel()

	t.Run("every subscriber receives the batch", func(t *testing.T) {
		t.Parallel()

		f := event.NewFanout(4)
		defer f.Close()

		ctx := context.Background()
		a := f.Subscribe(ctx)
		b := f.Subscribe(ctx)

		err := f.Deliver(ctx, []event.Event{event.New("av.start", nil)})
		require.NoError(t, err)

		for _, ch := range []<-chan []event.Event{a, b} {
			select {
			case batch := <-ch:
				require.Len(t, batch, 1)
				assert.Equal(t, "av.start", batch[0].Name)
			case <-time.After(time.Second):
				t.Fatal("timeout waiting for batch")
			}
		}
	})

	t.Run("deliver after close fails", func(t *testing.T) {
		t.Parallel()

		f := event.NewFanout(1)
		require.NoError(t, f.Close())
		require.NoError(t, f.Close())

		err := f.Deliver(context.Background(), nil)
		assert.ErrorIs(t, err, event.ErrFanoutClosed)

		_, ok := <-f.Subscribe(context.Background())
		assert.False(t, ok)
	})

	t.Run("slow subscriber is dropped", func(t *testing.T) {
		t.Parallel()

		f := event.NewFanout(1)
		defer f.Close()

		ctx := context.Background()
		ch := f.Subscribe(ctx)

		require.NoError(t, f.Deliver(ctx, []event.Event{event.New("av.heartbeat", nil)}))
		require.NoError(t, f.Deliver(ctx, []event.Event{event.New("av.heartbeat", nil)}))

		assert.Eventually(t, func() bool { return f.Subscribers() == 0 }, time.Second, 10*time.Millisecond)

		<-ch
		_, ok := <-ch
		assert.False(t, ok)
	})

	t.Run("context cancellation unsubscribes", func(t *testing.T) {
		t.Parallel()

		f := event.NewFanout(1)
		defer f.Close()

		ctx, cancel := context.WithCancel(context.Background())
		ch := f.Subscribe(ctx)
		cancel()

		assert.Eventually(t, func() bool { return f.Subscribers() == 0 }, time.Second, 10*time.Millisecond)
		_, ok := <-ch
		assert.False(t, ok)
	})

	t.Run("close does not wait for live contexts", func(t *testing.T) {
		t.Parallel()

		f := event.NewFanout(1)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		ch := f.Subscribe(ctx)

		done := make(chan struct{})
		go func() {
			_ = f.Close()
			close(done)
		}()

		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("close blocked on subscriber context")
		}
		_, ok := <-ch
		assert.False(t, ok)
	})
}

func TestFanout_WithBuffer(t *testing.T) {
	t.Parallel()

	f := event.NewFanout(2)
	defer f.Close()

	ch := f.Subscribe(context.Background())
	sink := event.NewBuffer(f)

	sink.Add(event.New("av.seek.start", nil))
	sink.Add(event.New("av.backward", nil))
	sink.Send()

	select {
	case batch := <-ch:
		require.Len(t, batch, 2)
		assert.Equal(t, "av.backward", batch[1].Name)
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for batch")
	}
}
