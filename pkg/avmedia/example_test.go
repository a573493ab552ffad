package avmedia_test

import (
	"context"
	"fmt"

	"github.com/dmitrymomot/mediatrack/pkg/avmedia"
	"github.com/dmitrymomot/mediatrack/pkg/event"
)

func Example() {
	sink := event.NewBuffer(event.DeliverFunc(func(_ context.Context, batch []event.Event) error {
		for _, e := range batch {
			fmt.Println(e.Name, e.Data[avmedia.PropPosition])
		}
		return nil
	}))

	tracker := avmedia.MustNew(sink, avmedia.WithHeartbeat(10))
	defer tracker.Release()

	tracker.Play(0, nil)
	tracker.Seek(0, 4000, nil)
	tracker.PlaybackStopped(4000, nil)

	// Output:
	// av.play 0
	// av.seek.start 0
	// av.forward 4000
	// av.stop 4000
}
