// Package event defines the boundary between the playback tracker and whatever
// delivers analytics events.
//
// An Event is a name plus a loosely-typed property bag. Producers hand events to
// a Sink with Add and request delivery with Send. The package ships two building
// blocks for the delivery side:
//
//   - Buffer accumulates events and passes each batch to a Deliverer on Send.
//   - Fanout is a Deliverer that broadcasts batches to in-process subscribers.
//
// Basic usage:
//
//	fan := event.NewFanout(16)
//	defer fan.Close()
//
//	batches := fan.Subscribe(ctx)
//	sink := event.NewBuffer(fan)
//
//	sink.Add(event.New("av.play", map[string]any{"position": 0}))
//	sink.Send()
//
//	for batch := range batches {
//		fmt.Println(len(batch))
//	}
//
// Delivery errors never reach the producer. Buffer logs them and drops the batch.
package event
