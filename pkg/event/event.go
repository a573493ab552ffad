package event

import "maps"

// Event is a named analytics event with its properties.
type Event struct {
	Name string
	Data map[string]any
}

// New creates an event holding a copy of data.
func New(name string, data map[string]any) Event {
	d := make(map[string]any, len(data))
	maps.Copy(d, data)
	return Event{Name: name, Data: d}
}

// Get returns the property stored under key.
func (e Event) Get(key string) (any, bool) {
	v, ok := e.Data[key]
	return v, ok
}

// Has reports whether the event carries key.
func (e Event) Has(key string) bool {
	_, ok := e.Data[key]
	return ok
}

// Sink accepts events for buffering and a trigger to deliver them.
// Implementations must be safe for concurrent use.
type Sink interface {
	// Add buffers a single event.
	Add(e Event)

	// Send requests delivery of everything added so far.
	Send()
}
