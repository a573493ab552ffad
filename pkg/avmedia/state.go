package avmedia

import "time"

// State is a point-in-time copy of a tracker's session fields.
type State struct {
	SessionID        string
	Playing          bool
	PreviousEvent    string
	PreviousPosition int
	Position         int
	EventDuration    int
	SessionDuration  int
	SessionStart     int64 // epoch millis
	BufferStart      int64 // epoch millis

	// Pending is the heartbeat chain holding the timer slot, HeartbeatNone if idle.
	Pending         HeartbeatKind
	PendingInterval time.Duration
}

// State returns a snapshot of the tracker.
func (t *Tracker) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()

	s := State{
		SessionID:        t.sessionID,
		Playing:          t.playing,
		PreviousEvent:    t.previousEvent,
		PreviousPosition: t.previousPosition,
		Position:         t.position,
		EventDuration:    t.eventDuration,
		SessionDuration:  t.sessionDuration,
		SessionStart:     t.sessionStart,
		BufferStart:      t.bufferStart,
	}
	if t.pending != nil {
		s.Pending = t.pending.kind
		s.PendingInterval = t.pending.interval
	}
	return s
}

// HeartbeatTable returns a copy of the play heartbeat table.
func (t *Tracker) HeartbeatTable() map[int]int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.playTable.clone()
}

// BufferHeartbeatTable returns a copy of the buffer heartbeat table.
func (t *Tracker) BufferHeartbeatTable() map[int]int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.bufferTable.clone()
}
