package avmedia

import (
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"sync"

	"github.com/dmitrymomot/mediatrack/pkg/event"
	"github.com/dmitrymomot/mediatrack/pkg/logger"
)

// Tracker follows one media player through its playback lifecycle.
//
// Every exported method, and every heartbeat fired by the internal timer,
// runs inside the same critical section, so a heartbeat can never interleave
// with a concurrent pause or stop. The sink is called from inside that section
// and must not call back into the Tracker.
type Tracker struct {
	mu sync.Mutex

	sink   event.Sink
	clock  Clock
	logger *slog.Logger
	newID  func() string

	sessionID        string
	playing          bool
	previousEvent    string
	previousPosition int
	position         int
	eventDuration    int
	sessionDuration  int
	sessionStart     int64 // epoch millis, 0 until accrual starts
	bufferStart      int64 // epoch millis, 0 while not buffering

	playTable   intervalTable
	bufferTable intervalTable
	props       map[string]any

	pending *deferredTask
	outbox  []event.Event
	closed  bool
}

// New creates a Tracker emitting into sink. A nil sink is allowed; events are
// then dropped silently. New fails only when a heartbeat table carries a
// negative minute offset.
func New(sink event.Sink, opts ...Option) (*Tracker, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	var errs []error
	for _, k := range negativeKeys(o.playTable) {
		errs = append(errs, fmt.Errorf("%w: play table key %d", ErrNegativeOffset, k))
	}
	for _, k := range negativeKeys(o.bufferTable) {
		errs = append(errs, fmt.Errorf("%w: buffer table key %d", ErrNegativeOffset, k))
	}
	if len(errs) > 0 {
		return nil, errors.Join(append([]error{ErrInvalidConfig}, errs...)...)
	}

	props := o.props
	if props == nil {
		props = make(map[string]any)
	}

	return &Tracker{
		sink:        sink,
		clock:       o.clock,
		logger:      o.logger.With(logger.Component("avmedia")),
		newID:       o.newID,
		sessionID:   o.newID(),
		playTable:   newIntervalTable(o.playTable, MinHeartbeat),
		bufferTable: newIntervalTable(o.bufferTable, MinBufferHeartbeat),
		props:       props,
	}, nil
}

// MustNew is like New but panics on invalid configuration.
func MustNew(sink event.Sink, opts ...Option) *Tracker {
	t, err := New(sink, opts...)
	if err != nil {
		panic(err)
	}
	return t
}

// SetHeartbeat replaces the play heartbeat table with a single interval.
func (t *Tracker) SetHeartbeat(seconds int) {
	t.SetHeartbeatTable(map[int]int{0: seconds})
}

// SetHeartbeatTable replaces the play heartbeat table. Empty tables are ignored,
// intervals below MinHeartbeat are raised to it and negative offsets are dropped.
func (t *Tracker) SetHeartbeatTable(table map[int]int) {
	if len(table) == 0 {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.warnNegative("play", table)
	t.playTable = newIntervalTable(table, MinHeartbeat)
}

// SetBufferHeartbeat replaces the buffer heartbeat table with a single interval.
func (t *Tracker) SetBufferHeartbeat(seconds int) {
	t.SetBufferHeartbeatTable(map[int]int{0: seconds})
}

// SetBufferHeartbeatTable replaces the buffer heartbeat table with the same
// rules as SetHeartbeatTable, using MinBufferHeartbeat as the floor.
func (t *Tracker) SetBufferHeartbeatTable(table map[int]int) {
	if len(table) == 0 {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.warnNegative("buffer", table)
	t.bufferTable = newIntervalTable(table, MinBufferHeartbeat)
}

func (t *Tracker) warnNegative(table string, src map[int]int) {
	if keys := negativeKeys(src); len(keys) > 0 {
		t.logger.Warn("negative heartbeat offsets dropped",
			slog.String("table", table),
			slog.Any("offsets", keys))
	}
}

// Play signals the intent to play. Playback is not considered running until
// PlaybackStart or PlaybackResumed.
func (t *Tracker) Play(position int, extra map[string]any) {
	t.do(func() { t.play(position, extra) })
}

// BufferStart signals that the player started buffering. While playing this
// is a rebuffer and arms the rebuffer heartbeat instead of the buffer one.
func (t *Tracker) BufferStart(position int, extra map[string]any) {
	t.do(func() { t.bufferStartAt(position, extra) })
}

// PlaybackStart signals that media started playing.
func (t *Tracker) PlaybackStart(position int, extra map[string]any) {
	t.do(func() { t.playbackStart(position, extra) })
}

// PlaybackResumed signals that media resumed after a pause or buffering.
func (t *Tracker) PlaybackResumed(position int, extra map[string]any) {
	t.do(func() { t.playbackResumed(position, extra) })
}

// PlaybackPaused signals a pause.
func (t *Tracker) PlaybackPaused(position int, extra map[string]any) {
	t.do(func() { t.playbackPaused(position, extra) })
}

// PlaybackStopped emits av.stop and starts a fresh session.
// Heartbeat tables and the property bag survive the reset.
func (t *Tracker) PlaybackStopped(position int, extra map[string]any) {
	t.do(func() { t.playbackStopped(position, extra) })
}

// Seek emits av.seek.start followed by av.backward when oldPosition is past
// newPosition, av.forward otherwise.
func (t *Tracker) Seek(oldPosition, newPosition int, extra map[string]any) {
	t.do(func() {
		if oldPosition > newPosition {
			t.seek(seekBackward, oldPosition, newPosition, extra)
		} else {
			t.seek(seekForward, oldPosition, newPosition, extra)
		}
	})
}

// SeekBackward emits av.seek.start followed by av.backward.
func (t *Tracker) SeekBackward(oldPosition, newPosition int, extra map[string]any) {
	t.do(func() { t.seek(seekBackward, oldPosition, newPosition, extra) })
}

// SeekForward emits av.seek.start followed by av.forward.
func (t *Tracker) SeekForward(oldPosition, newPosition int, extra map[string]any) {
	t.do(func() { t.seek(seekForward, oldPosition, newPosition, extra) })
}

// SeekStart emits av.seek.start alone.
func (t *Tracker) SeekStart(oldPosition int, extra map[string]any) {
	t.do(func() { t.seekStart(oldPosition, extra) })
}

// Release cancels the pending heartbeat and retires the tracker.
// Every later call is ignored.
func (t *Tracker) Release() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopHeartbeatTimer()
	t.closed = true
	t.outbox = nil
}

// do runs fn inside the tracker's critical section and flushes whatever it emitted.
func (t *Tracker) do(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return
	}
	fn()
	t.flush()
}

func (t *Tracker) nowMillis() int64 {
	return t.clock.Now().UnixMilli()
}

func (t *Tracker) startSession() {
	if t.sessionStart == 0 {
		t.sessionStart = t.nowMillis()
	}
}

// updateDuration measures the wall time since the previous accrual point,
// which is always sessionStart + sessionDuration.
func (t *Tracker) updateDuration() {
	t.eventDuration = int(t.nowMillis() - t.sessionStart - int64(t.sessionDuration))
	t.sessionDuration += t.eventDuration
}

func (t *Tracker) moveTo(position int) {
	t.previousPosition = t.position
	t.position = position
}

func (t *Tracker) play(position int, extra map[string]any) {
	t.startSession()
	t.eventDuration = 0
	t.previousPosition = position
	t.position = position
	t.playing = false
	t.stopHeartbeatTimer()
	t.emit(EventPlay, true, extra)
}

func (t *Tracker) bufferStartAt(position int, extra map[string]any) {
	t.startSession()
	t.updateDuration()
	t.moveTo(position)
	t.bufferStart = t.nowMillis()
	t.stopHeartbeatTimer()

	if t.playing {
		t.armHeartbeat(HeartbeatRebuffer, MinBufferHeartbeat)
		t.emit(EventRebufferStart, true, extra)
		return
	}
	t.armHeartbeat(HeartbeatBuffer, MinBufferHeartbeat)
	t.emit(EventBufferStart, true, extra)
}

func (t *Tracker) playbackStart(position int, extra map[string]any) {
	t.startSession()
	t.updateDuration()
	t.previousPosition = position
	t.position = position
	t.playing = true
	t.stopHeartbeatTimer()
	t.armHeartbeat(HeartbeatPlay, MinHeartbeat)
	t.emit(EventStart, true, extra)
}

func (t *Tracker) playbackResumed(position int, extra map[string]any) {
	t.startSession()
	t.updateDuration()
	t.moveTo(position)
	t.playing = true
	t.stopHeartbeatTimer()
	t.armHeartbeat(HeartbeatPlay, MinHeartbeat)
	t.emit(EventResume, true, extra)
}

func (t *Tracker) playbackPaused(position int, extra map[string]any) {
	t.startSession()
	t.updateDuration()
	t.moveTo(position)
	t.playing = false
	t.stopHeartbeatTimer()
	t.emit(EventPause, true, extra)
}

func (t *Tracker) playbackStopped(position int, extra map[string]any) {
	t.startSession()
	t.updateDuration()
	t.moveTo(position)
	t.playing = false
	t.stopHeartbeatTimer()
	t.sessionStart = 0
	t.sessionDuration = 0
	t.bufferStart = 0
	t.emit(EventStop, true, extra)
	t.resetSession()
}

func (t *Tracker) resetSession() {
	previous := t.sessionID
	t.sessionID = t.newID()
	t.previousEvent = ""
	t.previousPosition = 0
	t.position = 0
	t.eventDuration = 0
	t.logger.Debug("session reset",
		slog.String("previous_session_id", previous),
		logger.SessionID(t.sessionID))
}

type seekDirection string

const (
	seekBackward seekDirection = "backward"
	seekForward  seekDirection = "forward"
)

func (t *Tracker) seek(dir seekDirection, oldPosition, newPosition int, extra map[string]any) {
	if t.playing {
		t.startSession()
	}
	t.seekStart(oldPosition, extra)

	t.eventDuration = 0
	t.previousPosition = oldPosition
	t.position = newPosition
	t.emit("av."+string(dir), true, extra)
}

func (t *Tracker) seekStart(oldPosition int, extra map[string]any) {
	if t.playing {
		t.startSession()
	}
	t.moveTo(oldPosition)
	if t.playing {
		t.updateDuration()
	} else {
		t.eventDuration = 0
	}
	t.emit(EventSeekStart, true, extra)
}

// SetProperty stores a property copied into every future event.
func (t *Tracker) SetProperty(key string, value any) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.props[key] = value
}

// Property returns a property from the tracker's bag.
func (t *Tracker) Property(key string) (any, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	v, ok := t.props[key]
	return v, ok
}

// DeleteProperty removes a property from the tracker's bag.
func (t *Tracker) DeleteProperty(key string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.props, key)
}

// Properties returns a copy of the tracker's property bag.
func (t *Tracker) Properties() map[string]any {
	t.mu.Lock()
	defer t.mu.Unlock()
	return maps.Clone(t.props)
}
