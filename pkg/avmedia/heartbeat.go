package avmedia

import (
	"log/slog"
	"time"

	"github.com/dmitrymomot/mediatrack/pkg/logger"
)

// HeartbeatKind identifies which heartbeat chain owns the timer slot.
type HeartbeatKind int

const (
	HeartbeatNone HeartbeatKind = iota
	HeartbeatPlay
	HeartbeatBuffer
	HeartbeatRebuffer
)

func (k HeartbeatKind) String() string {
	switch k {
	case HeartbeatPlay:
		return "play"
	case HeartbeatBuffer:
		return "buffer"
	case HeartbeatRebuffer:
		return "rebuffer"
	default:
		return "none"
	}
}

// deferredTask is one armed heartbeat. A task only runs if it is still the
// tracker's pending task when its timer fires and the lock is acquired.
type deferredTask struct {
	kind     HeartbeatKind
	interval time.Duration
	timer    Timer
}

// Heartbeat emits av.heartbeat and re-arms the play heartbeat. It is a no-op
// while not playing.
func (t *Tracker) Heartbeat(extra map[string]any) {
	t.do(func() { t.heartbeat(extra) })
}

// BufferHeartbeat emits av.buffer.heartbeat and re-arms itself. It is a no-op
// while playing.
func (t *Tracker) BufferHeartbeat(extra map[string]any) {
	t.do(func() { t.bufferHeartbeat(extra) })
}

// RebufferHeartbeat emits av.rebuffer.heartbeat and re-arms itself. It is a
// no-op while not playing.
func (t *Tracker) RebufferHeartbeat(extra map[string]any) {
	t.do(func() { t.rebufferHeartbeat(extra) })
}

func (t *Tracker) heartbeat(extra map[string]any) {
	if !t.playing {
		return
	}
	t.startSession()
	t.updateDuration()
	t.previousPosition = t.position
	t.position += t.eventDuration

	t.stopHeartbeatTimer()
	t.armHeartbeat(HeartbeatPlay, t.playTable.next(t.sessionStart, t.nowMillis()))
	t.emit(EventHeartbeat, true, extra)
}

func (t *Tracker) bufferHeartbeat(extra map[string]any) {
	if t.playing {
		return
	}
	t.startSession()
	t.updateDuration()

	t.stopHeartbeatTimer()
	if t.bufferStart == 0 {
		t.bufferStart = t.nowMillis()
	}
	t.armHeartbeat(HeartbeatBuffer, t.bufferTable.next(t.bufferStart, t.nowMillis()))
	t.emit(EventBufferHeartbeat, true, extra)
}

func (t *Tracker) rebufferHeartbeat(extra map[string]any) {
	if !t.playing {
		return
	}
	t.startSession()
	t.updateDuration()
	t.previousPosition = t.position

	t.stopHeartbeatTimer()
	if t.bufferStart == 0 {
		t.bufferStart = t.nowMillis()
	}
	t.armHeartbeat(HeartbeatRebuffer, t.bufferTable.next(t.bufferStart, t.nowMillis()))
	t.emit(EventRebufferHeartbeat, true, extra)
}

// armHeartbeat fills the single timer slot. Callers cancel the previous task first.
func (t *Tracker) armHeartbeat(kind HeartbeatKind, seconds int) {
	task := &deferredTask{kind: kind, interval: time.Duration(seconds) * time.Second}
	task.timer = t.clock.AfterFunc(task.interval, func() { t.fire(task) })
	t.pending = task

	t.logger.Debug("heartbeat armed",
		logger.SessionID(t.sessionID),
		slog.String("kind", kind.String()),
		logger.Interval(task.interval))
}

// stopHeartbeatTimer cancels the pending task, if any.
func (t *Tracker) stopHeartbeatTimer() {
	if t.pending == nil {
		return
	}
	t.pending.timer.Stop()
	t.pending = nil
}

// fire is the timer callback. It enters the same critical section as the
// public API and drops tasks that were cancelled or replaced meanwhile.
func (t *Tracker) fire(task *deferredTask) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed || t.pending != task {
		t.logger.Debug("stale heartbeat discarded", slog.String("kind", task.kind.String()))
		return
	}
	t.pending = nil

	switch task.kind {
	case HeartbeatPlay:
		t.heartbeat(nil)
	case HeartbeatBuffer:
		t.bufferHeartbeat(nil)
	case HeartbeatRebuffer:
		t.rebufferHeartbeat(nil)
	}
	t.logger.Debug("heartbeat fired",
		logger.SessionID(t.sessionID),
		slog.String("kind", task.kind.String()),
		logger.Position(t.position))
	t.flush()
}
