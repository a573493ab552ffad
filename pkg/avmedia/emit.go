package avmedia

import (
	"maps"

	"github.com/dmitrymomot/mediatrack/pkg/event"
	"github.com/dmitrymomot/mediatrack/pkg/logger"
)

// Event names emitted by the tracker.
const (
	EventPlay              = "av.play"
	EventStart             = "av.start"
	EventResume            = "av.resume"
	EventPause             = "av.pause"
	EventStop              = "av.stop"
	EventBufferStart       = "av.buffer.start"
	EventRebufferStart     = "av.rebuffer.start"
	EventHeartbeat         = "av.heartbeat"
	EventBufferHeartbeat   = "av.buffer.heartbeat"
	EventRebufferHeartbeat = "av.rebuffer.heartbeat"
	EventSeekStart         = "av.seek.start"
	EventBackward          = "av.backward"
	EventForward           = "av.forward"
	EventError             = "av.error"
	EventAdClick           = "av.ad.click"
	EventAdSkip            = "av.ad.skip"
	EventDisplay           = "av.display"
	EventClose             = "av.close"
	EventVolume            = "av.volume"
	EventSubtitleOn        = "av.subtitle.on"
	EventSubtitleOff       = "av.subtitle.off"
	EventFullscreenOn      = "av.fullscreen.on"
	EventFullscreenOff     = "av.fullscreen.off"
	EventQuality           = "av.quality"
	EventSpeed             = "av.speed"
	EventShare             = "av.share"
)

// Property keys written by the tracker.
const (
	PropSessionID        = "session_id"
	PropPreviousPosition = "previous_position"
	PropPosition         = "position"
	PropDuration         = "duration"
	PropPreviousEvent    = "previous_event"
	PropError            = "error"
)

// emit builds an event from the current state and queues it for the next flush.
// Position-bearing events also advance previousEvent, after it has been read.
func (t *Tracker) emit(name string, withPosition bool, extra map[string]any) {
	data := make(map[string]any, len(t.props)+len(extra)+5)
	maps.Copy(data, t.props)

	if withPosition {
		data[PropPreviousPosition] = t.previousPosition
		data[PropPosition] = t.position
		data[PropDuration] = t.eventDuration
		data[PropPreviousEvent] = t.previousEvent
		t.previousEvent = name
	}
	data[PropSessionID] = t.sessionID
	maps.Copy(data, extra)

	t.outbox = append(t.outbox, event.Event{Name: name, Data: data})
}

// flush hands queued events to the sink and requests a single send.
func (t *Tracker) flush() {
	if len(t.outbox) == 0 {
		return
	}
	batch := t.outbox
	t.outbox = nil

	if t.sink == nil {
		t.logger.Debug("events dropped: no sink",
			logger.SessionID(t.sessionID),
			logger.Count(len(batch)))
		return
	}
	for _, e := range batch {
		t.sink.Add(e)
	}
	t.sink.Send()
}
