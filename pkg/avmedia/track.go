package avmedia

import (
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

// Option keys understood by Track.
const (
	OptPosition         = "av_position"
	OptPreviousPosition = "av_previous_position"
	OptPlayerError      = "av_player_error"
)

// Track routes a lifecycle action by event name. Missing or malformed option
// values fall back to 0 or "". Unknown actions are emitted as bare events
// without position fields.
//
// av.seek.start reads only av_previous_position, the position the seek started from.
func (t *Tracker) Track(action string, opts map[string]any, extra map[string]any) {
	t.do(func() {
		switch action {
		case EventHeartbeat:
			t.heartbeat(extra)
		case EventBufferHeartbeat:
			t.bufferHeartbeat(extra)
		case EventRebufferHeartbeat:
			t.rebufferHeartbeat(extra)
		case EventPlay:
			t.play(intOpt(opts, OptPosition), extra)
		case EventBufferStart:
			t.bufferStartAt(intOpt(opts, OptPosition), extra)
		case EventStart:
			t.playbackStart(intOpt(opts, OptPosition), extra)
		case EventResume:
			t.playbackResumed(intOpt(opts, OptPosition), extra)
		case EventPause:
			t.playbackPaused(intOpt(opts, OptPosition), extra)
		case EventStop:
			t.playbackStopped(intOpt(opts, OptPosition), extra)
		case EventBackward:
			t.seek(seekBackward, intOpt(opts, OptPreviousPosition), intOpt(opts, OptPosition), extra)
		case EventForward:
			t.seek(seekForward, intOpt(opts, OptPreviousPosition), intOpt(opts, OptPosition), extra)
		case EventSeekStart:
			t.seekStart(intOpt(opts, OptPreviousPosition), extra)
		case EventError:
			t.playerError(stringOpt(opts, OptPlayerError), extra)
		default:
			t.emit(action, false, extra)
		}
	})
}

// intOpt accepts Go numbers, as decoded from YAML or JSON, and base 10
// strings. Booleans and everything else read as 0.
func intOpt(opts map[string]any, key string) int {
	switch v := opts[key].(type) {
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		n, err := cast.ToIntE(v)
		if err != nil {
			return 0
		}
		return n
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}

func stringOpt(opts map[string]any, key string) string {
	s, _ := opts[key].(string)
	return s
}
