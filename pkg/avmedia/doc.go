// Package avmedia tracks audio and video playback sessions and produces the
// analytics events that describe them.
//
// A Tracker is fed discrete lifecycle signals from player glue code (play,
// start, pause, resume, stop, seek, buffer start, error) and keeps the state
// needed to describe them: cursor positions, elapsed play time per event,
// cumulative session time and a session identifier that is regenerated on
// every stop. While media plays or buffers the tracker fires heartbeats on its
// own, at intervals chosen from minute-offset tables.
//
// # Usage
//
//	sink := event.NewBuffer(deliverer)
//	tracker, err := avmedia.New(sink,
//		avmedia.WithHeartbeatTable(map[int]int{0: 5, 1: 10, 5: 30}),
//		avmedia.WithBufferHeartbeat(1),
//		avmedia.WithProperties(map[string]any{"av_content_id": "movie-42"}),
//	)
//	if err != nil {
//		return err
//	}
//	defer tracker.Release()
//
//	tracker.Play(0, nil)
//	tracker.PlaybackStart(0, nil)
//	tracker.Seek(12_000, 3_000, nil) // av.seek.start then av.backward
//	tracker.PlaybackPaused(3_500, map[string]any{"av_reason": "user"})
//	tracker.PlaybackStopped(3_500, nil)
//
// Glue code that receives loosely-typed actions can use Track instead:
//
//	tracker.Track("av.pause", map[string]any{"av_position": 3500}, nil)
//
// # Heartbeats
//
// Play heartbeats run while playing; buffer heartbeats while buffering before
// playback; rebuffer heartbeats while buffering during playback. The three
// chains share one timer slot, so at most one heartbeat is pending. Each fire
// looks up the next interval with the whole minutes elapsed since the session
// (or buffering) began; offsets missing from the table use the entry at 0.
// Intervals are floored at MinHeartbeat and MinBufferHeartbeat seconds.
//
// # Events
//
// Position-bearing events carry previous_position, position, duration and
// previous_event. All events carry session_id, the tracker property bag and
// the caller's extra properties, which win on key collisions. Each call adds
// its events to the Sink and then calls Send once. A nil Sink drops events.
//
// # Concurrency
//
// A Tracker is safe for concurrent use. Calls and heartbeat timers are
// serialised by one mutex; the Sink runs under it and must not re-enter the
// Tracker.
package avmedia
