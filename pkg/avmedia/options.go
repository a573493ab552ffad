package avmedia

import (
	"log/slog"
	"maps"

	"github.com/google/uuid"
)

// Option configures a Tracker at construction time.
type Option func(*options)

type options struct {
	clock       Clock
	logger      *slog.Logger
	newID       func() string
	playTable   map[int]int
	bufferTable map[int]int
	props       map[string]any
}

func defaultOptions() *options {
	return &options{
		clock:  wallClock{},
		logger: slog.Default(),
		newID:  uuid.NewString,
	}
}

// WithClock replaces the wall clock. Nil clocks are ignored.
func WithClock(c Clock) Option {
	return func(o *options) {
		if c != nil {
			o.clock = c
		}
	}
}

// WithLogger sets the logger for heartbeat and delivery diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithSessionIDGenerator overrides how session identifiers are produced.
func WithSessionIDGenerator(fn func() string) Option {
	return func(o *options) {
		if fn != nil {
			o.newID = fn
		}
	}
}

// WithHeartbeat sets a uniform play heartbeat interval in seconds.
func WithHeartbeat(seconds int) Option {
	return WithHeartbeatTable(map[int]int{0: seconds})
}

// WithHeartbeatTable sets the play heartbeat table. Empty tables are ignored.
func WithHeartbeatTable(table map[int]int) Option {
	return func(o *options) {
		if len(table) > 0 {
			o.playTable = maps.Clone(table)
		}
	}
}

// WithBufferHeartbeat sets a uniform buffer heartbeat interval in seconds.
func WithBufferHeartbeat(seconds int) Option {
	return WithBufferHeartbeatTable(map[int]int{0: seconds})
}

// WithBufferHeartbeatTable sets the buffer heartbeat table. Empty tables are ignored.
func WithBufferHeartbeatTable(table map[int]int) Option {
	return func(o *options) {
		if len(table) > 0 {
			o.bufferTable = maps.Clone(table)
		}
	}
}

// WithSchedule applies both tables of a parsed Schedule.
func WithSchedule(s Schedule) Option {
	return func(o *options) {
		WithHeartbeatTable(s.Play)(o)
		WithBufferHeartbeatTable(s.Buffer)(o)
	}
}

// WithConfig applies an environment-loaded Config.
func WithConfig(c Config) Option {
	return func(o *options) {
		WithHeartbeatTable(c.playTable())(o)
		WithBufferHeartbeatTable(c.bufferTable())(o)
	}
}

// WithProperties seeds the tracker property bag copied into every event.
func WithProperties(props map[string]any) Option {
	return func(o *options) {
		if len(props) > 0 {
			o.props = maps.Clone(props)
		}
	}
}
