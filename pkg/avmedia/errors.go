package avmedia

import "errors"

var (
	// ErrInvalidConfig is returned by New when the supplied options do not validate.
	ErrInvalidConfig = errors.New("avmedia: invalid tracker configuration")

	// ErrNegativeOffset is returned when a heartbeat table contains a negative minute offset.
	ErrNegativeOffset = errors.New("avmedia: heartbeat table minute offset must not be negative")

	// ErrInvalidSchedule is returned when a heartbeat schedule document cannot be parsed.
	ErrInvalidSchedule = errors.New("avmedia: invalid heartbeat schedule")
)
