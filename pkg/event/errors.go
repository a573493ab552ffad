package event

import "errors"

// ErrFanoutClosed is returned when delivering through a closed Fanout.
var ErrFanoutClosed = errors.New("event: fanout is closed")
