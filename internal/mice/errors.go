package mice

import "errors"

// Channel error taxonomy. Would-block is the ordinary end-of-drain signal;
// everything else is fatal to the process.
var (
	// ErrWouldBlock means no packet is currently available. Not a
	// failure: the read loop stops draining and returns to its bounded
	// wait.
	ErrWouldBlock = errors.New("no packet available")

	// ErrStreamClosed means the device returned end-of-stream (a
	// zero-byte read). The device node went away; the process exits.
	ErrStreamClosed = errors.New("input stream closed")
)
