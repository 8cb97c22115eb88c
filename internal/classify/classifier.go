// Package classify turns discrete button presses plus time into click events.
package classify

import "time"

// Button identifies a classifiable button. ButtonNone is the no-pending
// sentinel.
type Button int

const (
	ButtonNone Button = iota
	ButtonLeft
	ButtonRight
)

func (b Button) String() string {
	switch b {
	case ButtonLeft:
		return "left"
	case ButtonRight:
		return "right"
	default:
		return "none"
	}
}

// Kind discriminates classification outcomes.
type Kind int

const (
	SingleClick Kind = iota + 1
	DoubleClick
	// Quit is the left+right combination, the designated exit gesture.
	Quit
)

// Event is one classification decision.
type Event struct {
	Kind   Kind
	Button Button // unset for Quit
}

// DefaultWindow is the double-click window: a press unmatched for this long
// becomes a single click.
const DefaultWindow = 300 * time.Millisecond

// Classifier disambiguates single from double clicks with a single pending
// slot and a wall-clock deadline. Time is passed in by the caller, so the
// machine itself is deterministic. The zero state is idle; New is only needed
// to pick a non-default window.
//
// Invariant: armed implies pending != ButtonNone, and the state resets to
// idle after every decision.
type Classifier struct {
	window  time.Duration
	pending Button
	armed   bool
	armedAt time.Time
}

func New(window time.Duration) *Classifier {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Classifier{window: window}
}

// Press records that button b was pressed at time now. Buttons other than
// left and right are ignored; the middle button never enters the machine.
//
// A press while idle arms the deadline and produces nothing. A repeat of the
// pending button is a double click. The opposite button while pending is the
// quit gesture, decided immediately.
func (c *Classifier) Press(b Button, now time.Time) (Event, bool) {
	if b != ButtonLeft && b != ButtonRight {
		return Event{}, false
	}
	switch {
	case c.pending == ButtonNone:
		c.pending = b
		c.armed = true
		c.armedAt = now
		return Event{}, false
	case c.pending != b:
		c.reset()
		return Event{Kind: Quit}, true
	default:
		ev := Event{Kind: DoubleClick, Button: c.pending}
		c.reset()
		return ev, true
	}
}

// CheckDeadline emits a single click for the pending button once the window
// has elapsed. Comparison is in millisecond granularity, inclusive. Calling
// it while idle is a no-op.
func (c *Classifier) CheckDeadline(now time.Time) (Event, bool) {
	if !c.armed {
		return Event{}, false
	}
	if now.Sub(c.armedAt).Milliseconds() < c.window.Milliseconds() {
		return Event{}, false
	}
	ev := Event{Kind: SingleClick, Button: c.pending}
	c.reset()
	return ev, true
}

// Pending reports the button currently awaiting classification.
func (c *Classifier) Pending() Button {
	return c.pending
}

func (c *Classifier) reset() {
	c.pending = ButtonNone
	c.armed = false
}
