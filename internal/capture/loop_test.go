package capture_test

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bzhung/mousegest/internal/capture"
	"github.com/bzhung/mousegest/internal/log"
	"github.com/bzhung/mousegest/internal/mice"
)

var errScriptDone = errors.New("script done")

// step is one loop iteration of a scripted session: the clock advances, then
// the chunks (if any) become readable.
type step struct {
	advance time.Duration
	chunks  [][]byte
	eof     bool
}

type fakeChannel struct {
	steps  []step
	now    time.Time
	cur    [][]byte
	eof    bool
	closed bool
}

func (f *fakeChannel) WaitReadable(timeout time.Duration) (bool, error) {
	if len(f.steps) == 0 {
		return false, errScriptDone
	}
	s := f.steps[0]
	f.steps = f.steps[1:]
	f.now = f.now.Add(s.advance)
	f.cur = s.chunks
	f.eof = s.eof
	return len(f.cur) > 0 || f.eof, nil
}

func (f *fakeChannel) TryRead(buf []byte) (int, error) {
	if len(f.cur) == 0 {
		if f.eof {
			return 0, mice.ErrStreamClosed
		}
		return 0, mice.ErrWouldBlock
	}
	c := f.cur[0]
	f.cur = f.cur[1:]
	return copy(buf, c), nil
}

func (f *fakeChannel) Close() error {
	f.closed = true
	return nil
}

// Packet constructors. Bit 3 of byte 0 is the always-set reserved bit.
func press(flags byte) []byte { return []byte{0x08 | flags, 0, 0, 0} }
func wheel(z byte) []byte     { return []byte{0x08, 0, 0, z} }
func motion(x, y byte) []byte { return []byte{0x08, x, y, 0} }

const (
	left   = 0x01
	right  = 0x02
	middle = 0x04
)

func run(t *testing.T, steps []step) (output string, closed bool, err error) {
	t.Helper()
	ch := &fakeChannel{
		steps: steps,
		now:   time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	var out bytes.Buffer
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	loop := capture.New(ch, &out, logger, log.NewRaw(nil), capture.Options{
		Clock: func() time.Time { return ch.now },
	})
	err = loop.Run()
	return out.String(), ch.closed, err
}

func TestDoubleClickWithinWindow(t *testing.T) {
	out, _, err := run(t, []step{
		{chunks: [][]byte{press(left)}},
		{advance: 50 * time.Millisecond, chunks: [][]byte{press(left)}},
	})
	assert.ErrorIs(t, err, errScriptDone)
	assert.Equal(t, "z\n", out)
}

func TestSingleClickAfterTimeout(t *testing.T) {
	out, _, err := run(t, []step{
		{chunks: [][]byte{press(left)}},
		{advance: 350 * time.Millisecond},
	})
	assert.ErrorIs(t, err, errScriptDone)
	assert.Equal(t, "<\n", out)
}

func TestSingleClickRight(t *testing.T) {
	// The deadline is observed on an idle iteration, at most one poll
	// interval late.
	steps := []step{{chunks: [][]byte{press(right)}}}
	for i := 0; i < 16; i++ {
		steps = append(steps, step{advance: 20 * time.Millisecond})
	}
	out, _, err := run(t, steps)
	assert.ErrorIs(t, err, errScriptDone)
	assert.Equal(t, ">\n", out)
}

func TestQuitGesture(t *testing.T) {
	out, closed, err := run(t, []step{
		{chunks: [][]byte{press(left)}},
		{advance: 5 * time.Millisecond, chunks: [][]byte{press(right)}},
	})
	assert.NoError(t, err)
	assert.Equal(t, "q\n", out)
	assert.True(t, closed, "channel closed after quit")
}

func TestQuitGestureSamePacketBurst(t *testing.T) {
	out, closed, err := run(t, []step{
		{chunks: [][]byte{press(right), press(left)}},
	})
	assert.NoError(t, err)
	assert.Equal(t, "q\n", out)
	assert.True(t, closed)
}

func TestWheelOutput(t *testing.T) {
	out, _, err := run(t, []step{
		{chunks: [][]byte{wheel(0x01), wheel(0xff)}},
	})
	assert.ErrorIs(t, err, errScriptDone)
	assert.Equal(t, "9\n0\n", out)
}

func TestWheelDoesNotDisturbPending(t *testing.T) {
	// Wheel packets between two presses of the same button still leave a
	// double click.
	out, _, err := run(t, []step{
		{chunks: [][]byte{press(left)}},
		{advance: 100 * time.Millisecond, chunks: [][]byte{wheel(0x01)}},
		{advance: 100 * time.Millisecond, chunks: [][]byte{press(left)}},
	})
	assert.ErrorIs(t, err, errScriptDone)
	assert.Equal(t, "9\nz\n", out)
}

func TestMiddleButtonPause(t *testing.T) {
	out, _, err := run(t, []step{
		{chunks: [][]byte{press(middle)}},
	})
	assert.ErrorIs(t, err, errScriptDone)
	assert.Equal(t, "p\n", out)
}

func TestMiddleDoesNotDisturbPending(t *testing.T) {
	out, _, err := run(t, []step{
		{chunks: [][]byte{press(left)}},
		{advance: 50 * time.Millisecond, chunks: [][]byte{press(middle)}},
		{advance: 50 * time.Millisecond, chunks: [][]byte{press(left)}},
	})
	assert.ErrorIs(t, err, errScriptDone)
	assert.Equal(t, "p\nz\n", out)
}

func TestMotionOnlyProducesNothing(t *testing.T) {
	out, _, err := run(t, []step{
		{chunks: [][]byte{motion(5, 250), motion(0xff, 1)}},
	})
	assert.ErrorIs(t, err, errScriptDone)
	assert.Empty(t, out)
}

func TestWheelTakesPrecedenceOverButtons(t *testing.T) {
	// A report carrying both wheel and button state counts as wheel only;
	// nothing is left pending afterwards.
	out, _, err := run(t, []step{
		{chunks: [][]byte{{0x08 | left, 0, 0, 0x01}}},
		{advance: 350 * time.Millisecond},
	})
	assert.ErrorIs(t, err, errScriptDone)
	assert.Equal(t, "9\n", out)
}

func TestShortChunkDropped(t *testing.T) {
	// The 0xFA mode-switch acknowledge arrives as a single byte and is
	// skipped without breaking packet framing.
	out, _, err := run(t, []step{
		{chunks: [][]byte{{0xfa}, press(left), press(left)}},
	})
	assert.ErrorIs(t, err, errScriptDone)
	assert.Equal(t, "z\n", out)
}

func TestStreamClosedIsFatal(t *testing.T) {
	_, _, err := run(t, []step{
		{chunks: [][]byte{press(middle)}},
		{eof: true},
	})
	assert.ErrorIs(t, err, mice.ErrStreamClosed)
}

func TestDeadlineCheckedOnIdleIterations(t *testing.T) {
	// No readiness at all after the press; the deadline alone resolves it.
	out, _, err := run(t, []step{
		{chunks: [][]byte{press(left)}},
		{advance: 20 * time.Millisecond},
		{advance: 20 * time.Millisecond},
		{advance: 280 * time.Millisecond},
	})
	assert.ErrorIs(t, err, errScriptDone)
	assert.Equal(t, "<\n", out)
}
