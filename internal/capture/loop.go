// Package capture runs the wait/drain/classify cycle that turns a mouse
// byte stream into symbol output.
package capture

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/bzhung/mousegest/internal/classify"
	"github.com/bzhung/mousegest/internal/log"
	"github.com/bzhung/mousegest/internal/mice"
)

// Channel is the non-blocking byte source the loop drains. *mice.Device
// implements it; tests substitute fakes.
type Channel interface {
	WaitReadable(timeout time.Duration) (bool, error)
	TryRead(buf []byte) (int, error)
	Close() error
}

// Output symbols, one per line on stdout.
const (
	SymbolDoubleLeft  byte = 'z'
	SymbolDoubleRight byte = 'x'
	SymbolSingleLeft  byte = '<'
	SymbolSingleRight byte = '>'
	SymbolPause       byte = 'p'
	SymbolScrollDown  byte = '9'
	SymbolScrollUp    byte = '0'
	SymbolQuit        byte = 'q'
)

// DefaultPollInterval bounds the readiness wait. It is also the worst-case
// lateness of a single-click deadline, which is an accepted tolerance.
const DefaultPollInterval = 20 * time.Millisecond

// Options tune a Loop. Zero values select the defaults.
type Options struct {
	// ReportSize is the negotiated report size in bytes; defaults to the
	// 4-byte ImPS/2 report.
	ReportSize int
	// Window is the double-click window; defaults to classify.DefaultWindow.
	Window time.Duration
	// PollInterval bounds the readiness wait.
	PollInterval time.Duration
	// Clock overrides time.Now for tests.
	Clock func() time.Time
}

// Loop owns the whole runtime state of a capture session: the device
// channel, the classifier, and the output writer. Single goroutine, no
// locking.
type Loop struct {
	ch     Channel
	out    io.Writer
	logger *slog.Logger
	raw    log.RawLogger

	cls        *classify.Classifier
	reportSize int
	poll       time.Duration
	now        func() time.Time
}

func New(ch Channel, out io.Writer, logger *slog.Logger, raw log.RawLogger, opts Options) *Loop {
	if opts.ReportSize == 0 {
		opts.ReportSize = mice.ReportSizeImPS2
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = DefaultPollInterval
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	return &Loop{
		ch:         ch,
		out:        out,
		logger:     logger,
		raw:        raw,
		cls:        classify.New(opts.Window),
		reportSize: opts.ReportSize,
		poll:       opts.PollInterval,
		now:        opts.Clock,
	}
}

// Run cycles until the quit gesture or a fatal error. Each iteration waits
// for readiness with a bounded timeout, drains every immediately available
// packet, then checks the click deadline exactly once, so a pending single
// click resolves even when the device stays silent.
//
// Run returns nil on the quit gesture and closes the channel; every error
// return is fatal to the session.
func (l *Loop) Run() error {
	buf := make([]byte, l.reportSize)
	for {
		ready, err := l.ch.WaitReadable(l.poll)
		if err != nil {
			return err
		}

		if ready {
			quit, err := l.drain(buf)
			if err != nil {
				return err
			}
			if quit {
				_ = l.ch.Close()
				return nil
			}
		}

		if ev, ok := l.cls.CheckDeadline(l.now()); ok {
			if err := l.emit(symbolFor(ev)); err != nil {
				return err
			}
		}
	}
}

// drain consumes packets until the channel would block. Short chunks (the
// 0xFA mode-switch acknowledge, or a torn packet) are dropped whole; partial
// reads are not stitched across iterations.
func (l *Loop) drain(buf []byte) (quit bool, err error) {
	for {
		n, err := l.ch.TryRead(buf)
		if errors.Is(err, mice.ErrWouldBlock) {
			return false, nil
		}
		if err != nil {
			return false, err
		}
		l.raw.Chunk(buf[:n])

		report, ok := mice.DecodeReport(buf[:n], l.reportSize)
		if !ok {
			l.logger.Debug("dropping short chunk", "len", n)
			continue
		}
		quit, err := l.dispatch(report)
		if err != nil || quit {
			return quit, err
		}
	}
}

// dispatch maps one decoded report to output. Wheel motion takes precedence
// whenever Z is non-zero; otherwise the first set button in left, right,
// middle order decides. A motion-only report produces nothing.
func (l *Loop) dispatch(r mice.Report) (quit bool, err error) {
	l.logger.Log(context.Background(), log.LevelTrace, "report",
		"left", r.Left, "right", r.Right, "middle", r.Middle,
		"x", r.X, "y", r.Y, "z", r.Z)

	switch {
	case r.Z > 0:
		return false, l.emit(SymbolScrollDown)
	case r.Z < 0:
		return false, l.emit(SymbolScrollUp)
	case r.Left:
		return l.press(classify.ButtonLeft)
	case r.Right:
		return l.press(classify.ButtonRight)
	case r.Middle:
		// Middle bypasses the classifier and leaves any pending
		// button untouched.
		return false, l.emit(SymbolPause)
	}
	return false, nil
}

func (l *Loop) press(b classify.Button) (quit bool, err error) {
	ev, ok := l.cls.Press(b, l.now())
	if !ok {
		return false, nil
	}
	if err := l.emit(symbolFor(ev)); err != nil {
		return false, err
	}
	return ev.Kind == classify.Quit, nil
}

// emit writes one symbol line. The writer is unbuffered so a downstream
// reader sees each event as it happens.
func (l *Loop) emit(sym byte) error {
	if _, err := l.out.Write([]byte{sym, '\n'}); err != nil {
		return fmt.Errorf("write symbol: %w", err)
	}
	return nil
}

func symbolFor(ev classify.Event) byte {
	switch ev.Kind {
	case classify.DoubleClick:
		if ev.Button == classify.ButtonLeft {
			return SymbolDoubleLeft
		}
		return SymbolDoubleRight
	case classify.SingleClick:
		if ev.Button == classify.ButtonLeft {
			return SymbolSingleLeft
		}
		return SymbolSingleRight
	default:
		return SymbolQuit
	}
}
