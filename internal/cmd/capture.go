package cmd

import (
	"log/slog"
	"os"
	"time"

	"golang.org/x/term"

	"github.com/bzhung/mousegest/internal/capture"
	"github.com/bzhung/mousegest/internal/log"
	"github.com/bzhung/mousegest/internal/mice"
)

// Capture is the main command: decode the device stream and print symbols
// until the quit gesture.
type Capture struct {
	Device       string        `help:"Mouse device node" default:"/dev/input/mice" env:"MOUSEGEST_DEVICE"`
	Legacy       bool          `help:"Skip the ImPS/2 mode switch and read 3-byte reports (no wheel)" env:"MOUSEGEST_LEGACY"`
	ClickWindow  time.Duration `help:"Double-click window" default:"300ms" env:"MOUSEGEST_CLICK_WINDOW"`
	PollInterval time.Duration `help:"Bounded wait per loop iteration" default:"20ms" env:"MOUSEGEST_POLL_INTERVAL"`
}

// Run is called by Kong when the capture command is executed. A nil return
// is the quit gesture (exit 0); every error exits 1.
func (c *Capture) Run(logger *slog.Logger, rawLogger log.RawLogger) error {
	if term.IsTerminal(int(os.Stdout.Fd())) {
		logger.Warn("stdout is a terminal; symbols are meant for a downstream reader")
	}

	dev, err := mice.Open(c.Device)
	if err != nil {
		return err
	}
	defer dev.Close()

	reportSize := mice.ReportSizeImPS2
	if c.Legacy {
		reportSize = mice.ReportSizeLegacy
	} else if err := dev.EnableWheel(); err != nil {
		return err
	}

	logger.Info("capturing", "device", c.Device, "reportSize", reportSize,
		"clickWindow", c.ClickWindow, "pollInterval", c.PollInterval)

	loop := capture.New(dev, os.Stdout, logger, rawLogger, capture.Options{
		ReportSize:   reportSize,
		Window:       c.ClickWindow,
		PollInterval: c.PollInterval,
	})
	if err := loop.Run(); err != nil {
		return err
	}
	logger.Info("quit gesture received")
	return nil
}
