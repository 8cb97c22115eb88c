package mice

import (
	"fmt"
	"time"

	"golang.org/x/sys/unix"
)

// DefaultPath is the kernel's aggregated PS/2-compatible mouse node.
const DefaultPath = "/dev/input/mice"

// imps2Sequence switches the device into ImPS/2 wheel reporting: set sample
// rate 200, then 100, then 80. After this the device acknowledges with 0xFA
// and extends every report with a fourth (wheel) byte.
var imps2Sequence = []byte{0xf3, 200, 0xf3, 100, 0xf3, 80}

// Device is a non-blocking byte channel over a mouse device node. Reads
// never block; readiness is observed through WaitReadable. A Device is owned
// by a single goroutine and is not safe for concurrent use.
type Device struct {
	path string
	fd   int
}

// Open opens the device node in non-blocking mode. Read-write access is
// required so the mode-switch command can be written.
func Open(path string) (*Device, error) {
	fd, err := unix.Open(path, unix.O_RDWR|unix.O_NONBLOCK, 0)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return &Device{path: path, fd: fd}, nil
}

// EnableWheel writes the ImPS/2 mode-switch sequence. The 0xFA acknowledge
// bytes the device answers with arrive in the ordinary read stream and are
// skipped by report decoding.
func (d *Device) EnableWheel() error {
	if _, err := unix.Write(d.fd, imps2Sequence); err != nil {
		return fmt.Errorf("imps2 mode switch on %s: %w", d.path, err)
	}
	return nil
}

// WaitReadable blocks until the device has data or the timeout elapses.
// Returns true when data is available.
func (d *Device) WaitReadable(timeout time.Duration) (bool, error) {
	fds := []unix.PollFd{{Fd: int32(d.fd), Events: unix.POLLIN}}
	n, err := unix.Poll(fds, int(timeout.Milliseconds()))
	if err != nil {
		if err == unix.EINTR {
			return false, nil
		}
		return false, fmt.Errorf("poll %s: %w", d.path, err)
	}
	return n > 0 && fds[0].Revents&unix.POLLIN != 0, nil
}

// TryRead reads at most len(buf) bytes without blocking. It returns
// ErrWouldBlock when the device has nothing buffered and ErrStreamClosed on
// end of stream.
func (d *Device) TryRead(buf []byte) (int, error) {
	n, err := unix.Read(d.fd, buf)
	switch {
	case err == unix.EAGAIN:
		return 0, ErrWouldBlock
	case err != nil:
		return 0, fmt.Errorf("read %s: %w", d.path, err)
	case n == 0:
		return 0, ErrStreamClosed
	}
	return n, nil
}

func (d *Device) Close() error {
	if d.fd < 0 {
		return nil
	}
	err := unix.Close(d.fd)
	d.fd = -1
	return err
}
