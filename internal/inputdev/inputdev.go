// Package inputdev enumerates pointer devices from the kernel's input
// device table.
package inputdev

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const devicesPath = "/proc/bus/input/devices"

// Pointer describes one input device that exposes a mouse handler.
type Pointer struct {
	Name     string
	Handlers []string
}

// Node returns the device node for the pointer's mouseN handler, or "" when
// the handler has no node.
func (p Pointer) Node() string {
	for _, h := range p.Handlers {
		if strings.HasPrefix(h, "mouse") {
			return filepath.Join("/dev/input", h)
		}
	}
	return ""
}

// List parses the input device table and returns every device with a mouse
// handler. All pointers also feed the aggregated mice node.
func List() ([]Pointer, error) {
	data, err := os.ReadFile(devicesPath)
	if err != nil {
		return nil, fmt.Errorf("read input device table: %w", err)
	}
	return parse(string(data)), nil
}

// parse splits the table into blank-line-separated sections and keeps those
// whose handler list names a mouseN handler.
//
// Section format (one device):
//
//	I: Bus=0003 Vendor=046d Product=c077 Version=0111
//	N: Name="Logitech USB Optical Mouse"
//	H: Handlers=mouse0 event3
//	B: EV=17
func parse(table string) []Pointer {
	var out []Pointer
	for _, section := range strings.Split(table, "\n\n") {
		p, ok := parseSection(section)
		if ok {
			out = append(out, p)
		}
	}
	return out
}

func parseSection(section string) (Pointer, bool) {
	var p Pointer
	for _, line := range strings.Split(section, "\n") {
		switch {
		case strings.HasPrefix(line, "N: Name="):
			p.Name = strings.Trim(strings.TrimPrefix(line, "N: Name="), `"`)
		case strings.HasPrefix(line, "H: Handlers="):
			p.Handlers = strings.Fields(strings.TrimPrefix(line, "H: Handlers="))
		}
	}
	for _, h := range p.Handlers {
		if strings.HasPrefix(h, "mouse") {
			return p, true
		}
	}
	return Pointer{}, false
}
