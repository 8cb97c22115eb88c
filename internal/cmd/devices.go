package cmd

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/bzhung/mousegest/internal/inputdev"
	"github.com/bzhung/mousegest/internal/mice"
)

// Devices lists pointer devices so a --device argument can be picked.
type Devices struct{}

func (d *Devices) Run(logger *slog.Logger) error {
	pointers, err := inputdev.List()
	if err != nil {
		return err
	}
	if len(pointers) == 0 {
		logger.Warn("no pointer devices found")
		return nil
	}
	fmt.Printf("%-24s %-28s %s\n", "NODE", "HANDLERS", "NAME")
	for _, p := range pointers {
		node := p.Node()
		if node == "" {
			node = "-"
		}
		fmt.Printf("%-24s %-28s %s\n", node, strings.Join(p.Handlers, " "), p.Name)
	}
	fmt.Printf("%-24s %-28s %s\n", mice.DefaultPath, "-", "all pointers, aggregated")
	return nil
}
