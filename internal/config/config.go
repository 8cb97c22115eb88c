// Package config declares the command-line surface.
package config

import "github.com/bzhung/mousegest/internal/cmd"

// LogConfig groups the logging flags shared by all commands.
type LogConfig struct {
	Level   string `help:"Log level (trace, debug, info, warn, error)" default:"info" env:"MOUSEGEST_LOG_LEVEL"`
	File    string `help:"Also write logs to this file" env:"MOUSEGEST_LOG_FILE"`
	RawFile string `help:"Write raw packet hex dumps to this file" env:"MOUSEGEST_LOG_RAW_FILE"`
}

// CLI is the kong root.
type CLI struct {
	Log    LogConfig `embed:"" prefix:"log."`
	Config string    `help:"Path to a configuration file" env:"MOUSEGEST_CONFIG"`

	Capture cmd.Capture       `cmd:"" default:"withargs" help:"Read the mouse stream and print one symbol per classified event"`
	Devices cmd.Devices       `cmd:"" help:"List pointer devices and their nodes"`
	Cfg     cmd.ConfigCommand `cmd:"" name:"config" help:"Configuration file helpers"`
}
