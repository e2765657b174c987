// Package source provides auxiliary command inputs (serial console, local
// keypad) that feed the same dispatch path as the TCP listener.
package source

import (
	"context"
	"fmt"
)

// Source is the interface for local command input implementations.
// Implementations block until a command digit arrives or the context is
// cancelled.
type Source interface {
	// Read blocks until a command byte '0'..'9' is available.
	Read(ctx context.Context) (byte, error)

	// Close releases any resources held by the source.
	Close() error
}

// Config holds common configuration for source implementations.
type Config struct {
	Type   string `yaml:"type"`   // "serial", "keypad", "" = disabled
	Device string `yaml:"device"` // e.g. "/dev/serial0", "/dev/input/event0"
	Baud   int    `yaml:"baud"`   // baud rate for serial devices
}

// New creates a Source based on the provided configuration.
// Returns (nil, nil) when no source is configured.
func New(cfg Config) (Source, error) {
	switch cfg.Type {
	case "":
		return nil, nil
	case "serial":
		return NewSerial(cfg.Device, cfg.Baud)
	case "keypad":
		return NewKeypad(cfg.Device)
	default:
		return nil, fmt.Errorf("source: unknown source type %q", cfg.Type)
	}
}

// IsCommand reports whether b is a valid command digit.
func IsCommand(b byte) bool {
	return b >= '0' && b <= '9'
}
