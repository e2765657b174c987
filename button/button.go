//go:build linux

// Package button watches an optional GPIO push button that triggers a feed
// with the configured default command.
package button

import (
	"time"

	"github.com/warthog618/go-gpiocdev"
)

// Button handles a momentary push button wired against ground.
type Button struct {
	line    *gpiocdev.Line
	onPress func()
}

// Config holds configuration for the feed button.
type Config struct {
	Chip string `yaml:"chip"`
	Pin  int    `yaml:"pin"`
}

// Handlers holds callback functions for button events.
type Handlers struct {
	OnPress func()
}

// New creates a new button handler.
// Returns nil if no pin is configured (button disabled).
func New(cfg Config, handlers Handlers) (*Button, error) {
	if cfg.Pin == 0 {
		return nil, nil
	}
	if cfg.Chip == "" {
		cfg.Chip = "gpiochip0"
	}

	b := &Button{onPress: handlers.OnPress}

	line, err := gpiocdev.RequestLine(cfg.Chip, cfg.Pin,
		gpiocdev.WithPullUp,
		gpiocdev.WithFallingEdge,
		gpiocdev.WithDebounce(10*time.Millisecond),
		gpiocdev.WithEventHandler(b.handleEvent))
	if err != nil {
		return nil, err
	}
	b.line = line

	return b, nil
}

func (b *Button) handleEvent(evt gpiocdev.LineEvent) {
	if b.onPress != nil {
		b.onPress()
	}
}

// Release releases GPIO resources.
func (b *Button) Release() error {
	if b.line != nil {
		b.line.Close()
	}
	return nil
}
