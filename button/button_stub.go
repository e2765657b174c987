//go:build !linux

package button

import "errors"

var ErrNotSupported = errors.New("feed button not supported on this platform")

// Button is a stub for non-linux platforms.
type Button struct{}

// Config holds configuration for the feed button.
type Config struct {
	Chip string `yaml:"chip"`
	Pin  int    `yaml:"pin"`
}

// Handlers holds callback functions for button events.
type Handlers struct {
	OnPress func()
}

// New returns an error on non-linux platforms.
func New(cfg Config, handlers Handlers) (*Button, error) {
	if cfg.Pin == 0 {
		return nil, nil
	}
	return nil, ErrNotSupported
}

func (b *Button) Release() error { return nil }
