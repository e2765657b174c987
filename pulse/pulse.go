// Package pulse owns the PWM waveform that positions the feeder servo.
package pulse

import (
	"errors"
	"fmt"
)

// Standard hobby servo signal: 50Hz, 20ms period, one duty count per microsecond.
const (
	FrequencyHz        = 50
	PeriodMicroseconds = 20000
)

var ErrClosed = errors.New("pulse: generator closed")

// Generator produces a fixed-frequency waveform whose active-high time
// equals the last duty value written. Implementations latch a new duty at
// the next period boundary, so a transient value is never emitted for less
// than one full period.
type Generator interface {
	// SetDutyMicroseconds sets the active-high time of each period.
	SetDutyMicroseconds(us uint32) error

	// Close releases any hardware resources. Safe to call more than once.
	Close() error
}

// Config holds configuration for pulse generator implementations.
type Config struct {
	Type string `yaml:"type"` // "govattu", "rpio", "none"
	Pin  *int   `yaml:"pin"`  // PWM-capable GPIO pin (12, 13, 18 or 19 on a Pi)
}

// New creates a Generator based on the provided configuration.
// With no pin configured it returns a Noop generator.
func New(cfg Config) (Generator, error) {
	if cfg.Pin == nil {
		return &Noop{}, nil
	}

	switch cfg.Type {
	case "govattu", "":
		return NewGovattu(uint8(*cfg.Pin))
	case "rpio":
		return NewRPIO(uint8(*cfg.Pin))
	case "none":
		return &Noop{}, nil
	default:
		return nil, fmt.Errorf("pulse: unknown generator type %q", cfg.Type)
	}
}
