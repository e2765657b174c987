// Package indicator drives the feeder's status LEDs.
package indicator

// Indicator is the interface for status indicator implementations.
type Indicator interface {
	// Idle sets the indicator to the ready/waiting state.
	Idle()

	// Feeding signals that a feed motion is in progress.
	Feeding()

	// LinkLost signals missing network or broker connectivity.
	LinkLost()

	// Fault signals that the actuation path is dead.
	Fault()

	// Shutdown sets the indicator to the shutdown state.
	Shutdown()

	// Release releases any hardware resources.
	Release() error
}

// Config holds configuration for indicator implementations.
type Config struct {
	// GPIO LED pins (nil = not configured)
	GreenPin  *uint8 `yaml:"green_pin"`
	YellowPin *uint8 `yaml:"yellow_pin"`
	RedPin    *uint8 `yaml:"red_pin"`
}

// New creates an Indicator based on the provided configuration.
// With nothing configured it returns a Noop indicator.
func New(cfg Config) (Indicator, error) {
	var indicators []Indicator

	if cfg.GreenPin != nil || cfg.YellowPin != nil || cfg.RedPin != nil {
		gpio, err := NewGPIO(cfg.GreenPin, cfg.YellowPin, cfg.RedPin)
		if err != nil {
			return nil, err
		}
		indicators = append(indicators, gpio)
	}

	if len(indicators) == 0 {
		return &Noop{}, nil
	}
	if len(indicators) == 1 {
		return indicators[0], nil
	}
	return &Multi{indicators: indicators}, nil
}
