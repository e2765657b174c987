package pulse

import (
	"fmt"

	rpio "github.com/stianeikeland/go-rpio/v4"
)

// RPIO drives hardware PWM through /dev/gpiomem, for setups where the
// process should not need access to /dev/mem.
type RPIO struct {
	pin    rpio.Pin
	closed bool
}

// NewRPIO opens the gpio memory range and configures the pin for PWM.
func NewRPIO(pin uint8) (*RPIO, error) {
	if err := rpio.Open(); err != nil {
		return nil, fmt.Errorf("open gpiomem: %w", err)
	}

	p := rpio.Pin(pin)
	p.Mode(rpio.Pwm)
	p.Freq(FrequencyHz * PeriodMicroseconds)

	return &RPIO{pin: p}, nil
}

// SetDutyMicroseconds implements Generator.SetDutyMicroseconds.
func (r *RPIO) SetDutyMicroseconds(us uint32) error {
	if r.closed {
		return ErrClosed
	}
	if us > PeriodMicroseconds {
		us = PeriodMicroseconds
	}
	r.pin.DutyCycle(us, PeriodMicroseconds)
	return nil
}

// Close implements Generator.Close.
func (r *RPIO) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	r.pin.DutyCycle(0, PeriodMicroseconds)
	rpio.Close()
	return nil
}
