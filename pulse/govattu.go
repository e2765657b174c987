package pulse

import (
	"fmt"

	"github.com/hjkoskel/govattu"
)

// 19.2MHz base clock / 19 divisor / 20000 range gives 50Hz with one count
// per microsecond.
const pwmClockDivisor = 19

// Govattu drives the Pi's hardware PWM0 through memory-mapped registers.
type Govattu struct {
	hw     govattu.Vattu
	pin    uint8
	closed bool
}

// NewGovattu opens the hardware and configures the pin for PWM0 output.
func NewGovattu(pin uint8) (*Govattu, error) {
	hw, err := govattu.Open()
	if err != nil {
		return nil, fmt.Errorf("open gpio: %w", err)
	}

	hw.PinMode(pin, govattu.ALT5) // ALT5 for pin 18 is PWM0
	hw.PwmSetMode(true, true, false, false)
	hw.PwmSetClock(pwmClockDivisor)
	hw.Pwm0SetRange(PeriodMicroseconds)

	return &Govattu{hw: hw, pin: pin}, nil
}

// SetDutyMicroseconds implements Generator.SetDutyMicroseconds.
func (g *Govattu) SetDutyMicroseconds(us uint32) error {
	if g.closed {
		return ErrClosed
	}
	if us > PeriodMicroseconds {
		us = PeriodMicroseconds
	}
	g.hw.Pwm0Set(us)
	return nil
}

// Close implements Generator.Close. The output is dropped low and the PWM
// peripheral disabled before the handle is released.
func (g *Govattu) Close() error {
	if g.closed {
		return nil
	}
	g.closed = true
	g.hw.Pwm0Set(0)
	g.hw.PwmSetMode(false, false, false, false)
	return g.hw.Close()
}
