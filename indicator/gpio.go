package indicator

import (
	"fmt"

	"github.com/hjkoskel/govattu"
)

// GPIO implements Indicator using discrete LED pins: green = ready,
// yellow = feeding, red = link lost or hardware fault.
type GPIO struct {
	hw        govattu.Vattu
	greenPin  *uint8
	yellowPin *uint8
	redPin    *uint8
}

// NewGPIO creates a new GPIO-based indicator.
func NewGPIO(greenPin, yellowPin, redPin *uint8) (*GPIO, error) {
	hw, err := govattu.Open()
	if err != nil {
		return nil, fmt.Errorf("open gpio: %w", err)
	}

	g := &GPIO{
		hw:        hw,
		greenPin:  greenPin,
		yellowPin: yellowPin,
		redPin:    redPin,
	}

	// All pins output, start off
	for _, pin := range []*uint8{greenPin, yellowPin, redPin} {
		if pin != nil {
			hw.PinMode(*pin, govattu.ALToutput)
			hw.PinClear(*pin)
		}
	}

	return g, nil
}

// Idle implements Indicator.Idle.
func (g *GPIO) Idle() {
	g.allOff()
	g.set(g.greenPin)
}

// Feeding implements Indicator.Feeding.
func (g *GPIO) Feeding() {
	g.allOff()
	g.set(g.yellowPin)
}

// LinkLost implements Indicator.LinkLost.
func (g *GPIO) LinkLost() {
	g.allOff()
	g.set(g.redPin)
}

// Fault implements Indicator.Fault.
func (g *GPIO) Fault() {
	g.allOff()
	g.set(g.redPin)
	g.set(g.yellowPin)
}

// Shutdown implements Indicator.Shutdown.
func (g *GPIO) Shutdown() {
	g.allOff()
}

// Release implements Indicator.Release.
func (g *GPIO) Release() error {
	g.allOff()
	return g.hw.Close()
}

func (g *GPIO) set(pin *uint8) {
	if pin != nil {
		g.hw.PinSet(*pin)
	}
}

func (g *GPIO) allOff() {
	for _, pin := range []*uint8{g.greenPin, g.yellowPin, g.redPin} {
		if pin != nil {
			g.hw.PinClear(*pin)
		}
	}
}
