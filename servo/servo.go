// Package servo positions the feeder horn: it maps command digits to
// bounded angles, converts angles to pulse widths, and owns the
// flick-and-return motion that dispenses food.
package servo

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"gofeeder/pulse"
)

// Calibration defaults for a Tower Pro SG90.
const (
	DefaultMinPulseUs = 500.0
	DefaultMaxPulseUs = 2500.0

	// HomeAngle is where the horn settles after every commanded move.
	HomeAngle = 0.0

	MaxAngle = 180.0
)

// CommandAngles maps command digits '0'..'9' to target angles in degrees.
// The last step is enlarged so '9' reaches the physical maximum instead of
// stopping at 162. Keep it that way.
var CommandAngles = [10]float64{0, 18, 36, 54, 72, 90, 108, 126, 144, 180}

var ErrInvalidCommand = errors.New("servo: command is not a decimal digit")

// AngleForDigit returns the target angle for a command byte '0'..'9'.
func AngleForDigit(c byte) (float64, error) {
	if c < '0' || c > '9' {
		return 0, ErrInvalidCommand
	}
	return CommandAngles[c-'0'], nil
}

// PulseWidthForAngle converts an angle in degrees to a pulse width in
// microseconds by linear interpolation between minUs and maxUs. The angle
// is clamped to [0, MaxAngle] first.
func PulseWidthForAngle(angle, minUs, maxUs float64) float64 {
	angle = clampAngle(angle)
	return minUs + (angle/MaxAngle)*(maxUs-minUs)
}

func clampAngle(angle float64) float64 {
	if angle < 0 {
		return 0
	}
	if angle > MaxAngle {
		return MaxAngle
	}
	return angle
}

// Config holds servo calibration settings.
type Config struct {
	MinPulseUs float64 `yaml:"min_pulse_us"` // pulse width at 0°
	MaxPulseUs float64 `yaml:"max_pulse_us"` // pulse width at 180°
}

// Servo drives the horn through a pulse generator it exclusively owns.
// All duty writes go through one mutex, so commands arriving from different
// sources (TCP, MQTT, button, console) queue instead of interleaving.
type Servo struct {
	mu    sync.Mutex
	gen   pulse.Generator
	minUs float64
	maxUs float64
	angle float64
}

// New wraps a pulse generator. The horn is driven to the home angle
// immediately, regardless of the generator's power-on duty.
func New(gen pulse.Generator, cfg Config) (*Servo, error) {
	if cfg.MinPulseUs == 0 {
		cfg.MinPulseUs = DefaultMinPulseUs
	}
	if cfg.MaxPulseUs == 0 {
		cfg.MaxPulseUs = DefaultMaxPulseUs
	}
	if cfg.MinPulseUs >= cfg.MaxPulseUs {
		return nil, fmt.Errorf("servo: pulse range %.1f..%.1fus is empty", cfg.MinPulseUs, cfg.MaxPulseUs)
	}

	s := &Servo{
		gen:   gen,
		minUs: cfg.MinPulseUs,
		maxUs: cfg.MaxPulseUs,
	}

	if err := s.SetAngle(HomeAngle); err != nil {
		return nil, err
	}
	return s, nil
}

// SetAngle clamps the angle, converts it to a pulse width and applies it.
// A write failure is a hardware fault and is not retried.
func (s *Servo) SetAngle(angle float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setAngleLocked(angle)
}

// SetAngleWithAutoHome moves to angle, holds for delay, then reapplies the
// home angle. The call blocks until the horn is back home; a concurrent
// caller waits out the full motion.
func (s *Servo) SetAngleWithAutoHome(angle float64, delay time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.setAngleLocked(angle); err != nil {
		return err
	}
	time.Sleep(delay)
	return s.setAngleLocked(HomeAngle)
}

func (s *Servo) setAngleLocked(angle float64) error {
	angle = clampAngle(angle)
	// Round to the generator's microsecond grid.
	us := PulseWidthForAngle(angle, s.minUs, s.maxUs) + 0.5
	if err := s.gen.SetDutyMicroseconds(uint32(us)); err != nil {
		return fmt.Errorf("set duty: %w", err)
	}
	s.angle = angle
	return nil
}

// Angle returns the last commanded angle.
func (s *Servo) Angle() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.angle
}

// Close homes the horn and releases the pulse generator.
func (s *Servo) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Home before release; a faulted generator still gets closed.
	s.setAngleLocked(HomeAngle)
	return s.gen.Close()
}
