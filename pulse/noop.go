package pulse

// Noop implements Generator but drives no hardware.
// Used when no signal pin is configured.
type Noop struct{}

// SetDutyMicroseconds implements Generator.SetDutyMicroseconds.
func (n *Noop) SetDutyMicroseconds(us uint32) error { return nil }

// Close implements Generator.Close.
func (n *Noop) Close() error { return nil }
