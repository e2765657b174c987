package indicator

// Noop implements Indicator but does nothing.
// Used when no indicators are configured.
type Noop struct{}

// Idle implements Indicator.Idle.
func (n *Noop) Idle() {}

// Feeding implements Indicator.Feeding.
func (n *Noop) Feeding() {}

// LinkLost implements Indicator.LinkLost.
func (n *Noop) LinkLost() {}

// Fault implements Indicator.Fault.
func (n *Noop) Fault() {}

// Shutdown implements Indicator.Shutdown.
func (n *Noop) Shutdown() {}

// Release implements Indicator.Release.
func (n *Noop) Release() error {
	return nil
}
