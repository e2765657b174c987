package indicator

// Multi combines multiple Indicator implementations.
type Multi struct {
	indicators []Indicator
}

// Idle implements Indicator.Idle.
func (m *Multi) Idle() {
	for _, ind := range m.indicators {
		ind.Idle()
	}
}

// Feeding implements Indicator.Feeding.
func (m *Multi) Feeding() {
	for _, ind := range m.indicators {
		ind.Feeding()
	}
}

// LinkLost implements Indicator.LinkLost.
func (m *Multi) LinkLost() {
	for _, ind := range m.indicators {
		ind.LinkLost()
	}
}

// Fault implements Indicator.Fault.
func (m *Multi) Fault() {
	for _, ind := range m.indicators {
		ind.Fault()
	}
}

// Shutdown implements Indicator.Shutdown.
func (m *Multi) Shutdown() {
	for _, ind := range m.indicators {
		ind.Shutdown()
	}
}

// Release implements Indicator.Release.
func (m *Multi) Release() error {
	var lastErr error
	for _, ind := range m.indicators {
		if err := ind.Release(); err != nil {
			lastErr = err
		}
	}
	return lastErr
}
