package indicator

import "testing"

// countingIndicator records how often each state was entered.
type countingIndicator struct {
	idle, feeding, linkLost, fault, shutdown int
	released                                 bool
}

func (c *countingIndicator) Idle()          { c.idle++ }
func (c *countingIndicator) Feeding()       { c.feeding++ }
func (c *countingIndicator) LinkLost()      { c.linkLost++ }
func (c *countingIndicator) Fault()         { c.fault++ }
func (c *countingIndicator) Shutdown()      { c.shutdown++ }
func (c *countingIndicator) Release() error { c.released = true; return nil }

func TestNewUnconfiguredReturnsNoop(t *testing.T) {
	ind, err := New(Config{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, ok := ind.(*Noop); !ok {
		t.Errorf("expected *Noop, got %T", ind)
	}
}

func TestMultiFansOut(t *testing.T) {
	a := &countingIndicator{}
	b := &countingIndicator{}
	m := &Multi{indicators: []Indicator{a, b}}

	m.Idle()
	m.Feeding()
	m.Feeding()
	m.LinkLost()
	m.Fault()
	m.Shutdown()
	if err := m.Release(); err != nil {
		t.Fatalf("Release: %v", err)
	}

	for name, ind := range map[string]*countingIndicator{"a": a, "b": b} {
		if ind.idle != 1 || ind.feeding != 2 || ind.linkLost != 1 || ind.fault != 1 || ind.shutdown != 1 {
			t.Errorf("%s counts = %+v", name, *ind)
		}
		if !ind.released {
			t.Errorf("%s not released", name)
		}
	}
}
