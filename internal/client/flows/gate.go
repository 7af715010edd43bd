package flows

import (
	"errors"
	"sync/atomic"
)

// ErrBusy is returned when a flow is submitted while a previous submission
// of the same flow is still in flight.
var ErrBusy = errors.New("flow already in progress")

// gate guards one flow against re-entrant submission and tracks an
// invocation generation. A flow invocation captures the generation at start;
// results are applied only while that generation is still current, so a
// cancelled invocation's late results are dropped instead of landing on a
// screen that no longer exists.
type gate struct {
	busy atomic.Bool
	gen  atomic.Uint64
}

// begin claims the gate. It returns the invocation's generation token and
// false when the gate is already held.
func (g *gate) begin() (uint64, bool) {
	if !g.busy.CompareAndSwap(false, true) {
		return 0, false
	}
	return g.gen.Add(1), true
}

// end releases the gate. Always deferred by the flow entry point so the
// busy flag clears on every exit path.
func (g *gate) end() {
	g.busy.Store(false)
}

// current reports whether tok is still the live invocation.
func (g *gate) current(tok uint64) bool {
	return g.gen.Load() == tok
}

// cancel invalidates the live invocation; its pending results are dropped.
func (g *gate) cancel() {
	g.gen.Add(1)
}

// Busy reports whether the gate is held.
func (g *gate) Busy() bool {
	return g.busy.Load()
}
