// This file is part of Precursim.
//
// Precursim is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Precursim is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Precursim.  If not, see <https://www.gnu.org/licenses/>.

// Package irq routes peripheral interrupt outputs to numbered input lines on
// the CPU's interrupt controller.
//
// Lines are edge-triggered: the controller is notified on the Low to High
// transition only. Holding a line High is not an event and re-asserting an
// already High line is a no-op. This matches the timer and UART style
// devices of the simulated machine and avoids double-counting.
//
// The mapping is strictly one interrupt source per line. Nothing in the
// configuration shares lines; a registration that would is treated as a
// configuration error rather than silently OR-combined.
package irq

import (
	"sync"

	"github.com/simonsan/precursim/curated"
)

// Error patterns returned by functions in this package.
const (
	UnknownSource   = "irq: unknown interrupt source: %s"
	DuplicateSource = "irq: duplicate interrupt source: %s"
	DuplicateLine   = "irq: line %d: already owned by %s"
)

// Line is the number of an input line on the CPU's interrupt controller.
type Line uint32

// Controller is the boundary with the CPU core. RaiseInterrupt is called on
// the rising edge of a routed line.
type Controller interface {
	RaiseInterrupt(line Line)
}

type lineState struct {
	line Line
	high bool
}

// Router maps each interrupt source to its line and tracks the level of each
// line. State transitions can arrive from both the bus path and the clock
// path so the router is safe for concurrent use. Notifications reach the
// controller in the order the triggering events were processed.
type Router struct {
	crit sync.Mutex

	ctrl    Controller
	sources map[string]*lineState
	owners  map[Line]string
}

// NewRouter is the preferred method of initialisation for the Router type.
func NewRouter(ctrl Controller) *Router {
	return &Router{
		ctrl:    ctrl,
		sources: make(map[string]*lineState),
		owners:  make(map[Line]string),
	}
}

// RegisterLine declares that the named source drives the numbered line.
// Registration happens once, at load time. Registering a source twice, or a
// line that is already owned, is a configuration error.
func (rt *Router) RegisterLine(source string, line Line) error {
	rt.crit.Lock()
	defer rt.crit.Unlock()

	if _, ok := rt.sources[source]; ok {
		return curated.Errorf(DuplicateSource, source)
	}
	if owner, ok := rt.owners[line]; ok {
		return curated.Errorf(DuplicateLine, uint32(line), owner)
	}

	rt.sources[source] = &lineState{line: line}
	rt.owners[line] = source

	return nil
}

// LineOf returns the line driven by the named source. The boolean return
// value is false if the source has no registered line.
func (rt *Router) LineOf(source string) (Line, bool) {
	rt.crit.Lock()
	defer rt.crit.Unlock()

	ls, ok := rt.sources[source]
	if !ok {
		return 0, false
	}
	return ls.line, true
}

// Assert drives the source's line High. The controller is notified on the
// rising edge only; asserting an already High line does nothing. A source
// with no registered line indicates a configuration bug and fails fast.
func (rt *Router) Assert(source string) error {
	rt.crit.Lock()
	defer rt.crit.Unlock()

	ls, ok := rt.sources[source]
	if !ok {
		return curated.Errorf(UnknownSource, source)
	}

	if !ls.high {
		ls.high = true

		// notifying inside the critical section keeps delivery in the
		// order the triggering events were processed
		rt.ctrl.RaiseInterrupt(ls.line)
	}

	return nil
}

// Deassert drives the source's line Low.
func (rt *Router) Deassert(source string) error {
	rt.crit.Lock()
	defer rt.crit.Unlock()

	ls, ok := rt.sources[source]
	if !ok {
		return curated.Errorf(UnknownSource, source)
	}

	ls.high = false
	return nil
}
