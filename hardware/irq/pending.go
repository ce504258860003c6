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

package irq

import "sync"

// Pending implements the Controller interface with a pending mask, the way
// the excluded CPU core would consume interrupts: the mask is set by the
// router and polled between instructions.
//
// Line numbers are sparse (the machine timer line is 1001) so the mask is a
// set rather than a bit field.
type Pending struct {
	crit sync.Mutex
	mask map[Line]bool

	// count of rising edge notifications, in delivery order
	order []Line
}

// NewPending is the preferred method of initialisation for the Pending type.
func NewPending() *Pending {
	return &Pending{
		mask: make(map[Line]bool),
	}
}

// RaiseInterrupt implements the Controller interface.
func (p *Pending) RaiseInterrupt(line Line) {
	p.crit.Lock()
	defer p.crit.Unlock()

	p.mask[line] = true
	p.order = append(p.order, line)
}

// IsPending returns true if the line's pending bit is set.
func (p *Pending) IsPending(line Line) bool {
	p.crit.Lock()
	defer p.crit.Unlock()

	return p.mask[line]
}

// Ack clears the line's pending bit.
func (p *Pending) Ack(line Line) {
	p.crit.Lock()
	defer p.crit.Unlock()

	delete(p.mask, line)
}

// History returns every rising edge notification received so far, in
// delivery order.
func (p *Pending) History() []Line {
	p.crit.Lock()
	defer p.crit.Unlock()

	h := make([]Line, len(p.order))
	copy(h, p.order)
	return h
}
