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

// Package keyboard implements the register-mapped key matrix scanner of the
// simulated machine. The physical keyboard is a matrix of rows and columns;
// the scanner exposes one register per row with a bit per column. A key
// event interrupt fires whenever the matrix state changes.
package keyboard

import (
	"sync"

	"github.com/simonsan/precursim/curated"
	"github.com/simonsan/precursim/hardware/bus"
	"github.com/simonsan/precursim/hardware/irq"
)

// Error patterns returned by functions in this package.
const (
	RegisterError = "keyboard: %s: no register at offset %#04x"
	MatrixError   = "keyboard: %s: no key at row %d column %d"
)

// Dimensions of the key matrix.
const (
	Rows    = 9
	Columns = 10
)

// Register offsets. One ROWDAT register per matrix row, then the event
// triplet.
const (
	RegRowDat    = 0x00 // through to RegRowDat + (Rows-1)*4
	RegEvStatus  = 0x24
	RegEvPending = 0x28
	RegEvEnable  = 0x2c
)

// Event bits.
const (
	EvKeyPressed = 0b1
)

// Keyboard is the key matrix scanner. It implements the bus.Device
// interface. The host injects key transitions with KeyDown() and KeyUp().
type Keyboard struct {
	crit sync.Mutex

	label string
	rt    *irq.Router

	rows [Rows]uint32

	evPending uint32
	evEnable  uint32
}

// New is the preferred method of initialisation for the Keyboard type.
func New(label string, rt *irq.Router) *Keyboard {
	return &Keyboard{
		label: label,
		rt:    rt,
	}
}

// must be called with the critical section held.
func (kbd *Keyboard) updateIRQ() {
	if kbd.evPending&kbd.evEnable != 0 {
		_ = kbd.rt.Assert(kbd.label)
	} else {
		_ = kbd.rt.Deassert(kbd.label)
	}
}

func (kbd *Keyboard) transition(row int, column int, down bool) error {
	if row < 0 || row >= Rows || column < 0 || column >= Columns {
		return curated.Errorf(MatrixError, kbd.label, row, column)
	}

	kbd.crit.Lock()
	defer kbd.crit.Unlock()

	if down {
		kbd.rows[row] |= 1 << column
	} else {
		kbd.rows[row] &= ^(uint32(1) << column)
	}

	kbd.evPending |= EvKeyPressed
	kbd.updateIRQ()

	return nil
}

// KeyDown marks the key at the matrix position as pressed.
func (kbd *Keyboard) KeyDown(row int, column int) error {
	return kbd.transition(row, column, true)
}

// KeyUp marks the key at the matrix position as released.
func (kbd *Keyboard) KeyUp(row int, column int) error {
	return kbd.transition(row, column, false)
}

// Read implements the bus.Device interface.
func (kbd *Keyboard) Read(offset uint64, _ bus.Width) (uint64, error) {
	kbd.crit.Lock()
	defer kbd.crit.Unlock()

	if offset < RegRowDat+Rows*4 && offset%4 == 0 {
		return uint64(kbd.rows[offset/4]), nil
	}

	switch offset {
	case RegEvStatus:
		for _, r := range kbd.rows {
			if r != 0 {
				return EvKeyPressed, nil
			}
		}
		return 0, nil
	case RegEvPending:
		return uint64(kbd.evPending), nil
	case RegEvEnable:
		return uint64(kbd.evEnable), nil
	}

	return 0, curated.Errorf(RegisterError, kbd.label, offset)
}

// Write implements the bus.Device interface.
func (kbd *Keyboard) Write(offset uint64, _ bus.Width, value uint64) error {
	kbd.crit.Lock()
	defer kbd.crit.Unlock()

	switch offset {
	case RegEvPending:
		// write one to clear
		kbd.evPending &= ^uint32(value)
		kbd.updateIRQ()
		return nil
	case RegEvEnable:
		kbd.evEnable = uint32(value) & EvKeyPressed
		kbd.updateIRQ()
		return nil
	}

	// the row registers are read-only; the matrix is driven by the host
	return curated.Errorf(RegisterError, kbd.label, offset)
}
