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

// Package timer implements the two timer-like interrupt sources of the
// simulated machine: the LiteX style countdown timer (Timer) and the CPU
// local machine timer (Machine).
package timer

import (
	"fmt"
	"sync"

	"github.com/simonsan/precursim/curated"
	"github.com/simonsan/precursim/hardware/bus"
	"github.com/simonsan/precursim/hardware/irq"
)

// Error patterns returned by functions in this package.
const (
	RegisterError = "timer: %s: no register at offset %#04x"
)

// Register offsets for the countdown timer.
const (
	RegLoad        = 0x00
	RegReload      = 0x04
	RegEnable      = 0x08
	RegUpdateValue = 0x0c
	RegValue       = 0x10
	RegEvStatus    = 0x14
	RegEvPending   = 0x18
	RegEvEnable    = 0x1c
)

// Event bits for the countdown timer.
const (
	EvZero = 0b1
)

// Timer counts down from the load value at its configured frequency,
// reloading and raising the zero event when it expires. It implements the
// bus.Device and bus.Ticker interfaces.
type Timer struct {
	crit sync.Mutex

	label string
	rt    *irq.Router

	// number of simulation clock ticks per timer count
	ticksPerCount uint64
	tickCount     uint64

	load   uint32
	reload uint32
	enable bool
	count  uint32

	// snapshot of count, latched by a write to RegUpdateValue
	value uint32

	evPending uint32
	evEnable  uint32
}

// NewTimer is the preferred method of initialisation for the Timer type.
// ticksPerCount is the number of simulation clock ticks between decrements
// and is derived from the timer frequency declared in the platform
// description.
func NewTimer(label string, rt *irq.Router, ticksPerCount uint64) *Timer {
	if ticksPerCount == 0 {
		ticksPerCount = 1
	}
	return &Timer{
		label:         label,
		rt:            rt,
		ticksPerCount: ticksPerCount,
	}
}

func (tmr *Timer) String() string {
	tmr.crit.Lock()
	defer tmr.crit.Unlock()
	return fmt.Sprintf("load=%#08x reload=%#08x en=%v count=%#08x", tmr.load, tmr.reload, tmr.enable, tmr.count)
}

// must be called with the critical section held.
func (tmr *Timer) updateIRQ() {
	if tmr.evPending&tmr.evEnable != 0 {
		_ = tmr.rt.Assert(tmr.label)
	} else {
		_ = tmr.rt.Deassert(tmr.label)
	}
}

// Tick implements the bus.Ticker interface.
func (tmr *Timer) Tick() {
	tmr.crit.Lock()
	defer tmr.crit.Unlock()

	if !tmr.enable {
		return
	}

	tmr.tickCount++
	if tmr.tickCount < tmr.ticksPerCount {
		return
	}
	tmr.tickCount = 0

	if tmr.count > 0 {
		tmr.count--
	}

	if tmr.count == 0 {
		tmr.count = tmr.reload
		tmr.evPending |= EvZero
		tmr.updateIRQ()
	}
}

// Read implements the bus.Device interface.
func (tmr *Timer) Read(offset uint64, _ bus.Width) (uint64, error) {
	tmr.crit.Lock()
	defer tmr.crit.Unlock()

	switch offset {
	case RegLoad:
		return uint64(tmr.load), nil
	case RegReload:
		return uint64(tmr.reload), nil
	case RegEnable:
		if tmr.enable {
			return 1, nil
		}
		return 0, nil
	case RegValue:
		return uint64(tmr.value), nil
	case RegEvStatus:
		if tmr.count == 0 {
			return EvZero, nil
		}
		return 0, nil
	case RegEvPending:
		return uint64(tmr.evPending), nil
	case RegEvEnable:
		return uint64(tmr.evEnable), nil
	}

	return 0, curated.Errorf(RegisterError, tmr.label, offset)
}

// Write implements the bus.Device interface.
func (tmr *Timer) Write(offset uint64, _ bus.Width, value uint64) error {
	tmr.crit.Lock()
	defer tmr.crit.Unlock()

	switch offset {
	case RegLoad:
		tmr.load = uint32(value)
		return nil
	case RegReload:
		tmr.reload = uint32(value)
		return nil
	case RegEnable:
		en := value&1 == 1
		if en && !tmr.enable {
			// enabling loads the counter
			tmr.count = tmr.load
			tmr.tickCount = 0
		}
		tmr.enable = en
		return nil
	case RegUpdateValue:
		tmr.value = tmr.count
		return nil
	case RegEvPending:
		// write one to clear
		tmr.evPending &= ^uint32(value)
		tmr.updateIRQ()
		return nil
	case RegEvEnable:
		tmr.evEnable = uint32(value) & EvZero
		tmr.updateIRQ()
		return nil
	}

	return curated.Errorf(RegisterError, tmr.label, offset)
}
