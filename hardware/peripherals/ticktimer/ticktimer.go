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

// Package ticktimer implements the millisecond-granularity periodic time
// source of the simulated machine. The operating system uses it for
// timekeeping and for waking sleeping processes: software programs a
// millisecond deadline and receives an interrupt when the free-running
// millisecond count reaches it.
package ticktimer

import (
	"sync"

	"github.com/simonsan/precursim/curated"
	"github.com/simonsan/precursim/hardware/bus"
	"github.com/simonsan/precursim/hardware/irq"
)

// Error patterns returned by functions in this package.
const (
	RegisterError = "ticktimer: %s: no register at offset %#04x"
)

// Register offsets. TIME and MSLEEP_TARGET are 64-bit values split over two
// 32-bit registers, high word first.
const (
	RegControl        = 0x00
	RegTimeHi         = 0x04
	RegTimeLo         = 0x08
	RegMsleepTargetHi = 0x0c
	RegMsleepTargetLo = 0x10
	RegEvStatus       = 0x14
	RegEvPending      = 0x18
	RegEvEnable       = 0x1c
)

// Control bits.
const (
	CtlReset = 0b01
	CtlPause = 0b10
)

// Event bits.
const (
	EvAlarm = 0b1
)

// TickTimer is the millisecond counter. It implements the bus.Device and
// bus.Ticker interfaces.
type TickTimer struct {
	crit sync.Mutex

	label string
	rt    *irq.Router

	// number of simulation clock ticks per millisecond
	ticksPerMS uint64
	tickCount  uint64

	ms     uint64
	target uint64
	paused bool

	evPending uint32
	evEnable  uint32
}

// New is the preferred method of initialisation for the TickTimer type.
// ticksPerMS is derived from the period declared in the platform
// description.
func New(label string, rt *irq.Router, ticksPerMS uint64) *TickTimer {
	if ticksPerMS == 0 {
		ticksPerMS = 1
	}
	return &TickTimer{
		label:      label,
		rt:         rt,
		ticksPerMS: ticksPerMS,
	}
}

// must be called with the critical section held.
func (tt *TickTimer) updateIRQ() {
	if tt.evPending&tt.evEnable != 0 {
		_ = tt.rt.Assert(tt.label)
	} else {
		_ = tt.rt.Deassert(tt.label)
	}
}

// must be called with the critical section held.
func (tt *TickTimer) checkAlarm() {
	if tt.target != 0 && tt.ms >= tt.target {
		tt.evPending |= EvAlarm
		tt.updateIRQ()
	}
}

// Tick implements the bus.Ticker interface.
func (tt *TickTimer) Tick() {
	tt.crit.Lock()
	defer tt.crit.Unlock()

	if tt.paused {
		return
	}

	tt.tickCount++
	if tt.tickCount < tt.ticksPerMS {
		return
	}
	tt.tickCount = 0

	tt.ms++
	tt.checkAlarm()
}

// Read implements the bus.Device interface.
func (tt *TickTimer) Read(offset uint64, _ bus.Width) (uint64, error) {
	tt.crit.Lock()
	defer tt.crit.Unlock()

	switch offset {
	case RegControl:
		if tt.paused {
			return CtlPause, nil
		}
		return 0, nil
	case RegTimeHi:
		return tt.ms >> 32, nil
	case RegTimeLo:
		return tt.ms & 0xffffffff, nil
	case RegMsleepTargetHi:
		return tt.target >> 32, nil
	case RegMsleepTargetLo:
		return tt.target & 0xffffffff, nil
	case RegEvStatus:
		if tt.target != 0 && tt.ms >= tt.target {
			return EvAlarm, nil
		}
		return 0, nil
	case RegEvPending:
		return uint64(tt.evPending), nil
	case RegEvEnable:
		return uint64(tt.evEnable), nil
	}

	return 0, curated.Errorf(RegisterError, tt.label, offset)
}

// Write implements the bus.Device interface.
func (tt *TickTimer) Write(offset uint64, _ bus.Width, value uint64) error {
	tt.crit.Lock()
	defer tt.crit.Unlock()

	switch offset {
	case RegControl:
		if value&CtlReset != 0 {
			tt.ms = 0
			tt.tickCount = 0
		}
		tt.paused = value&CtlPause != 0
		return nil
	case RegMsleepTargetHi:
		tt.target = (tt.target & 0xffffffff) | (value << 32)
		tt.checkAlarm()
		return nil
	case RegMsleepTargetLo:
		tt.target = (tt.target &^ 0xffffffff) | (value & 0xffffffff)
		tt.checkAlarm()
		return nil
	case RegEvPending:
		// write one to clear
		tt.evPending &= ^uint32(value)
		tt.updateIRQ()
		return nil
	case RegEvEnable:
		tt.evEnable = uint32(value) & EvAlarm
		tt.updateIRQ()
		return nil
	case RegTimeHi, RegTimeLo, RegEvStatus:
		return curated.Errorf(RegisterError, tt.label, offset)
	}

	return curated.Errorf(RegisterError, tt.label, offset)
}
