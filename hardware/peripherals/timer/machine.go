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

package timer

import (
	"sync"

	"github.com/simonsan/precursim/curated"
	"github.com/simonsan/precursim/hardware/bus"
	"github.com/simonsan/precursim/hardware/irq"
)

// Register offsets for the machine timer. MTIME and MTIMECMP are 64-bit
// registers; a 32-bit CPU reaches the halves at the +4 offsets.
const (
	RegMTime      = 0x00
	RegMTimeHi    = 0x04
	RegMTimeCmp   = 0x08
	RegMTimeCmpHi = 0x0c
)

// Machine is the CPU-local machine timer: MTIME increments with the
// simulation clock and the machine timer interrupt line is driven while
// MTIME is at or beyond MTIMECMP. It implements the bus.Device and
// bus.Ticker interfaces.
//
// An MTIMECMP of zero disarms the comparator, as the loader leaves it until
// the simulated software programs a deadline.
type Machine struct {
	crit sync.Mutex

	label string
	rt    *irq.Router

	mtime    uint64
	mtimecmp uint64
}

// NewMachine is the preferred method of initialisation for the Machine type.
func NewMachine(label string, rt *irq.Router) *Machine {
	return &Machine{
		label: label,
		rt:    rt,
	}
}

// must be called with the critical section held.
func (m *Machine) compare() {
	if m.mtimecmp != 0 && m.mtime >= m.mtimecmp {
		_ = m.rt.Assert(m.label)
	} else {
		_ = m.rt.Deassert(m.label)
	}
}

// Tick implements the bus.Ticker interface.
func (m *Machine) Tick() {
	m.crit.Lock()
	defer m.crit.Unlock()

	m.mtime++
	m.compare()
}

// Read implements the bus.Device interface.
func (m *Machine) Read(offset uint64, width bus.Width) (uint64, error) {
	m.crit.Lock()
	defer m.crit.Unlock()

	if width == bus.Width8 {
		switch offset {
		case RegMTime:
			return m.mtime, nil
		case RegMTimeCmp:
			return m.mtimecmp, nil
		}
		return 0, curated.Errorf(RegisterError, m.label, offset)
	}

	switch offset {
	case RegMTime:
		return m.mtime & 0xffffffff, nil
	case RegMTimeHi:
		return m.mtime >> 32, nil
	case RegMTimeCmp:
		return m.mtimecmp & 0xffffffff, nil
	case RegMTimeCmpHi:
		return m.mtimecmp >> 32, nil
	}

	return 0, curated.Errorf(RegisterError, m.label, offset)
}

// Write implements the bus.Device interface.
func (m *Machine) Write(offset uint64, width bus.Width, value uint64) error {
	m.crit.Lock()
	defer m.crit.Unlock()

	if width == bus.Width8 {
		switch offset {
		case RegMTime:
			m.mtime = value
		case RegMTimeCmp:
			m.mtimecmp = value
		default:
			return curated.Errorf(RegisterError, m.label, offset)
		}
		m.compare()
		return nil
	}

	switch offset {
	case RegMTime:
		m.mtime = (m.mtime &^ 0xffffffff) | (value & 0xffffffff)
	case RegMTimeHi:
		m.mtime = (m.mtime & 0xffffffff) | (value << 32)
	case RegMTimeCmp:
		m.mtimecmp = (m.mtimecmp &^ 0xffffffff) | (value & 0xffffffff)
	case RegMTimeCmpHi:
		m.mtimecmp = (m.mtimecmp & 0xffffffff) | (value << 32)
	default:
		return curated.Errorf(RegisterError, m.label, offset)
	}

	m.compare()
	return nil
}
