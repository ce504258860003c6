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

// Package uart implements the register-mapped serial port of the simulated
// machine. The register layout follows the LiteX UART: a combined
// receive/transmit register, status registers and the usual event
// status/pending/enable triplet.
package uart

import (
	"io"
	"sync"

	"github.com/simonsan/precursim/curated"
	"github.com/simonsan/precursim/hardware/bus"
	"github.com/simonsan/precursim/hardware/irq"
	"github.com/simonsan/precursim/logger"
)

// Error patterns returned by functions in this package.
const (
	RegisterError = "uart: %s: no register at offset %#04x"
)

// Register offsets.
const (
	RegRxTx      = 0x00
	RegTxFull    = 0x04
	RegRxEmpty   = 0x08
	RegEvStatus  = 0x0c
	RegEvPending = 0x10
	RegEvEnable  = 0x14
	RegTxEmpty   = 0x18
	RegRxFull    = 0x1c
)

// Event bits.
const (
	EvTx = 0b01
	EvRx = 0b10
)

// depth of the receive fifo. bytes arriving when the fifo is full are
// dropped, as they would be by the hardware.
const rxFifoDepth = 16

// UART is the register-mapped serial port. It implements the bus.Device
// interface.
//
// Bytes written to the transmit register are passed to the tx io.Writer.
// The host feeds received bytes with the Receive() function; a receive event
// is raised and, if enabled, the UART's interrupt line is asserted.
type UART struct {
	crit sync.Mutex

	label string
	rt    *irq.Router
	tx    io.Writer
	rx    []byte

	evPending uint32
	evEnable  uint32
}

// New is the preferred method of initialisation for the UART type. The
// label doubles as the interrupt source name.
func New(label string, rt *irq.Router, tx io.Writer) *UART {
	return &UART{
		label: label,
		rt:    rt,
		tx:    tx,
		rx:    make([]byte, 0, rxFifoDepth),
	}
}

// Receive a byte from the host side, as though it had arrived on the wire.
func (u *UART) Receive(b byte) {
	u.crit.Lock()
	defer u.crit.Unlock()

	if len(u.rx) >= rxFifoDepth {
		logger.Logf("uart", "%s: rx fifo full, dropping %#02x", u.label, b)
		return
	}

	u.rx = append(u.rx, b)
	u.evPending |= EvRx
	u.updateIRQ()
}

// the event status register reflects the live condition of the fifos rather
// than the latched pending bits.
func (u *UART) evStatus() uint32 {
	s := uint32(EvTx) // tx path never fills
	if len(u.rx) > 0 {
		s |= EvRx
	}
	return s
}

// must be called with the critical section held.
func (u *UART) updateIRQ() {
	if u.evPending&u.evEnable != 0 {
		_ = u.rt.Assert(u.label)
	} else {
		_ = u.rt.Deassert(u.label)
	}
}

// Read implements the bus.Device interface.
func (u *UART) Read(offset uint64, _ bus.Width) (uint64, error) {
	u.crit.Lock()
	defer u.crit.Unlock()

	switch offset {
	case RegRxTx:
		if len(u.rx) == 0 {
			return 0, nil
		}
		b := u.rx[0]
		u.rx = u.rx[1:]
		if len(u.rx) == 0 {
			u.evPending &= ^uint32(EvRx)
			u.updateIRQ()
		}
		return uint64(b), nil
	case RegTxFull:
		return 0, nil
	case RegRxEmpty:
		if len(u.rx) == 0 {
			return 1, nil
		}
		return 0, nil
	case RegEvStatus:
		return uint64(u.evStatus()), nil
	case RegEvPending:
		return uint64(u.evPending), nil
	case RegEvEnable:
		return uint64(u.evEnable), nil
	case RegTxEmpty:
		return 1, nil
	case RegRxFull:
		if len(u.rx) >= rxFifoDepth {
			return 1, nil
		}
		return 0, nil
	}

	return 0, curated.Errorf(RegisterError, u.label, offset)
}

// Write implements the bus.Device interface.
func (u *UART) Write(offset uint64, _ bus.Width, value uint64) error {
	u.crit.Lock()
	defer u.crit.Unlock()

	switch offset {
	case RegRxTx:
		if u.tx != nil {
			_, _ = u.tx.Write([]byte{byte(value)})
		}
		return nil
	case RegEvPending:
		// write one to clear
		u.evPending &= ^uint32(value)
		u.updateIRQ()
		return nil
	case RegEvEnable:
		u.evEnable = uint32(value) & (EvTx | EvRx)
		u.updateIRQ()
		return nil
	case RegTxFull, RegRxEmpty, RegEvStatus, RegTxEmpty, RegRxFull:
		return curated.Errorf(RegisterError, u.label, offset)
	}

	return curated.Errorf(RegisterError, u.label, offset)
}
