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

package uart_test

import (
	"strings"
	"testing"

	"github.com/simonsan/precursim/hardware/bus"
	"github.com/simonsan/precursim/hardware/irq"
	"github.com/simonsan/precursim/hardware/peripherals/uart"
	"github.com/simonsan/precursim/test"
)

func newTestUART(t *testing.T) (*uart.UART, *strings.Builder, *irq.Pending) {
	t.Helper()

	pending := irq.NewPending()
	rt := irq.NewRouter(pending)
	if err := rt.RegisterLine("uart", 2); err != nil {
		t.Fatalf("unexpected error (%s)", err)
	}

	tx := &strings.Builder{}
	return uart.New("uart", rt, tx), tx, pending
}

func TestTransmit(t *testing.T) {
	u, tx, _ := newTestUART(t)

	for _, b := range []byte("hello") {
		test.ExpectedSuccess(t, u.Write(uart.RegRxTx, bus.Width4, uint64(b)))
	}

	test.Equate(t, tx.String(), "hello")
}

func TestReceive(t *testing.T) {
	u, _, _ := newTestUART(t)

	// empty fifo
	v, err := u.Read(uart.RegRxEmpty, bus.Width4)
	test.ExpectedSuccess(t, err)
	test.Equate(t, v, 1)

	u.Receive('A')
	u.Receive('B')

	v, err = u.Read(uart.RegRxEmpty, bus.Width4)
	test.ExpectedSuccess(t, err)
	test.Equate(t, v, 0)

	// fifo drains in order
	v, err = u.Read(uart.RegRxTx, bus.Width4)
	test.ExpectedSuccess(t, err)
	test.Equate(t, v, uint64('A'))

	v, err = u.Read(uart.RegRxTx, bus.Width4)
	test.ExpectedSuccess(t, err)
	test.Equate(t, v, uint64('B'))

	v, err = u.Read(uart.RegRxEmpty, bus.Width4)
	test.ExpectedSuccess(t, err)
	test.Equate(t, v, 1)
}

func TestReceiveInterrupt(t *testing.T) {
	u, _, pending := newTestUART(t)

	// receiving with the event disabled does not interrupt
	u.Receive('A')
	test.ExpectedFailure(t, pending.IsPending(2))

	// enabling the event with the pending bit already set asserts the line
	test.ExpectedSuccess(t, u.Write(uart.RegEvEnable, bus.Width4, uart.EvRx))
	test.ExpectedSuccess(t, pending.IsPending(2))
	test.Equate(t, len(pending.History()), 1)

	// further receives do not re-notify while the line is high
	u.Receive('B')
	test.Equate(t, len(pending.History()), 1)

	// draining the fifo and clearing the pending bit lowers the line;
	// the next receive is a new rising edge
	_, err := u.Read(uart.RegRxTx, bus.Width4)
	test.ExpectedSuccess(t, err)
	_, err = u.Read(uart.RegRxTx, bus.Width4)
	test.ExpectedSuccess(t, err)
	test.ExpectedSuccess(t, u.Write(uart.RegEvPending, bus.Width4, uart.EvRx))

	u.Receive('C')
	test.Equate(t, len(pending.History()), 2)
}

func TestUndefinedRegister(t *testing.T) {
	u, _, _ := newTestUART(t)

	_, err := u.Read(0x40, bus.Width4)
	test.ExpectedFailure(t, err)

	// status registers are read-only
	test.ExpectedFailure(t, u.Write(uart.RegTxFull, bus.Width4, 1))
}
