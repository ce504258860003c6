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

package keyboard_test

import (
	"testing"

	"github.com/simonsan/precursim/hardware/bus"
	"github.com/simonsan/precursim/hardware/irq"
	"github.com/simonsan/precursim/hardware/peripherals/keyboard"
	"github.com/simonsan/precursim/test"
)

func newKeyboard(t *testing.T) (*keyboard.Keyboard, *irq.Pending) {
	t.Helper()

	pending := irq.NewPending()
	rt := irq.NewRouter(pending)
	if err := rt.RegisterLine("keyboard", 5); err != nil {
		t.Fatalf("unexpected error (%s)", err)
	}
	return keyboard.New("keyboard", rt), pending
}

func TestMatrix(t *testing.T) {
	kbd, _ := newKeyboard(t)

	test.ExpectedSuccess(t, kbd.KeyDown(2, 3))
	test.ExpectedSuccess(t, kbd.KeyDown(2, 7))

	v, err := kbd.Read(keyboard.RegRowDat+2*4, bus.Width4)
	test.ExpectedSuccess(t, err)
	test.Equate(t, v, uint64(1<<3|1<<7))

	// other rows are untouched
	v, err = kbd.Read(keyboard.RegRowDat, bus.Width4)
	test.ExpectedSuccess(t, err)
	test.Equate(t, v, 0)

	test.ExpectedSuccess(t, kbd.KeyUp(2, 3))
	v, err = kbd.Read(keyboard.RegRowDat+2*4, bus.Width4)
	test.ExpectedSuccess(t, err)
	test.Equate(t, v, uint64(1<<7))

	// positions outside the matrix are rejected
	test.ExpectedFailure(t, kbd.KeyDown(keyboard.Rows, 0))
	test.ExpectedFailure(t, kbd.KeyDown(0, keyboard.Columns))
}

func TestKeyInterrupt(t *testing.T) {
	kbd, pending := newKeyboard(t)

	test.ExpectedSuccess(t, kbd.Write(keyboard.RegEvEnable, bus.Width4, keyboard.EvKeyPressed))

	test.ExpectedSuccess(t, kbd.KeyDown(0, 0))
	test.ExpectedSuccess(t, pending.IsPending(5))
	test.Equate(t, len(pending.History()), 1)

	// a second transition while pending is not a new edge
	test.ExpectedSuccess(t, kbd.KeyUp(0, 0))
	test.Equate(t, len(pending.History()), 1)

	// clearing the pending bit rearms the edge
	test.ExpectedSuccess(t, kbd.Write(keyboard.RegEvPending, bus.Width4, keyboard.EvKeyPressed))
	test.ExpectedSuccess(t, kbd.KeyDown(1, 1))
	test.Equate(t, len(pending.History()), 2)
}

func TestRowRegistersReadOnly(t *testing.T) {
	kbd, _ := newKeyboard(t)
	test.ExpectedFailure(t, kbd.Write(keyboard.RegRowDat, bus.Width4, 0xff))
}
