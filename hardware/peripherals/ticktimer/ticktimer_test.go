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

package ticktimer_test

import (
	"testing"

	"github.com/simonsan/precursim/hardware/bus"
	"github.com/simonsan/precursim/hardware/irq"
	"github.com/simonsan/precursim/hardware/peripherals/ticktimer"
	"github.com/simonsan/precursim/test"
)

func newTickTimer(t *testing.T, ticksPerMS uint64) (*ticktimer.TickTimer, *irq.Pending) {
	t.Helper()

	pending := irq.NewPending()
	rt := irq.NewRouter(pending)
	if err := rt.RegisterLine("ticktimer", 4); err != nil {
		t.Fatalf("unexpected error (%s)", err)
	}
	return ticktimer.New("ticktimer", rt, ticksPerMS), pending
}

func TestMillisecondCount(t *testing.T) {
	tt, _ := newTickTimer(t, 10)

	for i := 0; i < 35; i++ {
		tt.Tick()
	}

	v, err := tt.Read(ticktimer.RegTimeLo, bus.Width4)
	test.ExpectedSuccess(t, err)
	test.Equate(t, v, 3)

	v, err = tt.Read(ticktimer.RegTimeHi, bus.Width4)
	test.ExpectedSuccess(t, err)
	test.Equate(t, v, 0)
}

func TestMsleepAlarm(t *testing.T) {
	tt, pending := newTickTimer(t, 1)

	test.ExpectedSuccess(t, tt.Write(ticktimer.RegEvEnable, bus.Width4, ticktimer.EvAlarm))
	test.ExpectedSuccess(t, tt.Write(ticktimer.RegMsleepTargetLo, bus.Width4, 5))

	for i := 0; i < 4; i++ {
		tt.Tick()
	}
	test.ExpectedFailure(t, pending.IsPending(4))

	tt.Tick()
	test.ExpectedSuccess(t, pending.IsPending(4))
	test.Equate(t, len(pending.History()), 1)

	// holding past the deadline is not a new edge
	tt.Tick()
	tt.Tick()
	test.Equate(t, len(pending.History()), 1)
}

func TestControl(t *testing.T) {
	tt, _ := newTickTimer(t, 1)

	for i := 0; i < 10; i++ {
		tt.Tick()
	}

	// pause stops the count
	test.ExpectedSuccess(t, tt.Write(ticktimer.RegControl, bus.Width4, ticktimer.CtlPause))
	for i := 0; i < 10; i++ {
		tt.Tick()
	}

	v, err := tt.Read(ticktimer.RegTimeLo, bus.Width4)
	test.ExpectedSuccess(t, err)
	test.Equate(t, v, 10)

	// reset zeroes the count and unpauses
	test.ExpectedSuccess(t, tt.Write(ticktimer.RegControl, bus.Width4, ticktimer.CtlReset))
	tt.Tick()

	v, err = tt.Read(ticktimer.RegTimeLo, bus.Width4)
	test.ExpectedSuccess(t, err)
	test.Equate(t, v, 1)

	// the time registers are read-only
	test.ExpectedFailure(t, tt.Write(ticktimer.RegTimeLo, bus.Width4, 99))
}
