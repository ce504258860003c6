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

package timer_test

import (
	"testing"

	"github.com/simonsan/precursim/hardware/bus"
	"github.com/simonsan/precursim/hardware/irq"
	"github.com/simonsan/precursim/hardware/peripherals/timer"
	"github.com/simonsan/precursim/test"
)

func newRouter(t *testing.T, source string, line irq.Line) (*irq.Router, *irq.Pending) {
	t.Helper()

	pending := irq.NewPending()
	rt := irq.NewRouter(pending)
	if err := rt.RegisterLine(source, line); err != nil {
		t.Fatalf("unexpected error (%s)", err)
	}
	return rt, pending
}

func TestCountdown(t *testing.T) {
	rt, pending := newRouter(t, "timer0", 0)
	tmr := timer.NewTimer("timer0", rt, 1)

	test.ExpectedSuccess(t, tmr.Write(timer.RegLoad, bus.Width4, 3))
	test.ExpectedSuccess(t, tmr.Write(timer.RegReload, bus.Width4, 3))
	test.ExpectedSuccess(t, tmr.Write(timer.RegEvEnable, bus.Width4, timer.EvZero))
	test.ExpectedSuccess(t, tmr.Write(timer.RegEnable, bus.Width4, 1))

	tmr.Tick()
	tmr.Tick()
	test.ExpectedFailure(t, pending.IsPending(0))

	// third tick reaches zero
	tmr.Tick()
	test.ExpectedSuccess(t, pending.IsPending(0))
	test.Equate(t, len(pending.History()), 1)

	// the counter reloaded and keeps running but the line is already high
	tmr.Tick()
	tmr.Tick()
	tmr.Tick()
	test.Equate(t, len(pending.History()), 1)

	// clearing the event lowers the line; the next expiry is a new edge
	test.ExpectedSuccess(t, tmr.Write(timer.RegEvPending, bus.Width4, timer.EvZero))
	tmr.Tick()
	tmr.Tick()
	tmr.Tick()
	test.Equate(t, len(pending.History()), 2)
}

func TestTickDivider(t *testing.T) {
	rt, pending := newRouter(t, "timer0", 0)

	// 4 simulation ticks per timer count
	tmr := timer.NewTimer("timer0", rt, 4)

	test.ExpectedSuccess(t, tmr.Write(timer.RegLoad, bus.Width4, 2))
	test.ExpectedSuccess(t, tmr.Write(timer.RegReload, bus.Width4, 2))
	test.ExpectedSuccess(t, tmr.Write(timer.RegEvEnable, bus.Width4, timer.EvZero))
	test.ExpectedSuccess(t, tmr.Write(timer.RegEnable, bus.Width4, 1))

	for i := 0; i < 7; i++ {
		tmr.Tick()
	}
	test.ExpectedFailure(t, pending.IsPending(0))

	tmr.Tick()
	test.ExpectedSuccess(t, pending.IsPending(0))
}

func TestValueLatch(t *testing.T) {
	rt, _ := newRouter(t, "timer0", 0)
	tmr := timer.NewTimer("timer0", rt, 1)

	test.ExpectedSuccess(t, tmr.Write(timer.RegLoad, bus.Width4, 10))
	test.ExpectedSuccess(t, tmr.Write(timer.RegEnable, bus.Width4, 1))

	tmr.Tick()
	tmr.Tick()

	// VALUE does not change until UPDATE_VALUE is written
	v, err := tmr.Read(timer.RegValue, bus.Width4)
	test.ExpectedSuccess(t, err)
	test.Equate(t, v, 0)

	test.ExpectedSuccess(t, tmr.Write(timer.RegUpdateValue, bus.Width4, 1))
	v, err = tmr.Read(timer.RegValue, bus.Width4)
	test.ExpectedSuccess(t, err)
	test.Equate(t, v, 8)
}

func TestMachineTimer(t *testing.T) {
	rt, pending := newRouter(t, "mtimer", 1001)
	m := timer.NewMachine("mtimer", rt)

	// a zero MTIMECMP never matches
	for i := 0; i < 10; i++ {
		m.Tick()
	}
	test.ExpectedFailure(t, pending.IsPending(1001))

	test.ExpectedSuccess(t, m.Write(timer.RegMTimeCmp, bus.Width8, 15))

	for i := 0; i < 4; i++ {
		m.Tick()
	}
	test.ExpectedFailure(t, pending.IsPending(1001))

	// the compare match is exactly one rising edge
	m.Tick()
	test.ExpectedSuccess(t, pending.IsPending(1001))
	test.Equate(t, len(pending.History()), 1)

	m.Tick()
	m.Tick()
	test.Equate(t, len(pending.History()), 1)

	// programming a new deadline lowers the line; reaching it is a new edge
	test.ExpectedSuccess(t, m.Write(timer.RegMTimeCmp, bus.Width8, 20))
	m.Tick()
	m.Tick()
	m.Tick()
	test.Equate(t, len(pending.History()), 2)
}

func TestMachineTimerHalves(t *testing.T) {
	rt, _ := newRouter(t, "mtimer", 1001)
	m := timer.NewMachine("mtimer", rt)

	test.ExpectedSuccess(t, m.Write(timer.RegMTime, bus.Width8, 0x0123456789abcdef))

	v, err := m.Read(timer.RegMTime, bus.Width4)
	test.ExpectedSuccess(t, err)
	test.Equate(t, v, uint64(0x89abcdef))

	v, err = m.Read(timer.RegMTimeHi, bus.Width4)
	test.ExpectedSuccess(t, err)
	test.Equate(t, v, uint64(0x01234567))

	test.ExpectedSuccess(t, m.Write(timer.RegMTimeCmpHi, bus.Width4, 0x1))
	v, err = m.Read(timer.RegMTimeCmp, bus.Width8)
	test.ExpectedSuccess(t, err)
	test.Equate(t, v, uint64(0x100000000))
}
