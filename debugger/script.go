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

package debugger

import (
	"github.com/simonsan/precursim/curated"
	"github.com/simonsan/precursim/hardware/bus"
	"github.com/simonsan/precursim/hardware/irq"
	lua "github.com/yuin/gopher-lua"
)

// script runs a lua file against the machine. The script sees these
// functions:
//
//	peek(address, width)        returns value or nil, error string
//	poke(address, value, width) returns error string or nil
//	step(n)
//	irqpending(line)            returns a boolean
//	print(...)                  lua's own, routed to the debugger output
//
// Addresses and values are lua numbers; widths are 1, 2, 4 or 8 and
// default to 4 when omitted.
func (dbg *Debugger) script(filename string) error {
	L := lua.NewState()
	defer L.Close()

	L.SetGlobal("peek", L.NewFunction(func(L *lua.LState) int {
		address := uint64(L.CheckNumber(1))
		width := bus.Width(L.OptInt(2, 4))

		v, err := dbg.soc.Bus.Read(address, width)
		if err != nil {
			L.Push(lua.LNil)
			L.Push(lua.LString(err.Error()))
			return 2
		}
		L.Push(lua.LNumber(v))
		return 1
	}))

	L.SetGlobal("poke", L.NewFunction(func(L *lua.LState) int {
		address := uint64(L.CheckNumber(1))
		value := uint64(L.CheckNumber(2))
		width := bus.Width(L.OptInt(3, 4))

		if err := dbg.soc.Bus.Write(address, width, value); err != nil {
			L.Push(lua.LString(err.Error()))
			return 1
		}
		return 0
	}))

	L.SetGlobal("step", L.NewFunction(func(L *lua.LState) int {
		dbg.soc.RunTicks(uint64(L.OptInt64(1, 1)))
		return 0
	}))

	L.SetGlobal("irqpending", L.NewFunction(func(L *lua.LState) int {
		line := irq.Line(L.CheckInt(1))
		L.Push(lua.LBool(dbg.soc.Pending.IsPending(line)))
		return 1
	}))

	L.SetGlobal("print", L.NewFunction(func(L *lua.LState) int {
		n := L.GetTop()
		for i := 1; i <= n; i++ {
			if i > 1 {
				dbg.printf("\t")
			}
			dbg.printf("%s", L.ToStringMeta(L.Get(i)).String())
		}
		dbg.printf("\n")
		return 0
	}))

	if err := L.DoFile(filename); err != nil {
		return curated.Errorf(CommandError, "SCRIPT", err)
	}

	return nil
}
