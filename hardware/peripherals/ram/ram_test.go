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

package ram_test

import (
	"testing"

	"github.com/simonsan/precursim/hardware/bus"
	"github.com/simonsan/precursim/hardware/peripherals/ram"
	"github.com/simonsan/precursim/test"
)

func TestLittleEndian(t *testing.T) {
	m := ram.New("sram", 0x100)

	test.ExpectedSuccess(t, m.Write(0x10, bus.Width4, 0x12345678))

	v, err := m.Read(0x10, bus.Width1)
	test.ExpectedSuccess(t, err)
	test.Equate(t, v, 0x78)

	v, err = m.Read(0x12, bus.Width2)
	test.ExpectedSuccess(t, err)
	test.Equate(t, v, 0x1234)

	test.ExpectedSuccess(t, m.Write(0x20, bus.Width8, 0x0102030405060708))
	v, err = m.Read(0x24, bus.Width4)
	test.ExpectedSuccess(t, err)
	test.Equate(t, v, 0x01020304)
}

func TestBounds(t *testing.T) {
	m := ram.New("sram", 0x10)

	_, err := m.Read(0x0f, bus.Width1)
	test.ExpectedSuccess(t, err)

	_, err = m.Read(0x0f, bus.Width2)
	test.ExpectedFailure(t, err)

	test.ExpectedFailure(t, m.Write(0x10, bus.Width1, 0))
}

func TestLoad(t *testing.T) {
	m := ram.New("spinor", 4)

	test.ExpectedFailure(t, m.Load(make([]byte, 8)))
	test.ExpectedSuccess(t, m.Load([]byte{1, 2, 3, 4}))

	m.SetReadOnly()

	// Load is a host side operation and ignores read-only protection
	test.ExpectedSuccess(t, m.Load([]byte{5}))

	v, err := m.Read(0, bus.Width1)
	test.ExpectedSuccess(t, err)
	test.Equate(t, v, 5)

	test.ExpectedFailure(t, m.Write(0, bus.Width1, 9))
}
