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

package memlcd_test

import (
	"testing"

	"github.com/simonsan/precursim/hardware/bus"
	"github.com/simonsan/precursim/hardware/peripherals/memlcd"
	"github.com/simonsan/precursim/test"
)

func TestPixels(t *testing.T) {
	lcd := memlcd.New("memlcd")

	// pixel 9 of line 2 is bit 1 of the second byte of the line
	test.ExpectedSuccess(t, lcd.Write(2*memlcd.Stride+1, bus.Width1, 0b10))

	test.ExpectedSuccess(t, lcd.Pixel(9, 2))
	test.ExpectedFailure(t, lcd.Pixel(8, 2))
	test.ExpectedFailure(t, lcd.Pixel(9, 1))

	// coordinates off the panel
	test.ExpectedFailure(t, lcd.Pixel(-1, 0))
	test.ExpectedFailure(t, lcd.Pixel(memlcd.Width, 0))
}

func TestDirty(t *testing.T) {
	lcd := memlcd.New("memlcd")

	test.ExpectedFailure(t, lcd.Dirty())

	test.ExpectedSuccess(t, lcd.Write(0, bus.Width4, 0xffffffff))
	test.ExpectedSuccess(t, lcd.Dirty())

	// the flag clears on read
	test.ExpectedFailure(t, lcd.Dirty())

	// reads do not dirty the framebuffer
	_, err := lcd.Read(0, bus.Width4)
	test.ExpectedSuccess(t, err)
	test.ExpectedFailure(t, lcd.Dirty())
}

func TestBounds(t *testing.T) {
	lcd := memlcd.New("memlcd")

	_, err := lcd.Read(memlcd.FrameSize-1, bus.Width1)
	test.ExpectedSuccess(t, err)

	_, err = lcd.Read(memlcd.FrameSize-1, bus.Width4)
	test.ExpectedFailure(t, err)

	test.ExpectedFailure(t, lcd.Write(memlcd.FrameSize, bus.Width1, 0))
}

func TestFrameIsACopy(t *testing.T) {
	lcd := memlcd.New("memlcd")

	f := lcd.Frame()
	f[0] = 0xff

	v, err := lcd.Read(0, bus.Width1)
	test.ExpectedSuccess(t, err)
	test.Equate(t, v, 0)
}
