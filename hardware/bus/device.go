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

package bus

import "fmt"

// Width is the size of a bus access in bytes.
type Width int

// The valid access widths.
const (
	Width1 Width = 1
	Width2 Width = 2
	Width4 Width = 4
	Width8 Width = 8
)

func (w Width) String() string {
	switch w {
	case Width1:
		return "byte"
	case Width2:
		return "half"
	case Width4:
		return "word"
	case Width8:
		return "dword"
	}
	return fmt.Sprintf("invalid width (%d)", int(w))
}

// Widths is the set of access widths a device accepts, expressed as a
// bitmask. Built with the MakeWidths() function.
type Widths uint8

// MakeWidths builds a width set from individual Width values.
func MakeWidths(ww ...Width) Widths {
	var ws Widths
	for _, w := range ww {
		switch w {
		case Width1:
			ws |= 0b0001
		case Width2:
			ws |= 0b0010
		case Width4:
			ws |= 0b0100
		case Width8:
			ws |= 0b1000
		}
	}
	return ws
}

// AllWidths is the width set accepted by plain memory devices.
var AllWidths = MakeWidths(Width1, Width2, Width4, Width8)

// Allows returns true if the width is in the set.
func (ws Widths) Allows(w Width) bool {
	return ws&MakeWidths(w) != 0
}

// Device is the capability interface implemented by every peripheral model.
// Offsets are relative to the device's canonical region; the bus has already
// performed address resolution, boundary checking and width checking by the
// time these functions are called.
//
// Implementations accessed by both the bus and the simulation clock must
// protect their state with a lock.
type Device interface {
	// Read returns the value at the offset. the value occupies the low
	// bits of the return value according to the access width
	Read(offset uint64, width Width) (uint64, error)

	// Write the value at the offset. the value occupies the low bits
	// according to the access width
	Write(offset uint64, width Width, value uint64) error
}

// Ticker is implemented by devices that are driven by the simulation's time
// source in addition to bus accesses.
type Ticker interface {
	// Tick is called once per tick of the simulation clock
	Tick()
}
