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

// Package memlcd implements the memory LCD framebuffer of the simulated
// machine: a monochrome 336x536 panel fed from a raw 1bpp framebuffer. At
// the bus level it is plain memory with no side effects; a display front
// end polls for changes with the Dirty() and Frame() functions.
package memlcd

import (
	"encoding/binary"
	"sync"

	"github.com/simonsan/precursim/curated"
	"github.com/simonsan/precursim/hardware/bus"
)

// Error patterns returned by functions in this package.
const (
	AccessError = "memlcd: %s: access beyond end of framebuffer: %#08x"
)

// Panel dimensions. Each line is padded to a whole number of 32-bit words.
const (
	Width  = 336
	Height = 536

	// bytes per line, including padding
	Stride = 44

	// FrameSize is the size of the framebuffer, and of the memory region
	// backing it, in bytes
	FrameSize = Height * Stride
)

// LCD is the framebuffer. It implements the bus.Device interface for all
// access widths.
type LCD struct {
	crit sync.Mutex

	label string
	data  []byte
	dirty bool
}

// New is the preferred method of initialisation for the LCD type.
func New(label string) *LCD {
	return &LCD{
		label: label,
		data:  make([]byte, FrameSize),
	}
}

// Read implements the bus.Device interface.
func (lcd *LCD) Read(offset uint64, width bus.Width) (uint64, error) {
	lcd.crit.Lock()
	defer lcd.crit.Unlock()

	if offset+uint64(width) > FrameSize {
		return 0, curated.Errorf(AccessError, lcd.label, offset)
	}

	switch width {
	case bus.Width1:
		return uint64(lcd.data[offset]), nil
	case bus.Width2:
		return uint64(binary.LittleEndian.Uint16(lcd.data[offset:])), nil
	case bus.Width4:
		return uint64(binary.LittleEndian.Uint32(lcd.data[offset:])), nil
	case bus.Width8:
		return binary.LittleEndian.Uint64(lcd.data[offset:]), nil
	}

	return 0, curated.Errorf(AccessError, lcd.label, offset)
}

// Write implements the bus.Device interface.
func (lcd *LCD) Write(offset uint64, width bus.Width, value uint64) error {
	lcd.crit.Lock()
	defer lcd.crit.Unlock()

	if offset+uint64(width) > FrameSize {
		return curated.Errorf(AccessError, lcd.label, offset)
	}

	switch width {
	case bus.Width1:
		lcd.data[offset] = uint8(value)
	case bus.Width2:
		binary.LittleEndian.PutUint16(lcd.data[offset:], uint16(value))
	case bus.Width4:
		binary.LittleEndian.PutUint32(lcd.data[offset:], uint32(value))
	case bus.Width8:
		binary.LittleEndian.PutUint64(lcd.data[offset:], value)
	default:
		return curated.Errorf(AccessError, lcd.label, offset)
	}

	lcd.dirty = true
	return nil
}

// Dirty returns true if the framebuffer has been written to since the last
// call. The flag is cleared by the call.
func (lcd *LCD) Dirty() bool {
	lcd.crit.Lock()
	defer lcd.crit.Unlock()

	d := lcd.dirty
	lcd.dirty = false
	return d
}

// Frame returns a copy of the framebuffer.
func (lcd *LCD) Frame() []byte {
	lcd.crit.Lock()
	defer lcd.crit.Unlock()

	f := make([]byte, len(lcd.data))
	copy(f, lcd.data)
	return f
}

// Pixel returns the state of the pixel at the coordinates. Outside the
// panel, the return value is false. Mostly useful for testing and for
// simple front ends.
func (lcd *LCD) Pixel(x int, y int) bool {
	if x < 0 || x >= Width || y < 0 || y >= Height {
		return false
	}

	lcd.crit.Lock()
	defer lcd.crit.Unlock()

	return lcd.data[y*Stride+x/8]&(1<<(x%8)) != 0
}
