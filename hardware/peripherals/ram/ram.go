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

// Package ram implements plain mapped memory: a raw little-endian byte array
// with no side effects at the bus level. It backs the main SRAM and, in
// read-only mode, the XIP window onto the SPI flash image.
package ram

import (
	"encoding/binary"

	"github.com/simonsan/precursim/curated"
	"github.com/simonsan/precursim/hardware/bus"
)

// Error patterns returned by functions in this package.
const (
	AccessError   = "ram: %s: access beyond end of memory: %#08x"
	ReadOnlyWrite = "ram: %s: write to read-only memory: %#08x"
	LoadError     = "ram: %s: %s"
)

// Memory is an array of addressable bytes. It implements the bus.Device
// interface for all access widths.
type Memory struct {
	label    string
	data     []byte
	readOnly bool
}

// New is the preferred method of initialisation for the Memory type.
func New(label string, size uint64) *Memory {
	return &Memory{
		label: label,
		data:  make([]byte, size),
	}
}

// Load copies an image into memory from the host side, bypassing the bus and
// any read-only protection. Used by the loader to place a flash image.
func (m *Memory) Load(data []byte) error {
	if len(data) > len(m.data) {
		return curated.Errorf(LoadError, m.label, "image larger than memory")
	}
	copy(m.data, data)
	return nil
}

// SetReadOnly marks the memory read-only. Writes through the bus fault from
// this point on.
func (m *Memory) SetReadOnly() {
	m.readOnly = true
}

// Size of the memory in bytes.
func (m *Memory) Size() uint64 {
	return uint64(len(m.data))
}

// Read implements the bus.Device interface.
func (m *Memory) Read(offset uint64, width bus.Width) (uint64, error) {
	if offset+uint64(width) > uint64(len(m.data)) {
		return 0, curated.Errorf(AccessError, m.label, offset)
	}

	switch width {
	case bus.Width1:
		return uint64(m.data[offset]), nil
	case bus.Width2:
		return uint64(binary.LittleEndian.Uint16(m.data[offset:])), nil
	case bus.Width4:
		return uint64(binary.LittleEndian.Uint32(m.data[offset:])), nil
	case bus.Width8:
		return binary.LittleEndian.Uint64(m.data[offset:]), nil
	}

	return 0, curated.Errorf(AccessError, m.label, offset)
}

// Write implements the bus.Device interface.
func (m *Memory) Write(offset uint64, width bus.Width, value uint64) error {
	if m.readOnly {
		return curated.Errorf(ReadOnlyWrite, m.label, offset)
	}
	if offset+uint64(width) > uint64(len(m.data)) {
		return curated.Errorf(AccessError, m.label, offset)
	}

	switch width {
	case bus.Width1:
		m.data[offset] = uint8(value)
	case bus.Width2:
		binary.LittleEndian.PutUint16(m.data[offset:], uint16(value))
	case bus.Width4:
		binary.LittleEndian.PutUint32(m.data[offset:], uint32(value))
	case bus.Width8:
		binary.LittleEndian.PutUint64(m.data[offset:], value)
	default:
		return curated.Errorf(AccessError, m.label, offset)
	}

	return nil
}
