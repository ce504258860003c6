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

// Package platform is the declarative description of the simulated machine:
// which peripherals exist, where they live in the address space, which
// shadow windows alias them and which interrupt line each one drives.
//
// The description is consumed in file order by the SoC loader in the
// hardware package. Registration order has no semantic effect but keeping
// the declared order means a configuration error is reported against the
// same entry a reader sees in this file.
package platform

// Kind selects the device model backing an entry.
type Kind int

// The device kinds of this platform.
const (
	KindRAM Kind = iota
	KindFlash
	KindUART
	KindTimer
	KindMachineTimer
	KindTickTimer
	KindKeyboard
	KindFramebuffer
	KindTag
)

func (k Kind) String() string {
	switch k {
	case KindRAM:
		return "ram"
	case KindFlash:
		return "flash"
	case KindUART:
		return "uart"
	case KindTimer:
		return "timer"
	case KindMachineTimer:
		return "machine timer"
	case KindTickTimer:
		return "ticktimer"
	case KindKeyboard:
		return "keyboard"
	case KindFramebuffer:
		return "framebuffer"
	case KindTag:
		return "tag"
	}
	return "undefined"
}

// Entry describes one peripheral or memory region.
type Entry struct {
	Name string
	Base uint64
	Size uint64

	// base of the cache-bypassing shadow window. zero means the entry has
	// no shadow window
	Shadow uint64

	// interrupt line driven by the peripheral. NoLine means the peripheral
	// does not interrupt
	Line int

	Kind Kind

	// countdown frequency for KindTimer entries
	Hz uint64

	// millisecond period for KindTickTimer entries
	PeriodMS uint64
}

// NoLine is the Line value for entries that drive no interrupt line.
const NoLine = -1

// TickRateHz is the granularity of the simulation's time source. One tick
// of the global clock represents one microsecond of simulated time.
const TickRateHz = 1_000_000

// MachineTimerLine is the interrupt controller input reserved for the CPU
// local machine timer.
const MachineTimerLine = 1001

// Framebuffer geometry is fixed by the memlcd package; the region size
// below must match memlcd.FrameSize.

// Precursor is the address map of the simulated machine. CSR peripherals
// appear twice: at their base address through the cached window and at the
// 0xF... shadow window that bypasses the cache.
var Precursor = []Entry{
	{Name: "spinor", Base: 0x20000000, Size: 0x00800000, Line: NoLine, Kind: KindFlash},
	{Name: "sram", Base: 0x40000000, Size: 0x01000000, Line: NoLine, Kind: KindRAM},
	{Name: "memlcd", Base: 0xb0000000, Size: 0x5c20, Line: NoLine, Kind: KindFramebuffer},
	{Name: "csr", Base: 0x60000000, Size: 0x1000, Line: NoLine, Kind: KindTag},
	{Name: "timer0", Base: 0x60001000, Size: 0x800, Shadow: 0xf0001000, Line: 0, Kind: KindTimer, Hz: 1_000_000},
	{Name: "ticktimer", Base: 0x60005000, Size: 0x800, Shadow: 0xf0005000, Line: 4, Kind: KindTickTimer, PeriodMS: 1},
	{Name: "keyboard", Base: 0x60006000, Size: 0x800, Shadow: 0xf0006000, Line: 5, Kind: KindKeyboard},
	{Name: "uart", Base: 0x60008000, Size: 0x800, Shadow: 0xf0008000, Line: 2, Kind: KindUART},
	{Name: "mtimer", Base: 0xf0003000, Size: 0x1000, Line: MachineTimerLine, Kind: KindMachineTimer},
	{Name: "vexriscv-debug", Base: 0xefff0000, Size: 0x1000, Line: NoLine, Kind: KindTag},
}
