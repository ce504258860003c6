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

package hardware

import (
	"io"

	"github.com/simonsan/precursim/curated"
	"github.com/simonsan/precursim/hardware/bus"
	"github.com/simonsan/precursim/hardware/irq"
	"github.com/simonsan/precursim/hardware/memorymap"
	"github.com/simonsan/precursim/hardware/peripherals/keyboard"
	"github.com/simonsan/precursim/hardware/peripherals/memlcd"
	"github.com/simonsan/precursim/hardware/peripherals/ram"
	"github.com/simonsan/precursim/hardware/peripherals/ticktimer"
	"github.com/simonsan/precursim/hardware/peripherals/timer"
	"github.com/simonsan/precursim/hardware/peripherals/uart"
	"github.com/simonsan/precursim/logger"
	"github.com/simonsan/precursim/platform"
)

// Error patterns returned by functions in this package.
const (
	LoadError = "soc: %s: %v"
)

// SoC is the main container for the simulated components of the machine.
// Everything is constructed once, from the platform description, and passed
// explicitly to whatever needs it. There are no package level instances;
// many SoCs can coexist, which the test harnesses rely on.
type SoC struct {
	Desc []platform.Entry

	Map     *memorymap.Table
	Bus     *bus.Bus
	IRQ     *irq.Router
	Pending *irq.Pending

	UART      *uart.UART
	Timer0    *timer.Timer
	MTimer    *timer.Machine
	TickTimer *ticktimer.TickTimer
	Keyboard  *keyboard.Keyboard
	LCD       *memlcd.LCD
	SRAM      *ram.Memory
	Flash     *ram.Memory

	// devices driven by the simulation clock
	tickers []bus.Ticker

	// number of clock ticks since construction
	ticks uint64
}

// NewSoC creates a new SoC from the platform description. Bytes transmitted
// by the simulated UART are written to uartTx, which may be nil.
//
// The description is walked in declared order. Any configuration error --
// overlapping regions, duplicate interrupt lines -- aborts construction;
// a machine with an ambiguous address map must not start.
func NewSoC(desc []platform.Entry, uartTx io.Writer) (*SoC, error) {
	soc := &SoC{
		Desc:    desc,
		Map:     memorymap.NewTable(),
		Pending: irq.NewPending(),
	}
	soc.IRQ = irq.NewRouter(soc.Pending)
	soc.Bus = bus.NewBus(soc.Map)

	for _, e := range desc {
		if err := soc.load(e, uartTx); err != nil {
			return nil, err
		}
	}

	logger.Logf("soc", "%d regions mapped", len(desc))

	return soc, nil
}

// load registers one description entry: canonical region, shadow window,
// interrupt line and device model.
func (soc *SoC) load(e platform.Entry, uartTx io.Writer) error {
	id, err := soc.Map.Register(memorymap.Region{
		Label:   e.Name,
		Origin:  e.Base,
		Size:    e.Size,
		AliasOf: memorymap.NoRegion,
		Tag:     e.Kind == platform.KindTag,
	})
	if err != nil {
		return curated.Errorf(LoadError, e.Name, err)
	}

	if e.Shadow != 0 {
		_, err = soc.Map.Register(memorymap.Region{
			Label:   e.Name + ".shadow",
			Origin:  e.Shadow,
			Size:    e.Size,
			AliasOf: id,
		})
		if err != nil {
			return curated.Errorf(LoadError, e.Name, err)
		}
	}

	if e.Line != platform.NoLine {
		if err := soc.IRQ.RegisterLine(e.Name, irq.Line(e.Line)); err != nil {
			return curated.Errorf(LoadError, e.Name, err)
		}
	}

	var dev bus.Device
	widths := bus.MakeWidths(bus.Width4)

	switch e.Kind {
	case platform.KindTag:
		// label only. nothing to attach
		return nil

	case platform.KindRAM:
		m := ram.New(e.Name, e.Size)
		soc.SRAM = m
		dev = m
		widths = bus.AllWidths

	case platform.KindFlash:
		m := ram.New(e.Name, e.Size)
		m.SetReadOnly()
		soc.Flash = m
		dev = m
		widths = bus.AllWidths

	case platform.KindFramebuffer:
		lcd := memlcd.New(e.Name)
		soc.LCD = lcd
		dev = lcd
		widths = bus.AllWidths

	case platform.KindUART:
		u := uart.New(e.Name, soc.IRQ, uartTx)
		soc.UART = u
		dev = u
		widths = bus.MakeWidths(bus.Width1, bus.Width4)

	case platform.KindTimer:
		hz := e.Hz
		if hz == 0 {
			hz = platform.TickRateHz
		}
		tmr := timer.NewTimer(e.Name, soc.IRQ, platform.TickRateHz/hz)
		soc.Timer0 = tmr
		dev = tmr
		soc.tickers = append(soc.tickers, tmr)

	case platform.KindMachineTimer:
		m := timer.NewMachine(e.Name, soc.IRQ)
		soc.MTimer = m
		dev = m
		widths = bus.MakeWidths(bus.Width4, bus.Width8)
		soc.tickers = append(soc.tickers, m)

	case platform.KindTickTimer:
		period := e.PeriodMS
		if period == 0 {
			period = 1
		}
		tt := ticktimer.New(e.Name, soc.IRQ, period*(platform.TickRateHz/1000))
		soc.TickTimer = tt
		dev = tt
		soc.tickers = append(soc.tickers, tt)

	case platform.KindKeyboard:
		kbd := keyboard.New(e.Name, soc.IRQ)
		soc.Keyboard = kbd
		dev = kbd

	default:
		return curated.Errorf(LoadError, e.Name, "unknown device kind")
	}

	if err := soc.Bus.Attach(id, dev, widths); err != nil {
		return curated.Errorf(LoadError, e.Name, err)
	}

	return nil
}

// LoadFlash places an image in the SPI flash, as though it had been written
// by the provisioning tool. Host side operation; the XIP window stays
// read-only.
func (soc *SoC) LoadFlash(data []byte) error {
	if soc.Flash == nil {
		return curated.Errorf(LoadError, "spinor", "no flash in platform description")
	}
	return soc.Flash.Load(data)
}

// Step advances the simulation clock by one tick, driving every clocked
// device once.
func (soc *SoC) Step() {
	for _, tk := range soc.tickers {
		tk.Tick()
	}
	soc.ticks++
}

// RunTicks advances the simulation clock by the specified number of ticks.
func (soc *SoC) RunTicks(n uint64) {
	for i := uint64(0); i < n; i++ {
		soc.Step()
	}
}

// Ticks returns the number of clock ticks since construction.
func (soc *SoC) Ticks() uint64 {
	return soc.ticks
}
