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

// Package debugger is the interactive front end of the simulator: a line
// oriented command loop for inspecting the address space, stepping the
// clock and watching interrupt activity.
package debugger

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/simonsan/precursim/curated"
	"github.com/simonsan/precursim/hardware"
	"github.com/simonsan/precursim/hardware/bus"
	"github.com/simonsan/precursim/hardware/irq"
	"github.com/simonsan/precursim/logger"
)

// Error patterns returned by functions in this package.
const (
	CommandError = "debugger: %s: %v"
	ParseError   = "debugger: cannot parse %s: %s"
)

// Debugger is the interactive interface to a running SoC.
type Debugger struct {
	soc  *hardware.SoC
	term *terminal

	input  io.Reader
	output io.Writer

	running bool
}

// New is the preferred method of initialisation for the Debugger type.
func New(soc *hardware.SoC, input io.Reader, output io.Writer) *Debugger {
	dbg := &Debugger{
		soc:    soc,
		input:  input,
		output: output,
	}

	// walk mode needs a real terminal on the input side. if input is not a
	// file the WALK command is refused at the point of use
	if f, ok := input.(*os.File); ok {
		dbg.term = newTerminal(f)
	}

	return dbg
}

func (dbg *Debugger) printf(s string, args ...interface{}) {
	fmt.Fprintf(dbg.output, s, args...)
}

// Run reads and dispatches commands until the QUIT command or the end of
// the input stream.
func (dbg *Debugger) Run() error {
	dbg.running = true
	scanner := bufio.NewScanner(dbg.input)

	dbg.printf("precursim debugger. HELP for commands\n")

	for dbg.running {
		dbg.printf("> ")
		if !scanner.Scan() {
			break
		}
		if err := dbg.Dispatch(scanner.Text()); err != nil {
			dbg.printf("error: %s\n", err)
		}
	}

	return scanner.Err()
}

// Dispatch parses and executes one command line. Exported so scripted front
// ends can drive the debugger without a terminal.
func (dbg *Debugger) Dispatch(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}

	cmd := strings.ToUpper(fields[0])
	args := fields[1:]

	switch cmd {
	case "HELP", "?":
		dbg.printf("%s", helpText)

	case "PEEK":
		return dbg.peek(args)

	case "POKE":
		return dbg.poke(args)

	case "STEP":
		return dbg.step(args)

	case "WALK":
		return dbg.walk()

	case "MAP":
		dbg.printf("%s", dbg.soc.Map.Summary())

	case "IRQ":
		h := dbg.soc.Pending.History()
		if len(h) == 0 {
			dbg.printf("no interrupts delivered\n")
			return nil
		}
		for _, l := range h {
			dbg.printf("line %d pending=%v\n", l, dbg.soc.Pending.IsPending(l))
		}

	case "ACK":
		if len(args) != 1 {
			return curated.Errorf(CommandError, cmd, "expects a line number")
		}
		l, err := strconv.ParseUint(args[0], 0, 32)
		if err != nil {
			return curated.Errorf(ParseError, "line", args[0])
		}
		dbg.soc.Pending.Ack(irq.Line(l))

	case "LOG":
		logger.Tail(dbg.output, 20)

	case "VIZ":
		if len(args) != 1 {
			return curated.Errorf(CommandError, cmd, "expects a filename")
		}
		return dbg.viz(args[0])

	case "SCRIPT":
		if len(args) != 1 {
			return curated.Errorf(CommandError, cmd, "expects a filename")
		}
		return dbg.script(args[0])

	case "TICKS":
		dbg.printf("%d\n", dbg.soc.Ticks())

	case "QUIT", "Q":
		dbg.running = false

	default:
		return curated.Errorf(CommandError, cmd, "unrecognised command")
	}

	return nil
}

const helpText = `PEEK address [width]       read from the bus (width 1, 2, 4 or 8)
POKE address value [width]
STEP [n]                   advance the clock n ticks (default 1)
WALK                       step on keypress. q to leave
MAP                        print the address map
IRQ                        interrupt delivery history
ACK line                   clear a pending interrupt line
LOG                        recent log entries
VIZ file                   write a dot graph of the machine state
SCRIPT file                run a lua script
TICKS                      ticks since power on
QUIT
`

// parseAddress accepts the number forms the strconv package does, most
// usefully hex with an 0x prefix.
func parseAddress(s string) (uint64, error) {
	a, err := strconv.ParseUint(s, 0, 64)
	if err != nil {
		return 0, curated.Errorf(ParseError, "address", s)
	}
	return a, nil
}

func parseWidth(s string) (bus.Width, error) {
	switch s {
	case "1":
		return bus.Width1, nil
	case "2":
		return bus.Width2, nil
	case "4":
		return bus.Width4, nil
	case "8":
		return bus.Width8, nil
	}
	return 0, curated.Errorf(ParseError, "width", s)
}

func (dbg *Debugger) peek(args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return curated.Errorf(CommandError, "PEEK", "expects an address and an optional width")
	}

	address, err := parseAddress(args[0])
	if err != nil {
		return err
	}

	width := bus.Width4
	if len(args) == 2 {
		if width, err = parseWidth(args[1]); err != nil {
			return err
		}
	}

	v, err := dbg.soc.Bus.Read(address, width)
	if err != nil {
		return err
	}

	dbg.printf("%#08x = %#x\n", address, v)
	return nil
}

func (dbg *Debugger) poke(args []string) error {
	if len(args) < 2 || len(args) > 3 {
		return curated.Errorf(CommandError, "POKE", "expects an address, a value and an optional width")
	}

	address, err := parseAddress(args[0])
	if err != nil {
		return err
	}

	value, err := strconv.ParseUint(args[1], 0, 64)
	if err != nil {
		return curated.Errorf(ParseError, "value", args[1])
	}

	width := bus.Width4
	if len(args) == 3 {
		if width, err = parseWidth(args[2]); err != nil {
			return err
		}
	}

	return dbg.soc.Bus.Write(address, width, value)
}

func (dbg *Debugger) step(args []string) error {
	n := uint64(1)

	if len(args) > 0 {
		var err error
		n, err = strconv.ParseUint(args[0], 0, 64)
		if err != nil {
			return curated.Errorf(ParseError, "tick count", args[0])
		}
	}

	dbg.soc.RunTicks(n)
	dbg.printf("tick %d\n", dbg.soc.Ticks())
	return nil
}

// walk steps the clock one tick per keypress, leaving canonical mode for
// the duration.
func (dbg *Debugger) walk() error {
	if dbg.term == nil {
		return curated.Errorf(CommandError, "WALK", "input is not a terminal")
	}

	dbg.printf("any key to step, q to finish\n")

	dbg.term.cbreakMode()
	defer dbg.term.canonicalMode()

	for {
		k, err := dbg.term.readKey()
		if err != nil {
			return curated.Errorf(CommandError, "WALK", err)
		}
		if k == 'q' || k == 0x03 {
			return nil
		}

		dbg.soc.Step()
		dbg.printf("tick %d\r\n", dbg.soc.Ticks())
	}
}
