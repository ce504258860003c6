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

package main

import (
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/simonsan/precursim/debugger"
	"github.com/simonsan/precursim/gui/sdlscreen"
	"github.com/simonsan/precursim/hardware"
	"github.com/simonsan/precursim/logger"
	"github.com/simonsan/precursim/modalflag"
	"github.com/simonsan/precursim/platform"
	"github.com/simonsan/precursim/statsview"
	"github.com/simonsan/precursim/version"
)

// how much simulated time passes between checks of the interrupt signal and
// the display, when free running.
const runQuantum = 10 * time.Millisecond

func main() {
	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(os.Args[1:])
	md.AddSubModes("RUN", "DEBUG", "VERSION")

	log := md.AddBool("log", false, "echo log entries to stderr")
	stats := md.AddBool("stats", false, "run stats server")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		os.Exit(0)
	case modalflag.ParseError:
		fmt.Fprintf(os.Stderr, "* %s\n", err)
		os.Exit(10)
	}

	if *log {
		logger.SetEcho(os.Stderr)
	}

	if *stats {
		if statsview.Available() {
			statsview.Launch(os.Stdout)
		} else {
			fmt.Fprintln(os.Stderr, "* stats server not available in this build")
		}
	}

	var exitVal int

	switch md.Mode() {
	case "RUN":
		exitVal = run(md)
	case "DEBUG":
		exitVal = debug(md)
	case "VERSION":
		vers, revision, _ := version.Version()
		fmt.Printf("%s (%s)\n", vers, revision)
	}

	os.Exit(exitVal)
}

// newSoC builds the machine and optionally loads a flash image named on the
// command line.
func newSoC(md *modalflag.Modes) (*hardware.SoC, error) {
	soc, err := hardware.NewSoC(platform.Precursor, os.Stdout)
	if err != nil {
		return nil, err
	}

	switch len(md.RemainingArgs()) {
	case 0:
	case 1:
		image, err := os.ReadFile(md.GetArg(0))
		if err != nil {
			return nil, err
		}
		if err := soc.LoadFlash(image); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("too many arguments. one flash image at most")
	}

	return soc, nil
}

func run(md *modalflag.Modes) int {
	md.NewMode()
	display := md.AddBool("display", true, "show the memory LCD in a window")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		return 0
	case modalflag.ParseError:
		fmt.Fprintf(os.Stderr, "* %s\n", err)
		return 10
	}

	soc, err := newSoC(md)
	if err != nil {
		fmt.Fprintf(os.Stderr, "* %s\n", err)
		return 10
	}

	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)

	// the simulation clock runs on its own goroutine. batches of ticks are
	// sized so a batch of simulated time takes roughly that long on the wall
	// clock
	done := make(chan bool)
	go func() {
		ticksPerQuantum := uint64(platform.TickRateHz / int64(time.Second/runQuantum))
		tck := time.NewTicker(runQuantum)
		defer tck.Stop()
		for {
			select {
			case <-done:
				return
			case <-tck.C:
				soc.RunTicks(ticksPerQuantum)
			}
		}
	}()
	defer close(done)

	// SDL event handling must happen on the main goroutine
	if *display {
		scr, err := sdlscreen.NewScreen(soc)
		if err != nil {
			fmt.Fprintf(os.Stderr, "* %s\n", err)
			return 10
		}
		defer scr.Destroy()

		go func() {
			<-intChan
			scr.Quit()
		}()

		if err := scr.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "* %s\n", err)
			return 10
		}
		return 0
	}

	<-intChan
	fmt.Printf("\n%d ticks simulated\n", soc.Ticks())
	return 0
}

func debug(md *modalflag.Modes) int {
	md.NewMode()

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		return 0
	case modalflag.ParseError:
		fmt.Fprintf(os.Stderr, "* %s\n", err)
		return 10
	}

	soc, err := newSoC(md)
	if err != nil {
		fmt.Fprintf(os.Stderr, "* %s\n", err)
		return 10
	}

	dbg := debugger.New(soc, os.Stdin, os.Stdout)
	if err := dbg.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "* %s\n", err)
		return 10
	}

	return 0
}
