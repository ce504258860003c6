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

// Package sdlscreen is the SDL display front end: it shows the memory LCD
// framebuffer in a window and feeds host keyboard events into the
// simulated key matrix.
package sdlscreen

import (
	"time"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/simonsan/precursim/curated"
	"github.com/simonsan/precursim/hardware"
	"github.com/simonsan/precursim/hardware/peripherals/memlcd"
	"github.com/simonsan/precursim/logger"
	"github.com/simonsan/precursim/version"
)

// Error patterns returned by functions in this package.
const (
	SetupError = "sdlscreen: %v"
)

// the number of bytes required for each screen pixel.
// 4 == red + green + blue + alpha
const scrDepth = 4

// pixel doubling. the panel is small by modern standards
const pixelScale = 2

// frame rate of the display loop. the panel itself has no refresh clock;
// the simulation marks the framebuffer dirty and we redraw at our own pace
const refreshRate = 30

// Screen is the SDL window showing the simulated panel.
type Screen struct {
	soc *hardware.SoC

	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture

	// expanded framebuffer. the panel is 1bpp; SDL wants RGBA
	pixels []byte

	quit chan bool
}

// NewScreen is the preferred method of initialisation for the Screen type.
func NewScreen(soc *hardware.SoC) (*Screen, error) {
	scr := &Screen{
		soc:    soc,
		pixels: make([]byte, memlcd.Width*memlcd.Height*scrDepth),
		quit:   make(chan bool),
	}

	if err := sdl.Init(uint32(sdl.INIT_VIDEO)); err != nil {
		return nil, curated.Errorf(SetupError, err)
	}

	var err error

	scr.window, err = sdl.CreateWindow(version.ApplicationName,
		int32(sdl.WINDOWPOS_UNDEFINED), int32(sdl.WINDOWPOS_UNDEFINED),
		memlcd.Width*pixelScale, memlcd.Height*pixelScale,
		uint32(sdl.WINDOW_SHOWN))
	if err != nil {
		return nil, curated.Errorf(SetupError, err)
	}

	scr.renderer, err = sdl.CreateRenderer(scr.window, -1,
		uint32(sdl.RENDERER_ACCELERATED)|uint32(sdl.RENDERER_PRESENTVSYNC))
	if err != nil {
		return nil, curated.Errorf(SetupError, err)
	}

	if err = scr.renderer.SetScale(pixelScale, pixelScale); err != nil {
		return nil, curated.Errorf(SetupError, err)
	}

	scr.texture, err = scr.renderer.CreateTexture(uint32(sdl.PIXELFORMAT_ABGR8888),
		int(sdl.TEXTUREACCESS_STREAMING), memlcd.Width, memlcd.Height)
	if err != nil {
		return nil, curated.Errorf(SetupError, err)
	}

	logger.Log("sdlscreen", "window open")

	return scr, nil
}

// Quit asks the display loop to finish.
func (scr *Screen) Quit() {
	select {
	case scr.quit <- true:
	default:
	}
}

// Destroy releases the SDL resources. The display loop must have finished.
func (scr *Screen) Destroy() {
	scr.texture.Destroy()
	scr.renderer.Destroy()
	scr.window.Destroy()
	sdl.Quit()
}

// expand converts the 1bpp framebuffer into the RGBA pixel array. The
// memory LCD is reflective; a set bit is a dark pixel.
func (scr *Screen) expand(frame []byte) {
	i := 0
	for y := 0; y < memlcd.Height; y++ {
		line := frame[y*memlcd.Stride:]
		for x := 0; x < memlcd.Width; x++ {
			var lum byte = 0xe8
			if line[x/8]&(1<<(x%8)) != 0 {
				lum = 0x10
			}
			scr.pixels[i] = lum
			scr.pixels[i+1] = lum
			scr.pixels[i+2] = lum
			scr.pixels[i+3] = 0xff
			i += scrDepth
		}
	}
}

func (scr *Screen) redraw() error {
	scr.expand(scr.soc.LCD.Frame())

	if err := scr.texture.Update(nil, scr.pixels, memlcd.Width*scrDepth); err != nil {
		return curated.Errorf(SetupError, err)
	}
	if err := scr.renderer.Clear(); err != nil {
		return curated.Errorf(SetupError, err)
	}
	if err := scr.renderer.Copy(scr.texture, nil, nil); err != nil {
		return curated.Errorf(SetupError, err)
	}
	scr.renderer.Present()

	return nil
}

// Run services SDL events and redraws the panel whenever the simulation
// has touched the framebuffer. It returns when the window is closed or
// Quit() is called.
//
// SDL requires that this runs on the main goroutine.
func (scr *Screen) Run() error {
	// first frame regardless of the dirty flag
	if err := scr.redraw(); err != nil {
		return err
	}

	tck := time.NewTicker(time.Second / refreshRate)
	defer tck.Stop()

	for {
		select {
		case <-scr.quit:
			return nil
		case <-tck.C:
		}

		for ev := sdl.PollEvent(); ev != nil; ev = sdl.PollEvent() {
			switch ev := ev.(type) {
			case *sdl.QuitEvent:
				return nil
			case *sdl.KeyboardEvent:
				scr.serviceKeyboard(ev)
			}
		}

		if scr.soc.LCD.Dirty() {
			if err := scr.redraw(); err != nil {
				return err
			}
		}
	}
}
