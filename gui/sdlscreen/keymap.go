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

package sdlscreen

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/simonsan/precursim/logger"
)

// position of a key in the simulated matrix.
type matrixPos struct {
	row    int
	column int
}

// host scancode to matrix position. the layout follows the device's
// physical QWERTY keyboard: three letter rows, a number row, and the
// modifier/space row.
var keymap = map[sdl.Scancode]matrixPos{
	sdl.SCANCODE_1: {0, 0}, sdl.SCANCODE_2: {0, 1}, sdl.SCANCODE_3: {0, 2},
	sdl.SCANCODE_4: {0, 3}, sdl.SCANCODE_5: {0, 4}, sdl.SCANCODE_6: {0, 5},
	sdl.SCANCODE_7: {0, 6}, sdl.SCANCODE_8: {0, 7}, sdl.SCANCODE_9: {0, 8},
	sdl.SCANCODE_0: {0, 9},

	sdl.SCANCODE_Q: {1, 0}, sdl.SCANCODE_W: {1, 1}, sdl.SCANCODE_E: {1, 2},
	sdl.SCANCODE_R: {1, 3}, sdl.SCANCODE_T: {1, 4}, sdl.SCANCODE_Y: {1, 5},
	sdl.SCANCODE_U: {1, 6}, sdl.SCANCODE_I: {1, 7}, sdl.SCANCODE_O: {1, 8},
	sdl.SCANCODE_P: {1, 9},

	sdl.SCANCODE_A: {2, 0}, sdl.SCANCODE_S: {2, 1}, sdl.SCANCODE_D: {2, 2},
	sdl.SCANCODE_F: {2, 3}, sdl.SCANCODE_G: {2, 4}, sdl.SCANCODE_H: {2, 5},
	sdl.SCANCODE_J: {2, 6}, sdl.SCANCODE_K: {2, 7}, sdl.SCANCODE_L: {2, 8},
	sdl.SCANCODE_BACKSPACE: {2, 9},

	sdl.SCANCODE_Z: {3, 1}, sdl.SCANCODE_X: {3, 2}, sdl.SCANCODE_C: {3, 3},
	sdl.SCANCODE_V: {3, 4}, sdl.SCANCODE_B: {3, 5}, sdl.SCANCODE_N: {3, 6},
	sdl.SCANCODE_M: {3, 7}, sdl.SCANCODE_RETURN: {3, 9},

	sdl.SCANCODE_LSHIFT: {4, 0}, sdl.SCANCODE_COMMA: {4, 2},
	sdl.SCANCODE_SPACE: {4, 4}, sdl.SCANCODE_PERIOD: {4, 6},
	sdl.SCANCODE_RSHIFT: {4, 9},

	// navigation cluster
	sdl.SCANCODE_UP: {5, 2}, sdl.SCANCODE_LEFT: {5, 3},
	sdl.SCANCODE_KP_ENTER: {5, 4}, sdl.SCANCODE_RIGHT: {5, 5},
	sdl.SCANCODE_DOWN: {5, 6},

	// function row
	sdl.SCANCODE_F1: {6, 0}, sdl.SCANCODE_F2: {6, 1},
	sdl.SCANCODE_F3: {6, 2}, sdl.SCANCODE_F4: {6, 3},

	// home and menu keys
	sdl.SCANCODE_HOME: {8, 5}, sdl.SCANCODE_ESCAPE: {8, 9},
}

func (scr *Screen) serviceKeyboard(ev *sdl.KeyboardEvent) {
	pos, ok := keymap[ev.Keysym.Scancode]
	if !ok {
		return
	}

	var err error
	if ev.Type == sdl.KEYDOWN && ev.Repeat == 0 {
		err = scr.soc.Keyboard.KeyDown(pos.row, pos.column)
	} else if ev.Type == sdl.KEYUP {
		err = scr.soc.Keyboard.KeyUp(pos.row, pos.column)
	}

	if err != nil {
		logger.Logf("sdlscreen", "keyboard: %s", err)
	}
}
