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

package debugger

import (
	"os"

	"github.com/pkg/term/termios"
	"golang.org/x/sys/unix"
)

// terminal wraps "github.com/pkg/term/termios" with the two modes the
// debugger needs: canonical line input for the command loop and cbreak for
// single keypress stepping in walk mode.
type terminal struct {
	input *os.File

	canAttr    unix.Termios
	cbreakAttr unix.Termios
}

func newTerminal(input *os.File) *terminal {
	pt := &terminal{input: input}
	_ = termios.Tcgetattr(pt.input.Fd(), &pt.canAttr)
	termios.Cfmakecbreak(&pt.cbreakAttr)
	return pt
}

// canonicalMode puts the terminal into normal, everyday canonical mode.
func (pt *terminal) canonicalMode() {
	_ = termios.Tcsetattr(pt.input.Fd(), termios.TCIFLUSH, &pt.canAttr)
}

// cbreakMode puts the terminal into cbreak mode. each keypress is available
// immediately, without waiting for a newline.
func (pt *terminal) cbreakMode() {
	_ = termios.Tcsetattr(pt.input.Fd(), termios.TCIFLUSH, &pt.cbreakAttr)
}

// readKey returns a single keypress. only meaningful in cbreak mode.
func (pt *terminal) readKey() (byte, error) {
	b := make([]byte, 1)
	if _, err := pt.input.Read(b); err != nil {
		return 0, err
	}
	return b[0], nil
}
