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

	"github.com/bradleyjkemp/memviz"
	"github.com/simonsan/precursim/curated"
)

// viz writes a graphviz dot rendering of the machine state to the named
// file. Render with:
//
//	dot -Tsvg -o state.svg <file>
//
// The graph covers the container structure, not the contents of the larger
// memories, which memviz would render as thousands of nodes.
func (dbg *Debugger) viz(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return curated.Errorf(CommandError, "VIZ", err)
	}
	defer f.Close()

	memviz.Map(f, dbg.soc.Map, dbg.soc.Pending)
	return nil
}
