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

package memorymap

import (
	"fmt"
	"strings"
)

// Summary returns the registered address map as a string, in ascending
// address order.
func (tbl *Table) Summary() string {
	s := strings.Builder{}
	s.WriteString("Address Map\n-----------\n")

	for _, id := range tbl.byOrigin {
		r := tbl.regions[id]
		s.WriteString(fmt.Sprintf("%08x -> %08x\t%s", r.Origin, r.Memtop(), r.Label))
		if r.AliasOf != NoRegion {
			s.WriteString(fmt.Sprintf("\t(shadow of %s)", tbl.regions[r.AliasOf].Label))
		}
		if r.Tag {
			s.WriteString("\t(tag)")
		}
		s.WriteString("\n")
	}

	return s.String()
}
