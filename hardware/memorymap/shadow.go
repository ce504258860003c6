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

// ShadowResolver maps addresses that fall inside a shadow window back to the
// canonical region. It holds only a reference to the Table; shadow regions
// never own storage of their own.
type ShadowResolver struct {
	tbl *Table
}

// Shadow returns a ShadowResolver working against the table.
func (tbl *Table) Shadow() *ShadowResolver {
	return &ShadowResolver{tbl: tbl}
}

// Canonicalize translates an address in a shadow window into the equivalent
// address in the canonical region. The returned RegionID is the canonical
// region. The boolean return value is false if the address is not inside any
// shadow window, in which case the address is returned unchanged and the
// caller should proceed with ordinary resolution.
func (sh *ShadowResolver) Canonicalize(address uint64) (uint64, RegionID, bool) {
	id, err := sh.tbl.Lookup(address)
	if err != nil {
		return address, NoRegion, false
	}

	r := sh.tbl.regions[id]
	if r.AliasOf == NoRegion {
		return address, NoRegion, false
	}

	c := sh.tbl.regions[r.AliasOf]
	return c.Origin + (address - r.Origin), r.AliasOf, true
}
