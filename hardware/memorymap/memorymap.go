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
	"math"
	"sort"

	"github.com/simonsan/precursim/curated"
)

// Error patterns returned by functions in this package.
const (
	RegionError     = "memorymap: %s: %s"
	RegionOverlap   = "memorymap: %s: overlaps %s"
	UnmappedAddress = "memorymap: unmapped address: %#08x"
)

// RegionID uniquely identifies a region in the Table it was registered with.
type RegionID int

// NoRegion is used to indicate the absence of a region. Most importantly, it
// is the AliasOf value for regions that are not aliases.
const NoRegion = RegionID(-1)

// Region is an immutable descriptor of one mapped span of the address space.
type Region struct {
	Label  string
	Origin uint64
	Size   uint64

	// a shadow region refers back to the region it is an alias of. shadow
	// regions are never dispatch targets; they are a resolution path into
	// the canonical region
	AliasOf RegionID

	// a tag region is a label-only span. it takes part in overlap checking
	// and lookup but has no backing device
	Tag bool
}

// Memtop is the top-most address inside the region.
func (r Region) Memtop() uint64 {
	return r.Origin + r.Size - 1
}

// Contains returns true if the address falls inside the region.
func (r Region) Contains(address uint64) bool {
	return address >= r.Origin && address <= r.Memtop()
}

func (r Region) intersects(s Region) bool {
	return r.Origin <= s.Memtop() && s.Origin <= r.Memtop()
}

func (r Region) String() string {
	return fmt.Sprintf("%s: %#08x -> %#08x", r.Label, r.Origin, r.Memtop())
}

// Table is the registry of address regions. Regions are registered once, at
// load time, and are immutable thereafter.
//
// Table is not safe for concurrent use during registration. Once the load
// sequence has finished, lookups are read-only and can be made from any
// goroutine.
type Table struct {
	regions []Region

	// region IDs ordered by region origin. lookups are a binary search over
	// this slice
	byOrigin []RegionID
}

// NewTable is the preferred method of initialisation for the Table type.
func NewTable() *Table {
	return &Table{
		regions:  make([]Region, 0),
		byOrigin: make([]RegionID, 0),
	}
}

// Register adds a region to the table, returning the new RegionID. A failed
// registration leaves the table unchanged.
//
// The registration fails if the region's interval intersects an existing
// region's interval. A shadow region is exempt from the check against its own
// canonical region but must not collide with anything else.
func (tbl *Table) Register(r Region) (RegionID, error) {
	if r.Size == 0 {
		return NoRegion, curated.Errorf(RegionError, r.Label, "zero size")
	}
	if r.Origin > math.MaxUint64-(r.Size-1) {
		return NoRegion, curated.Errorf(RegionError, r.Label, "size overflows the address space")
	}

	if r.AliasOf != NoRegion {
		if r.Tag {
			return NoRegion, curated.Errorf(RegionError, r.Label, "tag regions cannot be aliases")
		}
		if int(r.AliasOf) < 0 || int(r.AliasOf) >= len(tbl.regions) {
			return NoRegion, curated.Errorf(RegionError, r.Label, "alias of unknown region")
		}

		c := tbl.regions[r.AliasOf]
		if c.AliasOf != NoRegion {
			return NoRegion, curated.Errorf(RegionError, r.Label, "alias of an alias")
		}
		if c.Size != r.Size {
			return NoRegion, curated.Errorf(RegionError, r.Label, "size differs from canonical region")
		}
	}

	for id, e := range tbl.regions {
		if !r.intersects(e) {
			continue
		}

		// a shadow region may share address space with its own canonical
		// region. everything else is a collision
		if r.AliasOf == RegionID(id) {
			continue
		}

		return NoRegion, curated.Errorf(RegionOverlap, r.String(), e.String())
	}

	id := RegionID(len(tbl.regions))
	tbl.regions = append(tbl.regions, r)

	i := sort.Search(len(tbl.byOrigin), func(i int) bool {
		return tbl.regions[tbl.byOrigin[i]].Origin > r.Origin
	})
	tbl.byOrigin = append(tbl.byOrigin, NoRegion)
	copy(tbl.byOrigin[i+1:], tbl.byOrigin[i:])
	tbl.byOrigin[i] = id

	return id, nil
}

// Region returns the descriptor for the specified RegionID. The boolean
// return value is false if the ID is not in the table.
func (tbl *Table) Region(id RegionID) (Region, bool) {
	if int(id) < 0 || int(id) >= len(tbl.regions) {
		return Region{}, false
	}
	return tbl.regions[id], true
}

// Lookup finds the region that contains the address. No shadow resolution
// takes place; if the address falls inside a shadow window then the shadow
// region itself is returned.
func (tbl *Table) Lookup(address uint64) (RegionID, error) {
	// index of the first region with an origin greater than the address. the
	// candidate region is the one before that
	i := sort.Search(len(tbl.byOrigin), func(i int) bool {
		return tbl.regions[tbl.byOrigin[i]].Origin > address
	})

	// walk backwards from the candidate. for a disjoint table the first
	// candidate is the only possibility but a shadow region sharing address
	// space with its canonical region can nest intervals
	for i--; i >= 0; i-- {
		id := tbl.byOrigin[i]
		if tbl.regions[id].Contains(address) {
			return id, nil
		}
	}

	return NoRegion, curated.Errorf(UnmappedAddress, address)
}

// Resolve maps an address to the region responsible for it and the offset
// within that region. Addresses inside a shadow window resolve to the
// canonical region, such that physically identical storage is reached
// regardless of which alias was used.
func (tbl *Table) Resolve(address uint64) (RegionID, uint64, error) {
	id, err := tbl.Lookup(address)
	if err != nil {
		return NoRegion, 0, err
	}

	r := tbl.regions[id]
	if r.AliasOf != NoRegion {
		return r.AliasOf, address - r.Origin, nil
	}

	return id, address - r.Origin, nil
}
