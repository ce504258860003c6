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

package bus

import (
	"github.com/simonsan/precursim/curated"
	"github.com/simonsan/precursim/hardware/memorymap"
)

// Error patterns returned by functions in this package.
const (
	AttachError      = "bus: %s: %s"
	UnsupportedWidth = "bus: %s: unsupported access width (%s) at %#08x"
	OverrunAccess    = "bus: %s: access at %#08x (%s) overruns region"
	TagAccess        = "bus: %s: tag region has no backing device: %#08x"
	NoDevice         = "bus: %s: no device attached: %#08x"
)

type attachment struct {
	dev    Device
	widths Widths
}

// Bus is the facade used by the CPU core, and by peripherals for peer
// access. It turns a raw address, access width and direction into a dispatch
// to the owning device.
//
// Attach() is a load-time operation and is not safe for concurrent use.
// Read() and Write() are safe once the load sequence has finished; any
// locking needed for device state is the device's responsibility.
type Bus struct {
	tbl     *memorymap.Table
	shadow  *memorymap.ShadowResolver
	devices map[memorymap.RegionID]attachment
}

// NewBus is the preferred method of initialisation for the Bus type.
func NewBus(tbl *memorymap.Table) *Bus {
	return &Bus{
		tbl:     tbl,
		shadow:  tbl.Shadow(),
		devices: make(map[memorymap.RegionID]attachment),
	}
}

// Attach binds a device to a previously registered canonical region,
// declaring the access widths the device accepts. Shadow regions are never
// attached to; they resolve into their canonical region.
func (b *Bus) Attach(id memorymap.RegionID, dev Device, widths Widths) error {
	r, ok := b.tbl.Region(id)
	if !ok {
		return curated.Errorf(AttachError, "unknown region", "no such region ID")
	}
	if r.AliasOf != memorymap.NoRegion {
		return curated.Errorf(AttachError, r.Label, "cannot attach a device to a shadow region")
	}
	if r.Tag {
		return curated.Errorf(AttachError, r.Label, "cannot attach a device to a tag region")
	}
	if widths == 0 {
		return curated.Errorf(AttachError, r.Label, "device accepts no access widths")
	}
	if _, ok := b.devices[id]; ok {
		return curated.Errorf(AttachError, r.Label, "device already attached")
	}

	b.devices[id] = attachment{dev: dev, widths: widths}
	return nil
}

// the common part of the Read() and Write() pipeline. returns the attachment
// for the owning device and the offset of the access within the region.
func (b *Bus) resolve(address uint64, width Width) (attachment, uint64, error) {
	// shadow windows resolve to the canonical address before anything else
	address, _, _ = b.shadow.Canonicalize(address)

	id, offset, err := b.tbl.Resolve(address)
	if err != nil {
		return attachment{}, 0, err
	}

	r, _ := b.tbl.Region(id)

	if r.Tag {
		return attachment{}, 0, curated.Errorf(TagAccess, r.Label, address)
	}

	// the access must lie wholly inside the region
	if offset+uint64(width) > r.Size {
		return attachment{}, 0, curated.Errorf(OverrunAccess, r.Label, address, width.String())
	}

	at, ok := b.devices[id]
	if !ok {
		return attachment{}, 0, curated.Errorf(NoDevice, r.Label, address)
	}

	if !at.widths.Allows(width) {
		return attachment{}, 0, curated.Errorf(UnsupportedWidth, r.Label, width.String(), address)
	}

	return at, offset, nil
}

// Read performs a read access of the given width. Faults are reported
// synchronously through the error value; there is no read-zero fallback.
func (b *Bus) Read(address uint64, width Width) (uint64, error) {
	at, offset, err := b.resolve(address, width)
	if err != nil {
		return 0, err
	}
	return at.dev.Read(offset, width)
}

// Write performs a write access of the given width. Faults are reported
// synchronously through the error value.
func (b *Bus) Write(address uint64, width Width, value uint64) error {
	at, offset, err := b.resolve(address, width)
	if err != nil {
		return err
	}
	return at.dev.Write(offset, width, value)
}
