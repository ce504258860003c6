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

// Package memorymap is the registry of the simulated address space. Every
// mapped span of addresses is represented by a Region: either a canonical
// region backed by a device, a shadow region aliasing a canonical region, or
// a tag region carrying a label and nothing else.
//
// The address map of the simulated machine exposes most CSR peripherals
// twice: once through the cached window and once through a cache-bypassing
// shadow window. At this level of simulation the cache behaviour is
// irrelevant but the aliasing is not: a write through either window must be
// observed through the other. The ShadowResolver provides the translation
// from a shadow address to the canonical address, guaranteeing that shadowed
// peripherals never fork state between their two windows.
//
// Within the set of non-alias regions, intervals are pairwise disjoint. The
// Register() function enforces the invariant and refuses overlapping
// registrations, leaving the table untouched on failure. Resolution is a
// binary search over intervals sorted by origin.
package memorymap
