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

// Package curated is a helper package for the plain Go language error type.
// Curated errors implement the error interface.
//
// Curated errors are created with the Errorf() function. Like the Errorf()
// function in the fmt package it takes a formatting pattern and placeholder
// values and returns an error. Unlike the fmt package, the pattern is also
// the identity of the error.
//
// The Is() function checks whether an error was created by Errorf() with a
// specific pattern. Packages in this repository export the patterns of the
// errors they return. For example, an access fault raised by the bus package
// can be identified with:
//
//	_, err := bus.Read(addr, bus.Width8)
//	if curated.Is(err, bus.UnmappedAddress) {
//		...
//	}
//
// The Has() function is similar but checks whether the pattern occurs
// anywhere in the error chain, rather than only at the outermost level.
//
// The IsAny() function answers whether the error is curated at all. An
// uncurated error is one that no function in this repository anticipated; in
// other words, it can be treated as unexpected.
//
// The Error() function for curated errors normalises the error chain,
// removing duplicate adjacent parts. The practical advantage is that it does
// not matter if the same prefix is added at more than one point as the error
// is passed up through the call stack.
package curated
