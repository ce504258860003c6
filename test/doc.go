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

// Package test contains helper functions to remove common boilerplate from
// testing.
//
// The ExpectedFailure and ExpectedSuccess functions test for failure and
// success under generic conditions. The documentation for those functions
// describes the currently supported types.
//
// Note how the nil type is handled: nil is considered a success and will
// cause ExpectedFailure to fail and ExpectedSuccess to succeed. This follows
// from how errors usually work (nil indicating no error).
//
// The Equate() function compares like-typed values for equality. Unsigned
// integer types can be compared against int for convenience. See the
// Equate() documentation for discussion.
package test
