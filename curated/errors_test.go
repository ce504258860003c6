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

package curated_test

import (
	"testing"

	"github.com/simonsan/precursim/curated"
	"github.com/simonsan/precursim/test"
)

const testPattern = "test: %v"
const otherPattern = "other: %v"

func TestIs(t *testing.T) {
	e := curated.Errorf(testPattern, 10)

	test.ExpectedSuccess(t, curated.IsAny(e))
	test.ExpectedSuccess(t, curated.Is(e, testPattern))
	test.ExpectedFailure(t, curated.Is(e, otherPattern))

	// a plain error is not curated
	test.ExpectedFailure(t, curated.IsAny(nil))
}

func TestHas(t *testing.T) {
	e := curated.Errorf(testPattern, 10)
	f := curated.Errorf(otherPattern, e)

	// the wrapped pattern is not at the outermost level
	test.ExpectedFailure(t, curated.Is(f, testPattern))

	// but it is somewhere in the chain
	test.ExpectedSuccess(t, curated.Has(f, testPattern))
	test.ExpectedSuccess(t, curated.Has(f, otherPattern))
}

func TestDeduplication(t *testing.T) {
	e := curated.Errorf("error: %v", curated.Errorf("error: %v", "detail"))
	test.Equate(t, e.Error(), "error: detail")
}
