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

package platform_test

import (
	"testing"

	"github.com/simonsan/precursim/platform"
	"github.com/simonsan/precursim/test"
)

func TestDescription(t *testing.T) {
	names := make(map[string]bool)
	lines := make(map[int]bool)

	for _, e := range platform.Precursor {
		test.ExpectedFailure(t, names[e.Name])
		names[e.Name] = true

		test.ExpectedSuccess(t, e.Size > 0)

		// every shadow window lives in the uncached segment
		if e.Shadow != 0 {
			test.Equate(t, e.Shadow>>28, uint64(0xf))
		}

		// one peripheral per interrupt line
		if e.Line != platform.NoLine {
			test.ExpectedFailure(t, lines[e.Line])
			lines[e.Line] = true
		}

		// tags never interrupt
		if e.Kind == platform.KindTag {
			test.Equate(t, e.Line, platform.NoLine)
		}
	}

	test.ExpectedSuccess(t, lines[platform.MachineTimerLine])
}
