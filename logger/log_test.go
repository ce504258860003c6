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

package logger_test

import (
	"strings"
	"testing"

	"github.com/simonsan/precursim/logger"
	"github.com/simonsan/precursim/test"
)

func TestCoalesce(t *testing.T) {
	logger.Clear()

	logger.Log("test", "hello")
	logger.Log("test", "hello")
	logger.Log("test", "world")

	s := &strings.Builder{}
	logger.Write(s)

	test.Equate(t, s.String(), "test: hello (repeat x2)\ntest: world\n")
}

func TestTail(t *testing.T) {
	logger.Clear()

	logger.Log("test", "one")
	logger.Log("test", "two")
	logger.Log("test", "three")

	s := &strings.Builder{}
	logger.Tail(s, 2)

	test.Equate(t, s.String(), "test: two\ntest: three\n")

	// asking for more entries than exist is not an error
	s.Reset()
	logger.Tail(s, 100)
	test.Equate(t, s.String(), "test: one\ntest: two\ntest: three\n")
}

func TestEcho(t *testing.T) {
	logger.Clear()

	s := &strings.Builder{}
	logger.SetEcho(s)
	defer logger.SetEcho(nil)

	logger.Logf("test", "value = %d", 10)
	test.Equate(t, s.String(), "test: value = 10\n")
}
