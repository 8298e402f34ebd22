// Copyright 2020 CUE Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package engine_test

import (
	"strings"
	"testing"

	"github.com/go-quicktest/qt"

	"cuelabs.dev/go/yeast/internal/byteio"
	"cuelabs.dev/go/yeast/internal/classify"
	"cuelabs.dev/go/yeast/internal/engine"
	"cuelabs.dev/go/yeast/internal/unicode"
)

func newSeeded(t *testing.T, s string) *engine.Core {
	t.Helper()
	src := byteio.String(s)
	c := engine.NewCore(src, unicode.UTF8, 64, nil)
	qt.Assert(t, qt.IsNil(c.Seed()))
	return c
}

func TestSeedPrimesFirstCharacter(t *testing.T) {
	c := newSeeded(t, "ab")
	r, mask := c.Curr()
	qt.Assert(t, qt.Equals(r, 'a'))
	qt.Assert(t, qt.Equals(mask&classify.StartOfLine != 0, true))
}

func TestNextCharAdvancesPosition(t *testing.T) {
	c := newSeeded(t, "ab")
	qt.Assert(t, qt.IsNil(c.NextChar()))
	r, _ := c.Curr()
	qt.Assert(t, qt.Equals(r, 'b'))

	byteOffset, charOffset, _, lineChar := c.Position()
	qt.Assert(t, qt.Equals(byteOffset, int64(1)))
	qt.Assert(t, qt.Equals(charOffset, int64(1)))
	qt.Assert(t, qt.Equals(lineChar, 1))
}

func TestNextCharReachesEOF(t *testing.T) {
	c := newSeeded(t, "a")
	qt.Assert(t, qt.IsNil(c.NextChar()))
	qt.Assert(t, qt.Equals(c.AtEOF(), true))

	// Advancing past EOF is a no-op, not an error.
	qt.Assert(t, qt.IsNil(c.NextChar()))
	qt.Assert(t, qt.Equals(c.AtEOF(), true))
}

func TestRetractUndoesOneNextChar(t *testing.T) {
	c := newSeeded(t, "ab")
	qt.Assert(t, qt.IsNil(c.NextChar()))
	r, _ := c.Curr()
	qt.Assert(t, qt.Equals(r, 'b'))

	c.Retract()
	r, _ = c.Curr()
	qt.Assert(t, qt.Equals(r, 'a'))
}

func TestNextLineResetsLineChar(t *testing.T) {
	c := newSeeded(t, "a\nb")
	qt.Assert(t, qt.IsNil(c.NextChar())) // at '\n'
	qt.Assert(t, qt.IsNil(c.NextChar())) // at 'b'
	c.NextLine()
	_, _, _, lineChar := c.Position()
	qt.Assert(t, qt.Equals(lineChar, 0))
	_, mask := c.Curr()
	qt.Assert(t, qt.Equals(mask&classify.StartOfLine != 0, true))
}

func TestMultiByteUTF8Decoding(t *testing.T) {
	// 'é' (U+00E9) is two bytes in UTF-8.
	c := newSeeded(t, "é!")
	r, _ := c.Curr()
	qt.Assert(t, qt.Equals(r, 'é'))
	qt.Assert(t, qt.IsNil(c.NextChar()))
	r, _ = c.Curr()
	qt.Assert(t, qt.Equals(r, '!'))

	byteOffset, charOffset, _, _ := c.Position()
	qt.Assert(t, qt.Equals(byteOffset, int64(2)))
	qt.Assert(t, qt.Equals(charOffset, int64(1)))
}

func TestEncodingReportsSourceEncoding(t *testing.T) {
	c := newSeeded(t, "a")
	qt.Assert(t, qt.Equals(c.Encoding(), unicode.UTF8))
}

func TestLookaheadAcrossSourceGrowth(t *testing.T) {
	// A growing dynamic source whose window is smaller than the string:
	// ensureLookahead must pull in more bytes as NextChar walks off the
	// edge of what's currently materialized, without losing position.
	s := "abcdefghij"
	src := byteio.Reader(strings.NewReader(s), 2)
	c := engine.NewCore(src, unicode.UTF8, 2, nil)
	qt.Assert(t, qt.IsNil(c.Seed()))

	var got []rune
	for {
		r, _ := c.Curr()
		if r == unicode.EOFCode {
			break
		}
		got = append(got, r)
		qt.Assert(t, qt.IsNil(c.NextChar()))
	}
	qt.Assert(t, qt.Equals(string(got), s))
}
