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

package unicode_test

import (
	"testing"

	"github.com/go-quicktest/qt"
	xunicode "golang.org/x/text/encoding/unicode"
	"golang.org/x/text/encoding/unicode/utf32"

	"cuelabs.dev/go/yeast/internal/unicode"
)

// sampleRunes covers ASCII, a BMP code point outside Latin-1, a surrogate-
// pair astral code point, and the historic 3-byte boundary.
var sampleRunes = []rune{'A', ' ', '\n', 0x00E9, 0x4E2D, 0x1F600, 0xFFFD}

func decodeAll(t *testing.T, enc unicode.Encoding, src []byte) []rune {
	t.Helper()
	var got []rune
	i, end := 0, len(src)
	for i < end {
		r := unicode.Decode(enc, src, &i, end)
		if r == unicode.InvalidCode {
			t.Fatalf("Decode: invalid sequence at byte %d in %x", i, src)
		}
		got = append(got, r)
	}
	return got
}

func TestDecodeUTF8RoundTrip(t *testing.T) {
	s := string(sampleRunes)
	got := decodeAll(t, unicode.UTF8, []byte(s))
	qt.Assert(t, qt.DeepEquals(got, sampleRunes))
}

func TestDecodeUTF16RoundTrip(t *testing.T) {
	for _, tc := range []struct {
		enc    unicode.Encoding
		xenc   func() []byte
		bigEnd bool
	}{
		{unicode.UTF16LE, nil, false},
		{unicode.UTF16BE, nil, true},
	} {
		bo := xunicode.LittleEndian
		if tc.bigEnd {
			bo = xunicode.BigEndian
		}
		codec := xunicode.UTF16(bo, xunicode.IgnoreBOM)
		encoded, err := codec.NewEncoder().Bytes([]byte(string(sampleRunes)))
		qt.Assert(t, qt.IsNil(err))

		got := decodeAll(t, tc.enc, encoded)
		qt.Assert(t, qt.DeepEquals(got, sampleRunes))
	}
}

func TestDecodeUTF32RoundTrip(t *testing.T) {
	for _, tc := range []struct {
		enc    unicode.Encoding
		bigEnd bool
	}{
		{unicode.UTF32LE, false},
		{unicode.UTF32BE, true},
	} {
		bo := utf32.LittleEndian
		if tc.bigEnd {
			bo = utf32.BigEndian
		}
		codec := utf32.UTF32(bo, utf32.IgnoreBOM)
		encoded, err := codec.NewEncoder().Bytes([]byte(string(sampleRunes)))
		qt.Assert(t, qt.IsNil(err))

		got := decodeAll(t, tc.enc, encoded)
		qt.Assert(t, qt.DeepEquals(got, sampleRunes))
	}
}

func TestDecodeUTF8TruncatedSequenceResynchronizes(t *testing.T) {
	// A lone lead byte of a 3-byte sequence, followed by a valid ASCII
	// character: decoding must advance past the bad lead byte and recover.
	src := []byte{0xE4, 'x'}
	i := 0
	r := unicode.Decode(unicode.UTF8, src, &i, len(src))
	qt.Assert(t, qt.Equals(r, unicode.InvalidCode))
	qt.Assert(t, qt.Equals(i, 1))
}

func TestDecodeUTF16LoneSurrogateIsInvalid(t *testing.T) {
	// A lone high surrogate with no following low surrogate.
	src := []byte{0x00, 0xD8, 'x', 0x00}
	i := 0
	r := unicode.Decode(unicode.UTF16LE, src, &i, len(src))
	qt.Assert(t, qt.Equals(r, unicode.InvalidCode))
	qt.Assert(t, qt.Equals(i, 2))
}

func TestEncodingName(t *testing.T) {
	cases := []struct {
		enc  unicode.Encoding
		want string
	}{
		{unicode.UTF8, "UTF-8"},
		{unicode.UTF16LE, "UTF-16LE"},
		{unicode.UTF16BE, "UTF-16BE"},
		{unicode.UTF32LE, "UTF-32LE"},
		{unicode.UTF32BE, "UTF-32BE"},
	}
	for _, tc := range cases {
		name, ok := tc.enc.Name()
		qt.Assert(t, qt.Equals(ok, true))
		qt.Assert(t, qt.Equals(name, tc.want))
	}

	_, ok := unicode.Encoding(99).Name()
	qt.Assert(t, qt.Equals(ok, false))
}

func TestUnitWidth(t *testing.T) {
	qt.Assert(t, qt.Equals(unicode.UTF8.UnitWidth(), 1))
	qt.Assert(t, qt.Equals(unicode.UTF16LE.UnitWidth(), 2))
	qt.Assert(t, qt.Equals(unicode.UTF16BE.UnitWidth(), 2))
	qt.Assert(t, qt.Equals(unicode.UTF32LE.UnitWidth(), 4))
	qt.Assert(t, qt.Equals(unicode.UTF32BE.UnitWidth(), 4))
}
