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

package byteio_test

import (
	"os"
	"strings"
	"testing"

	"github.com/go-quicktest/qt"

	"cuelabs.dev/go/yeast/internal/byteio"
	"cuelabs.dev/go/yeast/internal/unicode"
)

func TestBufferSourceIsStatic(t *testing.T) {
	s := byteio.Buffer([]byte("hello"))
	defer s.Close()

	qt.Assert(t, qt.DeepEquals(s.Window(), []byte("hello")))

	n, err := s.More(10)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(n, 0))

	qt.Assert(t, qt.IsNil(s.Less(2)))
	qt.Assert(t, qt.DeepEquals(s.Window(), []byte("llo")))
	qt.Assert(t, qt.Equals(s.ByteOffset(), int64(2)))
}

func TestBufferSourceOverRelease(t *testing.T) {
	s := byteio.Buffer([]byte("ab"))
	defer s.Close()
	err := s.Less(3)
	qt.Assert(t, qt.ErrorIs(err, byteio.ErrOverRelease))
}

func TestBufferSourceNegativeSize(t *testing.T) {
	s := byteio.Buffer([]byte("ab"))
	defer s.Close()
	_, err := s.More(-1)
	qt.Assert(t, qt.ErrorIs(err, byteio.ErrNegativeSize))
	qt.Assert(t, qt.ErrorIs(s.Less(-1), byteio.ErrNegativeSize))
}

func TestStringSourceSharesStorage(t *testing.T) {
	s := byteio.String("hello world")
	defer s.Close()
	qt.Assert(t, qt.DeepEquals(s.Window(), []byte("hello world")))
}

func TestReaderSourceStreamsAndGrows(t *testing.T) {
	data := strings.Repeat("0123456789", 1000) // 10000 bytes
	s := byteio.Reader(strings.NewReader(data), 64)
	defer s.Close()

	var all []byte
	for {
		n, err := s.More(256)
		qt.Assert(t, qt.IsNil(err))
		all = append(all, s.Window()[len(all):]...)
		if n == 0 {
			break
		}
	}
	qt.Assert(t, qt.Equals(string(all), data))
}

func TestReaderSourceLessReclaimsGap(t *testing.T) {
	data := strings.Repeat("x", 1000)
	s := byteio.Reader(strings.NewReader(data), 64)
	defer s.Close()

	_, err := s.More(1000)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(len(s.Window()), 1000))

	// Release most of it; the gap (900) exceeds the retained tail (100),
	// so the source should slide the remainder down rather than grow
	// unboundedly on further More calls.
	qt.Assert(t, qt.IsNil(s.Less(900)))
	qt.Assert(t, qt.Equals(len(s.Window()), 100))
	qt.Assert(t, qt.Equals(s.ByteOffset(), int64(900)))
}

func TestFileSourceOwnedClose(t *testing.T) {
	r, w := mustPipe(t)
	go func() {
		w.Write([]byte("piped bytes"))
		w.Close()
	}()
	s := byteio.File(r, true, 0)
	n, err := s.More(64)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(n, len("piped bytes")))
	qt.Assert(t, qt.DeepEquals(s.Window(), []byte("piped bytes")))
	qt.Assert(t, qt.IsNil(s.Close()))
}

func mustPipe(t *testing.T) (*os.File, *os.File) {
	t.Helper()
	r, w, err := os.Pipe()
	qt.Assert(t, qt.IsNil(err))
	return r, w
}

func TestDetectUTF8BOM(t *testing.T) {
	d := byteio.Detect([]byte{0xEF, 0xBB, 0xBF, 'a'})
	qt.Assert(t, qt.Equals(d.Encoding, unicode.UTF8))
	qt.Assert(t, qt.Equals(d.BOMLength, 3))
}

func TestDetectUTF16BOMs(t *testing.T) {
	d := byteio.Detect([]byte{0xFE, 0xFF, 0x00, 'a'})
	qt.Assert(t, qt.Equals(d.Encoding, unicode.UTF16BE))
	qt.Assert(t, qt.Equals(d.BOMLength, 2))

	d = byteio.Detect([]byte{0xFF, 0xFE, 'a', 0x00})
	qt.Assert(t, qt.Equals(d.Encoding, unicode.UTF16LE))
	qt.Assert(t, qt.Equals(d.BOMLength, 2))
}

func TestDetectUTF32BOMs(t *testing.T) {
	d := byteio.Detect([]byte{0x00, 0x00, 0xFE, 0xFF})
	qt.Assert(t, qt.Equals(d.Encoding, unicode.UTF32BE))
	qt.Assert(t, qt.Equals(d.BOMLength, 4))

	d = byteio.Detect([]byte{0xFF, 0xFE, 0x00, 0x00})
	qt.Assert(t, qt.Equals(d.Encoding, unicode.UTF32LE))
	qt.Assert(t, qt.Equals(d.BOMLength, 4))
}

func TestDetectZeroStrideNoBOM(t *testing.T) {
	// ASCII 'a' encoded as UTF-32BE with no BOM: 0x00 0x00 0x00 0x61.
	d := byteio.Detect([]byte{0x00, 0x00, 0x00, 'a'})
	qt.Assert(t, qt.Equals(d.Encoding, unicode.UTF32BE))
	qt.Assert(t, qt.Equals(d.BOMLength, 0))

	// ASCII 'a' encoded as UTF-16LE with no BOM: 0x61 0x00.
	d = byteio.Detect([]byte{'a', 0x00, 'b', 0x00})
	qt.Assert(t, qt.Equals(d.Encoding, unicode.UTF16LE))
	qt.Assert(t, qt.Equals(d.BOMLength, 0))
}

func TestDetectDefaultsToUTF8(t *testing.T) {
	d := byteio.Detect([]byte("hello"))
	qt.Assert(t, qt.Equals(d.Encoding, unicode.UTF8))
	qt.Assert(t, qt.Equals(d.BOMLength, 0))
}

func TestDetectShortWindow(t *testing.T) {
	// Fewer than 4 bytes available: detection must not panic or read out
	// of bounds, and a single ASCII byte still resolves to UTF-8.
	d := byteio.Detect([]byte{'a'})
	qt.Assert(t, qt.Equals(d.Encoding, unicode.UTF8))
	qt.Assert(t, qt.Equals(d.BOMLength, 0))

	d = byteio.Detect(nil)
	qt.Assert(t, qt.Equals(d.Encoding, unicode.UTF8))
	qt.Assert(t, qt.Equals(d.BOMLength, 0))
}
