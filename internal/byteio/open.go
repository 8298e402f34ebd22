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

package byteio

import (
	"io"
	"os"
	"unsafe"
)

// Buffer wraps an in-memory byte slice with no backing I/O: the
// static-buffer source variant. The bytes are not copied.
func Buffer(b []byte) Source {
	return NewStatic(b)
}

// String wraps a string's bytes with no backing I/O, sharing the
// underlying storage rather than copying it.
func String(s string) Source {
	return NewStatic(unsafeBytes(s))
}

// File wraps an already-open *os.File for streaming reads, the FILE-read
// source variant. If owned, Close also closes f.
func File(f *os.File, owned bool, growth int) Source {
	var closer io.Closer
	if owned {
		closer = f
	}
	return newStreamSource(f, closer, growth)
}

// FD wraps an open file descriptor for streaming reads, the fd-read
// source variant. Go does not distinguish a "FILE *" from a raw
// descriptor once opened, so this shares its implementation with [File].
func FD(fd int, owned bool, growth int) Source {
	f := os.NewFile(uintptr(fd), "fd")
	return File(f, owned, growth)
}

// Reader wraps an arbitrary io.Reader for streaming reads. This is not one
// of the five named source variants above, but shares the same
// dynamic-buffer growth strategy; it exists so callers with an in-memory
// io.Reader (for
// example bytes.NewReader over a []byte they don't want to hand over as a
// static buffer) don't need an *os.File.
func Reader(r io.Reader, growth int) Source {
	closer, _ := r.(io.Closer)
	return newStreamSource(r, closer, growth)
}

// Mmap memory-maps f's full contents read-only, the fd-mmap source
// variant. If owned, Close also closes f.
func Mmap(f *os.File, owned bool) (Source, error) {
	s, err := newMmap(f)
	if err != nil {
		return nil, err
	}
	if owned {
		return &closingSource{Source: s, f: f}, nil
	}
	return s, nil
}

type closingSource struct {
	Source
	f *os.File
}

func (c *closingSource) Close() error {
	err := c.Source.Close()
	if cerr := c.f.Close(); err == nil {
		err = cerr
	}
	return err
}

// Path opens filename for streaming reads, memory-mapping it when
// possible and falling back to buffered reads otherwise. Path "-" means
// standard input, which is never mmap-able and is always read as a
// stream. For any other path the returned source owns its file handle;
// standard input is not closed by the returned source.
func Path(filename string, growth int) (Source, error) {
	if filename == "-" {
		return File(os.Stdin, false, growth), nil
	}
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	if s, err := Mmap(f, true); err == nil {
		return s, nil
	}
	return File(f, true, growth), nil
}

// unsafeBytes exposes s's bytes without copying. This is safe only because
// every Source contract promises not to mutate through Window().
func unsafeBytes(s string) []byte {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Slice(unsafe.StringData(s), len(s))
}
