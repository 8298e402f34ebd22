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

package yeast

import (
	"os"

	"cuelabs.dev/go/yeast/internal/byteio"
)

// Source is a polymorphic sliding byte source: a window of currently
// materialized bytes that can be grown (More) or released from the front
// (Less). Parser reads tokens from a Source without copying their bytes.
type Source = byteio.Source

// OpenSourceBuffer wraps an in-memory byte slice with no backing I/O.
// The bytes are not copied and must outlive every Token derived from them.
func OpenSourceBuffer(b []byte) Source { return byteio.Buffer(b) }

// OpenSourceString wraps a string's bytes with no backing I/O, sharing
// the underlying storage rather than copying it.
func OpenSourceString(s string) Source { return byteio.String(s) }

// OpenSourceFile wraps an already-open *os.File for streaming reads. If
// owned, the Source's Close also closes f.
func OpenSourceFile(f *os.File, owned bool, opts ...SourceOption) Source {
	c := newSourceConfig(opts)
	return byteio.File(f, owned, c.growth)
}

// OpenSourceFD wraps an open file descriptor for streaming reads. If
// owned, the Source's Close also closes the descriptor.
func OpenSourceFD(fd int, owned bool, opts ...SourceOption) Source {
	c := newSourceConfig(opts)
	return byteio.FD(fd, owned, c.growth)
}

// OpenSourceMmap memory-maps f's full contents read-only. If owned, the
// Source's Close also closes f.
func OpenSourceMmap(f *os.File, owned bool) (Source, error) {
	return byteio.Mmap(f, owned)
}

// OpenSourceAuto opens filename for streaming reads, memory-mapping it
// when possible and falling back to buffered reads otherwise. For any
// filename other than "-" (standard input), the returned Source owns its
// file handle; standard input is not closed by it.
func OpenSourceAuto(filename string, opts ...SourceOption) (Source, error) {
	c := newSourceConfig(opts)
	return byteio.Path(filename, c.growth)
}

// OpenSourcePath is an alias for OpenSourceAuto: path "-" means standard
// input, which is never mmap-able and is always read as a stream.
func OpenSourcePath(path string, opts ...SourceOption) (Source, error) {
	return OpenSourceAuto(path, opts...)
}
