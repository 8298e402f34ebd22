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

// Package byteio implements a polymorphic sliding byte source: a
// capability set of more/less/close over a tagged variant of five backing
// implementations (static buffer, dynamic buffer, FILE/fd-read, fd-mmap),
// plus the encoding detection that runs once at parser open.
package byteio

import (
	"errors"
	"fmt"
)

// Source is the polymorphic byte source contract: a read-only window
// [0, len(Window())) of currently materialized bytes,
// a ByteOffset stating how many bytes were released before that window,
// and More/Less to slide the window forward or release bytes from its
// front.
type Source interface {
	// More requests that at least n additional bytes be appended to the
	// window, returning how many were actually appended; 0 signals EOF.
	More(n int) (int, error)

	// Less releases n bytes from the front of the window. It may slide
	// retained bytes to the start of the backing allocation when the
	// freed gap is at least as large as the retained data, to preserve
	// amortized-linear cost.
	Less(n int) error

	// Close releases all resources held by the source. After Close, no
	// further use is defined.
	Close() error

	// Window is the currently materialized slice of source bytes.
	Window() []byte

	// ByteOffset is how many bytes have been released before Window().
	ByteOffset() int64
}

// ErrNegativeSize is returned by More/Less when given a negative count.
var ErrNegativeSize = errors.New("byteio: negative size")

// ErrOverRelease is returned by Less when asked to release more bytes than
// are currently in the window.
var ErrOverRelease = errors.New("byteio: release exceeds window")

// ErrEmptySource is returned when detection finds no bytes at all to
// classify: an I/O error or empty/unreadable input.
var ErrEmptySource = errors.New("byteio: empty or unreadable input")

func negativeSizeError(op string, n int) error {
	return fmt.Errorf("%s(%d): %w", op, n, ErrNegativeSize)
}
