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

//go:build unix

package byteio

import (
	"os"

	"golang.org/x/sys/unix"
)

// mmapSource is the fd-mmap source variant: the file is mapped once at
// open, the window spans the full mapping, and there is no dynamic
// growth. Close unmaps.
type mmapSource struct {
	data       []byte
	windowBeg  int
	byteOffset int64
}

// newMmap maps f's full contents read-only. f is not closed by this call;
// the mapping keeps its own reference to the underlying file description.
func newMmap(f *os.File) (Source, error) {
	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	size := info.Size()
	if size == 0 {
		return &mmapSource{data: nil}, nil
	}
	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, err
	}
	return &mmapSource{data: data}, nil
}

func (m *mmapSource) Window() []byte    { return m.data[m.windowBeg:] }
func (m *mmapSource) ByteOffset() int64 { return m.byteOffset }

func (m *mmapSource) More(n int) (int, error) {
	if n < 0 {
		return 0, negativeSizeError("More", n)
	}
	return 0, nil
}

func (m *mmapSource) Less(n int) error {
	if n < 0 {
		return negativeSizeError("Less", n)
	}
	if n > len(m.Window()) {
		return ErrOverRelease
	}
	m.windowBeg += n
	m.byteOffset += int64(n)
	return nil
}

func (m *mmapSource) Close() error {
	if m.data == nil {
		return nil
	}
	return unix.Munmap(m.data)
}
