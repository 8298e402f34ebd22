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

import "io"

// streamSource is the FILE-read / fd-read source variant: it wraps a
// dynamicSource and issues reads of the requested size on More, appending
// whatever was actually read. Short reads are allowed; EOF returns 0. Go's
// os.File plays the role of both "FILE *" and a raw fd, so both the [File]
// and [FD] constructors resolve to this same implementation.
type streamSource struct {
	*dynamicSource
	r      io.Reader
	closer io.Closer
	eof    bool
}

func newStreamSource(r io.Reader, closer io.Closer, growth int) *streamSource {
	return &streamSource{
		dynamicSource: newDynamicSource(growth),
		r:             r,
		closer:        closer,
	}
}

func (s *streamSource) More(n int) (int, error) {
	if n < 0 {
		return 0, negativeSizeError("More", n)
	}
	if n == 0 || s.eof {
		return 0, nil
	}
	dst := s.growFor(n)
	total := 0
	for total < n {
		k, err := s.r.Read(dst[total:])
		total += k
		if err != nil {
			if err == io.EOF {
				s.eof = true
				break
			}
			s.commit(total)
			return total, err
		}
		if k == 0 {
			// A Reader that returns (0, nil) is a short read per the
			// io.Reader contract's discouraged-but-legal case; treat it
			// as "try again later" rather than spin forever here.
			break
		}
	}
	s.commit(total)
	return total, nil
}

func (s *streamSource) Close() error {
	if s.closer != nil {
		return s.closer.Close()
	}
	return nil
}
