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

import "cuelabs.dev/go/yeast/internal/unicode"

// Detection is the result of sniffing a source's first bytes.
type Detection struct {
	Encoding unicode.Encoding
	// BOMLength is the number of leading bytes the detected BOM occupies,
	// or 0 if none was found. The BOM bytes are not consumed by
	// detection; the machine decides whether to emit a BOM token.
	BOMLength int
}

// sentinel is substituted for any byte position past the end of a short
// window, guaranteed not to match any of the patterns below.
const sentinel = 0xAA

// Detect classifies a source's encoding from its first (up to 4) bytes:
// full 4-byte BOMs for UTF-32, zero-byte stride patterns for BOM-less
// UTF-32/16, 2-byte UTF-16 BOMs, the 3-byte UTF-8 BOM, and finally a
// default of UTF-8.
func Detect(window []byte) Detection {
	at := func(i int) byte {
		if i < len(window) {
			return window[i]
		}
		return sentinel
	}
	b0, b1, b2, b3 := at(0), at(1), at(2), at(3)

	switch {
	case b0 == 0x00 && b1 == 0x00 && b2 == 0xFE && b3 == 0xFF:
		return Detection{unicode.UTF32BE, 4}
	case b0 == 0xFF && b1 == 0xFE && b2 == 0x00 && b3 == 0x00:
		return Detection{unicode.UTF32LE, 4}
	case b0 == 0x00 && b1 == 0x00 && b2 == 0x00:
		return Detection{unicode.UTF32BE, 0}
	case b0 != 0x00 && b1 == 0x00 && b2 == 0x00 && b3 == 0x00:
		return Detection{unicode.UTF32LE, 0}
	case b0 == 0xFE && b1 == 0xFF:
		return Detection{unicode.UTF16BE, 2}
	case b0 == 0xFF && b1 == 0xFE:
		return Detection{unicode.UTF16LE, 2}
	case b0 == 0x00 && b1 != 0x00:
		return Detection{unicode.UTF16BE, 0}
	case b0 != 0x00 && b1 == 0x00:
		return Detection{unicode.UTF16LE, 0}
	case b0 == 0xEF && b1 == 0xBB && b2 == 0xBF:
		return Detection{unicode.UTF8, 3}
	default:
		return Detection{unicode.UTF8, 0}
	}
}
