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

import "cuelabs.dev/go/yeast/internal/unicode"

// Encoding identifies the byte-level encoding of a parsed source.
type Encoding = unicode.Encoding

const (
	UTF8    = unicode.UTF8
	UTF16LE = unicode.UTF16LE
	UTF16BE = unicode.UTF16BE
	UTF32LE = unicode.UTF32LE
	UTF32BE = unicode.UTF32BE
)

// EncodingName returns enc's static name (e.g. "UTF-16LE"), or ("", false)
// if enc is out of range.
func EncodingName(enc Encoding) (string, bool) { return enc.Name() }

// Decode decodes one code point of src, encoded in enc, starting at
// *begin and not reading past end. *begin is advanced past the bytes
// consumed, even on a decode failure, so a caller can resynchronize.
func Decode(enc Encoding, src []byte, begin *int, end int) rune {
	return unicode.Decode(enc, src, begin, end)
}
