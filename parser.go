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
	"io"

	"cuelabs.dev/go/yeast/internal/byteio"
	"cuelabs.dev/go/yeast/internal/engine"
	"cuelabs.dev/go/yeast/internal/machine"
)

// Parser incrementally tokenizes a Source as YAML 1.2, producing a flat
// stream of Tokens via NextToken.
type Parser struct {
	src    Source
	core   *engine.Core
	mp     *machine.Parser
	owned  bool
	closed bool
}

// OpenParser detects src's encoding, skips and reports any BOM, and opens
// the named top-level production (normally "l-yaml-stream") ready to
// tokenize src.
func OpenParser(src Source, production string, opts ...ParserOption) (*Parser, error) {
	c := newParserConfig(opts)

	if _, err := src.More(4); err != nil && err != io.EOF {
		return nil, wrapSystemError(EFAULT, err)
	}

	enc := c.forcedEncoding
	bomLen := 0
	if !c.forceEncoding {
		det := byteio.Detect(src.Window())
		enc, bomLen = det.Encoding, det.BOMLength
	}
	c.logger.Debug("yeast: detected encoding", "encoding", enc, "bomLength", bomLen)

	core := engine.NewCore(src, enc, c.chunkSize, c.logger)
	if err := core.Seed(); err != nil {
		return nil, wrapSystemError(EFAULT, err)
	}

	if bomLen > 0 {
		core.BeginToken(BOM)
		if err := core.NextChar(); err != nil {
			return nil, wrapSystemError(EFAULT, err)
		}
		core.EndToken(BOM)
	}

	mp := machine.NewParser(core)
	if err := mp.Open(production, false, 0, false, "", false, false); err != nil {
		return nil, &SystemError{Code: EINVAL, Err: err}
	}

	return &Parser{src: src, core: core, mp: mp, owned: c.ownedSource}, nil
}

// NextToken returns the next Token in the stream, or (zero, false, nil) at
// end of stream. Bytes returned by a prior Token become invalid once
// NextToken is called again, since the source's window may have slid
// forward in between.
func (p *Parser) NextToken() (Token, bool, error) {
	tok, ok, err := p.mp.NextToken()
	if err != nil {
		return Token{}, false, wrapSystemError(EINVAL, err)
	}
	return tok, ok, nil
}

// AsError converts tok into an *Error if it's an in-band ERROR token.
// NextToken keeps delivering ERROR tokens in the ordinary token stream;
// AsError is a convenience for callers that want the structured form
// instead of inspecting the token's bytes themselves.
func (p *Parser) AsError(tok Token) (*Error, bool) {
	return ErrorFromToken(tok, "")
}

// Bytes returns tok's bytes against this Parser's current source window.
func (p *Parser) Bytes(tok Token) []byte {
	return tok.Bytes(p.src.ByteOffset(), p.src.Window())
}

// Encoding reports the encoding detected (or forced) at open time.
func (p *Parser) Encoding() Encoding { return p.core.Encoding() }

// Close releases the underlying source if the Parser was opened with
// WithOwnedSource.
func (p *Parser) Close() error {
	if p.closed {
		return nil
	}
	p.closed = true
	if p.owned {
		return p.src.Close()
	}
	return nil
}
