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

package engine

import "cuelabs.dev/go/yeast/internal/unicode"

// beginLive re-anchors the live accumulating token at the engine's current
// position, with the given inherited code. Every emitter call ends by
// doing this.
func (c *Core) beginLive(code Code) {
	c.live = Token{
		ByteOffset: c.curr.byteOffset,
		CharOffset: c.curr.charOffset,
		Line:       c.curr.line,
		LineChar:   c.curr.lineChar,
		Begin:      c.curr.begin,
		End:        c.curr.begin,
		Encoding:   c.enc,
		Code:       code,
	}
}

// topCode returns the code stack's top, or the zero Code if empty.
func (c *Core) topCode() Code {
	if len(c.codes) == 0 {
		return 0
	}
	return c.codes[len(c.codes)-1]
}

// BeginToken starts a MATCH (or BOM) run. If the previously live token had
// matched characters, it is emitted first.
func (c *Core) BeginToken(code Code) Result {
	result := ResultNone
	if c.live.End > c.live.Begin {
		c.tokens = append(c.tokens, c.live)
		result = ResultToken
	}
	c.codes = append(c.codes, code)
	c.beginLive(code)
	return result
}

// EndToken closes the run started by the matching BeginToken. code must be
// the code stack's top or Unparsed (a recovery
// override). If no characters were matched, the (empty) live token is
// silently relabeled with the new stack top rather than emitted.
func (c *Core) EndToken(code Code) Result {
	if len(c.codes) == 0 {
		return c.FakeToken(Error, []byte("End token with empty code stack"))
	}
	opened := c.codes[len(c.codes)-1]
	c.codes = c.codes[:len(c.codes)-1]

	if c.live.End == c.live.Begin {
		c.beginLive(c.topCode())
		return ResultNone
	}

	tok := c.live
	tok.Code = code
	if code == Unparsed && opened != Unparsed {
		c.log.Warn("yeast: recovering as unparsed", "byteOffset", tok.ByteOffset, "line", tok.Line)
	}
	if code == BOM {
		if name, ok := c.enc.Name(); ok {
			tok.Static = []byte(name)
			tok.Begin, tok.End = 0, int64(len(tok.Static))
			tok.Encoding = unicode.UTF8
		}
	}
	c.tokens = append(c.tokens, tok)
	c.beginLive(c.topCode())
	return ResultToken
}

// EmptyToken emits a zero-length token anchored at the current position,
// for BEGIN/END structural codes and DONE. These codes never ride the code
// stack: nesting of structural BEGIN/END pairs is enforced by the
// grammar's own call structure (the production registry's recursion), not
// by this stack, which tracks only open MATCH/BOM runs.
func (c *Core) EmptyToken(code Code) Result {
	pos := c.curr.begin
	tok := Token{
		ByteOffset: c.curr.byteOffset,
		CharOffset: c.curr.charOffset,
		Line:       c.curr.line,
		LineChar:   c.curr.lineChar,
		Begin:      pos,
		End:        pos,
		Encoding:   c.enc,
		Code:       code,
	}
	c.tokens = append(c.tokens, tok)
	c.beginLive(c.topCode())
	if code == Done {
		c.done = true
		return ResultDone
	}
	return ResultToken
}

// FakeToken emits a FAKE token whose bytes point into a static message
// (not the source): a BOM name or an error message.
func (c *Core) FakeToken(code Code, text []byte) Result {
	if code == Error {
		c.log.Warn("yeast: recovery", "byteOffset", c.curr.byteOffset, "line", c.curr.line, "message", string(text))
	}
	tok := Token{
		ByteOffset: c.curr.byteOffset,
		CharOffset: c.curr.charOffset,
		Line:       c.curr.line,
		LineChar:   c.curr.lineChar,
		Static:     text,
		Begin:      0,
		End:        int64(len(text)),
		Encoding:   unicode.UTF8,
		Code:       code,
	}
	c.tokens = append(c.tokens, tok)
	c.beginLive(c.topCode())
	return ResultToken
}

// deliverableLen reports how many leading tokens of c.tokens can never be
// undone by a future ResetState: everything below the shallowest open
// frame's checkpoint. With no open frames, every emitted token qualifies.
func (c *Core) deliverableLen() int {
	if len(c.frames) == 0 {
		return len(c.tokens)
	}
	min := c.frames[0].tokensLen
	for _, f := range c.frames[1:] {
		if f.tokensLen < min {
			min = f.tokensLen
		}
	}
	return min
}

// NextPending returns the next token safe to hand to the external caller.
// It respects open backtracking scopes: a token produced inside a frame
// that might still be reset is held back until that frame commits or pops.
func (c *Core) NextPending() (Token, bool) {
	if c.deliverIdx >= c.deliverableLen() {
		return Token{}, false
	}
	tok := c.tokens[c.deliverIdx]
	c.deliverIdx++
	c.compact()
	return tok, true
}

// compact reclaims the delivered prefix of c.tokens once no open frame can
// reference it, mirroring the byte source's own gap-reclamation strategy
// rather than letting the token history grow unboundedly.
func (c *Core) compact() {
	if len(c.frames) != 0 || c.deliverIdx == 0 {
		return
	}
	if c.deliverIdx == len(c.tokens) {
		c.tokens = c.tokens[:0]
	} else {
		c.tokens = append(c.tokens[:0], c.tokens[c.deliverIdx:]...)
	}
	c.deliverIdx = 0
}

// Done reports whether the DONE token has already been produced.
func (c *Core) Done() bool { return c.done }
