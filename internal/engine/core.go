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

import (
	"log/slog"

	"cuelabs.dev/go/yeast/internal/byteio"
	"cuelabs.dev/go/yeast/internal/classify"
	"cuelabs.dev/go/yeast/internal/unicode"
)

// character is a token-shaped record extended with a classification mask.
// Begin and End are absolute stream byte offsets, the same choice made for
// [Token].
type character struct {
	byteOffset int64
	charOffset int64
	line       int
	lineChar   int
	begin, end int64
	rune       rune
	mask       uint64
}

// Result is what every emitter operation and every machine-level action
// returns.
type Result int

const (
	// ResultNone means the call produced no token (an empty BEGIN/END was
	// folded away, or nothing was ready to deliver yet).
	ResultNone Result = iota
	// ResultToken means one or more tokens are now ready for delivery.
	ResultToken
	// ResultDone means the stream is exhausted; the caller already
	// received (or will receive) a DONE token.
	ResultDone
)

// frame is one entry of the backtracking frame stack. It snapshots
// everything Reset needs to undo: the character position, the code stack
// depth, and how many tokens had been produced so far.
type frame struct {
	name       string
	curr, prev character
	codesLen   int
	tokensLen  int // len(Core.tokens) at push/commit time
}

// Core bundles the character engine, the token emitter, and the
// backtracking frame stack: three tightly coupled pieces sharing one
// runtime, given one Go type here rather than three with callback
// interfaces between them.
type Core struct {
	src       byteio.Source
	enc       unicode.Encoding
	chunkSize int
	log       *slog.Logger

	curr, prev character
	sourceDone bool // the underlying Source returned 0 bytes from More

	live    Token  // the token currently accumulating, not yet closed
	liveSet bool   // false only before the very first begin/empty/fake call
	codes   []Code // code stack; top is the live token's enclosing code

	tokens    []Token // emitted tokens not yet reclaimed; see NextPending and compact
	deliverIdx int    // index of the next token not yet handed to the caller
	frames     []frame

	done bool // a DONE token has been produced
}

// NewCore builds a Core reading from src, already known to be encoded as
// enc. chunkSize is the amortized growth request size passed to the
// source's More; logger may be nil.
func NewCore(src byteio.Source, enc unicode.Encoding, chunkSize int, logger *slog.Logger) *Core {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	c := &Core{
		src:       src,
		enc:       enc,
		chunkSize: chunkSize,
		log:       logger,
	}
	c.curr = character{rune: unicode.NoCode}
	c.prev = character{rune: unicode.NoCode}
	return c
}

// Curr returns the character engine's current lookahead character and its
// classification mask.
func (c *Core) Curr() (r rune, mask uint64) { return c.curr.rune, c.curr.mask }

// Prev returns the one character of lookbehind retained by the engine.
func (c *Core) Prev() (r rune, mask uint64) { return c.prev.rune, c.prev.mask }

// Position reports the engine's current stream position.
func (c *Core) Position() (byteOffset, charOffset int64, line, lineChar int) {
	return c.curr.byteOffset, c.curr.charOffset, c.curr.line, c.curr.lineChar
}

// AtEOF reports whether the lookahead character is the synthetic
// end-of-stream marker.
func (c *Core) AtEOF() bool { return c.curr.rune == unicode.EOFCode }

// ByteOffset reports the engine's current absolute byte position.
func (c *Core) ByteOffset() int64 { return c.curr.byteOffset }

// Encoding reports the source's detected encoding.
func (c *Core) Encoding() unicode.Encoding { return c.enc }

// ensureLookahead asks the source for more bytes once the window runs low
// past the current position. Because every offset Core stores is an
// absolute stream position rather than a pointer into the window's backing
// array, a reallocation inside More never needs a rebase walk over live
// tokens or frames: the offsets stay valid regardless of where the bytes
// physically live. See DESIGN.md for this tradeoff against pointer-based
// offsets.
func (c *Core) ensureLookahead() error {
	if c.sourceDone {
		return nil
	}
	windowEnd := c.src.ByteOffset() + int64(len(c.src.Window()))
	if windowEnd-c.curr.begin >= unicode.MaxEncodedCharLen {
		return nil
	}
	n, err := c.src.More(c.chunkSize)
	if err != nil {
		return err
	}
	if n == 0 {
		c.sourceDone = true
	}
	return nil
}

// decodeAt decodes one character starting at the absolute byte offset pos,
// returning the decoded rune (or a sentinel) and the absolute end offset.
func (c *Core) decodeAt(pos int64) (r rune, end int64) {
	windowOffset := c.src.ByteOffset()
	window := c.src.Window()
	windowEnd := windowOffset + int64(len(window))
	if pos >= windowEnd {
		return unicode.EOFCode, pos
	}
	rel := int(pos - windowOffset)
	got := rel
	r = unicode.Decode(c.enc, window, &got, len(window))
	return r, windowOffset + int64(got)
}

// NextChar advances the character engine by one character. It grows the
// live token's End to track the new position: tokens
// accumulate bytes simply by virtue of characters being consumed while
// they are open.
func (c *Core) NextChar() error {
	if c.curr.rune == unicode.EOFCode {
		return nil
	}
	wasBreak := classify.Classify(c.curr.rune)&classify.Break != 0

	c.prev = c.curr
	c.curr.byteOffset += c.curr.end - c.curr.begin
	c.curr.charOffset++
	c.curr.lineChar++
	c.curr.begin = c.curr.end

	if err := c.ensureLookahead(); err != nil {
		return err
	}

	r, end := c.decodeAt(c.curr.begin)
	c.curr.end = end
	c.curr.rune = r
	mask := classify.Classify(r)
	if wasBreak {
		mask |= classify.StartOfLine
	}
	c.curr.mask = mask

	if c.liveSet {
		c.live.End = c.curr.begin
	}
	return nil
}

// NextLine is called by machines right after consuming a line break token:
// it forces the start-of-line bit for the upcoming character (on top of
// the automatic propagation NextChar already does) and resets the
// within-line character counter.
func (c *Core) NextLine() {
	c.curr.line++
	c.curr.lineChar = 0
	c.curr.mask |= classify.StartOfLine
}

// Retract restores curr from the one character of lookbehind and pulls the
// live token's End back to the restored position. It is valid only
// immediately after a NextChar call (single-level lookbehind).
func (c *Core) Retract() {
	c.curr = c.prev
	if c.liveSet {
		c.live.End = c.curr.begin
	}
}

// Seed primes the engine with its first character and anchors the first
// live token. It must be called once, after the source's encoding has been
// detected, before the first NextChar/emission call. A BOM, if present, is
// not skipped: it becomes the first character.
func (c *Core) Seed() error {
	c.curr.byteOffset = c.src.ByteOffset()
	c.curr.begin = c.curr.byteOffset
	c.curr.line = 1
	if err := c.ensureLookahead(); err != nil {
		return err
	}
	r, end := c.decodeAt(c.curr.begin)
	c.curr.end = end
	c.curr.rune = r
	c.curr.mask = classify.Classify(r) | classify.StartOfLine
	c.live = Token{
		ByteOffset: c.curr.byteOffset,
		CharOffset: c.curr.charOffset,
		Line:       c.curr.line,
		LineChar:   c.curr.lineChar,
		Begin:      c.curr.begin,
		End:        c.curr.begin,
		Encoding:   c.enc,
	}
	c.liveSet = true
	return nil
}
