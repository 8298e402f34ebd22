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
	"log/slog"

	"cuelabs.dev/go/yeast/internal/byteio"
	"cuelabs.dev/go/yeast/internal/unicode"
)

type sourceConfig struct {
	growth int
}

// SourceOption configures how a streaming byte Source grows its buffer.
type SourceOption func(*sourceConfig)

// WithGrowthFactor sets the step, in bytes, by which a dynamic-buffer
// source grows its backing allocation whenever it needs more room. The
// zero value keeps byteio.DefaultChunkSize.
func WithGrowthFactor(bytes int) SourceOption {
	return func(c *sourceConfig) { c.growth = bytes }
}

func newSourceConfig(opts []SourceOption) sourceConfig {
	var c sourceConfig
	for _, o := range opts {
		o(&c)
	}
	if c.growth <= 0 {
		c.growth = byteio.DefaultChunkSize
	}
	return c
}

type parserConfig struct {
	logger        *slog.Logger
	chunkSize     int
	ownedSource   bool
	forcedEncoding unicode.Encoding
	forceEncoding bool
}

// ParserOption configures OpenParser.
type ParserOption func(*parserConfig)

// WithLogger attaches a structured logger the parser uses for
// diagnostics: encoding detection, and error/unparsed recovery
// transitions. A nil logger (the default) disables logging with
// no per-call overhead.
func WithLogger(l *slog.Logger) ParserOption {
	return func(c *parserConfig) { c.logger = l }
}

// WithChunkSize overrides the amortized lookahead request size the
// character engine uses when asking the source for more bytes. The
// default is byteio.DefaultChunkSize.
func WithChunkSize(n int) ParserOption {
	return func(c *parserConfig) { c.chunkSize = n }
}

// WithOwnedSource marks the Source passed to OpenParser as owned by the
// returned Parser: (*Parser).Close will also close the source.
func WithOwnedSource() ParserOption {
	return func(c *parserConfig) { c.ownedSource = true }
}

// WithForcedEncoding bypasses BOM/zero-stride detection and parses src as
// enc unconditionally. This is an escape hatch for callers who already
// know the encoding (e.g. from an out-of-band content-type) and want to
// skip the heuristic, or need to parse input the heuristic would
// misclassify.
func WithForcedEncoding(enc Encoding) ParserOption {
	return func(c *parserConfig) {
		c.forcedEncoding = enc
		c.forceEncoding = true
	}
}

func newParserConfig(opts []ParserOption) parserConfig {
	var c parserConfig
	for _, o := range opts {
		o(&c)
	}
	if c.logger == nil {
		c.logger = slog.New(slog.DiscardHandler)
	}
	if c.chunkSize <= 0 {
		c.chunkSize = byteio.DefaultChunkSize
	}
	return c
}
