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

import "cuelabs.dev/go/yeast/internal/engine"

// Token is a flat YEAST token produced by a Parser. Its bytes are
// zero-copy: call Bytes before the next call to NextToken, since the
// source's window may slide forward underneath it afterwards.
type Token = engine.Token

// Code identifies a token's role in the stream: a printable ASCII byte
// that is either a BEGIN/END structural marker, a content-bearing MATCH
// code, or a synthetic FAKE code.
type Code = engine.Code

// CodeType partitions the Code space.
type CodeType = engine.CodeType

const (
	CodeBegin = engine.CodeBegin
	CodeEnd   = engine.CodeEnd
	CodeMatch = engine.CodeMatch
	CodeFake  = engine.CodeFake
)

const (
	BeginRoot      = engine.BeginRoot
	EndRoot        = engine.EndRoot
	BeginAnchor    = engine.BeginAnchor
	EndAnchor      = engine.EndAnchor
	BeginComment   = engine.BeginComment
	EndComment     = engine.EndComment
	BeginDocument  = engine.BeginDocument
	EndDocument    = engine.EndDocument
	BeginDirective = engine.BeginDirective
	EndDirective   = engine.EndDirective
	BeginError     = engine.BeginError
	EndError       = engine.EndError
	BeginAlias     = engine.BeginAlias
	EndAlias       = engine.EndAlias
	BeginMapping   = engine.BeginMapping
	EndMapping     = engine.EndMapping
	BeginNode      = engine.BeginNode
	EndNode        = engine.EndNode
	BeginExcluded  = engine.BeginExcluded
	EndExcluded    = engine.EndExcluded
	BeginPair      = engine.BeginPair
	EndPair        = engine.EndPair
	BeginSequence  = engine.BeginSequence
	EndSequence    = engine.EndSequence
	BeginQuoted    = engine.BeginQuoted
	EndQuoted      = engine.EndQuoted
	BeginTag       = engine.BeginTag
	EndTag         = engine.EndTag
)

const (
	Text          = engine.Text
	Meta          = engine.Meta
	Break         = engine.Break
	LineFeed      = engine.LineFeed
	LineFold      = engine.LineFold
	Indicator     = engine.Indicator
	White         = engine.White
	Indent        = engine.Indent
	DocumentStart = engine.DocumentStart
	DocumentEnd   = engine.DocumentEnd
	Unparsed      = engine.Unparsed
)

const (
	BOM      = engine.BOM
	ErrorCode = engine.Error
	Done     = engine.Done
)

// CodePair returns code's paired BEGIN/END code, or code itself if it has
// no pair.
func CodePair(code Code) Code { return code.Pair() }
