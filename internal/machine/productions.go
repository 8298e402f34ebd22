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

package machine

import (
	"cuelabs.dev/go/yeast/internal/classify"
	"cuelabs.dev/go/yeast/internal/engine"
)

// This file hand-authors a representative subset of the YAML 1.2 grammar:
// the stream/document/node skeleton, plain and double-quoted scalars, flow
// sequences and mappings, and comments. The double-quoted scalar is the one
// production that exercises the frame stack's backtracking machinery: its
// escape sub-machine uses the "escape" and "escaped" named choice points
// (PushState/ResetState/Commit), and a malformed escape recovers in-band
// via an ERROR fake token followed by an UNPARSED run rather than aborting
// the whole scalar. It does not attempt the complete ~200-production
// grammar (block collections, block scalars with their header/chomping
// rules, single-quoted scalars, tags, anchors and aliases, directives).
// Those are additive: each would be one more production registered the
// same way. See DESIGN.md for the scope decision.

var anyChar = classify.Printable | classify.Break | classify.White

func init() {
	RegisterProduction(false, false, "l-yaml-stream", build("l-yaml-stream", streamSpecs()))
	RegisterProduction(false, false, "document", build("document", documentSpecs()))
	RegisterProduction(false, false, "node", build("node", nodeSpecs()))
	RegisterProduction(false, false, "comment", build("comment", commentSpecs()))
	RegisterProduction(false, false, "plain-scalar", build("plain-scalar", plainScalarSpecs()))
	RegisterProduction(false, false, "flow-sequence", build("flow-sequence", flowSequenceSpecs()))
	RegisterProduction(false, false, "flow-mapping", build("flow-mapping", flowMappingSpecs()))
	RegisterProduction(false, false, "quoted-scalar", build("quoted-scalar", quotedScalarSpecs()))
}

func streamSpecs() []stateSpec {
	return []stateSpec{
		{
			name:    "s_start",
			actions: []actionSpec{{kind: ActionEmptyToken, code: engine.BeginRoot}},
			trans:   []transSpec{unconditional("s_loop")},
		},
		{
			name: "s_loop",
			trans: []transSpec{
				on(anyChar, "s_doc_call"),
				unconditional("s_end"),
			},
		},
		{
			name:    "s_doc_call",
			actions: []actionSpec{{kind: ActionCall, call: CallSpec{Name: "document"}}},
			trans:   []transSpec{unconditional("s_loop")},
		},
		{
			name: "s_end",
			actions: []actionSpec{
				{kind: ActionEmptyToken, code: engine.EndRoot},
				{kind: ActionEmptyToken, code: engine.Done},
			},
		},
	}
}

func documentSpecs() []stateSpec {
	var specs []stateSpec
	specs = append(specs,
		stateSpec{
			name:    "doc_start",
			actions: []actionSpec{{kind: ActionEmptyToken, code: engine.BeginDocument}},
			trans:   []transSpec{unconditional("doc_node_call")},
		},
		stateSpec{
			name:    "doc_node_call",
			actions: []actionSpec{{kind: ActionCall, call: CallSpec{Name: "node"}}},
			trans:   []transSpec{unconditional("doc_trivia")},
		},
		stateSpec{
			name: "doc_trivia",
			trans: []transSpec{
				on(classify.White, "doc_white_begin"),
				on(classify.Break, "doc_break_begin"),
				unconditional("doc_end"),
			},
		},
	)
	appendAll(&specs, runRun("doc_white", engine.White, classify.White, "doc_trivia"))
	appendAll(&specs, runRun("doc_break", engine.Break, classify.Break, "doc_trivia"))
	specs = append(specs, stateSpec{
		name:    "doc_end",
		actions: []actionSpec{{kind: ActionEmptyToken, code: engine.EndDocument}, {kind: ActionSuccess}},
	})
	return specs
}

func nodeSpecs() []stateSpec {
	var specs []stateSpec
	specs = append(specs,
		stateSpec{
			name:    "node_start",
			actions: []actionSpec{{kind: ActionEmptyToken, code: engine.BeginNode}},
			trans:   []transSpec{unconditional("node_dispatch")},
		},
		stateSpec{
			name: "node_dispatch",
			trans: []transSpec{
				on(classify.White, "node_white_begin"),
				on(classify.Break, "node_break_begin"),
				on(classify.Hash, "node_comment_call"),
				on(classify.BracketOpen, "node_flowseq_call"),
				on(classify.BraceOpen, "node_flowmap_call"),
				on(classify.DoubleQuote, "node_quoted_call"),
				unconditional("node_plain_call"),
			},
		},
	)
	appendAll(&specs, runRun("node_white", engine.White, classify.White, "node_dispatch"))
	appendAll(&specs, runRun("node_break", engine.Break, classify.Break, "node_dispatch"))
	specs = append(specs,
		stateSpec{
			name:    "node_comment_call",
			actions: []actionSpec{{kind: ActionCall, call: CallSpec{Name: "comment"}}},
			trans:   []transSpec{unconditional("node_dispatch")},
		},
		stateSpec{
			name:    "node_flowseq_call",
			actions: []actionSpec{{kind: ActionCall, call: CallSpec{Name: "flow-sequence"}}},
			trans:   []transSpec{unconditional("node_end")},
		},
		stateSpec{
			name:    "node_flowmap_call",
			actions: []actionSpec{{kind: ActionCall, call: CallSpec{Name: "flow-mapping"}}},
			trans:   []transSpec{unconditional("node_end")},
		},
		stateSpec{
			name:    "node_quoted_call",
			actions: []actionSpec{{kind: ActionCall, call: CallSpec{Name: "quoted-scalar"}}},
			trans:   []transSpec{unconditional("node_end")},
		},
		stateSpec{
			name:    "node_plain_call",
			actions: []actionSpec{{kind: ActionCall, call: CallSpec{Name: "plain-scalar"}}},
			trans:   []transSpec{unconditional("node_end")},
		},
		stateSpec{
			name:    "node_end",
			actions: []actionSpec{{kind: ActionEmptyToken, code: engine.EndNode}, {kind: ActionSuccess}},
		},
	)
	return specs
}

func commentSpecs() []stateSpec {
	var specs []stateSpec
	specs = append(specs, stateSpec{
		name:    "comment_start",
		actions: []actionSpec{{kind: ActionEmptyToken, code: engine.BeginComment}},
		trans:   []transSpec{unconditional("comment_hash_begin")},
	})
	appendAll(&specs, runRun("comment_hash", engine.Indicator, classify.Hash, "comment_body_begin"))
	appendAll(&specs, runRun("comment_body", engine.Meta, classify.NonBreak, "comment_end"))
	specs = append(specs, stateSpec{
		name:    "comment_end",
		actions: []actionSpec{{kind: ActionEmptyToken, code: engine.EndComment}, {kind: ActionSuccess}},
	})
	return specs
}

func plainScalarSpecs() []stateSpec {
	specs := runRun("plain", engine.Text, classify.WordChar, "plain_done")
	specs = append(specs, stateSpec{name: "plain_done", actions: []actionSpec{{kind: ActionSuccess}}})
	return specs
}

func flowSequenceSpecs() []stateSpec {
	var specs []stateSpec
	appendAll(&specs, runRun("flowseq_open", engine.Indicator, classify.BracketOpen, "flowseq_loop"))
	specs = append(specs,
		stateSpec{
			name: "flowseq_loop",
			trans: []transSpec{
				on(classify.BracketClose, "flowseq_close_begin"),
				unconditional("flowseq_elem_call"),
			},
		},
		stateSpec{
			name:    "flowseq_elem_call",
			actions: []actionSpec{{kind: ActionCall, call: CallSpec{Name: "node"}}},
			trans:   []transSpec{unconditional("flowseq_sep")},
		},
		stateSpec{
			name: "flowseq_sep",
			trans: []transSpec{
				on(classify.Comma, "flowseq_comma_begin"),
				on(classify.BracketClose, "flowseq_close_begin"),
				unconditional("flowseq_elem_call"),
			},
		},
	)
	appendAll(&specs, runRun("flowseq_comma", engine.Indicator, classify.Comma, "flowseq_loop"))
	appendAll(&specs, runRun("flowseq_close", engine.Indicator, classify.BracketClose, "flowseq_done"))
	specs = append(specs, stateSpec{name: "flowseq_done", actions: []actionSpec{{kind: ActionSuccess}}})
	return specs
}

func flowMappingSpecs() []stateSpec {
	var specs []stateSpec
	appendAll(&specs, runRun("flowmap_open", engine.Indicator, classify.BraceOpen, "flowmap_loop"))
	specs = append(specs,
		stateSpec{
			name: "flowmap_loop",
			trans: []transSpec{
				on(classify.BraceClose, "flowmap_close_begin"),
				unconditional("flowmap_key_call"),
			},
		},
		stateSpec{
			name:    "flowmap_key_call",
			actions: []actionSpec{{kind: ActionCall, call: CallSpec{Name: "node"}}},
			trans:   []transSpec{unconditional("flowmap_colon_begin")},
		},
	)
	appendAll(&specs, runRun("flowmap_colon", engine.Indicator, classify.Colon, "flowmap_value_call"))
	specs = append(specs,
		stateSpec{
			name:    "flowmap_value_call",
			actions: []actionSpec{{kind: ActionCall, call: CallSpec{Name: "node"}}},
			trans:   []transSpec{unconditional("flowmap_sep")},
		},
		stateSpec{
			name: "flowmap_sep",
			trans: []transSpec{
				on(classify.Comma, "flowmap_comma_begin"),
				on(classify.BraceClose, "flowmap_close_begin"),
				unconditional("flowmap_key_call"),
			},
		},
	)
	appendAll(&specs, runRun("flowmap_comma", engine.Indicator, classify.Comma, "flowmap_loop"))
	appendAll(&specs, runRun("flowmap_close", engine.Indicator, classify.BraceClose, "flowmap_done"))
	specs = append(specs, stateSpec{name: "flowmap_done", actions: []actionSpec{{kind: ActionSuccess}}})
	return specs
}

// quotedScalarSpecs is a double-quoted scalar: an opening quote, a body of
// ordinary characters and backslash escapes, and a closing quote. Escapes
// are tried under the "escape" choice point; a two-hex-digit "\x" escape
// additionally opens the nested "escaped" choice point to backtrack out of
// just the hex digits without abandoning the whole escape attempt. Neither
// choice consumes anything once committed: Commit only validates scope, so
// every accepting path still closes its frame with an explicit EndChoice.
//
// A body character that is neither an escape lead nor the closing quote
// (an unescaped control character or line break) fails the production
// outright rather than attempting resynchronization; a bad escape, by
// contrast, recovers in place: ResetState discards the attempt, an ERROR
// fake token reports it, and the offending backslash is re-emitted as a
// one-byte UNPARSED run before the loop resumes.
func quotedScalarSpecs() []stateSpec {
	var specs []stateSpec
	specs = append(specs, stateSpec{
		name:    "dq_start",
		actions: []actionSpec{{kind: ActionEmptyToken, code: engine.BeginQuoted}},
		trans:   []transSpec{unconditional("dq_open_begin")},
	})
	appendAll(&specs, runRun("dq_open", engine.Indicator, classify.DoubleQuote, "dq_loop"))
	specs = append(specs,
		stateSpec{
			name: "dq_loop",
			trans: []transSpec{
				on(classify.Backslash, "dq_escape_begin"),
				on(classify.DoubleQuote, "dq_close_begin"),
				on(classify.QuotedBodyChar, "dq_text_begin"),
				unconditional("dq_fail"),
			},
		},
		stateSpec{
			name:    "dq_fail",
			actions: []actionSpec{{kind: ActionFailure}},
		},
	)
	appendAll(&specs, runRun("dq_text", engine.Text, classify.QuotedBodyChar, "dq_loop"))
	appendAll(&specs, runRun("dq_close", engine.Indicator, classify.DoubleQuote, "dq_done"))
	specs = append(specs, stateSpec{
		name:    "dq_done",
		actions: []actionSpec{{kind: ActionEmptyToken, code: engine.EndQuoted}, {kind: ActionSuccess}},
	})

	specs = append(specs,
		stateSpec{
			name:    "dq_escape_begin",
			actions: []actionSpec{{kind: ActionBeginToken, code: engine.Meta}, {kind: ActionBeginChoice, choice: "escape"}},
			trans:   []transSpec{unconditional("dq_escape_consume_backslash")},
		},
		stateSpec{
			name:    "dq_escape_consume_backslash",
			actions: []actionSpec{{kind: ActionNextChar}},
			trans:   []transSpec{unconditional("dq_escape_dispatch")},
		},
		stateSpec{
			name: "dq_escape_dispatch",
			trans: []transSpec{
				on(classify.EscapeHexLead, "dq_escape_hex_lead_consume"),
				on(classify.DoubleQuote, "dq_escape_simple_consume"),
				on(classify.Backslash, "dq_escape_simple_consume"),
				on(classify.AsciiLetter, "dq_escape_simple_consume"),
				unconditional("dq_escape_reject"),
			},
		},
		stateSpec{
			name:    "dq_escape_simple_consume",
			actions: []actionSpec{{kind: ActionNextChar}},
			trans:   []transSpec{unconditional("dq_escape_commit")},
		},
		stateSpec{
			name: "dq_escape_commit",
			actions: []actionSpec{
				{kind: ActionCommitChoice, choice: "escape"},
				{kind: ActionEndChoice},
				{kind: ActionEndToken, code: engine.Meta},
			},
			trans: []transSpec{unconditional("dq_loop")},
		},

		// The "escaped" choice point: \x must be followed by exactly two
		// hex digits. Either missing digit resets back to right after the
		// 'x' (discarding only the digits tried so far), pops the inner
		// scope, and falls through to the same reject path a non-hex
		// escape uses, so the outer "escape" scope still unwinds once.
		stateSpec{
			name:    "dq_escape_hex_lead_consume",
			actions: []actionSpec{{kind: ActionNextChar}, {kind: ActionBeginChoice, choice: "escaped"}},
			trans:   []transSpec{unconditional("dq_escape_hex1_dispatch")},
		},
		stateSpec{
			name: "dq_escape_hex1_dispatch",
			trans: []transSpec{
				on(classify.HexDigit, "dq_escape_hex1_consume"),
				unconditional("dq_escape_hex_reject"),
			},
		},
		stateSpec{
			name:    "dq_escape_hex1_consume",
			actions: []actionSpec{{kind: ActionNextChar}},
			trans:   []transSpec{unconditional("dq_escape_hex2_dispatch")},
		},
		stateSpec{
			name: "dq_escape_hex2_dispatch",
			trans: []transSpec{
				on(classify.HexDigit, "dq_escape_hex2_consume"),
				unconditional("dq_escape_hex_reject"),
			},
		},
		stateSpec{
			name:    "dq_escape_hex2_consume",
			actions: []actionSpec{{kind: ActionNextChar}},
			trans:   []transSpec{unconditional("dq_escape_hex_commit")},
		},
		stateSpec{
			name: "dq_escape_hex_commit",
			actions: []actionSpec{
				{kind: ActionCommitChoice, choice: "escaped"},
				{kind: ActionEndChoice},
				{kind: ActionCommitChoice, choice: "escape"},
				{kind: ActionEndChoice},
				{kind: ActionEndToken, code: engine.Meta},
			},
			trans: []transSpec{unconditional("dq_loop")},
		},
		stateSpec{
			name:    "dq_escape_hex_reject",
			actions: []actionSpec{{kind: ActionResetState}, {kind: ActionEndChoice}},
			trans:   []transSpec{unconditional("dq_escape_reject")},
		},

		stateSpec{
			name: "dq_escape_reject",
			actions: []actionSpec{
				{kind: ActionResetState},
				{kind: ActionEndChoice},
				{kind: ActionFakeToken, code: engine.Error, text: []byte("invalid escape sequence in quoted scalar")},
			},
			trans: []transSpec{unconditional("dq_escape_unparsed_consume")},
		},
		stateSpec{
			name:    "dq_escape_unparsed_consume",
			actions: []actionSpec{{kind: ActionNextChar}},
			trans:   []transSpec{unconditional("dq_escape_unparsed_end")},
		},
		stateSpec{
			name:    "dq_escape_unparsed_end",
			actions: []actionSpec{{kind: ActionEndToken, code: engine.Unparsed}},
			trans:   []transSpec{unconditional("dq_loop")},
		},
	)
	return specs
}
