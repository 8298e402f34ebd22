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

import "cuelabs.dev/go/yeast/internal/engine"

// The production tables in this package are most naturally authored with
// named states rather than hand-counted indices. stateSpec/actionSpec/
// transSpec/build let each production table list its states by name and
// resolve targets in one pass at package init time; a generated-from-
// grammar DSL is out of scope here (see DESIGN.md).
type actionSpec struct {
	kind   ActionKind
	code   engine.Code
	text   []byte
	choice string
	call   CallSpec
}

type transSpec struct {
	mask   uint64
	target string
}

type stateSpec struct {
	name    string
	guard   Guard
	actions []actionSpec
	trans   []transSpec
}

// build resolves a list of named states into a Machine.
func build(name string, specs []stateSpec) *Machine {
	index := make(map[string]int, len(specs))
	for i, s := range specs {
		index[s.name] = i
	}
	states := make([]State, len(specs))
	for i, s := range specs {
		acts := make([]Action, len(s.actions))
		for j, a := range s.actions {
			acts[j] = Action{Kind: a.kind, Code: a.code, Text: a.text, Choice: a.choice, Call: a.call}
		}
		trs := make([]Transition, len(s.trans))
		for j, t := range s.trans {
			target, ok := index[t.target]
			if !ok {
				panic("machine: build(" + name + "): undefined state label " + t.target)
			}
			trs[j] = Transition{Mask: t.mask, Target: target}
		}
		states[i] = State{Guard: s.guard, Actions: acts, Transitions: trs}
	}
	return &Machine{Name: name, States: states}
}

// unconditional is a transition that always fires (the default/empty-mask
// arm).
func unconditional(target string) transSpec { return transSpec{mask: 0, target: target} }

func on(mask uint64, target string) transSpec { return transSpec{mask: mask, target: target} }

// runRun returns the four-state "begin a token, consume a maximal run of
// chars matching mask one at a time, end the token" idiom repeated
// throughout the production tables: prefix names the four states
// (prefix+"_begin/_loop/_consume/_end"), next is where control goes once
// the run ends (possibly on zero characters, if the very first lookahead
// character doesn't match mask — the emitter then silently relabels the
// empty token away).
func runRun(prefix string, code engine.Code, mask uint64, next string) []stateSpec {
	return []stateSpec{
		{
			name:    prefix + "_begin",
			actions: []actionSpec{{kind: ActionBeginToken, code: code}},
			trans:   []transSpec{unconditional(prefix + "_loop")},
		},
		{
			name: prefix + "_loop",
			trans: []transSpec{
				on(mask, prefix+"_consume"),
				unconditional(prefix + "_end"),
			},
		},
		{
			name:    prefix + "_consume",
			actions: []actionSpec{{kind: ActionNextChar}},
			trans:   []transSpec{unconditional(prefix + "_loop")},
		},
		{
			name:    prefix + "_end",
			actions: []actionSpec{{kind: ActionEndToken, code: code}},
			trans:   []transSpec{unconditional(next)},
		},
	}
}

func appendAll(dst *[]stateSpec, specs ...[]stateSpec) {
	for _, s := range specs {
		*dst = append(*dst, s...)
	}
}
