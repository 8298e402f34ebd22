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

// Package machine implements a table-driven state machine runtime, a
// production registry, and token delivery. Productions are data (a
// [Machine] of [State] values with [Transition] and [Action] lists)
// dispatched by one generic step function rather than one Go function per
// grammar rule, so that a production can pause mid-call and resume later.
package machine

import "cuelabs.dev/go/yeast/internal/engine"

// Guard is evaluated before a state's transitions are considered. A
// failing guard is equivalent to no transition matching.
type Guard int

const (
	NoGuard Guard = iota
	GuardStartOfLine
	GuardCounterLessThanN
	GuardCounterLessEqualN
)

// ActionKind enumerates the state machine's action vocabulary.
type ActionKind int

const (
	ActionBeginToken ActionKind = iota
	ActionEndToken
	ActionEmptyToken
	ActionFakeToken
	ActionNextChar
	ActionPrevChar
	ActionNextLine
	ActionResetCounter
	ActionIncrCounter
	ActionBeginChoice
	ActionEndChoice
	ActionCommitChoice
	ActionPushState
	ActionSetState
	ActionPopState
	ActionResetState
	ActionNonPositiveNError
	ActionCall
	ActionSuccess
	ActionFailure
)

// Action is one step of a state's action sequence. Only the
// fields relevant to Kind are populated.
type Action struct {
	Kind ActionKind

	Code engine.Code // ActionBeginToken / ActionEndToken / ActionEmptyToken / ActionFakeToken
	Text []byte       // ActionFakeToken / ActionNonPositiveNError

	Choice string // ActionBeginChoice / ActionCommitChoice choice-point name

	Call CallSpec // ActionCall: which production to invoke and with what arguments
}

// CallSpec names a production invocation: the base name, and which of the
// optional n/c/t parameters are supplied. Concrete n/c/t values are
// resolved at call time from the invoking frame (see resolveCall in
// runtime.go), since the grammar frequently forwards or derives them
// (n+1, the enclosing context) rather than using literal constants.
type CallSpec struct {
	Name  string
	HasN  bool
	DeltaN int // added to the caller's n (or used as a literal if caller has no n)
	HasC  bool
	Context string
	HasT  bool
	Tag   bool
}

// Transition is one (classes_mask, target_state) pair. A zero Mask is the
// unconditional default arm and must sort last within a state's
// transition list.
type Transition struct {
	Mask   uint64
	Target int
}

// State is one state of a [Machine]: an optional guard, an action
// sequence run on entry, and an ordered transition list evaluated once the
// actions complete without pausing.
type State struct {
	Guard       Guard
	Actions     []Action
	Transitions []Transition
}

// Terminal state indices.
const (
	StateDone    = -1 // reached via an ActionSuccess action
	StateInvalid = -2 // no transitions table entry; dispatch error
)

// Machine is one named grammar production's state table.
type Machine struct {
	Name   string
	States []State
}

// StepResult is what running a machine one step returns.
type StepResult int

const (
	StepUnexpected StepResult = iota
	StepError
	StepToken
	StepDone
)
