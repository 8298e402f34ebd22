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
	"fmt"

	"cuelabs.dev/go/yeast/internal/engine"
)

// call is one activation of a production on the call stack. Because a
// machine must be able to pause mid-production (when the emitter signals
// TOKEN) and resume exactly where it left off, productions cannot simply
// be Go function calls: the call stack is explicit data, not the Go
// goroutine stack.
type call struct {
	machine   *Machine
	state     int
	actionIdx int

	n, counter int
	hasN       bool
	c          string
	hasC       bool
	t          bool
	hasT       bool
}

// Parser runs one production's call tree over a [engine.Core].
type Parser struct {
	core  *engine.Core
	calls []call
	err   error
}

// NewParser builds a Parser over an already-seeded Core.
func NewParser(core *engine.Core) *Parser {
	return &Parser{core: core}
}

// Core exposes the underlying character engine / emitter / frame stack,
// for callers (the public yeast package) that need position or encoding
// info alongside tokens.
func (p *Parser) Core() *engine.Core { return p.core }

// Err returns the out-of-band system error, if run ever returned
// StepError.
func (p *Parser) Err() error { return p.err }

// Open pushes the named top-level production as the parser's initial
// call. hasN/n, hasC/c, hasT/t describe the open-time production
// parameters the external caller supplied.
func (p *Parser) Open(name string, hasN bool, n int, hasC bool, c string, hasT bool, t bool) error {
	prod, ok := LookupProduction(name, hasN, hasT, hasC, c)
	if !ok {
		return fmt.Errorf("machine: no production registered for %q (n=%v c=%v t=%v)", name, hasN, hasC, hasT)
	}
	p.calls = append(p.calls, call{machine: prod.Machine, n: n, hasN: hasN, c: c, hasC: hasC, t: t, hasT: hasT})
	return nil
}

func pauseFor(r engine.Result) (StepResult, bool) {
	switch r {
	case engine.ResultToken:
		return StepToken, true
	case engine.ResultDone:
		return StepDone, true
	default:
		return StepUnexpected, false
	}
}

func (p *Parser) evalGuard(g Guard, top *call) bool {
	switch g {
	case NoGuard:
		return true
	case GuardStartOfLine:
		_, mask := p.core.Curr()
		return mask&1 != 0 // bit 0: start-of-line
	case GuardCounterLessThanN:
		return top.hasN && top.counter < top.n
	case GuardCounterLessEqualN:
		return top.hasN && top.counter <= top.n
	default:
		return false
	}
}

// resolveCall computes a callee's concrete {n?, c?, t?} from a CallSpec
// and the calling frame: n is typically forwarded with a delta (n+1 for a
// nested indentation level), c and t are literal.
func resolveCall(spec CallSpec, caller *call) (n int, hasN bool, c string, hasC bool, t bool, hasT bool) {
	if spec.HasN {
		base := 0
		if caller.hasN {
			base = caller.n
		}
		n, hasN = base+spec.DeltaN, true
	}
	if spec.HasC {
		c, hasC = spec.Context, true
	}
	if spec.HasT {
		t, hasT = spec.Tag, true
	}
	return
}

// exec runs one action of the top call frame. It returns (result, true)
// when the caller (run) must pause and hand control back up; (_, false)
// means keep running the current state's remaining actions.
func (p *Parser) exec(act Action, top *call) (StepResult, bool) {
	switch act.Kind {
	case ActionBeginToken:
		return pauseFor(p.core.BeginToken(act.Code))
	case ActionEndToken:
		return pauseFor(p.core.EndToken(act.Code))
	case ActionEmptyToken:
		return pauseFor(p.core.EmptyToken(act.Code))
	case ActionFakeToken:
		return pauseFor(p.core.FakeToken(act.Code, act.Text))

	case ActionNextChar:
		if err := p.core.NextChar(); err != nil {
			p.err = err
			return StepError, true
		}
		return StepUnexpected, false
	case ActionPrevChar:
		p.core.Retract()
		return StepUnexpected, false
	case ActionNextLine:
		p.core.NextLine()
		return StepUnexpected, false

	case ActionResetCounter:
		top.counter = 0
		return StepUnexpected, false
	case ActionIncrCounter:
		top.counter++
		return StepUnexpected, false

	case ActionBeginChoice:
		p.core.PushState(act.Choice)
		return StepUnexpected, false
	case ActionEndChoice:
		p.core.PopState()
		return StepUnexpected, false
	case ActionCommitChoice:
		return pauseFor(p.core.Commit(act.Choice))

	case ActionPushState:
		p.core.PushState("")
		return StepUnexpected, false
	case ActionSetState:
		p.core.SetState()
		return StepUnexpected, false
	case ActionPopState:
		p.core.PopState()
		return StepUnexpected, false
	case ActionResetState:
		p.core.ResetState()
		return StepUnexpected, false

	case ActionNonPositiveNError:
		if top.hasN && top.n <= 0 {
			return pauseFor(p.core.FakeToken(engine.Error, act.Text))
		}
		return StepUnexpected, false

	case ActionCall:
		n, hasN, c, hasC, t, hasT := resolveCall(act.Call, top)
		prod, ok := LookupProduction(act.Call.Name, hasN, hasT, hasC, c)
		if !ok {
			p.err = fmt.Errorf("machine: no production registered for %q (n=%v c=%v t=%v)", act.Call.Name, hasN, hasC, hasT)
			return StepError, true
		}
		p.calls = append(p.calls, call{machine: prod.Machine, n: n, hasN: hasN, c: c, hasC: hasC, t: t, hasT: hasT})
		return StepUnexpected, false

	case ActionSuccess:
		top.state = StateDone
		return StepUnexpected, false
	case ActionFailure:
		top.state = StateInvalid
		return StepUnexpected, false

	default:
		p.err = fmt.Errorf("machine: unknown action kind %d", act.Kind)
		return StepError, true
	}
}

// run drives the call stack forward until an action pauses it (TOKEN,
// DONE or ERROR) or the stack empties.
func (p *Parser) run() StepResult {
	for {
		if len(p.calls) == 0 {
			return StepDone
		}
		top := &p.calls[len(p.calls)-1]

		switch top.state {
		case StateDone:
			p.calls = p.calls[:len(p.calls)-1]
			continue
		case StateInvalid:
			// A failed call can't be resumed as if it had produced its
			// callee's result: propagate the failure to whatever frame
			// is now on top (the caller, if any) immediately, rather
			// than only noticing once the whole stack has unwound. A
			// caller still mid-actions or mid-transitions never runs
			// them on a callee that never actually matched.
			p.calls = p.calls[:len(p.calls)-1]
			if len(p.calls) == 0 {
				return StepUnexpected
			}
			p.calls[len(p.calls)-1].state = StateInvalid
			continue
		}

		st := top.machine.States[top.state]

		if top.actionIdx == 0 && !p.evalGuard(st.Guard, top) {
			top.state = StateInvalid
			continue
		}

		if top.actionIdx < len(st.Actions) {
			act := st.Actions[top.actionIdx]
			top.actionIdx++
			if result, paused := p.exec(act, top); paused {
				return result
			}
			continue
		}

		_, mask := p.core.Curr()
		target := StateInvalid
		for _, tr := range st.Transitions {
			if tr.Mask == 0 || tr.Mask&mask != 0 {
				target = tr.Target
				break
			}
		}
		top.state = target
		top.actionIdx = 0
	}
}
