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

// snapshot captures everything ResetState needs to undo.
func (c *Core) snapshot(name string) frame {
	return frame{
		name:      name,
		curr:      c.curr,
		prev:      c.prev,
		codesLen:  len(c.codes),
		tokensLen: len(c.tokens),
	}
}

// PushState opens a new backtracking scope: a checkpoint of the current
// position, code stack depth and token stack depth. name
// identifies the choice point ("escape", "escaped", or "" for an unnamed
// scope) for later Commit calls.
func (c *Core) PushState(name string) {
	c.frames = append(c.frames, c.snapshot(name))
}

// SetState replaces the top checkpoint with the live state, committing
// progress made since the last push or set without leaving the scope.
// Tokens produced since the previous checkpoint become eligible for
// delivery once no shallower frame still guards them.
func (c *Core) SetState() {
	if len(c.frames) == 0 {
		return
	}
	c.frames[len(c.frames)-1] = c.snapshot(c.frames[len(c.frames)-1].name)
}

// PopState discards the top checkpoint, keeping all progress made since
// the matching PushState.
func (c *Core) PopState() {
	if len(c.frames) == 0 {
		return
	}
	c.frames = c.frames[:len(c.frames)-1]
	c.compact()
}

// ResetState discards live progress back to the top checkpoint: character
// position, code stack and token stack are all truncated to what they were
// at the last PushState/SetState. The checkpoint itself
// remains open, so a production can retry another alternative, or close
// the scope afterwards with PopState.
func (c *Core) ResetState() {
	if len(c.frames) == 0 {
		return
	}
	top := c.frames[len(c.frames)-1]
	c.curr = top.curr
	c.prev = top.prev
	c.codes = c.codes[:top.codesLen]
	c.tokens = c.tokens[:top.tokensLen]
	c.beginLive(c.topCode())
}

// IsSameState reports whether the live position equals the top
// checkpoint's: machines use this to detect a choice that consumed
// nothing, guarding against infinite loops.
func (c *Core) IsSameState() bool {
	if len(c.frames) == 0 {
		return true
	}
	top := c.frames[len(c.frames)-1]
	return c.curr.byteOffset == top.curr.byteOffset
}

// Commit validates that choice is the name of the currently open scope.
// Outside the matching scope it emits an ERROR FAKE token instead,
// mirroring a machine bug rather than silently doing nothing.
func (c *Core) Commit(choice string) Result {
	if len(c.frames) == 0 || c.frames[len(c.frames)-1].name != choice {
		return c.FakeToken(Error, []byte(choice+" commit outside of scope"))
	}
	return ResultNone
}
