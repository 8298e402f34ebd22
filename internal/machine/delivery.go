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

// NextToken drains whatever is already safe to deliver, and otherwise
// drives the call stack forward until either a token becomes deliverable
// or the stream is exhausted.
//
// It returns (token, true, nil) when a token is ready, (zero, false, nil)
// at end of stream, and (zero, false, err) on an out-of-band system error
// or a dispatch failure that no production caught. In-band parser errors
// surface as ERROR tokens through the first return value instead.
func (p *Parser) NextToken() (engine.Token, bool, error) {
	for {
		if tok, ok := p.core.NextPending(); ok {
			return tok, true, nil
		}
		if p.core.Done() || len(p.calls) == 0 {
			return engine.Token{}, false, nil
		}
		switch p.run() {
		case StepError:
			return engine.Token{}, false, p.err
		case StepUnexpected:
			return engine.Token{}, false, fmt.Errorf("machine: no applicable transition at byte offset %d", p.core.ByteOffset())
		case StepToken, StepDone:
			// Loop: a token may not be deliverable yet (it was produced
			// inside a still-open backtracking frame), or DONE may have
			// been signalled without yet being drainable.
		}
	}
}
