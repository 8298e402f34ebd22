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

import "sync"

// ContextSeparator joins a production's base name to its context when a
// lookup specifies one: a single character suffices since every
// production name in this grammar subset is itself context-free ASCII
// with no embedded ':' (see DESIGN.md for the alternative considered).
const ContextSeparator = ":"

// paramShape selects one of four lookup tables, according to which of the
// n/t optional parameters a call site supplies.
// c never affects table selection; it only changes the lookup key within
// whichever table is chosen.
type paramShape int

const (
	shapeNone paramShape = iota
	shapeNOnly
	shapeTOnly
	shapeBoth
)

func shapeOf(hasN, hasT bool) paramShape {
	switch {
	case hasN && hasT:
		return shapeBoth
	case hasN:
		return shapeNOnly
	case hasT:
		return shapeTOnly
	default:
		return shapeNone
	}
}

// Production pairs a registered name with the machine that implements it.
type Production struct {
	Name    string
	Machine *Machine
}

// registry is the production lookup table, mutex-guarded because
// registration happens at package init time (from productions.go's init)
// and lookups happen during parsing, so both sides take the lock rather
// than relying on init-time ordering.
type registry struct {
	mu     sync.RWMutex
	tables [4]map[string]*Production
}

func newRegistry() *registry {
	r := &registry{}
	for i := range r.tables {
		r.tables[i] = make(map[string]*Production)
	}
	return r
}

func (r *registry) register(hasN, hasT bool, p *Production) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tables[shapeOf(hasN, hasT)][p.Name] = p
}

func (r *registry) lookup(name string, hasN, hasT bool, hasC bool, context string) (*Production, bool) {
	key := name
	if hasC {
		key = name + ContextSeparator + context
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.tables[shapeOf(hasN, hasT)][key]
	return p, ok
}

// std is the package-wide production registry; production table files
// register into it from their init functions.
var std = newRegistry()

// RegisterProduction adds a production to the standard registry. hasN and
// hasT describe which table the production belongs to; name may embed a
// ':'-separated context suffix itself, for productions always invoked
// with a specific context.
func RegisterProduction(hasN, hasT bool, name string, m *Machine) {
	std.register(hasN, hasT, &Production{Name: name, Machine: m})
}

// LookupProduction resolves a call site's {name, n?, c?, t?} to a
// registered production.
func LookupProduction(name string, hasN, hasT, hasC bool, context string) (*Production, bool) {
	return std.lookup(name, hasN, hasT, hasC, context)
}
