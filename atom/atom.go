// Copyright 2025 The TCell Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use file except in compliance with the License.
// You may obtain a copy of the license at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package atom provides a small interning table that maps strings to
// stable small integer identifiers and back. A compiled keymap stores
// atoms, not strings, wherever a name participates in equality
// comparison (key names, type names, indicator names, and so forth).
package atom

import "sync"

// Atom is a stable small-integer identifier for an interned string.
type Atom uint32

// NONE is the distinguished atom for the empty (or missing) string.
const NONE Atom = 0

// InternFunc interns a string and returns its Atom. Implementations must
// be idempotent: interning the same string twice returns the same Atom.
type InternFunc func(s string) Atom

// LookupFunc resolves an Atom back to its string.
type LookupFunc func(a Atom) string

// Table is an atom interning table. The zero value is not usable; use
// NewTable. A Table may be shared across many Keymap compilations, or a
// private one created per session -- callers that want a process-wide
// host atom service should supply their own Intern/Lookup callbacks via
// NewTableFunc.
type Table struct {
	mu      sync.Mutex
	byName  map[string]Atom
	byAtom  []string
	intern  InternFunc
	lookup  LookupFunc
	private bool
}

// NewTable creates a private, in-memory atom table. This is the default
// used when no host atom service is supplied.
func NewTable() *Table {
	t := &Table{
		byName:  make(map[string]Atom),
		byAtom:  []string{""},
		private: true,
	}
	return t
}

// NewTableFunc wraps caller-supplied Intern/Lookup callbacks, for hosts
// that maintain their own process-wide atom service. Both callbacks must
// be safe to call concurrently if the application compiles keymaps from
// multiple threads; the Table itself adds no additional synchronization
// in this mode.
func NewTableFunc(intern InternFunc, lookup LookupFunc) *Table {
	return &Table{intern: intern, lookup: lookup}
}

// Intern interns s and returns its Atom. Interning "" returns NONE, and
// Intern is idempotent.
func (t *Table) Intern(s string) Atom {
	if s == "" {
		return NONE
	}
	if !t.private {
		return t.intern(s)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if a, ok := t.byName[s]; ok {
		return a
	}
	a := Atom(len(t.byAtom))
	t.byAtom = append(t.byAtom, s)
	t.byName[s] = a
	return a
}

// Lookup resolves a back to its string. Lookup(NONE) returns "".
func (t *Table) Lookup(a Atom) string {
	if a == NONE {
		return ""
	}
	if !t.private {
		return t.lookup(a)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if int(a) >= len(t.byAtom) {
		return ""
	}
	return t.byAtom[a]
}
