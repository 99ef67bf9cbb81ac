// Copyright 2025 The TCell Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package xkbcomp

import (
	"github.com/xkbgo/xkbgo/atom"
	"github.com/xkbgo/xkbgo/diag"
	"github.com/xkbgo/xkbgo/expr"
	"github.com/xkbgo/xkbgo/keysym"
	"github.com/xkbgo/xkbgo"
)

// context is threaded through the five section compilers. It owns the
// keymap under construction, the diagnostics sink for this compilation
// session, and the name tables (virtual modifiers, atoms) that every
// section may contribute to and consult.
type context struct {
	km   *xkb.Keymap
	diag *diag.Sink
	toks *atom.Table

	// vmodIndex maps a declared virtual modifier name to its index in
	// km.VirtualMods, populated by xkb_types' virtual_modifiers
	// statement and consulted by every later section (spec.md 4.7).
	vmodIndex map[string]int
}

func newContext(km *xkb.Keymap, sink *diag.Sink) *context {
	return &context{
		km:        km,
		diag:      sink,
		toks:      atom.NewTable(),
		vmodIndex: make(map[string]int),
	}
}

// modifierLookup implements expr.ModifierLookup against the real
// modifier names (Shift, Lock, Control, Mod1..Mod5) plus any virtual
// modifier declared so far.
func (c *context) modifierLookup(name string) (mask uint32, isVirtual bool, ok bool) {
	if m, ok2 := realModNames[name]; ok2 {
		return uint32(m), false, true
	}
	if idx, ok2 := c.vmodIndex[name]; ok2 {
		return 1 << uint(idx+8), true, true
	}
	return 0, false, false
}

var realModNames = map[string]uint8{
	"Shift":   1 << 0,
	"Lock":    1 << 1,
	"Control": 1 << 2,
	"Mod1":    1 << 3,
	"Mod2":    1 << 4,
	"Mod3":    1 << 5,
	"Mod4":    1 << 6,
	"Mod5":    1 << 7,
}

// keysymLookup implements expr.KeysymLookup against the keysym package.
// Only keysym names are accepted; modifier names such as "Shift" do not
// resolve.
func (c *context) keysymLookup(name string) (uint32, bool) {
	if ks := keysym.FromName(name); ks != keysym.NoSymbol {
		return uint32(ks), true
	}
	return 0, false
}

func (c *context) resolveModMask(e *expr.Expr) uint32 {
	m, err := expr.ResolveModMask(e, c.modifierLookup)
	if err != nil {
		c.diag.Errorf("%v", err)
		return 0
	}
	return m
}

// splitModMask separates a resolved mask into its real (low 8 bits) and
// virtual (bits 8 and up, reindexed to 0-based vmod slots) components.
func splitModMask(mask uint32) (real uint8, vmods uint32) {
	return uint8(mask & 0xff), mask >> 8
}
