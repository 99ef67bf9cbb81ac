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
	"strings"

	"github.com/xkbgo/xkbgo/expr"
	"github.com/xkbgo/xkbgo/keysym"
	"github.com/xkbgo/xkbgo"
)

// compileSymbols populates km.Keys (symbols, actions, per-group types,
// vmodmap) and the real-modifier side of km.Keys[kc].RealModMap from an
// xkb_symbols section (spec.md section 4.6, the densest of the five).
func (c *context) compileSymbols(statements []*Statement) {
	for _, st := range statements {
		switch st.Kind {
		case StmtVModDef:
			for _, nameSt := range st.Body {
				if _, err := c.declareVMod(nameSt.Name); err != nil {
					c.diag.Errorf("symbols: %v", err)
				}
			}
		case StmtSymbolsDef:
			if err := c.compileOneKeySymbols(st); err != nil {
				c.diag.Errorf("symbols: key %s: %v", st.KeyName, err)
			}
		case StmtModMapDef:
			c.compileModMap(st)
		case StmtVarDef:
			// Top-level group-name declarations ("name[Group1]=...")
			// carry no runtime effect on the compiled keymap; record
			// nothing and move on silently, matching the behavior of
			// reading group-only display metadata.
		default:
			c.diag.Warnf("symbols: ignoring unsupported statement")
		}
	}
}

func (c *context) compileOneKeySymbols(st *Statement) error {
	kc := c.km.KeycodeByName(st.KeyName)
	if kc == 0 {
		return xkb.ErrKeycodeRange
	}
	key := c.km.Key(kc)

	numGroups := len(st.SymGroups)
	if len(st.ActionGroups) > numGroups {
		numGroups = len(st.ActionGroups)
	}
	if numGroups == 0 {
		numGroups = 1
	}
	if numGroups > xkb.NumKbdGroups {
		return xkb.ErrTooManyGroups
	}

	width := 0
	for _, g := range st.SymGroups {
		if len(g) > width {
			width = len(g)
		}
	}
	for _, g := range st.ActionGroups {
		if len(g) > width {
			width = len(g)
		}
	}
	if width == 0 {
		width = 1
	}

	key.NumGroups = numGroups
	key.Width = width
	key.SymOffset = uint32(len(c.km.Syms))
	hasActions := len(st.ActionGroups) > 0

	for g := 0; g < numGroups; g++ {
		for l := 0; l < width; l++ {
			var sym keysym.Keysym
			if g < len(st.SymGroups) && l < len(st.SymGroups[g]) {
				ks, err := expr.ResolveKeysym(st.SymGroups[g][l], c.keysymLookup)
				if err == nil {
					sym = keysym.Keysym(ks)
				}
			}
			c.km.Syms = append(c.km.Syms, sym)

			var act xkb.Action
			if g < len(st.ActionGroups) && l < len(st.ActionGroups[g]) {
				if a, err := c.compileAction(st.ActionGroups[g][l]); err == nil {
					act = a
				}
			}
			c.km.Actions = append(c.km.Actions, act)
		}
	}
	key.HasActions = hasActions

	var explicitType [xkb.NumKbdGroups]bool

	for _, f := range st.Body {
		switch f.Field {
		case "type":
			typeName, err := expr.ResolveString(f.Value)
			if err != nil {
				typeName, err = expr.ResolveKeyName(f.Value)
			}
			if err != nil {
				continue
			}
			idx := c.km.TypeByName(typeName)
			if idx < 0 {
				c.diag.Errorf("symbols: key %s: unknown type %q", st.KeyName, typeName)
				continue
			}
			if f.Index != nil {
				g, err := expr.ResolveGroup(f.Index)
				if err == nil && g < xkb.NumKbdGroups {
					key.GroupType[g] = idx
					explicitType[g] = true
				}
			} else {
				for g := 0; g < xkb.NumKbdGroups; g++ {
					key.GroupType[g] = idx
					explicitType[g] = true
				}
			}
		case "vmodmap":
			key.VModMap = c.resolveModMask(f.Value) >> 8
		case "repeat":
			if strings.EqualFold(valueIdent(f.Value), "true") {
				key.Repeat = true
			} else if b, err := expr.ResolveBoolean(f.Value); err == nil {
				key.Repeat = b
			}
		case "overlay1", "overlay2", "groupswrap", "groupsclamp", "groupsredirect":
			c.applyOutOfRangePolicy(key, f)
		default:
			c.diag.Warnf("symbols: key %s: ignoring unknown field %q", st.KeyName, f.Field)
		}
	}

	// Any group left without an explicit type is inferred from its own
	// symbols (spec.md section 4.6's width/case/keypad recipe).
	for g := 0; g < numGroups; g++ {
		if explicitType[g] {
			continue
		}
		var groupSyms []keysym.Keysym
		if g < len(st.SymGroups) {
			for _, e := range st.SymGroups[g] {
				ks, err := expr.ResolveKeysym(e, c.keysymLookup)
				if err != nil {
					groupSyms = append(groupSyms, keysym.NoSymbol)
					continue
				}
				groupSyms = append(groupSyms, keysym.Keysym(ks))
			}
		}
		key.GroupType[g] = c.autoTypeForSyms(groupSyms)
	}
	return nil
}

func valueIdent(e *expr.Expr) string {
	if e != nil && e.Op == expr.OpValue && e.Kind == expr.KindIdent {
		return e.Ident
	}
	return ""
}

func (c *context) applyOutOfRangePolicy(key *xkb.KeySymMap, f *Statement) {
	switch f.Field {
	case "groupswrap":
		key.OutOfRange = xkb.GroupWrap
	case "groupsclamp":
		key.OutOfRange = xkb.GroupClamp
	case "groupsredirect":
		key.OutOfRange = xkb.GroupRedirect
		if g, err := expr.ResolveGroup(f.Value); err == nil {
			key.RedirectTo = g
		}
	}
}

// compileModMap resolves a "modifier_map NAME { <KEY>, ... }" block: each
// listed key's modmap bit NAME is set (spec.md section 4.6).
func (c *context) compileModMap(st *Statement) {
	mask, _, ok := c.modifierLookup(st.Name)
	if !ok {
		c.diag.Errorf("symbols: modifier_map: unknown modifier %q", st.Name)
		return
	}
	real, vmods := splitModMask(mask)
	for _, keySt := range st.Body {
		kc := c.km.KeycodeByName(keySt.KeyName)
		if kc == 0 {
			c.diag.Errorf("symbols: modifier_map %s: unknown key %s", st.Name, keySt.KeyName)
			continue
		}
		key := c.km.Key(kc)
		key.RealModMap |= real
		key.VModMap |= vmods
	}
}
