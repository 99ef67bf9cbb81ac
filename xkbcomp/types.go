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
	"github.com/xkbgo/xkbgo/expr"
	"github.com/xkbgo/xkbgo/keysym"
	"github.com/xkbgo/xkbgo"
)

// declareVMod registers a virtual modifier name, assigning it the next
// free slot if not already known. Section order means xkb_types usually
// declares these first, but compat and symbols may add more.
func (c *context) declareVMod(name string) (int, error) {
	if idx, ok := c.vmodIndex[name]; ok {
		return idx, nil
	}
	if len(c.km.VirtualMods) >= 8 {
		return 0, xkb.ErrTooManyVMods
	}
	idx := len(c.km.VirtualMods)
	c.km.VirtualMods = append(c.km.VirtualMods, xkb.VirtualMod{Name: name})
	c.vmodIndex[name] = idx
	return idx, nil
}

// compileTypes populates km.Types from an xkb_types section (spec.md
// section 4.6). Canonical types (ONE_LEVEL, TWO_LEVEL, ALPHABETIC,
// KEYPAD) are synthesized afterward by ensureCanonicalTypes if the
// source did not define them (SPEC_FULL.md supplement, grounded on
// xkbcommon's darwin/builtin type fallback).
func (c *context) compileTypes(statements []*Statement) {
	for _, st := range statements {
		switch st.Kind {
		case StmtVModDef:
			for _, nameSt := range st.Body {
				if _, err := c.declareVMod(nameSt.Name); err != nil {
					c.diag.Errorf("types: %v", err)
				}
			}
		case StmtTypeDef:
			kt, err := c.compileOneType(st)
			if err != nil {
				c.diag.Errorf("types: %q: %v", st.Name, err)
				continue
			}
			if idx := c.km.TypeByName(kt.Name); idx >= 0 {
				switch st.Merge {
				case MergeAugment:
					c.diag.Actionf("types: keeping first definition of %q", kt.Name)
				default:
					c.diag.Warnf("types: redefinition of %q, using latest", kt.Name)
					c.km.Types[idx] = kt
				}
				continue
			}
			c.km.Types = append(c.km.Types, kt)
		default:
			c.diag.Warnf("types: ignoring unsupported statement")
		}
	}
	c.ensureCanonicalTypes()
}

func (c *context) compileOneType(st *Statement) (xkb.KeyType, error) {
	kt := xkb.KeyType{Name: st.Name, NumLevels: 1}
	levelNames := map[int]string{}
	maxLevel := 0
	for _, f := range st.Body {
		switch f.Field {
		case "modifiers":
			mask := c.resolveModMask(f.Value)
			real, vmods := splitModMask(mask)
			kt.RealMods = real
			kt.VMods = vmods
		case "map":
			mask := c.resolveModMask(f.Index)
			level, err := expr.ResolveLevel(f.Value)
			if err != nil {
				return kt, err
			}
			kt.MapEntries = append(kt.MapEntries, xkb.MapEntry{Mask: mask, Level: level})
			if level > maxLevel {
				maxLevel = level
			}
		case "preserve":
			mask := c.resolveModMask(f.Index)
			preserve := c.resolveModMask(f.Value)
			kt.Preserve = append(kt.Preserve, xkb.PreserveEntry{Mask: mask, Preserve: preserve})
		case "level_name":
			level, err := expr.ResolveLevel(f.Index)
			if err != nil {
				return kt, err
			}
			name, err := expr.ResolveString(f.Value)
			if err != nil {
				return kt, err
			}
			levelNames[level] = name
			if level > maxLevel {
				maxLevel = level
			}
		default:
			c.diag.Warnf("types: %q: ignoring unknown field %q", st.Name, f.Field)
		}
	}
	kt.Mask = uint32(kt.RealMods) | kt.VMods<<8
	kt.NumLevels = maxLevel + 1
	kt.LevelNames = make([]string, kt.NumLevels)
	for l, n := range levelNames {
		kt.LevelNames[l] = n
	}
	return kt, nil
}

// ensureCanonicalTypes synthesizes the four canonical key types when
// absent, matching xkbcommon's built-in fallback widths (SPEC_FULL.md
// supplement).
func (c *context) ensureCanonicalTypes() {
	add := func(name string, levels int, levelNames ...string) {
		if c.km.TypeByName(name) >= 0 {
			return
		}
		kt := xkb.KeyType{Name: name, NumLevels: levels, LevelNames: append([]string(nil), levelNames...)}
		c.km.Types = append(c.km.Types, kt)
	}
	const shiftBit = 1 << 0
	const lockBit = 1 << 1

	add(xkb.TypeOneLevel, 1, "Any")

	if c.km.TypeByName(xkb.TypeTwoLevel) < 0 {
		c.km.Types = append(c.km.Types, xkb.KeyType{
			Name: xkb.TypeTwoLevel, RealMods: shiftBit, Mask: shiftBit, NumLevels: 2,
			LevelNames: []string{"Base", "Shift"},
			MapEntries: []xkb.MapEntry{{Mask: shiftBit, Level: 1}},
		})
	}
	if c.km.TypeByName(xkb.TypeAlphabetic) < 0 {
		c.km.Types = append(c.km.Types, xkb.KeyType{
			Name: xkb.TypeAlphabetic, RealMods: shiftBit | lockBit, Mask: shiftBit | lockBit, NumLevels: 2,
			LevelNames: []string{"Base", "Caps"},
			MapEntries: []xkb.MapEntry{
				{Mask: shiftBit, Level: 1},
				{Mask: lockBit, Level: 1},
				{Mask: shiftBit | lockBit, Level: 0},
			},
			Preserve: []xkb.PreserveEntry{{Mask: shiftBit | lockBit, Preserve: lockBit}},
		})
	}
	if c.km.TypeByName(xkb.TypeKeypad) < 0 {
		// The KEYPAD type binds to the virtual modifier named NumLock
		// when one has been declared (spec.md section 3); the raw
		// entry masks here use compileOneType's pre-resolution
		// convention (low 8 bits real, bit 8+i for vmod i) and are
		// converted to real masks by finalizeTypeMasks once virtual
		// modifier resolution has run.
		kt := xkb.KeyType{Name: xkb.TypeKeypad, NumLevels: 2, LevelNames: []string{"Base", "Number"}}
		if idx, ok := c.vmodIndex["NumLock"]; ok {
			kt.VMods = 1 << uint(idx)
			kt.Mask = kt.VMods << 8
			kt.MapEntries = []xkb.MapEntry{{Mask: kt.Mask, Level: 1}}
		} else {
			kt.RealMods = shiftBit
			kt.Mask = shiftBit
			kt.MapEntries = []xkb.MapEntry{{Mask: shiftBit, Level: 1}}
		}
		c.km.Types = append(c.km.Types, kt)
	}
}

// autoTypeForSyms picks a key type for a group whose symbols statement
// omitted an explicit "type" field, following the width/case/keypad
// recipe of spec.md section 4.6 (grounded on
// original_source/src/xkbcomp/symbols.c's FindAutomaticType): width
// 0/1 -> ONE_LEVEL; width 2 alphabetic-cased -> ALPHABETIC; width 2
// with either symbol a keypad keysym -> KEYPAD; width 2 otherwise ->
// TWO_LEVEL; width 3/4 follows the same recipe against the
// FOUR_LEVEL* family, synthesized on first use since spec.md section 3
// only requires the four base canonical types to always exist.
func (c *context) autoTypeForSyms(syms []keysym.Keysym) int {
	width := len(syms)
	for width > 0 && syms[width-1] == keysym.NoSymbol {
		width--
	}
	lower := func(i int) bool { return i < len(syms) && keysym.IsLower(syms[i]) }
	upper := func(i int) bool { return i < len(syms) && keysym.IsUpper(syms[i]) }
	keypad := func(i int) bool { return i < len(syms) && keysym.IsKeypad(syms[i]) }

	switch {
	case width <= 1:
		return c.ensureAutoType(xkb.TypeOneLevel, 1)
	case width == 2:
		switch {
		case lower(0) && upper(1):
			return c.ensureAutoType(xkb.TypeAlphabetic, 2)
		case keypad(0) || keypad(1):
			return c.ensureAutoType(xkb.TypeKeypad, 2)
		default:
			return c.ensureAutoType(xkb.TypeTwoLevel, 2)
		}
	default: // width 3 or 4
		switch {
		case lower(0) && upper(1) && lower(2) && upper(3):
			return c.ensureAutoType("FOUR_LEVEL_ALPHABETIC", 4)
		case lower(0) && upper(1):
			return c.ensureAutoType("FOUR_LEVEL_SEMIALPHABETIC", 4)
		case keypad(0) || keypad(1):
			return c.ensureAutoType("FOUR_LEVEL_KEYPAD", 4)
		default:
			return c.ensureAutoType("FOUR_LEVEL", 4)
		}
	}
}

// ensureAutoType returns the index of the named type, synthesizing a
// minimal one if the source never declared it: canonical names reuse
// ensureCanonicalTypes' definitions when an xkb_types section was
// compiled (compileTypes adds them); without one, a 1-level name gets
// no map and a 2-level name the generic Shift map below. The
// FOUR_LEVEL* family gets a generic Shift/Lock/both map spread across
// its levels.
func (c *context) ensureAutoType(name string, numLevels int) int {
	if idx := c.km.TypeByName(name); idx >= 0 {
		return idx
	}
	const shiftBit = 1 << 0
	const lockBit = 1 << 1
	kt := xkb.KeyType{Name: name, NumLevels: numLevels}
	switch numLevels {
	case 1:
		kt.LevelNames = []string{"Base"}
	case 2:
		kt.RealMods = shiftBit
		kt.Mask = shiftBit
		kt.LevelNames = []string{"Base", "Shift"}
		kt.MapEntries = []xkb.MapEntry{{Mask: shiftBit, Level: 1}}
	default: // FOUR_LEVEL family: Base, Shift, Lock+Shift(Lock combined via Lock bit alone), both
		kt.RealMods = shiftBit | lockBit
		kt.Mask = shiftBit | lockBit
		kt.LevelNames = []string{"Base", "Shift", "Lock", "Shift+Lock"}
		kt.MapEntries = []xkb.MapEntry{
			{Mask: shiftBit, Level: 1},
			{Mask: lockBit, Level: 2},
			{Mask: shiftBit | lockBit, Level: 3},
		}
	}
	c.km.Types = append(c.km.Types, kt)
	return len(c.km.Types) - 1
}

// finalizeTypeMasks converts every type's and map/preserve entry's mask
// from the pre-resolution convention (low 8 bits real, bit 8+i marking
// virtual modifier i) into a pure real-modifier mask, now that
// resolveVirtualMods has computed each virtual modifier's real mask
// (spec.md section 4.7: "each type's mask is real_mask(vmask(type)) |
// real_mods(type)", "each map entry's resolved mask is (entry.real_mods
// | real_mask(entry.vmods)) & type.mask"). Must run after
// resolveVirtualMods and before Freeze.
func (c *context) finalizeTypeMasks() {
	realMaskOf := func(vmods uint32) uint32 {
		var r uint32
		for i := range c.km.VirtualMods {
			if vmods&(1<<uint(i)) != 0 {
				r |= c.km.VirtualMods[i].Mask
			}
		}
		return r
	}
	for ti := range c.km.Types {
		kt := &c.km.Types[ti]
		kt.Mask = uint32(kt.RealMods) | realMaskOf(kt.VMods)
		for mi := range kt.MapEntries {
			me := &kt.MapEntries[mi]
			real, vmods := splitModMask(me.Mask)
			me.RealMods, me.VMods = real, vmods
			me.Mask = (uint32(real) | realMaskOf(vmods)) & kt.Mask
		}
		for pi := range kt.Preserve {
			pe := &kt.Preserve[pi]
			real, vmods := splitModMask(pe.Mask)
			pe.Mask = (uint32(real) | realMaskOf(vmods)) & kt.Mask
			preal, pvmods := splitModMask(pe.Preserve)
			pe.Preserve = uint32(preal) | realMaskOf(pvmods)
		}
	}
}
