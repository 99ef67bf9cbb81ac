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

package xkbstate

import (
	"github.com/xkbgo/xkbgo/keysym"
	"github.com/xkbgo/xkbgo"
)

var realModifierIndex = map[string]uint8{
	"Shift":   0,
	"Lock":    1,
	"Control": 2,
	"Mod1":    3,
	"Mod2":    4,
	"Mod3":    5,
	"Mod4":    6,
	"Mod5":    7,
}

// UpdateMask directly sets the locked/latched modifier and group
// components, as when synchronizing this State from an authoritative
// value received over a protocol channel (spec.md section 5). Held
// (Set) filters from live keys are left untouched.
func (s *State) UpdateMask(latchedMods, lockedMods uint32, latchedGroup, lockedGroup int) {
	s.latchedMods = latchedMods
	s.lockedMods = lockedMods
	s.latchedGroup = latchedGroup
	s.latchedGroupActive = latchedGroup != 0
	s.lockedGroup = s.wrapGroup(lockedGroup)
}

// ModNameIsActive reports whether the named real or virtual modifier is
// included in the requested state component(s).
func (s *State) ModNameIsActive(name string, which xkb.WhichState) bool {
	if idx, ok := realModifierIndex[name]; ok {
		return s.ModIndexIsActive(int(idx), which)
	}
	for i, vm := range s.km.VirtualMods {
		if vm.Name == name {
			return s.ModIndexIsActive(i+8, which)
		}
	}
	return false
}

// ModIndexIsActive reports whether the modifier at the given combined
// bit index (0-7 real, 8+ virtual) is included in the requested state
// component(s).
func (s *State) ModIndexIsActive(index int, which xkb.WhichState) bool {
	mask := s.SerializeMods(which)
	return mask&(1<<uint(index)) != 0
}

// GroupIndexIsActive reports whether group is the effective group
// considering the requested state component(s).
func (s *State) GroupIndexIsActive(group int, which xkb.WhichState) bool {
	return s.SerializeGroup(which) == group
}

// LedIndexIsActive evaluates indicator slot i's predicate (spec.md
// section 4.8) against the current effective state.
//
// The groups branch below mirrors a bug in the original implementation
// by default: it reuses im.WhichMods (the mods predicate's
// base/latched/locked/effective selector) to pick the group source,
// instead of im.WhichGroups (original_source/src/state.c's indicator
// update code aliases the two `XKB_STATE_MATCH_*`-style selector
// fields). Call (*State).SetCorrectedGroupMatch(true) to opt into the
// corrected behavior, which consults im.WhichGroups as its own field
// (spec.md section 9's "surface a configuration toggle to opt into a
// corrected branch").
func (s *State) LedIndexIsActive(i int) bool {
	if i < 0 || i >= len(s.km.Indicators) {
		return false
	}
	im := &s.km.Indicators[i]
	if !im.HasPredicate() {
		return false
	}
	if im.WhichMods != 0 {
		mods := s.SerializeMods(im.WhichMods)
		if mods&im.RealMods == 0 && im.RealMods != 0 {
			return false
		}
	}
	if im.WhichGroups != 0 {
		which := im.WhichGroups
		if !s.correctedGroupMatch {
			which = im.WhichMods
		}
		g := s.SerializeGroup(which)
		if im.Groups != 0 && im.Groups&(1<<uint(g)) == 0 {
			return false
		}
	}
	return true
}

// LedNameIsActive looks up the indicator slot bound to name and reports
// its active state, or false if no such indicator is bound.
func (s *State) LedNameIsActive(name string) bool {
	for i, n := range s.km.IndicatorNames {
		if n == name {
			return s.LedIndexIsActive(i)
		}
	}
	return false
}

// KeyGetSyms returns the keysyms bound to keycode at its current
// effective group and shift level. Most keys bind exactly one keysym
// per level; an empty slice means no symbol is bound there.
func (s *State) KeyGetSyms(keycode int) []keysym.Keysym {
	key := s.keyAt(keycode)
	if key == nil || key.Width == 0 {
		return nil
	}
	group := s.effectiveGroupForKey(key)
	level, _ := s.levelForKey(key, group)
	idx := int(key.SymOffset) + group*key.Width + level
	if idx < 0 || idx >= len(s.km.Syms) {
		return nil
	}
	sym := s.km.Syms[idx]
	if sym == keysym.NoSymbol {
		return nil
	}
	return []keysym.Keysym{sym}
}

// KeyGetOneSym is a convenience wrapper over KeyGetSyms for the common
// case of a single-keysym level.
func (s *State) KeyGetOneSym(keycode int) keysym.Keysym {
	syms := s.KeyGetSyms(keycode)
	if len(syms) == 0 {
		return keysym.NoSymbol
	}
	return syms[0]
}

// KeyGetConsumedMods returns the modifier bits that keycode's type
// consumed while selecting its current level, with any preserve rule's
// bits subtracted back out (spec.md section 4.8: "its modifiers are
// *subtracted* from the consumed set... they remain available to
// downstream consumers"). A caller masking its own effective mods with
// the complement of this value sees only the modifiers this key did
// not already account for.
func (s *State) KeyGetConsumedMods(keycode int) uint32 {
	key := s.keyAt(keycode)
	if key == nil {
		return 0
	}
	group := s.effectiveGroupForKey(key)
	typeIdx := key.GroupType[group]
	if typeIdx < 0 || typeIdx >= len(s.km.Types) {
		return 0
	}
	kt := &s.km.Types[typeIdx]
	_, preserve := s.levelForKey(key, group)
	return kt.Mask &^ preserve
}

// KeyGetLevel returns the shift level keycode currently resolves to.
func (s *State) KeyGetLevel(keycode int) int {
	key := s.keyAt(keycode)
	if key == nil {
		return 0
	}
	group := s.effectiveGroupForKey(key)
	level, _ := s.levelForKey(key, group)
	return level
}

// KeyGetGroup returns the effective group keycode currently resolves
// to, after that key's own out-of-range policy has been applied.
func (s *State) KeyGetGroup(keycode int) int {
	key := s.keyAt(keycode)
	if key == nil {
		return 0
	}
	return s.effectiveGroupForKey(key)
}

// KeyGetAction returns the action bound to keycode at its current
// group and level.
func (s *State) KeyGetAction(keycode int) xkb.Action {
	return s.actionForKey(keycode)
}
