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

import "github.com/xkbgo/xkbgo"

// baseModsUnwrapped returns the union of every currently held
// ActionSetMods filter's modifier mask (combined real|virtual bit
// space, spec.md section 4.3's ResolveModMask convention), plus any
// ActionLatchMods filter still in its LATCH_KEY_DOWN phase (not yet
// promoted to latched on release): the original contributes a held
// latch key's mods to base_mods for as long as it's down
// (original_source/src/state.c's xkb_filter_mod_latch_new), so a chord
// pressed while the latch key is still held sees the modifier active.
func (s *State) baseModsUnwrapped() uint32 {
	var m uint32
	for _, f := range s.filters {
		if f.Kind == FilterSetMods {
			m |= f.Mods
		}
		if f.Kind == FilterLatchMods && !f.latched {
			m |= f.Mods
		}
	}
	return m
}

func (s *State) baseGroupUnwrapped() int {
	g := 0
	for _, f := range s.filters {
		if f.Kind == FilterSetGroup {
			g = f.Group // last SetGroup filter wins on rollover
		}
	}
	return g
}

// SerializeMods returns the modifier mask for the requested state
// component(s), OR'd together (spec.md section 5): Base alone reports
// only currently-held Set modifiers, Effective reports the full union
// used to drive symbol lookup.
func (s *State) SerializeMods(which xkb.WhichState) uint32 {
	if which&xkb.StateEffective != 0 {
		which |= xkb.StateBase | xkb.StateLatched | xkb.StateLocked
	}
	var m uint32
	if which&xkb.StateBase != 0 {
		m |= s.baseModsUnwrapped()
	}
	if which&xkb.StateLatched != 0 {
		m |= s.latchedMods
	}
	if which&xkb.StateLocked != 0 {
		m |= s.lockedMods
	}
	return m
}

// effectiveModsUnwrapped is the mask driving symbol/level lookup:
// base | latched | locked, independent of any single key's group
// compat mask.
func (s *State) effectiveModsUnwrapped() uint32 {
	return s.SerializeMods(xkb.StateEffective)
}

// effectiveGroupUnwrapped combines base/latched/locked group
// contributions into a single (not yet key-policy-wrapped) group index.
func (s *State) effectiveGroupUnwrapped() int {
	g := s.baseGroupUnwrapped()
	if s.latchedGroupActive {
		g += s.latchedGroup
	}
	g += s.lockedGroup
	return s.wrapGroup(g)
}

// SerializeGroup returns the group index contributed by the requested
// state component(s) (spec.md section 5).
func (s *State) SerializeGroup(which xkb.WhichState) int {
	if which&xkb.StateEffective != 0 {
		which |= xkb.StateBase | xkb.StateLatched | xkb.StateLocked
	}
	g := 0
	if which&xkb.StateBase != 0 {
		g += s.baseGroupUnwrapped()
	}
	if which&xkb.StateLatched != 0 && s.latchedGroupActive {
		g += s.latchedGroup
	}
	if which&xkb.StateLocked != 0 {
		g += s.lockedGroup
	}
	return s.wrapGroup(g)
}

// effectiveGroupForKey applies key's own out-of-range policy (wrap,
// clamp, or redirect) once the globally wrapped group index exceeds the
// key's own NumGroups (spec.md section 4.8).
func (s *State) effectiveGroupForKey(key *xkb.KeySymMap) int {
	g := s.effectiveGroupUnwrapped()
	if key.NumGroups <= 0 {
		return 0
	}
	if g < key.NumGroups {
		return g
	}
	switch key.OutOfRange {
	case xkb.GroupClamp:
		return key.NumGroups - 1
	case xkb.GroupRedirect:
		if key.RedirectTo >= 0 && key.RedirectTo < key.NumGroups {
			return key.RedirectTo
		}
		return 0
	default: // GroupWrap
		return g % key.NumGroups
	}
}

// effectiveRealMods expands effectiveModsUnwrapped's combined real+
// virtual bitmask into a pure real-modifier mask, resolving each set
// virtual modifier bit through its computed real mask (spec.md section
// 4.7). Key types store real-only masks after finalizeTypeMasks, so
// level lookup must compare against this resolved form, not the raw
// combined one SerializeMods/ModIndexIsActive report.
func (s *State) effectiveRealMods() uint32 {
	raw := s.effectiveModsUnwrapped()
	real := raw & 0xff
	for i, vm := range s.km.VirtualMods {
		if raw&(1<<uint(i+8)) != 0 {
			real |= vm.Mask
		}
	}
	return real
}

// levelForKey resolves the shift level for key within group, consulting
// the key type bound to that group and the effective modifier mask
// restricted by the group's compat mask, if any (spec.md section 4.8).
func (s *State) levelForKey(key *xkb.KeySymMap, group int) (level int, preserve uint32) {
	typeIdx := key.GroupType[group]
	if typeIdx < 0 || typeIdx >= len(s.km.Types) {
		return 0, 0
	}
	kt := &s.km.Types[typeIdx]
	mods := s.effectiveRealMods()
	if s.km.GroupCompat[group] != 0 {
		mods &= s.km.GroupCompat[group]
	}
	return kt.Level(mods & kt.Mask)
}
