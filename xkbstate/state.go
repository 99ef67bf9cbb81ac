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

// State is a live, mutable view over an immutable Keymap: one State
// per keyboard device/seat (spec.md section 5). The zero value is not
// usable; construct with NewState.
type State struct {
	km *xkb.Keymap

	lockedMods  uint32
	lockedGroup int

	latchedMods        uint32
	latchedGroup       int
	latchedGroupActive bool

	filters []*filter

	// lastEventKeycode is the keycode of the most recent UpdateKey
	// press. Nothing in this package reads it: a repeated latch-key
	// press is recognized by findLatchFilter's keycode match instead.
	lastEventKeycode int

	// correctedGroupMatch opts into the corrected indicator
	// which_groups evaluation instead of mirroring the original's
	// which_mods/which_groups bit-reuse (spec.md section 9; see
	// LedIndexIsActive in query.go). Zero value (false) mirrors the
	// original's behavior, matching every other State default in this
	// package.
	correctedGroupMatch bool
}

// SetCorrectedGroupMatch opts this State into (or back out of) the
// corrected indicator which_groups evaluation. See LedIndexIsActive's
// doc comment for what the two modes do differently.
func (s *State) SetCorrectedGroupMatch(corrected bool) {
	s.correctedGroupMatch = corrected
}

// NewState creates a state machine bound to km, with all modifiers and
// groups at their base (unset) value.
func NewState(km *xkb.Keymap) *State {
	return &State{km: km}
}

// Keymap returns the keymap this state was constructed from.
func (s *State) Keymap() *xkb.Keymap { return s.km }

// StateComponent identifies which pieces of the state UpdateKey/
// UpdateMask changed, so a caller can decide whether to redraw
// indicators or recompute a serialized mask (spec.md section 5).
type StateComponent uint8

const (
	ComponentMods StateComponent = 1 << iota
	ComponentGroup
	ComponentLeds
)

// UpdateKey applies the effect of a physical key transition (press if
// down is true, release otherwise) through the filter chain and
// returns which state components changed.
func (s *State) UpdateKey(keycode int, down bool) StateComponent {
	if down {
		return s.keyPress(keycode)
	}
	return s.keyRelease(keycode)
}

func (s *State) keyPress(keycode int) StateComponent {
	s.lastEventKeycode = keycode
	act := s.actionForKey(keycode)
	changed := StateComponent(0)

	switch act.Kind {
	case xkb.ActionSetMods:
		s.filters = append(s.filters, &filter{Kind: FilterSetMods, Keycode: keycode, Mods: act.Mods, Flags: act.Flags})
		changed |= ComponentMods
	case xkb.ActionLatchMods:
		if f := s.findLatchFilter(keycode, FilterLatchMods); f != nil && f.Flags&xkb.FlagLatchToLock != 0 {
			// A second press of the same latch key before it was
			// consumed locks it instead (spec.md section 5).
			s.removeFilter(f)
			s.lockedMods |= f.Mods
			s.latchedMods &^= f.Mods
			changed |= ComponentMods
			break
		}
		s.filters = append(s.filters, &filter{Kind: FilterLatchMods, Keycode: keycode, Mods: act.Mods, Flags: act.Flags})
	case xkb.ActionLockMods:
		// ClearLocks is a SetMods-filter property consulted on release,
		// not here: xkb_filter_mod_lock_func never looks at it
		// (original_source/src/state.c's xkb_filter_mod_lock_func).
		s.lockedMods ^= act.Mods
		changed |= ComponentMods
	case xkb.ActionSetGroup:
		s.filters = append(s.filters, &filter{Kind: FilterSetGroup, Keycode: keycode, Group: s.resolveGroupTarget(act)})
		changed |= ComponentGroup
	case xkb.ActionLatchGroup:
		if f := s.findLatchFilter(keycode, FilterLatchGroup); f != nil && f.Flags&xkb.FlagLatchToLock != 0 {
			s.removeFilter(f)
			s.lockedGroup = s.wrapGroup(f.Group)
			s.latchedGroupActive = false
			changed |= ComponentGroup
			break
		}
		s.filters = append(s.filters, &filter{Kind: FilterLatchGroup, Keycode: keycode, Group: s.resolveGroupTarget(act)})
	case xkb.ActionLockGroup:
		s.lockedGroup = s.wrapGroup(s.resolveGroupTarget(act))
		changed |= ComponentGroup
	default:
		// A non-modifier key press consumes any pending latch: the
		// latched state was already folded into the effective state by
		// Serialize* for this one key event (spec.md section 5), and
		// now clears, together with the latched filters that held it.
		if s.latchedMods != 0 || s.latchedGroupActive {
			s.latchedMods = 0
			s.latchedGroupActive = false
			changed |= ComponentMods | ComponentGroup
		}
		var kept []*filter
		for _, f := range s.filters {
			if !f.latched {
				kept = append(kept, f)
			}
		}
		s.filters = kept
	}
	return changed
}

func (s *State) keyRelease(keycode int) StateComponent {
	changed := StateComponent(0)
	var remaining []*filter
	for _, f := range s.filters {
		if f.Keycode != keycode {
			remaining = append(remaining, f)
			continue
		}
		switch f.Kind {
		case FilterSetMods:
			// ClearLocks releases only the bits this action set, out of
			// lockedMods, on the matching key-up (spec.md section 4.8;
			// original_source/src/state.c's xkb_filter_mod_set_func).
			if f.Flags&xkb.FlagClearLocks != 0 {
				if s.lockedMods&f.Mods != 0 {
					s.lockedMods &^= f.Mods
					changed |= ComponentMods
				}
			}
			changed |= ComponentMods
		case FilterSetGroup:
			changed |= ComponentGroup
		case FilterLatchMods:
			if !f.latched {
				// ClearLocks plus an already-locked matching modifier
				// releases it instead of latching (spec.md section 4.8;
				// original_source/src/state.c:358-368).
				if f.Flags&xkb.FlagClearLocks != 0 && s.lockedMods&f.Mods == f.Mods && f.Mods != 0 {
					s.lockedMods &^= f.Mods
					changed |= ComponentMods
					continue
				}
				f.latched = true
				s.latchedMods |= f.Mods
				changed |= ComponentMods
				remaining = append(remaining, f) // keep until consumed
				continue
			}
			changed |= ComponentMods
		case FilterLatchGroup:
			if !f.latched {
				f.latched = true
				s.latchedGroup = f.Group
				s.latchedGroupActive = true
				changed |= ComponentGroup
				remaining = append(remaining, f)
				continue
			}
			changed |= ComponentGroup
		}
	}
	s.filters = remaining
	return changed
}

func (s *State) findLatchFilter(keycode int, kind FilterKind) *filter {
	for _, f := range s.filters {
		if f.Keycode == keycode && f.Kind == kind && f.latched {
			return f
		}
	}
	return nil
}

func (s *State) removeFilter(target *filter) {
	var remaining []*filter
	for _, f := range s.filters {
		if f != target {
			remaining = append(remaining, f)
		}
	}
	s.filters = remaining
}

func (s *State) resolveGroupTarget(act xkb.Action) int {
	if act.Flags&xkb.FlagGroupAbsolute != 0 {
		return act.Group
	}
	return s.effectiveGroupUnwrapped() + act.Group
}

func (s *State) wrapGroup(g int) int {
	n := s.km.NumGroups
	if n <= 0 {
		n = 1
	}
	g %= n
	if g < 0 {
		g += n
	}
	return g
}

// actionForKey returns the action bound to keycode at its current
// effective group and shift level.
func (s *State) actionForKey(keycode int) xkb.Action {
	key := s.keyAt(keycode)
	if key == nil || !key.HasActions {
		return xkb.Action{}
	}
	group := s.effectiveGroupForKey(key)
	level, _ := s.levelForKey(key, group)
	idx := int(key.SymOffset) + group*key.Width + level
	if idx < 0 || idx >= len(s.km.Actions) {
		return xkb.Action{}
	}
	return s.km.Actions[idx]
}

func (s *State) keyAt(keycode int) *xkb.KeySymMap {
	if keycode < 0 || keycode >= len(s.km.Keys) {
		return nil
	}
	return &s.km.Keys[keycode]
}
