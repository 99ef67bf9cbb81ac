// Copyright 2025 The TCell Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package xkb

import "github.com/xkbgo/xkbgo/keysym"

// Predicate governs how a SymInterpret's modifier mask is matched
// against a candidate modifier state.
type Predicate int

const (
	PredicateAnyOfOrNone Predicate = iota
	PredicateNoneOf
	PredicateAnyOf
	PredicateAllOf
	PredicateExactly
)

// Match reports whether mods satisfies the predicate against mask.
func (p Predicate) Match(mods, mask uint32) bool {
	switch p {
	case PredicateAnyOfOrNone:
		return mods == 0 || mods&mask != 0
	case PredicateNoneOf:
		return mods&mask == 0
	case PredicateAnyOf:
		return mods&mask != 0
	case PredicateAllOf:
		return mods&mask == mask
	case PredicateExactly:
		return mods == mask
	}
	return false
}

// InterpretFlag bits carried on a SymInterpret.
type InterpretFlag uint8

const (
	// InterpretUseModMapMods requests that the interpret's matched real
	// modifiers additionally be OR'd into the matched key's modmap, not
	// just drive an action/vmod (SPEC_FULL.md supplement, grounded on
	// compat.c's useModMapMods).
	InterpretUseModMapMods InterpretFlag = 1 << iota
	InterpretLevelOneOnly
)

// SymInterpret is one compat-section interpret rule (a keysym and
// modifier predicate plus the action, virtual modifier and flags it
// carries). The compiler stores interprets in Keymap.Interprets and does
// not apply them to keys: a key's actions and virtual-modmap bits come
// only from its symbols statement.
type SymInterpret struct {
	Sym       keysym.Keysym // keysym.NoSymbol matches any keysym
	Predicate Predicate
	Mods      uint32 // mask tested by Predicate
	VMod      int    // index into Keymap.VirtualMods, or -1
	Action    Action
	Flags     InterpretFlag
}

// Matches reports whether this interpret applies to the given keysym and
// modifier state.
func (si *SymInterpret) Matches(sym keysym.Keysym, mods uint32) bool {
	if si.Sym != keysym.NoSymbol && si.Sym != sym {
		return false
	}
	return si.Predicate.Match(mods, si.Mods)
}

// WhichState selects which component(s) of the runtime state an
// IndicatorMap's predicate is evaluated against. The same enum type is
// used for both WhichMods and WhichGroups below (they select from the
// same base/latched/locked/effective vocabulary), but the two fields
// are distinct and independently settable. xkbstate's LedIndexIsActive
// mirrors, by default, the original implementation's bug of reusing
// WhichMods' value in place of WhichGroups when evaluating the groups
// predicate; see its doc comment and (*xkbstate.State).
// SetCorrectedGroupMatch for the opt-in fix (see DESIGN.md's Open
// Question decisions).
type WhichState uint8

const (
	StateBase WhichState = 1 << iota
	StateLatched
	StateLocked
	StateEffective
)

// IndicatorMap derives an LED bit from modifier, group, or control
// state (spec.md section 3).
type IndicatorMap struct {
	WhichMods   WhichState
	RealMods    uint32 // real+virtual resolved mask
	VMods       uint32
	WhichGroups WhichState
	Groups      uint32 // one-hot bitmask of groups
	Ctrls       uint32

	// AllowExplicit and IndicatorDrivesKeyboard are compile-time
	// metadata surfaced read-only on the compiled keymap; the state
	// engine does not consult them (SPEC_FULL.md supplement).
	AllowExplicit          bool
	IndicatorDrivesKeyboard bool
}

// HasPredicate reports whether this indicator map has any active
// predicate (mods, groups, or ctrls).
func (im *IndicatorMap) HasPredicate() bool {
	return im.WhichMods != 0 || im.WhichGroups != 0 || im.Ctrls != 0
}
