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

import (
	"github.com/xkbgo/xkbgo/keysym"
	"github.com/xkbgo/xkbgo/xkbgeom"
)

// Geometry is the compiled physical geometry of a keyboard, when the
// source declared an xkb_geometry section (spec.md section 3).
type Geometry = xkbgeom.Geometry

// MinKeycode and MaxKeycode bound the legal keycode range any keymap may
// declare, per spec.md section 3.
const (
	MinKeycode = 8
	MaxKeycode = 255
)

// NumKbdGroups is the maximum number of groups (layers) a single key may
// have.
const NumKbdGroups = 4

// KeyName is a four-byte opaque tag identifying a physical key position
// (e.g. "AC01"), space padded, encoded as a 32-bit value for hashing.
type KeyName [4]byte

// NewKeyName builds a KeyName from a string, space-padding or truncating
// to four characters.
func NewKeyName(s string) KeyName {
	var kn KeyName
	for i := range kn {
		kn[i] = ' '
	}
	for i := 0; i < len(s) && i < 4; i++ {
		kn[i] = s[i]
	}
	return kn
}

func (kn KeyName) String() string {
	n := 4
	for n > 0 && kn[n-1] == ' ' {
		n--
	}
	return string(kn[:n])
}

// Uint32 encodes the key name as a 32-bit value suitable for hashing or
// use as a map key alongside other small integers.
func (kn KeyName) Uint32() uint32 {
	return uint32(kn[0])<<24 | uint32(kn[1])<<16 | uint32(kn[2])<<8 | uint32(kn[3])
}

// OutOfRangePolicy governs how a key's effective group is derived when
// the requested group index falls outside [0, num_groups).
type OutOfRangePolicy int

const (
	GroupWrap OutOfRangePolicy = iota
	GroupClamp
	GroupRedirect
)

// KeySymMap is the per-key multi-group/multi-level symbol and action
// record (spec.md section 3's "per-key symbol map").
type KeySymMap struct {
	NumGroups    int              // 1..4
	OutOfRange   OutOfRangePolicy // wrap/clamp/redirect policy
	RedirectTo   int              // target group when OutOfRange == GroupRedirect
	Width        int              // max level across groups
	GroupType    [NumKbdGroups]int // index into Keymap.Types, per group
	SymOffset    uint32           // offset into Keymap.Syms
	HasActions   bool             // whether Keymap.Actions holds entries for this key
	Repeat       bool
	VModMap      uint32 // virtual modifiers this key contributes (vmodmap)
	RealModMap   uint8  // real modifiers this key contributes (modmap)
	Explicit     uint8  // bitmask of fields explicitly set in source (vs. inferred)
}

// Keymap is the compiled root: it owns every arena, and is immutable
// once Freeze returns. A Keymap may be shared read-only by any number of
// xkbstate.State objects.
type Keymap struct {
	MinKeycode int
	MaxKeycode int

	// KeyNames[kc] is the canonical name of keycode kc, or the zero
	// KeyName if unassigned.
	KeyNames []KeyName
	// Aliases maps an alias name to its (possibly chained) real name.
	Aliases map[string]string

	Types []KeyType

	Interprets []SymInterpret

	// Indicators holds up to 32 slots, 1-indexed in source but stored
	// 0-indexed here; Indicators[i] corresponds to LED slot i+1.
	Indicators [32]IndicatorMap
	// IndicatorNames[i] is the bound name for LED slot i+1, or "".
	IndicatorNames [32]string

	// GroupCompat[g] is the modifier mask consumed by group g's
	// group-compat entry (spec.md section 4.6, "group N = modmask").
	GroupCompat [NumKbdGroups]uint32

	// VirtualMods holds the (up to eight) named virtual modifier slots
	// and their resolved real-modifier masks.
	VirtualMods []VirtualMod

	Keys []KeySymMap // indexed by keycode

	Syms    []keysym.Keysym
	Actions []Action

	Geometry *Geometry

	NumGroups int // keyboard-wide group count: max used across all keys

	frozen bool
}

// VirtualMod is a named virtual modifier slot and its resolved real mask.
type VirtualMod struct {
	Name string
	Mask uint32 // resolved real-modifier mask, computed by vmod resolution
}

// NewKeymap allocates an empty keymap sized to the default keycode
// range. The keycodes compiler sets MinKeycode/MaxKeycode from the
// assigned codes when the source does not declare them (spec.md section 4.6, keycodes: "if the range is not
// declared, it is derived as the min/max of assigned codes").
func NewKeymap() *Keymap {
	km := &Keymap{
		MinKeycode: MinKeycode,
		MaxKeycode: MaxKeycode,
		Aliases:    make(map[string]string),
	}
	km.resize(km.MaxKeycode)
	return km
}

func (km *Keymap) resize(maxKc int) {
	if maxKc < len(km.KeyNames)-1 {
		return
	}
	n := maxKc + 1
	names := make([]KeyName, n)
	copy(names, km.KeyNames)
	km.KeyNames = names

	keys := make([]KeySymMap, n)
	copy(keys, km.Keys)
	km.Keys = keys
}

// Key returns the per-key symbol map for keycode kc, growing the arenas
// if kc exceeds the current MaxKeycode (late additions during
// compilation; interior mutation is permitted only before Freeze).
func (km *Keymap) Key(kc int) *KeySymMap {
	if kc >= len(km.Keys) {
		km.resize(kc)
	}
	return &km.Keys[kc]
}

// Freeze finalizes the keymap: no further mutation is expected past this
// point. Freeze is idempotent. It also derives the keyboard-wide
// NumGroups as the maximum NumGroups declared by any key, when the
// source never assigned one explicitly (spec.md section 3: "the
// keyboard's group count is the widest any key declares").
func (km *Keymap) Freeze() {
	if km.NumGroups == 0 {
		max := 1
		for i := range km.Keys {
			if km.Keys[i].NumGroups > max {
				max = km.Keys[i].NumGroups
			}
		}
		km.NumGroups = max
	}
	km.frozen = true
}

// Frozen reports whether Freeze has been called.
func (km *Keymap) Frozen() bool { return km.frozen }

// TypeByName returns the index of the named key type, or -1 if absent.
func (km *Keymap) TypeByName(name string) int {
	for i := range km.Types {
		if km.Types[i].Name == name {
			return i
		}
	}
	return -1
}

// ResolveAlias follows the alias chain (spec.md's SUPPLEMENT: an alias
// may target another alias) to the final real name. On a cycle it stops
// and returns the first name reached a second time (the starting name
// when the cycle passes through it) rather than looping forever.
func (km *Keymap) ResolveAlias(name string) string {
	seen := map[string]bool{}
	for {
		if seen[name] {
			return name
		}
		real, ok := km.Aliases[name]
		if !ok {
			return name
		}
		seen[name] = true
		name = real
	}
}

// KeycodeByName returns the keycode assigned to name (after alias
// resolution), or 0 if none is assigned.
func (km *Keymap) KeycodeByName(name string) int {
	name = km.ResolveAlias(name)
	for kc, kn := range km.KeyNames {
		if kn.String() == name {
			return kc
		}
	}
	return 0
}
