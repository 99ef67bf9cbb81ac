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

// Package xkbstate implements the runtime key/modifier/group state
// machine that consumes a frozen xkb.Keymap: the set/latch/lock filter
// chain driving base, latched, and locked modifiers and groups, their
// serialization into an effective modifier mask and group index, LED
// derivation, and the per-key symbol/level/action queries a client
// event loop needs (spec.md section 5).
package xkbstate

import "github.com/xkbgo/xkbgo"

// FilterKind identifies the variant of an active Filter, mirroring the
// Action sum type's Kind-enum approach (spec.md section 9).
type FilterKind uint8

const (
	FilterNone FilterKind = iota
	FilterSetMods
	FilterLatchMods
	FilterLockMods
	FilterSetGroup
	FilterLatchGroup
	FilterLockGroup
)

// filter is one entry in the active filter chain: a still-in-effect
// consequence of a key action, tied to the keycode that produced it so
// release can find and retire it (spec.md section 5's "filter chain").
type filter struct {
	Kind    FilterKind
	Keycode int
	Mods    uint32
	Group   int
	Flags   xkb.ActionFlag

	// latched marks a Latch filter that has moved from "armed while the
	// key is held" to "latched, awaiting consumption by the next key
	// event" (set on release).
	latched bool
}

func (f *filter) isModFilter() bool {
	switch f.Kind {
	case FilterSetMods, FilterLatchMods, FilterLockMods:
		return true
	}
	return false
}

func (f *filter) isGroupFilter() bool {
	switch f.Kind {
	case FilterSetGroup, FilterLatchGroup, FilterLockGroup:
		return true
	}
	return false
}
