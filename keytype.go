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

package xkb

// Canonical key type names that must exist in every compiled keymap
// (spec.md section 3).
const (
	TypeOneLevel   = "ONE_LEVEL"
	TypeTwoLevel   = "TWO_LEVEL"
	TypeAlphabetic = "ALPHABETIC"
	TypeKeypad     = "KEYPAD"
)

// MapEntry associates a specific (real_mods, vmods) combination with a
// shift level.
type MapEntry struct {
	RealMods uint8
	VMods    uint32
	Level    int
	// Mask is the resolved mask this entry matches against, computed by
	// virtual-modifier resolution as (RealMods | real_mask(VMods)) &
	// Type.Mask (spec.md section 4.7).
	Mask uint32
}

// PreserveEntry records, for a specific index mask, which modifier bits
// are left set in the effective state when that level is reached (used
// for Caps Lock behaviour).
type PreserveEntry struct {
	Mask  uint32 // the map entry's mask this preserve applies to
	Preserve uint32
}

// KeyType is a mapping from modifier combinations to shift levels, with
// optional preserve rules (spec.md section 3).
type KeyType struct {
	Name       string
	RealMods   uint8
	VMods      uint32
	Mask       uint32 // resolved: real_mask(VMods) | RealMods, union of all matchable masks
	NumLevels  int
	MapEntries []MapEntry
	Preserve   []PreserveEntry
	LevelNames []string
}

// Level returns the shift level selected by the given effective modifier
// mask (already restricted to t.Mask by the caller), and the preserve
// mask (if any) that should be subtracted from the consumed set. If no
// map entry matches, level 0 is returned.
func (t *KeyType) Level(effective uint32) (level int, preserve uint32) {
	for _, me := range t.MapEntries {
		if me.Mask == effective {
			for _, pe := range t.Preserve {
				if pe.Mask == me.Mask {
					return me.Level, pe.Preserve
				}
			}
			return me.Level, 0
		}
	}
	return 0, 0
}
