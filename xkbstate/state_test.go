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
	"testing"

	"github.com/xkbgo/xkbgo/keysym"
	"github.com/xkbgo/xkbgo/xkbcomp"
	"github.com/xkbgo/xkbgo"
)

// testKeymapSource mirrors xkbcomp's own compile_test.go fixture (kept
// independent since _test.go files are not importable across packages):
// one small keymap exercising every spec.md section 8 scenario this
// package is responsible for.
const testKeymapSource = `
xkb_keycodes "test" {
	minimum = 8;
	maximum = 255;
	<LFSH> = 50;
	<LATC> = 51;
	<AC01> = 38;
	<CAPS> = 66;
	<NMLK> = 77;
	<KP1>  = 87;
	<AC02> = 39;
	<AC03> = 40;
};

xkb_types "test" {
	virtual_modifiers NumLock;
};

xkb_symbols "test" {
	key <LFSH> {
		type = "ONE_LEVEL",
		symbols[Group1] = [ Shift_L ],
		actions[Group1] = [ SetMods(modifiers=Shift) ]
	};
	key <LATC> {
		type = "ONE_LEVEL",
		symbols[Group1] = [ Shift_L ],
		actions[Group1] = [ LatchMods(modifiers=Shift,latchToLock) ]
	};
	key <AC01> {
		type = "ALPHABETIC",
		symbols[Group1] = [ a, A ]
	};
	key <CAPS> {
		type = "ONE_LEVEL",
		symbols[Group1] = [ Caps_Lock ],
		actions[Group1] = [ LockMods(modifiers=Lock) ]
	};
	key <NMLK> {
		type = "ONE_LEVEL",
		symbols[Group1] = [ Num_Lock ],
		actions[Group1] = [ LockMods(modifiers=NumLock) ]
	};
	key <KP1> {
		type = "KEYPAD",
		symbols[Group1] = [ KP_End, KP_1 ]
	};
	key <AC02> {
		type = "TWO_LEVEL",
		symbols[Group1] = [ b, B ],
		symbols[Group2] = [ c, C ]
	};
	key <AC03> {
		type = "TWO_LEVEL",
		symbols[Group1] = [ x, X ],
		symbols[Group2] = [ y, Y ],
		symbols[Group3] = [ z, Z ]
	};
	modifier_map Mod2 { <NMLK> };
	modifier_map NumLock { <NMLK> };
};
`

func newTestState(t *testing.T) (*State, map[string]int) {
	t.Helper()
	km, sink, err := xkbcomp.CompileFromSource("test.xkb", testKeymapSource, xkbcomp.IncludePath{})
	if err != nil {
		t.Fatalf("CompileFromSource: %v (diagnostics: %+v)", err, sink.Messages)
	}
	if sink.Failed() {
		t.Fatalf("compilation reported failure: %+v", sink.Messages)
	}
	kc := map[string]int{}
	for _, name := range []string{"LFSH", "LATC", "AC01", "CAPS", "NMLK", "KP1", "AC02", "AC03"} {
		kc[name] = km.KeycodeByName(name)
	}
	return NewState(km), kc
}

func symName(t *testing.T, s *State, kc int) string {
	t.Helper()
	return keysym.String(s.KeyGetOneSym(kc))
}

// Scenario 1 (spec.md section 8): holding Shift shifts a letter key to
// its upper-case level.
func TestShiftCapitalization(t *testing.T) {
	s, kc := newTestState(t)

	if got := symName(t, s, kc["AC01"]); got != "a" {
		t.Fatalf("AC01 at rest = %q, want \"a\"", got)
	}

	s.UpdateKey(kc["LFSH"], true)
	if got := symName(t, s, kc["AC01"]); got != "A" {
		t.Errorf("AC01 with Shift held = %q, want \"A\"", got)
	}
	s.UpdateKey(kc["LFSH"], false)
	if got := symName(t, s, kc["AC01"]); got != "a" {
		t.Errorf("AC01 after Shift released = %q, want \"a\"", got)
	}
}

// Scenario 2 (spec.md section 8): the ALPHABETIC type's preserve rule
// keeps Caps Lock's bit out of the consumed set, leaving it available to
// downstream consumers, and locking Caps Lock alone (no Shift held) still shifts
// the letter, mirroring real keyboard behaviour.
func TestCapsLockPreserve(t *testing.T) {
	s, kc := newTestState(t)

	s.UpdateKey(kc["CAPS"], true) // LockMods toggles immediately on press
	s.UpdateKey(kc["CAPS"], false)
	if got := symName(t, s, kc["AC01"]); got != "A" {
		t.Fatalf("AC01 with Caps locked alone = %q, want \"A\"", got)
	}

	s.UpdateKey(kc["LFSH"], true)
	if got := symName(t, s, kc["AC01"]); got != "a" {
		t.Errorf("AC01 with Shift+CapsLock = %q, want \"a\" (preserve keeps Lock bit, level 0)", got)
	}
	consumed := s.KeyGetConsumedMods(kc["AC01"])
	const shiftBit = 1 << 0
	const lockBit = 1 << 1
	if consumed != shiftBit {
		t.Errorf("KeyGetConsumedMods(AC01) = %#x, want %#x (only Shift, Lock preserved)", consumed, shiftBit)
	}
	if !s.ModNameIsActive("Lock", xkb.StateLocked) {
		t.Errorf("Lock should remain locked regardless of what AC01 consumed")
	}
	_ = lockBit
	s.UpdateKey(kc["LFSH"], false)
}

// Scenario 3 (spec.md section 8): a second press of a latchToLock key
// before its latch is consumed promotes it to a lock, and the latch
// component clears once promoted.
func TestLatchToLock(t *testing.T) {
	s, kc := newTestState(t)

	s.UpdateKey(kc["LATC"], true)
	if mods := s.SerializeMods(xkb.StateLatched); mods != 0 {
		t.Fatalf("latched mods while key held = %#x, want 0 (not yet armed)", mods)
	}
	s.UpdateKey(kc["LATC"], false)
	const shiftBit = 1 << 0
	if mods := s.SerializeMods(xkb.StateLatched); mods != shiftBit {
		t.Fatalf("latched mods after release = %#x, want %#x", mods, shiftBit)
	}

	s.UpdateKey(kc["LATC"], true) // second press before consumption: promotes to lock
	if mods := s.SerializeMods(xkb.StateLocked); mods != shiftBit {
		t.Errorf("locked mods after second press = %#x, want %#x", mods, shiftBit)
	}
	if mods := s.SerializeMods(xkb.StateLatched); mods != 0 {
		t.Errorf("latched mods after promotion to lock = %#x, want 0 (cleared)", mods)
	}
	s.UpdateKey(kc["LATC"], false)
	if mods := s.SerializeMods(xkb.StateLocked); mods != shiftBit {
		t.Errorf("locked mods after releasing promoted key = %#x, want %#x (still locked)", mods, shiftBit)
	}
}

// Scenario 4 (spec.md section 8): a key with fewer groups than the
// keyboard-wide group count falls back to its own out-of-range policy
// (wrap, by default) once the globally effective group exceeds it,
// while a key with enough groups resolves the group directly.
func TestGroupWrapPerKeyPolicy(t *testing.T) {
	s, kc := newTestState(t)

	s.UpdateMask(0, 0, 0, 2) // lock the keyboard-wide group to index 2 (0-based)

	if got := symName(t, s, kc["AC03"]); got != "z" {
		t.Errorf("AC03 (3 groups) at group 2 = %q, want \"z\"", got)
	}
	if got := symName(t, s, kc["AC02"]); got != "b" {
		t.Errorf("AC02 (2 groups) wrapped from group 2 = %q, want \"b\" (2 %% 2 == 0)", got)
	}
}

// Scenario 5 (spec.md section 8): virtual modifier resolution. Locking
// the NumLock virtual modifier (bound to the real Mod2 bit via <NMLK>'s
// modifier_map entries) shifts the KEYPAD type's key to its numeral
// level.
func TestVirtualModifierResolutionNumLock(t *testing.T) {
	s, kc := newTestState(t)

	if got := symName(t, s, kc["KP1"]); got != keysym.String(keysym.FromName("KP_End")) {
		t.Fatalf("KP1 before NumLock = %q, want KP_End", got)
	}

	s.UpdateKey(kc["NMLK"], true) // LockMods toggles immediately
	s.UpdateKey(kc["NMLK"], false)
	if got := symName(t, s, kc["KP1"]); got != "KP_1" {
		t.Errorf("KP1 with NumLock locked = %q, want \"KP_1\"", got)
	}

	s.UpdateKey(kc["NMLK"], true) // press again toggles the lock back off
	s.UpdateKey(kc["NMLK"], false)
	if got := symName(t, s, kc["KP1"]); got != keysym.String(keysym.FromName("KP_End")) {
		t.Errorf("KP1 after NumLock unlocked = %q, want KP_End", got)
	}
}
