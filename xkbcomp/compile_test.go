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
	"testing"

	"github.com/xkbgo/xkbgo"
)

// testKeymapSource is shared by the compile and state-engine tests: one
// small, self-contained keymap exercising virtual modifier resolution,
// the canonical type synthesis, multi-group keys, and every action kind
// spec.md section 8 names.
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

func compileTestKeymap(t *testing.T) *xkb.Keymap {
	t.Helper()
	km, sink, err := CompileFromSource("test.xkb", testKeymapSource, IncludePath{})
	if err != nil {
		t.Fatalf("CompileFromSource: %v (diagnostics: %+v)", err, sink.Messages)
	}
	if sink.Failed() {
		t.Fatalf("compilation reported failure: %+v", sink.Messages)
	}
	return km
}

func TestCompileKeycodesAndKeyNames(t *testing.T) {
	km := compileTestKeymap(t)
	if kc := km.KeycodeByName("AC01"); kc != 38 {
		t.Errorf("KeycodeByName(AC01) = %d, want 38", kc)
	}
	if kc := km.KeycodeByName("NMLK"); kc != 77 {
		t.Errorf("KeycodeByName(NMLK) = %d, want 77", kc)
	}
}

func TestCompileCanonicalTypesSynthesized(t *testing.T) {
	km := compileTestKeymap(t)
	for _, name := range []string{xkb.TypeOneLevel, xkb.TypeTwoLevel, xkb.TypeAlphabetic, xkb.TypeKeypad} {
		if km.TypeByName(name) < 0 {
			t.Errorf("canonical type %q was not synthesized", name)
		}
	}
}

// Virtual modifier resolution (spec.md section 4.7): the NumLock virtual
// modifier is bound to the real Mod2 bit via <NMLK>'s modmap/vmodmap, so
// the synthesized KEYPAD type's mask and map entry must resolve to the
// real Mod2 bit (1<<4), not the raw pre-resolution vmod bit.
func TestCompileVirtualModifierResolution(t *testing.T) {
	km := compileTestKeymap(t)

	var numLockIdx = -1
	for i, vm := range km.VirtualMods {
		if vm.Name == "NumLock" {
			numLockIdx = i
		}
	}
	if numLockIdx < 0 {
		t.Fatalf("NumLock virtual modifier was not declared")
	}
	const mod2 = 1 << 4
	if got := km.VirtualMods[numLockIdx].Mask; got != mod2 {
		t.Fatalf("VirtualMods[NumLock].Mask = %#x, want %#x", got, mod2)
	}

	idx := km.TypeByName(xkb.TypeKeypad)
	if idx < 0 {
		t.Fatalf("KEYPAD type missing")
	}
	kt := km.Types[idx]
	if kt.Mask != mod2 {
		t.Errorf("KEYPAD.Mask = %#x, want %#x (resolved real Mod2 bit)", kt.Mask, mod2)
	}
	if len(kt.MapEntries) != 1 || kt.MapEntries[0].Mask != mod2 || kt.MapEntries[0].Level != 1 {
		t.Errorf("KEYPAD.MapEntries = %+v, want one entry {Mask: %#x, Level: 1}", kt.MapEntries, mod2)
	}
}

func TestCompileModifierMapSetsRealAndVirtualBits(t *testing.T) {
	km := compileTestKeymap(t)
	kc := km.KeycodeByName("NMLK")
	key := km.Key(kc)
	const mod2 = 1 << 4
	if key.RealModMap != mod2 {
		t.Errorf("NMLK.RealModMap = %#x, want %#x", key.RealModMap, mod2)
	}
	if key.VModMap != 1 {
		t.Errorf("NMLK.VModMap = %#x, want bit 0 set (NumLock)", key.VModMap)
	}
}

func TestCompileMultiGroupKeyWidthAndNumGroups(t *testing.T) {
	km := compileTestKeymap(t)
	kc := km.KeycodeByName("AC03")
	key := km.Key(kc)
	if key.NumGroups != 3 {
		t.Errorf("AC03.NumGroups = %d, want 3", key.NumGroups)
	}
	if key.Width != 2 {
		t.Errorf("AC03.Width = %d, want 2", key.Width)
	}
	if km.NumGroups != 3 {
		t.Errorf("Keymap.NumGroups = %d, want 3 (widest key)", km.NumGroups)
	}
}

func TestCompileFromSourceMissingSectionsAreSkipped(t *testing.T) {
	// A source with only keycodes still compiles: every other section is
	// optional (spec.md section 4.4's "missing sections are simply
	// skipped").
	km, sink, err := CompileFromSource("partial.xkb", `xkb_keycodes "p" { <AC01> = 38; };`, IncludePath{})
	if err != nil {
		t.Fatalf("CompileFromSource: %v", err)
	}
	if sink.Failed() {
		t.Fatalf("unexpected failure: %+v", sink.Messages)
	}
	if km.KeycodeByName("AC01") != 38 {
		t.Errorf("KeycodeByName(AC01) = %d, want 38", km.KeycodeByName("AC01"))
	}
}

// Alias re-declaration: re-declaring an alias under MergeAugment keeps
// the first target rather than overwriting it.
func TestCompileAliasAugmentKeepsFirst(t *testing.T) {
	src := `
xkb_keycodes "a" {
	<AC01> = 38;
	alias <HOME_ROW_1> = <AC01>;
	augment alias <HOME_ROW_1> = <AC02>;
};
`
	km, sink, err := CompileFromSource("alias.xkb", src, IncludePath{})
	if err != nil {
		t.Fatalf("CompileFromSource: %v", err)
	}
	if sink.Failed() {
		t.Fatalf("unexpected failure: %+v", sink.Messages)
	}
	if got := km.Aliases["HOME_ROW_1"]; got != "AC01" {
		t.Errorf("alias HOME_ROW_1 = %q, want %q (augment keeps first)", got, "AC01")
	}
}
