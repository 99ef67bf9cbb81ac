package xkb

import "testing"

func TestNewKeyNamePadsAndTruncates(t *testing.T) {
	kn := NewKeyName("AC")
	if got := kn.String(); got != "AC" {
		t.Errorf("String() = %q, want %q", got, "AC")
	}
	kn = NewKeyName("TOOLONG")
	if got := kn.String(); got != "TOOL" {
		t.Errorf("String() = %q, want %q", got, "TOOL")
	}
}

func TestKeyNameUint32(t *testing.T) {
	kn := NewKeyName("AD01")
	want := uint32('A')<<24 | uint32('D')<<16 | uint32('0')<<8 | uint32('1')
	if got := kn.Uint32(); got != want {
		t.Errorf("Uint32() = %#x, want %#x", got, want)
	}
}

func TestNewKeymapDefaults(t *testing.T) {
	km := NewKeymap()
	if km.MinKeycode != MinKeycode || km.MaxKeycode != MaxKeycode {
		t.Fatalf("got range [%d,%d] want [%d,%d]", km.MinKeycode, km.MaxKeycode, MinKeycode, MaxKeycode)
	}
	if len(km.KeyNames) != MaxKeycode+1 {
		t.Fatalf("got %d KeyNames want %d", len(km.KeyNames), MaxKeycode+1)
	}
	if km.Frozen() {
		t.Fatalf("freshly constructed keymap should not be frozen")
	}
}

func TestKeymapKeyGrowsArena(t *testing.T) {
	km := NewKeymap()
	km.MaxKeycode = 300
	k := km.Key(300)
	k.NumGroups = 1
	if len(km.Keys) < 301 {
		t.Fatalf("Key(300) did not grow arena, len=%d", len(km.Keys))
	}
	if km.Keys[300].NumGroups != 1 {
		t.Fatalf("mutation through Key() pointer did not persist")
	}
}

func TestKeymapFreezeIdempotent(t *testing.T) {
	km := NewKeymap()
	km.Freeze()
	km.Freeze()
	if !km.Frozen() {
		t.Fatalf("expected Frozen() to be true after Freeze()")
	}
}

func TestTypeByName(t *testing.T) {
	km := NewKeymap()
	km.Types = []KeyType{{Name: TypeOneLevel}, {Name: TypeTwoLevel}}
	if i := km.TypeByName(TypeTwoLevel); i != 1 {
		t.Errorf("TypeByName(%q) = %d, want 1", TypeTwoLevel, i)
	}
	if i := km.TypeByName("NOSUCH"); i != -1 {
		t.Errorf("TypeByName(missing) = %d, want -1", i)
	}
}

func TestResolveAliasChainAndCycle(t *testing.T) {
	km := NewKeymap()
	km.Aliases["LALT"] = "LMETA"
	km.Aliases["LMETA"] = "LWIN"
	if got := km.ResolveAlias("LALT"); got != "LWIN" {
		t.Errorf("ResolveAlias(LALT) = %q, want %q", got, "LWIN")
	}

	km.Aliases["X"] = "Y"
	km.Aliases["Y"] = "X"
	if got := km.ResolveAlias("X"); got != "X" && got != "Y" {
		t.Errorf("ResolveAlias on a cycle should terminate, got %q", got)
	}
}

func TestKeycodeByName(t *testing.T) {
	km := NewKeymap()
	km.KeyNames[38] = NewKeyName("AC01")
	km.Aliases["HOME_ROW_1"] = "AC01"

	if got := km.KeycodeByName("AC01"); got != 38 {
		t.Errorf("KeycodeByName(AC01) = %d, want 38", got)
	}
	if got := km.KeycodeByName("HOME_ROW_1"); got != 38 {
		t.Errorf("KeycodeByName(HOME_ROW_1) (via alias) = %d, want 38", got)
	}
	if got := km.KeycodeByName("NOSUCH"); got != 0 {
		t.Errorf("KeycodeByName(unassigned) = %d, want 0", got)
	}
}
