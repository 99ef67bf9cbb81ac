package keysym

import "testing"

func TestFromNameBasicLatin(t *testing.T) {
	cases := map[string]Keysym{
		"a":      0x61,
		"Z":      0x5a,
		"5":      0x35,
		"space":  0x0020,
		"Return": 0xff0d,
		"Escape": 0xff1b,
	}
	for name, want := range cases {
		if got := FromName(name); got != want {
			t.Errorf("FromName(%q) = %#x, want %#x", name, got, want)
		}
	}
}

func TestFromNameUnknown(t *testing.T) {
	if got := FromName("ThisIsNotAKeysym"); got != NoSymbol {
		t.Errorf("FromName(unknown) = %#x, want NoSymbol", got)
	}
}

func TestFromNameUnicodeForm(t *testing.T) {
	ks := FromName("U20AC")
	if ks == NoSymbol {
		t.Fatalf("FromName(U20AC) returned NoSymbol")
	}
	if String(ks) != "U20AC" {
		t.Errorf("String(%#x) = %q, want %q", uint32(ks), String(ks), "U20AC")
	}
}

func TestFromNameRawHexForm(t *testing.T) {
	ks := FromName("0x1008FF11")
	if ks != 0x1008ff11 {
		t.Errorf("FromName(0x1008FF11) = %#x, want 0x1008ff11", ks)
	}
}

func TestFromNameXF86Underscore(t *testing.T) {
	ks := FromName("XF86_AudioMute")
	if ks != FromName("XF86AudioMute") {
		t.Errorf("XF86_AudioMute should resolve the same as XF86AudioMute")
	}
}

func TestIsKeypad(t *testing.T) {
	if !IsKeypad(FromName("KP_5")) {
		t.Errorf("KP_5 should be reported as a keypad keysym")
	}
	if IsKeypad(FromName("5")) {
		t.Errorf("plain 5 should not be reported as a keypad keysym")
	}
}

func TestStringRoundTrip(t *testing.T) {
	for _, name := range []string{"a", "Return", "F1", "KP_Enter"} {
		ks := FromName(name)
		if ks == NoSymbol {
			t.Fatalf("FromName(%q) unexpectedly returned NoSymbol", name)
		}
		if got := String(ks); got != name {
			t.Errorf("String(FromName(%q)) = %q, want %q", name, got, name)
		}
	}
}

func TestStringNoSymbol(t *testing.T) {
	if got := String(NoSymbol); got != "NoSymbol" {
		t.Errorf("String(NoSymbol) = %q, want %q", got, "NoSymbol")
	}
}
