package keysym

import "testing"

func TestToRuneASCII(t *testing.T) {
	r, ok := ToRune(FromName("a"))
	if !ok || r != 'a' {
		t.Errorf("ToRune(a) = %q, %v, want 'a', true", r, ok)
	}
}

func TestToRuneUnicodeForm(t *testing.T) {
	r, ok := ToRune(FromName("U20AC"))
	if !ok || r != 0x20AC {
		t.Errorf("ToRune(U20AC) = %#x, %v, want 0x20ac, true", r, ok)
	}
}

func TestToRuneLegacyLatin2(t *testing.T) {
	// 0x01a1 is XK_Aogonek: the same code position as ISO 8859-2 byte
	// 0xa1, which decodes to U+0104 (LATIN CAPITAL LETTER A WITH OGONEK).
	r, ok := ToRune(Keysym(0x01a1))
	if !ok || r != 0x0104 {
		t.Errorf("ToRune(0x01a1) = %#x, %v, want U+0104, true", r, ok)
	}
}

func TestToRuneNoSymbol(t *testing.T) {
	if _, ok := ToRune(NoSymbol); ok {
		t.Errorf("ToRune(NoSymbol) should not resolve")
	}
}

func TestDisplayWidthASCII(t *testing.T) {
	if w := DisplayWidth(FromName("a")); w != 1 {
		t.Errorf("DisplayWidth(a) = %d, want 1", w)
	}
}

func TestDisplayWidthUnresolved(t *testing.T) {
	if w := DisplayWidth(FromName("Return")); w != 0 {
		t.Errorf("DisplayWidth(Return) = %d, want 0 (no printable rune)", w)
	}
}
