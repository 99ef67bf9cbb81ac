// Copyright 2025 The TCell Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use file except in compliance with the License.
// You may obtain a copy of the license at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package keysym

import (
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/width"
)

// legacyBlock identifies one of the pre-Unicode X11 "publishing" keysym
// pages: a keysym in [base, base+0x100) encodes the same code position
// as the matching byte of the named ISO 8859 part, not a Unicode
// codepoint directly. Host toolkits still emit these for legacy
// layouts (Polish/Czech "latin2", Turkish "latin3"/"latin5", Baltic
// "latin4" keymaps) predating Unicode unification.
type legacyBlock struct {
	base uint32
	dec  *charmap.Charmap
}

var legacyBlocks = []legacyBlock{
	{0x0100, charmap.ISO8859_2}, // XK_latin2
	{0x0200, charmap.ISO8859_3}, // XK_latin3
	{0x0300, charmap.ISO8859_4}, // XK_latin4
}

// ToRune returns the Unicode codepoint a keysym denotes, when one
// exists: the Latin-1 printable range and the synthetic Unicode form
// both carry the codepoint directly in the low bits, and the legacy
// Latin-2/3/4 "publishing" keysym pages are decoded through the
// matching ISO 8859 part via golang.org/x/text/encoding/charmap, the
// same family of codecs xkbcommon's ks_tables.h hard-codes by hand.
// Used by hosts rendering a key's effective character (mirrors
// xkbcommon's xkb_keysym_to_utf32, which this spec's component list
// omits but every consumer of a compiled keymap needs).
func ToRune(ks Keysym) (rune, bool) {
	switch {
	case ks == NoSymbol:
		return 0, false
	case ks >= 0x20 && ks <= 0xff:
		return rune(ks), true
	case ks >= unicodeOffset && ks <= 0x0110FFFF:
		return rune(ks &^ unicodeOffset), true
	}
	for _, b := range legacyBlocks {
		if ks < Keysym(b.base) || ks >= Keysym(b.base)+0x100 {
			continue
		}
		lo := byte(ks & 0xff)
		if lo < 0xa0 {
			continue
		}
		if r := b.dec.DecodeByte(lo); r != utf8.RuneError {
			return r, true
		}
	}
	return 0, false
}

// DisplayWidth reports how many terminal cells the keysym's rune
// occupies, when it denotes a printable character: 2 for East-Asian
// Wide/Fullwidth forms, 1 otherwise (golang.org/x/text/width
// classification). Hosts that lay out an on-screen keyboard legend use
// this the same way a terminal emulator sizes a rendered glyph cell.
func DisplayWidth(ks Keysym) int {
	r, ok := ToRune(ks)
	if !ok {
		return 0
	}
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return 2
	default:
		return 1
	}
}
