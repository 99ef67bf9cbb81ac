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

// Package keysym maps between symbolic keysym names (as they appear in
// xkb_symbols statements, e.g. "a", "Return", "XF86AudioRaiseVolume") and
// the 32-bit keysym codes a compiled keymap stores. Lookups are
// case-sensitive by canonical name.
package keysym

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Keysym is a 32-bit symbolic code denoting a character or function.
type Keysym uint32

// NoSymbol is returned for names that do not resolve to any keysym.
const NoSymbol Keysym = 0

// unicodeOffset is the base of the synthetic Unicode keysym range; a
// keysym of unicodeOffset|codepoint denotes the given Unicode codepoint.
const unicodeOffset = 0x01000000

var nameToKeysym map[string]Keysym
var keysymToName map[Keysym]string

func register(name string, ks Keysym) {
	nameToKeysym[name] = ks
	if _, ok := keysymToName[ks]; !ok {
		keysymToName[ks] = name
	}
}

func init() {
	nameToKeysym = make(map[string]Keysym, 512)
	keysymToName = make(map[Keysym]string, 512)

	// Latin-1 printable range: keysym code equals the Unicode codepoint
	// for 0x20-0xFF, exactly as the X11 keysym table defines it.
	ascii := []struct {
		name string
		ks   Keysym
	}{
		{"space", 0x0020}, {"exclam", 0x0021}, {"quotedbl", 0x0022},
		{"numbersign", 0x0023}, {"dollar", 0x0024}, {"percent", 0x0025},
		{"ampersand", 0x0026}, {"apostrophe", 0x0027}, {"parenleft", 0x0028},
		{"parenright", 0x0029}, {"asterisk", 0x002a}, {"plus", 0x002b},
		{"comma", 0x002c}, {"minus", 0x002d}, {"period", 0x002e},
		{"slash", 0x002f}, {"colon", 0x003a}, {"semicolon", 0x003b},
		{"less", 0x003c}, {"equal", 0x003d}, {"greater", 0x003e},
		{"question", 0x003f}, {"at", 0x0040}, {"bracketleft", 0x005b},
		{"backslash", 0x005c}, {"bracketright", 0x005d}, {"asciicircum", 0x005e},
		{"underscore", 0x005f}, {"grave", 0x0060}, {"braceleft", 0x007b},
		{"bar", 0x007c}, {"braceright", 0x007d}, {"asciitilde", 0x007e},
	}
	for _, e := range ascii {
		register(e.name, e.ks)
	}
	for c := '0'; c <= '9'; c++ {
		register(string(c), Keysym(c))
	}
	for c := 'a'; c <= 'z'; c++ {
		register(string(c), Keysym(c))
	}
	for c := 'A'; c <= 'Z'; c++ {
		register(string(c), Keysym(c))
	}

	named := []struct {
		name string
		ks   Keysym
	}{
		{"BackSpace", 0xff08}, {"Tab", 0xff09}, {"Linefeed", 0xff0a},
		{"Clear", 0xff0b}, {"Return", 0xff0d}, {"Pause", 0xff13},
		{"Scroll_Lock", 0xff14}, {"Sys_Req", 0xff15}, {"Escape", 0xff1b},
		{"Delete", 0xffff}, {"Multi_key", 0xff20},

		{"Home", 0xff50}, {"Left", 0xff51}, {"Up", 0xff52}, {"Right", 0xff53},
		{"Down", 0xff54}, {"Prior", 0xff55}, {"Page_Up", 0xff55},
		{"Next", 0xff56}, {"Page_Down", 0xff56}, {"End", 0xff57},
		{"Begin", 0xff58},

		{"Select", 0xff60}, {"Print", 0xff61}, {"Execute", 0xff62},
		{"Insert", 0xff63}, {"Undo", 0xff65}, {"Redo", 0xff66},
		{"Menu", 0xff67}, {"Find", 0xff68}, {"Cancel", 0xff69},
		{"Help", 0xff6a}, {"Break", 0xff6b}, {"Mode_switch", 0xff7e},
		{"Num_Lock", 0xff7f},

		{"KP_Space", 0xff80}, {"KP_Tab", 0xff89}, {"KP_Enter", 0xff8d},
		{"KP_F1", 0xff91}, {"KP_F2", 0xff92}, {"KP_F3", 0xff93}, {"KP_F4", 0xff94},
		{"KP_Home", 0xff95}, {"KP_Left", 0xff96}, {"KP_Up", 0xff97},
		{"KP_Right", 0xff98}, {"KP_Down", 0xff99}, {"KP_Prior", 0xff9a},
		{"KP_Page_Up", 0xff9a}, {"KP_Next", 0xff9b}, {"KP_Page_Down", 0xff9b},
		{"KP_End", 0xff9c}, {"KP_Begin", 0xff9d}, {"KP_Insert", 0xff9e},
		{"KP_Delete", 0xff9f}, {"KP_Equal", 0xffbd}, {"KP_Multiply", 0xffaa},
		{"KP_Add", 0xffab}, {"KP_Separator", 0xffac}, {"KP_Subtract", 0xffad},
		{"KP_Decimal", 0xffae}, {"KP_Divide", 0xffaf},
		{"KP_0", 0xffb0}, {"KP_1", 0xffb1}, {"KP_2", 0xffb2}, {"KP_3", 0xffb3},
		{"KP_4", 0xffb4}, {"KP_5", 0xffb5}, {"KP_6", 0xffb6}, {"KP_7", 0xffb7},
		{"KP_8", 0xffb8}, {"KP_9", 0xffb9},

		{"Shift_L", 0xffe1}, {"Shift_R", 0xffe2}, {"Control_L", 0xffe3},
		{"Control_R", 0xffe4}, {"Caps_Lock", 0xffe5}, {"Shift_Lock", 0xffe6},
		{"Meta_L", 0xffe7}, {"Meta_R", 0xffe8}, {"Alt_L", 0xffe9},
		{"Alt_R", 0xffea}, {"Super_L", 0xffeb}, {"Super_R", 0xffec},
		{"Hyper_L", 0xffed}, {"Hyper_R", 0xffee}, {"ISO_Level3_Shift", 0xfe03},
		{"ISO_Level5_Shift", 0xfe11},

		{"ISO_Left_Tab", 0xfe20},
	}
	for _, e := range named {
		register(e.name, e.ks)
	}
	for i := 0; i < 35; i++ {
		register(fmt.Sprintf("F%d", i+1), Keysym(0xffbe+i))
	}

	// A small, representative slice of the XF86 vendor extension names,
	// used heavily by media and application keys.
	xf86 := []struct {
		name string
		ks   Keysym
	}{
		{"XF86AudioLowerVolume", 0x1008ff11}, {"XF86AudioMute", 0x1008ff12},
		{"XF86AudioRaiseVolume", 0x1008ff13}, {"XF86AudioPlay", 0x1008ff14},
		{"XF86AudioStop", 0x1008ff15}, {"XF86AudioPrev", 0x1008ff16},
		{"XF86AudioNext", 0x1008ff17}, {"XF86HomePage", 0x1008ff18},
		{"XF86Search", 0x1008ff1b}, {"XF86Forward", 0x1008ff27},
		{"XF86Back", 0x1008ff26}, {"XF86Sleep", 0x1008ff2f},
	}
	for _, e := range xf86 {
		register(e.name, e.ks)
	}
}

// IsKeypad reports whether ks is one of the dedicated numeric-keypad
// keysyms (the "KP_" name family). Used by the symbols compiler's type
// inference (spec.md section 4.6, width-2 KEYPAD rule).
func IsKeypad(ks Keysym) bool {
	name, ok := keysymToName[ks]
	return ok && strings.HasPrefix(name, "KP_")
}

// IsLower reports whether ks denotes a lowercase letter (grounded on
// original_source/src/xkbcomp/symbols.c's XkbcKSIsLower, used by the
// same type-inference recipe as IsKeypad).
func IsLower(ks Keysym) bool {
	r, ok := ToRune(ks)
	return ok && unicode.IsLower(r)
}

// IsUpper reports whether ks denotes an uppercase letter (XkbcKSIsUpper
// in the original).
func IsUpper(ks Keysym) bool {
	r, ok := ToRune(ks)
	return ok && unicode.IsUpper(r)
}

// FromName resolves a keysym name to its code. Unknown names map to
// NoSymbol. In addition to the name table, three synthetic forms are
// recognized: "U<hex>" for a Unicode codepoint, "0x<hex>" for a raw
// keysym value, and (as a final retry) an "XF86_"-prefixed name with
// the underscore stripped.
func FromName(s string) Keysym {
	if ks, ok := nameToKeysym[s]; ok {
		return ks
	}
	if ks, ok := fromUnicodeForm(s); ok {
		return ks
	}
	if ks, ok := fromRawHexForm(s); ok {
		return ks
	}
	if strings.HasPrefix(s, "XF86_") {
		if ks, ok := nameToKeysym["XF86"+s[len("XF86_"):]]; ok {
			return ks
		}
	}
	return NoSymbol
}

func fromUnicodeForm(s string) (Keysym, bool) {
	if len(s) < 2 || s[0] != 'U' {
		return NoSymbol, false
	}
	hex := s[1:]
	if _, err := strconv.ParseUint(hex, 16, 32); err != nil {
		return NoSymbol, false
	}
	cp, _ := strconv.ParseUint(hex, 16, 32)
	if cp > 0x10FFFF {
		return NoSymbol, false
	}
	if cp < 0x20 || (cp >= 0x80 && cp < 0xa0) {
		// ASCII/Latin-1 control ranges are rejected.
		return NoSymbol, false
	}
	return Keysym(unicodeOffset | cp), true
}

func fromRawHexForm(s string) (Keysym, bool) {
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		return NoSymbol, false
	}
	v, err := strconv.ParseUint(s[2:], 16, 32)
	if err != nil {
		return NoSymbol, false
	}
	return Keysym(v), true
}

// String formats ks using the same rules the original keysym table uses:
// a known atom emits its canonical name, a codepoint in the Unicode
// synthetic range emits "U<hex>", NoSymbol emits "NoSymbol", and anything
// else emits "0x%08x".
func String(ks Keysym) string {
	if ks == NoSymbol {
		return "NoSymbol"
	}
	if name, ok := keysymToName[ks]; ok {
		return name
	}
	if ks >= 0x01000100 && ks <= 0x0110FFFF {
		return fmt.Sprintf("U%04X", uint32(ks)&^unicodeOffset)
	}
	return fmt.Sprintf("0x%08x", uint32(ks))
}
