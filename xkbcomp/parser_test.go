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

import "testing"

func TestParseFlatSections(t *testing.T) {
	src := `
xkb_keycodes "a" { <AC01> = 38; };
xkb_types "b" { virtual_modifiers NumLock; };
`
	f, err := NewParser("test", src).Parse()
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(f.Sections) != 2 {
		t.Fatalf("got %d sections, want 2", len(f.Sections))
	}
	if f.Sections[0].Kind != "xkb_keycodes" || f.Sections[1].Kind != "xkb_types" {
		t.Fatalf("unexpected section kinds: %q, %q", f.Sections[0].Kind, f.Sections[1].Kind)
	}
}

// A source using the xkb_keymap wrapper form must flatten its nested
// sections into File.Sections exactly as the flat top-level form does,
// since findSection (used by compileFile) only ever looks for the five
// concrete component kinds.
func TestParseNestedKeymapContainerFlattens(t *testing.T) {
	src := `
xkb_keymap "full" {
	xkb_keycodes "a" { <AC01> = 38; };
	xkb_types "b" { virtual_modifiers NumLock; };
	xkb_compat "c" { };
	xkb_symbols "d" { key <AC01> { type = "ALPHABETIC", symbols[Group1] = [ a, A ] }; };
};
`
	f, err := NewParser("test", src).Parse()
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(f.Sections) != 4 {
		t.Fatalf("got %d sections, want 4 (flattened), sections=%+v", len(f.Sections), f.Sections)
	}
	wantKinds := []string{"xkb_keycodes", "xkb_types", "xkb_compat", "xkb_symbols"}
	for i, want := range wantKinds {
		if f.Sections[i].Kind != want {
			t.Errorf("section %d kind = %q, want %q", i, f.Sections[i].Kind, want)
		}
	}
	if sec := findSection(f, "xkb_symbols", ""); sec == nil {
		t.Fatalf("findSection did not locate the flattened xkb_symbols section")
	}
}

func TestParseIncludeStringChain(t *testing.T) {
	specs, err := parseIncludeString(`us(basic)+iso9995|intl:2`)
	if err != nil {
		t.Fatalf("parseIncludeString: %v", err)
	}
	if len(specs) != 3 {
		t.Fatalf("got %d specs, want 3", len(specs))
	}
	if specs[0].File != "us" || specs[0].Map != "basic" || specs[0].Op != 0 {
		t.Errorf("spec[0] = %+v", specs[0])
	}
	if specs[1].File != "iso9995" || specs[1].Op != '+' {
		t.Errorf("spec[1] = %+v", specs[1])
	}
	if specs[2].File != "intl" || specs[2].Group != 2 || specs[2].Op != '|' {
		t.Errorf("spec[2] = %+v", specs[2])
	}
}

func TestApplyIncludeOpOverrideWins(t *testing.T) {
	if got := applyIncludeOp(MergeAugment, '|'); got != MergeOverride {
		t.Errorf("applyIncludeOp(Augment, '|') = %v, want MergeOverride", got)
	}
	if got := applyIncludeOp(MergeReplace, '+'); got != MergeReplace {
		t.Errorf("an explicit existing statement merge mode must win over the include operator, got %v", got)
	}
	if got := applyIncludeOp(MergeDefault, '+'); got != MergeAugment {
		t.Errorf("applyIncludeOp(Default, '+') = %v, want MergeAugment", got)
	}
}
