package rules

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleRules = `
// comment
! model = keycodes
  pc104 = pc(pc104)
  *     = pc(pc104)

! model layout = symbols
  pc104 us = pc(pc104)+us
  *    *   = pc(pc104)+us

! option = symbols
  grp:alt_shift_toggle = +grp(alt_shift_toggle)
  ctrl:nocaps          = +ctrl(nocaps)
`

func writeRulesFile(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("WriteFile(%q): %v", path, err)
	}
	return path
}

func TestLoadAndParseSections(t *testing.T) {
	dir := t.TempDir()
	path := writeRulesFile(t, dir, "evdev", sampleRules)

	rs, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(rs.sections) != 3 {
		t.Fatalf("got %d sections want 3", len(rs.sections))
	}

	rs2, err := Load(path)
	if err != nil {
		t.Fatalf("Load (cached): %v", err)
	}
	if rs != rs2 {
		t.Fatalf("expected cached RuleSet to be the same pointer")
	}
}

func TestLoadWithInclude(t *testing.T) {
	dir := t.TempDir()
	writeRulesFile(t, dir, "base", sampleRules)
	writeRulesFile(t, dir, "evdev", "! include base\n")

	rs, err := Load(filepath.Join(dir, "evdev"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(rs.sections) != 3 {
		t.Fatalf("got %d sections want 3 after include", len(rs.sections))
	}
}

func TestLoadCircularIncludeFails(t *testing.T) {
	dir := t.TempDir()
	writeRulesFile(t, dir, "a", "! include b\n")
	writeRulesFile(t, dir, "b", "! include a\n")

	if _, err := Load(filepath.Join(dir, "a")); err == nil {
		t.Fatalf("expected circular include error")
	}
}

func TestResolveModelAndLayout(t *testing.T) {
	dir := t.TempDir()
	path := writeRulesFile(t, dir, "evdev", sampleRules)
	rs, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	names, err := rs.Resolve(RMLVO{Model: "pc104", Layout: "us"})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if names.Keycodes != "pc(pc104)" {
		t.Fatalf("got keycodes %q want %q", names.Keycodes, "pc(pc104)")
	}
	if names.Symbols != "pc(pc104)+us" {
		t.Fatalf("got symbols %q want %q", names.Symbols, "pc(pc104)+us")
	}
}

func TestResolveOptionsAccumulate(t *testing.T) {
	dir := t.TempDir()
	path := writeRulesFile(t, dir, "evdev", sampleRules)
	rs, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	names, err := rs.Resolve(RMLVO{
		Model:   "pc104",
		Layout:  "us",
		Option:  "grp:alt_shift_toggle,ctrl:nocaps",
	})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	want := "pc(pc104)+us+grp(alt_shift_toggle)+ctrl(nocaps)"
	if names.Symbols != want {
		t.Fatalf("got symbols %q want %q", names.Symbols, want)
	}
}

func TestMatchValueWildcardAndAlternatives(t *testing.T) {
	rs := &RuleSet{groups: map[string][]string{"pcgroup": {"pc104", "pc105"}}}
	if !rs.matchValue("*", "anything") {
		t.Fatalf("wildcard should match non-empty value")
	}
	if rs.matchValue("*", "") {
		t.Fatalf("wildcard should not match empty value")
	}
	if !rs.matchValue("us,gb,de", "gb") {
		t.Fatalf("comma alternatives should match member")
	}
	if rs.matchValue("us,gb,de", "fr") {
		t.Fatalf("comma alternatives should not match non-member")
	}
	if !rs.matchValue("$pcgroup", "pc105") {
		t.Fatalf("$-group pattern should match a group member")
	}
	if rs.matchValue("$pcgroup", "pc101") {
		t.Fatalf("$-group pattern should not match a non-member")
	}
}

func TestExpandPercent(t *testing.T) {
	rmlvo := RMLVO{Layout: "us", Variant: "dvorak", Model: "pc104"}
	got := expandPercent("pc(%m)+%l(%v)", rmlvo, "")
	want := "pc(pc104)+us(dvorak)"
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}
