package atom

import "testing"

func TestInternIdempotent(t *testing.T) {
	tbl := NewTable()
	a1 := tbl.Intern("Shift")
	a2 := tbl.Intern("Shift")
	if a1 != a2 {
		t.Fatalf("intern not idempotent: %d != %d", a1, a2)
	}
	if tbl.Lookup(a1) != "Shift" {
		t.Fatalf("lookup mismatch: %s", tbl.Lookup(a1))
	}
}

func TestInternEmpty(t *testing.T) {
	tbl := NewTable()
	if a := tbl.Intern(""); a != NONE {
		t.Fatalf("empty string should intern to NONE, got %d", a)
	}
	if s := tbl.Lookup(NONE); s != "" {
		t.Fatalf("NONE should look up to empty string, got %q", s)
	}
}

func TestInternDistinct(t *testing.T) {
	tbl := NewTable()
	a := tbl.Intern("AC01")
	b := tbl.Intern("AC02")
	if a == b {
		t.Fatalf("distinct strings interned to same atom")
	}
}

func TestTableFunc(t *testing.T) {
	names := map[string]Atom{"x": 1}
	rev := map[Atom]string{1: "x"}
	tbl := NewTableFunc(
		func(s string) Atom { return names[s] },
		func(a Atom) string { return rev[a] },
	)
	if tbl.Intern("x") != 1 {
		t.Fatalf("host intern not used")
	}
	if tbl.Lookup(1) != "x" {
		t.Fatalf("host lookup not used")
	}
}
