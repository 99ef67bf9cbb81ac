package expr

import "testing"

func TestResolveIntArithmetic(t *testing.T) {
	e := Binary(OpAdd, Int(2), Binary(OpMultiply, Int(3), Int(4)))
	v, err := ResolveInt(e)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != 14 {
		t.Fatalf("got %d want 14", v)
	}
}

func TestResolveIntDivideByZero(t *testing.T) {
	e := Binary(OpDivide, Int(1), Int(0))
	if _, err := ResolveInt(e); err == nil {
		t.Fatalf("expected error dividing by zero")
	}
}

func TestResolveFloatScaling(t *testing.T) {
	v, err := ResolveFloat(Float32(1.5))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != 15 {
		t.Fatalf("got %d want 15", v)
	}
	v, err = ResolveFloat(Int(2))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != 20 {
		t.Fatalf("got %d want 20", v)
	}
}

func TestResolveBoolean(t *testing.T) {
	cases := []struct {
		e    *Expr
		want bool
	}{
		{Int(0), false},
		{Int(1), true},
		{Ident("true"), true},
		{Ident("no"), false},
		{Unary(OpNot, Ident("true")), false},
	}
	for _, c := range cases {
		got, err := ResolveBoolean(c.e)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != c.want {
			t.Fatalf("got %v want %v", got, c.want)
		}
	}
}

func TestResolveString(t *testing.T) {
	e := Binary(OpAdd, Str("foo"), Str("bar"))
	got, err := ResolveString(e)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "foobar" {
		t.Fatalf("got %q want %q", got, "foobar")
	}
	if _, err := ResolveString(Binary(OpMultiply, Str("a"), Str("b"))); err == nil {
		t.Fatalf("expected error multiplying strings")
	}
}

func TestResolveModMask(t *testing.T) {
	lookup := func(name string) (uint32, bool, bool) {
		switch name {
		case "Shift":
			return 1, false, true
		case "Lock":
			return 2, false, true
		case "NumLock":
			return 1 << 8, true, true
		}
		return 0, false, false
	}
	e := Binary(OpAdd, Ident("Shift"), Ident("Lock"))
	got, err := ResolveModMask(e, lookup)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 3 {
		t.Fatalf("got %#x want 0x3", got)
	}
	if v, _ := ResolveModMask(Ident("all"), lookup); v != 0xff {
		t.Fatalf("all should resolve to 0xff, got %#x", v)
	}
	if v, _ := ResolveModMask(Ident("none"), lookup); v != 0 {
		t.Fatalf("none should resolve to 0, got %#x", v)
	}
}

func TestResolveGroupAndLevel(t *testing.T) {
	g, err := ResolveGroup(Int(2))
	if err != nil || g != 1 {
		t.Fatalf("got (%d,%v) want (1,nil)", g, err)
	}
	if _, err := ResolveGroup(Int(5)); err == nil {
		t.Fatalf("expected error for out-of-range group")
	}
	l, err := ResolveLevel(Int(1))
	if err != nil || l != 0 {
		t.Fatalf("got (%d,%v) want (0,nil)", l, err)
	}
}

func TestResolveKeysym(t *testing.T) {
	lookup := func(name string) (uint32, bool) {
		if name == "Return" {
			return 0xff0d, true
		}
		return 0, false
	}
	v, err := ResolveKeysym(Ident("Return"), lookup)
	if err != nil || v != 0xff0d {
		t.Fatalf("got (%#x,%v) want (0xff0d,nil)", v, err)
	}
	if _, err := ResolveKeysym(Ident("Bogus"), lookup); err == nil {
		t.Fatalf("expected error for unknown keysym name")
	}
}
