package xkbgeom

import "testing"

func TestBoundsUnion(t *testing.T) {
	a := Bounds{X1: 0, Y1: 0, X2: 10, Y2: 10}
	b := Bounds{X1: -5, Y1: 2, X2: 6, Y2: 20}
	got := a.Union(b)
	want := Bounds{X1: -5, Y1: 0, X2: 10, Y2: 20}
	if got != want {
		t.Errorf("Union = %+v, want %+v", got, want)
	}
}

func TestBoundsTranslate(t *testing.T) {
	b := Bounds{X1: 0, Y1: 0, X2: 10, Y2: 10}
	got := b.Translate(5, -3)
	want := Bounds{X1: 5, Y1: -3, X2: 15, Y2: 7}
	if got != want {
		t.Errorf("Translate = %+v, want %+v", got, want)
	}
}

func TestOutlineBoundsEmpty(t *testing.T) {
	var o Outline
	if got := o.Bounds(); got != (Bounds{}) {
		t.Errorf("empty outline Bounds = %+v, want zero value", got)
	}
}

func TestOutlineBounds(t *testing.T) {
	o := Outline{Points: []Coord{{0, 0}, {100, 0}, {100, 50}, {0, 50}}}
	got := o.Bounds()
	want := Bounds{X1: 0, Y1: 0, X2: 100, Y2: 50}
	if got != want {
		t.Errorf("Bounds = %+v, want %+v", got, want)
	}
}

func TestShapeBoundsUsesPrimaryOutline(t *testing.T) {
	s := Shape{
		Name: "NORM",
		Outlines: []Outline{
			{Points: []Coord{{0, 0}, {150, 0}, {150, 150}, {0, 150}}},
			{Points: []Coord{{0, 0}, {300, 0}, {300, 150}, {0, 150}}},
		},
	}
	got := s.Bounds()
	want := Bounds{X1: 0, Y1: 0, X2: 150, Y2: 150}
	if got != want {
		t.Errorf("Bounds = %+v, want %+v", got, want)
	}
}

func TestRowBoundsHorizontal(t *testing.T) {
	shapes := map[string]Shape{
		"NORM": {Outlines: []Outline{{Points: []Coord{{0, 0}, {100, 0}, {100, 100}, {0, 100}}}}},
	}
	row := Row{
		Top:  10,
		Left: 20,
		Keys: []Key{
			{Name: "AC01", Shape: "NORM"},
			{Name: "AC02", Shape: "NORM", Gap: 5},
		},
	}
	got := row.Bounds(shapes)
	if got.X1 != 20 || got.Y1 != 10 {
		t.Errorf("row bounds origin = (%d,%d), want (20,10)", got.X1, got.Y1)
	}
	if got.X2 != 20+100+5+100 {
		t.Errorf("row bounds X2 = %d, want %d", got.X2, 20+100+5+100)
	}
}

func TestSectionBoundsDerivesSize(t *testing.T) {
	shapes := map[string]Shape{
		"NORM": {Outlines: []Outline{{Points: []Coord{{0, 0}, {100, 0}, {100, 100}, {0, 100}}}}},
	}
	sec := &Section{
		Name: "ALPHA",
		Rows: []Row{
			{Keys: []Key{{Name: "AC01", Shape: "NORM"}}},
		},
	}
	sec.Bounds(shapes)
	if sec.Width == 0 || sec.Height == 0 {
		t.Errorf("expected Section.Bounds to derive non-zero Width/Height, got %dx%d", sec.Width, sec.Height)
	}
}

func TestNewGeometryInitializesMaps(t *testing.T) {
	g := NewGeometry("test")
	if g.Shapes == nil || g.Colors == nil || g.Aliases == nil || g.Properties == nil {
		t.Fatalf("NewGeometry left a nil map: %+v", g)
	}
	if g.Name != "test" {
		t.Errorf("Name = %q, want %q", g.Name, "test")
	}
}
