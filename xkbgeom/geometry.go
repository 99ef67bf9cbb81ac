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

package xkbgeom

// Coord is a point in the geometry coordinate system. Units are tenths
// of a millimetre (the expr package's scaled-float convention, spec.md
// section 4.3) so that integer arithmetic suffices.
type Coord struct {
	X, Y int32
}

// Bounds is an axis-aligned bounding rectangle.
type Bounds struct {
	X1, Y1, X2, Y2 int32
}

// Union returns the smallest Bounds containing both b and o.
func (b Bounds) Union(o Bounds) Bounds {
	if o.X1 < b.X1 {
		b.X1 = o.X1
	}
	if o.Y1 < b.Y1 {
		b.Y1 = o.Y1
	}
	if o.X2 > b.X2 {
		b.X2 = o.X2
	}
	if o.Y2 > b.Y2 {
		b.Y2 = o.Y2
	}
	return b
}

// Translate shifts b by (dx, dy).
func (b Bounds) Translate(dx, dy int32) Bounds {
	return Bounds{b.X1 + dx, b.Y1 + dy, b.X2 + dx, b.Y2 + dy}
}

// Outline is a single closed polygon of points, belonging to a Shape.
type Outline struct {
	Points []Coord
}

// Bounds computes the outline's bounding rectangle. A degenerate
// (empty) outline has bounds (0,0,0,0), per spec.md section 4.6.
func (o Outline) Bounds() Bounds {
	if len(o.Points) == 0 {
		return Bounds{}
	}
	b := Bounds{o.Points[0].X, o.Points[0].Y, o.Points[0].X, o.Points[0].Y}
	for _, p := range o.Points[1:] {
		if p.X < b.X1 {
			b.X1 = p.X
		}
		if p.Y < b.Y1 {
			b.Y1 = p.Y
		}
		if p.X > b.X2 {
			b.X2 = p.X
		}
		if p.Y > b.Y2 {
			b.Y2 = p.Y
		}
	}
	return b
}

// Shape is a named outline (or set of alternate outlines, the first
// being primary) used by keys and doodads.
type Shape struct {
	Name     string
	Outlines []Outline
}

// Bounds returns the primary outline's bounding rectangle, or the zero
// Bounds for a shape with no outlines.
func (s Shape) Bounds() Bounds {
	if len(s.Outlines) == 0 {
		return Bounds{}
	}
	return s.Outlines[0].Bounds()
}

// Key is a single key's geometry placement within a Row.
type Key struct {
	Name      string // four-char key name, correlating to a Keymap key name
	Shape     string // shape name
	Color     string // color name
	Gap       int32  // horizontal gap before this key, tenths of mm
}

// Row is a horizontal (or vertical, if Vertical is set) run of keys.
type Row struct {
	Top      int32
	Left     int32
	Vertical bool
	Keys     []Key
}

// Bounds computes the row's bounding rectangle by walking its keys along
// the row's axis, accumulating each key's shape bounds and gap, per
// spec.md section 4.6.
func (r Row) Bounds(shapes map[string]Shape) Bounds {
	b := Bounds{r.Left, r.Top, r.Left, r.Top}
	pos := int32(0)
	if r.Vertical {
		pos = r.Top
	} else {
		pos = r.Left
	}
	for i, k := range r.Keys {
		sb := shapes[k.Shape].Bounds()
		if i > 0 {
			pos += k.Gap
		}
		var kb Bounds
		if r.Vertical {
			kb = sb.Translate(r.Left, pos)
			pos += sb.Y2 - sb.Y1
		} else {
			kb = sb.Translate(pos, r.Top)
			pos += sb.X2 - sb.X1
		}
		b = b.Union(kb)
	}
	return b
}

// Doodad is a decorative or informational element: text, a shape, an
// indicator, or a logo. Kind selects which of the remaining fields are
// meaningful; unused ones are simply zero.
type DoodadKind int

const (
	DoodadText DoodadKind = iota
	DoodadShape
	DoodadIndicator
	DoodadLogo
)

type Doodad struct {
	Name  string
	Kind  DoodadKind
	Top   int32
	Left  int32
	Text  string
	Shape string
	Color string
}

// Overlay maps an alternate key name onto an existing key within a
// section, for keyboards with multiple physical labels per key position.
type Overlay struct {
	Name string
	Keys map[string]string // base key name -> overlay key name
}

// Section is a named group of rows (and doodads) positioned within the
// overall geometry.
type Section struct {
	Name    string
	Top     int32
	Left    int32
	Width   int32 // 0 means "derive from bounds"
	Height  int32 // 0 means "derive from bounds"
	Rows    []Row
	Doodads []Doodad
	Overlays []Overlay
}

// Bounds computes the section's bounding rectangle as the union of its
// row bounds translated by the section origin; missing width/height
// default to the bounds' x2/y2 (spec.md section 4.6).
func (s *Section) Bounds(shapes map[string]Shape) Bounds {
	var b Bounds
	first := true
	for _, r := range s.Rows {
		rb := r.Bounds(shapes)
		if first {
			b, first = rb, false
		} else {
			b = b.Union(rb)
		}
	}
	b = b.Translate(s.Left, s.Top)
	if s.Width == 0 {
		s.Width = b.X2
	}
	if s.Height == 0 {
		s.Height = b.Y2
	}
	return b
}

// Geometry is the compiled physical geometry of a keyboard.
type Geometry struct {
	Name        string
	WidthMM     int32
	HeightMM    int32
	BaseColor   string
	LabelColor  string
	Shapes      map[string]Shape
	Sections    []Section
	Colors      map[string]Color
	Aliases     map[string]string
	Properties  map[string]string
}

// NewGeometry returns an empty, ready-to-populate Geometry.
func NewGeometry(name string) *Geometry {
	return &Geometry{
		Name:       name,
		Shapes:     make(map[string]Shape),
		Colors:     make(map[string]Color),
		Aliases:    make(map[string]string),
		Properties: make(map[string]string),
	}
}
