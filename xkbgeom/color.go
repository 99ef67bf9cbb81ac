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

// Package xkbgeom stores the optional physical geometry a keyboard
// description may declare: shapes, sections, rows, keys, doodads,
// overlays, colors, and aliases. Geometry is opaque to the state engine
// -- it is not consulted at runtime. Bounding rectangles are computed
// on demand by the Bounds methods; the compiler does not compute them.
package xkbgeom

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is a named or RGB geometry color, resolved at compile time from
// either a W3C/X11 color name or an "rgb:RR/GG/BB" literal.
type Color struct {
	Name    string
	R, G, B uint8
}

var namedColors = map[string]Color{
	"black":   {R: 0x00, G: 0x00, B: 0x00},
	"white":   {R: 0xff, G: 0xff, B: 0xff},
	"red":     {R: 0xff, G: 0x00, B: 0x00},
	"green":   {R: 0x00, G: 0xff, B: 0x00},
	"blue":    {R: 0x00, G: 0x00, B: 0xff},
	"yellow":  {R: 0xff, G: 0xff, B: 0x00},
	"cyan":    {R: 0x00, G: 0xff, B: 0xff},
	"magenta": {R: 0xff, G: 0x00, B: 0xff},
	"grey":    {R: 0xbe, G: 0xbe, B: 0xbe},
	"gray":    {R: 0xbe, G: 0xbe, B: 0xbe},
	"grey20":  {R: 0x33, G: 0x33, B: 0x33},
	"grey80":  {R: 0xcc, G: 0xcc, B: 0xcc},
}

// ParseColor resolves a geometry color statement's literal, either a
// named color (case-insensitively matched against the W3C/X11 table) or
// an "rgb:RR/GG/BB" form.
func ParseColor(lit string) (Color, error) {
	if c, ok := namedColors[strings.ToLower(lit)]; ok {
		c.Name = lit
		return c, nil
	}
	if strings.HasPrefix(lit, "rgb:") {
		parts := strings.Split(lit[len("rgb:"):], "/")
		if len(parts) != 3 {
			return Color{}, fmt.Errorf("xkbgeom: malformed rgb color %q", lit)
		}
		var vals [3]uint8
		for i, p := range parts {
			v, err := strconv.ParseUint(p, 16, 8)
			if err != nil {
				return Color{}, fmt.Errorf("xkbgeom: malformed rgb color %q: %w", lit, err)
			}
			vals[i] = uint8(v)
		}
		return Color{Name: lit, R: vals[0], G: vals[1], B: vals[2]}, nil
	}
	return Color{}, fmt.Errorf("xkbgeom: unknown color %q", lit)
}

// Distance returns the perceptual (CIE76) distance between two colors,
// used when snapping a declared color onto a fixed host palette.
func Distance(a, b Color) float64 {
	c1 := colorful.Color{R: float64(a.R) / 255, G: float64(a.G) / 255, B: float64(a.B) / 255}
	c2 := colorful.Color{R: float64(b.R) / 255, G: float64(b.G) / 255, B: float64(b.B) / 255}
	return c1.DistanceCIE76(c2)
}

// Nearest finds the closest color to c in palette, by CIE76 distance.
func Nearest(c Color, palette []Color) Color {
	if len(palette) == 0 {
		return c
	}
	best := palette[0]
	bestDist := Distance(c, best)
	for _, p := range palette[1:] {
		if d := Distance(c, p); d < bestDist {
			best, bestDist = p, d
		}
	}
	return best
}
