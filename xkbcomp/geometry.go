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

import (
	"strings"

	"github.com/xkbgo/xkbgo/expr"
	"github.com/xkbgo/xkbgo/xkbgeom"
)

// compileGeometry populates km.Geometry from an xkb_geometry section
// (spec.md section 4.6). The outline and row sub-grammars implemented
// here are a pragmatic subset: outlines are written as a single
// "outline = [[x,y], [x,y], ...]" field and row key lists as
// "keys = [<A>, <B>, ...]", rather than the brace-delimited coordinate
// lists of the historical grammar, since both parse cleanly with the
// same bracketed-list expression the rest of the language already uses.
func (c *context) compileGeometry(name string, statements []*Statement) {
	geom := xkbgeom.NewGeometry(name)
	for _, st := range statements {
		switch st.Kind {
		case StmtVarDef:
			c.compileGeometryVar(geom, st)
		case StmtShapeDef:
			shape, err := compileShape(st)
			if err != nil {
				c.diag.Errorf("geometry: shape %q: %v", st.Name, err)
				continue
			}
			geom.Shapes[shape.Name] = shape
		case StmtSectionDef:
			sec, err := compileGeomSection(st)
			if err != nil {
				c.diag.Errorf("geometry: section %q: %v", st.Name, err)
				continue
			}
			geom.Sections = append(geom.Sections, sec)
		case StmtDoodadDef, StmtOverlayDef:
			// Decorative/overlay elements do not affect the compiled
			// state model; parsed for forward compatibility but not
			// retained (spec.md section 3's Non-goals on pointer
			// actions apply equally to purely cosmetic doodads).
		default:
			c.diag.Warnf("geometry: ignoring unsupported statement")
		}
	}
	c.km.Geometry = geom
}

func (c *context) compileGeometryVar(geom *xkbgeom.Geometry, st *Statement) {
	switch strings.ToLower(st.Field) {
	case "width":
		if v, err := expr.ResolveFloat(st.Value); err == nil {
			geom.WidthMM = v
		}
	case "height":
		if v, err := expr.ResolveFloat(st.Value); err == nil {
			geom.HeightMM = v
		}
	case "basecolor", "color":
		if v, err := expr.ResolveString(st.Value); err == nil {
			geom.BaseColor = v
		}
	case "labelcolor":
		if v, err := expr.ResolveString(st.Value); err == nil {
			geom.LabelColor = v
		}
	default:
		if v, err := expr.ResolveString(st.Value); err == nil {
			geom.Properties[st.Field] = v
		}
	}
}

func compileShape(st *Statement) (xkbgeom.Shape, error) {
	shape := xkbgeom.Shape{Name: st.Name}
	for _, f := range st.Body {
		if strings.ToLower(f.Field) != "outline" {
			continue
		}
		outline, err := compileOutline(f.Value)
		if err != nil {
			return shape, err
		}
		shape.Outlines = append(shape.Outlines, outline)
	}
	return shape, nil
}

func compileOutline(e *expr.Expr) (xkbgeom.Outline, error) {
	var outline xkbgeom.Outline
	if e == nil || e.Op != expr.OpKeysymList {
		return outline, nil
	}
	for _, pt := range e.Args {
		if pt.Op != expr.OpKeysymList || len(pt.Args) != 2 {
			continue
		}
		x, err := expr.ResolveFloat(pt.Args[0])
		if err != nil {
			return outline, err
		}
		y, err := expr.ResolveFloat(pt.Args[1])
		if err != nil {
			return outline, err
		}
		outline.Points = append(outline.Points, xkbgeom.Coord{X: x, Y: y})
	}
	return outline, nil
}

func compileGeomSection(st *Statement) (xkbgeom.Section, error) {
	sec := xkbgeom.Section{Name: st.Name}
	for _, f := range st.Body {
		switch {
		case f.Kind == StmtRowDef:
			row, err := compileRow(f)
			if err != nil {
				return sec, err
			}
			sec.Rows = append(sec.Rows, row)
		case f.Field != "":
			applySectionVar(&sec, f)
		}
	}
	return sec, nil
}

func applySectionVar(sec *xkbgeom.Section, f *Statement) {
	switch strings.ToLower(f.Field) {
	case "top":
		if v, err := expr.ResolveFloat(f.Value); err == nil {
			sec.Top = v
		}
	case "left":
		if v, err := expr.ResolveFloat(f.Value); err == nil {
			sec.Left = v
		}
	case "width":
		if v, err := expr.ResolveFloat(f.Value); err == nil {
			sec.Width = v
		}
	case "height":
		if v, err := expr.ResolveFloat(f.Value); err == nil {
			sec.Height = v
		}
	}
}

func compileRow(st *Statement) (xkbgeom.Row, error) {
	var row xkbgeom.Row
	for _, f := range st.Body {
		if f.Flag && strings.ToLower(f.Field) == "vertical" {
			row.Vertical = true
			continue
		}
		switch strings.ToLower(f.Field) {
		case "top":
			if v, err := expr.ResolveFloat(f.Value); err == nil {
				row.Top = v
			}
		case "left":
			if v, err := expr.ResolveFloat(f.Value); err == nil {
				row.Left = v
			}
		case "keys":
			keys, err := compileRowKeys(f.Value)
			if err != nil {
				return row, err
			}
			row.Keys = keys
		}
	}
	return row, nil
}

func compileRowKeys(e *expr.Expr) ([]xkbgeom.Key, error) {
	var keys []xkbgeom.Key
	if e == nil || e.Op != expr.OpKeysymList {
		return keys, nil
	}
	for _, item := range e.Args {
		name, err := expr.ResolveKeyName(item)
		if err != nil {
			continue
		}
		keys = append(keys, xkbgeom.Key{Name: name})
	}
	return keys, nil
}
