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
	"fmt"
	"strings"

	"github.com/xkbgo/xkbgo/diag"
	"github.com/xkbgo/xkbgo"
)

// sectionOrder is the fixed compilation order: keycodes must run before
// symbols (which resolves key names to keycodes), types before symbols
// (which looks up type names), and compat before symbols. The compat
// section's interprets are stored in km.Interprets; the compiler does
// not apply them to keys, so a key's actions and vmodmap bits come only
// from the symbols section.
var sectionOrder = []string{
	"xkb_keycodes", "xkb_types", "xkb_compat", "xkb_symbols", "xkb_geometry",
}

// ComponentNames names one source file (optionally "file(map)") per
// section, as produced by rules resolution (spec.md section 6).
type ComponentNames struct {
	Keycodes string
	Types    string
	Compat   string
	Symbols  string
	Geometry string
}

// CompileFromSource compiles a single in-memory source unit that
// contains one top-level section of each kind it declares (spec.md
// section 4.4). Missing sections are simply skipped; at minimum a
// complete keymap needs keycodes, types, compat, and symbols.
func CompileFromSource(file, src string, includePath IncludePath) (*xkb.Keymap, *diag.Sink, error) {
	f, err := NewParser(file, src).Parse()
	if err != nil {
		return nil, nil, err
	}
	return compileFile(f, includePath)
}

// CompileFromComponents loads and compiles each named component file
// from includePath, in the fixed section order, and returns the
// resulting keymap (spec.md section 6's RMLVO-resolved component set).
func CompileFromComponents(names ComponentNames, includePath IncludePath) (*xkb.Keymap, *diag.Sink, error) {
	km := xkb.NewKeymap()
	sink := &diag.Sink{}
	c := newContext(km, sink)

	specs := map[string]string{
		"xkb_keycodes": names.Keycodes,
		"xkb_types":    names.Types,
		"xkb_compat":   names.Compat,
		"xkb_symbols":  names.Symbols,
		"xkb_geometry": names.Geometry,
	}
	r := newResolver(includePath)

	for _, kind := range sectionOrder {
		raw := specs[kind]
		if raw == "" {
			continue
		}
		includeSpecs, err := parseIncludeString(raw)
		if err != nil {
			return nil, sink, err
		}
		var stmts []*Statement
		for _, spec := range includeSpecs {
			expanded, err := r.resolveOne(kind, spec)
			if err != nil {
				return nil, sink, err
			}
			stmts = append(stmts, expanded...)
		}
		if err := c.compileSection(kind, stmts); err != nil {
			return nil, sink, err
		}
		if sink.ShouldAbort() {
			return nil, sink, fmt.Errorf("xkbcomp: %s: %w", kind, xkb.ErrNoKeymap)
		}
	}

	c.resolveVirtualMods()
	c.finalizeTypeMasks()
	km.Freeze()
	if sink.Failed() {
		return nil, sink, xkb.ErrNoKeymap
	}
	return km, sink, nil
}

func compileFile(f *File, includePath IncludePath) (*xkb.Keymap, *diag.Sink, error) {
	km := xkb.NewKeymap()
	sink := &diag.Sink{}
	c := newContext(km, sink)
	r := newResolver(includePath)

	for _, kind := range sectionOrder {
		sec := findSection(f, kind, "")
		if sec == nil {
			continue
		}
		stmts, err := r.ResolveIncludes(kind, sec.Statements)
		if err != nil {
			return nil, sink, err
		}
		if err := c.compileSection(kind, stmts); err != nil {
			return nil, sink, err
		}
		if sink.ShouldAbort() {
			return nil, sink, fmt.Errorf("xkbcomp: %s: %w", kind, xkb.ErrNoKeymap)
		}
	}

	c.resolveVirtualMods()
	c.finalizeTypeMasks()
	km.Freeze()
	if sink.Failed() {
		return nil, sink, xkb.ErrNoKeymap
	}
	return km, sink, nil
}

func (c *context) compileSection(kind string, stmts []*Statement) error {
	switch kind {
	case "xkb_keycodes":
		c.compileKeycodes(stmts)
	case "xkb_types":
		c.compileTypes(stmts)
	case "xkb_compat":
		c.compileCompat(stmts)
	case "xkb_symbols":
		c.compileSymbols(stmts)
	case "xkb_geometry":
		c.compileGeometry("", stmts)
	default:
		return fmt.Errorf("xkbcomp: unknown section kind %q", kind)
	}
	return nil
}

// CanonicalizeComponentNames substitutes, for each of the five
// components, a leading "+prefix" (prepend old, new augments) or
// "|prefix" (prepend old, new overrides) and expands any "%" to old,
// against the previous component selection old (spec.md section 6:
// "canonicalise_component_names(old, names)"). A component with no such
// marker is returned trimmed and unchanged. Callers with no previous
// selection (e.g. a single-shot CompileFromRules) pass an empty
// ComponentNames{} as old, under which "+"/"|"/"%" all expand to "".
func CanonicalizeComponentNames(old, names ComponentNames) ComponentNames {
	canon := func(oldVal, s string) string {
		s = strings.TrimSpace(s)
		if s == "" {
			return s
		}
		switch s[0] {
		case '+', '|':
			s = oldVal + s
		}
		s = strings.ReplaceAll(s, "%", oldVal)
		return s
	}
	return ComponentNames{
		Keycodes: canon(old.Keycodes, names.Keycodes),
		Types:    canon(old.Types, names.Types),
		Compat:   canon(old.Compat, names.Compat),
		Symbols:  canon(old.Symbols, names.Symbols),
		Geometry: canon(old.Geometry, names.Geometry),
	}
}

// ListComponents reports the component file base names available under
// a given section subdirectory of includePath (spec.md section 6's
// component listing, used by configuration UIs to populate choices).
func ListComponents(includePath IncludePath, kind string) ([]string, error) {
	sub, ok := subdirForKind[kind]
	if !ok {
		return nil, fmt.Errorf("xkbcomp: no component directory for %q", kind)
	}
	seen := map[string]bool{}
	var names []string
	for _, root := range includePath {
		entries, err := listDir(root, sub)
		if err != nil {
			continue
		}
		for _, n := range entries {
			if !seen[n] {
				seen[n] = true
				names = append(names, n)
			}
		}
	}
	return names, nil
}
