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
	"os"
	"path/filepath"

	"github.com/xkbgo/xkbgo/expr"
)

// subdirForKind maps a section kind to the directory name searched for
// its include files, following the five-directory layout of a standard
// component database (spec.md section 4.6).
var subdirForKind = map[string]string{
	"xkb_keycodes": "keycodes",
	"xkb_types":    "types",
	"xkb_compat":   "compat",
	"xkb_symbols":  "symbols",
	"xkb_geometry": "geometry",
}

// IncludePath is an ordered list of root directories searched for
// includes, each expected to contain the five subdirectories in
// subdirForKind.
type IncludePath []string

// DefaultIncludePath is consulted when the caller supplies none. It
// lists the directory named by the XKBGO_CONFIG_ROOT environment
// variable (when set) first, then /usr/share/X11/xkb and /etc/xkb.
func DefaultIncludePath() IncludePath {
	var path IncludePath
	if root := os.Getenv("XKBGO_CONFIG_ROOT"); root != "" {
		path = append(path, root)
	}
	path = append(path, "/usr/share/X11/xkb", "/etc/xkb")
	return path
}

// listDir returns the base file names directly inside root/sub, or an
// error if the directory cannot be read.
func listDir(root, sub string) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(root, sub))
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	return names, nil
}

func (ip IncludePath) find(kind, file string) (string, error) {
	sub, ok := subdirForKind[kind]
	if !ok {
		return "", fmt.Errorf("no include directory known for section kind %q", kind)
	}
	for _, root := range ip {
		cand := filepath.Join(root, sub, file)
		if st, err := os.Stat(cand); err == nil && !st.IsDir() {
			return cand, nil
		}
	}
	return "", fmt.Errorf("could not find %q in %q include directories", file, sub)
}

// resolver expands include statements within a section into the
// statements of the named map (or the section's default map) from the
// referenced file, applying the include's merge operator.
type resolver struct {
	path    IncludePath
	visited map[string]bool // guards against circular self-inclusion
}

func newResolver(path IncludePath) *resolver {
	return &resolver{path: path, visited: map[string]bool{}}
}

// ResolveIncludes walks sec.Statements, replacing each StmtInclude with
// the (recursively resolved) statements of the referenced file/map,
// merged according to the include operator ('+' augment, '|' override).
func (r *resolver) ResolveIncludes(kind string, statements []*Statement) ([]*Statement, error) {
	var out []*Statement
	for _, st := range statements {
		if st.Kind != StmtInclude {
			out = append(out, st)
			continue
		}
		for _, spec := range st.Includes {
			expanded, err := r.resolveOne(kind, spec)
			if err != nil {
				return nil, err
			}
			out = append(out, expanded...)
		}
	}
	return out, nil
}

func (r *resolver) resolveOne(kind string, spec IncludeSpec) ([]*Statement, error) {
	path, err := r.path.find(kind, spec.File)
	if err != nil {
		return nil, err
	}
	key := fmt.Sprintf("%s:%s", kind, path)
	if r.visited[key] {
		return nil, fmt.Errorf("circular include of %q detected", spec.File)
	}
	r.visited[key] = true
	defer delete(r.visited, key)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := NewParser(path, string(data)).Parse()
	if err != nil {
		return nil, err
	}
	sec := findSection(f, kind, spec.Map)
	if sec == nil {
		if spec.Map != "" {
			return nil, fmt.Errorf("map %q not found in %q", spec.Map, path)
		}
		return nil, fmt.Errorf("no %s section found in %q", kind, path)
	}
	stmts, err := r.ResolveIncludes(kind, sec.Statements)
	if err != nil {
		return nil, err
	}
	for _, s := range stmts {
		s.Merge = applyIncludeOp(s.Merge, spec.Op)
	}
	if spec.Group > 0 {
		forceGroup(stmts, spec.Group)
	}
	return stmts, nil
}

// forceGroup implements the include string's trailing ":N" suffix
// (spec.md section 4.4, section 4.6's symbols note: "Group index may be
// set globally by an include's :N suffix, forcing all groups in the
// included unit into slot N"): every key symbols statement's groups are
// collapsed onto 1-based target group n, discarding any other group the
// included unit itself declared.
func forceGroup(stmts []*Statement, n int) {
	target := n - 1
	for _, st := range stmts {
		if st.Kind != StmtSymbolsDef {
			continue
		}
		if len(st.SymGroups) > 0 {
			merged := st.SymGroups[0]
			for _, g := range st.SymGroups[1:] {
				if len(g) > len(merged) {
					merged = g
				}
			}
			groups := make([][]*expr.Expr, target+1)
			groups[target] = merged
			st.SymGroups = groups
		}
		if len(st.ActionGroups) > 0 {
			merged := st.ActionGroups[0]
			for _, g := range st.ActionGroups[1:] {
				if len(g) > len(merged) {
					merged = g
				}
			}
			groups := make([][]*expr.Expr, target+1)
			groups[target] = merged
			st.ActionGroups = groups
		}
	}
}

func findSection(f *File, kind, name string) *Section {
	var firstOfKind *Section
	for _, sec := range f.Sections {
		if sec.Kind != kind {
			continue
		}
		if firstOfKind == nil {
			firstOfKind = sec
		}
		if name != "" && sec.Name == name {
			return sec
		}
	}
	if name == "" {
		return firstOfKind
	}
	return nil
}

// applyIncludeOp combines the include operator with a statement's own
// merge mode: an explicit merge prefix on the statement always wins,
// otherwise the include chain's operator supplies the default.
func applyIncludeOp(existing MergeMode, op byte) MergeMode {
	if existing != MergeDefault {
		return existing
	}
	switch op {
	case '|':
		return MergeOverride
	case '+', 0:
		return MergeAugment
	}
	return MergeDefault
}
