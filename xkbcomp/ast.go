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

// Package xkbcomp implements the keyboard-description compiler front
// end: lexical/syntactic recognition, include resolution, multi-section
// merging, and the five section compilers that populate a xkb.Keymap.
package xkbcomp

import "github.com/xkbgo/xkbgo/expr"

// MergeMode governs how a new definition combines with an existing one
// (spec.md section 4.5).
type MergeMode int

const (
	MergeDefault MergeMode = iota
	MergeAugment
	MergeOverride
	MergeReplace
	MergeAltForm // consulted only on keycode defs
)

// StmtKind identifies the kind of a parsed statement.
type StmtKind int

const (
	StmtInclude StmtKind = iota
	StmtVarDef
	StmtKeycodeDef
	StmtAliasDef
	StmtTypeDef
	StmtInterpDef
	StmtVModDef
	StmtSymbolsDef
	StmtModMapDef
	StmtGroupCompatDef
	StmtIndicatorNameDef
	StmtIndicatorMapDef
	StmtShapeDef
	StmtOutlineDef
	StmtRowDef
	StmtKeyDef
	StmtSectionDef
	StmtDoodadDef
	StmtOverlayDef
)

// IncludeSpec is one "file(map):group" component of an include string;
// multiple specs are chained with '+' (augment) or '|' (override).
type IncludeSpec struct {
	File  string
	Map   string
	Group int  // explicit group from the ":N" suffix, 0 means unset
	Op    byte // 0 for the first spec in a chain, '+' or '|' thereafter
}

// Statement is a single parsed statement. Rather than one Go type per
// production, a single tagged struct is used (mirroring the Action sum
// type's approach at the keymap layer) since most productions share the
// "element.field[index] = value" or "name { body }" shapes.
type Statement struct {
	Kind  StmtKind
	Merge MergeMode
	Line  int

	// include
	Includes []IncludeSpec

	// var def: Element.Field[Index] = Value
	Element string
	Field   string
	Index   *expr.Expr
	Value   *expr.Expr

	// keycode / alias def
	KeyName string // the <NAME> on the left
	Target  *expr.Expr // the value (keycode integer, or alias target keyname)

	// named block (type/interp/vmod/symbols/shape/section/indicator/...)
	Name string
	Body []*Statement

	// interp predicate: "keysym + Predicate ( mods )"
	Sym       string
	Predicate string
	PredMods  *expr.Expr

	// symbols key def: groups of keysym lists / action lists, by group index
	SymGroups    [][]*expr.Expr
	ActionGroups [][]*expr.Expr

	// geometry row/key
	Flag bool // e.g. vertical row
}

// Section is a top-level named file section.
type Section struct {
	Kind       string // "xkb_keycodes", "xkb_types", "xkb_compat", "xkb_symbols", "xkb_geometry", "xkb_keymap"
	Flags      []string
	Name       string
	Statements []*Statement
	Merge      MergeMode
}

// File is the parsed result of one source unit (one physical file,
// possibly recursively expanded through includes).
type File struct {
	Path     string
	Sections []*Section
}
