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
	"strconv"
	"strings"

	"github.com/xkbgo/xkbgo/expr"
)

// Parser recognizes the nested block language described by spec.md
// section 4.4 and produces a File whose statement order within a
// section is preserved (so that merging respects source order).
type Parser struct {
	lex  *Lexer
	file string
	tok  Tok
	err  error
}

func NewParser(file, src string) *Parser {
	p := &Parser{lex: NewLexer(file, src), file: file}
	p.advance()
	return p
}

func (p *Parser) advance() {
	if p.err != nil {
		return
	}
	t, err := p.lex.Next()
	if err != nil {
		p.err = err
		return
	}
	p.tok = t
}

func (p *Parser) errorf(format string, args ...any) error {
	return fmt.Errorf("%s:%d: %s", p.file, p.tok.Line, fmt.Sprintf(format, args...))
}

func (p *Parser) isPunct(s string) bool {
	return p.tok.Kind == TokPunct && p.tok.Text == s
}

func (p *Parser) expectPunct(s string) error {
	if !p.isPunct(s) {
		return p.errorf("expected %q, got %q", s, p.tok.Text)
	}
	p.advance()
	return nil
}

func (p *Parser) isIdent(s string) bool {
	return p.tok.Kind == TokIdent && strings.EqualFold(p.tok.Text, s)
}

// Parse parses the full source text into a File. A top-level
// "xkb_keymap" container is flattened: its nested xkb_keycodes/
// xkb_types/xkb_compat/xkb_symbols/xkb_geometry blocks are appended to
// File.Sections directly, since every other stage (compile.go's
// findSection, ListComponents) looks for those five concrete kinds
// by name and has no notion of a wrapping keymap section.
func (p *Parser) Parse() (*File, error) {
	f := &File{Path: p.file}
	for p.tok.Kind != TokEOF {
		if p.err != nil {
			return nil, p.err
		}
		secs, err := p.parseTopLevel()
		if err != nil {
			return nil, err
		}
		f.Sections = append(f.Sections, secs...)
		if p.isPunct(";") {
			p.advance()
		}
	}
	if p.err != nil {
		return nil, p.err
	}
	return f, nil
}

var sectionKinds = map[string]bool{
	"xkb_keymap": true, "xkb_keycodes": true, "xkb_types": true,
	"xkb_compat": true, "xkb_symbols": true, "xkb_geometry": true,
}

var flagWords = map[string]bool{
	"default": true, "partial": true, "hidden": true, "augment": true,
	"override": true, "replace": true, "alternate": true,
}

// parseTopLevel parses one section header and body. For the five
// concrete component kinds this returns a single-element slice holding
// the parsed Section, same as before; for "xkb_keymap" the body is
// itself a sequence of nested sections, which are parsed recursively
// and returned directly (the container itself is never represented as
// a Section, since nothing downstream looks one up by that kind).
func (p *Parser) parseTopLevel() ([]*Section, error) {
	var flags []string
	for p.tok.Kind == TokIdent && flagWords[strings.ToLower(p.tok.Text)] {
		flags = append(flags, strings.ToLower(p.tok.Text))
		p.advance()
	}
	if p.tok.Kind != TokIdent || !sectionKinds[p.tok.Text] {
		return nil, p.errorf("expected section kind, got %q", p.tok.Text)
	}
	kind := p.tok.Text
	p.advance()
	var name string
	if p.tok.Kind == TokString {
		name = p.tok.Text
		p.advance()
	}
	if err := p.expectPunct("{"); err != nil {
		return nil, err
	}
	if kind != "xkb_keymap" {
		var stmts []*Statement
		for !p.isPunct("}") {
			if p.tok.Kind == TokEOF {
				return nil, p.errorf("unexpected EOF in section %q", kind)
			}
			st, err := p.parseStatement()
			if err != nil {
				return nil, err
			}
			if st != nil {
				stmts = append(stmts, st)
			}
			if p.isPunct(";") {
				p.advance()
			}
		}
		p.advance() // consume '}'
		return []*Section{{Kind: kind, Flags: flags, Name: name, Statements: stmts}}, nil
	}
	var nested []*Section
	for !p.isPunct("}") {
		if p.tok.Kind == TokEOF {
			return nil, p.errorf("unexpected EOF in section %q", kind)
		}
		secs, err := p.parseTopLevel()
		if err != nil {
			return nil, err
		}
		nested = append(nested, secs...)
		if p.isPunct(";") {
			p.advance()
		}
	}
	p.advance() // consume '}'
	return nested, nil
}

func (p *Parser) parseMergePrefix() MergeMode {
	if p.tok.Kind == TokIdent {
		switch strings.ToLower(p.tok.Text) {
		case "augment":
			p.advance()
			return MergeAugment
		case "override":
			p.advance()
			return MergeOverride
		case "replace":
			p.advance()
			return MergeReplace
		case "alternate":
			p.advance()
			return MergeAltForm
		}
	}
	return MergeDefault
}

func (p *Parser) parseStatement() (*Statement, error) {
	merge := p.parseMergePrefix()
	line := p.tok.Line

	switch {
	case p.isIdent("include"):
		p.advance()
		return p.parseInclude(merge, line)
	case p.isIdent("type"):
		p.advance()
		return p.parseTypeDef(merge, line)
	case p.isIdent("interpret"):
		p.advance()
		return p.parseInterpDef(merge, line)
	case p.isIdent("virtual_modifiers"):
		p.advance()
		return p.parseVModDef(merge, line)
	case p.isIdent("key"):
		p.advance()
		return p.parseKeySymbolsDef(merge, line)
	case p.isIdent("alias"):
		p.advance()
		return p.parseAliasDef(merge, line)
	case p.isIdent("modifier_map"):
		p.advance()
		return p.parseModMapDef(merge, line)
	case p.isIdent("group"):
		return p.parseGroupCompatDef(merge, line)
	case p.isIdent("indicator"):
		p.advance()
		return p.parseIndicatorDef(merge, line)
	case p.isIdent("shape"):
		p.advance()
		return p.parseShapeDef(merge, line)
	case p.isIdent("section"):
		p.advance()
		return p.parseSectionGeomDef(merge, line)
	case p.isIdent("overlay"):
		p.advance()
		return p.parseOverlayDef(merge, line)
	case p.isIdent("row"):
		p.advance()
		return p.parseRowDef(merge, line)
	case p.isIdent("doodad"):
		p.advance()
		return p.parseDoodadDef(merge, line)
	case p.tok.Kind == TokKeyName:
		return p.parseKeycodeDef(merge, line)
	default:
		return p.parseVarDef(merge, line)
	}
}

// include = "include" string ; string is "file(map)[:N]" chained with + or |
func (p *Parser) parseInclude(merge MergeMode, line int) (*Statement, error) {
	if p.tok.Kind != TokString {
		return nil, p.errorf("expected include string, got %q", p.tok.Text)
	}
	raw := p.tok.Text
	p.advance()
	specs, err := parseIncludeString(raw)
	if err != nil {
		return nil, fmt.Errorf("%s:%d: %w", p.file, line, err)
	}
	return &Statement{Kind: StmtInclude, Merge: merge, Line: line, Includes: specs}, nil
}

func parseIncludeString(raw string) ([]IncludeSpec, error) {
	var specs []IncludeSpec
	i := 0
	op := byte(0)
	for i < len(raw) {
		start := i
		for i < len(raw) && raw[i] != '+' && raw[i] != '|' {
			i++
		}
		part := strings.TrimSpace(raw[start:i])
		spec, err := parseFileSpec(part)
		if err != nil {
			return nil, err
		}
		spec.Op = op
		specs = append(specs, spec)
		if i < len(raw) {
			op = raw[i]
			i++
		}
	}
	return specs, nil
}

func parseFileSpec(s string) (IncludeSpec, error) {
	var spec IncludeSpec
	if idx := strings.LastIndex(s, ":"); idx >= 0 {
		g, err := strconv.Atoi(s[idx+1:])
		if err == nil {
			spec.Group = g
			s = s[:idx]
		}
	}
	if lp := strings.Index(s, "("); lp >= 0 {
		if !strings.HasSuffix(s, ")") {
			return spec, fmt.Errorf("malformed include file spec %q", s)
		}
		spec.File = s[:lp]
		spec.Map = s[lp+1 : len(s)-1]
	} else {
		spec.File = s
	}
	return spec, nil
}

// var_def = element '.' field [ '[' index ']' ] '=' value ';'
//         | ident [ '[' index ']' ] '=' value ';'
func (p *Parser) parseVarDef(merge MergeMode, line int) (*Statement, error) {
	st := &Statement{Kind: StmtVarDef, Merge: merge, Line: line}
	if p.tok.Kind == TokIdent {
		first := p.tok.Text
		p.advance()
		if p.isPunct(".") {
			p.advance()
			st.Element = first
			if p.tok.Kind != TokIdent {
				return nil, p.errorf("expected field name after '.'")
			}
			st.Field = p.tok.Text
			p.advance()
		} else {
			st.Field = first
		}
	} else {
		return nil, p.errorf("expected identifier, got %q", p.tok.Text)
	}
	if p.isPunct("[") {
		p.advance()
		idx, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		st.Index = idx
		if err := p.expectPunct("]"); err != nil {
			return nil, err
		}
	}
	if !p.isPunct("=") {
		// A bare identifier statement ("vertical;") is a flag, not an
		// assignment (spec.md section 4.6's geometry row grammar).
		st.Flag = true
		return st, nil
	}
	p.advance()
	val, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	st.Value = val
	return st, nil
}

// row_def = "row" '{' statements '}'
func (p *Parser) parseRowDef(merge MergeMode, line int) (*Statement, error) {
	body, err := p.parseBody()
	if err != nil {
		return nil, err
	}
	return &Statement{Kind: StmtRowDef, Merge: merge, Line: line, Body: body}, nil
}

// doodad_def = "doodad" IDENT STRING '{' statements '}'
func (p *Parser) parseDoodadDef(merge MergeMode, line int) (*Statement, error) {
	kind := ""
	if p.tok.Kind == TokIdent {
		kind = p.tok.Text
		p.advance()
	}
	name, err := p.parseBlockName()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBody()
	if err != nil {
		return nil, err
	}
	return &Statement{Kind: StmtDoodadDef, Merge: merge, Line: line, Element: kind, Name: name, Body: body}, nil
}

// keycode_def = KEYNAME '=' integer ';'
func (p *Parser) parseKeycodeDef(merge MergeMode, line int) (*Statement, error) {
	name := p.tok.Text
	p.advance()
	if err := p.expectPunct("="); err != nil {
		return nil, err
	}
	val, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &Statement{Kind: StmtKeycodeDef, Merge: merge, Line: line, KeyName: name, Target: val}, nil
}

// alias_def = "alias" KEYNAME '=' KEYNAME ';'
func (p *Parser) parseAliasDef(merge MergeMode, line int) (*Statement, error) {
	if p.tok.Kind != TokKeyName {
		return nil, p.errorf("expected key name after 'alias'")
	}
	from := p.tok.Text
	p.advance()
	if err := p.expectPunct("="); err != nil {
		return nil, err
	}
	if p.tok.Kind != TokKeyName {
		return nil, p.errorf("expected key name target for alias")
	}
	to := p.tok.Text
	p.advance()
	return &Statement{Kind: StmtAliasDef, Merge: merge, Line: line, KeyName: from,
		Target: expr.KeyNameLit(to)}, nil
}

func (p *Parser) parseBlockName() (string, error) {
	if p.tok.Kind != TokString {
		return "", p.errorf("expected quoted name, got %q", p.tok.Text)
	}
	s := p.tok.Text
	p.advance()
	return s, nil
}

func (p *Parser) parseBody() ([]*Statement, error) {
	if err := p.expectPunct("{"); err != nil {
		return nil, err
	}
	var body []*Statement
	for !p.isPunct("}") {
		if p.tok.Kind == TokEOF {
			return nil, p.errorf("unexpected EOF in block")
		}
		st, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		if st != nil {
			body = append(body, st)
		}
		if p.isPunct(";") {
			p.advance()
		}
	}
	p.advance()
	return body, nil
}

// type_def = "type" STRING '{' ... '}'
func (p *Parser) parseTypeDef(merge MergeMode, line int) (*Statement, error) {
	name, err := p.parseBlockName()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBody()
	if err != nil {
		return nil, err
	}
	return &Statement{Kind: StmtTypeDef, Merge: merge, Line: line, Name: name, Body: body}, nil
}

// interp_def = "interpret" IDENT [ '+' PRED '(' expr ')' ] '{' ... '}'
func (p *Parser) parseInterpDef(merge MergeMode, line int) (*Statement, error) {
	st := &Statement{Kind: StmtInterpDef, Merge: merge, Line: line}
	if p.tok.Kind != TokIdent {
		return nil, p.errorf("expected keysym name after 'interpret'")
	}
	st.Sym = p.tok.Text
	p.advance()
	if p.isPunct("+") {
		p.advance()
		if p.tok.Kind != TokIdent {
			return nil, p.errorf("expected predicate name")
		}
		st.Predicate = p.tok.Text
		p.advance()
		if p.isPunct("(") {
			p.advance()
			e, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			st.PredMods = e
			if err := p.expectPunct(")"); err != nil {
				return nil, err
			}
		}
	}
	body, err := p.parseBody()
	if err != nil {
		return nil, err
	}
	st.Body = body
	return st, nil
}

// vmod_def = "virtual_modifiers" IDENT (',' IDENT)* ';'
func (p *Parser) parseVModDef(merge MergeMode, line int) (*Statement, error) {
	st := &Statement{Kind: StmtVModDef, Merge: merge, Line: line}
	for {
		if p.tok.Kind != TokIdent {
			return nil, p.errorf("expected virtual modifier name")
		}
		st.Body = append(st.Body, &Statement{Name: p.tok.Text})
		p.advance()
		if p.isPunct(",") {
			p.advance()
			continue
		}
		break
	}
	return st, nil
}

// key_symbols_def = "key" KEYNAME '{' field (',' field)* '}'
func (p *Parser) parseKeySymbolsDef(merge MergeMode, line int) (*Statement, error) {
	if p.tok.Kind != TokKeyName {
		return nil, p.errorf("expected key name after 'key'")
	}
	name := p.tok.Text
	p.advance()
	if err := p.expectPunct("{"); err != nil {
		return nil, err
	}
	st := &Statement{Kind: StmtSymbolsDef, Merge: merge, Line: line, KeyName: name}
	for !p.isPunct("}") {
		if p.tok.Kind == TokEOF {
			return nil, p.errorf("unexpected EOF in key definition")
		}
		if err := p.parseKeyField(st); err != nil {
			return nil, err
		}
		if p.isPunct(",") {
			p.advance()
		}
	}
	p.advance()
	return st, nil
}

func (p *Parser) parseKeyField(st *Statement) error {
	if p.tok.Kind != TokIdent {
		return p.errorf("expected key field name, got %q", p.tok.Text)
	}
	field := strings.ToLower(p.tok.Text)
	p.advance()
	switch field {
	case "symbols", "actions":
		if err := p.expectPunct("["); err != nil {
			// unindexed: applies to group 1
		} else {
			if _, err := p.parseExpr(); err == nil {
			}
			p.expectPunct("]")
		}
		if err := p.expectPunct("="); err != nil {
			return err
		}
		if err := p.expectPunct("["); err != nil {
			return err
		}
		var list []*expr.Expr
		for !p.isPunct("]") {
			e, err := p.parseExpr()
			if err != nil {
				return err
			}
			list = append(list, e)
			if p.isPunct(",") {
				p.advance()
			}
		}
		p.advance()
		if field == "symbols" {
			st.SymGroups = append(st.SymGroups, list)
		} else {
			st.ActionGroups = append(st.ActionGroups, list)
		}
		return nil
	default:
		// generic field[=index] = value, reused via VarDef-like fields
		var idx *expr.Expr
		if p.isPunct("[") {
			p.advance()
			e, err := p.parseExpr()
			if err != nil {
				return err
			}
			idx = e
			if err := p.expectPunct("]"); err != nil {
				return err
			}
		}
		if err := p.expectPunct("="); err != nil {
			return err
		}
		val, err := p.parseExpr()
		if err != nil {
			return err
		}
		st.Body = append(st.Body, &Statement{Kind: StmtVarDef, Field: field, Index: idx, Value: val})
		return nil
	}
}

// modifier_map_def = "modifier_map" IDENT '{' KEYNAME (',' KEYNAME)* '}'
func (p *Parser) parseModMapDef(merge MergeMode, line int) (*Statement, error) {
	if p.tok.Kind != TokIdent {
		return nil, p.errorf("expected modifier name after 'modifier_map'")
	}
	st := &Statement{Kind: StmtModMapDef, Merge: merge, Line: line, Name: p.tok.Text}
	p.advance()
	if err := p.expectPunct("{"); err != nil {
		return nil, err
	}
	for !p.isPunct("}") {
		if p.tok.Kind != TokKeyName {
			return nil, p.errorf("expected key name in modifier_map")
		}
		st.Body = append(st.Body, &Statement{KeyName: p.tok.Text})
		p.advance()
		if p.isPunct(",") {
			p.advance()
		}
	}
	p.advance()
	return st, nil
}

// group_compat_def = "group" INTEGER '=' expr ';'
func (p *Parser) parseGroupCompatDef(merge MergeMode, line int) (*Statement, error) {
	p.advance() // consume "group"
	n, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if err := p.expectPunct("="); err != nil {
		return nil, err
	}
	val, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &Statement{Kind: StmtGroupCompatDef, Merge: merge, Line: line, Index: n, Value: val}, nil
}

// indicator_def = "indicator" (STRING '{' ... '}' | INTEGER '=' STRING ';')
func (p *Parser) parseIndicatorDef(merge MergeMode, line int) (*Statement, error) {
	if p.tok.Kind == TokString {
		name := p.tok.Text
		p.advance()
		body, err := p.parseBody()
		if err != nil {
			return nil, err
		}
		return &Statement{Kind: StmtIndicatorMapDef, Merge: merge, Line: line, Name: name, Body: body}, nil
	}
	idx, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if err := p.expectPunct("="); err != nil {
		return nil, err
	}
	name, err := p.parseBlockName()
	if err != nil {
		return nil, err
	}
	return &Statement{Kind: StmtIndicatorNameDef, Merge: merge, Line: line, Index: idx, Name: name}, nil
}

// shape_def = "shape" STRING '{' ... '}'
func (p *Parser) parseShapeDef(merge MergeMode, line int) (*Statement, error) {
	name, err := p.parseBlockName()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBody()
	if err != nil {
		return nil, err
	}
	return &Statement{Kind: StmtShapeDef, Merge: merge, Line: line, Name: name, Body: body}, nil
}

// section_def = "section" STRING '{' ... '}'
func (p *Parser) parseSectionGeomDef(merge MergeMode, line int) (*Statement, error) {
	name, err := p.parseBlockName()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBody()
	if err != nil {
		return nil, err
	}
	return &Statement{Kind: StmtSectionDef, Merge: merge, Line: line, Name: name, Body: body}, nil
}

// overlay_def = "overlay" STRING '{' ... '}'
func (p *Parser) parseOverlayDef(merge MergeMode, line int) (*Statement, error) {
	name, err := p.parseBlockName()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBody()
	if err != nil {
		return nil, err
	}
	return &Statement{Kind: StmtOverlayDef, Merge: merge, Line: line, Name: name, Body: body}, nil
}

// --- expression parsing: precedence climbing over +,-,*,/,unary,! ~ ---

func (p *Parser) parseExpr() (*expr.Expr, error) {
	return p.parseAddSub()
}

func (p *Parser) parseAddSub() (*expr.Expr, error) {
	left, err := p.parseMulDiv()
	if err != nil {
		return nil, err
	}
	for p.isPunct("+") || p.isPunct("-") {
		op := expr.OpAdd
		if p.tok.Text == "-" {
			op = expr.OpSubtract
		}
		p.advance()
		right, err := p.parseMulDiv()
		if err != nil {
			return nil, err
		}
		left = expr.Binary(op, left, right)
	}
	return left, nil
}

func (p *Parser) parseMulDiv() (*expr.Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.isPunct("*") || p.isPunct("/") {
		op := expr.OpMultiply
		if p.tok.Text == "/" {
			op = expr.OpDivide
		}
		p.advance()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = expr.Binary(op, left, right)
	}
	return left, nil
}

func (p *Parser) parseUnary() (*expr.Expr, error) {
	if p.isPunct("-") {
		p.advance()
		e, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return expr.Unary(expr.OpNegate, e), nil
	}
	if p.isPunct("+") {
		p.advance()
		e, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return expr.Unary(expr.OpUnaryPlus, e), nil
	}
	if p.isPunct("!") {
		p.advance()
		e, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return expr.Unary(expr.OpNot, e), nil
	}
	if p.isPunct("~") {
		p.advance()
		e, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return expr.Unary(expr.OpInvert, e), nil
	}
	return p.parsePrimary()
}

// parseActionArg parses a single action-call argument: either a bare
// flag ("clearLocks") or a "name=value" keyed argument.
func (p *Parser) parseActionArg() (*expr.Expr, error) {
	if p.tok.Kind != TokIdent {
		return p.parseExpr()
	}
	name := p.tok.Text
	p.advance()
	if !p.isPunct("=") {
		return expr.Ident(name), nil
	}
	p.advance()
	val, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &expr.Expr{Op: expr.OpField, Field: name, Right: val}, nil
}

func (p *Parser) parsePrimary() (*expr.Expr, error) {
	switch p.tok.Kind {
	case TokInteger:
		v := p.tok.Int
		p.advance()
		return expr.Int(int32(v)), nil
	case TokFloat:
		v := p.tok.Float
		p.advance()
		return expr.Float32(v), nil
	case TokString:
		s := p.tok.Text
		p.advance()
		return expr.Str(s), nil
	case TokKeyName:
		s := p.tok.Text
		p.advance()
		return expr.KeyNameLit(s), nil
	case TokIdent:
		name := p.tok.Text
		p.advance()
		if p.isPunct("(") {
			p.advance()
			var args []*expr.Expr
			for !p.isPunct(")") {
				e, err := p.parseActionArg()
				if err != nil {
					return nil, err
				}
				args = append(args, e)
				if p.isPunct(",") {
					p.advance()
				}
			}
			p.advance()
			return &expr.Expr{Op: expr.OpActionDecl, Name: name, Args: args}, nil
		}
		return expr.Ident(name), nil
	case TokPunct:
		if p.tok.Text == "[" {
			p.advance()
			var list []*expr.Expr
			for !p.isPunct("]") {
				e, err := p.parseExpr()
				if err != nil {
					return nil, err
				}
				list = append(list, e)
				if p.isPunct(",") {
					p.advance()
				}
			}
			p.advance()
			return &expr.Expr{Op: expr.OpKeysymList, Args: list}, nil
		}
		if p.tok.Text == "(" {
			p.advance()
			e, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			if err := p.expectPunct(")"); err != nil {
				return nil, err
			}
			return e, nil
		}
	}
	return nil, p.errorf("unexpected token %q in expression", p.tok.Text)
}
