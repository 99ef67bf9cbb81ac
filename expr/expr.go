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

// Package expr implements the tiny typed expression tree used throughout
// the keyboard description language: numeric, string, and keyname
// literals; unary and binary operators; field/array references; and the
// coercion resolvers that turn a node into one of the value kinds a
// statement field expects.
package expr

import "fmt"

// Op identifies an expression tree operator.
type Op int

const (
	OpValue     Op = iota // literal leaf (Ident, Integer, Float, String, KeyName)
	OpAdd                 // +
	OpSubtract            // -
	OpMultiply            // *
	OpDivide              // /
	OpNegate              // unary -
	OpUnaryPlus           // unary +
	OpNot                 // logical !
	OpInvert              // bitwise ~
	OpAssign              // =
	OpField               // a.b
	OpArray               // a[i]
	OpActionDecl          // actionName(args...)
	OpKeysymList          // [ sym1, sym2, ... ]
)

// Kind identifies the literal kind a leaf Expr carries.
type Kind int

const (
	KindNone Kind = iota
	KindIdent
	KindInteger
	KindFloat // stored as an integer scaled by 10 (one decimal of millimetre)
	KindString
	KindKeyName
)

// Expr is a node in the expression tree. Leaves have Op == OpValue and a
// non-zero Kind; interior nodes combine one or two children via Op.
type Expr struct {
	Op       Op
	Kind     Kind
	Ident    string
	Integer  int32
	Float    int32 // value * 10
	String   string
	KeyName  string // four-char literal, space padded
	Left     *Expr
	Right    *Expr
	Args     []*Expr // for OpActionDecl and OpKeysymList
	Name     string  // action name for OpActionDecl
	Field    string  // for OpField
	Elem     *Expr   // base of OpField/OpArray
}

// Ident returns a leaf identifier expression.
func Ident(name string) *Expr { return &Expr{Op: OpValue, Kind: KindIdent, Ident: name} }

// Int returns a leaf integer literal expression.
func Int(v int32) *Expr { return &Expr{Op: OpValue, Kind: KindInteger, Integer: v} }

// Float32 returns a leaf float literal expression, storing v scaled by 10.
func Float32(v float64) *Expr {
	return &Expr{Op: OpValue, Kind: KindFloat, Float: int32(v*10 + 0.5)}
}

// Str returns a leaf string literal expression.
func Str(v string) *Expr { return &Expr{Op: OpValue, Kind: KindString, String: v} }

// KeyNameLit returns a leaf four-char key name literal expression.
func KeyNameLit(v string) *Expr { return &Expr{Op: OpValue, Kind: KindKeyName, KeyName: v} }

// Binary builds an interior node combining left and right with op.
func Binary(op Op, left, right *Expr) *Expr { return &Expr{Op: op, Left: left, Right: right} }

// Unary builds an interior node applying op to operand.
func Unary(op Op, operand *Expr) *Expr { return &Expr{Op: op, Left: operand} }

// FieldRef builds an "elem.field[index]" reference. index may be nil.
func FieldRef(elem *Expr, field string, index *Expr) *Expr {
	return &Expr{Op: OpField, Elem: elem, Field: field, Right: index}
}

// ResolveError reports that a node's operator or value type could not be
// coerced to the requested target kind.
type ResolveError struct {
	Target string
	Expr   *Expr
}

func (e *ResolveError) Error() string {
	return fmt.Sprintf("cannot resolve expression to %s", e.Target)
}

func evalInt(e *Expr) (int32, error) {
	switch {
	case e == nil:
		return 0, &ResolveError{Target: "integer", Expr: e}
	case e.Op == OpValue && e.Kind == KindInteger:
		return e.Integer, nil
	case e.Op == OpNegate:
		v, err := evalInt(e.Left)
		return -v, err
	case e.Op == OpUnaryPlus:
		return evalInt(e.Left)
	case e.Op == OpInvert:
		v, err := evalInt(e.Left)
		return ^v, err
	case e.Op == OpAdd:
		l, err := evalInt(e.Left)
		if err != nil {
			return 0, err
		}
		r, err := evalInt(e.Right)
		return l + r, err
	case e.Op == OpSubtract:
		l, err := evalInt(e.Left)
		if err != nil {
			return 0, err
		}
		r, err := evalInt(e.Right)
		return l - r, err
	case e.Op == OpMultiply:
		l, err := evalInt(e.Left)
		if err != nil {
			return 0, err
		}
		r, err := evalInt(e.Right)
		return l * r, err
	case e.Op == OpDivide:
		l, err := evalInt(e.Left)
		if err != nil {
			return 0, err
		}
		r, err := evalInt(e.Right)
		if err != nil {
			return 0, err
		}
		if r == 0 {
			return 0, &ResolveError{Target: "integer", Expr: e}
		}
		return l / r, nil
	}
	return 0, &ResolveError{Target: "integer", Expr: e}
}

// ResolveInt coerces e to a signed 32-bit integer.
func ResolveInt(e *Expr) (int32, error) { return evalInt(e) }

// ResolveFloat coerces e to a float32 value stored scaled by 10 (one
// decimal of millimetre), per spec.md section 4.3.
func ResolveFloat(e *Expr) (int32, error) {
	if e != nil && e.Op == OpValue && e.Kind == KindFloat {
		return e.Float, nil
	}
	if e != nil && e.Op == OpValue && e.Kind == KindInteger {
		return e.Integer * 10, nil
	}
	v, err := evalInt(e)
	if err != nil {
		return 0, &ResolveError{Target: "float", Expr: e}
	}
	return v * 10, nil
}

// ResolveBoolean coerces e to a boolean. Accepts integer 0/nonzero, the
// identifiers "true"/"false"/"yes"/"no"/"on"/"off", and logical !.
func ResolveBoolean(e *Expr) (bool, error) {
	if e == nil {
		return false, &ResolveError{Target: "boolean", Expr: e}
	}
	switch {
	case e.Op == OpValue && e.Kind == KindInteger:
		return e.Integer != 0, nil
	case e.Op == OpValue && e.Kind == KindIdent:
		switch e.Ident {
		case "true", "yes", "on":
			return true, nil
		case "false", "no", "off":
			return false, nil
		}
	case e.Op == OpNot:
		v, err := ResolveBoolean(e.Left)
		return !v, err
	}
	return false, &ResolveError{Target: "boolean", Expr: e}
}

// ResolveString coerces e to a string. Only "+" concatenation is
// supported as a binary operator; "*" and "/" are rejected.
func ResolveString(e *Expr) (string, error) {
	if e == nil {
		return "", &ResolveError{Target: "string", Expr: e}
	}
	if e.Op == OpValue && e.Kind == KindString {
		return e.String, nil
	}
	if e.Op == OpAdd {
		l, err := ResolveString(e.Left)
		if err != nil {
			return "", err
		}
		r, err := ResolveString(e.Right)
		if err != nil {
			return "", err
		}
		return l + r, nil
	}
	return "", &ResolveError{Target: "string", Expr: e}
}

// ResolveKeyName coerces e to a four-character key name literal.
func ResolveKeyName(e *Expr) (string, error) {
	if e != nil && e.Op == OpValue && e.Kind == KindKeyName {
		return e.KeyName, nil
	}
	if e != nil && e.Op == OpValue && e.Kind == KindIdent {
		return e.Ident, nil
	}
	return "", &ResolveError{Target: "keyname", Expr: e}
}

// ModifierLookup resolves a real or virtual modifier name to its bit
// mask; it is supplied by the caller (xkbcomp) since the mapping depends
// on the keymap's declared virtual modifiers.
type ModifierLookup func(name string) (mask uint32, isVirtual bool, ok bool)

// ResolveModMask coerces e to a modifier mask (real bits in the low 8
// bits, virtual-modifier bits above them), per spec.md section 4.3:
// "all" means 0xff, "none" means 0, "+" is union, "-" is set difference,
// "*" and "/" are rejected.
func ResolveModMask(e *Expr, lookup ModifierLookup) (uint32, error) {
	if e == nil {
		return 0, &ResolveError{Target: "modmask", Expr: e}
	}
	switch {
	case e.Op == OpValue && e.Kind == KindInteger:
		return uint32(e.Integer), nil
	case e.Op == OpValue && e.Kind == KindIdent:
		switch e.Ident {
		case "all":
			return 0xff, nil
		case "none":
			return 0, nil
		}
		if lookup != nil {
			if mask, _, ok := lookup(e.Ident); ok {
				return mask, nil
			}
		}
		return 0, &ResolveError{Target: "modmask", Expr: e}
	case e.Op == OpAdd:
		l, err := ResolveModMask(e.Left, lookup)
		if err != nil {
			return 0, err
		}
		r, err := ResolveModMask(e.Right, lookup)
		if err != nil {
			return 0, err
		}
		return l | r, nil
	case e.Op == OpSubtract:
		l, err := ResolveModMask(e.Left, lookup)
		if err != nil {
			return 0, err
		}
		r, err := ResolveModMask(e.Right, lookup)
		if err != nil {
			return 0, err
		}
		return l &^ r, nil
	}
	return 0, &ResolveError{Target: "modmask", Expr: e}
}

// ResolveGroup coerces e to a 0-indexed group number in [0,4).
func ResolveGroup(e *Expr) (int, error) {
	v, err := evalInt(e)
	if err != nil {
		return 0, &ResolveError{Target: "group", Expr: e}
	}
	g := int(v)
	if g >= 1 {
		g-- // source groups are written 1-based
	}
	if g < 0 || g > 3 {
		return 0, &ResolveError{Target: "group", Expr: e}
	}
	return g, nil
}

// ResolveLevel coerces e to a 0-indexed shift level in [0,8).
func ResolveLevel(e *Expr) (int, error) {
	v, err := evalInt(e)
	if err != nil {
		return 0, &ResolveError{Target: "level", Expr: e}
	}
	l := int(v)
	if l >= 1 {
		l--
	}
	if l < 0 || l > 7 {
		return 0, &ResolveError{Target: "level", Expr: e}
	}
	return l, nil
}

// KeysymLookup resolves a bare identifier to a keysym code; supplied by
// the caller (xkbcomp wires this to the keysym package).
type KeysymLookup func(name string) (uint32, bool)

// ResolveKeysym coerces e (an identifier or integer literal) to a keysym
// code using the supplied lookup function.
func ResolveKeysym(e *Expr, lookup KeysymLookup) (uint32, error) {
	if e == nil {
		return 0, &ResolveError{Target: "keysym", Expr: e}
	}
	if e.Op == OpValue && e.Kind == KindInteger {
		return uint32(e.Integer), nil
	}
	if e.Op == OpValue && e.Kind == KindIdent && lookup != nil {
		if ks, ok := lookup(e.Ident); ok {
			return ks, nil
		}
	}
	return 0, &ResolveError{Target: "keysym", Expr: e}
}
