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
	"github.com/xkbgo/xkbgo/keysym"
	"github.com/xkbgo/xkbgo"
)

var predicateNames = map[string]xkb.Predicate{
	"anyofornone": xkb.PredicateAnyOfOrNone,
	"noneof":      xkb.PredicateNoneOf,
	"anyof":       xkb.PredicateAnyOf,
	"allof":       xkb.PredicateAllOf,
	"exactly":     xkb.PredicateExactly,
}

// compileCompat populates km.Interprets, km.Indicators/IndicatorNames,
// and km.GroupCompat from an xkb_compat section (spec.md section 4.6).
func (c *context) compileCompat(statements []*Statement) {
	for _, st := range statements {
		switch st.Kind {
		case StmtVModDef:
			for _, nameSt := range st.Body {
				if _, err := c.declareVMod(nameSt.Name); err != nil {
					c.diag.Errorf("compat: %v", err)
				}
			}
		case StmtInterpDef:
			si, err := c.compileOneInterp(st)
			if err != nil {
				c.diag.Errorf("compat: interpret %s: %v", st.Sym, err)
				continue
			}
			c.km.Interprets = append(c.km.Interprets, si)
		case StmtIndicatorMapDef:
			im, err := c.compileOneIndicatorMap(st)
			if err != nil {
				c.diag.Errorf("compat: indicator %q: %v", st.Name, err)
				continue
			}
			bound := false
			for i, n := range c.km.IndicatorNames {
				if n == st.Name {
					c.km.Indicators[i] = im
					bound = true
					break
				}
			}
			if !bound {
				for i, n := range c.km.IndicatorNames {
					if n == "" {
						c.km.IndicatorNames[i] = st.Name
						c.km.Indicators[i] = im
						bound = true
						break
					}
				}
			}
			if !bound {
				c.diag.Warnf("compat: no free indicator slot for %q", st.Name)
			}
		case StmtGroupCompatDef:
			g, err := expr.ResolveGroup(st.Index)
			if err != nil {
				c.diag.Errorf("compat: %v", err)
				continue
			}
			mask := c.resolveModMask(st.Value)
			c.km.GroupCompat[g] = mask
		default:
			c.diag.Warnf("compat: ignoring unsupported statement")
		}
	}
}

func (c *context) compileOneInterp(st *Statement) (xkb.SymInterpret, error) {
	si := xkb.SymInterpret{VMod: -1}
	if st.Sym == "" || strings.EqualFold(st.Sym, "any") {
		si.Sym = keysym.NoSymbol
	} else {
		si.Sym = keysym.FromName(st.Sym)
	}
	if st.Predicate != "" {
		pred, ok := predicateNames[strings.ToLower(st.Predicate)]
		if !ok {
			return si, &expr.ResolveError{Target: "predicate"}
		}
		si.Predicate = pred
		if st.PredMods != nil {
			si.Mods = c.resolveModMask(st.PredMods)
		}
	} else {
		si.Predicate = xkb.PredicateAnyOfOrNone
	}
	for _, f := range st.Body {
		switch f.Field {
		case "action":
			act, err := c.compileAction(f.Value)
			if err != nil {
				return si, err
			}
			si.Action = act
		case "virtualmodifier", "virtualmod":
			name, err := expr.ResolveString(f.Value)
			if err != nil {
				name, err = expr.ResolveKeyName(f.Value)
			}
			if err != nil {
				continue
			}
			idx, err := c.declareVMod(name)
			if err != nil {
				return si, err
			}
			si.VMod = idx
		case "usemodmapmods":
			b, err := expr.ResolveBoolean(f.Value)
			if err == nil && b {
				si.Flags |= xkb.InterpretUseModMapMods
			}
		case "levelonetoo", "levelOneOnly":
			b, err := expr.ResolveBoolean(f.Value)
			if err == nil && b {
				si.Flags |= xkb.InterpretLevelOneOnly
			}
		default:
			c.diag.Warnf("compat: interpret %s: ignoring unknown field %q", st.Sym, f.Field)
		}
	}
	return si, nil
}

func (c *context) compileOneIndicatorMap(st *Statement) (xkb.IndicatorMap, error) {
	var im xkb.IndicatorMap
	for _, f := range st.Body {
		switch f.Field {
		case "modifiers":
			im.RealMods = c.resolveModMask(f.Value)
			im.WhichMods = xkb.StateEffective
		case "whichmodstate":
			im.WhichMods = parseWhichState(f.Value)
		case "groups":
			mask, err := expr.ResolveInt(f.Value)
			if err != nil {
				return im, err
			}
			im.Groups = uint32(mask)
			im.WhichGroups = xkb.StateEffective
		case "whichgroupstate":
			im.WhichGroups = parseWhichState(f.Value)
		case "controls":
			mask, err := expr.ResolveInt(f.Value)
			if err != nil {
				return im, err
			}
			im.Ctrls = uint32(mask)
		case "allowexplicit":
			b, _ := expr.ResolveBoolean(f.Value)
			im.AllowExplicit = b
		case "driveskbd", "indicatordriveskeyboard":
			b, _ := expr.ResolveBoolean(f.Value)
			im.IndicatorDrivesKeyboard = b
		default:
			c.diag.Warnf("compat: indicator %q: ignoring unknown field %q", st.Name, f.Field)
		}
	}
	return im, nil
}

func parseWhichState(e *expr.Expr) xkb.WhichState {
	name, err := expr.ResolveString(e)
	if err != nil {
		name, err = expr.ResolveKeyName(e)
	}
	if err != nil {
		return xkb.StateEffective
	}
	switch strings.ToLower(name) {
	case "base":
		return xkb.StateBase
	case "latched":
		return xkb.StateLatched
	case "locked":
		return xkb.StateLocked
	default:
		return xkb.StateEffective
	}
}
