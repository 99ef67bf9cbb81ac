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
	"github.com/xkbgo/xkbgo/expr"
	"github.com/xkbgo/xkbgo"
)

// compileKeycodes populates km.KeyNames, km.Aliases, km.IndicatorNames,
// and the min/max keycode range from an xkb_keycodes section (spec.md
// section 4.6).
func (c *context) compileKeycodes(statements []*Statement) {
	minSeen, maxSeen := -1, -1
	minDeclared, maxDeclared := false, false
	for _, st := range statements {
		switch st.Kind {
		case StmtVarDef:
			v, err := expr.ResolveInt(st.Value)
			if err != nil {
				c.diag.Errorf("keycodes: %v", err)
				continue
			}
			switch st.Field {
			case "minimum":
				c.km.MinKeycode = int(v)
				minDeclared = true
			case "maximum":
				c.km.MaxKeycode = int(v)
				maxDeclared = true
				if int(v) >= len(c.km.Keys) {
					c.km.Key(int(v))
				}
			default:
				c.diag.Warnf("keycodes: ignoring unknown field %q", st.Field)
			}

		case StmtKeycodeDef:
			kc, err := expr.ResolveInt(st.Target)
			if err != nil {
				c.diag.Errorf("keycodes: %v", err)
				continue
			}
			if int(kc) < xkb.MinKeycode || int(kc) > xkb.MaxKeycode {
				c.diag.Errorf("keycodes: keycode %d for %q out of range", kc, st.KeyName)
				continue
			}
			c.km.Key(int(kc)) // ensure arena sized
			if int(kc) < minSeen || minSeen < 0 {
				minSeen = int(kc)
			}
			if int(kc) > maxSeen {
				maxSeen = int(kc)
			}
			existing := c.km.KeyNames[kc]
			name := xkb.NewKeyName(st.KeyName)
			if existing != (xkb.KeyName{}) && existing != name {
				switch st.Merge {
				case MergeAltForm:
					// Record as an additional alias for the already-named
					// keycode, without demoting the existing primary name
					// (SPEC_FULL.md supplement, grounded on keycodes.c).
					if _, exists := c.km.Aliases[st.KeyName]; !exists {
						c.km.Aliases[st.KeyName] = existing.String()
					}
					continue
				case MergeAugment:
					c.diag.Actionf("keycodes: keeping existing name for keycode %d", kc)
					continue
				default:
					c.diag.Warnf("keycodes: keycode %d reassigned from %q to %q", kc, existing.String(), st.KeyName)
				}
			}
			c.km.KeyNames[kc] = name

		case StmtAliasDef:
			to, err := expr.ResolveKeyName(st.Target)
			if err != nil {
				c.diag.Errorf("keycodes: %v", err)
				continue
			}
			if _, exists := c.km.Aliases[st.KeyName]; exists && st.Merge != MergeReplace && st.Merge != MergeOverride {
				c.diag.Warnf("keycodes: alias %q already defined, keeping first", st.KeyName)
				continue
			}
			c.km.Aliases[st.KeyName] = to

		case StmtIndicatorNameDef:
			idx, err := expr.ResolveInt(st.Index)
			if err != nil {
				c.diag.Errorf("keycodes: %v", err)
				continue
			}
			if idx < 1 || idx > 32 {
				c.diag.Errorf("keycodes: indicator index %d out of range [1,32]", idx)
				continue
			}
			c.km.IndicatorNames[idx-1] = st.Name

		default:
			c.diag.Warnf("keycodes: ignoring unsupported statement")
		}
	}
	if minSeen >= 0 && !minDeclared {
		c.km.MinKeycode = minSeen
	}
	if maxSeen >= 0 && (!maxDeclared || maxSeen > c.km.MaxKeycode) {
		c.km.MaxKeycode = maxSeen
	}
}
