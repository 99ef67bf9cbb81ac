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

package rules

import (
	"strings"

	"github.com/xkbgo/xkbgo/xkbcomp"
)

var componentTargets = []string{"keycodes", "types", "compat", "symbols", "geometry"}

// Resolve matches rmlvo against rs's sections and builds the include
// chain string for each of the five components (spec.md section 6).
// Fields not present in rmlvo (empty strings) match no pattern, not even
// "*".
func (rs *RuleSet) Resolve(rmlvo RMLVO) (xkbcomp.ComponentNames, error) {
	var names xkbcomp.ComponentNames
	for _, target := range componentTargets {
		v := rs.resolveComponent(target, rmlvo)
		switch target {
		case "keycodes":
			names.Keycodes = v
		case "types":
			names.Types = v
		case "compat":
			names.Compat = v
		case "symbols":
			names.Symbols = v
		case "geometry":
			names.Geometry = v
		}
	}
	return names, nil
}

func (rs *RuleSet) resolveComponent(target string, rmlvo RMLVO) string {
	var chain string
	appendValue := func(raw, optionName string) {
		v := expandPercent(raw, rmlvo, optionName)
		if chain == "" {
			chain = strings.TrimLeft(v, "+|")
			return
		}
		if strings.HasPrefix(v, "+") || strings.HasPrefix(v, "|") {
			chain += v
		} else {
			chain += "+" + v
		}
	}

	for _, sec := range rs.sections {
		if sec.Component != target {
			continue
		}
		if isOptionOnly(sec.Fields) {
			for _, opt := range splitOptions(rmlvo.Option) {
				for _, e := range sec.Entries {
					if rs.matchValue(e.Patterns[0], opt) {
						appendValue(e.Value, opt)
					}
				}
			}
			continue
		}
		if e, ok := rs.firstMatch(sec, rmlvo); ok {
			appendValue(e.Value, "")
		}
	}
	return chain
}

func (rs *RuleSet) firstMatch(sec section, rmlvo RMLVO) (entry, bool) {
	for _, e := range sec.Entries {
		if rs.matchesAllFields(sec.Fields, e.Patterns, rmlvo) {
			return e, true
		}
	}
	return entry{}, false
}

func (rs *RuleSet) matchesAllFields(fields, patterns []string, rmlvo RMLVO) bool {
	for i, f := range fields {
		if !rs.matchValue(patterns[i], fieldValue(f, rmlvo)) {
			return false
		}
	}
	return true
}

func isOptionOnly(fields []string) bool {
	return len(fields) == 1 && fields[0] == "option"
}

func fieldValue(field string, rmlvo RMLVO) string {
	switch field {
	case "model":
		return rmlvo.Model
	case "layout":
		return rmlvo.Layout
	case "variant":
		return rmlvo.Variant
	case "option":
		return rmlvo.Option
	}
	return ""
}

// matchValue reports whether value satisfies pattern: "*" matches any
// non-empty value, a "$name" token expands to rs's named alternation
// group (spec.md section 6), and otherwise pattern is a comma-separated
// literal alternation list.
func (rs *RuleSet) matchValue(pattern, value string) bool {
	if pattern == "*" {
		return value != ""
	}
	for _, alt := range strings.Split(pattern, ",") {
		if strings.HasPrefix(alt, "$") {
			for _, g := range rs.groups[strings.TrimPrefix(alt, "$")] {
				if g == value {
					return true
				}
			}
			continue
		}
		if alt == value {
			return true
		}
	}
	return false
}

func splitOptions(opt string) []string {
	if opt == "" {
		return nil
	}
	parts := strings.Split(opt, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// expandPercent substitutes the %l/%v/%m/%o/%(v) escapes a rule value
// may contain (spec.md section 6).
func expandPercent(raw string, rmlvo RMLVO, optionName string) string {
	var sb strings.Builder
	for i := 0; i < len(raw); i++ {
		if raw[i] != '%' || i+1 >= len(raw) {
			sb.WriteByte(raw[i])
			continue
		}
		switch raw[i+1] {
		case 'l':
			sb.WriteString(rmlvo.Layout)
			i++
		case 'v':
			sb.WriteString(rmlvo.Variant)
			i++
		case 'm':
			sb.WriteString(rmlvo.Model)
			i++
		case 'o':
			sb.WriteString(optionName)
			i++
		case '(':
			if end := strings.IndexByte(raw[i:], ')'); end > 0 {
				inner := raw[i+2 : i+end]
				val := expandPercentRef(inner, rmlvo, optionName)
				if val != "" {
					sb.WriteByte('(')
					sb.WriteString(val)
					sb.WriteByte(')')
				}
				i += end
				continue
			}
			sb.WriteByte(raw[i])
		default:
			sb.WriteByte(raw[i])
		}
	}
	return sb.String()
}

func expandPercentRef(ref string, rmlvo RMLVO, optionName string) string {
	switch ref {
	case "v":
		return rmlvo.Variant
	case "l":
		return rmlvo.Layout
	case "m":
		return rmlvo.Model
	case "o":
		return optionName
	}
	return ""
}
