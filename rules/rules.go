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

// Package rules implements the RMLVO (rules/model/layout/variant/option)
// front end: parsing a line-oriented rules file into match sections and
// resolving a caller's RMLVO selection into the five xkbcomp.ComponentNames
// file specs to compile (spec.md section 6).
package rules

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/xkbgo/xkbgo/xkbcomp"
)

// RMLVO is a caller's symbolic keyboard selection, following the same
// four (plus rules file name) axes as setxkbmap's command line.
type RMLVO struct {
	Rules   string // rules file base name, e.g. "evdev"; "" means the default
	Model   string
	Layout  string
	Variant string
	Option  string // comma-separated option names
}

// entry is one indented data line within a section: Patterns has one
// element per section field (model/layout/variant/option, in that
// section's declared order), matched positionally against the RMLVO.
type entry struct {
	Patterns []string
	Value    string
}

// section is one "! fields = component" block.
type section struct {
	Fields    []string // e.g. ["model", "layout"]
	Component string   // "model", "layout", "variant", "option", "keycodes", "types", "compat", "symbols", "geometry"
	Entries   []entry
}

// RuleSet is a parsed rules file, ready to Resolve RMLVO selections
// against.
type RuleSet struct {
	sections []section
	// groups holds "$name = alt1 alt2 ..." definitions (spec.md section
	// 6: "groups prefixed $ expand as alternations"), consulted by
	// matchValue when a rule pattern itself references "$name".
	groups map[string][]string
}

var (
	cacheMu sync.Mutex
	cache   = make(map[string]*RuleSet)
)

// Load parses the rules file at path, resolving "! include FILE"
// directives relative to path's directory. Parsed rule sets are cached
// by absolute path (spec.md section 6: rules files are read-only and
// reused across many RMLVO resolutions in a long-lived process).
func Load(path string) (*RuleSet, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	cacheMu.Lock()
	if rs, ok := cache[abs]; ok {
		cacheMu.Unlock()
		return rs, nil
	}
	cacheMu.Unlock()

	rs := &RuleSet{groups: make(map[string][]string)}
	if err := rs.parseFile(abs, map[string]bool{}); err != nil {
		return nil, err
	}

	cacheMu.Lock()
	cache[abs] = rs
	cacheMu.Unlock()
	return rs, nil
}

func (rs *RuleSet) parseFile(path string, visited map[string]bool) error {
	if visited[path] {
		return fmt.Errorf("rules: circular include of %q", path)
	}
	visited[path] = true

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	dir := filepath.Dir(path)
	var cur *section
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), " \t\r")
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "//") || strings.HasPrefix(trimmed, "#") {
			continue
		}
		if strings.HasPrefix(trimmed, "!") {
			rest := strings.TrimSpace(trimmed[1:])
			if strings.HasPrefix(rest, "include") {
				inc := strings.TrimSpace(rest[len("include"):])
				incPath := filepath.Join(dir, inc)
				if err := rs.parseFile(incPath, visited); err != nil {
					return err
				}
				cur = nil
				continue
			}
			sec, err := parseSectionHeader(rest)
			if err != nil {
				return err
			}
			rs.sections = append(rs.sections, sec)
			cur = &rs.sections[len(rs.sections)-1]
			continue
		}
		if strings.HasPrefix(trimmed, "$") {
			name, alts, ok := parseGroupDef(trimmed)
			if ok {
				rs.groups[name] = alts
			}
			cur = nil
			continue
		}
		if cur == nil {
			continue
		}
		e, err := parseEntry(trimmed, len(cur.Fields))
		if err != nil {
			return err
		}
		cur.Entries = append(cur.Entries, e)
	}
	return sc.Err()
}

// parseGroupDef parses a "$name = alt1 alt2 ..." line (spec.md section
// 6's "$"-prefixed group expansion), returning the bare name (without
// its leading "$") and its alternation list.
func parseGroupDef(line string) (name string, alts []string, ok bool) {
	idx := strings.Index(line, "=")
	if idx < 0 {
		return "", nil, false
	}
	name = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line[:idx]), "$"))
	if name == "" {
		return "", nil, false
	}
	return name, strings.Fields(line[idx+1:]), true
}

func parseSectionHeader(rest string) (section, error) {
	idx := strings.Index(rest, "=")
	if idx < 0 {
		return section{}, fmt.Errorf("rules: malformed section header %q", rest)
	}
	fields := strings.Fields(rest[:idx])
	component := strings.TrimSpace(rest[idx+1:])
	if len(fields) == 0 || component == "" {
		return section{}, fmt.Errorf("rules: malformed section header %q", rest)
	}
	return section{Fields: fields, Component: component}, nil
}

func parseEntry(line string, numFields int) (entry, error) {
	idx := strings.LastIndex(line, "=")
	if idx < 0 {
		return entry{}, fmt.Errorf("rules: malformed rule line %q", line)
	}
	patterns := strings.Fields(line[:idx])
	if len(patterns) != numFields {
		return entry{}, fmt.Errorf("rules: rule line %q has %d fields, want %d", line, len(patterns), numFields)
	}
	value := strings.TrimSpace(line[idx+1:])
	return entry{Patterns: patterns, Value: value}, nil
}
