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
	"os"
	"path/filepath"

	"github.com/xkbgo/xkbgo/diag"
	"github.com/xkbgo/xkbgo"
	"github.com/xkbgo/xkbgo/xkbcomp"
)

// DefaultRulesFile is the conventional rules file name consulted when
// an RMLVO selection does not name one explicitly.
const DefaultRulesFile = "evdev"

// rulesPath finds the rules file for rmlvo.Rules (or DefaultRulesFile)
// under includePath's "rules" subdirectory.
func rulesPath(includePath xkbcomp.IncludePath, name string) (string, error) {
	if name == "" {
		name = DefaultRulesFile
	}
	for _, root := range includePath {
		p := filepath.Join(root, "rules", name)
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", xkb.ErrNoKeymap
}

// CompileFromRules resolves rmlvo against the named rules file and
// compiles the resulting component set into a keymap in one step
// (spec.md section 6's end-to-end entry point).
func CompileFromRules(rmlvo RMLVO, includePath xkbcomp.IncludePath) (*xkb.Keymap, *diag.Sink, error) {
	path, err := rulesPath(includePath, rmlvo.Rules)
	if err != nil {
		return nil, nil, err
	}
	rs, err := Load(path)
	if err != nil {
		return nil, nil, err
	}
	names, err := rs.Resolve(rmlvo)
	if err != nil {
		return nil, nil, err
	}
	names = xkbcomp.CanonicalizeComponentNames(xkbcomp.ComponentNames{}, names)
	return xkbcomp.CompileFromComponents(names, includePath)
}
