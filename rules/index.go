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

	"gopkg.in/yaml.v3"

	"github.com/xkbgo/xkbgo/xkbcomp"
)

// ComponentIndex is a cached listing of the component files available
// under an include path, keyed by section kind ("xkb_keycodes",
// "xkb_types", "xkb_compat", "xkb_symbols", "xkb_geometry"). Building this index means walking
// every include root's five subdirectories; for a large shared
// installation that listing is worth caching to disk between runs.
type ComponentIndex struct {
	Components map[string][]string `yaml:"components"`
}

// BuildComponentIndex lists every component file under includePath for
// each of the five section kinds.
func BuildComponentIndex(includePath xkbcomp.IncludePath) (*ComponentIndex, error) {
	idx := &ComponentIndex{Components: make(map[string][]string)}
	for _, kind := range []string{"xkb_keycodes", "xkb_types", "xkb_compat", "xkb_symbols", "xkb_geometry"} {
		names, err := xkbcomp.ListComponents(includePath, kind)
		if err != nil {
			continue
		}
		idx.Components[kind] = names
	}
	return idx, nil
}

// SaveComponentIndex writes idx to path as YAML.
func SaveComponentIndex(idx *ComponentIndex, path string) error {
	data, err := yaml.Marshal(idx)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// LoadComponentIndex reads a previously saved ComponentIndex from path.
func LoadComponentIndex(path string) (*ComponentIndex, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var idx ComponentIndex
	if err := yaml.Unmarshal(data, &idx); err != nil {
		return nil, err
	}
	return &idx, nil
}
