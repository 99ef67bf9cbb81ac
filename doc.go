// Copyright 2025 The TCell Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package xkb provides the compiled semantic model of a keyboard
// description: keycodes, key types, per-key multi-group/multi-level
// symbols and actions, virtual modifiers, indicator maps, the modifier
// map, and an optional physical geometry. A Keymap is produced by the
// xkbcomp package's compiler front end and consumed read-only by the
// xkbstate package's runtime state engine.
package xkb
