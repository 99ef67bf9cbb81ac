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

package xkb

import (
	"errors"
)

var (
	// ErrNoKeymap indicates that compilation produced no keymap because
	// the session's diagnostic error count was non-zero. The rules front
	// also returns it when no rules file is found on the include path.
	ErrNoKeymap = errors.New("xkb: compilation failed, no keymap produced")

	// ErrKeycodeRange indicates an attempt to use a keycode outside the
	// keymap's declared [min_kc, max_kc] range.
	ErrKeycodeRange = errors.New("xkb: keycode out of range")

	// ErrNoSuchType indicates a key type name that does not exist in the
	// keymap's type table.
	ErrNoSuchType = errors.New("xkb: no such key type")

	// ErrTooManyGroups indicates an attempt to declare more than the
	// maximum of four groups for a single key.
	ErrTooManyGroups = errors.New("xkb: a key may have at most four groups")

	// ErrTooManyVMods indicates an attempt to declare more than eight
	// virtual modifiers.
	ErrTooManyVMods = errors.New("xkb: at most eight virtual modifiers are supported")
)
