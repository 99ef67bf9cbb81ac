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
	"strings"

	"github.com/xkbgo/xkbgo/expr"
	"github.com/xkbgo/xkbgo"
)

var actionKindNames = map[string]xkb.ActionKind{
	"none":           xkb.ActionNone,
	"setmods":        xkb.ActionSetMods,
	"latchmods":      xkb.ActionLatchMods,
	"lockmods":       xkb.ActionLockMods,
	"setgroup":       xkb.ActionSetGroup,
	"latchgroup":     xkb.ActionLatchGroup,
	"lockgroup":      xkb.ActionLockGroup,
	"terminateserver": xkb.ActionTerminate,
	"switchscreen":   xkb.ActionSwitchScreen,
	"setcontrols":    xkb.ActionSetControls,
	"lockcontrols":   xkb.ActionLockControls,
	"private":        xkb.ActionPrivate,
	"redirectkey":    xkb.ActionRedirectKey,
	"movepointer":    xkb.ActionPointer,
	"pointerbutton":  xkb.ActionPointer,
	"message":        xkb.ActionMessage,
}

// compileAction resolves an OpActionDecl expression (e.g.
// "SetMods(modifiers=Shift,clearLocks)") into an Action value (spec.md
// section 4.6's action statement grammar).
func (c *context) compileAction(e *expr.Expr) (xkb.Action, error) {
	if e == nil || e.Op != expr.OpActionDecl {
		return xkb.Action{}, fmt.Errorf("expected action call expression")
	}
	kind, ok := actionKindNames[strings.ToLower(e.Name)]
	if !ok {
		return xkb.Action{}, fmt.Errorf("unknown action %q", e.Name)
	}
	act := xkb.Action{Kind: kind}
	for _, arg := range e.Args {
		if arg.Op == expr.OpValue && arg.Kind == expr.KindIdent {
			switch strings.ToLower(arg.Ident) {
			case "clearlocks":
				act.Flags |= xkb.FlagClearLocks
			case "latchtolock":
				act.Flags |= xkb.FlagLatchToLock
			}
			continue
		}
		if arg.Op != expr.OpField {
			continue
		}
		switch strings.ToLower(arg.Field) {
		case "modifiers", "mods":
			act.Mods = c.resolveModMask(arg.Right)
		case "group":
			g, err := resolveGroupDelta(arg.Right)
			if err != nil {
				return act, err
			}
			act.Group = g
			if !isRelativeGroup(arg.Right) {
				act.Flags |= xkb.FlagGroupAbsolute
			}
		case "clearlocks":
			if b, err := expr.ResolveBoolean(arg.Right); err == nil && b {
				act.Flags |= xkb.FlagClearLocks
			}
		case "latchtolock":
			if b, err := expr.ResolveBoolean(arg.Right); err == nil && b {
				act.Flags |= xkb.FlagLatchToLock
			}
		case "usemodmapmods":
			if b, err := expr.ResolveBoolean(arg.Right); err == nil && b {
				act.Flags |= xkb.FlagUseModMapMods
			}
		}
	}
	return act, nil
}

// resolveGroupDelta accepts either an absolute group number ("3") or a
// signed relative delta ("+1", "-1"), per spec.md section 4.6's SetGroup
// grammar. A relative delta's value is used as-is; an absolute group
// number is 1-based in source and converted to 0-based here.
func resolveGroupDelta(e *expr.Expr) (int, error) {
	v, err := expr.ResolveInt(e)
	if err != nil {
		return 0, err
	}
	if !isRelativeGroup(e) && v >= 1 {
		v-- // absolute groups are written 1-based in source
	}
	return int(v), nil
}

func isRelativeGroup(e *expr.Expr) bool {
	return e != nil && (e.Op == expr.OpUnaryPlus || e.Op == expr.OpNegate)
}
