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

// resolveVirtualMods computes, for each declared virtual modifier v, the
// "real mask" it binds to: the union of RealModMap over every key whose
// modmap declares membership in v (spec.md section 4.7):
//
//	real_mask(v) = OR of modmap[k] for keys k with vmodmap bit v set
//
// This must run after the xkb_symbols section (where modifier_map
// blocks and per-key vmodmap fields are compiled) has finished.
func (c *context) resolveVirtualMods() {
	for i := range c.km.VirtualMods {
		var mask uint32
		bit := uint32(1) << uint(i)
		for kc := c.km.MinKeycode; kc <= c.km.MaxKeycode && kc < len(c.km.Keys); kc++ {
			key := &c.km.Keys[kc]
			if key.VModMap&bit != 0 {
				mask |= uint32(key.RealModMap)
			}
		}
		c.km.VirtualMods[i].Mask = mask
	}
}
