// Copyright The ioregen Authors
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

// Package runtime holds the small amount of real, compiled (not generated)
// Go code every emitted block depends on: the volatile-access primitive and
// a byte-slice-backed stand-in for a real MMIO mapping, letting generated
// accessors be exercised in tests without hardware.
//
// Unlike the rest of this repository, code in this package ships to and
// runs in the consumer's binary — it is the one piece of the system that
// is not purely generated text.
package runtime

import "sync/atomic"

// Cell is the set of widths a VolatileCell may hold, matching the register
// widths the DSL accepts (reg8/reg16/reg32/reg64).
type Cell interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// VolatileCell wraps a fixed-width unsigned integer behind a single
// load/store bus transaction. Go has no language-level `volatile`
// qualifier; this type is the realization spec.md's "volatile cell" maps
// onto. For the 32- and 64-bit widths it delegates to sync/atomic's
// Load/Store, the stdlib's own single-instruction, non-reorderable access
// primitive. sync/atomic has no 8- or 16-bit equivalent, so those widths
// fall back to a direct dereference — still a single load or store
// instruction on every architecture Go supports, because the field is
// naturally aligned, but without sync/atomic's additional happens-before
// guarantee against concurrent access from other goroutines. Generated
// accessors never share a VolatileCell across goroutines without external
// synchronization, matching spec.md §5's "interrupt-unsafe, caller
// synchronizes" contract.
//
// A VolatileCell must never be copied once placed in a layout struct; every
// generated storage type embeds it by value at a fixed offset and only ever
// takes its address.
type VolatileCell[T Cell] struct {
	raw T
}

// Load performs one volatile read of the cell.
func (c *VolatileCell[T]) Load() T {
	switch p := any(&c.raw).(type) {
	case *uint8:
		return T(*p)
	case *uint16:
		return T(*p)
	case *uint32:
		return T(atomic.LoadUint32(p))
	case *uint64:
		return T(atomic.LoadUint64(p))
	default:
		panic("ioregen: unsupported VolatileCell width")
	}
}

// Store performs one volatile write of the cell.
func (c *VolatileCell[T]) Store(v T) {
	switch p := any(&c.raw).(type) {
	case *uint8:
		*p = uint8(v)
	case *uint16:
		*p = uint16(v)
	case *uint32:
		atomic.StoreUint32(p, uint32(v))
	case *uint64:
		atomic.StoreUint64(p, uint64(v))
	default:
		panic("ioregen: unsupported VolatileCell width")
	}
}
