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
package ast

import "github.com/ioregen/ioregen/internal/source"

// Access is the access-modifier of a field: read-write (the default),
// read-only, or write-only.
type Access int

// The three access modifiers a field may carry.
const (
	RW Access = iota
	RO
	WO
)

// String renders the modifier the way it appears in the DSL.
func (a Access) String() string {
	switch a {
	case RO:
		return "ro"
	case WO:
		return "wo"
	default:
		return "rw"
	}
}

// BitOffset is a field's bit-span within its register: either a single bit
// (Lo==Hi, Single true) or an inclusive lo..hi range. Lo and Hi are kept as
// parsed even when Hi < Lo — spec.md §4.1 requires an inverted range to
// parse successfully and fail only at validation time.
type BitOffset struct {
	Lo     uint64
	Hi     uint64
	Single bool
	Span   source.Span
}

// Inverted reports whether this is a ranged offset declared backwards
// (hi < lo), the one shape the grammar accepts but validation must reject.
func (o BitOffset) Inverted() bool {
	return !o.Single && o.Hi < o.Lo
}

// BitSize returns the number of bits spanned. Only meaningful once
// validation has confirmed the offset is not Inverted.
func (o BitOffset) BitSize() uint64 {
	if o.Single {
		return 1
	}

	return o.Hi - o.Lo + 1
}

// Variant names one legal value a field may hold.
type Variant struct {
	Ident string
	Value uint64
	Span  source.Span
}

// Field is one named bitfield of a register.
type Field struct {
	Ident        string
	Offset       BitOffset
	Count        uint64 // array count; 1 when not declared as an array
	Variants     []Variant
	Access       Access
	AccessCount  int // number of explicit access-modifier properties seen; >1 is an error
	SetToClear   bool
	Span         source.Span
}

// ElementBits returns the bit-width of a single element: for an arrayed
// field this is the full span divided by Count (spec.md §3 requires this
// divide evenly; the validator checks that).
func (f *Field) ElementBits() uint64 {
	return f.Offset.BitSize() / f.Count
}

// Shift returns the bit position of element index within the register,
// i.e. base_shift + element_bits*index (spec.md §4.4.3/§4.4.4).
func (f *Field) Shift(index uint64) uint64 {
	return f.Offset.Lo + f.ElementBits()*index
}

// ElementMask returns the ones-mask covering a single element, unshifted.
func (f *Field) ElementMask() uint64 {
	bits := f.ElementBits()
	if bits >= 64 {
		return ^uint64(0)
	}

	return (uint64(1) << bits) - 1
}

// IsExhaustive reports whether the declared variants cover every value an
// element of this field's width can hold (spec.md §4.4.3's condition for
// selecting a total, unchecked primitive→variant conversion).
func (f *Field) IsExhaustive() bool {
	if len(f.Variants) == 0 {
		return false
	}

	bits := f.ElementBits()
	if bits >= 64 {
		return false // 2^64 variants is not a realistic DSL input
	}

	return uint64(len(f.Variants)) == uint64(1)<<bits
}
