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
package ioregs

import (
	"fmt"

	"github.com/ioregen/ioregen/internal/source"
	"github.com/ioregen/ioregen/pkg/ioregs/ast"
)

// ValidateBlock checks the structural invariants of spec.md §4.2 against a
// parsed block. As with the parser, a block is abandoned at its first
// diagnostic — there is no error recovery within a single block.
func ValidateBlock(srcfile *source.File, block *ast.Block) []source.SyntaxError {
	v := &validator{srcfile: srcfile}

	return v.validateMembers(block.Members)
}

type validator struct {
	srcfile *source.File
}

func (v *validator) errorf(span source.Span, format string, args ...any) []source.SyntaxError {
	return []source.SyntaxError{*v.srcfile.SyntaxError(span, fmt.Sprintf(format, args...))}
}

// validateMembers checks offset monotonicity across a sibling member list
// (a block's top level, or a group's interior) and recurses into each
// member's own structure.
func (v *validator) validateMembers(members []ast.Member) []source.SyntaxError {
	var prevEnd uint64

	for i, m := range members {
		if i > 0 && m.Offset() < prevEnd {
			return v.errorf(m.Span(), "member %q starts at offset %d, before the previous member ends at %d",
				m.Ident(), m.Offset(), prevEnd)
		}

		prevEnd = m.Offset() + m.ByteLength()

		var errs []source.SyntaxError

		switch m.Kind {
		case ast.MemberRegister:
			errs = v.validateRegister(m.Register)
		case ast.MemberGroup:
			errs = v.validateMembers(m.Group.Members)
		}

		if len(errs) > 0 {
			return errs
		}
	}

	return nil
}

func (v *validator) validateRegister(r *ast.Register) []source.SyntaxError {
	for _, f := range r.Fields {
		if errs := v.validateField(r, f); len(errs) > 0 {
			return errs
		}
	}

	return nil
}

func (v *validator) validateField(r *ast.Register, f *ast.Field) []source.SyntaxError {
	if f.AccessCount > 1 {
		return v.errorf(f.Span, "field %q declares more than one access modifier", f.Ident)
	}

	if f.SetToClear && f.Access == ast.RO {
		return v.errorf(f.Span, "field %q cannot be both set_to_clear and ro", f.Ident)
	}

	if errs := v.validateBitBounds(r, f); len(errs) > 0 {
		return errs
	}

	if f.Count > 1 && f.Offset.BitSize()%f.Count != 0 {
		return v.errorf(f.Span, "field %q spans %d bits, not divisible by its count %d",
			f.Ident, f.Offset.BitSize(), f.Count)
	}

	return v.validateVariants(f)
}

func (v *validator) validateBitBounds(r *ast.Register, f *ast.Field) []source.SyntaxError {
	if f.Offset.Inverted() {
		return v.errorf(f.Offset.Span, "field %q has an inverted bit range (%d..%d)", f.Ident, f.Offset.Lo, f.Offset.Hi)
	}

	if f.Offset.Hi >= uint64(r.Width) {
		return v.errorf(f.Offset.Span, "field %q's high bit %d is out of bounds for a %d-bit register",
			f.Ident, f.Offset.Hi, r.Width)
	}

	return nil
}

func (v *validator) validateVariants(f *ast.Field) []source.SyntaxError {
	if len(f.Variants) == 0 {
		return nil
	}

	var (
		max        = f.ElementMask()
		seenValues = make(map[uint64]struct{}, len(f.Variants))
		seenIdents = make(map[string]struct{}, len(f.Variants))
	)

	for _, variant := range f.Variants {
		if variant.Value > max {
			return v.errorf(variant.Span, "variant %q's value %d does not fit in %d bit(s)",
				variant.Ident, variant.Value, f.ElementBits())
		}

		if _, dup := seenValues[variant.Value]; dup {
			return v.errorf(variant.Span, "variant value %d is declared more than once on field %q", variant.Value, f.Ident)
		}

		if _, dup := seenIdents[variant.Ident]; dup {
			return v.errorf(variant.Span, "variant identifier %q is declared more than once on field %q", variant.Ident, f.Ident)
		}

		seenValues[variant.Value] = struct{}{}
		seenIdents[variant.Ident] = struct{}{}
	}

	return nil
}
