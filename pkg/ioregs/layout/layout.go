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
// Package layout plans the padded byte placement of a validated block
// (spec.md §4.3), kept separate from package ioregs so the emitter
// (pkg/ioregs/emit) can depend on it without an import cycle back through
// the compiler driver.
package layout

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"

	"github.com/ioregen/ioregen/internal/casing"
	"github.com/ioregen/ioregen/internal/source"
	"github.com/ioregen/ioregen/pkg/ioregs/ast"
)

// Layout is the planned, padded placement of a block's members, produced by
// PlanLayout from a validated ast.Block (spec.md §4.3).
type Layout struct {
	Name    string
	Base    uint64
	Members []LayoutMember
	// AlignmentTests lists, for every named (non-padding) field of the
	// top-level struct, the byte offset the emitted alignment tests assert
	// against unsafe.Offsetof (spec.md §4.4.7).
	AlignmentTests []AlignmentTest
}

// LayoutMember is one slot of a planned layout: either a real member or an
// anonymous padding run inserted ahead of it.
type LayoutMember struct {
	Member  ast.Member // zero value (Kind defaults to MemberRegister, Register nil) when Padding
	Padding uint64     // size in bytes of this padding slot; 0 for a member slot
	Offset  uint64     // resolved byte offset within the parent
	Nested  *Layout    // set when Member.Kind == ast.MemberGroup, the planned interior
}

// IsPadding reports whether this slot is pure padding with no member.
func (m LayoutMember) IsPadding() bool {
	return m.Member.Register == nil && m.Member.Group == nil
}

// AlignmentTest names one field expected at a specific byte offset from the
// top of the generated layout struct.
type AlignmentTest struct {
	FieldPath string // dotted Go selector path, e.g. "Ctrl.Status"
	Offset    uint64
}

// PlanLayout walks a validated block's members in declared order,
// maintaining a running cursor and inserting padding slots wherever a
// member's declared offset runs ahead of the cursor, exactly as spec.md
// §4.3 describes. It additionally checks for field-bit overlap within each
// register, tracked with a bitset.BitSet the same way the teacher tracks
// claimed trace columns.
func PlanLayout(srcfile *source.File, block *ast.Block) (*Layout, []source.SyntaxError) {
	members, errs := planMembers(srcfile, block.Members, "")
	if len(errs) > 0 {
		return nil, errs
	}

	return &Layout{
		Name:           block.Name,
		Base:           block.Base,
		Members:        members,
		AlignmentTests: collectAlignmentTests(members, "", 0),
	}, nil
}

func planMembers(srcfile *source.File, members []ast.Member, pathPrefix string) ([]LayoutMember, []source.SyntaxError) {
	var (
		out    []LayoutMember
		cursor uint64
	)

	for _, m := range members {
		if errs := checkFieldOverlap(srcfile, m); len(errs) > 0 {
			return nil, errs
		}

		offset := m.Offset()
		if offset > cursor {
			out = append(out, LayoutMember{Padding: offset - cursor, Offset: cursor})
		}

		slot := LayoutMember{Member: m, Offset: offset}

		if m.Kind == ast.MemberGroup {
			nestedPrefix := pathPrefix + casing.ToPascalCase(m.Ident()) + "."

			nested, errs := planMembers(srcfile, m.Group.Members, nestedPrefix)
			if len(errs) > 0 {
				return nil, errs
			}

			slot.Nested = &Layout{
				Name:           m.Ident(),
				Base:           offset,
				Members:        nested,
				AlignmentTests: collectAlignmentTests(nested, nestedPrefix, 0),
			}
		}

		out = append(out, slot)
		cursor = offset + m.ByteLength()
	}

	return out, nil
}

// checkFieldOverlap reports the first pair of register fields that claim a
// common bit, using one bitset.BitSet per register sized to its width.
func checkFieldOverlap(srcfile *source.File, m ast.Member) []source.SyntaxError {
	if m.Kind != ast.MemberRegister {
		return nil
	}

	r := m.Register
	claimed := bitset.New(uint(r.Width))

	for _, f := range r.Fields {
		for i := uint64(0); i < f.Count; i++ {
			shift := f.Shift(i)

			for b := uint64(0); b < f.ElementBits(); b++ {
				pos := uint(shift + b)
				if claimed.Test(pos) {
					return []source.SyntaxError{*srcfile.SyntaxError(f.Span,
						fmt.Sprintf("field %q overlaps another field at bit %d of register %q", f.Ident, pos, r.Ident))}
				}

				claimed.Set(pos)
			}
		}
	}

	return nil
}

// collectAlignmentTests builds the dotted Go selector path and the byte
// offset from the *top* of the generated layout struct for every named
// field, recursing into nested groups (spec.md §4.4.7: "including nested
// group arrays"). baseOffset is the absolute offset of members' parent
// from the struct's own base, since a LayoutMember's own Offset is only
// relative to its immediate parent (planMembers resets its cursor to 0 for
// every nested group). When a group is itself arrayed, its field has Go
// type [N]FooGroup: selecting further into it requires indexing a concrete
// element, so the path indexes element 0 before descending.
func collectAlignmentTests(members []LayoutMember, pathPrefix string, baseOffset uint64) []AlignmentTest {
	var tests []AlignmentTest

	for _, slot := range members {
		if slot.IsPadding() {
			continue
		}

		absOffset := baseOffset + slot.Offset
		name := casing.ToPascalCase(slot.Member.Ident())

		if slot.Nested != nil {
			if slot.Member.CountOf() > 1 {
				name += "[0]"
			}

			tests = append(tests, collectAlignmentTests(slot.Nested.Members, pathPrefix+name+".", absOffset)...)
			continue
		}

		tests = append(tests, AlignmentTest{FieldPath: pathPrefix + name, Offset: absOffset})
	}

	return tests
}
