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
package layout_test

import (
	"testing"

	"github.com/ioregen/ioregen/internal/assert"
	"github.com/ioregen/ioregen/internal/source"
	"github.com/ioregen/ioregen/pkg/ioregs"
	"github.com/ioregen/ioregen/pkg/ioregs/layout"
)

func planString(t *testing.T, src string) *layout.Layout {
	t.Helper()

	srcfile := source.NewFile("test.ioregs", []byte(src))

	block, errs := ioregs.ParseBlock(srcfile)
	assert.Equal(t, 0, len(errs), "unexpected parse errors")

	if errs := ioregs.ValidateBlock(srcfile, block); len(errs) > 0 {
		t.Fatalf("unexpected validation errors: %v", errs)
	}

	planned, errs := layout.PlanLayout(srcfile, block)
	assert.Equal(t, 0, len(errs), "unexpected layout errors")

	return planned
}

func TestPlanLayoutInsertsPadding(t *testing.T) {
	src := `PAD_TEST @ 0x0 = {
		0x0 => reg32 a { 0 => f },
		0x8 => reg32 b { 0 => f },
	}`
	planned := planString(t, src)

	// a (4 bytes), then a 4-byte pad slot, then b.
	assert.Equal(t, 3, len(planned.Members))
	assert.True(t, planned.Members[1].IsPadding(), "expected a padding slot between a and b")
	assert.Equal(t, uint64(4), planned.Members[1].Padding)
	assert.Equal(t, uint64(8), planned.Members[2].Offset)
}

const basicTestSrc = `BASIC_TEST @ 0x0 = {
	0x0 => reg32 reg1 {
		0 => f1,
		1..3 => f2,
		16..24 => f3,
		25 => f4: set_to_clear,
	},
	0x8 => reg32 wo_reg {
		0..15 => f1: wo,
		16..31 => f2: wo,
	},
}`

func TestPlanLayoutNoPaddingWhenContiguous(t *testing.T) {
	src := `CONTIG_TEST @ 0x0 = {
		0x0 => reg32 a { 0 => f },
		0x4 => reg32 b { 0 => f },
	}`
	planned := planString(t, src)

	for _, m := range planned.Members {
		assert.False(t, m.IsPadding(), "expected no padding for a contiguous block")
	}
}

func TestPlanLayoutAlignmentTests(t *testing.T) {
	planned := planString(t, basicTestSrc)

	assert.Equal(t, 2, len(planned.AlignmentTests))
	assert.Equal(t, "Reg1", planned.AlignmentTests[0].FieldPath)
	assert.Equal(t, uint64(0), planned.AlignmentTests[0].Offset)
	assert.Equal(t, "WoReg", planned.AlignmentTests[1].FieldPath)
	assert.Equal(t, uint64(8), planned.AlignmentTests[1].Offset)
}

func TestPlanLayoutRejectsOverlappingFields(t *testing.T) {
	src := `BAD @ 0x0 = { 0x0 => reg32 r { 0..3 => f1, 2..5 => f2 } }`
	srcfile := source.NewFile("bad.ioregs", []byte(src))

	block, errs := ioregs.ParseBlock(srcfile)
	assert.Equal(t, 0, len(errs))
	assert.Equal(t, 0, len(ioregs.ValidateBlock(srcfile, block)))

	_, errs = layout.PlanLayout(srcfile, block)
	assert.True(t, len(errs) > 0, "expected overlapping fields f1/f2 to be rejected")
}

func TestPlanLayoutGroupStride(t *testing.T) {
	src := `GROUP_TEST @ 0x0 = {
		0x0 => group regs[5] {
			0x0 => reg32 reg1 { 0 => f1 },
			0x4 => reg32 reg2 { 0..31 => f1 },
		},
	}`
	planned := planString(t, src)

	assert.Equal(t, 1, len(planned.Members))

	group := planned.Members[0]
	assert.Equal(t, uint64(5), group.Member.CountOf())
	assert.Equal(t, 2, len(group.Nested.Members))
	// Stride of one instance is 8 bytes (reg1 + reg2), so 5 instances span 40.
	assert.Equal(t, uint64(40), group.Member.ByteLength())
}

// An arrayed group's alignment test path must index element 0 (its Go
// field type is [N]FooGroup, so selecting further requires a concrete
// element), and the asserted offset must be cumulative from the top
// struct, not merely relative to the group's own start.
func TestPlanLayoutAlignmentTestsIndexArrayedGroupAtNonzeroOffset(t *testing.T) {
	src := `GROUP_TEST @ 0x0 = {
		0x0 => reg32 header { 0 => f1 },
		0x4 => group regs[5] {
			0x0 => reg32 reg1 { 0 => f1 },
			0x4 => reg32 reg2 { 0 => f1 },
		},
	}`
	planned := planString(t, src)

	assert.Equal(t, 3, len(planned.AlignmentTests))
	assert.Equal(t, "Header", planned.AlignmentTests[0].FieldPath)
	assert.Equal(t, uint64(0), planned.AlignmentTests[0].Offset)
	assert.Equal(t, "Regs[0].Reg1", planned.AlignmentTests[1].FieldPath)
	assert.Equal(t, uint64(4), planned.AlignmentTests[1].Offset)
	assert.Equal(t, "Regs[0].Reg2", planned.AlignmentTests[2].FieldPath)
	assert.Equal(t, uint64(8), planned.AlignmentTests[2].Offset)
}
