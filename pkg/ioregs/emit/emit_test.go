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

// This file uses testify rather than internal/assert: SPEC_FULL.md §9
// calls for both to coexist, with the pipeline stages (lexer/parser/
// validator/layout/compile) kept on the teacher's own internal/assert
// style and this newer emit package exercising testify's
// require/assert idiom instead, per the corpus's own stretchr/testify
// usage. See DESIGN.md.
package emit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ioregen/ioregen/internal/source"
	"github.com/ioregen/ioregen/pkg/ioregs"
	"github.com/ioregen/ioregen/pkg/ioregs/emit"
	"github.com/ioregen/ioregen/pkg/ioregs/layout"
)

func planString(t *testing.T, src string) *layout.Layout {
	t.Helper()

	srcfile := source.NewFile("test.ioregs", []byte(src))

	block, errs := ioregs.ParseBlock(srcfile)
	require.Empty(t, errs, "unexpected parse errors")

	errs = ioregs.ValidateBlock(srcfile, block)
	require.Empty(t, errs, "unexpected validation errors")

	planned, errs := layout.PlanLayout(srcfile, block)
	require.Empty(t, errs, "unexpected layout errors")

	return planned
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

func TestBlockEmitsPackageHeaderAndLayoutStruct(t *testing.T) {
	planned := planString(t, basicTestSrc)

	out := emit.Block(planned, "basic_test", emit.DefaultOptions())

	assert.Contains(t, out, "package basic_test")
	assert.Contains(t, out, `import ioregruntime "github.com/ioregen/ioregen/pkg/ioregs/runtime"`)
	assert.Contains(t, out, "type BasicTest struct {")
	assert.Contains(t, out, "Reg1 Reg1")
	assert.Contains(t, out, "WoReg WoReg")
}

func TestBlockEmitsReaderAndUpdaterConstructors(t *testing.T) {
	planned := planString(t, basicTestSrc)

	out := emit.Block(planned, "basic_test", emit.DefaultOptions())

	assert.Contains(t, out, "Reg1Get")
	assert.Contains(t, out, "Reg1Update")
	assert.Contains(t, out, "cell ioregruntime.VolatileCell[uint32]")
}

func TestBlockOmitsGetterForWriteOnlyField(t *testing.T) {
	planned := planString(t, basicTestSrc)

	out := emit.Block(planned, "basic_test", emit.DefaultOptions())

	// wo_reg's f1/f2 are write-only: they get setters but no readable
	// accessor method named F1/F2 on WoRegGet.
	assert.Contains(t, out, "SetF1(v uint16) *WoRegUpdate")
	assert.NotContains(t, out, ") F1() uint16", "write-only field must not get a reader getter")
}

func TestVariantTypeNameIsFlatRegisterPlusField(t *testing.T) {
	assert.Equal(t, "CrParity", emit.VariantTypeName("cr", "parity"))
	assert.Equal(t, "CtrlMode", emit.VariantTypeName("ctrl", "mode"))
}

func TestAlignmentTestsOneFunctionPerField(t *testing.T) {
	planned := planString(t, basicTestSrc)

	out := emit.AlignmentTests(planned, "basic_test")

	assert.Contains(t, out, `"unsafe"`)
	assert.Contains(t, out, "func TestAlignmentReg1(t *testing.T)")
	assert.Contains(t, out, "func TestAlignmentWoReg(t *testing.T)")
	assert.Contains(t, out, "unsafe.Offsetof(v.Reg1)")
	assert.Contains(t, out, "uintptr(0)")
	assert.Contains(t, out, "uintptr(8)")
}

func TestBlockGroupArrayEmitsNestedStructAndArrayField(t *testing.T) {
	src := `GROUP_TEST @ 0x0 = {
		0x0 => group regs[5] {
			0x0 => reg32 reg1 { 0 => f1 },
			0x4 => reg32 reg2 { 0..31 => f1 },
		},
	}`
	planned := planString(t, src)

	out := emit.Block(planned, "group_test", emit.DefaultOptions())

	assert.Contains(t, out, "type RegsGroup struct {")
	assert.Contains(t, out, "Regs [5]RegsGroup")
}
