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
	"testing"

	"github.com/ioregen/ioregen/internal/assert"
	"github.com/ioregen/ioregen/internal/source"
	"github.com/ioregen/ioregen/pkg/ioregs/ast"
)

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

func TestParseBasicBlock(t *testing.T) {
	srcfile := source.NewFile("basic.ioregs", []byte(basicTestSrc))

	block, errs := ParseBlock(srcfile)
	assert.Equal(t, 0, len(errs), "unexpected parse errors")
	assert.Equal(t, "BASIC_TEST", block.Name)
	assert.Equal(t, uint64(0), block.Base)
	assert.Equal(t, 2, len(block.Members))

	reg1 := block.Members[0].Register
	assert.Equal(t, "reg1", reg1.Ident)
	assert.Equal(t, uint(32), reg1.Width)
	assert.Equal(t, 4, len(reg1.Fields))

	f4 := reg1.Fields[3]
	assert.Equal(t, "f4", f4.Ident)
	assert.True(t, f4.SetToClear, "f4 should be set_to_clear")

	woReg := block.Members[1].Register
	assert.Equal(t, ast.WO, woReg.Fields[0].Access)
}

func TestParseGroup(t *testing.T) {
	src := `GROUP_TEST @ 0x0 = {
  0x0 => group regs[5] {
    0x0 => reg32 reg1 { 0 => f1 },
    0x4 => reg32 reg2 { 0..31 => f1 },
  },
}`
	srcfile := source.NewFile("group.ioregs", []byte(src))

	block, errs := ParseBlock(srcfile)
	assert.Equal(t, 0, len(errs))
	assert.Equal(t, 1, len(block.Members))

	group := block.Members[0].Group
	assert.Equal(t, "regs", group.Ident)
	assert.Equal(t, uint64(5), group.Count)
	assert.Equal(t, 2, len(group.Members))
}

func TestParseVariants(t *testing.T) {
	src := `VARIANT_TEST @ 0x0 = {
  0x0 => reg32 cr {
    14..15 => parity { 0 => NoParity, 2 => EvenParity, 3 => OddParity },
  },
}`
	srcfile := source.NewFile("variant.ioregs", []byte(src))

	block, errs := ParseBlock(srcfile)
	assert.Equal(t, 0, len(errs))

	parity := block.Members[0].Register.Fields[0]
	assert.Equal(t, 3, len(parity.Variants))
	assert.Equal(t, "EvenParity", parity.Variants[1].Ident)
	assert.Equal(t, uint64(2), parity.Variants[1].Value)
}

func TestParseInvertedRangeParsesOk(t *testing.T) {
	// spec.md §4.2/§9: an inverted range must parse successfully and fail
	// only at validation time.
	src := `INVERTED @ 0x0 = {
  0x0 => reg32 r { 31..0 => f },
}`
	srcfile := source.NewFile("inverted.ioregs", []byte(src))

	block, errs := ParseBlock(srcfile)
	assert.Equal(t, 0, len(errs))
	assert.True(t, block.Members[0].Register.Fields[0].Offset.Inverted(), "expected an inverted range")
}

func TestParseUnknownWidthFails(t *testing.T) {
	src := `BAD @ 0x0 = { 0x0 => reg7 r { 0 => f } }`
	srcfile := source.NewFile("bad.ioregs", []byte(src))

	_, errs := ParseBlock(srcfile)
	assert.True(t, len(errs) > 0, "expected a parse error for unknown width token")
}

func TestParseUnknownPropertyFails(t *testing.T) {
	src := `BAD @ 0x0 = { 0x0 => reg32 r { 0 => f: bogus } }`
	srcfile := source.NewFile("bad.ioregs", []byte(src))

	_, errs := ParseBlock(srcfile)
	assert.True(t, len(errs) > 0, "expected a parse error for unknown property")
}

func TestParseMultipleProperties(t *testing.T) {
	src := `MULTI @ 0x0 = { 0x0 => reg32 r { 0 => f: (ro, set_to_clear) } }`
	srcfile := source.NewFile("multi.ioregs", []byte(src))

	block, errs := ParseBlock(srcfile)
	assert.Equal(t, 0, len(errs))

	f := block.Members[0].Register.Fields[0]
	assert.Equal(t, ast.RO, f.Access)
	assert.True(t, f.SetToClear, "expected set_to_clear")
}

func TestParseZeroArrayCountFails(t *testing.T) {
	src := `BAD @ 0x0 = { 0x0 => reg32 r[0] { 0 => f } }`
	srcfile := source.NewFile("bad.ioregs", []byte(src))

	_, errs := ParseBlock(srcfile)
	assert.True(t, len(errs) > 0, "expected a parse error for a zero array count")
}
