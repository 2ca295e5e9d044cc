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
)

func parseAndValidate(t *testing.T, src string) []source.SyntaxError {
	t.Helper()

	srcfile := source.NewFile("test.ioregs", []byte(src))

	block, errs := ParseBlock(srcfile)
	assert.Equal(t, 0, len(errs), "unexpected parse errors")

	return ValidateBlock(srcfile, block)
}

func TestValidateBasicBlockOk(t *testing.T) {
	errs := parseAndValidate(t, basicTestSrc)
	assert.Equal(t, 0, len(errs), "expected no validation errors")
}

func TestValidateRejectsInvertedRange(t *testing.T) {
	src := `INVERTED @ 0x0 = { 0x0 => reg32 r { 31..0 => f } }`
	errs := parseAndValidate(t, src)
	assert.True(t, len(errs) > 0, "expected an inverted range to be rejected")
}

func TestValidateRejectsOutOfBoundsBit(t *testing.T) {
	src := `BAD @ 0x0 = { 0x0 => reg8 r { 0..8 => f } }`
	errs := parseAndValidate(t, src)
	assert.True(t, len(errs) > 0, "expected a bit out of a reg8's bounds to be rejected")
}

func TestValidateRejectsSetToClearWithRO(t *testing.T) {
	src := `BAD @ 0x0 = { 0x0 => reg32 r { 0 => f: (ro, set_to_clear) } }`
	errs := parseAndValidate(t, src)
	assert.True(t, len(errs) > 0, "expected set_to_clear+ro to be rejected")
}

func TestValidateRejectsMultipleAccessModifiers(t *testing.T) {
	src := `BAD @ 0x0 = { 0x0 => reg32 r { 0 => f: (ro, wo) } }`
	errs := parseAndValidate(t, src)
	assert.True(t, len(errs) > 0, "expected more than one access modifier to be rejected")
}

func TestValidateRejectsIndivisibleFieldArray(t *testing.T) {
	src := `BAD @ 0x0 = { 0x0 => reg32 r { 0..4 => f[2] } }`
	errs := parseAndValidate(t, src)
	assert.True(t, len(errs) > 0, "expected a 5-bit span not divisible by count 2 to be rejected")
}

func TestValidateRejectsNonMonotonicOffsets(t *testing.T) {
	src := `BAD @ 0x0 = {
		0x4 => reg32 a { 0 => f },
		0x0 => reg32 b { 0 => f },
	}`
	errs := parseAndValidate(t, src)
	assert.True(t, len(errs) > 0, "expected a member starting before its predecessor ends to be rejected")
}

func TestValidateRejectsOverlappingMembers(t *testing.T) {
	src := `BAD @ 0x0 = {
		0x0 => reg32 a { 0 => f },
		0x2 => reg32 b { 0 => f },
	}`
	errs := parseAndValidate(t, src)
	assert.True(t, len(errs) > 0, "expected b (offset 2) to overlap a's 4-byte span")
}

func TestValidateRejectsVariantValueOutOfRange(t *testing.T) {
	src := `BAD @ 0x0 = { 0x0 => reg32 r { 0..1 => f { 4 => Bad } } }`
	errs := parseAndValidate(t, src)
	assert.True(t, len(errs) > 0, "expected a 2-bit field's variant value of 4 to be rejected")
}

func TestValidateRejectsDuplicateVariantValue(t *testing.T) {
	src := `BAD @ 0x0 = { 0x0 => reg32 r { 0..1 => f { 0 => A, 0 => B } } }`
	errs := parseAndValidate(t, src)
	assert.True(t, len(errs) > 0, "expected a duplicate variant value to be rejected")
}

func TestValidateRejectsDuplicateVariantIdent(t *testing.T) {
	src := `BAD @ 0x0 = { 0x0 => reg32 r { 0..1 => f { 0 => A, 1 => A } } }`
	errs := parseAndValidate(t, src)
	assert.True(t, len(errs) > 0, "expected a duplicate variant identifier to be rejected")
}

func TestValidateAcceptsNestedGroup(t *testing.T) {
	src := `GROUP_TEST @ 0x0 = {
		0x0 => group regs[5] {
			0x0 => reg32 reg1 { 0 => f1 },
			0x4 => reg32 reg2 { 0..31 => f1 },
		},
	}`
	errs := parseAndValidate(t, src)
	assert.Equal(t, 0, len(errs), "expected a well-formed group to validate")
}
