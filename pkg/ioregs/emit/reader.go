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
package emit

import (
	"fmt"

	"github.com/ioregen/ioregen/internal/casing"
	"github.com/ioregen/ioregen/pkg/ioregs/ast"
)

// emitReaderType writes the reader facade for a register: a value type
// holding one snapshot word taken at construction, plus one getter per
// non-write-only field (spec.md §4.4.3).
func emitReaderType(w casing.IndentBuilder, r *ast.Register, opts GenerateOptions) {
	typeName := readerTypeName(r.Ident)
	regGoType := registerGoType(r.Width)

	w.WriteLine("// ", typeName, " is a snapshot of ", r.Ident,
		" taken by a single volatile read at construction.")
	w.WriteLine("type ", typeName, " struct {")
	w.Indent().WriteLine("raw ", regGoType)
	w.WriteLine("}")
	w.WriteLine("")

	for _, f := range r.Fields {
		if f.Access == ast.WO {
			continue
		}

		emitFieldGetter(w, r, f, regGoType, opts)
	}
}

func emitFieldGetter(w casing.IndentBuilder, r *ast.Register, f *ast.Field, regGoType string, opts GenerateOptions) {
	readerType := readerTypeName(r.Ident)
	method := fieldMethodName(f.Ident)
	mask := fmt.Sprintf("0x%x", f.ElementMask())
	indexed := f.Count > 1

	sig := "func (g " + readerType + ") " + method + "("
	if indexed {
		sig += "index int"
	}

	sig += ") " + getterReturnType(r, f)

	w.WriteLine(sig, " {")
	inner := w.Indent()
	emitIndexBoundsCheck(inner, f, indexed, opts)

	shiftExpr := fieldShiftExpr(f, indexed)

	if opts.X86BMI1Optimization {
		// shiftExpr is an int expression when indexed (it involves the
		// int `index` parameter); ExtractBits takes uint shift/bits, so
		// cast explicitly rather than rely on an implicit conversion Go
		// doesn't perform.
		inner.WriteLine("v := ", regGoType, "(ioregruntime.ExtractBits(uint64(g.raw), uint(", shiftExpr, "), ",
			fmt.Sprintf("%d", f.ElementBits()), "))")
	} else {
		inner.WriteLine("v := (g.raw >> (", shiftExpr, ")) & ", mask)
	}

	switch {
	case len(f.Variants) > 0:
		typeName := VariantTypeName(r.Ident, f.Ident)
		if f.IsExhaustive() || opts.UnsafeVariantUnchecked {
			inner.WriteLine("return ", uncheckedConversionName(typeName), "(", regGoType, "(v))")
		} else {
			inner.WriteLine("variant, ok := ", checkedConversionName(typeName), "(", regGoType, "(v))")
			inner.WriteLine("if !ok {")
			inner.Indent().WriteLine(`panic("ioregen: unrecognised `, f.Ident, ` value")`)
			inner.WriteLine("}")
			inner.WriteLine("return variant")
		}
	case f.ElementBits() == 1:
		inner.WriteLine("return v != 0")
	default:
		inner.WriteLine("return ", goType(f.ElementBits()), "(v)")
	}

	w.WriteLine("}")
	w.WriteLine("")
}

// getterReturnType mirrors the three cases of spec.md §4.4.3.
func getterReturnType(r *ast.Register, f *ast.Field) string {
	switch {
	case len(f.Variants) > 0:
		return VariantTypeName(r.Ident, f.Ident)
	case f.ElementBits() == 1:
		return "bool"
	default:
		return goType(f.ElementBits())
	}
}

// fieldShiftExpr renders the bit shift for a field access: a constant for a
// scalar field, or base_shift + element_bits*index for an arrayed one.
func fieldShiftExpr(f *ast.Field, indexed bool) string {
	if !indexed {
		return fmt.Sprintf("%d", f.Shift(0))
	}

	return fmt.Sprintf("%d + %d*index", f.Offset.Lo, f.ElementBits())
}
