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

// VariantTypeName returns the exported Go type name for a field's variant
// enum. Variant types live flat in the block's package, prefixed with their
// owning register's name, rather than nested in a per-register
// sub-package — see DESIGN.md for why this repo chose flat naming over one
// Go package per register.
func VariantTypeName(regIdent, fieldIdent string) string {
	return casing.ToPascalCase(regIdent) + casing.ToPascalCase(fieldIdent)
}

// emitVariantType writes a field's variant enum type, its constants, and
// its primitive<->variant conversion function(s), per spec.md §4.4.5.
// regGoType is the register's own storage type, since the spec requires a
// variant type's declared representation to equal the register's storage
// width, not the field's narrower element width.
func emitVariantType(w casing.IndentBuilder, regIdent, regGoType string, f *ast.Field, opts GenerateOptions) {
	typeName := VariantTypeName(regIdent, f.Ident)

	w.WriteLine("// ", typeName, " is the set of legal values of the ", f.Ident, " field of ", regIdent, ".")
	w.WriteLine("type ", typeName, " ", regGoType)
	w.WriteLine("")
	w.WriteLine("const (")

	inner := w.Indent()
	for _, v := range f.Variants {
		inner.WriteLine(variantConstName(typeName, v.Ident), " ", typeName, " = ", fmt.Sprintf("%d", v.Value))
	}

	w.WriteLine(")")
	w.WriteLine("")

	if f.IsExhaustive() || opts.UnsafeVariantUnchecked {
		emitUncheckedConversion(w, typeName, regGoType)
	} else {
		emitCheckedConversion(w, typeName, regGoType, f)
	}
}

func variantConstName(typeName, variantIdent string) string {
	return typeName + casing.ToPascalCase(variantIdent)
}

func emitUncheckedConversion(w casing.IndentBuilder, typeName, regGoType string) {
	fnName := uncheckedConversionName(typeName)

	w.WriteLine("// ", fnName, " converts a raw primitive value into ", typeName,
		" without checking it against the declared variants.")
	w.WriteLine("func ", fnName, "(v ", regGoType, ") ", typeName, " {")
	w.Indent().WriteLine("return ", typeName, "(v)")
	w.WriteLine("}")
	w.WriteLine("")
}

func emitCheckedConversion(w casing.IndentBuilder, typeName, regGoType string, f *ast.Field) {
	fnName := checkedConversionName(typeName)
	inner := w.Indent()

	w.WriteLine("// ", fnName, " converts a raw primitive value into ", typeName,
		", reporting false if v does not match any declared variant.")
	w.WriteLine("func ", fnName, "(v ", regGoType, ") (", typeName, ", bool) {")
	inner.WriteLine("switch ", typeName, "(v) {")

	for _, variant := range f.Variants {
		name := variantConstName(typeName, variant.Ident)
		inner.WriteLine("case ", name, ":")
		inner.Indent().WriteLine("return ", name, ", true")
	}

	inner.WriteLine("default:")
	inner.Indent().WriteLine("var zero ", typeName)
	inner.Indent().WriteLine("return zero, false")
	inner.WriteLine("}")
	w.WriteLine("}")
	w.WriteLine("")
}
