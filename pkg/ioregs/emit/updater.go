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

// emitUpdaterType writes the updater facade for a register: an accumulator
// that OR/AND-masks field writes into a running value+mask pair and
// commits them with a single read-modify-write on Commit() (spec.md
// §4.4.4).
func emitUpdaterType(w casing.IndentBuilder, r *ast.Register, opts GenerateOptions) {
	typeName := updaterTypeName(r.Ident)
	storageType := storageTypeName(r.Ident)
	regGoType := registerGoType(r.Width)

	w.WriteLine("// ", typeName, " accumulates field writes to ", r.Ident,
		" and commits them atomically when Commit is called.")
	w.WriteLine("type ", typeName, " struct {")

	fields := w.Indent()
	fields.WriteLine("storage *", storageType)
	fields.WriteLine("value ", regGoType)
	fields.WriteLine("mask ", regGoType)
	fields.WriteLine("writeOnly bool")
	w.WriteLine("}")
	w.WriteLine("")

	if clearMask := registerClearMask(r); clearMask != 0 {
		w.WriteLine("const ", clearMaskConstName(r.Ident), " ", regGoType, " = ", fmt.Sprintf("0x%x", clearMask))
		w.WriteLine("")
	}

	for _, f := range r.Fields {
		if f.Access == ast.RO {
			continue
		}

		if f.SetToClear {
			emitFieldClearer(w, r, f, regGoType, opts)
		} else {
			emitFieldSetter(w, r, f, regGoType, opts)
		}
	}

	emitCommit(w, r, regGoType)
}

// registerClearMask unions the ones-mask of every set_to_clear field,
// shifted into its register position, used by Commit's formula.
func registerClearMask(r *ast.Register) uint64 {
	var mask uint64

	for _, f := range r.Fields {
		if !f.SetToClear {
			continue
		}

		for i := uint64(0); i < f.Count; i++ {
			mask |= f.ElementMask() << f.Shift(i)
		}
	}

	return mask
}

func emitFieldSetter(w casing.IndentBuilder, r *ast.Register, f *ast.Field, regGoType string, opts GenerateOptions) {
	typeName := updaterTypeName(r.Ident)
	method := fieldSetterName(f.Ident)
	indexed := f.Count > 1
	mask := fmt.Sprintf("0x%x", f.ElementMask())
	shiftExpr := fieldShiftExpr(f, indexed)

	params := "v " + getterReturnType(r, f)
	if indexed {
		params = "index int, " + params
	}

	w.WriteLine("func (u *", typeName, ") ", method, "(", params, ") *", typeName, " {")
	inner := w.Indent()
	emitIndexBoundsCheck(inner, f, indexed, opts)
	inner.WriteLine("fieldMask := ", regGoType, "(", mask, ")")
	inner.WriteLine("shift := ", shiftExpr)

	if f.ElementBits() == 1 {
		inner.WriteLine("var raw ", regGoType)
		inner.WriteLine("if v {")
		inner.Indent().WriteLine("raw = 1")
		inner.WriteLine("}")
	} else {
		inner.WriteLine("raw := ", regGoType, "(v) & fieldMask")
	}

	inner.WriteLine("u.value = (u.value &^ (fieldMask << shift)) | (raw << shift)")
	inner.WriteLine("u.mask |= fieldMask << shift")
	inner.WriteLine("return u")
	w.WriteLine("}")
	w.WriteLine("")
}

func emitFieldClearer(w casing.IndentBuilder, r *ast.Register, f *ast.Field, regGoType string, opts GenerateOptions) {
	typeName := updaterTypeName(r.Ident)
	method := fieldClearerName(f.Ident)
	indexed := f.Count > 1
	mask := fmt.Sprintf("0x%x", f.ElementMask())
	shiftExpr := fieldShiftExpr(f, indexed)

	params := ""
	if indexed {
		params = "index int"
	}

	w.WriteLine("func (u *", typeName, ") ", method, "(", params, ") *", typeName, " {")
	inner := w.Indent()
	emitIndexBoundsCheck(inner, f, indexed, opts)
	inner.WriteLine("fieldMask := ", regGoType, "(", mask, ")")
	inner.WriteLine("shift := ", shiftExpr)
	inner.WriteLine("u.value |= fieldMask << shift")
	inner.WriteLine("u.mask |= fieldMask << shift")
	inner.WriteLine("return u")
	w.WriteLine("}")
	w.WriteLine("")
}

// emitIndexBoundsCheck emits the same arrayed-access panic the reader
// issues (reader.go's emitFieldGetter) when field_count_checks is enabled,
// per spec.md §4.5's "optional array-index bounds checks" and §6's feature
// table ("arrayed setters").
func emitIndexBoundsCheck(w casing.IndentBuilder, f *ast.Field, indexed bool, opts GenerateOptions) {
	if !indexed || !opts.FieldCountChecks {
		return
	}

	w.WriteLine("if index < 0 || index >= ", fmt.Sprintf("%d", f.Count), " {")
	w.Indent().WriteLine(`panic("ioregen: `, f.Ident, ` index out of range")`)
	w.WriteLine("}")
}

func emitCommit(w casing.IndentBuilder, r *ast.Register, regGoType string) {
	typeName := updaterTypeName(r.Ident)
	clearMask := clearMaskConstName(r.Ident)

	if registerClearMask(r) == 0 {
		clearMask = "0"
	}

	w.WriteLine("// Commit issues at most one volatile read (to merge with the register's")
	w.WriteLine("// current contents) and exactly one volatile write, if any field was set.")
	w.WriteLine("func (u *", typeName, ") Commit() {")
	inner := w.Indent()
	inner.WriteLine("if u.mask == 0 {")
	inner.Indent().WriteLine("return")
	inner.WriteLine("}")
	inner.WriteLine("")

	if r.IsWriteOnly() {
		inner.WriteLine("var initial ", regGoType)
		inner.WriteLine("")
	} else {
		inner.WriteLine("var initial ", regGoType)
		inner.WriteLine("if !u.writeOnly {")
		inner.Indent().WriteLine("initial = u.storage.cell.Load()")
		inner.WriteLine("}")
		inner.WriteLine("")
	}

	inner.WriteLine("committed := u.value | (initial &^ ", clearMask, " &^ u.mask)")
	inner.WriteLine("u.storage.cell.Store(committed)")
	w.WriteLine("}")
	w.WriteLine("")
}
