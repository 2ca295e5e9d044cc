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
	"strings"

	"github.com/ioregen/ioregen/internal/casing"
	"github.com/ioregen/ioregen/pkg/ioregs/ast"
	"github.com/ioregen/ioregen/pkg/ioregs/layout"
)

// Block is the Emitter's entry point: it renders a fully planned block
// into one Go source file's text, named pkgName (spec.md §4.4.1's layout
// struct plus every register's storage/reader/updater/variant types,
// spec.md §4.4.2-§4.4.5).
func Block(l *layout.Layout, pkgName string, opts GenerateOptions) string {
	var b strings.Builder

	w := casing.NewIndentBuilder(&b)

	emitPackageHeader(w, pkgName, l.Name)
	emitLayoutStruct(w, l, casing.ToPascalCase(l.Name))
	emitMemberBodies(w, l.Members, opts)

	return b.String()
}

func emitPackageHeader(w casing.IndentBuilder, pkgName, blockName string) {
	w.WriteLine("// Code generated by ioregen from block ", blockName, ". DO NOT EDIT.")
	w.WriteLine("//")
	w.WriteLine("// Concurrency contract: a reader is a one-shot snapshot taken at")
	w.WriteLine("// construction; an updater accumulates field writes in memory and performs")
	w.WriteLine("// at most one read and exactly one write, on Commit, when at least one field")
	w.WriteLine("// was set (otherwise Commit touches nothing). Neither synchronizes")
	w.WriteLine("// with concurrent access to the same register from another goroutine or")
	w.WriteLine("// interrupt handler — callers must do so externally.")
	w.WriteLine("package ", pkgName)
	w.WriteLine("")
	w.WriteLine(`import ioregruntime "github.com/ioregen/ioregen/pkg/ioregs/runtime"`)
	w.WriteLine("")
}

// emitLayoutStruct writes the top-level, C-layout-compatible aggregate
// (spec.md §4.4.1): one field per planned member in declared order,
// padding members present but unexported.
func emitLayoutStruct(w casing.IndentBuilder, l *layout.Layout, typeName string) {
	w.WriteLine("// ", typeName, " is the layout of the ", l.Name,
		" block. Bind a symbol of this type to a fixed address via a linker script")
	w.WriteLine("// or, for tests, via ioregruntime.Layout over an ioregruntime.Backing.")
	w.WriteLine("type ", typeName, " struct {")

	inner := w.Indent()
	padIndex := 0

	for _, m := range l.Members {
		if m.IsPadding() {
			inner.WriteLine(fmt.Sprintf("_pad%d [%d]byte", padIndex, m.Padding))
			padIndex++

			continue
		}

		fieldName := casing.ToPascalCase(m.Member.Ident())
		fieldType := memberFieldType(m)

		inner.WriteLine(fieldName, " ", fieldType)
	}

	w.WriteLine("}")
	w.WriteLine("")
}

func memberFieldType(m layout.LayoutMember) string {
	var elemType string

	switch m.Member.Kind {
	case ast.MemberRegister:
		elemType = storageTypeName(m.Member.Register.Ident)
	case ast.MemberGroup:
		elemType = groupTypeName(m.Member.Group.Ident)
	}

	count := m.Member.CountOf()
	if count <= 1 {
		return elemType
	}

	return fmt.Sprintf("[%d]%s", count, elemType)
}

func groupTypeName(groupIdent string) string {
	return casing.ToPascalCase(groupIdent) + "Group"
}

// emitMemberBodies walks the planned member tree, emitting a group struct
// type for every nested group and delegating to emitRegisterType for every
// register, recursing into group interiors in declared order.
func emitMemberBodies(w casing.IndentBuilder, members []layout.LayoutMember, opts GenerateOptions) {
	for _, m := range members {
		if m.IsPadding() {
			continue
		}

		switch m.Member.Kind {
		case ast.MemberRegister:
			emitRegisterType(w, m.Member.Register, opts)
		case ast.MemberGroup:
			emitGroupStruct(w, m.Nested, m.Member.Group.Ident)
			emitMemberBodies(w, m.Nested.Members, opts)
		}
	}
}

func emitGroupStruct(w casing.IndentBuilder, nested *layout.Layout, groupIdent string) {
	typeName := groupTypeName(groupIdent)

	w.WriteLine("// ", typeName, " is the nested layout of the ", groupIdent, " group.")
	w.WriteLine("type ", typeName, " struct {")

	inner := w.Indent()
	padIndex := 0

	for _, m := range nested.Members {
		if m.IsPadding() {
			inner.WriteLine(fmt.Sprintf("_pad%d [%d]byte", padIndex, m.Padding))
			padIndex++

			continue
		}

		fieldName := casing.ToPascalCase(m.Member.Ident())
		fieldType := memberFieldType(m)

		inner.WriteLine(fieldName, " ", fieldType)
	}

	w.WriteLine("}")
	w.WriteLine("")
}
