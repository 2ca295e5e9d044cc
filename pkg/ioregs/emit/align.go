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
	"github.com/ioregen/ioregen/pkg/ioregs/layout"
)

// AlignmentTests renders spec.md §4.4.7's self-test plan as a standalone Go
// test file, one TestAlignmentXxx function per named field, asserting
// unsafe.Offsetof matches the planned byte offset. Emitted as real
// "testing" package tests rather than a const-expression trick, since the
// compile-time offset computation Go needs (unsafe.Offsetof) already
// produces a constant, and the corpus's own test conventions favor real
// *testing.T assertions over build-time tricks wherever either would do.
func AlignmentTests(l *layout.Layout, pkgName string) string {
	typeName := casing.ToPascalCase(l.Name)

	var b strings.Builder

	w := casing.NewIndentBuilder(&b)

	w.WriteLine("// Code generated by ioregen from block ", l.Name, ". DO NOT EDIT.")
	w.WriteLine("package ", pkgName)
	w.WriteLine("")
	w.WriteLine(`import (`)
	w.Indent().WriteLine(`"testing"`)
	w.Indent().WriteLine(`"unsafe"`)
	w.WriteLine(")")
	w.WriteLine("")

	for _, test := range l.AlignmentTests {
		emitAlignmentTest(w, typeName, test)
	}

	return b.String()
}

func emitAlignmentTest(w casing.IndentBuilder, typeName string, test layout.AlignmentTest) {
	testName := "TestAlignment" + alignmentTestIdent(test.FieldPath)

	w.WriteLine("func ", testName, "(t *testing.T) {")
	inner := w.Indent()
	inner.WriteLine("var v ", typeName)
	inner.WriteLine("got := unsafe.Offsetof(v.", test.FieldPath, ")")
	inner.WriteLine("if want := uintptr(", fmt.Sprintf("%d", test.Offset), "); got != want {")
	inner.Indent().WriteLine(`t.Fatalf("`, test.FieldPath, ` offset = %d, want %d", got, want)`)
	inner.WriteLine("}")
	w.WriteLine("}")
	w.WriteLine("")
}

// alignmentTestIdent turns a dotted, possibly-indexed Go selector path
// ("Regs[0].Reg1") into a valid Go identifier fragment ("Regs0Reg1") by
// dropping the characters a selector needs but an identifier can't contain.
func alignmentTestIdent(fieldPath string) string {
	replacer := strings.NewReplacer(".", "", "[", "", "]", "")
	return replacer.Replace(fieldPath)
}
