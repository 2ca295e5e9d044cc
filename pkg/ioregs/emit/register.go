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
	"github.com/ioregen/ioregen/internal/casing"
	"github.com/ioregen/ioregen/pkg/ioregs/ast"
)

// emitRegisterType writes one register's storage type, its Reader/Updater
// constructors (spec.md §4.4.2), any variant enum types its fields declare,
// then the reader and updater facades themselves.
func emitRegisterType(w casing.IndentBuilder, r *ast.Register, opts GenerateOptions) {
	storageType := storageTypeName(r.Ident)
	readerType := readerTypeName(r.Ident)
	updaterType := updaterTypeName(r.Ident)
	regGoType := registerGoType(r.Width)

	for _, f := range r.Fields {
		if len(f.Variants) > 0 {
			emitVariantType(w, r.Ident, regGoType, f, opts)
		}
	}

	w.WriteLine("// ", storageType, " is the storage for the ", r.Ident, " register.")
	w.WriteLine("type ", storageType, " struct {")
	w.Indent().WriteLine("cell ioregruntime.VolatileCell[", regGoType, "]")
	w.WriteLine("}")
	w.WriteLine("")

	w.WriteLine("// Reader returns a snapshot of ", r.Ident, " taken by a single volatile read.")
	w.WriteLine("func (s *", storageType, ") Reader() ", readerType, " {")
	w.Indent().WriteLine("return ", readerType, "{raw: s.cell.Load()}")
	w.WriteLine("}")
	w.WriteLine("")

	if r.IsWriteOnly() {
		w.WriteLine("// Updater returns a fresh updater; every field of ", r.Ident,
			" is write-only, so Commit never reads the register and unwritten bits are zero.")
	} else {
		w.WriteLine("// Updater returns a fresh updater that merges writes with ", r.Ident,
			"'s current contents on Commit.")
	}
	w.WriteLine("func (s *", storageType, ") Updater() *", updaterType, " {")
	w.Indent().WriteLine("return &", updaterType, "{storage: s}")
	w.WriteLine("}")
	w.WriteLine("")

	w.WriteLine("// UpdaterIgnoringState returns a fresh updater that commits only the bits it")
	w.WriteLine("// sets, treating unwritten bits as zero rather than reading the register first.")
	w.WriteLine("func (s *", storageType, ") UpdaterIgnoringState() *", updaterType, " {")
	w.Indent().WriteLine("return &", updaterType, "{storage: s, writeOnly: true}")
	w.WriteLine("}")
	w.WriteLine("")

	emitReaderType(w, r, opts)
	emitUpdaterType(w, r, opts)
}
