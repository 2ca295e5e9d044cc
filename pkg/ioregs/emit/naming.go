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

import "github.com/ioregen/ioregen/internal/casing"

// Naming deliberately departs from spec.md §4.4.6's literal snake_case
// scheme (a Rust convention) in favor of idiomatic exported Go identifiers;
// see DESIGN.md for this decision. Structural naming (storage/reader/
// updater suffixes, Set/Clear prefixes) is unchanged.

// storageTypeName is the register storage type: CamelCase(register).
func storageTypeName(regIdent string) string {
	return casing.ToPascalCase(regIdent)
}

// readerTypeName is the storage type name with a "Get" suffix.
func readerTypeName(regIdent string) string {
	return storageTypeName(regIdent) + "Get"
}

// updaterTypeName is the storage type name with an "Update" suffix.
func updaterTypeName(regIdent string) string {
	return storageTypeName(regIdent) + "Update"
}

// fieldMethodName is the exported getter name for a field.
func fieldMethodName(fieldIdent string) string {
	return casing.ToPascalCase(fieldIdent)
}

// fieldSetterName is the exported setter name for a field.
func fieldSetterName(fieldIdent string) string {
	return "Set" + casing.ToPascalCase(fieldIdent)
}

// fieldClearerName is the exported clearer name for a set_to_clear field.
func fieldClearerName(fieldIdent string) string {
	return "Clear" + casing.ToPascalCase(fieldIdent)
}

// clearMaskConstName is the register-level union of all set_to_clear field
// masks (spec.md §4.4.4).
func clearMaskConstName(regIdent string) string {
	return casing.ToCamelCase(regIdent + "_clear_mask")
}

// uncheckedConversionName is the total primitive->variant conversion
// function name for a field's variant type.
func uncheckedConversionName(typeName string) string {
	return casing.ToCamelCase(typeName) + "FromPrimitiveUnchecked"
}

// checkedConversionName is the partial primitive->variant conversion
// function name for a field's variant type.
func checkedConversionName(typeName string) string {
	return casing.ToCamelCase(typeName) + "FromPrimitive"
}

// goType returns the unsigned integer Go type of the smallest width that
// can hold a value of bits bits, per spec.md §4.4.3's integer-typed getter
// rule.
func goType(bits uint64) string {
	switch {
	case bits <= 8:
		return "uint8"
	case bits <= 16:
		return "uint16"
	case bits <= 32:
		return "uint32"
	default:
		return "uint64"
	}
}

// registerGoType returns the Go integer type matching a register's declared
// bus width (8/16/32/64), used both for the VolatileCell element type and
// for every variant type's declared representation.
func registerGoType(width uint) string {
	return goType(uint64(width))
}
