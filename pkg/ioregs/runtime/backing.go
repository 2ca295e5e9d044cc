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
package runtime

import "unsafe"

// Backing is a plain byte slice standing in for a real MMIO mapping, the
// same role the teacher's pkg/mmap plays for trace files: letting code that
// would otherwise need a real hardware address be exercised against
// ordinary process memory. spec.md §6 deliberately leaves address binding
// to the consumer (a linker script in the real case); this type is that
// consumer, for tests and for simulation-only builds.
type Backing struct {
	bytes []byte
}

// NewBacking allocates a zeroed Backing of size bytes.
func NewBacking(size int) *Backing {
	return &Backing{bytes: make([]byte, size)}
}

// Bytes returns the underlying buffer for direct inspection in tests.
func (b *Backing) Bytes() []byte {
	return b.bytes
}

// Layout reinterprets the backing buffer as *L, the generated top-level
// layout struct for a block. The caller is responsible for ensuring L's
// size does not exceed len(b.bytes) and that L's alignment requirements are
// satisfied by the slice's backing array, exactly as a real linker-bound
// symbol would guarantee.
func Layout[L any](b *Backing) *L {
	return (*L)(unsafe.Pointer(&b.bytes[0]))
}
