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

// Package emit turns a planned pkg/ioregs.Layout into Go source text, one
// file per structural concern, grounded on the teacher's
// pkg/cmd/generate/class.go decomposition: small generator functions each
// writing one piece of output into a shared casing.IndentBuilder, composed
// by one driver (Block). Like the teacher, this package never reaches for
// go/ast or a templating engine — generated Go is formatted strings, same
// as the teacher's generated Java.
package emit

// GenerateOptions is the Go realization of spec.md §6's build-time feature
// flags (originally Rust #[cfg(feature)] gates), threaded through every
// emit function that needs to vary its output.
type GenerateOptions struct {
	// AlignmentTests emits a companion _test.go asserting every named
	// field sits at its planned byte offset (spec.md §4.4.7). Default true.
	AlignmentTests bool
	// FieldCountChecks emits a bounds-checking panic on arrayed field
	// getters/setters when the index argument is out of range.
	FieldCountChecks bool
	// UnsafeVariantUnchecked forces the total, unchecked primitive->variant
	// conversion even when the declared variant set is not exhaustive.
	UnsafeVariantUnchecked bool
	// X86BMI1Optimization makes generated getters extract fields through
	// ioregruntime.ExtractBits instead of an inline shift-and-mask. That
	// function's amd64 and non-amd64 builds are both plain shift-and-mask;
	// no BEXTR instruction is issued.
	X86BMI1Optimization bool
}

// DefaultOptions returns the flag defaults used when the CLI is given none
// explicitly: alignment tests on, everything else off.
func DefaultOptions() GenerateOptions {
	return GenerateOptions{AlignmentTests: true}
}
