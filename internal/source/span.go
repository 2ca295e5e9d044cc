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

// Package source provides diagnostics infrastructure shared by the lexer,
// parser and validator: a rune-indexed Span, a File wrapping the DSL text,
// and a SyntaxError which can locate itself within that text.
package source

// Span represents a contiguous slice of a source file, measured in runes
// rather than bytes so that it survives UTF-8 without adjustment.
type Span struct {
	start int
	end   int
}

// NewSpan constructs a span, panicking if the bounds are nonsensical.
func NewSpan(start, end int) Span {
	if start > end {
		panic("invalid span")
	}

	return Span{start, end}
}

// Start returns the first rune index covered by this span.
func (s Span) Start() int { return s.start }

// End returns one past the last rune index covered by this span.
func (s Span) End() int { return s.end }

// Length returns the number of runes covered by this span.
func (s Span) Length() int { return s.end - s.start }

// Merge returns the smallest span enclosing both s and other.
func (s Span) Merge(other Span) Span {
	start, end := s.start, s.end
	if other.start < start {
		start = other.start
	}

	if other.end > end {
		end = other.end
	}

	return Span{start, end}
}
