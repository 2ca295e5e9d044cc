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

// Package casing converts DSL identifiers (snake_case, possibly with
// embedded hyphens) into the CamelCase / camelCase Go identifiers spec.md
// §4.4.6 requires of the emitter. It is shared by pkg/ioregs/layout
// (building dotted field-path strings for alignment tests) and
// pkg/ioregs/emit (naming every generated type and method).
package casing

import (
	"strings"
	"unicode"
)

// ToPascalCase capitalises every word: "irq_status" -> "IrqStatus".
func ToPascalCase(name string) string {
	var word string

	for _, w := range splitWords(name) {
		word += camelify(replaceSymbols(w), true)
	}

	return word
}

// ToCamelCase capitalises every word except the first: "irq_status" ->
// "irqStatus".
func ToCamelCase(name string) string {
	var word string

	for i, w := range splitWords(name) {
		w = replaceSymbols(w)

		if i == 0 {
			word = camelify(w, false)
		} else {
			word += camelify(w, true)
		}
	}

	return word
}

// ToSnakeCase lowercases every word and joins with underscores: "IrqStatus"
// -> "irq_status". The emitter does not use it: getter, setter and clearer
// names are PascalCase (see pkg/ioregs/emit/naming.go).
func ToSnakeCase(name string) string {
	words := splitWords(name)
	for i, w := range words {
		words[i] = strings.ToLower(replaceSymbols(w))
	}

	return strings.Join(words, "_")
}

// replaceSymbols strips characters legal in DSL identifiers but not in Go
// ones.
func replaceSymbols(name string) string {
	return strings.ReplaceAll(name, "'", "_")
}

// camelify lowercases every letter, optionally capitalising the first.
func camelify(name string, first bool) string {
	letters := []rune(name)

	for i, r := range letters {
		if first && i == 0 {
			letters[i] = unicode.ToUpper(r)
		} else {
			letters[i] = unicode.ToLower(r)
		}
	}

	return string(letters)
}

func splitWords(name string) []string {
	var words []string

	for _, w1 := range strings.Split(name, "_") {
		for _, w2 := range strings.Split(w1, "-") {
			if w2 == "" {
				continue
			}

			words = append(words, splitCaseChange(w2)...)
		}
	}

	return words
}

// splitCaseChange further breaks a word on camelCase/PascalCase boundaries,
// so an identifier like "irqStatus" (however it was typed in the DSL)
// still splits into ["irq", "Status"].
func splitCaseChange(word string) []string {
	var (
		runes = []rune(word)
		words []string
		last  = true
		start = 0
	)

	for i, r := range runes {
		ith := unicode.IsUpper(r)
		if !last && ith {
			words = append(words, string(runes[start:i]))
			start = i
		}

		last = ith
	}

	words = append(words, string(runes[start:]))

	return words
}

// IndentBuilder is a strings.Builder wrapper that tracks a nesting depth,
// for emitting properly indented generated Go source without a templating
// engine.
type IndentBuilder struct {
	indent  uint
	builder *strings.Builder
}

// NewIndentBuilder returns a builder writing into b at zero indent.
func NewIndentBuilder(b *strings.Builder) IndentBuilder {
	return IndentBuilder{0, b}
}

// Indent returns a copy of this builder one level deeper, sharing the same
// underlying strings.Builder.
func (p IndentBuilder) Indent() IndentBuilder {
	return IndentBuilder{p.indent + 1, p.builder}
}

// WriteString writes raw text with no indentation applied.
func (p IndentBuilder) WriteString(raw string) {
	p.builder.WriteString(raw)
}

// WriteIndent emits the current indentation (one tab per level, matching
// gofmt's own convention for Go source).
func (p IndentBuilder) WriteIndent() {
	for i := uint(0); i < p.indent; i++ {
		p.builder.WriteString("\t")
	}
}

// WriteIndentedString emits the current indentation followed by pieces.
func (p IndentBuilder) WriteIndentedString(pieces ...string) {
	p.WriteIndent()

	for _, s := range pieces {
		p.builder.WriteString(s)
	}
}

// WriteLine emits the current indentation, pieces, and a trailing newline.
func (p IndentBuilder) WriteLine(pieces ...string) {
	p.WriteIndentedString(pieces...)
	p.builder.WriteString("\n")
}

// String returns everything written to the underlying builder so far.
func (p IndentBuilder) String() string {
	return p.builder.String()
}
