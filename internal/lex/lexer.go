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
package lex

import "github.com/ioregen/ioregen/internal/source"

// Token associates a tag (caller-defined token kind) with the span of
// input it was matched from.
type Token struct {
	Kind uint
	Span source.Span
}

// Rule associates a scanner with the tag it produces when it matches.
type Rule[T any] struct {
	scanner Scanner[T]
	tag     uint
}

// NewRule constructs a lexing rule.
func NewRule[T any](scanner Scanner[T], tag uint) Rule[T] {
	return Rule[T]{scanner, tag}
}

// Lexer tokenises a sequence of items against an ordered list of rules;
// the first rule to match at a given position wins, so rules should be
// ordered longest/most-specific first.
type Lexer[T any] struct {
	items  []T
	index  int
	rules  []Rule[T]
	buffer []Token
}

// NewLexer constructs a lexer for items, driven by rules.
func NewLexer[T any](items []T, rules ...Rule[T]) *Lexer[T] {
	return &Lexer[T]{items, 0, rules, nil}
}

// Index returns the current position within the item sequence.
func (l *Lexer[T]) Index() uint { return uint(l.index) }

// Remaining returns how many items are left unconsumed.
func (l *Lexer[T]) Remaining() uint {
	if l.index >= len(l.items) {
		return 0
	}

	return uint(len(l.items) - l.index)
}

// HasNext reports whether another token can be produced.
func (l *Lexer[T]) HasNext() bool {
	l.scan()
	return len(l.buffer) > 0
}

// Next returns and consumes the next token. Panics if HasNext was false.
func (l *Lexer[T]) Next() Token {
	next := l.buffer[0]
	l.buffer = l.buffer[1:]

	if l.index == len(l.items) {
		// EOF token: step past so scan() doesn't match it again forever.
		l.index++
	} else {
		l.index = next.Span.End()
	}

	return next
}

// Collect tokenises everything it can, stopping at the first position
// where no rule matches (see Remaining to detect that case).
func (l *Lexer[T]) Collect() []Token {
	var tokens []Token

	for l.HasNext() {
		tokens = append(tokens, l.Next())
	}

	return tokens
}

func (l *Lexer[T]) scan() {
	if len(l.buffer) != 0 || l.index > len(l.items) {
		return
	}

	for _, r := range l.rules {
		if n := r.scanner(l.items[l.index:]); n > 0 {
			end := l.index + int(n)
			if end > len(l.items) {
				end = len(l.items)
			}

			l.buffer = append(l.buffer, Token{r.tag, source.NewSpan(l.index, end)})

			return
		}
	}
}
