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
package ioregs

import (
	"github.com/ioregen/ioregen/internal/lex"
	"github.com/ioregen/ioregen/internal/source"
)

// Token kinds produced by Lex. Punctuation kinds are ordered so that
// longer/more specific rules are tried before their prefixes below (see
// rules).
const (
	tokEOF uint = iota
	tokWhitespace
	tokComment
	tokAt         // @
	tokArrow      // =>
	tokEquals     // =
	tokLCurly     // {
	tokRCurly     // }
	tokLBracket   // [
	tokRBracket   // ]
	tokLParen     // (
	tokRParen     // )
	tokComma      // ,
	tokColon      // :
	tokDotDot     // ..
	tokNumber
	tokIdent
)

var (
	decimalDigit = lex.Within('0', '9')
	hexDigit     = lex.Or(lex.Within('0', '9'), lex.Within('a', 'f'), lex.Within('A', 'F'))
	binDigit     = lex.Or(lex.Unit('0'), lex.Unit('1'))

	// Many reports zero repetitions as "no match", so it doubles as a
	// one-or-more scanner; a single-character token must not depend on a
	// trailing Many inside an And.
	decimalNumber = lex.Many(decimalDigit)
	hexNumber     = lex.And(lex.Unit('0', 'x'), lex.Many(hexDigit))
	binNumber     = lex.And(lex.Unit('0', 'b'), lex.Many(binDigit))
	number        = lex.Or(hexNumber, binNumber, decimalNumber)

	identStart = lex.Or(lex.Unit('_'), lex.Within('a', 'z'), lex.Within('A', 'Z'))
	identRest  = lex.Many(lex.Or(lex.Unit('_'), lex.Within('0', '9'), lex.Within('a', 'z'), lex.Within('A', 'Z')))
	identifier = lex.Or(lex.And(identStart, identRest), identStart)

	whitespace = lex.Many(lex.Or(lex.Unit(' '), lex.Unit('\t'), lex.Unit('\r'), lex.Unit('\n')))
	comment    = lex.And(lex.Unit('/', '/'), lex.Until('\n'))

	rules = []lex.Rule[rune]{
		lex.NewRule(comment, tokComment),
		lex.NewRule(lex.Unit('=', '>'), tokArrow),
		lex.NewRule(lex.Unit('.', '.'), tokDotDot),
		lex.NewRule(lex.Unit('@'), tokAt),
		lex.NewRule(lex.Unit('='), tokEquals),
		lex.NewRule(lex.Unit('{'), tokLCurly),
		lex.NewRule(lex.Unit('}'), tokRCurly),
		lex.NewRule(lex.Unit('['), tokLBracket),
		lex.NewRule(lex.Unit(']'), tokRBracket),
		lex.NewRule(lex.Unit('('), tokLParen),
		lex.NewRule(lex.Unit(')'), tokRParen),
		lex.NewRule(lex.Unit(','), tokComma),
		lex.NewRule(lex.Unit(':'), tokColon),
		lex.NewRule(whitespace, tokWhitespace),
		lex.NewRule(number, tokNumber),
		lex.NewRule(identifier, tokIdent),
		lex.NewRule(lex.Eof[rune](), tokEOF),
	}
)

// lexFile tokenises a DSL source file, discarding whitespace and comments.
// A non-empty error slice means some suffix of the file matched no rule.
func lexFile(srcfile *source.File) ([]lex.Token, []source.SyntaxError) {
	var (
		lexer  = lex.NewLexer(srcfile.Contents(), rules...)
		tokens = lexer.Collect()
	)

	if lexer.Remaining() != 0 {
		start := int(lexer.Index())
		end := start + int(lexer.Remaining())
		err := srcfile.SyntaxError(source.NewSpan(start, end), "unrecognised text")

		return nil, []source.SyntaxError{*err}
	}

	out := tokens[:0]

	for _, t := range tokens {
		if t.Kind != tokWhitespace && t.Kind != tokComment {
			out = append(out, t)
		}
	}

	return out, nil
}
