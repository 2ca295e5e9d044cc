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
	"testing"

	"github.com/ioregen/ioregen/internal/assert"
	"github.com/ioregen/ioregen/internal/source"
)

func lexString(t *testing.T, text string) []uint {
	t.Helper()

	srcfile := source.NewFile("test.ioregs", []byte(text))

	tokens, errs := lexFile(srcfile)
	assert.Equal(t, 0, len(errs), "unexpected lex errors")

	kinds := make([]uint, len(tokens))
	for i, tok := range tokens {
		kinds[i] = tok.Kind
	}

	return kinds
}

func TestLexerEmpty(t *testing.T) {
	kinds := lexString(t, "")
	assert.Equal(t, []uint{tokEOF}, kinds)
}

func TestLexerPunctuation(t *testing.T) {
	kinds := lexString(t, "@=>={}[](),:..")
	assert.Equal(t, []uint{
		tokAt, tokArrow, tokEquals, tokLCurly, tokRCurly,
		tokLBracket, tokRBracket, tokLParen, tokRParen,
		tokComma, tokColon, tokDotDot, tokEOF,
	}, kinds)
}

func TestLexerIdentAndNumbers(t *testing.T) {
	kinds := lexString(t, "reg32 ctrl 0x1f 0b101 42")
	assert.Equal(t, []uint{
		tokIdent, tokIdent, tokNumber, tokNumber, tokNumber, tokEOF,
	}, kinds)
}

func TestLexerSkipsComments(t *testing.T) {
	srcfile := source.NewFile("test.ioregs", []byte("// a comment\nctrl"))

	tokens, errs := lexFile(srcfile)
	assert.Equal(t, 0, len(errs))
	assert.Equal(t, 2, len(tokens))
	assert.Equal(t, tokIdent, tokens[0].Kind)
}

func TestLexerRejectsUnrecognisedText(t *testing.T) {
	srcfile := source.NewFile("test.ioregs", []byte("ctrl $ foo"))

	_, errs := lexFile(srcfile)
	assert.True(t, len(errs) > 0, "expected a lex error for '$'")
}
