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
	"fmt"
	"math/big"

	"github.com/ioregen/ioregen/internal/lex"
	"github.com/ioregen/ioregen/internal/source"
	"github.com/ioregen/ioregen/pkg/ioregs/ast"
)

// ParseBlock parses a single DSL block invocation out of srcfile. Exactly
// one block is expected per file, matching spec.md §4.1's "one top-level
// invocation per block".
func ParseBlock(srcfile *source.File) (*ast.Block, []source.SyntaxError) {
	p := &parser{srcfile: srcfile}

	tokens, errs := lexFile(srcfile)
	if len(errs) > 0 {
		return nil, errs
	}

	p.tokens = tokens

	return p.parseBlock()
}

// parser is a recursive-descent parser over a flat token stream, shaped
// after the teacher's own assembler.Parser: a cursor plus
// lookahead/expect/match helpers, each returning the diagnostics gathered
// so far rather than panicking.
type parser struct {
	srcfile *source.File
	tokens  []lex.Token
	index   int
}

func (p *parser) lookahead() lex.Token {
	return p.tokens[p.index]
}

func (p *parser) text(t lex.Token) string {
	return string(p.srcfile.Contents()[t.Span.Start():t.Span.End()])
}

func (p *parser) expect(kind uint) (lex.Token, []source.SyntaxError) {
	tok := p.lookahead()
	if tok.Kind != kind {
		return tok, p.errorf(tok, "unexpected token %q", p.text(tok))
	}

	p.index++

	return tok, nil
}

func (p *parser) match(kind uint) bool {
	if p.lookahead().Kind == kind {
		p.index++
		return true
	}

	return false
}

func (p *parser) errorf(tok lex.Token, format string, args ...any) []source.SyntaxError {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}

	return []source.SyntaxError{*p.srcfile.SyntaxError(tok.Span, msg)}
}

// parseNumber parses a NUMBER token, auto-sniffing base 10/16/2 exactly as
// the literal was written, the same way the teacher's Parser.number /
// baserOfNumber pair does, then narrows to uint64.
func (p *parser) parseNumber() (uint64, source.Span, []source.SyntaxError) {
	tok, errs := p.expect(tokNumber)
	if len(errs) > 0 {
		return 0, tok.Span, errs
	}

	str := p.text(tok)

	var v big.Int
	if _, ok := v.SetString(str, 0); !ok {
		return 0, tok.Span, p.errorf(tok, "malformed numeric literal %q", str)
	}

	if !v.IsUint64() {
		return 0, tok.Span, p.errorf(tok, "numeric literal %q out of range", str)
	}

	return v.Uint64(), tok.Span, nil
}

func (p *parser) parseIdent() (string, source.Span, []source.SyntaxError) {
	tok, errs := p.expect(tokIdent)
	if len(errs) > 0 {
		return "", tok.Span, errs
	}

	return p.text(tok), tok.Span, nil
}

// parseKeyword expects the next identifier token to read exactly value.
func (p *parser) parseKeyword(value string) (source.Span, []source.SyntaxError) {
	tok := p.lookahead()
	if tok.Kind != tokIdent || p.text(tok) != value {
		return tok.Span, p.errorf(tok, "expected %q", value)
	}

	p.index++

	return tok.Span, nil
}

// parseOptionalCount parses an optional "[ <n> ]" array count, defaulting
// to 1 when absent.
func (p *parser) parseOptionalCount() (uint64, []source.SyntaxError) {
	if !p.match(tokLBracket) {
		return 1, nil
	}

	n, _, errs := p.parseNumber()
	if len(errs) > 0 {
		return 0, errs
	}

	if _, errs := p.expect(tokRBracket); len(errs) > 0 {
		return 0, errs
	}

	if n == 0 {
		return 0, p.errorf(p.lookahead(), "array count must be at least 1")
	}

	return n, nil
}

func (p *parser) parseBlock() (*ast.Block, []source.SyntaxError) {
	start := p.lookahead().Span

	name, _, errs := p.parseIdent()
	if len(errs) > 0 {
		return nil, errs
	}

	if _, errs := p.expect(tokAt); len(errs) > 0 {
		return nil, errs
	}

	base, _, errs := p.parseNumber()
	if len(errs) > 0 {
		return nil, errs
	}

	if _, errs := p.expect(tokEquals); len(errs) > 0 {
		return nil, errs
	}

	if _, errs := p.expect(tokLCurly); len(errs) > 0 {
		return nil, errs
	}

	members, errs := p.parseMemberList(tokRCurly)
	if len(errs) > 0 {
		return nil, errs
	}

	end, errs := p.expect(tokRCurly)
	if len(errs) > 0 {
		return nil, errs
	}

	if eof := p.lookahead(); eof.Kind != tokEOF {
		return nil, p.errorf(eof, "trailing garbage after block")
	}

	return &ast.Block{
		Name:    name,
		Base:    base,
		Members: members,
		Span:    source.NewSpan(start.Start(), end.Span.End()),
	}, nil
}

// parseMemberList parses a comma-separated (optionally trailing-comma)
// list of members up to (not consuming) the closing token.
func (p *parser) parseMemberList(closing uint) ([]ast.Member, []source.SyntaxError) {
	var members []ast.Member

	for p.lookahead().Kind != closing {
		member, errs := p.parseMember()
		if len(errs) > 0 {
			return nil, errs
		}

		members = append(members, member)

		if !p.match(tokComma) {
			break
		}
	}

	return members, nil
}

func (p *parser) parseMember() (ast.Member, []source.SyntaxError) {
	offset, _, errs := p.parseNumber()
	if len(errs) > 0 {
		return ast.Member{}, errs
	}

	if _, errs := p.expect(tokArrow); len(errs) > 0 {
		return ast.Member{}, errs
	}

	if tok := p.lookahead(); tok.Kind == tokIdent && p.text(tok) == "group" {
		group, errs := p.parseGroup(offset)
		if len(errs) > 0 {
			return ast.Member{}, errs
		}

		return ast.Member{Kind: ast.MemberGroup, Group: group}, nil
	}

	reg, errs := p.parseRegister(offset)
	if len(errs) > 0 {
		return ast.Member{}, errs
	}

	return ast.Member{Kind: ast.MemberRegister, Register: reg}, nil
}

var widths = map[string]uint{"reg8": 8, "reg16": 16, "reg32": 32, "reg64": 64}

func (p *parser) parseWidth() (uint, []source.SyntaxError) {
	tok, errs := p.expect(tokIdent)
	if len(errs) > 0 {
		return 0, errs
	}

	w, ok := widths[p.text(tok)]
	if !ok {
		return 0, p.errorf(tok, "unknown register width %q", p.text(tok))
	}

	return w, nil
}

func (p *parser) parseRegister(offset uint64) (*ast.Register, []source.SyntaxError) {
	start := p.lookahead().Span

	width, errs := p.parseWidth()
	if len(errs) > 0 {
		return nil, errs
	}

	ident, _, errs := p.parseIdent()
	if len(errs) > 0 {
		return nil, errs
	}

	count, errs := p.parseOptionalCount()
	if len(errs) > 0 {
		return nil, errs
	}

	if _, errs := p.expect(tokLCurly); len(errs) > 0 {
		return nil, errs
	}

	fields, errs := p.parseFieldList()
	if len(errs) > 0 {
		return nil, errs
	}

	end, errs := p.expect(tokRCurly)
	if len(errs) > 0 {
		return nil, errs
	}

	return &ast.Register{
		Ident:     ident,
		OffsetVal: offset,
		Width:     width,
		Count:     count,
		Fields:    fields,
		Span:      source.NewSpan(start.Start(), end.Span.End()),
	}, nil
}

func (p *parser) parseGroup(offset uint64) (*ast.Group, []source.SyntaxError) {
	start := p.lookahead().Span

	if _, errs := p.parseKeyword("group"); len(errs) > 0 {
		return nil, errs
	}

	ident, _, errs := p.parseIdent()
	if len(errs) > 0 {
		return nil, errs
	}

	count, errs := p.parseOptionalCount()
	if len(errs) > 0 {
		return nil, errs
	}

	if _, errs := p.expect(tokLCurly); len(errs) > 0 {
		return nil, errs
	}

	members, errs := p.parseMemberList(tokRCurly)
	if len(errs) > 0 {
		return nil, errs
	}

	end, errs := p.expect(tokRCurly)
	if len(errs) > 0 {
		return nil, errs
	}

	return &ast.Group{
		Ident:     ident,
		OffsetVal: offset,
		Count:     count,
		Members:   members,
		Span:      source.NewSpan(start.Start(), end.Span.End()),
	}, nil
}

func (p *parser) parseFieldList() ([]*ast.Field, []source.SyntaxError) {
	var fields []*ast.Field

	for p.lookahead().Kind != tokRCurly {
		field, errs := p.parseField()
		if len(errs) > 0 {
			return nil, errs
		}

		fields = append(fields, field)

		if !p.match(tokComma) {
			break
		}
	}

	return fields, nil
}

func (p *parser) parseBitOffset() (ast.BitOffset, []source.SyntaxError) {
	lo, loSpan, errs := p.parseNumber()
	if len(errs) > 0 {
		return ast.BitOffset{}, errs
	}

	if !p.match(tokDotDot) {
		return ast.BitOffset{Lo: lo, Hi: lo, Single: true, Span: loSpan}, nil
	}

	hi, hiSpan, errs := p.parseNumber()
	if len(errs) > 0 {
		return ast.BitOffset{}, errs
	}

	return ast.BitOffset{Lo: lo, Hi: hi, Single: false, Span: loSpan.Merge(hiSpan)}, nil
}

func (p *parser) parseField() (*ast.Field, []source.SyntaxError) {
	offset, errs := p.parseBitOffset()
	if len(errs) > 0 {
		return nil, errs
	}

	if _, errs := p.expect(tokArrow); len(errs) > 0 {
		return nil, errs
	}

	ident, identSpan, errs := p.parseIdent()
	if len(errs) > 0 {
		return nil, errs
	}

	count, errs := p.parseOptionalCount()
	if len(errs) > 0 {
		return nil, errs
	}

	variants, errs := p.parseOptionalVariants()
	if len(errs) > 0 {
		return nil, errs
	}

	field := &ast.Field{
		Ident:    ident,
		Offset:   offset,
		Count:    count,
		Variants: variants,
		Access:   ast.RW,
		Span:     source.NewSpan(offset.Span.Start(), identSpan.End()),
	}

	if errs := p.parseOptionalProperties(field); len(errs) > 0 {
		return nil, errs
	}

	return field, nil
}

func (p *parser) parseOptionalVariants() ([]ast.Variant, []source.SyntaxError) {
	if !p.match(tokLCurly) {
		return nil, nil
	}

	var variants []ast.Variant

	for p.lookahead().Kind != tokRCurly {
		value, valueSpan, errs := p.parseNumber()
		if len(errs) > 0 {
			return nil, errs
		}

		if _, errs := p.expect(tokArrow); len(errs) > 0 {
			return nil, errs
		}

		ident, identSpan, errs := p.parseIdent()
		if len(errs) > 0 {
			return nil, errs
		}

		variants = append(variants, ast.Variant{Ident: ident, Value: value, Span: valueSpan.Merge(identSpan)})

		if !p.match(tokComma) {
			break
		}
	}

	if _, errs := p.expect(tokRCurly); len(errs) > 0 {
		return nil, errs
	}

	return variants, nil
}

func (p *parser) parseOptionalProperties(field *ast.Field) []source.SyntaxError {
	if !p.match(tokColon) {
		return nil
	}

	if p.match(tokLParen) {
		for {
			if errs := p.parseProperty(field); len(errs) > 0 {
				return errs
			}

			if !p.match(tokComma) {
				break
			}
		}

		if _, errs := p.expect(tokRParen); len(errs) > 0 {
			return errs
		}

		return nil
	}

	return p.parseProperty(field)
}

func (p *parser) parseProperty(field *ast.Field) []source.SyntaxError {
	tok, errs := p.expect(tokIdent)
	if len(errs) > 0 {
		return errs
	}

	switch p.text(tok) {
	case "ro":
		field.Access = ast.RO
		field.AccessCount++
	case "wo":
		field.Access = ast.WO
		field.AccessCount++
	case "rw":
		field.Access = ast.RW
		field.AccessCount++
	case "set_to_clear":
		field.SetToClear = true
	default:
		return p.errorf(tok, "unknown property %q", p.text(tok))
	}

	return nil
}
