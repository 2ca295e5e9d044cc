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
package source

import (
	"fmt"
	"os"
)

// File represents a single DSL source file, held as runes so spans index
// cleanly regardless of encoding.
type File struct {
	filename string
	contents []rune
}

// NewFile constructs a source file from raw bytes.
func NewFile(filename string, bytes []byte) *File {
	return &File{filename, []rune(string(bytes))}
}

// ReadFile loads a DSL source file from disk.
func ReadFile(filename string) (*File, error) {
	bytes, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	return NewFile(filename, bytes), nil
}

// Filename returns the name this file was constructed with.
func (f *File) Filename() string { return f.filename }

// Contents returns the full rune sequence of this file.
func (f *File) Contents() []rune { return f.contents }

// SyntaxError constructs an error anchored to a span of this file.
func (f *File) SyntaxError(span Span, msg string) *SyntaxError {
	return &SyntaxError{f, span, msg}
}

// line describes one physical line of a source file.
type line struct {
	text   []rune
	span   Span
	number int
}

// String returns the text of this line (without its trailing newline).
func (l line) String() string {
	return string(l.text[l.span.start:l.span.end])
}

// findEnclosingLine determines the 1-indexed line containing the start of
// span. If span starts beyond the end of the file, the last line is
// returned.
func (f *File) findEnclosingLine(span Span) line {
	var (
		index = span.start
		num   = 1
		start = 0
	)

	for i := 0; i < len(f.contents); i++ {
		if i == index {
			return line{f.contents, Span{start, findEndOfLine(index, f.contents)}, num}
		} else if f.contents[i] == '\n' {
			num++
			start = i + 1
		}
	}

	return line{f.contents, Span{start, len(f.contents)}, num}
}

func findEndOfLine(index int, text []rune) int {
	for i := index; i < len(text); i++ {
		if text[i] == '\n' {
			return i
		}
	}

	return len(text)
}

// SyntaxError is a diagnostic anchored to a span of a particular source
// file. It is the only error type the lexer, parser, validator and layout
// planner ever produce.
type SyntaxError struct {
	file *File
	span Span
	msg  string
}

// File returns the source file this error was raised against.
func (e *SyntaxError) File() *File { return e.file }

// Span returns the offending span.
func (e *SyntaxError) Span() Span { return e.span }

// Message returns the diagnostic text, without location information.
func (e *SyntaxError) Message() string { return e.msg }

// Error implements the error interface, rendering "file:line:col: message".
func (e *SyntaxError) Error() string {
	ln := e.file.findEnclosingLine(e.span)
	col := e.span.start - ln.span.start + 1

	return fmt.Sprintf("%s:%d:%d: %s", e.file.filename, ln.number, col, e.msg)
}
