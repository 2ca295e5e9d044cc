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

// Package ioregs implements the register-map DSL compiler: lexer, parser
// and validator live here; pkg/ioregs/ast holds the data
// model they share, pkg/ioregs/layout the padded placement plan, and
// pkg/ioregs/emit the Go source text generator. Compile is the pure-function
// entry point tying all four passes together, consumed by both the CLI
// (pkg/cmd) and directly by go:generate directives.
package ioregs

import (
	"errors"

	"github.com/ioregen/ioregen/internal/source"
	"github.com/ioregen/ioregen/pkg/ioregs/emit"
	"github.com/ioregen/ioregen/pkg/ioregs/layout"
)

// GenerateOptions is re-exported from pkg/ioregs/emit so callers never need
// to import that package directly just to configure a Compile call.
type GenerateOptions = emit.GenerateOptions

// DefaultOptions mirrors emit.DefaultOptions.
func DefaultOptions() GenerateOptions {
	return emit.DefaultOptions()
}

// Result is one block's compiled output: the generated accessor package
// text and, when alignment tests are enabled, its companion test file.
type Result struct {
	PackageName   string
	Source        string
	AlignmentTest string // empty when opts.AlignmentTests is false
}

// Compile runs the full lexer -> parser -> validator -> layout -> emit
// pipeline over a single DSL source file. filename is used only for
// diagnostic rendering. pkgName is the Go package name the emitted file
// declares; when empty it defaults to the lower-cased block name.
func Compile(filename string, contents []byte, pkgName string, opts GenerateOptions) (*Result, error) {
	srcfile := source.NewFile(filename, contents)

	block, errs := ParseBlock(srcfile)
	if len(errs) > 0 {
		return nil, joinSyntaxErrors(errs)
	}

	if errs := ValidateBlock(srcfile, block); len(errs) > 0 {
		return nil, joinSyntaxErrors(errs)
	}

	planned, errs := layout.PlanLayout(srcfile, block)
	if len(errs) > 0 {
		return nil, joinSyntaxErrors(errs)
	}

	if pkgName == "" {
		pkgName = defaultPackageName(block.Name)
	}

	result := &Result{
		PackageName: pkgName,
		Source:      emit.Block(planned, pkgName, opts),
	}

	if opts.AlignmentTests {
		result.AlignmentTest = emit.AlignmentTests(planned, pkgName)
	}

	return result, nil
}

// CompileFiles runs Compile over each of the given DSL files, aggregating
// every block's errors into a single error via errors.Join — the stdlib's
// own multi-error mechanism, which the teacher predates but would plausibly
// use today in its place (see DESIGN.md).
func CompileFiles(files map[string][]byte, pkgName string, opts GenerateOptions) (map[string]*Result, error) {
	var (
		results = make(map[string]*Result, len(files))
		errs    []error
	)

	for name, contents := range files {
		result, err := Compile(name, contents, pkgName, opts)
		if err != nil {
			errs = append(errs, err)
			continue
		}

		results[name] = result
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	return results, nil
}

func joinSyntaxErrors(syntaxErrs []source.SyntaxError) error {
	errs := make([]error, len(syntaxErrs))
	for i := range syntaxErrs {
		errs[i] = &syntaxErrs[i]
	}

	return errors.Join(errs...)
}

func defaultPackageName(blockName string) string {
	return toLowerIdent(blockName)
}

func toLowerIdent(s string) string {
	b := []byte(s)
	for i := range b {
		if b[i] >= 'A' && b[i] <= 'Z' {
			b[i] += 'a' - 'A'
		}
	}

	return string(b)
}
