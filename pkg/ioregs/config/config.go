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

// Package config loads an optional project-wide ioregen.toml — a common Go
// build-tool convention absent from the teacher itself, added here the way
// the rest of the pack's CLI-adjacent repos load a project config file.
// Only its feature-flag keys take effect (via ApplyTo); out_dir,
// package_prefix and jobs are parsed but not read by the generate command.
package config

import (
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/ioregen/ioregen/pkg/ioregs/emit"
)

// FileName is the conventional project config file ioregen looks for in
// the current directory.
const FileName = "ioregen.toml"

// Config is the subset of generate-command defaults a project may pin,
// every field optional: zero values mean "use the CLI's own default".
// OutDir, PackagePrefix and Jobs are loaded but not applied anywhere; the
// generate command takes those values from its flags only.
type Config struct {
	OutDir                 string `toml:"out_dir"`
	PackagePrefix          string `toml:"package_prefix"`
	Jobs                   int    `toml:"jobs"`
	AlignmentTests         *bool  `toml:"alignment_tests"`
	FieldCountChecks       *bool  `toml:"field_count_checks"`
	UnsafeVariantUnchecked *bool  `toml:"unsafe_variant_unchecked"`
	X86BMI1Optimization    *bool  `toml:"x86_64_bmi1_optimization"`
}

// Load reads and parses path. A missing file is not an error: it returns a
// zero-value Config, letting callers fall through to CLI defaults.
func Load(path string) (*Config, error) {
	bytes, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Config{}, nil
	} else if err != nil {
		return nil, err
	}

	var cfg Config
	if err := toml.Unmarshal(bytes, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// ApplyTo merges the config's overrides onto a baseline GenerateOptions,
// only touching fields the project file actually set.
func (c *Config) ApplyTo(opts emit.GenerateOptions) emit.GenerateOptions {
	if c.AlignmentTests != nil {
		opts.AlignmentTests = *c.AlignmentTests
	}

	if c.FieldCountChecks != nil {
		opts.FieldCountChecks = *c.FieldCountChecks
	}

	if c.UnsafeVariantUnchecked != nil {
		opts.UnsafeVariantUnchecked = *c.UnsafeVariantUnchecked
	}

	if c.X86BMI1Optimization != nil {
		opts.X86BMI1Optimization = *c.X86BMI1Optimization
	}

	return opts
}
