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

// Package cmd implements the ioregen command-line interface: a cobra root
// command plus the generate and check subcommands, following the teacher's
// own pkg/cmd layout (one file per subcommand, flags registered in that
// file's init()).
package cmd

import (
	"fmt"
	"os"
	"runtime/debug"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Version is filled in when building via `make`, but *not* when installing
// with `go install` — same convention as the teacher's pkg/cmd/root.go.
var Version string

var rootCmd = &cobra.Command{
	Use:   "ioregen",
	Short: "Compiles declarative MMIO register-map descriptions into Go accessor code.",
	Long: "ioregen reads a .ioregs register-map description and emits a Go package of " +
		"zero-overhead, volatile-safe accessor types for it: a padded layout struct, " +
		"per-register reader/updater facades and variant enums.",
	Run: func(cmd *cobra.Command, args []string) {
		if GetFlag(cmd, "version") {
			fmt.Print("ioregen ")

			switch {
			case Version != "":
				fmt.Printf("%s", Version)
			default:
				if info, ok := debug.ReadBuildInfo(); ok {
					fmt.Printf("%s", info.Main.Version)
				} else {
					fmt.Print("(unknown version)")
				}
			}

			fmt.Println()
			return
		}

		_ = cmd.Help()
	},
}

// Execute adds all child commands to the root command and runs it. Called
// once by cmd/ioregen's main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().Bool("version", false, "print version information and exit")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "increase logging verbosity")

	cobra.OnInitialize(func() {
		verbose, _ := rootCmd.PersistentFlags().GetBool("verbose")
		if verbose {
			log.SetLevel(log.DebugLevel)
		} else {
			log.SetLevel(log.InfoLevel)
		}
	})
}
