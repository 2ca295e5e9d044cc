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
package cmd

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ioregen/ioregen/pkg/ioregs"
)

var checkCmd = &cobra.Command{
	Use:   "check <file.ioregs>...",
	Short: "Validate .ioregs files without emitting any Go source.",
	Long:  "check runs the lexer, parser, validator and layout planner, reporting errors but writing nothing.",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}

		opts := ioregs.DefaultOptions()
		failed := false

		for _, path := range args {
			contents, err := os.ReadFile(path)
			if err != nil {
				reportError(err)
				failed = true
				continue
			}

			if _, err := ioregs.Compile(path, contents, "", opts); err != nil {
				reportError(err)
				failed = true
				continue
			}

			log.Debugf("%s: ok", path)
		}

		if failed {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
