// Copyright Consensys Software Inc.
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

	"github.com/spf13/cobra"
)

// compileCmd represents the compile command
var compileCmd = &cobra.Command{
	Use:   "compile [flags] program_file",
	Short: "Compile a program into its instruction stream.",
	Long: `Compile a program into its instruction stream, where every jump is followed
	by the index of its target.  Characters which are not opcodes are ignored.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		program := compileProgramFile(args[0])
		//
		if getFlag(cmd, "raw") {
			for i, v := range program {
				if i != 0 {
					fmt.Print(" ")
				}
				//
				fmt.Print(v)
			}
			//
			fmt.Println()
		} else {
			fmt.Println(program.String())
		}
	},
}

func init() {
	rootCmd.AddCommand(compileCmd)
	compileCmd.Flags().Bool("raw", false, "print the stream as integers")
}
