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
	"slices"

	"github.com/spf13/cobra"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run [flags] program_file",
	Short: "Execute a program, printing its output.",
	Long: `Execute a program on a given input, printing the values it writes.  Values
	are printed as bytes, unless --numeric is given.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		var (
			matrix  = execute(cmd, args[0])
			numeric = getFlag(cmd, "numeric")
		)
		//
		for _, row := range matrix.Output {
			val := row.Value.ToUint64()
			//
			if numeric || val > 0xff {
				fmt.Printf("%d\n", val)
			} else {
				os.Stdout.Write([]byte{byte(val)})
			}
		}
		//
		if getFlag(cmd, "stats") {
			heights := matrix.Heights()
			keys := make([]string, 0, len(heights))
			//
			for k := range heights {
				keys = append(keys, k)
			}
			//
			slices.Sort(keys)
			//
			for _, k := range keys {
				fmt.Fprintf(os.Stderr, "%s: %d rows\n", k, heights[k])
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().Bool("numeric", false, "print output values as integers")
	runCmd.Flags().Bool("stats", false, "report the height of each trace table")
}
