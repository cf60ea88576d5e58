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

	"github.com/dajuguan/zkvm-brainfuck/pkg/circuit"
	"github.com/dajuguan/zkvm-brainfuck/pkg/table"
	"github.com/spf13/cobra"
)

// traceCmd represents the trace command
var traceCmd = &cobra.Command{
	Use:   "trace [flags] program_file",
	Short: "Execute a program and print its trace tables.",
	Long: `Execute a program on a given input and print a range of rows from one or
	more trace tables, including the columns added by the constraint system
	(e.g. selectors and limbs).  Alternatively, the full trace can be written
	to a JSON file for checking later.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		c, err := circuit.New(circuit.Config{
			Bits:     getUint(cmd, "bits"),
			GapLimbs: getUint(cmd, "gap-limbs"),
		})
		if err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
		//
		tr, err := c.Assign(execute(cmd, args[0]))
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		//
		if filename := getString(cmd, "json"); filename != "" {
			if err := os.WriteFile(filename, []byte(table.ToJSON(tr)), 0644); err != nil {
				fmt.Println(err)
				os.Exit(2)
			}
			//
			return
		}
		//
		var (
			start   = getInt(cmd, "start")
			end     = getInt(cmd, "end")
			modules = []string{getString(cmd, "module")}
		)
		//
		if modules[0] == "" {
			modules = []string{circuit.Processor, circuit.Memory, circuit.Instruction, circuit.Input, circuit.Output}
		}
		//
		for _, m := range modules {
			if !tr.HasModule(m) {
				fmt.Printf("unknown table %s\n", m)
				os.Exit(2)
			}
			//
			fmt.Printf("%s (%d rows)\n", m, tr.Height(m))
			table.PrintTrace(os.Stdout, tr, m, start, end)
		}
	},
}

func init() {
	rootCmd.AddCommand(traceCmd)
	traceCmd.Flags().StringP("module", "m", "", "table to print (default all)")
	traceCmd.Flags().Int("start", 0, "first row to print")
	traceCmd.Flags().Int("end", 20, "row after the last row to print")
	traceCmd.Flags().String("json", "", "write the full trace as JSON to a given file")
	traceCmd.Flags().Uint("gap-limbs", circuit.DefaultConfig().GapLimbs, "number of limbs used to range check cycle gaps")
}
