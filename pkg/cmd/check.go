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
	"errors"
	"fmt"
	"os"

	"github.com/dajuguan/zkvm-brainfuck/pkg/circuit"
	"github.com/dajuguan/zkvm-brainfuck/pkg/table"
	"github.com/dajuguan/zkvm-brainfuck/pkg/util/field"
	"github.com/dajuguan/zkvm-brainfuck/pkg/vm"
	"github.com/fatih/color"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check [flags] program_file",
	Short: "Execute a program and check its trace against the constraints.",
	Long: `Execute a program on a given input, and then check that the resulting trace
	tables are accepted by the constraint system.  Every failing constraint is
	reported along with the first row on which it fails.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		config := circuit.Config{
			Bits:      getUint(cmd, "bits"),
			GapLimbs:  getUint(cmd, "gap-limbs"),
			MaxCycles: getUint64(cmd, "max-cycles"),
		}
		//
		log.Infof("checking %s", args[0])
		//
		if filename := getString(cmd, "trace"); filename != "" {
			public := circuit.Instance{Input: field.FromBytes(readInput(cmd))}
			//
			if cmd.Flags().Changed("expect") {
				public.Output = field.FromBytes([]byte(getString(cmd, "expect")))
			}
			//
			checkTraceFile(compileProgramFile(args[0]), public, filename, config)
			return
		}
		//
		matrix, err := circuit.Verify(readProgramFile(args[0]), readInput(cmd), config)
		//
		if !reportCheck(err) {
			os.Exit(1)
		}
		//
		fmt.Printf("%s %d cycles, %d outputs\n", color.GreenString("ok"), len(matrix.Processor)-1, len(matrix.Output))
	},
}

// checkTraceFile checks a trace previously written as JSON against the
// constraints for a given program and its public input (and, optionally, its
// expected output), or exits if it is not accepted.  When no output is
// expected, the output written by the trace is printed.
func checkTraceFile(program vm.Program, public circuit.Instance, filename string, config circuit.Config) {
	c, err := circuit.New(config)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	bytes, err := os.ReadFile(filename)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	witness, err := table.ParseJSON(bytes)
	if err != nil {
		fmt.Printf("%s: %s\n", filename, err)
		os.Exit(2)
	}
	//
	tr, err := c.Import(program, public, witness)
	if err == nil {
		err = c.Schema().Accepts(tr)
	}
	//
	if !reportCheck(err) {
		os.Exit(1)
	}
	//
	fmt.Printf("%s %d cycles, %d outputs\n", color.GreenString("ok"), tr.Height(circuit.Processor)-1,
		tr.Height(circuit.Output))
	//
	if public.Output == nil {
		fmt.Printf("output: %q\n", traceOutput(tr))
	}
}

// traceOutput extracts the bytes written by a trace.  Values outside the byte
// range are replaced with '?'.
func traceOutput(tr *table.ArrayTrace) []byte {
	var output []byte
	//
	for _, val := range tr.Column(circuit.Output, "value").Data() {
		if b, ok := val.AsUint64(); ok && b < 256 {
			output = append(output, byte(b))
		} else {
			output = append(output, '?')
		}
	}
	//
	return output
}

// reportCheck prints the outcome of a check, returning true if it passed.
func reportCheck(err error) bool {
	var failures []*table.Failure
	//
	if err == nil {
		return true
	} else if !errors.Is(err, table.ErrViolation) {
		// Failed before constraints were checked
		fmt.Printf("%s %s\n", color.RedString("error"), err)
		return false
	}
	//
	failures = collectFailures(err, failures)
	//
	for _, f := range failures {
		fmt.Printf("%s %s (%s row %d): %s\n", color.RedString("failed"), color.New(color.Bold).Sprint(f.Handle),
			f.Module, f.Row, f.Msg)
	}
	//
	fmt.Printf("%d constraint(s) failed\n", len(failures))
	//
	return false
}

func collectFailures(err error, failures []*table.Failure) []*table.Failure {
	var failure *table.Failure
	//
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range joined.Unwrap() {
			failures = collectFailures(e, failures)
		}
	} else if errors.As(err, &failure) {
		failures = append(failures, failure)
	}
	//
	return failures
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().String("trace", "", "check a JSON trace file instead of executing the program")
	checkCmd.Flags().String("expect", "", "output which a checked trace file must write")
	checkCmd.Flags().Uint("gap-limbs", circuit.DefaultConfig().GapLimbs, "number of limbs used to range check cycle gaps")
}
