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

	"github.com/dajuguan/zkvm-brainfuck/pkg/util/field"
	"github.com/dajuguan/zkvm-brainfuck/pkg/vm"
	"github.com/spf13/cobra"
)

// Get an expected flag, or panic if an error arises.
func getFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	return r
}

// Get an expected signed integer, or panic if an error arises.
func getInt(cmd *cobra.Command, flag string) int {
	r, err := cmd.Flags().GetInt(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	return r
}

// Get an expected unsigned integer, or panic if an error arises.
func getUint(cmd *cobra.Command, flag string) uint {
	r, err := cmd.Flags().GetUint(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	return r
}

// Get an expected 64bit unsigned integer, or panic if an error arises.
func getUint64(cmd *cobra.Command, flag string) uint64 {
	r, err := cmd.Flags().GetUint64(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	return r
}

// Get an expected string, or panic if an error arises.
func getString(cmd *cobra.Command, flag string) string {
	r, err := cmd.Flags().GetString(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	return r
}

// Read a program file, or exit if an error arises.
func readProgramFile(filename string) []byte {
	bytes, err := os.ReadFile(filename)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	return bytes
}

// Read and compile a program file, or exit if an error arises.
func compileProgramFile(filename string) vm.Program {
	program, err := vm.Compile(readProgramFile(filename))
	if err != nil {
		fmt.Printf("%s: %s\n", filename, err)
		os.Exit(2)
	}
	//
	return program
}

// Read the program input from either the command line, or a file.
func readInput(cmd *cobra.Command) []byte {
	if filename := getString(cmd, "input-file"); filename != "" {
		bytes, err := os.ReadFile(filename)
		if err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
		//
		return bytes
	}
	//
	return []byte(getString(cmd, "input"))
}

// Execute a program file as determined by the command-line flags, or exit if
// an error arises.
func execute(cmd *cobra.Command, filename string) *vm.Matrix {
	matrix, err := vm.NewInterpreter(compileProgramFile(filename)).
		WithBits(getUint(cmd, "bits")).
		WithMaxCycles(getUint64(cmd, "max-cycles")).
		WithInput(field.FromBytes(readInput(cmd))...).
		Run()
	//
	if err != nil {
		fmt.Printf("%s: %s\n", filename, err)
		os.Exit(1)
	}
	//
	return matrix
}
