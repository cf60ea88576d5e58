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
	"runtime/debug"

	"github.com/dajuguan/zkvm-brainfuck/pkg/air/gadgets"
	"github.com/dajuguan/zkvm-brainfuck/pkg/vm"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// Version is filled when building with make, but *not* when installing via "go
// install".
var Version string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "bfzk",
	Short: "A trace generator and constraint checker for brainfuck programs.",
	Long: `A trace generator and constraint checker for brainfuck programs.
	Programs are executed to produce a set of trace tables, which are then
	checked against an arithmetic constraint system.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		configureLogging(getFlag(cmd, "verbose"))
	},
	Run: func(cmd *cobra.Command, args []string) {
		if getFlag(cmd, "version") {
			fmt.Print("bfzk ")
			if Version != "" {
				// Built via "make"
				fmt.Printf("%s", Version)
			} else if info, ok := debug.ReadBuildInfo(); ok {
				// Built via "go install"
				fmt.Printf("%s", info.Main.Version)
			} else {
				// Unknown, perhaps "go run"
				fmt.Printf("(unknown version)")
			}
			fmt.Println()
		} else {
			fmt.Println(cmd.UsageString())
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func configureLogging(verbose bool) {
	log.SetOutput(os.Stderr)
	log.SetFormatter(&log.TextFormatter{
		DisableColors:    !term.IsTerminal(int(os.Stderr.Fd())),
		DisableTimestamp: true,
	})
	//
	if verbose {
		log.SetLevel(log.DebugLevel)
	}
}

func init() {
	rootCmd.Flags().Bool("version", false, "Report version of this executable")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "increase logging verbosity")
	rootCmd.PersistentFlags().Uint("bits", vm.DefaultBits, fmt.Sprintf(
		"bitwidth of a tape cell (1..%d when running, 1..%d when checking or tracing)", vm.MaxBits, gadgets.MaxRangeBits))
	rootCmd.PersistentFlags().Uint64("max-cycles", 0, "maximum number of cycles to execute (0 for unbounded)")
	rootCmd.PersistentFlags().StringP("input", "i", "", "input given to the program")
	rootCmd.PersistentFlags().String("input-file", "", "file whose contents are given as input to the program")
}
