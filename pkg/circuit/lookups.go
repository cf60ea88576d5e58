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
package circuit

import (
	"github.com/dajuguan/zkvm-brainfuck/pkg/air"
	"github.com/dajuguan/zkvm-brainfuck/pkg/air/gadgets"
	"github.com/dajuguan/zkvm-brainfuck/pkg/table"
	"github.com/dajuguan/zkvm-brainfuck/pkg/vm"
)

// addLookups relates the tables of this circuit to each other.  Where two
// tables hold the same rows in a different order, lookups are added in both
// directions.
func (c *Circuit) addLookups(schema *table.Schema) {
	var (
		proc  = c.processor
		all   = opcodes()
		ci    = air.NewColumnAccess(proc.ci, 0)
		write = gadgets.Selector(ci, vm.Write.Uint64(), all)
		read  = gadgets.Selector(ci, vm.Read.Uint64(), all)
		// Processor views
		instructions = table.NewVector(Processor, accesses(proc.ip, proc.ci, proc.ni)...)
		cells        = table.NewVector(Processor, accesses(proc.mp, proc.mv, proc.cycle)...)
		writes       = table.NewFilteredVector(Processor, write, accesses(proc.cycle, proc.mv)...)
		// A read is bound to the value of the cell after it executes
		reads = table.NewFilteredVector(Processor, read, air.NewColumnAccess(proc.cycle, 0),
			air.Next(air.NewColumnAccess(proc.mv, 0)))
		// Other tables
		program     = table.NewVector(Program, accesses(c.program.ip, c.program.ci, c.program.ni)...)
		instruction = table.NewVector(Instruction, accesses(c.instruction.ip, c.instruction.ci, c.instruction.ni)...)
		memory      = table.NewVector(Memory, accesses(c.memory.mp, c.memory.mv, c.memory.cycle)...)
		input       = table.NewVector(Input, accesses(c.input.cycle, c.input.value)...)
		output      = table.NewVector(Output, accesses(c.output.cycle, c.output.value)...)
	)
	// Only instructions from the program are executed
	schema.AddLookupConstraint("instruction:program", instruction, program)
	schema.AddLookupConstraint("processor:instruction", instructions, instruction)
	schema.AddLookupConstraint("instruction:processor", instruction, instructions)
	// The memory table holds the same cells as the processor table
	schema.AddLookupConstraint("processor:memory", cells, memory)
	schema.AddLookupConstraint("memory:processor", memory, cells)
	// Output is exactly what was written
	schema.AddLookupConstraint("processor:output", writes, output)
	schema.AddLookupConstraint("output:processor", output, writes)
	// Input is exactly what was read
	schema.AddLookupConstraint("processor:input", reads, input)
	schema.AddLookupConstraint("input:processor", input, reads)
}

func accesses(columns ...table.Column) []table.Evaluable {
	terms := make([]table.Evaluable, len(columns))
	//
	for i, col := range columns {
		terms[i] = air.NewColumnAccess(col, 0)
	}
	//
	return terms
}
