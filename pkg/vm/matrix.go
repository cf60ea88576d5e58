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
package vm

import (
	"slices"

	"github.com/dajuguan/zkvm-brainfuck/pkg/util/field"
)

// Register captures the state of the machine at the start of a given cycle.
type Register struct {
	// Cycle counts the number of instructions executed so far.
	Cycle field.Element
	// InstructionPointer is an index into the instruction stream.
	InstructionPointer field.Element
	// CurrentInstruction is the stream element at the instruction pointer, or
	// 0 once the machine has halted.
	CurrentInstruction field.Element
	// NextInstruction is the stream element following the instruction
	// pointer, or 0 if there is none.  For jumps, this is the jump target.
	NextInstruction field.Element
	// MemoryPointer is the index of the current tape cell.
	MemoryPointer field.Element
	// MemoryValue is the value held in the current tape cell.
	MemoryValue field.Element
	// MemoryValueInverse is the inverse of MemoryValue, or 0 when MemoryValue
	// is 0.
	MemoryValueInverse field.Element
}

// InstructionRow is a (pointer, current, next) triple describing one position
// of the instruction stream.
type InstructionRow struct {
	InstructionPointer field.Element
	CurrentInstruction field.Element
	NextInstruction    field.Element
}

// NewInstructionRow projects a register onto its instruction triple.
func NewInstructionRow(r *Register) InstructionRow {
	return InstructionRow{r.InstructionPointer, r.CurrentInstruction, r.NextInstruction}
}

// MemoryRow describes the value of a tape cell at a given cycle.
type MemoryRow struct {
	Cycle         field.Element
	MemoryPointer field.Element
	MemoryValue   field.Element
	// Interleave marks a synthetic row.  Such rows are never generated at
	// present and, hence, this is always zero.
	Interleave field.Element
}

// NewMemoryRow projects a register onto its memory triple.
func NewMemoryRow(r *Register) MemoryRow {
	return MemoryRow{r.Cycle, r.MemoryPointer, r.MemoryValue, field.Zero()}
}

// IORow describes a value consumed (or emitted) at a given cycle.
type IORow struct {
	Cycle field.Element
	Value field.Element
}

// Matrix holds the tables derived from a single execution.  Once produced by
// the interpreter, a matrix is not mutated.
type Matrix struct {
	// Program is the static description of the instruction stream, with one
	// row per stream position plus one row for the halted state.
	Program []InstructionRow
	// Processor holds the machine state of each cycle, in cycle order,
	// followed by the halted state.
	Processor []Register
	// Instruction is the instruction projection of Processor sorted by
	// instruction pointer.
	Instruction []InstructionRow
	// Memory is the memory projection of Processor sorted by memory pointer,
	// then cycle.
	Memory []MemoryRow
	// Input holds the values consumed by read instructions.
	Input []IORow
	// Output holds the values emitted by write instructions.
	Output []IORow
}

// NewProgramTable constructs the program table for a given instruction
// stream.  This is independent of any execution and can be computed as soon as
// the program is loaded.
func NewProgramTable(program Program) []InstructionRow {
	var (
		n    = uint64(len(program))
		rows = make([]InstructionRow, n+1)
	)
	//
	for i := uint64(0); i < n; i++ {
		rows[i] = InstructionRow{field.Uint64(i), field.Uint64(program[i]), field.Uint64(program.At(i + 1))}
	}
	// Halted state
	rows[n] = InstructionRow{field.Uint64(n), field.Zero(), field.Zero()}
	//
	return rows
}

// Heights returns the number of rows in each table, keyed by table name.
func (p *Matrix) Heights() map[string]int {
	return map[string]int{
		"program":     len(p.Program),
		"processor":   len(p.Processor),
		"instruction": len(p.Instruction),
		"memory":      len(p.Memory),
		"input":       len(p.Input),
		"output":      len(p.Output),
	}
}

// Clone returns a deep copy of this matrix.
func (p *Matrix) Clone() *Matrix {
	return &Matrix{
		Program:     slices.Clone(p.Program),
		Processor:   slices.Clone(p.Processor),
		Instruction: slices.Clone(p.Instruction),
		Memory:      slices.Clone(p.Memory),
		Input:       slices.Clone(p.Input),
		Output:      slices.Clone(p.Output),
	}
}

// project fills the instruction and memory tables from the processor table,
// and sorts them.  Sorting is stable, so rows sharing a pointer remain in cycle
// order.
func (p *Matrix) project() {
	p.Instruction = make([]InstructionRow, len(p.Processor))
	p.Memory = make([]MemoryRow, len(p.Processor))
	//
	for i := range p.Processor {
		p.Instruction[i] = NewInstructionRow(&p.Processor[i])
		p.Memory[i] = NewMemoryRow(&p.Processor[i])
	}
	//
	slices.SortStableFunc(p.Instruction, func(l, r InstructionRow) int {
		return l.InstructionPointer.Cmp(r.InstructionPointer)
	})
	slices.SortStableFunc(p.Memory, func(l, r MemoryRow) int {
		return l.MemoryPointer.Cmp(r.MemoryPointer)
	})
}
