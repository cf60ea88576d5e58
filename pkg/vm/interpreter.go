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
	"fmt"
	"slices"

	"github.com/dajuguan/zkvm-brainfuck/pkg/util"
	"github.com/dajuguan/zkvm-brainfuck/pkg/util/field"
	log "github.com/sirupsen/logrus"
)

// DefaultBits is the default bitwidth of a tape cell.
const DefaultBits = 8

// MaxBits is the largest bitwidth of a tape cell which can be executed.  Cells
// are held as field elements, but their values must also fit in 64 bits.
const MaxBits = 63

// Interpreter executes an instruction stream and records the trace tables of
// that execution.  An interpreter is immutable: the With methods return an
// updated copy, and Run never modifies the interpreter itself.
type Interpreter struct {
	program Program
	input   []field.Element
	bits    uint
	// Maximum number of cycles to execute, where 0 means unbounded.
	maxCycles uint64
}

// NewInterpreter constructs an interpreter for a given instruction stream with
// no input and the default cell bitwidth.
func NewInterpreter(program Program) Interpreter {
	return Interpreter{program: program, bits: DefaultBits}
}

// WithInput returns an interpreter updated with the given input sequence, but
// which is otherwise identical to before.
func (p Interpreter) WithInput(input ...field.Element) Interpreter {
	var interpreter = p
	//
	interpreter.input = input
	//
	return interpreter
}

// WithBits returns an interpreter updated with the given cell bitwidth, but
// which is otherwise identical to before.
func (p Interpreter) WithBits(bits uint) Interpreter {
	var interpreter = p
	//
	interpreter.bits = bits
	//
	return interpreter
}

// WithMaxCycles returns an interpreter which fails after executing the given
// number of cycles.  A limit of 0 means execution is unbounded.
func (p Interpreter) WithMaxCycles(limit uint64) Interpreter {
	var interpreter = p
	//
	interpreter.maxCycles = limit
	//
	return interpreter
}

// Bits returns the cell bitwidth used by this interpreter.
func (p Interpreter) Bits() uint {
	return p.bits
}

// Run executes the program to completion, returning the trace tables of the
// execution.  Execution halts when the instruction pointer reaches (or
// exceeds) the end of the stream.
func (p Interpreter) Run() (*Matrix, error) {
	if err := p.program.Validate(); err != nil {
		return nil, err
	} else if p.bits == 0 || p.bits > MaxBits {
		return nil, fmt.Errorf("%w: invalid cell bitwidth %d", ErrMalformedProgram, p.bits)
	}
	//
	var (
		stats  = util.NewPerfStats()
		state  = newState(p)
		matrix = &Matrix{Program: NewProgramTable(p.program)}
	)
	//
	for !state.halted() {
		if p.maxCycles != 0 && state.cycle >= p.maxCycles {
			return nil, fmt.Errorf("%w (%d cycles)", ErrCycleLimit, p.maxCycles)
		}
		// Record state at start of cycle
		matrix.Processor = append(matrix.Processor, state.register())
		//
		if err := state.step(matrix); err != nil {
			return nil, fmt.Errorf("cycle %d (ip %d): %w", state.cycle, state.ip, err)
		}
	}
	// Record halted state
	matrix.Processor = append(matrix.Processor, state.register())
	matrix.project()
	//
	log.WithFields(log.Fields{
		"cycles": state.cycle,
		"cells":  len(state.tape),
		"input":  len(matrix.Input),
		"output": len(matrix.Output),
	}).Debug("execution complete")
	stats.Log("execution")
	//
	return matrix, nil
}

// state holds the mutable state of a single execution.  This is owned
// exclusively by Run.
type state struct {
	program Program
	cycle   uint64
	ip      uint64
	mp      uint64
	tape    []field.Element
	input   []field.Element
	// Largest value a cell can hold
	max field.Element
}

func newState(p Interpreter) *state {
	return &state{
		program: p.program,
		tape:    []field.Element{field.Zero()},
		input:   slices.Clone(p.input),
		max:     field.TwoPowN(p.bits).Sub(field.One()),
	}
}

func (p *state) halted() bool {
	return p.ip >= uint64(len(p.program))
}

// register constructs a snapshot of the current machine state.
func (p *state) register() Register {
	var (
		ci, ni uint64
		value  = p.tape[p.mp]
	)
	//
	if !p.halted() {
		ci = p.program[p.ip]
		ni = p.program.At(p.ip + 1)
	}
	//
	return Register{
		Cycle:              field.Uint64(p.cycle),
		InstructionPointer: field.Uint64(p.ip),
		CurrentInstruction: field.Uint64(ci),
		NextInstruction:    field.Uint64(ni),
		MemoryPointer:      field.Uint64(p.mp),
		MemoryValue:        value,
		MemoryValueInverse: value.Inverse(),
	}
}

// step executes the instruction at the instruction pointer, recording any
// input consumed or output produced in the given matrix.
func (p *state) step(matrix *Matrix) error {
	var (
		op   = Opcode(p.program[p.ip])
		cell = &p.tape[p.mp]
	)
	//
	switch op {
	case ShiftLeft:
		if p.mp == 0 {
			return ErrPointerUnderflow
		}
		//
		p.mp--
		p.ip++
	case ShiftRight:
		p.mp++
		// Tape grows one cell at a time
		if p.mp == uint64(len(p.tape)) {
			p.tape = append(p.tape, field.Zero())
		}
		//
		p.ip++
	case Increment:
		if cell.Equal(p.max) {
			*cell = field.Zero()
		} else {
			*cell = cell.Add(field.One())
		}
		//
		p.ip++
	case Decrement:
		if cell.IsZero() {
			*cell = p.max
		} else {
			*cell = cell.Sub(field.One())
		}
		//
		p.ip++
	case Read:
		if len(p.input) == 0 {
			return ErrInputExhausted
		}
		//
		val := p.input[0]
		if val.Cmp(p.max) > 0 {
			return fmt.Errorf("%w: %s", ErrInputOutOfRange, val.String())
		}
		//
		p.input = p.input[1:]
		*cell = val
		matrix.Input = append(matrix.Input, IORow{field.Uint64(p.cycle), val})
		p.ip++
	case Write:
		matrix.Output = append(matrix.Output, IORow{field.Uint64(p.cycle), *cell})
		p.ip++
	case JumpForward:
		if cell.IsZero() {
			p.ip = p.program[p.ip+1]
		} else {
			p.ip += 2
		}
	case JumpBackward:
		if !cell.IsZero() {
			p.ip = p.program[p.ip+1]
		} else {
			p.ip += 2
		}
	default:
		return fmt.Errorf("%w: invalid opcode %d", ErrMalformedProgram, p.program[p.ip])
	}
	//
	p.cycle++
	//
	return nil
}
