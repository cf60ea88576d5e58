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
	"errors"
	"fmt"
	"slices"

	"github.com/dajuguan/zkvm-brainfuck/pkg/air/gadgets"
	"github.com/dajuguan/zkvm-brainfuck/pkg/table"
	"github.com/dajuguan/zkvm-brainfuck/pkg/util"
	"github.com/dajuguan/zkvm-brainfuck/pkg/util/field"
	"github.com/dajuguan/zkvm-brainfuck/pkg/vm"
	log "github.com/sirupsen/logrus"
)

// Module names, one per trace table.
const (
	Processor   = "processor"
	Memory      = "memory"
	Instruction = "instruction"
	Program     = "program"
	Input       = "input"
	Output      = "output"
)

// Config determines the shape of the constraint system.
type Config struct {
	// Bits is the bitwidth of a tape cell, which is also the width of every
	// range-checked limb.
	Bits uint
	// GapLimbs is the number of limbs used to range check cycle gaps, both
	// between visits to the same memory address and between consecutive
	// input (or output) rows.
	GapLimbs uint
	// MaxCycles bounds execution when a program is run through Verify, where 0
	// means unbounded.
	MaxCycles uint64
}

// DefaultConfig returns the default configuration, which uses byte-sized
// cells and allows gaps of up to 2^32 cycles.
func DefaultConfig() Config {
	return Config{Bits: vm.DefaultBits, GapLimbs: 4}
}

// Validate checks whether this configuration can be used to construct a
// circuit.
func (c Config) Validate() error {
	if c.Bits == 0 || c.Bits > gadgets.MaxRangeBits {
		return fmt.Errorf("invalid cell bitwidth %d (expected 1..%d)", c.Bits, gadgets.MaxRangeBits)
	} else if c.GapLimbs == 0 {
		return errors.New("at least one gap limb required")
	} else if c.Bits*c.GapLimbs > 64 {
		return fmt.Errorf("gaps of %d bits are too wide", c.Bits*c.GapLimbs)
	}
	//
	return nil
}

// Circuit is the constraint system describing every valid execution trace of
// the machine.  The schema is constructed once, and can be used to check any
// number of executions.
type Circuit struct {
	config      Config
	schema      *table.Schema
	processor   *processorTable
	memory      *memoryTable
	program     *programTable
	instruction *programTable
	input       *ioTable
	output      *ioTable
}

// New constructs a circuit for a given configuration.
func New(config Config) (*Circuit, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	//
	var (
		schema = table.EmptySchema()
		rt     = gadgets.NewRangeTable(schema, config.Bits)
		c      = &Circuit{config: config, schema: schema}
	)
	//
	c.processor = newProcessorTable(schema, rt, config.Bits)
	c.memory = newMemoryTable(schema, rt, config.GapLimbs)
	c.program = newProgramTable(schema, Program, table.Fixed)
	c.instruction = newProgramTable(schema, Instruction, table.Witness)
	c.input = newIOTable(schema, rt, Input, config.GapLimbs)
	c.output = newIOTable(schema, rt, Output, config.GapLimbs)
	//
	c.addLookups(schema)
	//
	log.Debugf("constructed %s", schema.String())
	//
	return c, nil
}

// Config returns the configuration of this circuit.
func (c *Circuit) Config() Config {
	return c.config
}

// Schema returns the constraint system of this circuit.
func (c *Circuit) Schema() *table.Schema {
	return c.schema
}

// Assign constructs the (expanded) trace of a given execution.  This fails
// only if the execution cannot be represented within this circuit, such as
// when a cycle gap is too wide for its limbs.  Whether or not the resulting
// trace is accepted is determined separately.
func (c *Circuit) Assign(matrix *vm.Matrix) (*table.ArrayTrace, error) {
	var (
		tr    = table.EmptyArrayTrace()
		stats = util.NewPerfStats()
	)
	//
	for _, err := range []error{
		c.processor.assign(tr, matrix.Processor),
		c.memory.assign(tr, matrix.Memory),
		c.program.assign(tr, matrix.Program),
		c.instruction.assign(tr, matrix.Instruction),
		c.input.assign(tr, matrix.Input),
		c.output.assign(tr, matrix.Output),
	} {
		if err != nil {
			return nil, err
		}
	}
	// Fill selectors and lookup tables
	if err := c.schema.ExpandTrace(tr); err != nil {
		return nil, err
	}
	//
	log.WithFields(log.Fields{
		"processor": tr.Height(Processor),
		"memory":    tr.Height(Memory),
		"program":   tr.Height(Program),
		"input":     tr.Height(Input),
		"output":    tr.Height(Output),
	}).Debug("trace assigned")
	stats.Log("assignment")
	//
	return tr, nil
}

// Instance holds the public values against which an externally supplied trace
// is checked.  Reads consume a prefix of Input, as they do when executing.  When
// Output is nil, the output is taken from the trace itself and must be reported
// to whoever relies on it; otherwise the trace must write exactly Output.
type Instance struct {
	Input  []field.Element
	Output []field.Element
}

// bind determines the values of the instance column for a given I/O table of
// the given height, overriding those supplied with the trace.
func (p Instance) bind(module string, values []field.Element) ([]field.Element, error) {
	var n = len(values)
	//
	switch {
	case module == Input && n > len(p.Input):
		return nil, fmt.Errorf("trace reads %d inputs, but only %d given", n, len(p.Input))
	case module == Input:
		return slices.Clone(p.Input[:n]), nil
	case module == Output && p.Output != nil && n != len(p.Output):
		return nil, fmt.Errorf("trace writes %d outputs, but %d expected", n, len(p.Output))
	case module == Output && p.Output != nil:
		return slices.Clone(p.Output), nil
	}
	//
	return values, nil
}

// Import constructs the (expanded) trace of a given program from externally
// supplied witness columns, such as those parsed from a trace file.  The
// program table is always derived from the program itself, and the instance
// columns from the given public values.  Any fixed columns in the witness are
// ignored.
func (c *Circuit) Import(program vm.Program, public Instance, witness *table.ArrayTrace) (*table.ArrayTrace, error) {
	tr := table.EmptyArrayTrace()
	//
	if err := c.program.assign(tr, vm.NewProgramTable(program)); err != nil {
		return nil, err
	}
	//
	for _, col := range c.schema.Columns() {
		if col.Kind == table.Fixed {
			continue
		}
		//
		data := witness.Column(col.Module, col.Name)
		//
		if data == nil {
			return nil, fmt.Errorf("trace missing %s column %s", col.Kind.String(), col.QualifiedName())
		}
		//
		values := slices.Clone(data.Data())
		//
		if col.Kind == table.Instance {
			var err error
			if values, err = public.bind(col.Module, values); err != nil {
				return nil, err
			}
		}
		//
		if err := tr.AddModule(col.Module, len(values)); err != nil {
			return nil, err
		} else if err := tr.AddColumn(col.Module, col.Name, values); err != nil {
			return nil, err
		}
	}
	//
	if err := c.schema.ExpandTrace(tr); err != nil {
		return nil, err
	}
	//
	return tr, nil
}

// Check determines whether a given execution satisfies every constraint of
// this circuit.  Any failing constraints are reported as *table.Failure
// errors.
func (c *Circuit) Check(matrix *vm.Matrix) error {
	tr, err := c.Assign(matrix)
	if err != nil {
		return err
	}
	//
	stats := util.NewPerfStats()
	err = c.schema.Accepts(tr)
	stats.Log("checking")
	//
	return err
}

// Verify compiles a given program, executes it on a given input and checks
// the resulting execution against a circuit constructed with the given
// configuration.  The execution is returned, even when checking fails.
func Verify(src []byte, input []byte, config Config) (*vm.Matrix, error) {
	circuit, err := New(config)
	if err != nil {
		return nil, err
	}
	//
	program, err := vm.Compile(src)
	if err != nil {
		return nil, err
	}
	//
	matrix, err := vm.NewInterpreter(program).
		WithBits(config.Bits).
		WithMaxCycles(config.MaxCycles).
		WithInput(field.FromBytes(input)...).
		Run()
	if err != nil {
		return nil, err
	}
	//
	return matrix, circuit.Check(matrix)
}

// opcodes returns the value of every opcode.
func opcodes() []uint64 {
	values := make([]uint64, len(vm.Opcodes))
	//
	for i, op := range vm.Opcodes {
		values[i] = op.Uint64()
	}
	//
	return values
}

// addColumns adds the data for a set of columns of the same module to a
// trace, declaring the module as necessary.
func addColumns(tr *table.ArrayTrace, module string, height int, columns []table.Column, data ...[]field.Element) error {
	if err := tr.AddModule(module, height); err != nil {
		return err
	}
	//
	for i, col := range columns {
		if err := tr.AddColumn(col.Module, col.Name, data[i]); err != nil {
			return err
		}
	}
	//
	return nil
}
