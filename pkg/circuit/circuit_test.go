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
	"os"
	"path"
	"testing"

	"github.com/dajuguan/zkvm-brainfuck/pkg/table"
	"github.com/dajuguan/zkvm-brainfuck/pkg/util/field"
	"github.com/dajuguan/zkvm-brainfuck/pkg/vm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// TestDir determines the (relative) location of the test programs.
const TestDir = "../../testdata/bf"

// ===================================================================
// Valid Executions
// ===================================================================

func TestCheck_HelloWorld(t *testing.T) {
	checkValid(t, readFile(t, "hello_world.bf"), "")
}

func TestCheck_Neptune(t *testing.T) {
	matrix := checkValid(t, readFile(t, "neptune_tutorial.bf"), "a")
	assert.Len(t, matrix.Output, 2)
}

func TestCheck_Cat(t *testing.T) {
	matrix := checkValid(t, readFile(t, "cat.bf"), "xy\x00")
	assert.Equal(t, field.FromBytes([]byte("xy")), []field.Element{matrix.Output[0].Value, matrix.Output[1].Value})
}

func TestCheck_SingleOpcodes(t *testing.T) {
	for _, src := range []string{"+", "-", ">", ",", ".", "[]", "+[-]", "><"} {
		t.Run(src, func(t *testing.T) {
			checkValid(t, src, "z")
		})
	}
}

func TestCheck_Empty(t *testing.T) {
	matrix := checkValid(t, "", "")
	assert.Len(t, matrix.Processor, 1)
}

func TestCheck_Wraparound(t *testing.T) {
	checkValid(t, "-.+.--.", "")
}

func TestCheck_RepeatedVisits(t *testing.T) {
	// Cell 0 is revisited after several cycles elsewhere
	checkValid(t, "+>+++>++<<.>.>.<<+.", "")
}

func TestCheck_SmallCells(t *testing.T) {
	config := Config{Bits: 4, GapLimbs: 8}
	matrix, err := Verify([]byte("-.+."), nil, config)
	require.NoError(t, err)
	assert.Equal(t, field.Uint64(15), matrix.Output[0].Value)
}

func TestVerify_InterpreterErrors(t *testing.T) {
	_, err := Verify([]byte("]"), nil, DefaultConfig())
	assert.ErrorIs(t, err, vm.ErrMismatchedBracket)
	//
	_, err = Verify([]byte(","), nil, DefaultConfig())
	assert.ErrorIs(t, err, vm.ErrInputExhausted)
	//
	_, err = Verify([]byte("+[]"), nil, Config{Bits: 8, GapLimbs: 4, MaxCycles: 100})
	assert.ErrorIs(t, err, vm.ErrCycleLimit)
}

func TestConfig_Validate(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())
	assert.Error(t, Config{Bits: 0, GapLimbs: 4}.Validate())
	assert.Error(t, Config{Bits: 17, GapLimbs: 4}.Validate())
	assert.Error(t, Config{Bits: 8, GapLimbs: 0}.Validate())
	assert.Error(t, Config{Bits: 16, GapLimbs: 5}.Validate())
	//
	_, err := New(Config{Bits: 8})
	assert.Error(t, err)
}

func TestAssign_Heights(t *testing.T) {
	circuit, matrix := run(t, readFile(t, "neptune_tutorial.bf"), "a")
	tr, err := circuit.Assign(matrix)
	require.NoError(t, err)
	//
	assert.Equal(t, 19, tr.Height(Processor))
	assert.Equal(t, 19, tr.Height(Memory))
	assert.Equal(t, 19, tr.Height(Instruction))
	assert.Equal(t, 15, tr.Height(Program))
	assert.Equal(t, 1, tr.Height(Input))
	assert.Equal(t, 2, tr.Height(Output))
	assert.Equal(t, 256, tr.Height("range_u8"))
}

// ===================================================================
// Tampered Executions
// ===================================================================

func TestTamper_OutputValue(t *testing.T) {
	tr := tamper(t, "neptune_tutorial.bf", "a", Output, "value", 0, field.Uint64('x'))
	assert.Contains(t, tr, "processor:output")
	assert.Contains(t, tr, "output:processor")
}

func TestTamper_OutputMatrix(t *testing.T) {
	circuit, matrix := run(t, readFile(t, "hello_world.bf"), "")
	//
	for i := range matrix.Output {
		bad := matrix.Clone()
		bad.Output[i].Value = bad.Output[i].Value.Add(field.One())
		err := circuit.Check(bad)
		//
		require.ErrorIs(t, err, table.ErrViolation)
		assert.Contains(t, handles(err), "processor:output")
	}
}

func TestTamper_OutputDropped(t *testing.T) {
	circuit, matrix := run(t, readFile(t, "neptune_tutorial.bf"), "a")
	bad := matrix.Clone()
	bad.Output = bad.Output[:1]
	//
	err := circuit.Check(bad)
	assert.Equal(t, []string{"processor:output"}, handles(err))
}

func TestTamper_InputValue(t *testing.T) {
	tr := tamper(t, "neptune_tutorial.bf", "a", Input, "value", 0, field.Uint64('z'))
	assert.Contains(t, tr, "processor:input")
	assert.Contains(t, tr, "input:processor")
}

func TestTamper_MemoryValue(t *testing.T) {
	tr := tamper(t, "neptune_tutorial.bf", "a", Memory, "mv", 5, field.Uint64(42))
	assert.Contains(t, tr, "processor:memory")
}

func TestTamper_InstructionPointer(t *testing.T) {
	tr := tamper(t, "neptune_tutorial.bf", "a", Processor, "ip", 4, field.Uint64(7))
	assert.Contains(t, tr, "processor:ip")
}

func TestTamper_Inverse(t *testing.T) {
	// Row 1 holds the value 1 in cell 0
	tr := tamper(t, "neptune_tutorial.bf", "a", Processor, "mv_inv", 1, field.Zero())
	assert.Contains(t, tr, "processor.mv_inv:iszero:value")
}

func TestTamper_Halt(t *testing.T) {
	tr := tamper(t, "neptune_tutorial.bf", "a", Processor, "ci", 18, field.Uint64('+'))
	assert.Contains(t, tr, "processor:halt")
}

func TestTamper_Interleave(t *testing.T) {
	tr := tamper(t, "neptune_tutorial.bf", "a", Memory, "interleave", 3, field.One())
	assert.Equal(t, []string{"memory:interleave"}, tr)
}

func TestTamper_Boundary(t *testing.T) {
	tr := tamper(t, "neptune_tutorial.bf", "a", Processor, "mv", 0, field.One())
	assert.Contains(t, tr, "processor:boundary:mv")
}

// The memory table of the neptune run (input "a") holds the following rows of
// (mp, clk, mv): rows 0..10 are for address 0 at cycles 0, 1, 2, 5, 6, 10, 11,
// 12, 16, 17, 18 and rows 11..18 for address 1 at cycles 3, 4, 7, 8, 9, 13, 14,
// 15.  Row 3 is (0, 5, 2), row 4 is (0, 6, 2) and row 11 is (1, 3, 0).
var memoryLookups = []string{"processor:memory", "memory:processor"}

func TestTamper_MemoryBoundary(t *testing.T) {
	tr := tamper(t, "neptune_tutorial.bf", "a", Memory, "mp", 0, field.One())
	assert.Contains(t, tr, "memory:boundary:mp")
}

func TestTamper_MemoryAddressGap(t *testing.T) {
	tr := tamperWith(t, "neptune_tutorial.bf", "a", func(tr *table.ArrayTrace) {
		// Move address 1 to address 2
		for row := 11; row < 19; row++ {
			require.NoError(t, tr.Set(Memory, "mp", row, field.Uint64(2)))
		}
	})
	assert.ElementsMatch(t, append([]string{"memory:mp", "memory:clk"}, memoryLookups...), tr)
}

func TestTamper_MemoryFreshCell(t *testing.T) {
	tr := tamper(t, "neptune_tutorial.bf", "a", Memory, "mv", 11, field.Uint64(5))
	assert.ElementsMatch(t, append([]string{"memory:fresh"}, memoryLookups...), tr)
}

func TestTamper_MemoryValueSkipped(t *testing.T) {
	// Cell 0 is not accessed in cycles 3 and 4, so cannot change
	tr := tamper(t, "neptune_tutorial.bf", "a", Memory, "mv", 3, field.Uint64(3))
	assert.ElementsMatch(t, append([]string{"memory:mv"}, memoryLookups...), tr)
}

func TestTamper_MemoryCycle(t *testing.T) {
	tr := tamper(t, "neptune_tutorial.bf", "a", Memory, "clk", 4, field.Uint64(7))
	assert.ElementsMatch(t, append([]string{"memory:clk"}, memoryLookups...), tr)
}

func TestTamper_MemoryCyclesSwapped(t *testing.T) {
	tr := tamperWith(t, "neptune_tutorial.bf", "a", func(tr *table.ArrayTrace) {
		require.NoError(t, tr.Set(Memory, "clk", 3, field.Uint64(6)))
		require.NoError(t, tr.Set(Memory, "clk", 4, field.Uint64(5)))
	})
	assert.Contains(t, tr, "memory:clk")
}

func TestTamper_ProcessorIncrement(t *testing.T) {
	// Cycle 0 increments cell 0 from 0 to 1
	tr := tamper(t, "neptune_tutorial.bf", "a", Processor, "mv", 1, field.Uint64(2))
	assert.Contains(t, tr, "processor:mv")
}

func TestTamper_ProcessorDecrement(t *testing.T) {
	// Cycle 10 decrements cell 0 from 2 to 1
	tr := tamper(t, "neptune_tutorial.bf", "a", Processor, "mv", 11, field.Zero())
	assert.Contains(t, tr, "processor:mv")
}

func TestTamper_ProcessorWrapOffBound(t *testing.T) {
	// Cycle 7 increments cell 1 from 97, and wrapping is only possible from 255
	tr := tamper(t, "neptune_tutorial.bf", "a", Processor, "mv", 8, field.Uint64(97).Sub(field.Uint64(255)))
	assert.Contains(t, tr, "processor:mv:range")
}

func TestTamper_ProcessorOpcode(t *testing.T) {
	tr := tamper(t, "neptune_tutorial.bf", "a", Processor, "ci", 0, field.Uint64(7))
	assert.Contains(t, tr, "processor:opcode")
}

func TestTamper_ProcessorPointer(t *testing.T) {
	// Cycle 2 shifts right from cell 0
	tr := tamper(t, "neptune_tutorial.bf", "a", Processor, "mp", 3, field.Uint64(2))
	assert.Contains(t, tr, "processor:mp")
}

func TestTamper_InstructionNotExecuted(t *testing.T) {
	tr := tamperWith(t, "neptune_tutorial.bf", "a", func(tr *table.ArrayTrace) {
		// Position 6 holds the target of the first jump, so is never executed
		for _, col := range []string{"ip", "ci", "ni"} {
			val, ok := tr.Get(Program, col, 6)
			require.True(t, ok)
			require.NoError(t, tr.Set(Instruction, col, 0, val))
		}
	})
	assert.Contains(t, tr, "instruction:processor")
	assert.Contains(t, tr, "processor:instruction")
	assert.NotContains(t, tr, "instruction:program")
}

func TestCheck_BitwidthMismatch(t *testing.T) {
	circuit, err := New(Config{Bits: 4, GapLimbs: 8})
	require.NoError(t, err)
	// Values above 15 do not fit in the range table
	matrix, err := vm.NewInterpreter(mustCompile(t, "-.")).Run()
	require.NoError(t, err)
	//
	err = circuit.Check(matrix)
	require.ErrorIs(t, err, table.ErrViolation)
	assert.Contains(t, handles(err), "processor:mv:range")
}

// ===================================================================
// Properties
// ===================================================================

// Every execution accepted by the interpreter must satisfy the circuit.
func TestProperty_AcceptedExecutionsHold(t *testing.T) {
	circuit, err := New(DefaultConfig())
	require.NoError(t, err)
	//
	rapid.Check(t, func(t *rapid.T) {
		var (
			ops   = rapid.SliceOfN(rapid.IntRange(0, 9), 0, 32).Draw(t, "ops")
			input = rapid.SliceOfN(rapid.Byte(), 0, 8).Draw(t, "input")
			src   = balanced(ops)
		)
		//
		program, err := vm.Compile(src)
		if err != nil {
			t.Fatalf("compiling %q: %v", src, err)
		}
		//
		matrix, err := vm.NewInterpreter(program).
			WithInput(field.FromBytes(input)...).
			WithMaxCycles(2000).
			Run()
		if err != nil {
			// Rejected by the interpreter
			return
		}
		//
		if err := circuit.Check(matrix); err != nil {
			t.Fatalf("checking %q: %v", src, err)
		}
	})
}

// balanced converts a sequence of choices into program text with balanced
// brackets.
func balanced(ops []int) []byte {
	var (
		src   []byte
		depth int
	)
	//
	for _, op := range ops {
		switch {
		case op < 8 && vm.Opcodes[op] == vm.JumpBackward && depth == 0:
			src = append(src, byte(vm.Increment))
		case op < 8 && vm.Opcodes[op] == vm.JumpBackward:
			src = append(src, byte(vm.JumpBackward))
			depth--
		case op < 8 && vm.Opcodes[op] == vm.JumpForward:
			src = append(src, byte(vm.JumpForward))
			depth++
		case op < 8:
			src = append(src, byte(vm.Opcodes[op]))
		default:
			// Bias towards decrements so that loops terminate
			src = append(src, byte(vm.Decrement))
		}
	}
	//
	for ; depth > 0; depth-- {
		src = append(src, byte(vm.JumpBackward))
	}
	//
	return src
}

// ===================================================================
// Helpers
// ===================================================================

func readFile(t *testing.T, name string) string {
	bytes, err := os.ReadFile(path.Join(TestDir, name))
	require.NoError(t, err)
	//
	return string(bytes)
}

func mustCompile(t *testing.T, src string) vm.Program {
	program, err := vm.Compile([]byte(src))
	require.NoError(t, err)
	//
	return program
}

func run(t *testing.T, src string, input string) (*Circuit, *vm.Matrix) {
	circuit, err := New(DefaultConfig())
	require.NoError(t, err)
	//
	matrix, err := vm.NewInterpreter(mustCompile(t, src)).WithInput(field.FromBytes([]byte(input))...).Run()
	require.NoError(t, err)
	//
	return circuit, matrix
}

func checkValid(t *testing.T, src string, input string) *vm.Matrix {
	matrix, err := Verify([]byte(src), []byte(input), DefaultConfig())
	require.NoError(t, err)
	//
	return matrix
}

// tamper modifies a single cell of a valid trace, returning the handles of
// all failing constraints.
func tamper(t *testing.T, name string, input string, module string, column string, row int,
	val field.Element) []string {
	return tamperWith(t, name, input, func(tr *table.ArrayTrace) {
		original, ok := tr.Get(module, column, row)
		require.True(t, ok)
		require.False(t, original.Equal(val), "tampered value unchanged")
		require.NoError(t, tr.Set(module, column, row, val))
	})
}

// tamperWith modifies a valid trace using a given function, returning the
// handles of all failing constraints.
func tamperWith(t *testing.T, name string, input string, fn func(*table.ArrayTrace)) []string {
	circuit, matrix := run(t, readFile(t, name), input)
	tr, err := circuit.Assign(matrix)
	require.NoError(t, err)
	require.NoError(t, circuit.Schema().Accepts(tr))
	//
	fn(tr)
	//
	err = circuit.Schema().Accepts(tr)
	require.ErrorIs(t, err, table.ErrViolation)
	//
	return handles(err)
}

// handles extracts the handles of all failures from a (joined) error.
func handles(err error) []string {
	var names []string
	//
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range joined.Unwrap() {
			names = append(names, handles(e)...)
		}
	} else if failure := (*table.Failure)(nil); errors.As(err, &failure) {
		names = append(names, failure.Handle)
	}
	//
	return names
}
