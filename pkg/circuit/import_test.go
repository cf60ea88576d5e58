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
	"testing"

	"github.com/dajuguan/zkvm-brainfuck/pkg/table"
	"github.com/dajuguan/zkvm-brainfuck/pkg/util/field"
	"github.com/dajuguan/zkvm-brainfuck/pkg/vm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImport_ValidTrace(t *testing.T) {
	src := readFile(t, "neptune_tutorial.bf")
	circuit, matrix := run(t, src, "a")
	witness := exportTrace(t, circuit, matrix)
	//
	tr, err := circuit.Import(mustCompile(t, src), publicInput("a"), witness)
	require.NoError(t, err)
	assert.NoError(t, circuit.Schema().Accepts(tr))
}

func TestImport_TamperedOutput(t *testing.T) {
	src := readFile(t, "neptune_tutorial.bf")
	circuit, matrix := run(t, src, "a")
	witness := exportTrace(t, circuit, matrix)
	require.NoError(t, witness.Set(Output, "value", 1, field.Uint64('d')))
	//
	tr, err := circuit.Import(mustCompile(t, src), publicInput("a"), witness)
	require.NoError(t, err)
	//
	err = circuit.Schema().Accepts(tr)
	require.ErrorIs(t, err, table.ErrViolation)
	assert.Contains(t, handles(err), "processor:output")
}

func TestImport_DifferentProgram(t *testing.T) {
	circuit, matrix := run(t, readFile(t, "neptune_tutorial.bf"), "a")
	witness := exportTrace(t, circuit, matrix)
	// Same length, but different opcode at index 0
	tr, err := circuit.Import(mustCompile(t, "-+>,<[>+.<-]"), publicInput("a"), witness)
	require.NoError(t, err)
	//
	err = circuit.Schema().Accepts(tr)
	require.ErrorIs(t, err, table.ErrViolation)
	assert.Contains(t, handles(err), "instruction:program")
}

func TestImport_MissingColumn(t *testing.T) {
	src := readFile(t, "neptune_tutorial.bf")
	circuit, _ := run(t, src, "a")
	witness, err := table.ParseJSON([]byte(`{"processor": {"clk": [0]}}`))
	require.NoError(t, err)
	//
	_, err = circuit.Import(mustCompile(t, src), publicInput("a"), witness)
	assert.Error(t, err)
}

func TestImport_EmptyTrace(t *testing.T) {
	circuit, err := New(DefaultConfig())
	require.NoError(t, err)
	// Every witness and instance column has no rows
	witness := table.EmptyArrayTrace()
	//
	for _, col := range circuit.Schema().Columns() {
		if col.Kind != table.Fixed {
			require.NoError(t, witness.AddModule(col.Module, 0))
			require.NoError(t, witness.AddColumn(col.Module, col.Name, nil))
		}
	}
	//
	tr, err := circuit.Import(mustCompile(t, "+."), publicInput(""), witness)
	require.NoError(t, err)
	//
	err = circuit.Schema().Accepts(tr)
	require.ErrorIs(t, err, table.ErrViolation)
	assert.Equal(t, []string{"processor:nonempty"}, handles(err))
}

func TestImport_PublicInput(t *testing.T) {
	src := readFile(t, "neptune_tutorial.bf")
	circuit, matrix := run(t, src, "a")
	witness := exportTrace(t, circuit, matrix)
	// Trace was generated for a different input
	tr, err := circuit.Import(mustCompile(t, src), publicInput("b"), witness)
	require.NoError(t, err)
	//
	err = circuit.Schema().Accepts(tr)
	require.ErrorIs(t, err, table.ErrViolation)
	assert.Contains(t, handles(err), "processor:input")
	assert.Contains(t, handles(err), "input:processor")
	// Unread input is permitted
	tr, err = circuit.Import(mustCompile(t, src), publicInput("az"), witness)
	require.NoError(t, err)
	assert.NoError(t, circuit.Schema().Accepts(tr))
	// Reads beyond the end of the input are not
	_, err = circuit.Import(mustCompile(t, src), publicInput(""), witness)
	assert.Error(t, err)
}

func TestImport_ExpectedOutput(t *testing.T) {
	src := readFile(t, "neptune_tutorial.bf")
	circuit, matrix := run(t, src, "a")
	witness := exportTrace(t, circuit, matrix)
	program := mustCompile(t, src)
	//
	expect := func(output string) Instance {
		instance := publicInput("a")
		instance.Output = field.FromBytes([]byte(output))
		//
		return instance
	}
	//
	tr, err := circuit.Import(program, expect("bc"), witness)
	require.NoError(t, err)
	assert.NoError(t, circuit.Schema().Accepts(tr))
	//
	tr, err = circuit.Import(program, expect("bd"), witness)
	require.NoError(t, err)
	//
	err = circuit.Schema().Accepts(tr)
	require.ErrorIs(t, err, table.ErrViolation)
	assert.Contains(t, handles(err), "processor:output")
	//
	_, err = circuit.Import(program, expect("b"), witness)
	assert.Error(t, err)
	//
	_, err = circuit.Import(program, expect(""), witness)
	assert.Error(t, err)
}

// publicInput constructs the public values for a given input, leaving the output to
// be taken from the trace.
func publicInput(input string) Instance {
	return Instance{Input: field.FromBytes([]byte(input))}
}

// exportTrace assigns a trace and round-trips it through JSON.
func exportTrace(t *testing.T, circuit *Circuit, matrix *vm.Matrix) *table.ArrayTrace {
	tr, err := circuit.Assign(matrix)
	require.NoError(t, err)
	//
	witness, err := table.ParseJSON([]byte(table.ToJSON(tr)))
	require.NoError(t, err)
	//
	return witness
}
