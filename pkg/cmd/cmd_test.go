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
	"strconv"
	"testing"

	"github.com/dajuguan/zkvm-brainfuck/pkg/air/gadgets"
	"github.com/dajuguan/zkvm-brainfuck/pkg/circuit"
	"github.com/dajuguan/zkvm-brainfuck/pkg/table"
	"github.com/dajuguan/zkvm-brainfuck/pkg/util/field"
	"github.com/dajuguan/zkvm-brainfuck/pkg/vm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportCheck(t *testing.T) {
	assert.True(t, reportCheck(nil))
	assert.False(t, reportCheck(errors.New("input exhausted")))
}

func TestCollectFailures(t *testing.T) {
	err := errors.Join(
		&table.Failure{Handle: "a", Module: "m", Row: 1},
		errors.Join(&table.Failure{Handle: "b", Module: "m", Row: 2}),
		errors.New("other"),
	)
	//
	failures := collectFailures(err, nil)
	//
	assert.Len(t, failures, 2)
	assert.Equal(t, "a", failures[0].Handle)
	assert.Equal(t, "b", failures[1].Handle)
	assert.False(t, reportCheck(err))
}

func TestBitsUsage(t *testing.T) {
	usage := rootCmd.PersistentFlags().Lookup("bits").Usage
	//
	assert.Contains(t, usage, strconv.Itoa(vm.MaxBits))
	assert.Contains(t, usage, strconv.Itoa(gadgets.MaxRangeBits))
}

func TestTraceOutput(t *testing.T) {
	tr := table.EmptyArrayTrace()
	require.NoError(t, tr.AddModule(circuit.Output, 3))
	require.NoError(t, tr.AddColumn(circuit.Output, "value", field.Uint64s('o', 'k', 300)))
	//
	assert.Equal(t, []byte("ok?"), traceOutput(tr))
}
