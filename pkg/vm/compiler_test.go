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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompile_Neptune(t *testing.T) {
	program, err := Compile([]byte("++>,<[>+.<-]"))
	require.NoError(t, err)
	//
	expected := Program{'+', '+', '>', ',', '<', '[', 14, '>', '+', '.', '<', '-', ']', 7}
	assert.Equal(t, expected, program)
}

func TestCompile_DiscardsComments(t *testing.T) {
	program, err := Compile([]byte("add two: ++ then\nprint it: ."))
	require.NoError(t, err)
	assert.Equal(t, Program{'+', '+', '.'}, program)
}

func TestCompile_NestedLoops(t *testing.T) {
	program, err := Compile([]byte("[[]]"))
	require.NoError(t, err)
	// [ 8 [ 6 ] 4 ] 2
	assert.Equal(t, Program{'[', 8, '[', 6, ']', 4, ']', 2}, program)
	assert.NoError(t, program.Validate())
}

func TestCompile_Empty(t *testing.T) {
	program, err := Compile([]byte("no opcodes here"))
	require.NoError(t, err)
	assert.Empty(t, program)
}

func TestCompile_UnmatchedBackward(t *testing.T) {
	_, err := Compile([]byte("+]"))
	assert.ErrorIs(t, err, ErrMismatchedBracket)
}

func TestCompile_UnmatchedForward(t *testing.T) {
	_, err := Compile([]byte("[[]"))
	assert.ErrorIs(t, err, ErrMismatchedBracket)
}

func TestProgram_Validate(t *testing.T) {
	assert.ErrorIs(t, Program{'+', '['}.Validate(), ErrMalformedProgram)
	assert.ErrorIs(t, Program{'[', 9}.Validate(), ErrMalformedProgram)
	assert.ErrorIs(t, Program{'+', 'x'}.Validate(), ErrMalformedProgram)
	// Jump targets are not opcodes
	assert.NoError(t, Program{'[', 2}.Validate())
}

func TestProgram_String(t *testing.T) {
	program, err := Compile([]byte("+[-]"))
	require.NoError(t, err)
	assert.Equal(t, "+ [ 6 - ] 3", program.String())
}

func TestOpcode_Decode(t *testing.T) {
	for _, op := range Opcodes {
		decoded, ok := DecodeOpcode(byte(op))
		assert.True(t, ok)
		assert.Equal(t, op, decoded)
	}
	//
	_, ok := DecodeOpcode('a')
	assert.False(t, ok)
	assert.True(t, JumpForward.IsJump())
	assert.False(t, Write.IsJump())
	assert.Equal(t, "write", Write.String())
}
