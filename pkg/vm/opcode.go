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

import "fmt"

// Opcode identifies one of the eight instructions of the machine.  The numeric
// value of each opcode is the byte used to write it in program text, and this
// is also how it is encoded in the instruction stream.
type Opcode uint8

const (
	// ShiftLeft moves the memory pointer one cell to the left.
	ShiftLeft Opcode = '<'
	// ShiftRight moves the memory pointer one cell to the right, growing the
	// tape when necessary.
	ShiftRight Opcode = '>'
	// Increment adds one to the current cell, wrapping around at the maximum
	// cell value.
	Increment Opcode = '+'
	// Decrement subtracts one from the current cell, wrapping around at zero.
	Decrement Opcode = '-'
	// Read consumes the next input value into the current cell.
	Read Opcode = ','
	// Write emits the value of the current cell.
	Write Opcode = '.'
	// JumpForward jumps past the matching JumpBackward when the current cell
	// is zero.
	JumpForward Opcode = '['
	// JumpBackward jumps back past the matching JumpForward when the current
	// cell is non-zero.
	JumpBackward Opcode = ']'
)

// Opcodes lists every opcode of the machine exactly once.
var Opcodes = [...]Opcode{
	ShiftLeft, ShiftRight, Increment, Decrement, Read, Write, JumpForward, JumpBackward,
}

// DecodeOpcode determines whether a given byte is an opcode or not.
func DecodeOpcode(b byte) (Opcode, bool) {
	for _, op := range Opcodes {
		if byte(op) == b {
			return op, true
		}
	}
	//
	return 0, false
}

// IsJump checks whether this opcode is followed by a jump target in the
// instruction stream.
func (op Opcode) IsJump() bool {
	return op == JumpForward || op == JumpBackward
}

// Uint64 returns the value of this opcode as found in the instruction stream.
func (op Opcode) Uint64() uint64 {
	return uint64(op)
}

func (op Opcode) String() string {
	switch op {
	case ShiftLeft:
		return "shl"
	case ShiftRight:
		return "shr"
	case Increment:
		return "inc"
	case Decrement:
		return "dec"
	case Read:
		return "read"
	case Write:
		return "write"
	case JumpForward:
		return "jz"
	case JumpBackward:
		return "jnz"
	default:
		return fmt.Sprintf("0x%02x", uint8(op))
	}
}
