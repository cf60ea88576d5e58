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
	"strings"

	"github.com/dajuguan/zkvm-brainfuck/pkg/util/field"
)

// Program is a jump-resolved instruction stream.  Each element is either an
// opcode or, immediately following a jump opcode, the index in the stream to
// which that jump transfers control.
type Program []uint64

// Compile converts program text into an instruction stream.  Bytes which are
// not opcodes are discarded, allowing programs to contain comments.  Each
// JumpForward is followed by the index just after its matching JumpBackward's
// target slot, whilst each JumpBackward is followed by the index just after its
// matching JumpForward's target slot (i.e. the loop body).
func Compile(src []byte) (Program, error) {
	var (
		program Program
		// Holds the stream index of the target slot of each open JumpForward.
		slots []int
	)
	//
	for offset, b := range src {
		op, ok := DecodeOpcode(b)
		//
		if !ok {
			continue
		}
		//
		program = append(program, op.Uint64())
		//
		switch op {
		case JumpForward:
			// Reserve target slot, filled when the loop is closed.
			program = append(program, 0)
			slots = append(slots, len(program)-1)
		case JumpBackward:
			n := len(slots)
			if n == 0 {
				return nil, fmt.Errorf("%w: unmatched '%c' at offset %d", ErrMismatchedBracket, b, offset)
			}
			//
			slot := slots[n-1]
			slots = slots[:n-1]
			// Loop re-entry point is immediately after the JumpForward pair.
			program = append(program, uint64(slot+1))
			// Loop exit point is immediately after this JumpBackward pair.
			program[slot] = uint64(len(program))
		}
	}
	//
	if len(slots) != 0 {
		return nil, fmt.Errorf("%w: %d unmatched '%c'", ErrMismatchedBracket, len(slots), byte(JumpForward))
	}
	//
	return program, nil
}

// Encode embeds this instruction stream into the field.
func (p Program) Encode() []field.Element {
	return field.Uint64s(p...)
}

// At returns the element at a given stream index, or 0 if the index is
// out-of-bounds.
func (p Program) At(index uint64) uint64 {
	if index < uint64(len(p)) {
		return p[index]
	}
	//
	return 0
}

// Validate checks that every jump in this stream has a target which lies
// within the stream (or at its end).
func (p Program) Validate() error {
	n := uint64(len(p))
	//
	for i := uint64(0); i < n; i++ {
		op, ok := DecodeOpcode(byte(p[i]))
		//
		if !ok || p[i] > 0xff {
			return fmt.Errorf("%w: invalid opcode %d at index %d", ErrMalformedProgram, p[i], i)
		} else if op.IsJump() {
			if i+1 >= n {
				return fmt.Errorf("%w: missing jump target at index %d", ErrMalformedProgram, i)
			} else if p[i+1] > n {
				return fmt.Errorf("%w: jump target %d out-of-bounds at index %d", ErrMalformedProgram, p[i+1], i)
			}
			// Skip target slot
			i++
		}
	}
	//
	return nil
}

func (p Program) String() string {
	var builder strings.Builder
	//
	for i := 0; i < len(p); i++ {
		if i != 0 {
			builder.WriteString(" ")
		}
		//
		op := Opcode(p[i])
		builder.WriteByte(byte(op))
		//
		if op.IsJump() && i+1 < len(p) {
			builder.WriteString(fmt.Sprintf(" %d", p[i+1]))
			i++
		}
	}
	//
	return builder.String()
}
