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

import "errors"

var (
	// ErrMismatchedBracket is reported when a program has a jump without a
	// matching jump in the opposite direction.
	ErrMismatchedBracket = errors.New("mismatched bracket")
	// ErrMalformedProgram is reported when an instruction stream cannot be
	// executed, for example because a jump is missing its target.
	ErrMalformedProgram = errors.New("malformed program")
	// ErrInputExhausted is reported when a read instruction executes with no
	// input remaining.
	ErrInputExhausted = errors.New("input exhausted")
	// ErrInputOutOfRange is reported when an input value does not fit within
	// the cell bitwidth.
	ErrInputOutOfRange = errors.New("input out of range")
	// ErrPointerUnderflow is reported when the memory pointer is shifted left
	// of the first cell.
	ErrPointerUnderflow = errors.New("memory pointer underflow")
	// ErrCycleLimit is reported when execution does not halt within the
	// configured number of cycles.
	ErrCycleLimit = errors.New("cycle limit reached")
)
