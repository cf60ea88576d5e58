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
package table

import "github.com/dajuguan/zkvm-brainfuck/pkg/util/field"

// Evaluable captures something which can be evaluated on a given row of a
// trace to produce a single value.
type Evaluable interface {
	// EvalAt evaluates this expression in a given tabular context.  Observe
	// that if this expression is *undefined* within this context then it
	// returns false.  An expression can be undefined for several reasons:
	// firstly, if it accesses a row which does not exist (e.g. at index -1);
	// secondly, if it accesses a column which does not exist.
	EvalAt(row int, tr Trace) (field.Element, bool)
}

// Trace describes a set of modules, each holding a set of named columns of
// equal height.
type Trace interface {
	// Height returns the number of rows in a given module, or 0 if no such
	// module exists.
	Height(module string) int
	// Get the value of a given column at a given row.  If the column does not
	// exist or the row is out-of-bounds then false is returned.
	Get(module string, column string, row int) (field.Element, bool)
	// HasColumn checks whether this trace contains data for a given column.
	HasColumn(module string, column string) bool
}
