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
package air

import (
	"github.com/dajuguan/zkvm-brainfuck/pkg/table"
	"github.com/dajuguan/zkvm-brainfuck/pkg/util/field"
)

// EvalAt evaluates a column access at a given row in a trace, which returns the
// value at that row of the column in question or false if that row is
// out-of-bounds.
func (e *ColumnAccess) EvalAt(k int, tr table.Trace) (field.Element, bool) {
	return tr.Get(e.Module, e.Column, k+e.Shift)
}

// EvalAt evaluates a constant at a given row in a trace, which simply returns
// that constant.
func (e *Constant) EvalAt(k int, tr table.Trace) (field.Element, bool) {
	return e.Value, true
}

// EvalAt evaluates a sum at a given row in a trace by first evaluating all of
// its arguments at that row.
func (e *Add) EvalAt(k int, tr table.Trace) (field.Element, bool) {
	return evalExprsAt(e.Args, k, tr, field.Element.Add)
}

// EvalAt evaluates a subtraction at a given row in a trace by first evaluating
// all of its arguments at that row.
func (e *Sub) EvalAt(k int, tr table.Trace) (field.Element, bool) {
	return evalExprsAt(e.Args, k, tr, field.Element.Sub)
}

// EvalAt evaluates a product at a given row in a trace by first evaluating all
// of its arguments at that row.  Evaluation short-circuits as soon as the
// running product is zero.
func (e *Mul) EvalAt(k int, tr table.Trace) (field.Element, bool) {
	if len(e.Args) == 0 {
		return field.One(), true
	}
	// Evaluate first argument
	val, ok := e.Args[0].EvalAt(k, tr)
	// Continue evaluating the rest
	for i := 1; ok && i < len(e.Args); i++ {
		var ith field.Element
		// Can short-circuit evaluation?
		if val.IsZero() {
			break
		}
		// No
		ith, ok = e.Args[i].EvalAt(k, tr)
		val = val.Mul(ith)
	}
	// Done
	return val, ok
}

// Evaluate all expressions in a given slice at a given row on the table, and
// fold their results together using a combinator.
func evalExprsAt(exprs []Expr, k int, tr table.Trace, fn func(field.Element, field.Element) field.Element) (field.Element, bool) {
	if len(exprs) == 0 {
		return field.Zero(), true
	}
	// Evaluate first argument
	val, ok := exprs[0].EvalAt(k, tr)
	// Continue evaluating the rest
	for i := 1; ok && i < len(exprs); i++ {
		var ith field.Element
		//
		ith, ok = exprs[i].EvalAt(k, tr)
		val = fn(val, ith)
	}
	// Done
	return val, ok
}
