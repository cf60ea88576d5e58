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
package gadgets

import (
	"github.com/dajuguan/zkvm-brainfuck/pkg/air"
	"github.com/dajuguan/zkvm-brainfuck/pkg/table"
)

// ApplyIsZeroGadget constructs an expression which is 1 when a given expression
// e is 0, and 0 otherwise.  This relies upon a witness column holding the
// (pseudo) multiplicative inverse of e, which is 0 when e is 0.  Constraints
// are added to ensure that column really holds the inverted value, namely:
//
//	e * (1 - e*inv) == 0
//	inv * (1 - e*inv) == 0
//
// Observe that the first constraint forces e*inv == 1 whenever e is non-zero,
// whilst the second forces inv == 0 whenever e is zero.
func ApplyIsZeroGadget(schema *table.Schema, module string, e air.Expr, inv *air.ColumnAccess) air.Expr {
	var (
		one = air.NewConst64(1)
		// Construct 1 - e/e
		isZero = one.Sub(e.Mul(inv))
		// Construct handle from inverse column
		handle = table.QualifiedName(module, inv.Column) + ":iszero"
	)
	// Ensure (e != 0) ==> (1 == e/e)
	schema.AddVanishingConstraint(handle+":value", module, "", e.Mul(isZero))
	// Ensure (1/e != 0) ==> (1 == e/e)
	schema.AddVanishingConstraint(handle+":inverse", module, "", inv.Mul(isZero))
	// Done
	return isZero
}
