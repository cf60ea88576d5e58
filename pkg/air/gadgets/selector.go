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

import "github.com/dajuguan/zkvm-brainfuck/pkg/air"

// Deselector constructs the product of (x - o) for every o in a given set of
// values other than op.  Assuming x takes one of the values in the set, this is
// non-zero exactly when x == op.
func Deselector(x air.Expr, op uint64, all []uint64) air.Expr {
	var factors []air.Expr
	//
	for _, o := range all {
		if o != op {
			factors = append(factors, x.Sub(air.NewConst64(o)))
		}
	}
	//
	return air.Product(factors...)
}

// Selector constructs x times the deselector for op.  Unlike the deselector,
// this also vanishes when x is 0 (e.g. on a halted row).
func Selector(x air.Expr, op uint64, all []uint64) air.Expr {
	return x.Mul(Deselector(x, op, all))
}

// Membership constructs the product of (x - o) for every o in a given set of
// values, which vanishes exactly when x is one of them.
func Membership(x air.Expr, all []uint64) air.Expr {
	factors := make([]air.Expr, len(all))
	//
	for i, o := range all {
		factors[i] = x.Sub(air.NewConst64(o))
	}
	//
	return air.Product(factors...)
}
