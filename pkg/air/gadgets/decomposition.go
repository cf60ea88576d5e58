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
	"fmt"
	"math/big"

	"github.com/dajuguan/zkvm-brainfuck/pkg/air"
	"github.com/dajuguan/zkvm-brainfuck/pkg/table"
	"github.com/dajuguan/zkvm-brainfuck/pkg/util/field"
)

// Decomposition ensures all values in a given column fit within a given
// bitwidth.  This is implemented using a *horizontal limb decomposition* which
// adds n limb columns, each range checked against a table, and a vanishing
// constraint (where n*bits is the bitwidth being enforced).
type Decomposition struct {
	target table.Column
	limbs  []table.Column
	bits   uint
}

// ApplyDecompositionGadget decomposes a given column into n limbs whose width
// is determined by the given range table.  For a column X with limbs X:0 ..
// X:n-1, this corresponds to the vanishing constraint:
//
//	X == X:0 + X:1 * 2^b + ... + X:n-1 * 2^(b*(n-1))
//
// alongside lookups of each limb into the range table.
func ApplyDecompositionGadget(schema *table.Schema, rt *RangeTable, target table.Column, n uint) *Decomposition {
	// Sanity check
	if n == 0 {
		panic("zero limb decomposition encountered")
	}
	//
	var (
		limbs = make([]table.Column, n)
		terms = make([]air.Expr, n)
		bits  = rt.Bits()
	)
	// Construct limb columns
	for i := uint(0); i < n; i++ {
		limbs[i] = schema.AddColumn(target.Module, fmt.Sprintf("%s:%d", target.Name, i), table.Witness)
		limb := air.NewColumnAccess(limbs[i], 0)
		terms[i] = limb.Mul(air.NewConst(field.TwoPowN(bits * i)))
		//
		rt.Constrain(schema, limbs[i].QualifiedName()+":range", target.Module, nil, limb)
	}
	// Construct X == (X:0 * 1) + ... + (X:n-1 * 2^(b*(n-1)))
	eq := air.NewColumnAccess(target, 0).Equate(air.Sum(terms...))
	schema.AddVanishingConstraint(target.QualifiedName()+":decomposition", target.Module, "", eq)
	//
	return &Decomposition{target, limbs, bits}
}

// Limbs returns the limb columns of this decomposition, least significant
// first.
func (p *Decomposition) Limbs() []table.Column {
	return p.limbs
}

// Assign adds the limb columns for this decomposition to a given trace, using
// the values of the target column.  This fails if a value does not fit within
// the bitwidth of the decomposition.
func (p *Decomposition) Assign(tr *table.ArrayTrace) error {
	column := tr.Column(p.target.Module, p.target.Name)
	//
	if column == nil {
		return fmt.Errorf("missing column %s", p.target.QualifiedName())
	}
	//
	var (
		data = column.Data()
		n    = len(p.limbs)
		cols = make([][]field.Element, n)
	)
	//
	for i := range cols {
		cols[i] = make([]field.Element, len(data))
	}
	// Decompose each row of the column
	for i := range data {
		ith, err := decomposeIntoLimbs(data[i], p.bits, n)
		if err != nil {
			return fmt.Errorf("%s row %d: %w", p.target.QualifiedName(), i, err)
		}
		//
		for j := 0; j < n; j++ {
			cols[j][i] = ith[j]
		}
	}
	// Finally, add limb columns to trace
	for i, limb := range p.limbs {
		if err := tr.AddColumn(limb.Module, limb.Name, cols[i]); err != nil {
			return err
		}
	}
	// Done
	return nil
}

// Decompose a given element into n limbs of a given bitwidth in little endian
// form.  For example, decomposing 0x41b into 2 limbs of 8 bits gives
// [0x1b,0x04].
func decomposeIntoLimbs(val field.Element, bits uint, n int) ([]field.Element, error) {
	var (
		limbs = make([]field.Element, n)
		mask  = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), bits), big.NewInt(1))
		rest  big.Int
		limb  big.Int
	)
	//
	val.BigInt(&rest)
	//
	for i := 0; i < n; i++ {
		limb.And(&rest, mask)
		limbs[i] = field.Uint64(limb.Uint64())
		rest.Rsh(&rest, bits)
	}
	//
	if rest.Sign() != 0 {
		return nil, fmt.Errorf("value %s does not fit in %d bits", val.String(), bits*uint(n))
	}
	//
	return limbs, nil
}
