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

	"github.com/dajuguan/zkvm-brainfuck/pkg/air"
	"github.com/dajuguan/zkvm-brainfuck/pkg/table"
	"github.com/dajuguan/zkvm-brainfuck/pkg/util/field"
)

// MaxRangeBits is the largest bitwidth for which a range table can be
// constructed.
const MaxRangeBits = 16

// RangeTable is a fixed module holding every value of a given bitwidth, such
// that an expression can be range checked by looking it up in this table.
type RangeTable struct {
	column table.Column
	bits   uint
}

// NewRangeTable adds a fixed module to the given schema holding the values
// 0..2^bits-1.
func NewRangeTable(schema *table.Schema, bits uint) *RangeTable {
	if bits == 0 || bits > MaxRangeBits {
		panic(fmt.Sprintf("invalid range table bitwidth %d", bits))
	}
	//
	module := fmt.Sprintf("range_u%d", bits)
	column := schema.AddFixedColumn(module, "value", RangeValues(bits))
	//
	return &RangeTable{column, bits}
}

// Bits returns the bitwidth of this table.
func (p *RangeTable) Bits() uint {
	return p.bits
}

// Column returns the fixed column holding the values of this table.
func (p *RangeTable) Column() table.Column {
	return p.column
}

// Constrain ensures that a given expression evaluates to a value within this
// table on every row of a given module where the filter (if given) is
// non-zero.
func (p *RangeTable) Constrain(schema *table.Schema, handle string, module string, filter air.Expr, e air.Expr) {
	var (
		target = table.NewVector(p.column.Module, air.NewColumnAccess(p.column, 0))
		source table.Vector
	)
	//
	if filter != nil {
		source = table.NewFilteredVector(module, filter, e)
	} else {
		source = table.NewVector(module, e)
	}
	//
	schema.AddLookupConstraint(handle, source, target)
}

// RangeValues returns the values 0..2^bits-1 in order.
func RangeValues(bits uint) []field.Element {
	values := make([]field.Element, 1<<bits)
	//
	for i := range values {
		values[i] = field.Uint64(uint64(i))
	}
	//
	return values
}
