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
package circuit

import (
	"fmt"

	"github.com/dajuguan/zkvm-brainfuck/pkg/air"
	"github.com/dajuguan/zkvm-brainfuck/pkg/air/gadgets"
	"github.com/dajuguan/zkvm-brainfuck/pkg/table"
	"github.com/dajuguan/zkvm-brainfuck/pkg/util/field"
	"github.com/dajuguan/zkvm-brainfuck/pkg/vm"
)

// ioTable holds the columns of either the input or output table.  Values are
// public, whilst the cycles at which they were consumed (or emitted) are not.
type ioTable struct {
	module  string
	value   table.Column
	cycle   table.Column
	diff    table.Column
	columns []table.Column
	diffs   *gadgets.Decomposition
}

func newIOTable(schema *table.Schema, rt *gadgets.RangeTable, module string, limbs uint) *ioTable {
	p := ioTable{module: module}
	//
	p.value = schema.AddColumn(module, "value", table.Instance)
	p.cycle = schema.AddColumn(module, "clk", table.Witness)
	p.diff = schema.AddColumn(module, "diff", table.Witness)
	p.columns = []table.Column{p.value, p.cycle, p.diff}
	p.diffs = gadgets.ApplyDecompositionGadget(schema, rt, p.diff, limbs)
	//
	var (
		trans = schema.AddSelector(module, "trans", table.AllButLast)
		clk   = air.NewColumnAccess(p.cycle, 0)
		diff  = air.NewColumnAccess(p.diff, 0)
		// clk + 1 + next.diff
		expected = air.Sum(clk, air.NewConst64(1), air.Next(diff))
	)
	// Cycles are strictly increasing
	schema.AddVanishingConstraint(fmt.Sprintf("%s:clk", module), module, trans.Name, air.Next(clk).Equate(expected))
	//
	return &p
}

func (p *ioTable) assign(tr *table.ArrayTrace, rows []vm.IORow) error {
	var (
		values = make([]field.Element, len(rows))
		cycles = make([]field.Element, len(rows))
		diffs  = make([]field.Element, len(rows))
	)
	//
	for i, r := range rows {
		values[i] = r.Value
		cycles[i] = r.Cycle
		//
		if i > 0 {
			diffs[i] = r.Cycle.Sub(rows[i-1].Cycle).Sub(field.One())
		}
	}
	//
	if err := addColumns(tr, p.module, len(rows), p.columns, values, cycles, diffs); err != nil {
		return err
	}
	//
	return p.diffs.Assign(tr)
}
