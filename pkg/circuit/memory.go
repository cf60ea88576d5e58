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
	"github.com/dajuguan/zkvm-brainfuck/pkg/air"
	"github.com/dajuguan/zkvm-brainfuck/pkg/air/gadgets"
	"github.com/dajuguan/zkvm-brainfuck/pkg/table"
	"github.com/dajuguan/zkvm-brainfuck/pkg/util/field"
	"github.com/dajuguan/zkvm-brainfuck/pkg/vm"
)

// memoryTable holds the columns of the memory table, which contains the same
// rows as the processor table sorted by memory pointer.  Since the sort is
// stable, rows for the same address are in cycle order.
type memoryTable struct {
	cycle      table.Column
	mp         table.Column
	mv         table.Column
	interleave table.Column
	// Number of cycles skipped since the previous row, when that row has the
	// same address.
	gap     table.Column
	columns []table.Column
	// Range check on gaps
	gaps *gadgets.Decomposition
}

func newMemoryTable(schema *table.Schema, rt *gadgets.RangeTable, limbs uint) *memoryTable {
	var p memoryTable
	//
	p.cycle = schema.AddColumn(Memory, "clk", table.Witness)
	p.mp = schema.AddColumn(Memory, "mp", table.Witness)
	p.mv = schema.AddColumn(Memory, "mv", table.Witness)
	p.interleave = schema.AddColumn(Memory, "interleave", table.Witness)
	p.gap = schema.AddColumn(Memory, "gap", table.Witness)
	p.columns = []table.Column{p.cycle, p.mp, p.mv, p.interleave, p.gap}
	p.gaps = gadgets.ApplyDecompositionGadget(schema, rt, p.gap, limbs)
	//
	var (
		first = schema.AddSelector(Memory, "first", table.FirstRow)
		trans = schema.AddSelector(Memory, "trans", table.AllButLast)
		one   = air.NewConst64(1)
		mp    = air.NewColumnAccess(p.mp, 0)
		mv    = air.NewColumnAccess(p.mv, 0)
		gap   = air.NewColumnAccess(p.gap, 0)
		dmp   = air.Delta(mp)
		// Address unchanged when this is non-zero
		same = dmp.Sub(one)
		// Cycles skipped between rows
		skip = air.Delta(air.NewColumnAccess(p.cycle, 0)).Sub(one)
	)
	// Addresses start from zero
	schema.AddVanishingConstraint("memory:boundary:mp", Memory, first.Name, mp)
	// Addresses are dense and non-decreasing
	schema.AddVanishingConstraint("memory:mp", Memory, trans.Name, dmp.Mul(same))
	// Fresh cells are zero
	schema.AddVanishingConstraint("memory:fresh", Memory, trans.Name, dmp.Mul(air.Next(mv)))
	// Cells only change between consecutive cycles
	schema.AddVanishingConstraint("memory:mv", Memory, trans.Name, air.Product(same, air.Delta(mv), skip))
	// Cycles increase within an address
	schema.AddVanishingConstraint("memory:clk", Memory, trans.Name, same.Mul(skip.Sub(air.Next(gap))))
	// Synthetic rows are never inserted
	schema.AddVanishingConstraint("memory:interleave", Memory, "", air.NewColumnAccess(p.interleave, 0))
	//
	return &p
}

func (p *memoryTable) assign(tr *table.ArrayTrace, rows []vm.MemoryRow) error {
	data := make([][]field.Element, len(p.columns))
	//
	for i := range data {
		data[i] = make([]field.Element, len(rows))
	}
	//
	for i, r := range rows {
		data[0][i] = r.Cycle
		data[1][i] = r.MemoryPointer
		data[2][i] = r.MemoryValue
		data[3][i] = r.Interleave
		//
		if i > 0 && r.MemoryPointer.Equal(rows[i-1].MemoryPointer) {
			data[4][i] = r.Cycle.Sub(rows[i-1].Cycle).Sub(field.One())
		}
	}
	//
	if err := addColumns(tr, Memory, len(rows), p.columns, data...); err != nil {
		return err
	}
	//
	return p.gaps.Assign(tr)
}
