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

// processorTable holds the columns of the processor table, which contains
// one row per cycle in cycle order, followed by the halted state.
type processorTable struct {
	cycle   table.Column
	ip      table.Column
	ci      table.Column
	ni      table.Column
	mp      table.Column
	mv      table.Column
	mvInv   table.Column
	columns []table.Column
}

func newProcessorTable(schema *table.Schema, rt *gadgets.RangeTable, bits uint) *processorTable {
	var p processorTable
	//
	p.cycle = schema.AddColumn(Processor, "clk", table.Witness)
	p.ip = schema.AddColumn(Processor, "ip", table.Witness)
	p.ci = schema.AddColumn(Processor, "ci", table.Witness)
	p.ni = schema.AddColumn(Processor, "ni", table.Witness)
	p.mp = schema.AddColumn(Processor, "mp", table.Witness)
	p.mv = schema.AddColumn(Processor, "mv", table.Witness)
	p.mvInv = schema.AddColumn(Processor, "mv_inv", table.Witness)
	p.columns = []table.Column{p.cycle, p.ip, p.ci, p.ni, p.mp, p.mv, p.mvInv}
	//
	var (
		first = schema.AddSelector(Processor, "first", table.FirstRow)
		trans = schema.AddSelector(Processor, "trans", table.AllButLast)
		last  = schema.AddSelector(Processor, "last", table.LastRow)
		one   = air.NewConst64(1)
		clk   = p.access(p.cycle)
		ip    = p.access(p.ip)
		ci    = p.access(p.ci)
		mp    = p.access(p.mp)
		mv    = p.access(p.mv)
		// Indicator for a zero cell
		isZero = gadgets.ApplyIsZeroGadget(schema, Processor, mv, p.access(p.mvInv))
	)
	// Every execution has at least its halted state, so boundaries always bind
	schema.AddNonEmptyConstraint("processor:nonempty", Processor)
	// Boundary: execution starts from the initial state
	schema.AddVanishingConstraint("processor:boundary:clk", Processor, first.Name, clk)
	schema.AddVanishingConstraint("processor:boundary:ip", Processor, first.Name, ip)
	schema.AddVanishingConstraint("processor:boundary:mp", Processor, first.Name, mp)
	schema.AddVanishingConstraint("processor:boundary:mv", Processor, first.Name, mv)
	// Boundary: execution ends in the halted state
	schema.AddVanishingConstraint("processor:halt", Processor, last.Name, ci)
	// Every transition executes exactly one opcode
	schema.AddVanishingConstraint("processor:opcode", Processor, trans.Name, gadgets.Membership(ci, opcodes()))
	// Transitions
	schema.AddVanishingConstraint("processor:clk", Processor, trans.Name, air.Delta(clk).Sub(one))
	schema.AddVanishingConstraint("processor:ip", Processor, trans.Name, p.transition(p.ipRule(isZero)))
	schema.AddVanishingConstraint("processor:mp", Processor, trans.Name, p.transition(p.mpRule))
	schema.AddVanishingConstraint("processor:mv", Processor, trans.Name, p.transition(p.mvRule(bits)))
	// Cell values fit within the bitwidth
	rt.Constrain(schema, "processor:mv:range", Processor, nil, mv)
	//
	return &p
}

// transition multiplexes the rules for each opcode into a single expression,
// where the rule for a given opcode is only live on rows executing that
// opcode.  Opcodes whose rule is nil are unconstrained.
func (p *processorTable) transition(rule func(vm.Opcode) air.Expr) air.Expr {
	var (
		terms []air.Expr
		ci    = p.access(p.ci)
		all   = opcodes()
	)
	//
	for _, op := range vm.Opcodes {
		if r := rule(op); r != nil {
			terms = append(terms, gadgets.Deselector(ci, op.Uint64(), all).Mul(r))
		}
	}
	//
	return air.Sum(terms...)
}

// ipRule determines how the instruction pointer changes for each opcode.
// Jumps either step over their target, or move to it, depending on whether
// the current cell is zero.
func (p *processorTable) ipRule(isZero air.Expr) func(vm.Opcode) air.Expr {
	var (
		one     = air.NewConst64(1)
		ip      = p.access(p.ip)
		ni      = p.access(p.ni)
		nonZero = one.Sub(isZero)
		// next.ip == ip + 2
		step = air.Delta(ip).Sub(air.NewConst64(2))
		// next.ip == ni
		jump = air.Next(ip).Sub(ni)
	)
	//
	return func(op vm.Opcode) air.Expr {
		switch op {
		case vm.JumpForward:
			return nonZero.Mul(step).Add(isZero.Mul(jump))
		case vm.JumpBackward:
			return isZero.Mul(step).Add(nonZero.Mul(jump))
		default:
			return air.Delta(ip).Sub(one)
		}
	}
}

// mpRule determines how the memory pointer changes for each opcode.
func (p *processorTable) mpRule(op vm.Opcode) air.Expr {
	var (
		one = air.NewConst64(1)
		dmp = air.Delta(p.access(p.mp))
	)
	//
	switch op {
	case vm.ShiftLeft:
		return dmp.Add(one)
	case vm.ShiftRight:
		return dmp.Sub(one)
	default:
		return dmp
	}
}

// mvRule determines how the current cell changes for each opcode.  Increment
// and decrement are expressed as a product of two differences, one for the
// regular case and one for wraparound.  Shifts and reads are left to the
// memory and input lookups.
func (p *processorTable) mvRule(bits uint) func(vm.Opcode) air.Expr {
	var (
		one = air.NewConst64(1)
		wrap = air.NewConst(field.TwoPowN(bits).Sub(field.One()))
		dmv = air.Delta(p.access(p.mv))
	)
	//
	return func(op vm.Opcode) air.Expr {
		switch op {
		case vm.Increment:
			return dmv.Sub(one).Mul(dmv.Add(wrap))
		case vm.Decrement:
			return dmv.Add(one).Mul(dmv.Sub(wrap))
		case vm.JumpForward, vm.JumpBackward, vm.Write:
			return dmv
		default:
			return nil
		}
	}
}

func (p *processorTable) access(col table.Column) *air.ColumnAccess {
	return air.NewColumnAccess(col, 0)
}

func (p *processorTable) assign(tr *table.ArrayTrace, rows []vm.Register) error {
	data := make([][]field.Element, len(p.columns))
	//
	for i := range data {
		data[i] = make([]field.Element, len(rows))
	}
	//
	for i, r := range rows {
		data[0][i] = r.Cycle
		data[1][i] = r.InstructionPointer
		data[2][i] = r.CurrentInstruction
		data[3][i] = r.NextInstruction
		data[4][i] = r.MemoryPointer
		data[5][i] = r.MemoryValue
		data[6][i] = r.MemoryValueInverse
	}
	//
	return addColumns(tr, Processor, len(rows), p.columns, data...)
}
