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
	"github.com/dajuguan/zkvm-brainfuck/pkg/table"
	"github.com/dajuguan/zkvm-brainfuck/pkg/util/field"
	"github.com/dajuguan/zkvm-brainfuck/pkg/vm"
)

// programTable holds the columns of either the program table, which describes
// every position of the instruction stream and is known in advance, or the
// instruction table, which is the instruction projection of the processor
// table sorted by instruction pointer.  Neither has internal constraints: they
// are related to each other and the processor table only through lookups.
type programTable struct {
	module  string
	ip      table.Column
	ci      table.Column
	ni      table.Column
	columns []table.Column
}

func newProgramTable(schema *table.Schema, module string, kind table.ColumnKind) *programTable {
	p := programTable{module: module}
	//
	p.ip = schema.AddColumn(module, "ip", kind)
	p.ci = schema.AddColumn(module, "ci", kind)
	p.ni = schema.AddColumn(module, "ni", kind)
	p.columns = []table.Column{p.ip, p.ci, p.ni}
	//
	return &p
}

func (p *programTable) assign(tr *table.ArrayTrace, rows []vm.InstructionRow) error {
	data := make([][]field.Element, len(p.columns))
	//
	for i := range data {
		data[i] = make([]field.Element, len(rows))
	}
	//
	for i, r := range rows {
		data[0][i] = r.InstructionPointer
		data[1][i] = r.CurrentInstruction
		data[2][i] = r.NextInstruction
	}
	//
	return addColumns(tr, p.module, len(rows), p.columns, data...)
}
