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

import (
	"fmt"
	"slices"

	"github.com/dajuguan/zkvm-brainfuck/pkg/util/field"
)

// ArrayTrace provides an implementation of Trace which stores columns as
// arrays.
type ArrayTrace struct {
	// Module names in order of declaration
	modules []string
	// Height of each module
	heights map[string]int
	// Column data
	columns []*ArrayTraceColumn
	// Maps qualified column names to their index in columns
	index map[string]int
}

// EmptyArrayTrace constructs an empty array trace into which modules and
// column data can be added.
func EmptyArrayTrace() *ArrayTrace {
	return &ArrayTrace{
		heights: make(map[string]int),
		index:   make(map[string]int),
	}
}

// AddModule declares a module with a given height.  Declaring the same module
// twice with the same height has no effect.
func (p *ArrayTrace) AddModule(module string, height int) error {
	if h, ok := p.heights[module]; ok && h != height {
		return fmt.Errorf("module %s already declared with height %d (not %d)", module, h, height)
	} else if !ok {
		p.modules = append(p.modules, module)
		p.heights[module] = height
	}
	//
	return nil
}

// AddColumn adds a new column of data to a given module, which must already be
// declared and whose height must match the data.
func (p *ArrayTrace) AddColumn(module string, name string, data []field.Element) error {
	var qualified = QualifiedName(module, name)
	//
	if h, ok := p.heights[module]; !ok {
		return fmt.Errorf("unknown module %s", module)
	} else if h != len(data) {
		return fmt.Errorf("column %s has height %d (expected %d)", qualified, len(data), h)
	} else if _, ok := p.index[qualified]; ok {
		return fmt.Errorf("column %s already exists", qualified)
	}
	//
	p.index[qualified] = len(p.columns)
	p.columns = append(p.columns, &ArrayTraceColumn{module, name, data})
	//
	return nil
}

// Modules returns the declared modules of this trace, in order of declaration.
func (p *ArrayTrace) Modules() []string {
	return p.modules
}

// Columns returns the set of columns in this trace.
func (p *ArrayTrace) Columns() []*ArrayTraceColumn {
	return p.columns
}

// ModuleColumns returns the columns of a given module, in order of insertion.
func (p *ArrayTrace) ModuleColumns(module string) []*ArrayTraceColumn {
	var columns []*ArrayTraceColumn
	//
	for _, c := range p.columns {
		if c.module == module {
			columns = append(columns, c)
		}
	}
	//
	return columns
}

// Height returns the height of a given module, or 0 if it does not exist.
func (p *ArrayTrace) Height(module string) int {
	return p.heights[module]
}

// HasModule checks whether a given module has been declared.
func (p *ArrayTrace) HasModule(module string) bool {
	_, ok := p.heights[module]
	return ok
}

// HasColumn checks whether the trace has a given column or not.
func (p *ArrayTrace) HasColumn(module string, column string) bool {
	_, ok := p.index[QualifiedName(module, column)]
	return ok
}

// Get the value of a given column at a given row.
func (p *ArrayTrace) Get(module string, column string, row int) (field.Element, bool) {
	if c := p.Column(module, column); c != nil {
		return c.Get(row)
	}
	//
	return field.Zero(), false
}

// Set the value of a given column at a given row.  This is primarily useful
// for testing that modified traces are rejected.
func (p *ArrayTrace) Set(module string, column string, row int, val field.Element) error {
	c := p.Column(module, column)
	//
	if c == nil {
		return fmt.Errorf("unknown column %s", QualifiedName(module, column))
	} else if row < 0 || row >= len(c.data) {
		return fmt.Errorf("row %d out-of-bounds for column %s", row, QualifiedName(module, column))
	}
	//
	c.data[row] = val
	//
	return nil
}

// Column looks up a column based on its module and name.  If the column
// doesn't exist, then nil is returned.
func (p *ArrayTrace) Column(module string, column string) *ArrayTraceColumn {
	if i, ok := p.index[QualifiedName(module, column)]; ok {
		return p.columns[i]
	}
	//
	return nil
}

// Clone creates an identical clone of this trace.
func (p *ArrayTrace) Clone() *ArrayTrace {
	clone := EmptyArrayTrace()
	clone.modules = slices.Clone(p.modules)
	clone.columns = make([]*ArrayTraceColumn, len(p.columns))
	//
	for m, h := range p.heights {
		clone.heights[m] = h
	}
	//
	for k, i := range p.index {
		clone.index[k] = i
	}
	//
	for i, c := range p.columns {
		clone.columns[i] = c.Clone()
	}
	//
	return clone
}

// ===================================================================
// Array Trace Column
// ===================================================================

// ArrayTraceColumn represents a column of data within an array trace.
type ArrayTraceColumn struct {
	module string
	name   string
	data   []field.Element
}

// Module returns the module of the given column.
func (p *ArrayTraceColumn) Module() string {
	return p.module
}

// Name returns the name of the given column.
func (p *ArrayTraceColumn) Name() string {
	return p.name
}

// Data returns the raw data of this column.
func (p *ArrayTraceColumn) Data() []field.Element {
	return p.data
}

// Clone an ArrayTraceColumn
func (p *ArrayTraceColumn) Clone() *ArrayTraceColumn {
	return &ArrayTraceColumn{p.module, p.name, slices.Clone(p.data)}
}

// Get the value at the given row of this column.
func (p *ArrayTraceColumn) Get(row int) (field.Element, bool) {
	if row < 0 || row >= len(p.data) {
		return field.Zero(), false
	}
	//
	return p.data[row], true
}
