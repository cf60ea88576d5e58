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

	"github.com/dajuguan/zkvm-brainfuck/pkg/util/field"
)

// Computation describes the process of computing the values of one or more
// columns, given the rest of a trace.  Computations give rise to "trace
// expansion", where the trace provided by the prover is extended with the
// values of all fixed columns.
type Computation interface {
	// Columns returns the columns written by this computation.
	Columns() []Column
	// ExpandTrace adds the columns of this computation to the given trace.
	ExpandTrace(tr *ArrayTrace) error
}

// ===================================================================
// Selectors
// ===================================================================

// Domain identifies the set of rows on which a selector is enabled.
type Domain uint8

const (
	// AllRows enables every row of a module.
	AllRows Domain = iota
	// FirstRow enables only the first row of a module.
	FirstRow
	// LastRow enables only the last row of a module.
	LastRow
	// AllButLast enables every row except the last, and is used for
	// transition constraints which access the next row.
	AllButLast
)

// Contains determines whether a given row is enabled in a module of a given
// height.
func (d Domain) Contains(row int, height int) bool {
	switch d {
	case FirstRow:
		return row == 0
	case LastRow:
		return row == height-1
	case AllButLast:
		return row < height-1
	default:
		return true
	}
}

func (d Domain) String() string {
	switch d {
	case FirstRow:
		return "first"
	case LastRow:
		return "last"
	case AllButLast:
		return "all-but-last"
	default:
		return "all"
	}
}

// SelectorComputation fills a fixed 0/1 column which is 1 exactly on the rows
// of a given domain.
type SelectorComputation struct {
	Target Column
	Domain Domain
}

// Columns returns the selector column.
func (p *SelectorComputation) Columns() []Column {
	return []Column{p.Target}
}

// ExpandTrace fills the selector column based on the height of its module.
func (p *SelectorComputation) ExpandTrace(tr *ArrayTrace) error {
	if !tr.HasModule(p.Target.Module) {
		return fmt.Errorf("selector %s refers to unknown module", p.Target.QualifiedName())
	}
	//
	var (
		height = tr.Height(p.Target.Module)
		data   = make([]field.Element, height)
	)
	//
	for i := range data {
		if p.Domain.Contains(i, height) {
			data[i] = field.One()
		}
	}
	//
	return tr.AddColumn(p.Target.Module, p.Target.Name, data)
}

// ===================================================================
// Fixed Tables
// ===================================================================

// FixedComputation fills a fixed column with a given set of values.  The module
// of the column is declared with a height matching those values.
type FixedComputation struct {
	Target Column
	Values []field.Element
}

// Columns returns the fixed column.
func (p *FixedComputation) Columns() []Column {
	return []Column{p.Target}
}

// ExpandTrace adds the fixed values to the trace.
func (p *FixedComputation) ExpandTrace(tr *ArrayTrace) error {
	if err := tr.AddModule(p.Target.Module, len(p.Values)); err != nil {
		return err
	}
	//
	return tr.AddColumn(p.Target.Module, p.Target.Name, p.Values)
}
