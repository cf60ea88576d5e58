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
	"errors"
	"fmt"
	"runtime"

	"github.com/dajuguan/zkvm-brainfuck/pkg/util/field"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Schema describes the permitted "layout" of a given trace.  That includes
// identifying the required columns and the set of constraints which must hold
// over the trace.  A trace is said to be "accepted" by a schema if: (1) every
// column in the schema exists in the trace; (2) every constraint in the schema
// holds for the trace.
type Schema struct {
	// Column array in order of declaration
	columns []Column
	// Computations used to fill fixed columns during trace expansion
	computations []Computation
	// Constraints which must hold for a trace to be accepted
	constraints []Constraint
}

// EmptySchema is used to construct a fresh schema onto which new columns and
// constraints will be added.
func EmptySchema() *Schema {
	return new(Schema)
}

// AddColumn appends a new column onto the schema, returning it.
func (p *Schema) AddColumn(module string, name string, kind ColumnKind) Column {
	column := NewColumn(module, name, kind)
	//
	if p.HasColumn(module, name) {
		panic(fmt.Sprintf("column %s already exists", column.QualifiedName()))
	}
	//
	p.columns = append(p.columns, column)
	//
	return column
}

// AddSelector appends a fixed selector column onto the schema, which is
// enabled on exactly those rows of its module within the given domain.
func (p *Schema) AddSelector(module string, name string, domain Domain) Column {
	column := p.AddColumn(module, name, Fixed)
	p.computations = append(p.computations, &SelectorComputation{column, domain})
	//
	return column
}

// AddFixedColumn appends a fixed column holding the given values onto the
// schema.  The height of its module is determined by those values.
func (p *Schema) AddFixedColumn(module string, name string, values []field.Element) Column {
	column := p.AddColumn(module, name, Fixed)
	p.computations = append(p.computations, &FixedComputation{column, values})
	//
	return column
}

// AddVanishingConstraint appends a new vanishing constraint onto the schema.
func (p *Schema) AddVanishingConstraint(handle string, module string, selector string, expr Evaluable) {
	p.addConstraint(&VanishingConstraint{handle, module, selector, expr})
}

// AddLookupConstraint appends a new lookup constraint onto the schema.
func (p *Schema) AddLookupConstraint(handle string, source Vector, target Vector) {
	p.addConstraint(&LookupConstraint{handle, source, target})
}

// AddNonEmptyConstraint appends a new constraint onto the schema requiring a
// given module to have at least one row.
func (p *Schema) AddNonEmptyConstraint(handle string, module string) {
	p.addConstraint(&NonEmptyConstraint{handle, module})
}

func (p *Schema) addConstraint(constraint Constraint) {
	for _, c := range p.constraints {
		if c.GetHandle() == constraint.GetHandle() {
			panic(fmt.Sprintf("constraint %s already exists", c.GetHandle()))
		}
	}
	//
	p.constraints = append(p.constraints, constraint)
}

// HasColumn checks whether a given schema has a given column.
func (p *Schema) HasColumn(module string, name string) bool {
	for _, c := range p.columns {
		if c.Module == module && c.Name == name {
			return true
		}
	}
	//
	return false
}

// Columns returns the set of columns required by this schema.
func (p *Schema) Columns() []Column {
	return p.columns
}

// Constraints returns the set of constraints required by this schema.
func (p *Schema) Constraints() []Constraint {
	return p.constraints
}

// Modules returns the distinct modules of this schema, in order of declaration.
func (p *Schema) Modules() []string {
	var (
		modules []string
		seen    = make(map[string]bool)
	)
	//
	for _, c := range p.columns {
		if !seen[c.Module] {
			seen[c.Module] = true
			modules = append(modules, c.Module)
		}
	}
	//
	return modules
}

// ExpandTrace expands a given trace according to this schema.  More
// specifically, that means computing the values for any fixed columns which
// are not already present.
func (p *Schema) ExpandTrace(tr *ArrayTrace) error {
	for _, c := range p.computations {
		if missing(c.Columns(), tr) {
			if err := c.ExpandTrace(tr); err != nil {
				return err
			}
		}
	}
	//
	return nil
}

// Accepts determines whether this schema will accept a given (expanded) trace.
// Constraints are checked in parallel, but failures are reported in order of
// declaration.  Every failing constraint contributes one *Failure to the
// (joined) error returned.
func (p *Schema) Accepts(tr Trace) error {
	for _, c := range p.columns {
		if !tr.HasColumn(c.Module, c.Name) {
			return fmt.Errorf("trace missing %s column %s", c.Kind.String(), c.QualifiedName())
		}
	}
	//
	var (
		group errgroup.Group
		errs  = make([]error, len(p.constraints))
	)
	//
	group.SetLimit(runtime.NumCPU())
	//
	for i, c := range p.constraints {
		group.Go(func() error {
			errs[i] = c.Accepts(tr)
			return nil
		})
	}
	// Constraints never abort the group
	_ = group.Wait()
	//
	log.Debugf("checked %d constraints over %d columns", len(p.constraints), len(p.columns))
	//
	return errors.Join(errs...)
}

func (p *Schema) String() string {
	return fmt.Sprintf("schema{%d columns, %d constraints}", len(p.columns), len(p.constraints))
}

func missing(columns []Column, tr *ArrayTrace) bool {
	for _, c := range columns {
		if !tr.HasColumn(c.Module, c.Name) {
			return true
		}
	}
	//
	return false
}
