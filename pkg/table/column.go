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

import "fmt"

// ColumnKind identifies who is responsible for filling a given column.
type ColumnKind uint8

const (
	// Witness columns are filled by the prover from an execution.
	Witness ColumnKind = iota
	// Instance columns hold public values known to the verifier.
	Instance
	// Fixed columns are determined entirely by the schema (e.g. selectors and
	// lookup tables).
	Fixed
)

func (k ColumnKind) String() string {
	switch k {
	case Witness:
		return "witness"
	case Instance:
		return "instance"
	case Fixed:
		return "fixed"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Column describes a named column belonging to a given module.  Every module
// has its own height, hence columns of different modules may have different
// numbers of rows.
type Column struct {
	// Module to which this column belongs
	Module string
	// Name of this column within its module
	Name string
	// Kind of this column
	Kind ColumnKind
}

// NewColumn constructs a new column for a given module.
func NewColumn(module string, name string, kind ColumnKind) Column {
	return Column{module, name, kind}
}

// QualifiedName returns the fully qualified name of this column.
func (c Column) QualifiedName() string {
	return QualifiedName(c.Module, c.Name)
}

func (c Column) String() string {
	return fmt.Sprintf("%s:%s", c.QualifiedName(), c.Kind.String())
}

// QualifiedName returns the qualified name of a column within a module.
func QualifiedName(module string, column string) string {
	return fmt.Sprintf("%s.%s", module, column)
}
