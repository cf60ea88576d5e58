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
package air

import (
	"github.com/dajuguan/zkvm-brainfuck/pkg/table"
	"github.com/dajuguan/zkvm-brainfuck/pkg/util/field"
)

// Expr represents an expression in the Arithmetic Intermediate Representation
// (AIR).  Any expression in this form can be converted into a polynomial.
// Expressions at this level are split into those which can be arithmetised and
// those which cannot.  Only the former are supported here, whilst the latter
// are filled during witness assignment.
type Expr interface {
	table.Evaluable

	// Add two expressions together, producing a third.
	Add(Expr) Expr

	// Subtract one expression from another
	Sub(Expr) Expr

	// Multiply two expressions together, producing a third.
	Mul(Expr) Expr

	// Equate one expression with another
	Equate(Expr) Expr

	String() string
}

// ============================================================================
// Addition
// ============================================================================

// Add represents the sum over zero or more expressions.
type Add struct{ Args []Expr }

// Add two expressions together, producing a third.
func (p *Add) Add(other Expr) Expr { return &Add{Args: []Expr{p, other}} }

// Sub (subtract) one expression from another.
func (p *Add) Sub(other Expr) Expr { return &Sub{Args: []Expr{p, other}} }

// Mul (multiply) two expressions together, producing a third.
func (p *Add) Mul(other Expr) Expr { return &Mul{Args: []Expr{p, other}} }

// Equate one expression with another (equivalent to subtraction).
func (p *Add) Equate(other Expr) Expr { return &Sub{Args: []Expr{p, other}} }

// ============================================================================
// Subtraction
// ============================================================================

// Sub represents the subtraction over zero or more expressions.
type Sub struct{ Args []Expr }

// Add two expressions together, producing a third.
func (p *Sub) Add(other Expr) Expr { return &Add{Args: []Expr{p, other}} }

// Sub (subtract) one expression from another.
func (p *Sub) Sub(other Expr) Expr { return &Sub{Args: []Expr{p, other}} }

// Mul (multiply) two expressions together, producing a third.
func (p *Sub) Mul(other Expr) Expr { return &Mul{Args: []Expr{p, other}} }

// Equate one expression with another (equivalent to subtraction).
func (p *Sub) Equate(other Expr) Expr { return &Sub{Args: []Expr{p, other}} }

// ============================================================================
// Multiplication
// ============================================================================

// Mul represents the product over zero or more expressions.
type Mul struct{ Args []Expr }

// Add two expressions together, producing a third.
func (p *Mul) Add(other Expr) Expr { return &Add{Args: []Expr{p, other}} }

// Sub (subtract) one expression from another.
func (p *Mul) Sub(other Expr) Expr { return &Sub{Args: []Expr{p, other}} }

// Mul (multiply) two expressions together, producing a third.
func (p *Mul) Mul(other Expr) Expr { return &Mul{Args: []Expr{p, other}} }

// Equate one expression with another (equivalent to subtraction).
func (p *Mul) Equate(other Expr) Expr { return &Sub{Args: []Expr{p, other}} }

// ============================================================================
// Constant
// ============================================================================

// Constant represents a constant value within an expression.
type Constant struct{ Value field.Element }

// NewConst construct an AIR expression representing a given constant.
func NewConst(val field.Element) Expr {
	return &Constant{val}
}

// NewConst64 construct an AIR expression representing a given constant from a
// uint64.
func NewConst64(val uint64) Expr {
	return &Constant{field.Uint64(val)}
}

// Add two expressions together, producing a third.
func (p *Constant) Add(other Expr) Expr { return &Add{Args: []Expr{p, other}} }

// Sub (subtract) one expression from another.
func (p *Constant) Sub(other Expr) Expr { return &Sub{Args: []Expr{p, other}} }

// Mul (multiply) two expressions together, producing a third.
func (p *Constant) Mul(other Expr) Expr { return &Mul{Args: []Expr{p, other}} }

// Equate one expression with another (equivalent to subtraction).
func (p *Constant) Equate(other Expr) Expr { return &Sub{Args: []Expr{p, other}} }

// ============================================================================
// Column Access
// ============================================================================

// ColumnAccess represents reading the value held at a given column in the
// tabular context.  Furthermore, the current row maybe shifted up (or down) by
// a given amount.  Suppose we are evaluating a constraint on row k=5 which
// contains the column access "X(-1)".  Then, that access reads the value of
// column X on row 4.
type ColumnAccess struct {
	Module string
	Column string
	Shift  int
}

// NewColumnAccess constructs an AIR expression representing the value of a
// given column on the current row, shifted by a given amount.
func NewColumnAccess(column table.Column, shift int) *ColumnAccess {
	return &ColumnAccess{Module: column.Module, Column: column.Name, Shift: shift}
}

// Add two expressions together, producing a third.
func (p *ColumnAccess) Add(other Expr) Expr { return &Add{Args: []Expr{p, other}} }

// Sub (subtract) one expression from another.
func (p *ColumnAccess) Sub(other Expr) Expr { return &Sub{Args: []Expr{p, other}} }

// Mul (multiply) two expressions together, producing a third.
func (p *ColumnAccess) Mul(other Expr) Expr { return &Mul{Args: []Expr{p, other}} }

// Equate one expression with another (equivalent to subtraction).
func (p *ColumnAccess) Equate(other Expr) Expr { return &Sub{Args: []Expr{p, other}} }

// ============================================================================
// Helpers
// ============================================================================

// Sum constructs the sum of zero or more expressions, where an empty sum is 0.
func Sum(exprs ...Expr) Expr {
	switch len(exprs) {
	case 0:
		return NewConst64(0)
	case 1:
		return exprs[0]
	default:
		return &Add{Args: exprs}
	}
}

// Product constructs the product of zero or more expressions, where an empty
// product is 1.
func Product(exprs ...Expr) Expr {
	switch len(exprs) {
	case 0:
		return NewConst64(1)
	case 1:
		return exprs[0]
	default:
		return &Mul{Args: exprs}
	}
}

// Next shifts every column access in a given expression forward by one row.
func Next(e Expr) Expr {
	return Shift(e, 1)
}

// Delta constructs the difference between the value of an expression on the
// next row and its value on the current row.
func Delta(e Expr) Expr {
	return Next(e).Sub(e)
}
