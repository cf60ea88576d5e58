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
	"strings"
)

// ErrViolation is matched (via errors.Is) by every failure reported when a
// constraint does not hold.
var ErrViolation = errors.New("constraint violation")

// Constraint represents something which can accept, or reject, a trace.
type Constraint interface {
	// GetHandle returns the unique handle of this constraint.
	GetHandle() string
	// Accepts checks whether this constraint holds on a given trace.  If not,
	// a *Failure is returned.
	Accepts(Trace) error
}

// Failure identifies the first row on which a given constraint does not hold.
type Failure struct {
	// Handle of failing constraint
	Handle string
	// Module in which the failure was detected
	Module string
	// Row on which the failure was detected
	Row int
	// Msg describes the failure
	Msg string
}

func (p *Failure) Error() string {
	return fmt.Sprintf("constraint \"%s\" does not hold (%s row %d): %s", p.Handle, p.Module, p.Row, p.Msg)
}

// Is allows failures to be matched against ErrViolation.
func (p *Failure) Is(target error) bool {
	return target == ErrViolation
}

// ===================================================================
// Vanishing Constraints
// ===================================================================

// VanishingConstraint specifies an expression which must evaluate to zero on
// every row of a module where a given selector is enabled.  An empty selector
// enables every row.  Unlike a plain polynomial identity, an expression which
// is undefined on an enabled row (e.g. because it accesses a row beyond the
// end of the module) is reported as a failure.
type VanishingConstraint struct {
	// A unique identifier for this constraint.
	Handle string
	// Module over whose rows this constraint is checked.
	Module string
	// Name of a fixed selector column, or empty for all rows.
	Selector string
	// The expression which must vanish.
	Expr Evaluable
}

// GetHandle returns the handle associated with this constraint.
func (p *VanishingConstraint) GetHandle() string {
	return p.Handle
}

// Accepts checks whether a vanishing constraint evaluates to zero on every
// enabled row of its module.  If so, return nil otherwise return an error.
func (p *VanishingConstraint) Accepts(tr Trace) error {
	for k := 0; k < tr.Height(p.Module); k++ {
		if p.Selector != "" {
			sel, ok := tr.Get(p.Module, p.Selector, k)
			//
			if !ok {
				return p.fail(k, fmt.Sprintf("selector %s undefined", p.Selector))
			} else if sel.IsZero() {
				continue
			}
		}
		//
		if val, ok := p.Expr.EvalAt(k, tr); !ok {
			return p.fail(k, "expression undefined")
		} else if !val.IsZero() {
			return p.fail(k, fmt.Sprintf("evaluates to %s", val.String()))
		}
	}
	// Success
	return nil
}

func (p *VanishingConstraint) fail(row int, msg string) error {
	return &Failure{p.Handle, p.Module, row, msg}
}

func (p *VanishingConstraint) String() string {
	if p.Selector == "" {
		return fmt.Sprintf("(vanish %s %s)", p.Handle, any(p.Expr))
	}
	//
	return fmt.Sprintf("(vanish:%s %s %s)", p.Selector, p.Handle, any(p.Expr))
}

// ===================================================================
// Height Constraints
// ===================================================================

// NonEmptyConstraint requires a module to have at least one row.  Constraints
// on the first or last row of a module hold vacuously when it is empty, hence
// this is needed wherever such a boundary must always bind.
type NonEmptyConstraint struct {
	// A unique identifier for this constraint.
	Handle string
	// Module which must be non-empty.
	Module string
}

// GetHandle returns the handle associated with this constraint.
func (p *NonEmptyConstraint) GetHandle() string {
	return p.Handle
}

// Accepts checks whether the module of this constraint has any rows.
func (p *NonEmptyConstraint) Accepts(tr Trace) error {
	if tr.Height(p.Module) == 0 {
		return &Failure{p.Handle, p.Module, 0, "module is empty"}
	}
	//
	return nil
}

func (p *NonEmptyConstraint) String() string {
	return fmt.Sprintf("(nonempty %s %s)", p.Handle, p.Module)
}

// ===================================================================
// Lookup Constraints
// ===================================================================

// Vector describes a sequence of expressions evaluated over the rows of a
// given module.  Only rows on which the filter evaluates to a non-zero value
// are included, where a nil filter includes every row.
type Vector struct {
	Module string
	Filter Evaluable
	Terms  []Evaluable
}

// NewVector constructs an unfiltered vector over the rows of a module.
func NewVector(module string, terms ...Evaluable) Vector {
	return Vector{module, nil, terms}
}

// NewFilteredVector constructs a vector over the rows of a module on which the
// given filter is non-zero.
func NewFilteredVector(module string, filter Evaluable, terms ...Evaluable) Vector {
	return Vector{module, filter, terms}
}

// LookupConstraint requires that every (included) row of a source vector
// matches some (included) row of a target vector.
type LookupConstraint struct {
	Handle string
	Source Vector
	Target Vector
}

// GetHandle returns the handle associated with this constraint.
func (p *LookupConstraint) GetHandle() string {
	return p.Handle
}

// Accepts checks whether every source row is contained in the target.  The
// target rows are first hashed, after which each source row is checked for
// membership.
func (p *LookupConstraint) Accepts(tr Trace) error {
	if len(p.Source.Terms) != len(p.Target.Terms) {
		return &Failure{p.Handle, p.Source.Module, 0, "source and target widths differ"}
	}
	//
	targets := make(map[string]struct{}, tr.Height(p.Target.Module))
	//
	for k := 0; k < tr.Height(p.Target.Module); k++ {
		key, included, err := p.Target.keyAt(k, tr)
		if err != nil {
			return &Failure{p.Handle, p.Target.Module, k, err.Error()}
		} else if included {
			targets[key] = struct{}{}
		}
	}
	//
	for k := 0; k < tr.Height(p.Source.Module); k++ {
		key, included, err := p.Source.keyAt(k, tr)
		if err != nil {
			return &Failure{p.Handle, p.Source.Module, k, err.Error()}
		} else if !included {
			continue
		}
		//
		if _, ok := targets[key]; !ok {
			return &Failure{p.Handle, p.Source.Module, k, "row not found in " + p.Target.Module}
		}
	}
	//
	return nil
}

func (p *LookupConstraint) String() string {
	return fmt.Sprintf("(lookup %s %s %s)", p.Handle, p.Source.String(), p.Target.String())
}

// keyAt computes the hash key of a given row, or indicates the row is excluded
// by the filter.
func (p *Vector) keyAt(row int, tr Trace) (string, bool, error) {
	if p.Filter != nil {
		if val, ok := p.Filter.EvalAt(row, tr); !ok {
			return "", false, errors.New("filter undefined")
		} else if val.IsZero() {
			return "", false, nil
		}
	}
	//
	var builder strings.Builder
	//
	for i, term := range p.Terms {
		val, ok := term.EvalAt(row, tr)
		if !ok {
			return "", false, fmt.Errorf("term %d undefined", i)
		}
		//
		bytes := val.Bytes()
		builder.Write(bytes[:])
	}
	//
	return builder.String(), true, nil
}

func (p *Vector) String() string {
	var builder strings.Builder
	//
	builder.WriteString("(")
	builder.WriteString(p.Module)
	//
	for _, t := range p.Terms {
		builder.WriteString(fmt.Sprintf(" %s", any(t)))
	}
	//
	if p.Filter != nil {
		builder.WriteString(fmt.Sprintf(" | %s", any(p.Filter)))
	}
	//
	builder.WriteString(")")
	//
	return builder.String()
}
