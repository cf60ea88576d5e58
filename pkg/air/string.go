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
	"fmt"
	"strings"
)

func (e *ColumnAccess) String() string {
	if e.Shift == 0 {
		return e.Column
	}
	//
	return fmt.Sprintf("(shift %s %d)", e.Column, e.Shift)
}

func (e *Constant) String() string {
	return e.Value.String()
}

func (e *Add) String() string {
	return naryString("+", e.Args)
}

func (e *Sub) String() string {
	return naryString("-", e.Args)
}

func (e *Mul) String() string {
	return naryString("*", e.Args)
}

func naryString(operator string, exprs []Expr) string {
	var builder strings.Builder
	//
	builder.WriteString("(")
	builder.WriteString(operator)
	//
	for _, e := range exprs {
		builder.WriteString(" ")
		builder.WriteString(e.String())
	}
	//
	builder.WriteString(")")
	//
	return builder.String()
}
