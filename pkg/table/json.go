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
	"encoding/json"
	"fmt"
	"math/big"
	"slices"
	"strings"

	"github.com/dajuguan/zkvm-brainfuck/pkg/util/field"
)

// ParseJSON parses a trace expressed in JSON notation, where columns are
// grouped by module.  For example, {"m": {"X": [0], "Y": [1]}} is a trace
// containing one row of data each for two columns "X" and "Y" of module "m".
// Modules and columns are added in sorted order.
func ParseJSON(data []byte) (*ArrayTrace, error) {
	var (
		rawData map[string]map[string][]big.Int
		tr      = EmptyArrayTrace()
	)
	// Attempt to unmarshall
	if err := json.Unmarshal(data, &rawData); err != nil {
		return nil, err
	}
	//
	for _, mod := range sortedKeys(rawData) {
		modData := rawData[mod]
		//
		for _, name := range sortedKeys(modData) {
			col, err := newColumnFromBigInts(modData[name])
			if err != nil {
				return nil, fmt.Errorf("column %s: %w", QualifiedName(mod, name), err)
			}
			// Module height is determined by its first column
			if err = tr.AddModule(mod, len(col)); err != nil {
				return nil, err
			} else if err = tr.AddColumn(mod, name, col); err != nil {
				return nil, err
			}
		}
	}
	// Done.
	return tr, nil
}

// ToJSON converts a trace into JSON notation, such that ParseJSON can read it
// back.  Modules and columns are written in declaration order.
func ToJSON(tr *ArrayTrace) string {
	var builder strings.Builder
	//
	builder.WriteString("{")
	//
	for i, mod := range tr.Modules() {
		if i != 0 {
			builder.WriteString(", ")
		}
		//
		builder.WriteString(fmt.Sprintf("%q: {", mod))
		//
		for j, col := range tr.ModuleColumns(mod) {
			if j != 0 {
				builder.WriteString(", ")
			}
			//
			builder.WriteString(fmt.Sprintf("%q: [", col.Name()))
			//
			for k, val := range col.Data() {
				if k != 0 {
					builder.WriteString(", ")
				}
				//
				builder.WriteString(val.Text(10))
			}
			//
			builder.WriteString("]")
		}
		//
		builder.WriteString("}")
	}
	//
	builder.WriteString("}")
	// Done
	return builder.String()
}

func newColumnFromBigInts(data []big.Int) ([]field.Element, error) {
	var (
		err error
		col = make([]field.Element, len(data))
	)
	//
	for i := range data {
		if col[i], err = field.BigInt(&data[i]); err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
	}
	//
	return col, nil
}

func sortedKeys[T any](m map[string]T) []string {
	keys := make([]string, 0, len(m))
	//
	for k := range m {
		keys = append(keys, k)
	}
	//
	slices.Sort(keys)
	//
	return keys
}
