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
	"io"
	"unicode/utf8"
)

// PrintTrace prints the rows [start,end) of a given module as a table, with
// one column per line.  Rows beyond the height of the module are ignored.
func PrintTrace(w io.Writer, tr *ArrayTrace, module string, start int, end int) {
	var (
		columns = tr.ModuleColumns(module)
		rows    = make([][]string, len(columns))
	)
	//
	end = min(end, tr.Height(module))
	start = max(0, min(start, end))
	//
	for i, c := range columns {
		rows[i] = traceColumnData(c, start, end)
	}
	//
	widths := traceRowWidths(end-start, rows)
	//
	printHorizontalRule(w, widths)
	//
	for _, r := range rows {
		printTraceRow(w, r, widths)
		printHorizontalRule(w, widths)
	}
}

func traceColumnData(c *ArrayTraceColumn, start int, end int) []string {
	data := make([]string, end-start+1)
	data[0] = c.Name()
	//
	for row := start; row < end; row++ {
		data[row-start+1] = c.data[row].String()
	}
	//
	return data
}

func traceRowWidths(height int, rows [][]string) []int {
	widths := make([]int, height+1)
	//
	for _, row := range rows {
		for i, col := range row {
			w := utf8.RuneCountInString(col)
			widths[i] = max(w, widths[i])
		}
	}
	//
	return widths
}

func printTraceRow(w io.Writer, row []string, widths []int) {
	for i, col := range row {
		fmt.Fprintf(w, " %*s |", widths[i], col)
	}
	//
	fmt.Fprintln(w)
}

func printHorizontalRule(w io.Writer, widths []int) {
	for _, width := range widths {
		fmt.Fprint(w, "-")
		//
		for i := 0; i < width; i++ {
			fmt.Fprint(w, "-")
		}
		//
		fmt.Fprint(w, "-+")
	}
	//
	fmt.Fprintln(w)
}
