// Package report renders benchmark results.
package report

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/gzhole/cwebench/internal/bench"
)

const (
	header    = "| Weakness Class (CWE)   | Test Count    | TP | FP | TN | FN | Precision | Recall |"
	separator = "|------------------------|---------------|----|----|----|----|-----------|--------|"
	rowFormat = "| %-22s | %-13d | %-2d | %-2d | %-2d | %-2d | %-9.2f | %-6.2f |\n"

	// DegradedMarker is appended to the class id of rows measured against
	// the placeholder safe sample only.
	DegradedMarker = "*"
	totalLabel     = "**TOTAL**"
)

// WriteMarkdown writes one row per class in id order followed by a bold
// TOTAL row summing every class.
func WriteMarkdown(w io.Writer, res *bench.Result) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, header)
	fmt.Fprintln(bw, separator)

	for _, row := range res.Rows() {
		class := row.Class
		if row.Degraded {
			class += DegradedMarker
		}
		fmt.Fprintf(bw, rowFormat, class, row.Total(),
			row.TP, row.FP, row.TN, row.FN, row.Precision(), row.Recall())
	}

	total := res.Total()
	fmt.Fprintf(bw, rowFormat, totalLabel, total.Total(),
		total.TP, total.FP, total.TN, total.FN, total.Precision(), total.Recall())

	return bw.Flush()
}

type jsonRow struct {
	Class string `json:"class"`
	bench.Counters
	Total     int     `json:"total"`
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	Degraded  bool    `json:"degraded,omitempty"`
}

type jsonReport struct {
	Classes  []jsonRow `json:"classes"`
	Total    jsonRow   `json:"total"`
	Degraded []string  `json:"degraded,omitempty"`
}

// WriteJSON writes the same numbers as WriteMarkdown as an indented JSON
// document.
func WriteJSON(w io.Writer, res *bench.Result) error {
	rows := res.Rows()
	doc := jsonReport{
		Classes:  make([]jsonRow, 0, len(rows)),
		Degraded: res.Degraded(),
	}
	for _, row := range rows {
		doc.Classes = append(doc.Classes, jsonRow{
			Class:     row.Class,
			Counters:  row.Counters,
			Total:     row.Total(),
			Precision: row.Precision(),
			Recall:    row.Recall(),
			Degraded:  row.Degraded,
		})
	}

	total := res.Total()
	doc.Total = jsonRow{
		Class:     "TOTAL",
		Counters:  total.Counters,
		Total:     total.Total(),
		Precision: total.Precision(),
		Recall:    total.Recall(),
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
