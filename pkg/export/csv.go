// Package export writes tabular entity exports with a fixed column order, so
// downstream spreadsheets and imports can rely on a stable header row.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
)

// Table is an ordered set of columns plus row data. Columns never reorder
// between exports of the same entity.
type Table struct {
	Columns []string
	Rows    [][]string
}

// NewTable creates a table with the given fixed column order.
func NewTable(columns ...string) *Table {
	return &Table{Columns: columns}
}

// Append adds a row. The number of values must match the column count.
func (t *Table) Append(values ...string) error {
	if len(values) != len(t.Columns) {
		return fmt.Errorf("row has %d values, table has %d columns", len(values), len(t.Columns))
	}
	t.Rows = append(t.Rows, values)
	return nil
}

// WriteCSV writes the header row followed by all data rows.
func (t *Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, row := range t.Rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
