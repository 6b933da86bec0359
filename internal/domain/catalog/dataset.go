package catalog

import (
	"strconv"
	"strings"
)

// Dataset is an ordered table of raw product rows. It is never mutated after
// NewDataset returns; row identity is the positional index.
type Dataset struct {
	Columns []string
	Rows    [][]any
}

// NewDataset cleans the header and pads every row to the header width.
// Cells beyond the header width are dropped.
func NewDataset(header []string, rows [][]any) Dataset {
	columns := CleanHeaders(header)
	out := make([][]any, 0, len(rows))
	for _, row := range rows {
		cells := make([]any, len(columns))
		copy(cells, row)
		out = append(out, cells)
	}
	return Dataset{Columns: columns, Rows: out}
}

// Len returns the number of rows.
func (d Dataset) Len() int {
	return len(d.Rows)
}

// Value returns the raw cell, or nil when either index is out of range.
func (d Dataset) Value(row, col int) any {
	if row < 0 || row >= len(d.Rows) || col < 0 {
		return nil
	}
	cells := d.Rows[row]
	if col >= len(cells) {
		return nil
	}
	return cells[col]
}

// ColumnIndex looks a column up by exact name.
func (d Dataset) ColumnIndex(name string) (int, bool) {
	for i, col := range d.Columns {
		if col == name {
			return i, true
		}
	}
	return -1, false
}

// CleanHeaders names blank headers "Unnamed: <i>" and suffixes duplicates
// with ".1", ".2", ... so that every column name is unique.
func CleanHeaders(raw []string) []string {
	out := make([]string, len(raw))
	used := make(map[string]struct{}, len(raw))
	suffix := make(map[string]int, len(raw))
	for i, name := range raw {
		name = strings.TrimSpace(name)
		if name == "" {
			name = "Unnamed: " + strconv.Itoa(i)
		}
		candidate := name
		for {
			if _, taken := used[candidate]; !taken {
				break
			}
			suffix[name]++
			candidate = name + "." + strconv.Itoa(suffix[name])
		}
		used[candidate] = struct{}{}
		out[i] = candidate
	}
	return out
}
