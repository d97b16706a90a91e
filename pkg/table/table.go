package table

import (
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrNoColumns is returned by [New] when the column list is empty.
	// A table without columns cannot hold rows.
	ErrNoColumns = errors.New("table must have at least one column")

	// ErrDuplicateColumn is returned by [New] and [Table.EnsureColumn]
	// when a column name appears more than once.
	ErrDuplicateColumn = errors.New("duplicate column name")

	// ErrUnknownColumn is returned by accessors that reference a column
	// not present in the table's column set.
	ErrUnknownColumn = errors.New("unknown column")
)

// Row maps column names to string values. Columns missing from a row are
// treated as the empty string.
type Row map[string]string

// Table is an ordered sequence of rows sharing a fixed, ordered column set.
// Cell values are strings; the empty string is the "unset" value.
//
// The zero value is not usable - use [New] to create a valid table.
// Table is not safe for concurrent mutation without external synchronization.
type Table struct {
	cols []string
	rows []Row
}

// New creates an empty table with the given ordered column set.
// Returns ErrNoColumns for an empty column list and ErrDuplicateColumn
// if a name repeats.
func New(columns ...string) (*Table, error) {
	if len(columns) == 0 {
		return nil, ErrNoColumns
	}
	seen := make(map[string]bool, len(columns))
	for _, c := range columns {
		if seen[c] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateColumn, c)
		}
		seen[c] = true
	}
	return &Table{cols: slices.Clone(columns)}, nil
}

// MustNew is like [New] but panics on error.
// Intended for tests and literal tables with known-good columns.
func MustNew(columns ...string) *Table {
	t, err := New(columns...)
	if err != nil {
		panic(err)
	}
	return t
}

// Columns returns the ordered column set.
// The returned slice is a copy and can be safely modified.
func (t *Table) Columns() []string { return slices.Clone(t.cols) }

// HasColumn reports whether name is part of the column set.
func (t *Table) HasColumn(name string) bool { return slices.Contains(t.cols, name) }

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.rows) }

// Append adds a row to the table. Keys outside the column set are dropped;
// columns missing from the row default to the empty string.
func (t *Table) Append(r Row) {
	row := make(Row, len(t.cols))
	for _, c := range t.cols {
		row[c] = r[c]
	}
	t.rows = append(t.rows, row)
}

// Value returns the cell at row i, column name.
// Out-of-range rows and unknown columns yield the empty string.
func (t *Table) Value(i int, name string) string {
	if i < 0 || i >= len(t.rows) {
		return ""
	}
	return t.rows[i][name]
}

// Set writes the cell at row i, column name.
// Returns ErrUnknownColumn if the column does not exist.
func (t *Table) Set(i int, name, value string) error {
	if !t.HasColumn(name) {
		return fmt.Errorf("%w: %q", ErrUnknownColumn, name)
	}
	if i < 0 || i >= len(t.rows) {
		return fmt.Errorf("row %d out of range", i)
	}
	t.rows[i][name] = value
	return nil
}

// Column returns all values of the named column in row order.
// Returns ErrUnknownColumn if the column does not exist.
func (t *Table) Column(name string) ([]string, error) {
	if !t.HasColumn(name) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, name)
	}
	vals := make([]string, len(t.rows))
	for i, r := range t.rows {
		vals[i] = r[name]
	}
	return vals, nil
}

// EnsureColumn adds a column with empty values on every row.
// Adding a column that already exists is a no-op.
func (t *Table) EnsureColumn(name string) {
	if t.HasColumn(name) {
		return
	}
	t.cols = append(t.cols, name)
	for _, r := range t.rows {
		r[name] = ""
	}
}

// Records returns the rows as plain maps in row order.
// Each map is a copy restricted to the table's column set.
func (t *Table) Records() []map[string]string {
	out := make([]map[string]string, len(t.rows))
	for i, r := range t.rows {
		rec := make(map[string]string, len(t.cols))
		for _, c := range t.cols {
			rec[c] = r[c]
		}
		out[i] = rec
	}
	return out
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	c := &Table{cols: slices.Clone(t.cols), rows: make([]Row, len(t.rows))}
	for i, r := range t.rows {
		row := make(Row, len(r))
		for k, v := range r {
			row[k] = v
		}
		c.rows[i] = row
	}
	return c
}
