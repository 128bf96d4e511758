// Package table is the in-memory tabular data every pipeline stage passes
// around. Tables are immutable: every operation returns a new table and
// leaves its receiver untouched.
package table

import (
	"schoolsdb/internal/etlerr"
	"schoolsdb/lib/textutil"
)

// Cell is a nullable text value as read from an extract.
type Cell struct {
	Value string
	Valid bool
}

func Of(value string) Cell {
	return Cell{Value: value, Valid: true}
}

func Null() Cell {
	return Cell{}
}

type Table struct {
	columns []string
	index   map[string]int
	rows    [][]Cell
}

// New builds a table, every row must have one cell per column and column
// names must be unique.
func New(columns []string, rows [][]Cell) (*Table, error) {
	index := make(map[string]int, len(columns))
	for i, c := range columns {
		_, exists := index[c]
		if exists {
			return nil, etlerr.SchemaMismatch("duplicate column %q", c)
		}
		index[c] = i
	}
	for i, row := range rows {
		if len(row) != len(columns) {
			return nil, etlerr.SchemaMismatch(
				"row %d has %d cells, expected %d", i, len(row), len(columns),
			)
		}
	}
	return &Table{
		columns: append([]string(nil), columns...),
		index:   index,
		rows:    rows,
	}, nil
}

// Columns returns a copy of the column names in order.
func (t *Table) Columns() []string {
	return append([]string(nil), t.columns...)
}

func (t *Table) Len() int {
	return len(t.rows)
}

// Row returns the cells of row i, the slice must not be modified.
func (t *Table) Row(i int) []Cell {
	return t.rows[i]
}

// Index returns the position of column or a schema mismatch naming the
// closest existing column.
func (t *Table) Index(column string) (int, error) {
	i, ok := t.index[column]
	if !ok {
		suggestion, _ := textutil.ClosestMatch(column, t.columns)
		return 0, etlerr.MissingColumn(column, suggestion)
	}
	return i, nil
}

// Column returns a copy of the cells of column.
func (t *Table) Column(column string) ([]Cell, error) {
	i, err := t.Index(column)
	if err != nil {
		return nil, err
	}
	out := make([]Cell, len(t.rows))
	for r, row := range t.rows {
		out[r] = row[i]
	}
	return out, nil
}

// Rename is one entry of a rename mapping.
type Rename struct {
	From string
	To   string
}

// Rename renames the columns named by the mapping. Entries whose From column
// does not exist are ignored.
func (t *Table) Rename(mapping []Rename) (*Table, error) {
	lookup := make(map[string]string, len(mapping))
	for _, r := range mapping {
		lookup[r.From] = r.To
	}
	columns := make([]string, len(t.columns))
	for i, c := range t.columns {
		renamed, ok := lookup[c]
		if ok {
			c = renamed
		}
		columns[i] = c
	}
	return New(columns, t.rows)
}

// Select projects the table to the given columns in the given order.
func (t *Table) Select(columns ...string) (*Table, error) {
	positions := make([]int, len(columns))
	for i, c := range columns {
		pos, err := t.Index(c)
		if err != nil {
			return nil, err
		}
		positions[i] = pos
	}

	rows := make([][]Cell, len(t.rows))
	for r, row := range t.rows {
		out := make([]Cell, len(positions))
		for i, pos := range positions {
			out[i] = row[pos]
		}
		rows[r] = out
	}
	return New(columns, rows)
}

// Drop removes the given columns, every one of them must exist.
func (t *Table) Drop(columns ...string) (*Table, error) {
	dropped := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		_, err := t.Index(c)
		if err != nil {
			return nil, err
		}
		dropped[c] = struct{}{}
	}

	var keep []string
	for _, c := range t.columns {
		_, isDropped := dropped[c]
		if !isDropped {
			keep = append(keep, c)
		}
	}
	return t.Select(keep...)
}

// MoveToFront reorders the table so columns come first, followed by the
// remaining columns in their existing order.
func (t *Table) MoveToFront(columns ...string) (*Table, error) {
	front := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		front[c] = struct{}{}
	}
	order := append([]string(nil), columns...)
	for _, c := range t.columns {
		_, isFront := front[c]
		if !isFront {
			order = append(order, c)
		}
	}
	return t.Select(order...)
}

// WithColumn returns the table with column set to cells, appending the
// column when it does not exist yet.
func (t *Table) WithColumn(column string, cells []Cell) (*Table, error) {
	if len(cells) != len(t.rows) {
		return nil, etlerr.SchemaMismatch(
			"column %q has %d cells, table has %d rows", column, len(cells), len(t.rows),
		)
	}

	pos, exists := t.index[column]
	columns := t.columns
	if !exists {
		columns = append(t.Columns(), column)
	}

	rows := make([][]Cell, len(t.rows))
	for r, row := range t.rows {
		out := make([]Cell, len(columns))
		copy(out, row)
		if exists {
			out[pos] = cells[r]
		} else {
			out[len(columns)-1] = cells[r]
		}
		rows[r] = out
	}
	return New(columns, rows)
}

// Distinct returns the non-null values of column in first-seen order.
func (t *Table) Distinct(column string) ([]string, error) {
	pos, err := t.Index(column)
	if err != nil {
		return nil, err
	}
	seen := map[string]struct{}{}
	var out []string
	for _, row := range t.rows {
		cell := row[pos]
		if !cell.Valid {
			continue
		}
		_, ok := seen[cell.Value]
		if ok {
			continue
		}
		seen[cell.Value] = struct{}{}
		out = append(out, cell.Value)
	}
	return out, nil
}
