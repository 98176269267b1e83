package table

import (
	"errors"
	"fmt"
)

var (
	// ErrNoColumns is returned when a table is created without columns.
	ErrNoColumns = errors.New("table needs at least one column")
)

// ErrColumnNotFound indicates a reference to a column the table does not hold.
type ErrColumnNotFound struct {
	Names []string
}

func (e *ErrColumnNotFound) Error() string {
	return fmt.Sprintf("columns not found: %v", e.Names)
}

// ErrRaggedColumns indicates columns of unequal length.
type ErrRaggedColumns struct {
	Name string
	Want int
	Got  int
}

func (e *ErrRaggedColumns) Error() string {
	return fmt.Sprintf("column %q has %d rows, want %d", e.Name, e.Got, e.Want)
}

// Column is a named sequence of cell values. Row order is significant: the
// matching engine assigns row identifiers by position.
type Column struct {
	Name   string
	Values []Value
}

// IntColumn builds a Column of int values.
func IntColumn(name string, values ...int64) Column {
	cells := make([]Value, len(values))
	for i, v := range values {
		cells[i] = Int(v)
	}
	return Column{Name: name, Values: cells}
}

// FloatColumn builds a Column of float values.
func FloatColumn(name string, values ...float64) Column {
	cells := make([]Value, len(values))
	for i, v := range values {
		cells[i] = Float(v)
	}
	return Column{Name: name, Values: cells}
}

// StringColumn builds a Column of string values.
func StringColumn(name string, values ...string) Column {
	cells := make([]Value, len(values))
	for i, v := range values {
		cells[i] = String(v)
	}
	return Column{Name: name, Values: cells}
}

// LabelsColumn builds a multilabel Column: one label set per row.
func LabelsColumn(name string, values ...[]string) Column {
	cells := make([]Value, len(values))
	for i, labels := range values {
		vs := make([]Value, len(labels))
		for j, l := range labels {
			vs[j] = String(l)
		}
		cells[i] = Labels(vs...)
	}
	return Column{Name: name, Values: cells}
}

// Table is an immutable column-oriented dataset snapshot.
type Table struct {
	cols  []Column
	byIdx map[string]int
	rows  int
}

// New creates a Table from the given columns. All columns must have the
// same number of rows and distinct names.
func New(cols ...Column) (*Table, error) {
	if len(cols) == 0 {
		return nil, ErrNoColumns
	}
	rows := len(cols[0].Values)
	byIdx := make(map[string]int, len(cols))
	for i, c := range cols {
		if len(c.Values) != rows {
			return nil, &ErrRaggedColumns{Name: c.Name, Want: rows, Got: len(c.Values)}
		}
		if _, dup := byIdx[c.Name]; dup {
			return nil, fmt.Errorf("duplicate column %q", c.Name)
		}
		byIdx[c.Name] = i
	}
	return &Table{cols: cols, byIdx: byIdx, rows: rows}, nil
}

// NumRows returns the number of rows.
func (t *Table) NumRows() int { return t.rows }

// ColumnNames returns the column names in table order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.cols))
	for i, c := range t.cols {
		names[i] = c.Name
	}
	return names
}

// HasColumn reports whether the table holds the named column.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.byIdx[name]
	return ok
}

// Column returns the values of the named column.
func (t *Table) Column(name string) ([]Value, bool) {
	i, ok := t.byIdx[name]
	if !ok {
		return nil, false
	}
	return t.cols[i].Values, true
}

// Value returns the cell at (row, column). It panics if the column does not
// exist or the row is out of range; callers are expected to have validated
// both.
func (t *Table) Value(row int, name string) Value {
	i, ok := t.byIdx[name]
	if !ok {
		panic(fmt.Sprintf("table: unknown column %q", name))
	}
	return t.cols[i].Values[row]
}

// Select returns a new Table restricted to the named columns, in the given
// order. Missing columns are reported together in one error.
func (t *Table) Select(names ...string) (*Table, error) {
	var missing []string
	cols := make([]Column, 0, len(names))
	for _, name := range names {
		i, ok := t.byIdx[name]
		if !ok {
			missing = append(missing, name)
			continue
		}
		cols = append(cols, t.cols[i])
	}
	if len(missing) > 0 {
		return nil, &ErrColumnNotFound{Names: missing}
	}
	return New(cols...)
}
