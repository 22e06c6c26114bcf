// Package plane provides Frame, an in-memory column store that satisfies
// mungebit.Plane, and codecs that move frames in and out of CSV, JSON and
// protobuf values.
package plane

import (
	"fmt"
	"slices"
	"sort"
)

// Frame is a set of named, equally long columns in insertion order.
type Frame struct {
	names []string
	cols  map[string][]any
	rows  int
}

func New() *Frame {
	return &Frame{cols: make(map[string][]any)}
}

// FromColumns builds a frame with the columns in names order.
func FromColumns(names []string, cols map[string][]any) (*Frame, error) {
	f := New()
	for _, n := range names {
		values, ok := cols[n]
		if !ok {
			return nil, fmt.Errorf("plane: no values for column %q", n)
		}
		if err := f.SetColumn(n, values); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// FromRecords builds a frame from row maps. Columns appear in the order
// they are first seen (keys of one record sorted); missing cells are nil.
func FromRecords(recs []map[string]any) *Frame {
	f := New()
	f.rows = len(recs)
	for i, rec := range recs {
		keys := make([]string, 0, len(rec))
		for k := range rec {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			col, ok := f.cols[k]
			if !ok {
				col = make([]any, len(recs))
				f.names = append(f.names, k)
			}
			col[i] = rec[k]
			f.cols[k] = col
		}
	}
	return f
}

func (f *Frame) Rows() int { return f.rows }

func (f *Frame) Names() []string { return slices.Clone(f.names) }

func (f *Frame) Has(name string) bool {
	_, ok := f.cols[name]
	return ok
}

// Column returns the values of name. The slice is the frame's own storage.
func (f *Frame) Column(name string) ([]any, error) {
	col, ok := f.cols[name]
	if !ok {
		return nil, fmt.Errorf("plane: no column %q", name)
	}
	return col, nil
}

// SetColumn adds or replaces name. The first column of an empty frame fixes
// the row count; later columns must match it.
func (f *Frame) SetColumn(name string, values []any) error {
	if len(f.names) == 0 && f.rows == 0 {
		f.rows = len(values)
	}
	if len(values) != f.rows {
		return fmt.Errorf("plane: column %q has %d rows, frame has %d", name, len(values), f.rows)
	}
	if _, ok := f.cols[name]; !ok {
		f.names = append(f.names, name)
	}
	f.cols[name] = values
	return nil
}

// Drop removes name if present.
func (f *Frame) Drop(name string) {
	if _, ok := f.cols[name]; !ok {
		return
	}
	delete(f.cols, name)
	f.names = slices.DeleteFunc(f.names, func(n string) bool { return n == name })
}

// Records returns one map per row.
func (f *Frame) Records() []map[string]any {
	out := make([]map[string]any, f.rows)
	for i := range out {
		rec := make(map[string]any, len(f.names))
		for _, n := range f.names {
			rec[n] = f.cols[n][i]
		}
		out[i] = rec
	}
	return out
}

// Clone copies the column slices. Cell values are shared.
func (f *Frame) Clone() *Frame {
	c := &Frame{
		names: slices.Clone(f.names),
		cols:  make(map[string][]any, len(f.cols)),
		rows:  f.rows,
	}
	for n, col := range f.cols {
		c.cols[n] = slices.Clone(col)
	}
	return c
}
