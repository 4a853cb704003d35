// Copyright (C) 2022 Sneller, Inc.
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

// Package table implements the labeled column container of spec.md §3: an
// ordered sequence of equal-height columns plus a bijection from unique,
// non-empty labels to column positions, with an attached multi-valued
// metadata map. Immutable after construction; built with Builder.
package table

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/coltable/coltable/column"
)

// Sentinel errors, one per spec.md §7 logical kind raised from this package.
var (
	ErrBadArgument = errors.New("table: bad argument")
	ErrOutOfBounds = errors.New("table: out of bounds")
)

// Table is an immutable, labeled sequence of equal-height columns.
type Table struct {
	id       uuid.UUID
	labels   []string
	byLabel  map[string]int
	columns  []*column.Column
	height   int
	metadata map[string][]any
}

// ID returns the table's stable opaque identifier, assigned once at
// Builder.Build() time. Not part of equality: two tables derived from one
// another (column selection, row selection) get distinct IDs, useful as a
// statistics-cache invalidation key.
func (t *Table) ID() uuid.UUID { return t.id }

// Height returns the table's uniform row count.
func (t *Table) Height() int { return t.height }

// Width returns the number of columns.
func (t *Table) Width() int { return len(t.columns) }

// Labels returns the table's column labels, in column order.
func (t *Table) Labels() []string {
	out := make([]string, len(t.labels))
	copy(out, t.labels)
	return out
}

// Column returns the column at position i, or ErrOutOfBounds.
func (t *Table) Column(i int) (*column.Column, error) {
	if i < 0 || i >= len(t.columns) {
		return nil, fmt.Errorf("%w: column position %d, width %d", ErrOutOfBounds, i, len(t.columns))
	}
	return t.columns[i], nil
}

// ColumnByLabel returns the column with the given label, or ErrBadArgument
// if no such label exists.
func (t *Table) ColumnByLabel(label string) (*column.Column, error) {
	i, ok := t.byLabel[label]
	if !ok {
		return nil, fmt.Errorf("%w: no column labeled %q", ErrBadArgument, label)
	}
	return t.columns[i], nil
}

// LabelAt returns the label of the column at position i.
func (t *Table) LabelAt(i int) (string, error) {
	if i < 0 || i >= len(t.labels) {
		return "", fmt.Errorf("%w: column position %d, width %d", ErrOutOfBounds, i, len(t.labels))
	}
	return t.labels[i], nil
}

// Metadata returns the multi-valued metadata items attached to label, or
// nil if none were set.
func (t *Table) Metadata(label string) []any {
	return t.metadata[label]
}

// SelectColumns derives a new table over a subset (or reordering) of this
// table's labels, sharing the underlying column references (spec.md §3:
// "Tables share column references with other tables that derived them").
// The derived table gets a fresh ID.
func (t *Table) SelectColumns(labels []string) (*Table, error) {
	cols := make([]*column.Column, len(labels))
	for i, l := range labels {
		c, err := t.ColumnByLabel(l)
		if err != nil {
			return nil, err
		}
		cols[i] = c
	}
	meta := make(map[string][]any, len(labels))
	for _, l := range labels {
		if v, ok := t.metadata[l]; ok {
			meta[l] = v
		}
	}
	return newTable(labels, cols, meta)
}

// SelectRows derives a new table whose rows are a mapping (permutation with
// possible out-of-range entries, per column.Column.Map) of this table's
// rows. preferView controls whether the derived columns are zero-copy
// mapped views or freshly materialized, exactly as column.Column.Map.
func (t *Table) SelectRows(rowIdx []int, preferView bool) (*Table, error) {
	cols := make([]*column.Column, len(t.columns))
	for i, c := range t.columns {
		cols[i] = c.Map(rowIdx, preferView)
	}
	return newTable(t.labels, cols, t.metadata)
}

func newTable(labels []string, cols []*column.Column, metadata map[string][]any) (*Table, error) {
	if len(labels) != len(cols) {
		return nil, fmt.Errorf("%w: %d labels for %d columns", ErrBadArgument, len(labels), len(cols))
	}
	byLabel := make(map[string]int, len(labels))
	height := -1
	for i, l := range labels {
		if l == "" {
			return nil, fmt.Errorf("%w: empty column label at position %d", ErrBadArgument, i)
		}
		if _, dup := byLabel[l]; dup {
			return nil, fmt.Errorf("%w: duplicate column label %q", ErrBadArgument, l)
		}
		byLabel[l] = i
		if height < 0 {
			height = cols[i].Size()
		} else if cols[i].Size() != height {
			return nil, fmt.Errorf("%w: column %q has height %d, want %d", ErrBadArgument, l, cols[i].Size(), height)
		}
	}
	if height < 0 {
		height = 0
	}
	metaCopy := make(map[string][]any, len(metadata))
	for k, v := range metadata {
		metaCopy[k] = append([]any(nil), v...)
	}
	return &Table{
		id:       uuid.New(),
		labels:   append([]string(nil), labels...),
		byLabel:  byLabel,
		columns:  append([]*column.Column(nil), cols...),
		height:   height,
		metadata: metaCopy,
	}, nil
}
