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

package buffer

import "github.com/coltable/coltable/column"

// ObjectBuffer is the mutable construction path for a generic object
// column, optionally carrying a comparator that makes the resulting column
// sortable.
type ObjectBuffer struct {
	values []any
	cmp    func(a, b any) int
	frozen bool
}

// NewObject allocates a buffer of size rows, all nil (missing), with an
// optional comparator.
func NewObject(size int, cmp func(a, b any) int) *ObjectBuffer {
	return &ObjectBuffer{values: make([]any, size), cmp: cmp}
}

// ObjectFromColumn copies an existing object-readable column's payload
// into a new mutable buffer.
func ObjectFromColumn(c *column.Column) *ObjectBuffer {
	vals := make([]any, c.Size())
	c.FillObjects(vals, 0)
	return &ObjectBuffer{values: vals}
}

// Set stores v at row i.
func (b *ObjectBuffer) Set(i int, v any) error {
	if b.frozen {
		return ErrFrozen
	}
	if err := checkBounds(i, len(b.values)); err != nil {
		return err
	}
	b.values[i] = v
	return nil
}

// DistinctValues reports the number of distinct non-nil values observed.
func (b *ObjectBuffer) DistinctValues() int {
	seen := make(map[any]struct{}, len(b.values))
	for _, v := range b.values {
		if v != nil {
			seen[v] = struct{}{}
		}
	}
	return len(seen)
}

// ToColumn freezes the buffer and returns an object column.
func (b *ObjectBuffer) ToColumn() (*column.Column, error) {
	if b.frozen {
		return nil, ErrFrozen
	}
	b.frozen = true
	return column.NewDenseObject(b.values, b.cmp), nil
}
