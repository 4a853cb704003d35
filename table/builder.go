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

package table

import (
	"fmt"

	"github.com/coltable/coltable/column"
)

// Builder assembles a Table's schema incrementally: add columns under
// unique labels, attach metadata, then Build() to freeze.
type Builder struct {
	labels   []string
	columns  []*column.Column
	byLabel  map[string]int
	metadata map[string][]any
	built    bool
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{byLabel: make(map[string]int), metadata: make(map[string][]any)}
}

// AddColumn appends c under label. Fails ErrBadArgument if label is empty,
// already used, or the column's height disagrees with columns already
// added.
func (b *Builder) AddColumn(label string, c *column.Column) error {
	if b.built {
		return fmt.Errorf("%w: builder already built", ErrBadArgument)
	}
	if label == "" {
		return fmt.Errorf("%w: empty column label", ErrBadArgument)
	}
	if _, dup := b.byLabel[label]; dup {
		return fmt.Errorf("%w: duplicate column label %q", ErrBadArgument, label)
	}
	if len(b.columns) > 0 && c.Size() != b.columns[0].Size() {
		return fmt.Errorf("%w: column %q has height %d, want %d", ErrBadArgument, label, c.Size(), b.columns[0].Size())
	}
	b.byLabel[label] = len(b.labels)
	b.labels = append(b.labels, label)
	b.columns = append(b.columns, c)
	return nil
}

// AddMetadata appends a metadata item under label (multi-valued: repeated
// calls accumulate rather than overwrite).
func (b *Builder) AddMetadata(label string, item any) error {
	if b.built {
		return fmt.Errorf("%w: builder already built", ErrBadArgument)
	}
	b.metadata[label] = append(b.metadata[label], item)
	return nil
}

// RemoveColumn drops the column labeled label. Fails ErrBadArgument if no
// such label exists.
func (b *Builder) RemoveColumn(label string) error {
	if b.built {
		return fmt.Errorf("%w: builder already built", ErrBadArgument)
	}
	i, ok := b.byLabel[label]
	if !ok {
		return fmt.Errorf("%w: no column labeled %q", ErrBadArgument, label)
	}
	b.labels = append(b.labels[:i], b.labels[i+1:]...)
	b.columns = append(b.columns[:i], b.columns[i+1:]...)
	delete(b.byLabel, label)
	for l, idx := range b.byLabel {
		if idx > i {
			b.byLabel[l] = idx - 1
		}
	}
	delete(b.metadata, label)
	return nil
}

// Build freezes the builder into an immutable Table. The builder must not
// be reused afterward.
func (b *Builder) Build() (*Table, error) {
	if b.built {
		return nil, fmt.Errorf("%w: builder already built", ErrBadArgument)
	}
	b.built = true
	return newTable(b.labels, b.columns, b.metadata)
}
