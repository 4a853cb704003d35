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

// Package dict implements the categorical dictionary layer of spec.md §3/§4.2:
// an ordered, possibly-gappy, index->value mapping where index 0 always
// denotes missing, plus the boolean-dictionary specialization and the
// remapping/merge/compaction/rename operations that act on it.
//
// The shape mirrors the teacher's ion.Symtab: an append-only interned value
// list plus an inverse string/value->index map built with
// golang.org/x/exp/maps, except that entries here may become nil ("unused")
// under remove_unused_dictionary_values(REMOVE), which Symtab never needs.
package dict

import (
	"errors"
	"fmt"

	"golang.org/x/exp/maps"
)

// Sentinel errors, one per spec.md §7 logical kind raised from this package.
var (
	ErrTooManyValues      = errors.New("dict: too many values")
	ErrIllegalReplacement = errors.New("dict: illegal replacement")
	ErrNotCategorical     = errors.New("dict: not categorical")
)

// Dict is an ordered list of values indexed from 0, where index 0 is always
// "null" (missing). Entries may be nil in the middle ("unused"). T must be
// comparable so dictionaries can be compared value-list-wise and inverted.
type Dict[T comparable] struct {
	values []*T // values[0] is always nil
}

// New returns an empty dictionary containing only the reserved null entry
// at index 0.
func New[T comparable]() *Dict[T] {
	return &Dict[T]{values: []*T{nil}}
}

// FromValues builds a dictionary whose index i (i>=1) holds values[i-1].
// Duplicate non-null values are rejected with an error, mirroring the
// invariant that a dictionary's inverse map is well defined.
func FromValues[T comparable](values []T) (*Dict[T], error) {
	d := New[T]()
	seen := make(map[T]bool, len(values))
	for _, v := range values {
		if seen[v] {
			return nil, fmt.Errorf("dict: duplicate value %v in FromValues", v)
		}
		seen[v] = true
		vv := v
		d.values = append(d.values, &vv)
	}
	return d, nil
}

// Size counts only non-null entries (never counts index 0 or unused gaps).
func (d *Dict[T]) Size() int {
	n := 0
	for _, v := range d.values[1:] {
		if v != nil {
			n++
		}
	}
	return n
}

// MaximalIndex returns the highest occupied index, or 0 if the dictionary is
// empty (besides the reserved null entry).
func (d *Dict[T]) MaximalIndex() int {
	for i := len(d.values) - 1; i >= 1; i-- {
		if d.values[i] != nil {
			return i
		}
	}
	return 0
}

// Len returns len(values) including the reserved null slot and any unused
// gaps, i.e. one more than the highest index ever assigned.
func (d *Dict[T]) Len() int { return len(d.values) }

// Get returns the value at index idx, or (zero, false) if idx is 0, out of
// range, or unused.
func (d *Dict[T]) Get(idx int) (T, bool) {
	var zero T
	if idx <= 0 || idx >= len(d.values) || d.values[idx] == nil {
		return zero, false
	}
	return *d.values[idx], true
}

// Intern returns the index of v, appending a new entry if v is not already
// present.
func (d *Dict[T]) Intern(v T) int {
	for i, e := range d.values {
		if e != nil && *e == v {
			return i
		}
	}
	vv := v
	d.values = append(d.values, &vv)
	return len(d.values) - 1
}

// Values returns the dictionary's non-null entries in index order (gaps
// skipped), for iteration and display.
func (d *Dict[T]) Values() []T {
	out := make([]T, 0, d.Size())
	for _, v := range d.values[1:] {
		if v != nil {
			out = append(out, *v)
		}
	}
	return out
}

// Equal reports whether d and o have identical value lists position-wise,
// per spec.md §3 ("Two dictionaries are equal iff their value lists are
// equal position-wise").
func (d *Dict[T]) Equal(o *Dict[T]) bool {
	if len(d.values) != len(o.values) {
		return false
	}
	for i := range d.values {
		a, b := d.values[i], o.values[i]
		if (a == nil) != (b == nil) {
			return false
		}
		if a != nil && *a != *b {
			return false
		}
	}
	return true
}

// Inverse is a reusable value->index lookup built from a dictionary's
// current contents. It is a distinct type (not a bare map) so callers
// such as ToBoolean, ChangeDictionary, MergeDictionary and the categorical
// buffers can make repeated lookups against one snapshot -- the same shape
// as ion.Symtab's persistent toindex map.
type Inverse[T comparable] struct {
	m map[T]int
}

// CreateInverse builds an Inverse snapshot of d's current value->index map.
func (d *Dict[T]) CreateInverse() *Inverse[T] {
	m := make(map[T]int, d.Size())
	for i, v := range d.values {
		if v != nil {
			m[*v] = i
		}
	}
	return &Inverse[T]{m: m}
}

// Get returns the index for v, or (0, false) if v was not interned.
func (inv *Inverse[T]) Get(v T) (int, bool) {
	i, ok := inv.m[v]
	return i, ok
}

// Len reports the number of distinct values in the snapshot.
func (inv *Inverse[T]) Len() int { return len(inv.m) }

// Keys returns a copy of the snapshot's values, order unspecified.
func (inv *Inverse[T]) Keys() []T { return maps.Keys(inv.m) }

// clone returns a deep copy safe to mutate independently.
func (d *Dict[T]) clone() *Dict[T] {
	cp := &Dict[T]{values: make([]*T, len(d.values))}
	for i, v := range d.values {
		if v != nil {
			vv := *v
			cp.values[i] = &vv
		}
	}
	return cp
}

// Remap describes how to translate raw indices from a source dictionary to
// a (possibly new) target dictionary: NewIndex[old] gives the translated
// index, or 0 ("missing") if old has no counterpart in the target.
type Remap struct {
	NewDict  any // *Dict[T], kept as any to stay usable from non-generic callers (column package)
	OldToNew []int
}
