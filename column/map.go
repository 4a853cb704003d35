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

package column

import (
	"math"

	"github.com/coltable/coltable/dict"
	"github.com/coltable/coltable/mapping"
)

// Map yields a column whose logical row i equals this column's row
// perm[i], or missing if perm[i] is outside [0, Size()). When preferView is
// true the result may be a zero-copy mapped view over the same storage;
// when false it is always materialized fresh, per spec.md §4.1.
//
// Mapping-then-mapping collapses into a single mapping (spec.md §4.1):
// mapping an already-mapped view composes the permutations instead of
// nesting another layer of indirection.
func (c *Column) Map(perm []int, preferView bool) *Column {
	if preferView {
		if c.r == reprMapped {
			composed := mapping.Compose(perm, c.mapping)
			return &Column{typ: c.typ, r: reprMapped, size: len(perm), base: c.base,
				mapping: composed, caps: c.caps, cmp: c.cmp}
		}
		return &Column{typ: c.typ, r: reprMapped, size: len(perm), base: c,
			mapping: append([]int(nil), perm...), caps: c.caps, cmp: c.cmp}
	}
	return c.materializeMapped(perm)
}

// materializeMapped copies a fresh payload for the mapped view instead of
// wrapping, required for long-lived references so the underlying storage
// of c can be released once no other view needs it.
func (c *Column) materializeMapped(perm []int) *Column {
	switch {
	case c.typ == Real || c.typ == Int53:
		vals := make([]float64, len(perm))
		for i, p := range perm {
			vals[i] = c.getDouble(p)
		}
		if c.typ == Real {
			return NewDenseReal(vals)
		}
		return NewDenseInt53(vals)
	case c.typ == TimeOfDay:
		vals := make([]int64, len(perm))
		for i, p := range perm {
			d := c.getDouble(p)
			if math.IsNaN(d) {
				vals[i] = MissingTimeRaw
			} else {
				vals[i] = int64(d)
			}
		}
		return NewDenseTimeOfDay(vals)
	case c.typ == DateTime:
		secs := make([]int64, len(perm))
		var nanos []uint32
		if c.hasNanosAnywhere() {
			nanos = make([]uint32, len(perm))
		}
		for i, p := range perm {
			v := c.getObject(p)
			if dv, ok := v.(DateTimeValue); ok {
				secs[i] = dv.Seconds
				if nanos != nil {
					nanos[i] = dv.Nanos
				}
			} else {
				secs[i] = MissingTimeRaw
			}
		}
		return NewDenseDateTime(secs, nanos)
	case c.typ == Nominal:
		raw := make([]uint32, len(perm))
		for i, p := range perm {
			r := c.getRaw(p)
			if r < 0 {
				r = 0
			}
			raw[i] = uint32(r)
		}
		return NewDenseNominal(raw, c.dictionaryRef())
	default: // Object, CategoricalCustom
		vals := make([]any, len(perm))
		for i, p := range perm {
			vals[i] = c.getObject(p)
		}
		return NewDenseObject(vals, c.cmp)
	}
}

func (c *Column) hasNanosAnywhere() bool {
	if c.r == reprDense {
		return c.hasNanos
	}
	if c.r == reprMapped {
		return c.base.hasNanosAnywhere()
	}
	return false
}

// dictionaryRef returns the dictionary backing a nominal column, following
// mapped/remapped composition to the owning dense/sparse representation.
func (c *Column) dictionaryRef() *dict.Dict[string] {
	switch c.r {
	case reprDense, reprSparse:
		return c.nominalDct
	case reprMapped:
		return c.base.dictionaryRef()
	case reprRemapped:
		return c.remapDict
	}
	return nil
}

// GetDictionary returns the dictionary backing a Nominal column. For any
// other column it returns nil (a CategoricalCustom column's dictionary is
// returned by GetCustomDictionary); callers should check Type() first,
// mirroring the "not-categorical" error class of spec.md §7 at the layer
// that knows how to surface it (buffer/table helpers).
func (c *Column) GetDictionary() *dict.Dict[string] {
	return c.dictionaryRef()
}

// GetCustomDictionary returns the dictionary backing a CategoricalCustom
// column, following mapped/remapped composition to the owning
// representation.
func (c *Column) GetCustomDictionary() *dict.Dict[any] {
	switch c.r {
	case reprDense, reprSparse:
		return c.customDct
	case reprMapped:
		return c.base.GetCustomDictionary()
	}
	return nil
}

// MaximalCategoricalIndex returns MaximalIndex() of the column's backing
// dictionary regardless of whether it is Nominal or CategoricalCustom,
// letting callers (wire.PutCategorical*) pick a wire width without caring
// which generic dictionary type is underneath.
func (c *Column) MaximalCategoricalIndex() int {
	if c.typ == CategoricalCustom {
		return c.GetCustomDictionary().MaximalIndex()
	}
	return c.dictionaryRef().MaximalIndex()
}

// StripData returns a size-0 column of identical type, preserving the
// dictionary reference (for Nominal) so downstream code that only needs
// "the schema of this column" doesn't have to keep the full payload alive.
func (c *Column) StripData() *Column {
	switch c.typ {
	case Real:
		return NewDenseReal(nil)
	case Int53:
		return NewDenseInt53(nil)
	case TimeOfDay:
		return NewDenseTimeOfDay(nil)
	case DateTime:
		return NewDenseDateTime(nil, nil)
	case Nominal:
		return NewDenseNominal(nil, c.dictionaryRef())
	case CategoricalCustom:
		return NewDenseCategoricalCustom(nil, c.customDct)
	default:
		return NewDenseObject(nil, c.cmp)
	}
}
