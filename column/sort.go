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

import "github.com/coltable/coltable/sortkernel"

// SortOrder selects ascending or descending order for Column.Sort.
type SortOrder int

const (
	Ascending SortOrder = iota
	Descending
)

// Sort returns the index permutation that stably sorts the column's rows
// in the given order, per spec.md §4.7. It panics if the column lacks the
// Sortable capability; callers should check Capabilities() first.
func (c *Column) Sort(order SortOrder) []int {
	if !c.caps.Has(Sortable) {
		panic("column: Sort called on a non-sortable column")
	}
	switch {
	case c.typ == TimeOfDay || (c.Capabilities().Has(NumericReadable) && !c.Capabilities().Has(ObjectReadable)):
		keys := make([]float64, c.size)
		for i := range keys {
			keys[i] = c.getDouble(i)
		}
		if order == Ascending {
			return sortkernel.SortFloat64Asc(keys)
		}
		return sortkernel.SortFloat64Desc(keys)
	case c.typ == Nominal:
		// Sort by dictionary value, not raw index, so the permutation is
		// stable with respect to dictionary reshuffles.
		d := c.dictionaryRef()
		less := func(a, b int) bool {
			va, _ := d.Get(int(c.getRaw(a)))
			vb, _ := d.Get(int(c.getRaw(b)))
			if order == Ascending {
				return va < vb
			}
			return va > vb
		}
		return sortkernel.SortWithComparator(c.size, less)
	case c.typ == DateTime:
		key := func(i int) DateTimeValue {
			if v, ok := c.getObject(i).(DateTimeValue); ok {
				return v
			}
			return DateTimeValue{Seconds: MissingTimeRaw}
		}
		less := func(a, b int) bool {
			ka, kb := key(a), key(b)
			if order == Descending {
				ka, kb = kb, ka
			}
			return ka.Seconds < kb.Seconds || (ka.Seconds == kb.Seconds && ka.Nanos < kb.Nanos)
		}
		return sortkernel.SortWithComparator(c.size, less)
	default:
		if c.cmp == nil {
			panic("column: Sort called on a non-sortable column")
		}
		less := func(a, b int) bool {
			r := c.cmp(c.getObject(a), c.getObject(b))
			if order == Ascending {
				return r < 0
			}
			return r > 0
		}
		return sortkernel.SortWithComparator(c.size, less)
	}
}
