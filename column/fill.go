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

import "math"

// FillDoubles writes logical rows [startRow, startRow+len(out)) into out.
// Rows at or beyond Size() yield NaN. Valid only when Capabilities() has
// NumericReadable.
func (c *Column) FillDoubles(out []float64, startRow int) {
	c.FillDoublesStrided(out, startRow, 0, 1)
}

// FillDoublesStrided writes into out at positions offset, offset+step, ...,
// so a row reader can interleave several columns into one shared buffer.
func (c *Column) FillDoublesStrided(out []float64, startRow, offset, step int) {
	pos := offset
	for i := 0; i < (len(out)-offset+step-1)/step; i++ {
		out[pos] = c.getDouble(startRow + i)
		pos += step
	}
}

// FillObjects writes logical rows [startRow, startRow+len(out)) into out as
// objects. Rows at or beyond Size() yield nil. Valid only when
// Capabilities() has ObjectReadable.
func (c *Column) FillObjects(out []any, startRow int) {
	c.FillObjectsStrided(out, startRow, 0, 1)
}

// FillObjectsStrided is the strided counterpart of FillObjects.
func (c *Column) FillObjectsStrided(out []any, startRow, offset, step int) {
	pos := offset
	for i := 0; i < (len(out)-offset+step-1)/step; i++ {
		out[pos] = c.getObject(startRow + i)
		pos += step
	}
}

// FillInts writes the raw categorical index of logical rows
// [startRow, startRow+len(out)) into out. Valid only for Nominal and
// CategoricalCustom columns.
func (c *Column) FillInts(out []int32, startRow int) {
	c.FillIntsStrided(out, startRow, 0, 1)
}

// FillIntsStrided is the strided counterpart of FillInts.
func (c *Column) FillIntsStrided(out []int32, startRow, offset, step int) {
	pos := offset
	for i := 0; i < (len(out)-offset+step-1)/step; i++ {
		out[pos] = c.getRaw(startRow + i)
		pos += step
	}
}

// rowIsMissing reports whether logical row i holds no value at all (used
// by statistics and by byte-buffer writers to pick the missing sentinel).
func (c *Column) rowIsMissing(i int) bool {
	switch {
	case c.Capabilities().Has(NumericReadable) && !c.Capabilities().Has(ObjectReadable):
		return math.IsNaN(c.getDouble(i))
	case c.typ == Nominal || c.typ == CategoricalCustom:
		return c.getRaw(i) == 0
	default:
		return c.getObject(i) == nil
	}
}
