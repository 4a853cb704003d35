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

// getDouble returns the numeric value of logical row i, or NaN if missing
// or i is out of range. Nominal rows read as their raw category index, so
// a missing Nominal row reads as 0. Dispatches on representation;
// mapped/remapped compose by recursing into the base column.
func (c *Column) getDouble(i int) float64 {
	if i < 0 || i >= c.size {
		return math.NaN()
	}
	switch c.r {
	case reprDense:
		switch c.typ {
		case Real, Int53:
			return c.doubles[i]
		case TimeOfDay:
			if c.times[i] == MissingTimeRaw {
				return math.NaN()
			}
			return float64(c.times[i])
		case Nominal:
			return float64(c.raw.Get(i))
		}
	case reprSparse:
		switch c.typ {
		case Real, Int53:
			if c.sparseBitmap.IsDefault(i) {
				return c.defaultDouble
			}
			return c.denseSideD[c.sparseBitmap.Rank(i)]
		case TimeOfDay:
			if c.sparseBitmap.IsDefault(i) {
				if c.defaultTimeRaw == MissingTimeRaw {
					return math.NaN()
				}
				return float64(c.defaultTimeRaw)
			}
			v := c.denseSideT[c.sparseBitmap.Rank(i)]
			if v == MissingTimeRaw {
				return math.NaN()
			}
			return float64(v)
		case Nominal:
			if c.sparseBitmap.IsDefault(i) {
				return float64(c.defaultRaw)
			}
			return float64(c.denseSideRw.Get(c.sparseBitmap.Rank(i)))
		}
	case reprMapped:
		p := c.mapping[i]
		return c.base.getDouble(p)
	case reprRemapped:
		raw := c.remapBase.getRaw(i)
		if raw < 0 || int(raw) >= len(c.remapOldToNew) {
			return 0
		}
		return float64(c.remapOldToNew[raw])
	}
	return math.NaN()
}

// getRaw returns the raw categorical index of logical row i, or 0
// ("missing") if i is out of range.
func (c *Column) getRaw(i int) int32 {
	if i < 0 || i >= c.size {
		return 0
	}
	switch c.r {
	case reprDense:
		if c.typ == Nominal || c.typ == CategoricalCustom {
			return int32(c.raw.Get(i))
		}
	case reprSparse:
		if c.typ == Nominal {
			if c.sparseBitmap.IsDefault(i) {
				return int32(c.defaultRaw)
			}
			return int32(c.denseSideRw.Get(c.sparseBitmap.Rank(i)))
		}
	case reprMapped:
		return c.base.getRaw(c.mapping[i])
	case reprRemapped:
		old := c.remapBase.getRaw(i)
		if old < 0 || int(old) >= len(c.remapOldToNew) {
			return 0
		}
		return int32(c.remapOldToNew[old])
	}
	return 0
}

// getObject returns the object value of logical row i (nil if missing).
func (c *Column) getObject(i int) any {
	if i < 0 || i >= c.size {
		return nil
	}
	switch c.r {
	case reprDense:
		switch c.typ {
		case Real, Int53:
			v := c.doubles[i]
			if math.IsNaN(v) {
				return nil
			}
			return v
		case TimeOfDay:
			if c.times[i] == MissingTimeRaw {
				return nil
			}
			return c.times[i]
		case DateTime:
			if c.seconds[i] == MissingTimeRaw {
				return nil
			}
			dv := DateTimeValue{Seconds: c.seconds[i]}
			if c.hasNanos {
				dv.Nanos = c.nanos[i]
			}
			return dv
		case Nominal:
			v, ok := c.nominalDct.Get(int(c.raw.Get(i)))
			if !ok {
				return nil
			}
			return v
		case CategoricalCustom:
			v, ok := c.customDct.Get(int(c.raw.Get(i)))
			if !ok {
				return nil
			}
			return v
		case Object:
			return c.objects[i]
		}
	case reprSparse:
		switch c.typ {
		case Real, Int53:
			d := c.getDouble(i)
			if math.IsNaN(d) {
				return nil
			}
			return d
		case TimeOfDay:
			d := c.getDouble(i)
			if math.IsNaN(d) {
				return nil
			}
			return int64(d)
		case Nominal:
			raw := c.getRaw(i)
			v, ok := c.nominalDct.Get(int(raw))
			if !ok {
				return nil
			}
			return v
		case Object:
			if c.sparseBitmap.IsDefault(i) {
				return c.defaultObj
			}
			return c.denseSideObj[c.sparseBitmap.Rank(i)]
		}
	case reprMapped:
		return c.base.getObject(c.mapping[i])
	case reprRemapped:
		raw := c.remapBase.getRaw(i)
		if raw < 0 || int(raw) >= len(c.remapOldToNew) {
			return nil
		}
		newRaw := c.remapOldToNew[raw]
		v, ok := c.remapDict.Get(newRaw)
		if !ok {
			return nil
		}
		return v
	}
	return nil
}
