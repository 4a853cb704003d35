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
	"github.com/coltable/coltable/dict"
	"github.com/coltable/coltable/packedints"
)

// NewDenseReal wraps a []float64 payload (borrowed, not copied) as a dense
// real column. Missing rows must already be encoded as NaN.
func NewDenseReal(values []float64) *Column {
	return &Column{typ: Real, r: reprDense, size: len(values), doubles: values,
		caps: capabilitiesFor(Real, false)}
}

// NewDenseInt53 wraps a []float64 payload holding integer-valued (or NaN
// for missing) doubles as a dense int53 column. Buffers perform the
// half-to-even rounding; this constructor trusts its input.
func NewDenseInt53(values []float64) *Column {
	return &Column{typ: Int53, r: reprDense, size: len(values), doubles: values,
		caps: capabilitiesFor(Int53, false)}
}

// NewDenseTimeOfDay wraps a []int64 payload of nanoseconds-of-day
// ([0, 86_400_000_000_000)), using math.MaxInt64 to mark missing.
func NewDenseTimeOfDay(values []int64) *Column {
	return &Column{typ: TimeOfDay, r: reprDense, size: len(values), times: values,
		caps: capabilitiesFor(TimeOfDay, false)}
}

// NewDenseDateTime wraps parallel seconds/nanos payloads. nanos may be nil
// if no sub-second precision is carried (low-precision variant).
func NewDenseDateTime(seconds []int64, nanos []uint32) *Column {
	c := &Column{typ: DateTime, r: reprDense, size: len(seconds), seconds: seconds,
		caps: capabilitiesFor(DateTime, true)}
	if nanos != nil {
		c.nanos = nanos
		c.hasNanos = true
	}
	return c
}

// NewDenseNominal builds a dense categorical-string column from raw
// indices packed at the narrowest width holding d.MaximalIndex(), paired
// with the shared dictionary d.
func NewDenseNominal(rawIndices []uint32, d *dict.Dict[string]) *Column {
	f := packedints.SmallestFormat(uint32(d.MaximalIndex()))
	p := packedints.New(f, len(rawIndices))
	for i, v := range rawIndices {
		p.Set(i, v)
	}
	return &Column{typ: Nominal, r: reprDense, size: len(rawIndices), raw: p, nominalDct: d,
		caps: capabilitiesFor(Nominal, false)}
}

// NewDenseNominalPacked adopts an existing packed raw-index array directly,
// for callers that have already picked the width.
func NewDenseNominalPacked(raw *packedints.Ints, d *dict.Dict[string]) *Column {
	return &Column{typ: Nominal, r: reprDense, size: raw.Len(), raw: raw, nominalDct: d,
		caps: capabilitiesFor(Nominal, false)}
}

// NewDenseObject wraps a []any payload (nil entries are missing), with an
// optional comparator making the column sortable.
func NewDenseObject(values []any, cmp func(a, b any) int) *Column {
	return &Column{typ: Object, r: reprDense, size: len(values), objects: values, cmp: cmp,
		caps: capabilitiesFor(Object, cmp != nil)}
}

// NewDenseCategoricalCustom builds a dense categorical column over an
// arbitrary comparable object dictionary, analogous to NewDenseNominal but
// for the object-custom value kind.
func NewDenseCategoricalCustom(rawIndices []uint32, d *dict.Dict[any]) *Column {
	f := packedints.SmallestFormat(uint32(d.MaximalIndex()))
	p := packedints.New(f, len(rawIndices))
	for i, v := range rawIndices {
		p.Set(i, v)
	}
	return &Column{typ: CategoricalCustom, r: reprDense, size: len(rawIndices), raw: p, customDct: d,
		caps: capabilitiesFor(CategoricalCustom, false)}
}
