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

package dict

import "fmt"

// NoIndex marks an absent positive/negative index on a BoolDict.
const NoIndex = -1

// BoolDict is a dictionary with at most two non-null values, tagged with
// which raw index (if any) represents the positive and negative case. It
// shares the same raw-index/value list as Dict so a column's existing raw
// indices keep working unchanged when converted with ToBoolean.
type BoolDict[T comparable] struct {
	*Dict[T]
	PositiveIndex int // >=1, or NoIndex if absent
	NegativeIndex int // >=1, or NoIndex if absent
}

// HasPositive reports whether a positive entry is tagged.
func (b *BoolDict[T]) HasPositive() bool { return b.PositiveIndex != NoIndex }

// HasNegative reports whether a negative entry is tagged.
func (b *BoolDict[T]) HasNegative() bool { return b.NegativeIndex != NoIndex }

// ToBoolean converts a categorical dictionary with at most two non-null
// entries into a BoolDict. positiveValue selects which entry (if any) is
// tagged positive; the other (if any) is implicitly negative. A nil
// positiveValue marks the sole remaining entry (if exactly one exists) as
// negative. Fails ErrTooManyValues if d has more than two non-null entries,
// or if positiveValue is nil and d has two. If positiveValue is non-nil but
// not present in d, it fails with an error that does not wrap
// ErrTooManyValues.
func ToBoolean[T comparable](d *Dict[T], positiveValue *T) (*BoolDict[T], error) {
	if d.Size() > 2 {
		return nil, fmt.Errorf("%w: dictionary has %d entries, boolean allows at most 2", ErrTooManyValues, d.Size())
	}
	bd := &BoolDict[T]{Dict: d.clone(), PositiveIndex: NoIndex, NegativeIndex: NoIndex}

	var occupied []int
	for i, v := range bd.Dict.values {
		if i > 0 && v != nil {
			occupied = append(occupied, i)
		}
	}

	if positiveValue == nil {
		if len(occupied) == 1 {
			bd.NegativeIndex = occupied[0]
		} else if len(occupied) == 2 {
			return nil, fmt.Errorf("%w: positive value required to disambiguate two entries", ErrTooManyValues)
		}
		return bd, nil
	}

	inv := bd.Dict.CreateInverse()
	posIdx, ok := inv.Get(*positiveValue)
	if !ok {
		return nil, fmt.Errorf("dict: positive value %v not present in dictionary", *positiveValue)
	}
	bd.PositiveIndex = posIdx
	for _, idx := range occupied {
		if idx != posIdx {
			bd.NegativeIndex = idx
		}
	}
	return bd, nil
}
