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

import (
	"github.com/coltable/coltable/column"
	"github.com/coltable/coltable/dict"
)

// NominalBuffer is the mutable construction path for a categorical-string
// column, with an optional cap on the number of distinct non-null values.
type NominalBuffer struct {
	raw     []uint32
	d       *dict.Dict[string]
	maxCard int // 0 means unbounded
	frozen  bool
}

// NewNominal allocates a buffer of size rows, all missing, with an optional
// cap on distinct values (0 for unbounded), per spec.md §4.3.
func NewNominal(size int, maxCard int) *NominalBuffer {
	return &NominalBuffer{raw: make([]uint32, size), d: dict.New[string](), maxCard: maxCard}
}

// Set interns value and stores its index at row i, growing the dictionary
// if needed. It returns ErrTooManyValues if the cap is exceeded; SetSafe
// reports that case as false instead of an error.
func (b *NominalBuffer) Set(i int, value string) error {
	ok, err := b.SetSafe(i, value)
	if err != nil {
		return err
	}
	if !ok {
		return ErrTooManyValues
	}
	return nil
}

// SetSafe stores value at row i, returning false (without error) instead
// of growing past maxCard, per spec.md §4.3's "set_safe ... returns a
// success flag without throwing when the cap is reached".
func (b *NominalBuffer) SetSafe(i int, value string) (bool, error) {
	if b.frozen {
		return false, ErrFrozen
	}
	if err := checkBounds(i, len(b.raw)); err != nil {
		return false, err
	}
	inv := b.d.CreateInverse()
	if idx, ok := inv.Get(value); ok {
		b.raw[i] = uint32(idx)
		return true, nil
	}
	if b.maxCard > 0 && b.d.Size() >= b.maxCard {
		return false, nil
	}
	b.raw[i] = uint32(b.d.Intern(value))
	return true, nil
}

// SetMissing clears row i back to the reserved null index.
func (b *NominalBuffer) SetMissing(i int) error {
	if b.frozen {
		return ErrFrozen
	}
	if err := checkBounds(i, len(b.raw)); err != nil {
		return err
	}
	b.raw[i] = 0
	return nil
}

// DistinctValues reports the number of distinct non-null values interned
// so far.
func (b *NominalBuffer) DistinctValues() int { return b.d.Size() }

// Dictionary returns the buffer's in-progress dictionary (read-only use;
// it keeps growing until the buffer is frozen).
func (b *NominalBuffer) Dictionary() *dict.Dict[string] { return b.d }

// ToColumn freezes the buffer and returns a nominal column, packing raw
// indices at the narrowest width holding the final dictionary's maximal
// index.
func (b *NominalBuffer) ToColumn() (*column.Column, error) {
	if b.frozen {
		return nil, ErrFrozen
	}
	b.frozen = true
	return column.NewDenseNominal(b.raw, b.d), nil
}

// ToBooleanColumn freezes the buffer into a boolean-dictionary column: the
// raw indices are unchanged, but the dictionary is tagged with which index
// (if any) represents positiveValue and which represents the other
// non-null value, per spec.md §4.3/§8 scenario 2. Fails ErrTooManyValues if
// more than two non-null values were interned.
func (b *NominalBuffer) ToBooleanColumn(positiveValue *string) (*column.Column, *dict.BoolDict[string], error) {
	if b.frozen {
		return nil, nil, ErrFrozen
	}
	bd, err := dict.ToBoolean(b.d, positiveValue)
	if err != nil {
		return nil, nil, err
	}
	b.frozen = true
	return column.NewDenseNominal(b.raw, bd.Dict), bd, nil
}

// CategoricalCustomBuffer is the mutable construction path for a
// categorical column over an arbitrary comparable object value kind.
type CategoricalCustomBuffer struct {
	raw     []uint32
	d       *dict.Dict[any]
	maxCard int
	frozen  bool
}

// NewCategoricalCustom allocates a buffer of size rows, all missing, with
// an optional cap on distinct values.
func NewCategoricalCustom(size int, maxCard int) *CategoricalCustomBuffer {
	return &CategoricalCustomBuffer{raw: make([]uint32, size), d: dict.New[any](), maxCard: maxCard}
}

// SetSafe stores value at row i, returning false instead of growing past
// maxCard.
func (b *CategoricalCustomBuffer) SetSafe(i int, value any) (bool, error) {
	if b.frozen {
		return false, ErrFrozen
	}
	if err := checkBounds(i, len(b.raw)); err != nil {
		return false, err
	}
	inv := b.d.CreateInverse()
	if idx, ok := inv.Get(value); ok {
		b.raw[i] = uint32(idx)
		return true, nil
	}
	if b.maxCard > 0 && b.d.Size() >= b.maxCard {
		return false, nil
	}
	b.raw[i] = uint32(b.d.Intern(value))
	return true, nil
}

// Set stores value at row i, failing ErrTooManyValues if the cap is
// exceeded.
func (b *CategoricalCustomBuffer) Set(i int, value any) error {
	ok, err := b.SetSafe(i, value)
	if err != nil {
		return err
	}
	if !ok {
		return ErrTooManyValues
	}
	return nil
}

// DistinctValues reports the number of distinct non-null values interned
// so far.
func (b *CategoricalCustomBuffer) DistinctValues() int { return b.d.Size() }

// ToColumn freezes the buffer and returns a categorical-custom column.
func (b *CategoricalCustomBuffer) ToColumn() (*column.Column, error) {
	if b.frozen {
		return nil, ErrFrozen
	}
	b.frozen = true
	return column.NewDenseCategoricalCustom(b.raw, b.d), nil
}
