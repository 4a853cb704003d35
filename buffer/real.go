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
	"fmt"
	"math"

	"github.com/coltable/coltable/column"
)

// RealBuffer is the mutable construction path for a real (float64) column.
type RealBuffer struct {
	values []float64
	frozen bool
}

// NewReal allocates a buffer of size rows, all missing (NaN) if
// initToMissing, or zero-valued otherwise.
func NewReal(size int, initToMissing bool) *RealBuffer {
	vals := make([]float64, size)
	if initToMissing {
		for i := range vals {
			vals[i] = math.NaN()
		}
	}
	return &RealBuffer{values: vals}
}

// RealFromColumn copies an existing real/int53 column's payload into a new
// mutable buffer.
func RealFromColumn(c *column.Column) *RealBuffer {
	vals := make([]float64, c.Size())
	c.FillDoubles(vals, 0)
	return &RealBuffer{values: vals}
}

// Set stores v at row i.
func (b *RealBuffer) Set(i int, v float64) error {
	if b.frozen {
		return ErrFrozen
	}
	if err := checkBounds(i, len(b.values)); err != nil {
		return err
	}
	b.values[i] = v
	return nil
}

// DistinctValues reports the number of distinct non-missing values observed.
func (b *RealBuffer) DistinctValues() int {
	seen := make(map[float64]struct{}, len(b.values))
	for _, v := range b.values {
		if !math.IsNaN(v) {
			seen[v] = struct{}{}
		}
	}
	return len(seen)
}

// ToColumn freezes the buffer and returns a real column borrowing its
// storage. Subsequent mutation attempts fail with ErrFrozen.
func (b *RealBuffer) ToColumn() (*column.Column, error) {
	if b.frozen {
		return nil, ErrFrozen
	}
	b.frozen = true
	return column.NewDenseReal(b.values), nil
}

// String implements fmt.Stringer for debugging.
func (b *RealBuffer) String() string {
	return fmt.Sprintf("RealBuffer(len=%d, frozen=%v)", len(b.values), b.frozen)
}

// Int53Buffer is the mutable construction path for an integer-53-bit column,
// stored as float64 with half-to-even rounding applied at Set time.
type Int53Buffer struct {
	values []float64
	frozen bool
}

// NewInt53 allocates a buffer of size rows, all missing (NaN) if
// initToMissing.
func NewInt53(size int, initToMissing bool) *Int53Buffer {
	vals := make([]float64, size)
	if initToMissing {
		for i := range vals {
			vals[i] = math.NaN()
		}
	}
	return &Int53Buffer{values: vals}
}

// Int53FromColumn copies an existing int53 column's payload into a new
// mutable buffer.
func Int53FromColumn(c *column.Column) *Int53Buffer {
	vals := make([]float64, c.Size())
	c.FillDoubles(vals, 0)
	return &Int53Buffer{values: vals}
}

// Set stores v at row i, rounded half-to-even per spec.md §4.3.
func (b *Int53Buffer) Set(i int, v float64) error {
	if b.frozen {
		return ErrFrozen
	}
	if err := checkBounds(i, len(b.values)); err != nil {
		return err
	}
	b.values[i] = roundHalfToEven(v)
	return nil
}

// ToColumn freezes the buffer and returns an int53 column.
func (b *Int53Buffer) ToColumn() (*column.Column, error) {
	if b.frozen {
		return nil, ErrFrozen
	}
	b.frozen = true
	return column.NewDenseInt53(b.values), nil
}
