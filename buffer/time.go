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
	"math"

	"github.com/coltable/coltable/column"
)

const missingTimeRaw = math.MaxInt64 // matches column.MissingTimeRaw

// TimeOfDayBuffer is the mutable construction path for a time-of-day
// column: nanoseconds since midnight, range [0, 86_400_000_000_000).
type TimeOfDayBuffer struct {
	values []int64
	frozen bool
}

// NewTimeOfDay allocates a buffer of size rows, all missing if initToMissing.
func NewTimeOfDay(size int, initToMissing bool) *TimeOfDayBuffer {
	vals := make([]int64, size)
	if initToMissing {
		for i := range vals {
			vals[i] = missingTimeRaw
		}
	}
	return &TimeOfDayBuffer{values: vals}
}

// Set stores nanosOfDay at row i, or marks it missing if nanosOfDay < 0.
func (b *TimeOfDayBuffer) Set(i int, nanosOfDay int64) error {
	if b.frozen {
		return ErrFrozen
	}
	if err := checkBounds(i, len(b.values)); err != nil {
		return err
	}
	if nanosOfDay < 0 {
		b.values[i] = missingTimeRaw
	} else {
		b.values[i] = nanosOfDay
	}
	return nil
}

// ToColumn freezes the buffer and returns a time-of-day column.
func (b *TimeOfDayBuffer) ToColumn() (*column.Column, error) {
	if b.frozen {
		return nil, ErrFrozen
	}
	b.frozen = true
	return column.NewDenseTimeOfDay(b.values), nil
}

// DateTimeBuffer is the mutable construction path for a datetime column:
// epoch seconds plus an optional nanosecond remainder. lowPrecision omits
// the nanos side entirely, matching spec.md §4.3's "low/high precision"
// variant.
type DateTimeBuffer struct {
	seconds      []int64
	nanos        []uint32
	lowPrecision bool
	frozen       bool
}

// NewDateTime allocates a buffer of size rows, all missing if
// initToMissing. When lowPrecision is true, sub-second precision is
// discarded on Set and no nanos payload is ever stored.
func NewDateTime(size int, initToMissing, lowPrecision bool) *DateTimeBuffer {
	secs := make([]int64, size)
	if initToMissing {
		for i := range secs {
			secs[i] = missingTimeRaw
		}
	}
	b := &DateTimeBuffer{seconds: secs, lowPrecision: lowPrecision}
	if !lowPrecision {
		b.nanos = make([]uint32, size)
	}
	return b
}

// Set stores seconds and a nanosecond remainder (truncated to
// [0, 999_999_999], and discarded entirely in low-precision mode) at row i.
func (b *DateTimeBuffer) Set(i int, seconds int64, nanos uint32) error {
	if b.frozen {
		return ErrFrozen
	}
	if err := checkBounds(i, len(b.seconds)); err != nil {
		return err
	}
	b.seconds[i] = seconds
	if !b.lowPrecision {
		b.nanos[i] = nanos % 1_000_000_000
	}
	return nil
}

// SetMissing marks row i as missing.
func (b *DateTimeBuffer) SetMissing(i int) error {
	if b.frozen {
		return ErrFrozen
	}
	if err := checkBounds(i, len(b.seconds)); err != nil {
		return err
	}
	b.seconds[i] = missingTimeRaw
	if !b.lowPrecision {
		b.nanos[i] = 0
	}
	return nil
}

// ToColumn freezes the buffer and returns a datetime column.
func (b *DateTimeBuffer) ToColumn() (*column.Column, error) {
	if b.frozen {
		return nil, ErrFrozen
	}
	b.frozen = true
	return column.NewDenseDateTime(b.seconds, b.nanos), nil
}
