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

package wire

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/coltable/coltable/column"
)

const missingTime = int64(math.MaxInt64)

// PutReal writes as many complete real/int53 rows starting at rowOffset as
// fit in buf (8 bytes per row, IEEE-754 double, NaN for missing), in the
// given byte order. Returns the number of rows written and advances
// nothing in buf itself -- callers slice their own buffer forward by
// 8*written.
func PutReal(col *column.Column, rowOffset int, buf []byte, order binary.ByteOrder) (int, error) {
	if col == nil {
		return 0, fmt.Errorf("%w: nil column", ErrBadArgument)
	}
	if !col.Capabilities().Has(column.NumericReadable) {
		return 0, ErrNotNumeric
	}
	if err := checkRowOffset(rowOffset, col.Size()); err != nil {
		return 0, err
	}
	n := len(buf) / 8
	if avail := col.Size() - rowOffset; n > avail {
		n = avail
	}
	if n == 0 {
		return 0, nil
	}
	vals := make([]float64, n)
	col.FillDoubles(vals, rowOffset)
	for i, v := range vals {
		order.PutUint64(buf[i*8:], math.Float64bits(v))
	}
	return n, nil
}

// PutTimeOfDay writes as many complete time-of-day rows as fit in buf
// (8 bytes per row, signed nanos-of-day, MaxInt64 for missing).
func PutTimeOfDay(col *column.Column, rowOffset int, buf []byte, order binary.ByteOrder) (int, error) {
	if col == nil {
		return 0, fmt.Errorf("%w: nil column", ErrBadArgument)
	}
	if col.Type() != column.TimeOfDay {
		return 0, fmt.Errorf("%w: column is not time-of-day", ErrBadArgument)
	}
	if err := checkRowOffset(rowOffset, col.Size()); err != nil {
		return 0, err
	}
	n := len(buf) / 8
	if avail := col.Size() - rowOffset; n > avail {
		n = avail
	}
	if n == 0 {
		return 0, nil
	}
	vals := make([]float64, n)
	col.FillDoubles(vals, rowOffset)
	for i, v := range vals {
		raw := missingTime
		if !math.IsNaN(v) {
			raw = int64(v)
		}
		order.PutUint64(buf[i*8:], uint64(raw))
	}
	return n, nil
}

// PutDateTimeSeconds writes as many complete datetime-seconds rows as fit
// in buf (8 bytes per row, signed epoch seconds, MaxInt64 for missing).
func PutDateTimeSeconds(col *column.Column, rowOffset int, buf []byte, order binary.ByteOrder) (int, error) {
	secs, _, n, err := dateTimeRows(col, rowOffset, len(buf)/8)
	if err != nil {
		return 0, err
	}
	for i, s := range secs {
		order.PutUint64(buf[i*8:], uint64(s))
	}
	return n, nil
}

// PutDateTimeNanos writes as many complete datetime-nanos rows as fit in
// buf (4 bytes per row, unsigned in [0, 999_999_999], 0 for missing).
func PutDateTimeNanos(col *column.Column, rowOffset int, buf []byte, order binary.ByteOrder) (int, error) {
	_, nanos, n, err := dateTimeRows(col, rowOffset, len(buf)/4)
	if err != nil {
		return 0, err
	}
	for i, v := range nanos {
		order.PutUint32(buf[i*4:], v)
	}
	return n, nil
}

func dateTimeRows(col *column.Column, rowOffset, maxN int) ([]int64, []uint32, int, error) {
	if col == nil {
		return nil, nil, 0, fmt.Errorf("%w: nil column", ErrBadArgument)
	}
	if col.Type() != column.DateTime {
		return nil, nil, 0, fmt.Errorf("%w: column is not datetime", ErrBadArgument)
	}
	if err := checkRowOffset(rowOffset, col.Size()); err != nil {
		return nil, nil, 0, err
	}
	n := maxN
	if avail := col.Size() - rowOffset; n > avail {
		n = avail
	}
	if n == 0 {
		return nil, nil, 0, nil
	}
	objs := make([]any, n)
	col.FillObjects(objs, rowOffset)
	secs := make([]int64, n)
	nanos := make([]uint32, n)
	for i, o := range objs {
		if dv, ok := o.(column.DateTimeValue); ok {
			secs[i] = dv.Seconds
			nanos[i] = dv.Nanos
		} else {
			secs[i] = missingTime
		}
	}
	return secs, nanos, n, nil
}

// PutCategoricalByte writes as many complete categorical rows as fit in
// buf (1 byte per row, unsigned index, 0 for missing). Fails
// ErrTooManyValues if the column's dictionary.MaximalIndex() exceeds 255.
func PutCategoricalByte(col *column.Column, rowOffset int, buf []byte) (int, error) {
	idx, n, err := categoricalRows(col, rowOffset, len(buf), 0xFF)
	if err != nil {
		return 0, err
	}
	for i, v := range idx {
		buf[i] = byte(v)
	}
	return n, nil
}

// PutCategoricalShort writes as many complete categorical rows as fit in
// buf (2 bytes per row, unsigned index).
func PutCategoricalShort(col *column.Column, rowOffset int, buf []byte, order binary.ByteOrder) (int, error) {
	idx, n, err := categoricalRows(col, rowOffset, len(buf)/2, 0xFFFF)
	if err != nil {
		return 0, err
	}
	for i, v := range idx {
		order.PutUint16(buf[i*2:], uint16(v))
	}
	return n, nil
}

// PutCategoricalInt writes as many complete categorical rows as fit in buf
// (4 bytes per row, signed non-negative index).
func PutCategoricalInt(col *column.Column, rowOffset int, buf []byte, order binary.ByteOrder) (int, error) {
	idx, n, err := categoricalRows(col, rowOffset, len(buf)/4, math.MaxInt32)
	if err != nil {
		return 0, err
	}
	for i, v := range idx {
		order.PutUint32(buf[i*4:], uint32(v))
	}
	return n, nil
}

func categoricalRows(col *column.Column, rowOffset, maxN int, widthMax uint32) ([]int32, int, error) {
	if col == nil {
		return nil, 0, fmt.Errorf("%w: nil column", ErrBadArgument)
	}
	if col.Type() != column.Nominal && col.Type() != column.CategoricalCustom {
		return nil, 0, ErrNotCategorical
	}
	if err := checkRowOffset(rowOffset, col.Size()); err != nil {
		return nil, 0, err
	}
	maxIdx := col.MaximalCategoricalIndex()
	if uint32(maxIdx) > widthMax {
		return nil, 0, fmt.Errorf("%w: dictionary max index %d exceeds target width", ErrTooManyValues, maxIdx)
	}
	n := maxN
	if avail := col.Size() - rowOffset; n > avail {
		n = avail
	}
	if n == 0 {
		return nil, 0, nil
	}
	idx := make([]int32, n)
	col.FillInts(idx, rowOffset)
	return idx, n, nil
}
