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
	"github.com/coltable/coltable/dict"
)

// RealBuilder reconstructs a real column from repeated Put calls, per
// spec.md §6's read_* contract. Rows never supplied by the time ToColumn
// is called are filled with the missing sentinel (NaN).
type RealBuilder struct {
	values []float64
	pos    int
	done   bool
}

// ReadReal returns a builder that will accept up to length total rows.
func ReadReal(length int) *RealBuilder {
	vals := make([]float64, length)
	for i := range vals {
		vals[i] = math.NaN()
	}
	return &RealBuilder{values: vals}
}

// Put decodes as many complete 8-byte elements from buf as fit in the
// builder's remaining capacity, appends them, and returns the count
// consumed.
func (b *RealBuilder) Put(buf []byte, order binary.ByteOrder) int {
	n := len(buf) / 8
	if avail := len(b.values) - b.pos; n > avail {
		n = avail
	}
	for i := 0; i < n; i++ {
		b.values[b.pos+i] = math.Float64frombits(order.Uint64(buf[i*8:]))
	}
	b.pos += n
	return n
}

// ToColumn finalizes the builder into a real column.
func (b *RealBuilder) ToColumn() *column.Column {
	b.done = true
	return column.NewDenseReal(b.values)
}

// Int53Builder is the int53 counterpart of RealBuilder; the wire encoding
// is identical (IEEE-754 double), only the resulting column's type differs.
type Int53Builder struct{ RealBuilder }

// ReadInt53 returns a builder that will accept up to length total rows.
func ReadInt53(length int) *Int53Builder {
	return &Int53Builder{RealBuilder: *ReadReal(length)}
}

// ToColumn finalizes the builder into an int53 column.
func (b *Int53Builder) ToColumn() *column.Column {
	b.done = true
	return column.NewDenseInt53(b.values)
}

// TimeOfDayBuilder reconstructs a time-of-day column from repeated Put
// calls.
type TimeOfDayBuilder struct {
	values []int64
	pos    int
}

// ReadTimeOfDay returns a builder that will accept up to length total rows,
// defaulting unfilled rows to missing.
func ReadTimeOfDay(length int) *TimeOfDayBuilder {
	vals := make([]int64, length)
	for i := range vals {
		vals[i] = missingTime
	}
	return &TimeOfDayBuilder{values: vals}
}

// Put decodes as many complete 8-byte elements from buf as fit.
func (b *TimeOfDayBuilder) Put(buf []byte, order binary.ByteOrder) int {
	n := len(buf) / 8
	if avail := len(b.values) - b.pos; n > avail {
		n = avail
	}
	for i := 0; i < n; i++ {
		b.values[b.pos+i] = int64(order.Uint64(buf[i*8:]))
	}
	b.pos += n
	return n
}

// ToColumn finalizes the builder into a time-of-day column.
func (b *TimeOfDayBuilder) ToColumn() *column.Column {
	return column.NewDenseTimeOfDay(b.values)
}

// DateTimeBuilder reconstructs a datetime column from separately-streamed
// seconds and nanos wire elements, per spec.md §6.
type DateTimeBuilder struct {
	seconds   []int64
	nanos     []uint32
	secPos    int
	nanoPos   int
	lowPrec   bool
}

// ReadDateTime returns a builder that will accept up to length total rows.
// If lowPrecision is true, PutNanos is a no-op and the resulting column
// carries no sub-second payload.
func ReadDateTime(length int, lowPrecision bool) *DateTimeBuilder {
	secs := make([]int64, length)
	for i := range secs {
		secs[i] = missingTime
	}
	b := &DateTimeBuilder{seconds: secs, lowPrec: lowPrecision}
	if !lowPrecision {
		b.nanos = make([]uint32, length)
	}
	return b
}

// PutSeconds decodes as many complete 8-byte elements from buf as fit.
func (b *DateTimeBuilder) PutSeconds(buf []byte, order binary.ByteOrder) int {
	n := len(buf) / 8
	if avail := len(b.seconds) - b.secPos; n > avail {
		n = avail
	}
	for i := 0; i < n; i++ {
		b.seconds[b.secPos+i] = int64(order.Uint64(buf[i*8:]))
	}
	b.secPos += n
	return n
}

// PutNanos decodes as many complete 4-byte elements from buf as fit. A
// no-op in low-precision mode.
func (b *DateTimeBuilder) PutNanos(buf []byte, order binary.ByteOrder) int {
	if b.lowPrec {
		return 0
	}
	n := len(buf) / 4
	if avail := len(b.nanos) - b.nanoPos; n > avail {
		n = avail
	}
	for i := 0; i < n; i++ {
		b.nanos[b.nanoPos+i] = order.Uint32(buf[i*4:])
	}
	b.nanoPos += n
	return n
}

// ToColumn finalizes the builder into a datetime column.
func (b *DateTimeBuilder) ToColumn() *column.Column {
	return column.NewDenseDateTime(b.seconds, b.nanos)
}

// CategoricalBuilder reconstructs a nominal column from repeated
// PutBytes/PutShorts/PutIntegers calls against a fixed, caller-supplied
// ordered set of dictionary values whose first element must be null
// (spec.md §6). Writing a raw index >= len(values) fails ErrOutOfRange.
type CategoricalBuilder struct {
	raw    []uint32
	pos    int
	dict   *dict.Dict[string]
	maxIdx int
}

// ReadCategorical returns a builder over length rows with the given
// dictionary value list (values[0] must be the zero value, representing
// null/missing).
func ReadCategorical(length int, values []string) (*CategoricalBuilder, error) {
	if len(values) == 0 || values[0] != "" {
		return nil, fmt.Errorf("%w: dictionary value list must start with null", ErrBadArgument)
	}
	d := dict.New[string]()
	for _, v := range values[1:] {
		d.Intern(v)
	}
	return &CategoricalBuilder{raw: make([]uint32, length), dict: d, maxIdx: len(values) - 1}, nil
}

func (b *CategoricalBuilder) putRaw(idx uint32) error {
	if int(idx) > b.maxIdx {
		return fmt.Errorf("%w: index %d exceeds dictionary size %d", ErrOutOfRange, idx, b.maxIdx+1)
	}
	if b.pos >= len(b.raw) {
		return nil
	}
	b.raw[b.pos] = idx
	b.pos++
	return nil
}

// PutBytes decodes as many complete 1-byte elements from buf as fit.
func (b *CategoricalBuilder) PutBytes(buf []byte) (int, error) {
	n := len(buf)
	if avail := len(b.raw) - b.pos; n > avail {
		n = avail
	}
	for i := 0; i < n; i++ {
		if err := b.putRaw(uint32(buf[i])); err != nil {
			return i, err
		}
	}
	return n, nil
}

// PutShorts decodes as many complete 2-byte elements from buf as fit.
func (b *CategoricalBuilder) PutShorts(buf []byte, order binary.ByteOrder) (int, error) {
	n := len(buf) / 2
	if avail := len(b.raw) - b.pos; n > avail {
		n = avail
	}
	for i := 0; i < n; i++ {
		if err := b.putRaw(uint32(order.Uint16(buf[i*2:]))); err != nil {
			return i, err
		}
	}
	return n, nil
}

// PutIntegers decodes as many complete 4-byte elements from buf as fit.
func (b *CategoricalBuilder) PutIntegers(buf []byte, order binary.ByteOrder) (int, error) {
	n := len(buf) / 4
	if avail := len(b.raw) - b.pos; n > avail {
		n = avail
	}
	for i := 0; i < n; i++ {
		if err := b.putRaw(order.Uint32(buf[i*4:])); err != nil {
			return i, err
		}
	}
	return n, nil
}

// ToColumn finalizes the builder into a nominal column.
func (b *CategoricalBuilder) ToColumn() *column.Column {
	return column.NewDenseNominal(b.raw, b.dict)
}
