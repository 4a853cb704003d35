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

package rowio

import (
	"errors"
	"fmt"

	"github.com/coltable/coltable/column"
)

// ErrColumnHeightMismatch signals that the columns passed to NewRowReader
// do not share a common row count.
var ErrColumnHeightMismatch = errors.New("rowio: columns have mismatched height")

// RowReader iterates N columns in lock-step, storing one aligned batch in
// a single dense buffer per column to maximize cache locality, per
// spec.md §4.8. It doubles as the "mixed reader" exposing get_numeric,
// get_index, get_object selected by column kind at access time. The
// returned cursor MUST NOT be retained across rows -- it is a view, not a
// row object.
type RowReader struct {
	cols     []*column.Column
	bufSize  int
	numBuf   [][]float64
	objBuf   [][]any
	idxBuf   [][]int32
	bufStart int
	bufLen   int
	pos      int
	size     int
}

// NewRowReader returns a reader over cols (all must share the same
// height), buffering bufSize rows per column at a time (clamped to >=1).
func NewRowReader(cols []*column.Column, bufSize int) (*RowReader, error) {
	if bufSize < 1 {
		bufSize = 1
	}
	if len(cols) == 0 {
		return &RowReader{pos: -1}, nil
	}
	size := cols[0].Size()
	for _, c := range cols {
		if c.Size() != size {
			return nil, fmt.Errorf("%w: %d vs %d", ErrColumnHeightMismatch, c.Size(), size)
		}
	}
	r := &RowReader{cols: cols, bufSize: bufSize, pos: -1, size: size,
		numBuf: make([][]float64, len(cols)),
		objBuf: make([][]any, len(cols)),
		idxBuf: make([][]int32, len(cols)),
	}
	for i, c := range cols {
		if c.Capabilities().Has(column.NumericReadable) {
			r.numBuf[i] = make([]float64, bufSize)
		}
		if c.Capabilities().Has(column.ObjectReadable) {
			r.objBuf[i] = make([]any, bufSize)
		}
		if c.Type() == column.Nominal || c.Type() == column.CategoricalCustom {
			r.idxBuf[i] = make([]int32, bufSize)
		}
	}
	return r, nil
}

// HasRemaining reports whether a subsequent Read would return another row.
func (r *RowReader) HasRemaining() bool { return r.pos+1 < r.size }

// SetPosition moves the cursor so the next Read returns row p+1.
func (r *RowReader) SetPosition(p int) { r.pos = p }

// Read advances the cursor by one row, refilling every column's slice of
// the shared buffer when the new position falls outside it.
func (r *RowReader) Read() error {
	if !r.HasRemaining() {
		return ErrNoCurrentRow
	}
	r.pos++
	if r.pos < r.bufStart || r.pos >= r.bufStart+r.bufLen {
		r.bufStart = r.pos
		n := r.bufSize
		if r.bufStart+n > r.size {
			n = r.size - r.bufStart
		}
		for i, c := range r.cols {
			if r.numBuf[i] != nil {
				c.FillDoubles(r.numBuf[i][:n], r.bufStart)
			}
			if r.objBuf[i] != nil {
				c.FillObjects(r.objBuf[i][:n], r.bufStart)
			}
			if r.idxBuf[i] != nil {
				c.FillInts(r.idxBuf[i][:n], r.bufStart)
			}
		}
		r.bufLen = n
	}
	return nil
}

func (r *RowReader) rowOffset() int { return r.pos - r.bufStart }

// GetNumeric returns the current row's numeric value for column i. The
// caller must ensure column i is NumericReadable.
func (r *RowReader) GetNumeric(i int) float64 {
	return r.numBuf[i][r.rowOffset()]
}

// GetIndex returns the current row's raw categorical index for column i.
// The caller must ensure column i is Nominal or CategoricalCustom.
func (r *RowReader) GetIndex(i int) int32 {
	return r.idxBuf[i][r.rowOffset()]
}

// GetObject returns the current row's object value for column i. The
// caller must ensure column i is ObjectReadable.
func (r *RowReader) GetObject(i int) any {
	return r.objBuf[i][r.rowOffset()]
}
