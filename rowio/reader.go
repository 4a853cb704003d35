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

// Package rowio implements the row/column reader and row-writer cursors of
// spec.md §4.8: column readers buffer the most recent K rows, row readers
// iterate N columns in lock-step into one dense buffer, a mixed reader
// dispatches get_numeric/get_index/get_object by column kind, and row
// writers are append-only cursors that freeze into a table.Table.
package rowio

import (
	"errors"

	"github.com/coltable/coltable/column"
)

// ErrNoCurrentRow is returned by accessors when the cursor has not yet
// been positioned on a row, or has run past the end.
var ErrNoCurrentRow = errors.New("rowio: no current row")

// ColumnReader buffers the most recent K rows fetched from a single
// column, per spec.md §4.8.
type ColumnReader struct {
	col      *column.Column
	bufSize  int
	buf      []float64
	objBuf   []any
	bufStart int
	bufLen   int
	pos      int
}

// NewColumnReader returns a reader over col with an internal buffer of
// bufSize rows (clamped to at least 1).
func NewColumnReader(col *column.Column, bufSize int) *ColumnReader {
	if bufSize < 1 {
		bufSize = 1
	}
	r := &ColumnReader{col: col, bufSize: bufSize, pos: -1}
	if col.Capabilities().Has(column.NumericReadable) {
		r.buf = make([]float64, bufSize)
	}
	if col.Capabilities().Has(column.ObjectReadable) {
		r.objBuf = make([]any, bufSize)
	}
	return r
}

// HasRemaining reports whether a subsequent Read would return another row.
func (r *ColumnReader) HasRemaining() bool { return r.pos+1 < r.col.Size() }

// SetPosition moves the cursor so the next Read returns row p+1.
func (r *ColumnReader) SetPosition(p int) { r.pos = p }

// Read advances the cursor by one row and refills the internal buffer from
// the column when the new position falls outside it.
func (r *ColumnReader) Read() error {
	if !r.HasRemaining() {
		return ErrNoCurrentRow
	}
	r.pos++
	if r.pos < r.bufStart || r.pos >= r.bufStart+r.bufLen {
		r.bufStart = r.pos
		n := r.bufSize
		if r.bufStart+n > r.col.Size() {
			n = r.col.Size() - r.bufStart
		}
		if r.buf != nil {
			r.col.FillDoubles(r.buf[:n], r.bufStart)
		}
		if r.objBuf != nil {
			r.col.FillObjects(r.objBuf[:n], r.bufStart)
		}
		r.bufLen = n
	}
	return nil
}

// Numeric returns the current row's numeric value.
func (r *ColumnReader) Numeric() float64 {
	return r.buf[r.pos-r.bufStart]
}

// Object returns the current row's object value.
func (r *ColumnReader) Object() any {
	return r.objBuf[r.pos-r.bufStart]
}
