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

// Package wire implements the byte-buffer I/O contract of spec.md §6: put_*
// builders write complete wire elements into a caller-managed byte buffer
// in a caller-chosen byte order, and read_* builders reconstruct a column
// from repeated put(buf) calls. Each Put* function's doc comment states
// the element width and missing-value encoding it writes.
package wire

import (
	"errors"
	"fmt"
)

// Sentinel errors, one per spec.md §7 logical kind raised from this package.
var (
	ErrBadArgument   = errors.New("wire: bad argument")
	ErrOutOfBounds   = errors.New("wire: out of bounds")
	ErrTooManyValues = errors.New("wire: too many values")
	ErrOutOfRange    = errors.New("wire: value out of range")
	ErrNotCategorical = errors.New("wire: column is not categorical")
	ErrNotNumeric    = errors.New("wire: column is not numeric-readable")
)

func checkRowOffset(rowOffset, size int) error {
	if rowOffset < 0 || rowOffset > size {
		return fmt.Errorf("%w: row offset %d, size %d", ErrOutOfBounds, rowOffset, size)
	}
	return nil
}
