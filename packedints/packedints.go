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

// Package packedints implements sub-byte packed unsigned integer arrays
// (2, 4 and 8 bits per element) over a plain byte slice, plus the 16- and
// 32-bit widths used by dense categorical columns. The bit layout is
// least-significant-bits-first within a byte, so the in-memory
// representation and the wire format of wire.PutCategorical agree without
// any shuffling.
package packedints

import (
	"fmt"

	"golang.org/x/exp/constraints"
)

// Format identifies the number of bits used per logical element.
type Format int

const (
	U2  Format = 2
	U4  Format = 4
	U8  Format = 8
	U16 Format = 16
	U32 Format = 32
)

// BitsPerElement size returns the number of bits occupied by a single
// element under f.
func (f Format) BitsPerElement() int { return int(f) }

// PerByte returns how many logical elements fit in one byte, or 0 for
// formats that are already byte-or-wider (U16, U32).
func (f Format) PerByte() int {
	switch f {
	case U2:
		return 4
	case U4:
		return 2
	case U8:
		return 1
	default:
		return 0
	}
}

// ByteLen returns the number of bytes needed to store n elements under f.
func ByteLen(f Format, n int) int {
	switch f {
	case U2, U4, U8:
		per := f.PerByte()
		return (n + per - 1) / per
	case U16:
		return n * 2
	case U32:
		return n * 4
	default:
		panic(fmt.Sprintf("packedints: unknown format %d", f))
	}
}

// Ints is a triple of {byte array, format, logical size} per spec.md §3.
type Ints struct {
	buf    []byte
	format Format
	size   int
}

// New allocates a zero-initialized packed array of n elements in format f.
func New(f Format, n int) *Ints {
	return &Ints{
		buf:    make([]byte, ByteLen(f, n)),
		format: f,
		size:   n,
	}
}

// Wrap adopts an existing byte slice as backing storage. len(buf) must be
// at least ByteLen(f, n).
func Wrap(buf []byte, f Format, n int) (*Ints, error) {
	if len(buf) < ByteLen(f, n) {
		return nil, fmt.Errorf("packedints: buffer too small for %d elements in format %d", n, f)
	}
	return &Ints{buf: buf, format: f, size: n}, nil
}

// Format reports the packing format.
func (p *Ints) Format() Format { return p.format }

// Len reports the logical number of elements.
func (p *Ints) Len() int { return p.size }

// Bytes returns the backing byte slice (shared, not copied).
func (p *Ints) Bytes() []byte { return p.buf }

// Get returns the value stored at logical index i.
func (p *Ints) Get(i int) uint32 {
	switch p.format {
	case U2:
		b := p.buf[i/4]
		shift := uint(2 * (i % 4))
		return uint32((b >> shift) & 0x3)
	case U4:
		b := p.buf[i/2]
		shift := uint(4 * (i % 2))
		return uint32((b >> shift) & 0xF)
	case U8:
		return uint32(p.buf[i])
	case U16:
		off := i * 2
		return uint32(p.buf[off]) | uint32(p.buf[off+1])<<8
	case U32:
		off := i * 4
		return uint32(p.buf[off]) | uint32(p.buf[off+1])<<8 |
			uint32(p.buf[off+2])<<16 | uint32(p.buf[off+3])<<24
	default:
		panic("packedints: unknown format")
	}
}

// Set stores v at logical index i. v must fit within the format's width.
func (p *Ints) Set(i int, v uint32) {
	switch p.format {
	case U2:
		bi := i / 4
		shift := uint(2 * (i % 4))
		p.buf[bi] = (p.buf[bi] &^ (0x3 << shift)) | byte((v&0x3)<<shift)
	case U4:
		bi := i / 2
		shift := uint(4 * (i % 2))
		p.buf[bi] = (p.buf[bi] &^ (0xF << shift)) | byte((v&0xF)<<shift)
	case U8:
		p.buf[i] = byte(v)
	case U16:
		off := i * 2
		p.buf[off] = byte(v)
		p.buf[off+1] = byte(v >> 8)
	case U32:
		off := i * 4
		p.buf[off] = byte(v)
		p.buf[off+1] = byte(v >> 8)
		p.buf[off+2] = byte(v >> 16)
		p.buf[off+3] = byte(v >> 24)
	default:
		panic("packedints: unknown format")
	}
}

// MaxValue returns the largest value representable in f.
func MaxValue(f Format) uint32 {
	switch f {
	case U2:
		return 0x3
	case U4:
		return 0xF
	case U8:
		return 0xFF
	case U16:
		return 0xFFFF
	case U32:
		return 0xFFFFFFFF
	default:
		panic("packedints: unknown format")
	}
}

// SmallestFormat returns the narrowest format in {U2,U4,U8,U16,U32} whose
// MaxValue is >= max. Used by dense categorical columns and buffers to pick
// the backing width from dictionary.MaximalIndex().
func SmallestFormat[T constraints.Integer](max T) Format {
	switch {
	case max <= T(MaxValue(U2)):
		return U2
	case max <= T(MaxValue(U4)):
		return U4
	case max <= T(MaxValue(U8)):
		return U8
	case max <= T(MaxValue(U16)):
		return U16
	default:
		return U32
	}
}
