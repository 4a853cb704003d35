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

package packedints

import "testing"

func TestRoundTrip(t *testing.T) {
	for _, f := range []Format{U2, U4, U8, U16, U32} {
		n := 37
		p := New(f, n)
		max := MaxValue(f)
		for i := 0; i < n; i++ {
			v := uint32(i) & max
			p.Set(i, v)
		}
		for i := 0; i < n; i++ {
			want := uint32(i) & max
			if got := p.Get(i); got != want {
				t.Fatalf("format %d index %d: got %d want %d", f, i, got, want)
			}
		}
	}
}

func TestBitLayoutLSBFirst(t *testing.T) {
	p := New(U2, 4)
	p.Set(0, 1)
	p.Set(1, 2)
	p.Set(2, 3)
	p.Set(3, 0)
	// byte = bits [pos3 pos3 pos2 pos2 pos1 pos1 pos0 pos0] MSB..LSB
	// value packed LSB-first: byte = 0b00_11_10_01
	want := byte(0b00111001)
	if p.Bytes()[0] != want {
		t.Fatalf("got %08b want %08b", p.Bytes()[0], want)
	}

	p4 := New(U4, 2)
	p4.Set(0, 0xA)
	p4.Set(1, 0xB)
	if p4.Bytes()[0] != 0xBA {
		t.Fatalf("got %02x want %02x", p4.Bytes()[0], 0xBA)
	}
}

func TestSmallestFormat(t *testing.T) {
	cases := []struct {
		max  int
		want Format
	}{
		{0, U2}, {3, U2}, {4, U4}, {15, U4}, {16, U8}, {255, U8}, {256, U16}, {65536, U32},
	}
	for _, c := range cases {
		if got := SmallestFormat(c.max); got != c.want {
			t.Errorf("SmallestFormat(%d) = %d, want %d", c.max, got, c.want)
		}
	}
}

func TestByteLen(t *testing.T) {
	if ByteLen(U2, 5) != 2 {
		t.Fatal("u2 len 5 should need 2 bytes")
	}
	if ByteLen(U4, 5) != 3 {
		t.Fatal("u4 len 5 should need 3 bytes")
	}
	if ByteLen(U8, 5) != 5 {
		t.Fatal("u8 len 5 should need 5 bytes")
	}
}
