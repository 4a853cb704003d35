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

package bitmap

import "testing"

func TestRankAndDefault(t *testing.T) {
	nonDefault := []int{0, 3, 4, 70, 130}
	size := 200
	b := New(false, nonDefault, size)

	if b.NonDefaultCount() != len(nonDefault) {
		t.Fatalf("got %d non-default, want %d", b.NonDefaultCount(), len(nonDefault))
	}
	if b.DefaultCount()+b.NonDefaultCount() != size {
		t.Fatal("default + non-default must equal size")
	}

	wantRank := map[int]int{0: 0, 3: 1, 4: 2, 70: 3, 130: 4}
	for idx, want := range wantRank {
		if got := b.Rank(idx); got != want {
			t.Errorf("Rank(%d) = %d, want %d", idx, got, want)
		}
	}
	for _, idx := range []int{1, 2, 5, 69, 71, 199} {
		if b.Rank(idx) != DefaultIndex {
			t.Errorf("Rank(%d) should be DefaultIndex", idx)
		}
	}
	for _, idx := range []int{-1, 200, 1000} {
		if b.Rank(idx) != OutOfBoundsIndex {
			t.Errorf("Rank(%d) should be OutOfBoundsIndex", idx)
		}
	}
}

func TestNonDefaultIndicesRoundTrip(t *testing.T) {
	want := []int{1, 2, 64, 65, 127, 128, 256}
	b := New(true, want, 300)
	if !b.DefaultIsNaN() {
		t.Fatal("expected defaultIsNaN true")
	}
	got := b.NonDefaultIndices()
	if len(got) != len(want) {
		t.Fatalf("got %d indices, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("index %d: got %d want %d", i, got[i], want[i])
		}
	}
}

func TestEmpty(t *testing.T) {
	b := New(false, nil, 0)
	if b.Size() != 0 || b.NonDefaultCount() != 0 {
		t.Fatal("empty bitmap should have zero size and zero non-default count")
	}
	if b.Rank(0) != OutOfBoundsIndex {
		t.Fatal("empty bitmap rank(0) should be out of bounds")
	}
}
