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

package sortkernel

import (
	"math"
	"sort"
	"testing"
)

func applyPerm(keys []float64, perm []int) []float64 {
	out := make([]float64, len(perm))
	for i, p := range perm {
		out[i] = keys[p]
	}
	return out
}

func TestSortFloat64AscBasic(t *testing.T) {
	keys := []float64{5, 1, 4, 2, 3}
	perm := SortFloat64Asc(keys)
	got := applyPerm(keys, perm)
	want := []float64{1, 2, 3, 4, 5}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v want %v", got, want)
		}
	}
}

func TestSortFloat64AscLargeScenario(t *testing.T) {
	// spec.md §8 scenario 4.
	block := []float64{5, 7.1, 3.56, 1.1111, 4, 4.7, 8.99, 9.8999}
	keys := make([]float64, 0, 33)
	for i := 0; i < 4; i++ {
		keys = append(keys, block...)
	}
	keys = append(keys, 100.0)
	perm := SortFloat64Asc(keys)
	if perm[len(perm)-1] != 32 {
		t.Fatalf("last permutation entry = %d, want 32 (the row with value 100.0)", perm[len(perm)-1])
	}
	sorted := applyPerm(keys, perm)
	if !sort.Float64sAreSorted(sorted) {
		t.Fatal("output is not sorted ascending")
	}
}

func TestNaNPlacement(t *testing.T) {
	keys := []float64{3, math.NaN(), 1, math.NaN(), 2}
	asc := SortFloat64Asc(keys)
	for _, i := range asc[:3] {
		if math.IsNaN(keys[i]) {
			t.Fatal("NaN found before end in ascending sort")
		}
	}
	for _, i := range asc[3:] {
		if !math.IsNaN(keys[i]) {
			t.Fatal("non-NaN found in NaN tail of ascending sort")
		}
	}

	desc := SortFloat64Desc(keys)
	for _, i := range desc[:2] {
		if !math.IsNaN(keys[i]) {
			t.Fatal("NaN must lead descending sort")
		}
	}
}

func TestSignedZeroOrdering(t *testing.T) {
	negZero := math.Copysign(0, -1)
	keys := []float64{1, negZero, 0, -1, negZero, 0}
	asc := SortFloat64Asc(keys)
	// find the zero run (values at index 1..4 of sorted order, after -1)
	zeroRun := asc[1:5]
	seenPos := false
	for _, i := range zeroRun {
		if math.Signbit(keys[i]) {
			if seenPos {
				t.Fatal("ascending: a -0 appeared after a +0 within the zero run")
			}
		} else {
			seenPos = true
		}
	}

	desc := SortFloat64Desc(keys)
	zeroRunDesc := desc[1:5]
	seenNeg := false
	for _, i := range zeroRunDesc {
		if !math.Signbit(keys[i]) {
			if seenNeg {
				t.Fatal("descending: a +0 appeared after a -0 within the zero run")
			}
		} else {
			seenNeg = true
		}
	}
}

func TestStability(t *testing.T) {
	type kv struct {
		key  int
		orig int
	}
	data := []kv{{1, 0}, {2, 1}, {1, 2}, {1, 3}, {2, 4}, {0, 5}}
	keys := make([]int, len(data))
	for i, d := range data {
		keys[i] = d.key
	}
	perm := SortIntAsc(keys)
	// within equal keys, original order must be preserved
	lastOrigForKey := map[int]int{}
	for _, p := range perm {
		k := data[p].key
		if prev, ok := lastOrigForKey[k]; ok && data[p].orig < prev {
			t.Fatalf("stability violated for key %d", k)
		}
		lastOrigForKey[k] = data[p].orig
	}
}

func TestSmallRangeUsesInsertionPath(t *testing.T) {
	keys := []float64{9, 8, 7, 6, 5, 4, 3, 2, 1, 0}
	perm := SortFloat64Asc(keys)
	got := applyPerm(keys, perm)
	for i := 0; i < len(got); i++ {
		if got[i] != float64(i) {
			t.Fatalf("got %v", got)
		}
	}
}
