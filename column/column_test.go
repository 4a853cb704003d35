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

package column

import (
	"math"
	"testing"

	"github.com/coltable/coltable/dict"
)

func TestDenseRealFillRoundtrip(t *testing.T) {
	col := NewDenseReal([]float64{1, 2, math.NaN(), 4})
	out := make([]float64, 4)
	col.FillDoubles(out, 0)
	for i, want := range []float64{1, 2, math.NaN(), 4} {
		if math.IsNaN(want) {
			if !math.IsNaN(out[i]) {
				t.Fatalf("row %d: want NaN, got %v", i, out[i])
			}
			continue
		}
		if out[i] != want {
			t.Fatalf("row %d: want %v, got %v", i, want, out[i])
		}
	}
	if col.rowIsMissing(2) != true || col.rowIsMissing(0) != false {
		t.Fatalf("rowIsMissing mismatch")
	}
}

func TestDenseRealFillStridedInterleaves(t *testing.T) {
	a := NewDenseReal([]float64{10, 20, 30})
	b := NewDenseReal([]float64{1, 2, 3})
	out := make([]float64, 6)
	a.FillDoublesStrided(out, 0, 0, 2)
	b.FillDoublesStrided(out, 0, 1, 2)
	want := []float64{10, 1, 20, 2, 30, 3}
	for i := range want {
		if out[i] != want[i] {
			t.Fatalf("index %d: want %v, got %v", i, want[i], out[i])
		}
	}
}

func TestSparseInvariantCounts(t *testing.T) {
	col := NewSparseReal(Real, 10, 0, false, []int{2, 5, 7}, []float64{1, 2, 3})
	if col.sparseBitmap.NonDefaultCount()+col.sparseBitmap.DefaultCount() != col.Size() {
		t.Fatalf("sparse invariant violated")
	}
	for i := 0; i < 10; i++ {
		want := 0.0
		switch i {
		case 2:
			want = 1
		case 5:
			want = 2
		case 7:
			want = 3
		}
		if got := col.getDouble(i); got != want {
			t.Fatalf("row %d: want %v, got %v", i, want, got)
		}
	}
}

func TestMapOutOfRangeYieldsMissing(t *testing.T) {
	col := NewDenseReal([]float64{1, 2, 3})
	mapped := col.Map([]int{0, 5, 2}, false)
	if !math.IsNaN(mapped.getDouble(1)) {
		t.Fatalf("out-of-range map entry should yield missing, got %v", mapped.getDouble(1))
	}
	if mapped.getDouble(0) != 1 || mapped.getDouble(2) != 3 {
		t.Fatalf("mapped values incorrect")
	}
}

func TestMapViewComposesMappings(t *testing.T) {
	col := NewDenseReal([]float64{10, 20, 30, 40})
	once := col.Map([]int{3, 2, 1, 0}, true)
	twice := once.Map([]int{0, 1}, true)
	if twice.r != reprMapped || twice.base != col {
		t.Fatalf("composed mapping should collapse to a single view over the original base")
	}
	if twice.getDouble(0) != 40 || twice.getDouble(1) != 30 {
		t.Fatalf("composed mapping values incorrect: %v %v", twice.getDouble(0), twice.getDouble(1))
	}
}

func TestNominalRoundtripThroughDictionary(t *testing.T) {
	d, err := dict.FromValues([]string{"a", "b", "c"})
	if err != nil {
		t.Fatal(err)
	}
	col := NewDenseNominal([]uint32{1, 2, 3, 0}, d)
	want := []any{"a", "b", "c", nil}
	for i, w := range want {
		if got := col.getObject(i); got != w {
			t.Fatalf("row %d: want %v, got %v", i, w, got)
		}
	}
	if col.GetDictionary() != d {
		t.Fatalf("GetDictionary should return the backing dictionary")
	}
}

func TestSortFloatAscending(t *testing.T) {
	col := NewDenseReal([]float64{3, 1, math.NaN(), 2})
	perm := col.Sort(Ascending)
	want := []int{1, 3, 0, 2}
	for i, w := range want {
		if perm[i] != w {
			t.Fatalf("perm[%d]: want %d, got %d", i, w, perm[i])
		}
	}
}

func TestStatsNullCountAndMinMax(t *testing.T) {
	col := NewDenseReal([]float64{3, math.NaN(), 1, 2})
	if got := col.Stats(StatNullCount); got != 1 {
		t.Fatalf("want null count 1, got %v", got)
	}
	if got := col.Stats(StatMin); got != 1 {
		t.Fatalf("want min 1, got %v", got)
	}
	if got := col.Stats(StatMax); got != 3 {
		t.Fatalf("want max 3, got %v", got)
	}
}

func TestStripDataPreservesTypeAndDictionary(t *testing.T) {
	d, _ := dict.FromValues([]string{"x", "y"})
	col := NewDenseNominal([]uint32{1, 2}, d)
	stripped := col.StripData()
	if stripped.Size() != 0 {
		t.Fatalf("want size 0, got %d", stripped.Size())
	}
	if stripped.Type() != Nominal {
		t.Fatalf("want Nominal, got %v", stripped.Type())
	}
	if stripped.GetDictionary() != d {
		t.Fatalf("stripped column should keep the dictionary reference")
	}
}
