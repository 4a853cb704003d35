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

package buffer

import (
	"errors"
	"math"
	"testing"
)

func TestInt53BufferRoundHalfToEven(t *testing.T) {
	b := NewInt53(10, true)
	sets := map[int]float64{
		1: 4.0,
		2: 3.14,
		5: 2.718,
		6: math.Inf(-1),
		7: math.Inf(1),
		9: 3.0,
	}
	for i, v := range sets {
		if err := b.Set(i, v); err != nil {
			t.Fatal(err)
		}
	}
	col, err := b.ToColumn()
	if err != nil {
		t.Fatal(err)
	}
	out := make([]float64, 10)
	col.FillDoubles(out, 0)
	want := []float64{math.NaN(), 4, 3, math.NaN(), math.NaN(), 3, math.Inf(-1), math.Inf(1), math.NaN(), 3}
	for i, w := range want {
		if math.IsNaN(w) {
			if !math.IsNaN(out[i]) {
				t.Fatalf("row %d: want NaN, got %v", i, out[i])
			}
			continue
		}
		if out[i] != w {
			t.Fatalf("row %d: want %v, got %v", i, w, out[i])
		}
	}
}

func TestNominalBufferDictionaryAndIndices(t *testing.T) {
	b := NewNominal(5, 0)
	values := []string{"green", "red", "", "red", ""}
	for i, v := range values {
		if v == "" {
			if err := b.SetMissing(i); err != nil {
				t.Fatal(err)
			}
			continue
		}
		if err := b.Set(i, v); err != nil {
			t.Fatal(err)
		}
	}
	col, err := b.ToColumn()
	if err != nil {
		t.Fatal(err)
	}
	out := make([]int32, 5)
	col.FillInts(out, 0)
	want := []int32{1, 2, 0, 2, 0}
	for i, w := range want {
		if out[i] != w {
			t.Fatalf("row %d: want %d, got %d", i, w, out[i])
		}
	}
	if col.GetDictionary().Values()[0] != "green" || col.GetDictionary().Values()[1] != "red" {
		t.Fatalf("unexpected dictionary order: %v", col.GetDictionary().Values())
	}
}

func TestNominalBufferToBooleanColumn(t *testing.T) {
	b := NewNominal(5, 0)
	values := []string{"green", "red", "", "red", ""}
	for i, v := range values {
		if v == "" {
			b.SetMissing(i)
			continue
		}
		b.Set(i, v)
	}
	positive := "green"
	col, bd, err := b.ToBooleanColumn(&positive)
	if err != nil {
		t.Fatal(err)
	}
	out := make([]int32, 5)
	col.FillInts(out, 0)
	want := []int32{1, 2, 0, 2, 0}
	for i, w := range want {
		if out[i] != w {
			t.Fatalf("row %d: want %d, got %d", i, w, out[i])
		}
	}
	if !bd.HasPositive() || !bd.HasNegative() {
		t.Fatalf("expected both positive and negative entries tagged")
	}
}

func TestNominalBufferSetSafeRespectsCap(t *testing.T) {
	b := NewNominal(3, 1)
	ok, err := b.SetSafe(0, "a")
	if err != nil || !ok {
		t.Fatalf("first value should fit: ok=%v err=%v", ok, err)
	}
	ok, err = b.SetSafe(1, "b")
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatalf("second distinct value should exceed cap")
	}
}

func TestFrozenBufferRejectsMutation(t *testing.T) {
	b := NewReal(2, false)
	if _, err := b.ToColumn(); err != nil {
		t.Fatal(err)
	}
	if err := b.Set(0, 1.0); !errors.Is(err, ErrFrozen) {
		t.Fatalf("want ErrFrozen, got %v", err)
	}
	if _, err := b.ToColumn(); !errors.Is(err, ErrFrozen) {
		t.Fatalf("want ErrFrozen on second freeze, got %v", err)
	}
}
