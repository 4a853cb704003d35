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
	"math"
	"testing"

	"github.com/coltable/coltable/column"
	"github.com/coltable/coltable/dict"
)

func TestRealRoundTrip(t *testing.T) {
	vals := []float64{1.5, math.NaN(), -2.25, 0, 100.125}
	col := column.NewDenseReal(vals)
	buf := make([]byte, 8*len(vals))
	n, err := PutReal(col, 0, buf, binary.LittleEndian)
	if err != nil {
		t.Fatal(err)
	}
	if n != len(vals) {
		t.Fatalf("want %d written, got %d", len(vals), n)
	}
	b := ReadReal(len(vals))
	if got := b.Put(buf, binary.LittleEndian); got != len(vals) {
		t.Fatalf("want %d consumed, got %d", len(vals), got)
	}
	out := b.ToColumn()
	got := make([]float64, len(vals))
	out.FillDoubles(got, 0)
	for i := range vals {
		if math.IsNaN(vals[i]) {
			if !math.IsNaN(got[i]) {
				t.Fatalf("row %d: want NaN, got %v", i, got[i])
			}
			continue
		}
		if got[i] != vals[i] {
			t.Fatalf("row %d: want %v, got %v", i, vals[i], got[i])
		}
	}
}

func TestTimeOfDayRoundTripWithMissing(t *testing.T) {
	vals := []int64{0, 3600_000_000_000, missingTime, 86_399_999_999_999}
	col := column.NewDenseTimeOfDay(vals)
	buf := make([]byte, 8*len(vals))
	if _, err := PutTimeOfDay(col, 0, buf, binary.BigEndian); err != nil {
		t.Fatal(err)
	}
	b := ReadTimeOfDay(len(vals))
	b.Put(buf, binary.BigEndian)
	out := b.ToColumn()
	got := make([]float64, len(vals))
	out.FillDoubles(got, 0)
	if !math.IsNaN(got[2]) {
		t.Fatalf("row 2: want missing, got %v", got[2])
	}
	if got[0] != 0 || got[1] != 3600_000_000_000 || got[3] != 86_399_999_999_999 {
		t.Fatalf("unexpected values: %v", got)
	}
}

// TestDateTimeRoundTrip250KRowsOneMissing mirrors spec.md §8 scenario 6: a
// 250,000-row datetime column streamed through put_seconds/put_nanos and
// reconstructed via read_date_time, with exactly one row missing.
func TestDateTimeRoundTrip250KRowsOneMissing(t *testing.T) {
	const n = 250_000
	const missingRow = 123_456
	seconds := make([]int64, n)
	nanos := make([]uint32, n)
	for i := range seconds {
		seconds[i] = int64(i) * 7
		nanos[i] = uint32(i%1000) * 1000
	}
	seconds[missingRow] = missingTime
	nanos[missingRow] = 0
	col := column.NewDenseDateTime(seconds, nanos)

	secBuf := make([]byte, 8*n)
	nanoBuf := make([]byte, 4*n)
	if _, err := PutDateTimeSeconds(col, 0, secBuf, binary.LittleEndian); err != nil {
		t.Fatal(err)
	}
	if _, err := PutDateTimeNanos(col, 0, nanoBuf, binary.LittleEndian); err != nil {
		t.Fatal(err)
	}

	b := ReadDateTime(n, false)
	if got := b.PutSeconds(secBuf, binary.LittleEndian); got != n {
		t.Fatalf("want %d seconds consumed, got %d", n, got)
	}
	if got := b.PutNanos(nanoBuf, binary.LittleEndian); got != n {
		t.Fatalf("want %d nanos consumed, got %d", n, got)
	}
	out := b.ToColumn()
	objs := make([]any, n)
	out.FillObjects(objs, 0)
	for i := 0; i < n; i++ {
		if i == missingRow {
			if objs[i] != nil {
				t.Fatalf("row %d: want missing, got %v", i, objs[i])
			}
			continue
		}
		dv, ok := objs[i].(column.DateTimeValue)
		if !ok {
			t.Fatalf("row %d: not a DateTimeValue: %v", i, objs[i])
		}
		if dv.Seconds != seconds[i] || dv.Nanos != nanos[i] {
			t.Fatalf("row %d: want (%d,%d), got (%d,%d)", i, seconds[i], nanos[i], dv.Seconds, dv.Nanos)
		}
	}
}

func TestCategoricalByteRoundTrip(t *testing.T) {
	values := []string{"", "red", "green", "blue"}
	d := dict.New[string]()
	for _, v := range values[1:] {
		d.Intern(v)
	}
	var raw []uint32
	for _, v := range []string{"red", "blue", "red", "green"} {
		for i, dv := range values {
			if dv == v {
				raw = append(raw, uint32(i))
			}
		}
	}
	col := column.NewDenseNominal(raw, d)

	buf := make([]byte, len(raw))
	n, err := PutCategoricalByte(col, 0, buf)
	if err != nil {
		t.Fatal(err)
	}
	if n != len(raw) {
		t.Fatalf("want %d written, got %d", len(raw), n)
	}
	b, err := ReadCategorical(len(raw), values)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := b.PutBytes(buf); err != nil {
		t.Fatal(err)
	}
	out := b.ToColumn()
	dc := out.GetDictionary()
	for i := range raw {
		v, ok := dc.Get(int(raw[i]))
		if !ok {
			t.Fatalf("row %d: missing value unexpectedly", i)
		}
		orig, _ := d.Get(int(raw[i]))
		if v != orig {
			t.Fatalf("row %d: want %q, got %q", i, orig, v)
		}
	}
}

func TestCategoricalBuilderRejectsMissingNullFirst(t *testing.T) {
	if _, err := ReadCategorical(1, []string{"red"}); err == nil {
		t.Fatalf("expected error when first dictionary value is not null")
	}
}

func TestCategoricalBuilderOutOfRangeIndexFails(t *testing.T) {
	b, err := ReadCategorical(1, []string{"", "red"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := b.PutBytes([]byte{5}); err == nil {
		t.Fatalf("expected out-of-range error")
	}
}

func TestPutRealRejectsNonNumericColumn(t *testing.T) {
	col := column.NewDenseObject([]any{"a", "b"}, nil)
	buf := make([]byte, 16)
	if _, err := PutReal(col, 0, buf, binary.LittleEndian); err == nil {
		t.Fatalf("expected ErrNotNumeric")
	}
}
