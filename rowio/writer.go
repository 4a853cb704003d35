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
	"math"

	"github.com/coltable/coltable/column"
	"github.com/coltable/coltable/dict"
	"github.com/coltable/coltable/table"
)

// ErrWriterFrozen signals a mutation attempt after Create() has been called.
var ErrWriterFrozen = errors.New("rowio: writer already frozen")

// ColumnSpec declares one column of a RowWriter's schema.
type ColumnSpec struct {
	Label        string
	Type         column.Type
	Comparator   func(a, b any) int // Object only
	LowPrecision bool               // DateTime only
}

// RowWriter is an append-only cursor that fills rows across a fixed schema
// of growable per-column payloads, per spec.md §4.8: Move advances the
// active row, Set fills it, and Create freezes the payloads into a Table.
// initToMissing, if set at construction, defaults every unset cell to the
// missing sentinel instead of a zero value as rows are grown into.
type RowWriter struct {
	specs         []ColumnSpec
	initToMissing bool
	row           int // -1 before the first Move
	frozen        bool

	doubles [][]float64       // Real, Int53, TimeOfDay (as raw nanos)
	seconds [][]int64         // DateTime
	nanos   [][]uint32        // DateTime (nil when LowPrecision)
	nomDict []*dict.Dict[string]
	nomRaw  [][]uint32
	objs    [][]any
}

// NewRowWriter returns a writer over the given schema, preallocated for
// capacity rows (grown automatically past that if Move is called more
// often).
func NewRowWriter(specs []ColumnSpec, capacity int, initToMissing bool) (*RowWriter, error) {
	if capacity < 0 {
		capacity = 0
	}
	w := &RowWriter{specs: specs, initToMissing: initToMissing, row: -1,
		doubles: make([][]float64, len(specs)),
		seconds: make([][]int64, len(specs)),
		nanos:   make([][]uint32, len(specs)),
		nomDict: make([]*dict.Dict[string], len(specs)),
		nomRaw:  make([][]uint32, len(specs)),
		objs:    make([][]any, len(specs)),
	}
	seen := make(map[string]bool, len(specs))
	for i, s := range specs {
		if seen[s.Label] {
			return nil, fmt.Errorf("rowio: duplicate column label %q", s.Label)
		}
		seen[s.Label] = true
		switch s.Type {
		case column.Real, column.Int53, column.TimeOfDay:
			w.doubles[i] = make([]float64, capacity)
			if initToMissing {
				fillNaN(w.doubles[i])
			}
		case column.DateTime:
			w.seconds[i] = make([]int64, capacity)
			if !s.LowPrecision {
				w.nanos[i] = make([]uint32, capacity)
			}
			if initToMissing {
				fillMissingSeconds(w.seconds[i])
			}
		case column.Nominal:
			w.nomDict[i] = dict.New[string]()
			w.nomRaw[i] = make([]uint32, capacity)
		case column.Object, column.CategoricalCustom:
			w.objs[i] = make([]any, capacity)
		default:
			return nil, fmt.Errorf("rowio: unsupported column type %v for %q", s.Type, s.Label)
		}
	}
	return w, nil
}

func fillNaN(s []float64) {
	for i := range s {
		s[i] = math.NaN()
	}
}

func fillMissingSeconds(s []int64) {
	for i := range s {
		s[i] = math.MaxInt64
	}
}

// Move advances the active row index by one, growing every column payload
// if needed.
func (w *RowWriter) Move() error {
	if w.frozen {
		return ErrWriterFrozen
	}
	w.row++
	n := w.row + 1
	for i, s := range w.specs {
		switch s.Type {
		case column.Real, column.Int53, column.TimeOfDay:
			w.doubles[i] = growDoubles(w.doubles[i], n, w.initToMissing)
		case column.DateTime:
			w.seconds[i] = growSeconds(w.seconds[i], n, w.initToMissing)
			if w.nanos[i] != nil {
				w.nanos[i] = growUint32(w.nanos[i], n)
			}
		case column.Nominal:
			w.nomRaw[i] = growUint32(w.nomRaw[i], n)
		case column.Object, column.CategoricalCustom:
			w.objs[i] = growAny(w.objs[i], n)
		}
	}
	return nil
}

func growDoubles(s []float64, n int, initToMissing bool) []float64 {
	if len(s) >= n {
		return s
	}
	old := len(s)
	grown := append(s, make([]float64, n-old)...)
	if initToMissing {
		for i := old; i < n; i++ {
			grown[i] = math.NaN()
		}
	}
	return grown
}

func growSeconds(s []int64, n int, initToMissing bool) []int64 {
	if len(s) >= n {
		return s
	}
	old := len(s)
	grown := append(s, make([]int64, n-old)...)
	if initToMissing {
		for i := old; i < n; i++ {
			grown[i] = math.MaxInt64
		}
	}
	return grown
}

func growUint32(s []uint32, n int) []uint32 {
	if len(s) >= n {
		return s
	}
	return append(s, make([]uint32, n-len(s))...)
}

func growAny(s []any, n int) []any {
	if len(s) >= n {
		return s
	}
	return append(s, make([]any, n-len(s))...)
}

// Set stores value at the active row of column i, per the column's type:
// float64 for Real/Int53, int64 nanoseconds of day for TimeOfDay,
// column.DateTimeValue for DateTime,
// string for Nominal, any for CategoricalCustom/Object.
func (w *RowWriter) Set(i int, value any) error {
	if w.frozen {
		return ErrWriterFrozen
	}
	if w.row < 0 {
		return ErrNoCurrentRow
	}
	switch w.specs[i].Type {
	case column.Real:
		w.doubles[i][w.row] = value.(float64)
	case column.Int53:
		w.doubles[i][w.row] = math.RoundToEven(value.(float64))
	case column.TimeOfDay:
		w.doubles[i][w.row] = float64(value.(int64))
	case column.DateTime:
		dv := value.(column.DateTimeValue)
		w.seconds[i][w.row] = dv.Seconds
		if w.nanos[i] != nil {
			w.nanos[i][w.row] = dv.Nanos % 1_000_000_000
		}
	case column.Nominal:
		w.nomRaw[i][w.row] = uint32(w.nomDict[i].Intern(value.(string)))
	case column.CategoricalCustom, column.Object:
		w.objs[i][w.row] = value
	default:
		return fmt.Errorf("rowio: unsupported column type %v", w.specs[i].Type)
	}
	return nil
}

// Create freezes every column payload (trimmed to row+1 rows) and
// assembles a Table, matching spec.md §4.8's "create() freezes and returns
// a table".
func (w *RowWriter) Create() (*table.Table, error) {
	if w.frozen {
		return nil, ErrWriterFrozen
	}
	w.frozen = true
	n := w.row + 1
	b := table.NewBuilder()
	for i, s := range w.specs {
		var col *column.Column
		switch s.Type {
		case column.Real:
			col = column.NewDenseReal(trimDoubles(w.doubles[i], n))
		case column.Int53:
			col = column.NewDenseInt53(trimDoubles(w.doubles[i], n))
		case column.TimeOfDay:
			col = column.NewDenseTimeOfDay(trimTimeOfDay(w.doubles[i], n))
		case column.DateTime:
			var nanos []uint32
			if w.nanos[i] != nil {
				nanos = trimUint32(w.nanos[i], n)
			}
			col = column.NewDenseDateTime(trimSeconds(w.seconds[i], n), nanos)
		case column.Nominal:
			col = column.NewDenseNominal(trimUint32(w.nomRaw[i], n), w.nomDict[i])
		case column.CategoricalCustom:
			d, raw := internCustomDict(w.objs[i][:n])
			col = column.NewDenseCategoricalCustom(raw, d)
		case column.Object:
			col = column.NewDenseObject(trimAny(w.objs[i], n), s.Comparator)
		}
		if err := b.AddColumn(s.Label, col); err != nil {
			return nil, err
		}
	}
	return b.Build()
}

func trimDoubles(s []float64, n int) []float64 {
	if len(s) < n {
		s = growDoubles(s, n, true)
	}
	return s[:n]
}

func trimTimeOfDay(s []float64, n int) []int64 {
	out := make([]int64, n)
	for i := 0; i < n; i++ {
		if i >= len(s) || math.IsNaN(s[i]) {
			out[i] = math.MaxInt64
		} else {
			out[i] = int64(s[i])
		}
	}
	return out
}

func trimSeconds(s []int64, n int) []int64 {
	if len(s) < n {
		s = growSeconds(s, n, true)
	}
	return s[:n]
}

func trimUint32(s []uint32, n int) []uint32 {
	if len(s) < n {
		s = growUint32(s, n)
	}
	return s[:n]
}

func trimAny(s []any, n int) []any {
	if len(s) < n {
		s = growAny(s, n)
	}
	return s[:n]
}

func internCustomDict(values []any) (*dict.Dict[any], []uint32) {
	d := dict.New[any]()
	raw := make([]uint32, len(values))
	for i, v := range values {
		if v == nil {
			continue
		}
		raw[i] = uint32(d.Intern(v))
	}
	return d, raw
}
