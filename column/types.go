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

// Package column implements the column kernel of spec.md §3/§4.1: a sealed
// set of immutable column representations (dense, sparse, mapped,
// remapped) over the value kinds (real, int53, time, datetime, nominal,
// object, categorical-custom), dispatching on a representation tag rather
// than a class hierarchy, per the redesign note in spec.md §9
// ("Polymorphic column hierarchy -> tagged variant").
package column

import (
	"math"

	"github.com/coltable/coltable/bitmap"
	"github.com/coltable/coltable/dict"
	"github.com/coltable/coltable/packedints"
)

// Type identifies a column's value kind, per spec.md §3.
type Type int

const (
	Real Type = iota
	Int53
	Nominal
	TimeOfDay
	DateTime
	Object
	CategoricalCustom
)

func (t Type) String() string {
	switch t {
	case Real:
		return "real"
	case Int53:
		return "int53"
	case Nominal:
		return "nominal"
	case TimeOfDay:
		return "time"
	case DateTime:
		return "datetime"
	case Object:
		return "object"
	case CategoricalCustom:
		return "categorical-custom"
	default:
		return "unknown"
	}
}

// Capability is a bitmask over the three access capabilities of spec.md §3.
type Capability uint8

const (
	NumericReadable Capability = 1 << iota
	ObjectReadable
	Sortable
)

func (c Capability) Has(c2 Capability) bool { return c&c2 != 0 }

func capabilitiesFor(t Type, hasComparator bool) Capability {
	switch t {
	case Real, Int53:
		return NumericReadable | Sortable
	case Nominal, TimeOfDay:
		c := NumericReadable | ObjectReadable | Sortable
		return c
	case DateTime:
		c := ObjectReadable
		if hasComparator {
			c |= Sortable
		}
		return c
	case Object, CategoricalCustom:
		c := ObjectReadable
		if hasComparator {
			c |= Sortable
		}
		return c
	default:
		return 0
	}
}

// repr is the internal representation tag. Column composes Mapped/Remapped
// over an arbitrary base column, so "remapped+mapped" from spec.md §4.1 is
// simply Mapped{base: Remapped{...}} -- no fifth tag is needed.
type repr int

const (
	reprDense repr = iota
	reprSparse
	reprMapped
	reprRemapped
)

// StatKind identifies a cached statistic slot (SPEC_FULL.md §5).
type StatKind int

const (
	StatMin StatKind = iota
	StatMax
	StatNullCount
	StatDistinct
)

// DateTimeValue is the object representation of a datetime cell: seconds
// since epoch plus an optional nanosecond remainder, per spec.md §3/§6.
type DateTimeValue struct {
	Seconds int64
	Nanos   uint32
}

// Missing sentinels per spec.md §3/§4.1.
const (
	MissingDouble  = math.MaxInt64 // placeholder, unused; see MissingF
	MissingTimeRaw = math.MaxInt64
)

// MissingF returns the double missing sentinel (NaN).
func MissingF() float64 { return math.NaN() }

// Column is the single, tagged column representation. All exported
// operations dispatch on (repr, typ) internally; construction is always
// through the New*/constructors in this package or via buffer.*.ToColumn.
type Column struct {
	typ  Type
	r    repr
	size int
	caps Capability

	// --- dense real/int53 ---
	doubles []float64

	// --- dense time-of-day (int64 nanos-of-day) ---
	times []int64

	// --- dense datetime (seconds + optional nanos) ---
	seconds  []int64
	nanos    []uint32
	hasNanos bool

	// --- dense nominal (categorical-string) ---
	raw        *packedints.Ints
	nominalDct *dict.Dict[string]

	// --- dense categorical-custom ---
	customDct *dict.Dict[any]

	// --- dense object ---
	objects []any
	cmp     func(a, b any) int

	// --- sparse numeric/time ---
	sparseBitmap   *bitmap.Bitmap
	defaultDouble  float64
	defaultTimeRaw int64
	denseSideD     []float64
	denseSideT     []int64

	// --- sparse categorical ---
	defaultRaw  uint32
	denseSideRw *packedints.Ints

	// --- sparse object ---
	defaultObj   any
	denseSideObj []any

	// --- mapped view ---
	base    *Column
	mapping []int

	// --- remapped categorical view ---
	remapBase    *Column
	remapDict    *dict.Dict[string]
	remapOldToNew []int

	stats *statCache
}

// Size returns the column's logical row count.
func (c *Column) Size() int { return c.size }

// Type returns the column's value kind.
func (c *Column) Type() Type { return c.typ }

// Capabilities returns the column's capability set.
func (c *Column) Capabilities() Capability { return c.caps }

// HasComparator reports whether an object column carries a comparator
// (making it sortable).
func (c *Column) HasComparator() bool { return c.cmp != nil }
