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
	"sync"
)

// statCache lazily computes and memoizes the per-column statistics named by
// SPEC_FULL.md §5 (min/max/null-count/distinct-count). Each slot is computed
// at most once, the first time it's asked for, guarded by its own sync.Once
// so concurrent readers from the parallel execution core (exec.Context)
// never race on the same Column.
type statCache struct {
	once [4]sync.Once
	val  [4]float64
}

// statsInitMu guards the lazy allocation of a Column's statCache.
var statsInitMu sync.Mutex

// Stats returns the requested statistic for the column, computing and
// caching it on first access. Min/Max are NaN for an all-missing column;
// NullCount and Distinct are always well-defined.
func (c *Column) Stats(kind StatKind) float64 {
	statsInitMu.Lock()
	if c.stats == nil {
		c.stats = &statCache{}
	}
	s := c.stats
	statsInitMu.Unlock()
	s.once[kind].Do(func() {
		s.val[kind] = c.computeStat(kind)
	})
	return s.val[kind]
}

// StatsOf is the free-function form of Stats, convenient for call sites
// that only hold a *Column via an interface-shaped helper.
func StatsOf(c *Column, kind StatKind) float64 {
	return c.Stats(kind)
}

func (c *Column) computeStat(kind StatKind) float64 {
	switch kind {
	case StatNullCount:
		n := 0
		for i := 0; i < c.size; i++ {
			if c.rowIsMissing(i) {
				n++
			}
		}
		return float64(n)
	case StatDistinct:
		return c.computeDistinct()
	case StatMin, StatMax:
		return c.computeMinMax(kind)
	}
	return math.NaN()
}

func (c *Column) computeMinMax(kind StatKind) float64 {
	if !c.Capabilities().Has(NumericReadable) {
		return math.NaN()
	}
	best := math.NaN()
	for i := 0; i < c.size; i++ {
		v := c.getDouble(i)
		if math.IsNaN(v) {
			continue
		}
		if math.IsNaN(best) {
			best = v
			continue
		}
		if kind == StatMin && v < best {
			best = v
		} else if kind == StatMax && v > best {
			best = v
		}
	}
	return best
}

func (c *Column) computeDistinct() float64 {
	if c.typ == Nominal || c.typ == CategoricalCustom {
		seen := make(map[int32]struct{})
		for i := 0; i < c.size; i++ {
			seen[c.getRaw(i)] = struct{}{}
		}
		delete(seen, 0)
		return float64(len(seen))
	}
	if c.Capabilities().Has(NumericReadable) && !c.Capabilities().Has(ObjectReadable) {
		seen := make(map[float64]struct{})
		for i := 0; i < c.size; i++ {
			v := c.getDouble(i)
			if math.IsNaN(v) {
				continue
			}
			seen[v] = struct{}{}
		}
		return float64(len(seen))
	}
	seen := make(map[any]struct{})
	for i := 0; i < c.size; i++ {
		v := c.getObject(i)
		if v == nil {
			continue
		}
		seen[v] = struct{}{}
	}
	return float64(len(seen))
}
