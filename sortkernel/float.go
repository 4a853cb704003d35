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

import "math"

// SortFloat64Asc returns an index permutation that sorts keys ascending,
// per spec.md §4.7/§8:
//   - all non-NaN values precede all NaN values, each partition keeping the
//     input's relative order where keys compare equal (stability);
//   - within the sorted non-NaN run of values numerically equal to zero,
//     -0 precedes +0.
func SortFloat64Asc(keys []float64) []int {
	return sortFloat64(keys, true)
}

// SortFloat64Desc returns an index permutation that sorts keys descending:
// NaNs placed at the front, and within the zero run +0 precedes -0.
func SortFloat64Desc(keys []float64) []int {
	return sortFloat64(keys, false)
}

func sortFloat64(keys []float64, ascending bool) []int {
	n := len(keys)
	nonNaN := make([]int, 0, n)
	nan := make([]int, 0)
	for i, k := range keys {
		if math.IsNaN(k) {
			nan = append(nan, i)
		} else {
			nonNaN = append(nonNaN, i)
		}
	}

	var less Less
	if ascending {
		less = func(a, b int) bool { return keys[a] < keys[b] }
	} else {
		less = func(a, b int) bool { return keys[a] > keys[b] }
	}
	HybridSort(nonNaN, 0, len(nonNaN), less, nil)
	fixupSignedZero(keys, nonNaN, ascending)

	out := make([]int, 0, n)
	if ascending {
		out = append(out, nonNaN...)
		out = append(out, nan...)
	} else {
		out = append(out, nan...)
		out = append(out, nonNaN...)
	}
	return out
}

// fixupSignedZero re-partitions the contiguous run of entries numerically
// equal to zero so that -0 precedes +0 under ascending order (and the
// reverse under descending), per spec.md §4.7/§8. The default float
// comparator treats -0 == +0, so the hybrid sort above leaves their
// relative order unspecified; this pass makes it deterministic without
// touching any non-zero entry.
func fixupSignedZero(keys []float64, sortedIdx []int, ascending bool) {
	start := -1
	for i, idx := range sortedIdx {
		if keys[idx] == 0 {
			if start < 0 {
				start = i
			}
		} else if start >= 0 {
			partitionZeroRun(keys, sortedIdx[start:i], ascending)
			start = -1
		}
	}
	if start >= 0 {
		partitionZeroRun(keys, sortedIdx[start:], ascending)
	}
}

func partitionZeroRun(keys []float64, run []int, ascending bool) {
	negWantsFirst := ascending
	var neg, pos []int
	for _, idx := range run {
		if math.Signbit(keys[idx]) {
			neg = append(neg, idx)
		} else {
			pos = append(pos, idx)
		}
	}
	k := 0
	if negWantsFirst {
		k += copy(run[k:], neg)
		copy(run[k:], pos)
	} else {
		k += copy(run[k:], pos)
		copy(run[k:], neg)
	}
}
