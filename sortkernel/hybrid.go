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

// Package sortkernel implements the indirect, stable sorting kernel of
// spec.md §4.7/§8: a merge+insertion hybrid over an index array (insertion
// sort below a small threshold, otherwise split-recurse-merge), with the
// NaN-partitioning and signed-zero tie-breaking numeric sorting requires,
// plus a generic-comparator variant. The recursive split/merge shape
// mirrors the teacher's sorting package (single_column_sort_algorithm.go,
// multi_column_sort_algorithm.go), generalized from Ion-typed keys to plain
// comparator functions over an index space.
package sortkernel

// insertionThreshold is the range length at or below which the hybrid
// sort falls back to insertion sort, per spec.md §4.7.
const insertionThreshold = 16

// Less is a strict-weak-order comparator over logical indices.
type Less func(a, b int) bool

// HybridSort stably sorts idx[lo:hi] in place according to less, using
// insertion sort for ranges of length <= 16 and otherwise splitting at the
// highest power-of-two at or below the midpoint, recursing on each half,
// and merging with scratch. scratch must have length >= hi-lo (relative to
// its own use as [0:hi-lo)); pass nil to let HybridSort allocate it.
func HybridSort(idx []int, lo, hi int, less Less, scratch []int) {
	n := hi - lo
	if n <= 1 {
		return
	}
	if scratch == nil {
		scratch = make([]int, n)
	}
	hybridSort(idx, lo, hi, less, scratch)
}

func hybridSort(idx []int, lo, hi int, less Less, scratch []int) {
	n := hi - lo
	if n <= insertionThreshold {
		insertionSort(idx, lo, hi, less)
		return
	}
	split := highestPowerOfTwoAtOrBelow(n / 2)
	mid := lo + split
	hybridSort(idx, lo, mid, less, scratch)
	hybridSort(idx, mid, hi, less, scratch)
	merge(idx, lo, mid, hi, less, scratch)
}

// insertionSort is a classic stable insertion sort: equal elements (per
// less) are never swapped past one another.
func insertionSort(idx []int, lo, hi int, less Less) {
	for i := lo + 1; i < hi; i++ {
		v := idx[i]
		j := i - 1
		for j >= lo && less(v, idx[j]) {
			idx[j+1] = idx[j]
			j--
		}
		idx[j+1] = v
	}
}

// merge stably merges the two already-sorted runs idx[lo:mid) and
// idx[mid:hi) into idx[lo:hi), using scratch[0:hi-lo) as working space.
func merge(idx []int, lo, mid, hi int, less Less, scratch []int) {
	i, j, k := lo, mid, 0
	for i < mid && j < hi {
		// strict less(idx[j], idx[i]) ensures ties favor the left
		// run, preserving input order for equal keys (stability).
		if less(idx[j], idx[i]) {
			scratch[k] = idx[j]
			j++
		} else {
			scratch[k] = idx[i]
			i++
		}
		k++
	}
	for i < mid {
		scratch[k] = idx[i]
		i++
		k++
	}
	for j < hi {
		scratch[k] = idx[j]
		j++
		k++
	}
	copy(idx[lo:hi], scratch[:k])
}

// highestPowerOfTwoAtOrBelow returns the largest power of two <= n, for
// n >= 1.
func highestPowerOfTwoAtOrBelow(n int) int {
	p := 1
	for p*2 <= n {
		p *= 2
	}
	return p
}

// Identity returns [0, 1, ..., n-1], the starting permutation for an
// indirect sort.
func Identity(n int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	return idx
}
