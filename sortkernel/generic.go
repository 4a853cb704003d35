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

import "golang.org/x/exp/constraints"

// SortIntAsc/SortIntDesc sort integer keys using the same hybrid algorithm,
// without NaN or signed-zero handling (neither concept applies to integers).
func SortIntAsc[T constraints.Integer](keys []T) []int {
	idx := Identity(len(keys))
	HybridSort(idx, 0, len(idx), func(a, b int) bool { return keys[a] < keys[b] }, nil)
	return idx
}

func SortIntDesc[T constraints.Integer](keys []T) []int {
	idx := Identity(len(keys))
	HybridSort(idx, 0, len(idx), func(a, b int) bool { return keys[a] > keys[b] }, nil)
	return idx
}

// SortWithComparator sorts an index array [0,n) with a caller-supplied
// comparator and copies the result into a plain []int, per spec.md §4.7's
// "generic variant sorts an index array with a supplied comparator and
// copies to primitive result".
func SortWithComparator(n int, less Less) []int {
	idx := Identity(n)
	HybridSort(idx, 0, len(idx), less, nil)
	result := make([]int, n)
	copy(result, idx)
	return result
}
