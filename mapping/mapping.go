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

// Package mapping implements the "apply an index permutation to any column
// payload" utility of spec.md §2/§4.1: logical row i of the mapped result
// equals src[perm[i]], or a caller-supplied missing value when
// perm[i] is out of [0, len(src)).
package mapping

// OutOfRange is the sentinel a permutation entry uses to mean "missing at
// this row" rather than an index into the underlying payload.
const OutOfRange = -1

// Apply builds a new slice of len(perm) where element i is src[perm[i]],
// or missing if perm[i] is negative or >= len(src).
func Apply[T any](src []T, perm []int, missing T) []T {
	out := make([]T, len(perm))
	n := len(src)
	for i, p := range perm {
		if p < 0 || p >= n {
			out[i] = missing
		} else {
			out[i] = src[p]
		}
	}
	return out
}

// IsMissing reports whether a permutation entry refers outside [0,n).
func IsMissing(p, n int) bool {
	return p < 0 || p >= n
}

// Compose collapses mapping-then-mapping into a single mapping, per
// spec.md §4.1 ("mapping-then-mapping collapses into one mapping"): the
// result's row i equals inner[outer[i]], or OutOfRange if outer[i] is
// itself out of range for inner.
func Compose(outer, inner []int) []int {
	out := make([]int, len(outer))
	n := len(inner)
	for i, o := range outer {
		if o < 0 || o >= n {
			out[i] = OutOfRange
			continue
		}
		out[i] = inner[o]
	}
	return out
}
