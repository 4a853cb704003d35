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

package dict

import "fmt"

// RemoveMode selects between the two strategies of
// RemoveUnusedDictionaryValues in spec.md §4.2.
type RemoveMode int

const (
	// Compact drops unused entries and renumbers the remaining ones
	// sequentially starting at 1.
	Compact RemoveMode = iota
	// Remove drops unused entries but keeps the raw indices of the
	// remaining entries unchanged, leaving gaps.
	Remove
)

// ChangeDictionary replaces src's dictionary with template's. The returned
// translation maps a raw index under src to its raw index under the
// returned dictionary (a clone of template); any src value absent from
// template translates to 0 (missing).
func ChangeDictionary[T comparable](src, template *Dict[T]) (*Dict[T], []int) {
	out := template.clone()
	inv := template.CreateInverse()
	translate := make([]int, src.Len())
	for i, v := range src.values {
		if v == nil {
			continue
		}
		if newIdx, ok := inv.Get(*v); ok {
			translate[i] = newIdx
		}
		// else translate[i] stays 0 == missing
	}
	return out, translate
}

// MergeDictionary produces a dictionary whose prefix equals template's
// dictionary and whose suffix appends values present only in src, and a
// translation from src's raw indices to the merged dictionary's indices.
// The boolean property (see ToBoolean) survives only if the merge
// introduces no third distinct value -- callers are responsible for
// re-checking BoolDict eligibility after a merge.
func MergeDictionary[T comparable](src, template *Dict[T]) (*Dict[T], []int) {
	out := template.clone()
	inv := out.CreateInverse()
	translate := make([]int, src.Len())
	for i, v := range src.values {
		if v == nil {
			continue
		}
		if idx, ok := inv.Get(*v); ok {
			translate[i] = idx
			continue
		}
		idx := out.Intern(*v)
		translate[i] = idx
		// keep the inverse snapshot in sync for subsequent lookups in
		// this same pass (Intern's own linear scan already handles
		// dedup within out, but Inverse.m must track the new entry).
		inv.m[*v] = idx
	}
	return out, translate
}

// RemoveUnusedDictionaryValues drops entries not referenced by usedRaw (the
// set of raw indices actually appearing in a column's data) according to
// mode, returning the new dictionary and a translation from old raw index
// to new raw index (0 for dropped entries).
func RemoveUnusedDictionaryValues[T comparable](d *Dict[T], usedRaw []int, mode RemoveMode) (*Dict[T], []int) {
	used := make([]bool, d.Len())
	for _, r := range usedRaw {
		if r >= 0 && r < len(used) {
			used[r] = true
		}
	}
	translate := make([]int, d.Len())
	switch mode {
	case Remove:
		out := &Dict[T]{values: make([]*T, d.Len())}
		for i, v := range d.values {
			if i == 0 {
				continue
			}
			if v != nil && used[i] {
				out.values[i] = v
				translate[i] = i
			}
		}
		return out, translate
	default: // Compact
		out := New[T]()
		for i, v := range d.values {
			if i == 0 || v == nil || !used[i] {
				continue
			}
			newIdx := out.Intern(*v)
			translate[i] = newIdx
		}
		return out, translate
	}
}

// CompactDictionary closes gaps in indices, renumbering all occupied
// entries sequentially. It is the identity (returns an equal dictionary and
// an identity translation) if d has no gaps.
func CompactDictionary[T comparable](d *Dict[T]) (*Dict[T], []int) {
	allUsed := make([]int, 0, d.Size())
	for i, v := range d.values {
		if i > 0 && v != nil {
			allUsed = append(allUsed, i)
		}
	}
	return RemoveUnusedDictionaryValues(d, allUsed, Compact)
}

// ReplaceSingleInDictionary replaces the entry holding old with new,
// failing ErrIllegalReplacement if new is already present elsewhere in the
// dictionary.
func ReplaceSingleInDictionary[T comparable](d *Dict[T], old, new T) (*Dict[T], error) {
	return ReplaceInDictionary(d, map[T]T{old: new})
}

// ReplaceInDictionary applies a batch rename simultaneously: every current
// value is looked up once in rename (values absent from it keep their
// name), so permutations and cycles among existing values (e.g. {a:b, b:a})
// and chains (e.g. {a:b, b:c}) are supported. The result is independent of
// map iteration order. Fails ErrIllegalReplacement if two distinct entries
// would end up with the same value -- two sources renamed onto one target,
// or a source renamed onto a value that is present and not itself renamed
// away.
func ReplaceInDictionary[T comparable](d *Dict[T], rename map[T]T) (*Dict[T], error) {
	resolve := func(v T) T {
		if next, ok := rename[v]; ok {
			return next
		}
		return v
	}

	finalOf := make(map[int]T, d.Size())
	domain := 0
	for i, v := range d.values {
		if i == 0 || v == nil {
			continue
		}
		domain++
		finalOf[i] = resolve(*v)
	}

	codomain := make(map[T]bool, domain)
	for _, v := range finalOf {
		codomain[v] = true
	}
	if len(codomain) != domain {
		return nil, fmt.Errorf("%w: rename collapses distinct values onto one target", ErrIllegalReplacement)
	}

	out := &Dict[T]{values: make([]*T, d.Len())}
	for i, v := range finalOf {
		vv := v
		out.values[i] = &vv
	}
	return out, nil
}
