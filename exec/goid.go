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

package exec

import (
	"bytes"
	"runtime"
	"strconv"
)

// goid extracts the running goroutine's numeric id from its stack trace
// header ("goroutine 123 [running]:"). It is used only to answer "is the
// calling goroutine currently executing as a worker of this pool", the
// condition spec.md §4.5 rule 4 needs to fork+join nested Call invocations
// inline instead of re-submitting them (which would deadlock a saturated
// pool). This is an identity check, not a hot-path operation -- it runs
// once per Call and once per callable submitted to the pool.
func goid() int64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	b := buf[:n]
	const prefix = "goroutine "
	if !bytes.HasPrefix(b, []byte(prefix)) {
		return -1
	}
	b = b[len(prefix):]
	sp := bytes.IndexByte(b, ' ')
	if sp < 0 {
		return -1
	}
	id, err := strconv.ParseInt(string(b[:sp]), 10, 64)
	if err != nil {
		return -1
	}
	return id
}
