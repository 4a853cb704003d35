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

import "sync/atomic"

// Sentinel is a per-task atomic cancellation flag, per spec.md §4.5/§5.
// Workers poll it between batches; setting it false causes in-flight
// batches to short-circuit at their next checkpoint. Cancellation is
// cooperative, never preemptive.
type Sentinel struct {
	ok int32
}

// NewSentinel returns a sentinel initialized to "not cancelled".
func NewSentinel() *Sentinel {
	return &Sentinel{ok: 1}
}

// OK reports whether the task should keep running.
func (s *Sentinel) OK() bool {
	return atomic.LoadInt32(&s.ok) != 0
}

// Cancel marks the task cancelled. Idempotent.
func (s *Sentinel) Cancel() {
	atomic.StoreInt32(&s.ok, 0)
}
