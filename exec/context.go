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
	"sync"
)

// Context is a handle to an execution pool carrying a parallelism level and
// an active flag, per spec.md §4.5/GLOSSARY.
type Context struct {
	pool        *Pool
	parallelism int
}

var (
	defaultOnce sync.Once
	defaultPool *Pool
)

// defaultContextPool lazily constructs the process-wide default pool, sized
// to GOMAXPROCS, mirroring the teacher's lazily-initialized thread pools.
func defaultContextPool() *Pool {
	defaultOnce.Do(func() {
		defaultPool = NewPool(0)
	})
	return defaultPool
}

// Default returns a Context bound to the process-wide default pool.
func Default() *Context {
	p := defaultContextPool()
	return &Context{pool: p, parallelism: p.Parallelism()}
}

// NewContext returns a Context bound to a freshly constructed pool with the
// given number of workers (<=0 uses GOMAXPROCS). Callers own the pool's
// lifetime and must call Close when done (Shutdown only stops new
// submissions; Close also stops the workers).
func NewContext(workers int) *Context {
	p := NewPool(workers)
	return &Context{pool: p, parallelism: p.Parallelism()}
}

// Parallelism returns the context's worker count.
func (c *Context) Parallelism() int { return c.parallelism }

// Active reports whether the bound pool currently accepts submissions.
func (c *Context) Active() bool { return c.pool.Active() }

// Shutdown flips the bound pool's active flag false. Already-running tasks
// continue; new submissions (from this context or any other bound to the
// same pool) fail ErrContextInactive.
func (c *Context) Shutdown() { c.pool.Shutdown() }

// Close stops the bound pool's workers and waits for them to exit. Only
// appropriate for contexts created with NewContext -- never call it on the
// Default() context, which is process-wide shared state.
func (c *Context) Close() { c.pool.Close() }
