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
	"context"
	"fmt"
	"sync"
)

// Callable is a unit of work submitted to Context.Call. It receives the
// Sentinel shared by every callable in the same Call invocation: a
// long-running callable should poll s.OK() at its own internal batch
// boundaries and return early once it turns false, rather than running to
// completion after a sibling has already failed. A non-nil error return is
// surfaced to the caller unchanged, so an error wrapping ErrAborted is
// surfaced directly (rule 5 of spec.md §4.5); a panic inside the callable
// is converted into an error.
type Callable func(s *Sentinel) (any, error)

// Call runs callables concurrently and returns their results in submission
// order, per spec.md §4.5:
//
//  1. empty input returns empty output immediately.
//  2. a nil slice or a nil entry fails ErrBadArgument.
//  3. an inactive context fails ErrContextInactive.
//  4. if the calling goroutine is already a worker of this pool, the
//     callables run inline (sequentially, on the calling goroutine) instead
//     of being resubmitted -- this is what prevents nested Call invocations
//     from deadlocking a saturated pool.
//  5. all callables in one Call share a single Sentinel; the first error
//     cancels it so siblings can notice and exit at their next checkpoint
//     instead of continuing to completion. Call still waits for every
//     callable to return, then returns the error of the lowest-indexed
//     failing callable unchanged (a cause wrapping ErrAborted is therefore
//     surfaced directly).
func (c *Context) Call(callables []Callable) ([]any, error) {
	return c.callDirect(callables, NewSentinel())
}

// callInline executes callables sequentially on the calling (worker)
// goroutine. It is always deadlock-free, including when Parallelism() == 1,
// satisfying spec.md §8's nested-submission property.
func (c *Context) callInline(callables []Callable, sentinel *Sentinel) ([]any, error) {
	results := make([]any, len(callables))
	for i, cb := range callables {
		v, err := invoke(cb, sentinel)
		if err != nil {
			sentinel.Cancel()
			return nil, err
		}
		results[i] = v
	}
	return results, nil
}

// callSubmitted fans callables out to the pool and joins on all of them,
// preserving submission order in the result slice. The shared sentinel is
// cancelled as soon as any callable fails, so siblings still running can
// exit at their next checkpoint per spec.md §4.5(5); callSubmitted itself
// must still wait for every goroutine it spawned to actually return.
func (c *Context) callSubmitted(callables []Callable, sentinel *Sentinel) ([]any, error) {
	n := len(callables)
	results := make([]any, n)
	errs := make([]error, n)
	var wg sync.WaitGroup
	wg.Add(n)
	for i, cb := range callables {
		i, cb := i, cb
		c.pool.submit(func() {
			defer wg.Done()
			v, err := invoke(cb, sentinel)
			results[i], errs[i] = v, err
			if err != nil {
				sentinel.Cancel()
			}
		})
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}

// CallContext is a context.Context-aware variant of Call: besides the
// normal completion path, it also returns ErrAborted as soon as ctx is
// done. Already-submitted callables keep running in the background (their
// results are discarded), but they share the same Sentinel as any other
// Call, which CallContext cancels before returning so they can notice the
// abort at their next checkpoint instead of running unbounded. This
// generalizes "interruption of the waiting foreground thread" from
// spec.md §4.5/§5 to Go's idiomatic cancellation primitive.
func (c *Context) CallContext(ctx context.Context, callables []Callable) ([]any, error) {
	type outcome struct {
		results []any
		err     error
	}
	sentinel := NewSentinel()
	done := make(chan outcome, 1)
	go func() {
		r, err := c.callDirect(callables, sentinel)
		done <- outcome{r, err}
	}()
	select {
	case o := <-done:
		return o.results, o.err
	case <-ctx.Done():
		sentinel.Cancel()
		return nil, ErrAborted
	}
}

// callDirect is Call's body, parameterized on a caller-supplied sentinel so
// CallContext can retain the ability to cancel it after returning.
func (c *Context) callDirect(callables []Callable, sentinel *Sentinel) ([]any, error) {
	if callables == nil {
		return nil, ErrBadArgument
	}
	if len(callables) == 0 {
		return []any{}, nil
	}
	for _, cb := range callables {
		if cb == nil {
			return nil, ErrBadArgument
		}
	}
	if !c.Active() {
		return nil, ErrContextInactive
	}
	if _, isWorker := c.pool.currentWorkerSlot(); isWorker {
		return c.callInline(callables, sentinel)
	}
	return c.callSubmitted(callables, sentinel)
}

// invoke runs cb, converting a panic into a user-failure error so one
// misbehaving callable can never crash the pool's worker goroutines.
func invoke(cb Callable, sentinel *Sentinel) (v any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("exec: callable panicked: %v", r)
		}
	}()
	return cb(sentinel)
}
