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
	"errors"
	"testing"
	"time"
)

func TestCallEmpty(t *testing.T) {
	c := NewContext(2)
	defer c.Close()
	res, err := c.Call([]Callable{})
	if err != nil || len(res) != 0 {
		t.Fatalf("empty call should return empty, nil: got %v, %v", res, err)
	}
}

func TestCallBadArgument(t *testing.T) {
	c := NewContext(2)
	defer c.Close()
	if _, err := c.Call(nil); !errors.Is(err, ErrBadArgument) {
		t.Fatalf("nil slice should fail ErrBadArgument, got %v", err)
	}
	if _, err := c.Call([]Callable{nil}); !errors.Is(err, ErrBadArgument) {
		t.Fatalf("nil callable should fail ErrBadArgument, got %v", err)
	}
}

func TestCallContextInactive(t *testing.T) {
	c := NewContext(2)
	c.Shutdown()
	if _, err := c.Call([]Callable{func(*Sentinel) (any, error) { return 1, nil }}); !errors.Is(err, ErrContextInactive) {
		t.Fatalf("shutdown context should fail ErrContextInactive, got %v", err)
	}
}

func TestCallOrderPreserved(t *testing.T) {
	c := NewContext(4)
	defer c.Close()
	callables := make([]Callable, 20)
	for i := 0; i < 20; i++ {
		i := i
		callables[i] = func(*Sentinel) (any, error) {
			time.Sleep(time.Duration(20-i) * time.Microsecond)
			return i, nil
		}
	}
	res, err := c.Call(callables)
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	for i, v := range res {
		if v.(int) != i {
			t.Fatalf("result[%d] = %v, want %d", i, v, i)
		}
	}
}

func TestNestedCallTerminatesWithOneWorker(t *testing.T) {
	c := NewContext(1)
	defer c.Close()

	outer := []Callable{
		func(*Sentinel) (any, error) {
			// nested call from within a worker must not deadlock,
			// even though this pool has only one worker.
			inner, err := c.Call([]Callable{
				func(*Sentinel) (any, error) { return 41, nil },
				func(*Sentinel) (any, error) { return 1, nil },
			})
			if err != nil {
				return nil, err
			}
			return inner[0].(int) + inner[1].(int), nil
		},
	}
	done := make(chan struct{})
	var res []any
	var err error
	go func() {
		res, err = c.Call(outer)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("nested call deadlocked")
	}
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	if res[0].(int) != 42 {
		t.Fatalf("got %v, want 42", res[0])
	}
}

func TestCallErrorPropagation(t *testing.T) {
	c := NewContext(2)
	defer c.Close()
	boom := errors.New("boom")
	_, err := c.Call([]Callable{
		func(*Sentinel) (any, error) { return nil, nil },
		func(*Sentinel) (any, error) { return nil, boom },
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom to propagate, got %v", err)
	}
}

func TestCallCancelsSentinelOnSiblingFailure(t *testing.T) {
	c := NewContext(4)
	defer c.Close()
	boom := errors.New("boom")
	observed := make(chan bool, 1)
	_, err := c.Call([]Callable{
		func(*Sentinel) (any, error) {
			return nil, boom
		},
		func(s *Sentinel) (any, error) {
			// Call joins on every callable, so the sibling polls the shared
			// sentinel (bounded) instead of blocking until Call returns.
			deadline := time.Now().Add(2 * time.Second)
			for s.OK() && time.Now().Before(deadline) {
				time.Sleep(time.Millisecond)
			}
			observed <- !s.OK()
			return nil, nil
		},
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom to propagate, got %v", err)
	}
	if !<-observed {
		t.Fatal("sibling callable should observe the sentinel cancelled after a failure")
	}
}
