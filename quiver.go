// Package quiver implements an unbounded lock-free last-in-first-out
// container. Any number of goroutines may Push and Pop concurrently; all
// coordination is done with compare-and-swap retry loops on three atomics
// (the top pointer, an active-pop counter, and a pending-deletion list),
// never with a mutex.
//
// Node shells are recycled through a free list, which is only safe because
// of the deferred-reclamation protocol in reclaim.go: a shell unlinked by
// one goroutine may still be referenced by another that read the old top a
// moment earlier, so it is parked on the pending list until no pop is in
// flight.
package quiver

import (
	"sync/atomic"

	"github.com/23skdu/quiver/internal/metrics"
	"github.com/23skdu/quiver/internal/pool"
)

type node[T any] struct {
	value T
	next  atomic.Pointer[node[T]]
}

// Stack is a lock-free LIFO container. The zero value is not usable; create
// instances with New. Each instance owns its own top pointer, active-pop
// counter, pending list and node free list, so independent stacks never
// contend with each other.
type Stack[T any] struct {
	// top is the head of the singly linked list of live nodes. Following
	// next links from top visits every live element, newest first.
	top atomic.Pointer[node[T]]

	// activePops counts goroutines that have entered Pop and not yet
	// finished needing shared memory. Reclamation waits on it.
	activePops atomic.Int64

	// pending is the head of the deferred-deletion list: nodes unlinked
	// from top that may still be referenced by an in-flight pop.
	pending atomic.Pointer[node[T]]

	nodes *pool.Pool[node[T]]
}

// New creates an empty stack.
func New[T any]() *Stack[T] {
	return &Stack[T]{
		nodes: pool.New(func() *node[T] { return new(node[T]) }),
	}
}

// LockFree reports whether the stack's pointer-sized atomic operations are
// implemented with native hardware compare-and-swap. sync/atomic guarantees
// this on every platform Go supports, so the answer is a compile-time
// constant; it is exposed as a query rather than a construction-time
// diagnostic.
func LockFree() bool {
	return true
}

// Push places v on top of the stack. It never fails and never blocks on
// another goroutine's progress: the only wait is the CAS retry loop, and a
// failed CAS means some other operation succeeded.
func (s *Stack[T]) Push(v T) {
	n := s.nodes.Get()
	n.value = v
	for {
		old := s.top.Load()
		// n is unpublished, so writing its next link is race-free.
		n.next.Store(old)
		if s.top.CompareAndSwap(old, n) {
			metrics.PushesTotal.Inc()
			return
		}
	}
}

// Pop removes and returns the value on top of the stack. The second return
// is false if the stack was empty. If two goroutines race for the last
// element, exactly one gets it and the other sees an empty stack.
func (s *Stack[T]) Pop() (T, bool) {
	// Announce this pop before touching the list; reclamation must not
	// free anything while we might hold a stale reference.
	s.activePops.Add(1)

	var old *node[T]
	for {
		old = s.top.Load()
		if old == nil {
			break
		}
		// old.next cannot be stale here: shells are only recycled in
		// windows where no pop is in flight, and this pop is in flight.
		if s.top.CompareAndSwap(old, old.next.Load()) {
			break
		}
	}

	var v T
	var ok bool
	if old != nil {
		v = old.value
		// Drop the shell's reference to the payload now, so the payload
		// is collectable even if the shell sits on the pending list.
		var zero T
		old.value = zero
		ok = true
		metrics.PopsTotal.WithLabelValues("hit").Inc()
	} else {
		metrics.PopsTotal.WithLabelValues("empty").Inc()
	}

	s.tryReclaim(old)
	return v, ok
}

// Drain pops until the stack is empty, releasing every remaining element
// and, once quiesced, the pending list as well. It is the teardown path:
// the caller must guarantee no other goroutine is using the stack.
func (s *Stack[T]) Drain() {
	for {
		if _, ok := s.Pop(); !ok {
			return
		}
	}
}
