package quiver

import "github.com/23skdu/quiver/internal/metrics"

// tryReclaim decides what to do with the node a pop just unlinked (nil if
// the stack was empty) and decrements activePops exactly once on every
// path.
//
// The active-pop counter is an approximate sole-writer detector. Freeing is
// allowed only when this call observes itself as the single pop in flight
// and re-confirms, after decrementing, that nobody entered in between. That
// monotonically shrinking recheck window is the whole correctness argument;
// under sustained pop concurrency nothing is freed and the pending list
// grows, which is the accepted trade-off of this scheme.
func (s *Stack[T]) tryReclaim(unlinked *node[T]) {
	if s.activePops.Load() == 1 {
		// Sole pop in flight at this instant: nobody else can hold a
		// reference to the node we just unlinked.
		if unlinked != nil {
			s.free(unlinked, "immediate")
		}
		batch := s.pending.Swap(nil)
		if s.activePops.Add(-1) == 0 {
			// No pop entered during the swap; the batch is ours to free.
			s.freeList(batch)
		} else if batch != nil {
			// Another pop slipped in and may reference batch nodes.
			// Put the whole batch back; it stays pending.
			s.splicePending(batch)
			metrics.PendingRepublishedTotal.Inc()
		}
		return
	}

	// At least one other pop is in flight and may still dereference the
	// node we unlinked. Park it on the pending list instead of freeing.
	if unlinked != nil {
		s.spliceRange(unlinked, unlinked)
		metrics.NodesDeferredTotal.Inc()
	}
	s.activePops.Add(-1)
}

// splicePending publishes a whole chain of nodes onto the pending list.
func (s *Stack[T]) splicePending(first *node[T]) {
	last := first
	for next := last.next.Load(); next != nil; next = last.next.Load() {
		last = next
	}
	s.spliceRange(first, last)
}

// spliceRange atomically prepends the chain [first..last] onto the pending
// list with the same CAS retry pattern as Push, so no node is lost even
// against a concurrent splice.
func (s *Stack[T]) spliceRange(first, last *node[T]) {
	for {
		head := s.pending.Load()
		last.next.Store(head)
		if s.pending.CompareAndSwap(head, first) {
			return
		}
	}
}

// freeList returns an entire detached chain to the free list. Only called
// from the proven-quiescent path of tryReclaim, or with chains no other
// goroutine can reach.
func (s *Stack[T]) freeList(n *node[T]) {
	for n != nil {
		next := n.next.Load()
		s.free(n, "batch")
		n = next
	}
}

func (s *Stack[T]) free(n *node[T], path string) {
	n.next.Store(nil)
	s.nodes.Put(n)
	metrics.NodesReclaimedTotal.WithLabelValues(path).Inc()
}
