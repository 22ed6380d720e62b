package pool

import (
	"sync"

	"github.com/23skdu/quiver/internal/metrics"
)

// Pool is a typed sync.Pool used as the stack's node free list. Reclaimed
// node shells are Put here and handed back out by Get, reducing allocation
// pressure in the push hot path.
type Pool[T any] struct {
	pool sync.Pool
}

// New creates a pool that falls back to newFn when empty.
func New[T any](newFn func() *T) *Pool[T] {
	return &Pool[T]{
		pool: sync.Pool{
			New: func() any {
				return newFn()
			},
		},
	}
}

// Get retrieves a shell from the pool, allocating if none is cached.
func (p *Pool[T]) Get() *T {
	metrics.NodePoolOperations.WithLabelValues("get").Inc()
	return p.pool.Get().(*T)
}

// Put returns a shell to the pool. The caller must have cleared any
// references the shell holds.
func (p *Pool[T]) Put(v *T) {
	if v != nil {
		metrics.NodePoolOperations.WithLabelValues("put").Inc()
		p.pool.Put(v)
	}
}
