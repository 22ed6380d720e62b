package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// =============================================================================
// Stack Operation Metrics
// =============================================================================

var (
	// PushesTotal counts successful push operations
	PushesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "quiver_pushes_total",
			Help: "Total number of values pushed onto stacks",
		},
	)

	// PopsTotal counts pop operations by outcome
	PopsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quiver_pops_total",
			Help: "Total number of pop operations by result",
		},
		[]string{"result"}, // "hit" | "empty"
	)
)

// =============================================================================
// Reclamation Metrics
// =============================================================================

var (
	// NodesReclaimedTotal counts node shells returned to the free list,
	// by reclamation path
	NodesReclaimedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quiver_nodes_reclaimed_total",
			Help: "Total node shells freed, by reclamation path",
		},
		[]string{"path"}, // "immediate" | "batch"
	)

	// NodesDeferredTotal counts nodes parked on the pending-deletion list
	// because another pop was in flight
	NodesDeferredTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "quiver_nodes_deferred_total",
			Help: "Total nodes whose deletion was deferred to the pending list",
		},
	)

	// PendingRepublishedTotal counts pending batches put back after a
	// failed quiescence recheck
	PendingRepublishedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "quiver_pending_republished_total",
			Help: "Total pending batches republished because a pop entered during reclamation",
		},
	)

	// NodePoolOperations tracks free-list traffic
	NodePoolOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quiver_node_pool_operations_total",
			Help: "Total node free-list operations",
		},
		[]string{"op"}, // "get" | "put"
	)
)
