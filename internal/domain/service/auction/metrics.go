package auction

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

//nolint:gochecknoglobals
var (
	bidsAccepted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "auction_engine",
		Name:      "bids_accepted_total",
		Help:      "Bids that passed the pipeline and committed.",
	})

	bidsRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "auction_engine",
		Name:      "bids_rejected_total",
		Help:      "Bids rejected by validation or the eligibility gate.",
	}, []string{"code"})

	commitConflicts = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "auction_engine",
		Name:      "bid_commit_conflicts_total",
		Help:      "Optimistic-concurrency races lost by a bid commit.",
	})

	lifecycleTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "auction_engine",
		Name:      "lifecycle_transitions_total",
		Help:      "Applied auction status transitions.",
	}, []string{"to"})
)
