// Package metrics exposes Prometheus collectors for the conditions the
// service absorbs instead of failing, and for the repair job that cleans up
// after them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// DegradedReads counts sub-reads that fell back to their default value.
	DegradedReads = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "groupledger",
		Name:      "degraded_reads_total",
		Help:      "Reads that failed and were replaced by a documented default.",
	}, []string{"component"})

	// PaymentSyncFailures counts income transactions whose correlated payment
	// record could not be written.
	PaymentSyncFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "groupledger",
		Name:      "payment_sync_failures_total",
		Help:      "Income transactions stored without their correlated payment record.",
	})

	// AmbiguousPaymentMatches counts deletions that found several legacy
	// payment candidates and flagged them instead of deleting.
	AmbiguousPaymentMatches = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "groupledger",
		Name:      "ambiguous_payment_matches_total",
		Help:      "Transaction deletions whose payment match was ambiguous.",
	})

	// RepairedPayments counts payment records created by the orphan repair job.
	RepairedPayments = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "groupledger",
		Name:      "repaired_payments_total",
		Help:      "Payment records created by the reconciliation job.",
	})
)
