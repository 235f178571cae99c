// Package metrics exposes the payment counters served on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CheckoutSessionsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_sessions_created_total",
		Help: "Checkout sessions created, labelled by provider.",
	}, []string{"provider"})

	CheckoutFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_failures_total",
		Help: "Checkout attempts rejected or failed, labelled by reason.",
	}, []string{"reason"})

	VerificationResults = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "payment_verification_results_total",
		Help: "Payment verification outcomes, labelled by provider and status.",
	}, []string{"provider", "status"})

	WebhooksReceived = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "payment_webhooks_received_total",
		Help: "Gateway postbacks received, labelled by outcome.",
	}, []string{"outcome"})
)
