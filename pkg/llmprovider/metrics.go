package llmprovider

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeSuccess = "success"
	outcomeError   = "error"
)

var (
	providerRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "llm_provider_requests_total",
		Help: "LLM provider attempts by provider and outcome.",
	}, []string{"provider", "outcome"})

	providerLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "llm_provider_request_duration_seconds",
		Help:    "Latency of a single LLM provider attempt.",
		Buckets: []float64{0.25, 0.5, 1, 2, 4, 8, 16, 32, 64},
	}, []string{"provider"})
)
