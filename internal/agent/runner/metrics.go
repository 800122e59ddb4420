package runner

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	turnsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "agent_turns_total",
		Help: "Agent turns by agent and outcome.",
	}, []string{"agent", "outcome"})

	toolCallsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "agent_tool_calls_total",
		Help: "Function tool calls by agent, tool and outcome.",
	}, []string{"agent", "tool", "outcome"})

	turnSteps = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "agent_turn_steps",
		Help:    "Model calls needed to answer one turn.",
		Buckets: prometheus.LinearBuckets(1, 1, DefaultMaxSteps),
	}, []string{"agent"})
)
