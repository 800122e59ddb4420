package usecase

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var turnsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "advisory_turns_total",
	Help: "Chat turns handled per lane, by completion status.",
}, []string{"lane", "status"})
