package cache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	lookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_lookups_total",
			Help: "Cache lookups by tier and result",
		},
		[]string{"tier", "result"},
	)

	tierErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_tier_errors_total",
			Help: "Cache tier operation failures",
		},
		[]string{"tier", "op"},
	)

	loadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_loads_total",
			Help: "Value computations triggered by misses and warm-up",
		},
		[]string{"source", "result"},
	)

	distributedUp = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cache_distributed_active",
			Help: "1 if the distributed tier serves cache operations, 0 in fallback-only mode",
		},
	)
)
