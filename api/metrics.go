package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	cyclesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "proxographer_cycles_total",
		Help: "The total number of fetch/sample/resolve cycles started",
	})

	cycleFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "proxographer_cycle_failures_total",
		Help: "The total number of cycles skipped because the proxy list download failed",
	})

	rankedProxies = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "proxographer_ranked_proxies",
		Help: "The number of proxies returned by the last ranking",
	})
)
