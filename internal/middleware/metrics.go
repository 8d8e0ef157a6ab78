package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// LikeToggles counts like toggle attempts by outcome ("liked", "unliked", "error").
	LikeToggles = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ungatekeep_like_toggles_total",
			Help: "Number of like toggle transitions by resulting state.",
		},
		[]string{"outcome"},
	)

	// RedisErrors counts Redis command failures by command name.
	RedisErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ungatekeep_redis_errors_total",
			Help: "Number of Redis command errors.",
		},
		[]string{"command"},
	)
)

// InitMetrics registers the domain counters and returns the HTTP metrics
// middleware serving request histograms under the given service name.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	prometheus.MustRegister(LikeToggles, RedisErrors)
	return fiberprometheus.New(serviceName)
}
