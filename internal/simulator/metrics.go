package simulator

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for engine-level observability. Registered once via
// promauto on the default registry and exposed by the server's /metrics
// endpoint.
var (
	simulationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "djsim_simulations_total",
		Help: "Total number of circuit simulations, by status",
	}, []string{"status"})

	shotsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "djsim_shots_total",
		Help: "Total number of shots sampled across all simulations",
	})

	simulationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "djsim_simulation_duration_seconds",
		Help:    "Wall-clock duration of circuit simulations",
		Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
	})
)

// observeSimulation records the outcome of one engine run.
func observeSimulation(d time.Duration, shots uint64, err error) {
	status := "success"
	if err != nil {
		status = "error"
	} else {
		shotsTotal.Add(float64(shots))
	}
	simulationsTotal.WithLabelValues(status).Inc()
	simulationDuration.Observe(d.Seconds())
}
