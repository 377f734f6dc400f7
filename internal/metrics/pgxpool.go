package metrics

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
)

// RegisterPgxPoolMetrics exposes pgx connection pool statistics as Prometheus gauges.
func RegisterPgxPoolMetrics(pool *pgxpool.Pool) {
	gauge := func(name, help string, value func() float64) prometheus.GaugeFunc {
		return prometheus.NewGaugeFunc(prometheus.GaugeOpts{Name: name, Help: help}, value)
	}

	prometheus.MustRegister(
		gauge("pgxpool_acquired_conns", "Number of currently acquired connections in the pool", func() float64 {
			return float64(pool.Stat().AcquiredConns())
		}),
		gauge("pgxpool_idle_conns", "Number of idle connections in the pool", func() float64 {
			return float64(pool.Stat().IdleConns())
		}),
		gauge("pgxpool_total_conns", "Total number of connections in the pool", func() float64 {
			return float64(pool.Stat().TotalConns())
		}),
		gauge("pgxpool_max_conns", "Maximum number of connections in the pool", func() float64 {
			return float64(pool.Stat().MaxConns())
		}),
	)
}
