// Package metrics exposes prometheus collectors for the ingestion path.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	IngestsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "aether_ingests_total",
		Help: "Total number of accepted ingest requests",
	})
	IngestsRejectedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "aether_ingests_rejected_total",
		Help: "Total number of rejected ingest requests",
	}, []string{"reason"})
	ReadingsPersistedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "aether_readings_persisted_total",
		Help: "Total number of readings appended to the store",
	})
)

func init() {
	prometheus.MustRegister(IngestsTotal, IngestsRejectedTotal, ReadingsPersistedTotal)
}

// Handler returns the prometheus scrape handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
