// Package metrics exposes the Prometheus scrape endpoint and process-level
// instruments. Module-specific instruments live next to their modules.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler serves the default registry for scraping.
func Handler() http.Handler {
	return promhttp.Handler()
}

// BuildInfo publishes the running version as a labeled gauge.
func BuildInfo(version string) {
	promauto.NewGauge(prometheus.GaugeOpts{
		Name:        "vigil_build_info",
		Help:        "Build metadata for the running binary",
		ConstLabels: prometheus.Labels{"version": version},
	}).Set(1)
}
