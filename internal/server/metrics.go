package server

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"palette-studio/internal/ui"
)

var (
	// MetricPalettesGenerated counts palette regenerations across sessions
	MetricPalettesGenerated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "palettestudio_palettes_generated_total",
		Help: "Total palettes generated from a base color",
	})

	// MetricShadesGenerated counts shade sets by palette position
	MetricShadesGenerated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "palettestudio_shades_generated_total",
		Help: "Total shade sets generated by palette index",
	}, []string{"index"})

	// MetricHexRejected counts hex inputs ignored as invalid
	MetricHexRejected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "palettestudio_hex_rejected_total",
		Help: "Total hex base colors rejected by validation",
	})

	// MetricCopies counts copy payloads served
	MetricCopies = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "palettestudio_copies_total",
		Help: "Total copy requests by target and format",
	}, []string{"target", "format"})

	// MetricActiveSessions tracks live studios
	MetricActiveSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "palettestudio_active_sessions",
		Help: "Current number of session studios",
	})

	// MetricSessionsRejected counts sessions refused at capacity or by rate limit
	MetricSessionsRejected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "palettestudio_sessions_rejected_total",
		Help: "Total new sessions rejected by the store limit or the per-IP rate limit",
	})

	// MetricRequestDuration tracks API latency by route
	MetricRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "palettestudio_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: []float64{.0005, .001, .0025, .005, .01, .025, .05, .1},
	}, []string{"route"})
)

// MetricsServer wraps the HTTP server for prometheus metrics
type MetricsServer struct {
	server *http.Server
}

// NewMetricsServer creates a new metrics server
func NewMetricsServer(addr string) *MetricsServer {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	return &MetricsServer{
		server: &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// Start begins serving metrics (non-blocking)
func (m *MetricsServer) Start() {
	go func() {
		if err := m.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			ui.LogStatus("error", "Metrics server error: "+err.Error())
		}
	}()
}

// Shutdown gracefully stops the metrics server
func (m *MetricsServer) Shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return m.server.Shutdown(shutdownCtx)
}
