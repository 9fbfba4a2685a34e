package observability

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Request outcomes recorded by CatalogRequests.
const (
	OutcomeCreated  = "created"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
)

var (
	// CatalogRequests counts catalog creation requests by entity and outcome.
	CatalogRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "catalogseed_catalog_requests_total",
		Help: "Total number of catalog creation requests by entity and outcome",
	}, []string{"entity", "outcome"})

	// CatalogRequestDuration records catalog request latency by entity.
	CatalogRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "catalogseed_catalog_request_duration_seconds",
		Help:    "Catalog request latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"entity"})

	// ProductsCreated is the number of products created by the current run.
	ProductsCreated = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "catalogseed_products_created",
		Help: "Products successfully created by the current seeding run",
	})
)

// TrackRequest returns a function that records the request latency and
// outcome when called.
func TrackRequest(entity string) func(outcome string) {
	start := time.Now()
	return func(outcome string) {
		CatalogRequestDuration.WithLabelValues(entity).Observe(time.Since(start).Seconds())
		CatalogRequests.WithLabelValues(entity, outcome).Inc()
	}
}

// ServeMetrics exposes the default registry on addr until ctx is done.
func ServeMetrics(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
