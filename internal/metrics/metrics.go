// Package metrics exports scroller activity to Prometheus.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/Akashdeep-Patra/lazyscroll/internal/scroller"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector implements scroller.Observer on a private registry.
type Collector struct {
	registry *prometheus.Registry

	passes       prometheus.Counter
	tilesAdded   prometheus.Counter
	tilesRemoved prometheus.Counter
	renderErrors prometheus.Counter
	windowSize   prometheus.Gauge
	passDuration prometheus.Histogram
}

// Compile-time check that Collector implements scroller.Observer.
var _ scroller.Observer = (*Collector)(nil)

// NewCollector registers the scroller metrics on a fresh registry.
func NewCollector() *Collector {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	return &Collector{
		registry: reg,
		passes: f.NewCounter(prometheus.CounterOpts{
			Namespace: "lzs",
			Name:      "reconcile_passes_total",
			Help:      "Reconciliation passes that changed the window.",
		}),
		tilesAdded: f.NewCounter(prometheus.CounterOpts{
			Namespace: "lzs",
			Name:      "tiles_added_total",
			Help:      "Tiles attached to the window, placeholders included.",
		}),
		tilesRemoved: f.NewCounter(prometheus.CounterOpts{
			Namespace: "lzs",
			Name:      "tiles_removed_total",
			Help:      "Tiles detached from the window.",
		}),
		renderErrors: f.NewCounter(prometheus.CounterOpts{
			Namespace: "lzs",
			Name:      "render_errors_total",
			Help:      "Tiles the renderer failed to produce.",
		}),
		windowSize: f.NewGauge(prometheus.GaugeOpts{
			Namespace: "lzs",
			Name:      "window_tiles",
			Help:      "Tiles currently materialized.",
		}),
		passDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: "lzs",
			Name:      "reconcile_duration_seconds",
			Help:      "Time spent in one reconciliation pass.",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 8),
		}),
	}
}

// Registry exposes the underlying registry.
func (c *Collector) Registry() *prometheus.Registry { return c.registry }

func (c *Collector) ObserveReconcile(p scroller.Plan, windowLen int, elapsed time.Duration) {
	c.passes.Inc()
	c.tilesAdded.Add(float64(len(p.Append) + len(p.Prepend)))
	c.tilesRemoved.Add(float64(len(p.Remove)))
	c.windowSize.Set(float64(windowLen))
	c.passDuration.Observe(elapsed.Seconds())
}

func (c *Collector) ObserveRenderError(int, error) {
	c.renderErrors.Inc()
}

// Serve exposes /metrics on addr until ctx is cancelled.
func (c *Collector) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{}))
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
