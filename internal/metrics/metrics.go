// Package metrics exposes frame loop and interaction counters in Prometheus format.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"steer-scene/internal/logger"
)

const namespace = "scene"

// Click results recorded by Click.
const (
	ClickAccepted   = "accepted"
	ClickOutOfRange = "out_of_range"
	ClickNoHit      = "no_hit"
)

// Metrics owns its own registry so several loops (tests, simulate runs) never collide on registration.
type Metrics struct {
	registry *prometheus.Registry

	ticks        prometheus.Counter
	tickDuration prometheus.Histogram
	clicks       *prometheus.CounterVec
	pans         *prometheus.CounterVec
	panState     prometheus.Gauge
	entities     prometheus.Gauge
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ticks_total",
			Help:      "Frames run by the loop.",
		}),
		tickDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "tick_duration_seconds",
			Help:      "Wall time spent in one tick, render included.",
			Buckets:   []float64{0.001, 0.002, 0.004, 0.008, 0.016, 0.033, 0.066, 0.1},
		}),
		clicks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "clicks_total",
			Help:      "Target selection clicks by result.",
		}, []string{"result"}),
		pans: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pans_total",
			Help:      "Camera pans started, by direction.",
		}, []string{"direction"}),
		panState: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "camera_panning",
			Help:      "1 while a camera pan is in flight.",
		}),
		entities: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "entities",
			Help:      "Entities managed by the loop.",
		}),
	}
	m.registry.MustRegister(
		m.ticks, m.tickDuration, m.clicks, m.pans, m.panState, m.entities,
		collectors.NewGoCollector(),
	)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// ObserveTick counts one tick that took d.
func (m *Metrics) ObserveTick(d time.Duration) {
	m.ticks.Inc()
	m.tickDuration.Observe(d.Seconds())
}

// Click counts one selection attempt. result is one of the Click* constants.
func (m *Metrics) Click(result string) {
	m.clicks.WithLabelValues(result).Inc()
}

// Pan counts one pan start in the given direction.
func (m *Metrics) Pan(direction string) {
	m.pans.WithLabelValues(direction).Inc()
}

func (m *Metrics) SetPanning(panning bool) {
	if panning {
		m.panState.Set(1)
		return
	}
	m.panState.Set(0)
}

func (m *Metrics) SetEntities(n int) {
	m.entities.Set(float64(n))
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Serve runs a /metrics endpoint on addr until ctx is cancelled.
func (m *Metrics) Serve(ctx context.Context, addr string, log *logger.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Infof("metrics: serving /metrics on %s", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
