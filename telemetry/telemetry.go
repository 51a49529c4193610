package telemetry

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bartossh/addrgen/address"
)

// Config holds configuration of the telemetry server.
type Config struct {
	Address string `yaml:"address"` // listen address of the /metrics endpoint, server is disabled when empty
}

// Creator creates new addresses.
type Creator interface {
	Create() (address.Address, error)
}

// Metrics holds address generation collectors.
type Metrics struct {
	created  prometheus.Counter
	failures prometheus.Counter
	duration prometheus.Histogram
}

// NewMetrics creates and registers address generation collectors.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		created: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "addrgen_addresses_created_total",
			Help: "The total number of created addresses",
		}),
		failures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "addrgen_address_failures_total",
			Help: "The total number of failed address creations",
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "addrgen_address_generation_seconds",
			Help:    "Time spent on creating single address",
			Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10),
		}),
	}
	for _, c := range []prometheus.Collector{m.created, m.failures, m.duration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

type instrumented struct {
	next Creator
	m    *Metrics
}

// Instrument wraps the creator so each call is recorded in metrics.
func Instrument(c Creator, m *Metrics) Creator {
	return instrumented{next: c, m: m}
}

func (i instrumented) Create() (address.Address, error) {
	start := time.Now()
	a, err := i.next.Create()
	i.m.duration.Observe(time.Since(start).Seconds())
	if err != nil {
		i.m.failures.Inc()
		return a, err
	}
	i.m.created.Inc()
	return a, nil
}

// Run starts server with prometheus telemetry endpoint serving metrics gathered by g.
// This functions blocks. To stop cancel ctx.
func Run(ctx context.Context, cfg Config, g prometheus.Gatherer) error {
	if cfg.Address == "" {
		<-ctx.Done()
		return nil
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
	srv := http.Server{Addr: cfg.Address, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
