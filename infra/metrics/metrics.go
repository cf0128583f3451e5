// Package metrics records remote-store and realtime activity for Prometheus.
package metrics

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/CrestNiraj12/terminalwall/app"
	"github.com/CrestNiraj12/terminalwall/domain"
)

// Metrics holds the collectors for one process.
type Metrics struct {
	registry      *prometheus.Registry
	requests      *prometheus.CounterVec
	duration      *prometheus.HistogramVec
	notifications prometheus.Counter
}

// New builds a registry with the Go and process collectors plus ours.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "wall_store_requests_total",
			Help: "Remote post store requests by operation and outcome.",
		}, []string{"op", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "wall_store_request_duration_seconds",
			Help:    "Latency of remote post store requests.",
			Buckets: prometheus.DefBuckets,
		}, []string{"op"}),
		notifications: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "wall_change_notifications_total",
			Help: "Change notifications delivered by the realtime subscription.",
		}),
	}
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requests,
		m.duration,
		m.notifications,
	)
	return m
}

func (m *Metrics) observe(op string, start time.Time, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.requests.WithLabelValues(op, outcome).Inc()
	m.duration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

// Serve exposes /metrics on addr until ctx is done.
func (m *Metrics) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 3 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("metrics server: %w", err)
	}
	return nil
}

// Store wraps a PostStore and records every request.
type Store struct {
	next app.PostStore
	m    *Metrics
}

// InstrumentStore decorates next with request metrics.
func (m *Metrics) InstrumentStore(next app.PostStore) *Store {
	return &Store{next: next, m: m}
}

func (s *Store) List(ctx context.Context) ([]domain.Post, error) {
	start := time.Now()
	posts, err := s.next.List(ctx)
	s.m.observe("list", start, err)
	return posts, err
}

func (s *Store) Insert(ctx context.Context, np domain.NewPost) (domain.Post, error) {
	start := time.Now()
	p, err := s.next.Insert(ctx, np)
	s.m.observe("insert", start, err)
	return p, err
}

func (s *Store) Delete(ctx context.Context, id string) error {
	start := time.Now()
	err := s.next.Delete(ctx, id)
	s.m.observe("delete", start, err)
	return err
}

// Feed wraps a ChangeFeed and counts delivered notifications.
type Feed struct {
	next app.ChangeFeed
	m    *Metrics
}

// InstrumentFeed decorates next with a notification counter.
func (m *Metrics) InstrumentFeed(next app.ChangeFeed) *Feed {
	return &Feed{next: next, m: m}
}

func (f *Feed) Subscribe(ctx context.Context) (app.Subscription, error) {
	sub, err := f.next.Subscribe(ctx)
	if err != nil {
		return nil, err
	}
	out := &countingSubscription{
		Subscription: sub,
		events:       make(chan app.ChangeEvent),
		stop:         make(chan struct{}),
	}
	go func() {
		defer close(out.events)
		for ev := range sub.Events() {
			f.m.notifications.Inc()
			select {
			case out.events <- ev:
			case <-out.stop:
				return
			}
		}
	}()
	return out, nil
}

type countingSubscription struct {
	app.Subscription
	events   chan app.ChangeEvent
	stop     chan struct{}
	stopOnce sync.Once
}

func (s *countingSubscription) Events() <-chan app.ChangeEvent { return s.events }

func (s *countingSubscription) Close() error {
	s.stopOnce.Do(func() { close(s.stop) })
	return s.Subscription.Close()
}
