package cache

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/mirkobrombin/go-recency/v1/engine"
	recerrors "github.com/mirkobrombin/go-recency/v1/errors"
	"github.com/mirkobrombin/go-recency/v1/metrics"
	"github.com/mirkobrombin/go-recency/v1/notify"
)

const tracerName = "github.com/mirkobrombin/go-recency/v1/cache"

// Cache delegates Get and Put to the engine selected for its strategy and
// records hits, misses and evictions around it.
type Cache[K comparable, V any] struct {
	engine   engine.Engine[K, V]
	strategy Strategy
	name     string
	logger   *slog.Logger
	metrics  *metrics.CacheMetrics
	tracer   trace.Tracer
	bus      *notify.Bus[K, V]

	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
}

// Option configures a Cache.
type Option[K comparable, V any] func(*config[K, V])

type config[K comparable, V any] struct {
	name       string
	logger     *slog.Logger
	registerer prometheus.Registerer
	tracing    bool
	provider   trace.TracerProvider
	bus        *notify.Bus[K, V]
}

// WithName sets the name reported in logs, metric labels and spans. The
// default is a random UUID.
func WithName[K comparable, V any](name string) Option[K, V] {
	return func(c *config[K, V]) {
		if name != "" {
			c.name = name
		}
	}
}

// WithLogger sets the logger. The default is slog.Default().
func WithLogger[K comparable, V any](l *slog.Logger) Option[K, V] {
	return func(c *config[K, V]) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMetrics enables Prometheus metrics collection using the provided registerer.
func WithMetrics[K comparable, V any](reg prometheus.Registerer) Option[K, V] {
	return func(c *config[K, V]) {
		c.registerer = reg
	}
}

// WithTracing enables OpenTelemetry tracing for cache operations using the
// global tracer provider.
func WithTracing[K comparable, V any]() Option[K, V] {
	return func(c *config[K, V]) {
		c.tracing = true
	}
}

// WithTracerProvider enables tracing using tp instead of the global provider.
func WithTracerProvider[K comparable, V any](tp trace.TracerProvider) Option[K, V] {
	return func(c *config[K, V]) {
		c.tracing = true
		c.provider = tp
	}
}

// WithEvictionBus publishes every evicted entry on bus.
func WithEvictionBus[K comparable, V any](bus *notify.Bus[K, V]) Option[K, V] {
	return func(c *config[K, V]) {
		c.bus = bus
	}
}

// New returns a Cache backed by the engine registered for strategy.
//
// It fails with ErrInvalidStrategy when reg has no engine for strategy.
func New[K comparable, V any](reg Registry[K, V], strategy Strategy, opts ...Option[K, V]) (*Cache[K, V], error) {
	eng, ok := reg[strategy]
	if !ok || eng == nil {
		return nil, fmt.Errorf("cache: no engine for strategy %s: %w", strategy, recerrors.ErrInvalidStrategy)
	}

	cfg := config[K, V]{name: uuid.NewString(), logger: slog.Default()}
	for _, opt := range opts {
		opt(&cfg)
	}

	c := &Cache[K, V]{
		engine:   eng,
		strategy: strategy,
		name:     cfg.name,
		logger:   cfg.logger,
		bus:      cfg.bus,
	}
	if cfg.registerer != nil {
		c.metrics = metrics.NewCacheMetrics(cfg.registerer, cfg.name)
	}
	if cfg.tracing {
		tp := cfg.provider
		if tp == nil {
			tp = otel.GetTracerProvider()
		}
		c.tracer = tp.Tracer(tracerName)
	}
	if src, ok := eng.(engine.EvictionSource[K, V]); ok {
		src.OnEvict(c.evicted)
	}

	c.logger.Info("recency: cache created", "cache", c.name, "strategy", strategy.String())
	return c, nil
}

// Get returns the value stored for key. The boolean is false when the key is
// absent. A hit counts as a use of the key.
//
// ctx only carries the trace span; Get never blocks.
func (c *Cache[K, V]) Get(ctx context.Context, key K) (V, bool) {
	var span trace.Span
	if c.tracer != nil {
		_, span = c.tracer.Start(ctx, "Cache.Get", trace.WithAttributes(c.spanAttributes()...))
		defer span.End()
	}
	start := time.Now()

	v, ok := c.engine.Get(key)

	c.observe("get", start)
	result := "miss"
	if ok {
		result = "hit"
		c.hits.Add(1)
		if c.metrics != nil {
			c.metrics.Hits.Inc()
		}
	} else {
		c.misses.Add(1)
		if c.metrics != nil {
			c.metrics.Misses.Inc()
		}
	}
	if span != nil {
		span.SetAttributes(attribute.String("recency.cache.result", result))
	}
	return v, ok
}

// Put stores value for key, evicting an entry when the engine is full.
func (c *Cache[K, V]) Put(ctx context.Context, key K, value V) {
	if c.tracer != nil {
		var span trace.Span
		_, span = c.tracer.Start(ctx, "Cache.Put", trace.WithAttributes(c.spanAttributes()...))
		defer span.End()
	}
	start := time.Now()

	c.engine.Put(key, value)

	c.observe("put", start)
	if c.metrics != nil {
		if s, ok := c.engine.(engine.Sizer); ok {
			c.metrics.Entries.Set(float64(s.Len()))
		}
	}
}

// Strategy returns the strategy the cache was built for.
func (c *Cache[K, V]) Strategy() Strategy { return c.strategy }

// Name returns the cache name.
func (c *Cache[K, V]) Name() string { return c.name }

// Stats reports basic metrics about cache usage.
type Stats struct {
	Hits      uint64
	Misses    uint64
	Evictions uint64
	// Size is the number of live entries, or zero when the engine does not
	// report it.
	Size int
}

// Stats returns current metrics for the cache.
func (c *Cache[K, V]) Stats() Stats {
	st := Stats{
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
	}
	if s, ok := c.engine.(engine.Sizer); ok {
		st.Size = s.Len()
	}
	return st
}

func (c *Cache[K, V]) evicted(key K, value V) {
	c.evictions.Add(1)
	if c.metrics != nil {
		c.metrics.Evictions.Inc()
	}
	c.logger.Debug("recency: entry evicted", "cache", c.name, "strategy", c.strategy.String(), "key", key)
	if c.bus != nil {
		_ = c.bus.Publish(context.Background(), notify.Event[K, V]{
			Key:      key,
			Value:    value,
			Strategy: c.strategy.String(),
			At:       time.Now(),
		})
	}
}

func (c *Cache[K, V]) observe(op string, start time.Time) {
	if c.metrics != nil {
		c.metrics.Latency.WithLabelValues(op).Observe(time.Since(start).Seconds())
	}
}

func (c *Cache[K, V]) spanAttributes() []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("recency.cache.name", c.name),
		attribute.String("recency.cache.strategy", c.strategy.String()),
	}
}
