package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/mirkobrombin/go-recency/v1/cache"
	"github.com/mirkobrombin/go-recency/v1/engine"
)

var (
	capacity = flag.Int("capacity", 3, "Maximum number of entries")
	strategy = flag.String("strategy", "lru", "Eviction strategy (lru, lfu, mru)")
	traced   = flag.Bool("trace", false, "Print OpenTelemetry spans to stdout")
	verbose  = flag.Bool("v", false, "Log evictions")
)

const notFound = "Key is not present"

type step struct {
	get   bool
	key   int
	value string
}

// scenario is the sequence the demo replays.
var scenario = []step{
	{key: 1, value: "Hi"},
	{key: 2, value: "Bye"},
	{key: 3, value: "Bye"},
	{key: 4, value: "Bye"},
	{get: true, key: 2},
	{key: 6, value: "Bye"},
	{key: 5, value: "Bye"},
	{get: true, key: 1},
	{get: true, key: 4},
	{get: true, key: 5},
	{get: true, key: 2},
}

func main() {
	flag.Parse()
	ctx := context.Background()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	s, err := cache.ParseStrategy(*strategy)
	if err != nil {
		log.Fatal(err)
	}

	lru, err := engine.NewLRU[int, string](*capacity)
	if err != nil {
		log.Fatal(err)
	}
	lfu, err := engine.NewLFU[int, string](*capacity)
	if err != nil {
		log.Fatal(err)
	}
	defer lfu.Close()

	opts := []cache.Option[int, string]{
		cache.WithName[int, string]("demo"),
		cache.WithLogger[int, string](logger),
	}
	if *traced {
		exp, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
		if err != nil {
			log.Fatal(err)
		}
		tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exp))
		defer func() { _ = tp.Shutdown(ctx) }()
		opts = append(opts, cache.WithTracerProvider[int, string](tp))
	}

	// MRU has no engine, selecting it is a configuration error.
	reg := cache.Registry[int, string]{
		cache.LRUStrategy: lru,
		cache.LFUStrategy: lfu,
	}
	c, err := cache.New(reg, s, opts...)
	if err != nil {
		log.Fatalf("configuration error: %v", err)
	}

	for _, st := range scenario {
		if !st.get {
			c.Put(ctx, st.key, st.value)
			continue
		}
		if v, ok := c.Get(ctx, st.key); ok {
			fmt.Println(v)
		} else {
			fmt.Println(notFound)
		}
	}

	stats := c.Stats()
	logger.Info("demo finished", "hits", stats.Hits, "misses", stats.Misses, "evictions", stats.Evictions)
}
