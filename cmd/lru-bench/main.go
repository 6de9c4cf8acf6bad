package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/mirkobrombin/go-recency/v1/cache"
	"github.com/mirkobrombin/go-recency/v1/engine"
	"github.com/mirkobrombin/go-recency/v1/metrics"
)

var (
	concurrency = flag.Int("c", 50, "Number of concurrent clients")
	requests    = flag.Int("n", 100000, "Total number of requests")
	keySpace    = flag.Int("k", 10000, "Number of distinct keys")
	capacity    = flag.Int("capacity", 1000, "Cache capacity")
)

func main() {
	flag.Parse()
	if err := validateFlags(*concurrency, *requests, *keySpace); err != nil {
		log.Fatalf("Invalid flags: %v", err)
	}

	log.Printf("Starting benchmark: %d requests, %d concurrency, %d keys, capacity %d", *requests, *concurrency, *keySpace, *capacity)

	lru, err := engine.NewLRU[int, []byte](*capacity)
	if err != nil {
		log.Fatalf("Setup failed: %v", err)
	}
	reg := metrics.NewRegistry()
	c, err := cache.New(cache.Registry[int, []byte]{cache.LRUStrategy: lru}, cache.LRUStrategy,
		cache.WithName[int, []byte]("bench"),
		cache.WithMetrics[int, []byte](reg),
		cache.WithLogger[int, []byte](slog.Default()),
	)
	if err != nil {
		log.Fatalf("Setup failed: %v", err)
	}
	s := cache.NewSynchronized(c)

	ctx := context.Background()
	val := make([]byte, 256)
	for i := range val {
		val[i] = 'x'
	}

	var wg sync.WaitGroup
	var ops int64

	start := time.Now()
	reqsPerWorker := *requests / *concurrency

	for i := 0; i < *concurrency; i++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed))
			for j := 0; j < reqsPerWorker; j++ {
				k := rng.Intn(*keySpace)
				if _, ok := s.Get(ctx, k); !ok {
					s.Put(ctx, k, val)
				}
				atomic.AddInt64(&ops, 1)
			}
		}(int64(i))
	}

	wg.Wait()
	elapsed := time.Since(start)

	st := s.Stats()
	throughput := float64(ops) / elapsed.Seconds()
	avgLatency := elapsed.Seconds() / float64(ops) * 1e9 // ns
	hitRatio := 0.0
	if total := st.Hits + st.Misses; total > 0 {
		hitRatio = float64(st.Hits) / float64(total)
	}

	log.Printf("Finished in %v", elapsed)
	log.Printf("Throughput: %.2f req/s", throughput)
	log.Printf("Avg Latency: %.2f ns", avgLatency)
	log.Printf("Hit ratio: %.2f%% (%d evictions, %d entries)", hitRatio*100, st.Evictions, st.Size)

	if mfs, err := reg.Gather(); err == nil {
		log.Printf("Exported %d metric families", len(mfs))
	}
}

func validateFlags(concurrency, requests, keySpace int) error {
	switch {
	case concurrency < 1:
		return fmt.Errorf("-c must be at least 1, got %d", concurrency)
	case requests < concurrency:
		return fmt.Errorf("-n must be at least -c (%d), got %d", concurrency, requests)
	case keySpace < 1:
		return fmt.Errorf("-k must be at least 1, got %d", keySpace)
	}
	return nil
}
