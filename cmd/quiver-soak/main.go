// quiver-soak drives a Stack from many goroutines with a mixed push/pop
// workload, then drains it and verifies conservation: every value pushed
// comes back out exactly once, either popped by a worker or recovered by
// the final drain. Reclamation behavior is observable on the prometheus
// endpoint while the run is in progress.
package main

import (
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/23skdu/quiver"
	"github.com/23skdu/quiver/internal/logging"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	// Bootstrap logger until the configured one is available.
	logger, err := logging.NewLogger(logging.DefaultConfig())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}

	// .env is optional; real environments set variables directly.
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("QUIVER", &cfg); err != nil {
		logger.Error("Failed to process environment config", zap.Error(err))
		os.Exit(1)
	}
	if err := ValidateConfig(&cfg); err != nil {
		logger.Error("Invalid configuration", zap.Error(err))
		os.Exit(1)
	}

	logger, err = logging.NewLogger(logging.Config{Format: cfg.LogFormat, Level: cfg.LogLevel})
	if err != nil {
		logger.Error("Failed to create configured logger", zap.Error(err))
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	// Start Metrics Server
	go func() {
		logger.Info("Starting metrics server", zap.String("address", cfg.MetricsAddr))
		http.Handle("/metrics", promhttp.Handler())
		if err := http.ListenAndServe(cfg.MetricsAddr, nil); err != nil {
			logger.Error("Failed to start metrics server", zap.Error(err))
		}
	}()

	logger.Info("Starting soak run",
		zap.Int("workers", cfg.Workers),
		zap.Int("ops_per_worker", cfg.OpsPerWorker),
		zap.Int("push_percent", cfg.PushPercent),
		zap.Duration("max_runtime", cfg.MaxRuntime),
		zap.Bool("lock_free", quiver.LockFree()),
	)

	stack := quiver.New[uint64]()

	var pushCount, pushSum atomic.Uint64
	var popCount, popSum atomic.Uint64
	var emptyPops atomic.Uint64

	start := time.Now()
	deadline := start.Add(cfg.MaxRuntime)

	var wg sync.WaitGroup
	for w := 0; w < cfg.Workers; w++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()

			rng := rand.New(rand.NewSource(time.Now().UnixNano() + int64(id)))
			var localPushCount, localPushSum uint64
			var localPopCount, localPopSum uint64
			var localEmpty uint64
			seq := uint64(0)

			for op := 0; op < cfg.OpsPerWorker; op++ {
				if op%1024 == 0 && time.Now().After(deadline) {
					break
				}
				if rng.Intn(100) < cfg.PushPercent {
					v := uint64(id)<<32 | seq
					seq++
					stack.Push(v)
					localPushCount++
					localPushSum += v
				} else if v, ok := stack.Pop(); ok {
					localPopCount++
					localPopSum += v
				} else {
					localEmpty++
				}
			}

			pushCount.Add(localPushCount)
			pushSum.Add(localPushSum)
			popCount.Add(localPopCount)
			popSum.Add(localPopSum)
			emptyPops.Add(localEmpty)
		}(w)
	}
	wg.Wait()
	elapsed := time.Since(start)

	// Single-owner drain: recover whatever the workers left behind.
	var drainCount, drainSum uint64
	for {
		v, ok := stack.Pop()
		if !ok {
			break
		}
		drainCount++
		drainSum += v
	}

	totalOps := pushCount.Load() + popCount.Load() + emptyPops.Load()
	fmt.Printf("Soak results:\n")
	fmt.Printf("  Elapsed:     %s\n", elapsed)
	fmt.Printf("  Pushes:      %d\n", pushCount.Load())
	fmt.Printf("  Pops:        %d\n", popCount.Load())
	fmt.Printf("  Empty pops:  %d\n", emptyPops.Load())
	fmt.Printf("  Drained:     %d\n", drainCount)
	fmt.Printf("  Throughput:  %.0f ops/sec\n", float64(totalOps)/elapsed.Seconds())

	if pushCount.Load() != popCount.Load()+drainCount ||
		pushSum.Load() != popSum.Load()+drainSum {
		logger.Error("Conservation check FAILED",
			zap.Uint64("pushed", pushCount.Load()),
			zap.Uint64("popped", popCount.Load()),
			zap.Uint64("drained", drainCount),
		)
		os.Exit(1)
	}
	logger.Info("Conservation check passed",
		zap.Uint64("pushed", pushCount.Load()),
		zap.Uint64("popped", popCount.Load()),
		zap.Uint64("drained", drainCount),
	)
}
