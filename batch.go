package thor

import (
	"os"
	"sync"
	"time"

	kitlog "github.com/go-kit/kit/log"
)

var batchLogger = kitlog.With(kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(os.Stdout)), "subsys", "batch")

// parallelRows runs work(i) for every i in [0, n). Small batches stay on
// the calling goroutine; past the configured threshold the rows fan out
// over a fixed worker pool. Each worker writes only to its own row index,
// so results keep input order without further synchronization.
func parallelRows(n int, work func(i int)) {
	cfg := engineConfig()
	if n < cfg.ParallelThreshold || cfg.Workers <= 1 {
		for i := 0; i < n; i++ {
			work(i)
		}
		return
	}
	start := time.Now()
	jobs := make(chan int, cfg.Workers)
	var wg sync.WaitGroup
	for w := 0; w < cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				work(i)
			}
		}()
	}
	for i := 0; i < n; i++ {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	batchDuration.Observe(time.Since(start).Seconds())
	batchLogger.Log("level", "debug", "rows", n, "workers", cfg.Workers, "dur", time.Since(start))
}
