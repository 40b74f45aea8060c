package pipeline

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/dgallion1/plainrfc/internal/parser"
	"github.com/dgallion1/plainrfc/internal/rfcxml"
	"github.com/dgallion1/plainrfc/internal/stats"
)

// Runner converts files with a bounded number of concurrent workers. Each
// conversion is independent and single-threaded.
type Runner struct {
	boilerplate rfcxml.Boilerplate
	opts        parser.Options
	workers     int
	stats       *stats.Latency
	log         *slog.Logger
}

func NewRunner(bp rfcxml.Boilerplate, opts parser.Options, workers int, st *stats.Latency, log *slog.Logger) *Runner {
	if workers <= 0 {
		workers = 1
	}
	if st == nil {
		st = stats.NewLatency(time.Hour)
	}
	return &Runner{
		boilerplate: bp,
		opts:        opts,
		workers:     workers,
		stats:       st,
		log:         log,
	}
}

// Stats returns the latency recorder shared by all workers.
func (r *Runner) Stats() *stats.Latency {
	return r.stats
}

// Run converts every job and returns results in job order. Jobs not yet
// started when ctx is cancelled report ctx.Err().
func (r *Runner) Run(ctx context.Context, jobs []Job) []Result {
	results := make([]Result, len(jobs))
	sem := make(chan struct{}, r.workers)
	var wg sync.WaitGroup

	for i, job := range jobs {
		if err := ctx.Err(); err != nil {
			results[i] = Result{Job: job, Err: err}
			continue
		}
		select {
		case <-ctx.Done():
			results[i] = Result{Job: job, Err: ctx.Err()}
			continue
		case sem <- struct{}{}:
		}
		wg.Add(1)
		go func(i int, job Job) {
			defer wg.Done()
			defer func() { <-sem }()
			results[i] = r.Process(job)
		}(i, job)
	}
	wg.Wait()
	return results
}

// Process runs a single job.
func (r *Runner) Process(job Job) Result {
	log := r.log.With("input", job.Input, "output", job.Output)

	start := time.Now()
	out, err := ConvertFile(job.Input, job.Output, r.boilerplate, r.opts)
	res := Result{Job: job, Duration: time.Since(start), Err: err}
	if err != nil {
		r.stats.RecordFailure()
		log.Error("conversion failed", "error", err, "line", rfcxml.LineOf(err))
		return res
	}

	r.stats.Record(res.Duration)
	res.Bytes = len(out)
	res.Hash = ContentHashHex(out)
	log.Debug("converted", "bytes", res.Bytes, "duration_ms", res.Duration.Milliseconds())
	return res
}
