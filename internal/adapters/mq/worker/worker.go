// Package worker runs per-candidate scoring on a fixed pool of goroutines.
package worker

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"sync"
	"time"

	"github.com/Katlyn627/Netflix-And-Chill-sub001/internal/adapters/mq/queue"
	"github.com/Katlyn627/Netflix-And-Chill-sub001/internal/domain/model"
	"github.com/Katlyn627/Netflix-And-Chill-sub001/pkg/logger"
	"github.com/Katlyn627/Netflix-And-Chill-sub001/pkg/metrics"
)

// Handler scores a single job. It must be safe for concurrent use.
type Handler = model.ScoringFunc

// worker drains a queue and writes each outcome into its job's slot.
type worker struct {
	logger logger.Logger
}

func (w *worker) run(ctx context.Context, q queue.Queue, handle Handler, results []model.ScoringOutcome) {
	metrics.AddWorkerActive(1)
	defer metrics.AddWorkerActive(-1)

	jobs := q.Dequeue()
	for {
		select {
		case <-ctx.Done():
			return
		case job, ok := <-jobs:
			if !ok {
				return
			}
			q.Done()
			results[job.Index] = w.process(ctx, job, handle)
		}
	}
}

func (w *worker) process(ctx context.Context, job model.ScoringJob, handle Handler) (out model.ScoringOutcome) { //nolint:gocritic // hugeParam: jobs travel by value
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			metrics.RecordWorkerError()
			metrics.RecordErrorByComponent("worker", "panic")
			w.logger.Error(ctx, "scoring handler panicked",
				logger.String("candidate_id", job.Candidate.ID),
				logger.Any("panic", r),
			)
			out = model.ScoringOutcome{
				Index:       job.Index,
				CandidateID: job.Candidate.ID,
				Err:         fmt.Errorf("%w: %v", ErrPanicked, r),
			}
		}
		metrics.RecordScoringLatency(float64(time.Since(start).Milliseconds()))
	}()

	out = handle(ctx, job)
	out.Index = job.Index
	if out.CandidateID == "" {
		out.CandidateID = job.Candidate.ID
	}
	if out.Err != nil {
		metrics.RecordWorkerError()
		metrics.RecordErrorByComponent("worker", "scoring_error")
	}
	return out
}

// Pool fans scoring jobs out to a fixed number of workers. A Pool holds no
// per-dispatch state and may serve concurrent Dispatch calls.
type Pool struct {
	size   int
	logger logger.Logger
}

// NewPool creates a pool sized to runtime.NumCPU() unless overridden.
func NewPool(opts ...Option) *Pool {
	p := &Pool{size: runtime.NumCPU()}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = logger.Get().Named("worker-pool")
	}
	metrics.UpdateWorkerCount(p.size)
	return p
}

// Size returns the configured worker count.
func (p *Pool) Size() int {
	return p.size
}

// Dispatch runs handle for every job and returns the outcomes indexed like
// jobs. Every job must carry its own position as Index. All handlers finish
// before Dispatch returns; when ctx is cancelled first, the ctx error is
// returned and the outcomes are discarded.
func (p *Pool) Dispatch(ctx context.Context, jobs []model.ScoringJob, handle Handler) ([]model.ScoringOutcome, error) {
	if len(jobs) == 0 {
		return []model.ScoringOutcome{}, nil
	}
	for i := range jobs {
		if jobs[i].Index != i {
			return nil, fmt.Errorf("%w: job at position %d has index %d", ErrInvalidJob, i, jobs[i].Index)
		}
	}

	q := queue.NewInMemoryQueue(queue.WithCapacity(len(jobs)))
	for i := range jobs {
		if err := q.Enqueue(ctx, jobs[i]); err != nil {
			_ = q.Close()
			return nil, fmt.Errorf("enqueue job %d: %w", i, err)
		}
	}
	if err := q.Close(); err != nil {
		return nil, fmt.Errorf("close queue: %w", err)
	}

	n := min(p.size, len(jobs))
	results := make([]model.ScoringOutcome, len(jobs))

	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		w := &worker{logger: p.logger.Named("worker-" + strconv.Itoa(i))}
		go func() {
			defer wg.Done()
			w.run(ctx, q, handle, results)
		}()
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		p.logger.Warn(ctx, "dispatch cancelled", logger.Int("jobs", len(jobs)), logger.Error(err))
		return nil, err
	}
	p.logger.Debug(ctx, "dispatch finished", logger.Int("jobs", len(jobs)), logger.Int("workers", n))
	return results, nil
}
