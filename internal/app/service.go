// Package service wires the analyzer, classifier, scorer and selector into
// the dependency bundle the HTTP API needs.
package service

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	workerpool "github.com/Katlyn627/Netflix-And-Chill-sub001/internal/adapters/mq/worker"
	"github.com/Katlyn627/Netflix-And-Chill-sub001/internal/domain/archetype"
	"github.com/Katlyn627/Netflix-And-Chill-sub001/internal/domain/compatibility"
	"github.com/Katlyn627/Netflix-And-Chill-sub001/internal/domain/matching"
	"github.com/Katlyn627/Netflix-And-Chill-sub001/internal/domain/model"
	"github.com/Katlyn627/Netflix-And-Chill-sub001/internal/domain/swipe"
	"github.com/Katlyn627/Netflix-And-Chill-sub001/pkg/logger"
	"github.com/Katlyn627/Netflix-And-Chill-sub001/pkg/metrics"
)

// Service implements the API dependencies for the matching engine.
type Service struct {
	mu sync.RWMutex

	// Core components
	analyzer   *swipe.Analyzer
	classifier *archetype.Classifier
	scorer     *compatibility.Scorer
	pool       *workerpool.Pool
	selector   *matching.Selector

	// Configuration
	workerCount    int
	defaultLimit   int
	maxLimit       int
	bingeTolerance float64
	table          archetype.Table
	now            func() time.Time

	// State
	started   bool
	startedAt time.Time

	selections  atomic.Int64
	pairsScored atomic.Int64

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets the number of scoring goroutines.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithDefaultLimit sets the match limit used when a request gives none.
func WithDefaultLimit(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.defaultLimit = n
		}
	}
}

// WithMaxLimit sets the largest accepted match limit.
func WithMaxLimit(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxLimit = n
		}
	}
}

// WithArchetypeTable replaces the built-in archetype weight table.
func WithArchetypeTable(t archetype.Table) Option {
	return func(s *Service) {
		s.table = t
	}
}

// WithBingeTolerance sets the binge gap at which the binge sub-score is 0.
func WithBingeTolerance(episodes float64) Option {
	return func(s *Service) {
		if episodes > 0 {
			s.bingeTolerance = episodes
		}
	}
}

// WithClock sets the time source used for swipe recency.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a Service. Components are built by Start.
func New(opts ...Option) *Service {
	s := &Service{
		workerCount:  runtime.NumCPU(),
		defaultLimit: matching.DefaultLimit,
		maxLimit:     100,
		table:        archetype.DefaultTable(),
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start validates the archetype table and builds the engine components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	if s.defaultLimit > s.maxLimit {
		return fmt.Errorf("default limit %d exceeds max limit %d: %w", s.defaultLimit, s.maxLimit, matching.ErrInvalidLimit)
	}

	s.logger.Info(ctx, "starting matching service...")

	classifier, err := archetype.NewClassifier(s.table)
	if err != nil {
		return fmt.Errorf("build classifier: %w", err)
	}
	scorerOpts := []compatibility.Option{}
	if s.bingeTolerance > 0 {
		scorerOpts = append(scorerOpts, compatibility.WithBingeTolerance(s.bingeTolerance))
	}

	s.analyzer = swipe.NewAnalyzer(swipe.WithClock(s.now))
	s.classifier = classifier
	s.scorer = compatibility.NewScorer(scorerOpts...)
	s.pool = workerpool.NewPool(
		workerpool.WithWorkerCount(s.workerCount),
		workerpool.WithLogger(s.logger.Named("worker-pool")),
	)
	selector, err := matching.NewSelector(s.pool, s.classifier,
		matching.WithAnalyzer(s.analyzer),
		matching.WithScorer(s.scorer),
		matching.WithMaxLimit(s.maxLimit),
		matching.WithLogger(s.logger.Named("selector")),
	)
	if err != nil {
		return fmt.Errorf("build selector: %w", err)
	}
	s.selector = selector

	s.started = true
	s.startedAt = s.now()
	s.logger.Info(ctx, "matching service started",
		logger.Int("workers", s.pool.Size()),
		logger.Int("archetypes", len(s.table.Archetypes)),
		logger.Int("defaultLimit", s.defaultLimit),
		logger.Int("maxLimit", s.maxLimit),
	)
	return nil
}

// Stop marks the service stopped. In-flight requests finish normally.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "matching service stopped")
}

func (s *Service) running() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return ErrNotStarted
	}
	return nil
}

// AnalyzeSwipes aggregates a swipe history.
func (s *Service) AnalyzeSwipes(ctx context.Context, events []model.SwipeEvent) (model.SwipeStatistics, error) {
	if err := s.running(); err != nil {
		return model.SwipeStatistics{}, err
	}
	stats := s.analyzer.Analyze(events)
	metrics.RecordSwipesAnalyzed(len(events))
	s.logger.Debug(ctx, "swipes analyzed",
		logger.Int("total", stats.TotalSwipes),
		logger.Int("likes", stats.TotalLikes),
	)
	return stats, nil
}

// Classify assigns archetypes from quiz scores, filling unanswered
// categories from the swipe history when one is given.
func (s *Service) Classify(ctx context.Context, scores model.CategoryScores, events []model.SwipeEvent) (model.Classification, error) {
	if err := s.running(); err != nil {
		return model.Classification{}, err
	}
	if len(events) > 0 {
		stats := s.analyzer.Analyze(events)
		metrics.RecordSwipesAnalyzed(len(events))
		scores = swipe.MergeScores(scores, swipe.CategoryScores(stats))
	}
	cls, err := s.classifier.Classify(scores)
	if err != nil {
		metrics.RecordErrorByComponent("classifier", "score_out_of_range")
		return model.Classification{}, err
	}
	metrics.RecordClassification(string(cls.Confidence.Level))
	return cls, nil
}

// Compatibility scores one pair of users.
func (s *Service) Compatibility(ctx context.Context, a, b model.User) (model.CompatibilityResult, error) {
	if err := s.running(); err != nil {
		return model.CompatibilityResult{}, err
	}
	start := time.Now()
	sa := s.analyzer.Analyze(a.Swipes)
	sb := s.analyzer.Analyze(b.Swipes)
	res, err := s.scorer.Score(compatibility.ProfileOf(a, &sa), compatibility.ProfileOf(b, &sb))
	if err != nil {
		metrics.RecordErrorByComponent("scorer", "score_out_of_range")
		return model.CompatibilityResult{}, err
	}
	metrics.RecordScoringLatency(float64(time.Since(start).Milliseconds()))
	metrics.RecordCompatibilityScore(res.OverallScore)
	s.pairsScored.Add(1)
	s.logger.Debug(ctx, "pair scored",
		logger.String("a", a.ID),
		logger.String("b", b.ID),
		logger.Int("score", res.OverallScore),
	)
	return res, nil
}

// FindMatches ranks req.Population for req.Requester. Filters the request
// leaves unset fall back to the requester's declared preferences, and a zero
// limit becomes the configured default.
func (s *Service) FindMatches(ctx context.Context, req matching.Request) (matching.Evaluation, error) {
	if err := s.running(); err != nil {
		return matching.Evaluation{}, err
	}
	start := time.Now()

	req.Filters = req.Filters.Or(matching.FiltersFromPreferences(req.Requester.Preferences))
	if req.Limit == 0 {
		req.Limit = s.defaultLimit
	}

	ev, err := s.selector.Evaluate(ctx, req)
	if err != nil {
		metrics.RecordErrorByComponent("selector", "selection_failed")
		s.logger.Warn(ctx, "selection failed",
			logger.String("requester", req.Requester.ID),
			logger.Error(err),
		)
		return matching.Evaluation{}, err
	}

	for reason, n := range ev.Stats.Filtered {
		metrics.RecordCandidatesFiltered(reason, n)
	}
	for reason, n := range ev.Stats.Skipped {
		metrics.RecordCandidatesSkipped(reason, n)
	}
	for _, m := range ev.Matches {
		metrics.RecordCompatibilityScore(m.OverallScore)
	}
	elapsed := time.Since(start)
	metrics.RecordSelection(len(ev.Matches), float64(elapsed.Milliseconds()))
	s.selections.Add(1)
	s.pairsScored.Add(int64(ev.Stats.Scored))

	s.logger.Info(ctx, "selection finished",
		logger.String("requester", req.Requester.ID),
		logger.Int("population", ev.Stats.Population),
		logger.Int("scored", ev.Stats.Scored),
		logger.Int("returned", ev.Stats.Returned),
		logger.Duration("elapsed", elapsed),
	)
	return ev, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":      s.started,
		"workerCount":  s.workerCount,
		"defaultLimit": s.defaultLimit,
		"maxLimit":     s.maxLimit,
		"archetypes":   s.table.Keys(),
		"selections":   s.selections.Load(),
		"pairsScored":  s.pairsScored.Load(),
	}

	if s.started {
		stats["uptimeSeconds"] = int64(s.now().Sub(s.startedAt).Seconds())

		var mem runtime.MemStats
		runtime.ReadMemStats(&mem)
		goroutines := runtime.NumGoroutine()
		stats["heapBytes"] = mem.HeapAlloc
		stats["goroutines"] = goroutines

		metrics.UpdateSystemMemoryUsage(mem.HeapAlloc)
		metrics.UpdateSystemGoroutineCount(goroutines)
		metrics.UpdateWorkerCount(s.pool.Size())
	}
	return stats
}
