// Package matching selects, filters and ranks candidates for one requester.
package matching

import (
	"context"
	"fmt"

	"github.com/Katlyn627/Netflix-And-Chill-sub001/internal/domain/archetype"
	"github.com/Katlyn627/Netflix-And-Chill-sub001/internal/domain/compatibility"
	"github.com/Katlyn627/Netflix-And-Chill-sub001/internal/domain/dedupe"
	"github.com/Katlyn627/Netflix-And-Chill-sub001/internal/domain/model"
	"github.com/Katlyn627/Netflix-And-Chill-sub001/internal/domain/ranking"
	"github.com/Katlyn627/Netflix-And-Chill-sub001/internal/domain/swipe"
	"github.com/Katlyn627/Netflix-And-Chill-sub001/internal/domain/types"
	"github.com/Katlyn627/Netflix-And-Chill-sub001/pkg/logger"
)

// DefaultLimit is the number of matches returned when Request.Limit is 0.
const DefaultLimit = 10

// Dispatcher runs one scoring function per job, possibly in parallel, and
// returns outcomes in job order once all of them are done.
type Dispatcher interface {
	Dispatch(ctx context.Context, jobs []model.ScoringJob, fn model.ScoringFunc) ([]model.ScoringOutcome, error)
}

// Request is one selection.
type Request struct {
	Requester  model.User
	Population []model.User
	Filters    Filters
	// Limit of 0 means DefaultLimit.
	Limit int
	// Rejected counts candidate records the caller dropped before building
	// Population because they could not be decoded.
	Rejected int
}

// SelectionStats counts what happened to the population.
type SelectionStats struct {
	Population int            `json:"population"`
	Scored     int            `json:"scored"`
	Returned   int            `json:"returned"`
	Filtered   map[string]int `json:"filtered"`
	Skipped    map[string]int `json:"skipped"`
}

// Evaluation is the full result of a selection.
type Evaluation struct {
	Matches   []types.Match        `json:"matches"`
	Requester model.Classification `json:"requester"`
	Stats     SelectionStats       `json:"stats"`
}

// Selector ranks a population against a requester.
type Selector struct {
	analyzer   *swipe.Analyzer
	classifier *archetype.Classifier
	scorer     *compatibility.Scorer
	dispatcher Dispatcher
	logger     logger.Logger
	maxLimit   int
}

// NewSelector creates a Selector. The dispatcher and classifier are required.
func NewSelector(d Dispatcher, c *archetype.Classifier, opts ...Option) (*Selector, error) {
	if d == nil {
		return nil, fmt.Errorf("%w: dispatcher", ErrMissingDependency)
	}
	if c == nil {
		return nil, fmt.Errorf("%w: classifier", ErrMissingDependency)
	}
	s := &Selector{
		analyzer:   swipe.NewAnalyzer(),
		classifier: c,
		scorer:     compatibility.NewScorer(),
		dispatcher: d,
		logger:     logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Select returns the ranked matches for req.
func (s *Selector) Select(ctx context.Context, req Request) ([]types.Match, error) {
	ev, err := s.Evaluate(ctx, req)
	if err != nil {
		return nil, err
	}
	return ev.Matches, nil
}

// Evaluate runs a selection and also reports the requester's classification
// and per-reason counts.
//
// Candidates are excluded when they are the requester, lack an id, repeat an
// id, fail a hard filter, fail to score, or score below MinMatchScore. The
// rest are ordered by score descending then id ascending and truncated to
// the limit. An empty result is not an error.
func (s *Selector) Evaluate(ctx context.Context, req Request) (Evaluation, error) {
	limit, err := s.limit(req.Limit)
	if err != nil {
		return Evaluation{}, err
	}
	if err := req.Filters.Validate(); err != nil {
		return Evaluation{}, err
	}
	if err := ctx.Err(); err != nil {
		return Evaluation{}, err
	}

	reqStats := s.analyzer.Analyze(req.Requester.Swipes)
	reqClass, err := s.classifier.Classify(swipe.MergeScores(req.Requester.QuizScores, swipe.CategoryScores(reqStats)))
	if err != nil {
		return Evaluation{}, fmt.Errorf("requester %s: %w", req.Requester.ID, err)
	}

	stats := SelectionStats{
		Population: len(req.Population),
		Filtered:   map[string]int{},
		Skipped:    map[string]int{},
	}
	if req.Rejected > 0 {
		stats.Population += req.Rejected
		stats.Skipped[SkipMalformed] = req.Rejected
	}
	f := compile(req.Filters, req.Requester)

	jobs := s.admit(ctx, req, f, &stats)

	outcomes, err := s.dispatcher.Dispatch(ctx, jobs, s.scoreFunc(compatibility.ProfileOf(req.Requester, &reqStats), f))
	if err != nil {
		return Evaluation{}, err
	}

	board := ranking.NewBoard(len(outcomes))
	for i := range outcomes {
		o := &outcomes[i]
		switch {
		case o.Err != nil:
			stats.Skipped[SkipScoringError]++
			s.logger.Warn(ctx, "skipping candidate that failed to score",
				logger.String("candidate_id", o.CandidateID), logger.Error(o.Err))
			continue
		case o.Filtered != "":
			stats.Filtered[o.Filtered]++
			continue
		}
		stats.Scored++
		if o.Result.OverallScore < f.MinMatchScore {
			stats.Filtered[ReasonMinScore]++
			continue
		}
		if err := board.Insert(types.Match{
			MatchedUserID: o.CandidateID,
			OverallScore:  o.Result.OverallScore,
			SubScores:     o.Result.SubScores,
			Description:   o.Result.Description,
			Archetypes:    o.Archetypes,
		}); err != nil {
			s.logger.Warn(ctx, "candidate not ranked", logger.String("candidate_id", o.CandidateID), logger.Error(err))
		}
	}

	matches, err := board.TopN(limit)
	if err != nil {
		return Evaluation{}, err
	}
	stats.Returned = len(matches)
	return Evaluation{Matches: matches, Requester: reqClass, Stats: stats}, nil
}

func (s *Selector) limit(n int) (int, error) {
	switch {
	case n < 0:
		return 0, fmt.Errorf("%w: %d is negative", ErrInvalidLimit, n)
	case n == 0:
		n = DefaultLimit
	}
	if s.maxLimit > 0 && n > s.maxLimit {
		return 0, fmt.Errorf("%w: %d exceeds maximum %d", ErrInvalidLimit, n, s.maxLimit)
	}
	return n, nil
}

// admit drops the requester, malformed records and demographic misses, and
// turns the survivors into jobs indexed by position.
func (s *Selector) admit(ctx context.Context, req Request, f compiled, stats *SelectionStats) []model.ScoringJob {
	seen := dedupe.NewTracker(dedupe.WithCapacity(len(req.Population)))
	jobs := make([]model.ScoringJob, 0, len(req.Population))

	for i := range req.Population {
		c := req.Population[i]
		switch {
		case c.ID == "":
			stats.Skipped[SkipMissingID]++
			s.logger.Warn(ctx, "skipping candidate without id", logger.Int("position", i))
			continue
		case c.ID == req.Requester.ID:
			continue
		case seen.SeenAndRecord(c.ID):
			stats.Skipped[SkipDuplicateID]++
			s.logger.Warn(ctx, "skipping duplicate candidate", logger.String("candidate_id", c.ID))
			continue
		}
		if reason := f.admit(c); reason != "" {
			stats.Filtered[reason]++
			continue
		}
		jobs = append(jobs, model.ScoringJob{Index: len(jobs), Candidate: c})
	}
	return jobs
}

// scoreFunc builds the per-candidate work run on the dispatcher.
func (s *Selector) scoreFunc(requester compatibility.Profile, f compiled) model.ScoringFunc {
	return func(_ context.Context, job model.ScoringJob) model.ScoringOutcome {
		c := job.Candidate
		out := model.ScoringOutcome{Index: job.Index, CandidateID: c.ID}

		st := s.analyzer.Analyze(c.Swipes)
		cls, err := s.classifier.Classify(swipe.MergeScores(c.QuizScores, swipe.CategoryScores(st)))
		if err != nil {
			out.Err = fmt.Errorf("classify: %w", err)
			return out
		}
		if !f.admitArchetypes(cls) {
			out.Filtered = ReasonArchetype
			return out
		}

		res, err := s.scorer.Score(requester, compatibility.ProfileOf(c, &st))
		if err != nil {
			out.Err = fmt.Errorf("score: %w", err)
			return out
		}
		out.Result = res
		out.Archetypes = cls.Archetypes
		return out
	}
}
