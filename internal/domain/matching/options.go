package matching

import (
	"github.com/Katlyn627/Netflix-And-Chill-sub001/internal/domain/compatibility"
	"github.com/Katlyn627/Netflix-And-Chill-sub001/internal/domain/swipe"
	"github.com/Katlyn627/Netflix-And-Chill-sub001/pkg/logger"
)

// Option applies a configuration option to the Selector.
type Option func(*Selector)

// WithAnalyzer replaces the swipe analyzer, mostly to pin its clock.
func WithAnalyzer(a *swipe.Analyzer) Option {
	return func(s *Selector) {
		if a != nil {
			s.analyzer = a
		}
	}
}

// WithScorer replaces the pair scorer.
func WithScorer(sc *compatibility.Scorer) Option {
	return func(s *Selector) {
		if sc != nil {
			s.scorer = sc
		}
	}
}

// WithLogger sets the logger used for skipped candidates.
func WithLogger(l logger.Logger) Option {
	return func(s *Selector) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMaxLimit caps Request.Limit. Zero leaves it uncapped.
func WithMaxLimit(n int) Option {
	return func(s *Selector) {
		if n > 0 {
			s.maxLimit = n
		}
	}
}
